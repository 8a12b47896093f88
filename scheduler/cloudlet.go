package scheduler

// Cloudlet is a unit of work submitted to a VM: a fixed instruction
// length to execute, a PE requirement, and the utilization model that
// governs how much of its allocated share it actually consumes.
type Cloudlet struct {
	ID int

	// LengthMI is the total instruction count to execute, in millions
	// of instructions.
	LengthMI float64

	// PesNumber is the number of processing elements this cloudlet
	// requires; it must not exceed the VM's own PE count.
	PesNumber int

	FileSize   int64
	OutputSize int64

	// RequiredRAM and RequiredBW are the cloudlet's declared RAM (in
	// megabytes) and bandwidth (in megabits per second) requirements.
	// The RAM/BW percent-utilization getters do not read them; they
	// average UtilizationRAM/UtilizationBW only.
	RequiredRAM int64
	RequiredBW  int64

	UtilizationCPU UtilizationModel
	UtilizationRAM UtilizationModel
	UtilizationBW  UtilizationModel
}

// NullCloudlet is the null-object Cloudlet, grounded on the same
// NULL-object convention as vm.NullVm/vm.NullHost: id -1 and full
// utilization models. The scheduler's own lookups (Get, CloudletCancel)
// do not return it; they report a miss as (nil, false).
var NullCloudlet = Cloudlet{
	ID:             -1,
	UtilizationCPU: UtilizationFull{},
	UtilizationRAM: UtilizationFull{},
	UtilizationBW:  UtilizationFull{},
}

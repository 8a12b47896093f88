package vm

// AllocationPolicy decides which host a VM should be placed on, and
// releases that placement when the VM is destroyed. It is the single
// extension point a datacenter implementation plugs a concrete placement
// strategy (first-fit, best-fit, round-robin, ...) into; this package
// only defines the contract, per spec.md §6.
type AllocationPolicy interface {
	// Allocate selects a host for candidate and places it there,
	// reporting whether placement succeeded.
	Allocate(candidate Vm) bool

	// Deallocate releases candidate's current host placement.
	Deallocate(candidate Vm)

	// OptimizeAllocation proposes migrations among the currently placed
	// VMs to better balance host load; it returns the empty map when no
	// migrations are proposed, which is always a legal answer.
	OptimizeAllocation(vms []Vm) map[Vm]Host
}

type nullAllocationPolicy struct{}

func (nullAllocationPolicy) Allocate(Vm) bool                        { return false }
func (nullAllocationPolicy) Deallocate(Vm)                           {}
func (nullAllocationPolicy) OptimizeAllocation([]Vm) map[Vm]Host      { return map[Vm]Host{} }

// NullAllocationPolicy is the null-object AllocationPolicy: it never
// places a VM and never proposes a migration, giving callers a safe
// default before a real policy is wired in.
var NullAllocationPolicy AllocationPolicy = nullAllocationPolicy{}

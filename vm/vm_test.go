package vm_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/minucas/cloudcore/vm"
)

func TestNullVmIsSafeToChainWithoutANilCheck(t *testing.T) {
	require.Equal(t, -1, vm.NullVm.ID())
	require.Equal(t, 0, vm.NullVm.Pes())
	require.Equal(t, vm.NullHost, vm.NullVm.Host())
	require.False(t, vm.NullVm.IsInMigration())
}

func TestNullHostRejectsEveryPlacement(t *testing.T) {
	require.False(t, vm.NullHost.IsSuitableForVm(vm.NullVm))
	require.False(t, vm.NullHost.VmCreate(vm.NullVm))
	require.Equal(t, 0.0, vm.NullHost.AvailableMips())
}

func TestNullAllocationPolicyNeverPlacesOrMigrates(t *testing.T) {
	require.False(t, vm.NullAllocationPolicy.Allocate(vm.NullVm))
	require.Empty(t, vm.NullAllocationPolicy.OptimizeAllocation([]vm.Vm{vm.NullVm}))
}

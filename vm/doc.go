// Package vm defines the minimal extension-point contracts the scheduler
// and simulation core are driven through: the shapes of a virtual machine
// and its host, and the policy interface that decides which host a VM is
// placed on. Concrete placement policies, host capacity accounting, and
// VM lifecycle management are out of scope; this package defines only
// what the scheduler core calls into.
package vm

// Package dispatch implements the protocol state machine: the single entry
// point a host calls to construct, act on, and destroy native instances of
// one bound class.
//
// Each call is classified by its first input:
//
//	string                         static action
//	host object, empty slot        construct
//	host object, populated slot    instance action ("delete" destroys)
//
// All persistent state lives in the handle registry; the dispatcher itself
// is stateless across calls. Failures raised by class code never cross the
// boundary unwrapped: they are re-signaled as structured errors under the
// class's identifier namespace.
package dispatch

// Package mexbind implements the object-handle binding protocol that lets a
// scripting host construct, call into, and destroy native class instances
// through a single dispatch entry point.
//
// The host sees each native instance as an opaque numeric token stored in a
// slot on its own object. Every call funnels through one dispatcher, which
// classifies the call (construct, destroy, instance action, static action),
// validates the token against the handle registry, and routes to the bound
// class implementation.
//
// # Architecture Overview
//
// The library is organized into several packages with distinct
// responsibilities:
//
//	mexbind/       Root package with the host object and class contracts
//	├── dispatch/  The protocol state machine: one entry point per class
//	├── registry/  Handle table (tagged slots + free list) and residency lock
//	├── props/     Optional set/get/save/load convenience layer
//	├── errors/    Structured errors with machine-matchable identifiers
//	├── wasmclass/ Class backend calling into a WebAssembly module (wazero)
//	├── examples/  Example class implementations
//	└── cmd/       mexshell interactive driver
//
// # Quick Start
//
// Bind a class and drive it through the dispatcher:
//
//	d := dispatch.New("Counter", func(obj mexbind.HostObject, args []any) (mexbind.Class, error) {
//	    return &counterClass{}, nil
//	})
//
//	obj := mexbind.NewObject("Counter")
//	_, err := d.Dispatch(1, obj)            // construct, token stored in obj
//	out, err := d.Dispatch(1, obj, "next")  // instance action
//	_, err = d.Dispatch(0, obj, "delete")   // destroy
//
// # Call Shapes
//
// The dispatcher accepts four logical call shapes:
//
//	Dispatch(1, obj, ctorArgs...)      construct; token stored into obj
//	Dispatch(0, obj, "delete")         destroy
//	Dispatch(n, obj, "action", args…)  instance action
//	Dispatch(n, "action", args…)       static action, no handle involved
//
// # Error Identifiers
//
// Every failure carries a colon-delimited identifier such as
// "Counter:mex:static:unknownFunction" alongside the human-readable message,
// so callers can pattern-match failures without parsing text. See the errors
// package.
//
// # Thread Safety
//
// The registry is safe for concurrent use. The dispatch protocol itself is
// call-and-return with no state carried between calls; hosts are expected to
// issue calls one at a time.
package mexbind

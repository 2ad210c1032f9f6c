// Package wasmclass adapts a compiled WebAssembly module into a
// dispatchable class: construction instantiates the module, instance
// actions call its exported functions, and destruction closes the instance.
//
// It exists to show the handle protocol fronting genuinely native compiled
// code: the host sees the same token lifecycle whether the class behind the
// dispatcher is pure Go or a wasm binary.
//
//	mod, _ := wasmclass.Load(ctx, "Adder", adderWasm)
//	defer mod.Close(ctx)
//
//	d := dispatch.New("Adder", mod.Constructor())
//	obj := mexbind.NewObject("Adder")
//	d.Dispatch(1, obj)                 // instantiate the module
//	out, _ := d.Dispatch(1, obj, "add", 2, 3)
//	d.Dispatch(0, obj, "delete")       // close the instance
//
// Arguments and results are coerced between host scalars and core wasm
// numeric types (i32, i64, f32, f64). Strings and compound values are out
// of scope here.
package wasmclass

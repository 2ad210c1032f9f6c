package wasmclass

import (
	"context"
	"fmt"

	"github.com/tetratelabs/wazero"
	"github.com/tetratelabs/wazero/api"

	"github.com/wippyai/mexbind"
	"github.com/wippyai/mexbind/errors"
)

// Module is a compiled wasm module bound to a class name. One Module backs
// any number of instances; each constructed handle owns its own
// instantiation.
type Module struct {
	rt       wazero.Runtime
	compiled wazero.CompiledModule
	class    string
}

// Load compiles wasmBytes and binds it to the given class name.
func Load(ctx context.Context, class string, wasmBytes []byte) (*Module, error) {
	rt := wazero.NewRuntime(ctx)
	compiled, err := rt.CompileModule(ctx, wasmBytes)
	if err != nil {
		rt.Close(ctx) //nolint:errcheck
		return nil, fmt.Errorf("compile module for class %s: %w", class, err)
	}
	return &Module{rt: rt, compiled: compiled, class: class}, nil
}

// ClassName returns the bound class name.
func (m *Module) ClassName() string { return m.class }

// Close releases the compiled module and every instance created from it.
func (m *Module) Close(ctx context.Context) error {
	return m.rt.Close(ctx)
}

// Constructor returns a mexbind.Constructor that instantiates the module.
// Construction takes no extra arguments; state lives inside the instance.
func (m *Module) Constructor() mexbind.Constructor {
	return func(obj mexbind.HostObject, args []any) (mexbind.Class, error) {
		if len(args) != 0 {
			return nil, errors.Protocol("invalidConstructorArguments", "wasm class construction takes no extra arguments")
		}
		// Anonymous instantiation so one compiled module can back many
		// live handles.
		mod, err := m.rt.InstantiateModule(context.Background(), m.compiled, wazero.NewModuleConfig().WithName(""))
		if err != nil {
			return nil, fmt.Errorf("instantiate %s: %w", m.class, err)
		}
		return &Instance{mod: mod}, nil
	}
}

// Instance is one live instantiation of the module. It implements
// mexbind.Class, routing each action to the exported function of the same
// name, and registry.Dropper so destruction closes the instance.
type Instance struct {
	mod api.Module
}

// HandleAction implements mexbind.Class.
func (i *Instance) HandleAction(obj mexbind.HostObject, action string, nout int, in []any) ([]any, bool, error) {
	fn := i.mod.ExportedFunction(action)
	if fn == nil {
		return nil, false, nil
	}

	def := fn.Definition()
	params := def.ParamTypes()
	if len(in) != len(params) {
		return nil, true, errors.Protocol(action+":invalidArguments", "%s takes %d arguments, got %d", action, len(params), len(in))
	}
	if nout > len(def.ResultTypes()) {
		return nil, true, errors.Protocol(action+":invalidArguments", "%s returns at most %d values, %d requested", action, len(def.ResultTypes()), nout)
	}

	raw := make([]uint64, len(in))
	for k, v := range in {
		enc, err := encodeValue(v, params[k])
		if err != nil {
			return nil, true, errors.Protocol(action+":invalidArguments", "argument %d: %v", k, err)
		}
		raw[k] = enc
	}

	results, err := fn.Call(context.Background(), raw...)
	if err != nil {
		return nil, true, errors.Execution("wasmTrap", err)
	}

	out := make([]any, len(results))
	for k, r := range results {
		out[k] = decodeValue(r, def.ResultTypes()[k])
	}
	return out, true, nil
}

// Drop implements registry.Dropper.
func (i *Instance) Drop() {
	i.mod.Close(context.Background()) //nolint:errcheck
}

func encodeValue(v any, t api.ValueType) (uint64, error) {
	switch t {
	case api.ValueTypeI32:
		n, err := mexbind.Int(v)
		if err != nil {
			return 0, err
		}
		return api.EncodeI32(int32(n)), nil
	case api.ValueTypeI64:
		n, err := mexbind.Int(v)
		if err != nil {
			return 0, err
		}
		return api.EncodeI64(int64(n)), nil
	case api.ValueTypeF32:
		f, err := mexbind.Float(v)
		if err != nil {
			return 0, err
		}
		return api.EncodeF32(float32(f)), nil
	case api.ValueTypeF64:
		f, err := mexbind.Float(v)
		if err != nil {
			return 0, err
		}
		return api.EncodeF64(f), nil
	}
	return 0, fmt.Errorf("unsupported wasm value type %v", t)
}

func decodeValue(r uint64, t api.ValueType) any {
	switch t {
	case api.ValueTypeI32:
		return int(api.DecodeI32(r))
	case api.ValueTypeI64:
		return int(int64(r))
	case api.ValueTypeF32:
		return float64(api.DecodeF32(r))
	case api.ValueTypeF64:
		return api.DecodeF64(r)
	}
	return r
}

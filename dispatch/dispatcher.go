package dispatch

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/wippyai/mexbind"
	"github.com/wippyai/mexbind/errors"
	"github.com/wippyai/mexbind/registry"
)

// Dispatcher routes every host call targeting one class. Construct it once
// per class and keep it for the life of the compiled module.
type Dispatcher struct {
	ctor   mexbind.Constructor
	static mexbind.StaticFunc
	reg    *registry.Registry
	log    *zap.Logger
	class  string
}

// Option configures a Dispatcher.
type Option func(*Dispatcher)

// WithStatic binds the class's static action handler.
func WithStatic(fn mexbind.StaticFunc) Option {
	return func(d *Dispatcher) { d.static = fn }
}

// WithRegistry uses an existing registry instead of a private one. Several
// dispatchers may share a registry; tags keep their entries apart.
func WithRegistry(reg *registry.Registry) Option {
	return func(d *Dispatcher) { d.reg = reg }
}

// WithResidency subscribes a residency lock to the dispatcher's registry.
func WithResidency(res *registry.Residency) Option {
	return func(d *Dispatcher) { d.reg.Subscribe(res) }
}

// WithLogger sets the dispatcher's logger.
func WithLogger(log *zap.Logger) Option {
	return func(d *Dispatcher) { d.log = log }
}

// New creates a dispatcher for the named class. ctor is invoked for
// construction calls; actions reach the constructed instance's
// HandleAction.
func New(class string, ctor mexbind.Constructor, opts ...Option) *Dispatcher {
	d := &Dispatcher{
		class: class,
		ctor:  ctor,
		reg:   registry.NewRegistry(),
		log:   Logger(),
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Class returns the bound class name.
func (d *Dispatcher) Class() string { return d.class }

// Registry returns the dispatcher's handle registry.
func (d *Dispatcher) Registry() *registry.Registry { return d.reg }

// Dispatch is the single protocol entry point. nout is the number of
// outputs the host requested; in is the ordered input list. It returns the
// ordered outputs or a structured error carrying a non-empty identifier.
func (d *Dispatcher) Dispatch(nout int, in ...any) ([]any, error) {
	if len(in) < 1 {
		return nil, errors.Protocol(d.class+":mex:invalidInput", "needs at least one input argument")
	}

	obj, isObj := in[0].(mexbind.HostObject)
	if !isObj || obj.ClassName() != d.class {
		return d.dispatchStatic(nout, in)
	}

	if obj.Handle() == 0 {
		return d.construct(obj, nout, in[1:])
	}
	return d.instanceAction(obj, nout, in[1:])
}

func (d *Dispatcher) dispatchStatic(nout int, in []any) ([]any, error) {
	action, ok := in[0].(string)
	if !ok {
		return nil, errors.Protocol(d.class+":mex:static:functionUndefined", "static action name not given")
	}

	if d.static == nil {
		return nil, errors.UnknownStatic(d.class, action)
	}

	out, handled, err := d.callStatic(action, nout, in[1:])
	if err != nil {
		return nil, errors.Qualify(d.class, "mex:static", "executionFailed", err)
	}
	if !handled {
		return nil, errors.UnknownStatic(d.class, action)
	}

	d.log.Debug("static action dispatched",
		zap.String("class", d.class),
		zap.String("action", action))
	return out, nil
}

func (d *Dispatcher) construct(obj mexbind.HostObject, nout int, args []any) ([]any, error) {
	if nout > 1 {
		return nil, errors.Protocol(d.class+":tooManyOutputArguments", "only one argument is returned for object construction")
	}

	cls, err := d.callCtor(obj, args)
	if err != nil {
		qe := errors.Qualify(d.class, "mex", "constructorFail", err)
		if qe.Kind == errors.KindExecution {
			qe.Kind = errors.KindConstruction
		}
		return nil, qe
	}

	tok := d.reg.Create(d.class, cls)
	obj.SetHandle(tok)

	d.log.Debug("instance constructed",
		zap.String("class", d.class),
		zap.Uint64("token", uint64(tok)))
	return []any{tok}, nil
}

func (d *Dispatcher) instanceAction(obj mexbind.HostObject, nout int, in []any) ([]any, error) {
	if len(in) < 1 {
		return nil, errors.Protocol(d.class+":missingAction", "second argument (action) is not a string")
	}
	action, ok := in[0].(string)
	if !ok {
		return nil, errors.Protocol(d.class+":missingAction", "second argument (action) is not a string")
	}

	tok := obj.Handle()
	value, err := d.reg.Resolve(tok, d.class)
	if err != nil {
		return nil, err
	}

	if action == mexbind.ActionDelete {
		if _, err := d.reg.Destroy(tok); err != nil {
			return nil, err
		}
		obj.SetHandle(0)
		d.log.Debug("instance destroyed",
			zap.String("class", d.class),
			zap.Uint64("token", uint64(tok)))
		return nil, nil
	}

	cls, ok := value.(mexbind.Class)
	if !ok {
		return nil, errors.InvalidHandle("registry entry does not hold a dispatchable class")
	}

	out, handled, err := d.callAction(cls, obj, action, nout, in[1:])
	if err != nil {
		return nil, errors.Qualify(d.class, "mex", "failedAction", err)
	}
	if !handled {
		return nil, errors.UnknownAction(d.class, action)
	}

	d.log.Debug("instance action dispatched",
		zap.String("class", d.class),
		zap.String("action", action),
		zap.Uint64("token", uint64(tok)))
	return out, nil
}

// callCtor invokes the class constructor, converting panics in class code
// into errors so raw failures never cross the dispatch boundary.
func (d *Dispatcher) callCtor(obj mexbind.HostObject, args []any) (cls mexbind.Class, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("constructor panicked: %v", r)
		}
	}()
	cls, err = d.ctor(obj, args)
	if err == nil && cls == nil {
		err = fmt.Errorf("constructor returned no instance")
	}
	return cls, err
}

func (d *Dispatcher) callAction(cls mexbind.Class, obj mexbind.HostObject, action string, nout int, in []any) (out []any, handled bool, err error) {
	defer func() {
		if r := recover(); r != nil {
			out, handled = nil, true
			err = fmt.Errorf("action %s panicked: %v", action, r)
		}
	}()
	return cls.HandleAction(obj, action, nout, in)
}

func (d *Dispatcher) callStatic(action string, nout int, in []any) (out []any, handled bool, err error) {
	defer func() {
		if r := recover(); r != nil {
			out, handled = nil, true
			err = fmt.Errorf("static action %s panicked: %v", action, r)
		}
	}()
	return d.static(action, nout, in)
}

package mexbind

// Token is the opaque handle value exposed to the host. It denotes exactly
// one registry entry for that entry's lifetime. Token 0 is reserved and
// always invalid; a host object with a zero token has no native instance.
//
// The bit pattern is meaningful only to the registry. Hosts must treat it as
// an inert scalar: identity and equality, never arithmetic.
type Token uint64

// Record is the aggregate value produced by a save action and consumed by
// load: a flat property-name to value mapping.
type Record map[string]any

// HostObject is the host-side instance the dispatcher operates on. The host
// object carries its declared class name and a single opaque slot that
// stores the native instance's token.
type HostObject interface {
	// ClassName returns the host object's declared class name.
	ClassName() string

	// Handle returns the stored token, or 0 when no instance is bound.
	Handle() Token

	// SetHandle stores a token into the object's slot. SetHandle(0) clears it.
	SetHandle(Token)
}

// Object is a ready HostObject implementation for hosts (and tests) that do
// not bring their own object model.
type Object struct {
	class  string
	handle Token
}

// NewObject returns an Object declaring the given class name with an empty
// handle slot.
func NewObject(class string) *Object {
	return &Object{class: class}
}

func (o *Object) ClassName() string { return o.class }

func (o *Object) Handle() Token { return o.handle }

func (o *Object) SetHandle(t Token) { o.handle = t }

// Class is the contract a native class implements to receive instance
// actions from the dispatcher.
//
// HandleAction reports handled=false when it does not recognize the action
// name; the dispatcher then fails the call with an unknown-action error.
// Returning an error marks the action as handled but failed.
type Class interface {
	HandleAction(obj HostObject, action string, nout int, in []any) (out []any, handled bool, err error)
}

// Constructor builds a new native instance for a host object. args are the
// construction call's inputs after the host object itself.
type Constructor func(obj HostObject, args []any) (Class, error)

// StaticFunc handles static actions, which are dispatched without any live
// instance. It reports handled=false for unrecognized action names.
type StaticFunc func(action string, nout int, in []any) (out []any, handled bool, err error)

// ActionDelete is the reserved instance action that destroys the native
// instance and clears the host object's handle slot. A class may not bind
// this name; the dispatcher intercepts it before class dispatch.
const ActionDelete = "delete"

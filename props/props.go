package props

import (
	stderrors "errors"

	"github.com/wippyai/mexbind"
	"github.com/wippyai/mexbind/errors"
)

// Canonical action names handled by this layer.
const (
	ActionSet  = "set"
	ActionGet  = "get"
	ActionSave = "save"
	ActionLoad = "load"
)

// Reserved reports whether action is one of the canonical property actions.
func Reserved(action string) bool {
	switch action {
	case ActionSet, ActionGet, ActionSave, ActionLoad:
		return true
	}
	return false
}

// Properties is the contract the convenience layer dispatches to. Map
// implements it; classes with custom storage implement it directly.
type Properties interface {
	// SetProp validates and stores a property value.
	SetProp(name string, value any) error

	// GetProp returns a property value.
	GetProp(name string) (any, error)

	// SaveProps collects every persisted property into a record.
	SaveProps() (mexbind.Record, error)

	// LoadProps restores properties from a record, applying the same
	// validation as SetProp.
	LoadProps(mexbind.Record) error
}

// Handle dispatches the canonical property actions against p. It reports
// handled=false for any other action name so the caller can continue with
// class-specific handling.
func Handle(p Properties, action string, nout int, in []any) ([]any, bool, error) {
	switch action {
	case ActionSet:
		if nout != 0 || len(in) != 2 {
			return nil, true, errors.Protocol("set:invalidArguments", "set takes a property name and a value and returns nothing")
		}
		name, err := mexbind.String(in[0])
		if err != nil {
			return nil, true, errors.Protocol("set:invalidPropName", "set action's property name must be a string")
		}
		return nil, true, p.SetProp(name, in[1])

	case ActionGet:
		if nout != 1 || len(in) != 1 {
			return nil, true, errors.Protocol("get:invalidArguments", "get takes a property name and returns one value")
		}
		name, err := mexbind.String(in[0])
		if err != nil {
			return nil, true, errors.Protocol("get:invalidPropName", "get action's property name must be a string")
		}
		v, err := p.GetProp(name)
		if err != nil {
			return nil, true, err
		}
		return []any{v}, true, nil

	case ActionSave:
		if nout > 1 || len(in) != 0 {
			return nil, true, errors.Protocol("save:invalidArguments", "save takes no inputs and returns one record")
		}
		rec, err := p.SaveProps()
		if err != nil {
			return nil, true, err
		}
		return []any{rec}, true, nil

	case ActionLoad:
		if nout != 0 || len(in) != 1 {
			return nil, true, errors.Protocol("load:invalidArguments", "load takes one record and returns nothing")
		}
		rec, ok := asRecord(in[0])
		if !ok {
			return nil, true, errors.Protocol("load:invalidArguments", "load input must be a property record")
		}
		return nil, true, p.LoadProps(rec)
	}

	return nil, false, nil
}

func asRecord(v any) (mexbind.Record, bool) {
	switch r := v.(type) {
	case mexbind.Record:
		return r, true
	case map[string]any:
		return mexbind.Record(r), true
	}
	return nil, false
}

// Map is a declarative property table. Properties are defined once with
// getter and setter closures; save and load iterate the declared set in
// definition order.
type Map struct {
	specs map[string]spec
	order []string
}

type spec struct {
	get func() any
	set func(any) error
}

// NewMap creates an empty property table.
func NewMap() *Map {
	return &Map{specs: make(map[string]spec)}
}

// Define declares a property. The setter is responsible for validating the
// incoming value; it runs for both set and load. Redefining a name replaces
// its accessors.
func (m *Map) Define(name string, get func() any, set func(any) error) {
	if _, exists := m.specs[name]; !exists {
		m.order = append(m.order, name)
	}
	m.specs[name] = spec{get: get, set: set}
}

// SetProp implements Properties.
func (m *Map) SetProp(name string, value any) error {
	s, ok := m.specs[name]
	if !ok {
		return errors.InvalidPropertyName(name)
	}
	if err := s.set(value); err != nil {
		var e *errors.Error
		if stderrors.As(err, &e) {
			return err
		}
		return errors.InvalidPropertyValue(name, "%v", err)
	}
	return nil
}

// GetProp implements Properties.
func (m *Map) GetProp(name string) (any, error) {
	s, ok := m.specs[name]
	if !ok {
		return nil, errors.InvalidPropertyName(name)
	}
	return s.get(), nil
}

// SaveProps implements Properties: every declared property lands in the
// record under its own name.
func (m *Map) SaveProps() (mexbind.Record, error) {
	rec := make(mexbind.Record, len(m.order))
	for _, name := range m.order {
		rec[name] = m.specs[name].get()
	}
	return rec, nil
}

// LoadProps implements Properties. Values are applied through the same
// setters as SetProp; the first rejected value aborts the load.
func (m *Map) LoadProps(rec mexbind.Record) error {
	for _, name := range m.order {
		v, ok := rec[name]
		if !ok {
			continue
		}
		if err := m.SetProp(name, v); err != nil {
			return err
		}
	}
	return nil
}

package props

import (
	stderrors "errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/wippyai/mexbind"
	"github.com/wippyai/mexbind/errors"
)

func newTestMap() (*Map, *int, *string) {
	n := 0
	s := ""
	m := NewMap()
	m.Define("N",
		func() any { return n },
		func(v any) error {
			i, err := mexbind.Int(v)
			if err != nil || i < 0 {
				return errors.InvalidPropertyValue("N", "N must be a non-negative integer")
			}
			n = i
			return nil
		})
	m.Define("S",
		func() any { return s },
		func(v any) error {
			str, err := mexbind.String(v)
			if err != nil {
				return errors.InvalidPropertyValue("S", "S must be a string")
			}
			s = str
			return nil
		})
	return m, &n, &s
}

func TestMap_SetGet(t *testing.T) {
	m, n, _ := newTestMap()

	require.NoError(t, m.SetProp("N", 5))
	require.Equal(t, 5, *n)

	v, err := m.GetProp("N")
	require.NoError(t, err)
	require.Equal(t, 5, v)
}

func TestMap_UnknownName(t *testing.T) {
	m, _, _ := newTestMap()

	err := m.SetProp("Bogus", 1)
	require.ErrorIs(t, err, &errors.Error{Kind: errors.KindInvalidProperty})
	var e *errors.Error
	require.ErrorAs(t, err, &e)
	require.Equal(t, "Bogus", e.Property)

	_, err = m.GetProp("Bogus")
	require.ErrorIs(t, err, &errors.Error{Kind: errors.KindInvalidProperty})
}

func TestMap_RejectedValue(t *testing.T) {
	m, n, _ := newTestMap()

	err := m.SetProp("N", -1)
	require.ErrorIs(t, err, &errors.Error{Kind: errors.KindInvalidProperty})
	require.Zero(t, *n, "rejected value must not be stored")
}

func TestMap_PlainSetterErrorIsWrapped(t *testing.T) {
	m := NewMap()
	m.Define("P",
		func() any { return nil },
		func(v any) error { return fmt.Errorf("plain refusal") })

	err := m.SetProp("P", 1)
	require.ErrorIs(t, err, &errors.Error{Kind: errors.KindInvalidProperty})
	var e *errors.Error
	require.ErrorAs(t, err, &e)
	require.Equal(t, "P", e.Property)
}

func TestMap_SaveLoadRoundTrip(t *testing.T) {
	m, n, s := newTestMap()
	require.NoError(t, m.SetProp("N", 7))
	require.NoError(t, m.SetProp("S", "hello"))

	rec, err := m.SaveProps()
	require.NoError(t, err)

	*n = 0
	*s = ""
	require.NoError(t, m.LoadProps(rec))
	require.Equal(t, 7, *n)
	require.Equal(t, "hello", *s)
}

func TestMap_LoadValidates(t *testing.T) {
	m, n, _ := newTestMap()

	err := m.LoadProps(mexbind.Record{"N": -5})
	require.ErrorIs(t, err, &errors.Error{Kind: errors.KindInvalidProperty},
		"load must go through the same validation as set")
	require.Zero(t, *n)
}

func TestMap_LoadIgnoresMissingKeys(t *testing.T) {
	m, n, s := newTestMap()
	require.NoError(t, m.SetProp("S", "keep"))

	require.NoError(t, m.LoadProps(mexbind.Record{"N": 3}))
	require.Equal(t, 3, *n)
	require.Equal(t, "keep", *s)
}

func TestHandle_SetShapes(t *testing.T) {
	m, _, _ := newTestMap()

	tests := []struct {
		name string
		nout int
		in   []any
	}{
		{"too few inputs", 0, []any{"N"}},
		{"too many inputs", 0, []any{"N", 1, 2}},
		{"no inputs", 0, nil},
		{"output requested", 1, []any{"N", 1}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, handled, err := Handle(m, ActionSet, tt.nout, tt.in)
			require.True(t, handled)
			require.ErrorIs(t, err, &errors.Error{Kind: errors.KindProtocol})
		})
	}

	_, handled, err := Handle(m, ActionSet, 0, []any{42, 1})
	require.True(t, handled)
	require.ErrorIs(t, err, &errors.Error{ID: "set:invalidPropName"})
}

func TestHandle_GetShapes(t *testing.T) {
	m, _, _ := newTestMap()

	for _, tt := range []struct {
		name string
		nout int
		in   []any
	}{
		{"no inputs", 1, nil},
		{"extra input", 1, []any{"N", "S"}},
		{"no output requested", 0, []any{"N"}},
		{"two outputs requested", 2, []any{"N"}},
	} {
		t.Run(tt.name, func(t *testing.T) {
			_, handled, err := Handle(m, ActionGet, tt.nout, tt.in)
			require.True(t, handled)
			require.ErrorIs(t, err, &errors.Error{Kind: errors.KindProtocol})
		})
	}

	out, handled, err := Handle(m, ActionGet, 1, []any{"N"})
	require.True(t, handled)
	require.NoError(t, err)
	require.Equal(t, []any{0}, out)
}

func TestHandle_SaveLoad(t *testing.T) {
	m, n, _ := newTestMap()
	require.NoError(t, m.SetProp("N", 4))

	out, handled, err := Handle(m, ActionSave, 1, nil)
	require.True(t, handled)
	require.NoError(t, err)
	require.Len(t, out, 1)
	rec, ok := out[0].(mexbind.Record)
	require.True(t, ok)

	*n = 0
	_, handled, err = Handle(m, ActionLoad, 0, []any{rec})
	require.True(t, handled)
	require.NoError(t, err)
	require.Equal(t, 4, *n)

	// A bare map is accepted too.
	_, _, err = Handle(m, ActionLoad, 0, []any{map[string]any{"N": 9}})
	require.NoError(t, err)
	require.Equal(t, 9, *n)

	_, handled, err = Handle(m, ActionLoad, 0, []any{"not a record"})
	require.True(t, handled)
	require.ErrorIs(t, err, &errors.Error{Kind: errors.KindProtocol})
}

func TestHandle_DeclinesOtherActions(t *testing.T) {
	m, _, _ := newTestMap()

	_, handled, err := Handle(m, "train", 0, nil)
	require.False(t, handled)
	require.NoError(t, err)
}

func TestReserved(t *testing.T) {
	for _, a := range []string{ActionSet, ActionGet, ActionSave, ActionLoad} {
		require.True(t, Reserved(a))
	}
	require.False(t, Reserved("train"))
	require.False(t, Reserved("delete"))
}

func TestMap_ErrorsAsSupport(t *testing.T) {
	// Structured property errors survive errors.As through the standard
	// library.
	m, _, _ := newTestMap()
	_, err := m.GetProp("missing")
	var e *errors.Error
	require.True(t, stderrors.As(err, &e))
	require.Equal(t, "invalidPropertyName", e.ID)
}

package errors

import (
	stderrors "errors"
	"strings"
	"testing"
)

func TestError_Message(t *testing.T) {
	e := &Error{ID: "Demo:mex:failedAction", Kind: KindExecution, Detail: "it broke"}
	msg := e.Error()
	if !strings.Contains(msg, "Demo:mex:failedAction") || !strings.Contains(msg, "it broke") {
		t.Fatalf("unexpected message: %q", msg)
	}
}

func TestError_CauseChain(t *testing.T) {
	cause := stderrors.New("root cause")
	e := Execution("sub", cause)

	if !stderrors.Is(e, cause) {
		t.Fatal("cause not reachable through Unwrap")
	}
	if !strings.Contains(e.Error(), "root cause") {
		t.Fatalf("cause missing from message: %q", e.Error())
	}
}

func TestError_IsMatchesKind(t *testing.T) {
	e := InvalidHandle("stale")

	if !stderrors.Is(e, &Error{Kind: KindInvalidHandle}) {
		t.Fatal("kind match failed")
	}
	if stderrors.Is(e, &Error{Kind: KindProtocol}) {
		t.Fatal("kind mismatch matched")
	}
	if stderrors.Is(e, &Error{}) {
		t.Fatal("empty target must not match everything")
	}
}

func TestError_IsMatchesID(t *testing.T) {
	e := Protocol("Demo:missingAction", "no action")

	if !stderrors.Is(e, &Error{ID: "Demo:missingAction"}) {
		t.Fatal("identifier match failed")
	}
	if stderrors.Is(e, &Error{ID: "Demo:unknownAction"}) {
		t.Fatal("identifier mismatch matched")
	}
}

func TestNormalizeID(t *testing.T) {
	if got := NormalizeID("a.b.c"); got != "a:b:c" {
		t.Fatalf("expected a:b:c, got %s", got)
	}
	if got := NormalizeID("already:clean"); got != "already:clean" {
		t.Fatalf("expected unchanged identifier, got %s", got)
	}
}

func TestIdentifier_FallbackNeverEmpty(t *testing.T) {
	e := &Error{Kind: KindExecution, Detail: "anonymous failure"}
	if e.Identifier() == "" {
		t.Fatal("identifier-less error surfaced bare")
	}
}

func TestQualify(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		wantID   string
		wantKind Kind
	}{
		{
			name:     "plain error gets fallback",
			err:      stderrors.New("boom"),
			wantID:   "Demo:mex:failedAction",
			wantKind: KindExecution,
		},
		{
			name:     "structured sub-identifier is re-rooted",
			err:      Execution("valve:stuck", nil),
			wantID:   "Demo:mex:valve:stuck",
			wantKind: KindExecution,
		},
		{
			name:     "dots in sub-identifier are normalized",
			err:      &Error{ID: "valve.stuck", Kind: KindExecution},
			wantID:   "Demo:mex:valve:stuck",
			wantKind: KindExecution,
		},
		{
			name:     "identifier-less structured error gets fallback",
			err:      &Error{Kind: KindInvalidProperty, Detail: "bad value"},
			wantID:   "Demo:mex:failedAction",
			wantKind: KindInvalidProperty,
		},
		{
			name:     "inner kind survives qualification",
			err:      InvalidPropertyValue("VarA", "out of range"),
			wantID:   "Demo:mex:invalidPropertyValue",
			wantKind: KindInvalidProperty,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			q := Qualify("Demo", "mex", "failedAction", tt.err)
			if q.ID != tt.wantID {
				t.Fatalf("expected identifier %q, got %q", tt.wantID, q.ID)
			}
			if q.Kind != tt.wantKind {
				t.Fatalf("expected kind %s, got %s", tt.wantKind, q.Kind)
			}
		})
	}
}

func TestQualify_PreservesMessageAndProperty(t *testing.T) {
	inner := InvalidPropertyValue("VarA", "must be between -10 and 10")
	q := Qualify("Demo", "mex", "failedAction", inner)

	if q.Property != "VarA" {
		t.Fatalf("property name lost: %q", q.Property)
	}
	if q.Detail != inner.Detail {
		t.Fatalf("detail lost: %q", q.Detail)
	}
}

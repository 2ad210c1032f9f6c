package registry

import (
	"testing"

	"github.com/wippyai/mexbind"
)

func TestResidency_Accounting(t *testing.T) {
	reg := NewRegistry()
	res := &Residency{}
	reg.Subscribe(res)

	const n = 5
	toks := make([]mexbind.Token, 0, n)
	for i := 0; i < n; i++ {
		toks = append(toks, reg.Create("Counter", i))
	}
	if res.Count() != n {
		t.Fatalf("expected count %d after %d creates, got %d", n, n, res.Count())
	}

	const m = 3
	for i := 0; i < m; i++ {
		if _, err := reg.Destroy(toks[i]); err != nil {
			t.Fatalf("Destroy failed: %v", err)
		}
	}
	if res.Count() != n-m {
		t.Fatalf("expected count %d, got %d", n-m, res.Count())
	}
}

func TestResidency_NeverNegative(t *testing.T) {
	res := &Residency{}
	res.Release()
	res.Release()

	if res.Count() != 0 {
		t.Fatalf("count went negative: %d", res.Count())
	}
	if res.Faults() != 2 {
		t.Fatalf("expected 2 recorded faults, got %d", res.Faults())
	}
}

func TestResidency_FailedDestroyDoesNotRelease(t *testing.T) {
	reg := NewRegistry()
	res := &Residency{}
	reg.Subscribe(res)

	tok := reg.Create("Counter", 1)
	if _, err := reg.Destroy(tok); err != nil {
		t.Fatalf("Destroy failed: %v", err)
	}
	reg.Destroy(tok) //nolint:errcheck // double destroy must not touch the count

	if res.Count() != 0 {
		t.Fatalf("expected count 0, got %d", res.Count())
	}
	if res.Faults() != 0 {
		t.Fatalf("failed destroy must not reach the residency lock, faults=%d", res.Faults())
	}
}

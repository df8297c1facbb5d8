package kvstore

import (
	"context"
	"testing"
)

func TestMemoryRoundTrip(t *testing.T) {
	m := NewMemory()
	ctx := context.Background()

	if _, ok, err := m.Get(ctx, "missing"); ok || err != nil {
		t.Fatalf("missing key: ok=%v err=%v", ok, err)
	}

	if err := m.Set(ctx, "k", []byte(`{"a":1}`)); err != nil {
		t.Fatal(err)
	}
	val, ok, err := m.Get(ctx, "k")
	if err != nil || !ok {
		t.Fatalf("get after set: ok=%v err=%v", ok, err)
	}
	if string(val) != `{"a":1}` {
		t.Errorf("unexpected value %q", val)
	}

	// Last writer wins.
	if err := m.Set(ctx, "k", []byte(`{"a":2}`)); err != nil {
		t.Fatal(err)
	}
	val, _, _ = m.Get(ctx, "k")
	if string(val) != `{"a":2}` {
		t.Errorf("expected overwrite, got %q", val)
	}

	if err := m.Delete(ctx, "k"); err != nil {
		t.Fatal(err)
	}
	if _, ok, _ := m.Get(ctx, "k"); ok {
		t.Error("expected key to be gone")
	}
	if m.Len() != 0 {
		t.Errorf("expected empty store, len=%d", m.Len())
	}
}

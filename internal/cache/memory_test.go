package cache

import (
	"context"
	"testing"
	"time"
)

func TestMemoryCacheRoundTrip(t *testing.T) {
	ctx := context.Background()
	c := NewMemory()

	if err := c.SetWithTTL(ctx, "k1", []byte(`{"a":1}`), time.Hour); err != nil {
		t.Fatalf("SetWithTTL: %v", err)
	}

	val, found, err := c.Get(ctx, "k1")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if !found {
		t.Fatal("expected k1 to be present")
	}
	if string(val) != `{"a":1}` {
		t.Fatalf("Get returned %q", val)
	}

	if err := c.Delete(ctx, "k1"); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if _, found, _ := c.Get(ctx, "k1"); found {
		t.Fatal("expected k1 to be gone after delete")
	}
}

func TestMemoryCacheMissingKey(t *testing.T) {
	c := NewMemory()
	val, found, err := c.Get(context.Background(), "nope")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if found || val != nil {
		t.Fatalf("expected absent key, got found=%v val=%q", found, val)
	}
}

func TestMemoryCacheTTLExpiry(t *testing.T) {
	ctx := context.Background()
	c := NewMemory()

	if err := c.SetWithTTL(ctx, "short", []byte("v"), 10*time.Millisecond); err != nil {
		t.Fatalf("SetWithTTL: %v", err)
	}
	time.Sleep(30 * time.Millisecond)
	if _, found, _ := c.Get(ctx, "short"); found {
		t.Fatal("expected entry to expire")
	}
}

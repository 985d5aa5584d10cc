package cache

import (
	"context"
	"testing"
	"time"
)

func TestFileCacheRoundTrip(t *testing.T) {
	ctx := context.Background()
	c, err := NewFileCache(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	defer c.Close()

	if _, found, err := c.Get(ctx, "missing"); found || err != nil {
		t.Errorf("Get(missing) = %v, %v", found, err)
	}

	if err := c.Set(ctx, "k", []byte("payload"), 0); err != nil {
		t.Fatalf("Set: %v", err)
	}
	data, found, err := c.Get(ctx, "k")
	if err != nil || !found || string(data) != "payload" {
		t.Errorf("Get = %q, %v, %v", data, found, err)
	}

	if err := c.Delete(ctx, "k"); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if _, found, _ := c.Get(ctx, "k"); found {
		t.Error("value survived Delete")
	}
}

func TestFileCacheExpiry(t *testing.T) {
	ctx := context.Background()
	c, err := NewFileCache(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	defer c.Close()

	if err := c.Set(ctx, "k", []byte("v"), time.Nanosecond); err != nil {
		t.Fatal(err)
	}
	time.Sleep(5 * time.Millisecond)

	if _, found, _ := c.Get(ctx, "k"); found {
		t.Error("expired entry still served")
	}
}

func TestFileCacheDeleteMissingIsNil(t *testing.T) {
	c, err := NewFileCache(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	if err := c.Delete(context.Background(), "never-set"); err != nil {
		t.Errorf("Delete(missing) = %v", err)
	}
}

func TestNullCache(t *testing.T) {
	ctx := context.Background()
	c := NewNullCache()

	if err := c.Set(ctx, "k", []byte("v"), 0); err != nil {
		t.Fatal(err)
	}
	if _, found, _ := c.Get(ctx, "k"); found {
		t.Error("null cache stored a value")
	}
}

func TestKeys(t *testing.T) {
	h := Hash([]byte(`{"components":[]}`))
	if len(h) != 64 {
		t.Fatalf("hash length = %d", len(h))
	}
	if RenderKey(h, "svg") != "render:svg:"+h {
		t.Errorf("RenderKey = %q", RenderKey(h, "svg"))
	}
	if ReportKey(h) != "report:"+h {
		t.Errorf("ReportKey = %q", ReportKey(h))
	}
	if Hash([]byte("a")) == Hash([]byte("b")) {
		t.Error("distinct inputs hashed equal")
	}
}

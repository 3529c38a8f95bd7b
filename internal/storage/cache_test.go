package storage

import (
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
)

func newTestCache(t *testing.T) *Cache {
	t.Helper()
	c, err := NewCache(16)
	if err != nil {
		t.Fatalf("NewCache: %v", err)
	}
	t.Cleanup(func() { c.Close() })
	return c
}

func TestCache(t *testing.T) {
	c := newTestCache(t)

	t.Run("Miss", func(t *testing.T) {
		_, found, err := c.Get(0xdeadbeef, 3)
		if err != nil {
			t.Fatal(err)
		}
		if found {
			t.Error("expected miss on empty cache")
		}
	})

	want := Entry{Move: "e2e4", Score: 1, Depth: 3, Nodes: 9322}

	t.Run("PutGet", func(t *testing.T) {
		if err := c.Put(0xdeadbeef, 3, want); err != nil {
			t.Fatal(err)
		}
		got, found, err := c.Get(0xdeadbeef, 3)
		if err != nil {
			t.Fatal(err)
		}
		if !found {
			t.Fatal("expected hit after Put")
		}
		if diff := cmp.Diff(want, got, cmpopts.IgnoreFields(Entry{}, "StoredAt")); diff != "" {
			t.Errorf("entry mismatch (-want +got):\n%s", diff)
		}
		if time.Since(got.StoredAt) > time.Minute {
			t.Errorf("StoredAt = %v, want recent", got.StoredAt)
		}
	})

	t.Run("DepthIsPartOfKey", func(t *testing.T) {
		if _, found, _ := c.Get(0xdeadbeef, 2); found {
			t.Error("depth 2 should not hit a depth 3 entry")
		}
	})

	t.Run("Stats", func(t *testing.T) {
		st := c.Stats()
		if st.Hits != 1 || st.Misses != 2 || st.Writes != 1 {
			t.Errorf("Stats() = %+v, want 1 hit, 2 misses, 1 write", st)
		}
	})

	t.Run("Clear", func(t *testing.T) {
		if err := c.Clear(); err != nil {
			t.Fatal(err)
		}
		if _, found, _ := c.Get(0xdeadbeef, 3); found {
			t.Error("entry survived Clear")
		}
	})
}

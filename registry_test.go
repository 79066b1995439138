package pixwin_test

import (
	"errors"
	"sync"
	"testing"

	"github.com/go-theft-auto/pixwin"
)

// walk returns the values reachable from Front via Next, checking Prev links.
func walk(t *testing.T, r *pixwin.Registry[string, int]) []int {
	t.Helper()
	var out []int
	prev := pixwin.InvalidHandle
	for h := r.Front(); h != pixwin.InvalidHandle; h = r.Next(h) {
		if got := r.Prev(h); got != prev {
			t.Fatalf("Prev(%d) = %d, want %d", h, got, prev)
		}
		v, ok := r.Get(h)
		if !ok {
			t.Fatalf("Get(%d) failed while walking", h)
		}
		out = append(out, v)
		prev = h
	}
	if prev != r.Back() {
		t.Fatalf("walk ended at %d, Back() = %d", prev, r.Back())
	}
	return out
}

func equalInts(a, b []int) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func TestRegistryEmpty(t *testing.T) {
	r := pixwin.NewRegistry[string, int]()

	if r.Len() != 0 {
		t.Errorf("expected empty registry, got %d", r.Len())
	}
	if r.Front() != pixwin.InvalidHandle || r.Back() != pixwin.InvalidHandle {
		t.Error("empty registry should have no front or back")
	}
	if len(r.Handles()) != 0 {
		t.Error("expected no handles")
	}
	if _, ok := r.Get(pixwin.InvalidHandle); ok {
		t.Error("InvalidHandle must never resolve")
	}
}

func TestRegistrySingle(t *testing.T) {
	r := pixwin.NewRegistry[string, int]()
	h, err := r.Insert("a", 1)
	if err != nil {
		t.Fatal(err)
	}

	if r.Front() != h || r.Back() != h {
		t.Error("single entry should be both front and back")
	}
	if r.Next(h) != pixwin.InvalidHandle || r.Prev(h) != pixwin.InvalidHandle {
		t.Error("single entry should have no neighbours")
	}

	got, v, ok := r.Lookup("a")
	if !ok || got != h || v != 1 {
		t.Errorf("Lookup(a) = %d, %d, %v", got, v, ok)
	}
}

func TestRegistryRemoval(t *testing.T) {
	tests := []struct {
		name   string
		remove []int // insertion indices to remove
		want   []int
	}{
		{"head", []int{0}, []int{20, 30, 40}},
		{"middle", []int{1}, []int{10, 30, 40}},
		{"tail", []int{3}, []int{10, 20, 30}},
		{"head and tail", []int{0, 3}, []int{20, 30}},
		{"all", []int{2, 0, 3, 1}, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := pixwin.NewRegistry[string, int]()
			keys := []string{"a", "b", "c", "d"}
			handles := make([]pixwin.Handle, len(keys))
			for i, k := range keys {
				h, err := r.Insert(k, (i+1)*10)
				if err != nil {
					t.Fatal(err)
				}
				handles[i] = h
			}

			for _, i := range tt.remove {
				v, ok := r.Remove(handles[i])
				if !ok || v != (i+1)*10 {
					t.Fatalf("Remove(%s) = %d, %v", keys[i], v, ok)
				}
			}

			if got := walk(t, r); !equalInts(got, tt.want) {
				t.Errorf("expected %v, got %v", tt.want, got)
			}
			if r.Len() != len(tt.want) {
				t.Errorf("expected Len %d, got %d", len(tt.want), r.Len())
			}
			for _, i := range tt.remove {
				if _, _, ok := r.Lookup(keys[i]); ok {
					t.Errorf("removed key %s still resolves", keys[i])
				}
			}
		})
	}
}

func TestRegistryStaleHandles(t *testing.T) {
	r := pixwin.NewRegistry[string, int]()
	a, _ := r.Insert("a", 1)
	r.Remove(a)

	if _, ok := r.Get(a); ok {
		t.Error("removed handle must not resolve")
	}
	if _, ok := r.Remove(a); ok {
		t.Error("double remove must report false")
	}
	if r.Next(a) != pixwin.InvalidHandle || r.Prev(a) != pixwin.InvalidHandle {
		t.Error("stale handles have no neighbours")
	}

	// The freed slot is reused under a new generation.
	b, _ := r.Insert("b", 2)
	if b == a {
		t.Fatal("reused slot issued an identical handle")
	}
	if _, ok := r.Get(a); ok {
		t.Error("stale handle resolved after slot reuse")
	}
	if v, ok := r.Get(b); !ok || v != 2 {
		t.Errorf("Get(b) = %d, %v", v, ok)
	}

	if _, ok := r.Get(pixwin.Handle(1 << 40)); ok {
		t.Error("foreign handle resolved")
	}
}

func TestRegistryDuplicateKey(t *testing.T) {
	r := pixwin.NewRegistry[string, int]()
	h, _ := r.Insert("a", 1)

	if _, err := r.Insert("a", 2); !errors.Is(err, pixwin.ErrDuplicateKey) {
		t.Fatalf("expected ErrDuplicateKey, got %v", err)
	}
	if v, _ := r.Get(h); v != 1 {
		t.Error("duplicate insert must not overwrite")
	}

	r.Remove(h)
	if _, err := r.Insert("a", 3); err != nil {
		t.Errorf("key should be reusable after removal: %v", err)
	}
}

func TestRegistryInsertionOrder(t *testing.T) {
	r := pixwin.NewRegistry[string, int]()
	a, _ := r.Insert("a", 1)
	r.Insert("b", 2)
	r.Remove(a)
	r.Insert("c", 3)
	r.Insert("a", 4)

	if got := walk(t, r); !equalInts(got, []int{2, 3, 4}) {
		t.Errorf("expected [2 3 4], got %v", got)
	}
	if hs := r.Handles(); len(hs) != 3 || hs[0] != r.Front() || hs[2] != r.Back() {
		t.Errorf("Handles() disagrees with Front/Back: %v", hs)
	}
}

func TestRegistryConcurrentReads(t *testing.T) {
	r := pixwin.NewRegistry[int, int]()
	handles := make([]pixwin.Handle, 100)
	for i := range handles {
		handles[i], _ = r.Insert(i, i)
	}

	var wg sync.WaitGroup
	for g := 0; g < 8; g++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i, h := range handles {
				if v, ok := r.Get(h); !ok || v != i {
					t.Errorf("Get(%d) = %d, %v", h, v, ok)
				}
				r.Lookup(i)
				r.Len()
			}
		}()
	}
	wg.Wait()
}

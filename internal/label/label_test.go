package label

import (
	"sync"
	"testing"
)

func TestName(t *testing.T) {
	tests := []struct {
		index int
		role  Role
		want  string
	}{
		{0, Arg1, "call0_arg1"},
		{0, Arg2, "call0_arg2"},
		{0, Exp, "call0_exp"},
		{0, Start, "call0_start"},
		{0, End, "call0_end"},
		{42, Exp, "call42_exp"},
		{100000, Start, "call100000_start"},
	}
	for _, tt := range tests {
		if got := Name(tt.index, tt.role); got != tt.want {
			t.Errorf("Name(%d, %s) = %q, want %q", tt.index, tt.role, got, tt.want)
		}
	}
}

func TestName_Unique(t *testing.T) {
	seen := make(map[string]string)
	roles := []Role{Arg1, Arg2, Exp, Start, End}
	for i := 0; i < 2000; i++ {
		for _, r := range roles {
			n := Name(i, r)
			key := Set{Index: i}.Name(r)
			if n != key {
				t.Fatalf("Set.Name disagrees with Name: %q vs %q", key, n)
			}
			if prev, dup := seen[n]; dup {
				t.Fatalf("duplicate label %q (first from %s)", n, prev)
			}
			seen[n] = r.String()
		}
	}
}

func TestRole_StringOutOfRange(t *testing.T) {
	if got := Role(9).String(); got != "Role(9)" {
		t.Errorf("Role(9).String() = %q", got)
	}
}

func TestSetNames(t *testing.T) {
	s := Set{Index: 7}
	mono := s.Names(false)
	if len(mono) != 4 {
		t.Fatalf("monadic names = %v, want 4 entries", mono)
	}
	for _, n := range mono {
		if n == "call7_arg1" {
			t.Errorf("monadic set contains %q", n)
		}
	}
	dy := s.Names(true)
	if len(dy) != 5 || dy[0] != "call7_arg1" {
		t.Errorf("dyadic names = %v", dy)
	}
}

// ============================================================================
// Allocator Tests
// ============================================================================

func TestAllocator_Sequence(t *testing.T) {
	var a Allocator
	for want := 0; want < 500; want++ {
		if got := a.Next().Index; got != want {
			t.Fatalf("Next() = %d, want %d", got, want)
		}
	}
	if a.Issued() != 500 {
		t.Errorf("Issued() = %d, want 500", a.Issued())
	}
}

func TestAllocator_Independent(t *testing.T) {
	var a, b Allocator
	a.Next()
	a.Next()
	if got := b.Next().Index; got != 0 {
		t.Errorf("second allocator started at %d, want 0", got)
	}
	if got := a.Next().Index; got != 2 {
		t.Errorf("first allocator disturbed: got %d, want 2", got)
	}
}

func TestAllocator_Concurrent(t *testing.T) {
	var a Allocator
	const workers, per = 8, 250
	results := make(chan int, workers*per)
	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := 0; i < per; i++ {
				results <- a.Next().Index
			}
		}()
	}
	wg.Wait()
	close(results)

	seen := make([]bool, workers*per)
	for idx := range results {
		if idx < 0 || idx >= len(seen) {
			t.Fatalf("index %d out of range", idx)
		}
		if seen[idx] {
			t.Fatalf("index %d issued twice", idx)
		}
		seen[idx] = true
	}
	for i, ok := range seen {
		if !ok {
			t.Errorf("index %d never issued", i)
		}
	}
}

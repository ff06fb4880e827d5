package logsbloom

import (
	"fmt"
	"sync"
	"testing"
)

func TestKeccak256Vectors(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"", "0xc5d2460186f7233c927e7db2dcc703c0e500b653ca82273b7bfad8045d85a470"},
		{"abc", "0x4e03657aea45a94fc7d47ba826c8d667c0d1e6e33a64a036ec44f58fa12d6c45"},
	}

	for _, tt := range tests {
		if got := Keccak256([]byte(tt.input)).Hex(); got != tt.want {
			t.Errorf("Keccak256(%q) = %s, want %s", tt.input, got, tt.want)
		}
	}
}

func TestKeccak256PoolReuse(t *testing.T) {
	// Consecutive calls must not leak sponge state into each other.
	first := Keccak256([]byte("abc"))
	Keccak256([]byte("some other input that is absorbed in between"))
	if Keccak256([]byte("abc")) != first {
		t.Error("pooled hasher state leaked between calls")
	}
}

func TestKeccak256Concurrent(t *testing.T) {
	want := make([]Digest, 100)
	for i := range want {
		want[i] = Keccak256(fmt.Appendf(nil, "item-%d", i))
	}

	const numGoroutines = 8
	var wg sync.WaitGroup
	wg.Add(numGoroutines)
	var mu sync.Mutex
	var mismatches int

	for range numGoroutines {
		go func() {
			defer wg.Done()
			for i := range want {
				if Keccak256(fmt.Appendf(nil, "item-%d", i)) != want[i] {
					mu.Lock()
					mismatches++
					mu.Unlock()
				}
			}
		}()
	}

	wg.Wait()
	if mismatches > 0 {
		t.Errorf("%d digests differed under concurrency", mismatches)
	}
}

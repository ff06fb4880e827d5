package logsbloom

import (
	"fmt"
	"sync"
	"testing"
)

func TestAtomicBloomBasic(t *testing.T) {
	f := NewAtomic()

	f.Add([]byte("hello"))
	f.Add([]byte("world"))
	f.Add(nil)

	if !f.Test([]byte("hello")) {
		t.Error("expected hello to be present")
	}
	if !f.Test([]byte("world")) {
		t.Error("expected world to be present")
	}
	if f.Test(nil) {
		t.Error("Test(nil) should be false")
	}
}

func TestAtomicBloomMatchesBloom(t *testing.T) {
	f := NewAtomic()
	b := New()
	for i := range 200 {
		key := fmt.Appendf(nil, "item-%d", i)
		f.Add(key)
		b.Add(key)
	}

	snap := f.Snapshot()
	if !snap.Equal(b) {
		t.Error("AtomicBloom and Bloom disagree on the same inserts")
	}
	if f.OnesCount() != b.OnesCount() {
		t.Errorf("OnesCount = %d, want %d", f.OnesCount(), b.OnesCount())
	}
}

func TestAtomicBloomSnapshotIsCopy(t *testing.T) {
	f := NewAtomic()
	f.Add(usdtAddress)

	snap := f.Snapshot()
	snap.Add(transferTopic)
	if f.Test(transferTopic) {
		t.Error("writing to a snapshot modified the AtomicBloom")
	}
	if f.OnesCount() != 3 {
		t.Errorf("OnesCount = %d, want 3", f.OnesCount())
	}
}

func TestAtomicBloomMerge(t *testing.T) {
	a := New()
	a.Add(usdtAddress)
	c := New()
	c.Add(transferTopic)

	f := NewAtomic()
	f.Merge(a)
	f.Merge(c)
	f.Merge(nil)
	f.Merge(&Bloom{})

	a.Or(c)
	if !f.Snapshot().Equal(a) {
		t.Error("Merge did not produce the union")
	}
}

func TestAtomicBloomConcurrent(t *testing.T) {
	f := NewAtomic()

	const numGoroutines = 8
	const itemsPerGoroutine = 100

	var wg sync.WaitGroup
	wg.Add(numGoroutines)

	for g := range numGoroutines {
		go func(goroutineID int) {
			defer wg.Done()
			local := New()
			for i := range itemsPerGoroutine {
				key := fmt.Appendf(nil, "g%d-item-%d", goroutineID, i)
				f.Add(key)
				local.Add(key)
			}
			f.Merge(local)
		}(g)
	}

	wg.Wait()

	// Verify all items are present
	var missing int
	for g := range numGoroutines {
		for i := range itemsPerGoroutine {
			if !f.Test(fmt.Appendf(nil, "g%d-item-%d", g, i)) {
				missing++
			}
		}
	}
	if missing > 0 {
		t.Errorf("expected all items to be present, but %d were missing", missing)
	}
}

func TestAtomicBloomConcurrentMixed(t *testing.T) {
	f := NewAtomic()

	// Pre-populate with some items
	for i := range 100 {
		f.Add(fmt.Appendf(nil, "prepop-%d", i))
	}

	const numGoroutines = 4
	var wg sync.WaitGroup
	wg.Add(numGoroutines * 2) // writers and readers

	// Writers
	for g := range numGoroutines {
		go func(goroutineID int) {
			defer wg.Done()
			for i := range 500 {
				f.Add(fmt.Appendf(nil, "write-g%d-%d", goroutineID, i))
			}
		}(g)
	}

	// Readers
	for range numGoroutines {
		go func() {
			defer wg.Done()
			for i := range 500 {
				f.Test(fmt.Appendf(nil, "prepop-%d", i%100))
				_ = f.Snapshot()
			}
		}()
	}

	wg.Wait()

	// Verify prepopulated items are still present
	for i := range 100 {
		if !f.Test(fmt.Appendf(nil, "prepop-%d", i)) {
			t.Errorf("prepopulated item %d missing", i)
		}
	}
}

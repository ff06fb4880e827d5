package logsbloom_test

import (
	"fmt"
	"sync"

	"github.com/jcalabro/logsbloom"
)

var (
	usdt     = mustDecode("0xdac17f958d2ee523a2206206994597c13d831ec7")
	usdc     = mustDecode("0xa0b86991c6218b36c1d19d4a2e9eb0ce3606eb48")
	transfer = mustDecode("0xddf252ad1be2c89b69c2b068fc378daa952ba7f163c4a11628f55a4df523b3ef")
)

func mustDecode(s string) []byte {
	b, err := logsbloom.DecodeHex(s)
	if err != nil {
		panic(err)
	}
	return b
}

// This example builds the logsBloom of a single ERC-20 Transfer log.
func Example() {
	b := logsbloom.New()

	// A log contributes its address and each of its topics
	b.Add(usdt)
	b.Add(transfer)

	fmt.Println("usdt:", b.Test(usdt))
	fmt.Println("transfer:", b.Test(transfer))
	fmt.Println("usdc:", b.Test(usdc))
	fmt.Println("bits set:", b.OnesCount())
	fmt.Println("positions:", b.SetBits())

	// Output:
	// usdt: true
	// transfer: true
	// usdc: false
	// bits set: 6
	// positions: [375 604 987 1259 1368 1566]
}

// This example shows the bit positions an item maps to.
func ExampleBitPositions() {
	d := logsbloom.Keccak256([]byte{})
	fmt.Println(d.Hex())
	fmt.Println(logsbloom.BitPositions(d))

	// Output:
	// 0xc5d2460186f7233c927e7db2dcc703c0e500b653ca82273b7bfad8045d85a470
	// [557 510 264]
}

// This example decodes a logsBloom taken from a block header and queries it.
func ExampleFromHex() {
	src := logsbloom.New()
	src.Add(usdt)
	header := src.Hex()

	b, err := logsbloom.FromHex(header)
	if err != nil {
		panic(err)
	}
	fmt.Println("usdt:", b.Test(usdt))
	fmt.Println("transfer:", b.Test(transfer))

	_, err = logsbloom.FromHex("0x1234")
	fmt.Println(err)

	// Output:
	// usdt: true
	// transfer: false
	// logsbloom: invalid buffer length: got 2 bytes, want 256
}

// This example combines receipt filters into a block filter.
func ExampleBloom_Or() {
	receipt1 := logsbloom.New()
	receipt1.Add(usdt)

	receipt2 := logsbloom.New()
	receipt2.Add(transfer)

	var block logsbloom.Bloom
	block.Or(receipt1)
	block.Or(receipt2)

	fmt.Println("usdt:", block.Test(usdt))
	fmt.Println("transfer:", block.Test(transfer))
	fmt.Println("bits set:", block.OnesCount())

	// Output:
	// usdt: true
	// transfer: true
	// bits set: 6
}

// This example demonstrates using AtomicBloom for concurrent access.
func ExampleAtomicBloom() {
	f := logsbloom.NewAtomic()

	var wg sync.WaitGroup

	// Spawn multiple writers
	for i := range 4 {
		wg.Add(1)
		go func(id int) {
			defer wg.Done()
			for j := range 100 {
				f.Add(fmt.Appendf(nil, "worker-%d-item-%d", id, j))
			}
		}(i)
	}

	wg.Wait()
	fmt.Println("worker-2-item-42:", f.Test([]byte("worker-2-item-42")))
	fmt.Println("bits set:", f.OnesCount())

	// Output:
	// worker-2-item-42: true
	// bits set: 913
}

// This example memoizes digests for inputs that repeat across logs.
func ExampleDigestCache() {
	cache, err := logsbloom.NewDigestCache(1024, 4)
	if err != nil {
		panic(err)
	}

	cached := logsbloom.NewWithHasher(cache.Sum)
	plain := logsbloom.New()
	for range 10 {
		cached.Add(usdt)
		cached.Add(transfer)
		plain.Add(usdt)
		plain.Add(transfer)
	}

	fmt.Println("identical:", cached.Equal(plain))
	fmt.Println("cached digests:", cache.Len())

	// Output:
	// identical: true
	// cached digests: 2
}

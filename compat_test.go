package logsbloom

import (
	"bytes"
	"fmt"
	"testing"

	"github.com/ethereum/go-ethereum/core/types"
	"pgregory.net/rapid"
)

// go-ethereum's header bloom is the reference encoding for logsBloom.

func TestGethBloomKnownLog(t *testing.T) {
	var want types.Bloom
	want.Add(usdtAddress)
	want.Add(transferTopic)

	b := New()
	b.Add(usdtAddress)
	b.Add(transferTopic)

	if !bytes.Equal(b.Bytes(), want.Bytes()) {
		t.Errorf("bytes differ from go-ethereum:\n got  %x\n want %x", b.Bytes(), want.Bytes())
	}
}

func TestGethBloomReadsOurBytes(t *testing.T) {
	b := New()
	for i := range 64 {
		b.Add(fmt.Appendf(nil, "item-%d", i))
	}

	gb := types.BytesToBloom(b.Bytes())
	for i := range 64 {
		if !gb.Test(fmt.Appendf(nil, "item-%d", i)) {
			t.Errorf("go-ethereum lookup missed item-%d", i)
		}
	}
}

func TestPropertyMatchesGeth(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		var gb types.Bloom
		b := New()
		for _, it := range drawItems(t, "items") {
			gb.Add(it)
			b.Add(it)
		}
		if !bytes.Equal(b.Bytes(), gb.Bytes()) {
			t.Fatalf("bytes differ from go-ethereum")
		}

		probe := drawData(t, "probe")
		if b.Test(probe) != gb.Test(probe) {
			t.Fatalf("Test(%x) disagrees with go-ethereum", probe)
		}
	})
}

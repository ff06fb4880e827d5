package main

import (
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/jcalabro/logsbloom"
)

// blockRecord is the subset of an eth_getBlockByNumber result, with receipts
// logs attached to each transaction, that a logsBloom is derived from.
type blockRecord struct {
	Number       hexutil.Uint64 `json:"number"`
	LogsBloom    string         `json:"logsBloom"` // decoded by the worker so a bad value only fails its block
	Transactions []txRecord     `json:"transactions"`
}

type txRecord struct {
	Logs []logRecord `json:"logs"`
}

type logRecord struct {
	Address *hexutil.Bytes  `json:"address"`
	Topics  []hexutil.Bytes `json:"topics"`
}

// rebuild computes the filter of every log address and topic in the block.
// Missing addresses and topics are skipped; a block without transactions
// yields the empty filter.
func (b *blockRecord) rebuild(h logsbloom.Hasher) *logsbloom.Bloom {
	f := logsbloom.NewWithHasher(h)
	for _, tx := range b.Transactions {
		for _, l := range tx.Logs {
			if l.Address != nil {
				f.Add(*l.Address)
			}
			for _, topic := range l.Topics {
				f.Add(topic)
			}
		}
	}
	return f
}

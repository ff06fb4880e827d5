package main

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"sync"
	"time"

	"github.com/jcalabro/logsbloom"
	jsoniter "github.com/json-iterator/go"
	"github.com/klauspost/compress/gzip"
	"github.com/urfave/cli/v2"
	"golang.org/x/sync/errgroup"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

const readBufferSize = 64 * 1024

// Summary aggregates the outcome of a verify run.
type Summary struct {
	Blocks     int              `json:"blocks"`
	Matched    int              `json:"matched"`
	Mismatched []uint64         `json:"mismatched"`
	Malformed  []uint64         `json:"malformed"`
	Union      *logsbloom.Bloom `json:"unionBloom"`
}

type job struct {
	seq   uint64
	block *blockRecord
}

type result struct {
	seq    uint64
	number uint64
	equal  bool
	err    error // reference logsBloom could not be decoded
}

func verifyAction(ctx *cli.Context) error {
	cfg, err := buildConfig(ctx)
	if err != nil {
		return err
	}
	logger, err := newLogger(os.Stderr, cfg.Log)
	if err != nil {
		return err
	}

	in, closeIn, err := openInput(cfg.Verify.Input)
	if err != nil {
		return err
	}
	defer closeIn()

	out, closeOut, err := openOutput(cfg.Verify.Output)
	if err != nil {
		return err
	}

	start := time.Now()
	summary, err := verify(ctx.Context, cfg, in, out, logger)
	if cerr := closeOut(); err == nil {
		err = cerr
	}
	if err != nil {
		return err
	}
	logger.Info("verify complete",
		"blocks", summary.Blocks,
		"matched", summary.Matched,
		"mismatched", len(summary.Mismatched),
		"malformed", len(summary.Malformed),
		"elapsed", time.Since(start))

	if cfg.Verify.Summary != "" {
		return writeSummary(cfg.Verify.Summary, summary)
	}
	return nil
}

func openInput(path string) (io.Reader, func() error, error) {
	if path == "-" {
		return os.Stdin, func() error { return nil }, nil
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, nil, err
	}
	return f, f.Close, nil
}

func openOutput(path string) (io.Writer, func() error, error) {
	if path == "-" || path == "" {
		return os.Stdout, func() error { return nil }, nil
	}
	f, err := os.Create(path)
	if err != nil {
		return nil, nil, err
	}
	return f, f.Close, nil
}

// verify streams blocks from in, rebuilds their filters on cfg.Verify.Workers
// goroutines and writes one "<match>,<number>" line per block to out in
// input order. Malformed reference blooms are recorded in the summary;
// malformed JSON and I/O failures abort the run.
func verify(ctx context.Context, cfg *Config, in io.Reader, out io.Writer, logger *slog.Logger) (*Summary, error) {
	src, err := decompress(in)
	if err != nil {
		return nil, err
	}

	var hasher logsbloom.Hasher
	if cfg.Cache.Size > 0 {
		cache, err := newDigestCache(cfg.Cache)
		if err != nil {
			return nil, err
		}
		hasher = cache.Sum
	}

	var (
		union   = logsbloom.NewAtomic()
		summary = &Summary{Mismatched: []uint64{}, Malformed: []uint64{}}
		jobs    = make(chan job, 2*cfg.Verify.Workers)
		results = make(chan result, 2*cfg.Verify.Workers)
		workers sync.WaitGroup
	)
	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		defer close(jobs)
		return decodeBlocks(ctx, src, jobs)
	})

	workers.Add(cfg.Verify.Workers)
	for range cfg.Verify.Workers {
		g.Go(func() error {
			defer workers.Done()
			for j := range jobs {
				r := check(j, hasher, union)
				select {
				case results <- r:
				case <-ctx.Done():
					return ctx.Err()
				}
			}
			return nil
		})
	}
	g.Go(func() error {
		workers.Wait()
		close(results)
		return nil
	})

	g.Go(func() error {
		return writeResults(results, out, summary, logger)
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}
	summary.Union = union.Snapshot()
	return summary, nil
}

func newDigestCache(cfg CacheConfig) (*logsbloom.DigestCache, error) {
	if cfg.Shards == 0 {
		return logsbloom.NewDigestCacheDefault(cfg.Size)
	}
	return logsbloom.NewDigestCache(cfg.Size, cfg.Shards)
}

// decompress detects a gzip stream by its magic bytes and passes anything
// else through unchanged.
func decompress(r io.Reader) (io.Reader, error) {
	br := bufio.NewReaderSize(r, readBufferSize)
	magic, err := br.Peek(2)
	if err == nil && magic[0] == 0x1f && magic[1] == 0x8b {
		zr, err := gzip.NewReader(br)
		if err != nil {
			return nil, fmt.Errorf("open gzip stream: %w", err)
		}
		return zr, nil
	}
	return br, nil
}

// decodeBlocks reads the top-level JSON array one element at a time and
// hands each block to the workers.
func decodeBlocks(ctx context.Context, r io.Reader, jobs chan<- job) error {
	iter := jsoniter.Parse(json, r, readBufferSize)

	var (
		seq     uint64
		sendErr error
	)
	iter.ReadArrayCB(func(it *jsoniter.Iterator) bool {
		b := new(blockRecord)
		it.ReadVal(b)
		if it.Error != nil {
			return false
		}
		select {
		case jobs <- job{seq: seq, block: b}:
			seq++
			return true
		case <-ctx.Done():
			sendErr = ctx.Err()
			return false
		}
	})
	if sendErr != nil {
		return sendErr
	}
	if iter.Error != nil {
		return fmt.Errorf("decode block at index %d: %w", seq, iter.Error)
	}
	return nil
}

func check(j job, h logsbloom.Hasher, union *logsbloom.AtomicBloom) result {
	computed := j.block.rebuild(h)
	union.Merge(computed)

	r := result{seq: j.seq, number: uint64(j.block.Number)}
	ref, err := logsbloom.FromHex(j.block.LogsBloom)
	if err != nil {
		r.err = err
		return r
	}
	r.equal = ref.Equal(computed)
	return r
}

// writeResults emits results in sequence order, buffering those that finish
// ahead of their predecessors.
func writeResults(results <-chan result, out io.Writer, s *Summary, logger *slog.Logger) error {
	w := bufio.NewWriter(out)
	pending := make(map[uint64]result)
	var next uint64

	for r := range results {
		pending[r.seq] = r
		for {
			p, ok := pending[next]
			if !ok {
				break
			}
			delete(pending, next)
			next++

			s.record(p, logger)
			if _, err := fmt.Fprintf(w, "%d,%d\n", p.flag(), p.number); err != nil {
				return fmt.Errorf("write result: %w", err)
			}
		}
	}
	if err := w.Flush(); err != nil {
		return fmt.Errorf("write result: %w", err)
	}
	return nil
}

func (r result) flag() int {
	if r.equal {
		return 1
	}
	return 0
}

func (s *Summary) record(r result, logger *slog.Logger) {
	s.Blocks++
	switch {
	case r.err != nil:
		s.Malformed = append(s.Malformed, r.number)
		logger.Warn("malformed logsBloom", "block", r.number, "error", r.err)
	case r.equal:
		s.Matched++
	default:
		s.Mismatched = append(s.Mismatched, r.number)
		logger.Debug("logsBloom mismatch", "block", r.number)
	}
}

func writeSummary(path string, s *Summary) error {
	enc, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, append(enc, '\n'), 0o644)
}

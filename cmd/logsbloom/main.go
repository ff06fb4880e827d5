// logsbloom rebuilds and queries Ethereum logsBloom filters.
package main

import (
	"fmt"
	"os"
	"runtime"

	"github.com/urfave/cli/v2"
)

const (
	logCategory    = "LOGGING"
	verifyCategory = "VERIFY"
	cacheCategory  = "DIGEST CACHE"
)

var (
	// Global flags.
	ConfigFileFlag = &cli.StringFlag{
		Name:  "config",
		Usage: "TOML configuration file",
	}
	LogLevelFlag = &cli.StringFlag{
		Name:     "log.level",
		Usage:    "Log level (debug|info|warn|error)",
		Value:    "info",
		Category: logCategory,
	}
	LogFormatFlag = &cli.StringFlag{
		Name:     "log.format",
		Usage:    "Log format (auto|text|json); auto picks text on a terminal",
		Value:    "auto",
		Category: logCategory,
	}

	// Verify flags.
	InputFlag = &cli.StringFlag{
		Name:     "input",
		Aliases:  []string{"i"},
		Usage:    "JSON array of blocks, optionally gzip-compressed (- for stdin)",
		Value:    "-",
		Category: verifyCategory,
	}
	OutputFlag = &cli.StringFlag{
		Name:     "output",
		Aliases:  []string{"o"},
		Usage:    "Destination for the per-block results (- for stdout)",
		Value:    "-",
		Category: verifyCategory,
	}
	SummaryFlag = &cli.StringFlag{
		Name:     "summary",
		Usage:    "Write a JSON summary, including the union of all rebuilt filters, to this file",
		Category: verifyCategory,
	}
	WorkersFlag = &cli.IntFlag{
		Name:     "workers",
		Usage:    "Number of goroutines rebuilding filters",
		Value:    runtime.NumCPU(),
		Category: verifyCategory,
	}
	CacheSizeFlag = &cli.IntFlag{
		Name:     "cache.size",
		Usage:    "Number of Keccak-256 digests to memoize (0 disables the cache)",
		Value:    1 << 16,
		Category: cacheCategory,
	}
	CacheShardsFlag = &cli.Uint64Flag{
		Name:     "cache.shards",
		Usage:    "Number of digest cache shards, rounded up to a power of 2 (0 picks one per CPU)",
		Category: cacheCategory,
	}
)

// Command definitions.
var (
	verifyCommand = &cli.Command{
		Name:      "verify",
		Usage:     "Rebuilds each block's logsBloom from its logs and compares it with the header value",
		ArgsUsage: "[<input> <output>]",
		Action:    verifyAction,
		Flags: []cli.Flag{
			InputFlag,
			OutputFlag,
			SummaryFlag,
			WorkersFlag,
			CacheSizeFlag,
			CacheShardsFlag,
		},
		Description: `
Reads a JSON array of blocks, each carrying its number, logsBloom and the
logs of its transactions, and writes one "<match>,<number>" line per block
in input order. A match of 1 means the rebuilt filter equals the header.`,
	}
	inspectCommand = &cli.Command{
		Name:      "inspect",
		Usage:     "Prints the set bits of a logsBloom",
		ArgsUsage: "<bloom-hex>",
		Action:    inspectAction,
	}
	queryCommand = &cli.Command{
		Name:      "query",
		Usage:     "Tests keys against a logsBloom",
		ArgsUsage: "<bloom-hex> <key-hex>...",
		Action:    queryAction,
	}
	positionsCommand = &cli.Command{
		Name:      "positions",
		Usage:     "Prints the bit positions each key sets",
		ArgsUsage: "<key-hex>...",
		Action:    positionsAction,
	}
)

func newApp() *cli.App {
	return &cli.App{
		Name:  "logsbloom",
		Usage: "rebuild and query Ethereum logsBloom filters",
		Flags: []cli.Flag{
			ConfigFileFlag,
			LogLevelFlag,
			LogFormatFlag,
		},
		Commands: []*cli.Command{
			verifyCommand,
			inspectCommand,
			queryCommand,
			positionsCommand,
		},
	}
}

func main() {
	if err := newApp().Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

package main

import (
	"errors"
	"fmt"

	"github.com/jcalabro/logsbloom"
	"github.com/urfave/cli/v2"
)

func inspectAction(ctx *cli.Context) error {
	if ctx.NArg() != 1 {
		return errors.New("inspect: expected exactly one <bloom-hex> argument")
	}
	b, err := logsbloom.FromHex(ctx.Args().First())
	if err != nil {
		return err
	}
	w := ctx.App.Writer
	fmt.Fprintf(w, "bits set:   %d\n", b.OnesCount())
	fmt.Fprintf(w, "fill ratio: %.4f\n", b.FillRatio())
	fmt.Fprintf(w, "positions:  %v\n", b.SetBits())
	return nil
}

func queryAction(ctx *cli.Context) error {
	if ctx.NArg() < 2 {
		return errors.New("query: expected <bloom-hex> followed by at least one <key-hex>")
	}
	args := ctx.Args().Slice()
	b, err := logsbloom.FromHex(args[0])
	if err != nil {
		return err
	}
	for _, arg := range args[1:] {
		key, err := logsbloom.DecodeHex(arg)
		if err != nil {
			return err
		}
		answer := "absent"
		if b.Test(key) {
			answer = "maybe"
		}
		fmt.Fprintf(ctx.App.Writer, "%s  %s\n", arg, answer)
	}
	return nil
}

func positionsAction(ctx *cli.Context) error {
	if ctx.NArg() == 0 {
		return errors.New("positions: expected at least one <key-hex>")
	}
	for _, arg := range ctx.Args().Slice() {
		key, err := logsbloom.DecodeHex(arg)
		if err != nil {
			return err
		}
		pos := logsbloom.BitPositions(logsbloom.Keccak256(key))
		fmt.Fprintf(ctx.App.Writer, "%s  %d %d %d\n", arg, pos[0], pos[1], pos[2])
	}
	return nil
}

package main

import (
	"fmt"

	"github.com/hupe1980/txlsh"
	"github.com/spf13/pflag"
)

func runDiff(e env, args []string) error {
	var noLength bool

	fs := pflag.NewFlagSet("diff", pflag.ContinueOnError)
	fs.BoolVar(&noLength, "no-length", false, "ignore the input length difference")

	if help, err := parseFlags(fs, args, e.stderr); help || err != nil {
		return err
	}

	if fs.NArg() != 2 {
		return usagef("diff takes exactly two digests, got %d", fs.NArg())
	}

	a, err := txlsh.Parse(fs.Arg(0))
	if err != nil {
		return usagef("first digest: %v", err)
	}
	b, err := txlsh.Parse(fs.Arg(1))
	if err != nil {
		return usagef("second digest: %v", err)
	}

	d, err := a.Compare(b, !noLength)
	if err != nil {
		return err
	}

	fmt.Fprintln(e.stdout, d)
	return nil
}

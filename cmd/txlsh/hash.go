package main

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/hupe1980/txlsh"
	"github.com/hupe1980/txlsh/internal/decompress"
	"github.com/spf13/pflag"
)

func runHash(ctx context.Context, e env, args []string) error {
	var (
		cf             configFlags
		decompressFlag bool
	)

	fs := pflag.NewFlagSet("hash", pflag.ContinueOnError)
	cf.register(fs)
	fs.BoolVar(&decompressFlag, "decompress", false, "digest the decoded content of gzip, zstd and LZ4 input")

	if help, err := parseFlags(fs, args, e.stderr); help || err != nil {
		return err
	}

	cfg, err := cf.config()
	if err != nil {
		return usagef("%v", err)
	}

	names := fs.Args()
	if len(names) == 0 {
		names = []string{"-"}
	}

	var failed int
	for _, name := range names {
		d, err := hashOne(ctx, e, cfg, name, decompressFlag)
		if err != nil {
			failed++
			fmt.Fprintf(e.stderr, "%s: %v\n", name, err)
			continue
		}
		fmt.Fprintf(e.stdout, "%s  %s\n", d, name)
	}

	if failed > 0 {
		return fmt.Errorf("%d of %d inputs failed", failed, len(names))
	}
	return nil
}

func hashOne(ctx context.Context, e env, cfg txlsh.Config, name string, decode bool) (*txlsh.Digest, error) {
	var r io.Reader = e.stdin
	if name != "-" {
		f, err := os.Open(name)
		if err != nil {
			return nil, err
		}
		defer f.Close()
		r = f
	}

	if decode {
		rc, _, err := decompress.NewReader(r)
		if err != nil {
			return nil, err
		}
		defer rc.Close()
		r = rc
	}

	return txlsh.SumReader(ctx, cfg, r)
}

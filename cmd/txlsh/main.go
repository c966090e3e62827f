// txlsh computes, compares and clusters locality-sensitive digests.
//
// Three subcommands are available:
//
//	txlsh hash [flags] FILE...     print the digest of each file ("-" reads stdin)
//	txlsh diff [flags] A B         print the distance between two digests
//	txlsh scan [flags]             digest a directory or bucket and report
//	                               near-duplicate pairs
//
// scan reads its source and limits from an optional YAML profile. Flags
// given on the command line override the profile.
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/hupe1980/txlsh"
	"github.com/spf13/pflag"
)

// usageError marks an error caused by invalid invocation.
type usageError struct{ msg string }

func (e *usageError) Error() string { return e.msg }

func (e *usageError) ExitCode() int { return 2 }

func usagef(format string, args ...any) error {
	return &usageError{msg: fmt.Sprintf(format, args...)}
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, os.Args[1:], os.Stdin, os.Stdout, os.Stderr); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		if coder, ok := err.(interface{ ExitCode() int }); ok {
			os.Exit(coder.ExitCode())
		}
		os.Exit(1)
	}
}

// env carries the standard streams of one invocation.
type env struct {
	stdin  io.Reader
	stdout io.Writer
	stderr io.Writer
}

func run(ctx context.Context, args []string, stdin io.Reader, stdout, stderr io.Writer) error {
	if len(args) == 0 {
		printUsage(stderr)
		return usagef("missing subcommand")
	}

	e := env{stdin: stdin, stdout: stdout, stderr: stderr}

	switch args[0] {
	case "hash":
		return runHash(ctx, e, args[1:])
	case "diff":
		return runDiff(e, args[1:])
	case "scan":
		return runScan(ctx, e, args[1:])
	case "help", "-h", "--help":
		printUsage(stdout)
		return nil
	default:
		printUsage(stderr)
		return usagef("unknown subcommand %q", args[0])
	}
}

func printUsage(w io.Writer) {
	fmt.Fprint(w, `Usage: txlsh <command> [flags]

Commands:
  hash   print the digest of files or stdin
  diff   print the distance between two digests
  scan   digest a directory or bucket and report near-duplicate pairs

Run "txlsh <command> --help" for the flags of a command.
`)
}

// parseFlags parses args and prints the flag defaults on --help.
func parseFlags(fs *pflag.FlagSet, args []string, w io.Writer) (bool, error) {
	fs.SetOutput(w)
	if err := fs.Parse(args); err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			return true, nil
		}
		return false, &usageError{msg: err.Error()}
	}
	return false, nil
}

// configFlags are the digest configuration flags shared by hash and scan.
type configFlags struct {
	buckets  int
	checksum int
	version  string
}

func (c *configFlags) register(fs *pflag.FlagSet) {
	fs.IntVar(&c.buckets, "buckets", 128, "number of buckets (128 or 256)")
	fs.IntVar(&c.checksum, "checksum", 1, "checksum length in bytes (1 or 3)")
	fs.StringVar(&c.version, "version", "t1", "digest version (original, t1 or x1)")
}

func (c *configFlags) config() (txlsh.Config, error) {
	return txlsh.ParseConfig(fmt.Sprintf("%d/%d/%s", c.buckets, c.checksum, c.version))
}

// newLogger returns a text logger on w, or a discarding one for "off".
func newLogger(w io.Writer, level string) (*txlsh.Logger, error) {
	if level == "off" {
		return txlsh.NoopLogger(), nil
	}

	var l slog.Level
	if err := l.UnmarshalText([]byte(level)); err != nil {
		return nil, usagef("invalid log level %q", level)
	}

	return txlsh.NewLogger(slog.NewTextHandler(w, &slog.HandlerOptions{Level: l})), nil
}

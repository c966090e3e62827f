package main

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/spf13/pflag"

	"github.com/hupe1980/txlsh"
	"github.com/hupe1980/txlsh/index"
	"github.com/hupe1980/txlsh/promcollector"
	"github.com/hupe1980/txlsh/scan"
)

// Pair is a near-duplicate pair reported by scan.
type Pair struct {
	A, B     string
	Distance int
}

func runScan(ctx context.Context, e env, args []string) error {
	var (
		profilePath string
		logLevel    string
		cf          configFlags
		p           = defaultProfile()
	)

	fs := pflag.NewFlagSet("scan", pflag.ContinueOnError)
	fs.StringVar(&profilePath, "profile", "", "YAML profile with source and limits")
	fs.StringVar(&p.Source.Path, "dir", p.Source.Path, "directory to scan")
	fs.StringVar(&p.Source.Prefix, "prefix", "", "only scan names with this prefix")
	fs.IntVar(&p.Scan.Workers, "workers", 0, "blobs digested concurrently (default GOMAXPROCS)")
	fs.Int64Var(&p.Scan.RateLimit, "rate", 0, "read limit in bytes per second (0 is unlimited)")
	fs.BoolVar(&p.Scan.Decompress, "decompress", false, "digest the decoded content of compressed blobs")
	fs.IntVar(&p.Threshold, "threshold", p.Threshold, "largest distance reported as a near duplicate")
	fs.BoolVar(&p.NoLength, "no-length", false, "ignore the input length difference")
	fs.StringVar(&p.MetricsAddr, "metrics-addr", "", "serve Prometheus metrics on this address while scanning")
	fs.StringVar(&logLevel, "log-level", "warn", "log level (debug, info, warn, error or off)")
	cf.register(fs)

	if help, err := parseFlags(fs, args, e.stderr); help || err != nil {
		return err
	}
	if fs.NArg() > 0 {
		return usagef("unexpected argument: %s", fs.Arg(0))
	}

	if profilePath != "" {
		loaded, err := loadProfile(profilePath)
		if err != nil {
			return err
		}
		p = mergeFlags(fs, loaded, p)
	}

	cfg, err := p.validate()
	if err != nil {
		return usagef("%v", err)
	}
	if cfg, err = overrideConfig(fs, cfg, &cf); err != nil {
		return usagef("%v", err)
	}

	logger, err := newLogger(e.stderr, logLevel)
	if err != nil {
		return err
	}
	logger = logger.WithConfig(cfg)

	var mc txlsh.MetricsCollector = &txlsh.NoopMetricsCollector{}
	if p.MetricsAddr != "" {
		pc, err := promcollector.New(promcollector.Options{})
		if err != nil {
			return err
		}
		stop, err := serveMetrics(p.MetricsAddr, pc, logger)
		if err != nil {
			return err
		}
		defer stop()
		mc = pc
	}

	store, err := openStore(ctx, p.Source)
	if err != nil {
		return err
	}

	scanner, err := scan.New(store, cfg, p.Scan, scan.WithLogger(logger), scan.WithMetricsCollector(mc))
	if err != nil {
		return err
	}

	results, err := scanner.Scan(ctx, p.Source.Prefix)
	if err != nil {
		return err
	}

	for _, r := range results {
		if r.Err != nil {
			fmt.Fprintf(e.stderr, "skip %s: %v\n", r.Name, r.Err)
		}
	}

	pairs, err := nearDuplicates(ctx, cfg, results, index.Query{
		MaxDistance:   p.Threshold,
		IncludeLength: !p.NoLength,
	}, index.WithLogger(logger), index.WithMetricsCollector(mc))
	if err != nil {
		return err
	}

	for _, pair := range pairs {
		fmt.Fprintf(e.stdout, "%d\t%s\t%s\n", pair.Distance, pair.A, pair.B)
	}
	return nil
}

// mergeFlags copies explicitly set flag values from flagged over loaded.
func mergeFlags(fs *pflag.FlagSet, loaded, flagged Profile) Profile {
	if fs.Changed("dir") {
		loaded.Source.Type = "dir"
		loaded.Source.Path = flagged.Source.Path
	}
	if fs.Changed("prefix") {
		loaded.Source.Prefix = flagged.Source.Prefix
	}
	if fs.Changed("workers") {
		loaded.Scan.Workers = flagged.Scan.Workers
	}
	if fs.Changed("rate") {
		loaded.Scan.RateLimit = flagged.Scan.RateLimit
	}
	if fs.Changed("decompress") {
		loaded.Scan.Decompress = flagged.Scan.Decompress
	}
	if fs.Changed("threshold") {
		loaded.Threshold = flagged.Threshold
	}
	if fs.Changed("no-length") {
		loaded.NoLength = flagged.NoLength
	}
	if fs.Changed("metrics-addr") {
		loaded.MetricsAddr = flagged.MetricsAddr
	}
	return loaded
}

// overrideConfig replaces the fields of cfg whose flags were set.
func overrideConfig(fs *pflag.FlagSet, cfg txlsh.Config, cf *configFlags) (txlsh.Config, error) {
	buckets, checksum, version := cfg.Buckets.String(), cfg.Checksum.String(), cfg.Version.String()
	if fs.Changed("buckets") {
		buckets = fmt.Sprint(cf.buckets)
	}
	if fs.Changed("checksum") {
		checksum = fmt.Sprint(cf.checksum)
	}
	if fs.Changed("version") {
		version = cf.version
	}
	return txlsh.ParseConfig(buckets + "/" + checksum + "/" + version)
}

// nearDuplicates indexes the successful results and returns every pair
// within the query distance, ordered by the first name's scan position.
func nearDuplicates(ctx context.Context, cfg txlsh.Config, results []scan.Result, query index.Query, optFns ...index.Option) ([]Pair, error) {
	idx, err := index.New(cfg, optFns...)
	if err != nil {
		return nil, err
	}

	var (
		names   []string
		digests []*txlsh.Digest
	)
	for _, r := range results {
		if r.Err != nil {
			continue
		}
		if err := idx.Add(uint32(len(names)), r.Digest); err != nil {
			return nil, fmt.Errorf("index %s: %w", r.Name, err)
		}
		names = append(names, r.Name)
		digests = append(digests, r.Digest)
	}

	matches, err := idx.SearchBatch(ctx, digests, query)
	if err != nil {
		return nil, err
	}

	var pairs []Pair
	for i, ms := range matches {
		for _, m := range ms {
			if int(m.ID) <= i {
				continue
			}
			pairs = append(pairs, Pair{A: names[i], B: names[m.ID], Distance: m.Distance})
		}
	}
	return pairs, nil
}

// serveMetrics exposes the collector on addr until the returned stop
// function is called.
func serveMetrics(addr string, pc *promcollector.Collector, logger *txlsh.Logger) (func(), error) {
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return nil, fmt.Errorf("listen %s: %w", addr, err)
	}

	mux := http.NewServeMux()
	mux.Handle("/metrics", pc.Handler())
	srv := &http.Server{Handler: mux, ReadHeaderTimeout: 5 * time.Second}

	go func() {
		if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("metrics server failed", "error", err)
		}
	}()
	logger.Info("serving metrics", "addr", ln.Addr().String())

	return func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = srv.Shutdown(ctx)
	}, nil
}

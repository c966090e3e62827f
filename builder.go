package txlsh

import (
	"io"
	"time"

	"github.com/hupe1980/txlsh/internal/accumulator"
	"github.com/hupe1980/txlsh/internal/quantization"
)

// MinDataLen is the minimum number of input bytes for a digest.
const MinDataLen = 50

// Builder accumulates an input stream and builds digests from it.
//
// A Builder is not safe for concurrent use. Independent builders share no
// mutable state and may run in parallel.
type Builder struct {
	cfg     Config
	acc     *accumulator.Accumulator
	metrics MetricsCollector
}

// New creates a builder for the given configuration.
func New(cfg Config, optFns ...Option) (*Builder, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	opts := options{
		metricsCollector: NoopMetricsCollector{},
	}
	for _, fn := range optFns {
		fn(&opts)
	}

	return &Builder{
		cfg:     cfg,
		acc:     accumulator.New(cfg.Version.primitive(), cfg.Checksum.Len()),
		metrics: opts.metricsCollector,
	}, nil
}

// MustNew is like New but panics on an invalid configuration.
func MustNew(cfg Config, optFns ...Option) *Builder {
	b, err := New(cfg, optFns...)
	if err != nil {
		panic(err)
	}
	return b
}

// NewDefault creates a builder for DefaultConfig (128 buckets, one checksum
// byte, "T1").
func NewDefault(optFns ...Option) *Builder { return MustNew(DefaultConfig, optFns...) }

// NewFull creates a builder for FullConfig (256 buckets, three checksum
// bytes, "T1").
func NewFull(optFns ...Option) *Builder { return MustNew(FullConfig, optFns...) }

// NewTxLsh creates a builder for TxLshConfig (256 buckets, three checksum
// bytes, "X1").
func NewTxLsh(optFns ...Option) *Builder { return MustNew(TxLshConfig, optFns...) }

// Config returns the builder's configuration.
func (b *Builder) Config() Config { return b.cfg }

// Len returns the number of bytes consumed so far.
func (b *Builder) Len() uint64 { return b.acc.Len() }

// Update processes data as the continuation of the stream.
func (b *Builder) Update(data []byte) {
	b.acc.Update(data)
}

// UpdateFrom processes data[offset:offset+n] as the continuation of the
// stream. It panics if the range is out of bounds.
func (b *Builder) UpdateFrom(data []byte, offset, n int) {
	b.acc.UpdateFrom(data, offset, n)
}

// Write implements io.Writer. It never fails.
func (b *Builder) Write(p []byte) (int, error) {
	b.acc.Update(p)
	return len(p), nil
}

// ReadFrom implements io.ReaderFrom, consuming r until EOF.
func (b *Builder) ReadFrom(r io.Reader) (int64, error) {
	buf := make([]byte, 32*1024)
	var total int64
	for {
		n, err := r.Read(buf)
		if n > 0 {
			b.acc.Update(buf[:n])
			total += int64(n)
		}
		if err == io.EOF {
			return total, nil
		}
		if err != nil {
			return total, err
		}
	}
}

// Reset clears all accumulated state. The configuration is kept.
func (b *Builder) Reset() {
	b.acc.Reset()
}

// Build computes the digest of everything consumed so far. It does not
// modify the builder, so more data may be added and Build called again.
func (b *Builder) Build() (*Digest, error) {
	start := time.Now()
	d, err := b.build()
	b.metrics.RecordBuild(b.acc.Len(), time.Since(start), err)
	return d, err
}

func (b *Builder) build() (*Digest, error) {
	length := b.acc.Len()
	if length < MinDataLen {
		return nil, ErrMinSizeNotReached
	}

	buckets := b.acc.Buckets(b.cfg.Buckets.Count())
	q1, q2, q3 := quantization.Quartiles(buckets)
	if q3 == 0 {
		return nil, ErrNoValidHash
	}

	lvalue, ok := quantization.LengthCode(length)
	if !ok {
		return nil, ErrDataLenOverflow
	}

	d := &Digest{
		cfg:     b.cfg,
		lvalue:  lvalue,
		q1ratio: quantization.Ratio(q1, q3),
		q2ratio: quantization.Ratio(q2, q3),
	}
	copy(d.checksum[:], b.acc.Checksum())
	copy(d.codes[:], quantization.Pack(buckets, q1, q2, q3))

	return d, nil
}

package txlsh

import (
	"context"
	"io"
)

// Sum returns the digest of data.
func Sum(cfg Config, data []byte) (*Digest, error) {
	b, err := New(cfg)
	if err != nil {
		return nil, err
	}
	b.Update(data)
	return b.Build()
}

// SumReader returns the digest of everything read from r. The context is
// checked between reads.
func SumReader(ctx context.Context, cfg Config, r io.Reader, optFns ...Option) (*Digest, error) {
	b, err := New(cfg, optFns...)
	if err != nil {
		return nil, err
	}

	buf := make([]byte, 64*1024)
	for {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		n, err := r.Read(buf)
		if n > 0 {
			b.Update(buf[:n])
		}
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}
	}

	return b.Build()
}

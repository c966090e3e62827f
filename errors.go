package txlsh

import (
	"errors"
	"fmt"
)

var (
	// ErrDataLenOverflow is returned when the input is longer than the
	// length table can represent (about 4GB).
	ErrDataLenOverflow = errors.New("txlsh: input is too big, maximal length is 4GB")

	// ErrInvalidHashValue is returned when a digest string matches no
	// configuration.
	ErrInvalidHashValue = errors.New("txlsh: can't parse hash string")

	// ErrMinSizeNotReached is returned when fewer than MinDataLen bytes were
	// consumed.
	ErrMinSizeNotReached = errors.New("txlsh: input must be at least 50 bytes")

	// ErrParseHexFailed is returned when a digest field is not valid hex.
	ErrParseHexFailed = errors.New("txlsh: can't convert hex string to integer")

	// ErrNoValidHash is returned when the third quartile of the histogram is
	// zero, i.e. the input has too little variety to be digested.
	// See https://github.com/trendmicro/tlsh/issues/79.
	ErrNoValidHash = errors.New("txlsh: no valid hash could be computed")

	// ErrIncompatibleDigest is returned when two digests with different
	// bucket or checksum kinds are compared.
	ErrIncompatibleDigest = errors.New("txlsh: incompatible digest configurations")
)

// ParseError describes a digest field that is not valid hex.
//
// It matches ErrParseHexFailed with errors.Is. The strconv error (if any)
// can be accessed via errors.Unwrap.
type ParseError struct {
	Field  string
	Offset int
	Text   string
	cause  error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("txlsh: invalid hex %q in %s field at offset %d", e.Text, e.Field, e.Offset)
}

func (e *ParseError) Is(target error) bool { return target == ErrParseHexFailed }

func (e *ParseError) Unwrap() error { return e.cause }

// ConfigError indicates a configuration field with an unknown value.
type ConfigError struct {
	Config Config
	Field  string
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("txlsh: invalid config %s: unknown %s", e.Config, e.Field)
}

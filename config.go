package txlsh

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/hupe1980/txlsh/internal/hash"
)

// BucketKind determines the number of histogram buckets of a digest.
type BucketKind uint8

const (
	// Bucket128 hashes with 128 buckets.
	Bucket128 BucketKind = iota
	// Bucket256 hashes with 256 buckets ("full hash").
	Bucket256
)

// Count returns the number of buckets.
func (b BucketKind) Count() int {
	if b == Bucket256 {
		return 256
	}
	return 128
}

func (b BucketKind) String() string {
	switch b {
	case Bucket128:
		return "128"
	case Bucket256:
		return "256"
	default:
		return fmt.Sprintf("Unknown(%d)", b)
	}
}

// ChecksumKind determines the length of the checksum chain.
type ChecksumKind uint8

const (
	// ChecksumOneByte uses one checksum byte. The collision rate is 1/24.
	ChecksumOneByte ChecksumKind = iota
	// ChecksumThreeByte uses three checksum bytes. The collision rate is 1/5800.
	ChecksumThreeByte
)

// Len returns the number of checksum bytes.
func (c ChecksumKind) Len() int {
	if c == ChecksumThreeByte {
		return 3
	}
	return 1
}

func (c ChecksumKind) String() string {
	switch c {
	case ChecksumOneByte:
		return "1"
	case ChecksumThreeByte:
		return "3"
	default:
		return fmt.Sprintf("Unknown(%d)", c)
	}
}

// Version selects the digest prefix and the hash primitive.
type Version uint8

const (
	// VersionOriginal has no prefix and uses the Pearson primitive.
	VersionOriginal Version = iota
	// Version4 is prefixed with "T1" and uses the Pearson primitive.
	Version4
	// VersionTxLshV1 is prefixed with "X1" and uses the XXH3 primitive.
	VersionTxLshV1
)

// Prefix returns the literal prefix of the text encoding.
func (v Version) Prefix() string {
	switch v {
	case Version4:
		return "T1"
	case VersionTxLshV1:
		return "X1"
	default:
		return ""
	}
}

func (v Version) String() string {
	switch v {
	case VersionOriginal:
		return "Original"
	case Version4:
		return "T1"
	case VersionTxLshV1:
		return "X1"
	default:
		return fmt.Sprintf("Unknown(%d)", v)
	}
}

func (v Version) primitive() hash.Primitive {
	if v == VersionTxLshV1 {
		return hash.PrimitiveXXH3
	}
	return hash.PrimitivePearson
}

// ParseVersion parses "original", "t1" or "x1" (case-insensitive).
func ParseVersion(s string) (Version, error) {
	switch strings.ToLower(s) {
	case "original", "":
		return VersionOriginal, nil
	case "t1", "v4", "version4":
		return Version4, nil
	case "x1", "txlsh", "txlshv1":
		return VersionTxLshV1, nil
	default:
		return 0, fmt.Errorf("unknown version %q", s)
	}
}

// Config is the immutable configuration of a builder and its digests.
type Config struct {
	Buckets  BucketKind
	Checksum ChecksumKind
	Version  Version
}

var (
	// DefaultConfig is the common 128-bucket, one-byte checksum "T1" digest.
	DefaultConfig = Config{Buckets: Bucket128, Checksum: ChecksumOneByte, Version: Version4}
	// FullConfig is the 256-bucket, three-byte checksum "T1" digest.
	FullConfig = Config{Buckets: Bucket256, Checksum: ChecksumThreeByte, Version: Version4}
	// TxLshConfig is the 256-bucket, three-byte checksum "X1" digest.
	TxLshConfig = Config{Buckets: Bucket256, Checksum: ChecksumThreeByte, Version: VersionTxLshV1}
)

// configs lists every legal configuration in canonical parse order:
// buckets ascending, checksum ascending, versions in declaration order.
var configs = func() []Config {
	var all []Config
	for _, b := range []BucketKind{Bucket128, Bucket256} {
		for _, c := range []ChecksumKind{ChecksumOneByte, ChecksumThreeByte} {
			for _, v := range []Version{VersionOriginal, Version4, VersionTxLshV1} {
				all = append(all, Config{Buckets: b, Checksum: c, Version: v})
			}
		}
	}
	return all
}()

// Configs returns every legal configuration in canonical order.
func Configs() []Config {
	out := make([]Config, len(configs))
	copy(out, configs)
	return out
}

// Validate reports whether every field holds a known value.
func (c Config) Validate() error {
	switch {
	case c.Buckets > Bucket256:
		return &ConfigError{Config: c, Field: "Buckets"}
	case c.Checksum > ChecksumThreeByte:
		return &ConfigError{Config: c, Field: "Checksum"}
	case c.Version > VersionTxLshV1:
		return &ConfigError{Config: c, Field: "Version"}
	}
	return nil
}

// EncodedLen returns the length of the text encoding of a digest.
func (c Config) EncodedLen() int {
	return c.Buckets.Count()/2 + c.Checksum.Len()*2 + len(c.Version.Prefix()) + 4
}

func (c Config) codeLen() int {
	return c.Buckets.Count() / 4
}

// String returns "buckets/checksum/version", e.g. "128/1/T1".
func (c Config) String() string {
	return c.Buckets.String() + "/" + c.Checksum.String() + "/" + c.Version.String()
}

// ParseConfig parses the String form of a Config.
func ParseConfig(s string) (Config, error) {
	parts := strings.Split(s, "/")
	if len(parts) != 3 {
		return Config{}, fmt.Errorf("invalid config %q", s)
	}

	var c Config
	switch parts[0] {
	case "128":
		c.Buckets = Bucket128
	case "256":
		c.Buckets = Bucket256
	default:
		return Config{}, fmt.Errorf("invalid bucket count %q", parts[0])
	}

	n, err := strconv.Atoi(parts[1])
	if err != nil || (n != 1 && n != 3) {
		return Config{}, fmt.Errorf("invalid checksum length %q", parts[1])
	}
	if n == 3 {
		c.Checksum = ChecksumThreeByte
	}

	v, err := ParseVersion(parts[2])
	if err != nil {
		return Config{}, err
	}
	c.Version = v

	return c, nil
}

package txlsh

import (
	"bytes"
	"strconv"
	"strings"

	"github.com/hupe1980/txlsh/distance"
)

const (
	maxChecksumLen = 3
	maxCodeLen     = 64
	hexDigits      = "0123456789ABCDEF"
)

// Digest is an immutable locality-sensitive digest of a byte stream.
//
// Digests are obtained from Builder.Build or Parse. The zero value is not a
// valid digest.
type Digest struct {
	cfg      Config
	checksum [maxChecksumLen]byte
	lvalue   uint8
	q1ratio  uint8
	q2ratio  uint8
	codes    [maxCodeLen]byte
}

// Config returns the configuration the digest was built with.
func (d *Digest) Config() Config { return d.cfg }

// Checksum returns a copy of the checksum bytes.
func (d *Digest) Checksum() []byte {
	return bytes.Clone(d.checksum[:d.cfg.Checksum.Len()])
}

// LengthCode returns the coarse length code of the input.
func (d *Digest) LengthCode() uint8 { return d.lvalue }

// Q1Ratio returns the 4-bit ratio of the first to the third quartile.
func (d *Digest) Q1Ratio() uint8 { return d.q1ratio }

// Q2Ratio returns the 4-bit ratio of the second to the third quartile.
func (d *Digest) Q2Ratio() uint8 { return d.q2ratio }

// Codes returns a copy of the packed quantization codes, bucket 0 first.
func (d *Digest) Codes() []byte {
	return bytes.Clone(d.codes[:d.cfg.codeLen()])
}

// Equal reports whether both digests encode to the same string.
func (d *Digest) Equal(other *Digest) bool {
	return *d == *other
}

// Compatible reports whether both digests have the same bucket and checksum
// kinds, which is required for a meaningful Distance.
func (d *Digest) Compatible(other *Digest) bool {
	return d.cfg.Buckets == other.cfg.Buckets && d.cfg.Checksum == other.cfg.Checksum
}

// String returns the text encoding of the digest.
//
// The layout is: version prefix, checksum bytes and length code each with
// their two hex digits swapped, the ratio byte (q1 high nibble, q2 low
// nibble), then the codes from the last byte to the first.
func (d *Digest) String() string {
	var sb strings.Builder
	sb.Grow(d.cfg.EncodedLen())

	sb.WriteString(d.cfg.Version.Prefix())
	for _, c := range d.checksum[:d.cfg.Checksum.Len()] {
		writeSwappedHex(&sb, c)
	}
	writeSwappedHex(&sb, d.lvalue)
	writeHex(&sb, d.q1ratio<<4|d.q2ratio)

	codes := d.codes[:d.cfg.codeLen()]
	for i := len(codes) - 1; i >= 0; i-- {
		writeHex(&sb, codes[i])
	}

	return sb.String()
}

// MarshalText implements encoding.TextMarshaler.
func (d *Digest) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (d *Digest) UnmarshalText(text []byte) error {
	parsed, err := Parse(string(text))
	if err != nil {
		return err
	}
	*d = *parsed
	return nil
}

func writeHex(sb *strings.Builder, b byte) {
	sb.WriteByte(hexDigits[b>>4])
	sb.WriteByte(hexDigits[b&0x0F])
}

func writeSwappedHex(sb *strings.Builder, b byte) {
	sb.WriteByte(hexDigits[b&0x0F])
	sb.WriteByte(hexDigits[b>>4])
}

// configForText returns the first configuration in canonical order whose
// encoded length matches s and whose prefix s carries. Prefixed versions
// share lengths ("T1" and "X1"), so the prefix settles the tie.
func configForText(s string) (Config, bool) {
	for _, c := range configs {
		if len(s) == c.EncodedLen() && strings.HasPrefix(s, c.Version.Prefix()) {
			return c, true
		}
	}
	return Config{}, false
}

// Parse parses the text encoding of a digest.
func Parse(s string) (*Digest, error) {
	cfg, ok := configForText(s)
	if !ok {
		return nil, ErrInvalidHashValue
	}

	d := &Digest{cfg: cfg}
	p := hexParser{s: s, off: len(cfg.Version.Prefix())}

	for i := 0; i < cfg.Checksum.Len(); i++ {
		d.checksum[i] = p.swapped("checksum")
	}
	d.lvalue = p.swapped("length")

	q := p.normal("ratio")
	d.q1ratio = q >> 4
	d.q2ratio = q & 0x0F

	for i := cfg.codeLen() - 1; i >= 0; i-- {
		d.codes[i] = p.normal("codes")
	}

	if p.err != nil {
		return nil, p.err
	}
	return d, nil
}

// MustParse is like Parse but panics on error.
func MustParse(s string) *Digest {
	d, err := Parse(s)
	if err != nil {
		panic(err)
	}
	return d
}

// hexParser decodes consecutive two-digit hex groups, keeping the first
// error.
type hexParser struct {
	s   string
	off int
	err error
}

func (p *hexParser) next(field string, swap bool) byte {
	if p.err != nil {
		return 0
	}
	text := p.s[p.off : p.off+2]
	if swap {
		text = string([]byte{text[1], text[0]})
	}
	v, err := strconv.ParseUint(text, 16, 8)
	if err != nil {
		p.err = &ParseError{Field: field, Offset: p.off, Text: p.s[p.off : p.off+2], cause: err}
		return 0
	}
	p.off += 2
	return byte(v)
}

func (p *hexParser) normal(field string) byte { return p.next(field, false) }

func (p *hexParser) swapped(field string) byte { return p.next(field, true) }

// Distance returns the difference score between two digests; 0 means the
// digests are identical and larger values mean less similar inputs.
// includeLength controls whether the input length difference contributes.
//
// Distance is symmetric. Both digests should be Compatible; otherwise only
// the shared prefix of the checksum and code fields is compared.
func (d *Digest) Distance(other *Digest, includeLength bool) int {
	result := 0

	if includeLength {
		if x := distance.ModDiff(int(d.lvalue), int(other.lvalue), 256); x <= 1 {
			result = x
		} else {
			result = x * 12
		}
	}

	result += ratioDistance(d.q1ratio, other.q1ratio)
	result += ratioDistance(d.q2ratio, other.q2ratio)

	n := min(d.cfg.Checksum.Len(), other.cfg.Checksum.Len())
	for i := 0; i < n; i++ {
		if d.checksum[i] != other.checksum[i] {
			result++
			break
		}
	}

	n = min(d.cfg.codeLen(), other.cfg.codeLen())
	result += distance.Codes(d.codes[:n], other.codes[:n])

	return result
}

// Compare is like Distance but fails with ErrIncompatibleDigest when the
// digests are not Compatible.
func (d *Digest) Compare(other *Digest, includeLength bool) (int, error) {
	if !d.Compatible(other) {
		return 0, ErrIncompatibleDigest
	}
	return d.Distance(other, includeLength), nil
}

func ratioDistance(a, b uint8) int {
	x := distance.ModDiff(int(a), int(b), 16)
	if x <= 1 {
		return x
	}
	return (x - 1) * 12
}

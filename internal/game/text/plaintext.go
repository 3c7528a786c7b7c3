// Package text implements the EarthBound plain text character encoding used
// for names stored in save records.
package text

import (
	"errors"
	"fmt"
	"unicode/utf8"

	"golang.org/x/text/encoding"
	"golang.org/x/text/transform"
)

const (
	// Padding fills the unused tail of a fixed-width field.
	Padding byte = 0x00

	offset   = 0x30
	firstRaw = 0x20
	lastRaw  = 0x7E
)

// EncodingError reports text that has no representation in the plain text table.
type EncodingError struct {
	Text string
	Rune rune
}

// Error implements error.
func (e *EncodingError) Error() string {
	return fmt.Sprintf("text: %q contains %q which has no EarthBound plain text encoding", e.Text, e.Rune)
}

// NameEncoder produces the fixed-width byte form of a name.
type NameEncoder interface {
	// EncodePadded returns exactly width bytes for s.
	//
	// Precondition: width >= 0.
	// Postcondition: len(result) == width, or a non-nil error.
	EncodePadded(s string, width int) ([]byte, error)
}

// PlainText is the EarthBound plain text encoding: printable ASCII shifted by 0x30.
var PlainText = plainText{}

type plainText struct{}

var _ encoding.Encoding = plainText{}
var _ NameEncoder = plainText{}

// NewEncoder returns an encoder from UTF-8 to EarthBound plain text.
func (plainText) NewEncoder() *encoding.Encoder {
	return &encoding.Encoder{Transformer: encoder{}}
}

// NewDecoder returns a decoder from EarthBound plain text to UTF-8.
// Padding bytes are dropped; bytes outside the table decode to U+FFFD.
func (plainText) NewDecoder() *encoding.Decoder {
	return &encoding.Decoder{Transformer: decoder{}}
}

// EncodePadded truncates s to width characters, encodes it and pads the
// result with Padding up to width bytes. Characters removed by truncation are
// never inspected.
func (p plainText) EncodePadded(s string, width int) ([]byte, error) {
	if width < 0 {
		return nil, fmt.Errorf("text: negative field width %d", width)
	}
	if utf8.RuneCountInString(s) > width {
		s = truncateRunes(s, width)
	}
	encoded, _, err := transform.Bytes(p.NewEncoder(), []byte(s))
	if err != nil {
		var ee *EncodingError
		if errors.As(err, &ee) {
			ee.Text = s
			return nil, ee
		}
		return nil, fmt.Errorf("text: encoding %q: %w", s, err)
	}
	out := make([]byte, width)
	copy(out, encoded)
	for i := len(encoded); i < width; i++ {
		out[i] = Padding
	}
	return out, nil
}

// Decode converts plain text bytes back to a display string.
func (p plainText) Decode(b []byte) (string, error) {
	out, _, err := transform.Bytes(p.NewDecoder(), b)
	if err != nil {
		return "", fmt.Errorf("text: decoding: %w", err)
	}
	return string(out), nil
}

// Fits reports whether s encodes into width bytes without truncation.
func Fits(s string, width int) bool {
	return utf8.RuneCountInString(s) <= width
}

func truncateRunes(s string, n int) string {
	i := 0
	for pos := range s {
		if i == n {
			return s[:pos]
		}
		i++
	}
	return s
}

type encoder struct{ transform.NopResetter }

func (encoder) Transform(dst, src []byte, atEOF bool) (nDst, nSrc int, err error) {
	for nSrc < len(src) {
		r, size := utf8.DecodeRune(src[nSrc:])
		if r == utf8.RuneError && size <= 1 && !atEOF && !utf8.FullRune(src[nSrc:]) {
			return nDst, nSrc, transform.ErrShortSrc
		}
		if r < firstRaw || r > lastRaw {
			return nDst, nSrc, &EncodingError{Rune: r}
		}
		if nDst >= len(dst) {
			return nDst, nSrc, transform.ErrShortDst
		}
		dst[nDst] = byte(r) + offset
		nDst++
		nSrc += size
	}
	return nDst, nSrc, nil
}

type decoder struct{ transform.NopResetter }

func (decoder) Transform(dst, src []byte, atEOF bool) (nDst, nSrc int, err error) {
	for nSrc < len(src) {
		b := src[nSrc]
		if b == Padding {
			nSrc++
			continue
		}
		r := utf8.RuneError
		if b >= firstRaw+offset && b <= lastRaw+offset {
			r = rune(b - offset)
		}
		if nDst+utf8.RuneLen(r) > len(dst) {
			return nDst, nSrc, transform.ErrShortDst
		}
		nDst += utf8.EncodeRune(dst[nDst:], r)
		nSrc++
	}
	return nDst, nSrc, nil
}

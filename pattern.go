package aseq

import (
	"encoding/hex"
	"errors"
	"fmt"
	"strconv"
	"strings"
)

var (
	ErrInvalidEncoding      = errors.New("invalid hex sequence")
	ErrInvalidContextLength = errors.New("context length must be a positive integer")
)

// Pattern is the byte sequence searched for together with the number of
// bytes reported after every match. A Pattern is immutable once built.
type Pattern struct {
	seq        []byte
	contextLen int
}

// NewPattern returns a Pattern matching seq. seq is copied.
func NewPattern(seq []byte, contextLength int) (*Pattern, error) {
	if len(seq) == 0 {
		return nil, fmt.Errorf("[aseq] empty byte sequence: %w", ErrInvalidEncoding)
	}
	if contextLength < 1 {
		return nil, fmt.Errorf("[aseq] got %d: %w", contextLength, ErrInvalidContextLength)
	}

	return &Pattern{
		seq:        append([]byte(nil), seq...),
		contextLen: contextLength,
	}, nil
}

// ParsePattern decodes text with DecodeHex and builds a Pattern from it.
func ParsePattern(text string, contextLength int) (*Pattern, error) {
	seq, err := DecodeHex(text)
	if err != nil {
		return nil, err
	}
	return NewPattern(seq, contextLength)
}

// ParseContextLength parses the decimal number of bytes to report after a match.
func ParseContextLength(text string) (int, error) {
	n, err := strconv.Atoi(strings.TrimSpace(text))
	if err != nil || n < 1 {
		return 0, fmt.Errorf("[aseq] %q: %w", text, ErrInvalidContextLength)
	}
	return n, nil
}

// DecodeHex decodes pairs of hex digits into bytes. A lone trailing digit
// decodes to a byte holding only that nibble, so "ABC" yields 0xAB 0x0C.
func DecodeHex(text string) ([]byte, error) {
	if text == "" {
		return nil, fmt.Errorf("[aseq] empty hex sequence: %w", ErrInvalidEncoding)
	}

	even := len(text) &^ 1
	out := make([]byte, (len(text)+1)/2)
	if _, err := hex.Decode(out, []byte(text[:even])); err != nil {
		return nil, fmt.Errorf("[aseq] %q: %w: %w", text, ErrInvalidEncoding, err)
	}

	if even < len(text) {
		v, ok := nibble(text[even])
		if !ok {
			return nil, fmt.Errorf("[aseq] %q: %w: %w", text, ErrInvalidEncoding, hex.InvalidByteError(text[even]))
		}
		out[len(out)-1] = v
	}

	return out, nil
}

func nibble(c byte) (byte, bool) {
	switch {
	case '0' <= c && c <= '9':
		return c - '0', true
	case 'a' <= c && c <= 'f':
		return c - 'a' + 10, true
	case 'A' <= c && c <= 'F':
		return c - 'A' + 10, true
	}
	return 0, false
}

// Bytes returns a copy of the byte sequence.
func (p *Pattern) Bytes() []byte {
	return append([]byte(nil), p.seq...)
}

func (p *Pattern) Len() int {
	return len(p.seq)
}

// ContextLength is the number of bytes reported after each match.
func (p *Pattern) ContextLength() int {
	return p.contextLen
}

func (p *Pattern) String() string {
	return hex.EncodeToString(p.seq)
}

// resume returns the partial match length to continue from after a carried
// partial match of n bytes fails. Candidate starts are tried one byte at a
// time over the carried bytes, which are known to equal seq[:n].
func (p *Pattern) resume(n int) int {
	for k := 1; k < n; k++ {
		if string(p.seq[k:n]) == string(p.seq[:n-k]) {
			return n - k
		}
	}
	return 0
}

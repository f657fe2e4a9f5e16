package aseq

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestDecodeHex(t *testing.T) {
	cases := []struct {
		name     string
		text     string
		expected []byte
	}{
		{"pair", "042B", []byte{0x04, 0x2B}},
		{"lower", "042b", []byte{0x04, 0x2B}},
		{"odd", "ABC", []byte{0xAB, 0x0C}},
		{"single", "F", []byte{0x0F}},
		{"ff", "ff", []byte{0xFF}},
		{"long", "00112233445566778899aabbccddeeff", []byte{
			0x00, 0x11, 0x22, 0x33, 0x44, 0x55, 0x66, 0x77,
			0x88, 0x99, 0xAA, 0xBB, 0xCC, 0xDD, 0xEE, 0xFF,
		}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			b, err := DecodeHex(tc.text)
			require.NoError(t, err)
			require.Equal(t, tc.expected, b)
		})
	}
}

func TestDecodeHexInvalid(t *testing.T) {
	for _, text := range []string{"", "0G", "G0", "04 2B", "0x04", "ABz", "-1"} {
		t.Run(text, func(t *testing.T) {
			_, err := DecodeHex(text)
			require.ErrorIs(t, err, ErrInvalidEncoding)
		})
	}
}

func TestParsePattern(t *testing.T) {
	p, err := ParsePattern("042B", 2)
	require.NoError(t, err)
	require.Equal(t, []byte{0x04, 0x2B}, p.Bytes())
	require.Equal(t, 2, p.Len())
	require.Equal(t, 2, p.ContextLength())
	require.Equal(t, "042b", p.String())

	// Bytes must not expose the internal sequence.
	b := p.Bytes()
	b[0] = 0xFF
	require.Equal(t, []byte{0x04, 0x2B}, p.Bytes())
}

func TestNewPatternCopies(t *testing.T) {
	seq := []byte{0x01, 0x02}
	p, err := NewPattern(seq, 1)
	require.NoError(t, err)
	seq[0] = 0xFF
	require.Equal(t, []byte{0x01, 0x02}, p.Bytes())
}

func TestNewPatternInvalid(t *testing.T) {
	_, err := NewPattern(nil, 1)
	require.ErrorIs(t, err, ErrInvalidEncoding)

	_, err = ParsePattern("FF", 0)
	require.ErrorIs(t, err, ErrInvalidContextLength)

	_, err = ParsePattern("FF", -3)
	require.ErrorIs(t, err, ErrInvalidContextLength)

	_, err = ParsePattern("XY", 1)
	require.ErrorIs(t, err, ErrInvalidEncoding)
}

func TestParseContextLength(t *testing.T) {
	n, err := ParseContextLength("16")
	require.NoError(t, err)
	require.Equal(t, 16, n)

	for _, text := range []string{"", "0", "-1", "abc", "12abc", "1.5"} {
		t.Run(text, func(t *testing.T) {
			_, err := ParseContextLength(text)
			require.ErrorIs(t, err, ErrInvalidContextLength)
		})
	}
}

func TestResume(t *testing.T) {
	cases := []struct {
		seq      string
		carried  int
		expected int
	}{
		{"AB", 1, 0},
		{"AAB", 2, 1},
		{"ABAB", 3, 1},
		{"ABABC", 4, 2},
		{"ABCD", 3, 0},
		{"AAAA", 3, 2},
	}

	for _, tc := range cases {
		t.Run(tc.seq, func(t *testing.T) {
			p, err := NewPattern([]byte(tc.seq), 1)
			require.NoError(t, err)
			require.Equal(t, tc.expected, p.resume(tc.carried))
		})
	}
}

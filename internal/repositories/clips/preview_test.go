package clips

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func utf16le(s string) []byte {
	var b []byte
	for _, r := range s {
		if r < 0x10000 {
			b = append(b, byte(r), byte(r>>8))
			continue
		}
		r -= 0x10000
		hi := 0xD800 + (r >> 10)
		lo := 0xDC00 + (r & 0x3FF)
		b = append(b, byte(hi), byte(hi>>8), byte(lo), byte(lo>>8))
	}
	return b
}

func TestDerivePreview_UTF16Text(t *testing.T) {
	assert.Equal(t, "hello", derivePreview(utf16le("hello")))
}

func TestDerivePreview_UTF16WithNulTerminator(t *testing.T) {
	data := append(utf16le("hello"), 0x00, 0x00)
	assert.Equal(t, "hello", derivePreview(data))
}

func TestDerivePreview_OddTrailingByteDiscarded(t *testing.T) {
	data := append(utf16le("hi"), 0xAB)
	assert.Equal(t, "hi", derivePreview(data))
}

func TestDerivePreview_InvalidUTF16FallsBackToUTF8(t *testing.T) {
	// "hola" followed by a lone high surrogate: invalid UTF-16, so the
	// lossy UTF-8 path must produce a preview containing the ASCII text.
	data := append([]byte("hola"), 0x3D, 0xD8)
	got := derivePreview(data)
	assert.NotEmpty(t, got)
	assert.Contains(t, got, "hola")
}

func TestDerivePreview_LoneLowSurrogateFallsBack(t *testing.T) {
	data := append([]byte("text"), 0x00, 0xDC)
	got := derivePreview(data)
	assert.Contains(t, got, "text")
}

func TestDerivePreview_BinaryOnlyPlaceholder(t *testing.T) {
	assert.Equal(t, "bins", derivePreview(nil))
}

func TestDerivePreview_TruncatesAtFiftyRunes(t *testing.T) {
	long := strings.Repeat("é", 80)
	got := derivePreview(utf16le(long))
	assert.Equal(t, strings.Repeat("é", 50), got)
	assert.Equal(t, 50, len([]rune(got)), "truncation counts characters, not bytes")
}

func TestDerivePreview_SurrogatePairSurvives(t *testing.T) {
	assert.Equal(t, "a😀b", derivePreview(utf16le("a😀b")))
}

package clips

import (
	"unicode/utf16"

	"golang.org/x/text/encoding/unicode"
)

// previewMaxRunes is the preview length in characters, not bytes.
const previewMaxRunes = 50

// binaryPreview is the fixed placeholder for records without a text payload.
const binaryPreview = "bins"

// derivePreview renders a listing preview from the bytes of a record's text
// payload. Captured text is UTF-16LE on the wire; payloads that are not
// valid UTF-16 fall back to a lossy UTF-8 decode (invalid sequences
// replaced, never an error). nil data means the record has no text payload.
func derivePreview(data []byte) string {
	if data == nil {
		return binaryPreview
	}

	s, ok := decodeUTF16LE(data)
	if !ok {
		// Lossy fallback: the x/text UTF-8 decoder substitutes malformed
		// bytes with U+FFFD instead of failing.
		b, err := unicode.UTF8.NewDecoder().Bytes(data)
		if err != nil {
			return binaryPreview
		}
		s = string(b)
	}
	return truncateRunes(s, previewMaxRunes)
}

// decodeUTF16LE strictly decodes little-endian UTF-16. A trailing unpaired
// byte is discarded; an unpaired surrogate makes the whole decode fail so
// the caller can fall back to UTF-8.
func decodeUTF16LE(b []byte) (string, bool) {
	units := make([]uint16, 0, len(b)/2)
	for i := 0; i+1 < len(b); i += 2 {
		units = append(units, uint16(b[i])|uint16(b[i+1])<<8)
	}

	for i := 0; i < len(units); i++ {
		u := units[i]
		switch {
		case u >= 0xD800 && u <= 0xDBFF:
			if i+1 >= len(units) || units[i+1] < 0xDC00 || units[i+1] > 0xDFFF {
				return "", false
			}
			i++
		case u >= 0xDC00 && u <= 0xDFFF:
			return "", false
		}
	}

	// NUL terminators from fixed-size clipboard buffers are not content.
	runes := utf16.Decode(units)
	for len(runes) > 0 && runes[len(runes)-1] == 0 {
		runes = runes[:len(runes)-1]
	}
	return string(runes), true
}

func truncateRunes(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n])
}

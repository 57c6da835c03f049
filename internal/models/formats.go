package models

import "fmt"

// Standard clipboard format identifiers carried over from the Win32
// numbering, which the stores use as-is.
const (
	FormatText        uint32 = 1  // CF_TEXT
	FormatBitmap      uint32 = 2  // CF_BITMAP
	FormatUnicodeText uint32 = 13 // CF_UNICODETEXT
	FormatHDrop       uint32 = 15 // CF_HDROP
)

var wellKnownFormats = map[uint32]string{
	FormatText:        "CF_TEXT",
	FormatBitmap:      "CF_BITMAP",
	FormatUnicodeText: "CF_UNICODETEXT",
	FormatHDrop:       "CF_HDROP",
}

// ResolveFormatName picks a human-readable name for a clipboard format.
// A name registered with the OS wins; well-known numeric formats map to
// their fixed names; anything else gets a generic ID_<n> label.
func ResolveFormatName(id uint32, registered string) string {
	if registered != "" {
		return registered
	}
	if name, ok := wellKnownFormats[id]; ok {
		return name
	}
	return fmt.Sprintf("ID_%d", id)
}

// IsTextFormat reports whether a format id carries plain text. Text formats
// are preferred over all others when deriving listing previews.
func IsTextFormat(id uint32) bool {
	return id == FormatText || id == FormatUnicodeText
}

package pixwin

import "strings"

// PixelFormat describes the channel layout of a pixel buffer.
type PixelFormat uint8

const (
	FormatRGBA PixelFormat = iota
	FormatRGB
	FormatBGRA
)

// BytesPerPixel returns the number of bytes one texel occupies.
// Unknown formats report 0.
func (f PixelFormat) BytesPerPixel() int {
	switch f {
	case FormatRGB:
		return 3
	case FormatRGBA, FormatBGRA:
		return 4
	default:
		return 0
	}
}

// Valid reports whether f is one of the known formats.
func (f PixelFormat) Valid() bool {
	return f.BytesPerPixel() != 0
}

// String returns the lower-case name used by ParsePixelFormat.
func (f PixelFormat) String() string {
	switch f {
	case FormatRGBA:
		return "rgba"
	case FormatRGB:
		return "rgb"
	case FormatBGRA:
		return "bgra"
	default:
		return "unknown"
	}
}

// ParsePixelFormat maps "rgb", "rgba" or "bgra" (any case) to a format.
func ParsePixelFormat(name string) (PixelFormat, bool) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "rgba":
		return FormatRGBA, true
	case "rgb":
		return FormatRGB, true
	case "bgra":
		return FormatBGRA, true
	default:
		return 0, false
	}
}

// MarshalText implements encoding.TextMarshaler so formats round-trip through config files.
func (f PixelFormat) MarshalText() ([]byte, error) {
	if !f.Valid() {
		return nil, ErrUnknownFormat
	}
	return []byte(f.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (f *PixelFormat) UnmarshalText(text []byte) error {
	parsed, ok := ParsePixelFormat(string(text))
	if !ok {
		return ErrUnknownFormat
	}
	*f = parsed
	return nil
}

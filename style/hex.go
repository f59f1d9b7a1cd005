package style

import (
	"fmt"
	"image/color"
)

// hexValue returns the value of a hex digit, or -1.
func hexValue(ch byte) int {
	switch {
	case '0' <= ch && ch <= '9':
		return int(ch - '0')
	case 'a' <= ch && ch <= 'f':
		return 10 + int(ch-'a')
	case 'A' <= ch && ch <= 'F':
		return 10 + int(ch-'A')
	}
	return -1
}

// IsValidHex reports whether s is #rgb, #rgba, #rrggbb or #rrggbbaa.
func IsValidHex(s string) bool {
	switch len(s) {
	case 4, 5, 7, 9:
	default:
		return false
	}
	if s[0] != '#' {
		return false
	}
	for i := 1; i < len(s); i++ {
		if hexValue(s[i]) < 0 {
			return false
		}
	}
	return true
}

// ParseHex decodes the channels of a hex color, returning 3 or 4 bytes.
// In the short forms each digit is the high nibble of its channel,
// so that #f80 gives f0 80 00.
func ParseHex(s string) ([]byte, error) {
	if !IsValidHex(s) {
		return nil, fmt.Errorf("invalid hex color %q", s)
	}
	digits := s[1:]
	short := len(digits) == 3 || len(digits) == 4
	var out []byte
	if short {
		out = make([]byte, len(digits))
		for i := range digits {
			out[i] = byte(hexValue(digits[i]) << 4)
		}
		return out, nil
	}
	out = make([]byte, len(digits)/2)
	for i := range out {
		out[i] = byte(hexValue(digits[2*i])<<4 | hexValue(digits[2*i+1]))
	}
	return out, nil
}

// ParseHexColor is ParseHex returning a color. A missing
// alpha channel means opaque.
func ParseHexColor(s string) (color.NRGBA, error) {
	b, err := ParseHex(s)
	if err != nil {
		return Black, err
	}
	c := color.NRGBA{R: b[0], G: b[1], B: b[2], A: 0xff}
	if len(b) == 4 {
		c.A = b[3]
	}
	return c, nil
}

// FormatHex returns the #rrggbbaa form of c.
func FormatHex(c color.NRGBA) string {
	return fmt.Sprintf("#%02x%02x%02x%02x", c.R, c.G, c.B, c.A)
}

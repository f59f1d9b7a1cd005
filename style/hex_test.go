package style

import (
	"image/color"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseHex(t *testing.T) {
	for _, test := range []struct {
		in   string
		want []byte
	}{
		{"#000", []byte{0, 0, 0}},
		{"#f80", []byte{0xf0, 0x80, 0x00}},
		{"#F80c", []byte{0xf0, 0x80, 0x00, 0xc0}},
		{"#ff8800", []byte{0xff, 0x88, 0x00}},
		{"#FF880011", []byte{0xff, 0x88, 0x00, 0x11}},
		{"#1a2B3c", []byte{0x1a, 0x2b, 0x3c}},
	} {
		got, err := ParseHex(test.in)
		if err != nil {
			t.Fatalf("%s: %s", test.in, err)
		}
		assert.Equal(t, test.want, got, test.in)
	}
}

func TestParseHexRejects(t *testing.T) {
	for _, in := range []string{
		"", "#", "#f", "#ff", "#fffff", "#fffffff", "#fffffffff0",
		"fff0", "#ggg", "#12345g", "#12 456", "ff0000",
	} {
		if IsValidHex(in) {
			t.Errorf("%q should be invalid", in)
		}
		if _, err := ParseHex(in); err == nil {
			t.Errorf("%q: expected an error", in)
		}
	}
}

func TestParseHexColor(t *testing.T) {
	c, err := ParseHexColor("#FF0000")
	assert.NoError(t, err)
	assert.Equal(t, color.NRGBA{R: 255, A: 255}, c)

	c, err = ParseHexColor("#00ff0080")
	assert.NoError(t, err)
	assert.Equal(t, color.NRGBA{G: 255, A: 0x80}, c)

	_, err = ParseHexColor("#zz0000")
	assert.Error(t, err)

	for _, c := range []color.NRGBA{{}, {R: 1, G: 2, B: 3, A: 4}, {R: 255, G: 255, B: 255, A: 255}} {
		got, err := ParseHexColor(FormatHex(c))
		assert.NoError(t, err)
		assert.Equal(t, c, got)
	}
}

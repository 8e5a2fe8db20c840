package settings

import (
	"fmt"
	"image/color"
	"strconv"
	"strings"

	"github.com/matzehuels/starbar/pkg/errors"
)

// Color is a non-premultiplied 8-bit RGBA color.
// The zero value is fully transparent.
type Color struct {
	R, G, B, A uint8
}

// Transparent draws nothing.
var Transparent = Color{}

// RGB returns an opaque color.
func RGB(r, g, b uint8) Color {
	return Color{R: r, G: g, B: b, A: 0xff}
}

// ParseColor parses "#RGB", "#RRGGBB", "#RRGGBBAA" or "transparent".
func ParseColor(s string) (Color, error) {
	if err := errors.ValidateHexColor(s); err != nil {
		return Color{}, err
	}
	if strings.EqualFold(s, "transparent") {
		return Transparent, nil
	}

	hex := s[1:]
	if len(hex) == 3 {
		hex = string([]byte{hex[0], hex[0], hex[1], hex[1], hex[2], hex[2]})
	}
	if len(hex) == 6 {
		hex += "ff"
	}

	v, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return Color{}, errors.Wrap(errors.ErrCodeInvalidColor, err, "parse color %q", s)
	}
	return Color{R: uint8(v >> 24), G: uint8(v >> 16), B: uint8(v >> 8), A: uint8(v)}, nil
}

// MustParseColor is like ParseColor but panics on malformed input.
// It is meant for package-level defaults.
func MustParseColor(s string) Color {
	c, err := ParseColor(s)
	if err != nil {
		panic(err)
	}
	return c
}

// Hex returns "#rrggbb" for opaque colors and "#rrggbbaa" otherwise.
func (c Color) Hex() string {
	if c.A == 0xff {
		return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
	}
	return fmt.Sprintf("#%02x%02x%02x%02x", c.R, c.G, c.B, c.A)
}

// RGBHex returns "#rrggbb", ignoring alpha.
func (c Color) RGBHex() string {
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}

// Opacity returns alpha in [0, 1].
func (c Color) Opacity() float64 {
	return float64(c.A) / 0xff
}

// IsTransparent reports whether the color has zero alpha.
func (c Color) IsTransparent() bool {
	return c.A == 0
}

func (c Color) String() string {
	if c.IsTransparent() {
		return "transparent"
	}
	return c.Hex()
}

// RGBA implements color.Color.
func (c Color) RGBA() (r, g, b, a uint32) {
	return color.NRGBA{R: c.R, G: c.G, B: c.B, A: c.A}.RGBA()
}

// MarshalText implements encoding.TextMarshaler.
func (c Color) MarshalText() ([]byte, error) {
	return []byte(c.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (c *Color) UnmarshalText(b []byte) error {
	parsed, err := ParseColor(string(b))
	if err != nil {
		return err
	}
	*c = parsed
	return nil
}

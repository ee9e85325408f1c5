package core

import (
	"fmt"
	"strings"

	"github.com/lucasb-eyer/go-colorful"
)

// RGB is a 24-bit color with integer channels.
// Channels are not clamped: arithmetic can leave the 0-255 range and
// callers that feed the formatter are expected to stay inside it.
type RGB struct {
	R, G, B int
}

// Common colors.
var (
	Black = RGB{0, 0, 0}
	White = RGB{255, 255, 255}
	Gray  = RGB{127, 127, 127}
)

// NewRGB creates a color from its channels.
func NewRGB(r, g, b int) RGB {
	return RGB{R: r, G: g, B: b}
}

// ParseHex creates a color from a hex string.
// Supports formats: "#RGB", "#RRGGBB", "RGB", "RRGGBB".
func ParseHex(hex string) (RGB, error) {
	if !strings.HasPrefix(hex, "#") {
		hex = "#" + hex
	}
	if len(hex) != 4 && len(hex) != 7 {
		return RGB{}, fmt.Errorf("invalid hex color length: %s", hex)
	}
	c, err := colorful.Hex(hex)
	if err != nil {
		return RGB{}, fmt.Errorf("invalid hex color %q: %w", hex, err)
	}
	return FromColorful(c), nil
}

// FromColorful converts a go-colorful color, clamping to the sRGB gamut.
func FromColorful(c colorful.Color) RGB {
	r, g, b := c.Clamped().RGB255()
	return RGB{R: int(r), G: int(g), B: int(b)}
}

// Colorful converts the color for use with go-colorful.
// Channels outside 0-255 are clamped first.
func (c RGB) Colorful() colorful.Color {
	cl := c.Clamp()
	return colorful.Color{
		R: float64(cl.R) / 255.0,
		G: float64(cl.G) / 255.0,
		B: float64(cl.B) / 255.0,
	}
}

// Add returns the channel-wise sum.
func (c RGB) Add(other RGB) RGB {
	return RGB{R: c.R + other.R, G: c.G + other.G, B: c.B + other.B}
}

// Offset adds k to every channel.
func (c RGB) Offset(k int) RGB {
	return RGB{R: c.R + k, G: c.G + k, B: c.B + k}
}

// Scale multiplies every channel by f, truncating toward zero.
func (c RGB) Scale(f float64) RGB {
	return c.ScaleChannels(f, f, f)
}

// ScaleChannels multiplies each channel by its own factor, truncating toward zero.
func (c RGB) ScaleChannels(fr, fg, fb float64) RGB {
	return RGB{
		R: int(float64(c.R) * fr),
		G: int(float64(c.G) * fg),
		B: int(float64(c.B) * fb),
	}
}

// Clamp limits every channel to 0-255.
func (c RGB) Clamp() RGB {
	return RGB{R: clampChannel(c.R), G: clampChannel(c.G), B: clampChannel(c.B)}
}

// InGamut returns true if every channel is within 0-255.
func (c RGB) InGamut() bool {
	return c == c.Clamp()
}

// Hex returns the #RRGGBB representation of the clamped color.
func (c RGB) Hex() string {
	cl := c.Clamp()
	return fmt.Sprintf("#%02x%02x%02x", cl.R, cl.G, cl.B)
}

// String returns a string representation of the color.
func (c RGB) String() string {
	return fmt.Sprintf("{%d, %d, %d}", c.R, c.G, c.B)
}

func clampChannel(v int) int {
	return max(0, min(255, v))
}

// Style is the foreground/background pair a span is painted with.
type Style struct {
	Fore RGB
	Back RGB
}

// NewStyle creates a style from foreground and background colors.
func NewStyle(fore, back RGB) Style {
	return Style{Fore: fore, Back: back}
}

// DefaultStyle returns black on black, the style of an empty canvas.
func DefaultStyle() Style {
	return Style{Fore: Black, Back: Black}
}

// Add offsets foreground and background by separate colors.
func (s Style) Add(fore, back RGB) Style {
	return Style{Fore: s.Fore.Add(fore), Back: s.Back.Add(back)}
}

// Scale multiplies foreground and background by separate factors.
func (s Style) Scale(foreF, backF float64) Style {
	return Style{Fore: s.Fore.Scale(foreF), Back: s.Back.Scale(backF)}
}

// Invert returns a style with foreground and background swapped.
func (s Style) Invert() Style {
	return Style{Fore: s.Back, Back: s.Fore}
}

// Equals returns true if two styles are identical.
func (s Style) Equals(other Style) bool {
	return s.Fore == other.Fore && s.Back == other.Back
}

// String returns a string representation of the style.
func (s Style) String() string {
	return s.Fore.String() + " " + s.Back.String()
}

// Package colour provides colour space conversion and theme palette generation.
package colour

import (
	"errors"
	"fmt"
	"image/color"
	"math"
	"strconv"
	"strings"

	"github.com/lucasb-eyer/go-colorful"
)

// ErrInvalidHex is returned when a string is not a 3 or 6 digit hex colour.
var ErrInvalidHex = errors.New("invalid hex colour")

// RGB represents a colour in RGB format.
type RGB struct {
	R uint8 `json:"r"`
	G uint8 `json:"g"`
	B uint8 `json:"b"`
}

// String returns the RGB color as a string in the format "rgb(r, g, b)".
func (rgb RGB) String() string {
	return fmt.Sprintf("rgb(%d, %d, %d)", rgb.R, rgb.G, rgb.B)
}

// Hex returns the RGB color as a hex string (e.g., "#1a2b3c").
func (rgb RGB) Hex() string {
	return RGBToHex(int(rgb.R), int(rgb.G), int(rgb.B))
}

// ToRGB converts a color.Color to RGB, discarding alpha.
func ToRGB(c color.Color) RGB {
	r, g, b, _ := c.RGBA()
	// RGBA returns values in the range [0, 65535], convert to [0, 255]
	return RGB{
		R: uint8(r >> 8),
		G: uint8(g >> 8),
		B: uint8(b >> 8),
	}
}

// HSL is a colour in the hue/saturation/lightness model.
// H is in degrees [0,360); S and L are percentages [0,100].
type HSL struct {
	H float64 `json:"h"`
	S float64 `json:"s"`
	L float64 `json:"l"`
}

// Round returns the HSL value with every component rounded to the nearest integer.
// A hue that rounds up to 360 wraps to 0.
func (c HSL) Round() HSL {
	h := math.Round(c.H)
	if h >= 360 {
		h -= 360
	}
	return HSL{H: h, S: math.Round(c.S), L: math.Round(c.L)}
}

// CSS formats the colour as "H S% L%", the form used by CSS custom properties.
func (c HSL) CSS() string {
	r := c.Round()
	return fmt.Sprintf("%d %d%% %d%%", int(r.H), int(r.S), int(r.L))
}

// HSV is a colour in the hue/saturation/value model.
// H is in degrees [0,360); S and V are percentages [0,100].
type HSV struct {
	H float64 `json:"h"`
	S float64 `json:"s"`
	V float64 `json:"v"`
}

// NormaliseHex returns hex in canonical "#rrggbb" form.
// The leading '#' is optional and 3-digit short forms are expanded.
func NormaliseHex(hex string) (string, error) {
	h := strings.TrimPrefix(strings.TrimSpace(hex), "#")
	if len(h) == 3 {
		h = string([]byte{h[0], h[0], h[1], h[1], h[2], h[2]})
	}
	if len(h) != 6 {
		return "", fmt.Errorf("%w: %q", ErrInvalidHex, hex)
	}
	if _, err := strconv.ParseUint(h, 16, 32); err != nil {
		return "", fmt.Errorf("%w: %q", ErrInvalidHex, hex)
	}
	return "#" + strings.ToLower(h), nil
}

// RGBToHex formats channels as "#rrggbb".
// Channels are not clamped: values outside [0,255] produce a malformed string.
func RGBToHex(r, g, b int) string {
	return fmt.Sprintf("#%02x%02x%02x", r, g, b)
}

// HexToRGB parses a hex colour. Every other conversion funnels through here.
func HexToRGB(hex string) (RGB, error) {
	norm, err := NormaliseHex(hex)
	if err != nil {
		return RGB{}, err
	}
	v, _ := strconv.ParseUint(norm[1:], 16, 32)
	return RGB{R: uint8(v >> 16), G: uint8(v >> 8), B: uint8(v)}, nil
}

// RGBToHSL converts RGB to HSL using the max-channel six wedge formula.
// Hue, saturation and lightness are rounded to whole degrees and percents,
// so a hex -> HSL -> hex round trip can drift by up to 5 per channel.
func RGBToHSL(rgb RGB) HSL {
	r := float64(rgb.R) / 255.0
	g := float64(rgb.G) / 255.0
	b := float64(rgb.B) / 255.0

	maxVal := math.Max(r, math.Max(g, b))
	minVal := math.Min(r, math.Min(g, b))
	l := (maxVal + minVal) / 2.0

	if maxVal == minVal {
		return HSL{L: math.Round(l * 100)}
	}

	d := maxVal - minVal
	var s float64
	if l > 0.5 {
		s = d / (2.0 - maxVal - minVal)
	} else {
		s = d / (maxVal + minVal)
	}

	var h float64
	switch maxVal {
	case r:
		h = (g - b) / d
		if g < b {
			h += 6
		}
	case g:
		h = (b-r)/d + 2
	default:
		h = (r-g)/d + 4
	}

	return HSL{H: h * 60, S: s * 100, L: l * 100}.Round()
}

// HSLToHex converts HSL to a hex colour. S and L are clamped to [0,100].
func HSLToHex(c HSL) string {
	s := clamp(c.S, 0, 100)
	l := clamp(c.L, 0, 100) / 100
	a := s * math.Min(l, 1-l) / 100

	f := func(n float64) int {
		k := math.Mod(n+c.H/30, 12)
		if k < 0 {
			k += 12
		}
		v := l - a*math.Max(math.Min(math.Min(k-3, 9-k), 1), -1)
		return int(math.Round(255 * v))
	}

	return RGBToHex(f(0), f(8), f(4))
}

// HexToHSL parses hex and converts it to HSL.
func HexToHSL(hex string) (HSL, error) {
	rgb, err := HexToRGB(hex)
	if err != nil {
		return HSL{}, err
	}
	return RGBToHSL(rgb), nil
}

// HexToHSV parses hex and converts it to HSV.
func HexToHSV(hex string) (HSV, error) {
	rgb, err := HexToRGB(hex)
	if err != nil {
		return HSV{}, err
	}
	c := colorful.Color{
		R: float64(rgb.R) / 255.0,
		G: float64(rgb.G) / 255.0,
		B: float64(rgb.B) / 255.0,
	}
	h, s, v := c.Hsv()
	return HSV{H: h, S: s * 100, V: v * 100}, nil
}

// ContrastColor picks black or white text for the given background using
// perceived brightness. Invalid input yields black.
func ContrastColor(hex string) string {
	rgb, err := HexToRGB(hex)
	if err != nil {
		return "#000000"
	}
	brightness := (0.299*float64(rgb.R) + 0.587*float64(rgb.G) + 0.114*float64(rgb.B)) / 255
	if brightness > 0.5 {
		return "#000000"
	}
	return "#ffffff"
}

// ContrastYIQ returns the YIQ brightness of hex in [0,255]. Invalid input yields 0.
func ContrastYIQ(hex string) float64 {
	rgb, err := HexToRGB(hex)
	if err != nil {
		return 0
	}
	return (299*float64(rgb.R) + 587*float64(rgb.G) + 114*float64(rgb.B)) / 1000
}

// AdjustLuminance shifts the HSL lightness of hex by amount percentage points,
// clamped to [0,100]. Invalid input is returned unchanged.
func AdjustLuminance(hex string, amount float64) string {
	hsl, err := HexToHSL(hex)
	if err != nil {
		return hex
	}
	hsl.L = clamp(hsl.L+amount, 0, 100)
	return HSLToHex(hsl)
}

// DarkenColor scales each RGB channel by (1-factor), flooring the result.
// This is linear channel scaling and deliberately differs from AdjustLuminance.
// Invalid input is returned unchanged.
func DarkenColor(hex string, factor float64) string {
	rgb, err := HexToRGB(hex)
	if err != nil {
		return hex
	}
	scale := func(v uint8) int {
		return int(clamp(math.Floor(float64(v)*(1-factor)), 0, 255))
	}
	return RGBToHex(scale(rgb.R), scale(rgb.G), scale(rgb.B))
}

func clamp(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, v))
}

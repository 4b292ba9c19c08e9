package colour

import (
	"errors"
	"image/color"
	"math"
	"testing"
)

func TestNormaliseHex(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    string
		wantErr bool
	}{
		{name: "six digit with hash", input: "#1A2B3C", want: "#1a2b3c"},
		{name: "six digit without hash", input: "1a2b3c", want: "#1a2b3c"},
		{name: "three digit", input: "#abc", want: "#aabbcc"},
		{name: "three digit without hash", input: "F00", want: "#ff0000"},
		{name: "surrounding space", input: "  #ffffff ", want: "#ffffff"},
		{name: "empty", input: "", wantErr: true},
		{name: "wrong length", input: "#abcd", wantErr: true},
		{name: "non hex digits", input: "#gggggg", wantErr: true},
		{name: "sign is not a digit", input: "#+12345", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := NormaliseHex(tt.input)
			if (err != nil) != tt.wantErr {
				t.Fatalf("NormaliseHex(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if tt.wantErr {
				if !errors.Is(err, ErrInvalidHex) {
					t.Errorf("NormaliseHex(%q) error = %v, want ErrInvalidHex", tt.input, err)
				}
				return
			}
			if got != tt.want {
				t.Errorf("NormaliseHex(%q) = %s, want %s", tt.input, got, tt.want)
			}
		})
	}
}

func TestRGBToHex(t *testing.T) {
	tests := []struct {
		name    string
		r, g, b int
		want    string
	}{
		{name: "black", r: 0, g: 0, b: 0, want: "#000000"},
		{name: "white", r: 255, g: 255, b: 255, want: "#ffffff"},
		{name: "zero padded", r: 1, g: 2, b: 3, want: "#010203"},
		{name: "out of range is not clamped", r: 256, g: 0, b: 0, want: "#1000000"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := RGBToHex(tt.r, tt.g, tt.b); got != tt.want {
				t.Errorf("RGBToHex(%d, %d, %d) = %s, want %s", tt.r, tt.g, tt.b, got, tt.want)
			}
		})
	}
}

func TestHexToRGB(t *testing.T) {
	got, err := HexToRGB("#abc")
	if err != nil {
		t.Fatalf("HexToRGB() error = %v", err)
	}
	if want := (RGB{R: 170, G: 187, B: 204}); got != want {
		t.Errorf("HexToRGB(#abc) = %+v, want %+v", got, want)
	}

	if _, err := HexToRGB("not a colour"); !errors.Is(err, ErrInvalidHex) {
		t.Errorf("HexToRGB(invalid) error = %v, want ErrInvalidHex", err)
	}
}

func TestHexRoundTrip(t *testing.T) {
	for r := 0; r <= 255; r += 15 {
		for g := 0; g <= 255; g += 15 {
			for b := 0; b <= 255; b += 15 {
				got, err := HexToRGB(RGBToHex(r, g, b))
				if err != nil {
					t.Fatalf("HexToRGB(RGBToHex(%d, %d, %d)) error = %v", r, g, b, err)
				}
				if int(got.R) != r || int(got.G) != g || int(got.B) != b {
					t.Fatalf("round trip of (%d, %d, %d) = %+v", r, g, b, got)
				}
			}
		}
	}
}

// Integer HSL cannot represent every RGB triple; 5 is the worst drift over
// the whole 24-bit space (#02e4e6 comes back as #02dfe3).
const maxHSLDrift = 5

func TestHSLRoundTrip(t *testing.T) {
	diff := func(a, b uint8) int {
		d := int(a) - int(b)
		if d < 0 {
			return -d
		}
		return d
	}

	for r := 0; r <= 255; r += 17 {
		for g := 0; g <= 255; g += 17 {
			for b := 0; b <= 255; b += 17 {
				in := RGB{R: uint8(r), G: uint8(g), B: uint8(b)}
				out, err := HexToRGB(HSLToHex(RGBToHSL(in)))
				if err != nil {
					t.Fatalf("HSLToHex produced unparseable output for %+v: %v", in, err)
				}
				if diff(in.R, out.R) > maxHSLDrift || diff(in.G, out.G) > maxHSLDrift || diff(in.B, out.B) > maxHSLDrift {
					t.Fatalf("HSL round trip of %s = %s", in.Hex(), out.Hex())
				}
			}
		}
	}
}

func TestRGBToHSL(t *testing.T) {
	tests := []struct {
		name string
		hex  string
		want string
	}{
		{name: "red", hex: "#ff0000", want: "0 100% 50%"},
		{name: "green", hex: "#00ff00", want: "120 100% 50%"},
		{name: "blue", hex: "#0000ff", want: "240 100% 50%"},
		{name: "white", hex: "#ffffff", want: "0 0% 100%"},
		{name: "black", hex: "#000000", want: "0 0% 0%"},
		{name: "mid blue", hex: "#3366cc", want: "220 60% 50%"},
		{name: "magenta wedge", hex: "#ff00ff", want: "300 100% 50%"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			hsl, err := HexToHSL(tt.hex)
			if err != nil {
				t.Fatalf("HexToHSL(%s) error = %v", tt.hex, err)
			}
			if got := hsl.CSS(); got != tt.want {
				t.Errorf("HexToHSL(%s).CSS() = %s, want %s", tt.hex, got, tt.want)
			}
		})
	}
}

func TestRGBToHSLRoundsComponents(t *testing.T) {
	tests := []struct {
		hex  string
		want HSL
	}{
		{hex: "#112233", want: HSL{H: 210, S: 50, L: 13}},
		{hex: "#02e4e6", want: HSL{H: 181, S: 98, L: 45}},
		{hex: "#808080", want: HSL{H: 0, S: 0, L: 50}},
		{hex: "#ff0001", want: HSL{H: 0, S: 100, L: 50}},
	}

	for _, tt := range tests {
		t.Run(tt.hex, func(t *testing.T) {
			got, err := HexToHSL(tt.hex)
			if err != nil {
				t.Fatalf("HexToHSL(%s) error = %v", tt.hex, err)
			}
			if got != tt.want {
				t.Errorf("HexToHSL(%s) = %+v, want %+v", tt.hex, got, tt.want)
			}
		})
	}
}

func TestHSLRoundWrapsHue(t *testing.T) {
	got := HSL{H: 359.7, S: 10.4, L: 20.6}.Round()
	want := HSL{H: 0, S: 10, L: 21}
	if got != want {
		t.Errorf("Round() = %+v, want %+v", got, want)
	}
}

func TestHexToHSV(t *testing.T) {
	red, err := HexToHSV("#ff0000")
	if err != nil {
		t.Fatalf("HexToHSV() error = %v", err)
	}
	if red.H != 0 || math.Abs(red.S-100) > 1e-9 || math.Abs(red.V-100) > 1e-9 {
		t.Errorf("HexToHSV(#ff0000) = %+v, want {0 100 100}", red)
	}

	grey, err := HexToHSV("#808080")
	if err != nil {
		t.Fatalf("HexToHSV() error = %v", err)
	}
	if grey.S != 0 || math.Abs(grey.V-50.196) > 0.01 {
		t.Errorf("HexToHSV(#808080) = %+v, want saturation 0 and value ~50.2", grey)
	}

	if _, err := HexToHSV("#12"); err == nil {
		t.Error("HexToHSV(invalid) expected error")
	}
}

func TestContrastColor(t *testing.T) {
	tests := []struct {
		hex  string
		want string
	}{
		{hex: "#ffffff", want: "#000000"},
		{hex: "#000000", want: "#ffffff"},
		{hex: "#224488", want: "#ffffff"},
		{hex: "#ffaa00", want: "#000000"},
		{hex: "invalid", want: "#000000"},
	}

	for _, tt := range tests {
		t.Run(tt.hex, func(t *testing.T) {
			if got := ContrastColor(tt.hex); got != tt.want {
				t.Errorf("ContrastColor(%s) = %s, want %s", tt.hex, got, tt.want)
			}
		})
	}
}

func TestContrastYIQ(t *testing.T) {
	if got := ContrastYIQ("#ffffff"); math.Abs(got-255) > 1e-9 {
		t.Errorf("ContrastYIQ(#ffffff) = %f, want 255", got)
	}
	if got := ContrastYIQ("#000000"); got != 0 {
		t.Errorf("ContrastYIQ(#000000) = %f, want 0", got)
	}
	if got := ContrastYIQ("#224488"); math.Abs(got-65.586) > 1e-9 {
		t.Errorf("ContrastYIQ(#224488) = %f, want 65.586", got)
	}
	if got := ContrastYIQ("bogus"); got != 0 {
		t.Errorf("ContrastYIQ(bogus) = %f, want 0", got)
	}
}

func TestAdjustLuminance(t *testing.T) {
	tests := []struct {
		name   string
		hex    string
		amount float64
		want   string
	}{
		{name: "lighten black", hex: "#000000", amount: 50, want: "#808080"},
		{name: "clamp at white", hex: "#ffffff", amount: 20, want: "#ffffff"},
		{name: "clamp at black", hex: "#000000", amount: -20, want: "#000000"},
		{name: "full lighten", hex: "#3366cc", amount: 100, want: "#ffffff"},
		{name: "full darken", hex: "#3366cc", amount: -100, want: "#000000"},
		{name: "zero is identity", hex: "#3366cc", amount: 0, want: "#3366cc"},
		{name: "rounded lightness", hex: "#112233", amount: 45, want: "#5e94c9"},
		{name: "rounded lightness dark", hex: "#112233", amount: -10, want: "#04080b"},
		{name: "invalid passes through", hex: "nothex", amount: 10, want: "nothex"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := AdjustLuminance(tt.hex, tt.amount); got != tt.want {
				t.Errorf("AdjustLuminance(%s, %v) = %s, want %s", tt.hex, tt.amount, got, tt.want)
			}
		})
	}
}

func TestAdjustLuminanceMonotonic(t *testing.T) {
	for _, hex := range []string{"#112233", "#3366cc", "#ffaa00", "#808080", "#e91e63", "#000000", "#ffffff"} {
		t.Run(hex, func(t *testing.T) {
			prev := -1.0
			for amount := -100.0; amount <= 100; amount += 5 {
				hsl, err := HexToHSL(AdjustLuminance(hex, amount))
				if err != nil {
					t.Fatalf("AdjustLuminance(%s, %v) produced invalid hex: %v", hex, amount, err)
				}
				if hsl.L < 0 || hsl.L > 100 {
					t.Fatalf("lightness %v out of range for amount %v", hsl.L, amount)
				}
				if hsl.L < prev {
					t.Fatalf("lightness decreased from %v to %v at amount %v", prev, hsl.L, amount)
				}
				prev = hsl.L
			}
		})
	}
}

func TestDarkenColor(t *testing.T) {
	tests := []struct {
		name   string
		hex    string
		factor float64
		want   string
	}{
		{name: "half", hex: "#808080", factor: 0.5, want: "#404040"},
		{name: "floor", hex: "#ff0101", factor: 0.5, want: "#7f0000"},
		{name: "full", hex: "#abcdef", factor: 1, want: "#000000"},
		{name: "none", hex: "#abcdef", factor: 0, want: "#abcdef"},
		{name: "clamped at zero", hex: "#abcdef", factor: 2, want: "#000000"},
		{name: "invalid passes through", hex: "#zz", factor: 0.5, want: "#zz"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := DarkenColor(tt.hex, tt.factor); got != tt.want {
				t.Errorf("DarkenColor(%s, %v) = %s, want %s", tt.hex, tt.factor, got, tt.want)
			}
		})
	}
}

func TestDarkenDiffersFromAdjustLuminance(t *testing.T) {
	darkened := DarkenColor("#808080", 0.5)
	shifted := AdjustLuminance("#808080", -50)
	if darkened != "#404040" {
		t.Fatalf("DarkenColor(#808080, 0.5) = %s, want #404040", darkened)
	}
	if darkened == shifted {
		t.Errorf("DarkenColor and AdjustLuminance both produced %s", darkened)
	}
}

func TestToRGB(t *testing.T) {
	got := ToRGB(color.NRGBA{R: 34, G: 68, B: 136, A: 255})
	if want := (RGB{R: 34, G: 68, B: 136}); got != want {
		t.Errorf("ToRGB() = %+v, want %+v", got, want)
	}
	if got.Hex() != "#224488" {
		t.Errorf("Hex() = %s, want #224488", got.Hex())
	}
	if got.String() != "rgb(34, 68, 136)" {
		t.Errorf("String() = %s, want rgb(34, 68, 136)", got.String())
	}
}

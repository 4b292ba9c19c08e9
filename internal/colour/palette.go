package colour

import (
	"encoding/json"
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

// Fixed error colours used by generated palettes.
const (
	LightError = "#B3261E"
	DarkError  = "#F2B8B5"

	// DefaultSource is the seed colour reported by the fallback palette.
	DefaultSource = "#6750A4"
)

// Role is a semantic colour role within a theme.
type Role string

const (
	RolePrimary    Role = "primary"
	RoleSecondary  Role = "secondary"
	RoleTertiary   Role = "tertiary"
	RoleBackground Role = "background"
	RoleSurface    Role = "surface"
	RoleError      Role = "error"
)

// Roles lists every semantic role in presentation order.
func Roles() []Role {
	return []Role{RolePrimary, RoleSecondary, RoleTertiary, RoleBackground, RoleSurface, RoleError}
}

// ThemeColors is one mode's semantic palette.
type ThemeColors struct {
	Primary    string `json:"primary" yaml:"primary"`
	Secondary  string `json:"secondary" yaml:"secondary"`
	Tertiary   string `json:"tertiary" yaml:"tertiary"`
	Background string `json:"background" yaml:"background"`
	Surface    string `json:"surface" yaml:"surface"`
	Error      string `json:"error" yaml:"error"`
}

// Get returns the hex colour for role.
func (t ThemeColors) Get(role Role) (string, bool) {
	switch role {
	case RolePrimary:
		return t.Primary, true
	case RoleSecondary:
		return t.Secondary, true
	case RoleTertiary:
		return t.Tertiary, true
	case RoleBackground:
		return t.Background, true
	case RoleSurface:
		return t.Surface, true
	case RoleError:
		return t.Error, true
	default:
		return "", false
	}
}

// ColorPalette holds the light and dark themes derived from one image.
type ColorPalette struct {
	Light    ThemeColors `json:"light" yaml:"light"`
	Dark     ThemeColors `json:"dark" yaml:"dark"`
	Source   string      `json:"source" yaml:"source"`
	ColorHex []string    `json:"colorHex" yaml:"colorHex"`
}

// FallbackPalette returns the baseline palette used when no colours could be extracted.
func FallbackPalette() ColorPalette {
	return ColorPalette{
		Light: ThemeColors{
			Primary:    "#6750A4",
			Secondary:  "#625B71",
			Tertiary:   "#7D5260",
			Background: "#FFFBFE",
			Surface:    "#FFFBFE",
			Error:      LightError,
		},
		Dark: ThemeColors{
			Primary:    "#D0BCFF",
			Secondary:  "#CCC2DC",
			Tertiary:   "#EFB8C8",
			Background: "#1C1B1F",
			Surface:    "#1C1B1F",
			Error:      DarkError,
		},
		Source:   DefaultSource,
		ColorHex: []string{},
	}
}

// GenerateThemePalette derives light and dark themes from extracted colours.
// colors[0] is the source; colors[1] and colors[2], when present, seed the
// secondary and tertiary roles. An empty list yields FallbackPalette.
func GenerateThemePalette(colors []string) ColorPalette {
	if len(colors) == 0 {
		return FallbackPalette()
	}

	source := colors[0]

	secondary := AdjustLuminance(source, 10)
	if len(colors) > 1 {
		secondary = colors[1]
	}

	tertiary := AdjustLuminance(source, -10)
	if len(colors) > 2 {
		tertiary = colors[2]
	}

	return ColorPalette{
		Light: ThemeColors{
			Primary:    source,
			Secondary:  secondary,
			Tertiary:   tertiary,
			Background: AdjustLuminance(source, 45),
			Surface:    AdjustLuminance(source, 40),
			Error:      LightError,
		},
		Dark: ThemeColors{
			Primary:    AdjustLuminance(source, 20),
			Secondary:  AdjustLuminance(secondary, 20),
			Tertiary:   AdjustLuminance(tertiary, 20),
			Background: AdjustLuminance(source, -45),
			Surface:    AdjustLuminance(source, -40),
			Error:      DarkError,
		},
		Source:   source,
		ColorHex: append([]string(nil), colors...),
	}
}

// IsFallback reports whether the palette was built without any extracted colours.
func (p ColorPalette) IsFallback() bool {
	return len(p.ColorHex) == 0
}

// ToJSON converts the palette to indented JSON.
func (p ColorPalette) ToJSON() ([]byte, error) {
	if p.ColorHex == nil {
		p.ColorHex = []string{}
	}
	return json.MarshalIndent(p, "", "  ")
}

// ToYAML converts the palette to YAML.
func (p ColorPalette) ToYAML() ([]byte, error) {
	if p.ColorHex == nil {
		p.ColorHex = []string{}
	}
	return yaml.Marshal(p)
}

// String returns a human-readable representation of the palette.
func (p ColorPalette) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "Source: %s\n", p.Source)
	if p.IsFallback() {
		b.WriteString("Extracted: (none, using fallback)\n")
	} else {
		fmt.Fprintf(&b, "Extracted: %s\n", strings.Join(p.ColorHex, " "))
	}
	for _, mode := range []struct {
		name   string
		colors ThemeColors
	}{{"light", p.Light}, {"dark", p.Dark}} {
		fmt.Fprintf(&b, "\n%s:\n", mode.name)
		for _, role := range Roles() {
			hex, _ := mode.colors.Get(role)
			fmt.Fprintf(&b, "  %-11s %s\n", role, hex)
		}
	}
	return b.String()
}

// ExtractedColors is the lightweight four-colour theme produced by canvas sampling.
type ExtractedColors struct {
	Primary     string `json:"primary"`
	Secondary   string `json:"secondary"`
	TextColor   string `json:"textColor"`
	AccentColor string `json:"accentColor"`
}

// DefaultExtractedColors is returned whenever canvas sampling fails.
var DefaultExtractedColors = ExtractedColors{
	Primary:     "#2979FF",
	Secondary:   "#1A237E",
	TextColor:   "#ffffff",
	AccentColor: "#FF9800",
}

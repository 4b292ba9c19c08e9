package colour

import (
	"fmt"
	"strings"
)

// ANSI escape codes for terminal colours.
const (
	ansiReset    = "\033[0m"
	ansiFgPrefix = "\033[38;2;"
	ansiBgPrefix = "\033[48;2;"
	ansiSuffix   = "m"
	defaultWidth = 8
)

// ColourPreview returns a solid ANSI block of the given width for a colour.
func ColourPreview(c RGB, width int) string {
	if width <= 0 {
		width = defaultWidth
	}
	bg := fmt.Sprintf("%s%d;%d;%d%s", ansiBgPrefix, c.R, c.G, c.B, ansiSuffix)
	return bg + strings.Repeat(" ", width) + ansiReset
}

// ColourPreviewWithText returns a colour block with centred text in the
// contrasting foreground picked by ContrastColor.
func ColourPreviewWithText(c RGB, text string, width int) string {
	if width <= 0 {
		width = defaultWidth
	}

	fg, _ := HexToRGB(ContrastColor(c.Hex()))

	displayText := text
	if len(text) > width {
		displayText = text[:width]
	} else if len(text) < width {
		padding := (width - len(text)) / 2
		displayText = strings.Repeat(" ", padding) + text + strings.Repeat(" ", width-len(text)-padding)
	}

	bg := fmt.Sprintf("%s%d;%d;%d%s", ansiBgPrefix, c.R, c.G, c.B, ansiSuffix)
	fgCode := fmt.Sprintf("%s%d;%d;%d%s", ansiFgPrefix, fg.R, fg.G, fg.B, ansiSuffix)
	return bg + fgCode + displayText + ansiReset
}

// FormatHexWithPreview formats a hex colour with its preview block.
// Unparseable input is returned as-is.
func FormatHexWithPreview(hex string, width int) string {
	rgb, err := HexToRGB(hex)
	if err != nil {
		return hex
	}
	return fmt.Sprintf("%s %s", ColourPreview(rgb, width), hex)
}

// FormatHexWithLabel formats a hex colour with a label and preview.
func FormatHexWithLabel(hex, label string, width int) string {
	rgb, err := HexToRGB(hex)
	if err != nil {
		return fmt.Sprintf("%-*s  %-12s %s", width, "", label, hex)
	}
	return fmt.Sprintf("%s  %-12s %s", ColourPreview(rgb, width), label, hex)
}

// Package printing formats documents into fixed-grid page descriptions
// and renders them to PostScript for submission to a print spooler.
package printing

import (
	"errors"
)

// ErrFontLoad indicates the requested font is not in the catalog.
// Callers recover by falling back to DefaultFont.
var ErrFontLoad = errors.New("font not available")

// Physical page constants for US Letter at typewriter spacing.
const (
	LetterWidthInches  = 8.5
	LetterHeightInches = 11.0
	PointsPerInch      = 72

	// Standard typewriter line spacing.
	LinesPerInch     = 6
	LineHeightPoints = PointsPerInch / LinesPerInch // 12

	// Vertical page geometry in lines at 6 lpi.
	PageHeight   = 66 // 11" of lines
	TopMargin    = 6  // 1"
	BottomMargin = 6  // 1"
	TextHeight   = PageHeight - TopMargin - BottomMargin // 54

	// Page number row within the top margin (1/2" from the top edge).
	PageNumberRow = 3
)

// DefaultFont is the catalog entry used when a requested font fails to
// load.
const DefaultFont = "Courier"

// FontConfig describes a typewriter font: its pitch decides the
// horizontal character grid, and with the side margins, the text width.
type FontConfig struct {
	Name        string
	PSName      string
	PSBoldName  string
	Pitch       int // characters per inch
	PointSize   int
	PageWidth   int // total characters per line
	LeftMargin  int
	RightMargin int
	TextWidth   int
	Embedded    bool // font must be embedded rather than referenced
}

// tenPitch builds a pica configuration: 85 columns across the page,
// 1" (10-char) margins, 65-column text area, 12pt glyphs.
func tenPitch(name, psName, psBold string, embedded bool) FontConfig {
	const pitch = 10
	full := int(LetterWidthInches * pitch)
	margin := pitch // 1" margins
	return FontConfig{
		Name:        name,
		PSName:      psName,
		PSBoldName:  psBold,
		Pitch:       pitch,
		PointSize:   12,
		PageWidth:   full,
		LeftMargin:  margin,
		RightMargin: margin,
		TextWidth:   full - 2*margin,
		Embedded:    embedded,
	}
}

// twelvePitch builds an elite configuration: 102 columns, 1.25"
// (15-char) margins, 72-column text area, 10pt glyphs.
func twelvePitch(name, psName, psBold string, embedded bool) FontConfig {
	const pitch = 12
	full := int(LetterWidthInches * pitch)
	margin := pitch * 5 / 4 // 1.25" margins
	return FontConfig{
		Name:        name,
		PSName:      psName,
		PSBoldName:  psBold,
		Pitch:       pitch,
		PointSize:   10,
		PageWidth:   full,
		LeftMargin:  margin,
		RightMargin: margin,
		TextWidth:   full - 2*margin,
		Embedded:    embedded,
	}
}

var fontCatalog = map[string]FontConfig{
	"Courier":            tenPitch("Courier", "Courier", "Courier-Bold", false),
	"Prestige Elite Std": twelvePitch("Prestige Elite Std", "PrestigeEliteStd", "PrestigeEliteStd-Bold", true),
}

// Lookup returns the catalog entry for name, or ErrFontLoad if the font
// is unknown.
func Lookup(name string) (FontConfig, error) {
	fc, ok := fontCatalog[name]
	if !ok {
		return FontConfig{}, ErrFontLoad
	}
	return fc, nil
}

// FromDimensions derives a configuration from explicit physical
// dimensions instead of the catalog: pitch in characters per inch and
// margins in inches on a US Letter sheet. The text area must come out
// at least one character wide.
func FromDimensions(name string, pitch, pointSize int, marginInches float64) (FontConfig, error) {
	if pitch <= 0 || pointSize <= 0 || marginInches < 0 {
		return FontConfig{}, ErrFontLoad
	}
	full := int(LetterWidthInches * float64(pitch))
	margin := int(marginInches * float64(pitch))
	text := full - 2*margin
	if text < 1 {
		return FontConfig{}, ErrFontLoad
	}
	return FontConfig{
		Name:        name,
		PSName:      name,
		PSBoldName:  name + "-Bold",
		Pitch:       pitch,
		PointSize:   pointSize,
		PageWidth:   full,
		LeftMargin:  margin,
		RightMargin: margin,
		TextWidth:   text,
	}, nil
}

// Fonts lists the catalog font names.
func Fonts() []string {
	names := make([]string, 0, len(fontCatalog))
	for name := range fontCatalog {
		names = append(names, name)
	}
	return names
}

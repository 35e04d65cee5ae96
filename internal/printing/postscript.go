package printing

import (
	"fmt"
	"strings"
)

// Render emits a PS-Adobe-3.0 document for the formatted pages. All
// pages share one font; fonts are re-encoded to ISOLatin1 so accented
// characters print. Underlines are stroked as a rule 2 points below the
// baseline, matching typewriter output.
func Render(pages []PageDescription) string {
	font, _ := Lookup(DefaultFont)
	if len(pages) > 0 {
		font = pages[0].Font
	}

	var b strings.Builder
	writeProlog(&b, font, len(pages))

	charWidth := float64(PointsPerInch) / float64(font.Pitch)
	// Baseline of row 0 sits one line height below the top edge.
	topBaseline := LetterHeightInches*PointsPerInch - LineHeightPoints

	for _, pg := range pages {
		fmt.Fprintf(&b, "%%%%Page: %d %d\n", pg.Number, pg.Number)
		b.WriteString("%%BeginPageSetup\n")
		fmt.Fprintf(&b, "/%s-ISOLatin1 findfont %d scalefont setfont\n", font.PSName, font.PointSize)
		b.WriteString("0 setgray\n")
		b.WriteString("%%EndPageSetup\n")
		b.WriteString("gsave\n")

		bold := false
		for _, run := range pg.Runs {
			if run.Style.Bold() != bold {
				bold = run.Style.Bold()
				name := font.PSName
				if bold {
					name = font.PSBoldName
				}
				fmt.Fprintf(&b, "/%s-ISOLatin1 findfont %d scalefont setfont\n", name, font.PointSize)
			}
			x := float64(run.Col) * charWidth
			y := topBaseline - float64(run.Row)*LineHeightPoints
			fmt.Fprintf(&b, "%.1f %.1f moveto\n", x, y)
			if run.Style.Underline() {
				b.WriteString("currentpoint /uy exch def /ux exch def\n")
			}
			fmt.Fprintf(&b, "(%s) show\n", escape(run.Text))
			if run.Style.Underline() {
				b.WriteString("currentpoint pop /ux2 exch def\n")
				b.WriteString("gsave\n")
				b.WriteString("newpath ux uy 2 sub moveto ux2 uy 2 sub lineto stroke\n")
				b.WriteString("grestore\n")
			}
		}

		b.WriteString("grestore\n")
		b.WriteString("showpage\n")
	}

	b.WriteString("%%Trailer\n%%EOF\n")
	return b.String()
}

func writeProlog(b *strings.Builder, font FontConfig, numPages int) {
	b.WriteString("%!PS-Adobe-3.0\n")
	b.WriteString("%%DocumentData: Clean7Bit\n")
	fmt.Fprintf(b, "%%%%Pages: %d\n", numPages)
	b.WriteString("%%PageOrder: Ascend\n")
	b.WriteString("%%BoundingBox: 0 0 612 792\n")
	fmt.Fprintf(b, "%%%%DocumentNeededResources: font %s\n", font.PSName)
	fmt.Fprintf(b, "%%%%DocumentNeededResources: font %s\n", font.PSBoldName)
	b.WriteString("%%EndComments\n\n")
	b.WriteString("%%BeginProlog\n")
	b.WriteString("/inch {72 mul} def\n")
	for _, name := range []string{font.PSName, font.PSBoldName} {
		fmt.Fprintf(b, "/%s-ISOLatin1 /%s findfont\n", name, name)
		b.WriteString("dup length dict begin\n")
		b.WriteString("  {1 index /FID ne {def} {pop pop} ifelse} forall\n")
		b.WriteString("  /Encoding ISOLatin1Encoding def\n")
		b.WriteString("  currentdict\n")
		b.WriteString("end\n")
		b.WriteString("definefont pop\n")
	}
	b.WriteString("%%EndProlog\n\n")
	b.WriteString("%%BeginSetup\n")
	fmt.Fprintf(b, "%%%%IncludeResource: font %s\n", font.PSName)
	b.WriteString("%%EndSetup\n")
}

// escape makes text safe inside a PostScript string literal. Latin-1
// characters become octal escapes; anything beyond Latin-1 prints as a
// question mark.
func escape(text string) string {
	var b strings.Builder
	for _, r := range text {
		switch r {
		case '\\':
			b.WriteString(`\\`)
		case '(':
			b.WriteString(`\(`)
		case ')':
			b.WriteString(`\)`)
		case '\n':
			b.WriteString(`\n`)
		case '\r':
			b.WriteString(`\r`)
		case '\t':
			b.WriteString(`\t`)
		case '\f':
			b.WriteString(`\f`)
		case '\b':
			b.WriteString(`\b`)
		default:
			switch {
			case r < 128:
				b.WriteRune(r)
			case r < 256:
				fmt.Fprintf(&b, `\%03o`, r)
			default:
				b.WriteByte('?')
			}
		}
	}
	return b.String()
}

// Package layout implements the reflow engine: it maps logical buffer
// offsets to width-bounded visual lines and back.
//
// Reflow is deterministic and total: for fixed text and width the
// visual line set is uniquely determined, the line spans partition
// [0, len) gap-free and in order, and a paragraph boundary always
// starts a new visual line.
package layout

import (
	"strings"

	"github.com/mattn/go-runewidth"

	"github.com/ljosa/pagemark/internal/engine/doc"
)

// VisualLine is a derived view of one wrapped line.
//
// [Start, End) is the line's span of logical rune offsets. End includes
// the separator swallowed at the break: the space consumed by a soft
// word wrap, or the newline terminating a paragraph. [Start, ContentEnd)
// is the displayed content. Width is the display width of the content
// with trailing whitespace trimmed, plus Indent. Indent is the number of
// hanging-indent columns rendered before the content on wrapped
// bullet/numbered lines (zero otherwise); indent columns exist only
// visually and are never part of the offset accounting.
type VisualLine struct {
	Start      int
	End        int
	ContentEnd int
	Indent     int
	Width      int
}

// Layout is the visual line set produced by one reflow pass.
type Layout struct {
	text  []rune
	lines []VisualLine
	width int
}

// Reflow recomputes visual lines for the whole document at the given
// wrap width. Width must be positive; the engine validates configured
// widths before reflow ever runs.
func Reflow(d *doc.Document, width int) *Layout {
	return ReflowText(d.Text(), width)
}

// ReflowText reflows raw text. The print formatter uses this to lay the
// same content out at a font's text width.
func ReflowText(text string, width int) *Layout {
	if width <= 0 {
		panic("layout: non-positive wrap width")
	}

	l := &Layout{text: []rune(text), width: width}

	pStart := 0
	for {
		pEnd := pStart
		for pEnd < len(l.text) && l.text[pEnd] != '\n' {
			pEnd++
		}
		hasNewline := pEnd < len(l.text)

		lines := wrapParagraph(l.text[pStart:pEnd], width)
		for i := range lines {
			lines[i].Start += pStart
			lines[i].End += pStart
			lines[i].ContentEnd += pStart
		}
		// The terminating newline is swallowed by the paragraph's
		// last visual line.
		if hasNewline {
			lines[len(lines)-1].End++
		}
		l.lines = append(l.lines, lines...)

		if !hasNewline {
			break
		}
		pStart = pEnd + 1
	}

	return l
}

// wrapParagraph word-wraps one paragraph, producing lines with
// paragraph-local offsets. Words break at single spaces; a word whose
// display width reaches the available width is hard-broken. Wrapped
// lines of bullet/numbered paragraphs carry a hanging indent, which
// narrows their available width.
func wrapParagraph(para []rune, width int) []VisualLine {
	if len(para) == 0 {
		return []VisualLine{{}}
	}

	hang := hangingIndentWidth(para)

	avail := func(lineIndex int) int {
		if lineIndex > 0 && hang > 0 {
			w := width - hang
			if w < 1 {
				return 1
			}
			return w
		}
		return width
	}

	var lines []VisualLine
	lineIndex := 0

	commit := func(start, contentEnd, end int) {
		indent := 0
		if lineIndex > 0 && hang > 0 {
			indent = hang
		}
		lines = append(lines, VisualLine{
			Start:      start,
			End:        end,
			ContentEnd: contentEnd,
			Indent:     indent,
			Width:      indent + runeDisplayWidth(strings.TrimRight(string(para[start:contentEnd]), " ")),
		})
		lineIndex++
	}

	words := splitWords(para)

	lineStart := 0  // offset of the current line's first rune
	lineLen := 0    // current line length in runes
	lineWidth := 0  // current line display width
	started := false

	flushHard := func(word wordSpan) wordSpan {
		// Break a long word into full-width chunks until the
		// remainder fits.
		w := avail(lineIndex)
		for word.width(para) >= w {
			cut := word.start
			cutWidth := 0
			for cut < word.end {
				rw := runewidth.RuneWidth(para[cut])
				if rw == 0 {
					rw = 1
				}
				if cutWidth+rw > w {
					break
				}
				cutWidth += rw
				cut++
			}
			commit(word.start, cut, cut)
			word.start = cut
			lineStart = cut
			w = avail(lineIndex)
		}
		return word
	}

	for _, word := range words {
		w := avail(lineIndex)
		if !started {
			if word.width(para) >= w {
				word = flushHard(word)
			}
			lineStart = word.start
			lineLen = word.end - word.start
			lineWidth = word.width(para)
			started = true
			continue
		}

		if lineWidth+1+word.width(para) < w {
			// The joining space sits between the committed runes.
			lineLen += 1 + (word.end - word.start)
			lineWidth += 1 + word.width(para)
			continue
		}

		// Commit the current line; its span swallows the break space.
		commit(lineStart, lineStart+lineLen, lineStart+lineLen+1)

		if word.width(para) >= avail(lineIndex) {
			word = flushHard(word)
		}
		lineStart = word.start
		lineLen = word.end - word.start
		lineWidth = word.width(para)
	}

	// Final line: no swallowed separator.
	commit(lineStart, lineStart+lineLen, lineStart+lineLen)

	return lines
}

// wordSpan is a space-delimited word within a paragraph.
type wordSpan struct {
	start, end int
}

func (w wordSpan) width(para []rune) int {
	return runeDisplayWidth(string(para[w.start:w.end]))
}

// splitWords splits on single spaces, preserving empty words so runs of
// spaces survive the round trip.
func splitWords(para []rune) []wordSpan {
	var words []wordSpan
	start := 0
	for i, r := range para {
		if r == ' ' {
			words = append(words, wordSpan{start, i})
			start = i + 1
		}
	}
	words = append(words, wordSpan{start, len(para)})
	return words
}

func runeDisplayWidth(s string) int {
	return runewidth.StringWidth(s)
}

// Width returns the wrap width the layout was computed for.
func (l *Layout) Width() int { return l.width }

// Lines returns the visual line set.
func (l *Layout) Lines() []VisualLine { return l.lines }

// LineCount returns the number of visual lines.
func (l *Layout) LineCount() int { return len(l.lines) }

// Line returns the visual line at row, clamped to valid rows.
func (l *Layout) Line(row int) VisualLine {
	if row < 0 {
		row = 0
	}
	if row >= len(l.lines) {
		row = len(l.lines) - 1
	}
	return l.lines[row]
}

// LineText returns the rendered text of a row, including hanging-indent
// padding.
func (l *Layout) LineText(row int) string {
	ln := l.Line(row)
	return strings.Repeat(" ", ln.Indent) + string(l.text[ln.Start:ln.ContentEnd])
}

// LineFor returns the row containing a logical offset. An offset that
// equals a line boundary belongs to the start of the next line; the
// document-end offset belongs to the last line.
func (l *Layout) LineFor(offset int) int {
	if offset <= 0 || len(l.lines) == 0 {
		return 0
	}
	lo, hi := 0, len(l.lines)-1
	for lo < hi {
		mid := (lo + hi) / 2
		if offset < l.lines[mid].End {
			hi = mid
		} else {
			lo = mid + 1
		}
	}
	return lo
}

// RowCol converts a logical offset to its visual row and column. The
// column accounts for hanging indent on wrapped lines.
func (l *Layout) RowCol(offset int) (int, int) {
	row := l.LineFor(offset)
	ln := l.lines[row]
	if offset < ln.Start {
		return row, ln.Indent
	}
	upTo := offset
	if upTo > ln.ContentEnd {
		upTo = ln.ContentEnd
	}
	col := ln.Indent + runeDisplayWidth(string(l.text[ln.Start:upTo]))
	return row, col
}

// OffsetAt converts a visual row/column back to a logical offset.
// Columns beyond the line's content clamp to its end; columns inside
// the hanging-indent area clamp to the first content rune.
func (l *Layout) OffsetAt(row, col int) int {
	ln := l.Line(row)
	col -= ln.Indent
	if col <= 0 {
		return ln.Start
	}
	pos := ln.Start
	w := 0
	for pos < ln.ContentEnd {
		rw := runewidth.RuneWidth(l.text[pos])
		if rw == 0 {
			rw = 1
		}
		if w+rw > col {
			break
		}
		w += rw
		pos++
	}
	return pos
}

// hangingIndentWidth returns the indent for bullet ("- ", "* ") and
// numbered ("1. ", "1) ") paragraphs: leading spaces plus marker plus
// the single following space. Zero when the paragraph is not a list
// item or more than one space follows the marker.
func hangingIndentWidth(para []rune) int {
	i := 0
	for i < len(para) && para[i] == ' ' {
		i++
	}
	if i >= len(para) {
		return 0
	}

	switch para[i] {
	case '-', '*':
		if i+2 < len(para) && para[i+1] == ' ' && para[i+2] != ' ' {
			return i + 2
		}
		return 0
	}

	j := i
	for j < len(para) && para[j] >= '0' && para[j] <= '9' {
		j++
	}
	if j == i || j >= len(para) {
		return 0
	}
	if para[j] != '.' && para[j] != ')' {
		return 0
	}
	if j+2 < len(para) && para[j+1] == ' ' && para[j+2] != ' ' {
		return j + 2
	}
	return 0
}

// Package page groups visual lines into pages for a physical layout.
//
// Page boundaries are determined solely by the configured lines per
// page and spacing, never by content: every visual line lands on
// exactly one page, pages are gap-free and in document order.
package page

import (
	"errors"

	"github.com/ljosa/pagemark/internal/layout"
)

// ErrInvalidConfiguration indicates a non-positive lines-per-page.
var ErrInvalidConfiguration = errors.New("invalid pagination configuration")

// DefaultLinesPerPage is the text-area height of a US letter page at
// six lines per inch with one-inch margins.
const DefaultLinesPerPage = 54

// Page is one physical sheet's worth of visual lines.
type Page struct {
	// Number is the 1-based page number.
	Number int

	// BreakBefore marks pages that begin a new physical page; it is
	// false only on page 1. Page numbers render on page 2 and later
	// only; this display rule is fixed.
	BreakBefore bool

	Lines []layout.VisualLine
}

// ShowNumber reports whether the page-number glyph renders for this
// page.
func (p Page) ShowNumber() bool { return p.Number > 1 }

// Paginate partitions lines into pages of at most linesPerPage content
// lines each. When doubleSpaced, every content line consumes two
// physical slots, halving the capacity (rounded down).
func Paginate(lines []layout.VisualLine, linesPerPage int, doubleSpaced bool) ([]Page, error) {
	capacity := Capacity(linesPerPage, doubleSpaced)
	if capacity <= 0 {
		return nil, ErrInvalidConfiguration
	}

	var pages []Page
	for start := 0; start < len(lines); start += capacity {
		end := start + capacity
		if end > len(lines) {
			end = len(lines)
		}
		number := len(pages) + 1
		pages = append(pages, Page{
			Number:      number,
			BreakBefore: number > 1,
			Lines:       lines[start:end],
		})
	}
	return pages, nil
}

// Capacity returns the effective content lines per page, or a
// non-positive value for an invalid configuration.
func Capacity(linesPerPage int, doubleSpaced bool) int {
	if doubleSpaced {
		return linesPerPage / 2
	}
	return linesPerPage
}

package printing

import (
	"strconv"

	"github.com/mattn/go-runewidth"

	"github.com/ljosa/pagemark/internal/engine/doc"
	"github.com/ljosa/pagemark/internal/layout"
	"github.com/ljosa/pagemark/internal/layout/page"
)

// Options are the print-time knobs.
type Options struct {
	DoubleSided  bool
	DoubleSpaced bool
}

// Run is a positioned maximal equal-style text segment on the page
// grid. Row and Col are zero-based character cells.
type Run struct {
	Row   int
	Col   int
	Text  string
	Style doc.Style
}

// PageDescription is one fully laid out page: a character grid of
// Cols x Rows with positioned text runs. It is a pure value; rendering
// and submission happen elsewhere.
type PageDescription struct {
	Number int
	Font   FontConfig
	Cols   int
	Rows   int
	Runs   []Run
}

// duplexGutter shifts the text area away from the binding edge when
// printing double-sided: odd pages bind on the left, even on the right.
const duplexGutter = 2

// Format reflows the document at the font's text width, paginates it,
// and positions every styled run on the page grid. Page numbers are
// centered on the top-margin row for pages after the first.
func Format(d *doc.Document, font FontConfig, opts Options) ([]PageDescription, error) {
	if font.TextWidth <= 0 || font.LeftMargin < 0 || font.RightMargin < 0 ||
		font.LeftMargin+font.TextWidth+font.RightMargin != font.PageWidth {
		return nil, page.ErrInvalidConfiguration
	}

	// An empty document prints nothing, not one blank sheet.
	if d.Len() == 0 {
		return nil, nil
	}

	lay := layout.Reflow(d, font.TextWidth)
	pages, err := page.Paginate(lay.Lines(), TextHeight, opts.DoubleSpaced)
	if err != nil {
		return nil, err
	}

	out := make([]PageDescription, 0, len(pages))
	for _, pg := range pages {
		desc := PageDescription{
			Number: pg.Number,
			Font:   font,
			Cols:   font.PageWidth,
			Rows:   PageHeight,
		}
		if pg.ShowNumber() {
			num := strconv.Itoa(pg.Number)
			desc.Runs = append(desc.Runs, Run{
				Row:  PageNumberRow,
				Col:  (font.PageWidth - len(num)) / 2,
				Text: num,
			})
		}

		left := leftMargin(font, opts, pg.Number)
		for i, vl := range pg.Lines {
			row := TopMargin + i
			if opts.DoubleSpaced {
				row = TopMargin + 2*i
			}
			runs, err := d.Runs(vl.Start, vl.ContentEnd)
			if err != nil {
				return nil, err
			}
			col := left + vl.Indent
			for _, r := range runs {
				if r.Text != "" {
					desc.Runs = append(desc.Runs, Run{
						Row:   row,
						Col:   col,
						Text:  r.Text,
						Style: r.Style,
					})
				}
				col += runewidth.StringWidth(r.Text)
			}
		}
		out = append(out, desc)
	}
	return out, nil
}

func leftMargin(font FontConfig, opts Options, pageNum int) int {
	if !opts.DoubleSided {
		return font.LeftMargin
	}
	if pageNum%2 == 1 {
		return font.LeftMargin + duplexGutter
	}
	return font.LeftMargin - duplexGutter
}

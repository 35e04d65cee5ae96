package app

import (
	"fmt"
	"strings"

	"github.com/gdamore/tcell/v2"
	"github.com/mattn/go-runewidth"

	"github.com/ljosa/pagemark/internal/engine"
)

// displayRow is one screen row of the document view: either a visual
// line or a page-break separator.
type displayRow struct {
	visualRow int // index into the engine's visual lines; -1 for separators
	pageNum   int // page whose break this separator marks; 0 for lines
}

// buildRows interleaves page-break separators with visual lines. The
// separator for page N sits directly above N's first line; page 1 has
// none.
func buildRows(pages []engine.Page) []displayRow {
	var rows []displayRow
	visual := 0
	for _, pg := range pages {
		if pg.BreakBefore {
			rows = append(rows, displayRow{visualRow: -1, pageNum: pg.Number})
		}
		for range pg.Lines {
			rows = append(rows, displayRow{visualRow: visual})
			visual++
		}
	}
	return rows
}

// displayRowFor returns the index in rows of a visual line.
func displayRowFor(rows []displayRow, visualRow int) int {
	for i, r := range rows {
		if r.visualRow == visualRow {
			return i
		}
	}
	return 0
}

func (a *App) draw() {
	a.screen.Clear()
	width, height := a.screen.Size()
	viewHeight := height - 1 // last row is the status line

	leftPad := (width - a.eng.Width()) / 2
	if leftPad < 0 {
		leftPad = 0
	}

	rows := buildRows(a.eng.Pages())
	curRow, curCol := a.eng.CursorRowCol()
	cursorDisplay := displayRowFor(rows, curRow)

	// Scroll to keep the cursor visible.
	if cursorDisplay < a.topRow {
		a.topRow = cursorDisplay
	}
	if viewHeight > 0 && cursorDisplay >= a.topRow+viewHeight {
		a.topRow = cursorDisplay - viewHeight + 1
	}

	for y := 0; y < viewHeight; y++ {
		i := a.topRow + y
		if i >= len(rows) {
			break
		}
		if rows[i].visualRow < 0 {
			a.drawSeparator(y, leftPad, rows[i].pageNum)
			continue
		}
		a.drawLine(y, leftPad, rows[i].visualRow)
	}

	a.drawStatus(height-1, width)
	a.screen.ShowCursor(leftPad+curCol, cursorDisplay-a.topRow)
	a.screen.Show()
}

// drawSeparator renders a page-break row: dashes with the page number
// embedded, e.g. "----- Page 2 -----".
func (a *App) drawSeparator(y, leftPad, pageNum int) {
	w := a.eng.Width()
	label := fmt.Sprintf(" Page %d ", pageNum)
	dashes := w - len(label)
	if dashes < 2 {
		dashes = 2
	}
	line := strings.Repeat("-", dashes/2) + label + strings.Repeat("-", dashes-dashes/2)
	style := tcell.StyleDefault.Dim(true)
	for i, r := range line {
		a.screen.SetContent(leftPad+i, y, r, nil, style)
	}
}

func (a *App) drawLine(y, leftPad, visualRow int) {
	vl := a.eng.Line(visualRow)
	runs, err := a.eng.LineRuns(visualRow)
	if err != nil {
		return
	}
	selStart, selEnd, selected := a.eng.Selection()
	x := leftPad + vl.Indent
	for _, run := range runs {
		style := tcell.StyleDefault.
			Bold(run.Style.Bold()).
			Underline(run.Style.Underline())
		offset := run.Start
		for _, r := range run.Text {
			st := style
			if selected && offset >= selStart && offset < selEnd {
				st = st.Reverse(true)
			}
			a.screen.SetContent(x, y, r, nil, st)
			w := runewidth.RuneWidth(r)
			if w == 0 {
				w = 1
			}
			x += w
			offset++
		}
	}
}

func (a *App) drawStatus(y, width int) {
	name := a.opts.Path
	if name == "" {
		name = "[new file]"
	}
	mod := ""
	if a.modified {
		mod = " [+]"
	}
	row, col := a.eng.CursorRowCol()
	left := fmt.Sprintf(" %s%s  Ln %d, Col %d  %d words", name, mod, row+1, col+1, a.eng.WordCount())
	if a.status != "" {
		left += "  " + a.status
	}

	style := tcell.StyleDefault.Reverse(true)
	for x := 0; x < width; x++ {
		a.screen.SetContent(x, y, ' ', nil, style)
	}
	x := 0
	for _, r := range left {
		if x >= width {
			break
		}
		a.screen.SetContent(x, y, r, nil, style)
		x += runewidth.RuneWidth(r)
	}
}

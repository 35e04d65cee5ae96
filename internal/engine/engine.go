// Package engine is the editor core facade: an attributed document
// buffer, undo/redo log, reflow layout, cursor, paginator, search, and
// print formatting behind one mutation surface.
//
// The engine is owned by a single goroutine and is not safe for
// concurrent use. Reflow runs eagerly after every mutation, so the view
// accessors never observe stale visual lines.
package engine

import (
	"github.com/ljosa/pagemark/internal/engine/cursor"
	"github.com/ljosa/pagemark/internal/engine/doc"
	"github.com/ljosa/pagemark/internal/engine/history"
	"github.com/ljosa/pagemark/internal/layout"
	"github.com/ljosa/pagemark/internal/layout/page"
	"github.com/ljosa/pagemark/internal/overstrike"
	"github.com/ljosa/pagemark/internal/printing"
	"github.com/ljosa/pagemark/internal/search"
)

// Re-export commonly used types for convenience.
type (
	// Style is the per-rune attribute bit set.
	Style = doc.Style

	// Fragment is attributed text exchanged with the undo log.
	Fragment = doc.Fragment

	// Run is a maximal equal-style substring.
	Run = doc.Run

	// VisualLine is one wrapped display line.
	VisualLine = layout.VisualLine

	// Page is one paginated group of visual lines.
	Page = page.Page

	// Direction selects the search scan direction.
	Direction = search.Direction
)

// Re-export constants.
const (
	StyleNone      = doc.StyleNone
	StyleBold      = doc.StyleBold
	StyleUnderline = doc.StyleUnderline

	Forward  = search.Forward
	Backward = search.Backward
)

// Engine ties the document, history, cursor, and layout together. All
// mutation goes through its four logical operations (insert, delete,
// move, set-attribute); everything else is a read-only view.
type Engine struct {
	doc  *doc.Document
	hist *history.History
	cur  cursor.Cursor
	lay  *layout.Layout

	// selAnchor is the selection anchor offset, or -1 when nothing is
	// selected. The selection spans anchor..cursor in either order.
	selAnchor int

	width        int
	linesPerPage int
	doubleSpaced bool
}

// New creates an empty engine. Configuration is validated up front:
// a non-positive width or an effective page capacity of zero lines is
// ErrInvalidConfiguration.
func New(opts ...Option) (*Engine, error) {
	cfg := config{
		width:        DefaultWidth,
		linesPerPage: DefaultLinesPerPage,
		maxUndo:      DefaultMaxUndoEntries,
	}
	for _, opt := range opts {
		opt(&cfg)
	}
	if cfg.width <= 0 {
		return nil, ErrInvalidConfiguration
	}
	if page.Capacity(cfg.linesPerPage, cfg.doubleSpaced) <= 0 {
		return nil, ErrInvalidConfiguration
	}

	e := &Engine{
		doc:          doc.New(),
		hist:         history.New(cfg.maxUndo),
		cur:          cursor.New(0),
		selAnchor:    -1,
		width:        cfg.width,
		linesPerPage: cfg.linesPerPage,
		doubleSpaced: cfg.doubleSpaced,
	}
	e.reflow()
	return e, nil
}

func (e *Engine) reflow() {
	e.lay = layout.Reflow(e.doc, e.width)
}

// Load replaces the document with decoded overstrike bytes. History is
// cleared and the cursor returns to the start.
func (e *Engine) Load(data []byte) error {
	d, err := overstrike.Decode(data)
	if err != nil {
		return err
	}
	e.doc = d
	e.hist.Clear()
	e.cur = cursor.New(0)
	e.selAnchor = -1
	e.reflow()
	return nil
}

// Encode serializes the document to the persisted overstrike form.
func (e *Engine) Encode() []byte {
	return overstrike.Encode(e.doc)
}

// Insert inserts styled text at the cursor and records one undoable
// command. Single-rune letter and digit insertions coalesce into typing
// bursts in the undo log.
func (e *Engine) Insert(text string, style Style) error {
	if text == "" {
		return nil
	}
	pos := e.cur.Offset()
	if err := e.doc.Insert(pos, text, style); err != nil {
		return err
	}
	after := pos + len([]rune(text))
	e.hist.Push(history.Command{
		Pos:          pos,
		Inserted:     doc.NewFragment(text, style),
		CursorBefore: pos,
		CursorAfter:  after,
	})
	e.cur = e.cur.MoveTo(after)
	e.selAnchor = -1
	e.reflow()
	return nil
}

// Delete removes n runes forward from the cursor.
func (e *Engine) Delete(n int) error {
	pos := e.cur.Offset()
	removed, err := e.doc.Delete(pos, n)
	if err != nil {
		return err
	}
	e.hist.Push(history.Command{
		Pos:          pos,
		Deleted:      removed,
		CursorBefore: pos,
		CursorAfter:  pos,
	})
	e.selAnchor = -1
	e.reflow()
	return nil
}

// Backspace removes the rune before the cursor. At the start of the
// document it is a no-op.
func (e *Engine) Backspace() error {
	pos := e.cur.Offset()
	if pos == 0 {
		return nil
	}
	removed, err := e.doc.Delete(pos-1, 1)
	if err != nil {
		return err
	}
	e.hist.Push(history.Command{
		Pos:          pos - 1,
		Deleted:      removed,
		CursorBefore: pos,
		CursorAfter:  pos - 1,
	})
	e.cur = e.cur.MoveTo(pos - 1)
	e.selAnchor = -1
	e.reflow()
	return nil
}

// SetAttribute toggles a style bit over [start, end) as one undoable
// command. Newlines never carry attributes. A toggle that changes
// nothing records no command, so it neither consumes an undo step nor
// discards pending redo.
func (e *Engine) SetAttribute(start, end int, attr Style, on bool) error {
	before, err := e.doc.Slice(start, end)
	if err != nil {
		return err
	}
	if err := e.doc.SetStyle(start, end, attr, on); err != nil {
		return err
	}
	after, err := e.doc.Slice(start, end)
	if err != nil {
		return err
	}
	if after.Equal(before) {
		return nil
	}
	// Represented as replace-in-place so the command inverts cleanly.
	e.hist.Push(history.Command{
		Pos:          start,
		Deleted:      before,
		Inserted:     after,
		CursorBefore: e.cur.Offset(),
		CursorAfter:  e.cur.Offset(),
	})
	e.selAnchor = -1
	e.reflow()
	return nil
}

// Undo reverts the most recent command and restores the cursor to its
// pre-command position.
func (e *Engine) Undo() error {
	cmd, err := e.hist.Undo(e.doc)
	if err != nil {
		return err
	}
	e.cur = e.cur.MoveTo(cmd.CursorBefore).Clamp(e.doc.Len())
	e.selAnchor = -1
	e.reflow()
	return nil
}

// Redo replays the most recently undone command.
func (e *Engine) Redo() error {
	cmd, err := e.hist.Redo(e.doc)
	if err != nil {
		return err
	}
	e.cur = e.cur.MoveTo(cmd.CursorAfter).Clamp(e.doc.Len())
	e.selAnchor = -1
	e.reflow()
	return nil
}

// CanUndo reports whether undo is available.
func (e *Engine) CanUndo() bool { return e.hist.CanUndo() }

// CanRedo reports whether redo is available.
func (e *Engine) CanRedo() bool { return e.hist.CanRedo() }

// Cursor returns the cursor's logical rune offset.
func (e *Engine) Cursor() int { return e.cur.Offset() }

// CursorRowCol returns the cursor position in visual line coordinates.
func (e *Engine) CursorRowCol() (int, int) {
	return e.lay.RowCol(e.cur.Offset())
}

// MoveTo places the cursor at an absolute offset.
func (e *Engine) MoveTo(offset int) error {
	if offset < 0 || offset > e.doc.Len() {
		return ErrOutOfRange
	}
	e.cur = e.cur.MoveTo(offset)
	return nil
}

// MoveLeft moves the cursor one rune back, clamped at the start.
func (e *Engine) MoveLeft() {
	if pos := e.cur.Offset(); pos > 0 {
		e.cur = e.cur.MoveTo(pos - 1)
	} else {
		e.cur = e.cur.MoveTo(0)
	}
}

// MoveRight moves the cursor one rune forward, clamped at the end.
func (e *Engine) MoveRight() {
	if pos := e.cur.Offset(); pos < e.doc.Len() {
		e.cur = e.cur.MoveTo(pos + 1)
	}
}

// MoveUp moves the cursor one visual line up, holding the sticky
// column: moving through a short line and back recovers the original
// column.
func (e *Engine) MoveUp() {
	e.moveVertical(-1)
}

// MoveDown moves the cursor one visual line down with the same sticky
// column behavior as MoveUp.
func (e *Engine) MoveDown() {
	e.moveVertical(1)
}

func (e *Engine) moveVertical(delta int) {
	row, col := e.lay.RowCol(e.cur.Offset())
	want := e.cur.PreferredCol()
	if want < 0 {
		want = col
	}
	row += delta
	if row < 0 {
		row = 0
	}
	if max := e.lay.LineCount() - 1; row > max {
		row = max
	}
	offset := e.lay.OffsetAt(row, want)
	e.cur = cursor.New(offset).WithPreferredCol(want)
}

// MoveLineStart moves to the first rune of the containing visual line.
func (e *Engine) MoveLineStart() {
	row := e.lay.LineFor(e.cur.Offset())
	e.cur = e.cur.MoveTo(e.lay.Line(row).Start)
}

// MoveLineEnd moves past the last content rune of the containing visual
// line.
func (e *Engine) MoveLineEnd() {
	row := e.lay.LineFor(e.cur.Offset())
	e.cur = e.cur.MoveTo(e.lay.Line(row).ContentEnd)
}

// MoveWordForward moves to the start of the next word.
func (e *Engine) MoveWordForward() {
	e.cur = e.cur.WordForward(e.doc)
}

// MoveWordBackward moves to the start of the previous word.
func (e *Engine) MoveWordBackward() {
	e.cur = e.cur.WordBackward(e.doc)
}

// MoveParagraphForward moves to the start of the next paragraph.
func (e *Engine) MoveParagraphForward() {
	e.cur = e.cur.ParagraphForward(e.doc)
}

// MoveParagraphBackward moves to the start of the current or previous
// paragraph.
func (e *Engine) MoveParagraphBackward() {
	e.cur = e.cur.ParagraphBackward(e.doc)
}

// Search scans for a case-insensitive literal match from an explicit
// offset, wrapping once. The cursor does not move.
func (e *Engine) Search(query string, from int, dir Direction) (int, error) {
	return search.Find(e.doc, query, from, dir)
}

// FindNext searches from just past the cursor (or just before it, going
// backward) and moves the cursor to the match.
func (e *Engine) FindNext(query string, dir Direction) (int, error) {
	from := e.cur.Offset()
	if dir == Forward {
		from++
	} else {
		from--
	}
	if from < 0 {
		from = e.doc.Len()
	}
	if from > e.doc.Len() {
		from = 0
	}
	pos, err := search.Find(e.doc, query, from, dir)
	if err != nil {
		return 0, err
	}
	e.cur = e.cur.MoveTo(pos)
	return pos, nil
}

// Text returns the document text.
func (e *Engine) Text() string { return e.doc.Text() }

// Len returns the document length in runes.
func (e *Engine) Len() int { return e.doc.Len() }

// WordCount returns the number of whitespace-separated words.
func (e *Engine) WordCount() int { return e.doc.WordCount() }

// Width returns the wrap width in columns.
func (e *Engine) Width() int { return e.width }

// SetWidth changes the wrap width and reflows.
func (e *Engine) SetWidth(width int) error {
	if width <= 0 {
		return ErrInvalidConfiguration
	}
	e.width = width
	e.reflow()
	return nil
}

// SetDoubleSpacing toggles double-spaced pagination.
func (e *Engine) SetDoubleSpacing(on bool) error {
	if page.Capacity(e.linesPerPage, on) <= 0 {
		return ErrInvalidConfiguration
	}
	e.doubleSpaced = on
	return nil
}

// VisualLines returns the current wrapped lines.
func (e *Engine) VisualLines() []VisualLine { return e.lay.Lines() }

// LineCount returns the number of visual lines.
func (e *Engine) LineCount() int { return e.lay.LineCount() }

// LineText returns the text of one visual line, indent included.
func (e *Engine) LineText(row int) string { return e.lay.LineText(row) }

// LineRuns returns the styled runs of one visual line's content.
func (e *Engine) LineRuns(row int) ([]Run, error) {
	vl := e.lay.Line(row)
	return e.doc.Runs(vl.Start, vl.ContentEnd)
}

// Line returns one visual line's span.
func (e *Engine) Line(row int) VisualLine { return e.lay.Line(row) }

// Pages paginates the current visual lines. Configuration was validated
// at construction, so pagination cannot fail.
func (e *Engine) Pages() []Page {
	pages, err := page.Paginate(e.lay.Lines(), e.linesPerPage, e.doubleSpaced)
	if err != nil {
		return nil
	}
	return pages
}

// Format lays the document out as print pages for the named catalog
// font. An unknown font reports ErrFontLoad; the caller decides whether
// to fall back to printing.DefaultFont.
func (e *Engine) Format(fontName string, opts printing.Options) ([]printing.PageDescription, error) {
	font, err := printing.Lookup(fontName)
	if err != nil {
		return nil, err
	}
	return printing.Format(e.doc, font, opts)
}

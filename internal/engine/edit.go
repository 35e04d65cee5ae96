package engine

import (
	"errors"

	"github.com/mattn/go-runewidth"

	"github.com/ljosa/pagemark/internal/engine/doc"
	"github.com/ljosa/pagemark/internal/engine/history"
)

// ErrCannotCenter reports that the paragraph at the cursor wraps to
// more than one line and so cannot be centered.
var ErrCannotCenter = errors.New("cannot center a wrapped paragraph")

// StartSelection anchors a selection at the cursor. The selection spans
// from the anchor to wherever the cursor moves next; any mutation
// clears it.
func (e *Engine) StartSelection() {
	e.selAnchor = e.cur.Offset()
}

// ClearSelection drops the selection anchor.
func (e *Engine) ClearSelection() {
	e.selAnchor = -1
}

// HasSelection reports whether a selection anchor is set.
func (e *Engine) HasSelection() bool { return e.selAnchor >= 0 }

// Selection returns the normalized [start, end) selection range. ok is
// false when no anchor is set; the range is empty when the cursor sits
// on the anchor.
func (e *Engine) Selection() (start, end int, ok bool) {
	if e.selAnchor < 0 {
		return 0, 0, false
	}
	start, end = e.selAnchor, e.cur.Offset()
	if start > end {
		start, end = end, start
	}
	return start, end, true
}

// SelectedFragment returns a copy of the selected attributed text, for
// the host's clipboard. ok is false for no or an empty selection.
func (e *Engine) SelectedFragment() (Fragment, bool) {
	start, end, ok := e.Selection()
	if !ok || start == end {
		return Fragment{}, false
	}
	f, err := e.doc.Slice(start, end)
	if err != nil {
		return Fragment{}, false
	}
	return f, true
}

// DeleteSelection removes the selected range as one undoable command
// and leaves the cursor at the selection start. Without a selection it
// is a no-op.
func (e *Engine) DeleteSelection() error {
	start, end, ok := e.Selection()
	if !ok || start == end {
		e.selAnchor = -1
		return nil
	}
	removed, err := e.doc.Delete(start, end-start)
	if err != nil {
		return err
	}
	e.hist.Push(history.Command{
		Pos:          start,
		Deleted:      removed,
		CursorBefore: e.cur.Offset(),
		CursorAfter:  start,
	})
	e.cur = e.cur.MoveTo(start)
	e.selAnchor = -1
	e.reflow()
	return nil
}

// InsertFragment pastes attributed text at the cursor as one undoable
// command.
func (e *Engine) InsertFragment(f Fragment) error {
	if f.Len() == 0 {
		return nil
	}
	pos := e.cur.Offset()
	if err := e.doc.InsertFragment(pos, f); err != nil {
		return err
	}
	after := pos + f.Len()
	e.hist.Push(history.Command{
		Pos:          pos,
		Inserted:     f.Clone(),
		CursorBefore: pos,
		CursorAfter:  after,
	})
	e.cur = e.cur.MoveTo(after)
	e.selAnchor = -1
	e.reflow()
	return nil
}

// KillLine deletes from the cursor to the end of the containing visual
// line. At the end of a paragraph it joins the next paragraph instead;
// at the end of the document it is a no-op.
func (e *Engine) KillLine() error {
	pos := e.cur.Offset()
	if pos >= e.doc.Len() {
		return nil
	}

	_, paraEnd := e.doc.ParagraphBounds(pos)
	n := 1 // at paraEnd the next rune is the joining newline
	if pos < paraEnd {
		vl := e.lay.Line(e.lay.LineFor(pos))
		end := vl.End
		if end > paraEnd {
			end = paraEnd
		}
		n = end - pos
	}
	if n <= 0 {
		return nil
	}

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

// CenterLine centers the paragraph at the cursor within the wrap width
// by replacing its leading/trailing spaces, keeping the content's
// styles. A paragraph whose content fills the width (and so wraps)
// reports ErrCannotCenter; an all-space paragraph is cleared.
func (e *Engine) CenterLine() error {
	pos := e.cur.Offset()
	start, end := e.doc.ParagraphBounds(pos)
	para, err := e.doc.Slice(start, end)
	if err != nil {
		return err
	}
	if para.Len() == 0 {
		return nil
	}

	lead := 0
	for lead < para.Len() && para.Text[lead] == ' ' {
		lead++
	}
	trail := para.Len()
	for trail > lead && para.Text[trail-1] == ' ' {
		trail--
	}

	var content Fragment
	if trail > lead {
		content = Fragment{
			Text:   para.Text[lead:trail],
			Styles: para.Styles[lead:trail],
		}
		if w := runewidth.StringWidth(string(content.Text)); w >= e.width {
			return ErrCannotCenter
		}
	}

	spaces := 0
	if content.Len() > 0 {
		spaces = (e.width - runewidth.StringWidth(string(content.Text))) / 2
	}
	centered := doc.NewFragment(spacesOf(spaces), StyleNone).Append(content)

	if _, err := e.doc.Delete(start, para.Len()); err != nil {
		return err
	}
	if err := e.doc.InsertFragment(start, centered); err != nil {
		return err
	}

	// Keep the cursor over the same content rune it sat on.
	rel := pos - start
	if rel <= lead {
		rel = spaces
	} else {
		rel = rel - lead + spaces
	}
	if rel > centered.Len() {
		rel = centered.Len()
	}

	e.hist.Push(history.Command{
		Pos:          start,
		Deleted:      para,
		Inserted:     centered,
		CursorBefore: pos,
		CursorAfter:  start + rel,
	})
	e.cur = e.cur.MoveTo(start + rel)
	e.selAnchor = -1
	e.reflow()
	return nil
}

func spacesOf(n int) string {
	b := make([]byte, n)
	for i := range b {
		b[i] = ' '
	}
	return string(b)
}

// Package cursor implements the cursor model: a single logical offset
// plus a preferred column for vertical movement.
package cursor

import (
	"unicode"

	"github.com/ljosa/pagemark/internal/engine/doc"
)

// Cursor is an insertion point in the document. Cursor is an immutable
// value type; motion methods return the moved cursor.
type Cursor struct {
	offset int

	// preferredCol is the sticky column for vertical movement: the
	// visual column the user last requested, re-applied on longer
	// lines. Negative means unset.
	preferredCol int
}

// New creates a cursor at the given offset.
func New(offset int) Cursor {
	if offset < 0 {
		offset = 0
	}
	return Cursor{offset: offset, preferredCol: -1}
}

// Offset returns the cursor's logical rune offset.
func (c Cursor) Offset() int { return c.offset }

// PreferredCol returns the sticky column, or -1 if unset.
func (c Cursor) PreferredCol() int { return c.preferredCol }

// MoveTo returns a cursor at offset with the sticky column cleared.
// Horizontal movement and edits reset the remembered column.
func (c Cursor) MoveTo(offset int) Cursor {
	if offset < 0 {
		offset = 0
	}
	return Cursor{offset: offset, preferredCol: -1}
}

// WithPreferredCol returns a cursor that remembers col for vertical
// movement.
func (c Cursor) WithPreferredCol(col int) Cursor {
	c.preferredCol = col
	return c
}

// Clamp returns a cursor clamped to [0, maxOffset].
func (c Cursor) Clamp(maxOffset int) Cursor {
	if c.offset < 0 {
		c.offset = 0
	}
	if c.offset > maxOffset {
		c.offset = maxOffset
	}
	return c
}

// WordForward returns the cursor advanced to the next word boundary:
// it skips the rest of the current word, then any whitespace, stopping
// at the start of the next word or the document end.
func (c Cursor) WordForward(d *doc.Document) Cursor {
	pos := c.offset
	n := d.Len()
	for pos < n && !unicode.IsSpace(d.RuneAt(pos)) {
		pos++
	}
	for pos < n && unicode.IsSpace(d.RuneAt(pos)) {
		pos++
	}
	return c.MoveTo(pos)
}

// WordBackward returns the cursor moved to the start of the previous
// word.
func (c Cursor) WordBackward(d *doc.Document) Cursor {
	pos := c.offset
	if pos == 0 {
		return c.MoveTo(0)
	}
	pos--
	for pos > 0 && unicode.IsSpace(d.RuneAt(pos)) {
		pos--
	}
	for pos > 0 && !unicode.IsSpace(d.RuneAt(pos-1)) {
		pos--
	}
	return c.MoveTo(pos)
}

// ParagraphForward returns the cursor at the start of the next
// paragraph, or the document end from the final paragraph.
func (c Cursor) ParagraphForward(d *doc.Document) Cursor {
	_, end := d.ParagraphBounds(c.offset)
	if end < d.Len() {
		return c.MoveTo(end + 1)
	}
	return c.MoveTo(d.Len())
}

// ParagraphBackward returns the cursor at the start of the current
// paragraph, or of the previous paragraph when already at a start.
func (c Cursor) ParagraphBackward(d *doc.Document) Cursor {
	start, _ := d.ParagraphBounds(c.offset)
	if c.offset > start {
		return c.MoveTo(start)
	}
	if start == 0 {
		return c.MoveTo(0)
	}
	prevStart, _ := d.ParagraphBounds(start - 1)
	return c.MoveTo(prevStart)
}

package doc

import (
	"errors"
	"unicode"
)

// Errors returned by document operations. Both indicate a contract
// violation at the caller, never a user-recoverable condition.
var (
	ErrOutOfRange   = errors.New("position out of range")
	ErrInvalidRange = errors.New("invalid range")
)

// Document owns the logical text with per-rune style attributes.
// All offsets are rune offsets.
type Document struct {
	text     []rune
	styles   []Style
	revision uint64
}

// New creates an empty document.
func New() *Document {
	return &Document{}
}

// FromString creates a document with unstyled initial content.
func FromString(s string) *Document {
	d := &Document{text: []rune(s)}
	d.styles = make([]Style, len(d.text))
	return d
}

// FromFragment creates a document from attributed content.
func FromFragment(f Fragment) *Document {
	c := f.Clone()
	return &Document{text: c.Text, styles: c.Styles}
}

// Len returns the document length in runes.
func (d *Document) Len() int { return len(d.text) }

// Revision returns a counter that changes on every mutation. Cached
// layout derived from the document is invalid once the revision moves.
func (d *Document) Revision() uint64 { return d.revision }

// Text returns the full text without styles.
func (d *Document) Text() string { return string(d.text) }

// RuneAt returns the rune at pos, or 0 if pos is out of range.
func (d *Document) RuneAt(pos int) rune {
	if pos < 0 || pos >= len(d.text) {
		return 0
	}
	return d.text[pos]
}

// StyleAt returns the style at pos, or StyleNone if pos is out of range.
func (d *Document) StyleAt(pos int) Style {
	if pos < 0 || pos >= len(d.styles) {
		return StyleNone
	}
	return d.styles[pos]
}

// Insert inserts text at pos with every rune carrying style.
func (d *Document) Insert(pos int, text string, style Style) error {
	return d.InsertFragment(pos, NewFragment(text, style))
}

// InsertFragment inserts attributed content at pos.
func (d *Document) InsertFragment(pos int, f Fragment) error {
	if pos < 0 || pos > len(d.text) {
		return ErrOutOfRange
	}
	if f.Len() == 0 {
		return nil
	}
	d.text = append(d.text[:pos], append(append([]rune{}, f.Text...), d.text[pos:]...)...)
	d.styles = append(d.styles[:pos], append(append([]Style{}, f.Styles...), d.styles[pos:]...)...)
	d.revision++
	return nil
}

// Delete removes n runes starting at pos and returns the removed
// content for undo capture.
func (d *Document) Delete(pos, n int) (Fragment, error) {
	if n < 0 {
		return Fragment{}, ErrInvalidRange
	}
	if pos < 0 || pos+n > len(d.text) {
		return Fragment{}, ErrOutOfRange
	}
	removed := Fragment{
		Text:   append([]rune{}, d.text[pos:pos+n]...),
		Styles: append([]Style{}, d.styles[pos:pos+n]...),
	}
	d.text = append(d.text[:pos], d.text[pos+n:]...)
	d.styles = append(d.styles[:pos], d.styles[pos+n:]...)
	d.revision++
	return removed, nil
}

// SetStyle toggles attr over [start, end). Newlines never carry
// attributes; they are skipped.
func (d *Document) SetStyle(start, end int, attr Style, on bool) error {
	if start > end {
		return ErrInvalidRange
	}
	if start < 0 || end > len(d.text) {
		return ErrOutOfRange
	}
	for i := start; i < end; i++ {
		if d.text[i] == '\n' {
			continue
		}
		if on {
			d.styles[i] = d.styles[i].With(attr)
		} else {
			d.styles[i] = d.styles[i].Without(attr)
		}
	}
	d.revision++
	return nil
}

// Slice returns attributed content in [start, end).
func (d *Document) Slice(start, end int) (Fragment, error) {
	if start > end {
		return Fragment{}, ErrInvalidRange
	}
	if start < 0 || end > len(d.text) {
		return Fragment{}, ErrOutOfRange
	}
	return Fragment{
		Text:   append([]rune{}, d.text[start:end]...),
		Styles: append([]Style{}, d.styles[start:end]...),
	}, nil
}

// Runs reconstructs maximal equal-style runs over [start, end).
func (d *Document) Runs(start, end int) ([]Run, error) {
	if start > end {
		return nil, ErrInvalidRange
	}
	if start < 0 || end > len(d.text) {
		return nil, ErrOutOfRange
	}
	var runs []Run
	i := start
	for i < end {
		j := i
		for j < end && d.styles[j] == d.styles[i] {
			j++
		}
		runs = append(runs, Run{
			Start: i,
			Text:  string(d.text[i:j]),
			Style: d.styles[i],
		})
		i = j
	}
	return runs, nil
}

// ParagraphBounds returns the rune range [start, end) of the paragraph
// containing pos. end is the offset of the terminating newline, or the
// document length for the final paragraph. pos == Len() addresses the
// final paragraph.
func (d *Document) ParagraphBounds(pos int) (int, int) {
	if pos < 0 {
		pos = 0
	}
	if pos > len(d.text) {
		pos = len(d.text)
	}
	start := pos
	for start > 0 && d.text[start-1] != '\n' {
		start--
	}
	end := pos
	for end < len(d.text) && d.text[end] != '\n' {
		end++
	}
	return start, end
}

// WordCount returns the number of whitespace-separated words.
func (d *Document) WordCount() int {
	count := 0
	inWord := false
	for _, r := range d.text {
		if unicode.IsSpace(r) {
			inWord = false
		} else if !inWord {
			inWord = true
			count++
		}
	}
	return count
}

// Equal reports whether two documents match in text and styles.
func (d *Document) Equal(other *Document) bool {
	if len(d.text) != len(other.text) {
		return false
	}
	for i := range d.text {
		if d.text[i] != other.text[i] || d.styles[i] != other.styles[i] {
			return false
		}
	}
	return true
}

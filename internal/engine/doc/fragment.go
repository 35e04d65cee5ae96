package doc

// Fragment is a slice of document content: runes paired with their
// styles. Fragments are exchanged with the history log so that undo can
// restore deleted text attribute-for-attribute.
type Fragment struct {
	Text   []rune
	Styles []Style
}

// NewFragment builds a fragment where every rune of text carries style.
func NewFragment(text string, style Style) Fragment {
	runes := []rune(text)
	styles := make([]Style, len(runes))
	for i := range styles {
		styles[i] = style
	}
	return Fragment{Text: runes, Styles: styles}
}

// Len returns the fragment length in runes.
func (f Fragment) Len() int { return len(f.Text) }

// String returns the fragment text without styles.
func (f Fragment) String() string { return string(f.Text) }

// Clone returns a deep copy of the fragment.
func (f Fragment) Clone() Fragment {
	c := Fragment{
		Text:   make([]rune, len(f.Text)),
		Styles: make([]Style, len(f.Styles)),
	}
	copy(c.Text, f.Text)
	copy(c.Styles, f.Styles)
	return c
}

// Append returns a fragment with other's content appended.
func (f Fragment) Append(other Fragment) Fragment {
	return Fragment{
		Text:   append(append([]rune{}, f.Text...), other.Text...),
		Styles: append(append([]Style{}, f.Styles...), other.Styles...),
	}
}

// Equal reports whether two fragments match rune-for-rune and
// style-for-style.
func (f Fragment) Equal(other Fragment) bool {
	if len(f.Text) != len(other.Text) {
		return false
	}
	for i := range f.Text {
		if f.Text[i] != other.Text[i] || f.Styles[i] != other.Styles[i] {
			return false
		}
	}
	return true
}

// Run is a maximal substring sharing one style.
type Run struct {
	Start int // rune offset of the run's first rune in the document
	Text  string
	Style Style
}

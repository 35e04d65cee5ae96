package doc

// Style is a per-rune attribute bit set.
type Style uint8

const (
	// StyleNone is plain text.
	StyleNone Style = 0

	// StyleBold marks a bold rune.
	StyleBold Style = 1 << 0

	// StyleUnderline marks an underlined rune.
	StyleUnderline Style = 1 << 1
)

// Bold reports whether the bold attribute is set.
func (s Style) Bold() bool { return s&StyleBold != 0 }

// Underline reports whether the underline attribute is set.
func (s Style) Underline() bool { return s&StyleUnderline != 0 }

// With returns s with attr set.
func (s Style) With(attr Style) Style { return s | attr }

// Without returns s with attr cleared.
func (s Style) Without(attr Style) Style { return s &^ attr }

// String returns a short debug representation.
func (s Style) String() string {
	switch {
	case s.Bold() && s.Underline():
		return "bold+underline"
	case s.Bold():
		return "bold"
	case s.Underline():
		return "underline"
	default:
		return "plain"
	}
}

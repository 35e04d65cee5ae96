// Package doc implements the attributed document buffer.
//
// A Document is an ordered sequence of runes where every rune carries a
// style attribute set (bold, underline). Attributes are stored per rune,
// not per range; run reconstruction scans for contiguous equal-style
// spans. Paragraph boundaries are '\n' runes in the text itself.
//
// A Document is owned by a single editor instance and is not safe for
// concurrent use.
package doc

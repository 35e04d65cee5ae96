// Package overstrike is the persisted-file codec. In-memory documents
// always use structured attributes; on disk, bold and underline are
// carried by the typewriter overstrike convention: a styled rune is
// followed by a backspace and the same rune repeated (bold) or an
// underscore (underline). A rune that is both bold and underlined
// carries both markers.
package overstrike

import (
	"errors"
	"unicode/utf8"

	"github.com/ljosa/pagemark/internal/engine/doc"
)

// ErrInvalidEncoding indicates the input is not valid UTF-8.
var ErrInvalidEncoding = errors.New("invalid file encoding")

const backspace = '\b'

// Decode parses overstrike-encoded bytes into a document, collapsing
// each backspace triple back into one attributed rune.
//
// Marker resolution: for a pair "c\bm", m == c means bold and m == '_'
// means underline; when both readings apply (c == '_' overstruck with
// '_') underline wins. The classic reverse order "_\bc" also decodes as
// an underlined c. Any other overstrike keeps the later rune, plain,
// matching terminal backspace behavior. An orphan backspace is dropped.
func Decode(data []byte) (*doc.Document, error) {
	if !utf8.Valid(data) {
		return nil, ErrInvalidEncoding
	}

	runes := []rune(string(data))
	var text []rune
	var styles []doc.Style

	i := 0
	for i < len(runes) {
		r := runes[i]
		i++
		if r == backspace {
			continue
		}

		style := doc.StyleNone
		for i+1 < len(runes) && runes[i] == backspace {
			m := runes[i+1]
			i += 2
			switch {
			case m == '_' && r == '_':
				style = style.With(doc.StyleUnderline)
			case m == r:
				style = style.With(doc.StyleBold)
			case m == '_':
				style = style.With(doc.StyleUnderline)
			case r == '_':
				r = m
				style = style.With(doc.StyleUnderline)
			default:
				r = m
				style = doc.StyleNone
			}
		}

		text = append(text, r)
		styles = append(styles, style)
	}

	return doc.FromFragment(doc.Fragment{Text: text, Styles: styles}), nil
}

// Encode serializes a document to overstrike-encoded bytes. Bold emits
// "c\bc", underline "c\b_", both "c\bc\b_". Newlines are structural and
// never styled.
func Encode(d *doc.Document) []byte {
	var out []byte
	var buf [utf8.UTFMax]byte

	appendRune := func(r rune) {
		n := utf8.EncodeRune(buf[:], r)
		out = append(out, buf[:n]...)
	}

	for i := 0; i < d.Len(); i++ {
		r := d.RuneAt(i)
		appendRune(r)
		if r == '\n' {
			continue
		}
		style := d.StyleAt(i)
		if style.Bold() {
			appendRune(backspace)
			appendRune(r)
		}
		if style.Underline() {
			appendRune(backspace)
			appendRune('_')
		}
	}
	return out
}

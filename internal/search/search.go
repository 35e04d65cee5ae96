// Package search implements incremental substring search over the
// document. The engine is stateless between calls: the caller re-invokes
// it as the query grows or shrinks.
package search

import (
	"errors"
	"unicode"

	"github.com/ljosa/pagemark/internal/engine/doc"
)

// ErrNoMatch reports that the query does not occur anywhere in the
// document. It is reported, not fatal.
var ErrNoMatch = errors.New("no match")

// Direction selects the scan direction.
type Direction int

const (
	Forward Direction = iota
	Backward
)

// Find returns the offset of the next case-insensitive occurrence of
// query, scanning from `from` in the given direction and wrapping
// around the buffer end once.
func Find(d *doc.Document, query string, from int, dir Direction) (int, error) {
	q := fold([]rune(query))
	if len(q) == 0 {
		return 0, ErrNoMatch
	}
	text := fold([]rune(d.Text()))
	if len(q) > len(text) {
		return 0, ErrNoMatch
	}

	last := len(text) - len(q)
	if from < 0 {
		from = 0
	}

	if dir == Forward {
		for pos := from; pos <= last; pos++ {
			if matchAt(text, q, pos) {
				return pos, nil
			}
		}
		for pos := 0; pos < from && pos <= last; pos++ {
			if matchAt(text, q, pos) {
				return pos, nil
			}
		}
		return 0, ErrNoMatch
	}

	start := from
	if start > last {
		start = last
	}
	for pos := start; pos >= 0; pos-- {
		if matchAt(text, q, pos) {
			return pos, nil
		}
	}
	for pos := last; pos > start; pos-- {
		if matchAt(text, q, pos) {
			return pos, nil
		}
	}
	return 0, ErrNoMatch
}

func matchAt(text, q []rune, pos int) bool {
	for i, r := range q {
		if text[pos+i] != r {
			return false
		}
	}
	return true
}

// fold lowercases rune-wise, preserving rune count so match offsets
// stay aligned with document offsets.
func fold(rs []rune) []rune {
	out := make([]rune, len(rs))
	for i, r := range rs {
		out[i] = unicode.ToLower(r)
	}
	return out
}

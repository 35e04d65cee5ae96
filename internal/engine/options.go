package engine

import "github.com/ljosa/pagemark/internal/engine/history"

// Defaults for a US Letter page at 10-pitch typewriter spacing.
const (
	DefaultWidth          = 65
	DefaultLinesPerPage   = 54
	DefaultMaxUndoEntries = history.DefaultMaxEntries
)

type config struct {
	width        int
	linesPerPage int
	maxUndo      int
	doubleSpaced bool
}

// Option configures a new engine.
type Option func(*config)

// WithWidth sets the wrap width in columns.
func WithWidth(width int) Option {
	return func(c *config) { c.width = width }
}

// WithLinesPerPage sets the page capacity in content lines.
func WithLinesPerPage(lines int) Option {
	return func(c *config) { c.linesPerPage = lines }
}

// WithMaxUndoEntries caps the undo stack.
func WithMaxUndoEntries(n int) Option {
	return func(c *config) { c.maxUndo = n }
}

// WithDoubleSpacing starts the engine in double-spaced mode.
func WithDoubleSpacing(on bool) Option {
	return func(c *config) { c.doubleSpaced = on }
}

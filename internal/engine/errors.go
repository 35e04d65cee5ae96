package engine

import (
	"github.com/ljosa/pagemark/internal/engine/doc"
	"github.com/ljosa/pagemark/internal/engine/history"
	"github.com/ljosa/pagemark/internal/layout/page"
	"github.com/ljosa/pagemark/internal/printing"
	"github.com/ljosa/pagemark/internal/search"
)

// Re-exported sentinel errors so callers discriminate with errors.Is
// against the engine package alone.
var (
	// ErrOutOfRange reports a position or length outside the buffer.
	// Always a caller contract violation, never user-recoverable.
	ErrOutOfRange = doc.ErrOutOfRange

	// ErrInvalidRange reports start > end.
	ErrInvalidRange = doc.ErrInvalidRange

	// ErrInvalidConfiguration reports a non-positive width or a page
	// capacity of zero lines.
	ErrInvalidConfiguration = page.ErrInvalidConfiguration

	// ErrNothingToUndo and ErrNothingToRedo report empty stacks; the
	// host shows them as a no-op.
	ErrNothingToUndo = history.ErrNothingToUndo
	ErrNothingToRedo = history.ErrNothingToRedo

	// ErrNoMatch reports an exhausted search.
	ErrNoMatch = search.ErrNoMatch

	// ErrFontLoad reports an unavailable font; callers fall back to
	// printing.DefaultFont.
	ErrFontLoad = printing.ErrFontLoad
)

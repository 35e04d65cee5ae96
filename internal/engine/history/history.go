package history

import (
	"errors"
	"unicode"

	"github.com/ljosa/pagemark/internal/engine/doc"
)

// Errors returned by history operations. Both report an empty stack and
// surface to the user as a no-op, not a failure.
var (
	ErrNothingToUndo = errors.New("nothing to undo")
	ErrNothingToRedo = errors.New("nothing to redo")
)

// DefaultMaxEntries caps the undo stack; oldest entries are dropped.
const DefaultMaxEntries = 500

// History manages the undo and redo stacks for one document.
// Not safe for concurrent use; the editor owns it.
type History struct {
	undoStack  []Command
	redoStack  []Command
	maxEntries int
}

// New creates a history with the given stack cap.
func New(maxEntries int) *History {
	if maxEntries <= 0 {
		maxEntries = DefaultMaxEntries
	}
	return &History{maxEntries: maxEntries}
}

// Push records a committed command and clears the redo stack.
//
// Typing bursts coalesce: a pure single-rune insertion merges into the
// previous command when the previous command is also a pure insertion,
// the rune is a letter or digit other than newline, it carries the same
// style as the burst, and it lands exactly at the end of the previous
// insertion. Single-rune backspace deletions merge symmetrically at a
// retreating offset. A space, punctuation rune, or any repositioning
// starts a new command, so one undo step reverts one typing burst.
func (h *History) Push(cmd Command) {
	h.redoStack = nil

	if h.tryCoalesce(cmd) {
		return
	}

	h.undoStack = append(h.undoStack, cmd)
	if len(h.undoStack) > h.maxEntries {
		excess := len(h.undoStack) - h.maxEntries
		h.undoStack = h.undoStack[excess:]
	}
}

// tryCoalesce merges cmd into the top of the undo stack when the
// coalescing rule allows. The merged command still inverts exactly to
// the pre-burst state because the fragments are concatenated in
// document order.
func (h *History) tryCoalesce(cmd Command) bool {
	if len(h.undoStack) == 0 {
		return false
	}
	last := &h.undoStack[len(h.undoStack)-1]

	if cmd.isInsert() && last.isInsert() &&
		cmd.Inserted.Len() == 1 &&
		coalescable(cmd.Inserted.Text[0]) &&
		cmd.Pos == last.Pos+last.Inserted.Len() &&
		cmd.Inserted.Styles[0] == last.Inserted.Styles[last.Inserted.Len()-1] {
		last.Inserted = last.Inserted.Append(cmd.Inserted)
		last.CursorAfter = cmd.CursorAfter
		return true
	}

	if cmd.isDelete() && last.isDelete() &&
		cmd.Deleted.Len() == 1 &&
		coalescable(cmd.Deleted.Text[0]) &&
		cmd.Pos == last.Pos-1 {
		last.Pos = cmd.Pos
		last.Deleted = cmd.Deleted.Append(last.Deleted)
		last.CursorAfter = cmd.CursorAfter
		return true
	}

	return false
}

// coalescable reports whether a rune may extend a typing burst.
func coalescable(r rune) bool {
	return unicode.IsLetter(r) || unicode.IsDigit(r)
}

// Undo pops the most recent command, applies its inverse to the
// document, and moves it to the redo stack.
func (h *History) Undo(d *doc.Document) (Command, error) {
	if len(h.undoStack) == 0 {
		return Command{}, ErrNothingToUndo
	}

	cmd := h.undoStack[len(h.undoStack)-1]
	if err := cmd.Invert(d); err != nil {
		return Command{}, err
	}
	h.undoStack = h.undoStack[:len(h.undoStack)-1]
	h.redoStack = append(h.redoStack, cmd)
	return cmd, nil
}

// Redo replays the most recently undone command.
func (h *History) Redo(d *doc.Document) (Command, error) {
	if len(h.redoStack) == 0 {
		return Command{}, ErrNothingToRedo
	}

	cmd := h.redoStack[len(h.redoStack)-1]
	if err := cmd.Apply(d); err != nil {
		return Command{}, err
	}
	h.redoStack = h.redoStack[:len(h.redoStack)-1]
	h.undoStack = append(h.undoStack, cmd)
	return cmd, nil
}

// CanUndo reports whether undo is available.
func (h *History) CanUndo() bool { return len(h.undoStack) > 0 }

// CanRedo reports whether redo is available.
func (h *History) CanRedo() bool { return len(h.redoStack) > 0 }

// UndoCount returns the number of undo steps available.
func (h *History) UndoCount() int { return len(h.undoStack) }

// RedoCount returns the number of redo steps available.
func (h *History) RedoCount() int { return len(h.redoStack) }

// Clear removes all history, for example after loading a new file.
func (h *History) Clear() {
	h.undoStack = nil
	h.redoStack = nil
}

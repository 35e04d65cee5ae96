package engine

import (
	"errors"
	"testing"

	"github.com/ljosa/pagemark/internal/printing"
)

func newEngine(t *testing.T, opts ...Option) *Engine {
	t.Helper()
	e, err := New(opts...)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	return e
}

func TestNewInvalidConfiguration(t *testing.T) {
	tests := []struct {
		name string
		opts []Option
	}{
		{"zero width", []Option{WithWidth(0)}},
		{"negative width", []Option{WithWidth(-5)}},
		{"zero lines per page", []Option{WithLinesPerPage(0)}},
		{"double spacing on one-line page", []Option{WithLinesPerPage(1), WithDoubleSpacing(true)}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := New(tt.opts...); !errors.Is(err, ErrInvalidConfiguration) {
				t.Errorf("New() error = %v, want %v", err, ErrInvalidConfiguration)
			}
		})
	}
}

func TestInsertMovesCursor(t *testing.T) {
	e := newEngine(t)
	if err := e.Insert("hello", StyleNone); err != nil {
		t.Fatalf("Insert() error = %v", err)
	}
	if e.Text() != "hello" || e.Cursor() != 5 {
		t.Errorf("text=%q cursor=%d, want %q 5", e.Text(), e.Cursor(), "hello")
	}
}

func TestInsertUndoRedoScenario(t *testing.T) {
	e := newEngine(t)
	if err := e.Load([]byte("abc")); err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if err := e.MoveTo(3); err != nil {
		t.Fatalf("MoveTo() error = %v", err)
	}
	if err := e.Insert("X", StyleNone); err != nil {
		t.Fatalf("Insert() error = %v", err)
	}
	if e.Text() != "abcX" {
		t.Fatalf("text = %q, want %q", e.Text(), "abcX")
	}

	if err := e.Undo(); err != nil {
		t.Fatalf("Undo() error = %v", err)
	}
	if e.Text() != "abc" || e.Cursor() != 3 {
		t.Errorf("after undo: text=%q cursor=%d, want %q 3", e.Text(), e.Cursor(), "abc")
	}

	if err := e.Redo(); err != nil {
		t.Fatalf("Redo() error = %v", err)
	}
	if e.Text() != "abcX" || e.Cursor() != 4 {
		t.Errorf("after redo: text=%q cursor=%d, want %q 4", e.Text(), e.Cursor(), "abcX")
	}
}

func TestTypingBurstIsOneUndoStep(t *testing.T) {
	e := newEngine(t)
	for _, r := range "word" {
		if err := e.Insert(string(r), StyleNone); err != nil {
			t.Fatalf("Insert() error = %v", err)
		}
	}
	if err := e.Undo(); err != nil {
		t.Fatalf("Undo() error = %v", err)
	}
	if e.Text() != "" || e.Cursor() != 0 {
		t.Errorf("after undo: text=%q cursor=%d, want empty at 0", e.Text(), e.Cursor())
	}
	if e.CanUndo() {
		t.Error("burst should be a single undo step")
	}
}

func TestUndoEmptyStack(t *testing.T) {
	e := newEngine(t)
	if err := e.Undo(); !errors.Is(err, ErrNothingToUndo) {
		t.Errorf("Undo() error = %v, want %v", err, ErrNothingToUndo)
	}
	if err := e.Redo(); !errors.Is(err, ErrNothingToRedo) {
		t.Errorf("Redo() error = %v, want %v", err, ErrNothingToRedo)
	}
}

func TestBackspace(t *testing.T) {
	e := newEngine(t)
	if err := e.Insert("ab", StyleNone); err != nil {
		t.Fatalf("Insert() error = %v", err)
	}
	if err := e.Backspace(); err != nil {
		t.Fatalf("Backspace() error = %v", err)
	}
	if e.Text() != "a" || e.Cursor() != 1 {
		t.Errorf("text=%q cursor=%d, want %q 1", e.Text(), e.Cursor(), "a")
	}
}

func TestBackspaceAtStartIsNoOp(t *testing.T) {
	e := newEngine(t)
	if err := e.Backspace(); err != nil {
		t.Errorf("Backspace() at start error = %v", err)
	}
	if e.CanUndo() {
		t.Error("no-op backspace should not record a command")
	}
}

func TestDeleteOutOfRange(t *testing.T) {
	e := newEngine(t)
	if err := e.Insert("ab", StyleNone); err != nil {
		t.Fatalf("Insert() error = %v", err)
	}
	if err := e.Delete(1); !errors.Is(err, ErrOutOfRange) {
		t.Errorf("Delete() past end error = %v, want %v", err, ErrOutOfRange)
	}
}

func TestSetAttributeUndo(t *testing.T) {
	e := newEngine(t)
	if err := e.Load([]byte("bold text")); err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if err := e.SetAttribute(0, 4, StyleBold, true); err != nil {
		t.Fatalf("SetAttribute() error = %v", err)
	}
	runs, err := e.LineRuns(0)
	if err != nil {
		t.Fatalf("LineRuns() error = %v", err)
	}
	if len(runs) != 2 || runs[0].Style != StyleBold || runs[0].Text != "bold" {
		t.Fatalf("runs = %+v", runs)
	}

	if err := e.Undo(); err != nil {
		t.Fatalf("Undo() error = %v", err)
	}
	runs, err = e.LineRuns(0)
	if err != nil {
		t.Fatalf("LineRuns() error = %v", err)
	}
	if len(runs) != 1 || runs[0].Style != StyleNone {
		t.Errorf("after undo runs = %+v, want one plain run", runs)
	}
}

func TestSetAttributeNoOpRecordsNoCommand(t *testing.T) {
	e := newEngine(t)
	if err := e.Load([]byte("abc")); err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if err := e.MoveTo(3); err != nil {
		t.Fatalf("MoveTo() error = %v", err)
	}
	if err := e.Insert("d", StyleNone); err != nil {
		t.Fatalf("Insert() error = %v", err)
	}
	if err := e.Undo(); err != nil {
		t.Fatalf("Undo() error = %v", err)
	}
	if !e.CanRedo() {
		t.Fatal("CanRedo() = false before no-op toggles")
	}

	// Neither an empty range nor a toggle that leaves every style bit
	// unchanged is a real edit: no undo step, and pending redo survives.
	if err := e.SetAttribute(1, 1, StyleBold, true); err != nil {
		t.Fatalf("SetAttribute(empty range) error = %v", err)
	}
	if err := e.SetAttribute(0, 3, StyleBold, false); err != nil {
		t.Fatalf("SetAttribute(no-op toggle) error = %v", err)
	}
	if e.CanUndo() {
		t.Error("CanUndo() = true, want false: no-op toggles pushed a command")
	}
	if !e.CanRedo() {
		t.Error("CanRedo() = false, want true: no-op toggles discarded redo")
	}

	if err := e.SetAttribute(0, 3, StyleBold, true); err != nil {
		t.Fatalf("SetAttribute() error = %v", err)
	}
	if !e.CanUndo() || e.CanRedo() {
		t.Errorf("after real toggle: canUndo=%v canRedo=%v, want true false", e.CanUndo(), e.CanRedo())
	}
}

func TestVerticalMotionStickyColumn(t *testing.T) {
	e := newEngine(t)
	if err := e.Load([]byte("a long line here\nxy\nanother long line")); err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if err := e.MoveTo(10); err != nil {
		t.Fatalf("MoveTo() error = %v", err)
	}

	e.MoveDown()
	if row, col := e.CursorRowCol(); row != 1 || col != 2 {
		t.Errorf("after first down: (%d,%d), want (1,2)", row, col)
	}

	e.MoveDown()
	if row, col := e.CursorRowCol(); row != 2 || col != 10 {
		t.Errorf("sticky column lost: (%d,%d), want (2,10)", row, col)
	}

	e.MoveUp()
	e.MoveUp()
	if row, col := e.CursorRowCol(); row != 0 || col != 10 {
		t.Errorf("after moving back up: (%d,%d), want (0,10)", row, col)
	}
}

func TestHorizontalMotionClamps(t *testing.T) {
	e := newEngine(t)
	if err := e.Insert("ab", StyleNone); err != nil {
		t.Fatalf("Insert() error = %v", err)
	}
	e.MoveRight()
	if e.Cursor() != 2 {
		t.Errorf("cursor = %d, want clamped 2", e.Cursor())
	}
	e.MoveLeft()
	e.MoveLeft()
	e.MoveLeft()
	if e.Cursor() != 0 {
		t.Errorf("cursor = %d, want clamped 0", e.Cursor())
	}
}

func TestLineStartEnd(t *testing.T) {
	e := newEngine(t, WithWidth(10))
	if err := e.Load([]byte("The quick brown fox")); err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if err := e.MoveTo(12); err != nil { // inside "brown"
		t.Fatalf("MoveTo() error = %v", err)
	}
	e.MoveLineStart()
	if e.Cursor() != 10 {
		t.Errorf("MoveLineStart() cursor = %d, want 10", e.Cursor())
	}
	e.MoveLineEnd()
	if e.Cursor() != 19 {
		t.Errorf("MoveLineEnd() cursor = %d, want 19", e.Cursor())
	}
}

func TestWordAndParagraphMotion(t *testing.T) {
	e := newEngine(t)
	if err := e.Load([]byte("one two\n\nnext para")); err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	e.MoveWordForward()
	if e.Cursor() != 4 {
		t.Errorf("MoveWordForward() cursor = %d, want 4", e.Cursor())
	}
	e.MoveParagraphForward()
	if e.Cursor() != 8 {
		t.Errorf("MoveParagraphForward() cursor = %d, want 8", e.Cursor())
	}
	e.MoveParagraphBackward()
	if e.Cursor() != 0 {
		t.Errorf("MoveParagraphBackward() cursor = %d, want 0", e.Cursor())
	}
}

func TestFindNextMovesCursorAndWraps(t *testing.T) {
	e := newEngine(t)
	if err := e.Load([]byte("fox and fox")); err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	pos, err := e.FindNext("fox", Forward)
	if err != nil {
		t.Fatalf("FindNext() error = %v", err)
	}
	if pos != 8 || e.Cursor() != 8 {
		t.Errorf("first match at %d (cursor %d), want 8", pos, e.Cursor())
	}
	pos, err = e.FindNext("fox", Forward)
	if err != nil {
		t.Fatalf("FindNext() error = %v", err)
	}
	if pos != 0 {
		t.Errorf("wrapped match at %d, want 0", pos)
	}
}

func TestFindNextNoMatch(t *testing.T) {
	e := newEngine(t)
	if err := e.Load([]byte("nothing here")); err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if _, err := e.FindNext("absent", Forward); !errors.Is(err, ErrNoMatch) {
		t.Errorf("FindNext() error = %v, want %v", err, ErrNoMatch)
	}
}

func TestLoadClearsHistory(t *testing.T) {
	e := newEngine(t)
	if err := e.Insert("draft", StyleNone); err != nil {
		t.Fatalf("Insert() error = %v", err)
	}
	if err := e.Load([]byte("fresh")); err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if e.CanUndo() || e.Cursor() != 0 {
		t.Errorf("Load() should clear history and home the cursor")
	}
}

func TestEncodeRoundTripThroughEngine(t *testing.T) {
	e := newEngine(t)
	if err := e.Insert("plain ", StyleNone); err != nil {
		t.Fatalf("Insert() error = %v", err)
	}
	if err := e.Insert("bold", StyleBold); err != nil {
		t.Fatalf("Insert() error = %v", err)
	}

	e2 := newEngine(t)
	if err := e2.Load(e.Encode()); err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if e2.Text() != "plain bold" {
		t.Errorf("text = %q, want %q", e2.Text(), "plain bold")
	}
	runs, err := e2.LineRuns(0)
	if err != nil {
		t.Fatalf("LineRuns() error = %v", err)
	}
	if len(runs) != 2 || runs[1].Style != StyleBold {
		t.Errorf("runs = %+v, want plain+bold", runs)
	}
}

func TestPagesView(t *testing.T) {
	e := newEngine(t, WithLinesPerPage(2))
	if err := e.Load([]byte("one\ntwo\nthree")); err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	pages := e.Pages()
	if len(pages) != 2 {
		t.Fatalf("got %d pages, want 2", len(pages))
	}
	if pages[0].ShowNumber() || !pages[1].ShowNumber() {
		t.Error("page number must render on page 2 only")
	}
}

func TestSetWidthReflows(t *testing.T) {
	e := newEngine(t)
	if err := e.Load([]byte("The quick brown fox")); err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if e.LineCount() != 1 {
		t.Fatalf("LineCount() = %d, want 1", e.LineCount())
	}
	if err := e.SetWidth(10); err != nil {
		t.Fatalf("SetWidth() error = %v", err)
	}
	if e.LineCount() != 2 {
		t.Errorf("LineCount() = %d after narrowing, want 2", e.LineCount())
	}
	if err := e.SetWidth(0); !errors.Is(err, ErrInvalidConfiguration) {
		t.Errorf("SetWidth(0) error = %v, want %v", err, ErrInvalidConfiguration)
	}
}

func TestFormatUnknownFont(t *testing.T) {
	e := newEngine(t)
	if _, err := e.Format("Wingdings", printing.Options{}); !errors.Is(err, ErrFontLoad) {
		t.Errorf("Format() error = %v, want %v", err, ErrFontLoad)
	}
}

func TestWordCount(t *testing.T) {
	e := newEngine(t)
	if err := e.Load([]byte("three short words")); err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if got := e.WordCount(); got != 3 {
		t.Errorf("WordCount() = %d, want 3", got)
	}
}

package cursor

import (
	"testing"

	"github.com/ljosa/pagemark/internal/engine/doc"
)

func TestNewClampsNegative(t *testing.T) {
	c := New(-5)
	if c.Offset() != 0 {
		t.Errorf("expected offset 0, got %d", c.Offset())
	}
}

func TestWordForward(t *testing.T) {
	d := doc.FromString("the quick brown")

	tests := []struct {
		from, want int
	}{
		{0, 4},   // start of "the" -> start of "quick"
		{2, 4},   // inside "the" -> start of "quick"
		{4, 10},  // "quick" -> "brown"
		{10, 15}, // "brown" -> document end
		{15, 15}, // at end stays
	}

	for _, tt := range tests {
		got := New(tt.from).WordForward(d).Offset()
		if got != tt.want {
			t.Errorf("WordForward from %d: expected %d, got %d", tt.from, tt.want, got)
		}
	}
}

func TestWordForwardCrossesParagraph(t *testing.T) {
	d := doc.FromString("end\nnext")

	got := New(1).WordForward(d).Offset()
	if got != 4 {
		t.Errorf("expected 4 (start of next paragraph's word), got %d", got)
	}
}

func TestWordBackward(t *testing.T) {
	d := doc.FromString("the quick brown")

	tests := []struct {
		from, want int
	}{
		{15, 10}, // end -> start of "brown"
		{12, 10}, // inside "brown" -> its start
		{10, 4},  // start of "brown" -> start of "quick"
		{4, 0},
		{0, 0},
	}

	for _, tt := range tests {
		got := New(tt.from).WordBackward(d).Offset()
		if got != tt.want {
			t.Errorf("WordBackward from %d: expected %d, got %d", tt.from, tt.want, got)
		}
	}
}

func TestParagraphMotion(t *testing.T) {
	d := doc.FromString("one\ntwo\nthree")

	if got := New(1).ParagraphForward(d).Offset(); got != 4 {
		t.Errorf("ParagraphForward: expected 4, got %d", got)
	}
	if got := New(9).ParagraphForward(d).Offset(); got != 13 {
		t.Errorf("ParagraphForward from last paragraph: expected 13, got %d", got)
	}
	if got := New(6).ParagraphBackward(d).Offset(); got != 4 {
		t.Errorf("ParagraphBackward from inside: expected 4, got %d", got)
	}
	if got := New(4).ParagraphBackward(d).Offset(); got != 0 {
		t.Errorf("ParagraphBackward from start: expected 0, got %d", got)
	}
}

func TestStickyColumn(t *testing.T) {
	c := New(0).WithPreferredCol(42)
	if c.PreferredCol() != 42 {
		t.Errorf("expected preferred column 42, got %d", c.PreferredCol())
	}

	c = c.MoveTo(5)
	if c.PreferredCol() != -1 {
		t.Error("horizontal movement should clear the sticky column")
	}
}

func TestClamp(t *testing.T) {
	c := New(100).Clamp(10)
	if c.Offset() != 10 {
		t.Errorf("expected clamp to 10, got %d", c.Offset())
	}
}

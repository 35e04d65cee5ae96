// Package history implements the undo/redo log.
//
// Every user-visible edit produces exactly one Command. Commands are
// immutable once pushed: applying a command and then its inverse
// restores the document rune-for-rune and attribute-for-attribute.
package history

import "github.com/ljosa/pagemark/internal/engine/doc"

// Command records one reversible buffer mutation: at Pos, Deleted was
// removed and Inserted was added in its place. Either fragment may be
// empty. CursorBefore/CursorAfter capture the cursor offset around the
// edit so undo and redo can reposition it.
type Command struct {
	Pos      int
	Deleted  doc.Fragment
	Inserted doc.Fragment

	CursorBefore int
	CursorAfter  int
}

// Apply performs the command forward: delete Deleted, insert Inserted.
func (c Command) Apply(d *doc.Document) error {
	if c.Deleted.Len() > 0 {
		if _, err := d.Delete(c.Pos, c.Deleted.Len()); err != nil {
			return err
		}
	}
	if c.Inserted.Len() > 0 {
		if err := d.InsertFragment(c.Pos, c.Inserted); err != nil {
			return err
		}
	}
	return nil
}

// Invert reverses the command: delete Inserted, restore Deleted.
func (c Command) Invert(d *doc.Document) error {
	if c.Inserted.Len() > 0 {
		if _, err := d.Delete(c.Pos, c.Inserted.Len()); err != nil {
			return err
		}
	}
	if c.Deleted.Len() > 0 {
		if err := d.InsertFragment(c.Pos, c.Deleted); err != nil {
			return err
		}
	}
	return nil
}

// isInsert reports whether the command is a pure insertion.
func (c Command) isInsert() bool {
	return c.Deleted.Len() == 0 && c.Inserted.Len() > 0
}

// isDelete reports whether the command is a pure deletion.
func (c Command) isDelete() bool {
	return c.Inserted.Len() == 0 && c.Deleted.Len() > 0
}

// Package app is the terminal host: a thin tcell wrapper around the
// editor engine. No core logic lives here; it translates key events
// into engine operations and paints the engine's read-only views.
package app

import (
	"errors"
	"fmt"
	"os"

	"github.com/gdamore/tcell/v2"

	"github.com/ljosa/pagemark/internal/engine"
	"github.com/ljosa/pagemark/internal/session"
)

// ErrQuit signals a normal user-requested exit.
var ErrQuit = errors.New("quit")

// Options configure the host.
type Options struct {
	// Path of the document being edited; empty for a new unnamed
	// buffer.
	Path  string
	Prefs session.Preferences
}

// App owns the screen and the engine for one editing session.
type App struct {
	screen tcell.Screen
	eng    *engine.Engine
	opts   Options

	// typingStyle is applied to newly inserted runes; toggled with
	// Ctrl-B and Ctrl-U.
	typingStyle engine.Style

	// searching holds the incremental search state; nil outside search
	// mode.
	searching *searchState

	// clipboard holds the last cut or copied attributed text. The
	// system clipboard gets a plain-text copy via OSC 52.
	clipboard engine.Fragment

	topRow   int // first display row on screen
	modified bool
	status   string
}

type searchState struct {
	query  string
	anchor int // cursor offset when search began
}

// New builds the app and loads the document when a path is given.
func New(opts Options) (*App, error) {
	eng, err := engine.New(
		engine.WithWidth(opts.Prefs.LineLength),
		engine.WithDoubleSpacing(opts.Prefs.DoubleSpacing),
	)
	if err != nil {
		return nil, err
	}

	a := &App{eng: eng, opts: opts}
	if opts.Path != "" {
		data, err := os.ReadFile(opts.Path)
		if err != nil && !os.IsNotExist(err) {
			return nil, fmt.Errorf("open %s: %w", opts.Path, err)
		}
		if err == nil {
			if err := eng.Load(data); err != nil {
				return nil, fmt.Errorf("load %s: %w", opts.Path, err)
			}
		}
		if swapExists(opts.Path) {
			a.status = fmt.Sprintf("recovery file %s exists; another session may be editing this document", swapPath(opts.Path))
		}
	}
	return a, nil
}

// Engine exposes the underlying engine, mainly for tests.
func (a *App) Engine() *engine.Engine { return a.eng }

// Run enters the event loop until the user quits.
func (a *App) Run() error {
	screen, err := tcell.NewScreen()
	if err != nil {
		return fmt.Errorf("create screen: %w", err)
	}
	if err := screen.Init(); err != nil {
		return fmt.Errorf("init screen: %w", err)
	}
	a.screen = screen
	defer screen.Fini()

	for {
		a.draw()
		ev := screen.PollEvent()
		switch ev := ev.(type) {
		case *tcell.EventResize:
			screen.Sync()
		case *tcell.EventKey:
			if err := a.handleKey(ev); err != nil {
				if errors.Is(err, ErrQuit) {
					return nil
				}
				return err
			}
		}
	}
}

func (a *App) handleKey(ev *tcell.EventKey) error {
	if a.searching != nil {
		return a.handleSearchKey(ev)
	}

	switch ev.Key() {
	case tcell.KeyCtrlQ:
		return ErrQuit
	case tcell.KeyCtrlS:
		a.save()
	case tcell.KeyCtrlZ:
		a.report(a.eng.Undo(), "nothing to undo")
	case tcell.KeyCtrlY:
		a.report(a.eng.Redo(), "nothing to redo")
	case tcell.KeyCtrlF:
		a.searching = &searchState{anchor: a.eng.Cursor()}
		a.status = "Search: "
	case tcell.KeyCtrlB:
		a.toggleStyle(engine.StyleBold)
	case tcell.KeyCtrlU:
		a.toggleStyle(engine.StyleUnderline)
	case tcell.KeyCtrlC:
		a.copySelection()
	case tcell.KeyCtrlX:
		if a.copySelection() {
			a.edit(a.eng.DeleteSelection())
		}
	case tcell.KeyCtrlV:
		a.paste()
	case tcell.KeyCtrlK:
		a.edit(a.eng.KillLine())
	case tcell.KeyCtrlL:
		a.edit(a.eng.CenterLine())
	case tcell.KeyLeft:
		if ev.Modifiers()&tcell.ModCtrl != 0 {
			a.move(ev, a.eng.MoveWordBackward)
		} else {
			a.move(ev, a.eng.MoveLeft)
		}
	case tcell.KeyRight:
		if ev.Modifiers()&tcell.ModCtrl != 0 {
			a.move(ev, a.eng.MoveWordForward)
		} else {
			a.move(ev, a.eng.MoveRight)
		}
	case tcell.KeyUp:
		if ev.Modifiers()&tcell.ModCtrl != 0 {
			a.move(ev, a.eng.MoveParagraphBackward)
		} else {
			a.move(ev, a.eng.MoveUp)
		}
	case tcell.KeyDown:
		if ev.Modifiers()&tcell.ModCtrl != 0 {
			a.move(ev, a.eng.MoveParagraphForward)
		} else {
			a.move(ev, a.eng.MoveDown)
		}
	case tcell.KeyHome:
		a.move(ev, a.eng.MoveLineStart)
	case tcell.KeyEnd:
		a.move(ev, a.eng.MoveLineEnd)
	case tcell.KeyEnter:
		a.deleteSelectionFirst()
		a.edit(a.eng.Insert("\n", engine.StyleNone))
	case tcell.KeyBackspace, tcell.KeyBackspace2:
		if a.eng.HasSelection() {
			a.edit(a.eng.DeleteSelection())
		} else {
			a.edit(a.eng.Backspace())
		}
	case tcell.KeyDelete, tcell.KeyCtrlD:
		if a.eng.HasSelection() {
			a.edit(a.eng.DeleteSelection())
		} else if a.eng.Cursor() < a.eng.Len() {
			a.edit(a.eng.Delete(1))
		}
	case tcell.KeyRune:
		a.deleteSelectionFirst()
		a.edit(a.eng.Insert(string(ev.Rune()), a.typingStyle))
	}
	return nil
}

// move runs a cursor motion, extending the selection while Shift is
// held and dropping it otherwise. The anchor stays put, so repeated
// shifted motions grow one selection.
func (a *App) move(ev *tcell.EventKey, motion func()) {
	if ev.Modifiers()&tcell.ModShift != 0 {
		if !a.eng.HasSelection() {
			a.eng.StartSelection()
		}
	} else {
		a.eng.ClearSelection()
	}
	motion()
}

// toggleStyle applies the attribute to the selection when one is
// active; otherwise it toggles the style for newly typed runes.
func (a *App) toggleStyle(attr engine.Style) {
	if f, ok := a.eng.SelectedFragment(); ok {
		start, end, _ := a.eng.Selection()
		on := f.Styles[0]&attr == 0
		a.edit(a.eng.SetAttribute(start, end, attr, on))
		return
	}
	a.typingStyle = toggle(a.typingStyle, attr)
}

func (a *App) copySelection() bool {
	f, ok := a.eng.SelectedFragment()
	if !ok {
		a.status = "no selection"
		return false
	}
	a.clipboard = f.Clone()
	if a.screen != nil {
		a.screen.SetClipboard([]byte(f.String()))
	}
	a.status = fmt.Sprintf("copied %d characters", f.Len())
	return true
}

func (a *App) paste() {
	if a.clipboard.Len() == 0 {
		a.status = "clipboard empty"
		return
	}
	a.deleteSelectionFirst()
	a.edit(a.eng.InsertFragment(a.clipboard))
}

func (a *App) deleteSelectionFirst() {
	if f, ok := a.eng.SelectedFragment(); ok && f.Len() > 0 {
		a.edit(a.eng.DeleteSelection())
	}
}

// handleSearchKey drives incremental search: every keystroke reruns the
// search from the anchor with the grown or shrunk query.
func (a *App) handleSearchKey(ev *tcell.EventKey) error {
	s := a.searching
	switch ev.Key() {
	case tcell.KeyEscape:
		a.jumpTo(s.anchor)
		a.searching = nil
		a.status = ""
		return nil
	case tcell.KeyEnter:
		a.searching = nil
		a.status = ""
		return nil
	case tcell.KeyBackspace, tcell.KeyBackspace2:
		if s.query != "" {
			runes := []rune(s.query)
			s.query = string(runes[:len(runes)-1])
		}
	case tcell.KeyCtrlF:
		// Repeat: jump to the next occurrence.
		if s.query != "" {
			if _, err := a.eng.FindNext(s.query, engine.Forward); err != nil {
				a.status = fmt.Sprintf("Search: %s (no more matches)", s.query)
				return nil
			}
			a.status = "Search: " + s.query
			return nil
		}
	case tcell.KeyRune:
		s.query += string(ev.Rune())
	default:
		return nil
	}

	if s.query == "" {
		a.jumpTo(s.anchor)
		a.status = "Search: "
		return nil
	}
	pos, err := a.eng.Search(s.query, s.anchor, engine.Forward)
	if err != nil {
		a.jumpTo(s.anchor)
		a.status = fmt.Sprintf("Search: %s (not found)", s.query)
		return nil
	}
	a.jumpTo(pos)
	a.status = "Search: " + s.query
	return nil
}

// jumpTo repositions the cursor at an offset produced by the engine's
// own search. Such offsets are always in range, so a failure means a
// host bug; it is surfaced on the status line instead of dropped.
func (a *App) jumpTo(offset int) {
	if err := a.eng.MoveTo(offset); err != nil {
		a.status = err.Error()
	}
}

func (a *App) edit(err error) {
	if err != nil {
		a.status = err.Error()
		return
	}
	a.modified = true
	a.status = ""
	a.autosave()
}

// autosave refreshes the swap file after every edit so a crash loses at
// most the in-flight keystroke.
func (a *App) autosave() {
	if a.opts.Path == "" {
		return
	}
	if err := writeSwap(a.opts.Path, a.eng.Encode()); err != nil {
		a.status = fmt.Sprintf("autosave failed: %v", err)
	}
}

func (a *App) report(err error, noop string) {
	switch {
	case err == nil:
		a.modified = true
		a.status = ""
		a.autosave()
	case errors.Is(err, engine.ErrNothingToUndo), errors.Is(err, engine.ErrNothingToRedo):
		a.status = noop
	default:
		a.status = err.Error()
	}
}

func (a *App) save() {
	if a.opts.Path == "" {
		a.status = "no file name"
		return
	}
	if err := os.WriteFile(a.opts.Path, a.eng.Encode(), 0o644); err != nil {
		a.status = fmt.Sprintf("save failed: %v", err)
		return
	}
	removeSwap(a.opts.Path)
	a.modified = false
	a.status = fmt.Sprintf("saved %s", a.opts.Path)
}

func toggle(s, attr engine.Style) engine.Style {
	if s&attr != 0 {
		return s.Without(attr)
	}
	return s.With(attr)
}

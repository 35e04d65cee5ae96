// Package session persists per-document user preferences. Preferences
// live in a single settings.json in the user's config directory, keyed
// by the absolute path of the document, so they survive restarts and
// editing the same file from different directories.
package session

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/tidwall/gjson"
	"github.com/tidwall/sjson"
)

// ErrInvalidPreference indicates a preference value failed validation.
var ErrInvalidPreference = errors.New("invalid preference value")

// Line length bounds accepted for persisted preferences.
const (
	MinLineLength = 40
	MaxLineLength = 120
)

// Preferences are the per-document knobs the host restores at startup
// and saves at shutdown.
type Preferences struct {
	FontName      string
	PrinterName   string
	DoubleSpacing bool
	Duplex        bool
	LineLength    int
}

// Defaults returns the preferences used when nothing is persisted.
func Defaults() Preferences {
	return Preferences{
		FontName:   "Courier",
		Duplex:     true,
		LineLength: 65,
	}
}

// Store reads and writes the settings file. Writes are atomic (temp
// file + rename) and preserve entries for other documents as well as
// keys this version does not know about.
type Store struct {
	path string
}

// NewStore opens the default store under the user's config directory.
func NewStore() (*Store, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return nil, fmt.Errorf("session: %w", err)
	}
	return NewStoreAt(filepath.Join(dir, "pagemark", "settings.json")), nil
}

// NewStoreAt opens a store backed by an explicit settings file path.
func NewStoreAt(path string) *Store {
	return &Store{path: path}
}

// Load returns the preferences for the document at docPath, falling
// back to defaults for missing or invalid values. A missing settings
// file is not an error.
func (s *Store) Load(docPath string) (Preferences, error) {
	prefs := Defaults()

	abs, err := filepath.Abs(docPath)
	if err != nil {
		return prefs, fmt.Errorf("session: %w", err)
	}

	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return prefs, nil
		}
		return prefs, fmt.Errorf("session: %w", err)
	}
	if !gjson.ValidBytes(data) {
		// A corrupt settings file is ignored rather than fatal.
		return prefs, nil
	}

	entry := gjson.GetBytes(data, escapeKey(abs))
	if !entry.IsObject() {
		return prefs, nil
	}

	if v := entry.Get("font_name"); v.Type == gjson.String && v.Str != "" {
		prefs.FontName = v.Str
	}
	if v := entry.Get("printer_name"); v.Type == gjson.String {
		prefs.PrinterName = v.Str
	}
	if v := entry.Get("double_spacing"); v.IsBool() {
		prefs.DoubleSpacing = v.Bool()
	}
	if v := entry.Get("duplex_printing"); v.IsBool() {
		prefs.Duplex = v.Bool()
	}
	if v := entry.Get("line_length"); v.Type == gjson.Number {
		if n := int(v.Int()); n >= MinLineLength && n <= MaxLineLength {
			prefs.LineLength = n
		}
	}
	return prefs, nil
}

// Save validates prefs and writes them under the document's absolute
// path, leaving the rest of the settings file untouched.
func (s *Store) Save(docPath string, prefs Preferences) error {
	if prefs.FontName == "" {
		return fmt.Errorf("%w: empty font name", ErrInvalidPreference)
	}
	if prefs.LineLength < MinLineLength || prefs.LineLength > MaxLineLength {
		return fmt.Errorf("%w: line length %d outside %d..%d",
			ErrInvalidPreference, prefs.LineLength, MinLineLength, MaxLineLength)
	}

	abs, err := filepath.Abs(docPath)
	if err != nil {
		return fmt.Errorf("session: %w", err)
	}

	data, err := os.ReadFile(s.path)
	if err != nil {
		if !os.IsNotExist(err) {
			return fmt.Errorf("session: %w", err)
		}
		data = []byte("{}")
	}
	if !gjson.ValidBytes(data) {
		data = []byte("{}")
	}

	key := escapeKey(abs)
	for _, kv := range []struct {
		name  string
		value interface{}
	}{
		{"font_name", prefs.FontName},
		{"printer_name", prefs.PrinterName},
		{"double_spacing", prefs.DoubleSpacing},
		{"duplex_printing", prefs.Duplex},
		{"line_length", prefs.LineLength},
	} {
		data, err = sjson.SetBytes(data, key+"."+kv.name, kv.value)
		if err != nil {
			return fmt.Errorf("session: %w", err)
		}
	}

	return s.writeAtomic(data)
}

func (s *Store) writeAtomic(data []byte) error {
	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("session: %w", err)
	}

	tmp, err := os.CreateTemp(dir, "settings-*.tmp")
	if err != nil {
		return fmt.Errorf("session: %w", err)
	}
	name := tmp.Name()
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(name)
		return fmt.Errorf("session: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(name)
		return fmt.Errorf("session: %w", err)
	}
	if err := os.Rename(name, s.path); err != nil {
		os.Remove(name)
		return fmt.Errorf("session: %w", err)
	}
	return nil
}

// escapeKey makes a filesystem path usable as a single gjson/sjson map
// key: path syntax characters are backslash-escaped so dots in file
// names do not read as nesting.
func escapeKey(key string) string {
	var b strings.Builder
	for _, r := range key {
		switch r {
		case '.', '*', '?', '\\', '|', '#', '@':
			b.WriteByte('\\')
		}
		b.WriteRune(r)
	}
	return b.String()
}

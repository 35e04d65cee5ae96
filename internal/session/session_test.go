package session

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/tidwall/gjson"
)

func testStore(t *testing.T) *Store {
	t.Helper()
	return NewStoreAt(filepath.Join(t.TempDir(), "pagemark", "settings.json"))
}

func TestLoadMissingFileReturnsDefaults(t *testing.T) {
	prefs, err := testStore(t).Load("/tmp/doc.txt")
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if prefs != Defaults() {
		t.Errorf("Load() = %+v, want defaults %+v", prefs, Defaults())
	}
}

func TestSaveLoadRoundTrip(t *testing.T) {
	store := testStore(t)
	want := Preferences{
		FontName:      "Prestige Elite Std",
		PrinterName:   "laser",
		DoubleSpacing: true,
		Duplex:        false,
		LineLength:    72,
	}
	if err := store.Save("/tmp/doc.txt", want); err != nil {
		t.Fatalf("Save() error = %v", err)
	}
	got, err := store.Load("/tmp/doc.txt")
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if got != want {
		t.Errorf("Load() = %+v, want %+v", got, want)
	}
}

func TestSettingsKeyedByDocumentPath(t *testing.T) {
	store := testStore(t)
	a := Defaults()
	a.LineLength = 72
	b := Defaults()
	b.FontName = "Prestige Elite Std"

	if err := store.Save("/tmp/a.txt", a); err != nil {
		t.Fatalf("Save(a) error = %v", err)
	}
	if err := store.Save("/tmp/b.txt", b); err != nil {
		t.Fatalf("Save(b) error = %v", err)
	}

	gotA, err := store.Load("/tmp/a.txt")
	if err != nil {
		t.Fatalf("Load(a) error = %v", err)
	}
	gotB, err := store.Load("/tmp/b.txt")
	if err != nil {
		t.Fatalf("Load(b) error = %v", err)
	}
	if gotA != a || gotB != b {
		t.Errorf("per-document isolation broken: a=%+v b=%+v", gotA, gotB)
	}
}

func TestDotsInDocumentPath(t *testing.T) {
	store := testStore(t)
	want := Defaults()
	want.LineLength = 80
	path := "/tmp/draft.v2.final.txt"
	if err := store.Save(path, want); err != nil {
		t.Fatalf("Save() error = %v", err)
	}
	got, err := store.Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if got != want {
		t.Errorf("Load() = %+v, want %+v", got, want)
	}

	// The whole path must be a single top-level key, not nested maps.
	data, err := os.ReadFile(store.path)
	if err != nil {
		t.Fatalf("ReadFile() error = %v", err)
	}
	if gjson.GetBytes(data, escapeKey(path)+".line_length").Int() != 80 {
		t.Errorf("settings file misses flat key for %q: %s", path, data)
	}
}

func TestUnknownKeysPreserved(t *testing.T) {
	store := testStore(t)
	if err := os.MkdirAll(filepath.Dir(store.path), 0o755); err != nil {
		t.Fatalf("MkdirAll() error = %v", err)
	}
	seed := `{"/tmp/doc.txt":{"font_name":"Courier","custom_key":"kept"},"/tmp/other.txt":{"line_length":50}}`
	if err := os.WriteFile(store.path, []byte(seed), 0o644); err != nil {
		t.Fatalf("WriteFile() error = %v", err)
	}

	prefs := Defaults()
	prefs.LineLength = 72
	if err := store.Save("/tmp/doc.txt", prefs); err != nil {
		t.Fatalf("Save() error = %v", err)
	}

	data, err := os.ReadFile(store.path)
	if err != nil {
		t.Fatalf("ReadFile() error = %v", err)
	}
	if gjson.GetBytes(data, `\/tmp\/doc\.txt.custom_key`).Str != "kept" {
		t.Errorf("unknown key dropped: %s", data)
	}
	if gjson.GetBytes(data, `\/tmp\/other\.txt.line_length`).Int() != 50 {
		t.Errorf("other document's entry dropped: %s", data)
	}
}

func TestLoadIgnoresInvalidValues(t *testing.T) {
	store := testStore(t)
	if err := os.MkdirAll(filepath.Dir(store.path), 0o755); err != nil {
		t.Fatalf("MkdirAll() error = %v", err)
	}
	seed := `{"/tmp/doc.txt":{"line_length":999,"double_spacing":"yes","font_name":""}}`
	if err := os.WriteFile(store.path, []byte(seed), 0o644); err != nil {
		t.Fatalf("WriteFile() error = %v", err)
	}

	prefs, err := store.Load("/tmp/doc.txt")
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if prefs != Defaults() {
		t.Errorf("Load() = %+v, want defaults for invalid values", prefs)
	}
}

func TestLoadCorruptFileReturnsDefaults(t *testing.T) {
	store := testStore(t)
	if err := os.MkdirAll(filepath.Dir(store.path), 0o755); err != nil {
		t.Fatalf("MkdirAll() error = %v", err)
	}
	if err := os.WriteFile(store.path, []byte("{not json"), 0o644); err != nil {
		t.Fatalf("WriteFile() error = %v", err)
	}
	prefs, err := store.Load("/tmp/doc.txt")
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if prefs != Defaults() {
		t.Errorf("Load() = %+v, want defaults", prefs)
	}
}

func TestSaveRejectsInvalidPreferences(t *testing.T) {
	store := testStore(t)

	p := Defaults()
	p.LineLength = 30
	if err := store.Save("/tmp/doc.txt", p); !errors.Is(err, ErrInvalidPreference) {
		t.Errorf("Save(line length 30) error = %v, want %v", err, ErrInvalidPreference)
	}

	p = Defaults()
	p.FontName = ""
	if err := store.Save("/tmp/doc.txt", p); !errors.Is(err, ErrInvalidPreference) {
		t.Errorf("Save(empty font) error = %v, want %v", err, ErrInvalidPreference)
	}
}

func TestSaveLeavesNoTempFiles(t *testing.T) {
	store := testStore(t)
	if err := store.Save("/tmp/doc.txt", Defaults()); err != nil {
		t.Fatalf("Save() error = %v", err)
	}
	entries, err := os.ReadDir(filepath.Dir(store.path))
	if err != nil {
		t.Fatalf("ReadDir() error = %v", err)
	}
	for _, e := range entries {
		if e.Name() != "settings.json" {
			t.Errorf("unexpected file left behind: %s", e.Name())
		}
	}
}

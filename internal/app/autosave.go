package app

import (
	"os"
	"path/filepath"
)

// swapPath returns the recovery file path for a document: a hidden
// sibling named after the document with a .swp suffix, so crash
// recovery lives next to the file it protects.
func swapPath(docPath string) string {
	dir, base := filepath.Split(docPath)
	return filepath.Join(dir, "."+base+".swp")
}

// writeSwap atomically replaces the document's recovery file. The data
// lands in a temp file in the same directory and is renamed into place,
// so a crash mid-write never leaves a truncated recovery file.
func writeSwap(docPath string, data []byte) error {
	path := swapPath(docPath)
	tmp, err := os.CreateTemp(filepath.Dir(path), filepath.Base(path)+".tmp*")
	if err != nil {
		return err
	}
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return err
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return err
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return err
	}
	return os.Rename(tmp.Name(), path)
}

// readSwap returns the recovery file's contents.
func readSwap(docPath string) ([]byte, error) {
	return os.ReadFile(swapPath(docPath))
}

// removeSwap deletes the recovery file. A missing file is fine: a
// clean save simply has nothing to clean up.
func removeSwap(docPath string) {
	os.Remove(swapPath(docPath))
}

// swapExists reports whether a recovery file is present, meaning an
// earlier session crashed or the document is open elsewhere.
func swapExists(docPath string) bool {
	_, err := os.Stat(swapPath(docPath))
	return err == nil
}

package files

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

var spreadsheetExts = []string{".xlsx", ".xls"}

// FindSpreadsheets lists .xlsx/.xls files directly inside dir, sorted by name.
// A missing directory yields no files and no error.
func FindSpreadsheets(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read directory %s: %w", dir, err)
	}

	var paths []string
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		if IsSpreadsheet(entry.Name()) {
			paths = append(paths, filepath.Join(dir, entry.Name()))
		}
	}
	return paths, nil
}

// IsSpreadsheet matches the extension case-insensitively.
func IsSpreadsheet(name string) bool {
	ext := strings.ToLower(filepath.Ext(name))
	for _, e := range spreadsheetExts {
		if ext == e {
			return true
		}
	}
	return false
}

//go:build !windows

package hidden

import (
	"os"
	"path/filepath"
	"strings"
)

// dotfileProber implements the Unix convention: a leading dot hides a file.
type dotfileProber struct{}

func platformProber() Prober {
	return dotfileProber{}
}

func (dotfileProber) IsHidden(path string) bool {
	return strings.HasPrefix(filepath.Base(path), ".")
}

func (dotfileProber) Reveal(path string) (string, error) {
	base := filepath.Base(path)
	if !strings.HasPrefix(base, ".") || len(base) < 2 {
		return path, nil
	}
	newPath := filepath.Join(filepath.Dir(path), base[1:])
	if err := os.Rename(path, newPath); err != nil {
		return path, err
	}
	return newPath, nil
}

// Package pathwalk provides sequential directory traversal for the archival
// pipeline. Files are visited one at a time in lexical order so that
// downstream collision checks stay consistent within a run.
package pathwalk

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
)

// Options controls a walk.
type Options struct {
	// Include holds doublestar patterns matched against the slash-separated
	// path relative to the root. Empty means "every file".
	Include []string
	// Exclude holds doublestar patterns; a match removes the file (or
	// prunes the directory) from the walk.
	Exclude []string
	// SkipDirs prunes directories whose base name equals an entry.
	SkipDirs []string
	// MaxDepth limits traversal depth below the root; <= 0 is unlimited.
	MaxDepth int
	// ErrorHandler is invoked for per-entry traversal errors. Returning a
	// non-nil error aborts the walk; nil skips the entry.
	ErrorHandler func(path string, err error) error
}

// WalkFunc is invoked for each regular file, with path relative to the root
// in slash form.
type WalkFunc func(relPath string, info fs.FileInfo) error

// Files walks root sequentially and invokes fn for every regular file that
// survives the include/exclude filters.
func Files(root string, opts Options, fn WalkFunc) error {
	rootAbs, err := filepath.Abs(root)
	if err != nil {
		return fmt.Errorf("resolve walk root: %w", err)
	}
	if st, err := os.Stat(rootAbs); err != nil {
		return fmt.Errorf("stat walk root: %w", err)
	} else if !st.IsDir() {
		return fmt.Errorf("walk root %s is not a directory", root)
	}

	return filepath.WalkDir(rootAbs, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			if opts.ErrorHandler != nil {
				return opts.ErrorHandler(path, err)
			}
			return err
		}
		if path == rootAbs {
			return nil
		}

		rel, relErr := filepath.Rel(rootAbs, path)
		if relErr != nil {
			return relErr
		}
		rel = filepath.ToSlash(rel)

		if d.IsDir() {
			if opts.MaxDepth > 0 && strings.Count(rel, "/")+1 >= opts.MaxDepth {
				return filepath.SkipDir
			}
			for _, skip := range opts.SkipDirs {
				if d.Name() == skip {
					return filepath.SkipDir
				}
			}
			if matchAny(opts.Exclude, rel) || matchAny(opts.Exclude, rel+"/") {
				return filepath.SkipDir
			}
			return nil
		}
		if !d.Type().IsRegular() {
			return nil
		}

		if matchAny(opts.Exclude, rel) {
			return nil
		}
		if len(opts.Include) > 0 && !matchAny(opts.Include, rel) {
			return nil
		}

		info, infoErr := d.Info()
		if infoErr != nil {
			if opts.ErrorHandler != nil {
				return opts.ErrorHandler(path, infoErr)
			}
			return infoErr
		}
		return fn(rel, info)
	})
}

func matchAny(patterns []string, rel string) bool {
	for _, p := range patterns {
		if ok, err := doublestar.Match(p, rel); err == nil && ok {
			return true
		}
	}
	return false
}

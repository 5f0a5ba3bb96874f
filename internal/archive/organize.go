package archive

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/fulmenhq/fontvault/internal/naming"
	"github.com/fulmenhq/fontvault/internal/resolve"
	"github.com/fulmenhq/fontvault/pkg/config"
	"github.com/fulmenhq/fontvault/pkg/logger"
	"github.com/fulmenhq/fontvault/pkg/safeio"
)

// renamedFile pairs a working-tree file with its family grouping key, ready
// for filing.
type renamedFile struct {
	path       string
	baseFamily string
}

// renameAll gives every fallback-resolved file its canonical
// FontName_Style name. Manifest-matched files keep the name assigned during
// staging. Rename failures honor the configured severity: halt aborts the
// remainder of the run, continue logs and drops the file. Afterwards any
// working-tree file that did not survive resolution is cleaned up.
func (r *Runner) renameAll(identities []*resolve.FontIdentity, res *Result) ([]renamedFile, error) {
	kept := make([]renamedFile, 0, len(identities))
	keptPaths := make(map[string]bool, len(identities))

	for _, ident := range identities {
		oldPath := filepath.Join(r.opts.Working, filepath.FromSlash(ident.SourceRelativePath))

		if ident.ManifestID != "" {
			if _, err := os.Stat(oldPath); err == nil {
				kept = append(kept, renamedFile{path: oldPath, baseFamily: ident.FamilyName})
				keptPaths[oldPath] = true
			}
			continue
		}

		base := ident.FullName
		if ident.Style != "" {
			base = ident.FullName + "_" + ident.Style
		}
		safeBase := naming.Sanitize(base)
		ext := "." + ident.ContainerFormat

		newPath, err := r.uniqueRenameTarget(filepath.Dir(oldPath), safeBase, ext, oldPath)
		if err != nil {
			if handleErr := r.failFile("rename", oldPath, err, r.opts.Config.OnRenameFailure, res); handleErr != nil {
				return kept, handleErr
			}
			continue
		}

		if oldPath != newPath {
			if err := os.Rename(oldPath, newPath); err != nil {
				if handleErr := r.failFile("rename", oldPath, err, r.opts.Config.OnRenameFailure, res); handleErr != nil {
					return kept, handleErr
				}
				continue
			}
			logger.Debug("Renamed font",
				logger.String("from", filepath.Base(oldPath)),
				logger.String("to", filepath.Base(newPath)))
		}
		kept = append(kept, renamedFile{path: newPath, baseFamily: ident.FamilyName})
		keptPaths[newPath] = true
	}

	r.cleanupWorking(keptPaths)
	return kept, nil
}

// uniqueRenameTarget returns dir/base+ext, suffixing on collision. The
// current path itself is not a collision. Under the "fail" collision policy
// an occupied target is an error instead.
func (r *Runner) uniqueRenameTarget(dir, base, ext, selfPath string) (string, error) {
	candidate := filepath.Join(dir, base+ext)
	for id := 1; ; id++ {
		if candidate == selfPath {
			return candidate, nil
		}
		if _, err := os.Stat(candidate); err != nil {
			return candidate, nil
		}
		if r.opts.Config.Collision == config.CollisionFail {
			return "", fmt.Errorf("target %s already exists", candidate)
		}
		candidate = filepath.Join(dir, fmt.Sprintf("%s_%d%s", base, id, ext))
	}
}

// cleanupWorking removes files left in the working tree that are not part
// of the final batch (non-fonts, introspection failures, stale copies).
func (r *Runner) cleanupWorking(keptPaths map[string]bool) {
	_ = filepath.Walk(r.opts.Working, func(path string, info os.FileInfo, err error) error {
		if err != nil || info.IsDir() || keptPaths[path] {
			return nil
		}
		if err := os.Remove(path); err != nil {
			logger.Error("Failed to remove leftover file", logger.String("path", path), logger.Err(err))
			return nil
		}
		logger.Debug("Cleaned up leftover file", logger.String("path", path))
		return nil
	})
}

// organize files each renamed font under output/<sanitized-family>/, using
// collision-safe naming against files already filed there (for example a
// different container format of the same logical font). A move failure for
// one file never aborts processing of the remaining files unless the
// filing severity is raised to halt.
func (r *Runner) organize(files []renamedFile, res *Result) error {
	for _, f := range files {
		famDir := filepath.Join(r.opts.Output, naming.Sanitize(f.baseFamily))
		if err := safeio.EnsureDir(famDir); err != nil {
			if haltErr := r.failFiling(f.path, err, res); haltErr != nil {
				return haltErr
			}
			continue
		}

		base := filepath.Base(f.path)
		ext := filepath.Ext(base)
		stem := strings.TrimSuffix(base, ext)

		var destName string
		if r.opts.Config.Collision == config.CollisionFail {
			destName = base
			if _, err := os.Stat(filepath.Join(famDir, destName)); err == nil {
				err := fmt.Errorf("target %s already exists", filepath.Join(famDir, destName))
				if haltErr := r.failFiling(f.path, err, res); haltErr != nil {
					return haltErr
				}
				continue
			}
		} else {
			destName = naming.Unique(famDir, stem, ext)
		}

		dest := filepath.Join(famDir, destName)
		if err := safeio.MoveFile(f.path, dest); err != nil {
			if haltErr := r.failFiling(f.path, err, res); haltErr != nil {
				return haltErr
			}
			continue
		}
		logger.Debug("Filed font", logger.String("file", destName), logger.String("family", filepath.Base(famDir)))
	}
	return nil
}

// failFiling applies the configured filing severity. Filing failures carry
// their own counter and, unlike rename failures, default to continue.
func (r *Runner) failFiling(path string, err error, res *Result) error {
	logger.Error("Failed to file font", logger.String("path", path), logger.Err(err))
	res.FilingFailures++
	if r.opts.Config.OnFileFailure == config.SeverityHalt {
		return fmt.Errorf("file %s: %w", path, err)
	}
	return nil
}

// failFile applies the configured severity for a per-file failure. A nil
// return means the run continues without the file.
func (r *Runner) failFile(op, path string, err error, severity string, res *Result) error {
	logger.Error("Failed to "+op+" font", logger.String("path", path), logger.Err(err))
	res.Failed++
	if severity == config.SeverityHalt {
		return fmt.Errorf("%s %s: %w", op, path, err)
	}
	return nil
}

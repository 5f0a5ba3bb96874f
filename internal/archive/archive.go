// Package archive orchestrates one archival run: staging the source tree
// into the working directory, resolving identities, writing the ledger,
// renaming, and filing resolved fonts into the family hierarchy.
package archive

import (
	"errors"
	"fmt"
	"io/fs"
	"path"
	"path/filepath"
	"strings"

	"github.com/fulmenhq/fontvault/internal/hidden"
	"github.com/fulmenhq/fontvault/internal/manifest"
	"github.com/fulmenhq/fontvault/internal/naming"
	"github.com/fulmenhq/fontvault/internal/resolve"
	"github.com/fulmenhq/fontvault/internal/sniff"
	"github.com/fulmenhq/fontvault/pkg/config"
	"github.com/fulmenhq/fontvault/pkg/logger"
	"github.com/fulmenhq/fontvault/pkg/pathwalk"
	"github.com/fulmenhq/fontvault/pkg/safeio"
)

// ManifestFileName is the entitlement document expected at the source root.
const ManifestFileName = "entitlements.xml"

// LedgerFileName is the metadata ledger written next to the output tree.
const LedgerFileName = "metadata.csv"

// Outcome is the terminal state of a run.
type Outcome int

const (
	// Archived means at least one font was resolved and filed.
	Archived Outcome = iota
	// NothingToDo means zero resolvable fonts were found after a full
	// pass. This is a successful outcome, not an error.
	NothingToDo
)

// Options configures a run. Source must be readable; Working and the parent
// of Output must be writable before Run is invoked.
type Options struct {
	// Source is the root of the font cache being archived.
	Source string
	// Working is the staging directory owned exclusively by this run.
	Working string
	// Output is the root of the per-family hierarchy.
	Output string
	// ManifestPath overrides the default Source/entitlements.xml.
	ManifestPath string
	// LedgerPath overrides the default sibling-of-Output metadata.csv.
	LedgerPath string

	Config config.ArchiveConfig
}

// Result carries the per-run accumulators. Counters are owned by the run;
// there is no process-wide state.
type Result struct {
	Outcome            Outcome
	Processed          int
	SkippedNonFonts    int
	IgnoredManifestIDs int
	Failed             int
	FilingFailures     int
	LedgerPath         string
}

// stagedFile is one file copied into the working directory.
type stagedFile struct {
	relPath    string // slash-separated, relative to Working
	manifestID string // set when the file was renamed under a manifest match
}

// Runner executes the pipeline sequentially: each file passes through
// classification, resolution, naming and filing before the next one is
// considered.
type Runner struct {
	opts     Options
	manifest manifest.Map
	resolver *resolve.Resolver
}

// NewRunner validates opts and prepares a Runner.
func NewRunner(opts Options) (*Runner, error) {
	if opts.Source == "" || opts.Working == "" || opts.Output == "" {
		return nil, fmt.Errorf("archive: source, working and output directories are required")
	}
	if opts.ManifestPath == "" {
		opts.ManifestPath = filepath.Join(opts.Source, ManifestFileName)
	}
	if opts.LedgerPath == "" {
		opts.LedgerPath = filepath.Join(filepath.Dir(opts.Output), LedgerFileName)
	}
	if opts.Config.Collision == "" {
		opts.Config = config.Default().Archive
	}
	return &Runner{opts: opts}, nil
}

// Run executes the full pipeline and returns the run accumulators. Only a
// halt-severity failure propagates as an error; per-file failures are
// recovered locally.
func (r *Runner) Run() (*Result, error) {
	res := &Result{LedgerPath: r.opts.LedgerPath}

	m, err := manifest.Load(r.opts.ManifestPath)
	if err != nil {
		// The run continues with zero manifest coverage.
		logger.Error("Failed to parse manifest, continuing in full-fallback mode", logger.Err(err))
	}
	r.manifest = m
	r.resolver = &resolve.Resolver{
		Manifest:    m,
		Normalizer:  naming.NewNormalizer(r.opts.Config.ExtraFamilyTokens),
		MinFontSize: r.opts.Config.MinFontSize,
	}

	staged, err := r.stage()
	if err != nil {
		return res, err
	}

	identities := r.resolveAll(staged, res)
	if len(identities) == 0 {
		logger.Info("No valid fonts found")
		res.Outcome = NothingToDo
		return res, nil
	}

	if err := WriteLedger(r.opts.LedgerPath, identities); err != nil {
		return res, fmt.Errorf("write ledger: %w", err)
	}
	logger.Info("Wrote metadata ledger", logger.String("path", r.opts.LedgerPath))

	renamed, err := r.renameAll(identities, res)
	if err != nil {
		return res, err
	}

	if err := r.organize(renamed, res); err != nil {
		return res, err
	}

	res.Processed = len(identities)
	res.Outcome = Archived
	logger.Info("Run complete",
		logger.Int("processed", res.Processed),
		logger.Int("skipped_non_fonts", res.SkippedNonFonts),
		logger.Int("ignored_manifest_ids", res.IgnoredManifestIDs),
		logger.Int("failed", res.Failed))
	return res, nil
}

// stage copies every file from the source tree into the working directory,
// un-hiding dot-prefixed path components. Files whose stem matches a
// manifest identifier are renamed to Family_Variation during the copy, with
// collision suffixing; the identifier is recorded for the resolver.
func (r *Runner) stage() ([]stagedFile, error) {
	if err := safeio.EnsureDir(r.opts.Working); err != nil {
		return nil, fmt.Errorf("create working directory: %w", err)
	}

	var staged []stagedFile
	prober := hidden.ForPlatform()
	walkOpts := pathwalk.Options{
		Exclude: r.opts.Config.Exclude,
		ErrorHandler: func(p string, err error) error {
			logger.Warn("Skipping unreadable entry", logger.String("path", p), logger.Err(err))
			return nil
		},
	}

	err := pathwalk.Files(r.opts.Source, walkOpts, func(rel string, info fs.FileInfo) error {
		src := filepath.Join(r.opts.Source, filepath.FromSlash(rel))
		srcHidden := prober.IsHidden(src)
		if srcHidden {
			logger.Debug("Revealing hidden source entry", logger.String("file", rel))
		}

		parts := strings.Split(rel, "/")
		for i, part := range parts {
			parts[i] = hidden.RevealName(part)
		}
		destRel := path.Join(parts...)
		destDir := filepath.Join(r.opts.Working, filepath.FromSlash(path.Dir(destRel)))
		if err := safeio.EnsureDir(destDir); err != nil {
			return fmt.Errorf("create %s: %w", destDir, err)
		}

		var destPath string
		base := path.Base(destRel)
		stem := strings.TrimSuffix(base, path.Ext(base))
		if entry, ok := r.manifest[stem]; ok {
			ext := strings.ToLower(path.Ext(base))
			if ext != ".ttf" && ext != ".otf" {
				ext = sniff.ExtensionFor(src, r.opts.Config.MinFontSize, true)
			}
			newBase := naming.Sanitize(entry.FamilyName + "_" + entry.VariationName)
			newName := naming.Unique(destDir, newBase, ext)
			destPath = filepath.Join(destDir, newName)
			if err := safeio.CopyFile(src, destPath); err != nil {
				return fmt.Errorf("stage %s: %w", rel, err)
			}
			logger.Debug("Staged with manifest rename",
				logger.String("from", rel), logger.String("to", newName))
			staged = append(staged, stagedFile{
				relPath:    path.Join(path.Dir(destRel), newName),
				manifestID: stem,
			})
		} else {
			destPath = filepath.Join(r.opts.Working, filepath.FromSlash(destRel))
			if err := safeio.CopyFile(src, destPath); err != nil {
				return fmt.Errorf("stage %s: %w", rel, err)
			}
			staged = append(staged, stagedFile{relPath: destRel})
		}

		// The staged name is already dot-free; Reveal additionally clears
		// platform hidden attributes the copy may carry.
		if srcHidden {
			if _, err := prober.Reveal(destPath); err != nil {
				logger.Warn("Failed to clear hidden attribute",
					logger.String("file", destRel), logger.Err(err))
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return staged, nil
}

// resolveAll runs the resolver over the staged batch, accumulating skip and
// failure counts. Excluded files are not retried and do not appear in the
// ledger.
func (r *Runner) resolveAll(staged []stagedFile, res *Result) []*resolve.FontIdentity {
	identities := make([]*resolve.FontIdentity, 0, len(staged))
	seenIDs := make(map[string]bool)

	for _, sf := range staged {
		workPath := filepath.Join(r.opts.Working, filepath.FromSlash(sf.relPath))
		ident, err := r.resolver.Resolve(workPath, sf.relPath, sf.manifestID)
		if err != nil {
			if errors.Is(err, resolve.ErrNotAFont) {
				logger.Info("Skipped non-font file", logger.String("file", sf.relPath))
				res.SkippedNonFonts++
				continue
			}
			logger.Error("Failed to resolve font", logger.String("file", sf.relPath), logger.Err(err))
			res.Failed++
			continue
		}
		if ident.ManifestID != "" {
			seenIDs[ident.ManifestID] = true
		}
		identities = append(identities, ident)
	}

	for id := range r.manifest {
		if !seenIDs[id] {
			logger.Info("Manifest identifier not found in working tree", logger.String("id", id))
			res.IgnoredManifestIDs++
		}
	}
	return identities
}

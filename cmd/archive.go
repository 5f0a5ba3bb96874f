package cmd

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/fulmenhq/fontvault/internal/archive"
	"github.com/fulmenhq/fontvault/pkg/config"
	"github.com/fulmenhq/fontvault/pkg/exitcode"
	"github.com/fulmenhq/fontvault/pkg/logger"
	"github.com/fulmenhq/fontvault/pkg/safeio"
)

var archiveCmd = &cobra.Command{
	Use:   "archive",
	Short: "Run the full archival pipeline over a source font cache",
	Long: `Archive stages the source tree into a working directory, resolves every
font against the entitlement manifest (falling back to binary
introspection), writes the metadata ledger, and files each font under
<dest>/DONE/<family>/.`,
	RunE: runArchive,
}

func init() {
	archiveCmd.Flags().String("source", "", "Source font cache directory (required)")
	archiveCmd.Flags().String("dest", "", "Destination archive directory (required)")
	archiveCmd.Flags().String("manifest", "", "Manifest path (default: <source>/entitlements.xml)")
	archiveCmd.Flags().String("collision", "", "Collision policy: suffix|fail (overrides config)")
	archiveCmd.Flags().String("on-rename-failure", "", "Rename failure severity: halt|continue (overrides config)")
	_ = archiveCmd.MarkFlagRequired("source")
	_ = archiveCmd.MarkFlagRequired("dest")
}

func runArchive(cmd *cobra.Command, _ []string) error {
	source, _ := cmd.Flags().GetString("source")
	dest, _ := cmd.Flags().GetString("dest")
	manifestPath, _ := cmd.Flags().GetString("manifest")
	collision, _ := cmd.Flags().GetString("collision")
	onRenameFailure, _ := cmd.Flags().GetString("on-rename-failure")

	cfg, err := config.Load()
	if err != nil {
		return withExitCode(exitcode.ConfigError, err)
	}
	if collision != "" {
		cfg.Archive.Collision = collision
	}
	if onRenameFailure != "" {
		cfg.Archive.OnRenameFailure = onRenameFailure
	}
	if err := cfg.Validate(); err != nil {
		return withExitCode(exitcode.ConfigError, err)
	}

	source, err = safeio.CleanUserPath(source)
	if err != nil {
		return withExitCode(exitcode.ConfigError, fmt.Errorf("invalid source path: %w", err))
	}
	dest, err = safeio.CleanUserPath(dest)
	if err != nil {
		return withExitCode(exitcode.ConfigError, fmt.Errorf("invalid destination path: %w", err))
	}

	working := filepath.Join(dest, "working")
	output := filepath.Join(dest, "DONE")
	for _, dir := range []string{dest, working, output} {
		if err := safeio.EnsureDir(dir); err != nil {
			return withExitCode(exitcode.FileSystemError, fmt.Errorf("create %s: %w", dir, err))
		}
	}

	runner, err := archive.NewRunner(archive.Options{
		Source:       source,
		Working:      working,
		Output:       output,
		ManifestPath: manifestPath,
		Config:       cfg.Archive,
	})
	if err != nil {
		return err
	}

	res, err := runner.Run()
	if err != nil {
		return withExitCode(exitcode.FileSystemError, err)
	}
	if res.Outcome == archive.NothingToDo {
		cmd.Println("No valid fonts found.")
		logger.Info("Nothing to archive", logger.Int("exit", exitcode.NothingToDo))
		return withExitCode(exitcode.NothingToDo, fmt.Errorf("no valid fonts found"))
	}

	cmd.Printf("Archived %d fonts into %s (skipped %d non-fonts, %d failures)\n",
		res.Processed, output, res.SkippedNonFonts, res.Failed+res.FilingFailures)
	cmd.Printf("Ledger: %s\n", res.LedgerPath)
	return nil
}

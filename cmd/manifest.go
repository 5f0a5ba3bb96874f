package cmd

import (
	"encoding/json"
	"fmt"
	"sort"

	"github.com/spf13/cobra"

	"github.com/fulmenhq/fontvault/internal/manifest"
	"github.com/fulmenhq/fontvault/pkg/exitcode"
)

var manifestCmd = &cobra.Command{
	Use:   "manifest <path>",
	Short: "Parse an entitlement manifest and list its declared fonts",
	Args:  cobra.ExactArgs(1),
	RunE:  runManifest,
}

func init() {
	manifestCmd.Flags().String("output", "text", "Output format: text|json")
}

func runManifest(cmd *cobra.Command, args []string) error {
	outputFormat, _ := cmd.Flags().GetString("output")

	m, err := manifest.Load(args[0])
	if err != nil {
		return withExitCode(exitcode.ManifestError, err)
	}

	ids := make([]string, 0, len(m))
	for id := range m {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	switch outputFormat {
	case "json":
		type row struct {
			ID            string `json:"id"`
			FamilyName    string `json:"family_name"`
			FullName      string `json:"full_name"`
			VariationName string `json:"variation_name"`
			IsVariable    bool   `json:"is_variable"`
		}
		rows := make([]row, 0, len(ids))
		for _, id := range ids {
			e := m[id]
			rows = append(rows, row{id, e.FamilyName, e.FullName, e.VariationName, e.IsVariable})
		}
		b, err := json.MarshalIndent(rows, "", "  ")
		if err != nil {
			return err
		}
		cmd.Println(string(b))
	case "text":
		for _, id := range ids {
			e := m[id]
			variable := ""
			if e.IsVariable {
				variable = " [variable]"
			}
			cmd.Printf("%-40s %s / %s (%s)%s\n", id, e.FamilyName, e.FullName, e.VariationName, variable)
		}
		cmd.Printf("%d entries\n", len(ids))
	default:
		return fmt.Errorf("unsupported output format: %s", outputFormat)
	}
	return nil
}

package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/fulmenhq/fontvault/internal/naming"
	"github.com/fulmenhq/fontvault/internal/sfnt"
	"github.com/fulmenhq/fontvault/internal/sniff"
)

var inspectCmd = &cobra.Command{
	Use:   "inspect <file>",
	Short: "Classify a single file and dump its embedded identity records",
	Args:  cobra.ExactArgs(1),
	RunE:  runInspect,
}

func runInspect(cmd *cobra.Command, args []string) error {
	path := args[0]

	format := sniff.Classify(path, 0)
	if format == sniff.NotAFont {
		return fmt.Errorf("%s: not a recognized font container", path)
	}
	cmd.Printf("Container:  %s\n", format)

	font, err := sfnt.Open(path)
	if err != nil {
		return fmt.Errorf("introspect %s: %w", path, err)
	}
	names, err := font.Names()
	if err != nil {
		return fmt.Errorf("introspect %s: %w", path, err)
	}

	cmd.Printf("Outlines:   %s\n", font.OutlineFormat())
	cmd.Printf("Variable:   %t\n", font.IsVariable())
	cmd.Printf("Family:     %s\n", names.Get(sfnt.NameFontFamily))
	cmd.Printf("Subfamily:  %s\n", names.Get(sfnt.NameFontSubfamily))
	if v := names.Get(sfnt.NameFullName); v != "" {
		cmd.Printf("Full name:  %s\n", v)
	}
	if v := names.Get(sfnt.NameTypographicFamily); v != "" {
		cmd.Printf("Typo family: %s\n", v)
	}
	if v := names.Get(sfnt.NameTypographicSubfamily); v != "" {
		cmd.Printf("Typo style: %s\n", v)
	}

	src := names.Get(sfnt.NameTypographicFamily)
	if src == "" {
		src = names.Get(sfnt.NameFontFamily)
	}
	cmd.Printf("Base family: %s\n", naming.Family(src))
	return nil
}

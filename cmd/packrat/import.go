package main

import (
	"github.com/packrat-data/packrat/internal/packrat/commands"
	"github.com/spf13/cobra"
)

// NewImportCommand creates the 'import' command, which builds a Table
// node from a delimited source file.
func NewImportCommand() *cobra.Command {
	var dir string
	var format string

	cmd := &cobra.Command{
		Use:   "import <user/package> <name> <file>",
		Short: "Import a csv/ssv/tsv file into a package as a table.",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			return commands.ImportTable(dir, args[0], args[1], args[2], format)
		},
	}

	cmd.Flags().StringVarP(&dir, "directory", "d", ".", "The directory to resolve package roots from")
	cmd.Flags().StringVarP(&format, "format", "f", "", "Codec format for stored tables (CSV, JSONL, YAML)")

	return cmd
}

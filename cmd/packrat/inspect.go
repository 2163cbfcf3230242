package main

import (
	"github.com/packrat-data/packrat/internal/packrat/commands"
	"github.com/spf13/cobra"
)

// NewInspectCommand creates the 'inspect' command, which resolves a
// path inside a package and prints the result.
func NewInspectCommand() *cobra.Command {
	var dir string
	var format string

	cmd := &cobra.Command{
		Use:   "inspect <user/package> [path]",
		Short: "Resolve a path inside a package and show what it holds.",
		Long: `Resolves a slash-delimited path through the package manifest. Groups
print their children, tables print a preview through the codec backend,
and raw files print the backing object path. With no path the package
root group is shown.`,
		Args: cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := ""
			if len(args) > 1 {
				path = args[1]
			}
			return commands.Inspect(dir, args[0], path, format)
		},
	}

	cmd.Flags().StringVarP(&dir, "directory", "d", ".", "The directory to resolve package roots from")
	cmd.Flags().StringVarP(&format, "format", "f", "", "Codec format for stored tables (CSV, JSONL, YAML)")

	return cmd
}

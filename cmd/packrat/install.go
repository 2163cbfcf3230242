package main

import (
	"github.com/packrat-data/packrat/internal/packrat/commands"
	"github.com/spf13/cobra"
)

// NewInstallCommand creates the 'install' command, which downloads and
// verifies every object referenced by a package manifest.
func NewInstallCommand() *cobra.Command {
	var dir string
	var format string

	cmd := &cobra.Command{
		Use:   "install <user/package> <spec-file>",
		Short: "Install a package from a manifest plus object URLs.",
		Long: `Installs a package locally from an install spec: a JSON file holding the
package manifest and a digest-to-URL map for every referenced object.
The manifest is written first, then each object is downloaded and
verified against its digest; a mismatch aborts the install.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return commands.Install(dir, args[0], args[1], format)
		},
	}

	cmd.Flags().StringVarP(&dir, "directory", "d", ".", "The directory to resolve package roots from")
	cmd.Flags().StringVarP(&format, "format", "f", "", "Codec format for the package (CSV, JSONL, YAML)")

	return cmd
}

package main

import (
	"github.com/packrat-data/packrat/internal/packrat/commands"
	"github.com/spf13/cobra"
)

// NewPushCommand creates the 'push' command, which stages compressed
// copies of a package's objects for upload.
func NewPushCommand() *cobra.Command {
	var dir string
	var format string
	var outDir string

	cmd := &cobra.Command{
		Use:   "push <user/package>",
		Short: "Stage gzip-compressed package objects for upload.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return commands.Push(dir, args[0], outDir, format)
		},
	}

	cmd.Flags().StringVarP(&dir, "directory", "d", ".", "The directory to resolve package roots from")
	cmd.Flags().StringVarP(&format, "format", "f", "", "Codec format for the package (CSV, JSONL, YAML)")
	cmd.Flags().StringVarP(&outDir, "output", "o", "packrat_upload", "Directory to write compressed objects to")

	return cmd
}

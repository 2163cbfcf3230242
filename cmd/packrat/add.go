package main

import (
	"github.com/packrat-data/packrat/internal/packrat/commands"
	"github.com/spf13/cobra"
)

// NewAddCommand creates the 'add' command, which stores raw files as
// File nodes in a package.
func NewAddCommand() *cobra.Command {
	var dir string
	var format string
	var recursive bool

	cmd := &cobra.Command{
		Use:   "add <user/package> <name|directory> [file]",
		Short: "Add a raw file (or a directory of files) to a package.",
		Long: `Adds content to a package as File nodes. In the default form the file is
stored under the given node name:

  packrat add alice/weather stations data/stations.txt

With --recursive the second argument is a directory; every regular file
under it is added using its relative path as the node name, honoring
.packratignore patterns.`,
		Args: cobra.RangeArgs(2, 3),
		RunE: func(cmd *cobra.Command, args []string) error {
			if recursive {
				return commands.AddDir(dir, args[0], args[1], format)
			}
			if len(args) != 3 {
				return cmd.Usage()
			}
			return commands.Add(dir, args[0], args[1], args[2], format)
		},
	}

	cmd.Flags().StringVarP(&dir, "directory", "d", ".", "The directory to resolve package roots from")
	cmd.Flags().StringVarP(&format, "format", "f", "", "Codec format for the package (CSV, JSONL, YAML)")
	cmd.Flags().BoolVarP(&recursive, "recursive", "r", false, "Add every file under a directory")

	return cmd
}

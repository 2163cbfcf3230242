package main

import (
	"github.com/packrat-data/packrat/internal/packrat/commands"
	"github.com/spf13/cobra"
)

func NewHashCommand() *cobra.Command {
	var dir string
	var format string

	cmd := &cobra.Command{
		Use:   "hash <user/package>",
		Short: "Print the package hash of a package's current contents.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return commands.Hash(dir, args[0], format)
		},
	}

	cmd.Flags().StringVarP(&dir, "directory", "d", ".", "The directory to resolve package roots from")
	cmd.Flags().StringVarP(&format, "format", "f", "", "Codec format for the package (CSV, JSONL, YAML)")

	return cmd
}

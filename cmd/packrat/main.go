package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

func main() {
	var rootCmd = &cobra.Command{
		Use:   "packrat",
		Short: "packrat manages versioned, content-addressed data packages.",
	}

	// Add commands
	rootCmd.AddCommand(NewAddCommand())
	rootCmd.AddCommand(NewImportCommand())
	rootCmd.AddCommand(NewLsCommand())
	rootCmd.AddCommand(NewHashCommand())
	rootCmd.AddCommand(NewInspectCommand())
	rootCmd.AddCommand(NewInstallCommand())
	rootCmd.AddCommand(NewPushCommand())
	rootCmd.AddCommand(NewCompletionCommand())

	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

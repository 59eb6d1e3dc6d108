package main

import (
	"os"

	"github.com/spf13/cobra"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "resrap",
		Short: "A probabilistic grammar engine for synthetic text",
	}

	rootCmd.AddCommand(newCheckCmd())
	rootCmd.AddCommand(newGenerateCmd())
	rootCmd.AddCommand(newDotCmd())
	rootCmd.AddCommand(newLSPCmd())

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

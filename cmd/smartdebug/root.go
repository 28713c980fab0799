package main

import (
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "smartdebug",
	Short: "smartdebug is a tool for diagnosing and validating smartdebug configuration.",
	Long: `smartdebug is a CLI for exploring and validating the bootstrap configuration
used by embedded Go diagnostic layers.`,
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

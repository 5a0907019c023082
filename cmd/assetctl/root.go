package main

import (
	"os"

	"github.com/spf13/cobra"
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "assetctl",
	Short: "assetd server command line interface",
	Long:  `assetctl manages the assetd server: migrations, roles, accounts and the server process itself.`,
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

package main

import (
	"crypto/rand"
	"encoding/base64"
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// tokenKeyCmd represents the token-key command
var tokenKeyCmd = &cobra.Command{
	Use:   "token-key",
	Short: "Manage the login token signing key",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println("error: Command 'token-key' requires a subcommand (generate)")
		fmt.Println()
		_ = cmd.Help()
		os.Exit(1)
	},
}

var tokenKeyGenerateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Generate a token signing key",
	Long: `Generate a 256-bit signing key for login tokens.

Export the output as ASSETD_TOKEN_KEY before starting the server:

  assetctl token-key generate > token_key
  export ASSETD_TOKEN_KEY=$(cat token_key)`,
	Run: func(cmd *cobra.Command, args []string) {
		key := make([]byte, 32)
		if _, err := rand.Read(key); err != nil {
			fmt.Fprintln(os.Stderr, "Failed to generate key:", err)
			os.Exit(1)
		}
		fmt.Println(base64.StdEncoding.EncodeToString(key))
	},
}

func init() {
	rootCmd.AddCommand(tokenKeyCmd)
	tokenKeyCmd.AddCommand(tokenKeyGenerateCmd)
}

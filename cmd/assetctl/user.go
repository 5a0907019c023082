package main

import (
	"crypto/rand"
	"encoding/base64"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/crypto/bcrypt"

	"github.com/ledgepoint/assetd/pkg/db"
	"github.com/ledgepoint/assetd/pkg/model"
)

// userCmd represents the user command
var userCmd = &cobra.Command{
	Use:   "user",
	Short: "Manage user accounts",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println("error: Command 'user' requires a subcommand (create)")
		fmt.Println()
		_ = cmd.Help()
		os.Exit(1)
	},
}

// userCreateCmd creates an account with the given role. When no --password
// is given a random one is generated and printed once.
var userCreateCmd = &cobra.Command{
	Use:   "create <email> <role-name>",
	Short: "Create a user account",
	Args:  cobra.ExactArgs(2),
	Run: func(cmd *cobra.Command, args []string) {
		email := args[0]
		roleName := args[1]

		password, _ := cmd.Flags().GetString("password")
		generated := false
		if password == "" {
			raw := make([]byte, 24)
			if _, err := rand.Read(raw); err != nil {
				fmt.Fprintln(os.Stderr, "Failed to generate password:", err)
				os.Exit(1)
			}
			password = base64.RawURLEncoding.EncodeToString(raw)
			generated = true
		}

		hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
		if err != nil {
			fmt.Fprintln(os.Stderr, "Failed to hash password:", err)
			os.Exit(1)
		}

		database, err := db.Connect(db.Config{})
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}

		var roleIDs []uint
		database.Raw(`SELECT id FROM roles WHERE name = ?`, roleName).Scan(&roleIDs)
		if len(roleIDs) == 0 {
			fmt.Fprintf(os.Stderr, "Role %q not found\n", roleName)
			os.Exit(1)
		}

		account := model.User{
			Email:        email,
			Name:         email,
			PasswordHash: hash,
			RoleID:       roleIDs[0],
			Active:       true,
		}
		if err := database.Create(&account).Error; err != nil {
			fmt.Fprintln(os.Stderr, "Failed to create user:", err)
			os.Exit(1)
		}

		fmt.Printf("Created user %s with role %s\n", email, roleName)
		if generated {
			fmt.Printf("Password: %s\n", password)
		}
	},
}

func init() {
	rootCmd.AddCommand(userCmd)
	userCmd.AddCommand(userCreateCmd)
	userCreateCmd.Flags().String("password", "", "Password for the new account (generated if omitted)")
}

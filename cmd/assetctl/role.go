package main

import (
	"fmt"
	"os"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/ledgepoint/assetd/pkg/db"
	gormstore "github.com/ledgepoint/assetd/pkg/server/store/gorm"
)

// roleCmd represents the role command
var roleCmd = &cobra.Command{
	Use:   "role",
	Short: "Manage roles",
	Long:  `Manage roles and their grants.`,
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println("error: Command 'role' requires a subcommand (list, create, delete)")
		fmt.Println()
		_ = cmd.Help()
		os.Exit(1)
	},
}

var roleListCmd = &cobra.Command{
	Use:   "list",
	Short: "List all roles",
	Run: func(cmd *cobra.Command, args []string) {
		database, err := db.Connect(db.Config{})
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}

		roles, err := gormstore.NewRolesStore(database).ListRoles()
		if err != nil {
			fmt.Fprintln(os.Stderr, "Failed to list roles:", err)
			os.Exit(1)
		}

		for _, role := range roles {
			state := "active"
			if !role.Active {
				state = "inactive"
			}
			fmt.Printf("%d\t%s\t%s\n", role.ID, role.Name, state)
		}
	},
}

var roleCreateCmd = &cobra.Command{
	Use:   "create <name>",
	Short: "Create a role",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		database, err := db.Connect(db.Config{})
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}

		role, err := gormstore.NewRolesStore(database).CreateRole(args[0], 0)
		if err != nil {
			fmt.Fprintln(os.Stderr, "Failed to create role:", err)
			os.Exit(1)
		}

		fmt.Printf("Created role %d (%s)\n", role.ID, role.Name)
	},
}

// roleDeleteCmd deletes a role without checking for dependent user
// accounts; the admin API endpoint is the guarded path.
var roleDeleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Delete a role and its grants",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		roleID, err := strconv.ParseUint(args[0], 10, 64)
		if err != nil {
			fmt.Fprintln(os.Stderr, "Bad role id:", args[0])
			os.Exit(1)
		}

		database, err := db.Connect(db.Config{})
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}

		if err := gormstore.NewRolesStore(database).DeleteRole(uint(roleID)); err != nil {
			fmt.Fprintln(os.Stderr, "Failed to delete role:", err)
			os.Exit(1)
		}

		fmt.Printf("Deleted role %d\n", roleID)
	},
}

func init() {
	rootCmd.AddCommand(roleCmd)
	roleCmd.AddCommand(roleListCmd)
	roleCmd.AddCommand(roleCreateCmd)
	roleCmd.AddCommand(roleDeleteCmd)
}

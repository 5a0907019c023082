package main

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/crypto/bcrypt"

	"github.com/ledgepoint/assetd/pkg/authz"
	"github.com/ledgepoint/assetd/pkg/db"
	"github.com/ledgepoint/assetd/pkg/model"
	"github.com/ledgepoint/assetd/pkg/server/store"
	gormstore "github.com/ledgepoint/assetd/pkg/server/store/gorm"
)

// dbSeedCmd bootstraps a development database: an administrator role holding
// every broad action on every module, and an admin account for it.
var dbSeedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Seed an administrator role and account",
	Long: `Seed an administrator role and account.

Creates a role named "administrator" granted C,V,E,D on every module in the
catalog, and an account for it. Run after 'assetctl db migrate'.

Example:
  assetctl db seed --email admin@example.com --password changeme`,
	Run: func(cmd *cobra.Command, args []string) {
		email, _ := cmd.Flags().GetString("email")
		password, _ := cmd.Flags().GetString("password")
		if email == "" || password == "" {
			fmt.Fprintln(os.Stderr, "--email and --password are required")
			os.Exit(1)
		}

		database, err := db.Connect(db.Config{})
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}

		catalogStore := gormstore.NewCatalogStore(database)
		grantsStore := gormstore.NewGrantsStore(database)
		rolesStore := gormstore.NewRolesStore(database)

		role, err := rolesStore.CreateRole("administrator", 0)
		if errors.Is(err, store.ErrRoleExists) {
			var roleIDs []uint
			database.Raw(`SELECT id FROM roles WHERE name = ?`, "administrator").Scan(&roleIDs)
			role = &store.Role{ID: roleIDs[0], Name: "administrator"}
			fmt.Println("Role administrator already exists, refreshing its grants")
		} else if err != nil {
			fmt.Fprintln(os.Stderr, "Failed to create role:", err)
			os.Exit(1)
		}

		resources, err := catalogStore.ListResources()
		if err != nil {
			fmt.Fprintln(os.Stderr, "Failed to list catalog:", err)
			os.Exit(1)
		}

		broad := strings.Join([]string{
			authz.ActionCreate, authz.ActionView, authz.ActionEdit, authz.ActionDelete,
		}, ",")
		perms := make(map[string]string, len(resources))
		for _, r := range resources {
			perms[r.Name] = broad
		}

		resolver := authz.NewResolver(grantsStore)
		matrix := authz.NewMatrix(catalogStore, grantsStore, rolesStore, resolver, func() authz.ConsolidationMap {
			return nil
		})
		if _, err := matrix.ReplaceRolePermissions(role.ID, perms, 0); err != nil {
			fmt.Fprintln(os.Stderr, "Failed to grant permissions:", err)
			os.Exit(1)
		}

		hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
		if err != nil {
			fmt.Fprintln(os.Stderr, "Failed to hash password:", err)
			os.Exit(1)
		}

		existing := gormstore.NewUsersStore(database).FetchUserByEmail(email)
		if existing != nil {
			fmt.Printf("Account %s already exists, leaving it untouched\n", email)
		} else {
			account := model.User{
				Email:        email,
				Name:         email,
				PasswordHash: hash,
				RoleID:       role.ID,
				Active:       true,
			}
			if err := database.Create(&account).Error; err != nil {
				fmt.Fprintln(os.Stderr, "Failed to create account:", err)
				os.Exit(1)
			}
			fmt.Printf("Created account %s\n", email)
		}

		fmt.Printf("Seeded role administrator (%d) with %s on %d modules\n", role.ID, broad, len(resources))
	},
}

func init() {
	dbCmd.AddCommand(dbSeedCmd)
	dbSeedCmd.Flags().String("email", "", "Email of the administrator account")
	dbSeedCmd.Flags().String("password", "", "Password of the administrator account")
}

package main

import (
	"context"
	"fmt"
	"os"
	"text/tabwriter"
	"time"

	_ "github.com/lib/pq"
	"github.com/spf13/cobra"

	"github.com/rafalszulejko/helpdesk-go/internal/auth"
	"github.com/rafalszulejko/helpdesk-go/internal/config"
	"github.com/rafalszulejko/helpdesk-go/internal/database"
	"github.com/rafalszulejko/helpdesk-go/internal/models"
	"github.com/rafalszulejko/helpdesk-go/internal/repository"
	"github.com/rafalszulejko/helpdesk-go/internal/service"
)

var rootCmd = &cobra.Command{
	Use:   "helpdeskctl",
	Short: "Helpdesk administration tool",
	Long: `helpdeskctl manages a helpdesk installation from the command line:
role-permission assignments, database migration and token utilities.`,
}

var configPathFlag string

func init() {
	rootCmd.PersistentFlags().StringVar(&configPathFlag, "config", ".", "Directory containing config.yaml")

	rolesCmd.AddCommand(rolesListCmd, rolesGrantCmd, rolesRevokeCmd)
	rootCmd.AddCommand(rolesCmd, migrateCmd, tokenCmd)
}

func permissionService(ctx context.Context) (*service.PermissionService, func(), error) {
	if err := config.Load(configPathFlag); err != nil {
		return nil, nil, err
	}
	db, err := database.Connect(ctx, &config.Get().Database)
	if err != nil {
		return nil, nil, err
	}
	return service.NewPermissionService(repository.NewRolePermissionRepository(db)), func() { db.Close() }, nil
}

var rolesCmd = &cobra.Command{
	Use:   "roles",
	Short: "Manage role-permission assignments",
}

var rolesListCmd = &cobra.Command{
	Use:   "list",
	Short: "List every role with its granted permissions",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		svc, done, err := permissionService(ctx)
		if err != nil {
			return err
		}
		defer done()

		assignments, err := svc.Assignments(ctx)
		if err != nil {
			return err
		}

		w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
		fmt.Fprintln(w, "ROLE\tPERMISSION")
		for _, a := range assignments {
			fmt.Fprintf(w, "%s\t%s\n", a.Role, a.Permission)
		}
		return w.Flush()
	},
}

var rolesGrantCmd = &cobra.Command{
	Use:   "grant <role> <permission>",
	Short: "Grant a permission to a role",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		svc, done, err := permissionService(ctx)
		if err != nil {
			return err
		}
		defer done()

		if err := svc.Grant(ctx, models.Role(args[0]), models.Permission(args[1])); err != nil {
			return err
		}
		fmt.Printf("granted %s to %s\n", args[1], args[0])
		return nil
	},
}

var rolesRevokeCmd = &cobra.Command{
	Use:   "revoke <role> <permission>",
	Short: "Revoke a permission from a role",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		svc, done, err := permissionService(ctx)
		if err != nil {
			return err
		}
		defer done()

		if err := svc.Revoke(ctx, models.Role(args[0]), models.Permission(args[1])); err != nil {
			return err
		}
		fmt.Printf("revoked %s from %s\n", args[1], args[0])
		return nil
	},
}

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Apply the database schema and default seed",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		if err := config.Load(configPathFlag); err != nil {
			return err
		}
		db, err := database.Connect(ctx, &config.Get().Database)
		if err != nil {
			return err
		}
		defer db.Close()

		if err := database.Migrate(ctx, db); err != nil {
			return err
		}
		fmt.Println("migration complete")
		return nil
	},
}

var (
	tokenUserFlag  string
	tokenEmailFlag string
	tokenRoleFlag  string
	tokenTTLFlag   time.Duration
)

var tokenCmd = &cobra.Command{
	Use:   "token",
	Short: "Issue a signed session token for local testing",
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := config.Load(configPathFlag); err != nil {
			return err
		}
		role := models.Role(tokenRoleFlag)
		if !role.Valid() {
			return fmt.Errorf("unknown role %q", tokenRoleFlag)
		}

		tokens := auth.NewTokenReader(config.Get().Auth.JWT.Secret)
		token, err := tokens.Sign(tokenUserFlag, tokenEmailFlag, role, tokenTTLFlag)
		if err != nil {
			return err
		}
		fmt.Println(token)
		return nil
	},
}

func init() {
	tokenCmd.Flags().StringVar(&tokenUserFlag, "user", "", "User id (sub claim)")
	tokenCmd.Flags().StringVar(&tokenEmailFlag, "email", "", "Email claim")
	tokenCmd.Flags().StringVar(&tokenRoleFlag, "role", "", "Role claim: customer, employee or admin")
	tokenCmd.Flags().DurationVar(&tokenTTLFlag, "ttl", time.Hour, "Token lifetime")
	tokenCmd.MarkFlagRequired("user")
	tokenCmd.MarkFlagRequired("role")
}

func main() {
	if err := rootCmd.ExecuteContext(context.Background()); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

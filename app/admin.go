package app

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/folio-cms/folio/internal/auth"
	"github.com/folio-cms/folio/internal/db/controller/adminuser"
)

func init() { //nolint: gochecknoinits
	for _, c := range []*cobra.Command{adminAddCmd, adminRemoveCmd, adminPasswordCmd, adminTOTPCmd, adminDisableCmd, adminEnableCmd} {
		c.Flags().StringVar(&adminEmail, "email", "", "admin email address")
		_ = c.MarkFlagRequired("email")
	}

	adminAddCmd.Flags().StringVar(&adminName, "name", "", "display name")
	adminAddCmd.Flags().StringVar(&adminPassword, "password", "", "password for the login form; empty for OIDC or LDAP only admins")
	adminPasswordCmd.Flags().StringVar(&adminPassword, "password", "", "new password, read from stdin when empty")

	adminCmd.AddCommand(adminAddCmd, adminRemoveCmd, adminListCmd, adminPasswordCmd, adminTOTPCmd, adminDisableCmd, adminEnableCmd)
	rootCmd.AddCommand(adminCmd)
}

var (
	adminEmail    string
	adminName     string
	adminPassword string

	adminCmd = &cobra.Command{
		Use:               "admin",
		Short:             "Manage the admin allow-list",
		PersistentPreRunE: loadConfig,
	}

	adminAddCmd = &cobra.Command{
		Use:   "add",
		Short: "Add an admin",
		RunE: func(cmd *cobra.Command, _ []string) error {
			var hash string

			if adminPassword != "" {
				var err error
				if hash, err = auth.HashPassword(adminPassword); err != nil {
					return err
				}
			}

			conn, closeDB, err := openDB()
			if err != nil {
				return err
			}
			defer closeDB()

			u, err := adminuser.Add(cmd.Context(), conn, adminEmail, adminName, hash)
			if err != nil {
				return err
			}

			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "added %s (id %d)\n", u.Email, u.ID)

			return nil
		},
	}

	adminRemoveCmd = &cobra.Command{
		Use:   "remove",
		Short: "Remove an admin",
		RunE: func(cmd *cobra.Command, _ []string) error {
			conn, closeDB, err := openDB()
			if err != nil {
				return err
			}
			defer closeDB()

			if err = adminuser.Remove(cmd.Context(), conn, adminEmail); err != nil {
				return err
			}

			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "removed %s\n", adminuser.NormalizeEmail(adminEmail))

			return nil
		},
	}

	adminListCmd = &cobra.Command{
		Use:   "list",
		Short: "List admins",
		RunE: func(cmd *cobra.Command, _ []string) error {
			conn, closeDB, err := openDB()
			if err != nil {
				return err
			}
			defer closeDB()

			admins, err := adminuser.List(cmd.Context(), conn)
			if err != nil {
				return err
			}

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			_, _ = fmt.Fprintln(w, "ID\tEMAIL\tNAME\tACTIVE\tPASSWORD\tTOTP")

			for i := range admins {
				u := &admins[i]
				_, _ = fmt.Fprintf(w, "%d\t%s\t%s\t%t\t%t\t%t\n", u.ID, u.Email, u.Name, u.Active, u.HasPassword(), u.HasTOTP())
			}

			return w.Flush()
		},
	}

	adminPasswordCmd = &cobra.Command{
		Use:   "password",
		Short: "Set the password of an admin",
		RunE: func(cmd *cobra.Command, _ []string) error {
			pw := adminPassword
			if pw == "" {
				var err error
				if pw, err = readPassword(cmd); err != nil {
					return err
				}
			}

			hash, err := auth.HashPassword(pw)
			if err != nil {
				return err
			}

			conn, closeDB, err := openDB()
			if err != nil {
				return err
			}
			defer closeDB()

			return adminuser.SetPassword(cmd.Context(), conn, adminEmail, hash)
		},
	}

	adminTOTPCmd = &cobra.Command{
		Use:   "totp",
		Short: "Enable the second factor of an admin and print the authenticator URL",
		RunE: func(cmd *cobra.Command, _ []string) error {
			key, err := auth.GenerateTOTP(cfg.Auth.LocalDB.TOTPIssuer, adminuser.NormalizeEmail(adminEmail))
			if err != nil {
				return err
			}

			conn, closeDB, err := openDB()
			if err != nil {
				return err
			}
			defer closeDB()

			if err = adminuser.SetTOTPSecret(cmd.Context(), conn, adminEmail, key.Secret()); err != nil {
				return err
			}

			_, _ = fmt.Fprintln(cmd.OutOrStdout(), key.URL())

			return nil
		},
	}

	adminDisableCmd = &cobra.Command{
		Use:   "disable",
		Short: "Keep an admin on the list but refuse its logins and sessions",
		RunE:  setActive(false),
	}

	adminEnableCmd = &cobra.Command{
		Use:   "enable",
		Short: "Allow a disabled admin again",
		RunE:  setActive(true),
	}
)

func setActive(active bool) func(cmd *cobra.Command, _ []string) error {
	return func(cmd *cobra.Command, _ []string) error {
		conn, closeDB, err := openDB()
		if err != nil {
			return err
		}
		defer closeDB()

		return adminuser.SetActive(cmd.Context(), conn, adminEmail, active)
	}
}

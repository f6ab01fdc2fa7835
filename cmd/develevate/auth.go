package main

import (
	"errors"
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"develevate/internal/bootstrap"
	"develevate/pkg/schema"
)

// signedIn reports the outcome of a login or registration recorded in the
// session store. The application mirrors the principal into its profile.
func signedIn(cmd *cobra.Command, app *bootstrap.App) error {
	s := app.Session.GetState()
	if !s.IsAuthenticated || s.User == nil {
		if s.Error != "" {
			return errors.New(s.Error)
		}
		return errors.New("not signed in")
	}

	fmt.Fprintf(cmd.OutOrStdout(), "✅ Signed in as %s (%s)\n", s.User.Name, s.User.Role)
	return nil
}

func newLoginCmd(c *cli) *cobra.Command {
	var email, password, role string

	cmd := &cobra.Command{
		Use:   "login",
		Short: "Sign in with the demo credentials",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := c.open(cmd)
			if err != nil {
				return err
			}
			if err := app.Auth.Login(email, password, schema.Role(role)); err != nil {
				return err
			}
			return signedIn(cmd, app)
		},
	}
	cmd.Flags().StringVar(&email, "email", "", "Account email")
	cmd.Flags().StringVar(&password, "password", "", "Account password")
	cmd.Flags().StringVar(&role, "role", string(schema.RoleUser), "Role: user or admin")
	_ = cmd.MarkFlagRequired("email")
	_ = cmd.MarkFlagRequired("password")

	return cmd
}

func newRegisterCmd(c *cli) *cobra.Command {
	var name, email, password, role string

	cmd := &cobra.Command{
		Use:   "register",
		Short: "Create an account and sign in",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := c.open(cmd)
			if err != nil {
				return err
			}
			if err := app.Auth.Register(name, email, password, schema.Role(role)); err != nil {
				return err
			}
			return signedIn(cmd, app)
		},
	}
	cmd.Flags().StringVar(&name, "name", "", "Display name")
	cmd.Flags().StringVar(&email, "email", "", "Account email")
	cmd.Flags().StringVar(&password, "password", "", "Account password")
	cmd.Flags().StringVar(&role, "role", string(schema.RoleUser), "Role: user or admin")
	_ = cmd.MarkFlagRequired("name")
	_ = cmd.MarkFlagRequired("email")
	_ = cmd.MarkFlagRequired("password")

	return cmd
}

func newLogoutCmd(c *cli) *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Sign out",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := c.open(cmd)
			if err != nil {
				return err
			}
			app.Auth.Logout()
			fmt.Fprintln(cmd.OutOrStdout(), "👋 Signed out")
			return nil
		},
	}
}

func newProfileCmd(c *cli) *cobra.Command {
	var name, avatar, bio string

	cmd := &cobra.Command{
		Use:   "profile",
		Short: "Update the signed-in profile",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			var patch schema.ProfilePatch
			flags := cmd.Flags()
			if flags.Changed("name") {
				patch.Name = &name
			}
			if flags.Changed("avatar") {
				patch.Avatar = &avatar
			}
			if flags.Changed("bio") {
				patch.Bio = &bio
			}
			if patch.IsEmpty() {
				return errors.New("nothing to update: pass --name, --avatar or --bio")
			}

			app, err := c.open(cmd)
			if err != nil {
				return err
			}
			if app.Session.GetState().User == nil {
				return errors.New("not signed in")
			}
			if err := app.Auth.UpdateProfile(patch); err != nil {
				return err
			}

			user := app.Session.GetState().User
			fmt.Fprintf(cmd.OutOrStdout(), "✅ Profile updated for %s\n", user.Name)
			return nil
		},
	}
	cmd.Flags().StringVar(&name, "name", "", "Display name")
	cmd.Flags().StringVar(&avatar, "avatar", "", "Avatar URL")
	cmd.Flags().StringVar(&bio, "bio", "", "Short bio")

	return cmd
}

func newPasswordCmd(c *cli) *cobra.Command {
	var current, next string

	cmd := &cobra.Command{
		Use:   "password",
		Short: "Change the password",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := c.open(cmd)
			if err != nil {
				return err
			}
			if err := app.Auth.ChangePassword(current, next); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "✅ Password changed")
			return nil
		},
	}
	cmd.Flags().StringVar(&current, "current", "", "Current password")
	cmd.Flags().StringVar(&next, "new", "", "New password")
	_ = cmd.MarkFlagRequired("current")
	_ = cmd.MarkFlagRequired("new")

	return cmd
}

// requireAdmin opens the app and checks that an admin is signed in.
func requireAdmin(c *cli, cmd *cobra.Command) (*bootstrap.App, error) {
	app, err := c.open(cmd)
	if err != nil {
		return nil, err
	}
	s := app.Session.GetState()
	if !s.IsAuthenticated || s.User == nil || s.User.Role != schema.RoleAdmin {
		return nil, errors.New("admin sign-in required")
	}
	return app, nil
}

func newUsersCmd(c *cli) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "users",
		Short: "Administer accounts (admin only)",
	}

	cmd.AddCommand(
		&cobra.Command{
			Use:   "list",
			Short: "List accounts",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				app, err := requireAdmin(c, cmd)
				if err != nil {
					return err
				}
				if err := app.Auth.LoadUsers(); err != nil {
					return err
				}

				w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
				fmt.Fprintln(w, "ID\tNAME\tEMAIL\tROLE\tJOINED\tSTATUS")
				for _, u := range app.Session.GetState().Users {
					status := "active"
					if !u.IsActive {
						status = "inactive"
					}
					fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s\n", u.ID, u.Name, u.Email, u.Role, u.JoinDate.Format(schema.DateLayout), status)
				}
				return w.Flush()
			},
		},
		&cobra.Command{
			Use:   "rm <id>",
			Short: "Delete an account",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				app, err := requireAdmin(c, cmd)
				if err != nil {
					return err
				}
				if s := app.Session.GetState(); s.User.ID == args[0] {
					return fmt.Errorf("cannot delete the signed-in account")
				}
				if err := app.Auth.DeleteUser(args[0]); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "🗑️  Deleted %s\n", args[0])
				return nil
			},
		},
		setActiveCmd(c, "enable", "active", true),
		setActiveCmd(c, "disable", "inactive", false),
	)

	return cmd
}

func setActiveCmd(c *cli, use, status string, active bool) *cobra.Command {
	return &cobra.Command{
		Use:   use + " <id>",
		Short: "Mark an account as " + status,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := requireAdmin(c, cmd)
			if err != nil {
				return err
			}
			if err := app.Auth.LoadUsers(); err != nil {
				return err
			}

			user, ok := app.Session.GetState().FindUser(args[0])
			if !ok {
				return fmt.Errorf("user %s not found", args[0])
			}
			user.IsActive = active
			if err := app.Auth.UpdateUser(user); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s is now %s\n", user.Email, status)
			return nil
		},
	}
}

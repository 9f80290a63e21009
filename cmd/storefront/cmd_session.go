package main

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/99minutos/storefront/internal/app"
	"github.com/99minutos/storefront/internal/core/ports"
)

const passwordEnv = "STOREFRONT_PASSWORD"

var (
	loginEmail    string
	loginPassword string

	registerName    string
	registerSurname string
	registerPhone   string
	registerAddress string
)

// loginCmd exchanges credentials for a persisted session
var loginCmd = &cobra.Command{
	Use:   "login",
	Short: "Log in and persist the session",
	Long: `Log in with email and password. The password may come from the
STOREFRONT_PASSWORD environment variable instead of the flag.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		password, err := resolvePassword()
		if err != nil {
			return err
		}
		return withApp(cmd, func(ctx context.Context, a *app.App) error {
			if err := a.Session.Login(ctx, loginEmail, password); err != nil {
				return err
			}
			return printIdentity(cmd, a)
		})
	},
}

// logoutCmd clears the session
var logoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Log out and forget the persisted token",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withApp(cmd, func(ctx context.Context, a *app.App) error {
			if err := a.Session.Logout(ctx); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "logged out")
			return nil
		})
	},
}

// whoamiCmd prints the validated identity
var whoamiCmd = &cobra.Command{
	Use:   "whoami",
	Short: "Show the current identity",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withApp(cmd, func(ctx context.Context, a *app.App) error {
			if !a.Session.IsAuthenticated() {
				fmt.Fprintln(cmd.OutOrStdout(), "not logged in")
				return nil
			}
			return printIdentity(cmd, a)
		})
	},
}

// registerCmd creates an account and logs in
var registerCmd = &cobra.Command{
	Use:   "register",
	Short: "Create a customer account and log in",
	RunE: func(cmd *cobra.Command, args []string) error {
		password, err := resolvePassword()
		if err != nil {
			return err
		}
		return withApp(cmd, func(ctx context.Context, a *app.App) error {
			err := a.Session.Register(ctx, ports.RegisterInput{
				Email:    loginEmail,
				Password: password,
				Name:     registerName,
				Surname:  registerSurname,
				Phone:    registerPhone,
				Address:  registerAddress,
			})
			if err != nil {
				return err
			}
			return printIdentity(cmd, a)
		})
	},
}

func init() {
	for _, c := range []*cobra.Command{loginCmd, registerCmd} {
		c.Flags().StringVarP(&loginEmail, "email", "e", "", "account email")
		c.Flags().StringVarP(&loginPassword, "password", "p", "", "account password (or "+passwordEnv+")")
		_ = c.MarkFlagRequired("email")
	}
	registerCmd.Flags().StringVar(&registerName, "name", "", "first name")
	registerCmd.Flags().StringVar(&registerSurname, "surname", "", "last name")
	registerCmd.Flags().StringVar(&registerPhone, "phone", "", "phone number")
	registerCmd.Flags().StringVar(&registerAddress, "address", "", "shipping address")
	_ = registerCmd.MarkFlagRequired("name")
	_ = registerCmd.MarkFlagRequired("surname")
}

func resolvePassword() (string, error) {
	if loginPassword != "" {
		return loginPassword, nil
	}
	if p := os.Getenv(passwordEnv); p != "" {
		return p, nil
	}
	return "", errors.New("password required: pass --password or set " + passwordEnv)
}

func printIdentity(cmd *cobra.Command, a *app.App) error {
	id := a.Session.Identity()
	if id == nil {
		return errors.New("session not established")
	}
	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "%s %s <%s>\n", id.Name, id.Surname, id.Email)
	fmt.Fprintf(out, "id:   %s\n", id.ID)
	fmt.Fprintf(out, "role: %s (from %s)\n", id.Role, id.RoleSource)
	return nil
}

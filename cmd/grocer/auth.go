package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/akinalp/grocery-planner/pkg"
)

// passwordEnv, --password verilmezse okunan ortam değişkeni.
const passwordEnv = "GROCER_PASSWORD"

func newRegisterCmd(a *app) *cobra.Command {
	var password string
	cmd := &cobra.Command{
		Use:   "register <email>",
		Short: "Create an account",
		Args:  cobra.ExactArgs(1),
	}
	cmd.Flags().StringVarP(&password, "password", "p", "", "Account password (default $"+passwordEnv+")")
	cmd.RunE = a.action(func(cmd *cobra.Command, args []string) error {
		pw, err := resolvePassword(password)
		if err != nil {
			return err
		}
		if _, err := a.client.Register(cmd.Context(), args[0], pw); err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), "Check your email to confirm your account.")
		return nil
	})
	return cmd
}

func newLoginCmd(a *app) *cobra.Command {
	var password string
	cmd := &cobra.Command{
		Use:   "login <email>",
		Short: "Sign in and store the session",
		Args:  cobra.ExactArgs(1),
	}
	cmd.Flags().StringVarP(&password, "password", "p", "", "Account password (default $"+passwordEnv+")")
	cmd.RunE = a.action(func(cmd *cobra.Command, args []string) error {
		pw, err := resolvePassword(password)
		if err != nil {
			return err
		}
		session, err := a.client.Login(cmd.Context(), args[0], pw)
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Signed in as %s\n", session.User.Email)
		return nil
	})
	return cmd
}

func newLogoutCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Sign out and remove local list data",
		Args:  cobra.NoArgs,
		RunE: a.action(func(cmd *cobra.Command, args []string) error {
			// Yerel iz, oturum kullanıcısı bilinirken silinmeli.
			a.sync.ClearUserData(cmd.Context())
			if err := a.client.Logout(cmd.Context()); err != nil {
				a.logger.Debug("remote logout failed", zap.Error(err))
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Signed out.")
			return nil
		}),
	}
}

func newWhoamiCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "whoami",
		Short: "Show the signed-in user",
		Args:  cobra.NoArgs,
		RunE: a.action(func(cmd *cobra.Command, args []string) error {
			if a.client.CurrentUser() == nil {
				return pkg.ErrAuthRequired
			}
			profile, err := a.client.Profile(cmd.Context())
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "%s (%s)\n", profile.User.Email, profile.User.ID)
			if p := profile.Profile; p != nil && p.DisplayName != nil && *p.DisplayName != "" {
				fmt.Fprintf(out, "Name: %s\n", *p.DisplayName)
			}
			return nil
		}),
	}
}

func resolvePassword(flag string) (string, error) {
	if flag != "" {
		return flag, nil
	}
	if pw := strings.TrimSpace(os.Getenv(passwordEnv)); pw != "" {
		return pw, nil
	}
	return "", fmt.Errorf("password is required (--password or $%s)", passwordEnv)
}

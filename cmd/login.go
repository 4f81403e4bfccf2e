package cmd

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/dtalent/hr-client/internal"
	"github.com/dtalent/hr-client/internal/auth"
)

var (
	loginUsername string
	loginPassword string
)

var loginCmd = &cobra.Command{
	Use:   "login",
	Short: "Sign in and persist the session",
	RunE:  runLogin,
}

var logoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Clear the persisted session",
	RunE:  runLogout,
}

var whoamiCmd = &cobra.Command{
	Use:   "whoami",
	Short: "Show the persisted session user",
	RunE:  runWhoami,
}

func init() {
	loginCmd.Flags().StringVarP(&loginUsername, "username", "u", "", "username")
	loginCmd.Flags().StringVarP(&loginPassword, "password", "p", "", "password")
}

func runLogin(cmd *cobra.Command, _ []string) error {
	deps, err := initializeDependencies()
	if err != nil {
		return err
	}

	svc := auth.NewService(deps.Gateway, deps.Sessions, deps.Logger)

	u, err := svc.SignIn(context.Background(), auth.CredentialsDTO{
		Identifier: loginUsername,
		Secret:     loginPassword,
	})
	if err != nil {
		var validationErr *auth.ValidationError
		if errors.As(err, &validationErr) {
			for _, f := range validationErr.Fields {
				fmt.Fprintf(cmd.OutOrStdout(), "%s: %s\n", f.Field, f.Message)
			}
			return auth.ErrValidationFailed
		}
		if appErr, ok := internal.IsAppError(err); ok {
			return errors.New(appErr.Message)
		}
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Bienvenido, %s\n", u.Name)
	return nil
}

func runLogout(cmd *cobra.Command, _ []string) error {
	deps, err := initializeDependencies()
	if err != nil {
		return err
	}

	svc := auth.NewService(deps.Gateway, deps.Sessions, deps.Logger)
	if err := svc.Logout(); err != nil {
		return err
	}

	fmt.Fprintln(cmd.OutOrStdout(), "Sesión cerrada")
	return nil
}

func runWhoami(cmd *cobra.Command, _ []string) error {
	deps, err := initializeDependencies()
	if err != nil {
		return err
	}

	svc := auth.NewService(deps.Gateway, deps.Sessions, deps.Logger)

	_, u, err := svc.CurrentSession()
	if err != nil {
		return err
	}
	if u == nil {
		fmt.Fprintln(cmd.OutOrStdout(), "No hay sesión activa")
		return nil
	}

	fmt.Fprintf(cmd.OutOrStdout(), "%s <%s>", u.Name, u.Email)
	if u.Role != "" {
		fmt.Fprintf(cmd.OutOrStdout(), " (%s)", u.Role)
	}
	fmt.Fprintln(cmd.OutOrStdout())
	return nil
}

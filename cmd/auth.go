package cmd

import (
	"errors"
	"fmt"

	"copdcare/internal/account"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"
)

var authPassword string

func init() {
	rootCmd.AddCommand(authCmd)
	authCmd.AddCommand(signupCmd, loginCmd, logoutCmd, resetCmd, resetConfirmCmd, whoamiCmd)

	for _, c := range []*cobra.Command{signupCmd, loginCmd, resetConfirmCmd} {
		c.Flags().StringVarP(&authPassword, "password", "p", "", "password (prompted when omitted)")
	}
}

var authCmd = &cobra.Command{
	Use:   "auth",
	Short: "Sign up, sign in and manage your account",
}

func password() string {
	if authPassword != "" {
		return authPassword
	}
	return readLine("Password: ")
}

var signupCmd = &cobra.Command{
	Use:   "signup <email>",
	Short: "Create an account and sign in",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := openApp()
		if err != nil {
			return err
		}
		defer a.Close()

		ctx := cmd.Context()
		svc := account.NewService(a.st, logger)
		pw := password()
		if _, err := svc.SignUp(ctx, args[0], pw); err != nil {
			return err
		}
		sess, err := svc.SignIn(ctx, args[0], pw)
		if err != nil {
			return err
		}
		if err := account.SaveSession(ctx, a.st, sess); err != nil {
			return err
		}
		fmt.Printf("Account created, signed in as %s\n", sess.Email)
		return nil
	},
}

var loginCmd = &cobra.Command{
	Use:   "login <email>",
	Short: "Sign in",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := openApp()
		if err != nil {
			return err
		}
		defer a.Close()

		ctx := cmd.Context()
		sess, err := account.NewService(a.st, logger).SignIn(ctx, args[0], password())
		if err != nil {
			return err
		}
		if err := account.SaveSession(ctx, a.st, sess); err != nil {
			return err
		}
		fmt.Printf("Signed in as %s\n", sess.Email)
		return nil
	},
}

var logoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Sign out",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := openApp()
		if err != nil {
			return err
		}
		defer a.Close()

		if err := account.ClearSession(cmd.Context(), a.st); err != nil {
			return err
		}
		fmt.Println("Signed out")
		return nil
	},
}

var resetCmd = &cobra.Command{
	Use:   "reset <email>",
	Short: "Request a password reset",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := openApp()
		if err != nil {
			return err
		}
		defer a.Close()

		token, err := account.NewService(a.st, logger).SendPasswordReset(cmd.Context(), args[0])
		if err != nil {
			return err
		}
		fmt.Println("If an account exists for that address, a reset code has been issued.")
		if token != "" {
			fmt.Printf("Reset code: %s\n", token)
			fmt.Println("Use it within the hour: copdcare auth reset-confirm <code>")
		}
		return nil
	},
}

var resetConfirmCmd = &cobra.Command{
	Use:   "reset-confirm <code>",
	Short: "Set a new password with a reset code",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := openApp()
		if err != nil {
			return err
		}
		defer a.Close()

		if err := account.NewService(a.st, logger).ResetPassword(cmd.Context(), args[0], password()); err != nil {
			return err
		}
		fmt.Println("Password updated, you can now sign in")
		return nil
	},
}

var whoamiCmd = &cobra.Command{
	Use:   "whoami",
	Short: "Show the signed-in account",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := openApp()
		if err != nil {
			return err
		}
		defer a.Close()

		sess, err := a.session(cmd.Context())
		if errors.Is(err, account.ErrNotSignedIn) {
			fmt.Println("Not signed in")
			return nil
		}
		if err != nil {
			return err
		}
		fmt.Printf("%s (signed in %s)\n", sess.Email, humanize.Time(sess.SignedInAt))
		return nil
	},
}

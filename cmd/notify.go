package cmd

import (
	"fmt"

	"copdcare/internal/notify"

	"github.com/spf13/cobra"
)

var notifyDeny bool

func init() {
	rootCmd.AddCommand(notifyCmd)
	notifyCmd.AddCommand(notifyRegisterCmd, notifyTestCmd)

	notifyRegisterCmd.Flags().BoolVar(&notifyDeny, "deny", false, "decline notifications")
}

var notifyCmd = &cobra.Command{
	Use:   "notify",
	Short: "Manage symptom reminder notifications",
}

var notifyRegisterCmd = &cobra.Command{
	Use:   "register",
	Short: "Allow reminder notifications and register a push token",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := openApp()
		if err != nil {
			return err
		}
		defer a.Close()

		ctx := cmd.Context()
		sess, err := a.session(ctx)
		if err != nil {
			return err
		}

		granted := !notifyDeny
		if granted && isInteractive() {
			granted = askConfirm("Allow copdcare to send reminder notifications?", "Allow", "Don't allow")
		}

		token, err := notify.NewRegistrar(a.st, logger).Register(ctx, sess, granted)
		if err != nil {
			return err
		}
		fmt.Printf("Push token: %s\n", token)
		return nil
	},
}

var notifyTestCmd = &cobra.Command{
	Use:   "test",
	Short: "Send a test notification",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := openApp()
		if err != nil {
			return err
		}
		defer a.Close()

		ctx := cmd.Context()
		sess, err := a.session(ctx)
		if err != nil {
			return err
		}

		n, err := notify.NewRegistrar(a.st, logger).SendTest(ctx, sess)
		if err != nil {
			return err
		}
		fmt.Printf("[%s] %s\n", n.Title, n.Body)
		return nil
	},
}

package cmd

import (
	"fmt"
	"strings"

	"copdcare/internal/account"
	"copdcare/internal/chat"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"
)

var chatLimit int

func init() {
	rootCmd.AddCommand(chatCmd)
	chatCmd.AddCommand(chatListCmd, chatSendCmd, chatGuidelinesCmd)

	chatListCmd.Flags().IntVar(&chatLimit, "limit", 50, "number of recent messages to show")
}

var chatCmd = &cobra.Command{
	Use:   "chat",
	Short: "Share your COPD journey with the community",
}

var chatListCmd = &cobra.Command{
	Use:   "list",
	Short: "Show recent messages",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := openApp()
		if err != nil {
			return err
		}
		defer a.Close()

		msgs, err := chat.NewRoom(a.st, logger).List(cmd.Context(), chatLimit)
		if err != nil {
			return err
		}
		if len(msgs) == 0 {
			fmt.Println("No messages yet. Say hello with 'copdcare chat send'")
			return nil
		}
		for _, m := range msgs {
			fmt.Printf("%s (%s):\n  %s\n", m.Sender, humanize.Time(m.CreatedAt), m.Text)
		}
		return nil
	},
}

var chatSendCmd = &cobra.Command{
	Use:   "send \"your message\"",
	Short: "Post a message",
	Args:  cobra.MinimumNArgs(1),
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
		p, err := account.GetProfile(ctx, a.st, sess)
		if err != nil {
			return err
		}

		if _, err := chat.NewRoom(a.st, logger).Send(ctx, sess, p.Name, strings.Join(args, " ")); err != nil {
			return err
		}
		fmt.Println("Message sent")
		return nil
	},
}

var chatGuidelinesCmd = &cobra.Command{
	Use:   "guidelines",
	Short: "Show the community guidelines",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println(chat.Guidelines)
	},
}

package cmd

import (
	"fmt"

	"copdcare/internal/config"

	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(emergencyCmd)
}

var emergencyCmd = &cobra.Command{
	Use:   "emergency",
	Short: "Show the emergency assistance number",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load(config.Path("."))
		if err != nil {
			return err
		}
		fmt.Println("If you are struggling to breathe, call for help now.")
		fmt.Printf("Emergency assistance: %s  (tel:%s)\n", cfg.Emergency.Phone, cfg.Emergency.Phone)
		return nil
	},
}

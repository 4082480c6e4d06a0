package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"copdcare/internal/config"
	"copdcare/internal/store"

	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(initCmd)
}

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Initialize copdcare in the current directory",
	RunE: func(cmd *cobra.Command, args []string) error {
		dir, err := os.Getwd()
		if err != nil {
			return err
		}

		dbFile := filepath.Join(dir, store.DirName, store.DBName)
		if _, err := os.Stat(dbFile); err == nil {
			fmt.Printf("Already initialized: %s exists\n", filepath.Join(store.DirName, store.DBName))
			return nil
		}

		st, err := store.New(dir)
		if err != nil {
			return fmt.Errorf("init failed: %w", err)
		}
		st.Close()

		cfgPath := config.Path(dir)
		if _, err := os.Stat(cfgPath); os.IsNotExist(err) {
			if err := config.DefaultConfig().Save(cfgPath); err != nil {
				return err
			}
		}

		fmt.Printf("Initialized copdcare in %s\n", dir)
		fmt.Printf("Database:  %s\n", filepath.Join(store.DirName, store.DBName))
		fmt.Printf("Config:    %s\n", filepath.Join(store.DirName, config.FileName))
		return nil
	},
}

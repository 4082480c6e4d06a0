package cmd

import (
	"context"
	"errors"
	"fmt"

	"copdcare/internal/config"
	"copdcare/internal/exercise"

	"github.com/spf13/cobra"
)

var exerciseSeconds int

func init() {
	rootCmd.AddCommand(exercisesCmd)
	exercisesCmd.AddCommand(exercisesRunCmd)

	exercisesRunCmd.Flags().IntVar(&exerciseSeconds, "seconds", 0, "countdown length (0 = config exercise.countdown_seconds)")
}

var exercisesCmd = &cobra.Command{
	Use:   "exercises",
	Short: "List breathing exercises",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("%-10s %-26s %s\n", "KEY", "EXERCISE", "ABOUT")
		fmt.Println("──────────────────────────────────────────────────────────────────────────")
		for _, e := range exercise.List() {
			fmt.Printf("%-10s %-26s %s\n", e.Key, e.Name, truncate(e.Summary, 60))
		}
		fmt.Println("\nRun one with 'copdcare exercises run <key>'")
	},
}

var exercisesRunCmd = &cobra.Command{
	Use:       "run <key>",
	Short:     "Show the steps of an exercise and time it",
	Args:      cobra.ExactArgs(1),
	ValidArgs: []string{"deep", "pursed", "diaphragm", "cough"},
	RunE: func(cmd *cobra.Command, args []string) error {
		e, ok := exercise.Get(args[0])
		if !ok {
			return fmt.Errorf("unknown exercise %q, see 'copdcare exercises'", args[0])
		}

		fmt.Printf("%s\n\n%s\n\n", e.Name, e.Summary)
		for i, step := range e.Steps {
			fmt.Printf("  %d. %s\n", i+1, step)
		}
		if e.VideoURL != "" {
			fmt.Printf("\nWatch: %s\n", e.VideoURL)
		}
		fmt.Println()

		seconds := exerciseSeconds
		if seconds <= 0 {
			// works without init; exercises need no stored data
			cfg, err := config.Load(config.Path("."))
			if err != nil {
				return err
			}
			seconds = cfg.Exercise.CountdownSeconds
		}
		if seconds == 0 {
			return nil
		}

		err := exercise.Countdown(cmd.Context(), seconds, func(remaining int) {
			fmt.Printf("\rTime left: %2ds", remaining)
		})
		fmt.Println()
		if errors.Is(err, context.Canceled) {
			fmt.Println("Stopped early")
			return nil
		}
		if err != nil {
			return err
		}
		fmt.Println("Well done! Rest for a moment before repeating.")
		return nil
	},
}

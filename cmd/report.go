package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"copdcare/internal/account"
	"copdcare/internal/report"

	"github.com/atotto/clipboard"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	reportBudget int
	reportCopy   bool
	reportOut    string
)

func init() {
	rootCmd.AddCommand(reportCmd)

	reportCmd.Flags().IntVar(&reportBudget, "budget", 0, "maximum summary length in characters (0 = config report.budget_chars)")
	reportCmd.Flags().BoolVar(&reportCopy, "copy", false, "copy the report to the clipboard")
	reportCmd.Flags().StringVar(&reportOut, "out", "", "write the report to a file")
}

var reportCmd = &cobra.Command{
	Use:   "report",
	Short: "Generate a symptom summary to share with your doctor",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := openApp()
		if err != nil {
			return err
		}
		defer a.Close()

		ctx := cmd.Context()
		log, err := a.symptomLog(ctx)
		if err != nil {
			return err
		}

		opts := report.GenerateOptions{Budget: reportBudget}
		if opts.Budget <= 0 {
			opts.Budget = a.cfg.Report.BudgetChars
		}
		if sess, err := a.session(ctx); err == nil {
			p, err := account.GetProfile(ctx, a.st, sess)
			if err != nil {
				return err
			}
			opts.Profile = &p
		}

		gen := report.NewGenerator(log.Entries(), log.Catalog())
		level, text := gen.Generate(opts)
		logger.Debug("report generated", zap.String("level", level), zap.Int("chars", len(text)))

		if reportCopy {
			if err := clipboard.WriteAll(text); err != nil {
				fmt.Fprintf(os.Stderr, "Warning: could not copy to clipboard: %v\n", err)
			} else {
				fmt.Println("Report copied to clipboard!")
			}
		}

		if reportOut != "" {
			outPath := reportOut
			if !filepath.IsAbs(outPath) {
				outPath = filepath.Join(a.dir, outPath)
			}
			if err := os.WriteFile(outPath, []byte(text), 0644); err != nil {
				return fmt.Errorf("write file: %w", err)
			}
			fmt.Printf("Report (%s) written to %s\n", level, outPath)
		}

		if !reportCopy && reportOut == "" {
			fmt.Println(text)
		}
		return nil
	},
}

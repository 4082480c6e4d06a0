package cmd

import (
	"encoding/json"
	"fmt"
	"os"
	"strconv"
	"time"

	"copdcare/internal/symptoms"

	"github.com/atotto/clipboard"
	"github.com/spf13/cobra"
)

var (
	addDate   string
	addSet    []string
	addYes    bool
	delYes    bool
	chartJSON bool
	chartCopy bool
)

func init() {
	rootCmd.AddCommand(symptomsCmd)
	symptomsCmd.AddCommand(symptomsListCmd)
	symptomsCmd.AddCommand(symptomsAddCmd)
	symptomsCmd.AddCommand(symptomsDeleteCmd)
	symptomsCmd.AddCommand(symptomsChartCmd)
	symptomsCmd.AddCommand(symptomsCatalogCmd)

	symptomsAddCmd.Flags().StringVar(&addDate, "date", "", "entry date YYYY-MM-DD (default today)")
	symptomsAddCmd.Flags().StringArrayVar(&addSet, "set", nil, `severity for a symptom, e.g. --set "Fatigue=Moderate" (repeatable)`)
	symptomsAddCmd.Flags().BoolVarP(&addYes, "yes", "y", false, "replace an existing entry for the date without asking")
	symptomsDeleteCmd.Flags().BoolVarP(&delYes, "yes", "y", false, "delete without asking")
	symptomsChartCmd.Flags().BoolVar(&chartJSON, "json", false, "print chart data as JSON")
	symptomsChartCmd.Flags().BoolVar(&chartCopy, "copy", false, "copy chart JSON to clipboard")
}

var symptomsCmd = &cobra.Command{
	Use:     "symptoms",
	Aliases: []string{"sym"},
	Short:   "Track COPD symptoms",
}

var symptomsListCmd = &cobra.Command{
	Use:   "list",
	Short: "Show the symptom log, most recent first",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := openApp()
		if err != nil {
			return err
		}
		defer a.Close()

		log, err := a.symptomLog(cmd.Context())
		if err != nil {
			return err
		}

		entries := log.Entries()
		if len(entries) == 0 {
			fmt.Println("No entries yet, run 'copdcare symptoms add' first")
			return nil
		}

		rows := make([][]string, len(entries))
		for i, e := range entries {
			rows[i] = []string{strconv.Itoa(i + 1), e.Date, e.Symptoms()}
		}
		printTable([]string{"#", "DATE", "SYMPTOMS"}, rows)
		return nil
	},
}

var symptomsAddCmd = &cobra.Command{
	Use:   "add",
	Short: "Record symptom severities for a date",
	Long: `Record how severe each symptom was on a date. Pass --set for each symptom,
or run without --set in a terminal to be asked about every symptom in turn.
Symptoms not mentioned are skipped.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := openApp()
		if err != nil {
			return err
		}
		defer a.Close()

		log, err := a.symptomLog(cmd.Context())
		if err != nil {
			return err
		}

		date := addDate
		if !cmd.Flags().Changed("date") {
			date = time.Now().Format("2006-01-02")
		}

		var selections map[string]symptoms.Severity
		switch {
		case len(addSet) > 0:
			selections, err = symptoms.ParseSelections(log.Catalog(), addSet)
			if err != nil {
				return err
			}
		case isInteractive():
			selections, err = askSeverities(log.Catalog())
			if err != nil {
				return err
			}
		default:
			return fmt.Errorf("no severities given: use --set \"Name=Severity\"")
		}

		confirm := func(existing symptoms.Entry) bool {
			if addYes {
				return true
			}
			if !isInteractive() {
				return false
			}
			fmt.Printf("An entry for %s already exists: %s\n", existing.Date, existing.Symptoms())
			return askConfirm("Replace it?", "Replace", "Cancel")
		}

		outcome, err := log.Upsert(cmd.Context(), date, selections, confirm)
		if err != nil {
			return err
		}

		switch outcome {
		case symptoms.Cancelled:
			fmt.Printf("Kept the existing entry for %s", date)
			if !addYes && !isInteractive() {
				fmt.Print(" (pass --yes to replace)")
			}
			fmt.Println()
		case symptoms.Replaced:
			fmt.Printf("Replaced entry for %s\n", date)
		default:
			fmt.Printf("Added entry for %s\n", date)
		}
		return nil
	},
}

var symptomsDeleteCmd = &cobra.Command{
	Use:   "delete <#>",
	Short: "Delete an entry by its number in 'symptoms list'",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		n, err := strconv.Atoi(args[0])
		if err != nil {
			return fmt.Errorf("entry number must be an integer, got %q", args[0])
		}

		a, err := openApp()
		if err != nil {
			return err
		}
		defer a.Close()

		log, err := a.symptomLog(cmd.Context())
		if err != nil {
			return err
		}

		index := n - 1
		entries := log.Entries()
		if !delYes {
			if index < 0 || index >= len(entries) {
				return &symptoms.IndexError{Index: index, Len: len(entries)}
			}
			if !isInteractive() {
				return fmt.Errorf("refusing to delete without confirmation: pass --yes")
			}
			e := entries[index]
			if !askConfirm(fmt.Sprintf("Delete entry for %s (%s)?", e.Date, e.Symptoms()), "Delete", "Cancel") {
				fmt.Println("Nothing deleted")
				return nil
			}
		}

		removed, err := log.Delete(cmd.Context(), index)
		if err != nil {
			return err
		}
		fmt.Printf("Deleted entry for %s\n", removed.Date)
		return nil
	},
}

var symptomsChartCmd = &cobra.Command{
	Use:   "chart",
	Short: "Show severity over time for every symptom (0 none, 1 mild, 2 moderate, 3 severe)",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := openApp()
		if err != nil {
			return err
		}
		defer a.Close()

		log, err := a.symptomLog(cmd.Context())
		if err != nil {
			return err
		}

		data := symptoms.DeriveChartSeries(log.Entries(), log.Catalog())

		if chartJSON || chartCopy {
			out, err := json.MarshalIndent(data, "", "  ")
			if err != nil {
				return err
			}
			if chartCopy {
				if err := clipboard.WriteAll(string(out)); err != nil {
					fmt.Fprintf(os.Stderr, "Warning: could not copy to clipboard: %v\n", err)
				} else {
					fmt.Println("Chart data copied to clipboard!")
				}
			}
			if chartJSON {
				fmt.Println(string(out))
			}
			return nil
		}

		if len(data.Labels) == 0 {
			fmt.Println("No entries to chart yet")
			return nil
		}

		headers := append([]string{"DATE"}, log.Catalog().Names()...)
		rows := make([][]string, len(data.Labels))
		for i, label := range data.Labels {
			row := []string{label}
			for _, s := range data.Series {
				row = append(row, bar(s.Points[i]))
			}
			rows[i] = row
		}
		printTable(headers, rows)
		return nil
	},
}

func bar(ordinal int) string {
	if ordinal == 0 {
		return "·"
	}
	s := ""
	for i := 0; i < ordinal; i++ {
		s += "█"
	}
	return fmt.Sprintf("%s %d", s, ordinal)
}

var symptomsCatalogCmd = &cobra.Command{
	Use:   "catalog",
	Short: "Describe the tracked COPD symptoms",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println("Common COPD symptoms (each rated Mild, Moderate or Severe):")
		fmt.Println()
		for i, d := range symptoms.DefaultCatalog {
			fmt.Printf("%d. %s\n   %s\n", i+1, d.Name, d.Description)
		}
	},
}

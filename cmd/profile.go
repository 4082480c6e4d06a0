package cmd

import (
	"fmt"
	"strings"
	"time"

	"copdcare/internal/account"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"
)

var (
	profName        string
	profSeverity    string
	profSmoking     string
	profMedications []string
	profDoctor      string
	profAppointment string
)

func init() {
	rootCmd.AddCommand(profileCmd)
	profileCmd.AddCommand(profileShowCmd, profileSetCmd)

	f := profileSetCmd.Flags()
	f.StringVar(&profName, "name", "", "display name")
	f.StringVar(&profSeverity, "severity", "", "COPD severity (Mild, Moderate, Severe)")
	f.StringVar(&profSmoking, "smoking", "", "smoking history, e.g. '5 years'")
	f.StringSliceVar(&profMedications, "medications", nil, "comma-separated medication list")
	f.StringVar(&profDoctor, "doctor", "", "primary doctor")
	f.StringVar(&profAppointment, "appointment", "", "next appointment date YYYY-MM-DD")
}

var profileCmd = &cobra.Command{
	Use:   "profile",
	Short: "View and edit your health profile",
}

var profileShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show your profile",
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

		fmt.Printf("Name:                %s\n", orDash(p.Name))
		fmt.Printf("Email:               %s\n", orDash(p.Email))
		fmt.Println()
		fmt.Printf("COPD severity:       %s\n", orDash(p.ConditionSeverity))
		fmt.Printf("Smoking history:     %s\n", orDash(p.SmokingHistory))
		fmt.Printf("Current medications: %s\n", orDash(strings.Join(p.Medications, ", ")))
		fmt.Println()
		fmt.Printf("Primary doctor:      %s\n", orDash(p.PrimaryDoctor))
		fmt.Printf("Next appointment:    %s\n", orDash(p.NextAppointment))

		log, err := a.symptomLog(ctx)
		if err != nil {
			return err
		}
		if entries := log.Entries(); len(entries) > 0 {
			last := entries[0]
			when := last.Date
			if d, err := time.ParseInLocation("2006-01-02", last.Date, time.Local); err == nil {
				when = humanize.Time(d)
			}
			fmt.Println()
			fmt.Printf("Last symptom entry:  %s (%s)\n", last.Symptoms(), when)
		}
		return nil
	},
}

var profileSetCmd = &cobra.Command{
	Use:   "set",
	Short: "Update profile fields",
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

		f := cmd.Flags()
		if f.Changed("name") {
			p.Name = profName
		}
		if f.Changed("severity") {
			p.ConditionSeverity = profSeverity
		}
		if f.Changed("smoking") {
			p.SmokingHistory = profSmoking
		}
		if f.Changed("medications") {
			p.Medications = profMedications
		}
		if f.Changed("doctor") {
			p.PrimaryDoctor = profDoctor
		}
		if f.Changed("appointment") {
			if _, err := time.Parse("2006-01-02", profAppointment); err != nil {
				return fmt.Errorf("appointment must be YYYY-MM-DD, got %q", profAppointment)
			}
			p.NextAppointment = profAppointment
		}

		if err := account.SaveProfile(ctx, a.st, sess, p); err != nil {
			return err
		}
		fmt.Println("Profile saved")
		return nil
	},
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}

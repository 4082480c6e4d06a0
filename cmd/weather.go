package cmd

import (
	"fmt"
	"time"

	"copdcare/internal/weather"

	"github.com/spf13/cobra"
)

var (
	weatherCity  string
	weatherWatch time.Duration
)

func init() {
	rootCmd.AddCommand(weatherCmd)

	weatherCmd.Flags().StringVar(&weatherCity, "city", "", "city name (default from config)")
	weatherCmd.Flags().DurationVar(&weatherWatch, "watch", 0, "refresh on this interval until interrupted, e.g. 10m")
}

var weatherCmd = &cobra.Command{
	Use:   "weather",
	Short: "Show current weather conditions",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := openApp()
		if err != nil {
			return err
		}
		defer a.Close()

		city := weatherCity
		if city == "" {
			city = a.cfg.Weather.City
		}
		client := weather.NewClient(a.cfg.Weather.BaseURL, a.cfg.Weather.APIKey, logger).WithUnits(a.cfg.Weather.Units)

		if weatherWatch > 0 {
			client.Watch(cmd.Context(), city, weatherWatch, func(r *weather.Report, err error) {
				fmt.Printf("── %s ──\n", time.Now().Format("15:04:05"))
				if err != nil {
					fmt.Printf("Failed to load weather: %v\n\n", err)
					return
				}
				printWeather(r)
				fmt.Println()
			})
			return nil
		}

		r, err := client.Current(cmd.Context(), city)
		if err != nil {
			return fmt.Errorf("failed to fetch weather data: %w", err)
		}
		printWeather(r)
		return nil
	},
}

func printWeather(r *weather.Report) {
	fmt.Printf("%s: %s\n", r.City, r.Description)
	fmt.Printf("Temperature: %.1f%s\n", r.Temp, r.TempSymbol())
	fmt.Printf("Wind:        %.1f %s\n", r.WindSpeed, r.WindSymbol())
	fmt.Printf("Humidity:    %d%%\n", r.Humidity)
}

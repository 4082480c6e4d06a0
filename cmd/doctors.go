package cmd

import (
	"fmt"

	"copdcare/internal/places"

	"github.com/spf13/cobra"
)

var (
	doctorsLat      float64
	doctorsLon      float64
	doctorsRadius   int
	doctorsCategory string
)

func init() {
	rootCmd.AddCommand(doctorsCmd)

	doctorsCmd.Flags().Float64Var(&doctorsLat, "lat", 0, "latitude (default from config)")
	doctorsCmd.Flags().Float64Var(&doctorsLon, "lon", 0, "longitude (default from config)")
	doctorsCmd.Flags().IntVar(&doctorsRadius, "radius", 0, "search radius in metres (default from config)")
	doctorsCmd.Flags().StringVar(&doctorsCategory, "category", "", "place type, e.g. doctor, hospital (default from config)")
}

var doctorsCmd = &cobra.Command{
	Use:   "doctors",
	Short: "Find doctors near you",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := openApp()
		if err != nil {
			return err
		}
		defer a.Close()

		var loc *places.Location
		if a.cfg.Location.Set {
			loc = &places.Location{Lat: a.cfg.Location.Lat, Lon: a.cfg.Location.Lon}
		}
		if cmd.Flags().Changed("lat") && cmd.Flags().Changed("lon") {
			loc = &places.Location{Lat: doctorsLat, Lon: doctorsLon}
		}

		radius := doctorsRadius
		if radius <= 0 {
			radius = a.cfg.Places.RadiusM
		}
		category := doctorsCategory
		if category == "" {
			category = a.cfg.Places.Category
		}

		client := places.NewClient(a.cfg.Places.BaseURL, a.cfg.Places.APIKey, logger)
		found, err := client.FindNearby(cmd.Context(), loc, radius, category)
		if err != nil {
			return err
		}

		if len(found) == 0 {
			fmt.Printf("No %s found within %d m\n", category, radius)
			return nil
		}

		rows := make([][]string, len(found))
		for i, p := range found {
			rating := "-"
			if p.Rating != nil {
				rating = fmt.Sprintf("%.1f", *p.Rating)
			}
			rows[i] = []string{p.Name, p.Address, rating}
		}
		printTable([]string{"NAME", "ADDRESS", "RATING"}, rows)
		return nil
	},
}

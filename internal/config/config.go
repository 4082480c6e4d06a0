// Package config loads .copdcare/config.yaml, with overrides from the
// environment (and a .env file in the working directory).
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

const FileName = "config.yaml"

type Config struct {
	Weather   WeatherConfig   `yaml:"weather"`
	Places    PlacesConfig    `yaml:"places"`
	Location  LocationConfig  `yaml:"location"`
	Emergency EmergencyConfig `yaml:"emergency"`
	Exercise  ExerciseConfig  `yaml:"exercise"`
	Report    ReportConfig    `yaml:"report"`
}

type WeatherConfig struct {
	BaseURL string `yaml:"base_url"`
	APIKey  string `yaml:"api_key"`
	City    string `yaml:"city"`
	Units   string `yaml:"units"`
}

type PlacesConfig struct {
	BaseURL  string `yaml:"base_url"`
	APIKey   string `yaml:"api_key"`
	RadiusM  int    `yaml:"radius_m"`
	Category string `yaml:"category"`
}

// LocationConfig stands in for the device location. Set is false until the
// user has shared a position.
type LocationConfig struct {
	Lat float64 `yaml:"lat"`
	Lon float64 `yaml:"lon"`
	Set bool    `yaml:"set"`
}

type EmergencyConfig struct {
	Phone string `yaml:"phone"`
}

type ExerciseConfig struct {
	CountdownSeconds int `yaml:"countdown_seconds"`
}

type ReportConfig struct {
	BudgetChars int `yaml:"budget_chars"`
}

func DefaultConfig() *Config {
	return &Config{
		Weather: WeatherConfig{
			BaseURL: "https://api.openweathermap.org/data/2.5",
			City:    "Manipal",
			Units:   "metric",
		},
		Places: PlacesConfig{
			BaseURL:  "https://maps.googleapis.com/maps/api/place",
			RadiusM:  5000,
			Category: "doctor",
		},
		Emergency: EmergencyConfig{Phone: "1234567890"},
		Exercise:  ExerciseConfig{CountdownSeconds: 10},
		Report:    ReportConfig{BudgetChars: 2000},
	}
}

// Path returns the config file location for a project directory.
func Path(projectDir string) string {
	return filepath.Join(projectDir, ".copdcare", FileName)
}

// Load reads path, falling back to defaults when it does not exist, then
// applies environment overrides.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}
	if err == nil {
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config: %w", err)
		}
	}

	// .env is optional
	_ = godotenv.Load()
	cfg.applyEnvOverrides()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) Save(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}
	return nil
}

func (c *Config) applyEnvOverrides() {
	if v := os.Getenv("OPENWEATHER_API_KEY"); v != "" {
		c.Weather.APIKey = v
	}
	if v := os.Getenv("COPDCARE_CITY"); v != "" {
		c.Weather.City = v
	}
	if v := os.Getenv("GOOGLE_PLACES_API_KEY"); v != "" {
		c.Places.APIKey = v
	}
	if v := os.Getenv("COPDCARE_EMERGENCY_PHONE"); v != "" {
		c.Emergency.Phone = v
	}

	lat, latErr := strconv.ParseFloat(os.Getenv("COPDCARE_LAT"), 64)
	lon, lonErr := strconv.ParseFloat(os.Getenv("COPDCARE_LON"), 64)
	if latErr == nil && lonErr == nil {
		c.Location = LocationConfig{Lat: lat, Lon: lon, Set: true}
	}
}

func (c *Config) Validate() error {
	switch c.Weather.Units {
	case "", "metric", "imperial", "standard":
	default:
		return fmt.Errorf("weather.units must be metric, imperial or standard, got %q", c.Weather.Units)
	}
	if c.Places.RadiusM <= 0 {
		return fmt.Errorf("places.radius_m must be positive, got %d", c.Places.RadiusM)
	}
	if c.Location.Set {
		if c.Location.Lat < -90 || c.Location.Lat > 90 {
			return fmt.Errorf("location.lat out of range: %v", c.Location.Lat)
		}
		if c.Location.Lon < -180 || c.Location.Lon > 180 {
			return fmt.Errorf("location.lon out of range: %v", c.Location.Lon)
		}
	}
	if c.Exercise.CountdownSeconds < 0 {
		return fmt.Errorf("exercise.countdown_seconds must not be negative")
	}
	return nil
}

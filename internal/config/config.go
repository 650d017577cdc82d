// ============================================================================
// CONFIG - SafarLahore
// ============================================================================
// Optional config.yml with validated routing constants plus env overrides.
// The preference multipliers have no empirical basis; they are deliberate
// tuning knobs, so they live here instead of being hard-coded.
// ============================================================================

package config

import (
	"os"
	"strconv"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

// RoutingWeights are the preference multipliers applied to graph edges.
// Ride multipliers scale in-vehicle time; transfer multipliers scale the
// walking time of transfer edges and are always the heavier penalty.
type RoutingWeights struct {
	RideFastest        float64 `yaml:"rideFastest" validate:"gt=0"`
	RideLeastWalking   float64 `yaml:"rideLeastWalking" validate:"gt=0"`
	RideLeastTransfers float64 `yaml:"rideLeastTransfers" validate:"gt=0"`

	TransferFastest        float64 `yaml:"transferFastest" validate:"gt=0"`
	TransferLeastWalking   float64 `yaml:"transferLeastWalking" validate:"gt=0"`
	TransferLeastTransfers float64 `yaml:"transferLeastTransfers" validate:"gt=0"`
}

// SnapConfig controls how free coordinates are resolved to candidate stops.
type SnapConfig struct {
	RadiusMeters  int `yaml:"radiusMeters" validate:"gt=0"`
	MaxCandidates int `yaml:"maxCandidates" validate:"gt=0"`
}

// ProviderConfig points at the external transit directions API.
type ProviderConfig struct {
	BaseURL   string `yaml:"baseURL" validate:"omitempty,url"`
	APIKey    string `yaml:"apiKey"`
	TimeoutMS int    `yaml:"timeoutMS" validate:"gte=0"`
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Port int `yaml:"port" validate:"gt=0"`
}

// AppConfig is the full application configuration.
type AppConfig struct {
	Server   ServerConfig   `yaml:"server"`
	Weights  RoutingWeights `yaml:"weights"`
	Snap     SnapConfig     `yaml:"snap"`
	Provider ProviderConfig `yaml:"provider"`
}

// Defaults returns the configuration used when no config.yml is present.
// Multiplier values mirror the tuning the network was calibrated with:
// staying aboard is rewarded under least-transfers (x0.9) and walking
// transfers are penalized 1.2x-3x depending on preference.
func Defaults() AppConfig {
	return AppConfig{
		Server: ServerConfig{Port: 8080},
		Weights: RoutingWeights{
			RideFastest:            1.0,
			RideLeastWalking:       1.1,
			RideLeastTransfers:     0.9,
			TransferFastest:        1.2,
			TransferLeastWalking:   3.0,
			TransferLeastTransfers: 2.0,
		},
		Snap: SnapConfig{
			RadiusMeters:  2000,
			MaxCandidates: 3,
		},
		Provider: ProviderConfig{
			TimeoutMS: 10000,
		},
	}
}

// Load reads config.yml (when present), validates it and applies env
// overrides. A missing file is not an error: defaults apply.
func Load() (AppConfig, error) {
	cfg := Defaults()

	paths := []string{"config.yml", "./config/config.yml"}
	for _, p := range paths {
		data, err := os.ReadFile(p)
		if err != nil {
			continue
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return cfg, err
		}
		break
	}

	applyEnv(&cfg)

	v := validator.New()
	if err := v.Struct(cfg.Server); err != nil {
		return cfg, err
	}
	if err := v.Struct(cfg.Weights); err != nil {
		return cfg, err
	}
	if err := v.Struct(cfg.Snap); err != nil {
		return cfg, err
	}
	if err := v.Struct(cfg.Provider); err != nil {
		return cfg, err
	}

	return cfg, nil
}

// applyEnv lets deployment env vars win over file values.
func applyEnv(cfg *AppConfig) {
	if port := os.Getenv("PORT"); port != "" {
		if p, err := strconv.Atoi(port); err == nil && p > 0 {
			cfg.Server.Port = p
		}
	}
	if url := os.Getenv("TRANSIT_DIRECTIONS_URL"); url != "" {
		cfg.Provider.BaseURL = url
	}
	if key := os.Getenv("TRANSIT_DIRECTIONS_KEY"); key != "" {
		cfg.Provider.APIKey = key
	}
}

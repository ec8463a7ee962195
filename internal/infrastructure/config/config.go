package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config is the main configuration struct combining all sub-configs
type Config struct {
	Pricing      PricingConfig        `mapstructure:"pricing"`
	Currency     CurrencyConfig       `mapstructure:"currency"`
	Marketplaces MarketplacesConfig   `mapstructure:"marketplaces"`
	Arbitrage    ArbitrageConfig      `mapstructure:"arbitrage"`
	Validation   ValidationConfig     `mapstructure:"validation"`
	Variants     VariantsConfig       `mapstructure:"variants"`
	Sets         map[string]SetConfig `mapstructure:"sets" validate:"omitempty,dive"`
	Scanner      ScannerConfig        `mapstructure:"scanner"`
	API          APIConfig            `mapstructure:"api"`
	Database     DatabaseConfig       `mapstructure:"database"`
	Metrics      MetricsConfig        `mapstructure:"metrics"`
	Logging      LoggingConfig        `mapstructure:"logging"`
}

// LoadConfig loads configuration from multiple sources with priority:
// 1. Environment variables (highest priority)
// 2. Config file (config.yaml)
// 3. Defaults (lowest priority)
func LoadConfig(configPath string) (*Config, error) {
	// Load .env file if it exists (doesn't error if missing)
	_ = godotenv.Load()

	v := newViper(configPath)

	// Read config file (optional - don't error if missing)
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
		// Config file not found is OK - we'll use env vars and defaults
	}

	return decode(v)
}

// LoadConfigOrDefault loads configuration or returns a default config on error
func LoadConfigOrDefault(configPath string) *Config {
	cfg, err := LoadConfig(configPath)
	if err != nil {
		return DefaultConfig()
	}
	return cfg
}

// MustLoadConfig loads configuration and panics on error (for use in main.go)
func MustLoadConfig(configPath string) *Config {
	cfg, err := LoadConfig(configPath)
	if err != nil {
		panic(fmt.Sprintf("failed to load configuration: %v", err))
	}
	return cfg
}

// DefaultConfig returns the configuration used when nothing is set
func DefaultConfig() *Config {
	cfg, err := decode(newViper(""))
	if err != nil {
		// Built-in defaults always decode and validate
		panic(fmt.Sprintf("invalid built-in configuration: %v", err))
	}
	return cfg
}

func newViper(configPath string) *viper.Viper {
	v := viper.New()

	// Set config file details
	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("./configs")
		v.AddConfigPath("/etc/cardarb")
	}

	// Enable environment variable reading
	v.SetEnvPrefix("CARDARB")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	registerDefaults(v)
	return v
}

func decode(v *viper.Viper) (*Config, error) {
	// DATABASE_URL and the marketplace API keys are honored without the CARDARB_ prefix
	if dbURL := os.Getenv("DATABASE_URL"); dbURL != "" {
		v.Set("database.url", dbURL)
	}
	if key := os.Getenv("POKEMONTCG_API_KEY"); key != "" && v.GetString("api.pokemontcg.api_key") == "" {
		v.Set("api.pokemontcg.api_key", key)
	}
	if key := os.Getenv("PRICECHARTING_API_KEY"); key != "" && v.GetString("api.pricecharting.api_key") == "" {
		v.Set("api.pricecharting.api_key", key)
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	// Apply defaults for any missing values
	SetDefaults(&cfg)

	if err := ValidateConfig(&cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &cfg, nil
}

// IsConfigNotFound reports whether err means no config file was found in
// the search paths.
func IsConfigNotFound(err error) bool {
	var notFound viper.ConfigFileNotFoundError
	return errors.As(err, &notFound)
}

package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds all configuration for the application
type Config struct {
	Server    ServerConfig
	Retailers RetailersConfig
	Barcode   BarcodeConfig
	Cache     CacheConfig
}

// ServerConfig holds server-related configuration
type ServerConfig struct {
	Port           string   `mapstructure:"port"`
	Environment    string   `mapstructure:"environment"`
	AllowedOrigins []string `mapstructure:"allowed_origins"`
}

// RetailerConfig holds one retailer's search endpoint configuration
type RetailerConfig struct {
	BaseURL string `mapstructure:"base_url"`
	Enabled bool   `mapstructure:"enabled"`
}

// RetailersConfig holds every retailer endpoint plus the shared call timeout
type RetailersConfig struct {
	Timeout  time.Duration  `mapstructure:"timeout"`
	Walmart  RetailerConfig `mapstructure:"walmart"`
	Target   RetailerConfig `mapstructure:"target"`
	Costco   RetailerConfig `mapstructure:"costco"`
	SamsClub RetailerConfig `mapstructure:"samsclub"`
}

// BarcodeConfig holds the external barcode metadata lookup configuration
type BarcodeConfig struct {
	LookupURL string        `mapstructure:"lookup_url"`
	Timeout   time.Duration `mapstructure:"timeout"`
}

// CacheConfig holds cache-related configuration
type CacheConfig struct {
	TTL time.Duration `mapstructure:"ttl"`
}

// Load loads configuration from environment variables and config files
func Load() (*Config, error) {
	v := viper.New()

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")
	v.AddConfigPath("/etc/shopscan/")

	v.SetEnvPrefix("SHOPSCAN")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	setDefaults(v)

	// Config file is optional; env vars and defaults cover everything.
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("unable to decode config: %w", err)
	}

	if err := validate(&config); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &config, nil
}

// setDefaults sets default configuration values
func setDefaults(v *viper.Viper) {
	// Server defaults
	v.SetDefault("server.port", "8080")
	v.SetDefault("server.environment", "development")
	v.SetDefault("server.allowed_origins", []string{"*"})

	// Retailer defaults: all stores enabled, endpoints supplied per deploy.
	// Endpoint keys get empty defaults so viper binds their env vars.
	v.SetDefault("retailers.timeout", "8s")
	v.SetDefault("retailers.walmart.enabled", true)
	v.SetDefault("retailers.walmart.base_url", "")
	v.SetDefault("retailers.target.enabled", true)
	v.SetDefault("retailers.target.base_url", "")
	v.SetDefault("retailers.costco.enabled", true)
	v.SetDefault("retailers.costco.base_url", "")
	v.SetDefault("retailers.samsclub.enabled", true)
	v.SetDefault("retailers.samsclub.base_url", "")

	// Barcode lookup defaults
	v.SetDefault("barcode.lookup_url", "https://api.upcitemdb.com/prod/trial/lookup")
	v.SetDefault("barcode.timeout", "5s")

	// Cache defaults
	v.SetDefault("cache.ttl", "24h")
}

// validate validates the configuration
func validate(config *Config) error {
	type endpoint struct {
		name string
		cfg  RetailerConfig
	}
	endpoints := []endpoint{
		{"walmart", config.Retailers.Walmart},
		{"target", config.Retailers.Target},
		{"costco", config.Retailers.Costco},
		{"samsclub", config.Retailers.SamsClub},
	}

	anyEnabled := false
	for _, e := range endpoints {
		if !e.cfg.Enabled {
			continue
		}
		anyEnabled = true
		if e.cfg.BaseURL == "" {
			return fmt.Errorf("retailer %s is enabled but has no base URL (set SHOPSCAN_RETAILERS_%s_BASE_URL)", e.name, upper(e.name))
		}
	}
	if !anyEnabled {
		return fmt.Errorf("at least one retailer must be enabled")
	}

	if config.Barcode.LookupURL == "" {
		return fmt.Errorf("barcode lookup URL is required")
	}

	return nil
}

func upper(s string) string {
	b := []byte(s)
	for i := range b {
		if b[i] >= 'a' && b[i] <= 'z' {
			b[i] -= 'a' - 'A'
		}
	}
	return string(b)
}

package config

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"

	"github.com/librarium/lending/internal/domain/shared/valueobject"
)

// Config holds all application configuration
type Config struct {
	App     AppConfig
	Log     LogConfig
	Billing BillingConfig
}

// AppConfig holds application-specific settings
type AppConfig struct {
	Name string
	Env  string
}

// LogConfig holds logging configuration
type LogConfig struct {
	Level  string // debug, info, warn, error
	Format string // json, console
	Output string // stdout, stderr, or file path
}

// BillingConfig holds invoice and ledger settings
type BillingConfig struct {
	InvoicePrefix string
	TaxRate       float64
	Currency      string
}

// Load loads configuration from a TOML file and environment variables
// Priority (highest to lowest):
// 1. Environment variables with LIBRARIUM_ prefix (e.g., LIBRARIUM_BILLING_TAX_RATE)
// 2. config.toml
// 3. Built-in defaults
func Load() (*Config, error) {
	v := viper.New()

	v.SetConfigName("config")
	v.SetConfigType("toml")
	v.AddConfigPath(".")
	v.AddConfigPath("/app")

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
		// Config file not found is OK, we'll use defaults and env vars
	}

	v.SetEnvPrefix("LIBRARIUM")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	cfg := &Config{
		App: AppConfig{
			Name: v.GetString("app.name"),
			Env:  v.GetString("app.env"),
		},
		Log: LogConfig{
			Level:  v.GetString("log.level"),
			Format: v.GetString("log.format"),
			Output: v.GetString("log.output"),
		},
		Billing: BillingConfig{
			InvoicePrefix: v.GetString("billing.invoice_prefix"),
			TaxRate:       v.GetFloat64("billing.tax_rate"),
			Currency:      v.GetString("billing.currency"),
		},
	}

	applyDefaults(cfg)

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// applyDefaults sets default values for any empty config fields
func applyDefaults(cfg *Config) {
	if cfg.App.Name == "" {
		cfg.App.Name = "librarium-lending"
	}
	if cfg.App.Env == "" {
		cfg.App.Env = "development"
	}
	if cfg.Log.Level == "" {
		cfg.Log.Level = "info"
	}
	if cfg.Log.Format == "" {
		cfg.Log.Format = "console"
	}
	if cfg.Log.Output == "" {
		cfg.Log.Output = "stdout"
	}
	if cfg.Billing.InvoicePrefix == "" {
		cfg.Billing.InvoicePrefix = "INV"
	}
	if cfg.Billing.Currency == "" {
		cfg.Billing.Currency = string(valueobject.DefaultCurrency)
	}
	// Billing.TaxRate defaults to 0 (tax exempt), no fallback needed
}

// validate performs validation on the configuration
func (c *Config) validate() error {
	if c.Billing.TaxRate < 0 || c.Billing.TaxRate >= 1 {
		return fmt.Errorf("billing.tax_rate must be in [0, 1), got %f", c.Billing.TaxRate)
	}
	if !valueobject.Currency(c.Billing.Currency).IsValid() {
		return fmt.Errorf("billing.currency %q is not supported", c.Billing.Currency)
	}
	return nil
}

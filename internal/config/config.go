package config

import (
	"fmt"
	"net/url"
	"os"
	"slices"
	"strings"

	"github.com/caarlos0/env/v11"
	"github.com/shopspring/decimal"
)

type Config struct {
	LogLevel string `env:"LOG_LEVEL" envDefault:"info"`

	// Ledger
	LedgerBackend   string          `env:"LEDGER_BACKEND" envDefault:"memory"`
	Session         string          `env:"LEDGER_SESSION" envDefault:"default"`
	TaxRate         decimal.Decimal `env:"TAX_RATE" envDefault:"0.15"`
	ForecastHorizon int             `env:"FORECAST_HORIZON" envDefault:"6"`
	SeedFile        string          `env:"SEED_FILE"`

	// Events
	EventsBackend string   `env:"EVENTS_BACKEND" envDefault:"none"`
	AMQPURL       string   `env:"AMQP_URL"`
	AMQPExchange  string   `env:"AMQP_EXCHANGE" envDefault:"hostel"`
	AMQPQueue     string   `env:"AMQP_QUEUE" envDefault:"ledger_events"`
	KafkaBrokers  []string `env:"KAFKA_BROKERS" envSeparator:","`
	KafkaTopic    string   `env:"KAFKA_TOPIC" envDefault:"ledger_events"`

	// Google Sheets export
	GoogleSpreadsheetID      string `env:"GOOGLE_SPREADSHEET_ID"`
	GoogleRevenueSheet       string `env:"GOOGLE_REVENUE_SHEET" envDefault:"Revenue"`
	GoogleExpenseSheet       string `env:"GOOGLE_EXPENSE_SHEET" envDefault:"Expenses"`
	GoogleServiceAccountFile string `env:"GOOGLE_SERVICE_ACCOUNT_FILE"`
	GoogleServiceAccountJSON string `env:"GOOGLE_SERVICE_ACCOUNT_JSON"`
}

var (
	validLedgerBackends = []string{"memory", "sqlite"}
	validEventBackends  = []string{"none", "amqp", "kafka"}
	validLogLevels      = []string{"debug", "info", "warn", "warning", "error"}
)

// Load reads the configuration from the environment.
func Load() (*Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}
	return &cfg, nil
}

// Validate validates the configuration and returns an error if invalid
func (c *Config) Validate() error {
	var errors []string

	if !slices.Contains(validLogLevels, strings.ToLower(c.LogLevel)) {
		errors = append(errors, fmt.Sprintf("invalid log level '%s': must be one of %v", c.LogLevel, validLogLevels))
	}

	if !slices.Contains(validLedgerBackends, c.LedgerBackend) {
		errors = append(errors, fmt.Sprintf("invalid ledger backend '%s': must be one of %v", c.LedgerBackend, validLedgerBackends))
	}

	if strings.TrimSpace(c.Session) == "" {
		errors = append(errors, "ledger session name cannot be empty")
	}

	if c.TaxRate.IsNegative() || c.TaxRate.GreaterThan(decimal.NewFromInt(1)) {
		errors = append(errors, fmt.Sprintf("invalid tax rate %s: must be between 0 and 1", c.TaxRate))
	}

	if c.ForecastHorizon < 1 || c.ForecastHorizon > 120 {
		errors = append(errors, fmt.Sprintf("invalid forecast horizon %d: must be between 1 and 120", c.ForecastHorizon))
	}

	if c.SeedFile != "" {
		if _, err := os.Stat(c.SeedFile); os.IsNotExist(err) {
			errors = append(errors, fmt.Sprintf("seed file does not exist: %s", c.SeedFile))
		}
	}

	if !slices.Contains(validEventBackends, c.EventsBackend) {
		errors = append(errors, fmt.Sprintf("invalid events backend '%s': must be one of %v", c.EventsBackend, validEventBackends))
	}

	if c.EventsBackend == "amqp" {
		if c.AMQPURL == "" {
			errors = append(errors, "AMQP URL is required when using amqp events backend")
		} else if parsedURL, err := url.Parse(c.AMQPURL); err != nil {
			errors = append(errors, fmt.Sprintf("invalid AMQP URL '%s': %v", c.AMQPURL, err))
		} else if parsedURL.Scheme != "amqp" && parsedURL.Scheme != "amqps" {
			errors = append(errors, fmt.Sprintf("invalid AMQP URL scheme '%s': must be 'amqp' or 'amqps'", parsedURL.Scheme))
		}
		if c.AMQPExchange == "" {
			errors = append(errors, "AMQP exchange name cannot be empty when using amqp events backend")
		}
		if c.AMQPQueue == "" {
			errors = append(errors, "AMQP queue name cannot be empty when using amqp events backend")
		}
	}

	if c.EventsBackend == "kafka" {
		if len(c.KafkaBrokers) == 0 {
			errors = append(errors, "at least one Kafka broker is required when using kafka events backend")
		}
		if c.KafkaTopic == "" {
			errors = append(errors, "Kafka topic cannot be empty when using kafka events backend")
		}
	}

	if c.GoogleServiceAccountFile != "" {
		if _, err := os.Stat(c.GoogleServiceAccountFile); os.IsNotExist(err) {
			errors = append(errors, fmt.Sprintf("Google service account file does not exist: %s", c.GoogleServiceAccountFile))
		}
	}

	if len(errors) > 0 {
		return fmt.Errorf("configuration validation failed:\n- %s", strings.Join(errors, "\n- "))
	}

	return nil
}

// SheetsConfigured reports whether a spreadsheet export can be attempted.
func (c *Config) SheetsConfigured() bool {
	return c.GoogleSpreadsheetID != "" &&
		(c.GoogleServiceAccountFile != "" || c.GoogleServiceAccountJSON != "")
}

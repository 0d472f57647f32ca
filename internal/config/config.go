package config

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"frontdesk-backend/internal/domain"
	"frontdesk-backend/internal/utils"
)

// Config represents the application configuration
type Config struct {
	Server    ServerConfig    `yaml:"server"`
	Store     StoreConfig     `yaml:"store"`
	Database  DatabaseConfig  `yaml:"database"`
	JWT       JWTConfig       `yaml:"jwt"`
	SendGrid  SendGridConfig  `yaml:"sendgrid"`
	Log       LogConfig       `yaml:"log"`
	Billing   BillingConfig   `yaml:"billing"`
	Checkout  CheckoutConfig  `yaml:"checkout"`
	Scheduler SchedulerConfig `yaml:"scheduler"`
}

// ServerConfig contains HTTP API and gRPC health settings
type ServerConfig struct {
	Host       string `yaml:"host"`
	Port       int    `yaml:"port"`
	HealthPort int    `yaml:"health_port"`
}

// StoreConfig selects the persistence backend
type StoreConfig struct {
	Type string `yaml:"type"` // "memory" or "postgres"
}

// DatabaseConfig contains PostgreSQL connection settings
type DatabaseConfig struct {
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	User     string `yaml:"user"`
	Password string `yaml:"password"`
	Database string `yaml:"database"`
	SSLMode  string `yaml:"ssl_mode"`
}

// JWTConfig contains operator token settings
type JWTConfig struct {
	Secret            string `yaml:"secret"`
	AccessTokenExpiry int    `yaml:"access_token_expiry_minutes"`
}

// SendGridConfig contains receipt e-mail settings. An empty API key disables delivery.
type SendGridConfig struct {
	APIKey    string `yaml:"api_key"`
	FromEmail string `yaml:"from_email"`
	FromName  string `yaml:"from_name"`
}

// LogConfig contains logging settings
type LogConfig struct {
	Level  string `yaml:"level"`  // "debug", "info", "warn", "error"
	Format string `yaml:"format"` // "json" or "text"
}

// ServiceRateConfig is one ancillary service in major currency units
type ServiceRateConfig struct {
	Name      string `yaml:"name"`
	UnitPrice string `yaml:"unit_price"`
	Cadence   string `yaml:"cadence"`
}

// BillingConfig holds the rate table in major currency units
type BillingConfig struct {
	NightlyRate string              `yaml:"nightly_rate"`
	TaxRate     float64             `yaml:"tax_rate"`
	Currency    string              `yaml:"currency"`
	Services    []ServiceRateConfig `yaml:"services"`
}

// CheckoutConfig contains coordinator settings
type CheckoutConfig struct {
	CommitTimeoutSeconds int `yaml:"commit_timeout_seconds"`
}

// SchedulerConfig contains cron schedule settings
type SchedulerConfig struct {
	NightAudit  string `yaml:"night_audit"`
	DailyReport string `yaml:"daily_report"`
}

// Load reads configuration from a YAML file
func Load(configPath string) (*Config, error) {
	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}
	return Parse(data)
}

// Parse builds a configuration from raw YAML, applying environment overrides and defaults
func Parse(data []byte) (*Config, error) {
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	cfg.overrideWithEnv()
	cfg.applyDefaults()

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &cfg, nil
}

// overrideWithEnv overrides config values with environment variables
func (c *Config) overrideWithEnv() {
	// Database
	if val := os.Getenv("DB_HOST"); val != "" {
		c.Database.Host = val
	}
	if val := os.Getenv("DB_PORT"); val != "" {
		fmt.Sscanf(val, "%d", &c.Database.Port)
	}
	if val := os.Getenv("DB_USER"); val != "" {
		c.Database.User = val
	}
	if val := os.Getenv("DB_PASSWORD"); val != "" {
		c.Database.Password = val
	}
	if val := os.Getenv("DB_NAME"); val != "" {
		c.Database.Database = val
	}
	if val := os.Getenv("DB_SSL_MODE"); val != "" {
		c.Database.SSLMode = val
	}

	// Store
	if val := os.Getenv("STORE_TYPE"); val != "" {
		c.Store.Type = val
	}

	// JWT
	if val := os.Getenv("JWT_SECRET"); val != "" {
		c.JWT.Secret = val
	}

	// SendGrid
	if val := os.Getenv("SENDGRID_API_KEY"); val != "" {
		c.SendGrid.APIKey = val
	}

	// Server
	if val := os.Getenv("SERVER_HOST"); val != "" {
		c.Server.Host = val
	}
	if val := os.Getenv("SERVER_PORT"); val != "" {
		fmt.Sscanf(val, "%d", &c.Server.Port)
	}

	// Log
	if val := os.Getenv("LOG_LEVEL"); val != "" {
		c.Log.Level = val
	}
	if val := os.Getenv("LOG_FORMAT"); val != "" {
		c.Log.Format = val
	}

	// Checkout
	if val := os.Getenv("CHECKOUT_COMMIT_TIMEOUT_SECONDS"); val != "" {
		fmt.Sscanf(val, "%d", &c.Checkout.CommitTimeoutSeconds)
	}
}

func (c *Config) applyDefaults() {
	if c.Log.Level == "" {
		c.Log.Level = "info"
	}
	if c.Log.Format == "" {
		c.Log.Format = "text"
	}
	if c.Store.Type == "" {
		c.Store.Type = "memory"
	}
	if c.Server.HealthPort == 0 && c.Server.Port > 0 {
		c.Server.HealthPort = c.Server.Port + 1
	}
	if c.JWT.AccessTokenExpiry == 0 {
		c.JWT.AccessTokenExpiry = 12 * 60 // one front-desk shift
	}
	if c.Checkout.CommitTimeoutSeconds == 0 {
		c.Checkout.CommitTimeoutSeconds = 10
	}
	if c.SendGrid.FromName == "" {
		c.SendGrid.FromName = "Recepción"
	}

	// Rate table defaults mirror the property's published tariff
	if c.Billing.NightlyRate == "" {
		c.Billing.NightlyRate = "85.00"
	}
	if c.Billing.TaxRate == 0 {
		c.Billing.TaxRate = 0.10
	}
	if c.Billing.Currency == "" {
		c.Billing.Currency = "EUR"
	}
	if c.Billing.Services == nil {
		c.Billing.Services = []ServiceRateConfig{
			{Name: "Desayuno", UnitPrice: "12.50", Cadence: string(domain.CadencePerNight)},
			{Name: "Parking", UnitPrice: "8.00", Cadence: string(domain.CadencePerNight)},
			{Name: "WiFi Premium", UnitPrice: "5.00", Cadence: string(domain.CadencePerNight)},
		}
	}
	for i := range c.Billing.Services {
		if c.Billing.Services[i].Cadence == "" {
			c.Billing.Services[i].Cadence = string(domain.CadencePerNight)
		}
	}

	if c.Scheduler.NightAudit == "" {
		c.Scheduler.NightAudit = "0 0 3 * * *" // 3 AM
	}
	if c.Scheduler.DailyReport == "" {
		c.Scheduler.DailyReport = "0 0 23 * * *" // 11 PM
	}
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	// Server validation
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("invalid server port: %d", c.Server.Port)
	}
	if c.Server.HealthPort <= 0 || c.Server.HealthPort > 65535 {
		return fmt.Errorf("invalid health port: %d", c.Server.HealthPort)
	}

	// Store validation
	switch c.Store.Type {
	case "memory":
	case "postgres":
		if c.Database.Host == "" {
			return fmt.Errorf("database host is required")
		}
		if c.Database.User == "" {
			return fmt.Errorf("database user is required")
		}
		if c.Database.Database == "" {
			return fmt.Errorf("database name is required")
		}
	default:
		return fmt.Errorf("unsupported store type: %s", c.Store.Type)
	}

	// JWT validation
	if c.JWT.Secret == "" {
		return fmt.Errorf("JWT secret is required")
	}
	if len(c.JWT.Secret) < 32 {
		return fmt.Errorf("JWT secret must be at least 32 characters")
	}

	// SendGrid validation
	if c.SendGrid.APIKey != "" && c.SendGrid.FromEmail == "" {
		return fmt.Errorf("sendgrid from_email is required when an API key is set")
	}

	// Billing validation
	if c.Billing.TaxRate < 0 || c.Billing.TaxRate >= 1 {
		return fmt.Errorf("tax rate must be a fraction in [0, 1): %v", c.Billing.TaxRate)
	}
	if _, err := c.Billing.RateTable(); err != nil {
		return err
	}

	if c.Checkout.CommitTimeoutSeconds < 0 {
		return fmt.Errorf("invalid commit timeout: %d", c.Checkout.CommitTimeoutSeconds)
	}

	return nil
}

// RateTable converts the configured tariff into cents
func (b BillingConfig) RateTable() (domain.RateTable, error) {
	nightly, err := utils.ParseAmount(b.NightlyRate)
	if err != nil {
		return domain.RateTable{}, fmt.Errorf("invalid nightly rate: %w", err)
	}
	if nightly <= 0 {
		return domain.RateTable{}, fmt.Errorf("nightly rate must be positive")
	}

	services := make([]domain.ServiceRate, 0, len(b.Services))
	seen := make(map[string]bool, len(b.Services))
	for _, s := range b.Services {
		name := strings.TrimSpace(s.Name)
		if name == "" {
			return domain.RateTable{}, fmt.Errorf("service name is required")
		}
		if seen[name] {
			return domain.RateTable{}, fmt.Errorf("duplicate service %q", name)
		}
		seen[name] = true

		price, err := utils.ParseAmount(s.UnitPrice)
		if err != nil {
			return domain.RateTable{}, fmt.Errorf("invalid price for service %q: %w", name, err)
		}
		if price < 0 {
			return domain.RateTable{}, fmt.Errorf("price for service %q must not be negative", name)
		}

		cadence := domain.BillingCadence(s.Cadence)
		if cadence != domain.CadencePerNight && cadence != domain.CadencePerStay {
			return domain.RateTable{}, fmt.Errorf("invalid cadence %q for service %q", s.Cadence, name)
		}

		services = append(services, domain.ServiceRate{Name: name, UnitPriceCents: price, Cadence: cadence})
	}

	return domain.RateTable{
		NightlyRateCents: nightly,
		Services:         services,
		TaxRate:          b.TaxRate,
		Currency:         b.Currency,
	}, nil
}

// GetDatabaseConnectionString returns a PostgreSQL connection string
func (c *Config) GetDatabaseConnectionString() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%d/%s?sslmode=%s",
		c.Database.User,
		c.Database.Password,
		c.Database.Host,
		c.Database.Port,
		c.Database.Database,
		c.Database.SSLMode,
	)
}

// GetServerAddress returns the HTTP API address
func (c *Config) GetServerAddress() string {
	return fmt.Sprintf("%s:%d", c.Server.Host, c.Server.Port)
}

// GetHealthAddress returns the gRPC health service address
func (c *Config) GetHealthAddress() string {
	return fmt.Sprintf("%s:%d", c.Server.Host, c.Server.HealthPort)
}

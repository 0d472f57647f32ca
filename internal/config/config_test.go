package config

import (
	"os"
	"path/filepath"
	"testing"

	"frontdesk-backend/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const validSecret = "0123456789abcdef0123456789abcdef"

func TestParse_Defaults(t *testing.T) {
	cfg, err := Parse([]byte(`
server:
  host: 127.0.0.1
  port: 8080
jwt:
  secret: ` + validSecret + `
`))
	require.NoError(t, err)

	assert.Equal(t, "memory", cfg.Store.Type)
	assert.Equal(t, 8081, cfg.Server.HealthPort)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, "text", cfg.Log.Format)
	assert.Equal(t, 10, cfg.Checkout.CommitTimeoutSeconds)
	assert.Equal(t, "127.0.0.1:8080", cfg.GetServerAddress())
	assert.Equal(t, "127.0.0.1:8081", cfg.GetHealthAddress())

	rates, err := cfg.Billing.RateTable()
	require.NoError(t, err)
	assert.Equal(t, int64(8500), rates.NightlyRateCents)
	assert.Equal(t, 0.10, rates.TaxRate)
	assert.Equal(t, "EUR", rates.Currency)
	require.Len(t, rates.Services, 3)
	assert.Equal(t, domain.ServiceRate{Name: "Desayuno", UnitPriceCents: 1250, Cadence: domain.CadencePerNight}, rates.Services[0])
	assert.Equal(t, int64(800), rates.Services[1].UnitPriceCents)
	assert.Equal(t, int64(500), rates.Services[2].UnitPriceCents)
}

func TestParse_CustomRateTable(t *testing.T) {
	cfg, err := Parse([]byte(`
server:
  port: 9000
jwt:
  secret: ` + validSecret + `
billing:
  nightly_rate: "110.00"
  tax_rate: 0.21
  currency: USD
  services:
    - name: Spa
      unit_price: "30"
      cadence: per_stay
    - name: Breakfast
      unit_price: "9.5"
`))
	require.NoError(t, err)

	rates, err := cfg.Billing.RateTable()
	require.NoError(t, err)
	assert.Equal(t, int64(11000), rates.NightlyRateCents)
	assert.Equal(t, "USD", rates.Currency)
	assert.Equal(t, domain.CadencePerStay, rates.Services[0].Cadence)
	assert.Equal(t, int64(3000), rates.Services[0].UnitPriceCents)
	assert.Equal(t, domain.CadencePerNight, rates.Services[1].Cadence)
	assert.Equal(t, int64(950), rates.Services[1].UnitPriceCents)
}

func TestParse_Invalid(t *testing.T) {
	tests := []struct {
		name string
		yaml string
		msg  string
	}{
		{"missing port", "jwt:\n  secret: " + validSecret, "invalid server port"},
		{"short secret", "server:\n  port: 8080\njwt:\n  secret: short", "at least 32 characters"},
		{"unknown store", "server:\n  port: 8080\nstore:\n  type: redis\njwt:\n  secret: " + validSecret, "unsupported store type"},
		{"postgres without host", "server:\n  port: 8080\nstore:\n  type: postgres\njwt:\n  secret: " + validSecret, "database host is required"},
		{"bad tax", "server:\n  port: 8080\nbilling:\n  tax_rate: 1.5\njwt:\n  secret: " + validSecret, "tax rate"},
		{"bad cadence", "server:\n  port: 8080\nbilling:\n  services:\n    - name: X\n      unit_price: \"1\"\n      cadence: hourly\njwt:\n  secret: " + validSecret, "invalid cadence"},
		{"duplicate service", "server:\n  port: 8080\nbilling:\n  services:\n    - name: X\n      unit_price: \"1\"\n    - name: X\n      unit_price: \"2\"\njwt:\n  secret: " + validSecret, "duplicate service"},
		{"sendgrid without sender", "server:\n  port: 8080\nsendgrid:\n  api_key: SG.x\njwt:\n  secret: " + validSecret, "from_email"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.yaml))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.msg)
		})
	}
}

func TestLoad_EnvOverrides(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("server:\n  port: 8080\njwt:\n  secret: "+validSecret+"\n"), 0o600))

	t.Setenv("SERVER_PORT", "9090")
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("CHECKOUT_COMMIT_TIMEOUT_SECONDS", "3")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 9090, cfg.Server.Port)
	assert.Equal(t, 9091, cfg.Server.HealthPort)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, 3, cfg.Checkout.CommitTimeoutSeconds)
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to read config file")
}

func TestGetSecurityLevel(t *testing.T) {
	assert.Equal(t, SecurityPublic, GetSecurityLevel("/healthz"))
	assert.Equal(t, SecurityPublic, GetSecurityLevel("/metrics"))
	assert.Equal(t, SecurityAccess, GetSecurityLevel("/api/checkout"))
	assert.Equal(t, SecurityAccess, GetSecurityLevel("/unknown"))
}

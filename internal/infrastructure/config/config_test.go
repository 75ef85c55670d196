package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// isolate blanks the variables a test depends on; viper treats empty
// variables as unset
func isolate(t *testing.T, keys ...string) {
	t.Helper()
	for _, k := range keys {
		t.Setenv(k, "")
	}
}

func setenv(t *testing.T, vars map[string]string) {
	t.Helper()
	for k, v := range vars {
		t.Setenv(k, v)
	}
}

var databaseKeys = []string{
	"ERP_APP_NAME", "ERP_APP_ENV", "ERP_APP_PORT",
	"ERP_DATABASE_HOST", "ERP_DATABASE_PORT", "ERP_DATABASE_USER", "ERP_DATABASE_PASSWORD",
	"ERP_DATABASE_DBNAME", "ERP_DATABASE_SSLMODE", "ERP_DATABASE_MAX_OPEN_CONNS", "ERP_DATABASE_MAX_IDLE_CONNS",
	"ERP_JWT_SECRET", "ERP_AUTH_ENABLED",
}

func TestLoad_Defaults(t *testing.T) {
	isolate(t, databaseKeys...)

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "b3-erp", cfg.App.Name)
	assert.Equal(t, "development", cfg.App.Env)
	assert.Equal(t, "8080", cfg.App.Port)
	assert.Equal(t, "postgres://postgres:@localhost:5432/b3erp?sslmode=disable", cfg.Database.DSN())
	assert.Equal(t, 25, cfg.Database.MaxOpenConns)
	assert.Equal(t, 5, cfg.Database.MaxIdleConns)

	assert.Equal(t, "memory", cfg.Storage.Driver)
	assert.Equal(t, "b3erp.domain-events", cfg.Kafka.Topic)
	assert.False(t, cfg.Kafka.Enabled)
	assert.True(t, cfg.Seed.DefectCodes)
	assert.True(t, cfg.Seed.NumberSeries)
	assert.True(t, cfg.Scheduler.Enabled)
	assert.Equal(t, 12.0, cfg.Payroll.ProvidentFundRate)
	assert.Equal(t, 21000.0, cfg.Payroll.ESIWageCeiling)
	assert.Equal(t, "admin", cfg.Auth.AdminUsername)
	assert.Equal(t, "localhost:6379", cfg.Redis.Addr())

	assert.False(t, cfg.Telemetry.Enabled)
	assert.True(t, cfg.Telemetry.DBTraceEnabled)
	assert.Equal(t, 1.0, cfg.Telemetry.SamplingRatio)
	assert.Equal(t, cfg.App.Name, cfg.Telemetry.ServiceName)
	assert.Equal(t, "localhost:4317", cfg.Telemetry.CollectorEndpoint)

	assert.True(t, cfg.HTTP.SwaggerEnabled)
	assert.Empty(t, cfg.HTTP.SwaggerAllowedIPs)
	assert.True(t, cfg.Printing.Enabled)
	assert.False(t, cfg.Printing.PDFEnabled)
	assert.Equal(t, "A4", cfg.Printing.PaperSize)
	assert.Equal(t, 30*time.Second, cfg.Printing.Timeout)
}

func TestLoad_EnvironmentOverrides(t *testing.T) {
	setenv(t, map[string]string{
		"ERP_APP_NAME":                "b3-plant-2",
		"ERP_APP_ENV":                 "staging",
		"ERP_APP_PORT":                "9000",
		"ERP_DATABASE_HOST":           "pg.plant2.internal",
		"ERP_DATABASE_PORT":           "5433",
		"ERP_DATABASE_USER":           "erp",
		"ERP_DATABASE_PASSWORD":       "s3cret",
		"ERP_DATABASE_DBNAME":         "erp_plant2",
		"ERP_DATABASE_SSLMODE":        "require",
		"ERP_DATABASE_MAX_OPEN_CONNS": "50",
		"ERP_DATABASE_MAX_IDLE_CONNS": "10",
		"ERP_PRINTING_PAPER_SIZE":     "letter",
		"ERP_PRINTING_COMPANY_NAME":   "B3 Plant 2",
	})

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "b3-plant-2", cfg.App.Name)
	assert.Equal(t, "staging", cfg.App.Env)
	assert.Equal(t, "9000", cfg.App.Port)
	assert.Equal(t, "pg.plant2.internal", cfg.Database.Host)
	assert.Equal(t, 5433, cfg.Database.Port)
	assert.Equal(t, "erp_plant2", cfg.Database.DBName)
	assert.Equal(t, 50, cfg.Database.MaxOpenConns)
	assert.Equal(t, 10, cfg.Database.MaxIdleConns)
	assert.Equal(t, "letter", cfg.Printing.PaperSize)
	assert.Equal(t, "B3 Plant 2", cfg.Printing.CompanyName)
	assert.Equal(t, "b3-plant-2", cfg.Telemetry.ServiceName)
}

func TestLoad_ZeroMaxOpenConnsUsesDefault(t *testing.T) {
	isolate(t, databaseKeys...)
	t.Setenv("ERP_DATABASE_MAX_OPEN_CONNS", "0")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, 25, cfg.Database.MaxOpenConns)
}

func TestLoad_Invalid(t *testing.T) {
	tests := []struct {
		name string
		env  map[string]string
		want string
	}{
		{"idle above open", map[string]string{"ERP_DATABASE_MAX_OPEN_CONNS": "10", "ERP_DATABASE_MAX_IDLE_CONNS": "20"}, "cannot exceed"},
		{"negative idle", map[string]string{"ERP_DATABASE_MAX_IDLE_CONNS": "-1"}, "max_idle_conns cannot be negative"},
		{"storage driver", map[string]string{"ERP_STORAGE_DRIVER": "ftp"}, "storage.driver"},
		{"sampling ratio", map[string]string{"ERP_TELEMETRY_SAMPLING_RATIO": "1.5"}, "telemetry.sampling_ratio"},
		{"paper size", map[string]string{"ERP_PRINTING_PAPER_SIZE": "B5"}, "printing.paper_size"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			isolate(t, databaseKeys...)
			setenv(t, tt.env)

			_, err := Load()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestLoad_ProductionValidation(t *testing.T) {
	production := func(t *testing.T, overrides map[string]string) {
		t.Helper()
		isolate(t, "ERP_HTTP_CORS_ALLOW_ORIGINS", "ERP_TELEMETRY_DB_LOG_FULL_SQL")
		setenv(t, map[string]string{
			"ERP_APP_ENV":           "production",
			"ERP_JWT_SECRET":        "this-is-a-very-secure-jwt-secret-key-32chars",
			"ERP_DATABASE_PASSWORD": "secure-password",
			"ERP_DATABASE_SSLMODE":  "require",
			"ERP_AUTH_ENABLED":      "true",
		})
		setenv(t, overrides)
	}

	tests := []struct {
		name      string
		overrides map[string]string
		want      string
	}{
		{"jwt secret required", map[string]string{"ERP_JWT_SECRET": ""}, "jwt.secret is required when auth is enabled"},
		{"short jwt secret", map[string]string{"ERP_JWT_SECRET": "short-secret"}, "jwt.secret must be at least 32 characters"},
		{"database password", map[string]string{"ERP_DATABASE_PASSWORD": ""}, "database.password is required in production"},
		{"ssl disabled", map[string]string{"ERP_DATABASE_SSLMODE": "disable"}, "database.sslmode cannot be 'disable' in production"},
		{"auth disabled", map[string]string{"ERP_AUTH_ENABLED": "false"}, "auth.enabled must be true in production"},
		{"full sql in spans", map[string]string{"ERP_TELEMETRY_DB_LOG_FULL_SQL": "true"}, "telemetry.db_log_full_sql"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			production(t, tt.overrides)
			_, err := Load()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}

	t.Run("valid", func(t *testing.T) {
		production(t, nil)
		cfg, err := Load()
		require.NoError(t, err)
		assert.Equal(t, "production", cfg.App.Env)
		assert.True(t, cfg.Auth.Enabled)
	})
}

func TestDatabaseConfig_DSN(t *testing.T) {
	cfg := DatabaseConfig{Host: "db", Port: 5432, User: "erp", Password: "pass@word#123", DBName: "b3erp", SSLMode: "verify-full"}
	assert.Equal(t, "postgres://erp:pass%40word%23123@db:5432/b3erp?sslmode=verify-full", cfg.DSN())
}

func TestLoad_DotEnv(t *testing.T) {
	isolate(t, databaseKeys...)
	path := filepath.Join(t.TempDir(), "b3.env")
	require.NoError(t, os.WriteFile(path, []byte("ERP_APP_PHONE_REGION=gb\n"), 0o600))
	t.Setenv(EnvFileVar, path)
	t.Cleanup(func() { _ = os.Unsetenv("ERP_APP_PHONE_REGION") })

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "GB", cfg.App.PhoneRegion)
}

func TestLoad_MissingExplicitDotEnv(t *testing.T) {
	isolate(t, databaseKeys...)
	t.Setenv(EnvFileVar, filepath.Join(t.TempDir(), "absent.env"))

	_, err := Load()
	assert.Error(t, err)
}

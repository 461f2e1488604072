package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validConfig() *Config {
	return &Config{
		Server:  ServerConfig{Port: 8080, ShutdownTimeout: time.Second},
		Upload:  UploadConfig{MaxFileSize: 1, MaxConcurrent: 1, MaxWaitTime: time.Second},
		Report:  ReportConfig{TTL: time.Minute, CleanupInterval: time.Second},
		Rate:    RateLimitConfig{Enabled: true, RequestsPerMinute: 100, UploadLimit: 10},
		Logging: LoggingConfig{Level: "info", Format: "text"},
	}
}

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "0.0.0.0", cfg.Server.Host)
	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, 5, cfg.Upload.MaxConcurrent)
	assert.Equal(t, int64(20971520), cfg.Upload.MaxFileSize)
	assert.Equal(t, 0, cfg.Report.DefaultThreshold)
	assert.Equal(t, 15*time.Minute, cfg.Report.TTL)
	assert.Equal(t, 100, cfg.Rate.RequestsPerMinute)
	assert.True(t, cfg.Security.EnableCSP)
}

func TestLoad_OverrideDefaults(t *testing.T) {
	t.Setenv("SERVER_PORT", "9090")
	t.Setenv("UPLOAD_MAX_CONCURRENT", "10")
	t.Setenv("REPORT_DEFAULT_THRESHOLD", "600")
	t.Setenv("LOG_LEVEL", "debug")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 9090, cfg.Server.Port)
	assert.Equal(t, 10, cfg.Upload.MaxConcurrent)
	assert.Equal(t, 600, cfg.Report.DefaultThreshold)
	assert.Equal(t, "debug", cfg.Logging.Level)
}

func TestLoad_AltEnvVar(t *testing.T) {
	t.Setenv("SERVER_PORT", "")
	t.Setenv("PORT", "5000")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, 5000, cfg.Server.Port)
}

func TestLoad_Duration(t *testing.T) {
	t.Setenv("SERVER_READ_TIMEOUT", "45s")
	t.Setenv("UPLOAD_MAX_WAIT_TIME", "1m30s")
	t.Setenv("REPORT_TTL", "1h")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 45*time.Second, cfg.Server.ReadTimeout)
	assert.Equal(t, 90*time.Second, cfg.Upload.MaxWaitTime)
	assert.Equal(t, time.Hour, cfg.Report.TTL)
}

func TestLoad_InvalidValue(t *testing.T) {
	t.Setenv("UPLOAD_MAX_CONCURRENT", "many")

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "UPLOAD_MAX_CONCURRENT")
}

func TestLoad_ReportsEveryInvalidValue(t *testing.T) {
	env := map[string]string{
		"SERVER_PORT":          "eighty",
		"UPLOAD_MAX_WAIT_TIME": "soon",
		"RATE_LIMIT_ENABLED":   "maybe",
	}

	_, err := load(func(key string) string { return env[key] })
	require.Error(t, err)

	for key := range env {
		assert.Contains(t, err.Error(), key)
	}
}

func TestLoad_EmptyEnvironmentUsesDefaults(t *testing.T) {
	cfg, err := load(func(string) string { return "" })
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, 30*time.Second, cfg.Upload.MaxWaitTime)
	assert.Empty(t, cfg.Security.TrustedProxies)
	assert.Equal(t, "text", cfg.Logging.Format)
}

func TestLoad_CommaSeparatedSlice(t *testing.T) {
	t.Setenv("TRUSTED_PROXIES", "10.0.0.0/8, 172.16.0.0/12 , 192.168.0.0/16")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, []string{"10.0.0.0/8", "172.16.0.0/12", "192.168.0.0/16"}, cfg.Security.TrustedProxies)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{"valid", func(*Config) {}, ""},
		{"invalid port", func(c *Config) { c.Server.Port = 99999 }, "SERVER_PORT"},
		{"negative threshold", func(c *Config) { c.Report.DefaultThreshold = -1 }, "REPORT_DEFAULT_THRESHOLD"},
		{"zero ttl", func(c *Config) { c.Report.TTL = 0 }, "REPORT_TTL"},
		{"zero concurrency", func(c *Config) { c.Upload.MaxConcurrent = 0 }, "UPLOAD_MAX_CONCURRENT"},
		{"invalid log level", func(c *Config) { c.Logging.Level = "verbose" }, "LOG_LEVEL"},
		{"invalid log format", func(c *Config) { c.Logging.Format = "xml" }, "LOG_FORMAT"},
		{"rate limit without budget", func(c *Config) { c.Rate.RequestsPerMinute = 0 }, "RATE_LIMIT_REQUESTS_PER_MINUTE"},
		{"rate limit disabled", func(c *Config) {
			c.Rate.Enabled = false
			c.Rate.RequestsPerMinute = 0
			c.Rate.UploadLimit = 0
		}, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			tt.mutate(cfg)

			err := cfg.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestServerAddr(t *testing.T) {
	tests := []struct {
		host string
		port int
		want string
	}{
		{"", 8080, ":8080"},
		{"0.0.0.0", 8080, "0.0.0.0:8080"},
		{"127.0.0.1", 3000, "127.0.0.1:3000"},
		{"localhost", 443, "localhost:443"},
	}

	for _, tt := range tests {
		cfg := &ServerConfig{Host: tt.host, Port: tt.port}
		assert.Equal(t, tt.want, cfg.Addr())
	}
}

func TestConfigString(t *testing.T) {
	str := validConfig().String()
	assert.Contains(t, str, "Port: 8080")
	assert.Contains(t, str, "Report: {DefaultThreshold: 0")
}

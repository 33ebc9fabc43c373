package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

const testSecret = "0123456789abcdef0123456789abcdef"

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func TestLoadFileAndEnvOverrides(t *testing.T) {
	path := writeConfig(t, `
port: "9090"
logLevel: "debug"
redisAddr: "localhost:6379"
sessionSecret: "`+testSecret+`"
sessionBackend: "memory"
corsAllowedOrigins: ["http://localhost:5173"]
loginRateLimitPerMinute: 3
`)
	t.Setenv("PORT", "8181")
	t.Setenv("SESSION_COOKIE_SECURE", "true")
	t.Setenv("TRUSTED_PROXY_CIDRS", "10.0.0.0/8, 192.168.0.1")
	t.Setenv("MAX_UPLOAD_BYTES", "1024")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if cfg.Port != "8181" {
		t.Fatalf("port = %q, want env override", cfg.Port)
	}
	if cfg.LogLevel != "debug" || cfg.SessionBackend != "memory" || cfg.LoginRateLimitPerMinute != 3 {
		t.Fatalf("file values not applied: %+v", cfg)
	}
	if !cfg.SessionCookieSecure {
		t.Fatalf("expected secure cookie from env")
	}
	if len(cfg.TrustedProxyCIDRs) != 2 || cfg.TrustedProxyCIDRs[1] != "192.168.0.1" {
		t.Fatalf("trusted proxies = %v", cfg.TrustedProxyCIDRs)
	}
	if cfg.MaxUploadBytes != 1024 {
		t.Fatalf("maxUploadBytes = %d", cfg.MaxUploadBytes)
	}
	if cfg.RegisterRateLimitPerMinute != 5 || cfg.SessionCookieName != "jobconnect_session" || cfg.ObjectStore != "file" {
		t.Fatalf("defaults not applied: %+v", cfg)
	}
}

func TestLoadWithoutFileUsesEnv(t *testing.T) {
	t.Setenv("JOBCONNECT_CONFIG", filepath.Join(t.TempDir(), "missing.yaml"))
	t.Setenv("REDIS_ADDR", "redis:6379")
	t.Setenv("SESSION_SECRET", testSecret)

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if cfg.Port != "8080" || cfg.SessionBackend != "redis" {
		t.Fatalf("unexpected defaults: %+v", cfg)
	}
}

func TestAppEnvControlsSecureCookie(t *testing.T) {
	tests := []struct {
		name       string
		env        map[string]string
		wantEnv    string
		wantSecure bool
	}{
		{name: "development by default", wantEnv: "development"},
		{name: "node env production", env: map[string]string{"NODE_ENV": "production"}, wantEnv: "production", wantSecure: true},
		{name: "app env wins", env: map[string]string{"NODE_ENV": "production", "APP_ENV": "staging"}, wantEnv: "staging"},
		{name: "production ignores insecure flag", env: map[string]string{"APP_ENV": "Production", "SESSION_COOKIE_SECURE": "false"}, wantEnv: "production", wantSecure: true},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Setenv("JOBCONNECT_CONFIG", filepath.Join(t.TempDir(), "missing.yaml"))
			t.Setenv("REDIS_ADDR", "redis:6379")
			t.Setenv("SESSION_SECRET", testSecret)
			t.Setenv("NODE_ENV", "")
			t.Setenv("APP_ENV", "")
			for k, v := range tc.env {
				t.Setenv(k, v)
			}
			cfg, err := Load("")
			if err != nil {
				t.Fatalf("load config: %v", err)
			}
			if cfg.AppEnv != tc.wantEnv || cfg.SessionCookieSecure != tc.wantSecure {
				t.Fatalf("appEnv=%q secure=%v, want %q %v", cfg.AppEnv, cfg.SessionCookieSecure, tc.wantEnv, tc.wantSecure)
			}
		})
	}
}

func TestValidateConfig(t *testing.T) {
	valid := FileConfig{
		Port:           "8080",
		RedisAddr:      "localhost:6379",
		SessionSecret:  testSecret,
		SessionBackend: "redis",
		ObjectStore:    "file",
	}
	if err := validateConfig(valid); err != nil {
		t.Fatalf("expected valid config, got %v", err)
	}

	tests := []struct {
		name string
		edit func(*FileConfig)
		want string
	}{
		{"missing redis", func(c *FileConfig) { c.RedisAddr = "" }, "redisAddr"},
		{"short secret", func(c *FileConfig) { c.SessionSecret = "short" }, "sessionSecret"},
		{"jwt without secret", func(c *FileConfig) { c.SessionBackend = "jwt" }, "jwtSecret"},
		{"unknown backend", func(c *FileConfig) { c.SessionBackend = "cookie" }, "sessionBackend"},
		{"minio without creds", func(c *FileConfig) { c.ObjectStore = "minio" }, "minio"},
		{"negative limit", func(c *FileConfig) { c.LoginRateLimitPerMinute = -1 }, "rate limits"},
		{"bad ttl", func(c *FileConfig) { c.SessionTTL = "forever" }, "sessionTTL"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			cfg := valid
			tc.edit(&cfg)
			err := validateConfig(cfg)
			if err == nil || !strings.Contains(err.Error(), tc.want) {
				t.Fatalf("expected error mentioning %q, got %v", tc.want, err)
			}
		})
	}
}

func TestParseSessionTTL(t *testing.T) {
	got, err := ParseSessionTTL("")
	if err != nil || got != 168*time.Hour {
		t.Fatalf("default ttl = %v err=%v", got, err)
	}
	got, err = ParseSessionTTL("2h")
	if err != nil || got != 2*time.Hour {
		t.Fatalf("ttl = %v err=%v", got, err)
	}
	if _, err := ParseSessionTTL("-1h"); err == nil {
		t.Fatalf("expected negative ttl to fail")
	}
}

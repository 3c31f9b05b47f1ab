// cliparse/cliparse_test.go
package cliparse

import (
	"os"
	"path/filepath"
	"testing"
)

func TestParseFlags_Defaults(t *testing.T) {
	os.Clearenv()

	cfg, err := ParseFlags([]string{})
	if err != nil {
		t.Fatal(err)
	}

	if cfg.Port != DefaultPort {
		t.Errorf("expected port %d, got %d", DefaultPort, cfg.Port)
	}
	if cfg.DatabaseType != DatabaseSQLite {
		t.Errorf("expected sqlite, got %q", cfg.DatabaseType)
	}
	if cfg.DatabaseURL != DefaultDatabaseURL {
		t.Errorf("expected %q, got %q", DefaultDatabaseURL, cfg.DatabaseURL)
	}
	if cfg.CORSOrigin != DefaultCORSOrigin {
		t.Errorf("expected %q, got %q", DefaultCORSOrigin, cfg.CORSOrigin)
	}
	if cfg.Seed {
		t.Error("seed should default to false")
	}
	if cfg.Addr() != ":8080" {
		t.Errorf("expected addr :8080, got %q", cfg.Addr())
	}
}

func TestParseFlags_EnvVars(t *testing.T) {
	os.Setenv("PORT", "9000")
	os.Setenv("DATABASE_URL", "postgres://test")
	os.Setenv("DATABASE_TYPE", "postgres")
	os.Setenv("CORS_ORIGIN", "http://example.test")
	os.Setenv("REDACT_FIELDS", "createdBy, answer")
	os.Setenv("SEED", "true")
	defer os.Clearenv()

	cfg, err := ParseFlags([]string{})
	if err != nil {
		t.Fatal(err)
	}

	if cfg.Port != 9000 {
		t.Errorf("expected port 9000, got %d", cfg.Port)
	}
	if cfg.DatabaseType != DatabasePostgres {
		t.Errorf("expected postgres, got %q", cfg.DatabaseType)
	}
	if cfg.CORSOrigin != "http://example.test" {
		t.Errorf("unexpected origin %q", cfg.CORSOrigin)
	}
	if len(cfg.RedactFields) != 2 || cfg.RedactFields[0] != "createdBy" || cfg.RedactFields[1] != "answer" {
		t.Errorf("unexpected redact fields %v", cfg.RedactFields)
	}
	if !cfg.Seed {
		t.Error("expected seed from env")
	}
}

func TestParseFlags_CLIOverridesEnv(t *testing.T) {
	os.Setenv("PORT", "9000")
	os.Setenv("SEED", "true")
	defer os.Clearenv()

	cfg, err := ParseFlags([]string{"-p", "8081", "-d", "file.db", "-seed=false"})
	if err != nil {
		t.Fatal(err)
	}

	// CLI should override env
	if cfg.Port != 8081 {
		t.Errorf("CLI should override env: expected 8081, got %d", cfg.Port)
	}
	if cfg.Seed {
		t.Error("CLI -seed=false should override SEED env")
	}
	if cfg.DatabaseURL != "file.db" {
		t.Errorf("expected file.db, got %q", cfg.DatabaseURL)
	}
}

func TestParseFlags_Invalid(t *testing.T) {
	tests := []struct {
		name string
		env  map[string]string
		args []string
	}{
		{"bad port env", map[string]string{"PORT": "abc"}, nil},
		{"port out of range", nil, []string{"-p", "70000"}},
		{"unknown database type", nil, []string{"-t", "mysql"}},
		{"postgres without url", map[string]string{"DATABASE_TYPE": "postgres"}, nil},
		{"bad seed env", map[string]string{"SEED": "maybe"}, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			os.Clearenv()
			defer os.Clearenv()
			for k, v := range tt.env {
				os.Setenv(k, v)
			}

			if _, err := ParseFlags(tt.args); err == nil {
				t.Error("expected an error")
			}
		})
	}
}

func TestLoadEnvFiles(t *testing.T) {
	os.Clearenv()
	defer os.Clearenv()

	path := filepath.Join(t.TempDir(), ".env")
	if err := os.WriteFile(path, []byte("PORT=9100\nLOG_LEVEL=debug\n"), 0o600); err != nil {
		t.Fatal(err)
	}
	os.Setenv("LOG_LEVEL", "warn")

	if err := LoadEnvFiles(path, filepath.Join(t.TempDir(), "missing.env")); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	cfg, err := ParseFlags(nil)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Port != 9100 {
		t.Errorf("expected port from .env, got %d", cfg.Port)
	}
	if cfg.LogLevel != "warn" {
		t.Errorf("existing env should win over .env, got %q", cfg.LogLevel)
	}
}

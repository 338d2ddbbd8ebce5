package config

import "testing"

func TestValidate_InvalidPort(t *testing.T) {
	cfg := Config{
		HTTP: HTTPConfig{Port: 0},
		Database: DatabaseConfig{
			DSN: "postgres://localhost:5432/tross",
		},
	}
	cfg.ApplyDefaults()

	err := cfg.Validate()
	if err == nil {
		t.Fatal("expected error for invalid port")
	}
}

func TestValidate_MissingDSN(t *testing.T) {
	cfg := Config{
		HTTP:     HTTPConfig{Port: 8080},
		Database: DatabaseConfig{},
	}
	cfg.ApplyDefaults()

	err := cfg.Validate()
	if err == nil {
		t.Fatal("expected error for missing database dsn")
	}
}

func TestValidate_PageSizeOrdering(t *testing.T) {
	cfg := Config{
		HTTP:     HTTPConfig{Port: 8080},
		Database: DatabaseConfig{DSN: "postgres://localhost:5432/tross"},
		Query:    QueryConfig{DefaultPageSize: 500, MaxPageSize: 100},
	}
	cfg.ApplyDefaults()

	err := cfg.Validate()
	if err == nil {
		t.Fatal("expected error for default page size above max")
	}

	expected := "query.default_page_size (500) must not exceed query.max_page_size (100)"
	if err.Error() != expected {
		t.Errorf("unexpected error message:\ngot:  %q\nwant: %q", err.Error(), expected)
	}
}

func TestApplyDefaults(t *testing.T) {
	cfg := Config{}
	cfg.ApplyDefaults()

	if cfg.HTTP.ReadTimeoutSec != 10 {
		t.Errorf("expected ReadTimeoutSec=10, got %d", cfg.HTTP.ReadTimeoutSec)
	}
	if cfg.HTTP.WriteTimeoutSec != 10 {
		t.Errorf("expected WriteTimeoutSec=10, got %d", cfg.HTTP.WriteTimeoutSec)
	}
	if cfg.HTTP.ShutdownSec != 10 {
		t.Errorf("expected ShutdownSec=10, got %d", cfg.HTTP.ShutdownSec)
	}
	if cfg.Database.ReadinessTimeout != 10 {
		t.Errorf("expected ReadinessTimeout=10, got %d", cfg.Database.ReadinessTimeout)
	}
	if cfg.Database.MaxOpenConns != 10 {
		t.Errorf("expected MaxOpenConns=10, got %d", cfg.Database.MaxOpenConns)
	}
	if cfg.Query.DefaultPageSize != 50 {
		t.Errorf("expected DefaultPageSize=50, got %d", cfg.Query.DefaultPageSize)
	}
	if cfg.Query.MaxPageSize != 200 {
		t.Errorf("expected MaxPageSize=200, got %d", cfg.Query.MaxPageSize)
	}
	if cfg.Query.MaxSearchLength != 200 {
		t.Errorf("expected MaxSearchLength=200, got %d", cfg.Query.MaxSearchLength)
	}
}

func TestApplyDefaults_NoOverride(t *testing.T) {
	cfg := Config{
		HTTP:     HTTPConfig{ReadTimeoutSec: 30, WriteTimeoutSec: 60, ShutdownSec: 5},
		Database: DatabaseConfig{ReadinessTimeout: 15, MaxOpenConns: 25},
		Query:    QueryConfig{DefaultPageSize: 20, MaxPageSize: 500, MaxSearchLength: 100},
	}
	cfg.ApplyDefaults()

	if cfg.HTTP.ReadTimeoutSec != 30 {
		t.Errorf("expected ReadTimeoutSec=30, got %d", cfg.HTTP.ReadTimeoutSec)
	}
	if cfg.HTTP.WriteTimeoutSec != 60 {
		t.Errorf("expected WriteTimeoutSec=60, got %d", cfg.HTTP.WriteTimeoutSec)
	}
	if cfg.Database.MaxOpenConns != 25 {
		t.Errorf("expected MaxOpenConns=25, got %d", cfg.Database.MaxOpenConns)
	}
	if cfg.Query.DefaultPageSize != 20 {
		t.Errorf("expected DefaultPageSize=20, got %d", cfg.Query.DefaultPageSize)
	}
	if cfg.Query.MaxSearchLength != 100 {
		t.Errorf("expected MaxSearchLength=100, got %d", cfg.Query.MaxSearchLength)
	}
}

package config

import (
	"strings"
	"testing"

	"github.com/spf13/viper"
)

func TestDefaultConfigIsValid(t *testing.T) {
	if err := DefaultConfig().Validate(); err != nil {
		t.Fatalf("default config should validate: %v", err)
	}
}

func TestValidateCollectsErrors(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Database.Driver = "oracle"
	cfg.Database.MaxOpenConns = 0
	cfg.Generate.BulkCount = -1
	cfg.Generate.MinAgeYears = 70
	cfg.Log.Format = "xml"

	err := cfg.Validate()
	if err == nil {
		t.Fatal("expected validation error")
	}

	for _, want := range []string{
		"database.driver",
		"database.max_open_conns",
		"generate.bulk_count",
		"generate.max_age_years",
		"log.format",
	} {
		if !strings.Contains(err.Error(), want) {
			t.Errorf("expected error to mention %q, got:\n%s", want, err)
		}
	}
}

func TestLoadFromViper(t *testing.T) {
	v := viper.New()
	v.Set("database.driver", "mysql")
	v.Set("database.user", "app")
	v.Set("generate.bulk_count", 500)
	v.Set("verbose", true)

	cfg, err := Load(v)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if cfg.Database.Driver != "mysql" {
		t.Errorf("Driver = %q", cfg.Database.Driver)
	}
	if cfg.Database.User != "app" {
		t.Errorf("User = %q", cfg.Database.User)
	}
	if cfg.Generate.BulkCount != 500 {
		t.Errorf("BulkCount = %d", cfg.Generate.BulkCount)
	}
	// Untouched fields keep their defaults
	if cfg.Generate.SpecialCount != SpecialCount {
		t.Errorf("SpecialCount = %d, want default", cfg.Generate.SpecialCount)
	}
	if cfg.Log.Level != "debug" {
		t.Errorf("verbose should raise log level to debug, got %q", cfg.Log.Level)
	}
}

func TestConnectionString(t *testing.T) {
	tests := []struct {
		name string
		cfg  DatabaseConfig
		want string
	}{
		{
			name: "postgres",
			cfg:  DatabaseConfig{Driver: "postgres", Name: "employees", User: "app", Password: "s3cret", Host: "db", SSLMode: "disable"},
			want: "postgres://app:s3cret@db:5432/employees?sslmode=disable",
		},
		{
			name: "postgres custom port no password",
			cfg:  DatabaseConfig{Driver: "postgres", Name: "hr", User: "app", Host: "localhost", Port: 6543},
			want: "postgres://app@localhost:6543/hr",
		},
		{
			name: "mysql",
			cfg:  DatabaseConfig{Driver: "mysql", Name: "employees", User: "root", Password: "pw", Host: "127.0.0.1"},
			want: "root:pw@tcp(127.0.0.1:3306)/employees",
		},
		{
			name: "sqlite",
			cfg:  DatabaseConfig{Driver: "sqlite", Name: "/tmp/employees.db"},
			want: "/tmp/employees.db",
		},
		{
			name: "explicit dsn wins",
			cfg:  DatabaseConfig{Driver: "postgres", DSN: "host=x dbname=y", Name: "ignored"},
			want: "host=x dbname=y",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.cfg.ConnectionString(); got != tt.want {
				t.Errorf("ConnectionString() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestMaskedConnectionString(t *testing.T) {
	pg := DatabaseConfig{Driver: "postgres", Name: "employees", User: "app", Password: "s3cret", Host: "db"}
	if got := pg.MaskedConnectionString(); strings.Contains(got, "s3cret") {
		t.Errorf("password leaked: %s", got)
	}

	dsn := DatabaseConfig{DSN: "root:hunter2@tcp(localhost:3306)/employees"}
	if got := dsn.MaskedConnectionString(); got != "root:***@tcp(localhost:3306)/employees" {
		t.Errorf("MaskedConnectionString() = %q", got)
	}

	url := DatabaseConfig{DSN: "postgres://app:hunter2@db/employees"}
	if got := url.MaskedConnectionString(); got != "postgres://app:***@db/employees" {
		t.Errorf("MaskedConnectionString() = %q", got)
	}
}

func TestAgeDays(t *testing.T) {
	g := GenerateConfig{MinAgeYears: 18, MaxAgeYears: 65}
	if g.MinAgeDays() != 6570 {
		t.Errorf("MinAgeDays() = %d", g.MinAgeDays())
	}
	if g.MaxAgeDays() != 23725 {
		t.Errorf("MaxAgeDays() = %d", g.MaxAgeDays())
	}
}

package config

import (
	"strings"
	"testing"
	"time"

	"mealbox/internal/storage"
)

func TestGetters(t *testing.T) {
	t.Setenv("MB_STRING", "value")
	t.Setenv("MB_INT", "42")
	t.Setenv("MB_BAD_INT", "forty-two")
	t.Setenv("MB_BOOL", "true")
	t.Setenv("MB_LIST", " a, ,b ,c")

	if got := GetString("MB_STRING", "x"); got != "value" {
		t.Errorf("GetString: got %q", got)
	}
	if got := GetString("MB_UNSET", "x"); got != "x" {
		t.Errorf("GetString fallback: got %q", got)
	}
	if got := GetInt("MB_INT", 0); got != 42 {
		t.Errorf("GetInt: got %d", got)
	}
	if got := GetInt("MB_BAD_INT", 7); got != 7 {
		t.Errorf("GetInt fallback: got %d", got)
	}
	if !GetBool("MB_BOOL", false) {
		t.Error("GetBool: got false")
	}
	if got := GetList("MB_LIST", nil); strings.Join(got, "|") != "a|b|c" {
		t.Errorf("GetList: got %v", got)
	}
}

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("APP_ENV", "production")
	t.Setenv("STORE_DRIVER", "memory")
	t.Setenv("JWT_SECRET", "secret")
	t.Setenv("SHUTDOWN_TIMEOUT_SECONDS", "5")

	cfg := Load()
	if cfg.Addr != ":8080" || cfg.StoreDriver != DriverMemory || !cfg.IsProduction() {
		t.Fatalf("unexpected config %+v", cfg)
	}
	if cfg.ShutdownTimeout != 5*time.Second {
		t.Fatalf("got shutdown timeout %v", cfg.ShutdownTimeout)
	}
	if err := cfg.Validate(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		cfg     Config
		wantErr string
	}{
		{"missing secret", Config{StoreDriver: DriverMemory}, "JWT_SECRET"},
		{"postgres needs dsn", Config{StoreDriver: DriverPostgres, JWTSecret: "s"}, "DATABASE_URL"},
		{"firestore needs project", Config{StoreDriver: DriverFirestore, JWTSecret: "s"}, "FIRESTORE_PROJECT_ID"},
		{"unknown driver", Config{StoreDriver: "mongo", JWTSecret: "s"}, "STORE_DRIVER"},
		{"partial archive", Config{StoreDriver: DriverMemory, JWTSecret: "s", Archive: storage.R2Config{Endpoint: "https://r2"}}, "R2_ACCESS_KEY"},
		{"ok", Config{StoreDriver: DriverPostgres, JWTSecret: "s", DatabaseURL: "postgres://x"}, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Validate()
			if tt.wantErr == "" {
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				return
			}
			if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
				t.Fatalf("expected error mentioning %s, got %v", tt.wantErr, err)
			}
		})
	}
}

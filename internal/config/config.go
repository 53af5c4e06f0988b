package config

import (
	"fmt"
	"os"
	"time"

	"mealbox/internal/storage"

	"github.com/joho/godotenv"
)

const (
	DriverPostgres  = "postgres"
	DriverFirestore = "firestore"
	DriverMemory    = "memory"
)

type Config struct {
	Env             string
	Addr            string
	LogLevel        string
	ShutdownTimeout time.Duration

	StoreDriver           string
	DatabaseURL           string
	FirestoreProjectID    string
	GoogleCredentialsPath string

	JWTSecret   string
	CORSOrigins []string

	Archive storage.R2Config
}

// Load reads .env (outside production) and then the process environment.
func Load() Config {
	if os.Getenv("APP_ENV") != "production" {
		_ = godotenv.Load()
	}

	return Config{
		Env:             GetString("APP_ENV", "development"),
		Addr:            GetString("ADDR", ":8080"),
		LogLevel:        GetString("LOG_LEVEL", "info"),
		ShutdownTimeout: time.Duration(GetInt("SHUTDOWN_TIMEOUT_SECONDS", 30)) * time.Second,

		StoreDriver:           GetString("STORE_DRIVER", DriverPostgres),
		DatabaseURL:           GetString("DATABASE_URL", ""),
		FirestoreProjectID:    GetString("FIRESTORE_PROJECT_ID", ""),
		GoogleCredentialsPath: GetString("GOOGLE_CREDENTIALS_PATH", ""),

		JWTSecret:   GetString("JWT_SECRET", ""),
		CORSOrigins: GetList("CORS_ORIGINS", []string{"http://localhost:3000", "http://localhost:5173"}),

		Archive: storage.R2Config{
			Endpoint:      GetString("R2_ENDPOINT", ""),
			AccessKey:     GetString("R2_ACCESS_KEY", ""),
			SecretKey:     GetString("R2_SECRET_KEY", ""),
			Bucket:        GetString("R2_BUCKET_NAME", ""),
			PublicBaseURL: GetString("R2_PUBLIC_BASE_URL", ""),
		},
	}
}

func (c Config) IsProduction() bool {
	return c.Env == "production"
}

// Validate reports the first missing variable required by the selected
// store driver.
func (c Config) Validate() error {
	required := map[string]string{"JWT_SECRET": c.JWTSecret}
	order := []string{"JWT_SECRET"}

	switch c.StoreDriver {
	case DriverPostgres:
		required["DATABASE_URL"] = c.DatabaseURL
		order = append(order, "DATABASE_URL")
	case DriverFirestore:
		required["FIRESTORE_PROJECT_ID"] = c.FirestoreProjectID
		order = append(order, "FIRESTORE_PROJECT_ID")
	case DriverMemory:
	default:
		return fmt.Errorf("unknown STORE_DRIVER %q", c.StoreDriver)
	}

	if c.Archive.Endpoint != "" || c.Archive.Bucket != "" {
		order = append(order, "R2_ENDPOINT", "R2_ACCESS_KEY", "R2_SECRET_KEY", "R2_BUCKET_NAME")
		required["R2_ENDPOINT"] = c.Archive.Endpoint
		required["R2_ACCESS_KEY"] = c.Archive.AccessKey
		required["R2_SECRET_KEY"] = c.Archive.SecretKey
		required["R2_BUCKET_NAME"] = c.Archive.Bucket
	}

	for _, k := range order {
		if required[k] == "" {
			return fmt.Errorf("missing env var: %s", k)
		}
	}
	return nil
}

package db

import (
	"context"
	"os"
	"strings"
	"testing"

	"go.uber.org/zap"
)

func TestConnectPostgres(t *testing.T) {
	logger := zap.NewNop().Sugar()

	t.Run("missing DATABASE_URL is an error", func(t *testing.T) {
		_, err := ConnectPostgres(context.Background(), "", logger)
		if err == nil || !strings.Contains(err.Error(), "DATABASE_URL") {
			t.Fatalf("expected DATABASE_URL error, got %v", err)
		}
	})

	t.Run("malformed DATABASE_URL is an error", func(t *testing.T) {
		if _, err := ConnectPostgres(context.Background(), "postgres://%zz", logger); err == nil {
			t.Fatal("expected parse error")
		}
	})

	t.Run("valid DATABASE_URL should connect", func(t *testing.T) {
		dsn := os.Getenv("DATABASE_URL")
		if dsn == "" {
			t.Skip("DATABASE_URL not set, skipping integration test")
		}

		pool, err := ConnectPostgres(context.Background(), dsn, logger)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		defer pool.Close()

		var n int
		err = pool.QueryRow(context.Background(), `
			SELECT count(*)
			FROM information_schema.tables
			WHERE table_name IN ('clients', 'pauses', 'orders', 'bills')
		`).Scan(&n)
		if err != nil {
			t.Fatalf("query: %v", err)
		}
		if n != 4 {
			t.Fatalf("got %d tables, want 4", n)
		}
	})
}

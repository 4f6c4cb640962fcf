package database

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"

	"github.com/noah-isme/yoga-studio-admin/pkg/config"
)

const mirrorApplicationName = "yoga-studio-admin-mirror"

// NewPostgres connects to the PostgreSQL instance holding the remote mirror.
// The mirror only sees short bursts of upserts, so idle connections are
// recycled quickly.
func NewPostgres(cfg config.PostgresConfig) (*sqlx.DB, error) {
	db, err := sqlx.Open("postgres", postgresDSN(cfg))
	if err != nil {
		return nil, fmt.Errorf("open postgres mirror: %w", err)
	}

	if cfg.MaxOpenConns > 0 {
		db.SetMaxOpenConns(cfg.MaxOpenConns)
	}
	if cfg.MaxIdleConns > 0 {
		db.SetMaxIdleConns(cfg.MaxIdleConns)
	}
	db.SetConnMaxLifetime(30 * time.Minute)
	db.SetConnMaxIdleTime(5 * time.Minute)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping postgres mirror: %w", err)
	}
	return db, nil
}

// postgresDSN builds a lib/pq key/value connection string. Values are quoted
// so passwords may contain spaces.
func postgresDSN(cfg config.PostgresConfig) string {
	pairs := []struct{ key, value string }{
		{"host", cfg.Host},
		{"port", fmt.Sprint(cfg.Port)},
		{"user", cfg.User},
		{"password", cfg.Password},
		{"dbname", cfg.Name},
		{"sslmode", cfg.SSLMode},
		{"connect_timeout", "5"},
		{"application_name", mirrorApplicationName},
	}
	parts := make([]string, 0, len(pairs))
	for _, p := range pairs {
		if p.value == "" {
			continue
		}
		quoted := strings.NewReplacer(`\`, `\\`, `'`, `\'`).Replace(p.value)
		parts = append(parts, fmt.Sprintf("%s='%s'", p.key, quoted))
	}
	return strings.Join(parts, " ")
}

package postgres

import (
	"fmt"
	"log/slog"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	"github.com/mtsierradev/servicio-social/internal/config"
)

// NewDB opens the connection pool, verifies it with a ping and applies the
// configured pool limits.
func NewDB(cfg config.Postgres, log *slog.Logger) (*sqlx.DB, error) {
	connStr := fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=disable",
		cfg.Username, cfg.Password, cfg.Host, cfg.Port, cfg.Database,
	)

	db, err := sqlx.Connect("postgres", connStr)
	if err != nil {
		return nil, fmt.Errorf("can't connect to database: %v", err)
	}

	db.SetMaxOpenConns(cfg.MaxOpenConns)
	db.SetMaxIdleConns(cfg.MaxIdleConns)
	db.SetConnMaxLifetime(cfg.ConnMaxLifetime)
	db.SetConnMaxIdleTime(cfg.ConnMaxIdleTime)

	log.Info("connected to postgres",
		slog.String("host", cfg.Host),
		slog.String("database", cfg.Database),
		slog.Int("max_open_conns", cfg.MaxOpenConns),
	)

	return db, nil
}

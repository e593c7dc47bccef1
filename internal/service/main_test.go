package service

import (
	"log/slog"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/mtsierradev/servicio-social/internal/repository/rediscache"
	"github.com/stretchr/testify/require"
)

func newMockDBAndTx(t *testing.T) (*sqlx.DB, *sqlx.Tx, sqlmock.Sqlmock) {
	t.Helper()
	mockDB, smock, err := sqlmock.New()
	require.NoError(t, err)
	sqlxDB := sqlx.NewDb(mockDB, "sqlmock")
	smock.ExpectBegin()
	tx, err := sqlxDB.Beginx()
	require.NoError(t, err)
	return sqlxDB, tx, smock
}

// noopCache is a cache with no Redis client behind it: every Get is a miss,
// Set and Invalidate do nothing.
func noopCache(log *slog.Logger) *rediscache.Cache {
	return rediscache.New(nil, log)
}

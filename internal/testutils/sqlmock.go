package testutils

import (
	"testing"

	"component-inventory-backend/internal/database"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// NewMockGateway returns a gateway backed by go-sqlmock. Queries are matched as regular
// expressions; every statement the code issues must be expected, so the mock doubles as a
// call counter on the store.
func NewMockGateway(t *testing.T, opts *database.Options) (*database.Gateway, sqlmock.Sqlmock) {
	t.Helper()

	sqlDB, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	t.Cleanup(func() { _ = sqlDB.Close() })

	gdb, err := gorm.Open(postgres.New(postgres.Config{Conn: sqlDB}), &gorm.Config{
		Logger:                 logger.Default.LogMode(logger.Silent),
		SkipDefaultTransaction: true,
	})
	require.NoError(t, err)

	return database.NewGateway(gdb, opts), mock
}

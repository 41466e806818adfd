package config

import (
	"path/filepath"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSQLiteDatabaseMigrate(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "bozorlik.db")

	db, err := NewDatabase(StorageSQLite, path, logrus.New())
	require.NoError(t, err)
	defer db.Close()

	require.NoError(t, db.Migrate())
	// running again is a no-op
	require.NoError(t, db.Migrate())

	var count int
	require.NoError(t, db.QueryRow(`SELECT COUNT(*) FROM expense_records`).Scan(&count))
	assert.Equal(t, 0, count)
}

func TestNewDatabase_UnknownDriver(t *testing.T) {
	_, err := NewDatabase("mysql", "dsn", logrus.New())
	assert.Error(t, err)
}

package database

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestConnect(t *testing.T) {
	t.Run("Invalid Connection", func(t *testing.T) {
		cfg := Config{
			Host:           "localhost",
			Port:           9999, // Unused port
			User:           "root",
			Password:       "wrongpassword",
			Name:           "diary",
			Driver:         DriverMySQL,
			TimeoutSeconds: 2,
		}

		// Connect should fail (timeout or refused)
		// We expect an error.
		db, err := Connect(cfg)
		assert.Error(t, err)
		assert.Nil(t, db)
	})

	t.Run("SQLite In Memory", func(t *testing.T) {
		cfg := Config{Driver: DriverSQLite, Name: ":memory:"}

		db, err := Connect(cfg)
		assert.NoError(t, err)
		assert.NotNil(t, db)
	})
}

func TestLazy(t *testing.T) {
	handle := NewLazy(Config{Driver: DriverSQLite, Name: ":memory:"})

	first, err := handle.Get()
	assert.NoError(t, err)
	assert.NotNil(t, first)

	// Second Get must return the identical memoized handle.
	second, err := handle.Get()
	assert.NoError(t, err)
	assert.Same(t, first, second)
}

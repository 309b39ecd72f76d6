package database

import (
	"testing"

	"museum-backend/internal/config"
	"museum-backend/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewInMemoryMigratesSchema(t *testing.T) {
	db, err := NewInMemory()
	require.NoError(t, err)
	defer db.Close()

	for _, model := range models.All() {
		assert.True(t, db.Migrator().HasTable(model), "missing table for %T", model)
	}
	assert.True(t, db.Migrator().HasTable("item_tag"))
	assert.True(t, db.Migrator().HasTable("collection_item"))
	assert.NoError(t, db.HealthCheck())
}

func TestNewInMemoryDatabasesAreIsolated(t *testing.T) {
	first, err := NewInMemory()
	require.NoError(t, err)
	defer first.Close()
	second, err := NewInMemory()
	require.NoError(t, err)
	defer second.Close()

	require.NoError(t, first.Create(&models.Language{ID: "eng", InternalName: "English"}).Error)

	var count int64
	require.NoError(t, second.Model(&models.Language{}).Count(&count).Error)
	assert.Zero(t, count)
}

func TestConnectRejectsUnknownDriver(t *testing.T) {
	_, err := Connect(config.DatabaseConfig{Driver: "oracle"})
	assert.Error(t, err)
}

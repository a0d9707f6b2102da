package database_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"ecodrive/config"
	"ecodrive/database"
	"ecodrive/database/dbtest"
	"ecodrive/models"
)

func TestDialectorRejectsUnknownDriver(t *testing.T) {
	_, err := database.Dialector(config.DatabaseConfig{Driver: "oracle"})
	assert.Error(t, err)

	_, err = database.Open(config.DatabaseConfig{Driver: "oracle"}, zap.NewNop())
	assert.Error(t, err)
}

func TestMigrateCreatesTables(t *testing.T) {
	db := dbtest.Open(t)

	for _, m := range models.All() {
		assert.True(t, db.Migrator().HasTable(m), "%T", m)
	}

	// running twice is a no-op
	require.NoError(t, database.Migrate(db))
}

func TestForeignKeysEnforced(t *testing.T) {
	db := dbtest.Open(t)

	err := db.Create(&models.ChargingStation{
		Nome:           "Orphan",
		BairroID:       42,
		TipoCarregador: "CCS2",
		PrecoPorKwh:    1.5,
	}).Error
	assert.Error(t, err)
}

package storage

import (
	"github.com/ioannis-mouratidis/ai-plays-pokemon/internal/game"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// OpenAndMigrate opens the sqlite database at dataSourceName and keeps the
// schema updated via AutoMigrate. The file is created if missing.
func OpenAndMigrate(dataSourceName string) (*gorm.DB, error) {
	db, err := gorm.Open(sqlite.Open(dataSourceName), &gorm.Config{})
	if err != nil {
		return nil, err
	}
	if err := db.AutoMigrate(&game.TurnRecord{}, &game.EncounterRecord{}); err != nil {
		return nil, err
	}
	return db, nil
}

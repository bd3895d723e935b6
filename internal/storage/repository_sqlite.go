package storage

import (
	"time"

	"github.com/ioannis-mouratidis/ai-plays-pokemon/internal/game"
	"gorm.io/gorm"
)

type sqliteRepository struct {
	db *gorm.DB
}

func NewSQLiteRepository(db *gorm.DB) Repository {
	return &sqliteRepository{db: db}
}

func (r *sqliteRepository) SaveTurn(rec *game.TurnRecord) error {
	return r.db.Create(rec).Error
}

func (r *sqliteRepository) RecentTurns(limit int) ([]game.TurnRecord, error) {
	var recs []game.TurnRecord
	if err := r.db.Order("id DESC").Limit(limit).Find(&recs).Error; err != nil {
		return nil, err
	}
	return recs, nil
}

func (r *sqliteRepository) TurnByUUID(uuid string) (*game.TurnRecord, error) {
	var rec game.TurnRecord
	if err := r.db.Where("turn_uuid = ?", uuid).First(&rec).Error; err != nil {
		return nil, err
	}
	return &rec, nil
}

func (r *sqliteRepository) StartEncounter(rec *game.EncounterRecord) error {
	return r.db.Create(rec).Error
}

func (r *sqliteRepository) FinishEncounter(uuid string) error {
	now := time.Now()
	return r.db.Model(&game.EncounterRecord{}).
		Where("encounter_uuid = ? AND ended_at IS NULL", uuid).
		Update("ended_at", &now).Error
}

func (r *sqliteRepository) RecentEncounters(limit int) ([]game.EncounterRecord, error) {
	var recs []game.EncounterRecord
	if err := r.db.Order("id DESC").Limit(limit).Find(&recs).Error; err != nil {
		return nil, err
	}
	return recs, nil
}

package storage

import (
	"github.com/ioannis-mouratidis/ai-plays-pokemon/internal/game"
)

// Repository persists resolved turns and battle encounters.
type Repository interface {
	SaveTurn(rec *game.TurnRecord) error
	RecentTurns(limit int) ([]game.TurnRecord, error)
	TurnByUUID(uuid string) (*game.TurnRecord, error)

	StartEncounter(rec *game.EncounterRecord) error
	FinishEncounter(uuid string) error
	RecentEncounters(limit int) ([]game.EncounterRecord, error)
}

package game

import (
	"time"

	"gorm.io/gorm"
)

// TurnRecord persists one resolved action so the agent can review its own
// recent play via the history endpoint.
type TurnRecord struct {
	gorm.Model
	TurnUUID string `json:"turn_uuid" gorm:"uniqueIndex"`

	Action    string `json:"action"`
	MoveSlot  int    `json:"move_slot"`
	PartySlot int    `json:"party_slot"`

	DamageDealt    int     `json:"damage_dealt"`
	DamageReceived int     `json:"damage_received"`
	PlayerHP       int     `json:"player_hp_remaining"`
	PlayerMaxHP    int     `json:"player_max_hp"`
	EnemyHPPercent float64 `json:"enemy_hp_percentage"`

	PlayerFainted bool `json:"player_fainted"`
	EnemyFainted  bool `json:"enemy_fainted"`
	TimedOut      bool `json:"timed_out"`
	BattleActive  bool `json:"battle_active"`
}

func (TurnRecord) TableName() string { return "turn_log" }

// EncounterRecord persists one detected battle from start transition to end
// transition. EndedAt stays nil while the battle is still running.
type EncounterRecord struct {
	gorm.Model
	EncounterUUID string     `json:"encounter_uuid" gorm:"uniqueIndex"`
	Kind          string     `json:"battle_kind"`
	StartedAt     time.Time  `json:"started_at"`
	EndedAt       *time.Time `json:"ended_at"`
}

func (EncounterRecord) TableName() string { return "encounters" }

package game

// StatusCondition is the visible status of a fighter. Using a dedicated type
// instead of plain string makes code safer and self-documenting.
type StatusCondition string

const (
	StatusHealthy       StatusCondition = "healthy"
	StatusAsleep        StatusCondition = "asleep"
	StatusPoisoned      StatusCondition = "poisoned"
	StatusBurned        StatusCondition = "burned"
	StatusFrozen        StatusCondition = "frozen"
	StatusParalyzed     StatusCondition = "paralyzed"
	StatusBadlyPoisoned StatusCondition = "badly_poisoned"
	StatusUnknown       StatusCondition = "unknown"
)

var statusByIndex = map[byte]StatusCondition{
	0: StatusHealthy,
	1: StatusAsleep,
	2: StatusPoisoned,
	3: StatusBurned,
	4: StatusFrozen,
	5: StatusParalyzed,
	6: StatusBadlyPoisoned,
}

// StatusFromByte maps the low bits of the raw status byte to a condition.
func StatusFromByte(b byte) StatusCondition {
	if s, ok := statusByIndex[b&0x07]; ok {
		return s
	}
	return StatusUnknown
}

// BattleKind tags a battle as wild or trainer.
type BattleKind string

const (
	BattleNone    BattleKind = "none"
	BattleWild    BattleKind = "wild"
	BattleTrainer BattleKind = "trainer"
	BattleUnknown BattleKind = "unknown"
)

// Move is one occupied move slot of the player's fighter.
type Move struct {
	Slot int    `json:"slot"`
	ID   uint16 `json:"move_id"`
	Name string `json:"name"`
	PP   uint8  `json:"pp"`
}

// FighterRecord is the raw decoded fighter structure. It carries everything
// the fixed memory layout stores, including fields that must never reach the
// agent for the enemy side. Only the snapshot reader converts records into
// agent-visible snapshots.
type FighterRecord struct {
	Personality uint32
	SpeciesID   uint16
	Level       int
	CurrentHP   int
	MaxHP       int
	Attack      int
	Defense     int
	Speed       int
	SpAttack    int
	SpDefense   int
	StatusByte  byte
}

// Exists reports whether the record holds a fighter at all (empty party
// slots decode to species 0). Fainted fighters still exist; they show up in
// the switching menu and affect cursor positions.
func (r FighterRecord) Exists() bool { return r.SpeciesID > 0 }

// CanBattle reports whether the fighter can take the field.
func (r FighterRecord) CanBattle() bool { return r.Exists() && r.CurrentHP > 0 }

// Status returns the visible status condition.
func (r FighterRecord) Status() StatusCondition { return StatusFromByte(r.StatusByte) }

// FighterSnapshot is the player-side view of one fighter at an instant.
type FighterSnapshot struct {
	Exists    bool            `json:"exists"`
	Slot      int             `json:"slot,omitempty"`
	SpeciesID uint16          `json:"species_id"`
	Species   string          `json:"species"`
	Level     int             `json:"level"`
	CurrentHP int             `json:"current_hp"`
	MaxHP     int             `json:"max_hp"`
	Attack    int             `json:"attack"`
	Defense   int             `json:"defense"`
	Speed     int             `json:"speed"`
	SpAttack  int             `json:"sp_attack"`
	SpDefense int             `json:"sp_defense"`
	Status    StatusCondition `json:"status"`
	CanBattle bool            `json:"can_battle"`
	Moves     []Move          `json:"moves,omitempty"`
}

// HPBarColor is the coarse enemy HP indicator a player sees on screen.
type HPBarColor string

const (
	HPBarGreen  HPBarColor = "green"
	HPBarYellow HPBarColor = "yellow"
	HPBarRed    HPBarColor = "red"
)

// OpponentSnapshot is the enemy-side view, limited to what a player could
// observe on screen. It structurally excludes exact HP, stats and moves;
// there is no variant of this type that carries them.
type OpponentSnapshot struct {
	Exists    bool            `json:"exists"`
	Species   string          `json:"species"`
	Level     int             `json:"level"`
	HPBar     HPBarColor      `json:"hp_bar_color"`
	HPPercent float64         `json:"hp_percentage"`
	Status    StatusCondition `json:"status"`
	CanBattle bool            `json:"can_battle"`
}

// BattleSnapshot pairs both sides' views with the battle-active flag and
// kind tag. Snapshots are immutable once captured; each poll produces a new
// one and two snapshots compare purely by field equality.
type BattleSnapshot struct {
	Active   bool             `json:"active"`
	Kind     BattleKind       `json:"kind"`
	Self     FighterSnapshot  `json:"self"`
	Opponent OpponentSnapshot `json:"opponent"`
}

// BattleStatus is the metadata view returned by the status query.
type BattleStatus struct {
	InBattle        bool       `json:"in_battle"`
	Kind            BattleKind `json:"battle_type"`
	CanFlee         bool       `json:"can_flee"`
	EnemyPartyCount int        `json:"enemy_party_count"`
	EnemyAliveCount int        `json:"enemy_alive_count"`
	TurnCount       int        `json:"turn_count"`
}

// ActionType identifies the kind of battle action.
type ActionType string

const (
	ActionAttack ActionType = "attack"
	ActionSwitch ActionType = "switch"
)

// Action is one command issued against the running battle.
type Action struct {
	Type      ActionType
	MoveSlot  int // 1-4 when Type == ActionAttack
	PartySlot int // 1-6 when Type == ActionSwitch
}

// Attack builds an attack action for the given move slot.
func Attack(moveSlot int) Action { return Action{Type: ActionAttack, MoveSlot: moveSlot} }

// Switch builds a switch action for the given party slot.
func Switch(partySlot int) Action { return Action{Type: ActionSwitch, PartySlot: partySlot} }

// TurnResult describes what one resolved action did, derived by diffing the
// before/after states. It is constructed once per action and never mutated.
type TurnResult struct {
	Success  bool       `json:"success"`
	TimedOut bool       `json:"timed_out"`
	Action   ActionType `json:"action"`

	MoveSlot          int    `json:"move_slot,omitempty"`
	SwitchedTo        int    `json:"switched_to,omitempty"`
	SwitchedToSpecies string `json:"switched_to_species,omitempty"`

	DamageDealt    int `json:"damage_dealt"`
	DamageReceived int `json:"damage_received"`

	PlayerHP       int     `json:"player_hp_remaining"`
	PlayerMaxHP    int     `json:"player_max_hp"`
	EnemyHPPercent float64 `json:"enemy_hp_percentage"`

	PlayerFainted bool `json:"player_fainted"`
	EnemyFainted  bool `json:"enemy_fainted"`

	PlayerStatus        StatusCondition `json:"player_status"`
	EnemyStatus         StatusCondition `json:"enemy_status"`
	PlayerStatusChanged bool            `json:"player_status_changed"`
	EnemyStatusChanged  bool            `json:"enemy_status_changed"`

	BattleActive bool `json:"battle_active"`
}

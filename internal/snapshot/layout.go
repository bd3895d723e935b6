package snapshot

import (
	"encoding/binary"
	"fmt"

	"github.com/ioannis-mouratidis/ai-plays-pokemon/internal/game"
)

// RecordSize is the size of one fighter structure in party memory.
const RecordSize = 100

// movesBlockSize covers four 16-bit move IDs followed by four PP bytes.
const movesBlockSize = 12

// RecordLayout is the version-pinned offset table for the fighter structure.
// Offsets are bytes from the start of the record. A new game version means a
// new table, never a change to the decode logic.
type RecordLayout struct {
	Personality int `json:"personality"`
	Species     int `json:"species"`
	Moves       int `json:"moves"`
	Status      int `json:"status"`
	Level       int `json:"level"`
	CurrentHP   int `json:"current_hp"`
	MaxHP       int `json:"max_hp"`
	Attack      int `json:"attack"`
	Defense     int `json:"defense"`
	Speed       int `json:"speed"`
	SpAttack    int `json:"sp_attack"`
	SpDefense   int `json:"sp_defense"`
}

// MemoryMap pins every battle-relevant address for one game version.
type MemoryMap struct {
	// Party and enemy fighter records, six RecordSize blocks each.
	PartyAddresses [6]uint32
	EnemyAddresses [6]uint32

	// Which party slot is on the field (byte, 0-5).
	ActiveSlotAddress uint32

	// Battle state words.
	BattleFlagsAddress uint32
	BattleTypeAddress  uint32

	// Menu cursor bytes.
	BattleMenuCursorAddress uint32
	MoveMenuCursorAddress   uint32
	PartyMenuCursorAddress  uint32

	Record RecordLayout
}

// DefaultMemoryMap returns the built-in FireRed (BPRE v1.0) layout. Other
// versions load their tables from a JSON file instead.
func DefaultMemoryMap() MemoryMap {
	m := MemoryMap{
		ActiveSlotAddress:       0x02023D6C,
		BattleFlagsAddress:      0x02022B4C,
		BattleTypeAddress:       0x02022B50,
		BattleMenuCursorAddress: 0x02023E82,
		MoveMenuCursorAddress:   0x02023E84,
		PartyMenuCursorAddress:  0x0203B0A0,
		Record: RecordLayout{
			Personality: 0,
			Species:     32,
			Moves:       44,
			Status:      80,
			Level:       84,
			CurrentHP:   86,
			MaxHP:       88,
			Attack:      90,
			Defense:     92,
			Speed:       94,
			SpAttack:    96,
			SpDefense:   98,
		},
	}
	const partyBase = 0x02024284
	const enemyBase = 0x0202402C
	for i := 0; i < 6; i++ {
		m.PartyAddresses[i] = partyBase + uint32(i*RecordSize)
		m.EnemyAddresses[i] = enemyBase + uint32(i*RecordSize)
	}
	return m
}

// Validate checks that every offset keeps its field inside the record.
// Layouts come from user-supplied JSON files, so a bad table must fail as an
// error, never as an out-of-range panic during a capture.
func (l RecordLayout) Validate() error {
	fields := []struct {
		name  string
		off   int
		width int
	}{
		{"personality", l.Personality, 4},
		{"species", l.Species, 2},
		{"moves", l.Moves, movesBlockSize},
		{"status", l.Status, 1},
		{"level", l.Level, 1},
		{"current_hp", l.CurrentHP, 2},
		{"max_hp", l.MaxHP, 2},
		{"attack", l.Attack, 2},
		{"defense", l.Defense, 2},
		{"speed", l.Speed, 2},
		{"sp_attack", l.SpAttack, 2},
		{"sp_defense", l.SpDefense, 2},
	}
	for _, f := range fields {
		if f.off < 0 || f.off+f.width > RecordSize {
			return fmt.Errorf("offset %s=%d does not fit a %d-byte field in a %d-byte record", f.name, f.off, f.width, RecordSize)
		}
	}
	return nil
}

// DecodeFighter decodes one RecordSize byte block using the given offset
// table. It is a pure function; the polling and diffing logic never touches
// raw bytes directly.
func DecodeFighter(data []byte, l RecordLayout) (game.FighterRecord, error) {
	if len(data) < RecordSize {
		return game.FighterRecord{}, fmt.Errorf("fighter record needs %d bytes, got %d", RecordSize, len(data))
	}
	if err := l.Validate(); err != nil {
		return game.FighterRecord{}, err
	}
	return game.FighterRecord{
		Personality: binary.LittleEndian.Uint32(data[l.Personality:]),
		SpeciesID:   binary.LittleEndian.Uint16(data[l.Species:]),
		Level:       int(data[l.Level]),
		CurrentHP:   int(binary.LittleEndian.Uint16(data[l.CurrentHP:])),
		MaxHP:       int(binary.LittleEndian.Uint16(data[l.MaxHP:])),
		Attack:      int(binary.LittleEndian.Uint16(data[l.Attack:])),
		Defense:     int(binary.LittleEndian.Uint16(data[l.Defense:])),
		Speed:       int(binary.LittleEndian.Uint16(data[l.Speed:])),
		SpAttack:    int(binary.LittleEndian.Uint16(data[l.SpAttack:])),
		SpDefense:   int(binary.LittleEndian.Uint16(data[l.SpDefense:])),
		StatusByte:  data[l.Status],
	}, nil
}

// DecodeMoves decodes the 12-byte move block: four little-endian move IDs
// followed by four PP bytes. Empty slots (move ID 0) are skipped.
func DecodeMoves(data []byte) ([]game.Move, error) {
	if len(data) < movesBlockSize {
		return nil, fmt.Errorf("moves block needs %d bytes, got %d", movesBlockSize, len(data))
	}
	moves := make([]game.Move, 0, 4)
	for i := 0; i < 4; i++ {
		id := binary.LittleEndian.Uint16(data[i*2:])
		if id == 0 {
			continue
		}
		moves = append(moves, game.Move{
			Slot: i + 1,
			ID:   id,
			Name: game.MoveName(id),
			PP:   data[8+i],
		})
	}
	return moves, nil
}

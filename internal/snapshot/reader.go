package snapshot

import (
	"context"
	"fmt"
	"math"

	"github.com/ioannis-mouratidis/ai-plays-pokemon/internal/emulator"
	"github.com/ioannis-mouratidis/ai-plays-pokemon/internal/game"
)

// trainerBattleBit marks trainer battles in the battle type word.
const trainerBattleBit = 0x8

// Reader produces point-in-time battle snapshots from live memory. It holds
// no state and performs no caching; every call re-reads the emulator, so two
// captures with no intervening game activity yield identical snapshots.
//
// The opponent visibility restriction lives here and only here: the enemy
// side leaves this package exclusively as game.OpponentSnapshot, which has
// no exact-HP, stat or move fields.
type Reader struct {
	mem  emulator.Memory
	mmap MemoryMap
}

// NewReader builds a reader over the given transport and memory map.
func NewReader(mem emulator.Memory, mmap MemoryMap) *Reader {
	return &Reader{mem: mem, mmap: mmap}
}

// ReadFighterAt reads and decodes one fighter record at addr. Shared with
// the battle controller, which needs raw records for its internal diffing.
func ReadFighterAt(ctx context.Context, mem emulator.Memory, addr uint32, l RecordLayout) (game.FighterRecord, error) {
	data, err := mem.ReadRange(ctx, addr, RecordSize)
	if err != nil {
		return game.FighterRecord{}, err
	}
	return DecodeFighter(data, l)
}

// PartyRecord reads the raw record for a party slot (1-6).
func (r *Reader) PartyRecord(ctx context.Context, slot int) (game.FighterRecord, error) {
	if slot < 1 || slot > 6 {
		return game.FighterRecord{}, fmt.Errorf("party slot must be 1-6, got %d", slot)
	}
	return ReadFighterAt(ctx, r.mem, r.mmap.PartyAddresses[slot-1], r.mmap.Record)
}

// ActiveSlot returns which party slot (1-6) is on the field. A value the
// game would never store decodes as slot 1.
func (r *Reader) ActiveSlot(ctx context.Context) (int, error) {
	b, err := r.mem.Read8(ctx, r.mmap.ActiveSlotAddress)
	if err != nil {
		return 0, err
	}
	if b > 5 {
		return 1, nil
	}
	return int(b) + 1, nil
}

// Moves reads the occupied move slots of a party fighter.
func (r *Reader) Moves(ctx context.Context, slot int) ([]game.Move, error) {
	if slot < 1 || slot > 6 {
		return nil, fmt.Errorf("party slot must be 1-6, got %d", slot)
	}
	addr := r.mmap.PartyAddresses[slot-1] + uint32(r.mmap.Record.Moves)
	data, err := r.mem.ReadRange(ctx, addr, movesBlockSize)
	if err != nil {
		return nil, err
	}
	return DecodeMoves(data)
}

// ActiveFighter returns the full player-side snapshot of the fighter on the
// field, including its moves.
func (r *Reader) ActiveFighter(ctx context.Context) (game.FighterSnapshot, error) {
	slot, err := r.ActiveSlot(ctx)
	if err != nil {
		return game.FighterSnapshot{}, err
	}
	rec, err := r.PartyRecord(ctx, slot)
	if err != nil {
		return game.FighterSnapshot{}, err
	}
	moves, err := r.Moves(ctx, slot)
	if err != nil {
		return game.FighterSnapshot{}, err
	}
	return fighterSnapshot(rec, slot, moves), nil
}

// Party returns snapshots for all occupied party slots, fainted ones
// included (they still appear in the switching menu).
func (r *Reader) Party(ctx context.Context) ([]game.FighterSnapshot, error) {
	party := make([]game.FighterSnapshot, 0, 6)
	for slot := 1; slot <= 6; slot++ {
		rec, err := r.PartyRecord(ctx, slot)
		if err != nil {
			return nil, err
		}
		if !rec.Exists() {
			continue
		}
		party = append(party, fighterSnapshot(rec, slot, nil))
	}
	return party, nil
}

// Opponent returns the visible-only view of the enemy fighter on the field.
// There is no mode that exposes the hidden fields.
func (r *Reader) Opponent(ctx context.Context) (game.OpponentSnapshot, error) {
	rec, err := ReadFighterAt(ctx, r.mem, r.mmap.EnemyAddresses[0], r.mmap.Record)
	if err != nil {
		return game.OpponentSnapshot{}, err
	}
	return opponentSnapshot(rec), nil
}

// EnemyCounts reports how many enemy fighters exist and how many can still
// battle, scanning all six enemy slots.
func (r *Reader) EnemyCounts(ctx context.Context) (total, alive int, err error) {
	for i := 0; i < 6; i++ {
		rec, rerr := ReadFighterAt(ctx, r.mem, r.mmap.EnemyAddresses[i], r.mmap.Record)
		if rerr != nil {
			return 0, 0, rerr
		}
		if !rec.Exists() {
			continue
		}
		total++
		if rec.CanBattle() {
			alive++
		}
	}
	return total, alive, nil
}

// Active reports whether a battle is currently running: battle flags or
// battle type non-zero, corroborated by the lead enemy record having HP.
func (r *Reader) Active(ctx context.Context) (bool, error) {
	flags, err := r.mem.Read8(ctx, r.mmap.BattleFlagsAddress)
	if err != nil {
		return false, err
	}
	btype, err := r.mem.Read32(ctx, r.mmap.BattleTypeAddress)
	if err != nil {
		return false, err
	}
	if flags != 0 || btype != 0 {
		return true, nil
	}
	hp, err := r.mem.Read16(ctx, r.mmap.EnemyAddresses[0]+uint32(r.mmap.Record.CurrentHP))
	if err != nil {
		return false, err
	}
	return hp > 0, nil
}

// Kind classifies the running battle as wild or trainer.
func (r *Reader) Kind(ctx context.Context) (game.BattleKind, error) {
	active, err := r.Active(ctx)
	if err != nil {
		return game.BattleUnknown, err
	}
	if !active {
		return game.BattleNone, nil
	}
	btype, err := r.mem.Read32(ctx, r.mmap.BattleTypeAddress)
	if err != nil {
		return game.BattleUnknown, err
	}
	if btype&trainerBattleBit != 0 {
		return game.BattleTrainer, nil
	}
	return game.BattleWild, nil
}

// Capture produces a full battle snapshot at a single instant. Outside a
// battle the snapshot carries Active=false and empty fighters.
func (r *Reader) Capture(ctx context.Context) (game.BattleSnapshot, error) {
	active, err := r.Active(ctx)
	if err != nil {
		return game.BattleSnapshot{}, err
	}
	if !active {
		return game.BattleSnapshot{Active: false, Kind: game.BattleNone}, nil
	}
	kind, err := r.Kind(ctx)
	if err != nil {
		return game.BattleSnapshot{}, err
	}
	self, err := r.ActiveFighter(ctx)
	if err != nil {
		return game.BattleSnapshot{}, err
	}
	opp, err := r.Opponent(ctx)
	if err != nil {
		return game.BattleSnapshot{}, err
	}
	return game.BattleSnapshot{Active: true, Kind: kind, Self: self, Opponent: opp}, nil
}

func fighterSnapshot(rec game.FighterRecord, slot int, moves []game.Move) game.FighterSnapshot {
	return game.FighterSnapshot{
		Exists:    rec.Exists(),
		Slot:      slot,
		SpeciesID: rec.SpeciesID,
		Species:   game.SpeciesName(rec.SpeciesID),
		Level:     rec.Level,
		CurrentHP: rec.CurrentHP,
		MaxHP:     rec.MaxHP,
		Attack:    rec.Attack,
		Defense:   rec.Defense,
		Speed:     rec.Speed,
		SpAttack:  rec.SpAttack,
		SpDefense: rec.SpDefense,
		Status:    rec.Status(),
		CanBattle: rec.CanBattle(),
		Moves:     moves,
	}
}

func opponentSnapshot(rec game.FighterRecord) game.OpponentSnapshot {
	if !rec.Exists() {
		return game.OpponentSnapshot{Exists: false}
	}
	percent := 0.0
	if rec.MaxHP > 0 {
		percent = float64(rec.CurrentHP) / float64(rec.MaxHP) * 100
	}
	bar := game.HPBarRed
	switch {
	case percent > 50:
		bar = game.HPBarGreen
	case percent > 20:
		bar = game.HPBarYellow
	}
	return game.OpponentSnapshot{
		Exists:    true,
		Species:   game.SpeciesName(rec.SpeciesID),
		Level:     rec.Level,
		HPBar:     bar,
		HPPercent: math.Round(percent*10) / 10,
		Status:    rec.Status(),
		CanBattle: rec.CanBattle(),
	}
}

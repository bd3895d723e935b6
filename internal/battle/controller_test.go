package battle

import (
	"context"
	"encoding/binary"
	"errors"
	"testing"
	"time"

	"github.com/ioannis-mouratidis/ai-plays-pokemon/internal/emulator"
	"github.com/ioannis-mouratidis/ai-plays-pokemon/internal/game"
	"github.com/ioannis-mouratidis/ai-plays-pokemon/internal/snapshot"
)

type fakeMemory struct {
	data map[uint32]byte
	fail bool
}

func newFakeMemory() *fakeMemory {
	return &fakeMemory{data: make(map[uint32]byte)}
}

func (f *fakeMemory) Read8(_ context.Context, addr uint32) (byte, error) {
	if f.fail {
		return 0, errors.New("read failed")
	}
	return f.data[addr], nil
}

func (f *fakeMemory) Read16(ctx context.Context, addr uint32) (uint16, error) {
	b, err := f.ReadRange(ctx, addr, 2)
	if err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint16(b), nil
}

func (f *fakeMemory) Read32(ctx context.Context, addr uint32) (uint32, error) {
	b, err := f.ReadRange(ctx, addr, 4)
	if err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint32(b), nil
}

func (f *fakeMemory) ReadRange(_ context.Context, addr uint32, n int) ([]byte, error) {
	if f.fail {
		return nil, errors.New("read failed")
	}
	out := make([]byte, n)
	for i := 0; i < n; i++ {
		out[i] = f.data[addr+uint32(i)]
	}
	return out, nil
}

func (f *fakeMemory) Write8(_ context.Context, addr uint32, value byte) error {
	f.data[addr] = value
	return nil
}

func (f *fakeMemory) put16(addr uint32, v uint16) {
	f.data[addr] = byte(v)
	f.data[addr+1] = byte(v >> 8)
}

func (f *fakeMemory) put32(addr uint32, v uint32) {
	for i := 0; i < 4; i++ {
		f.data[addr+uint32(i)] = byte(v >> (8 * i))
	}
}

func (f *fakeMemory) putFighter(base uint32, l snapshot.RecordLayout, personality uint32, species uint16, level, hp, maxHP int, moves [4]uint16) {
	f.put32(base+uint32(l.Personality), personality)
	f.put16(base+uint32(l.Species), species)
	f.data[base+uint32(l.Level)] = byte(level)
	f.put16(base+uint32(l.CurrentHP), uint16(hp))
	f.put16(base+uint32(l.MaxHP), uint16(maxHP))
	for i, id := range moves {
		f.put16(base+uint32(l.Moves+i*2), id)
	}
}

// fakeInput records taps and forwards each button to an optional script so
// tests can mutate memory in reaction to presses.
type fakeInput struct {
	taps  []emulator.Button
	onTap func(b emulator.Button)
}

func (f *fakeInput) Tap(_ context.Context, b emulator.Button) error {
	f.taps = append(f.taps, b)
	if f.onTap != nil {
		f.onTap(b)
	}
	return nil
}

func (f *fakeInput) TapSequence(ctx context.Context, buttons []emulator.Button, _ time.Duration) error {
	for _, b := range buttons {
		if err := f.Tap(ctx, b); err != nil {
			return err
		}
	}
	return nil
}

func testTimings() Timings {
	return Timings{
		PollInterval:   time.Millisecond,
		SettleDelay:    time.Millisecond,
		MenuDelay:      time.Millisecond,
		PartyMenuDelay: time.Millisecond,
		CursorDelay:    time.Millisecond,
		ConfirmDelay:   time.Millisecond,
		AttackTimeout:  150 * time.Millisecond,
		SwitchTimeout:  150 * time.Millisecond,
		ReadRetries:    2,
	}
}

// battleFixture wires a controller over a fake battle: Pikachu 45/60 on the
// field with two moves, a second party member Charmander 30/55, and an
// enemy Rattata 50/50.
func battleFixture(t *testing.T) (*fakeMemory, *fakeInput, *Controller, snapshot.MemoryMap) {
	t.Helper()
	mem := newFakeMemory()
	mmap := snapshot.DefaultMemoryMap()
	mem.data[mmap.BattleFlagsAddress] = 1
	mem.data[mmap.ActiveSlotAddress] = 0
	mem.putFighter(mmap.PartyAddresses[0], mmap.Record, 0xA1, 25, 20, 45, 60, [4]uint16{85, 45, 0, 0})
	mem.putFighter(mmap.PartyAddresses[1], mmap.Record, 0xA2, 4, 19, 30, 55, [4]uint16{10, 52, 0, 0})
	mem.putFighter(mmap.EnemyAddresses[0], mmap.Record, 0xB1, 19, 18, 50, 50, [4]uint16{33, 0, 0, 0})

	input := &fakeInput{}
	reader := snapshot.NewReader(mem, mmap)
	ctrl := NewController(mem, input, reader, NewDetector(reader), mmap, testTimings())
	return mem, input, ctrl, mmap
}

func countTaps(input *fakeInput, b emulator.Button) int {
	n := 0
	for _, tap := range input.taps {
		if tap == b {
			n++
		}
	}
	return n
}

func TestResolveAction_AttackDealsAndReceivesDamage(t *testing.T) {
	mem, input, ctrl, mmap := battleFixture(t)
	input.onTap = func(b emulator.Button) {
		// The second A press confirms the move; the turn then plays out.
		if b == emulator.ButtonA && countTaps(input, emulator.ButtonA) == 2 {
			mem.put16(mmap.EnemyAddresses[0]+uint32(mmap.Record.CurrentHP), 20)
			mem.put16(mmap.PartyAddresses[0]+uint32(mmap.Record.CurrentHP), 40)
		}
	}

	res, err := ctrl.ResolveAction(context.Background(), game.Attack(1))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !res.Success || res.TimedOut {
		t.Fatalf("expected clean resolution, got %+v", res)
	}
	if res.DamageDealt != 30 {
		t.Fatalf("expected 30 damage dealt (50->20), got %d", res.DamageDealt)
	}
	if res.DamageReceived != 5 {
		t.Fatalf("expected 5 damage received (45->40), got %d", res.DamageReceived)
	}
	if res.PlayerHP != 40 || res.PlayerMaxHP != 60 {
		t.Fatalf("unexpected player hp %d/%d", res.PlayerHP, res.PlayerMaxHP)
	}
	if res.EnemyHPPercent != 40 {
		t.Fatalf("expected enemy at 40%%, got %v", res.EnemyHPPercent)
	}
	if res.PlayerFainted || res.EnemyFainted {
		t.Fatalf("nobody should have fainted: %+v", res)
	}
	if !res.BattleActive {
		t.Fatalf("battle should still be active")
	}
	if ctrl.TurnCount() != 1 {
		t.Fatalf("expected 1 resolved turn, got %d", ctrl.TurnCount())
	}
}

func TestResolveAction_AttackFaintsEnemy(t *testing.T) {
	mem, input, ctrl, mmap := battleFixture(t)
	input.onTap = func(b emulator.Button) {
		if b == emulator.ButtonA && countTaps(input, emulator.ButtonA) == 2 {
			mem.put16(mmap.EnemyAddresses[0]+uint32(mmap.Record.CurrentHP), 0)
		}
	}

	res, err := ctrl.ResolveAction(context.Background(), game.Attack(1))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !res.EnemyFainted {
		t.Fatalf("expected enemy to faint, got %+v", res)
	}
	if res.DamageDealt != 50 {
		t.Fatalf("expected 50 damage dealt, got %d", res.DamageDealt)
	}
}

func TestResolveAction_AttackInvalidSlotSendsNoInput(t *testing.T) {
	_, input, ctrl, _ := battleFixture(t)

	_, err := ctrl.ResolveAction(context.Background(), game.Attack(5))
	if !errors.Is(err, ErrInvalidMoveSlot) {
		t.Fatalf("expected ErrInvalidMoveSlot, got %v", err)
	}
	if len(input.taps) != 0 {
		t.Fatalf("rejected action must not press buttons, got %v", input.taps)
	}
}

func TestResolveAction_AttackEmptySlot(t *testing.T) {
	_, input, ctrl, _ := battleFixture(t)

	_, err := ctrl.ResolveAction(context.Background(), game.Attack(3))
	if !errors.Is(err, ErrEmptyMoveSlot) {
		t.Fatalf("expected ErrEmptyMoveSlot, got %v", err)
	}
	if len(input.taps) != 0 {
		t.Fatalf("rejected action must not press buttons, got %v", input.taps)
	}
}

func TestResolveAction_NotInBattle(t *testing.T) {
	mem, _, ctrl, mmap := battleFixture(t)
	mem.data[mmap.BattleFlagsAddress] = 0
	mem.put16(mmap.EnemyAddresses[0]+uint32(mmap.Record.CurrentHP), 0)

	_, err := ctrl.ResolveAction(context.Background(), game.Attack(1))
	if !errors.Is(err, ErrNotInBattle) {
		t.Fatalf("expected ErrNotInBattle, got %v", err)
	}
}

func TestResolveAction_TimeoutIsSuccessWithFlag(t *testing.T) {
	_, _, ctrl, _ := battleFixture(t)

	res, err := ctrl.ResolveAction(context.Background(), game.Attack(1))
	if err != nil {
		t.Fatalf("timeout must not be an error, got %v", err)
	}
	if !res.Success || !res.TimedOut {
		t.Fatalf("expected success with timed_out flag, got %+v", res)
	}
	if res.DamageDealt != 0 || res.DamageReceived != 0 {
		t.Fatalf("timeout must report zero deltas, got %+v", res)
	}
	if res.PlayerHP != 45 {
		t.Fatalf("timeout must report the before-state hp, got %d", res.PlayerHP)
	}
	if ctrl.TurnCount() != 0 {
		t.Fatalf("an unresolved turn must not advance the turn counter, got %d", ctrl.TurnCount())
	}
}

func TestResolveAction_SwitchTimeoutOmitsIdentity(t *testing.T) {
	mem, input, ctrl, mmap := battleFixture(t)

	// The party menu opens and the cursor moves, but the swap never lands:
	// the active slot and both HP values stay put until the poll gives up.
	partyMenuOpen := false
	input.onTap = func(b emulator.Button) {
		switch {
		case b == emulator.ButtonA && countTaps(input, emulator.ButtonA) == 1:
			partyMenuOpen = true
		case partyMenuOpen && b == emulator.ButtonDown:
			mem.data[mmap.PartyMenuCursorAddress]++
		case partyMenuOpen && b == emulator.ButtonUp:
			mem.data[mmap.PartyMenuCursorAddress]--
		}
	}

	res, err := ctrl.ResolveAction(context.Background(), game.Switch(2))
	if err != nil {
		t.Fatalf("timeout must not be an error, got %v", err)
	}
	if !res.Success || !res.TimedOut {
		t.Fatalf("expected success with timed_out flag, got %+v", res)
	}
	if res.SwitchedTo != 0 || res.SwitchedToSpecies != "" {
		t.Fatalf("an unresolved switch must not report an identity, got %+v", res)
	}
	if ctrl.TurnCount() != 0 {
		t.Fatalf("an unresolved turn must not advance the turn counter, got %d", ctrl.TurnCount())
	}
}

func TestResolveAction_SecondActionRejectedWhileResolving(t *testing.T) {
	_, _, ctrl, _ := battleFixture(t)
	ctrl.mu.Lock()
	defer ctrl.mu.Unlock()

	_, err := ctrl.ResolveAction(context.Background(), game.Attack(1))
	if !errors.Is(err, ErrActionInFlight) {
		t.Fatalf("expected ErrActionInFlight, got %v", err)
	}
}

func TestResolveAction_SwitchAttributesNoDamageDealt(t *testing.T) {
	mem, input, ctrl, mmap := battleFixture(t)
	partyMenuOpen := false
	input.onTap = func(b emulator.Button) {
		switch {
		case b == emulator.ButtonA && countTaps(input, emulator.ButtonA) == 1:
			partyMenuOpen = true
		case partyMenuOpen && b == emulator.ButtonDown:
			mem.data[mmap.PartyMenuCursorAddress]++
		case partyMenuOpen && b == emulator.ButtonUp:
			mem.data[mmap.PartyMenuCursorAddress]--
		case b == emulator.ButtonA && countTaps(input, emulator.ButtonA) == 3:
			// Switch completes and the enemy gets its free attack on
			// the incoming fighter (30 -> 22).
			mem.data[mmap.ActiveSlotAddress] = 1
			mem.put16(mmap.PartyAddresses[1]+uint32(mmap.Record.CurrentHP), 22)
		}
	}

	res, err := ctrl.ResolveAction(context.Background(), game.Switch(2))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !res.Success || res.TimedOut {
		t.Fatalf("expected clean resolution, got %+v", res)
	}
	if res.DamageDealt != 0 {
		t.Fatalf("a switch never deals damage, got %d", res.DamageDealt)
	}
	if res.DamageReceived != 8 {
		t.Fatalf("expected 8 damage on the incoming fighter (30->22), got %d", res.DamageReceived)
	}
	if res.SwitchedTo != 2 || res.SwitchedToSpecies != "Charmander" {
		t.Fatalf("unexpected switch identity: %+v", res)
	}
	if res.PlayerHP != 22 || res.PlayerMaxHP != 55 {
		t.Fatalf("unexpected player hp %d/%d", res.PlayerHP, res.PlayerMaxHP)
	}
}

func TestResolveAction_SwitchValidation(t *testing.T) {
	mem, _, ctrl, mmap := battleFixture(t)

	if _, err := ctrl.ResolveAction(context.Background(), game.Switch(7)); !errors.Is(err, ErrInvalidPartySlot) {
		t.Fatalf("expected ErrInvalidPartySlot, got %v", err)
	}
	if _, err := ctrl.ResolveAction(context.Background(), game.Switch(4)); !errors.Is(err, ErrEmptyPartySlot) {
		t.Fatalf("expected ErrEmptyPartySlot, got %v", err)
	}
	if _, err := ctrl.ResolveAction(context.Background(), game.Switch(1)); !errors.Is(err, ErrAlreadyActive) {
		t.Fatalf("expected ErrAlreadyActive, got %v", err)
	}

	mem.put16(mmap.PartyAddresses[1]+uint32(mmap.Record.CurrentHP), 0)
	if _, err := ctrl.ResolveAction(context.Background(), game.Switch(2)); !errors.Is(err, ErrFaintedPartySlot) {
		t.Fatalf("expected ErrFaintedPartySlot, got %v", err)
	}
}

func TestResolveAction_TransportFailureAborts(t *testing.T) {
	mem, input, ctrl, _ := battleFixture(t)
	input.onTap = func(b emulator.Button) {
		if b == emulator.ButtonA && countTaps(input, emulator.ButtonA) == 2 {
			mem.fail = true
		}
	}

	_, err := ctrl.ResolveAction(context.Background(), game.Attack(1))
	if !errors.Is(err, ErrTransport) {
		t.Fatalf("expected ErrTransport, got %v", err)
	}
}

func TestIsPrecondition(t *testing.T) {
	for _, e := range []error{ErrNotInBattle, ErrInvalidMoveSlot, ErrEmptyPartySlot, ErrAlreadyActive} {
		if !IsPrecondition(e) {
			t.Fatalf("%v must be a precondition error", e)
		}
	}
	if IsPrecondition(ErrTransport) || IsPrecondition(ErrActionInFlight) {
		t.Fatalf("transport and busy errors are not preconditions")
	}
}

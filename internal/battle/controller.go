package battle

import (
	"context"
	"errors"
	"fmt"
	"math"
	"sync"
	"sync/atomic"
	"time"

	"github.com/ioannis-mouratidis/ai-plays-pokemon/internal/emulator"
	"github.com/ioannis-mouratidis/ai-plays-pokemon/internal/game"
	"github.com/ioannis-mouratidis/ai-plays-pokemon/internal/snapshot"
)

var (
	// Precondition failures: the action was rejected before any input was
	// sent. Never retried.
	ErrNotInBattle      = errors.New("not currently in a battle")
	ErrInvalidMoveSlot  = errors.New("move slot must be between 1 and 4")
	ErrInvalidPartySlot = errors.New("party slot must be between 1 and 6")
	ErrEmptyMoveSlot    = errors.New("no move in the requested slot")
	ErrEmptyPartySlot   = errors.New("no pokemon in the requested slot")
	ErrFaintedPartySlot = errors.New("pokemon in the requested slot has fainted")
	ErrAlreadyActive    = errors.New("pokemon is already active in battle")
	ErrUnknownAction    = errors.New("unknown action type")

	// ErrActionInFlight rejects a second action while one is resolving.
	ErrActionInFlight = errors.New("another action is still resolving")

	// ErrTransport wraps read failures that survived the bounded retry
	// window and aborted the resolution.
	ErrTransport = errors.New("emulator transport failure")

	// ErrMenuNavigation reports that the party menu cursor could not be
	// steered to the requested position.
	ErrMenuNavigation = errors.New("could not navigate party menu to target position")

	// ErrTargetNotInMenu reports that the requested fighter was not found
	// in the party menu display order.
	ErrTargetNotInMenu = errors.New("target pokemon not found in party menu")
)

var preconditionErrors = []error{
	ErrNotInBattle, ErrInvalidMoveSlot, ErrInvalidPartySlot,
	ErrEmptyMoveSlot, ErrEmptyPartySlot, ErrFaintedPartySlot,
	ErrAlreadyActive, ErrUnknownAction,
}

// IsPrecondition reports whether err is an action-validation failure.
func IsPrecondition(err error) bool {
	for _, e := range preconditionErrors {
		if errors.Is(err, e) {
			return true
		}
	}
	return false
}

// Timings groups every delay the controller uses. Tests shrink these to
// keep resolution loops fast.
type Timings struct {
	// PollInterval is the fixed wait between resolution checks.
	PollInterval time.Duration
	// SettleDelay runs after the resolution predicate fires, letting
	// animations finish before the after-snapshot.
	SettleDelay time.Duration
	// MenuDelay waits for the move menu after selecting FIGHT.
	MenuDelay time.Duration
	// PartyMenuDelay waits for the party menu after selecting POKEMON.
	PartyMenuDelay time.Duration
	// CursorDelay separates individual cursor presses.
	CursorDelay time.Duration
	// ConfirmDelay runs after confirming a selection with A.
	ConfirmDelay time.Duration
	// AttackTimeout and SwitchTimeout are the polling ceilings.
	AttackTimeout time.Duration
	SwitchTimeout time.Duration
	// ReadRetries bounds consecutive transient read failures during a
	// resolution before the whole action aborts with ErrTransport.
	ReadRetries int
}

// DefaultTimings mirrors the pacing of the GBA battle UI.
func DefaultTimings() Timings {
	return Timings{
		PollInterval:   100 * time.Millisecond,
		SettleDelay:    500 * time.Millisecond,
		MenuDelay:      300 * time.Millisecond,
		PartyMenuDelay: 500 * time.Millisecond,
		CursorDelay:    100 * time.Millisecond,
		ConfirmDelay:   200 * time.Millisecond,
		AttackTimeout:  15 * time.Second,
		SwitchTimeout:  10 * time.Second,
		ReadRetries:    3,
	}
}

// Controller resolves one battle action at a time: it validates against a
// before-snapshot, sends the button sequence, polls until the action shows
// an effect (HP delta or battle end) and diffs before/after into a
// TurnResult. A mutual-exclusion gate rejects concurrent invocations since
// the emulator is a single shared mutable resource.
type Controller struct {
	mem      emulator.Memory
	input    emulator.Input
	reader   *snapshot.Reader
	detector *Detector
	mmap     snapshot.MemoryMap
	timings  Timings

	mu sync.Mutex
	// turns counts resolved actions in the current battle.
	turns atomic.Int64
}

// TurnCount reports how many actions have resolved in the current battle.
func (c *Controller) TurnCount() int { return int(c.turns.Load()) }

// ResetTurns zeroes the turn counter. Called when a new battle starts.
func (c *Controller) ResetTurns() { c.turns.Store(0) }

// NewController wires the controller over its collaborators.
func NewController(mem emulator.Memory, input emulator.Input, reader *snapshot.Reader, detector *Detector, mmap snapshot.MemoryMap, timings Timings) *Controller {
	return &Controller{mem: mem, input: input, reader: reader, detector: detector, mmap: mmap, timings: timings}
}

// turnState is the controller-internal view of one instant. Unlike the
// agent-visible snapshot it carries the raw enemy record: the diffing needs
// exact enemy HP, which never leaves this package.
type turnState struct {
	activeSlot int
	player     game.FighterRecord
	enemy      game.FighterRecord
}

// actionSeed carries the request through resolution into the result.
type actionSeed struct {
	action    game.ActionType
	moveSlot  int
	partySlot int
	// incoming is the pre-switch record of the fighter being switched in.
	// Damage received on a switch is measured against it, never against
	// the outgoing fighter (identity changed, so HP deltas across the
	// switch are not damage).
	incoming game.FighterRecord
}

// ResolveAction executes one attack or switch and returns its derived
// result. At most one action may be in flight; concurrent calls fail with
// ErrActionInFlight.
func (c *Controller) ResolveAction(ctx context.Context, action game.Action) (game.TurnResult, error) {
	if !c.mu.TryLock() {
		return game.TurnResult{}, ErrActionInFlight
	}
	defer c.mu.Unlock()

	switch action.Type {
	case game.ActionAttack:
		return c.attack(ctx, action.MoveSlot)
	case game.ActionSwitch:
		return c.switchTo(ctx, action.PartySlot)
	default:
		return game.TurnResult{}, ErrUnknownAction
	}
}

func (c *Controller) attack(ctx context.Context, moveSlot int) (game.TurnResult, error) {
	if moveSlot < 1 || moveSlot > 4 {
		return game.TurnResult{}, ErrInvalidMoveSlot
	}
	if !c.detector.InBattle(ctx) {
		return game.TurnResult{}, ErrNotInBattle
	}

	before, err := c.captureWithRetry(ctx)
	if err != nil {
		return game.TurnResult{}, err
	}
	moves, err := c.reader.Moves(ctx, before.activeSlot)
	if err != nil {
		return game.TurnResult{}, fmt.Errorf("%w: %s", ErrTransport, err)
	}
	occupied := false
	for _, m := range moves {
		if m.Slot == moveSlot {
			occupied = true
			break
		}
	}
	if !occupied {
		return game.TurnResult{}, ErrEmptyMoveSlot
	}

	if err := c.selectBattleMenu(ctx, battleMenuFight); err != nil {
		return game.TurnResult{}, err
	}
	if err := c.navigateGrid(ctx, c.moveMenuCursor(ctx), moveSlot); err != nil {
		return game.TurnResult{}, err
	}
	if err := c.input.Tap(ctx, emulator.ButtonA); err != nil {
		return game.TurnResult{}, fmt.Errorf("%w: %s", ErrTransport, err)
	}
	if err := c.sleep(ctx, c.timings.ConfirmDelay); err != nil {
		return game.TurnResult{}, err
	}

	seed := actionSeed{action: game.ActionAttack, moveSlot: moveSlot}
	return c.awaitResolution(ctx, before, c.timings.AttackTimeout, seed)
}

func (c *Controller) switchTo(ctx context.Context, partySlot int) (game.TurnResult, error) {
	if partySlot < 1 || partySlot > 6 {
		return game.TurnResult{}, ErrInvalidPartySlot
	}
	if !c.detector.InBattle(ctx) {
		return game.TurnResult{}, ErrNotInBattle
	}

	target, err := c.reader.PartyRecord(ctx, partySlot)
	if err != nil {
		return game.TurnResult{}, fmt.Errorf("%w: %s", ErrTransport, err)
	}
	if !target.Exists() {
		return game.TurnResult{}, ErrEmptyPartySlot
	}
	if !target.CanBattle() {
		return game.TurnResult{}, ErrFaintedPartySlot
	}
	activeSlot, err := c.reader.ActiveSlot(ctx)
	if err != nil {
		return game.TurnResult{}, fmt.Errorf("%w: %s", ErrTransport, err)
	}
	if partySlot == activeSlot {
		return game.TurnResult{}, ErrAlreadyActive
	}

	before, err := c.captureWithRetry(ctx)
	if err != nil {
		return game.TurnResult{}, err
	}

	if err := c.selectBattleMenu(ctx, battleMenuPokemon); err != nil {
		return game.TurnResult{}, err
	}

	// The party menu displays fighters in its own order after earlier
	// switches, so resolve the requested slot to a menu position by
	// matching the fighter's identity, not its slot number. Personality
	// is unique per fighter and disambiguates duplicate species.
	pos, err := c.findMenuPosition(ctx, target)
	if err != nil {
		return game.TurnResult{}, err
	}
	if err := c.navigateParty(ctx, pos); err != nil {
		return game.TurnResult{}, err
	}
	// Select the fighter, then confirm SWITCH on its submenu.
	if err := c.input.Tap(ctx, emulator.ButtonA); err != nil {
		return game.TurnResult{}, fmt.Errorf("%w: %s", ErrTransport, err)
	}
	if err := c.sleep(ctx, c.timings.ConfirmDelay); err != nil {
		return game.TurnResult{}, err
	}
	if err := c.input.Tap(ctx, emulator.ButtonA); err != nil {
		return game.TurnResult{}, fmt.Errorf("%w: %s", ErrTransport, err)
	}
	if err := c.sleep(ctx, c.timings.ConfirmDelay); err != nil {
		return game.TurnResult{}, err
	}

	seed := actionSeed{action: game.ActionSwitch, partySlot: partySlot, incoming: target}
	return c.awaitResolution(ctx, before, c.timings.SwitchTimeout, seed)
}

// awaitResolution polls on a fixed interval until the resolution predicate
// fires or the ceiling elapses. Transient read failures are retried up to
// ReadRetries consecutive times before the resolution aborts. A ceiling
// reached without the predicate firing is a terminal outcome, not an error:
// a zero-damage move with no visible effect is indistinguishable from a
// stuck emulator, so the caller gets timed_out=true with zero deltas and
// decides what to do next.
func (c *Controller) awaitResolution(ctx context.Context, before turnState, ceiling time.Duration, seed actionSeed) (game.TurnResult, error) {
	deadline := time.Now().Add(ceiling)
	readFailures := 0
	for time.Now().Before(deadline) {
		if err := c.sleep(ctx, c.timings.PollInterval); err != nil {
			return game.TurnResult{}, err
		}
		st, err := c.captureTurnState(ctx)
		if err != nil {
			readFailures++
			if readFailures > c.timings.ReadRetries {
				return game.TurnResult{}, fmt.Errorf("%w: %s", ErrTransport, err)
			}
			continue
		}
		readFailures = 0

		ended := !c.detector.InBattle(ctx)
		if ended || c.resolvedBy(before, st, seed) {
			if err := c.sleep(ctx, c.timings.SettleDelay); err != nil {
				return game.TurnResult{}, err
			}
			after, err := c.captureWithRetry(ctx)
			if err != nil {
				return game.TurnResult{}, err
			}
			return c.derive(ctx, before, after, seed), nil
		}
	}
	return c.timeoutResult(ctx, before, seed), nil
}

// resolvedBy is the resolution predicate: either side's HP moved, or (for a
// switch) the active slot changed.
func (c *Controller) resolvedBy(before, st turnState, seed actionSeed) bool {
	if st.enemy.CurrentHP != before.enemy.CurrentHP {
		return true
	}
	if seed.action == game.ActionSwitch {
		return st.activeSlot != before.activeSlot
	}
	return st.player.CurrentHP != before.player.CurrentHP
}

// derive diffs before/after into the turn result. Damage floors at zero; a
// switch deals no damage by convention and measures damage received against
// the incoming fighter's pre-switch HP.
func (c *Controller) derive(ctx context.Context, before, after turnState, seed actionSeed) game.TurnResult {
	res := game.TurnResult{
		Success:  true,
		Action:   seed.action,
		MoveSlot: seed.moveSlot,
	}

	dealt := before.enemy.CurrentHP - after.enemy.CurrentHP
	if dealt < 0 {
		dealt = 0
	}

	playerBase := before.player
	if seed.action == game.ActionSwitch {
		dealt = 0
		playerBase = seed.incoming
		res.SwitchedTo = seed.partySlot
		res.SwitchedToSpecies = game.SpeciesName(seed.incoming.SpeciesID)
	}
	received := playerBase.CurrentHP - after.player.CurrentHP
	if received < 0 {
		received = 0
	}

	res.DamageDealt = dealt
	res.DamageReceived = received
	res.PlayerHP = after.player.CurrentHP
	res.PlayerMaxHP = after.player.MaxHP
	res.EnemyHPPercent = enemyPercent(after.enemy)
	res.PlayerFainted = playerBase.CurrentHP > 0 && after.player.CurrentHP == 0
	res.EnemyFainted = before.enemy.CurrentHP > 0 && after.enemy.CurrentHP == 0
	res.PlayerStatus = after.player.Status()
	res.EnemyStatus = after.enemy.Status()
	res.PlayerStatusChanged = playerBase.Status() != after.player.Status()
	res.EnemyStatusChanged = before.enemy.Status() != after.enemy.Status()
	res.BattleActive = c.detector.InBattle(ctx)
	c.countTurn(res.BattleActive)
	return res
}

func (c *Controller) countTurn(battleActive bool) {
	if battleActive {
		c.turns.Add(1)
	} else {
		c.turns.Store(0)
	}
}

// timeoutResult reports the no-detectable-effect outcome: success with the
// timed_out flag set and zero deltas. The switch identity stays empty because
// an unresolved switch may never have taken effect, and an unresolved turn
// does not advance the turn counter.
func (c *Controller) timeoutResult(ctx context.Context, before turnState, seed actionSeed) game.TurnResult {
	res := game.TurnResult{
		Success:  true,
		TimedOut: true,
		Action:   seed.action,
		MoveSlot: seed.moveSlot,
	}
	res.PlayerHP = before.player.CurrentHP
	res.PlayerMaxHP = before.player.MaxHP
	res.EnemyHPPercent = enemyPercent(before.enemy)
	res.PlayerStatus = before.player.Status()
	res.EnemyStatus = before.enemy.Status()
	res.BattleActive = c.detector.InBattle(ctx)
	return res
}

// captureTurnState reads the raw pre/post state for diffing: active slot,
// the on-field party record and the lead enemy record.
func (c *Controller) captureTurnState(ctx context.Context) (turnState, error) {
	slot, err := c.reader.ActiveSlot(ctx)
	if err != nil {
		return turnState{}, err
	}
	player, err := c.reader.PartyRecord(ctx, slot)
	if err != nil {
		return turnState{}, err
	}
	enemy, err := snapshot.ReadFighterAt(ctx, c.mem, c.mmap.EnemyAddresses[0], c.mmap.Record)
	if err != nil {
		return turnState{}, err
	}
	return turnState{activeSlot: slot, player: player, enemy: enemy}, nil
}

func (c *Controller) captureWithRetry(ctx context.Context) (turnState, error) {
	var lastErr error
	for attempt := 0; attempt <= c.timings.ReadRetries; attempt++ {
		st, err := c.captureTurnState(ctx)
		if err == nil {
			return st, nil
		}
		lastErr = err
		if err := c.sleep(ctx, c.timings.PollInterval); err != nil {
			return turnState{}, err
		}
	}
	return turnState{}, fmt.Errorf("%w: %s", ErrTransport, lastErr)
}

func (c *Controller) sleep(ctx context.Context, d time.Duration) error {
	select {
	case <-time.After(d):
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func enemyPercent(rec game.FighterRecord) float64 {
	if rec.MaxHP <= 0 {
		return 0
	}
	return math.Round(float64(rec.CurrentHP)/float64(rec.MaxHP)*1000) / 10
}

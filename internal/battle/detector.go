package battle

import (
	"context"
	"time"

	"github.com/ioannis-mouratidis/ai-plays-pokemon/internal/game"
	"github.com/ioannis-mouratidis/ai-plays-pokemon/internal/snapshot"
)

// Transition marks a battle starting or ending between two checks.
type Transition string

const (
	TransitionStarted Transition = "battle_started"
	TransitionEnded   Transition = "battle_ended"
)

// Detector watches the battle-active flag and classifies battles. It keeps
// only the last observed active state, used for edge detection; everything
// else delegates to the snapshot reader.
type Detector struct {
	reader     *snapshot.Reader
	lastActive bool
}

// NewDetector builds a detector over the given reader.
func NewDetector(reader *snapshot.Reader) *Detector {
	return &Detector{reader: reader}
}

// InBattle reports whether a battle is running. Read failures count as "not
// in battle"; callers that need to distinguish use the reader directly.
func (d *Detector) InBattle(ctx context.Context) bool {
	active, err := d.reader.Active(ctx)
	return err == nil && active
}

// Kind returns the running battle's kind.
func (d *Detector) Kind(ctx context.Context) game.BattleKind {
	kind, err := d.reader.Kind(ctx)
	if err != nil {
		return game.BattleUnknown
	}
	return kind
}

// CanFlee reports whether running is possible (wild battles only).
func (d *Detector) CanFlee(ctx context.Context) bool {
	return d.Kind(ctx) == game.BattleWild
}

// DetectTransition compares the current active flag against the previous
// check and reports an edge, if any. Not safe for concurrent use; the
// watcher is its only repeated caller.
func (d *Detector) DetectTransition(ctx context.Context) (Transition, bool) {
	current := d.InBattle(ctx)
	prev := d.lastActive
	d.lastActive = current
	switch {
	case current && !prev:
		return TransitionStarted, true
	case !current && prev:
		return TransitionEnded, true
	default:
		return "", false
	}
}

// WaitForBattleStart polls until a battle begins or the timeout elapses.
func (d *Detector) WaitForBattleStart(ctx context.Context, timeout, interval time.Duration) bool {
	return d.waitFor(ctx, timeout, interval, true)
}

// WaitForBattleEnd polls until the battle ends or the timeout elapses.
func (d *Detector) WaitForBattleEnd(ctx context.Context, timeout, interval time.Duration) bool {
	return d.waitFor(ctx, timeout, interval, false)
}

func (d *Detector) waitFor(ctx context.Context, timeout, interval time.Duration, want bool) bool {
	deadline := time.Now().Add(timeout)
	for time.Now().Before(deadline) {
		if d.InBattle(ctx) == want {
			return true
		}
		select {
		case <-time.After(interval):
		case <-ctx.Done():
			return false
		}
	}
	return false
}

// Status assembles the battle metadata view.
func (d *Detector) Status(ctx context.Context) game.BattleStatus {
	if !d.InBattle(ctx) {
		return game.BattleStatus{InBattle: false, Kind: game.BattleNone}
	}
	st := game.BattleStatus{
		InBattle: true,
		Kind:     d.Kind(ctx),
	}
	st.CanFlee = st.Kind == game.BattleWild
	if total, alive, err := d.reader.EnemyCounts(ctx); err == nil {
		st.EnemyPartyCount = total
		st.EnemyAliveCount = alive
	}
	return st
}

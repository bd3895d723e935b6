package watch

import (
	"context"
	"testing"
	"time"

	"github.com/ioannis-mouratidis/ai-plays-pokemon/internal/battle"
	"github.com/ioannis-mouratidis/ai-plays-pokemon/internal/game"
)

type scriptedDetector struct {
	transitions []battle.Transition
	kind        game.BattleKind
}

func (d *scriptedDetector) DetectTransition(context.Context) (battle.Transition, bool) {
	if len(d.transitions) == 0 {
		return "", false
	}
	tr := d.transitions[0]
	d.transitions = d.transitions[1:]
	return tr, true
}

func (d *scriptedDetector) Kind(context.Context) game.BattleKind { return d.kind }

type recordingRepo struct {
	started  []*game.EncounterRecord
	finished []string
}

func (r *recordingRepo) StartEncounter(rec *game.EncounterRecord) error {
	r.started = append(r.started, rec)
	return nil
}

func (r *recordingRepo) FinishEncounter(uuid string) error {
	r.finished = append(r.finished, uuid)
	return nil
}

func TestWatcher_BroadcastsAndPersistsEncounter(t *testing.T) {
	det := &scriptedDetector{
		transitions: []battle.Transition{battle.TransitionStarted, battle.TransitionEnded},
		kind:        game.BattleWild,
	}
	repo := &recordingRepo{}
	w := NewWatcher(det, repo, time.Millisecond)

	ch, cancel := w.Subscribe()
	defer cancel()

	ctx := context.Background()
	w.check(ctx)
	w.check(ctx)

	started := <-ch
	if started.Type != battle.TransitionStarted {
		t.Fatalf("expected start event first, got %+v", started)
	}
	if started.BattleKind != game.BattleWild {
		t.Fatalf("expected wild kind on start event, got %q", started.BattleKind)
	}
	if started.EncounterUUID == "" {
		t.Fatalf("start event must carry an encounter uuid")
	}

	ended := <-ch
	if ended.Type != battle.TransitionEnded {
		t.Fatalf("expected end event second, got %+v", ended)
	}
	if ended.EncounterUUID != started.EncounterUUID {
		t.Fatalf("end event must reference the started encounter")
	}

	if len(repo.started) != 1 || repo.started[0].EncounterUUID != started.EncounterUUID {
		t.Fatalf("expected one persisted encounter start, got %+v", repo.started)
	}
	if len(repo.finished) != 1 || repo.finished[0] != started.EncounterUUID {
		t.Fatalf("expected the encounter to be finished, got %+v", repo.finished)
	}
}

func TestWatcher_NoTransitionNoEvent(t *testing.T) {
	w := NewWatcher(&scriptedDetector{}, &recordingRepo{}, time.Millisecond)
	ch, cancel := w.Subscribe()
	defer cancel()

	w.check(context.Background())

	select {
	case ev := <-ch:
		t.Fatalf("unexpected event %+v", ev)
	default:
	}
}

func TestWatcher_CancelledSubscriberIsDropped(t *testing.T) {
	det := &scriptedDetector{
		transitions: []battle.Transition{battle.TransitionStarted},
		kind:        game.BattleWild,
	}
	w := NewWatcher(det, nil, time.Millisecond)
	ch, cancel := w.Subscribe()
	cancel()

	// Broadcasting after cancel must not panic on the closed channel.
	w.check(context.Background())

	if _, ok := <-ch; ok {
		t.Fatalf("cancelled subscription channel must be closed")
	}
}

func TestWatcher_SlowSubscriberIsSkipped(t *testing.T) {
	det := &scriptedDetector{kind: game.BattleWild}
	for i := 0; i < 20; i++ {
		det.transitions = append(det.transitions, battle.TransitionStarted, battle.TransitionEnded)
	}
	w := NewWatcher(det, nil, time.Millisecond)
	_, cancel := w.Subscribe()
	defer cancel()

	// More events than the subscriber buffer holds; check must not block.
	done := make(chan struct{})
	go func() {
		for i := 0; i < 40; i++ {
			w.check(context.Background())
		}
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatalf("broadcast blocked on a slow subscriber")
	}
}

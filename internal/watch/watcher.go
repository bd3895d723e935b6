package watch

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/ioannis-mouratidis/ai-plays-pokemon/internal/battle"
	"github.com/ioannis-mouratidis/ai-plays-pokemon/internal/constants"
	"github.com/ioannis-mouratidis/ai-plays-pokemon/internal/game"
	"github.com/ioannis-mouratidis/ai-plays-pokemon/internal/logging"
)

// Event is a battle transition observed by the watcher.
type Event struct {
	Type          battle.Transition `json:"type"`
	BattleKind    game.BattleKind   `json:"battle_kind"`
	EncounterUUID string            `json:"encounter_uuid"`
	At            time.Time         `json:"at"`
}

// detector is the transition source the watcher polls. *battle.Detector
// satisfies it.
type detector interface {
	DetectTransition(ctx context.Context) (battle.Transition, bool)
	Kind(ctx context.Context) game.BattleKind
}

// recorder persists encounters. Satisfied by storage.Repository; the
// watcher only needs these two methods.
type recorder interface {
	StartEncounter(rec *game.EncounterRecord) error
	FinishEncounter(uuid string) error
}

// Watcher polls the battle detector on an interval, persists detected
// encounters and fans transition events out to subscribers. Slow
// subscribers are skipped, never waited on.
type Watcher struct {
	detector detector
	repo     recorder
	interval time.Duration

	mu        sync.Mutex
	subs      map[chan Event]struct{}
	encounter string
}

func NewWatcher(d detector, repo recorder, interval time.Duration) *Watcher {
	return &Watcher{
		detector: d,
		repo:     repo,
		interval: interval,
		subs:     make(map[chan Event]struct{}),
	}
}

// Subscribe registers a buffered event channel. The returned cancel
// function removes and closes it.
func (w *Watcher) Subscribe() (<-chan Event, func()) {
	ch := make(chan Event, 8)
	w.mu.Lock()
	w.subs[ch] = struct{}{}
	w.mu.Unlock()

	cancel := func() {
		w.mu.Lock()
		if _, ok := w.subs[ch]; ok {
			delete(w.subs, ch)
			close(ch)
		}
		w.mu.Unlock()
	}
	return ch, cancel
}

// Run polls until ctx is cancelled. It is meant to run in its own
// goroutine for the lifetime of the process.
func (w *Watcher) Run(ctx context.Context) {
	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			w.check(ctx)
		}
	}
}

func (w *Watcher) check(ctx context.Context) {
	tr, changed := w.detector.DetectTransition(ctx)
	if !changed {
		return
	}

	ev := Event{Type: tr, At: time.Now()}
	switch tr {
	case battle.TransitionStarted:
		ev.BattleKind = w.detector.Kind(ctx)
		ev.EncounterUUID = uuid.NewString()
		w.mu.Lock()
		w.encounter = ev.EncounterUUID
		w.mu.Unlock()
		if w.repo != nil {
			rec := &game.EncounterRecord{
				EncounterUUID: ev.EncounterUUID,
				Kind:          string(ev.BattleKind),
				StartedAt:     ev.At,
			}
			if err := w.repo.StartEncounter(rec); err != nil {
				logging.Error("failed to record encounter start", err, logging.Fields{constants.LogFieldEncounter: ev.EncounterUUID})
			}
		}
		logging.Info("battle started", logging.Fields{
			constants.LogFieldEncounter: ev.EncounterUUID,
			constants.LogFieldKind:      string(ev.BattleKind),
		})
	case battle.TransitionEnded:
		w.mu.Lock()
		ev.EncounterUUID = w.encounter
		w.encounter = ""
		w.mu.Unlock()
		if w.repo != nil && ev.EncounterUUID != "" {
			if err := w.repo.FinishEncounter(ev.EncounterUUID); err != nil {
				logging.Error("failed to record encounter end", err, logging.Fields{constants.LogFieldEncounter: ev.EncounterUUID})
			}
		}
		logging.Info("battle ended", logging.Fields{constants.LogFieldEncounter: ev.EncounterUUID})
	}

	w.broadcast(ev)
}

func (w *Watcher) broadcast(ev Event) {
	w.mu.Lock()
	defer w.mu.Unlock()
	for ch := range w.subs {
		select {
		case ch <- ev:
		default:
		}
	}
}

package battle

import (
	"context"
	"testing"

	"github.com/ioannis-mouratidis/ai-plays-pokemon/internal/game"
	"github.com/ioannis-mouratidis/ai-plays-pokemon/internal/snapshot"
)

func detectorFixture(t *testing.T) (*fakeMemory, *Detector, snapshot.MemoryMap) {
	t.Helper()
	mem := newFakeMemory()
	mmap := snapshot.DefaultMemoryMap()
	return mem, NewDetector(snapshot.NewReader(mem, mmap)), mmap
}

func TestDetector_TransitionEdges(t *testing.T) {
	mem, d, mmap := detectorFixture(t)
	ctx := context.Background()

	if _, changed := d.DetectTransition(ctx); changed {
		t.Fatalf("no transition expected while idle")
	}

	mem.data[mmap.BattleFlagsAddress] = 1
	tr, changed := d.DetectTransition(ctx)
	if !changed || tr != TransitionStarted {
		t.Fatalf("expected battle start transition, got %q changed=%v", tr, changed)
	}
	if _, changed := d.DetectTransition(ctx); changed {
		t.Fatalf("no transition expected while the battle keeps running")
	}

	mem.data[mmap.BattleFlagsAddress] = 0
	tr, changed = d.DetectTransition(ctx)
	if !changed || tr != TransitionEnded {
		t.Fatalf("expected battle end transition, got %q changed=%v", tr, changed)
	}
}

func TestDetector_KindAndFlee(t *testing.T) {
	mem, d, mmap := detectorFixture(t)
	ctx := context.Background()

	mem.data[mmap.BattleFlagsAddress] = 1
	if kind := d.Kind(ctx); kind != game.BattleWild {
		t.Fatalf("expected wild battle, got %q", kind)
	}
	if !d.CanFlee(ctx) {
		t.Fatalf("fleeing a wild battle must be allowed")
	}

	mem.put32(mmap.BattleTypeAddress, 0x8)
	if kind := d.Kind(ctx); kind != game.BattleTrainer {
		t.Fatalf("expected trainer battle, got %q", kind)
	}
	if d.CanFlee(ctx) {
		t.Fatalf("fleeing a trainer battle must not be allowed")
	}
}

func TestDetector_InBattleReadFailure(t *testing.T) {
	mem, d, mmap := detectorFixture(t)
	mem.data[mmap.BattleFlagsAddress] = 1
	mem.fail = true

	if d.InBattle(context.Background()) {
		t.Fatalf("unreadable state must report not-in-battle")
	}
}

func TestDetector_StatusCountsEnemies(t *testing.T) {
	mem, d, mmap := detectorFixture(t)
	mem.data[mmap.BattleFlagsAddress] = 1
	mem.put32(mmap.BattleTypeAddress, 0x8)
	mem.putFighter(mmap.EnemyAddresses[0], mmap.Record, 0xB1, 19, 18, 50, 50, [4]uint16{33, 0, 0, 0})
	mem.putFighter(mmap.EnemyAddresses[1], mmap.Record, 0xB2, 16, 17, 0, 40, [4]uint16{16, 0, 0, 0})

	st := d.Status(context.Background())
	if !st.InBattle {
		t.Fatalf("expected in-battle status")
	}
	if st.Kind != game.BattleTrainer {
		t.Fatalf("expected trainer kind, got %q", st.Kind)
	}
	if st.EnemyPartyCount != 2 || st.EnemyAliveCount != 1 {
		t.Fatalf("expected 2 enemies with 1 alive, got %d/%d", st.EnemyPartyCount, st.EnemyAliveCount)
	}
}

package game

import (
	"reflect"
	"testing"
)

func TestStatusFromByte(t *testing.T) {
	cases := []struct {
		b    byte
		want StatusCondition
	}{
		{0x00, StatusHealthy},
		{0x01, StatusAsleep},
		{0x02, StatusPoisoned},
		{0x03, StatusBurned},
		{0x04, StatusFrozen},
		{0x05, StatusParalyzed},
		{0x06, StatusBadlyPoisoned},
		{0x07, StatusUnknown},
		// High bits outside the condition mask are ignored.
		{0x42, StatusPoisoned},
	}
	for _, tc := range cases {
		if got := StatusFromByte(tc.b); got != tc.want {
			t.Fatalf("byte %#x: expected %q, got %q", tc.b, tc.want, got)
		}
	}
}

func TestFighterRecord_ExistsAndCanBattle(t *testing.T) {
	empty := FighterRecord{}
	if empty.Exists() || empty.CanBattle() {
		t.Fatalf("species 0 must not exist")
	}

	fainted := FighterRecord{SpeciesID: 25, MaxHP: 60}
	if !fainted.Exists() {
		t.Fatalf("fainted fighter must still exist")
	}
	if fainted.CanBattle() {
		t.Fatalf("fainted fighter must not be able to battle")
	}

	healthy := FighterRecord{SpeciesID: 25, CurrentHP: 45, MaxHP: 60}
	if !healthy.CanBattle() {
		t.Fatalf("healthy fighter must be able to battle")
	}
}

// The opponent view must stay limited to what a player sees on screen. The
// field set is pinned here so exact HP, stats or moves can never be added to
// the type without this test failing.
func TestOpponentSnapshot_OnlyVisibleFields(t *testing.T) {
	visible := map[string]bool{
		"Exists":    true,
		"Species":   true,
		"Level":     true,
		"HPBar":     true,
		"HPPercent": true,
		"Status":    true,
		"CanBattle": true,
	}
	typ := reflect.TypeOf(OpponentSnapshot{})
	if typ.NumField() != len(visible) {
		t.Fatalf("expected %d opponent fields, got %d", len(visible), typ.NumField())
	}
	for i := 0; i < typ.NumField(); i++ {
		name := typ.Field(i).Name
		if !visible[name] {
			t.Fatalf("opponent view must not carry field %q", name)
		}
	}
}

func TestSpeciesName_Fallback(t *testing.T) {
	if SpeciesName(25) != "Pikachu" {
		t.Fatalf("expected Pikachu for species 25")
	}
	if SpeciesName(999) != "Unknown (999)" {
		t.Fatalf("unexpected fallback: %q", SpeciesName(999))
	}
}

func TestMoveName_Fallback(t *testing.T) {
	if MoveName(85) != "Thunderbolt" {
		t.Fatalf("expected Thunderbolt for move 85")
	}
	if MoveName(999) != "Move 999" {
		t.Fatalf("unexpected fallback: %q", MoveName(999))
	}
}

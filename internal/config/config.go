package config

import (
	"encoding/json"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/ioannis-mouratidis/ai-plays-pokemon/internal/snapshot"
	"github.com/kelseyhightower/envconfig"
)

// Settings holds the bridge configuration, loaded from BRIDGE_* environment
// variables.
type Settings struct {
	// HTTP server
	Addr      string `envconfig:"ADDR" default:":8090"`
	AuthToken string `envconfig:"AUTH_TOKEN"`
	LogLevel  string `envconfig:"LOG_LEVEL" default:"info"`

	// Emulator
	MgbaURL       string `envconfig:"MGBA_URL" default:"http://localhost:5000"`
	ScreenshotDir string `envconfig:"SCREENSHOT_DIR"`

	// Persistence
	DBPath string `envconfig:"DB" default:"battle-bridge.db"`

	// LayoutPath points to an optional JSON memory map for non-default
	// game versions. Empty means the built-in FireRed v1.0 layout.
	LayoutPath string `envconfig:"LAYOUT"`

	// Turn resolution pacing
	PollInterval  time.Duration `envconfig:"POLL_INTERVAL" default:"100ms"`
	SettleDelay   time.Duration `envconfig:"SETTLE_DELAY" default:"500ms"`
	AttackTimeout time.Duration `envconfig:"ATTACK_TIMEOUT" default:"15s"`
	SwitchTimeout time.Duration `envconfig:"SWITCH_TIMEOUT" default:"10s"`

	// Battle transition polling
	WatchInterval time.Duration `envconfig:"WATCH_INTERVAL" default:"500ms"`
}

// Load reads settings from the environment.
func Load() (*Settings, error) {
	var cfg Settings
	if err := envconfig.Process("bridge", &cfg); err != nil {
		return nil, fmt.Errorf("loading bridge configuration: %w", err)
	}
	return &cfg, nil
}

// hexAddr is a uint32 address written as a "0x"-prefixed hex string in the
// layout file.
type hexAddr uint32

func (h *hexAddr) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	v, err := strconv.ParseUint(strings.TrimPrefix(strings.ToLower(s), "0x"), 16, 32)
	if err != nil {
		return fmt.Errorf("invalid address %q: %w", s, err)
	}
	*h = hexAddr(v)
	return nil
}

// layoutFile is the on-disk memory map schema. Addresses are hex strings,
// offsets are byte positions within the fighter record.
type layoutFile struct {
	GameCode  string `json:"game_code"`
	Addresses struct {
		PartyBase        hexAddr `json:"party_base"`
		EnemyBase        hexAddr `json:"enemy_base"`
		ActiveSlot       hexAddr `json:"active_slot"`
		BattleFlags      hexAddr `json:"battle_flags"`
		BattleType       hexAddr `json:"battle_type"`
		BattleMenuCursor hexAddr `json:"battle_menu_cursor"`
		MoveMenuCursor   hexAddr `json:"move_menu_cursor"`
		PartyMenuCursor  hexAddr `json:"party_menu_cursor"`
	} `json:"addresses"`
	Offsets *snapshot.RecordLayout `json:"offsets"`
}

// LoadMemoryMap reads a memory map from path, or returns the built-in
// FireRed v1.0 layout when path is empty.
func LoadMemoryMap(path string) (snapshot.MemoryMap, error) {
	if path == "" {
		return snapshot.DefaultMemoryMap(), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return snapshot.MemoryMap{}, fmt.Errorf("reading memory map: %w", err)
	}
	var lf layoutFile
	if err := json.Unmarshal(data, &lf); err != nil {
		return snapshot.MemoryMap{}, fmt.Errorf("parsing memory map %s: %w", path, err)
	}

	m := snapshot.DefaultMemoryMap()
	a := lf.Addresses
	if a.ActiveSlot != 0 {
		m.ActiveSlotAddress = uint32(a.ActiveSlot)
	}
	if a.BattleFlags != 0 {
		m.BattleFlagsAddress = uint32(a.BattleFlags)
	}
	if a.BattleType != 0 {
		m.BattleTypeAddress = uint32(a.BattleType)
	}
	if a.BattleMenuCursor != 0 {
		m.BattleMenuCursorAddress = uint32(a.BattleMenuCursor)
	}
	if a.MoveMenuCursor != 0 {
		m.MoveMenuCursorAddress = uint32(a.MoveMenuCursor)
	}
	if a.PartyMenuCursor != 0 {
		m.PartyMenuCursorAddress = uint32(a.PartyMenuCursor)
	}
	if a.PartyBase != 0 {
		for i := 0; i < 6; i++ {
			m.PartyAddresses[i] = uint32(a.PartyBase) + uint32(i*snapshot.RecordSize)
		}
	}
	if a.EnemyBase != 0 {
		for i := 0; i < 6; i++ {
			m.EnemyAddresses[i] = uint32(a.EnemyBase) + uint32(i*snapshot.RecordSize)
		}
	}
	if lf.Offsets != nil {
		m.Record = *lf.Offsets
	}
	if err := m.Record.Validate(); err != nil {
		return snapshot.MemoryMap{}, fmt.Errorf("invalid memory map %s: %w", path, err)
	}
	return m, nil
}

package battle

import (
	"context"
	"fmt"

	"github.com/ioannis-mouratidis/ai-plays-pokemon/internal/emulator"
	"github.com/ioannis-mouratidis/ai-plays-pokemon/internal/game"
)

// battleMenuOption is a 1-based position in the 2x2 battle menu grid:
//
//	FIGHT(1)   BAG(2)
//	POKEMON(3) RUN(4)
//
// The move menu uses the same grid with move slots 1-4.
type battleMenuOption int

const (
	battleMenuFight   battleMenuOption = 1
	battleMenuBag     battleMenuOption = 2
	battleMenuPokemon battleMenuOption = 3
	battleMenuRun     battleMenuOption = 4
)

// battleMenuCursor reads the battle menu cursor, mapping the stored byte
// 0-3 to position 1-4. Unreadable or out-of-range values assume FIGHT, the
// cursor's resting position.
func (c *Controller) battleMenuCursor(ctx context.Context) int {
	v, err := c.mem.Read8(ctx, c.mmap.BattleMenuCursorAddress)
	if err != nil || v > 3 {
		return 1
	}
	return int(v) + 1
}

// moveMenuCursor reads the move menu cursor with the same 0-3 to 1-4
// mapping and the same slot-1 fallback.
func (c *Controller) moveMenuCursor(ctx context.Context) int {
	v, err := c.mem.Read8(ctx, c.mmap.MoveMenuCursorAddress)
	if err != nil || v > 3 {
		return 1
	}
	return int(v) + 1
}

// partyMenuCursor reads the party menu cursor position 0-5. The byte also
// takes the value 7 on CANCEL; that and read failures fall back to 0.
func (c *Controller) partyMenuCursor(ctx context.Context) int {
	v, err := c.mem.Read8(ctx, c.mmap.PartyMenuCursorAddress)
	if err != nil || v > 5 {
		return 0
	}
	return int(v)
}

// selectBattleMenu steers the battle menu cursor to opt and confirms it,
// then waits for the submenu to open.
func (c *Controller) selectBattleMenu(ctx context.Context, opt battleMenuOption) error {
	if err := c.navigateGrid(ctx, c.battleMenuCursor(ctx), int(opt)); err != nil {
		return err
	}
	if err := c.input.Tap(ctx, emulator.ButtonA); err != nil {
		return fmt.Errorf("%w: %s", ErrTransport, err)
	}
	wait := c.timings.MenuDelay
	if opt == battleMenuPokemon {
		wait = c.timings.PartyMenuDelay
	}
	return c.sleep(ctx, wait)
}

// navigateGrid moves a 2x2 grid cursor from position from to position to,
// row first then column.
func (c *Controller) navigateGrid(ctx context.Context, from, to int) error {
	fromRow, fromCol := (from-1)/2, (from-1)%2
	toRow, toCol := (to-1)/2, (to-1)%2

	if toRow != fromRow {
		btn := emulator.ButtonDown
		if toRow < fromRow {
			btn = emulator.ButtonUp
		}
		if err := c.tapCursor(ctx, btn); err != nil {
			return err
		}
	}
	if toCol != fromCol {
		btn := emulator.ButtonRight
		if toCol < fromCol {
			btn = emulator.ButtonLeft
		}
		if err := c.tapCursor(ctx, btn); err != nil {
			return err
		}
	}
	return nil
}

// navigateParty steers the linear party menu cursor to position target
// (0-based) and verifies it landed, retrying twice before giving up.
func (c *Controller) navigateParty(ctx context.Context, target int) error {
	const attempts = 3
	for attempt := 0; attempt < attempts; attempt++ {
		cur := c.partyMenuCursor(ctx)
		for cur != target {
			btn := emulator.ButtonDown
			if target < cur {
				btn = emulator.ButtonUp
			}
			if err := c.tapCursor(ctx, btn); err != nil {
				return err
			}
			if target < cur {
				cur--
			} else {
				cur++
			}
		}
		if err := c.sleep(ctx, c.timings.ConfirmDelay); err != nil {
			return err
		}
		if c.partyMenuCursor(ctx) == target {
			return nil
		}
	}
	return ErrMenuNavigation
}

// findMenuPosition resolves a fighter to its 0-based position in the party
// menu display order by matching its personality value.
func (c *Controller) findMenuPosition(ctx context.Context, target game.FighterRecord) (int, error) {
	for pos := 1; pos <= 6; pos++ {
		rec, err := c.reader.PartyRecord(ctx, pos)
		if err != nil {
			return 0, fmt.Errorf("%w: %s", ErrTransport, err)
		}
		if rec.Exists() && rec.Personality == target.Personality && rec.SpeciesID == target.SpeciesID {
			return pos - 1, nil
		}
	}
	return 0, ErrTargetNotInMenu
}

func (c *Controller) tapCursor(ctx context.Context, btn emulator.Button) error {
	if err := c.input.Tap(ctx, btn); err != nil {
		return fmt.Errorf("%w: %s", ErrTransport, err)
	}
	return c.sleep(ctx, c.timings.CursorDelay)
}

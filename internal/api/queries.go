package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/ioannis-mouratidis/ai-plays-pokemon/internal/constants"
	"github.com/ioannis-mouratidis/ai-plays-pokemon/internal/dedupe"
	"github.com/ioannis-mouratidis/ai-plays-pokemon/internal/game"
)

// GetStatus reports battle metadata: active flag, kind, flee permission and
// enemy party counts.
func (h *BridgeHandler) GetStatus(c *gin.Context) {
	v, err, _ := dedupe.SnapshotGroup.Do("status", func() (interface{}, error) {
		return h.detector.Status(c.Request.Context()), nil
	})
	if err != nil {
		c.JSON(http.StatusBadGateway, gin.H{constants.JSONKeyError: constants.ErrFailedReadState})
		return
	}
	st := v.(game.BattleStatus)
	if st.InBattle {
		st.TurnCount = h.controller.TurnCount()
	}
	c.JSON(http.StatusOK, st)
}

// GetBattle returns one snapshot of the whole battle: both sides' views
// captured at the same instant.
func (h *BridgeHandler) GetBattle(c *gin.Context) {
	v, err, _ := dedupe.SnapshotGroup.Do("battle", func() (interface{}, error) {
		return h.reader.Capture(c.Request.Context())
	})
	if err != nil {
		c.JSON(http.StatusBadGateway, gin.H{constants.JSONKeyError: constants.ErrFailedReadState})
		return
	}
	c.JSON(http.StatusOK, v.(game.BattleSnapshot))
}

// GetPlayer returns the full view of the player's active fighter, moves
// included.
func (h *BridgeHandler) GetPlayer(c *gin.Context) {
	if !h.detector.InBattle(c.Request.Context()) {
		c.JSON(http.StatusConflict, gin.H{constants.JSONKeyError: constants.ErrNotInBattle})
		return
	}
	v, err, _ := dedupe.SnapshotGroup.Do("player", func() (interface{}, error) {
		return h.reader.ActiveFighter(c.Request.Context())
	})
	if err != nil {
		c.JSON(http.StatusBadGateway, gin.H{constants.JSONKeyError: constants.ErrFailedReadState})
		return
	}
	fighter := v.(game.FighterSnapshot)
	if !fighter.Exists {
		c.JSON(http.StatusNotFound, gin.H{constants.JSONKeyError: constants.ErrNoActivePokemon})
		return
	}
	c.JSON(http.StatusOK, fighter)
}

// GetEnemy returns the restricted view of the enemy fighter. This is the
// only enemy data the API ever serves.
func (h *BridgeHandler) GetEnemy(c *gin.Context) {
	if !h.detector.InBattle(c.Request.Context()) {
		c.JSON(http.StatusConflict, gin.H{constants.JSONKeyError: constants.ErrNotInBattle})
		return
	}
	v, err, _ := dedupe.SnapshotGroup.Do("enemy", func() (interface{}, error) {
		return h.reader.Opponent(c.Request.Context())
	})
	if err != nil {
		c.JSON(http.StatusBadGateway, gin.H{constants.JSONKeyError: constants.ErrFailedReadState})
		return
	}
	opp := v.(game.OpponentSnapshot)
	if !opp.Exists {
		c.JSON(http.StatusNotFound, gin.H{constants.JSONKeyError: constants.ErrNoEnemyPokemon})
		return
	}
	c.JSON(http.StatusOK, opp)
}

// GetParty lists all six party slots, fainted fighters included, together
// with which slot is on the field.
func (h *BridgeHandler) GetParty(c *gin.Context) {
	type partyView struct {
		ActiveSlot int                    `json:"active_slot"`
		Party      []game.FighterSnapshot `json:"party"`
	}
	v, err, _ := dedupe.SnapshotGroup.Do("party", func() (interface{}, error) {
		party, err := h.reader.Party(c.Request.Context())
		if err != nil {
			return nil, err
		}
		slot, err := h.reader.ActiveSlot(c.Request.Context())
		if err != nil {
			return nil, err
		}
		return partyView{ActiveSlot: slot, Party: party}, nil
	})
	if err != nil {
		c.JSON(http.StatusBadGateway, gin.H{constants.JSONKeyError: constants.ErrFailedReadState})
		return
	}
	c.JSON(http.StatusOK, v.(partyView))
}

// GetScreenshot captures the current frame as PNG. Concurrent requests
// share one capture.
func (h *BridgeHandler) GetScreenshot(c *gin.Context) {
	v, err, _ := dedupe.ScreenshotGroup.Do("screenshot", func() (interface{}, error) {
		return h.emu.Screenshot(c.Request.Context())
	})
	if err != nil {
		c.JSON(http.StatusBadGateway, gin.H{constants.JSONKeyError: constants.ErrFailedScreenshot})
		return
	}
	c.Data(http.StatusOK, constants.ContentTypePNG, v.([]byte))
}

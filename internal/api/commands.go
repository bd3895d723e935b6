package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/ioannis-mouratidis/ai-plays-pokemon/internal/battle"
	"github.com/ioannis-mouratidis/ai-plays-pokemon/internal/constants"
	"github.com/ioannis-mouratidis/ai-plays-pokemon/internal/game"
	"github.com/ioannis-mouratidis/ai-plays-pokemon/internal/logging"
)

type AttackRequest struct {
	MoveSlot int `json:"move_slot"`
}

type SwitchRequest struct {
	PartySlot int `json:"party_slot"`
}

// Attack executes one attack with the move in the requested slot and
// returns the resolved turn.
func (h *BridgeHandler) Attack(c *gin.Context) {
	var req AttackRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{constants.JSONKeyError: constants.ErrInvalidRequest})
		return
	}
	h.resolve(c, game.Attack(req.MoveSlot))
}

// Switch swaps the active fighter for the one in the requested party slot
// and returns the resolved turn, free enemy attack included.
func (h *BridgeHandler) Switch(c *gin.Context) {
	var req SwitchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{constants.JSONKeyError: constants.ErrInvalidRequest})
		return
	}
	h.resolve(c, game.Switch(req.PartySlot))
}

func (h *BridgeHandler) resolve(c *gin.Context, action game.Action) {
	result, err := h.controller.ResolveAction(c.Request.Context(), action)
	if err != nil {
		switch {
		case errors.Is(err, battle.ErrActionInFlight):
			c.JSON(http.StatusConflict, gin.H{constants.JSONKeyError: constants.ErrActionInFlight})
		case errors.Is(err, battle.ErrNotInBattle):
			c.JSON(http.StatusConflict, gin.H{constants.JSONKeyError: constants.ErrNotInBattle})
		case battle.IsPrecondition(err):
			c.JSON(http.StatusBadRequest, gin.H{constants.JSONKeyError: err.Error()})
		case errors.Is(err, battle.ErrTransport):
			c.JSON(http.StatusBadGateway, gin.H{constants.JSONKeyError: constants.ErrEmulatorUnreachable})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{constants.JSONKeyError: err.Error()})
		}
		return
	}

	turnUUID := uuid.NewString()
	h.persistTurn(turnUUID, action, result)
	logging.Info("action resolved", logging.Fields{
		constants.LogFieldTurnUUID: turnUUID,
		constants.LogFieldAction:   string(result.Action),
		constants.LogFieldMoveSlot: action.MoveSlot,
		constants.LogFieldSlot:     action.PartySlot,
		"timed_out":                result.TimedOut,
	})

	body := gin.H{"turn_uuid": turnUUID, "result": result}
	c.JSON(http.StatusOK, body)
}

// persistTurn records the resolved turn for the history endpoint. Storage
// failures are logged, never surfaced: the action already happened on the
// emulator.
func (h *BridgeHandler) persistTurn(turnUUID string, action game.Action, result game.TurnResult) {
	if h.repo == nil {
		return
	}
	rec := &game.TurnRecord{
		TurnUUID:       turnUUID,
		Action:         string(result.Action),
		MoveSlot:       action.MoveSlot,
		PartySlot:      action.PartySlot,
		DamageDealt:    result.DamageDealt,
		DamageReceived: result.DamageReceived,
		PlayerHP:       result.PlayerHP,
		PlayerMaxHP:    result.PlayerMaxHP,
		EnemyHPPercent: result.EnemyHPPercent,
		PlayerFainted:  result.PlayerFainted,
		EnemyFainted:   result.EnemyFainted,
		TimedOut:       result.TimedOut,
		BattleActive:   result.BattleActive,
	}
	if err := h.repo.SaveTurn(rec); err != nil {
		logging.Error("failed to persist turn", err, logging.Fields{
			constants.LogFieldTurnUUID: turnUUID,
			constants.LogFieldAction:   rec.Action,
		})
	}
}

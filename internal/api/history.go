package api

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/ioannis-mouratidis/ai-plays-pokemon/internal/constants"
)

const (
	defaultHistoryLimit = 20
	maxHistoryLimit     = 100
)

func historyLimit(c *gin.Context) int {
	limit := defaultHistoryLimit
	if raw := c.Query("limit"); raw != "" {
		if v, err := strconv.Atoi(raw); err == nil && v > 0 {
			limit = v
		}
	}
	if limit > maxHistoryLimit {
		limit = maxHistoryLimit
	}
	return limit
}

// GetHistory lists recently resolved turns, newest first.
func (h *BridgeHandler) GetHistory(c *gin.Context) {
	recs, err := h.repo.RecentTurns(historyLimit(c))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{constants.JSONKeyError: constants.ErrFailedFetchHistory})
		return
	}
	c.JSON(http.StatusOK, gin.H{"turns": recs})
}

// GetEncounters lists recently detected battles, newest first.
func (h *BridgeHandler) GetEncounters(c *gin.Context) {
	recs, err := h.repo.RecentEncounters(historyLimit(c))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{constants.JSONKeyError: constants.ErrFailedFetchHistory})
		return
	}
	c.JSON(http.StatusOK, gin.H{"encounters": recs})
}

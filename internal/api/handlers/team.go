package handlers

import (
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/mkowalski/puck-picks/internal/browse"
	"github.com/mkowalski/puck-picks/internal/services"
	"github.com/mkowalski/puck-picks/pkg/config"
	"github.com/mkowalski/puck-picks/pkg/utils"
)

type TeamHandler struct {
	registry *services.SessionRegistry
	store    browse.PlayerStore
	cfg      *config.Config
	logger   *logrus.Logger
}

func NewTeamHandler(registry *services.SessionRegistry, store browse.PlayerStore, cfg *config.Config, logger *logrus.Logger) *TeamHandler {
	return &TeamHandler{
		registry: registry,
		store:    store,
		cfg:      cfg,
		logger:   logger,
	}
}

// GetTeam returns the roster with full stat rows for the default season.
func (h *TeamHandler) GetTeam(c *gin.Context) {
	session, ok := lookupSession(c, h.registry)
	if !ok {
		return
	}

	ids := session.Team.IDs()
	players, err := h.store.FetchTeamWithStats(c.Request.Context(), ids, h.cfg.DefaultSeasonID)
	if err != nil {
		utils.SendUpstreamError(c, "Failed to fetch team players", err.Error())
		return
	}

	utils.SendSuccess(c, gin.H{
		"player_ids": ids,
		"players":    players,
	})
}

// RemoveFromTeam deletes one player from the roster. The local set only
// changes when the remote delete succeeds.
func (h *TeamHandler) RemoveFromTeam(c *gin.Context) {
	session, ok := lookupSession(c, h.registry)
	if !ok {
		return
	}

	playerID, err := strconv.Atoi(c.Param("playerId"))
	if err != nil {
		utils.SendValidationError(c, "Invalid player ID", err.Error())
		return
	}

	if err := session.Team.RemovePlayer(c.Request.Context(), playerID); err != nil {
		utils.SendUpstreamError(c, "Failed to remove player from team", err.Error())
		return
	}

	utils.SendSuccess(c, gin.H{
		"player_ids": session.Team.IDs(),
	})
}

package handlers

import (
	"errors"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/mkowalski/puck-picks/internal/browse"
	"github.com/mkowalski/puck-picks/internal/services"
	"github.com/mkowalski/puck-picks/pkg/utils"
)

type PlayerHandler struct {
	registry *services.SessionRegistry
	logger   *logrus.Logger
}

func NewPlayerHandler(registry *services.SessionRegistry, logger *logrus.Logger) *PlayerHandler {
	return &PlayerHandler{
		registry: registry,
		logger:   logger,
	}
}

func (h *PlayerHandler) sendRows(c *gin.Context, session *browse.Session) {
	state := session.List.State()
	utils.SendSuccessWithMeta(c, gin.H{
		"rows":  session.List.Rows(),
		"state": state,
	}, &utils.Meta{
		Page:       state.Page,
		PerPage:    state.PageSize,
		Total:      state.TotalPlayers,
		TotalPages: state.TotalPages,
	})
}

// GetPlayers returns the rendered row set for the session's current page.
func (h *PlayerHandler) GetPlayers(c *gin.Context) {
	session, ok := lookupSession(c, h.registry)
	if !ok {
		return
	}

	if err := session.List.Err(); err != nil {
		utils.SendUpstreamError(c, "Failed to fetch players", err.Error())
		return
	}

	h.sendRows(c, session)
}

// ChangePage moves the page by a delta, clamped to the valid range.
func (h *PlayerHandler) ChangePage(c *gin.Context) {
	session, ok := lookupSession(c, h.registry)
	if !ok {
		return
	}

	var req struct {
		Delta int `json:"delta"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.SendValidationError(c, "Invalid request body", err.Error())
		return
	}

	if err := session.List.ChangePage(c.Request.Context(), req.Delta); err != nil {
		utils.SendUpstreamError(c, "Failed to fetch players", err.Error())
		return
	}

	h.sendRows(c, session)
}

// SetSort selects the sort column; re-selecting the current column flips the
// direction.
func (h *PlayerHandler) SetSort(c *gin.Context) {
	session, ok := lookupSession(c, h.registry)
	if !ok {
		return
	}

	var req struct {
		Column string `json:"column" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.SendValidationError(c, "Invalid request body", err.Error())
		return
	}

	column, err := browse.ParseSortColumn(req.Column)
	if err != nil {
		utils.SendValidationError(c, "Invalid sort column", err.Error())
		return
	}

	session.List.SetSortColumn(column)
	h.sendRows(c, session)
}

// SetPosition switches the position filter.
func (h *PlayerHandler) SetPosition(c *gin.Context) {
	session, ok := lookupSession(c, h.registry)
	if !ok {
		return
	}

	var req struct {
		Filter string `json:"filter" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.SendValidationError(c, "Invalid request body", err.Error())
		return
	}

	filter, err := browse.ParsePositionFilter(req.Filter)
	if err != nil {
		utils.SendValidationError(c, "Invalid position filter", err.Error())
		return
	}

	session.List.SetPositionFilter(filter)
	h.sendRows(c, session)
}

// ToggleSelect checks or unchecks one player.
func (h *PlayerHandler) ToggleSelect(c *gin.Context) {
	session, ok := lookupSession(c, h.registry)
	if !ok {
		return
	}

	var req struct {
		PlayerID int `json:"player_id" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.SendValidationError(c, "Invalid request body", err.Error())
		return
	}

	if !session.List.ToggleSelect(req.PlayerID) {
		utils.SendValidationError(c, "Player is not on the current page", strconv.Itoa(req.PlayerID))
		return
	}

	h.sendRows(c, session)
}

// BulkHide hides every selected player and clears the selection.
func (h *PlayerHandler) BulkHide(c *gin.Context) {
	session, ok := lookupSession(c, h.registry)
	if !ok {
		return
	}

	session.List.BulkHide()
	h.sendRows(c, session)
}

// UnhideAll restores every hidden player.
func (h *PlayerHandler) UnhideAll(c *gin.Context) {
	session, ok := lookupSession(c, h.registry)
	if !ok {
		return
	}

	session.List.UnhideAll()
	h.sendRows(c, session)
}

// BulkAddToTeam adds every selected player to the roster. Players whose
// remote insert failed are reported back; all originally selected players
// leave the browse list either way.
func (h *PlayerHandler) BulkAddToTeam(c *gin.Context) {
	session, ok := lookupSession(c, h.registry)
	if !ok {
		return
	}

	failed := session.List.BulkAddToTeam(c.Request.Context())

	utils.SendSuccess(c, gin.H{
		"failed_ids": failed,
		"team":       session.Team.IDs(),
		"rows":       session.List.Rows(),
		"state":      session.List.State(),
	})
}

// GetHistory returns a player's multi-season stat rows. Only available while
// nothing is selected.
func (h *PlayerHandler) GetHistory(c *gin.Context) {
	session, ok := lookupSession(c, h.registry)
	if !ok {
		return
	}

	playerID, err := strconv.Atoi(c.Param("playerId"))
	if err != nil {
		utils.SendValidationError(c, "Invalid player ID", err.Error())
		return
	}

	lines, err := session.SeasonHistory(c.Request.Context(), playerID)
	if err != nil {
		if errors.Is(err, browse.ErrSelectionActive) {
			utils.SendConflict(c, "Cannot open player detail while players are selected")
			return
		}
		utils.SendUpstreamError(c, "Failed to fetch season history", err.Error())
		return
	}

	utils.SendSuccess(c, lines)
}

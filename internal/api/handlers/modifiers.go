package handlers

import (
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/mkowalski/puck-picks/internal/browse"
	"github.com/mkowalski/puck-picks/internal/services"
	"github.com/mkowalski/puck-picks/pkg/utils"
)

type ModifierHandler struct {
	registry *services.SessionRegistry
	logger   *logrus.Logger
}

func NewModifierHandler(registry *services.SessionRegistry, logger *logrus.Logger) *ModifierHandler {
	return &ModifierHandler{
		registry: registry,
		logger:   logger,
	}
}

func (h *ModifierHandler) sendModifiers(c *gin.Context, session *browse.Session) {
	utils.SendSuccess(c, gin.H{
		"committed": session.Modifiers.Modifiers(),
		"staged":    session.Modifiers.Staged(),
		"active":    session.Modifiers.Active(),
	})
}

// GetModifiers returns committed and staged modifier state.
func (h *ModifierHandler) GetModifiers(c *gin.Context) {
	session, ok := lookupSession(c, h.registry)
	if !ok {
		return
	}
	h.sendModifiers(c, session)
}

// StageEdit records one in-progress value edit. Partial numeric input like
// "1." is accepted; anything else is rejected without touching staged state.
func (h *ModifierHandler) StageEdit(c *gin.Context) {
	session, ok := lookupSession(c, h.registry)
	if !ok {
		return
	}

	var req struct {
		Key   string `json:"key" binding:"required"`
		Value string `json:"value"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.SendValidationError(c, "Invalid request body", err.Error())
		return
	}

	key, err := browse.ParseModifierKey(req.Key)
	if err != nil {
		utils.SendValidationError(c, "Invalid modifier key", err.Error())
		return
	}

	if !session.Modifiers.StageEdit(key, req.Value) {
		utils.SendValidationError(c, "Invalid modifier value", req.Value)
		return
	}

	h.sendModifiers(c, session)
}

// ToggleEnabled flips one modifier's staged enabled flag.
func (h *ModifierHandler) ToggleEnabled(c *gin.Context) {
	session, ok := lookupSession(c, h.registry)
	if !ok {
		return
	}

	var req struct {
		Key string `json:"key" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.SendValidationError(c, "Invalid request body", err.Error())
		return
	}

	key, err := browse.ParseModifierKey(req.Key)
	if err != nil {
		utils.SendValidationError(c, "Invalid modifier key", err.Error())
		return
	}

	session.Modifiers.ToggleEnabled(key)
	h.sendModifiers(c, session)
}

// Commit publishes the staged modifiers atomically. A staged value that does
// not parse rejects the whole commit.
func (h *ModifierHandler) Commit(c *gin.Context) {
	session, ok := lookupSession(c, h.registry)
	if !ok {
		return
	}

	if err := session.Modifiers.Commit(); err != nil {
		utils.SendValidationError(c, "Cannot commit modifiers", err.Error())
		return
	}

	h.sendModifiers(c, session)
}

// SetActive flips the global activation toggle.
func (h *ModifierHandler) SetActive(c *gin.Context) {
	session, ok := lookupSession(c, h.registry)
	if !ok {
		return
	}

	var req struct {
		Active *bool `json:"active" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.SendValidationError(c, "Invalid request body", err.Error())
		return
	}

	session.Modifiers.SetActive(*req.Active)
	h.sendModifiers(c, session)
}

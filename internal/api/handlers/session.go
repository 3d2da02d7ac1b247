package handlers

import (
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/mkowalski/puck-picks/internal/browse"
	"github.com/mkowalski/puck-picks/internal/services"
	"github.com/mkowalski/puck-picks/pkg/config"
	"github.com/mkowalski/puck-picks/pkg/utils"
)

type SessionHandler struct {
	registry *services.SessionRegistry
	store    browse.PlayerStore
	cfg      *config.Config
	logger   *logrus.Logger
}

func NewSessionHandler(registry *services.SessionRegistry, store browse.PlayerStore, cfg *config.Config, logger *logrus.Logger) *SessionHandler {
	return &SessionHandler{
		registry: registry,
		store:    store,
		cfg:      cfg,
		logger:   logger,
	}
}

// CreateSession opens a new browse session: loads the persisted roster and
// the first page of players, and returns the session ID.
func (h *SessionHandler) CreateSession(c *gin.Context) {
	session := browse.NewSession(h.store, h.logger, h.cfg.DefaultSeasonID, h.cfg.PageSize)
	if err := session.Start(c.Request.Context()); err != nil {
		utils.SendUpstreamError(c, "Failed to start browse session", err.Error())
		return
	}

	id := h.registry.Create(session)
	utils.SendSuccess(c, gin.H{
		"session_id": id,
	})
}

// DeleteSession discards a browse session and its transient state.
func (h *SessionHandler) DeleteSession(c *gin.Context) {
	h.registry.Delete(c.Param("id"))
	utils.SendSuccess(c, gin.H{"deleted": true})
}

// lookupSession resolves the :id path param to a live session, replying 404
// when it is missing or expired.
func lookupSession(c *gin.Context, registry *services.SessionRegistry) (*browse.Session, bool) {
	session, ok := registry.Get(c.Param("id"))
	if !ok {
		utils.SendNotFound(c, "Session not found")
		return nil, false
	}
	return session, true
}

package api

import (
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/mkowalski/puck-picks/internal/api/handlers"
	"github.com/mkowalski/puck-picks/internal/api/middleware"
	"github.com/mkowalski/puck-picks/internal/browse"
	"github.com/mkowalski/puck-picks/internal/services"
	"github.com/mkowalski/puck-picks/pkg/config"
)

// SetupRoutes configures all API routes on the given router group.
func SetupRoutes(group *gin.RouterGroup, registry *services.SessionRegistry, store browse.PlayerStore, cfg *config.Config, logger *logrus.Logger) {
	// Initialize handlers
	sessionHandler := handlers.NewSessionHandler(registry, store, cfg, logger)
	playerHandler := handlers.NewPlayerHandler(registry, logger)
	modifierHandler := handlers.NewModifierHandler(registry, logger)
	teamHandler := handlers.NewTeamHandler(registry, store, cfg, logger)

	// Session lifecycle
	group.POST("/sessions", sessionHandler.CreateSession)
	group.DELETE("/sessions/:id", sessionHandler.DeleteSession)

	sessions := group.Group("/sessions/:id")

	// Player list
	sessions.GET("/players", playerHandler.GetPlayers)
	sessions.POST("/players/page", playerHandler.ChangePage)
	sessions.POST("/players/sort", playerHandler.SetSort)
	sessions.POST("/players/position", playerHandler.SetPosition)
	sessions.POST("/players/select", playerHandler.ToggleSelect)
	sessions.POST("/players/hide", playerHandler.BulkHide)
	sessions.POST("/players/unhide", playerHandler.UnhideAll)
	sessions.GET("/players/:playerId/history", playerHandler.GetHistory)

	// Modifiers
	sessions.GET("/modifiers", modifierHandler.GetModifiers)
	sessions.POST("/modifiers/stage", modifierHandler.StageEdit)
	sessions.POST("/modifiers/toggle", modifierHandler.ToggleEnabled)
	sessions.POST("/modifiers/commit", modifierHandler.Commit)
	sessions.POST("/modifiers/active", modifierHandler.SetActive)

	// Team mutations fan out one remote write per player, so they get a
	// per-client rate limit.
	mutations := sessions.Group("")
	mutations.Use(middleware.RateLimit(cfg.TeamRateLimit, cfg.TeamRateBurst))
	{
		mutations.POST("/players/team", playerHandler.BulkAddToTeam)
		mutations.DELETE("/team/:playerId", teamHandler.RemoveFromTeam)
	}

	sessions.GET("/team", teamHandler.GetTeam)
}

package browse

import (
	"context"

	"github.com/sirupsen/logrus"

	"github.com/mkowalski/puck-picks/internal/models"
)

// Session bundles the per-browse-session state: the modifier store, the team
// membership store, the player list engine and the season history loader.
// The stores are owned independently of the list engine, so changing a
// modifier or the roster only recomputes derived rows and never refetches
// players.
type Session struct {
	Modifiers *ModifierStore
	Team      *TeamStore
	List      *PlayerListEngine

	history *SeasonHistoryLoader
}

func NewSession(store PlayerStore, logger *logrus.Logger, seasonID, pageSize int) *Session {
	mods := NewModifierStore()
	team := NewTeamStore(store, logger)
	return &Session{
		Modifiers: mods,
		Team:      team,
		List:      NewPlayerListEngine(store, team, mods, logger, seasonID, pageSize),
		history:   NewSeasonHistoryLoader(store, logger),
	}
}

// Start loads the persisted roster and the first page of players.
func (s *Session) Start(ctx context.Context) error {
	if err := s.Team.Load(ctx); err != nil {
		return err
	}
	return s.List.Refresh(ctx)
}

// SeasonHistory opens the single-player detail view. It is only permitted
// while the selection set is empty.
func (s *Session) SeasonHistory(ctx context.Context, playerID int) ([]models.SeasonLine, error) {
	if s.List.SelectionCount() > 0 {
		return nil, ErrSelectionActive
	}
	return s.history.Load(ctx, playerID)
}

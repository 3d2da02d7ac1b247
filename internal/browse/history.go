package browse

import (
	"context"
	"errors"
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/mkowalski/puck-picks/internal/models"
)

// ErrSelectionActive is returned when a single-player detail view is
// requested while a multi-select is in progress. Detail taps and select taps
// are only unambiguous when nothing is selected.
var ErrSelectionActive = errors.New("cannot open player detail while players are selected")

// SeasonHistoryLoader fetches one player's per-season stat rows on demand.
type SeasonHistoryLoader struct {
	store  PlayerStore
	logger *logrus.Logger
}

func NewSeasonHistoryLoader(store PlayerStore, logger *logrus.Logger) *SeasonHistoryLoader {
	return &SeasonHistoryLoader{
		store:  store,
		logger: logger,
	}
}

// Load returns every season-stat row for the player, ordered by ascending
// season.
func (l *SeasonHistoryLoader) Load(ctx context.Context, playerID int) ([]models.SeasonLine, error) {
	lines, err := l.store.FetchSeasonHistory(ctx, playerID)
	if err != nil {
		l.logger.Errorf("Failed to fetch season history for player %d: %v", playerID, err)
		return nil, fmt.Errorf("failed to fetch season history for player %d: %w", playerID, err)
	}
	return lines, nil
}

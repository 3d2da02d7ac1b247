package browse

import (
	"context"

	"github.com/mkowalski/puck-picks/internal/models"
)

// Page is one window of the remote player list, ordered by descending points.
type Page struct {
	Players    []models.PlayerWithStats
	TotalCount int64
}

// PlayerStore is the remote relational data store the browser runs over.
// Implementations live in internal/store; browse only consumes the contract.
type PlayerStore interface {
	// FetchPage returns players with their stats for one season, ordered by
	// descending points, windowed by offset/limit.
	FetchPage(ctx context.Context, offset, limit, seasonID int) (*Page, error)

	// FetchSeasonHistory returns every season-stat row for a player, ordered
	// by ascending season.
	FetchSeasonHistory(ctx context.Context, playerID int) ([]models.SeasonLine, error)

	// FetchTeamIDs returns the persisted roster's player IDs.
	FetchTeamIDs(ctx context.Context) ([]int, error)

	// FetchTeamWithStats returns full stat rows for the given roster players.
	FetchTeamWithStats(ctx context.Context, playerIDs []int, seasonID int) ([]models.PlayerWithStats, error)

	// InsertTeamMember adds a player to the persisted roster.
	InsertTeamMember(ctx context.Context, playerID int) error

	// DeleteTeamMember removes a player from the persisted roster.
	DeleteTeamMember(ctx context.Context, playerID int) error
}

package store

import (
	"context"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/sony/gobreaker"

	"github.com/mkowalski/puck-picks/internal/browse"
	"github.com/mkowalski/puck-picks/internal/models"
	"github.com/mkowalski/puck-picks/internal/services"
	"github.com/mkowalski/puck-picks/pkg/database"
)

// Options tunes the store's caching and resilience behavior.
type Options struct {
	BreakerThreshold int
	PageTTL          time.Duration
	HistoryTTL       time.Duration
}

// Store is the GORM-backed implementation of browse.PlayerStore. Reads are
// served through the Redis cache when one is configured, and every database
// round trip goes through a circuit breaker so a dead database fails fast
// instead of piling up connections.
type Store struct {
	db         *database.DB
	cache      *services.CacheService
	breaker    *gobreaker.CircuitBreaker
	logger     *logrus.Logger
	pageTTL    time.Duration
	historyTTL time.Duration
}

var _ browse.PlayerStore = (*Store)(nil)

func New(db *database.DB, cache *services.CacheService, logger *logrus.Logger, opts Options) *Store {
	threshold := opts.BreakerThreshold
	if threshold <= 0 {
		threshold = 5
	}
	pageTTL := opts.PageTTL
	if pageTTL <= 0 {
		pageTTL = 5 * time.Minute
	}
	historyTTL := opts.HistoryTTL
	if historyTTL <= 0 {
		historyTTL = time.Hour
	}

	breaker := gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name: "player-store",
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= uint32(threshold)
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			logger.Warnf("Circuit breaker %s: %s -> %s", name, from, to)
		},
	})

	return &Store{
		db:         db,
		cache:      cache,
		breaker:    breaker,
		logger:     logger,
		pageTTL:    pageTTL,
		historyTTL: historyTTL,
	}
}

func (s *Store) FetchPage(ctx context.Context, offset, limit, seasonID int) (*browse.Page, error) {
	cacheKey := services.PlayerPageCacheKey(seasonID, offset, limit)
	if s.cache != nil {
		var cached browse.Page
		if err := s.cache.Get(ctx, cacheKey, &cached); err == nil {
			return &cached, nil
		}
	}

	result, err := s.breaker.Execute(func() (interface{}, error) {
		var total int64
		if err := s.db.WithContext(ctx).
			Model(&models.PlayerSeasonStat{}).
			Where("season_id = ?", seasonID).
			Count(&total).Error; err != nil {
			return nil, err
		}

		var rows []models.PlayerSeasonStat
		if err := s.db.WithContext(ctx).
			Joins("Player").
			Where("player_stats.season_id = ?", seasonID).
			Order("player_stats.points DESC").
			Order("player_stats.player_id").
			Offset(offset).
			Limit(limit).
			Find(&rows).Error; err != nil {
			return nil, err
		}

		page := &browse.Page{
			TotalCount: total,
			Players:    make([]models.PlayerWithStats, 0, len(rows)),
		}
		for _, row := range rows {
			page.Players = append(page.Players, models.PlayerWithStats{
				PlayerID: row.PlayerID,
				Name:     row.Player.Name,
				Position: row.Player.Position,
				Stats:    row.PlayerStats,
			})
		}
		return page, nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to fetch players: %w", err)
	}

	page := result.(*browse.Page)
	if s.cache != nil {
		s.cache.SetWithRetry(ctx, cacheKey, page, s.pageTTL, 3)
	}
	return page, nil
}

func (s *Store) FetchSeasonHistory(ctx context.Context, playerID int) ([]models.SeasonLine, error) {
	cacheKey := services.SeasonHistoryCacheKey(playerID)
	if s.cache != nil {
		var cached []models.SeasonLine
		if err := s.cache.Get(ctx, cacheKey, &cached); err == nil {
			return cached, nil
		}
	}

	result, err := s.breaker.Execute(func() (interface{}, error) {
		var rows []models.PlayerSeasonStat
		if err := s.db.WithContext(ctx).
			Where("player_id = ?", playerID).
			Order("season_id ASC").
			Find(&rows).Error; err != nil {
			return nil, err
		}

		lines := make([]models.SeasonLine, 0, len(rows))
		for _, row := range rows {
			lines = append(lines, models.SeasonLine{
				SeasonID: row.SeasonID,
				Label:    models.FormatSeason(row.SeasonID),
				Stats:    row.PlayerStats,
			})
		}
		return lines, nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to fetch season history: %w", err)
	}

	lines := result.([]models.SeasonLine)
	if s.cache != nil {
		s.cache.SetWithRetry(ctx, cacheKey, lines, s.historyTTL, 3)
	}
	return lines, nil
}

func (s *Store) FetchTeamIDs(ctx context.Context) ([]int, error) {
	result, err := s.breaker.Execute(func() (interface{}, error) {
		var ids []int
		if err := s.db.WithContext(ctx).
			Model(&models.TeamMember{}).
			Order("player_id ASC").
			Pluck("player_id", &ids).Error; err != nil {
			return nil, err
		}
		return ids, nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to fetch team: %w", err)
	}
	return result.([]int), nil
}

func (s *Store) FetchTeamWithStats(ctx context.Context, playerIDs []int, seasonID int) ([]models.PlayerWithStats, error) {
	if len(playerIDs) == 0 {
		return []models.PlayerWithStats{}, nil
	}

	result, err := s.breaker.Execute(func() (interface{}, error) {
		var rows []models.PlayerSeasonStat
		if err := s.db.WithContext(ctx).
			Joins("Player").
			Where("player_stats.player_id IN ? AND player_stats.season_id = ?", playerIDs, seasonID).
			Order("player_stats.points DESC").
			Order("player_stats.player_id").
			Find(&rows).Error; err != nil {
			return nil, err
		}

		players := make([]models.PlayerWithStats, 0, len(rows))
		for _, row := range rows {
			players = append(players, models.PlayerWithStats{
				PlayerID: row.PlayerID,
				Name:     row.Player.Name,
				Position: row.Player.Position,
				Stats:    row.PlayerStats,
			})
		}
		return players, nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to fetch team players: %w", err)
	}
	return result.([]models.PlayerWithStats), nil
}

func (s *Store) InsertTeamMember(ctx context.Context, playerID int) error {
	_, err := s.breaker.Execute(func() (interface{}, error) {
		return nil, s.db.WithContext(ctx).Create(&models.TeamMember{PlayerID: playerID}).Error
	})
	if err != nil {
		return fmt.Errorf("failed to insert team member %d: %w", playerID, err)
	}
	return nil
}

func (s *Store) DeleteTeamMember(ctx context.Context, playerID int) error {
	_, err := s.breaker.Execute(func() (interface{}, error) {
		return nil, s.db.WithContext(ctx).Where("player_id = ?", playerID).Delete(&models.TeamMember{}).Error
	})
	if err != nil {
		return fmt.Errorf("failed to delete team member %d: %w", playerID, err)
	}
	return nil
}

package browse

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/sirupsen/logrus"
)

// TeamStore holds the set of player IDs on the user's persisted roster.
// Mutations call through to the remote store and update local state only on
// confirmed success, so the local set never runs ahead of the database.
type TeamStore struct {
	mu      sync.Mutex
	store   PlayerStore
	logger  *logrus.Logger
	members map[int]struct{}
}

func NewTeamStore(store PlayerStore, logger *logrus.Logger) *TeamStore {
	return &TeamStore{
		store:   store,
		logger:  logger,
		members: make(map[int]struct{}),
	}
}

// Load replaces the local set with the persisted roster.
func (t *TeamStore) Load(ctx context.Context) error {
	ids, err := t.store.FetchTeamIDs(ctx)
	if err != nil {
		t.logger.Errorf("Failed to fetch team: %v", err)
		return fmt.Errorf("failed to fetch team: %w", err)
	}

	t.mu.Lock()
	defer t.mu.Unlock()
	t.members = make(map[int]struct{}, len(ids))
	for _, id := range ids {
		t.members[id] = struct{}{}
	}
	return nil
}

// AddPlayer inserts the player remotely and, only when that succeeds, adds
// the ID to the local set.
func (t *TeamStore) AddPlayer(ctx context.Context, playerID int) error {
	if err := t.store.InsertTeamMember(ctx, playerID); err != nil {
		t.logger.Errorf("Failed to add player %d to team: %v", playerID, err)
		return fmt.Errorf("failed to add player %d to team: %w", playerID, err)
	}

	t.mu.Lock()
	defer t.mu.Unlock()
	t.members[playerID] = struct{}{}
	return nil
}

// RemovePlayer deletes the player remotely and, only when that succeeds,
// drops the ID from the local set.
func (t *TeamStore) RemovePlayer(ctx context.Context, playerID int) error {
	if err := t.store.DeleteTeamMember(ctx, playerID); err != nil {
		t.logger.Errorf("Failed to remove player %d from team: %v", playerID, err)
		return fmt.Errorf("failed to remove player %d from team: %w", playerID, err)
	}

	t.mu.Lock()
	defer t.mu.Unlock()
	delete(t.members, playerID)
	return nil
}

// Contains reports whether the player is on the roster.
func (t *TeamStore) Contains(playerID int) bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	_, ok := t.members[playerID]
	return ok
}

// IDs returns the roster's player IDs in ascending order.
func (t *TeamStore) IDs() []int {
	t.mu.Lock()
	defer t.mu.Unlock()
	ids := make([]int, 0, len(t.members))
	for id := range t.members {
		ids = append(ids, id)
	}
	sort.Ints(ids)
	return ids
}

// Size returns the roster size.
func (t *TeamStore) Size() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return len(t.members)
}

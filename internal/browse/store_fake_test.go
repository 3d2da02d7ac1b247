package browse

import (
	"context"
	"fmt"
	"sync"

	"github.com/mkowalski/puck-picks/internal/models"
)

// fakeStore is an in-memory PlayerStore for engine tests. It serves windows
// over a fixed roster, or an explicit queue of pages when one is set, and can
// be told to fail or block individual calls.
type fakeStore struct {
	mu sync.Mutex

	all   []models.PlayerWithStats
	pages []*Page // overrides windowing when set; last entry repeats

	fetchErr  error
	gates     []chan struct{} // per-call gate, applied in call order
	pageCalls int

	history    map[int][]models.SeasonLine
	historyErr error

	teamIDs    []int
	failInsert map[int]bool
	failDelete map[int]bool
	inserted   []int
	deleted    []int
}

func newFakeStore(players ...models.PlayerWithStats) *fakeStore {
	return &fakeStore{
		all:        players,
		history:    make(map[int][]models.SeasonLine),
		failInsert: make(map[int]bool),
		failDelete: make(map[int]bool),
	}
}

// fakePlayers builds n players with descending points: player i (1-based)
// has ID i and points n-i+1.
func fakePlayers(n int) []models.PlayerWithStats {
	players := make([]models.PlayerWithStats, 0, n)
	for i := 1; i <= n; i++ {
		players = append(players, models.PlayerWithStats{
			PlayerID: i,
			Name:     fmt.Sprintf("Player %d", i),
			Position: "C",
			Stats:    models.PlayerStats{GamesPlayed: 82, Points: n - i + 1},
		})
	}
	return players
}

func (f *fakeStore) FetchPage(ctx context.Context, offset, limit, seasonID int) (*Page, error) {
	f.mu.Lock()
	call := f.pageCalls
	f.pageCalls++
	err := f.fetchErr

	var gate chan struct{}
	if call < len(f.gates) {
		gate = f.gates[call]
	}

	var page *Page
	if len(f.pages) > 0 {
		idx := call
		if idx >= len(f.pages) {
			idx = len(f.pages) - 1
		}
		page = f.pages[idx]
	} else {
		end := offset + limit
		if offset > len(f.all) {
			offset = len(f.all)
		}
		if end > len(f.all) {
			end = len(f.all)
		}
		window := make([]models.PlayerWithStats, end-offset)
		copy(window, f.all[offset:end])
		page = &Page{Players: window, TotalCount: int64(len(f.all))}
	}
	f.mu.Unlock()

	if gate != nil {
		<-gate
	}
	if err != nil {
		return nil, err
	}
	return page, nil
}

func (f *fakeStore) FetchSeasonHistory(ctx context.Context, playerID int) ([]models.SeasonLine, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.historyErr != nil {
		return nil, f.historyErr
	}
	return f.history[playerID], nil
}

func (f *fakeStore) FetchTeamIDs(ctx context.Context) ([]int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	ids := make([]int, len(f.teamIDs))
	copy(ids, f.teamIDs)
	return ids, nil
}

func (f *fakeStore) FetchTeamWithStats(ctx context.Context, playerIDs []int, seasonID int) ([]models.PlayerWithStats, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	members := make(map[int]struct{}, len(playerIDs))
	for _, id := range playerIDs {
		members[id] = struct{}{}
	}
	var out []models.PlayerWithStats
	for _, p := range f.all {
		if _, ok := members[p.PlayerID]; ok {
			out = append(out, p)
		}
	}
	return out, nil
}

func (f *fakeStore) InsertTeamMember(ctx context.Context, playerID int) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.inserted = append(f.inserted, playerID)
	if f.failInsert[playerID] {
		return fmt.Errorf("insert failed for player %d", playerID)
	}
	f.teamIDs = append(f.teamIDs, playerID)
	return nil
}

func (f *fakeStore) DeleteTeamMember(ctx context.Context, playerID int) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.deleted = append(f.deleted, playerID)
	if f.failDelete[playerID] {
		return fmt.Errorf("delete failed for player %d", playerID)
	}
	for i, id := range f.teamIDs {
		if id == playerID {
			f.teamIDs = append(f.teamIDs[:i], f.teamIDs[i+1:]...)
			break
		}
	}
	return nil
}

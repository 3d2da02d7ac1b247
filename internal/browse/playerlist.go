package browse

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/sirupsen/logrus"

	"github.com/mkowalski/puck-picks/internal/models"
)

const DefaultPageSize = 15

// SortColumn selects which value orders the rendered rows.
type SortColumn string

const (
	SortByPoints    SortColumn = "points"
	SortByProjected SortColumn = "projected"
)

// ParseSortColumn validates a wire-format sort column.
func ParseSortColumn(s string) (SortColumn, error) {
	switch SortColumn(s) {
	case SortByPoints, SortByProjected:
		return SortColumn(s), nil
	}
	return "", fmt.Errorf("unknown sort column %q", s)
}

// PositionFilter narrows the rendered rows by position group.
type PositionFilter string

const (
	FilterAll      PositionFilter = "All Players"
	FilterForwards PositionFilter = "Forwards"
	FilterDefense  PositionFilter = "Defense"
)

// ParsePositionFilter validates a wire-format position filter.
func ParsePositionFilter(s string) (PositionFilter, error) {
	switch PositionFilter(s) {
	case FilterAll, FilterForwards, FilterDefense:
		return PositionFilter(s), nil
	}
	return "", fmt.Errorf("unknown position filter %q", s)
}

// Row is one rendered player row: the raw stats plus the derived projection
// and selection flag.
type Row struct {
	PlayerID  int                `json:"player_id"`
	Name      string             `json:"name"`
	Position  string             `json:"position"`
	Stats     models.PlayerStats `json:"stats"`
	Projected int                `json:"projected"`
	Selected  bool               `json:"selected"`
}

// ListState is a snapshot of the engine's view state, served alongside rows.
type ListState struct {
	Page           int            `json:"page"`
	PageSize       int            `json:"page_size"`
	TotalPlayers   int64          `json:"total_players"`
	TotalPages     int            `json:"total_pages"`
	SortColumn     SortColumn     `json:"sort_column"`
	SortDescending bool           `json:"sort_descending"`
	PositionFilter PositionFilter `json:"position_filter"`
	HiddenCount    int            `json:"hidden_count"`
	SelectedCount  int            `json:"selected_count"`
}

// PlayerListEngine owns one remotely fetched page of players and the
// session-local view state over it: hidden set, selection set, sort and
// position filter. Rendered rows are always derived by the same pipeline:
// membership filter, position filter, sort. Pagination is the remote window
// the page was fetched with.
type PlayerListEngine struct {
	mu     sync.Mutex
	store  PlayerStore
	team   *TeamStore
	mods   *ModifierStore
	logger *logrus.Logger

	seasonID int
	pageSize int

	page       int
	players    []models.PlayerWithStats
	totalCount int64
	loadErr    error
	fetchToken uint64

	hidden         map[int]struct{}
	selected       map[int]struct{}
	selectionOrder []int

	sortColumn SortColumn
	sortDesc   bool
	position   PositionFilter
}

func NewPlayerListEngine(store PlayerStore, team *TeamStore, mods *ModifierStore, logger *logrus.Logger, seasonID, pageSize int) *PlayerListEngine {
	if pageSize <= 0 {
		pageSize = DefaultPageSize
	}
	return &PlayerListEngine{
		store:      store,
		team:       team,
		mods:       mods,
		logger:     logger,
		seasonID:   seasonID,
		pageSize:   pageSize,
		page:       1,
		hidden:     make(map[int]struct{}),
		selected:   make(map[int]struct{}),
		sortColumn: SortByPoints,
		sortDesc:   true,
		position:   FilterAll,
	}
}

// Refresh fetches the current page from the store. Each fetch carries a
// monotonically increasing token; a response is applied only if its token is
// still the latest issued, so an overlapping earlier fetch can never
// overwrite a later one.
func (e *PlayerListEngine) Refresh(ctx context.Context) error {
	e.mu.Lock()
	e.fetchToken++
	token := e.fetchToken
	offset := (e.page - 1) * e.pageSize
	limit := e.pageSize
	season := e.seasonID
	e.mu.Unlock()

	page, err := e.store.FetchPage(ctx, offset, limit, season)

	e.mu.Lock()
	defer e.mu.Unlock()
	if token != e.fetchToken {
		// A newer fetch superseded this one.
		return nil
	}
	if err != nil {
		e.logger.Errorf("Failed to fetch players page %d: %v", offset/limit+1, err)
		e.loadErr = err
		return err
	}
	e.loadErr = nil
	e.players = page.Players
	e.totalCount = page.TotalCount
	e.pruneSelectionLocked()
	return nil
}

// pruneSelectionLocked drops selected IDs that are no longer on the fetched
// page, preserving selection order.
func (e *PlayerListEngine) pruneSelectionLocked() {
	onPage := make(map[int]struct{}, len(e.players))
	for _, p := range e.players {
		onPage[p.PlayerID] = struct{}{}
	}
	kept := e.selectionOrder[:0]
	for _, id := range e.selectionOrder {
		if _, ok := onPage[id]; ok {
			kept = append(kept, id)
		} else {
			delete(e.selected, id)
		}
	}
	e.selectionOrder = kept
}

// Err returns the terminal error of the last fetch, if any.
func (e *PlayerListEngine) Err() error {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.loadErr
}

// Rows derives the rendered row set: hidden and roster players dropped,
// position filter applied, then sorted. The pipeline order is fixed.
func (e *PlayerListEngine) Rows() []Row {
	mods, active := e.mods.Snapshot()

	e.mu.Lock()
	defer e.mu.Unlock()

	rows := make([]Row, 0, len(e.players))
	for _, p := range e.players {
		if _, ok := e.hidden[p.PlayerID]; ok {
			continue
		}
		if e.team.Contains(p.PlayerID) {
			continue
		}
		if !matchesPosition(p.Position, e.position) {
			continue
		}
		_, selected := e.selected[p.PlayerID]
		rows = append(rows, Row{
			PlayerID:  p.PlayerID,
			Name:      p.Name,
			Position:  p.Position,
			Stats:     p.Stats,
			Projected: ProjectedValue(p.Stats, mods, active),
			Selected:  selected,
		})
	}

	sortRows(rows, e.sortColumn, e.sortDesc)
	return rows
}

func matchesPosition(position string, filter PositionFilter) bool {
	switch filter {
	case FilterForwards:
		return position != "D"
	case FilterDefense:
		return position == "D"
	default:
		return true
	}
}

// sortRows orders rows by the sort column with player ID as tiebreak. Both
// keys flip with the direction so that descending and ascending orders are
// exact reversals of each other.
func sortRows(rows []Row, column SortColumn, desc bool) {
	value := func(r Row) int {
		if column == SortByProjected {
			return r.Projected
		}
		return r.Stats.Points
	}
	sort.Slice(rows, func(i, j int) bool {
		a, b := rows[i], rows[j]
		if value(a) != value(b) {
			if desc {
				return value(a) > value(b)
			}
			return value(a) < value(b)
		}
		if desc {
			return a.PlayerID > b.PlayerID
		}
		return a.PlayerID < b.PlayerID
	})
}

// ToggleSelect adds or removes the player from the selection set. Only
// players present on the fetched page can be selected, keeping the selection
// a subset of renderable rows.
func (e *PlayerListEngine) ToggleSelect(playerID int) bool {
	e.mu.Lock()
	defer e.mu.Unlock()

	if _, ok := e.selected[playerID]; ok {
		delete(e.selected, playerID)
		for i, id := range e.selectionOrder {
			if id == playerID {
				e.selectionOrder = append(e.selectionOrder[:i], e.selectionOrder[i+1:]...)
				break
			}
		}
		return true
	}

	onPage := false
	for _, p := range e.players {
		if p.PlayerID == playerID {
			onPage = true
			break
		}
	}
	if !onPage {
		return false
	}
	e.selected[playerID] = struct{}{}
	e.selectionOrder = append(e.selectionOrder, playerID)
	return true
}

// BulkHide moves every selected ID into the hidden set and clears the
// selection.
func (e *PlayerListEngine) BulkHide() {
	e.mu.Lock()
	defer e.mu.Unlock()
	for id := range e.selected {
		e.hidden[id] = struct{}{}
	}
	e.clearSelectionLocked()
}

// UnhideAll clears the hidden set.
func (e *PlayerListEngine) UnhideAll() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.hidden = make(map[int]struct{})
}

// BulkAddToTeam adds every selected player to the roster, one awaited call at
// a time in selection order. Afterwards all originally selected IDs are
// hidden and the selection is cleared, whether or not their remote insert
// succeeded: adding to the team means removing from the browse list, and a
// failed insert still honors that. Failed IDs are returned so callers can
// surface them.
func (e *PlayerListEngine) BulkAddToTeam(ctx context.Context) []int {
	e.mu.Lock()
	batch := make([]int, len(e.selectionOrder))
	copy(batch, e.selectionOrder)
	e.mu.Unlock()

	var failed []int
	for _, id := range batch {
		if err := e.team.AddPlayer(ctx, id); err != nil {
			failed = append(failed, id)
		}
	}

	e.mu.Lock()
	defer e.mu.Unlock()
	for _, id := range batch {
		e.hidden[id] = struct{}{}
	}
	e.clearSelectionLocked()
	return failed
}

func (e *PlayerListEngine) clearSelectionLocked() {
	e.selected = make(map[int]struct{})
	e.selectionOrder = nil
}

// ChangePage moves the page index by delta, clamped into [1, totalPages],
// and refetches.
func (e *PlayerListEngine) ChangePage(ctx context.Context, delta int) error {
	e.mu.Lock()
	target := e.page + delta
	if target < 1 {
		target = 1
	}
	if max := e.totalPagesLocked(); target > max {
		target = max
	}
	e.page = target
	e.mu.Unlock()

	return e.Refresh(ctx)
}

func (e *PlayerListEngine) totalPagesLocked() int {
	pages := int((e.totalCount + int64(e.pageSize) - 1) / int64(e.pageSize))
	if pages < 1 {
		pages = 1
	}
	return pages
}

// SetSortColumn selects the sort column; picking the current column flips
// the direction, picking a new one resets to descending.
func (e *PlayerListEngine) SetSortColumn(column SortColumn) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if column == e.sortColumn {
		e.sortDesc = !e.sortDesc
		return
	}
	e.sortColumn = column
	e.sortDesc = true
}

// SetPositionFilter switches the position filter. No other state is reset.
func (e *PlayerListEngine) SetPositionFilter(filter PositionFilter) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.position = filter
}

// SelectionCount returns how many players are currently selected.
func (e *PlayerListEngine) SelectionCount() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return len(e.selected)
}

// State snapshots the current view state.
func (e *PlayerListEngine) State() ListState {
	e.mu.Lock()
	defer e.mu.Unlock()
	return ListState{
		Page:           e.page,
		PageSize:       e.pageSize,
		TotalPlayers:   e.totalCount,
		TotalPages:     e.totalPagesLocked(),
		SortColumn:     e.sortColumn,
		SortDescending: e.sortDesc,
		PositionFilter: e.position,
		HiddenCount:    len(e.hidden),
		SelectedCount:  len(e.selected),
	}
}

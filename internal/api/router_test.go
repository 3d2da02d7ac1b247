package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mkowalski/puck-picks/internal/browse"
	"github.com/mkowalski/puck-picks/internal/models"
	"github.com/mkowalski/puck-picks/internal/services"
	"github.com/mkowalski/puck-picks/pkg/config"
	"github.com/mkowalski/puck-picks/pkg/utils"
)

// stubStore serves a fixed roster without a database.
type stubStore struct {
	players []models.PlayerWithStats
	history map[int][]models.SeasonLine
	teamIDs []int
}

func newStubStore(n int) *stubStore {
	players := make([]models.PlayerWithStats, 0, n)
	for i := 1; i <= n; i++ {
		players = append(players, models.PlayerWithStats{
			PlayerID: i,
			Name:     fmt.Sprintf("Player %d", i),
			Position: "C",
			Stats:    models.PlayerStats{GamesPlayed: 82, Points: n - i + 1},
		})
	}
	return &stubStore{players: players, history: make(map[int][]models.SeasonLine)}
}

func (s *stubStore) FetchPage(ctx context.Context, offset, limit, seasonID int) (*browse.Page, error) {
	end := offset + limit
	if offset > len(s.players) {
		offset = len(s.players)
	}
	if end > len(s.players) {
		end = len(s.players)
	}
	return &browse.Page{Players: s.players[offset:end], TotalCount: int64(len(s.players))}, nil
}

func (s *stubStore) FetchSeasonHistory(ctx context.Context, playerID int) ([]models.SeasonLine, error) {
	return s.history[playerID], nil
}

func (s *stubStore) FetchTeamIDs(ctx context.Context) ([]int, error) {
	return s.teamIDs, nil
}

func (s *stubStore) FetchTeamWithStats(ctx context.Context, playerIDs []int, seasonID int) ([]models.PlayerWithStats, error) {
	members := make(map[int]struct{}, len(playerIDs))
	for _, id := range playerIDs {
		members[id] = struct{}{}
	}
	var out []models.PlayerWithStats
	for _, p := range s.players {
		if _, ok := members[p.PlayerID]; ok {
			out = append(out, p)
		}
	}
	return out, nil
}

func (s *stubStore) InsertTeamMember(ctx context.Context, playerID int) error {
	s.teamIDs = append(s.teamIDs, playerID)
	return nil
}

func (s *stubStore) DeleteTeamMember(ctx context.Context, playerID int) error {
	for i, id := range s.teamIDs {
		if id == playerID {
			s.teamIDs = append(s.teamIDs[:i], s.teamIDs[i+1:]...)
			break
		}
	}
	return nil
}

func setupTestRouter(t *testing.T, store browse.PlayerStore) (*gin.Engine, *services.SessionRegistry) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	logger := logrus.New()
	cfg := &config.Config{
		DefaultSeasonID: 20222023,
		PageSize:        15,
		SessionTTL:      30 * time.Minute,
		TeamRateLimit:   100,
		TeamRateBurst:   100,
	}
	registry := services.NewSessionRegistry(cfg.SessionTTL, "5m", logger)

	router := gin.New()
	SetupRoutes(router.Group("/api/v1"), registry, store, cfg, logger)
	return router, registry
}

func doRequest(t *testing.T, router *gin.Engine, method, path string, body interface{}) (*httptest.ResponseRecorder, utils.Response) {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(payload)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	var resp utils.Response
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return w, resp
}

func createTestSession(t *testing.T, router *gin.Engine) string {
	t.Helper()
	w, resp := doRequest(t, router, http.MethodPost, "/api/v1/sessions", nil)
	require.Equal(t, http.StatusOK, w.Code)
	require.True(t, resp.Success)

	data, ok := resp.Data.(map[string]interface{})
	require.True(t, ok)
	id, ok := data["session_id"].(string)
	require.True(t, ok)
	return id
}

func TestSessionLifecycleOverHTTP(t *testing.T) {
	router, registry := setupTestRouter(t, newStubStore(5))

	id := createTestSession(t, router)
	assert.Equal(t, 1, registry.Count())

	w, resp := doRequest(t, router, http.MethodDelete, "/api/v1/sessions/"+id, nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.True(t, resp.Success)
	assert.Equal(t, 0, registry.Count())
}

func TestGetPlayersUnknownSession(t *testing.T) {
	router, _ := setupTestRouter(t, newStubStore(5))

	w, resp := doRequest(t, router, http.MethodGet, "/api/v1/sessions/nope/players", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.False(t, resp.Success)
	require.NotNil(t, resp.Error)
	assert.Equal(t, utils.ErrCodeNotFound, resp.Error.Code)
}

func TestGetPlayersReturnsRowsAndState(t *testing.T) {
	router, _ := setupTestRouter(t, newStubStore(20))
	id := createTestSession(t, router)

	w, resp := doRequest(t, router, http.MethodGet, "/api/v1/sessions/"+id+"/players", nil)
	require.Equal(t, http.StatusOK, w.Code)
	require.True(t, resp.Success)

	data := resp.Data.(map[string]interface{})
	rows := data["rows"].([]interface{})
	assert.Len(t, rows, 15)

	state := data["state"].(map[string]interface{})
	assert.Equal(t, float64(1), state["page"])
	assert.Equal(t, float64(2), state["total_pages"])
	assert.Equal(t, float64(20), state["total_players"])
}

func TestChangePageOverHTTP(t *testing.T) {
	router, _ := setupTestRouter(t, newStubStore(20))
	id := createTestSession(t, router)

	w, resp := doRequest(t, router, http.MethodPost, "/api/v1/sessions/"+id+"/players/page", map[string]int{"delta": 1})
	require.Equal(t, http.StatusOK, w.Code)

	data := resp.Data.(map[string]interface{})
	state := data["state"].(map[string]interface{})
	assert.Equal(t, float64(2), state["page"])
	rows := data["rows"].([]interface{})
	assert.Len(t, rows, 5)
}

func TestSelectHideAndUnhideOverHTTP(t *testing.T) {
	router, _ := setupTestRouter(t, newStubStore(5))
	id := createTestSession(t, router)
	base := "/api/v1/sessions/" + id

	w, _ := doRequest(t, router, http.MethodPost, base+"/players/select", map[string]int{"player_id": 2})
	require.Equal(t, http.StatusOK, w.Code)

	w, resp := doRequest(t, router, http.MethodPost, base+"/players/hide", nil)
	require.Equal(t, http.StatusOK, w.Code)
	data := resp.Data.(map[string]interface{})
	assert.Len(t, data["rows"].([]interface{}), 4)

	w, resp = doRequest(t, router, http.MethodPost, base+"/players/unhide", nil)
	require.Equal(t, http.StatusOK, w.Code)
	data = resp.Data.(map[string]interface{})
	assert.Len(t, data["rows"].([]interface{}), 5)
}

func TestSelectOffPagePlayerRejected(t *testing.T) {
	router, _ := setupTestRouter(t, newStubStore(5))
	id := createTestSession(t, router)

	w, resp := doRequest(t, router, http.MethodPost, "/api/v1/sessions/"+id+"/players/select", map[string]int{"player_id": 99})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.False(t, resp.Success)
}

func TestModifierFlowOverHTTP(t *testing.T) {
	router, _ := setupTestRouter(t, newStubStore(5))
	id := createTestSession(t, router)
	base := "/api/v1/sessions/" + id + "/modifiers"

	w, _ := doRequest(t, router, http.MethodPost, base+"/stage", map[string]string{"key": "goal", "value": "2.5"})
	require.Equal(t, http.StatusOK, w.Code)

	// Unparsable staged value is accepted on stage but rejects the commit.
	w, _ = doRequest(t, router, http.MethodPost, base+"/stage", map[string]string{"key": "assist", "value": "."})
	require.Equal(t, http.StatusOK, w.Code)
	w, resp := doRequest(t, router, http.MethodPost, base+"/commit", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.False(t, resp.Success)

	w, _ = doRequest(t, router, http.MethodPost, base+"/stage", map[string]string{"key": "assist", "value": "1"})
	require.Equal(t, http.StatusOK, w.Code)
	w, resp = doRequest(t, router, http.MethodPost, base+"/commit", nil)
	require.Equal(t, http.StatusOK, w.Code)

	data := resp.Data.(map[string]interface{})
	committed := data["committed"].(map[string]interface{})
	goal := committed["goal"].(map[string]interface{})
	assert.Equal(t, 2.5, goal["value"])
}

func TestInvalidModifierCharactersRejected(t *testing.T) {
	router, _ := setupTestRouter(t, newStubStore(5))
	id := createTestSession(t, router)

	w, resp := doRequest(t, router, http.MethodPost, "/api/v1/sessions/"+id+"/modifiers/stage", map[string]string{"key": "goal", "value": "1.2.3"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.False(t, resp.Success)
}

func TestBulkAddToTeamOverHTTP(t *testing.T) {
	store := newStubStore(5)
	router, _ := setupTestRouter(t, store)
	id := createTestSession(t, router)
	base := "/api/v1/sessions/" + id

	doRequest(t, router, http.MethodPost, base+"/players/select", map[string]int{"player_id": 1})
	doRequest(t, router, http.MethodPost, base+"/players/select", map[string]int{"player_id": 3})

	w, resp := doRequest(t, router, http.MethodPost, base+"/players/team", nil)
	require.Equal(t, http.StatusOK, w.Code)
	require.True(t, resp.Success)

	data := resp.Data.(map[string]interface{})
	assert.Empty(t, data["failed_ids"])
	assert.ElementsMatch(t, []interface{}{float64(1), float64(3)}, data["team"])
	assert.Len(t, data["rows"].([]interface{}), 3)
	assert.ElementsMatch(t, []int{1, 3}, store.teamIDs)

	// The roster endpoint serves the members with their stats.
	w, resp = doRequest(t, router, http.MethodGet, base+"/team", nil)
	require.Equal(t, http.StatusOK, w.Code)
	teamData := resp.Data.(map[string]interface{})
	assert.Len(t, teamData["players"].([]interface{}), 2)

	// Removing a member puts the player back in the browse pool.
	w, _ = doRequest(t, router, http.MethodDelete, base+"/team/3", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, []int{1}, store.teamIDs)
}

func TestHistoryGatedBySelectionOverHTTP(t *testing.T) {
	store := newStubStore(5)
	store.history[2] = []models.SeasonLine{{SeasonID: 20222023, Label: "22/23"}}
	router, _ := setupTestRouter(t, store)
	id := createTestSession(t, router)
	base := "/api/v1/sessions/" + id

	doRequest(t, router, http.MethodPost, base+"/players/select", map[string]int{"player_id": 1})

	w, resp := doRequest(t, router, http.MethodGet, base+"/players/2/history", nil)
	assert.Equal(t, http.StatusConflict, w.Code)
	assert.False(t, resp.Success)

	doRequest(t, router, http.MethodPost, base+"/players/select", map[string]int{"player_id": 1})

	w, resp = doRequest(t, router, http.MethodGet, base+"/players/2/history", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, resp.Data.([]interface{}), 1)
}

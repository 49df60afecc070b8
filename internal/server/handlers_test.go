package server

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/knapsack-solver/internal/genetic"
	"github.com/jonathan/knapsack-solver/internal/types"
)

func postSolve(t *testing.T, srv *Server, req *types.SolveRequest) *httptest.ResponseRecorder {
	t.Helper()
	httpReq := httptest.NewRequest(http.MethodPost, "/solve", solveBody(t, req))
	w := httptest.NewRecorder()
	srv.handleSolve(w, httpReq)
	return w
}

func TestHandleSolve_Success(t *testing.T) {
	srv := newTestServer(t)

	seed := int64(42)
	w := postSolve(t, srv, &types.SolveRequest{
		MaxWeight: 50,
		Items: []types.Item{
			{Name: "a", Weight: 10, Value: 60},
			{Name: "b", Weight: 20, Value: 100},
			{Name: "c", Weight: 30, Value: 120},
		},
		Seed: &seed,
	})

	require.Equal(t, http.StatusOK, w.Code)
	var resp types.SolveResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))

	assert.Equal(t, 220, resp.TotalValue)
	assert.LessOrEqual(t, resp.TotalWeight, 50)

	// Totals must match the listed items
	weight, value := 0, 0
	for _, item := range resp.SelectedItems {
		weight += item.Weight
		value += item.Value
	}
	assert.Equal(t, weight, resp.TotalWeight)
	assert.Equal(t, value, resp.TotalValue)
}

func TestHandleSolve_EmptyItems(t *testing.T) {
	srv := newTestServer(t)

	w := postSolve(t, srv, &types.SolveRequest{MaxWeight: 100, Items: []types.Item{}})

	require.Equal(t, http.StatusOK, w.Code)
	var resp types.SolveResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Empty(t, resp.SelectedItems)
	assert.Equal(t, 0, resp.TotalValue)
	assert.Equal(t, 0, resp.TotalWeight)
}

func TestHandleSolve_GAOverrides(t *testing.T) {
	srv := newTestServer(t)

	seed := int64(7)
	w := postSolve(t, srv, &types.SolveRequest{
		MaxWeight:      15,
		Items:          []types.Item{{Name: "tent", Weight: 10, Value: 30}},
		PopulationSize: 20,
		Generations:    25,
		MutationRate:   0.05,
		Seed:           &seed,
	})

	require.Equal(t, http.StatusOK, w.Code)
	var resp types.SolveResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, 30, resp.TotalValue)
	assert.Len(t, resp.BestFitnessByGeneration, 25, "trace should reflect the overridden generation count")
}

func TestHandleSolve_Restarts(t *testing.T) {
	srv := newTestServer(t)

	seed := int64(3)
	w := postSolve(t, srv, &types.SolveRequest{
		MaxWeight: 50,
		Items: []types.Item{
			{Name: "a", Weight: 10, Value: 60},
			{Name: "b", Weight: 20, Value: 100},
			{Name: "c", Weight: 30, Value: 120},
		},
		Seed:     &seed,
		Restarts: 4,
	})

	require.Equal(t, http.StatusOK, w.Code)
	var resp types.SolveResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, 220, resp.TotalValue)
}

func TestHandleSolve_InvalidBody(t *testing.T) {
	srv := newTestServer(t)

	req := httptest.NewRequest(http.MethodPost, "/solve", strings.NewReader("{ not json"))
	w := httptest.NewRecorder()
	srv.handleSolve(w, req)

	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "Invalid request body")
}

func TestHandleSolve_NegativeCapacity(t *testing.T) {
	srv := newTestServer(t)

	w := postSolve(t, srv, &types.SolveRequest{MaxWeight: -5, Items: []types.Item{}})
	require.Equal(t, http.StatusBadRequest, w.Code)
}

func TestHandleSolve_NegativeItemWeight(t *testing.T) {
	srv := newTestServer(t)

	w := postSolve(t, srv, &types.SolveRequest{
		MaxWeight: 10,
		Items:     []types.Item{{Name: "x", Weight: -1, Value: 5}},
	})
	require.Equal(t, http.StatusBadRequest, w.Code)
}

func TestHandleSolve_InvalidOverrideCombination(t *testing.T) {
	srv := newTestServer(t)

	// More elites than the population can hold
	seed := int64(1)
	w := postSolve(t, srv, &types.SolveRequest{
		MaxWeight:      10,
		Items:          []types.Item{{Name: "a", Weight: 1, Value: 1}},
		PopulationSize: 10,
		EliteCount:     20,
		Seed:           &seed,
	})

	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "elite_count")
}

func TestApplyOverrides(t *testing.T) {
	defaults := genetic.DefaultConfig()
	req := &types.SolveRequest{PopulationSize: 30, CrossoverRate: 0.5}

	cfg := applyOverrides(defaults, req)

	assert.Equal(t, 30, cfg.PopulationSize)
	assert.Equal(t, 0.5, cfg.CrossoverRate)
	assert.Equal(t, defaults.Generations, cfg.Generations)
	assert.Equal(t, defaults.TournamentSize, cfg.TournamentSize)
}

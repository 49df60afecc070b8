package server

import (
	"encoding/json"
	"log"
	"net/http"
	"strconv"
	"time"

	"github.com/google/uuid"

	"github.com/jonathan/knapsack-solver/internal/genetic"
	"github.com/jonathan/knapsack-solver/internal/types"
)

// handleSolve runs one knapsack optimization and returns the best
// selection found. The solver is stateless; every request gets a fresh
// population.
func (s *Server) handleSolve(w http.ResponseWriter, r *http.Request) {
	var req types.SolveRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if err := req.Validate(); err != nil {
		s.errorResponse(w, HTTPStatus(err), err.Error())
		return
	}

	var runID uuid.UUID
	if s.store != nil {
		id, err := s.store.CreateSolveRun(r.Context(), &req)
		if err != nil {
			// History is best-effort; the solve itself proceeds.
			log.Printf("Failed to record solve run: %v", err)
		} else {
			runID = id
		}
	}

	cfg := applyOverrides(s.defaults, &req)
	seed := time.Now().UnixNano()
	if req.Seed != nil {
		seed = *req.Seed
	}
	restarts := req.Restarts
	if restarts < 1 {
		restarts = 1
	}

	start := time.Now()
	sol, err := genetic.SolveWithRestarts(r.Context(), cfg, seed, restarts, req.Items, req.MaxWeight)
	if err != nil {
		if s.store != nil && runID != uuid.Nil {
			if ferr := s.store.FailSolveRun(r.Context(), runID, err.Error()); ferr != nil {
				log.Printf("Failed to mark solve run failed: %v", ferr)
			}
		}
		s.errorResponse(w, HTTPStatus(err), err.Error())
		return
	}

	resp := solutionToResponse(sol)
	if s.store != nil && runID != uuid.Nil {
		if err := s.store.CompleteSolveRun(r.Context(), runID, resp, time.Since(start)); err != nil {
			log.Printf("Failed to complete solve run: %v", err)
		}
	}

	s.jsonResponse(w, http.StatusOK, resp)
}

// handleListRuns returns recent solve runs, newest first.
func (s *Server) handleListRuns(w http.ResponseWriter, r *http.Request) {
	if s.store == nil {
		err := &ErrRunHistoryDisabled{}
		s.errorResponse(w, HTTPStatus(err), err.Error())
		return
	}

	limit := 50
	if v := r.URL.Query().Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 1 {
			s.errorResponse(w, http.StatusBadRequest, "Invalid limit parameter")
			return
		}
		limit = n
	}

	runs, err := s.store.ListSolveRuns(r.Context(), limit)
	if err != nil {
		s.errorResponse(w, HTTPStatus(err), "Database error: "+err.Error())
		return
	}
	s.jsonResponse(w, http.StatusOK, runs)
}

// handleGetRun returns a single solve run by ID.
func (s *Server) handleGetRun(w http.ResponseWriter, r *http.Request) {
	if s.store == nil {
		err := &ErrRunHistoryDisabled{}
		s.errorResponse(w, HTTPStatus(err), err.Error())
		return
	}

	idStr := r.PathValue("id")
	runID, err := uuid.Parse(idStr)
	if err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid run ID")
		return
	}

	run, err := s.store.GetSolveRun(r.Context(), runID)
	if err != nil {
		if HTTPStatus(err) == http.StatusNotFound {
			notFound := &ErrRunNotFound{ID: idStr}
			s.errorResponse(w, http.StatusNotFound, notFound.Error())
			return
		}
		s.errorResponse(w, HTTPStatus(err), "Database error: "+err.Error())
		return
	}
	s.jsonResponse(w, http.StatusOK, run)
}

// applyOverrides layers per-request parameters over the server defaults.
func applyOverrides(defaults genetic.Config, req *types.SolveRequest) genetic.Config {
	cfg := defaults
	if req.PopulationSize > 0 {
		cfg.PopulationSize = req.PopulationSize
	}
	if req.Generations > 0 {
		cfg.Generations = req.Generations
	}
	if req.MutationRate > 0 {
		cfg.MutationRate = req.MutationRate
	}
	if req.CrossoverRate > 0 {
		cfg.CrossoverRate = req.CrossoverRate
	}
	if req.TournamentSize > 0 {
		cfg.TournamentSize = req.TournamentSize
	}
	if req.EliteCount > 0 {
		cfg.EliteCount = req.EliteCount
	}
	return cfg
}

// solutionToResponse converts a core solution into the wire shape.
func solutionToResponse(sol *genetic.Solution) *types.SolveResponse {
	return &types.SolveResponse{
		SelectedItems:           sol.SelectedItems,
		TotalValue:              sol.TotalValue,
		TotalWeight:             sol.TotalWeight,
		BestFitnessByGeneration: sol.BestFitnessByGeneration,
	}
}

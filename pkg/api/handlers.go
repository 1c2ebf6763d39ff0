package api

import (
	"encoding/json"
	"errors"
	"mime"
	"net/http"
	"sync/atomic"

	"chessmotion/pkg/board"
	"chessmotion/pkg/orchestrator"
)

// Planner is the subset of *orchestrator.Orchestrator the handlers
// depend on, accepted as an interface so handlers can be tested against
// a fake.
type Planner interface {
	PlanMove(move board.Move) (*orchestrator.Plan, error)
	PlanBestMove(boardState string) (*orchestrator.Plan, error)
}

// Handlers holds the HTTP handlers and their dependencies.
type Handlers struct {
	planner Planner

	plansServed atomic.Uint64
	plansFailed atomic.Uint64
}

// NewHandlers creates handlers wired to the given planner.
func NewHandlers(planner Planner) *Handlers {
	return &Handlers{planner: planner}
}

// HandlePlan handles POST /api/v1/plan.
func (h *Handlers) HandlePlan(w http.ResponseWriter, r *http.Request) {
	// Enforce Content-Type.
	mediaType, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))
	if mediaType != "application/json" {
		writeError(w, http.StatusBadRequest, "invalid_request", "")
		return
	}

	// Parse request.
	var req PlanRequest
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, 1024)).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_request", "")
		return
	}
	if req.Move == "" && req.BoardState == "" {
		writeError(w, http.StatusBadRequest, "missing_move_or_board_state", "")
		return
	}

	var plan *orchestrator.Plan
	var err error
	if req.BoardState != "" {
		plan, err = h.planner.PlanBestMove(req.BoardState)
	} else {
		plan, err = h.planner.PlanMove(board.Move(req.Move))
	}

	if err != nil {
		h.plansFailed.Add(1)
		switch {
		case errors.Is(err, orchestrator.ErrStartInsideObstacle):
			writeError(w, http.StatusUnprocessableEntity, "start_inside_obstacle", "move")
		case errors.Is(err, orchestrator.ErrGoalInsideObstacle):
			writeError(w, http.StatusUnprocessableEntity, "goal_inside_obstacle", "move")
		default:
			writeError(w, http.StatusInternalServerError, "internal_error", "")
		}
		return
	}

	h.plansServed.Add(1)

	resp := PlanResponse{Move: string(plan.Move)}
	for _, leg := range plan.Legs {
		resp.Legs = append(resp.Legs, LegJSON{GCode: leg.GCode, Cost: leg.Cost})
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(resp)
}

// HandleHealth handles GET /api/v1/health.
func (h *Handlers) HandleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(HealthResponse{Status: "ok"})
}

// HandleStats handles GET /api/v1/stats.
func (h *Handlers) HandleStats(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(StatsResponse{
		PlansServed: h.plansServed.Load(),
		PlansFailed: h.plansFailed.Load(),
	})
}

func writeError(w http.ResponseWriter, status int, code, field string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(ErrorResponse{Error: code, Field: field})
}

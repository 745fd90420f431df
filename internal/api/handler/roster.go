package handler

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/mfreeman/rosterhub/internal/api/request"
	"github.com/mfreeman/rosterhub/internal/api/response"
	"github.com/mfreeman/rosterhub/internal/model"
	"github.com/mfreeman/rosterhub/internal/services/league"
	"github.com/mfreeman/rosterhub/internal/storage"
)

// RosterHandler handles roster endpoints
type RosterHandler struct {
	league *league.Service
}

// NewRosterHandler creates a new roster handler
func NewRosterHandler(league *league.Service) *RosterHandler {
	return &RosterHandler{league: league}
}

// List handles GET /api/v1/rosters with optional team and type filters
func (h *RosterHandler) List(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	f := storage.RosterFilter{
		TeamID: model.TeamID(q.Get("team")),
		Type:   model.RosterType(q.Get("type")),
	}
	if f.Type != "" && !f.Type.Valid() {
		WriteError(w, NewInvalidRequestError("unknown roster type"))
		return
	}

	rosters, err := h.league.ListRosters(r.Context(), f)
	if err != nil {
		WriteError(w, err)
		return
	}
	response.JSON(w, http.StatusOK, rosters)
}

// Get handles GET /api/v1/rosters/{id}
func (h *RosterHandler) Get(w http.ResponseWriter, r *http.Request) {
	id := model.RosterID(mux.Vars(r)["id"])

	roster, err := h.league.GetRoster(r.Context(), id)
	if err != nil {
		WriteError(w, err)
		return
	}
	response.JSON(w, http.StatusOK, roster)
}

// Create handles POST /api/v1/rosters
func (h *RosterHandler) Create(w http.ResponseWriter, r *http.Request) {
	var draft model.RosterDraft
	if err := json.NewDecoder(r.Body).Decode(&draft); err != nil {
		WriteError(w, NewInvalidRequestError("invalid request body"))
		return
	}

	roster, err := h.league.CreateRoster(r.Context(), draft)
	if err != nil {
		WriteError(w, err)
		return
	}
	response.JSON(w, http.StatusCreated, roster)
}

// Update handles PUT /api/v1/rosters/{id}
func (h *RosterHandler) Update(w http.ResponseWriter, r *http.Request) {
	id := model.RosterID(mux.Vars(r)["id"])

	var draft model.RosterDraft
	if err := json.NewDecoder(r.Body).Decode(&draft); err != nil {
		WriteError(w, NewInvalidRequestError("invalid request body"))
		return
	}

	roster, err := h.league.UpdateRoster(r.Context(), id, draft)
	if err != nil {
		WriteError(w, err)
		return
	}
	response.JSON(w, http.StatusOK, roster)
}

// Delete handles DELETE /api/v1/rosters/{id}
func (h *RosterHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id := model.RosterID(mux.Vars(r)["id"])

	if err := h.league.DeleteRoster(r.Context(), id); err != nil {
		WriteError(w, err)
		return
	}
	response.NoContent(w)
}

// AddPlayer handles PUT /api/v1/rosters/{id}/players
func (h *RosterHandler) AddPlayer(w http.ResponseWriter, r *http.Request) {
	id := model.RosterID(mux.Vars(r)["id"])

	var req request.RosterPlayerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, NewInvalidRequestError("invalid request body"))
		return
	}
	if req.PlayerID == "" {
		WriteError(w, NewInvalidRequestError("player_id is required"))
		return
	}

	roster, err := h.league.AddRosterPlayer(r.Context(), id, req.PlayerID)
	if err != nil {
		WriteError(w, err)
		return
	}
	response.JSON(w, http.StatusOK, roster)
}

// RemovePlayer handles DELETE /api/v1/rosters/{id}/players/{playerID}
func (h *RosterHandler) RemovePlayer(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	id := model.RosterID(vars["id"])
	playerID := model.PlayerID(vars["playerID"])

	roster, err := h.league.RemoveRosterPlayer(r.Context(), id, playerID)
	if err != nil {
		WriteError(w, err)
		return
	}
	response.JSON(w, http.StatusOK, roster)
}

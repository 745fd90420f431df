package handler

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/mfreeman/rosterhub/internal/api/response"
	"github.com/mfreeman/rosterhub/internal/model"
	"github.com/mfreeman/rosterhub/internal/services/league"
	"github.com/mfreeman/rosterhub/internal/storage"
)

// PlayerHandler handles player endpoints
type PlayerHandler struct {
	league *league.Service
}

// NewPlayerHandler creates a new player handler
func NewPlayerHandler(league *league.Service) *PlayerHandler {
	return &PlayerHandler{league: league}
}

// List handles GET /api/v1/players with optional team and status filters
func (h *PlayerHandler) List(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	f := storage.PlayerFilter{
		TeamID: model.TeamID(q.Get("team")),
		Status: model.PlayerStatus(q.Get("status")),
	}
	if f.Status != "" && !f.Status.Valid() {
		WriteError(w, NewInvalidRequestError("unknown player status"))
		return
	}

	players, err := h.league.ListPlayers(r.Context(), f)
	if err != nil {
		WriteError(w, err)
		return
	}
	response.JSON(w, http.StatusOK, players)
}

// Get handles GET /api/v1/players/{id}
func (h *PlayerHandler) Get(w http.ResponseWriter, r *http.Request) {
	id := model.PlayerID(mux.Vars(r)["id"])

	player, err := h.league.GetPlayer(r.Context(), id)
	if err != nil {
		WriteError(w, err)
		return
	}
	response.JSON(w, http.StatusOK, player)
}

// Create handles POST /api/v1/players
func (h *PlayerHandler) Create(w http.ResponseWriter, r *http.Request) {
	var draft model.PlayerDraft
	if err := json.NewDecoder(r.Body).Decode(&draft); err != nil {
		WriteError(w, NewInvalidRequestError("invalid request body"))
		return
	}

	player, err := h.league.CreatePlayer(r.Context(), draft)
	if err != nil {
		WriteError(w, err)
		return
	}
	response.JSON(w, http.StatusCreated, player)
}

// Update handles PUT /api/v1/players/{id}
func (h *PlayerHandler) Update(w http.ResponseWriter, r *http.Request) {
	id := model.PlayerID(mux.Vars(r)["id"])

	var draft model.PlayerDraft
	if err := json.NewDecoder(r.Body).Decode(&draft); err != nil {
		WriteError(w, NewInvalidRequestError("invalid request body"))
		return
	}

	player, err := h.league.UpdatePlayer(r.Context(), id, draft)
	if err != nil {
		WriteError(w, err)
		return
	}
	response.JSON(w, http.StatusOK, player)
}

// Delete handles DELETE /api/v1/players/{id}
func (h *PlayerHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id := model.PlayerID(mux.Vars(r)["id"])

	if err := h.league.DeletePlayer(r.Context(), id); err != nil {
		WriteError(w, err)
		return
	}
	response.NoContent(w)
}

// UpdateStatistics handles PUT /api/v1/players/{id}/statistics
func (h *PlayerHandler) UpdateStatistics(w http.ResponseWriter, r *http.Request) {
	id := model.PlayerID(mux.Vars(r)["id"])

	var stats model.PlayerStats
	if err := json.NewDecoder(r.Body).Decode(&stats); err != nil {
		WriteError(w, NewInvalidRequestError("invalid request body"))
		return
	}

	player, err := h.league.UpdatePlayerStats(r.Context(), id, stats)
	if err != nil {
		WriteError(w, err)
		return
	}
	response.JSON(w, http.StatusOK, player)
}

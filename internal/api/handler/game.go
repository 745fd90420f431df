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

// GameHandler handles game endpoints
type GameHandler struct {
	league *league.Service
}

// NewGameHandler creates a new game handler
func NewGameHandler(league *league.Service) *GameHandler {
	return &GameHandler{league: league}
}

// List handles GET /api/v1/games with optional team and status filters
func (h *GameHandler) List(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	f := storage.GameFilter{
		TeamID: model.TeamID(q.Get("team")),
		Status: model.GameStatus(q.Get("status")),
	}
	if f.Status != "" && !f.Status.Valid() {
		WriteError(w, NewInvalidRequestError("unknown game status"))
		return
	}

	games, err := h.league.ListGames(r.Context(), f)
	if err != nil {
		WriteError(w, err)
		return
	}
	response.JSON(w, http.StatusOK, games)
}

// Get handles GET /api/v1/games/{id}
func (h *GameHandler) Get(w http.ResponseWriter, r *http.Request) {
	id := model.GameID(mux.Vars(r)["id"])

	game, err := h.league.GetGame(r.Context(), id)
	if err != nil {
		WriteError(w, err)
		return
	}
	response.JSON(w, http.StatusOK, game)
}

// Create handles POST /api/v1/games
func (h *GameHandler) Create(w http.ResponseWriter, r *http.Request) {
	var draft model.GameDraft
	if err := json.NewDecoder(r.Body).Decode(&draft); err != nil {
		WriteError(w, NewInvalidRequestError("invalid request body"))
		return
	}

	game, err := h.league.CreateGame(r.Context(), draft)
	if err != nil {
		WriteError(w, err)
		return
	}
	response.JSON(w, http.StatusCreated, game)
}

// Update handles PUT /api/v1/games/{id}
func (h *GameHandler) Update(w http.ResponseWriter, r *http.Request) {
	id := model.GameID(mux.Vars(r)["id"])

	var draft model.GameDraft
	if err := json.NewDecoder(r.Body).Decode(&draft); err != nil {
		WriteError(w, NewInvalidRequestError("invalid request body"))
		return
	}

	game, err := h.league.UpdateGame(r.Context(), id, draft)
	if err != nil {
		WriteError(w, err)
		return
	}
	response.JSON(w, http.StatusOK, game)
}

// Delete handles DELETE /api/v1/games/{id}
func (h *GameHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id := model.GameID(mux.Vars(r)["id"])

	if err := h.league.DeleteGame(r.Context(), id); err != nil {
		WriteError(w, err)
		return
	}
	response.NoContent(w)
}

// UpdateParticipation handles PUT /api/v1/games/{id}/participation
func (h *GameHandler) UpdateParticipation(w http.ResponseWriter, r *http.Request) {
	id := model.GameID(mux.Vars(r)["id"])

	var req model.Participation
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, NewInvalidRequestError("invalid request body"))
		return
	}

	game, err := h.league.SetParticipation(r.Context(), id, req.PlayerIDs)
	if err != nil {
		WriteError(w, err)
		return
	}
	response.JSON(w, http.StatusOK, game)
}

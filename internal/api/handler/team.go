package handler

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/mfreeman/rosterhub/internal/api/middleware"
	"github.com/mfreeman/rosterhub/internal/api/response"
	"github.com/mfreeman/rosterhub/internal/model"
	"github.com/mfreeman/rosterhub/internal/services/league"
)

// TeamHandler handles team endpoints
type TeamHandler struct {
	league *league.Service
}

// NewTeamHandler creates a new team handler
func NewTeamHandler(league *league.Service) *TeamHandler {
	return &TeamHandler{league: league}
}

// List handles GET /api/v1/teams
func (h *TeamHandler) List(w http.ResponseWriter, r *http.Request) {
	teams, err := h.league.ListTeams(r.Context())
	if err != nil {
		WriteError(w, err)
		return
	}
	response.JSON(w, http.StatusOK, teams)
}

// Get handles GET /api/v1/teams/{id}
func (h *TeamHandler) Get(w http.ResponseWriter, r *http.Request) {
	id := model.TeamID(mux.Vars(r)["id"])

	team, err := h.league.GetTeam(r.Context(), id)
	if err != nil {
		WriteError(w, err)
		return
	}
	response.JSON(w, http.StatusOK, team)
}

// Create handles POST /api/v1/teams
func (h *TeamHandler) Create(w http.ResponseWriter, r *http.Request) {
	var draft model.TeamDraft
	if err := json.NewDecoder(r.Body).Decode(&draft); err != nil {
		WriteError(w, NewInvalidRequestError("invalid request body"))
		return
	}

	identity := middleware.MustGetIdentity(r.Context())
	team, err := h.league.CreateTeam(r.Context(), draft, identity.ID)
	if err != nil {
		WriteError(w, err)
		return
	}
	response.JSON(w, http.StatusCreated, team)
}

// Update handles PUT /api/v1/teams/{id}
func (h *TeamHandler) Update(w http.ResponseWriter, r *http.Request) {
	id := model.TeamID(mux.Vars(r)["id"])

	var draft model.TeamDraft
	if err := json.NewDecoder(r.Body).Decode(&draft); err != nil {
		WriteError(w, NewInvalidRequestError("invalid request body"))
		return
	}

	team, err := h.league.UpdateTeam(r.Context(), id, draft)
	if err != nil {
		WriteError(w, err)
		return
	}
	response.JSON(w, http.StatusOK, team)
}

// Delete handles DELETE /api/v1/teams/{id}
func (h *TeamHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id := model.TeamID(mux.Vars(r)["id"])

	if err := h.league.DeleteTeam(r.Context(), id); err != nil {
		WriteError(w, err)
		return
	}
	response.NoContent(w)
}

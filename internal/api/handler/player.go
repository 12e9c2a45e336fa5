package handler

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/pongarena/playerhub/internal/api/middleware"
	"github.com/pongarena/playerhub/internal/api/request"
	"github.com/pongarena/playerhub/internal/api/response"
	"github.com/pongarena/playerhub/internal/model"
	"github.com/pongarena/playerhub/internal/services/achievements"
	"github.com/pongarena/playerhub/internal/services/identity"
	"github.com/pongarena/playerhub/internal/services/profile"
)

// PlayerHandler handles player-related endpoints
type PlayerHandler struct {
	identityService     *identity.Service
	profileService      *profile.Service
	achievementsService *achievements.Service
}

// NewPlayerHandler creates a new player handler
func NewPlayerHandler(identityService *identity.Service, profileService *profile.Service, achievementsService *achievements.Service) *PlayerHandler {
	return &PlayerHandler{
		identityService:     identityService,
		profileService:      profileService,
		achievementsService: achievementsService,
	}
}

// LoginCallback handles POST /api/v1/auth/callback
func (h *PlayerHandler) LoginCallback(w http.ResponseWriter, r *http.Request) {
	var req request.LoginCallbackRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, NewInvalidRequestError("invalid request body"))
		return
	}

	if req.ID == 0 {
		WriteError(w, NewInvalidRequestError("id is required"))
		return
	}
	if req.Login == "" {
		WriteError(w, NewInvalidRequestError("login is required"))
		return
	}

	player, err := h.identityService.FindOrCreate(r.Context(), model.PlayerID(req.ID), req.Login, req.Email)
	if err != nil {
		WriteError(w, err)
		return
	}

	token, err := h.identityService.IssueToken(player.ID)
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.AuthResponse{
		Player: response.PlayerFromModel(player),
		Token:  token,
	})
}

// GetMe handles GET /api/v1/players/me
func (h *PlayerHandler) GetMe(w http.ResponseWriter, r *http.Request) {
	player := middleware.MustGetPlayer(r.Context())
	response.JSON(w, http.StatusOK, response.PlayerFromModel(player))
}

// Get handles GET /api/v1/players/{id}
func (h *PlayerHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := playerIDVar(r)
	if err != nil {
		WriteError(w, err)
		return
	}

	player, err := h.profileService.Get(r.Context(), id)
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.PlayerFromModel(player))
}

// List handles GET /api/v1/players
func (h *PlayerHandler) List(w http.ResponseWriter, r *http.Request) {
	filter := model.PlayerFilter{
		Search: r.URL.Query().Get("search"),
	}
	if raw := r.URL.Query().Get("status"); raw != "" {
		status := model.Status(raw)
		filter.Status = &status
	}

	players, err := h.profileService.List(r.Context(), filter)
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.PlayersFromModel(players))
}

// UpdateUsername handles PATCH /api/v1/players/me/username
func (h *PlayerHandler) UpdateUsername(w http.ResponseWriter, r *http.Request) {
	var req request.UpdateUsernameRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, NewInvalidRequestError("invalid request body"))
		return
	}
	if req.Username == "" {
		WriteError(w, NewInvalidRequestError("username is required"))
		return
	}

	player := middleware.MustGetPlayer(r.Context())
	updated, err := h.profileService.UpdateUsername(r.Context(), player.ID, req.Username)
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.PlayerFromModel(updated))
}

// UpdateAvatar handles PATCH /api/v1/players/me/avatar
func (h *PlayerHandler) UpdateAvatar(w http.ResponseWriter, r *http.Request) {
	var req request.UpdateAvatarRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, NewInvalidRequestError("invalid request body"))
		return
	}
	if req.Avatar == "" {
		WriteError(w, NewInvalidRequestError("avatar is required"))
		return
	}

	player := middleware.MustGetPlayer(r.Context())
	updated, err := h.profileService.UpdateAvatar(r.Context(), player.ID, req.Avatar)
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.PlayerFromModel(updated))
}

// UpdateLevel handles POST /api/v1/players/me/level
func (h *PlayerHandler) UpdateLevel(w http.ResponseWriter, r *http.Request) {
	player := middleware.MustGetPlayer(r.Context())
	updated, err := h.profileService.UpdateLevel(r.Context(), player.ID)
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.PlayerFromModel(updated))
}

// UpdateStatus handles PATCH /api/v1/players/me/status
func (h *PlayerHandler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	var req request.UpdateStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, NewInvalidRequestError("invalid request body"))
		return
	}
	if req.Status == "" {
		WriteError(w, NewInvalidRequestError("status is required"))
		return
	}

	player := middleware.MustGetPlayer(r.Context())
	updated, err := h.profileService.UpdateStatus(r.Context(), player.ID, model.Status(req.Status))
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.PlayerFromModel(updated))
}

// Achievements handles GET /api/v1/players/{id}/achievements
func (h *PlayerHandler) Achievements(w http.ResponseWriter, r *http.Request) {
	id, err := playerIDVar(r)
	if err != nil {
		WriteError(w, err)
		return
	}

	earned, err := h.achievementsService.TiersForPlayer(r.Context(), id)
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.Achievements{Tiers: earned})
}

// playerIDVar parses the {id} path variable
func playerIDVar(r *http.Request) (model.PlayerID, error) {
	raw := mux.Vars(r)["id"]
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, NewInvalidRequestError("invalid player id")
	}
	return model.PlayerID(id), nil
}

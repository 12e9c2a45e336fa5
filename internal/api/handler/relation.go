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
	"github.com/pongarena/playerhub/internal/services/relations"
)

// RelationHandler handles friend/block relation endpoints
type RelationHandler struct {
	relationsService *relations.Service
}

// NewRelationHandler creates a new relation handler
func NewRelationHandler(relationsService *relations.Service) *RelationHandler {
	return &RelationHandler{
		relationsService: relationsService,
	}
}

// Create handles POST /api/v1/relations
func (h *RelationHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req request.CreateRelationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, NewInvalidRequestError("invalid request body"))
		return
	}
	if req.TargetID == 0 {
		WriteError(w, NewInvalidRequestError("target_id is required"))
		return
	}
	kind := model.RelationKind(req.Kind)
	if kind != model.RelationFriend && kind != model.RelationBlocked {
		WriteError(w, NewInvalidRequestError("kind must be friend or blocked"))
		return
	}

	player := middleware.MustGetPlayer(r.Context())
	if model.PlayerID(req.TargetID) == player.ID {
		WriteError(w, NewInvalidRequestError("cannot create a relation to yourself"))
		return
	}

	relation, err := h.relationsService.Create(r.Context(), player.ID, model.PlayerID(req.TargetID), kind)
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusCreated, response.RelationFromModel(relation))
}

// List handles GET /api/v1/relations, scoped to the authenticated player
func (h *RelationHandler) List(w http.ResponseWriter, r *http.Request) {
	player := middleware.MustGetPlayer(r.Context())

	filter := model.RelationFilter{PlayerID: &player.ID}
	if raw := r.URL.Query().Get("kind"); raw != "" {
		kind := model.RelationKind(raw)
		filter.Kind = &kind
	}

	list, err := h.relationsService.List(r.Context(), filter)
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.RelationsFromModel(list))
}

// Get handles GET /api/v1/relations/{id}
func (h *RelationHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := relationIDVar(r)
	if err != nil {
		WriteError(w, err)
		return
	}

	relation, err := h.relationsService.Get(r.Context(), id)
	if err != nil {
		WriteError(w, err)
		return
	}

	// Relations are private to their owner
	player := middleware.MustGetPlayer(r.Context())
	if relation.PlayerID != player.ID {
		WriteError(w, model.ErrRelationNotFound)
		return
	}

	response.JSON(w, http.StatusOK, response.RelationFromModel(relation))
}

// Delete handles DELETE /api/v1/relations/{id}
func (h *RelationHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := relationIDVar(r)
	if err != nil {
		WriteError(w, err)
		return
	}

	relation, err := h.relationsService.Get(r.Context(), id)
	if err != nil {
		WriteError(w, err)
		return
	}

	player := middleware.MustGetPlayer(r.Context())
	if relation.PlayerID != player.ID {
		WriteError(w, model.ErrRelationNotFound)
		return
	}

	if err := h.relationsService.Delete(r.Context(), id); err != nil {
		WriteError(w, err)
		return
	}

	response.NoContent(w)
}

// relationIDVar parses the {id} path variable
func relationIDVar(r *http.Request) (model.RelationID, error) {
	raw := mux.Vars(r)["id"]
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, NewInvalidRequestError("invalid relation id")
	}
	return model.RelationID(id), nil
}

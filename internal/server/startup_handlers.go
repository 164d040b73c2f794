package server

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/jagan25-mj/startup-connect-hub/internal/auth"
	"github.com/jagan25-mj/startup-connect-hub/internal/authz"
	"github.com/jagan25-mj/startup-connect-hub/internal/db/models"
	"github.com/jagan25-mj/startup-connect-hub/internal/repository"
)

// StartupRequest is the body of startup create and update calls.
type StartupRequest struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
	Industry    *string `json:"industry"`
	Stage       *string `json:"stage"`
	Website     *string `json:"website"`
}

// StartupHandlers bundles the startup CRUD endpoints around the access
// mediator and the startup repository.
type StartupHandlers struct {
	mediator *authz.Mediator
	startups repository.StartupRepository
}

func NewStartupHandlers(mediator *authz.Mediator, startups repository.StartupRepository) *StartupHandlers {
	return &StartupHandlers{mediator: mediator, startups: startups}
}

// List serves GET /api/startups. Supports my=true, owner_id, industry and
// stage query filters; my=true narrows to the caller's own startups.
func (h *StartupHandlers) List(w http.ResponseWriter, r *http.Request) {
	principal, _ := auth.PrincipalFromContext(r.Context())

	decision, err := h.mediator.Authorize(r.Context(), principal, auth.StartupList, nil)
	if err != nil {
		writeInternalError(w)
		return
	}
	if !decision.Allowed {
		writeDenial(w, decision)
		return
	}

	q := r.URL.Query()
	filter := repository.StartupFilter{
		OwnerID:  q.Get("owner_id"),
		Industry: q.Get("industry"),
		Stage:    q.Get("stage"),
	}
	if strings.EqualFold(q.Get("my"), "true") {
		filter.OwnerID = principal.ID
	}

	list, err := h.startups.List(r.Context(), filter)
	if err != nil {
		log.Printf("startups: list: %v", err)
		writeInternalError(w)
		return
	}

	respondJSON(w, http.StatusOK, startupResponses(list))
}

// ListMine serves GET /api/startups/my: the caller's own startups. Founders
// only.
func (h *StartupHandlers) ListMine(w http.ResponseWriter, r *http.Request) {
	principal, _ := auth.PrincipalFromContext(r.Context())

	decision, err := h.mediator.Authorize(r.Context(), principal, auth.StartupListMine, nil)
	if err != nil {
		writeInternalError(w)
		return
	}
	if !decision.Allowed {
		writeDenial(w, decision)
		return
	}

	list, err := h.startups.List(r.Context(), repository.StartupFilter{OwnerID: principal.ID})
	if err != nil {
		log.Printf("startups: list mine: %v", err)
		writeInternalError(w)
		return
	}

	respondJSON(w, http.StatusOK, startupResponses(list))
}

// Create serves POST /api/startups. Founders only; ownership is taken from
// the authenticated principal, never from the request body.
func (h *StartupHandlers) Create(w http.ResponseWriter, r *http.Request) {
	principal, _ := auth.PrincipalFromContext(r.Context())

	decision, err := h.mediator.Authorize(r.Context(), principal, auth.StartupCreate, nil)
	if err != nil {
		writeInternalError(w)
		return
	}
	if !decision.Allowed {
		writeDenial(w, decision)
		return
	}

	var req StartupRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, KindMalformed, "invalid request body")
		return
	}
	if req.Name == nil || strings.TrimSpace(*req.Name) == "" {
		writeError(w, http.StatusBadRequest, KindInvalid, "name is required")
		return
	}

	startup := &models.Startup{
		Name:    strings.TrimSpace(*req.Name),
		OwnerID: principal.ID,
	}
	if req.Description != nil {
		startup.Description = *req.Description
	}
	if req.Industry != nil {
		startup.Industry = *req.Industry
	}
	if req.Stage != nil {
		startup.Stage = *req.Stage
	}
	if req.Website != nil {
		startup.Website = *req.Website
	}

	if err := h.startups.Create(r.Context(), startup); err != nil {
		log.Printf("startups: create: %v", err)
		writeInternalError(w)
		return
	}

	respondJSON(w, http.StatusCreated, map[string]any{
		"startup": startupResponse(startup),
		"message": "Startup created successfully!",
	})
}

// Detail serves GET /api/startups/{id}.
func (h *StartupHandlers) Detail(w http.ResponseWriter, r *http.Request) {
	principal, _ := auth.PrincipalFromContext(r.Context())
	startupID := chi.URLParam(r, "id")

	decision, err := h.mediator.Authorize(r.Context(), principal, auth.StartupRead, &authz.ResourceRef{StartupID: startupID})
	if err != nil {
		writeInternalError(w)
		return
	}
	if !decision.Allowed {
		writeDenial(w, decision)
		return
	}

	startup, err := h.startups.GetByID(r.Context(), startupID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			writeError(w, http.StatusNotFound, KindNotFound, "startup not found")
			return
		}
		writeInternalError(w)
		return
	}

	respondJSON(w, http.StatusOK, startupResponse(startup))
}

// Update serves PUT/PATCH /api/startups/{id}. Only the owning founder may
// update; absent fields are left untouched.
func (h *StartupHandlers) Update(w http.ResponseWriter, r *http.Request) {
	principal, _ := auth.PrincipalFromContext(r.Context())
	startupID := chi.URLParam(r, "id")

	decision, err := h.mediator.Authorize(r.Context(), principal, auth.StartupUpdate, &authz.ResourceRef{StartupID: startupID})
	if err != nil {
		writeInternalError(w)
		return
	}
	if !decision.Allowed {
		writeDenial(w, decision)
		return
	}

	var req StartupRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, KindMalformed, "invalid request body")
		return
	}
	if req.Name != nil && strings.TrimSpace(*req.Name) == "" {
		writeError(w, http.StatusBadRequest, KindInvalid, "name cannot be empty")
		return
	}

	startup, err := h.startups.GetByID(r.Context(), startupID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			writeError(w, http.StatusNotFound, KindNotFound, "startup not found")
			return
		}
		writeInternalError(w)
		return
	}

	if req.Name != nil {
		startup.Name = strings.TrimSpace(*req.Name)
	}
	if req.Description != nil {
		startup.Description = *req.Description
	}
	if req.Industry != nil {
		startup.Industry = *req.Industry
	}
	if req.Stage != nil {
		startup.Stage = *req.Stage
	}
	if req.Website != nil {
		startup.Website = *req.Website
	}

	if err := h.startups.Update(r.Context(), startup); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			writeError(w, http.StatusNotFound, KindNotFound, "startup not found")
			return
		}
		log.Printf("startups: update %s: %v", startupID, err)
		writeInternalError(w)
		return
	}

	respondJSON(w, http.StatusOK, map[string]any{
		"startup": startupResponse(startup),
		"message": "Startup updated successfully!",
	})
}

// Delete serves DELETE /api/startups/{id}. Only the owning founder may
// delete; interests cascade away with the startup.
func (h *StartupHandlers) Delete(w http.ResponseWriter, r *http.Request) {
	principal, _ := auth.PrincipalFromContext(r.Context())
	startupID := chi.URLParam(r, "id")

	decision, err := h.mediator.Authorize(r.Context(), principal, auth.StartupDelete, &authz.ResourceRef{StartupID: startupID})
	if err != nil {
		writeInternalError(w)
		return
	}
	if !decision.Allowed {
		writeDenial(w, decision)
		return
	}

	if err := h.startups.Delete(r.Context(), startupID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			writeError(w, http.StatusNotFound, KindNotFound, "startup not found")
			return
		}
		log.Printf("startups: delete %s: %v", startupID, err)
		writeInternalError(w)
		return
	}

	// The cached owner lookup is now stale.
	h.mediator.InvalidateOwner(startupID)

	respondJSON(w, http.StatusOK, map[string]any{
		"message": "Startup deleted successfully!",
	})
}

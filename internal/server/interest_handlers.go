package server

import (
	"errors"
	"log"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/jagan25-mj/startup-connect-hub/internal/auth"
	"github.com/jagan25-mj/startup-connect-hub/internal/authz"
	"github.com/jagan25-mj/startup-connect-hub/internal/db/models"
	"github.com/jagan25-mj/startup-connect-hub/internal/repository"
)

// InterestHandlers bundles the interest endpoints: talent expressing and
// withdrawing interest in a startup, founders listing interest in theirs.
type InterestHandlers struct {
	mediator  *authz.Mediator
	interests repository.InterestRepository
}

func NewInterestHandlers(mediator *authz.Mediator, interests repository.InterestRepository) *InterestHandlers {
	return &InterestHandlers{mediator: mediator, interests: interests}
}

// Create serves POST /api/startups/{id}/interest. Talent only; duplicates
// are rejected before the unique index would.
func (h *InterestHandlers) Create(w http.ResponseWriter, r *http.Request) {
	principal, _ := auth.PrincipalFromContext(r.Context())
	startupID := chi.URLParam(r, "id")

	decision, err := h.mediator.Authorize(r.Context(), principal, auth.InterestCreate, &authz.ResourceRef{StartupID: startupID})
	if err != nil {
		writeInternalError(w)
		return
	}
	if !decision.Allowed {
		writeDenial(w, decision)
		return
	}

	interest := &models.StartupInterest{
		UserID:    principal.ID,
		StartupID: startupID,
	}
	if err := h.interests.Create(r.Context(), interest); err != nil {
		// The unique index is the final arbiter when two requests race
		// past the mediator's advisory check.
		if errors.Is(err, repository.ErrDuplicateInterest) {
			writeError(w, http.StatusBadRequest, KindConflict, "you have already expressed interest in this startup")
			return
		}
		log.Printf("interests: create for startup %s: %v", startupID, err)
		writeInternalError(w)
		return
	}

	respondJSON(w, http.StatusCreated, map[string]any{
		"interest": interestResponse(interest),
		"message":  "Interest expressed successfully!",
	})
}

// Delete serves DELETE /api/startups/{id}/interest: withdraws the caller's
// interest. Withdrawing an interest that was never expressed is a client
// error, not a 404 on the startup.
func (h *InterestHandlers) Delete(w http.ResponseWriter, r *http.Request) {
	principal, _ := auth.PrincipalFromContext(r.Context())
	startupID := chi.URLParam(r, "id")

	decision, err := h.mediator.Authorize(r.Context(), principal, auth.InterestDelete, &authz.ResourceRef{StartupID: startupID})
	if err != nil {
		writeInternalError(w)
		return
	}
	if !decision.Allowed {
		writeDenial(w, decision)
		return
	}

	if err := h.interests.Delete(r.Context(), principal.ID, startupID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			writeError(w, http.StatusBadRequest, KindNotFound, "you have not expressed interest in this startup")
			return
		}
		log.Printf("interests: delete for startup %s: %v", startupID, err)
		writeInternalError(w)
		return
	}

	respondJSON(w, http.StatusOK, map[string]any{
		"message": "Interest withdrawn successfully!",
	})
}

// ListByStartup serves GET /api/startups/{id}/interests: who has expressed
// interest in a startup. Only the owning founder may see the roster.
func (h *InterestHandlers) ListByStartup(w http.ResponseWriter, r *http.Request) {
	principal, _ := auth.PrincipalFromContext(r.Context())
	startupID := chi.URLParam(r, "id")

	decision, err := h.mediator.Authorize(r.Context(), principal, auth.InterestList, &authz.ResourceRef{StartupID: startupID})
	if err != nil {
		writeInternalError(w)
		return
	}
	if !decision.Allowed {
		writeDenial(w, decision)
		return
	}

	list, err := h.interests.ListByStartup(r.Context(), startupID)
	if err != nil {
		log.Printf("interests: list for startup %s: %v", startupID, err)
		writeInternalError(w)
		return
	}

	respondJSON(w, http.StatusOK, interestResponses(list))
}

// ListMine serves GET /api/my/interests: the startups the caller has
// expressed interest in.
func (h *InterestHandlers) ListMine(w http.ResponseWriter, r *http.Request) {
	principal, _ := auth.PrincipalFromContext(r.Context())

	decision, err := h.mediator.Authorize(r.Context(), principal, auth.InterestListMine, nil)
	if err != nil {
		writeInternalError(w)
		return
	}
	if !decision.Allowed {
		writeDenial(w, decision)
		return
	}

	list, err := h.interests.ListByUser(r.Context(), principal.ID)
	if err != nil {
		log.Printf("interests: list mine: %v", err)
		writeInternalError(w)
		return
	}

	respondJSON(w, http.StatusOK, interestResponses(list))
}

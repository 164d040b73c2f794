package server

import (
	"errors"
	"log"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/jagan25-mj/startup-connect-hub/internal/auth"
	"github.com/jagan25-mj/startup-connect-hub/internal/authz"
	"github.com/jagan25-mj/startup-connect-hub/internal/repository"
)

// HandleUserList serves GET /api/auth/users. Any authenticated principal can
// browse the directory; the optional role query filters by role.
func HandleUserList(mediator *authz.Mediator, users repository.UserRepository) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		principal, _ := auth.PrincipalFromContext(r.Context())

		decision, err := mediator.Authorize(r.Context(), principal, auth.UserList, nil)
		if err != nil {
			writeInternalError(w)
			return
		}
		if !decision.Allowed {
			writeDenial(w, decision)
			return
		}

		role := r.URL.Query().Get("role")
		if role != "" && !auth.Role(role).Valid() {
			writeError(w, http.StatusBadRequest, KindInvalid, "invalid role filter")
			return
		}

		list, err := users.List(r.Context(), auth.Role(role))
		if err != nil {
			log.Printf("users: list: %v", err)
			writeInternalError(w)
			return
		}

		respondJSON(w, http.StatusOK, userResponses(list))
	}
}

// HandleUserDetail serves GET /api/auth/users/{id}. Deactivated accounts
// are invisible: the lookup is scoped to active users, so they 404 exactly
// like accounts that never existed.
func HandleUserDetail(mediator *authz.Mediator, users repository.UserRepository) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		principal, _ := auth.PrincipalFromContext(r.Context())

		decision, err := mediator.Authorize(r.Context(), principal, auth.UserRead, nil)
		if err != nil {
			writeInternalError(w)
			return
		}
		if !decision.Allowed {
			writeDenial(w, decision)
			return
		}

		user, err := users.GetActiveByID(r.Context(), chi.URLParam(r, "id"))
		if err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				writeError(w, http.StatusNotFound, KindNotFound, "user not found")
				return
			}
			writeInternalError(w)
			return
		}

		respondJSON(w, http.StatusOK, userResponse(user))
	}
}

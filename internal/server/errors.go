package server

import (
	"encoding/json"
	"net/http"

	"github.com/jagan25-mj/startup-connect-hub/internal/auth"
)

// Error kinds surfaced in the response envelope. 401, 403 and 404 are never
// collapsed: a caller can always tell "not logged in" from "logged in but
// not allowed" from "that wasn't found".
const (
	KindUnauthenticated = "unauthenticated"
	KindForbidden       = "forbidden"
	KindNotFound        = "not_found"
	KindConflict        = "conflict"
	KindMalformed       = "malformed"
	KindInvalid         = "invalid"
	KindInternal        = "internal"
)

type errorBody struct {
	Kind    string `json:"kind"`
	Message string `json:"message"`
}

type errorEnvelope struct {
	Error errorBody `json:"error"`
}

func writeError(w http.ResponseWriter, status int, kind, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(errorEnvelope{Error: errorBody{Kind: kind, Message: message}})
}

func writeInternalError(w http.ResponseWriter) {
	writeError(w, http.StatusInternalServerError, KindInternal, "internal server error")
}

// writeDenial maps a policy decision's deny reason to the HTTP status
// taxonomy. Duplicate interest and withdraw-of-absent-interest are 400-class
// structured errors rather than 409/404, matching the platform's contract.
func writeDenial(w http.ResponseWriter, decision auth.Decision) {
	switch decision.Reason {
	case auth.ReasonUnauthenticated:
		writeError(w, http.StatusUnauthorized, KindUnauthenticated, "authentication required")
	case auth.ReasonWrongRole:
		writeError(w, http.StatusForbidden, KindForbidden, "your role does not permit this action")
	case auth.ReasonNotOwner:
		writeError(w, http.StatusForbidden, KindForbidden, "you do not own this resource")
	case auth.ReasonNotFound:
		writeError(w, http.StatusNotFound, KindNotFound, "startup not found")
	case auth.ReasonDuplicateInterest:
		writeError(w, http.StatusBadRequest, KindConflict, "you have already expressed interest in this startup")
	case auth.ReasonNoInterest:
		writeError(w, http.StatusBadRequest, KindNotFound, "you have not expressed interest in this startup")
	default:
		writeError(w, http.StatusForbidden, KindForbidden, "access denied")
	}
}

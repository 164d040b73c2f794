package server

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"net/mail"
	"strings"

	"golang.org/x/crypto/bcrypt"

	"github.com/jagan25-mj/startup-connect-hub/internal/auth"
	"github.com/jagan25-mj/startup-connect-hub/internal/db/models"
	"github.com/jagan25-mj/startup-connect-hub/internal/repository"
)

const minPasswordLength = 8

// RegisterRequest is the body of POST /api/auth/register.
type RegisterRequest struct {
	Email           string `json:"email"`
	Password        string `json:"password"`
	PasswordConfirm string `json:"password_confirm"`
	FullName        string `json:"full_name"`
	Role            string `json:"role"`
}

// AuthResponse is returned on successful registration and login.
type AuthResponse struct {
	User    UserResponse   `json:"user"`
	Tokens  auth.TokenPair `json:"tokens"`
	Message string         `json:"message"`
}

// HandleRegister creates a new account and mints its first token pair.
func HandleRegister(users repository.UserRepository, issuer *auth.Issuer) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req RegisterRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, KindMalformed, "invalid request body")
			return
		}

		if msg := validateRegistration(&req); msg != "" {
			writeError(w, http.StatusBadRequest, KindInvalid, msg)
			return
		}

		hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
		if err != nil {
			writeInternalError(w)
			return
		}

		user := &models.User{
			Email:        strings.ToLower(strings.TrimSpace(req.Email)),
			PasswordHash: string(hash),
			FullName:     req.FullName,
			Role:         auth.Role(req.Role),
			Active:       true,
		}
		if err := users.Create(r.Context(), user); err != nil {
			if errors.Is(err, repository.ErrDuplicateEmail) {
				writeError(w, http.StatusBadRequest, KindConflict, "a user with this email already exists")
				return
			}
			log.Printf("register: create user: %v", err)
			writeInternalError(w)
			return
		}

		tokens, err := issuer.Issue(user.Principal())
		if err != nil {
			log.Printf("register: issue tokens: %v", err)
			writeInternalError(w)
			return
		}

		respondJSON(w, http.StatusCreated, AuthResponse{
			User:    userResponse(user),
			Tokens:  tokens,
			Message: "Account created successfully!",
		})
	}
}

func validateRegistration(req *RegisterRequest) string {
	if _, err := mail.ParseAddress(strings.TrimSpace(req.Email)); err != nil {
		return "a valid email address is required"
	}
	if len(req.Password) < minPasswordLength {
		return "password must be at least 8 characters"
	}
	if req.Password != req.PasswordConfirm {
		return "passwords do not match"
	}
	if req.FullName == "" {
		return "full_name is required"
	}
	if !auth.Role(req.Role).Valid() {
		return `invalid role: must be either "founder" or "talent"`
	}
	return ""
}

// LoginRequest is the body of POST /api/auth/login.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// HandleLogin verifies credentials and mints a fresh token pair. Failures
// are deliberately indistinguishable so login cannot probe which emails exist.
func HandleLogin(users repository.UserRepository, issuer *auth.Issuer) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req LoginRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, KindMalformed, "invalid request body")
			return
		}
		if req.Email == "" || req.Password == "" {
			writeError(w, http.StatusBadRequest, KindInvalid, "email and password are required")
			return
		}

		user, err := users.GetByEmail(r.Context(), req.Email)
		if err != nil {
			writeError(w, http.StatusUnauthorized, KindUnauthenticated, "invalid credentials")
			return
		}
		if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
			writeError(w, http.StatusUnauthorized, KindUnauthenticated, "invalid credentials")
			return
		}
		if !user.Active {
			writeError(w, http.StatusForbidden, KindForbidden, "account is disabled")
			return
		}

		tokens, err := issuer.Issue(user.Principal())
		if err != nil {
			log.Printf("login: issue tokens: %v", err)
			writeInternalError(w)
			return
		}

		respondJSON(w, http.StatusOK, AuthResponse{
			User:    userResponse(user),
			Tokens:  tokens,
			Message: "Login successful!",
		})
	}
}

// RefreshRequest is the body of POST /api/auth/token/refresh.
type RefreshRequest struct {
	Refresh string `json:"refresh"`
}

// RefreshResponse carries the newly minted access token. The refresh token
// is not rotated.
type RefreshResponse struct {
	Access string `json:"access"`
}

// HandleRefresh exchanges a valid refresh token for a new access token.
func HandleRefresh(verifier *auth.Verifier, issuer *auth.Issuer) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req RefreshRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Refresh == "" {
			writeError(w, http.StatusBadRequest, KindMalformed, "refresh token is required")
			return
		}

		principal, err := verifier.Verify(req.Refresh, auth.TokenKindRefresh)
		if err != nil {
			switch {
			case errors.Is(err, auth.ErrMalformedToken):
				writeError(w, http.StatusBadRequest, KindMalformed, "token is malformed")
			case errors.Is(err, auth.ErrWrongTokenKind):
				writeError(w, http.StatusUnauthorized, KindUnauthenticated, "a refresh token is required")
			default:
				writeError(w, http.StatusUnauthorized, KindUnauthenticated, "refresh token is invalid or expired")
			}
			return
		}

		access, err := issuer.IssueAccess(principal)
		if err != nil {
			log.Printf("refresh: issue access token: %v", err)
			writeInternalError(w)
			return
		}

		respondJSON(w, http.StatusOK, RefreshResponse{Access: access})
	}
}

// MeUpdateRequest is the body of PUT/PATCH /api/auth/me. Role and active
// are deliberately absent: a principal cannot change its own role or
// reactivate itself.
type MeUpdateRequest struct {
	FullName  *string   `json:"full_name"`
	Bio       *string   `json:"bio"`
	Skills    *[]string `json:"skills"`
	AvatarURL *string   `json:"avatar_url"`
}

// HandleMe serves the current user's profile: GET returns it, PUT/PATCH
// updates the mutable profile fields.
func HandleMe(users repository.UserRepository) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		principal, ok := auth.PrincipalFromContext(r.Context())
		if !ok {
			writeError(w, http.StatusUnauthorized, KindUnauthenticated, "authentication required")
			return
		}

		user, err := users.GetByID(r.Context(), principal.ID)
		if err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				writeError(w, http.StatusUnauthorized, KindUnauthenticated, "account no longer exists")
				return
			}
			writeInternalError(w)
			return
		}

		if r.Method == http.MethodGet {
			respondJSON(w, http.StatusOK, userResponse(user))
			return
		}

		var req MeUpdateRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, KindMalformed, "invalid request body")
			return
		}

		if req.FullName != nil {
			user.FullName = *req.FullName
		}
		if req.Bio != nil {
			user.Bio = *req.Bio
		}
		if req.Skills != nil {
			user.Skills = *req.Skills
		}
		if req.AvatarURL != nil {
			user.AvatarURL = *req.AvatarURL
		}

		if err := users.Update(r.Context(), user); err != nil {
			log.Printf("me: update user %s: %v", user.ID, err)
			writeInternalError(w)
			return
		}

		respondJSON(w, http.StatusOK, map[string]any{
			"user":    userResponse(user),
			"message": "Profile updated successfully!",
		})
	}
}

package server

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/jagan25-mj/startup-connect-hub/internal/db/models"
)

func respondJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

// UserResponse is the public shape of a user record. The password hash
// never leaves the server.
type UserResponse struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	FullName  string    `json:"full_name"`
	Role      string    `json:"role"`
	Bio       string    `json:"bio,omitempty"`
	Skills    []string  `json:"skills"`
	AvatarURL string    `json:"avatar_url,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func userResponse(u *models.User) UserResponse {
	skills := u.Skills
	if skills == nil {
		skills = models.SkillList{}
	}
	return UserResponse{
		ID:        u.ID,
		Email:     u.Email,
		FullName:  u.FullName,
		Role:      string(u.Role),
		Bio:       u.Bio,
		Skills:    skills,
		AvatarURL: u.AvatarURL,
		CreatedAt: u.CreatedAt,
		UpdatedAt: u.UpdatedAt,
	}
}

func userResponses(users []models.User) []UserResponse {
	out := make([]UserResponse, 0, len(users))
	for i := range users {
		out = append(out, userResponse(&users[i]))
	}
	return out
}

// StartupResponse is the public shape of a startup record.
type StartupResponse struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description,omitempty"`
	Industry    string    `json:"industry,omitempty"`
	Stage       string    `json:"stage,omitempty"`
	Website     string    `json:"website,omitempty"`
	OwnerID     string    `json:"owner_id"`
	OwnerName   string    `json:"owner_name,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func startupResponse(s *models.Startup) StartupResponse {
	resp := StartupResponse{
		ID:          s.ID,
		Name:        s.Name,
		Description: s.Description,
		Industry:    s.Industry,
		Stage:       s.Stage,
		Website:     s.Website,
		OwnerID:     s.OwnerID,
		CreatedAt:   s.CreatedAt,
		UpdatedAt:   s.UpdatedAt,
	}
	if s.Owner != nil {
		resp.OwnerName = s.Owner.FullName
		if resp.OwnerName == "" {
			resp.OwnerName = s.Owner.Email
		}
	}
	return resp
}

func startupResponses(startups []models.Startup) []StartupResponse {
	out := make([]StartupResponse, 0, len(startups))
	for i := range startups {
		out = append(out, startupResponse(&startups[i]))
	}
	return out
}

// InterestResponse is the public shape of an interest record.
type InterestResponse struct {
	ID        string           `json:"id"`
	UserID    string           `json:"user_id"`
	StartupID string           `json:"startup_id"`
	CreatedAt time.Time        `json:"created_at"`
	User      *UserResponse    `json:"user,omitempty"`
	Startup   *StartupResponse `json:"startup,omitempty"`
}

func interestResponse(i *models.StartupInterest) InterestResponse {
	resp := InterestResponse{
		ID:        i.ID,
		UserID:    i.UserID,
		StartupID: i.StartupID,
		CreatedAt: i.CreatedAt,
	}
	if i.User != nil {
		u := userResponse(i.User)
		resp.User = &u
	}
	if i.Startup != nil {
		s := startupResponse(i.Startup)
		resp.Startup = &s
	}
	return resp
}

func interestResponses(interests []models.StartupInterest) []InterestResponse {
	out := make([]InterestResponse, 0, len(interests))
	for i := range interests {
		out = append(out, interestResponse(&interests[i]))
	}
	return out
}

package server

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/google/uuid"

	"github.com/me/unishop/pkg/model"
)

// handleGoogleAuth accepts any non-empty credential and mints a session for
// a user derived from it. Credentials containing "@" are treated as the
// user's email, which keeps dev logins stable across restarts.
func (s *Server) handleGoogleAuth(w http.ResponseWriter, r *http.Request) {
	var req model.AuthRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, model.CodeValidation, "invalid JSON body: "+err.Error())
		return
	}
	if strings.TrimSpace(req.Credential) == "" {
		writeError(w, http.StatusUnauthorized, model.CodeUnauthorized, "credential rejected")
		return
	}

	user := userFromCredential(req.Credential)
	token := "tok_" + uuid.New().String()

	s.mu.Lock()
	s.sessions[token] = user
	s.mu.Unlock()

	s.logger.Info("session created", "user_id", user.ID)
	writeJSON(w, http.StatusOK, model.AuthResponse{Success: true, Token: token, User: user})
}

func (s *Server) handleVerify(w http.ResponseWriter, r *http.Request) {
	user := userFromContext(r.Context())
	writeJSON(w, http.StatusOK, model.VerifyResponse{Success: true, User: user})
}

// handleRefresh rotates the bearer token, keeping the session user.
func (s *Server) handleRefresh(w http.ResponseWriter, r *http.Request) {
	old := bearerToken(r)
	fresh := "tok_" + uuid.New().String()

	s.mu.Lock()
	user := s.sessions[old]
	delete(s.sessions, old)
	s.sessions[fresh] = user
	s.mu.Unlock()

	writeJSON(w, http.StatusOK, model.RefreshResponse{Success: true, Token: fresh})
}

func (s *Server) handleLogout(w http.ResponseWriter, r *http.Request) {
	token := bearerToken(r)

	s.mu.Lock()
	delete(s.sessions, token)
	s.mu.Unlock()

	writeJSON(w, http.StatusOK, map[string]bool{"success": true})
}

// userFromCredential derives a deterministic dev user from the credential.
func userFromCredential(credential string) *model.UserProfile {
	email := strings.TrimSpace(credential)
	if !strings.Contains(email, "@") {
		email = email + "@student.dev"
	}
	name := email[:strings.Index(email, "@")]

	role := model.RoleStudent
	if strings.HasPrefix(email, "admin") {
		role = model.RoleAdmin
	}

	return &model.UserProfile{
		ID:          "u_" + name,
		Email:       email,
		DisplayName: name,
		Role:        role,
		University:  "Dev University",
	}
}

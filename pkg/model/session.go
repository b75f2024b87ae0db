package model

// SessionStatus is the lifecycle state of the authentication session.
type SessionStatus string

const (
	// StatusUnauthenticated means no valid session exists (guest).
	StatusUnauthenticated SessionStatus = "unauthenticated"
	// StatusAuthenticating means a credential exchange or bootstrap verify is in flight.
	StatusAuthenticating SessionStatus = "authenticating"
	// StatusAuthenticated means the session token has been accepted by the server.
	StatusAuthenticated SessionStatus = "authenticated"
	// StatusRefreshing means a token refresh is in flight.
	StatusRefreshing SessionStatus = "refreshing"
	// StatusExpired means the server rejected the session; a forced sign-out follows.
	StatusExpired SessionStatus = "expired"
)

// Session is the (token, user, status) triple owned by the session manager.
// Token and User are set only while the session is authenticated or refreshing.
type Session struct {
	Token  string        `json:"-"` // opaque bearer token, never exposed via JSON
	User   *UserProfile  `json:"user,omitempty"`
	Status SessionStatus `json:"status"`
}

// IsAuthenticated reports whether the session can authorize remote calls.
func (s *Session) IsAuthenticated() bool {
	return s.Status == StatusAuthenticated
}

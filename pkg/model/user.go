package model

// UserRole represents the role of a user in the system.
type UserRole string

const (
	// RoleStudent is a standard authenticated shopper.
	RoleStudent UserRole = "student"
	// RoleAdmin has access to the back-office product/category/banner screens.
	RoleAdmin UserRole = "admin"
)

// UserProfile is the identity record for the signed-in user.
// The server is the source of truth; the local copy is refreshed on every
// successful verify or credential exchange.
type UserProfile struct {
	ID          string   `json:"id"`
	Email       string   `json:"email"`
	DisplayName string   `json:"name"`
	AvatarURL   string   `json:"picture,omitempty"`
	Role        UserRole `json:"role"`
	University  string   `json:"university,omitempty"`
}

// IsAdmin returns true if the user has admin role.
func (u *UserProfile) IsAdmin() bool {
	return u.Role == RoleAdmin
}

// ProfileUpdate is a partial profile edit applied locally and persisted.
// Nil fields are left unchanged.
type ProfileUpdate struct {
	DisplayName *string
	AvatarURL   *string
	University  *string
}

// Apply merges the update into a copy of u and returns it.
func (p ProfileUpdate) Apply(u UserProfile) UserProfile {
	if p.DisplayName != nil {
		u.DisplayName = *p.DisplayName
	}
	if p.AvatarURL != nil {
		u.AvatarURL = *p.AvatarURL
	}
	if p.University != nil {
		u.University = *p.University
	}
	return u
}

package domain

import "time"

const (
	RoleStaff   = "staff"
	RoleManager = "manager"
)

// ValidRole reports whether role is one the system issues sessions for.
func ValidRole(role string) bool {
	return role == RoleStaff || role == RoleManager
}

// User models a store-scoped staff identity. Username is unique only within
// its store.
type User struct {
	ID           string `json:"id"`
	StoreID      string `json:"storeId"`
	Username     string `json:"username"`
	PasswordHash string `json:"-"`
	Role         string `json:"role"`
}

// UserSummary is the public view of a user.
type UserSummary struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	Role     string `json:"role"`
	StoreID  string `json:"storeId"`
}

func (u *User) Summary() UserSummary {
	return UserSummary{ID: u.ID, Username: u.Username, Role: u.Role, StoreID: u.StoreID}
}

// Session binds a bearer token to a store-scoped identity. StoreID and Role
// are fixed at login and never change for the lifetime of the token.
type Session struct {
	Token     string    `json:"token"`
	UserID    string    `json:"userId"`
	StoreID   string    `json:"storeId"`
	Username  string    `json:"username"`
	Role      string    `json:"role"`
	CreatedAt time.Time `json:"createdAt"`
}

// Expired reports whether the session is older than ttl. A non-positive ttl
// never expires.
func (s *Session) Expired(now time.Time, ttl time.Duration) bool {
	if ttl <= 0 {
		return false
	}
	return now.Sub(s.CreatedAt) > ttl
}

// Actor returns the audit identity for the session.
func (s *Session) Actor() Actor {
	return Actor{UserID: s.UserID, Username: s.Username, Role: s.Role}
}

// Package models defines the client-side data model of the Wiki Reader CLI.
package models

// User is the minimal identity returned by the backend at login.
type User struct {
	ID       int64  `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email"`
}

// DisplayName falls back to "User" when the username is unknown, e.g.
// after a session was restored from a stored token.
func (u *User) DisplayName() string {
	if u == nil || u.Username == "" {
		return "User"
	}
	return u.Username
}

// Session is the authenticated state of the client.
// Token is empty exactly when User is nil.
type Session struct {
	Token string
	User  *User
}

// Valid reports whether the session carries a token and an identity.
func (s Session) Valid() bool {
	return s.Token != "" && s.User != nil
}

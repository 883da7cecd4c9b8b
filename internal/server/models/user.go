// Package models defines the persistent entities of the tracker: users,
// their categories, their transactions, and the dashboard summary view.
package models

// User is an account record. Email and DisplayName are stored lowercased;
// lookups are case-insensitive. PasswordHash is an argon2id PHC string and
// must never leave the server.
type User struct {
	ID           int64  `json:"id"`
	Email        string `json:"email"`
	DisplayName  string `json:"name"`
	PasswordHash string `json:"-"`
}

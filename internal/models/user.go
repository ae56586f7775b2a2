// Package models contains data structures for the application's domain models.
package models

import "strings"

// User represents a registered account. Usernames are stored lowercase and
// compared case-insensitively; accounts are never updated or deleted.
type User struct {
	Username     string `json:"username"`
	PasswordHash string `json:"-"`
}

// CanonicalUsername returns the lowercase form used as the identity key.
func CanonicalUsername(name string) string {
	return strings.ToLower(name)
}

// SameUser reports whether two usernames identify the same account.
func SameUser(a, b string) bool {
	return strings.EqualFold(a, b)
}

// Package models contains data structures for the application's domain models.
package models

import "strings"

// Post represents one uploaded media item in the shared feed. The record is
// keyed by the sanitized upload filename; the feed is ordered newest first.
type Post struct {
	Filename string `json:"filename"`
	PostedAt string `json:"posted_at"`
	Owner    string `json:"owner"`
	Caption  string `json:"caption"`
}

// OwnedBy reports whether the post belongs to the given user.
func (p Post) OwnedBy(username string) bool {
	return SameUser(p.Owner, username)
}

// IsVideo reports whether the post's media should render in a video element.
func (p Post) IsVideo() bool {
	ext := strings.ToLower(p.Filename)
	return strings.HasSuffix(ext, ".mp4") || strings.HasSuffix(ext, ".ogg")
}

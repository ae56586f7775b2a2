package validation

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidateUsername(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name     string
		username string
		wantErr  bool
	}{
		{"Valid", "alice", false},
		{"Mixed Case", "AlIcE", false},
		{"Digits", "alice42", false},
		{"Space", "al ice", true},
		{"Tab", "al\tice", true},
		{"Leading Space", " alice", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateUsername(tt.username)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestAllowedExtension(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name     string
		filename string
		want     bool
	}{
		{"PNG", "meme.png", true},
		{"Uppercase", "meme.PNG", true},
		{"Video", "clip.mp4", true},
		{"Ogg", "sound.ogg", true},
		{"Double Extension", "archive.tar.gif", true},
		{"No Extension", "meme", false},
		{"Disallowed", "script.exe", false},
		{"Trailing Dot", "meme.", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, AllowedExtension(tt.filename))
		})
	}
}

func TestSanitizeFilename(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"Plain", "meme.png", "meme.png"},
		{"Spaces", "my cool meme.png", "my_cool_meme.png"},
		{"Traversal", "../../etc/passwd", "etc_passwd"},
		{"Backslashes", "..\\..\\boot.ini", "boot.ini"},
		{"Unsafe Chars", "a;b&c|d.png", "abcd.png"},
		{"Leading Dot", ".hidden.png", "hidden.png"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, SanitizeFilename(tt.in))
		})
	}
}

package repository

import (
	"context"
	"fmt"
	"html"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"memebin/internal/models"
)

// ChatRepository defines persistence operations for the shared chat log.
//
// The log is stored as pre-rendered HTML fragments so it can be served to the
// polling client as-is. Newest messages are prepended.
type ChatRepository interface {
	Append(ctx context.Context, msg models.ChatMessage) error
	Read(ctx context.Context) ([]byte, error)
}

type chatRepository struct {
	mu   sync.Mutex
	path string
}

// NewChatRepository returns a ChatRepository backed by the HTML-fragment log
// at the given path.
func NewChatRepository(path string) ChatRepository {
	return &chatRepository{path: path}
}

// Append renders the message and prepends it to the log. Empty messages are
// silently dropped. Author and text are HTML-escaped before they touch the
// markup.
func (r *chatRepository) Append(_ context.Context, msg models.ChatMessage) error {
	if msg.Text == "" {
		return nil
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	prev, err := os.ReadFile(r.path)
	if err != nil && !os.IsNotExist(err) {
		return models.NewInternalError(err)
	}

	line := fmt.Sprintf("<strong>%s</strong>: %s\n<br>\n",
		html.EscapeString(strings.ToLower(msg.Author)),
		html.EscapeString(msg.Text))

	if err := os.MkdirAll(filepath.Dir(r.path), 0o755); err != nil {
		return models.NewInternalError(err)
	}
	if err := os.WriteFile(r.path, append([]byte(line), prev...), 0o644); err != nil {
		return models.NewInternalError(err)
	}
	return nil
}

// Read returns the raw log bytes for static-style serving. A missing file is
// an empty log.
func (r *chatRepository) Read(_ context.Context) ([]byte, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	data, err := os.ReadFile(r.path)
	if err != nil {
		if os.IsNotExist(err) {
			return []byte{}, nil
		}
		return nil, models.NewInternalError(err)
	}
	return data, nil
}

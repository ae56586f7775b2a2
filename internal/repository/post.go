package repository

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"memebin/internal/models"
)

// fieldDelim separates the four record fields inside one content-log line.
// The token predates this implementation; existing log files must keep
// parsing, so it cannot change.
const fieldDelim = "???:???"

// captionEscaper makes captions safe to embed in a delimited line: the
// delimiter token, newlines and the escape character itself are encoded.
// Legacy lines without backslashes pass through unescapeCaption unchanged.
var captionEscaper = strings.NewReplacer(`\`, `\\`, "\n", `\n`, fieldDelim, `\d`)

// PostRepository defines persistence operations for the content log.
type PostRepository interface {
	List(ctx context.Context) ([]models.Post, error)
	Get(ctx context.Context, filename string) (*models.Post, error)
	Create(ctx context.Context, post *models.Post) error
	UpdateCaption(ctx context.Context, filename, caption, requester string) error
	Delete(ctx context.Context, filename, requester string) ([]string, error)
}

type postRepository struct {
	mu   sync.Mutex
	path string
}

// NewPostRepository returns a PostRepository backed by the delimited content
// log at the given path. Writes prepend, so the log is ordered newest first.
func NewPostRepository(path string) PostRepository {
	return &postRepository{path: path}
}

func (r *postRepository) List(_ context.Context) ([]models.Post, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.list()
}

func (r *postRepository) Get(_ context.Context, filename string) (*models.Post, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	posts, err := r.list()
	if err != nil {
		return nil, err
	}
	for i := range posts {
		if posts[i].Filename == filename {
			return &posts[i], nil
		}
	}
	return nil, models.NewNotFoundError("Post", filename)
}

func (r *postRepository) Create(_ context.Context, post *models.Post) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	prev, err := r.read()
	if err != nil {
		return models.NewInternalError(err)
	}
	line := strings.Join([]string{
		post.Filename,
		post.PostedAt,
		post.Owner,
		captionEscaper.Replace(post.Caption),
	}, fieldDelim)
	return r.write(line + "\n" + prev)
}

// UpdateCaption replaces the caption on the line matching filename and owned
// by requester. No match is a silent no-op; the file is rewritten either way.
func (r *postRepository) UpdateCaption(_ context.Context, filename, caption, requester string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	lines, err := r.lines()
	if err != nil {
		return err
	}
	for i, line := range lines {
		fields := strings.Split(line, fieldDelim)
		if len(fields) != 4 {
			continue
		}
		if fields[0] == filename && models.SameUser(fields[2], requester) {
			fields[3] = captionEscaper.Replace(caption)
			lines[i] = strings.Join(fields, fieldDelim)
		}
	}
	return r.write(strings.Join(lines, "\n") + "\n")
}

// Delete drops every line matching filename and owned by requester and
// returns the filenames removed so the caller can clean up media files.
// Deleting a filename that is absent or not owned leaves the log unchanged.
func (r *postRepository) Delete(_ context.Context, filename, requester string) ([]string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	lines, err := r.lines()
	if err != nil {
		return nil, err
	}

	var kept []string
	var removed []string
	for _, line := range lines {
		fields := strings.Split(line, fieldDelim)
		if len(fields) == 4 && fields[0] == filename && models.SameUser(fields[2], requester) {
			removed = append(removed, fields[0])
			continue
		}
		kept = append(kept, line)
	}

	out := strings.Join(kept, "\n")
	if len(kept) > 0 {
		out += "\n"
	}
	return removed, r.write(out)
}

// list parses the whole log. Malformed lines are skipped rather than
// corrupting the feed. Callers must hold r.mu.
func (r *postRepository) list() ([]models.Post, error) {
	lines, err := r.lines()
	if err != nil {
		return nil, err
	}

	var posts []models.Post
	for _, line := range lines {
		fields := strings.Split(line, fieldDelim)
		if len(fields) != 4 {
			continue
		}
		posts = append(posts, models.Post{
			Filename: fields[0],
			PostedAt: fields[1],
			Owner:    fields[2],
			Caption:  unescapeCaption(fields[3]),
		})
	}
	return posts, nil
}

// lines returns the log split into records, newest first. Callers must hold r.mu.
func (r *postRepository) lines() ([]string, error) {
	data, err := r.read()
	if err != nil {
		return nil, models.NewInternalError(err)
	}
	data = strings.TrimRight(data, "\n")
	if data == "" {
		return nil, nil
	}
	return strings.Split(data, "\n"), nil
}

// read returns the raw log content. A missing file is an empty log.
func (r *postRepository) read() (string, error) {
	data, err := os.ReadFile(r.path)
	if err != nil {
		if os.IsNotExist(err) {
			return "", nil
		}
		return "", err
	}
	return string(data), nil
}

func (r *postRepository) write(content string) error {
	if err := os.MkdirAll(filepath.Dir(r.path), 0o755); err != nil {
		return models.NewInternalError(err)
	}
	if err := os.WriteFile(r.path, []byte(content), 0o644); err != nil {
		return models.NewInternalError(err)
	}
	return nil
}

// unescapeCaption reverses captionEscaper. Unknown escape pairs are kept
// verbatim so captions from unescaped legacy logs survive round-trips.
func unescapeCaption(s string) string {
	if !strings.ContainsRune(s, '\\') {
		return s
	}
	var b strings.Builder
	for i := 0; i < len(s); i++ {
		if s[i] != '\\' || i == len(s)-1 {
			b.WriteByte(s[i])
			continue
		}
		i++
		switch s[i] {
		case '\\':
			b.WriteByte('\\')
		case 'n':
			b.WriteByte('\n')
		case 'd':
			b.WriteString(fieldDelim)
		default:
			b.WriteByte('\\')
			b.WriteByte(s[i])
		}
	}
	return b.String()
}

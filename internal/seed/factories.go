package seed

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"math/rand"
	"time"

	"memebin/internal/models"
	"memebin/internal/repository"
	"memebin/internal/validation"

	"github.com/brianvoe/gofakeit/v6"
)

// placeholderPNG is a minimal 1x1 PNG used as the media payload for seeded
// posts. The feed only needs something a browser will render.
var placeholderPNG = []byte{
	0x89, 0x50, 0x4e, 0x47, 0x0d, 0x0a, 0x1a, 0x0a, 0x00, 0x00, 0x00, 0x0d,
	0x49, 0x48, 0x44, 0x52, 0x00, 0x00, 0x00, 0x01, 0x00, 0x00, 0x00, 0x01,
	0x08, 0x06, 0x00, 0x00, 0x00, 0x1f, 0x15, 0xc4, 0x89, 0x00, 0x00, 0x00,
	0x0d, 0x49, 0x44, 0x41, 0x54, 0x78, 0x9c, 0x62, 0x00, 0x01, 0x00, 0x00,
	0x05, 0x00, 0x01, 0x0d, 0x0a, 0x2d, 0xb4, 0x00, 0x00, 0x00, 0x00, 0x49,
	0x45, 0x4e, 0x44, 0xae, 0x42, 0x60, 0x82,
}

// Factory builds demo users and posts and persists them through the
// application's repositories.
type Factory struct {
	users        repository.UserRepository
	posts        repository.PostRepository
	media        repository.MediaStore
	passwordHash string
	rng          *rand.Rand
}

// NewFactory creates a new Factory writing through the given repositories.
func NewFactory(users repository.UserRepository, posts repository.PostRepository,
	media repository.MediaStore, passwordHash string) *Factory {
	gofakeit.Seed(time.Now().UnixNano())
	return &Factory{
		users:        users,
		posts:        posts,
		media:        media,
		passwordHash: passwordHash,
		rng:          rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

// CreateUsers registers n demo accounts with generated usernames. Username
// collisions from the generator are retried.
func (f *Factory) CreateUsers(ctx context.Context, n int) ([]*models.User, error) {
	users := make([]*models.User, 0, n)
	for len(users) < n {
		user := &models.User{
			Username:     models.CanonicalUsername(gofakeit.Username()),
			PasswordHash: f.passwordHash,
		}
		err := f.users.Create(ctx, user)
		if errors.Is(err, repository.ErrUserExists) {
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("seeding user %q: %w", user.Username, err)
		}
		users = append(users, user)
	}
	return users, nil
}

// CreatePost uploads a placeholder image with a generated caption for the
// given owner, with the timestamp spread over the last 90 days.
func (f *Factory) CreatePost(ctx context.Context, owner string) (*models.Post, error) {
	filename := validation.SanitizeFilename(fmt.Sprintf("%s_%d.png", gofakeit.PetName(), f.rng.Intn(100000)))

	if err := f.media.Save(filename, bytes.NewReader(placeholderPNG)); err != nil {
		return nil, fmt.Errorf("seeding media %q: %w", filename, err)
	}

	postedAt := time.Now().
		Add(-time.Duration(f.rng.Intn(90*24)) * time.Hour).
		Add(-time.Duration(f.rng.Intn(60)) * time.Minute)

	post := &models.Post{
		Filename: filename,
		PostedAt: postedAt.Format(time.ANSIC),
		Owner:    owner,
		Caption:  gofakeit.Sentence(6),
	}
	if err := f.posts.Create(ctx, post); err != nil {
		return nil, fmt.Errorf("seeding post %q: %w", filename, err)
	}
	return post, nil
}

// Package seed provides helpers to create demo data for development and
// testing. It writes through the same repositories the server uses, so the
// resulting files are exactly what a running instance would have produced.
package seed

import (
	"context"
	"fmt"
	"log"
	"os"

	"memebin/internal/config"
	"memebin/internal/repository"

	"golang.org/x/crypto/bcrypt"
)

// Options configuration for the seeder
type Options struct {
	NumUsers    int
	NumPosts    int
	ShouldClean bool

	// Password is assigned to every demo account so seeded users can log in.
	Password string
}

// Run populates the configured data directory with demo users and posts.
func Run(cfg *config.Config, opts Options) error {
	if opts.ShouldClean {
		log.Printf("Cleaning data directory %s", cfg.DataDir)
		if err := os.RemoveAll(cfg.DataDir); err != nil {
			return fmt.Errorf("cleaning data dir: %w", err)
		}
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(opts.Password), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("hashing demo password: %w", err)
	}

	factory := NewFactory(
		repository.NewUserRepository(cfg.CredentialsPath()),
		repository.NewPostRepository(cfg.ContentLogPath()),
		repository.NewMediaStore(cfg.ContentsDir()),
		string(hash),
	)

	ctx := context.Background()
	users, err := factory.CreateUsers(ctx, opts.NumUsers)
	if err != nil {
		return err
	}
	log.Printf("Created %d demo users (password %q)", len(users), opts.Password)

	created := 0
	for i := 0; i < opts.NumPosts; i++ {
		owner := users[i%len(users)]
		if _, err := factory.CreatePost(ctx, owner.Username); err != nil {
			return err
		}
		created++
	}
	log.Printf("Created %d demo posts", created)

	return nil
}

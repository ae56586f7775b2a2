// Package repository implements the data access layer for the application.
//
// Every store is a single flat file read and rewritten wholesale on each
// mutation, matching the on-disk layout the application has always used. A
// per-repository mutex serializes writers so concurrent requests inside one
// process cannot clobber each other's updates.
package repository

import (
	"context"
	"encoding/gob"
	"errors"
	"os"
	"path/filepath"
	"sync"

	"memebin/internal/models"
)

// ErrUserExists is returned by Create when the username is already taken
// (case-insensitive).
var ErrUserExists = errors.New("user already exists")

// UserRepository defines persistence operations for the credential store.
type UserRepository interface {
	Get(ctx context.Context, username string) (*models.User, error)
	Create(ctx context.Context, user *models.User) error
}

type userRepository struct {
	mu   sync.Mutex
	path string
}

// NewUserRepository returns a UserRepository backed by a gob-encoded
// username -> password hash mapping at the given path.
func NewUserRepository(path string) UserRepository {
	return &userRepository{path: path}
}

func (r *userRepository) Get(_ context.Context, username string) (*models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	creds, err := r.load()
	if err != nil {
		return nil, models.NewInternalError(err)
	}

	key := models.CanonicalUsername(username)
	hash, ok := creds[key]
	if !ok {
		return nil, models.NewNotFoundError("User", key)
	}
	return &models.User{Username: key, PasswordHash: hash}, nil
}

func (r *userRepository) Create(_ context.Context, user *models.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	creds, err := r.load()
	if err != nil {
		return models.NewInternalError(err)
	}

	key := models.CanonicalUsername(user.Username)
	if _, taken := creds[key]; taken {
		return ErrUserExists
	}
	creds[key] = user.PasswordHash

	if err := r.save(creds); err != nil {
		return models.NewInternalError(err)
	}
	return nil
}

// load reads the whole credential blob. A missing file is an empty store.
func (r *userRepository) load() (map[string]string, error) {
	f, err := os.Open(r.path)
	if err != nil {
		if os.IsNotExist(err) {
			return map[string]string{}, nil
		}
		return nil, err
	}
	defer f.Close()

	var creds map[string]string
	if err := gob.NewDecoder(f).Decode(&creds); err != nil {
		return nil, err
	}
	return creds, nil
}

// save rewrites the whole credential blob, creating parent directories on
// first use.
func (r *userRepository) save(creds map[string]string) error {
	if err := os.MkdirAll(filepath.Dir(r.path), 0o755); err != nil {
		return err
	}
	f, err := os.Create(r.path)
	if err != nil {
		return err
	}
	if err := gob.NewEncoder(f).Encode(creds); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

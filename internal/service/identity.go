package service

import (
	"context"
	"errors"
	"fmt"

	"library_management/internal/models"
	"library_management/internal/repository"

	"golang.org/x/crypto/bcrypt"
)

// credentialScheme decides how passwords are stored and compared.
type credentialScheme interface {
	seal(password string) (string, error)
	matches(stored, password string) bool
}

// plainCredentials stores passwords as given and compares them exactly.
type plainCredentials struct{}

func (plainCredentials) seal(password string) (string, error) { return password, nil }
func (plainCredentials) matches(stored, password string) bool { return stored == password }

type bcryptCredentials struct {
	cost int
}

func (b bcryptCredentials) seal(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), b.cost)
	if errors.Is(err, bcrypt.ErrPasswordTooLong) {
		return "", fmt.Errorf("%w: %w", ErrInvalidInput, err)
	}
	if err != nil {
		return "", fmt.Errorf("hash password: %w", err)
	}
	return string(hash), nil
}

func (bcryptCredentials) matches(stored, password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(stored), []byte(password)) == nil
}

// IdentityService handles sign-up and credential checks against the user store.
type IdentityService struct {
	store   repository.LibraryStore
	history historyRecorder
	creds   credentialScheme
}

func NewIdentityService(store repository.LibraryStore, history historyRecorder, hashPasswords bool) *IdentityService {
	var creds credentialScheme = plainCredentials{}
	if hashPasswords {
		creds = bcryptCredentials{cost: bcrypt.DefaultCost}
	}
	return &IdentityService{store: store, history: history, creds: creds}
}

// Register appends a new user with id max+1 and no loans, then persists.
// It does not start a session.
func (s *IdentityService) Register(ctx context.Context, name, password string) (models.User, error) {
	if name == "" || password == "" {
		return models.User{}, ErrInvalidInput
	}
	sealed, err := s.creds.seal(password)
	if err != nil {
		return models.User{}, err
	}

	var user models.User
	err = s.store.Write(func(_ *models.Catalog, d *models.UserDirectory) error {
		user = models.User{
			ID:          d.NextID(),
			Name:        name,
			Password:    sealed,
			IssuedBooks: []models.IssuedBook{},
		}
		d.Users = append(d.Users, user)
		return nil
	})
	if err != nil {
		return models.User{}, err
	}

	s.history.record(ctx, models.CirculationEvent{
		Type:        models.EventSignUp,
		UserID:      user.ID,
		Description: fmt.Sprintf("user %q signed up", name),
	})
	return user.Clone(), nil
}

// Authenticate returns the first user whose name and password both match exactly.
func (s *IdentityService) Authenticate(name, password string) (models.User, error) {
	var (
		user  models.User
		found bool
	)
	s.store.Read(func(_ *models.Catalog, d *models.UserDirectory) {
		for i := range d.Users {
			if d.Users[i].Name == name && s.creds.matches(d.Users[i].Password, password) {
				user, found = d.Users[i].Clone(), true
				return
			}
		}
	})
	if !found {
		return models.User{}, ErrInvalidCredentials
	}
	return user, nil
}

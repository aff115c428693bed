package service

import (
	"context"

	"library_management/internal/logger"
	"library_management/internal/models"
	"library_management/internal/repository"
)

// Identity registers readers and checks their credentials.
type Identity interface {
	Register(ctx context.Context, name, password string) (models.User, error)
	Authenticate(name, password string) (models.User, error)
}

// Sessions identifies the current caller from a bearer token.
type Sessions interface {
	IssueToken(userID int) (string, error)
	ParseToken(accessToken string) (int, error)
	SignOut(callerID int)
}

// Lookup is a read-only find-by-id over the stores.
type Lookup interface {
	FindBook(id int) (models.Book, bool)
	FindUser(id int) (models.User, bool)
}

// Catalog serves listing, book and profile views.
type Catalog interface {
	Search(query string, callerID int) SearchResult
	ViewBook(bookID, callerID int) (BookView, error)
	ViewProfile(userID int) (Profile, error)
}

// Circulation is the borrow/return state machine. A callerID of 0 is anonymous.
type Circulation interface {
	Borrow(ctx context.Context, callerID, bookID int) (models.IssuedBook, error)
	Return(ctx context.Context, callerID, bookID int) error
}

// History exposes the append-only circulation log.
type History interface {
	List(ctx context.Context, f LogFilter) ([]models.CirculationEvent, error)
}

// Service aggregates all sub-services for the HTTP layer.
type Service struct {
	Identity
	Sessions
	Lookup
	Catalog
	Circulation
	History
}

// NewService wires the repository layer into concrete services.
func NewService(repos *repository.Repository, opts Options, log *logger.Logger) *Service {
	opts = opts.withDefaults()
	rec := historyRecorder{repo: repos.EventRepo, log: log, now: opts.Now}
	catalog := NewCatalogService(repos.Store)

	return &Service{
		Identity:    NewIdentityService(repos.Store, rec, opts.HashPasswords),
		Sessions:    NewSessionService(repos.Store, opts.SigningKey, opts.TokenTTL),
		Lookup:      catalog,
		Catalog:     catalog,
		Circulation: NewCirculationService(repos.Store, rec, opts.Now),
		History:     NewHistoryService(repos.EventRepo),
	}
}

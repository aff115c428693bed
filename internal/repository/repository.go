package repository

import (
	"context"
	"database/sql"
	"time"

	"library_management/internal/models"
)

// LibraryStore guards the catalog and user documents. Read runs fn under a shared
// lock; Write runs fn under the exclusive lock and persists both documents when fn
// returns nil.
type LibraryStore interface {
	Read(fn func(c *models.Catalog, u *models.UserDirectory))
	Write(fn func(c *models.Catalog, u *models.UserDirectory) error) error
}

// EventFilter narrows a history query. Zero values mean "no bound".
type EventFilter struct {
	From   time.Time
	To     time.Time
	Type   string
	UserID int
}

type EventRepo interface {
	Append(ctx context.Context, e models.CirculationEvent) error
	List(ctx context.Context, f EventFilter) ([]models.CirculationEvent, error)
}

type Repository struct {
	Store     LibraryStore
	EventRepo EventRepo
}

func NewRepository(store LibraryStore, db *sql.DB) *Repository {
	return &Repository{
		Store:     store,
		EventRepo: NewEventSQLite(db),
	}
}

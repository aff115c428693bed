package repository

import (
	"errors"
	"fmt"
	"sync"

	"library_management/internal/models"

	"golang.org/x/sync/errgroup"
)

// Catalog validation errors. Any of them prevents startup.
var (
	ErrNegativeAvailability = errors.New("book has negative availability")
	ErrDuplicateBookID      = errors.New("duplicate book id")
	ErrNegativeBorrowLimit  = errors.New("max_books_per_user is negative")
)

// FileStore holds both documents in memory for the process lifetime and flushes
// them to their files after every successful Write.
type FileStore struct {
	mu sync.RWMutex

	catalogPath string
	usersPath   string

	catalog models.Catalog
	users   models.UserDirectory

	// usersRecovered is set when the user document could not be decoded and an
	// empty directory was substituted.
	usersRecovered bool
}

// Ensure implementation of LibraryStore interface at compile time.
var _ LibraryStore = (*FileStore)(nil)

// OpenFileStore loads the catalog and user documents. A missing or malformed
// catalog is an error; a missing, empty or corrupt user document is replaced by
// an empty directory.
func OpenFileStore(catalogPath, usersPath string) (*FileStore, error) {
	s := &FileStore{catalogPath: catalogPath, usersPath: usersPath}

	if err := readDocument(catalogPath, &s.catalog); err != nil {
		return nil, fmt.Errorf("load catalog: %w", err)
	}
	if err := validateCatalog(&s.catalog); err != nil {
		return nil, fmt.Errorf("load catalog %q: %w", catalogPath, err)
	}

	if err := readDocument(usersPath, &s.users); err != nil {
		s.users = models.UserDirectory{}
		s.usersRecovered = true
	}
	normalizeUsers(&s.users)

	return s, nil
}

// UsersRecovered reports whether the user document was replaced by an empty one at load.
func (s *FileStore) UsersRecovered() bool { return s.usersRecovered }

func (s *FileStore) Read(fn func(c *models.Catalog, u *models.UserDirectory)) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	fn(&s.catalog, &s.users)
}

// Write applies fn and flushes both documents. If fn fails or the flush fails,
// the in-memory documents are restored to what they were before fn ran.
func (s *FileStore) Write(fn func(c *models.Catalog, u *models.UserDirectory) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	catalog, users := s.catalog.Clone(), s.users.Clone()
	err := fn(&s.catalog, &s.users)
	if err == nil {
		err = s.save()
	}
	if err != nil {
		s.catalog, s.users = catalog, users
	}
	return err
}

// save requires s.mu to be held.
func (s *FileStore) save() error {
	var g errgroup.Group
	g.Go(func() error { return writeDocument(s.catalogPath, &s.catalog) })
	g.Go(func() error { return writeDocument(s.usersPath, &s.users) })
	if err := g.Wait(); err != nil {
		return fmt.Errorf("save stores: %w", err)
	}
	return nil
}

func validateCatalog(c *models.Catalog) error {
	if c.MaxBooksPerUser < 0 {
		return ErrNegativeBorrowLimit
	}
	if c.Books == nil {
		c.Books = []models.Book{}
	}
	seen := make(map[int]struct{}, len(c.Books))
	for _, b := range c.Books {
		if b.Available < 0 {
			return fmt.Errorf("book %d: %w", b.ID, ErrNegativeAvailability)
		}
		if _, dup := seen[b.ID]; dup {
			return fmt.Errorf("book %d: %w", b.ID, ErrDuplicateBookID)
		}
		seen[b.ID] = struct{}{}
	}
	return nil
}

// normalizeUsers makes sure empty collections encode as [] rather than null.
func normalizeUsers(d *models.UserDirectory) {
	if d.Users == nil {
		d.Users = []models.User{}
	}
	for i := range d.Users {
		if d.Users[i].IssuedBooks == nil {
			d.Users[i].IssuedBooks = []models.IssuedBook{}
		}
	}
}

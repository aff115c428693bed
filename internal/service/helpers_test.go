package service

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"library_management/internal/models"
	"library_management/internal/repository"

	"github.com/stretchr/testify/require"
)

// fakeEventRepo records appended events and serves configured List results.
type fakeEventRepo struct {
	mu        sync.Mutex
	appended  []models.CirculationEvent
	appendErr error

	gotFilter repository.EventFilter
	events    []models.CirculationEvent
	listErr   error
	listCalls int
}

func (f *fakeEventRepo) Append(_ context.Context, e models.CirculationEvent) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.appended = append(f.appended, e)
	return f.appendErr
}

func (f *fakeEventRepo) List(_ context.Context, filter repository.EventFilter) ([]models.CirculationEvent, error) {
	f.listCalls++
	f.gotFilter = filter
	return f.events, f.listErr
}

func (f *fakeEventRepo) types() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]string, 0, len(f.appended))
	for _, e := range f.appended {
		out = append(out, e.Type)
	}
	return out
}

func docJSON(v any) ([]byte, error) { return json.MarshalIndent(v, "", "  ") }

var fixedNow = func() time.Time { return time.Date(2024, 3, 9, 23, 30, 0, 0, time.Local) }

// newTestStore writes the given documents to a temp dir and opens them.
func newTestStore(t *testing.T, catalog models.Catalog, users []models.User) *repository.FileStore {
	t.Helper()
	dir := t.TempDir()
	catalogPath := filepath.Join(dir, "data.json")
	usersPath := filepath.Join(dir, "users.json")

	b, err := docJSON(catalog)
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(catalogPath, b, 0o644))

	if users == nil {
		users = []models.User{}
	}
	b, err = docJSON(models.UserDirectory{Users: users})
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(usersPath, b, 0o644))

	store, err := repository.OpenFileStore(catalogPath, usersPath)
	require.NoError(t, err)
	return store
}

func snapshot(store repository.LibraryStore) (models.Catalog, models.UserDirectory) {
	var (
		c models.Catalog
		d models.UserDirectory
	)
	store.Read(func(cat *models.Catalog, dir *models.UserDirectory) {
		c.MaxBooksPerUser = cat.MaxBooksPerUser
		c.Books = append([]models.Book(nil), cat.Books...)
		for _, u := range dir.Users {
			d.Users = append(d.Users, u.Clone())
		}
	})
	return c, d
}

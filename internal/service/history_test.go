package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"library_management/internal/models"
	"library_management/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func Test_normalizeToUTC(t *testing.T) {
	t.Parallel()

	assert.True(t, normalizeToUTC(time.Time{}).IsZero())

	in := time.Date(2025, time.August, 1, 12, 34, 56, 0, time.FixedZone("UTC+3", 3*3600))
	out := normalizeToUTC(in)
	assert.Equal(t, time.UTC, out.Location())
	assert.True(t, out.Equal(time.Date(2025, time.August, 1, 9, 34, 56, 0, time.UTC)))
}

func TestHistoryService_List_NormalizesFilter(t *testing.T) {
	t.Parallel()

	repo := &fakeEventRepo{events: []models.CirculationEvent{{EventID: "e1", Type: models.EventBorrow}}}
	svc := NewHistoryService(repo)

	from := time.Date(2025, 1, 1, 12, 0, 0, 0, time.FixedZone("UTC+2", 2*3600))
	to := from.Add(time.Hour)

	got, err := svc.List(context.Background(), LogFilter{From: from, To: to, Type: "  borrow ", UserID: 3})
	require.NoError(t, err)
	require.Len(t, got, 1)

	assert.Equal(t, 1, repo.listCalls)
	assert.Equal(t, "BORROW", repo.gotFilter.Type)
	assert.Equal(t, 3, repo.gotFilter.UserID)
	assert.Equal(t, time.UTC, repo.gotFilter.From.Location())
	assert.True(t, repo.gotFilter.From.Equal(from))
}

func TestHistoryService_List_InvalidRange(t *testing.T) {
	t.Parallel()

	repo := &fakeEventRepo{}
	svc := NewHistoryService(repo)

	to := time.Now()
	_, err := svc.List(context.Background(), LogFilter{From: to.Add(time.Minute), To: to})
	assert.True(t, errors.Is(err, ErrInvalidTimeRange))
	assert.Equal(t, 0, repo.listCalls)
}

func TestHistoryService_List_RepoError(t *testing.T) {
	t.Parallel()

	repo := &fakeEventRepo{listErr: errors.New("db down")}
	_, err := NewHistoryService(repo).List(context.Background(), LogFilter{})
	assert.Error(t, err)
}

func TestNewService_WiresEverything(t *testing.T) {
	events := &fakeEventRepo{}
	store := newTestStore(t, models.Catalog{Books: []models.Book{{ID: 1, Title: "Dune", Available: 1}}, MaxBooksPerUser: 1}, nil)

	repos := &repository.Repository{Store: store, EventRepo: events}
	svc := NewService(repos, Options{SigningKey: "k", Now: fixedNow}, nil)

	u, err := svc.Register(context.Background(), "alice", "pw1")
	require.NoError(t, err)
	token, err := svc.IssueToken(u.ID)
	require.NoError(t, err)
	caller, err := svc.ParseToken(token)
	require.NoError(t, err)

	_, err = svc.Borrow(context.Background(), caller, 1)
	require.NoError(t, err)

	view, err := svc.ViewBook(1, caller)
	require.NoError(t, err)
	assert.True(t, view.BorrowedByCaller)

	assert.Equal(t, []string{models.EventSignUp, models.EventBorrow}, events.types())
	for _, e := range events.appended {
		assert.True(t, e.OccurredAt.Equal(fixedNow().UTC()))
	}
}

package service

import (
	"context"
	"fmt"
	"time"

	"library_management/internal/models"
	"library_management/internal/repository"
)

// CirculationService implements borrow and return. Every transition runs inside
// the store's exclusive section, so check, mutate and persist are atomic for callers.
type CirculationService struct {
	store   repository.LibraryStore
	history historyRecorder
	now     func() time.Time
}

func NewCirculationService(store repository.LibraryStore, history historyRecorder, now func() time.Time) *CirculationService {
	if now == nil {
		now = time.Now
	}
	return &CirculationService{store: store, history: history, now: now}
}

// Borrow lends one copy of bookID to callerID.
//
// A caller already holding bookID is not rejected: the loan is recorded a second
// time and another copy is taken, as long as availability and the limit allow it.
func (s *CirculationService) Borrow(ctx context.Context, callerID, bookID int) (models.IssuedBook, error) {
	if callerID == 0 {
		return models.IssuedBook{}, ErrUnauthenticated
	}

	var (
		loan  models.IssuedBook
		title string
	)
	err := s.store.Write(func(c *models.Catalog, d *models.UserDirectory) error {
		user := d.FindUser(callerID)
		book := c.FindBook(bookID)
		if user == nil || book == nil {
			return ErrNotFound
		}
		if book.Available <= 0 {
			return ErrNoCopiesAvailable
		}
		if len(user.IssuedBooks) >= c.MaxBooksPerUser {
			return ErrBorrowLimitReached
		}

		book.Available--
		loan = models.IssuedBook{BookID: bookID, BorrowDate: s.now().Format(borrowDateLayout)}
		user.IssuedBooks = append(user.IssuedBooks, loan)
		title = book.Title
		return nil
	})
	if err != nil {
		return models.IssuedBook{}, err
	}

	s.history.record(ctx, models.CirculationEvent{
		Type:        models.EventBorrow,
		UserID:      callerID,
		BookID:      bookID,
		Description: fmt.Sprintf("borrowed %q", title),
	})
	return loan, nil
}

// Return gives back every copy of bookID held by callerID. The book's
// availability grows by one regardless of how many loans were dropped, and is
// not capped by any stock count.
func (s *CirculationService) Return(ctx context.Context, callerID, bookID int) error {
	if callerID == 0 {
		return ErrUnauthenticated
	}

	err := s.store.Write(func(c *models.Catalog, d *models.UserDirectory) error {
		user := d.FindUser(callerID)
		if user == nil {
			return ErrNotBorrowed
		}
		if _, ok := user.HasBorrowed(bookID); !ok {
			return ErrNotBorrowed
		}

		// a loan may outlive its catalog entry
		if book := c.FindBook(bookID); book != nil {
			book.Available++
		}

		kept := make([]models.IssuedBook, 0, len(user.IssuedBooks))
		for _, ib := range user.IssuedBooks {
			if ib.BookID != bookID {
				kept = append(kept, ib)
			}
		}
		user.IssuedBooks = kept
		return nil
	})
	if err != nil {
		return err
	}

	s.history.record(ctx, models.CirculationEvent{
		Type:        models.EventReturn,
		UserID:      callerID,
		BookID:      bookID,
		Description: fmt.Sprintf("returned book %d", bookID),
	})
	return nil
}

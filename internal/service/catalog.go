package service

import (
	"library_management/internal/models"
	"library_management/internal/repository"
)

// SearchResult is a filtered listing plus the echoed query and caller.
type SearchResult struct {
	Books    []models.Book `json:"books"`
	Query    string        `json:"search_query"`
	CallerID int           `json:"user_id,omitempty"`
}

// BookView describes one book from the caller's point of view.
type BookView struct {
	Book             models.Book `json:"book"`
	BorrowedByCaller bool        `json:"borrowed_by_caller"`
	BorrowDate       string      `json:"borrow_date,omitempty"`
	Available        bool        `json:"available"`
}

// ProfileLoan is an active loan joined with the book title.
type ProfileLoan struct {
	BookID     int    `json:"book_id"`
	Title      string `json:"title,omitempty"`
	BorrowDate string `json:"borrow_date"`
}

// Profile is a user's public page: their loans and the whole catalog.
// The password is never part of it.
type Profile struct {
	ID          int           `json:"id"`
	Name        string        `json:"name"`
	IssuedBooks []ProfileLoan `json:"issued_books"`
	Catalog     []models.Book `json:"catalog"`
}

type CatalogService struct {
	store repository.LibraryStore
}

func NewCatalogService(store repository.LibraryStore) *CatalogService {
	return &CatalogService{store: store}
}

func (s *CatalogService) FindBook(id int) (book models.Book, ok bool) {
	s.store.Read(func(c *models.Catalog, _ *models.UserDirectory) {
		if b := c.FindBook(id); b != nil {
			book, ok = *b, true
		}
	})
	return book, ok
}

func (s *CatalogService) FindUser(id int) (user models.User, ok bool) {
	s.store.Read(func(_ *models.Catalog, d *models.UserDirectory) {
		if u := d.FindUser(id); u != nil {
			user, ok = u.Clone(), true
		}
	})
	return user, ok
}

// Search matches query against titles case-insensitively; "" lists everything.
func (s *CatalogService) Search(query string, callerID int) SearchResult {
	res := SearchResult{Query: query, CallerID: callerID}
	s.store.Read(func(c *models.Catalog, _ *models.UserDirectory) {
		res.Books = c.Search(query)
	})
	return res
}

func (s *CatalogService) ViewBook(bookID, callerID int) (BookView, error) {
	var (
		view  BookView
		found bool
	)
	s.store.Read(func(c *models.Catalog, d *models.UserDirectory) {
		b := c.FindBook(bookID)
		if b == nil {
			return
		}
		found = true
		view.Book = *b
		view.Available = b.Available > 0

		if callerID == 0 {
			return
		}
		if u := d.FindUser(callerID); u != nil {
			view.BorrowDate, view.BorrowedByCaller = u.HasBorrowed(bookID)
		}
	})
	if !found {
		return BookView{}, ErrNotFound
	}
	return view, nil
}

// ViewProfile performs no authorization: any caller may view any profile.
func (s *CatalogService) ViewProfile(userID int) (Profile, error) {
	var (
		p     Profile
		found bool
	)
	s.store.Read(func(c *models.Catalog, d *models.UserDirectory) {
		u := d.FindUser(userID)
		if u == nil {
			return
		}
		found = true
		p.ID, p.Name = u.ID, u.Name
		p.IssuedBooks = make([]ProfileLoan, 0, len(u.IssuedBooks))
		for _, ib := range u.IssuedBooks {
			loan := ProfileLoan{BookID: ib.BookID, BorrowDate: ib.BorrowDate}
			if b := c.FindBook(ib.BookID); b != nil {
				loan.Title = b.Title
			}
			p.IssuedBooks = append(p.IssuedBooks, loan)
		}
		p.Catalog = c.Search("")
	})
	if !found {
		return Profile{}, ErrNotFound
	}
	return p, nil
}

package models

import (
	"slices"
	"strings"
)

// Book is a catalog entry. Available is the number of copies on the shelf.
type Book struct {
	ID        int    `json:"id"`
	Title     string `json:"title"`
	Author    string `json:"author,omitempty"`
	Available int    `json:"available"`

	Extra Extra `json:"-"`
}

type bookFields Book

var bookKeys = []string{"id", "title", "author", "available"}

func (b Book) MarshalJSON() ([]byte, error) {
	return encodeWithExtra(bookFields(b), b.Extra)
}

func (b *Book) UnmarshalJSON(data []byte) error {
	var f bookFields
	extra, err := decodeWithExtra(data, &f, bookKeys...)
	if err != nil {
		return err
	}
	*b = Book(f)
	b.Extra = extra
	return nil
}

// Catalog is the persisted catalog document: the books plus the lending policy.
type Catalog struct {
	Books           []Book `json:"books"`
	MaxBooksPerUser int    `json:"max_books_per_user"`

	Extra Extra `json:"-"`
}

type catalogFields Catalog

var catalogKeys = []string{"books", "max_books_per_user"}

func (c Catalog) MarshalJSON() ([]byte, error) {
	return encodeWithExtra(catalogFields(c), c.Extra)
}

func (c *Catalog) UnmarshalJSON(data []byte) error {
	var f catalogFields
	extra, err := decodeWithExtra(data, &f, catalogKeys...)
	if err != nil {
		return err
	}
	*c = Catalog(f)
	c.Extra = extra
	return nil
}

// Clone copies the catalog so that changes to the clone's books do not reach c.
func (c *Catalog) Clone() Catalog {
	out := *c
	out.Books = slices.Clone(c.Books)
	return out
}

// FindBook returns a pointer into c.Books for the first book with the given id, or nil.
func (c *Catalog) FindBook(id int) *Book {
	for i := range c.Books {
		if c.Books[i].ID == id {
			return &c.Books[i]
		}
	}
	return nil
}

// Search returns copies of the books whose title contains query, ignoring case.
// An empty query matches every book. Storage order is kept.
func (c *Catalog) Search(query string) []Book {
	q := strings.ToLower(query)
	out := make([]Book, 0, len(c.Books))
	for _, b := range c.Books {
		if strings.Contains(strings.ToLower(b.Title), q) {
			out = append(out, b)
		}
	}
	return out
}

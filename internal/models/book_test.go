package models

import "testing"

func testCatalog() Catalog {
	return Catalog{
		Books: []Book{
			{ID: 1, Title: "The Go Programming Language", Available: 2},
			{ID: 2, Title: "Designing Data-Intensive Applications", Available: 1},
			{ID: 3, Title: "go in Action", Available: 0},
		},
		MaxBooksPerUser: 3,
	}
}

func TestCatalog_FindBook(t *testing.T) {
	c := testCatalog()

	b := c.FindBook(2)
	if b == nil || b.Title != "Designing Data-Intensive Applications" {
		t.Fatalf("unexpected book: %+v", b)
	}
	// pointer aliases the stored entry
	b.Available--
	if c.Books[1].Available != 0 {
		t.Fatalf("expected mutation through pointer, got %d", c.Books[1].Available)
	}

	if got := c.FindBook(42); got != nil {
		t.Fatalf("expected nil for unknown id, got %+v", got)
	}
}

func TestCatalog_Search(t *testing.T) {
	c := testCatalog()

	cases := []struct {
		name  string
		query string
		want  []int
	}{
		{"empty matches all", "", []int{1, 2, 3}},
		{"case insensitive", "GO", []int{1, 3}},
		{"substring", "data", []int{2}},
		{"no match", "rust", []int{}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := c.Search(tc.query)
			if len(got) != len(tc.want) {
				t.Fatalf("got %d books, want %d", len(got), len(tc.want))
			}
			for i, id := range tc.want {
				if got[i].ID != id {
					t.Fatalf("position %d: got id %d, want %d", i, got[i].ID, id)
				}
			}
		})
	}
}

func TestCatalog_SearchReturnsCopies(t *testing.T) {
	c := testCatalog()
	got := c.Search("")
	got[0].Available = 99
	if c.Books[0].Available != 2 {
		t.Fatalf("search result must not alias the catalog")
	}
}

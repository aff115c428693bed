package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"library_management/internal/models"
	"library_management/internal/service"
)

func TestHealth(t *testing.T) {
	r := newTestRouter(&service.Service{})
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health", nil))
	if w.Code != http.StatusOK || w.Body.String() != `{"status":"ok"}` {
		t.Fatalf("health: %d %s", w.Code, w.Body.String())
	}
}

func TestListBooks_PassesQueryAndCaller(t *testing.T) {
	catalog := &mockCatalog{books: []models.Book{
		{ID: 1, Title: "Dune", Available: 2},
		{ID: 2, Title: "Dune Messiah", Available: 0},
	}}
	sessions := &mockSessions{parseID: 4}
	r := newTestRouter(&service.Service{Catalog: catalog, Sessions: sessions})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, newRequest(http.MethodGet, "/api/v1/books?search=dune", "tok"))
	if w.Code != http.StatusOK {
		t.Fatalf("status=%d, body=%s", w.Code, w.Body.String())
	}

	var out service.SearchResult
	if err := json.Unmarshal(w.Body.Bytes(), &out); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if out.Query != "dune" || out.CallerID != 4 || len(out.Books) != 2 {
		t.Fatalf("unexpected result: %+v", out)
	}
	if catalog.lastQuery != "dune" || catalog.lastCaller != 4 {
		t.Fatalf("Search got (%q, %d)", catalog.lastQuery, catalog.lastCaller)
	}
}

func TestListBooks_Anonymous(t *testing.T) {
	catalog := &mockCatalog{}
	r := newTestRouter(&service.Service{Catalog: catalog, Sessions: &mockSessions{}})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, newRequest(http.MethodGet, "/api/v1/books", ""))
	if w.Code != http.StatusOK {
		t.Fatalf("status=%d", w.Code)
	}
	if catalog.lastCaller != 0 || catalog.lastQuery != "" {
		t.Fatalf("Search got (%q, %d)", catalog.lastQuery, catalog.lastCaller)
	}
}

func TestViewBook(t *testing.T) {
	cases := []struct {
		name     string
		path     string
		catalog  *mockCatalog
		wantCode int
	}{
		{
			name: "found",
			path: "/api/v1/books/3",
			catalog: &mockCatalog{view: service.BookView{
				Book:      models.Book{ID: 3, Title: "Emma", Available: 1},
				Available: true,
			}},
			wantCode: http.StatusOK,
		},
		{
			name:     "unknown id",
			path:     "/api/v1/books/99",
			catalog:  &mockCatalog{viewErr: service.ErrNotFound},
			wantCode: http.StatusNotFound,
		},
		{
			name:     "non-numeric id",
			path:     "/api/v1/books/abc",
			catalog:  &mockCatalog{},
			wantCode: http.StatusNotFound,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			r := newTestRouter(&service.Service{Catalog: tc.catalog, Sessions: &mockSessions{}})
			w := httptest.NewRecorder()
			r.ServeHTTP(w, newRequest(http.MethodGet, tc.path, ""))
			if w.Code != tc.wantCode {
				t.Fatalf("status: got %d, want %d (body=%s)", w.Code, tc.wantCode, w.Body.String())
			}
			if tc.wantCode == http.StatusOK {
				var view service.BookView
				_ = json.Unmarshal(w.Body.Bytes(), &view)
				if view.Book.Title != "Emma" || !view.Available || tc.catalog.lastID != 3 {
					t.Fatalf("unexpected view: %+v", view)
				}
				return
			}
			if n := decodeNotice(t, w); n.Category != categoryDanger {
				t.Fatalf("unexpected notice: %+v", n)
			}
		})
	}
}

func TestViewProfile_NoOwnershipCheck(t *testing.T) {
	catalog := &mockCatalog{profile: service.Profile{
		ID:          2,
		Name:        "bob",
		IssuedBooks: []service.ProfileLoan{{BookID: 1, Title: "Dune", BorrowDate: "2024-03-09"}},
	}}
	// caller 7 looks at user 2
	r := newTestRouter(&service.Service{Catalog: catalog, Sessions: &mockSessions{parseID: 7}})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, newRequest(http.MethodGet, "/api/v1/profile/2", "tok"))
	if w.Code != http.StatusOK {
		t.Fatalf("status=%d, body=%s", w.Code, w.Body.String())
	}
	var p map[string]any
	_ = json.Unmarshal(w.Body.Bytes(), &p)
	if p["name"] != "bob" {
		t.Fatalf("unexpected profile: %v", p)
	}
	if _, leaked := p["password"]; leaked {
		t.Fatalf("password leaked: %v", p)
	}

	catalog.profileErr = service.ErrNotFound
	w = httptest.NewRecorder()
	r.ServeHTTP(w, newRequest(http.MethodGet, "/api/v1/profile/5", ""))
	if w.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", w.Code)
	}
}

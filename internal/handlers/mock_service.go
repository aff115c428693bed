package handlers

import (
	"context"
	"net/http"
	"sync"

	"library_management/internal/models"
	"library_management/internal/service"

	"github.com/gin-gonic/gin"
)

// ---- Service Mocks ----

type mockIdentity struct {
	registerUser models.User
	registerErr  error
	authUser     models.User
	authErr      error

	lastName     string
	lastPassword string
}

func (m *mockIdentity) Register(ctx context.Context, name, password string) (models.User, error) {
	m.lastName = name
	m.lastPassword = password
	return m.registerUser, m.registerErr
}
func (m *mockIdentity) Authenticate(name, password string) (models.User, error) {
	m.lastName = name
	m.lastPassword = password
	return m.authUser, m.authErr
}

type mockSessions struct {
	token    string
	issueErr error
	parseID  int
	parseErr error

	lastIssuedFor  int
	lastParseToken string
	signOutCalls   []int
}

func (m *mockSessions) IssueToken(userID int) (string, error) {
	m.lastIssuedFor = userID
	return m.token, m.issueErr
}
func (m *mockSessions) ParseToken(token string) (int, error) {
	m.lastParseToken = token
	return m.parseID, m.parseErr
}
func (m *mockSessions) SignOut(callerID int) {
	m.signOutCalls = append(m.signOutCalls, callerID)
}

type mockCatalog struct {
	mu sync.Mutex

	books      []models.Book
	view       service.BookView
	viewErr    error
	profile    service.Profile
	profileErr error

	lastQuery  string
	lastCaller int
	lastID     int
}

func (m *mockCatalog) Search(query string, callerID int) service.SearchResult {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.lastQuery = query
	m.lastCaller = callerID
	out := make([]models.Book, len(m.books))
	copy(out, m.books)
	return service.SearchResult{Books: out, Query: query, CallerID: callerID}
}
func (m *mockCatalog) ViewBook(bookID, callerID int) (service.BookView, error) {
	m.lastID = bookID
	m.lastCaller = callerID
	return m.view, m.viewErr
}
func (m *mockCatalog) ViewProfile(userID int) (service.Profile, error) {
	m.lastID = userID
	return m.profile, m.profileErr
}

func (m *mockCatalog) setBooks(books []models.Book) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.books = books
}

type mockCirculation struct {
	loan      models.IssuedBook
	borrowErr error
	returnErr error

	lastCaller  int
	lastBook    int
	borrowCalls int
	returnCalls int
}

func (m *mockCirculation) Borrow(ctx context.Context, callerID, bookID int) (models.IssuedBook, error) {
	m.borrowCalls++
	m.lastCaller = callerID
	m.lastBook = bookID
	return m.loan, m.borrowErr
}
func (m *mockCirculation) Return(ctx context.Context, callerID, bookID int) error {
	m.returnCalls++
	m.lastCaller = callerID
	m.lastBook = bookID
	return m.returnErr
}

type mockHistory struct {
	resp       []models.CirculationEvent
	err        error
	lastFilter service.LogFilter
	calls      int
}

func (m *mockHistory) List(ctx context.Context, f service.LogFilter) ([]models.CirculationEvent, error) {
	m.calls++
	m.lastFilter = f
	return m.resp, m.err
}

// ---- Shared Test Helpers ----

func newTestRouter(s *service.Service) *gin.Engine {
	h := NewHandler(s, nil)
	gin.SetMode(gin.TestMode)
	return h.InitRoutes()
}

func authHeader(token string) http.Header {
	h := http.Header{}
	if token != "" {
		h.Set("Authorization", "Bearer "+token)
	}
	return h
}

func newRequest(method, target, token string) *http.Request {
	req, _ := http.NewRequest(method, target, nil)
	for k, vv := range authHeader(token) {
		for _, v := range vv {
			req.Header.Add(k, v)
		}
	}
	return req
}

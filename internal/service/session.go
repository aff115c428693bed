package service

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"library_management/internal/models"
	"library_management/internal/repository"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

var errAnonymousSession = errors.New("cannot issue a session for an anonymous caller")

// SessionService issues and verifies bearer tokens. Signing out bumps the
// user's generation, which invalidates every token issued before. A token only
// identifies a caller while the user directory still holds the same id and name.
type SessionService struct {
	users      repository.LibraryStore
	signingKey []byte
	ttl        time.Duration

	mu          sync.Mutex
	generations map[int]int
}

func NewSessionService(users repository.LibraryStore, signingKey string, ttl time.Duration) *SessionService {
	if ttl <= 0 {
		ttl = defaultTokenTTL
	}
	return &SessionService{
		users:       users,
		signingKey:  []byte(signingKey),
		ttl:         ttl,
		generations: make(map[int]int),
	}
}

// Claims defines JWT claims
type Claims struct {
	jwt.RegisteredClaims
	UserID     int    `json:"user_id"`
	Name       string `json:"name"`
	Generation int    `json:"gen"`
}

// IssueToken returns a signed token identifying userID.
func (s *SessionService) IssueToken(userID int) (string, error) {
	if userID <= 0 {
		return "", errAnonymousSession
	}
	name, ok := s.userName(userID)
	if !ok {
		return "", ErrNotFound
	}
	now := time.Now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, &Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl)),
			IssuedAt:  jwt.NewNumericDate(now),
		},
		UserID:     userID,
		Name:       name,
		Generation: s.generation(userID),
	})
	return token.SignedString(s.signingKey)
}

// ParseToken parses JWT and returns userID
func (s *SessionService) ParseToken(accessToken string) (int, error) {
	token, err := jwt.ParseWithClaims(accessToken, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return s.signingKey, nil
	})
	if err != nil {
		return 0, err
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid || claims.UserID <= 0 {
		return 0, ErrInvalidToken
	}
	if claims.Generation != s.generation(claims.UserID) {
		return 0, ErrInvalidToken
	}
	// the id may have been reissued after the user document was reset
	if name, ok := s.userName(claims.UserID); !ok || name != claims.Name {
		return 0, ErrInvalidToken
	}
	return claims.UserID, nil
}

// SignOut ends every session of callerID. Anonymous callers are a no-op.
func (s *SessionService) SignOut(callerID int) {
	if callerID <= 0 {
		return
	}
	s.mu.Lock()
	s.generations[callerID]++
	s.mu.Unlock()
}

func (s *SessionService) generation(userID int) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.generations[userID]
}

func (s *SessionService) userName(userID int) (name string, ok bool) {
	s.users.Read(func(_ *models.Catalog, d *models.UserDirectory) {
		if u := d.FindUser(userID); u != nil {
			name, ok = u.Name, true
		}
	})
	return name, ok
}

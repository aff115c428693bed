package service

import "errors"

// Domain errors. Every one of them is recoverable and terminal for the request only.
var (
	ErrInvalidInput       = errors.New("name and password are required")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrUnauthenticated    = errors.New("sign in required")
	ErrNotFound           = errors.New("book or user not found")
	ErrNoCopiesAvailable  = errors.New("no copies available")
	ErrBorrowLimitReached = errors.New("borrow limit reached")
	ErrNotBorrowed        = errors.New("book not borrowed by caller")

	ErrInvalidToken = errors.New("invalid token")
)

package handlers

import (
	"errors"
	"net/http"

	"library_management/internal/service"

	"github.com/gin-gonic/gin"
)

// Notice categories.
const (
	categorySuccess = "success"
	categoryDanger  = "danger"
)

const (
	msgSignUpOK      = "Signup successful! Please signin."
	msgSignInOK      = "Signin successful!"
	msgSignOutOK     = "Signout successful!"
	msgBorrowOK      = "Book borrowed successfully!"
	msgReturnOK      = "Book returned successfully!"
	msgSignInBorrow  = "Please signin to borrow a book."
	msgSignInReturn  = "Please signin to return a book."
	msgInternalError = "Something went wrong. Please try again."
)

type domainFailure struct {
	err     error
	code    int
	message string
}

// Mapping of domain errors to status and user-facing wording.
var domainFailures = []domainFailure{
	{service.ErrInvalidInput, http.StatusBadRequest, "Invalid signup details. Please try again."},
	{service.ErrInvalidCredentials, http.StatusUnauthorized, "Invalid signin credentials. Please try again."},
	{service.ErrUnauthenticated, http.StatusUnauthorized, "Please signin."},
	{service.ErrNotFound, http.StatusNotFound, "Book or user not found."},
	{service.ErrNoCopiesAvailable, http.StatusConflict, "All copies of this book are currently borrowed. Please try again later."},
	{service.ErrBorrowLimitReached, http.StatusConflict, "You have reached the maximum limit of borrowed books."},
	{service.ErrNotBorrowed, http.StatusConflict, "Book not found, not borrowed, or not issued by the current user."},
}

func classify(err error) (int, string, bool) {
	for _, f := range domainFailures {
		if errors.Is(err, f.err) {
			return f.code, f.message, true
		}
	}
	return http.StatusInternalServerError, msgInternalError, false
}

func notice(category, message string) gin.H {
	return gin.H{"category": category, "message": message}
}

// respondSuccess writes a 200 success notice merged with extra.
func respondSuccess(c *gin.Context, message string, extra gin.H) {
	resp := notice(categorySuccess, message)
	for k, v := range extra {
		resp[k] = v
	}
	c.JSON(http.StatusOK, resp)
}

// respondFailure writes a danger notice for err. Domain errors are logged at info,
// anything else at error and answered with 500. unauthMsg overrides the wording
// for ErrUnauthenticated when non-empty.
func (h *Handler) respondFailure(c *gin.Context, logKey string, err error, unauthMsg string, kv ...interface{}) {
	code, msg, known := classify(err)
	if unauthMsg != "" && errors.Is(err, service.ErrUnauthenticated) {
		msg = unauthMsg
	}
	if h.log != nil {
		fields := append([]interface{}{"err", err}, kv...)
		if known {
			h.log.Infow(logKey, fields...)
		} else {
			h.log.Errorw(logKey, fields...)
		}
	}
	c.JSON(code, notice(categoryDanger, msg))
}

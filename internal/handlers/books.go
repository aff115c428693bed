package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
)

// Common response/status constants to avoid magic strings and typos.
const (
	statusOK = "ok"

	errBadID = "Book or user not found."
)

// pathID parses the :id route parameter. Non-numeric ids are answered with 404,
// the same as unknown ones.
func pathID(c *gin.Context) (int, bool) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil || id <= 0 {
		c.JSON(http.StatusNotFound, notice(categoryDanger, errBadID))
		return 0, false
	}
	return id, true
}

// @Summary      Health check
// @Tags         system
// @Produce      json
// @Success      200  {object}  map[string]string
// @Router       /health [get]
func (h *Handler) health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status": statusOK,
	})
}

// @Summary      List books
// @Description  Case-insensitive title search; an empty query lists every book.
// @Tags         books
// @Produce      json
// @Param        search  query     string  false  "Title substring"
// @Success      200     {object}  service.SearchResult
// @Router       /api/v1/books [get]
func (h *Handler) listBooks(c *gin.Context) {
	c.JSON(http.StatusOK, h.services.Search(c.Query("search"), callerID(c)))
}

// @Summary      View book
// @Tags         books
// @Produce      json
// @Param        id   path      int  true  "Book ID"
// @Success      200  {object}  service.BookView
// @Failure      404  {object}  map[string]string
// @Router       /api/v1/books/{id} [get]
func (h *Handler) viewBook(c *gin.Context) {
	bookID, ok := pathID(c)
	if !ok {
		return
	}
	view, err := h.services.ViewBook(bookID, callerID(c))
	if err != nil {
		h.respondFailure(c, "book_view_failed", err, "", "book_id", bookID)
		return
	}
	c.JSON(http.StatusOK, view)
}

// @Summary      View profile
// @Description  Any caller may view any profile.
// @Tags         users
// @Produce      json
// @Param        id   path      int  true  "User ID"
// @Success      200  {object}  service.Profile
// @Failure      404  {object}  map[string]string
// @Router       /api/v1/profile/{id} [get]
func (h *Handler) viewProfile(c *gin.Context) {
	userID, ok := pathID(c)
	if !ok {
		return
	}
	profile, err := h.services.ViewProfile(userID)
	if err != nil {
		h.respondFailure(c, "profile_view_failed", err, "", "user_id", userID)
		return
	}
	c.JSON(http.StatusOK, profile)
}

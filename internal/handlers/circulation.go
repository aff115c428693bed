package handlers

import (
	"github.com/gin-gonic/gin"
)

// @Summary      Borrow book
// @Tags         circulation
// @Produce      json
// @Param        id   path      int  true  "Book ID"
// @Success      200  {object}  map[string]interface{}  "category, message, issued_book"
// @Failure      401  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Failure      409  {object}  map[string]string
// @Router       /api/v1/books/{id}/borrow [post]
// @Security     BearerAuth
func (h *Handler) borrowBook(c *gin.Context) {
	bookID, ok := pathID(c)
	if !ok {
		return
	}
	caller := callerID(c)

	loan, err := h.services.Borrow(c.Request.Context(), caller, bookID)
	if err != nil {
		h.respondFailure(c, "circulation_borrow_failed", err, msgSignInBorrow, "user_id", caller, "book_id", bookID)
		return
	}

	if h.log != nil {
		h.log.Infow("circulation_borrowed", "user_id", caller, "book_id", bookID)
	}
	respondSuccess(c, msgBorrowOK, gin.H{"issued_book": loan})
}

// @Summary      Return book
// @Tags         circulation
// @Produce      json
// @Param        id   path      int  true  "Book ID"
// @Success      200  {object}  map[string]string
// @Failure      401  {object}  map[string]string
// @Failure      409  {object}  map[string]string
// @Router       /api/v1/books/{id}/return [post]
// @Security     BearerAuth
func (h *Handler) returnBook(c *gin.Context) {
	bookID, ok := pathID(c)
	if !ok {
		return
	}
	caller := callerID(c)

	if err := h.services.Return(c.Request.Context(), caller, bookID); err != nil {
		h.respondFailure(c, "circulation_return_failed", err, msgSignInReturn, "user_id", caller, "book_id", bookID)
		return
	}

	if h.log != nil {
		h.log.Infow("circulation_returned", "user_id", caller, "book_id", bookID)
	}
	respondSuccess(c, msgReturnOK, nil)
}

package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Shared credentials payload for sign-up and sign-in. Accepts JSON or form posts;
// emptiness is judged by the identity service.
type authCredentials struct {
	Name     string `json:"name" form:"name"`
	Password string `json:"password" form:"password"`
}

// bindOrBadRequest binds the request body into dst and writes a 400 notice on failure.
// Returns false if the request was already handled.
func (h *Handler) bindOrBadRequest(c *gin.Context, dst any) bool {
	if err := c.ShouldBind(dst); err != nil {
		if h.log != nil {
			h.log.Infow("auth_bad_request_body", "err", err)
		}
		c.JSON(http.StatusBadRequest, notice(categoryDanger, "invalid body: "+err.Error()))
		return false
	}
	return true
}

// @Summary      Sign up
// @Description  Registers a reader. Does not sign in.
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      authCredentials  true  "Credentials"
// @Success      200   {object}  map[string]interface{}  "id, category, message"
// @Failure      400   {object}  map[string]string
// @Router       /auth/sign-up [post]
func (h *Handler) signUp(c *gin.Context) {
	var input authCredentials
	if ok := h.bindOrBadRequest(c, &input); !ok {
		return
	}

	user, err := h.services.Register(c.Request.Context(), input.Name, input.Password)
	if err != nil {
		h.respondFailure(c, "auth_sign_up_failed", err, "", "name", input.Name)
		return
	}

	respondSuccess(c, msgSignUpOK, gin.H{"id": user.ID})
}

// @Summary      Sign in
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      authCredentials  true  "Credentials"
// @Success      200   {object}  map[string]interface{}  "token, user_id, category, message"
// @Failure      400   {object}  map[string]string
// @Failure      401   {object}  map[string]string
// @Router       /auth/sign-in [post]
func (h *Handler) signIn(c *gin.Context) {
	var input authCredentials
	if ok := h.bindOrBadRequest(c, &input); !ok {
		return
	}

	user, err := h.services.Authenticate(input.Name, input.Password)
	if err != nil {
		h.respondFailure(c, "auth_sign_in_failed", err, "", "name", input.Name)
		return
	}

	token, err := h.services.IssueToken(user.ID)
	if err != nil {
		h.respondFailure(c, "auth_issue_token_failed", err, "", "user_id", user.ID)
		return
	}

	respondSuccess(c, msgSignInOK, gin.H{"token": token, "user_id": user.ID})
}

// @Summary      Sign out
// @Description  Ends every session of the caller. Always succeeds.
// @Tags         auth
// @Produce      json
// @Success      200  {object}  map[string]string
// @Router       /auth/sign-out [post]
// @Security     BearerAuth
func (h *Handler) signOut(c *gin.Context) {
	h.services.SignOut(callerID(c))
	respondSuccess(c, msgSignOutOK, nil)
}

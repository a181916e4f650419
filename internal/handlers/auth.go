package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

const msgMissingCredentials = "Missing 'username' or 'password'"

// Single, shared credentials payload for register, login and logout.
type authCredentials struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// bindJSONOrBadRequest tries to bind the request body into dst and writes a 400 envelope on failure.
// Returns false if the request was already handled (aborted), true otherwise.
func (h *Handler) bindJSONOrBadRequest(c *gin.Context, dst any, message string) bool {
	if err := c.ShouldBindJSON(dst); err != nil {
		h.log.Infow("bad_request_body", "path", c.FullPath(), "err", err)
		newErrorResponse(c, http.StatusBadRequest, message)
		return false
	}
	return true
}

// @Summary      Register
// @Description  Creates an account. Usernames are unique and case sensitive.
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        input  body      authCredentials  true  "credentials"
// @Success      201    {object}  statusResponse
// @Failure      400    {object}  statusResponse
// @Failure      409    {object}  statusResponse
// @Failure      500    {object}  statusResponse
// @Router       /register [post]
func (h *Handler) register(c *gin.Context) {
	var input authCredentials
	if ok := h.bindJSONOrBadRequest(c, &input, msgMissingCredentials); !ok {
		return
	}

	if err := h.services.Register(c.Request.Context(), input.Username, input.Password); err != nil {
		h.log.Infow("auth_register_failed", "username", input.Username, "err", err)
		h.respondServiceError(c, "auth_register_error", err, "username", input.Username)
		return
	}

	h.log.Infow("auth_registered", "username", input.Username)
	newSuccessResponse(c, http.StatusCreated, "Registration successful!")
}

// @Summary      Log in
// @Description  Verifies credentials and sets the session cookie. The token is never part of the body.
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        input  body      authCredentials  true  "credentials"
// @Success      200    {object}  statusResponse
// @Header       200    {string}  Set-Cookie  "session_token=...; HttpOnly"
// @Failure      400    {object}  statusResponse
// @Failure      401    {object}  statusResponse
// @Failure      500    {object}  statusResponse
// @Router       /login [post]
func (h *Handler) login(c *gin.Context) {
	var input authCredentials
	if ok := h.bindJSONOrBadRequest(c, &input, msgMissingCredentials); !ok {
		return
	}
	ctx := c.Request.Context()

	userID, err := h.services.Verify(ctx, input.Username, input.Password)
	if err != nil {
		h.log.Infow("auth_login_failed", "username", input.Username)
		h.respondServiceError(c, "auth_login_error", err, "username", input.Username)
		return
	}

	token, err := h.services.CreateSession(ctx, userID, input.Username)
	if err != nil {
		h.respondServiceError(c, "session_create_error", err, "username", input.Username)
		return
	}

	h.setSessionCookie(c, token)
	newSuccessResponse(c, http.StatusOK, "Login successful!")
}

// @Summary      Log out
// @Description  Verifies credentials, then revokes every session of that user and clears the cookie.
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        input  body      authCredentials  true  "credentials"
// @Success      200    {object}  statusResponse
// @Failure      400    {object}  statusResponse
// @Failure      401    {object}  statusResponse
// @Failure      500    {object}  statusResponse
// @Router       /logout [post]
func (h *Handler) logout(c *gin.Context) {
	var input authCredentials
	if ok := h.bindJSONOrBadRequest(c, &input, msgMissingCredentials); !ok {
		return
	}
	ctx := c.Request.Context()

	if _, err := h.services.Verify(ctx, input.Username, input.Password); err != nil {
		h.log.Infow("auth_logout_rejected", "username", input.Username)
		h.respondServiceError(c, "auth_logout_error", err, "username", input.Username)
		return
	}

	n, err := h.services.RevokeSessions(ctx, input.Username)
	if err != nil {
		h.respondServiceError(c, "session_revoke_error", err, "username", input.Username)
		return
	}

	h.log.Infow("auth_logged_out", "username", input.Username, "sessions_revoked", n)
	h.clearSessionCookie(c)
	newSuccessResponse(c, http.StatusOK, "Logged out!")
}

func (h *Handler) setSessionCookie(c *gin.Context, token string) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(h.cookie.Name, token, int(h.cookie.TTL.Seconds()), "/", "", h.cookie.Secure, true)
}

func (h *Handler) clearSessionCookie(c *gin.Context) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(h.cookie.Name, "", -1, "/", "", h.cookie.Secure, true)
}

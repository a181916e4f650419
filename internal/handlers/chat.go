package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// sendRequest carries the message text. Username is accepted for
// compatibility with older clients but the sender is always the session owner.
type sendRequest struct {
	Username string `json:"username"`
	Message  string `json:"message" binding:"required"`
}

// @Summary      Welcome
// @Tags         chat
// @Produce      json
// @Success      200  {object}  statusResponse
// @Router       / [get]
func (h *Handler) index(c *gin.Context) {
	newSuccessResponse(c, http.StatusOK, "Welcome to Nevo Chat!")
}

// @Summary      Send a message
// @Description  Appends a message as the authenticated user.
// @Tags         chat
// @Accept       json
// @Produce      json
// @Param        input  body      sendRequest  true  "message"
// @Success      200    {object}  statusResponse
// @Failure      400    {object}  statusResponse
// @Failure      401    {object}  statusResponse
// @Failure      500    {object}  statusResponse
// @Router       /send [post]
// @Security     SessionCookie
func (h *Handler) send(c *gin.Context) {
	session := sessionFrom(c)

	var input sendRequest
	if ok := h.bindJSONOrBadRequest(c, &input, "Missing 'message' field."); !ok {
		return
	}
	if input.Username != "" && input.Username != session.Username {
		h.log.Warnw("send_username_mismatch", "claimed", input.Username, "session_user", session.Username)
	}

	id, err := h.services.Append(c.Request.Context(), session.Username, input.Message)
	if err != nil {
		h.respondServiceError(c, "message_append_error", err, "username", session.Username)
		return
	}

	h.log.Debugw("message_appended", "message_id", id, "username", session.Username)
	newSuccessResponse(c, http.StatusOK, "Message sent!")
}

// @Summary      List messages
// @Description  Full history, oldest first.
// @Tags         chat
// @Produce      json
// @Success      200  {object}  messagesResponse
// @Failure      500  {object}  statusResponse
// @Router       /messages [get]
func (h *Handler) listMessages(c *gin.Context) {
	messages, err := h.services.ListAll(c.Request.Context())
	if err != nil {
		h.respondServiceError(c, "messages_list_error", err)
		return
	}
	c.JSON(http.StatusOK, messagesResponse{Status: statusSuccess, Messages: messages})
}

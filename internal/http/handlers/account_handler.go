package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

// RegisterUsernameRequest is the payload of POST /username.
type RegisterUsernameRequest struct {
	IDToken  string `json:"idToken" form:"idToken"`
	Username string `json:"username" form:"username" example:"mika"`
}

// UsernameCheckRequest is the payload of POST /username_check.
type UsernameCheckRequest struct {
	UID string `json:"uid" form:"uid" example:"uid-123"`
}

// UsernameCheckResponse tells the client whether to prompt for a username.
type UsernameCheckResponse struct {
	NeedUsername bool `json:"need_username"`
}

// RegisterUsername godoc
// @ID          registerUsername
// @Summary     Set the caller's username
// @Description Creates the user row on first use; later calls change only the username.
// @Tags        Account
// @Accept      json
// @Produce     json
// @Param       body  body  handlers.RegisterUsernameRequest  true  "Token and username"
// @Success     200  {object}  handlers.ResultResponse
// @Failure     400  {object}  handlers.ErrorResponse  "Missing username"
// @Failure     401  {object}  handlers.ErrorResponse  "Authentication failed"
// @Failure     500  {object}  handlers.ErrorResponse  "Internal error"
// @Router      /username [post]
func (h *Handlers) RegisterUsername(c *gin.Context) {
	var req RegisterUsernameRequest
	if !bind(c, &req) {
		return
	}
	uid, ok := h.authenticate(c, req.IDToken)
	if !ok {
		return
	}
	if err := h.svc.Accounts.RegisterUsername(c.Request.Context(), uid, req.Username); err != nil {
		serviceError(c, err)
		return
	}
	done(c)
}

// UsernameCheck godoc
// @ID          usernameCheck
// @Summary     Does this uid still need a username?
// @Tags        Account
// @Accept      json
// @Produce     json
// @Param       body  body  handlers.UsernameCheckRequest  true  "User id"
// @Success     200  {object}  handlers.UsernameCheckResponse
// @Failure     400  {object}  handlers.ErrorResponse  "Missing uid"
// @Failure     500  {object}  handlers.ErrorResponse  "Internal error"
// @Router      /username_check [post]
func (h *Handlers) UsernameCheck(c *gin.Context) {
	var req UsernameCheckRequest
	if !bind(c, &req) {
		return
	}
	uid := strings.TrimSpace(req.UID)
	if uid == "" {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "uid required")
		return
	}
	need, err := h.svc.Accounts.NeedsUsername(c.Request.Context(), uid)
	if err != nil {
		serviceError(c, err)
		return
	}
	ok(c, http.StatusOK, UsernameCheckResponse{NeedUsername: need})
}

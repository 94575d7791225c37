// Package handlers implements the idolmatch API endpoints on top of the
// service layer.
//
// Failures share one envelope, and clients branch on its code:
//
//	HTTP/1.1 400 Bad Request
//	{"request_id": "9f1c...", "code": "conflict", "message": "room name already exists"}
//
// Successful state changes without a payload answer {"result":"ok"}.
package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/ryunskeee/idolmatch/internal/http/middleware"
)

// ErrorResponse is the error envelope of every endpoint.
type ErrorResponse struct {
	// Echo of X-Request-ID, for matching a client report to server logs.
	RequestID string `json:"request_id,omitempty" example:"123e4567-e89b-12d3-a456-426614174000"`
	// One of the ErrCode constants.
	Code    string `json:"code" example:"not_found"`
	Message string `json:"message" example:"room not found"`
}

// ResultResponse acknowledges a state change.
type ResultResponse struct {
	Result string `json:"result" example:"ok"`
}

// fail aborts with the envelope. 5xx answers are logged together with the
// last error recorded on the context, since their message is generic.
func fail(c *gin.Context, status int, code, msg string) {
	if status >= http.StatusInternalServerError {
		ev := middleware.LoggerFrom(c).Error().Int("status", status).Str("code", code)
		if last := c.Errors.Last(); last != nil {
			ev = ev.Err(last.Err)
		}
		ev.Msg(msg)
	}
	c.AbortWithStatusJSON(status, ErrorResponse{
		RequestID: c.Writer.Header().Get("X-Request-ID"),
		Code:      code,
		Message:   msg,
	})
}

// Fail lets the router answer NoRoute/NoMethod with the same envelope.
func Fail(c *gin.Context, status int, code, msg string) { fail(c, status, code, msg) }

func ok(c *gin.Context, status int, body any) { c.JSON(status, body) }

func done(c *gin.Context) { ok(c, http.StatusOK, ResultResponse{Result: "ok"}) }

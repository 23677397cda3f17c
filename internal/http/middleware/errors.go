package middleware

// This file implements ErrorHandler, the single place where failures become
// HTTP responses. Handlers and middleware record failures with c.Error and
// return; once the chain unwinds the last recorded error is rendered as
//
//	{"code": "...", "message": "...", "details": ..., "requestId": "..."}
//
// Taxonomy errors (internal/apperr) are rendered as-is. Anything else is an
// unknown failure and gets the generic 500 envelope; its message and stack
// only ever reach the server log.

import (
	"encoding/json"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/credence/credence-backend/internal/apperr"
)

// GenericMessage is the only message ever shown for unknown failures.
const GenericMessage = "An unexpected error occurred."

const jsonContentType = "application/json; charset=utf-8"

// ErrorResponse is the JSON envelope for every failed request.
type ErrorResponse struct {
	Code      string `json:"code"                example:"NOT_FOUND"`
	Message   string `json:"message"             example:"Not found"`
	Details   any    `json:"details,omitempty"   swaggertype:"object"`
	RequestID string `json:"requestId,omitempty" example:"2f1c7a3e-4a55-4a0e-9d6c-1b2f0f7e9a10"`
}

// ErrorHandler renders the last error recorded on the context.
//
// Logging:
//   - status >= 500: error level with code, message and stack
//   - status <  500: warn level with code and message, no stack
//   - unknown failures: error level with the original message and stack
//
// When the response has already been written the error is only logged.
func ErrorHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if len(c.Errors) == 0 {
			return
		}
		err := c.Errors.Last().Err
		lg := LoggerFrom(c)

		body := ErrorResponse{
			Code:      apperr.CodeInternal,
			Message:   GenericMessage,
			RequestID: RequestIDFrom(c),
		}
		status := http.StatusInternalServerError

		if ae, ok := apperr.As(err); ok {
			status = ae.Status
			body.Code = ae.Code
			body.Message = ae.Message
			if ae.HasDetails() {
				body.Details = ae.Details
			}
			if status >= http.StatusInternalServerError {
				lg.Error().Stack().Err(err).
					Str("code", ae.Code).
					Int("status", status).
					Msg(ae.Message)
			} else {
				lg.Warn().
					Str("code", ae.Code).
					Int("status", status).
					Msg(ae.Message)
			}
		} else {
			lg.Error().Stack().Err(err).
				Str("code", apperr.CodeInternal).
				Int("status", status).
				Msg("unhandled error")
		}

		if c.Writer.Written() {
			lg.Warn().Int("status", c.Writer.Status()).Msg("response already written; error not rendered")
			c.Abort()
			return
		}

		observeError(body.Code, status)
		c.Data(status, jsonContentType, encodeError(c, body, status))
		c.Abort()
	}
}

// encodeError marshals body. Details that cannot be encoded are dropped so
// the envelope itself is always delivered. The drop is logged at the level
// the status already implies.
func encodeError(c *gin.Context, body ErrorResponse, status int) []byte {
	b, err := json.Marshal(body)
	if err == nil {
		return b
	}
	lg := LoggerFrom(c)
	ev := lg.Warn()
	if status >= http.StatusInternalServerError {
		ev = lg.Error()
	}
	ev.Err(err).Str("code", body.Code).Int("status", status).Msg("error details not serializable")
	body.Details = nil
	b, _ = json.Marshal(body)
	return b
}

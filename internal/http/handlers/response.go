// Package handlers provides HTTP handler implementations for the public API.
//
// This file defines the response helpers shared by all endpoints. Handlers
// never write error bodies themselves: fail() records the error on the Gin
// context and aborts, and middleware.ErrorHandler renders it as
//
//	HTTP/1.1 404 Not Found
//	{
//	  "code": "NOT_FOUND",
//	  "message": "Not found",
//	  "requestId": "123e4567-e89b-12d3-a456-426614174000"
//	}
//
// Success bodies are written with ok().
package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/credence/credence-backend/internal/apperr"
	"github.com/credence/credence-backend/internal/http/middleware"
)

// ErrorResponse is the error envelope documented for every endpoint.
type ErrorResponse = middleware.ErrorResponse

// fail records err for the error handler and stops the chain.
func fail(c *gin.Context, err error) {
	_ = c.Error(err)
	c.Abort()
}

// NotFound is the catch-all for unmatched routes.
func NotFound(c *gin.Context) {
	fail(c, apperr.NotFound(""))
}

// ok writes a success JSON response.
func ok(c *gin.Context, status int, body any) {
	c.JSON(status, body)
}

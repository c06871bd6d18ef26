package iohttp

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// ErrorBody is the payload of failed requests.
type ErrorBody struct {
	Error ErrorDetail `json:"error"`
}

// ErrorDetail describes a failure without exposing internals.
type ErrorDetail struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func fail(c *gin.Context, status int, code, message string) {
	c.AbortWithStatusJSON(status, ErrorBody{
		Error: ErrorDetail{Code: code, Message: message},
	})
}

func badRequest(c *gin.Context, message string) {
	fail(c, http.StatusBadRequest, "BAD_REQUEST", message)
}

func notFound(c *gin.Context, message string) {
	fail(c, http.StatusNotFound, "NOT_FOUND", message)
}

func internalError(c *gin.Context) {
	fail(c, http.StatusInternalServerError, "INTERNAL", "internal server error")
}

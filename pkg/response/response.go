package response

import (
	"net/http"

	"github.com/gin-gonic/gin"

	appErrors "github.com/hosfile/prepay-api/pkg/errors"
)

// ErrorBody is the wire shape for failed requests. The legacy clients expect
// a human-readable message plus optional per-field entries.
type ErrorBody struct {
	Message string                 `json:"message"`
	Errors  []appErrors.FieldError `json:"errors,omitempty"`
}

// JSON writes a success payload as-is. List endpoints return bare arrays and
// entity endpoints return bare objects, matching the existing API consumers.
func JSON(c *gin.Context, status int, data interface{}) {
	c.Header("Cache-Control", "no-store")
	c.JSON(status, data)
}

// OK responds with HTTP 200.
func OK(c *gin.Context, data interface{}) {
	JSON(c, http.StatusOK, data)
}

// Created responds with HTTP 201 Created.
func Created(c *gin.Context, data interface{}) {
	JSON(c, http.StatusCreated, data)
}

// Message responds with a bare confirmation message.
func Message(c *gin.Context, status int, message string) {
	JSON(c, status, gin.H{"message": message})
}

// Error converts err into the common error structure and writes it.
func Error(c *gin.Context, err error) {
	appErr := appErrors.FromError(err)
	c.Header("Cache-Control", "no-store")
	c.JSON(appErr.Status, ErrorBody{Message: appErr.Message, Errors: appErr.Details})
}

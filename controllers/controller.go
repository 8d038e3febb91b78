// Package controllers maps HTTP requests to service calls.
//
// Every operation returns a status and body, or an error. Handle is the only
// place that writes a success response or forwards an error to
// middleware.ErrorHandler, so no operation formats errors itself.
package controllers

import (
	"catalog/errs"
	"errors"
	"io"

	"github.com/gin-gonic/gin"
)

type Operation func(c *gin.Context) (int, gin.H, error)

// Handle adapts an Operation to gin.
func Handle(op Operation) gin.HandlerFunc {
	return func(c *gin.Context) {
		status, body, err := op(c)
		if err != nil {
			_ = c.Error(err)
			c.Abort()
			return
		}
		c.JSON(status, body)
	}
}

// bindJSON decodes the request body into dst. An empty body decodes as an
// empty object.
func bindJSON(c *gin.Context, dst any) error {
	if err := c.ShouldBindJSON(dst); err != nil && !errors.Is(err, io.EOF) {
		return errs.NewValidationError("Invalid request body")
	}
	return nil
}

func ok(data any) gin.H {
	return gin.H{"success": true, "data": data}
}

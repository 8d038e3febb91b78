package middleware

import (
	"catalog/errs"
	"errors"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

// ErrorHandler writes the response for the last error a handler recorded
// with c.Error. An *errs.HTTPError anywhere in the chain decides the status
// and message; any other error is answered with a generic 500.
func ErrorHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if len(c.Errors) == 0 || c.Writer.Written() {
			return
		}

		err := c.Errors.Last().Err
		log := zerolog.Ctx(c.Request.Context())

		var httpErr *errs.HTTPError
		if !errors.As(err, &httpErr) {
			log.Error().Err(err).Msg("Request failed")
			httpErr = errs.NewInternalServerError()
		} else if httpErr.Status >= 500 {
			log.Error().Err(err).Msg("Request failed")
		} else {
			log.Debug().Err(err).Int("status", httpErr.Status).Msg("Request rejected")
		}

		c.JSON(httpErr.Status, gin.H{"success": false, "message": httpErr.Message})
	}
}

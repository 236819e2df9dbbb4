// Package api implements the HTTP handlers for the external interface
// spec §6 names, translating gin requests into core component calls and
// coreerr's typed taxonomy into HTTP responses.
package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/domeball/core/internal/coreerr"
)

// writeError maps a coreerr.Error's Kind to the HTTP status code spec §7's
// taxonomy implies, falling back to 500 for anything that isn't part of
// the typed taxonomy -- an unclassified error is always a bug, never a
// client problem.
func writeError(c *gin.Context, err error) {
	var coreErr *coreerr.Error
	if errors.As(err, &coreErr) {
		status := http.StatusInternalServerError
		switch coreErr.Kind {
		case coreerr.KindValidation:
			status = http.StatusBadRequest
		case coreerr.KindConflict:
			status = http.StatusConflict
		case coreerr.KindResource:
			status = http.StatusUnprocessableEntity
		case coreerr.KindNotFound:
			status = http.StatusNotFound
		case coreerr.KindInvariant:
			status = http.StatusInternalServerError
		case coreerr.KindStall:
			status = http.StatusOK
		}
		c.JSON(status, gin.H{"error": coreErr.Code, "message": coreErr.Message})
		return
	}
	c.JSON(http.StatusInternalServerError, gin.H{"error": "INTERNAL", "message": err.Error()})
}

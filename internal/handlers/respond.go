package handler

import (
	"net/http"

	"arthavidhi-backend/internal/apperr"

	"github.com/gin-gonic/gin"
)

// respondError maps the error taxonomy onto HTTP statuses. Storage causes
// are logged where they occur; only the summary message reaches the caller.
func respondError(c *gin.Context, err error) {
	status := http.StatusInternalServerError
	switch apperr.KindOf(err) {
	case apperr.KindValidation:
		status = http.StatusBadRequest
	case apperr.KindNotFound:
		status = http.StatusNotFound
	case apperr.KindConflict:
		status = http.StatusConflict
	case apperr.KindUnauthorized:
		status = http.StatusUnauthorized
	}
	c.JSON(status, gin.H{"error": err.Error()})
}

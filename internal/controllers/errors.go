package controllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"autofine/internal/models"
)

// writeDomainError maps the domain error taxonomy onto HTTP status
// codes, keeping the specific reason in the response body so the
// portal can show an accurate message.
func writeDomainError(c *gin.Context, err error) {
	var verr *models.ValidationError
	switch {
	case errors.As(err, &verr):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, models.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, models.ErrPaymentNotAllowed), errors.Is(err, models.ErrInvalidTransition):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	case errors.Is(err, models.ErrPolicyViolation):
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
	}
}

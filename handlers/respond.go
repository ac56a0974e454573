package handlers

import (
	"errors"
	"net/http"

	"food-ordering-api/models"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

// fail maps the error taxonomy onto HTTP statuses. Validation failures and
// duplicate emails are client errors; anything unrecognized is logged and
// reported as a server error.
func fail(c *gin.Context, err error) {
	switch {
	case errors.Is(err, models.ErrDuplicateEmail):
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "Email already registered"})
	case models.IsValidation(err):
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
	case errors.Is(err, models.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "Not found"})
	case errors.Is(err, models.ErrNotAuthenticated):
		c.JSON(http.StatusUnauthorized, gin.H{"error": "You are not logged in"})
	case errors.Is(err, models.ErrForbidden):
		c.JSON(http.StatusForbidden, gin.H{"error": "Access forbidden: insufficient permissions"})
	default:
		logrus.WithError(err).Error("request failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
	}
}

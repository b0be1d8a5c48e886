package handler

import (
	"errors"
	"net/http"

	"github.com/Sheikh-Faraz/Link-Up-Remodel-Backend/internal/service"

	"github.com/gin-gonic/gin"
)

// respondErr maps service errors onto HTTP status codes. Anything the
// taxonomy does not recognize is a 500 with a generic body.
func respondErr(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"msg": err.Error()})
	case errors.Is(err, service.ErrNotFriends), errors.Is(err, service.ErrForbidden):
		c.JSON(http.StatusForbidden, gin.H{"msg": err.Error()})
	case errors.Is(err, service.ErrValidation),
		errors.Is(err, service.ErrDuplicateContact),
		errors.Is(err, service.ErrSelfReference),
		errors.Is(err, service.ErrEmailTaken),
		errors.Is(err, service.ErrInvalidCredentials),
		errors.Is(err, service.ErrAlreadyBlocked),
		errors.Is(err, service.ErrNotBlocked),
		errors.Is(err, service.ErrNotDeleted):
		c.JSON(http.StatusBadRequest, gin.H{"msg": err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"msg": "Server error"})
	}
}

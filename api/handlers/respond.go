package handlers

import (
	"errors"
	"log"
	"net/http"

	"go-foodmarket/api/middleware"
	"go-foodmarket/internal/auth"
	"go-foodmarket/internal/models"
	"go-foodmarket/internal/services"
	"go-foodmarket/internal/store"

	"github.com/gin-gonic/gin"
)

// respondError writes the status and body for err and ends the request.
func respondError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, store.ErrInvalidID),
		errors.Is(err, services.ErrNoFields),
		errors.Is(err, services.ErrNegative),
		errors.Is(err, auth.ErrMissingEmail),
		errors.Is(err, models.ErrInvalidField):
		c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
	case errors.Is(err, services.ErrForbidden):
		c.JSON(http.StatusForbidden, gin.H{"message": "forbidden access"})
	default:
		log.Printf("❌ %s %s [%s]: %v", c.Request.Method, c.FullPath(), middleware.GetRequestID(c), err)
		c.JSON(http.StatusInternalServerError, gin.H{"message": "internal server error"})
	}
}

func badRequest(c *gin.Context, err error) {
	c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
}

package handlers

import (
	"net/http"

	"go-foodmarket/api/middleware"
	"go-foodmarket/internal/models"
	"go-foodmarket/internal/services"

	"github.com/gin-gonic/gin"
)

type BookingHandler struct {
	bookingService *services.BookingService
}

func NewBookingHandler(bookingService *services.BookingService) *BookingHandler {
	return &BookingHandler{
		bookingService: bookingService,
	}
}

// POST /bookings?email=
func (h *BookingHandler) Create(c *gin.Context) {
	var booking models.Booking
	if err := c.ShouldBindJSON(&booking); err != nil {
		badRequest(c, err)
		return
	}

	res, err := h.bookingService.Create(c.Request.Context(), middleware.SessionEmail(c), &booking)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, res)
}

// GET /bookings?email=
func (h *BookingHandler) List(c *gin.Context) {
	bookings, err := h.bookingService.List(c.Request.Context(), middleware.SessionEmail(c))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, bookings)
}

// DELETE /bookings/:id?email=
func (h *BookingHandler) Delete(c *gin.Context) {
	res, err := h.bookingService.Delete(c.Request.Context(), middleware.SessionEmail(c), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, res)
}

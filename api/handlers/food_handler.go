package handlers

import (
	"net/http"
	"strconv"
	"time"

	"go-foodmarket/api/middleware"
	"go-foodmarket/internal/models"
	"go-foodmarket/internal/services"

	"github.com/gin-gonic/gin"
)

type FoodHandler struct {
	foodService *services.FoodService
}

func NewFoodHandler(foodService *services.FoodService) *FoodHandler {
	return &FoodHandler{
		foodService: foodService,
	}
}

// POST /allFoods
func (h *FoodHandler) Create(c *gin.Context) {
	var food models.Food
	if err := c.ShouldBindJSON(&food); err != nil {
		badRequest(c, err)
		return
	}

	res, err := h.foodService.Create(c.Request.Context(), middleware.SessionEmail(c), &food)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, res)
}

// GET /allFoods?searchText=&page=&size=
func (h *FoodHandler) List(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	size, _ := strconv.Atoi(c.DefaultQuery("size", strconv.Itoa(models.DefaultPageSize)))

	foods, err := h.foodService.List(c.Request.Context(), c.Query("searchText"), models.NewPage(page, size))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, foods)
}

// GET /allFoods/:id
// An unknown id answers 200 with a null body.
func (h *FoodHandler) Get(c *gin.Context) {
	food, err := h.foodService.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, food)
}

// PUT /allFoods/:id?email=
func (h *FoodHandler) Update(c *gin.Context) {
	var fields map[string]any
	if err := c.ShouldBindJSON(&fields); err != nil {
		badRequest(c, err)
		return
	}

	res, err := h.foodService.Update(c.Request.Context(), middleware.SessionEmail(c), c.Param("id"), fields)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, res)
}

// DELETE /allFoods/:id?email=
func (h *FoodHandler) Delete(c *gin.Context) {
	res, err := h.foodService.Delete(c.Request.Context(), middleware.SessionEmail(c), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, res)
}

// GET /userSpecific?email=
func (h *FoodHandler) ListMine(c *gin.Context) {
	foods, err := h.foodService.ListByOwner(c.Request.Context(), middleware.SessionEmail(c))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, foods)
}

// GET /foodCount
func (h *FoodHandler) Count(c *gin.Context) {
	count, err := h.foodService.Count(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"count": count})
}

// GET /topFoods
func (h *FoodHandler) Top(c *gin.Context) {
	foods, err := h.foodService.Top(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, foods)
}

// PUT /quantity/:id?email=
func (h *FoodHandler) UpdateQuantity(c *gin.Context) {
	var req models.UpdateQuantityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	res, err := h.foodService.SetQuantity(c.Request.Context(), c.Param("id"), *req.NewQuantity)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, res)
}

// PUT /updateSoldCount/:id?email=
func (h *FoodHandler) UpdateSoldCount(c *gin.Context) {
	var req models.UpdateSoldCountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	res, err := h.foodService.SetSoldCount(c.Request.Context(), c.Param("id"), *req.NewSoldCount)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, res)
}

func (h *FoodHandler) Root(c *gin.Context) {
	c.String(http.StatusOK, "Restaurant server running!")
}

// Health check endpoint
func (h *FoodHandler) HealthCheck(c *gin.Context) {
	if err := h.foodService.Ping(c.Request.Context()); err != nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"status":    "unhealthy",
			"error":     err.Error(),
			"timestamp": time.Now().Unix(),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status":    "healthy",
		"timestamp": time.Now().Unix(),
	})
}

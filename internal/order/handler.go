package order

import (
	"errors"
	"net/http"

	"mealbox/internal/calendar"
	"mealbox/internal/client"
	"mealbox/internal/middleware"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// --------------------------------------------------
// POST /clients/:id/orders
// --------------------------------------------------
func (h *Handler) Create(c *gin.Context) {
	ownerID, ok := middleware.OwnerID(c)
	if !ok {
		return
	}

	var req Order
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	o, err := h.service.Create(c.Request.Context(), ownerID, c.Param("id"), &req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, o)
}

// --------------------------------------------------
// GET /clients/:id/orders[?start=YYYY-MM-DD&end=YYYY-MM-DD]
// --------------------------------------------------
func (h *Handler) List(c *gin.Context) {
	ownerID, ok := middleware.OwnerID(c)
	if !ok {
		return
	}

	var (
		orders []Order
		err    error
	)
	if c.Query("start") != "" || c.Query("end") != "" {
		var start, end calendar.Date
		if start, err = calendar.Parse(c.Query("start")); err != nil {
			respondError(c, err)
			return
		}
		if end, err = calendar.Parse(c.Query("end")); err != nil {
			respondError(c, err)
			return
		}
		orders, err = h.service.CollectSingleOrders(c.Request.Context(), ownerID, c.Param("id"), start, end)
	} else {
		orders, err = h.service.List(c.Request.Context(), ownerID, c.Param("id"))
	}
	if err != nil {
		respondError(c, err)
		return
	}
	if orders == nil {
		orders = []Order{}
	}

	c.JSON(http.StatusOK, gin.H{
		"orders": orders,
		"count":  len(orders),
		"total":  Sum(orders),
	})
}

// --------------------------------------------------
// DELETE /clients/:id/orders/:orderId
// --------------------------------------------------
func (h *Handler) Delete(c *gin.Context) {
	ownerID, ok := middleware.OwnerID(c)
	if !ok {
		return
	}

	if err := h.service.Delete(c.Request.Context(), ownerID, c.Param("id"), c.Param("orderId")); err != nil {
		respondError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

func respondError(c *gin.Context, err error) {
	switch {
	case calendar.IsValidation(err):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, ErrNotFound), errors.Is(err, client.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
	}
}

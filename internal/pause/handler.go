package pause

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
// POST /clients/:id/pauses
// --------------------------------------------------
func (h *Handler) Create(c *gin.Context) {
	ownerID, ok := middleware.OwnerID(c)
	if !ok {
		return
	}

	var req Pause
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	p, err := h.service.Create(c.Request.Context(), ownerID, c.Param("id"), &req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, p)
}

// --------------------------------------------------
// GET /clients/:id/pauses
// --------------------------------------------------
func (h *Handler) List(c *gin.Context) {
	ownerID, ok := middleware.OwnerID(c)
	if !ok {
		return
	}

	pauses, err := h.service.List(c.Request.Context(), ownerID, c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	if pauses == nil {
		pauses = []Pause{}
	}

	c.JSON(http.StatusOK, pauses)
}

// --------------------------------------------------
// DELETE /clients/:id/pauses/:pauseId
// --------------------------------------------------
func (h *Handler) Delete(c *gin.Context) {
	ownerID, ok := middleware.OwnerID(c)
	if !ok {
		return
	}

	if err := h.service.Delete(c.Request.Context(), ownerID, c.Param("id"), c.Param("pauseId")); err != nil {
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

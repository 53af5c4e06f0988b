package client

import (
	"errors"
	"net/http"

	"mealbox/internal/calendar"
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
// POST /clients
// --------------------------------------------------
func (h *Handler) Create(c *gin.Context) {
	ownerID, ok := middleware.OwnerID(c)
	if !ok {
		return
	}

	var req Client
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	created, err := h.service.Create(c.Request.Context(), ownerID, &req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, created)
}

// --------------------------------------------------
// GET /clients
// --------------------------------------------------
func (h *Handler) List(c *gin.Context) {
	ownerID, ok := middleware.OwnerID(c)
	if !ok {
		return
	}

	list := h.service.List
	if c.Query("status") == string(Active) {
		list = h.service.ListActive
	}

	clients, err := list(c.Request.Context(), ownerID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch clients"})
		return
	}
	if clients == nil {
		clients = []*Client{}
	}

	c.JSON(http.StatusOK, clients)
}

// --------------------------------------------------
// GET /clients/:id
// --------------------------------------------------
func (h *Handler) Get(c *gin.Context) {
	ownerID, ok := middleware.OwnerID(c)
	if !ok {
		return
	}

	client, err := h.service.Get(c.Request.Context(), ownerID, c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, client)
}

// --------------------------------------------------
// PUT /clients/:id
// --------------------------------------------------
func (h *Handler) Update(c *gin.Context) {
	ownerID, ok := middleware.OwnerID(c)
	if !ok {
		return
	}

	var req Client
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	updated, err := h.service.Update(c.Request.Context(), ownerID, c.Param("id"), &req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, updated)
}

// --------------------------------------------------
// PATCH /clients/:id/status
// --------------------------------------------------
func (h *Handler) SetStatus(c *gin.Context) {
	ownerID, ok := middleware.OwnerID(c)
	if !ok {
		return
	}

	var req struct {
		Status Status `json:"status"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	if err := h.service.SetStatus(c.Request.Context(), ownerID, c.Param("id"), req.Status); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"id": c.Param("id"), "status": req.Status})
}

// --------------------------------------------------
// DELETE /clients/:id
// --------------------------------------------------
func (h *Handler) Delete(c *gin.Context) {
	ownerID, ok := middleware.OwnerID(c)
	if !ok {
		return
	}

	if err := h.service.Delete(c.Request.Context(), ownerID, c.Param("id")); err != nil {
		respondError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

func respondError(c *gin.Context, err error) {
	switch {
	case calendar.IsValidation(err):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
	}
}

package delivery

import (
	"errors"
	"net/http"
	"time"

	"mealbox/internal/calendar"
	"mealbox/internal/client"
	"mealbox/internal/middleware"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	service *Service
	now     func() time.Time
}

// NewHandler takes the clock used when a request names no date.
func NewHandler(service *Service, now func() time.Time) *Handler {
	return &Handler{service: service, now: now}
}

// --------------------------------------------------
// GET /deliveries[?date=YYYY-MM-DD]
// --------------------------------------------------
func (h *Handler) Today(c *gin.Context) {
	ownerID, ok := middleware.OwnerID(c)
	if !ok {
		return
	}

	today := calendar.Today(h.now())
	if raw := c.Query("date"); raw != "" {
		d, err := calendar.Parse(raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		today = d
	}

	items, err := h.service.Today(c.Request.Context(), ownerID, today)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to build delivery list"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"date":  today,
		"items": items,
		"count": len(items),
	})
}

// --------------------------------------------------
// GET /clients/:id/deliveries?start=YYYY-MM-DD&end=YYYY-MM-DD
// --------------------------------------------------
func (h *Handler) ClientDates(c *gin.Context) {
	ownerID, ok := middleware.OwnerID(c)
	if !ok {
		return
	}

	start, err := calendar.Parse(c.Query("start"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	end, err := calendar.Parse(c.Query("end"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	dates, err := h.service.Dates(c.Request.Context(), ownerID, c.Param("id"), calendar.Range{Start: start, End: end})
	if err != nil {
		if errors.Is(err, client.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"dates":  dates,
		"counts": dates.Counts(),
	})
}

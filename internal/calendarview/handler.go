package calendarview

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
// GET /clients/:id/calendar[?start=&end=]
// --------------------------------------------------
func (h *Handler) Events(c *gin.Context) {
	ownerID, ok := middleware.OwnerID(c)
	if !ok {
		return
	}

	start, err := calendar.ParseOptional(c.Query("start"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	end, err := calendar.ParseOptional(c.Query("end"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	events, err := h.service.Events(c.Request.Context(), ownerID, c.Param("id"))
	if err != nil {
		if errors.Is(err, client.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to build calendar"})
		return
	}

	// optional window, either bound may be open
	filtered := events[:0]
	for _, ev := range events {
		if !start.IsZero() && ev.Date.Before(start) {
			continue
		}
		if !end.IsZero() && ev.Date.After(end) {
			continue
		}
		filtered = append(filtered, ev)
	}

	c.JSON(http.StatusOK, gin.H{"events": filtered, "count": len(filtered)})
}

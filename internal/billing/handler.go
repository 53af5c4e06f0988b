package billing

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

type generateRequest struct {
	ClientID string        `json:"clientId" binding:"required"`
	Start    calendar.Date `json:"start"`
	End      calendar.Date `json:"end"`
	Strategy string        `json:"strategy"`
}

func (r generateRequest) period() (calendar.Range, error) {
	if r.Start.IsZero() || r.End.IsZero() {
		return calendar.Range{}, calendar.NewValidationError("billingPeriod", "", "start and end are required")
	}
	return calendar.Range{Start: r.Start, End: r.End}, nil
}

// --------------------------------------------------
// POST /bills/preview
// --------------------------------------------------
func (h *Handler) Preview(c *gin.Context) {
	ownerID, ok := middleware.OwnerID(c)
	if !ok {
		return
	}

	var req generateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	period, err := req.period()
	if err != nil {
		respondError(c, err)
		return
	}

	draft, err := h.service.Preview(c.Request.Context(), ownerID, req.ClientID, period, req.Strategy)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, draft)
}

// --------------------------------------------------
// POST /bills
// --------------------------------------------------
func (h *Handler) Generate(c *gin.Context) {
	ownerID, ok := middleware.OwnerID(c)
	if !ok {
		return
	}

	var req generateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	period, err := req.period()
	if err != nil {
		respondError(c, err)
		return
	}

	bill, err := h.service.Generate(c.Request.Context(), ownerID, req.ClientID, period, req.Strategy)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, bill)
}

// --------------------------------------------------
// POST /bills/monthly
// --------------------------------------------------
func (h *Handler) GenerateMonthly(c *gin.Context) {
	ownerID, ok := middleware.OwnerID(c)
	if !ok {
		return
	}

	var req struct {
		Month    string `json:"month" binding:"required"`
		Strategy string `json:"strategy"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "month is required (YYYY-MM)"})
		return
	}

	result, err := h.service.GenerateMonthly(c.Request.Context(), ownerID, req.Month, req.Strategy, nil)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

// --------------------------------------------------
// GET /bills[?clientId=&status=]
// --------------------------------------------------
func (h *Handler) List(c *gin.Context) {
	ownerID, ok := middleware.OwnerID(c)
	if !ok {
		return
	}

	f := ListFilter{
		ClientID: c.Query("clientId"),
		Status:   Status(c.Query("status")),
	}
	if f.Status != "" && !f.Status.Valid() {
		c.JSON(http.StatusBadRequest, gin.H{"error": "status must be paid or unpaid"})
		return
	}

	bills, err := h.service.List(c.Request.Context(), ownerID, f)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch bills"})
		return
	}
	if bills == nil {
		bills = []*Bill{}
	}

	c.JSON(http.StatusOK, bills)
}

// --------------------------------------------------
// GET /bills/:id
// --------------------------------------------------
func (h *Handler) Get(c *gin.Context) {
	ownerID, ok := middleware.OwnerID(c)
	if !ok {
		return
	}

	bill, err := h.service.Get(c.Request.Context(), ownerID, c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, bill)
}

// --------------------------------------------------
// PATCH /bills/:id/status
// Body {"status": "paid"|"unpaid"}; an empty body toggles.
// --------------------------------------------------
func (h *Handler) SetStatus(c *gin.Context) {
	ownerID, ok := middleware.OwnerID(c)
	if !ok {
		return
	}

	var req struct {
		Status Status `json:"status"`
	}
	if c.Request.ContentLength != 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
			return
		}
	}

	bill, err := h.service.SetStatus(c.Request.Context(), ownerID, c.Param("id"), req.Status)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, bill)
}

// --------------------------------------------------
// DELETE /bills/:id
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
	case calendar.IsValidation(err), errors.Is(err, ErrUnknownStrategy):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, ErrNotFound), errors.Is(err, client.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, ErrMissingPlan):
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
	}
}

package order

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"mealbox/internal/client"
	"mealbox/internal/meal"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func newTestRouter(t *testing.T) (*gin.Engine, string) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	ctx := context.Background()
	clients := client.NewService(client.NewInMemoryRepository(), zap.NewNop().Sugar())
	c, err := clients.Create(ctx, "owner-1", &client.Client{
		Name:         "Meera",
		CustomerType: client.OnDemand,
		Plan:         &client.Plan{Date: d("2024-03-05"), MealType: meal.Lunch, Price: 90},
	})
	if err != nil {
		t.Fatalf("create client: %v", err)
	}

	h := NewHandler(NewService(NewInMemoryRepository(), clients, zap.NewNop().Sugar()))
	r := gin.New()
	r.Use(func(c *gin.Context) { c.Set("ownerID", "owner-1") })
	r.POST("/clients/:id/orders", h.Create)
	r.GET("/clients/:id/orders", h.List)
	r.DELETE("/clients/:id/orders/:orderId", h.Delete)
	return r, c.ID
}

func TestHandler_CreateListDelete(t *testing.T) {
	r, clientID := newTestRouter(t)
	base := "/clients/" + clientID + "/orders"

	var created Order
	for _, body := range []string{
		`{"orderDate":"2024-03-02","mealType":"lunch","price":100}`,
		`{"orderDate":"2024-04-02","mealType":"dinner","price":150}`,
	} {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, base, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		r.ServeHTTP(w, req)
		if w.Code != http.StatusCreated {
			t.Fatalf("create: expected %d, got %d: %s", http.StatusCreated, w.Code, w.Body.String())
		}
		if err := json.Unmarshal(w.Body.Bytes(), &created); err != nil {
			t.Fatalf("decode order: %v", err)
		}
	}

	tests := []struct {
		name      string
		url       string
		wantCode  int
		wantCount int
	}{
		{"all orders", base, http.StatusOK, 2},
		{"march only", base + "?start=2024-03-01&end=2024-03-31", http.StatusOK, 1},
		{"malformed start", base + "?start=03/01/2024&end=2024-03-31", http.StatusBadRequest, 0},
		{"unknown client", "/clients/nope/orders", http.StatusNotFound, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, tt.url, nil))
			if w.Code != tt.wantCode {
				t.Fatalf("expected %d, got %d: %s", tt.wantCode, w.Code, w.Body.String())
			}
			if tt.wantCode != http.StatusOK {
				return
			}
			var body struct {
				Count int `json:"count"`
			}
			_ = json.Unmarshal(w.Body.Bytes(), &body)
			if body.Count != tt.wantCount {
				t.Fatalf("expected %d orders, got %d", tt.wantCount, body.Count)
			}
		})
	}

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodDelete, base+"/"+created.ID, nil))
	if w.Code != http.StatusNoContent {
		t.Fatalf("delete: expected %d, got %d", http.StatusNoContent, w.Code)
	}

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodDelete, base+"/"+created.ID, nil))
	if w.Code != http.StatusNotFound {
		t.Fatalf("second delete: expected %d, got %d", http.StatusNotFound, w.Code)
	}
}

package middleware

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"mealbox/internal/auth"

	"github.com/gin-gonic/gin"
)

func newRouter(mw ...gin.HandlerFunc) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(mw...)
	router.GET("/test", func(c *gin.Context) {
		ownerID, ok := OwnerID(c)
		if !ok {
			return
		}
		c.JSON(http.StatusOK, gin.H{"ownerID": ownerID})
	})
	return router
}

// TestAuthMiddleware_MissingAuthHeader tests the middleware with missing Authorization header
func TestAuthMiddleware_MissingAuthHeader(t *testing.T) {
	router := newRouter(AuthMiddleware())

	req := httptest.NewRequest("GET", "/test", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusUnauthorized {
		t.Errorf("expected status %d, got %d", http.StatusUnauthorized, w.Code)
	}
}

// TestAuthMiddleware_InvalidAuthFormat tests the middleware with invalid Bearer format
func TestAuthMiddleware_InvalidAuthFormat(t *testing.T) {
	router := newRouter(AuthMiddleware())

	req := httptest.NewRequest("GET", "/test", nil)
	req.Header.Set("Authorization", "InvalidFormat")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusUnauthorized {
		t.Errorf("expected status %d, got %d", http.StatusUnauthorized, w.Code)
	}
}

func TestAuthMiddleware_InvalidToken(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret-key-for-testing-only")
	router := newRouter(AuthMiddleware())

	req := httptest.NewRequest("GET", "/test", nil)
	req.Header.Set("Authorization", "Bearer invalid_token_xyz")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusUnauthorized {
		t.Errorf("expected status %d, got %d", http.StatusUnauthorized, w.Code)
	}
}

func TestAuthMiddleware_ValidTokenSetsOwner(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret-key-for-testing-only")

	token, err := auth.GenerateToken("owner-42", "kitchen@example.com", auth.RoleOperator)
	if err != nil {
		t.Fatalf("failed to generate test token: %v", err)
	}

	router := newRouter(AuthMiddleware())

	req := httptest.NewRequest("GET", "/test", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected status %d, got %d", http.StatusOK, w.Code)
	}

	var body map[string]string
	_ = json.Unmarshal(w.Body.Bytes(), &body)
	if body["ownerID"] != "owner-42" {
		t.Errorf("expected ownerID owner-42, got %q", body["ownerID"])
	}
}

func TestRequireRole(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret-key-for-testing-only")

	tests := []struct {
		role string
		want int
	}{
		{auth.RoleOperator, http.StatusOK},
		{auth.RoleAdmin, http.StatusOK},
		{"RESTAURANT", http.StatusForbidden},
	}

	router := newRouter(AuthMiddleware(), RequireRole(auth.RoleOperator, auth.RoleAdmin))

	for _, tt := range tests {
		token, err := auth.GenerateToken("owner-1", "a@example.com", tt.role)
		if err != nil {
			t.Fatalf("failed to generate token: %v", err)
		}

		req := httptest.NewRequest("GET", "/test", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		if w.Code != tt.want {
			t.Errorf("role %s: expected status %d, got %d", tt.role, tt.want, w.Code)
		}
	}
}

func TestOwnerID_MissingContext(t *testing.T) {
	router := newRouter()

	req := httptest.NewRequest("GET", "/test", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusUnauthorized {
		t.Errorf("expected status %d, got %d", http.StatusUnauthorized, w.Code)
	}
}

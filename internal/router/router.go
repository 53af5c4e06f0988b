package router

import (
	"net/http"
	"time"

	"mealbox/internal/app"
	"mealbox/internal/auth"
	"mealbox/internal/billing"
	"mealbox/internal/calendarview"
	"mealbox/internal/client"
	"mealbox/internal/delivery"
	"mealbox/internal/middleware"
	"mealbox/internal/order"
	"mealbox/internal/pause"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

type Deps struct {
	Services    app.Services
	CORSOrigins []string
	// Now is the clock behind "today" on the delivery list.
	Now func() time.Time
}

func New(d Deps) *gin.Engine {
	if d.Now == nil {
		d.Now = time.Now
	}
	if len(d.CORSOrigins) == 0 {
		d.CORSOrigins = []string{"http://localhost:3000", "http://localhost:5173"}
	}

	r := gin.Default()

	r.Use(cors.New(cors.Config{
		AllowOrigins:     d.CORSOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	// Health check route
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	// ───────────────────────── HANDLERS ─────────────────────────
	clientHandler := client.NewHandler(d.Services.Clients)
	pauseHandler := pause.NewHandler(d.Services.Pauses)
	orderHandler := order.NewHandler(d.Services.Orders)
	deliveryHandler := delivery.NewHandler(d.Services.Deliveries, d.Now)
	billHandler := billing.NewHandler(d.Services.Bills)
	calendarHandler := calendarview.NewHandler(d.Services.Calendar)

	operator := []gin.HandlerFunc{
		middleware.AuthMiddleware(),
		middleware.RequireRole(auth.RoleOperator, auth.RoleAdmin),
	}

	// ───────────────────────── CLIENT ROUTES ─────────────────────────
	clients := r.Group("/clients")
	clients.Use(operator...)
	{
		clients.POST("", clientHandler.Create)
		clients.GET("", clientHandler.List)
		clients.GET("/:id", clientHandler.Get)
		clients.PUT("/:id", clientHandler.Update)
		clients.PATCH("/:id/status", clientHandler.SetStatus)
		clients.DELETE("/:id", clientHandler.Delete)

		clients.POST("/:id/pauses", pauseHandler.Create)
		clients.GET("/:id/pauses", pauseHandler.List)
		clients.DELETE("/:id/pauses/:pauseId", pauseHandler.Delete)

		clients.POST("/:id/orders", orderHandler.Create)
		clients.GET("/:id/orders", orderHandler.List)
		clients.DELETE("/:id/orders/:orderId", orderHandler.Delete)

		clients.GET("/:id/calendar", calendarHandler.Events)
		clients.GET("/:id/deliveries", deliveryHandler.ClientDates)
	}

	// ───────────────────────── DELIVERY ROUTES ─────────────────────────
	deliveries := r.Group("/deliveries")
	deliveries.Use(operator...)
	{
		deliveries.GET("", deliveryHandler.Today)
	}

	// ───────────────────────── BILL ROUTES ─────────────────────────
	bills := r.Group("/bills")
	bills.Use(operator...)
	{
		bills.POST("", billHandler.Generate)
		bills.POST("/preview", billHandler.Preview)
		bills.POST("/monthly", billHandler.GenerateMonthly)
		bills.GET("", billHandler.List)
		bills.GET("/:id", billHandler.Get)
		bills.PATCH("/:id/status", billHandler.SetStatus)
		bills.DELETE("/:id", billHandler.Delete)
	}

	return r
}

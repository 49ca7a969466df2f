package router

import (
	"github.com/gin-gonic/gin"

	"rental-backoffice/internal/auth"
	"rental-backoffice/internal/handlers"
	"rental-backoffice/internal/middleware"
)

// Handlers collects every resource handler the router wires up.
type Handlers struct {
	Auth        *handlers.AuthHandler
	Properties  *handlers.PropertyHandler
	Tenants     *handlers.TenantHandler
	Leases      *handlers.LeaseHandler
	Maintenance *handlers.MaintenanceHandler
}

// Setup builds the API route tree. Everything except health, register
// and login sits behind JWT auth.
func Setup(h Handlers, jwt *auth.Manager) *gin.Engine {
	r := gin.Default()

	// CORS for the back-office frontend
	r.Use(func(c *gin.Context) {
		c.Header("Access-Control-Allow-Origin", "*")
		c.Header("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		c.Header("Access-Control-Allow-Headers", "Content-Type, Authorization")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}

		c.Next()
	})

	api := r.Group("/api")
	api.GET("/health", handlers.HealthCheck)

	authGroup := api.Group("/auth")
	{
		authGroup.POST("/register", h.Auth.Register)
		authGroup.POST("/login", h.Auth.Login)
		authGroup.GET("/profile", middleware.JWTAuth(jwt), h.Auth.Profile)
	}

	properties := api.Group("/properties", middleware.JWTAuth(jwt))
	{
		properties.POST("", h.Properties.Create)
		properties.GET("", h.Properties.List)
		properties.GET("/available", h.Properties.Available)
		properties.GET("/:id", h.Properties.Get)
		properties.PUT("/:id", h.Properties.Update)
		properties.DELETE("/:id", h.Properties.Delete)
		properties.GET("/:id/availability", h.Properties.Availability)
	}

	tenants := api.Group("/tenants", middleware.JWTAuth(jwt))
	{
		tenants.POST("", h.Tenants.Create)
		tenants.GET("", h.Tenants.List)
		tenants.GET("/:id", h.Tenants.Get)
		tenants.PUT("/:id", h.Tenants.Update)
		tenants.DELETE("/:id", h.Tenants.Delete)
	}

	leases := api.Group("/leases", middleware.JWTAuth(jwt))
	{
		leases.POST("", h.Leases.Create)
		leases.GET("", h.Leases.List)
		leases.POST("/check-expired", h.Leases.CheckExpired)
		leases.GET("/expiring-soon", h.Leases.ExpiringSoon)
		leases.GET("/revenue/monthly", h.Leases.MonthlyRevenue)
		leases.GET("/:id", h.Leases.Get)
		leases.PUT("/:id", h.Leases.Update)
		leases.DELETE("/:id", h.Leases.Delete)
	}

	maintenance := api.Group("/maintenance", middleware.JWTAuth(jwt))
	{
		maintenance.POST("", h.Maintenance.Create)
		maintenance.GET("", h.Maintenance.List)
		maintenance.GET("/:id", h.Maintenance.Get)
		maintenance.PUT("/:id", h.Maintenance.Update)
		maintenance.DELETE("/:id", h.Maintenance.Delete)
	}

	return r
}

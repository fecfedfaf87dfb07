package routes

import (
	"fmt"
	"time"

	"github.com/autoservice/garage-api/config"
	"github.com/autoservice/garage-api/controllers"
	"github.com/autoservice/garage-api/middleware"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// SetupRouter wires every endpoint. With Auth0 configured, reads need a valid token and
// writes need the write:orders scope; health and uploaded pictures stay public.
func SetupRouter(cfg *config.Config) (*gin.Engine, error) {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestLogger())
	r.Use(cors.New(corsConfig(cfg)))

	api := r.Group("/api")
	api.GET("/health", controllers.HealthCheck)
	api.GET("/database/status", controllers.DatabaseStatus)
	api.GET("/uploads/:filename", controllers.GetUploadedImage)

	read := api.Group("")
	write := api.Group("")
	if cfg.AuthEnabled() {
		ensureValidToken, err := middleware.EnsureValidToken(cfg)
		if err != nil {
			return nil, fmt.Errorf("failed to set up authentication: %w", err)
		}
		read.Use(ensureValidToken)
		write.Use(ensureValidToken, middleware.RequireScope(middleware.ScopeWriteOrders))
	}

	// Orders
	read.GET("/order", controllers.ListOrders)
	read.GET("/order/:id", controllers.GetOrder)
	write.POST("/order", controllers.CreateOrder)
	write.PUT("/order/:id", controllers.UpdateOrder)
	write.DELETE("/order/:id", controllers.DeleteOrder)

	// Planning board
	read.GET("/schedule/board", controllers.GetScheduleBoard)

	// Price list
	read.GET("/service", controllers.ListServices)
	read.GET("/service/:id", controllers.GetService)
	write.POST("/service", controllers.CreateService)
	write.PUT("/service/:id", controllers.UpdateService)
	write.DELETE("/service/:id", controllers.DeleteService)

	// Boxes
	read.GET("/box", controllers.ListBoxes)
	write.POST("/box", controllers.CreateBox)

	// Car models
	read.GET("/car-model", controllers.ListCarModels)
	write.PUT("/car-model/:id/image", controllers.UploadCarModelImage)

	return r, nil
}

func corsConfig(cfg *config.Config) cors.Config {
	c := cors.Config{
		AllowMethods:  []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:  []string{"Origin", "Authorization", "Content-Type", middleware.RequestIDHeader},
		ExposeHeaders: []string{"Content-Length", middleware.RequestIDHeader},
		MaxAge:        12 * time.Hour,
	}
	if len(cfg.AllowedOrigins) == 0 {
		c.AllowAllOrigins = true
	} else {
		c.AllowOrigins = cfg.AllowedOrigins
		c.AllowCredentials = true
	}
	return c
}

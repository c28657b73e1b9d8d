package main

import (
	"os"
	"path/filepath"

	"github.com/connexa/connexa/pkg/connexa/auth"
	"github.com/connexa/connexa/pkg/connexa/config"
	"github.com/connexa/connexa/pkg/connexa/courses"
	"github.com/connexa/connexa/pkg/connexa/database"
	"github.com/connexa/connexa/pkg/connexa/groups"
	"github.com/connexa/connexa/pkg/connexa/logger"
	"github.com/connexa/connexa/pkg/connexa/metrics"
	"github.com/connexa/connexa/pkg/connexa/models"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

func main() {
	cfg := config.Load()
	log := logger.New(cfg.LogLevel)

	// Connect to database
	if err := database.Connect(cfg.DBPath); err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	db := database.GetDB()

	// Run auto-migrations
	if err := models.AutoMigrate(db); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}
	log.Info("Database migrations completed")

	// Seed the course catalog on first startup
	if err := courses.Seed(db); err != nil {
		log.Fatalf("Failed to seed course catalog: %v", err)
	}

	// Set up Gin router
	r := gin.New()
	r.Use(logger.Middleware(log), gin.Recovery(), metrics.Middleware())
	r.Use(cors.New(corsConfig(cfg)))

	// Health check endpoint
	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status": "ok",
		})
	})

	// Prometheus scrape endpoint
	r.GET("/metrics", metrics.Handler())

	// API routes
	api := r.Group("/api")
	{
		api.GET("", apiIndex)
		api.GET("/health", func(c *gin.Context) {
			c.JSON(200, gin.H{
				"status":  "ok",
				"service": "connexa",
			})
		})

		// Auth routes (public, /me protected internally)
		authHandler := auth.NewHandler(db)
		authHandler.RegisterRoutes(api.Group("/auth"))

		// Course catalog (public)
		coursesHandler := courses.NewHandler(db)
		coursesHandler.RegisterRoutes(api.Group("/courses"))

		// Study groups (mix of public and protected routes)
		groupsHandler := groups.NewHandler(db)
		groupsHandler.RegisterRoutes(api.Group("/groups"))
	}

	// Serve the static frontend if the directory exists
	if _, err := os.Stat(cfg.FrontendDir); err == nil {
		r.StaticFile("/", filepath.Join(cfg.FrontendDir, "index.html"))
		r.Static("/app", cfg.FrontendDir)
		log.Infof("Serving frontend from %s", cfg.FrontendDir)
	} else {
		log.Info("No frontend directory found - API only mode")
	}

	log.Infof("Starting Connexa server on :%s", cfg.Port)
	if err := r.Run(":" + cfg.Port); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}

// corsConfig builds the CORS policy from configuration
func corsConfig(cfg *config.Config) cors.Config {
	corsCfg := cors.DefaultConfig()
	if len(cfg.CORSAllowOrigins) == 1 && cfg.CORSAllowOrigins[0] == "*" {
		corsCfg.AllowAllOrigins = true
	} else {
		corsCfg.AllowOrigins = cfg.CORSAllowOrigins
	}
	corsCfg.AllowHeaders = append(corsCfg.AllowHeaders, "Authorization")
	return corsCfg
}

// apiIndex describes the API surface
func apiIndex(c *gin.Context) {
	c.JSON(200, gin.H{
		"service": "Connexa API",
		"version": "1.0.0",
		"endpoints": gin.H{
			"POST /api/auth/register":    "Register a new user",
			"POST /api/auth/login":       "User login with JWT",
			"POST /api/auth/refresh":     "Refresh JWT token",
			"GET /api/auth/me":           "Get user profile (protected)",
			"GET /api/courses":           "Get all available courses",
			"GET /api/groups":            "Get study groups",
			"GET /api/groups/:id":        "Get group details",
			"POST /api/groups":           "Create study group (protected)",
			"POST /api/groups/:id/join":  "Join study group (protected)",
			"POST /api/groups/:id/leave": "Leave study group (protected)",
			"DELETE /api/groups/:id":     "Delete study group (protected)",
			"GET /health":                "Health check",
			"GET /metrics":               "Prometheus metrics",
		},
	})
}

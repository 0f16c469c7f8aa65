package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"

	"librarydesk/internal/auth"
	"librarydesk/internal/camera"
	"librarydesk/internal/config"
	"librarydesk/internal/httpmiddleware"
	"librarydesk/internal/insights"
	"librarydesk/internal/library"
	"librarydesk/internal/metrics"
	"librarydesk/internal/notify"
)

func main() {
	cfg := config.Load()

	if cfg.Env == "production" || cfg.Env == "prod" {
		gin.SetMode(gin.ReleaseMode)
	}

	if err := runHTTP(cfg); err != nil {
		log.Fatalf("http server failed: %v", err)
	}
}

func runHTTP(cfg config.App) error {
	roster := library.SeedRoster()
	attendance := library.NewStore(library.SeedAttendance())
	cameras := camera.NewRoster(camera.SeedCameras())

	var redisClient *redis.Client
	var notices notify.Queue
	if cfg.NotifyBackend == "redis" {
		redisClient = notify.DialRedis(cfg.RedisAddr)
		notices = notify.NewRedisQueue(redisClient, "librarydesk:notifications", cfg.NotifyTTL)
	} else {
		notices = notify.NewInMemory(64, cfg.NotifyTTL)
	}

	if cfg.GeminiAPIKey == "" && !cfg.GeminiSkip {
		log.Println("GEMINI_API_KEY not set; insights requests will fall back until configured")
	}
	gateway := insights.NewGateway(insights.New(
		cfg.GeminiBaseURL, cfg.GeminiModel, cfg.GeminiAPIKey, cfg.GeminiTimeout, cfg.GeminiSkip,
	))

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(gin.LoggerWithConfig(gin.LoggerConfig{
		SkipPaths: []string{"/healthz", "/metrics"},
	}))
	r.Use(corsMiddleware())
	r.Use(securityHeaders())
	r.Use(httpmiddleware.NewTokenBucket(cfg.RateLimitPerMin, cfg.RateLimitPerMin).GinMiddleware())

	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	r.GET("/healthz", func(c *gin.Context) {
		status := http.StatusOK
		resp := gin.H{"status": "ok"}
		if redisClient != nil {
			healthy := notify.Healthy(c.Request.Context(), redisClient)
			resp["redis"] = healthy
			if !healthy {
				status = http.StatusServiceUnavailable
			}
		}
		c.JSON(status, resp)
	})

	// Role selection is a portal toggle, not a login: anyone may ask for
	// either role and gets a session token routing them to that view set.
	r.POST("/v1/session", func(c *gin.Context) {
		var req struct {
			Role string `json:"role" binding:"required"`
		}
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		if !auth.ValidRole(req.Role) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "role must be student or management"})
			return
		}
		token, exp, err := auth.Issue(req.Role, cfg.JWTIssuer, cfg.JWTSigningKey, cfg.SessionTTL)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "token issue failed"})
			return
		}
		c.JSON(http.StatusCreated, gin.H{
			"token":      token,
			"role":       req.Role,
			"expires_at": exp.Unix(),
		})
	})

	r.GET("/v1/notifications", func(c *gin.Context) {
		pending, err := notices.Drain(c.Request.Context())
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		if pending == nil {
			pending = []notify.Notification{}
		}
		c.JSON(http.StatusOK, gin.H{"notifications": pending})
	})

	student := r.Group("/v1", auth.RequireRole(auth.RoleStudent, cfg.JWTSigningKey, cfg.JWTIssuer))

	student.POST("/checkins", func(c *gin.Context) {
		// Field presence is the store's call: blank input must surface as a
		// ValidationError notification, not a bind failure.
		var req struct {
			StudentID string `json:"student_id"`
			Name      string `json:"name"`
			Room      string `json:"room"`
		}
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		rec, err := attendance.Mark(req.StudentID, req.Name, library.Room(req.Room))
		if err != nil {
			var dup library.DuplicateEntryError
			if errors.As(err, &dup) {
				metrics.CheckinsRejected.WithLabelValues("duplicate").Inc()
				notify.Error(c.Request.Context(), notices, "Attendance already marked for today")
				c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
				return
			}
			metrics.CheckinsRejected.WithLabelValues("validation").Inc()
			notify.Error(c.Request.Context(), notices, "Please fill all fields")
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		metrics.CheckinsAccepted.Inc()
		notify.Success(c.Request.Context(), notices, fmt.Sprintf("Success! Room: %s", rec.Room))
		c.JSON(http.StatusCreated, rec)
	})

	mgmt := r.Group("/v1", auth.RequireRole(auth.RoleManagement, cfg.JWTSigningKey, cfg.JWTIssuer))

	mgmt.GET("/attendance", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"records": attendance.Records()})
	})

	mgmt.GET("/attendance/absentees", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"absentees": attendance.Absentees(roster)})
	})

	mgmt.GET("/attendance/stats", func(c *gin.Context) {
		c.JSON(http.StatusOK, attendance.ComputeStats(roster))
	})

	mgmt.GET("/cameras", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"cameras": cameras.List()})
	})

	mgmt.POST("/cameras", func(c *gin.Context) {
		var req struct {
			Name     string `json:"name" binding:"required"`
			Location string `json:"location"`
		}
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		cam, err := cameras.Add(req.Name, req.Location)
		if err != nil {
			notify.Error(c.Request.Context(), notices, "Camera name required")
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		metrics.CamerasAdded.Inc()
		notify.Success(c.Request.Context(), notices, "Camera added successfully")
		c.JSON(http.StatusCreated, cam)
	})

	mgmt.DELETE("/cameras/:id", func(c *gin.Context) {
		cameras.Remove(c.Param("id"))
		metrics.CamerasRemoved.Inc()
		notify.Success(c.Request.Context(), notices, "Camera unit removed")
		c.Status(http.StatusNoContent)
	})

	mgmt.POST("/insights", func(c *gin.Context) {
		var req struct {
			Query string `json:"query" binding:"required"`
		}
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		snapshot := insights.Snapshot{
			Attendance: attendance.Records(),
			Cameras:    cameras.List(),
		}
		answer, err := gateway.Ask(c.Request.Context(), snapshot, roster, req.Query)
		if err != nil {
			metrics.InsightRequests.WithLabelValues(metrics.OutcomeBusy).Inc()
			c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
			return
		}
		if answer == insights.FallbackMessage {
			metrics.InsightRequests.WithLabelValues(metrics.OutcomeFallback).Inc()
		} else {
			metrics.InsightRequests.WithLabelValues(metrics.OutcomeAnswered).Inc()
		}
		c.JSON(http.StatusOK, gin.H{"answer": answer})
	})

	srv := &http.Server{
		Addr:         ":" + cfg.HTTPPort,
		Handler:      r,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 45 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Printf("Starting server on :%s", cfg.HTTPPort)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server error: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("Shutting down server...")

	// Give outstanding requests (a pending insights call included) time to finish.
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Printf("Server forced shutdown: %v", err)
	}

	log.Println("Server exited")
	return nil
}

// CORS middleware for browser requests
func corsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		origin := c.Request.Header.Get("Origin")
		if origin == "" {
			origin = "*"
		}

		c.Header("Access-Control-Allow-Origin", origin)
		c.Header("Access-Control-Allow-Methods", "GET, POST, DELETE, OPTIONS")
		c.Header("Access-Control-Allow-Headers", "Origin, Content-Type, Accept, Authorization")
		c.Header("Access-Control-Allow-Credentials", "true")
		c.Header("Access-Control-Max-Age", "86400")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	}
}

// Security headers middleware
func securityHeaders() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Header("X-Content-Type-Options", "nosniff")
		c.Header("X-Frame-Options", "DENY")
		c.Header("Referrer-Policy", "strict-origin-when-cross-origin")

		if gin.Mode() == gin.ReleaseMode {
			c.Header("Strict-Transport-Security", "max-age=31536000; includeSubDomains")
		}

		c.Next()
	}
}

package server

import (
	"context"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// Options configures the router beyond its handler set.
type Options struct {
	JWTSecret      string
	AllowedOrigins []string
	RateLimiter    *RateLimiter
	LogMode        string

	// LLMTimeout bounds a single generation request; zero disables it.
	LLMTimeout time.Duration
}

// withTimeout caps the request context so a stalled provider call cannot
// hold the connection open indefinitely.
func withTimeout(d time.Duration) gin.HandlerFunc {
	return func(c *gin.Context) {
		if d <= 0 {
			c.Next()
			return
		}
		ctx, cancel := context.WithTimeout(c.Request.Context(), d)
		defer cancel()
		c.Request = c.Request.WithContext(ctx)
		c.Next()
	}
}

// Generation endpoints burn one LLM call each; keep them on a short leash.
const (
	generateLimit  = 5
	generateWindow = 1 * time.Minute
)

// NewRouter wires the HTTP surface. Everything under /api/v1 requires a
// bearer token; /healthz is open.
func NewRouter(h *Handler, opts Options) *gin.Engine {
	if opts.LogMode == "prod" || opts.LogMode == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.New()
	r.Use(gin.Recovery())

	config := cors.DefaultConfig()
	config.AllowOrigins = opts.AllowedOrigins
	config.AllowCredentials = true
	config.AllowHeaders = []string{"Origin", "Content-Length", "Content-Type", "Authorization"}
	config.AllowMethods = []string{"GET", "POST", "OPTIONS"}
	r.Use(cors.New(config))

	r.GET("/healthz", h.Healthz)

	api := r.Group("/api/v1")
	api.Use(AuthMiddleware(opts.JWTSecret))
	{
		api.POST("/roadmaps",
			opts.RateLimiter.Limit("roadmap", generateLimit, generateWindow),
			withTimeout(opts.LLMTimeout),
			h.CreateRoadmap)

		courses := api.Group("/courses")
		{
			courses.GET("", h.ListCourses)
			courses.GET("/:id", h.GetCourse)
			courses.GET("/:id/milestones/:mid", h.GetMilestone)
			courses.POST("/:id/milestones/:mid/quiz", h.SubmitQuiz)
			courses.GET("/:id/certificate", h.GetCertificate)
			courses.GET("/:id/certificate/download", h.DownloadCertificate)
		}

		api.POST("/suggestions",
			opts.RateLimiter.Limit("suggest", generateLimit, generateWindow),
			withTimeout(opts.LLMTimeout),
			h.Suggest)
	}

	return r
}

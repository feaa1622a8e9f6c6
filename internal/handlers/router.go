package handlers

import (
	"net/http"
	"strings"

	"warble/internal/services"

	"github.com/gin-contrib/cors"
	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	redisstore "github.com/gin-contrib/sessions/redis"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func (h *Handler) SetupRouter(rateLimiter *services.IPRateLimiter) *gin.Engine {
	r := gin.Default()

	// Middleware
	if rateLimiter != nil {
		r.Use(h.RateLimitMiddleware(rateLimiter))
	}
	r.Use(h.RequestLogger())
	r.Use(cors.New(h.corsConfig()))
	r.Use(sessions.Sessions("warble_session", h.sessionStore()))
	r.Use(h.CurrentUserLoader())

	// Routes
	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "healthy"})
	})
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// Public Routes
	r.GET("/", h.Home)
	r.POST("/signup", h.Signup)
	r.POST("/login", h.Login)
	r.GET("/logout", h.Logout)
	r.GET("/users", h.ListUsers)
	r.GET("/users/:id", h.ShowUser)
	r.GET("/messages/:id", h.ShowMessage)

	// Protected Routes
	authorized := r.Group("/")
	authorized.Use(h.RequireLogin())
	{
		authorized.GET("/users/profile", h.GetProfile)
		authorized.POST("/users/profile", h.UpdateProfile)
		authorized.POST("/users/api_key", h.RotateAPIKey)
		authorized.POST("/users/delete", h.DeleteAccount)
		authorized.GET("/users/:id/likes", h.ShowLikes)
		authorized.GET("/users/:id/following", h.ShowFollowing)
		authorized.GET("/users/:id/followers", h.ShowFollowers)
		authorized.POST("/users/follow/:id", h.FollowUser)
		authorized.POST("/users/stop-following/:id", h.StopFollowing)
		authorized.POST("/messages/new", h.CreateMessage)
		authorized.POST("/messages/:id/delete", h.DeleteMessage)
		authorized.POST("/users/add_like/:id", h.ToggleLike)
	}

	r.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Not found"})
	})

	return r
}

func (h *Handler) corsConfig() cors.Config {
	cfg := cors.DefaultConfig()
	if h.cfg.AllowedOrigins == "" || h.cfg.AllowedOrigins == "*" {
		cfg.AllowAllOrigins = true
		return cfg
	}
	cfg.AllowOrigins = strings.Split(h.cfg.AllowedOrigins, ",")
	cfg.AllowCredentials = true
	return cfg
}

// sessionStore picks the backend from config. Redis keeps sessions across
// restarts and replicas; anything else falls back to the signed cookie store.
func (h *Handler) sessionStore() sessions.Store {
	if h.cfg.SessionStore == "redis" {
		store, err := redisstore.NewStore(10, "tcp", h.cfg.RedisURL, h.cfg.RedisPassword, []byte(h.cfg.SessionSecret))
		if err == nil {
			return store
		}
		h.logger.Warn("Redis session store unavailable, using cookie store", "error", err)
	}
	return cookie.NewStore([]byte(h.cfg.SessionSecret))
}

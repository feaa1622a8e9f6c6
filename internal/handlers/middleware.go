package handlers

import (
	"net/http"
	"strconv"
	"time"

	"warble/internal/models"
	"warble/internal/services"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
)

const userContextKey = "currentUser"

// CurrentUserLoader resolves the requester's identity once per request and
// stashes it in the context. It never aborts; routes that need a login
// add RequireLogin on top.
func (h *Handler) CurrentUserLoader() gin.HandlerFunc {
	return func(c *gin.Context) {
		session := sessions.Default(c)
		if id, ok := session.Get("user_id").(uint); ok {
			var user models.User
			if err := h.db.First(&user, id).Error; err == nil {
				c.Set(userContextKey, &user)
			}
			c.Next()
			return
		}

		// Check for API Key if session is missing
		if apiKey := c.GetHeader("X-API-Key"); apiKey != "" {
			var user models.User
			if err := h.db.Where("api_key = ?", apiKey).First(&user).Error; err == nil {
				c.Set(userContextKey, &user)
			}
		}
		c.Next()
	}
}

func (h *Handler) RequireLogin() gin.HandlerFunc {
	return func(c *gin.Context) {
		if _, ok := currentUser(c); !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Access unauthorized."})
			return
		}
		c.Next()
	}
}

// currentUser returns the user loaded by CurrentUserLoader, if any.
func currentUser(c *gin.Context) (*models.User, bool) {
	val, exists := c.Get(userContextKey)
	if !exists {
		return nil, false
	}
	user, ok := val.(*models.User)
	if !ok || user == nil {
		return nil, false
	}
	return user, true
}

func (h *Handler) RateLimitMiddleware(limiter *services.IPRateLimiter) gin.HandlerFunc {
	return func(c *gin.Context) {
		ip := c.ClientIP()
		l := limiter.GetLimiter(ip)
		if !l.Allow() {
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{
				"error": "Rate limit exceeded. Please try again later.",
			})
			return
		}
		c.Next()
	}
}

// RequestLogger emits one structured line per request and feeds the HTTP
// counter. Requests slower than two seconds are logged at warn level.
func (h *Handler) RequestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		duration := time.Since(start)

		status := c.Writer.Status()
		path := c.FullPath()
		if path == "" {
			path = "unmatched"
		}
		h.metrics.HTTPRequests.WithLabelValues(path, strconv.Itoa(status)).Inc()

		attrs := []any{
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"status", status,
			"duration_ms", duration.Milliseconds(),
			"ip", c.ClientIP(),
		}
		if duration > 2*time.Second {
			h.logger.Warn("Slow request", attrs...)
			return
		}
		h.logger.Info("Request handled", attrs...)
	}
}

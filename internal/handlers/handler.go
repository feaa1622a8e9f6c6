package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"warble/internal/config"
	"warble/internal/metrics"
	"warble/internal/services"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type Handler struct {
	cfg            config.Config
	logger         *slog.Logger
	db             *gorm.DB
	userService    *services.UserService
	messageService *services.MessageService
	followService  *services.FollowService
	likeService    *services.LikeService
	auditService   *services.AuditService
	metrics        *metrics.Metrics
}

func NewHandler(
	cfg config.Config,
	logger *slog.Logger,
	db *gorm.DB,
	userService *services.UserService,
	messageService *services.MessageService,
	followService *services.FollowService,
	likeService *services.LikeService,
	auditService *services.AuditService,
	m *metrics.Metrics,
) *Handler {
	return &Handler{
		cfg:            cfg,
		logger:         logger,
		db:             db,
		userService:    userService,
		messageService: messageService,
		followService:  followService,
		likeService:    likeService,
		auditService:   auditService,
		metrics:        m,
	}
}

// serviceError maps service sentinels onto responses. Handlers that want a
// more specific message handle the sentinel before falling through to this.
func (h *Handler) serviceError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrValidation):
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input"})
	case errors.Is(err, services.ErrDuplicate):
		c.JSON(http.StatusConflict, gin.H{"error": "Already exists"})
	case errors.Is(err, services.ErrUnauthorized):
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Access unauthorized."})
	case errors.Is(err, services.ErrSelfLike):
		c.JSON(http.StatusForbidden, gin.H{"error": "You cannot like your own warble."})
	case errors.Is(err, services.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "Not found"})
	default:
		h.logger.Error("Unhandled service error", "error", err, "path", c.Request.URL.Path)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
	}
}

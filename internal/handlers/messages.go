package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"warble/internal/services"

	"github.com/gin-gonic/gin"
)

type MessageRequest struct {
	Text string `json:"text" binding:"required"`
}

// Home serves the feed for a logged-in user and a landing payload for
// everyone else.
func (h *Handler) Home(c *gin.Context) {
	user, loggedIn := currentUser(c)
	if !loggedIn {
		c.JSON(http.StatusOK, gin.H{"message": "Sign up now to get your own personalized timeline!"})
		return
	}

	messages, err := h.messageService.FeedFor(user.ID, services.FeedLimit)
	if err != nil {
		h.serviceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"messages": messages})
}

func (h *Handler) CreateMessage(c *gin.Context) {
	user, _ := currentUser(c)

	var req MessageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	message, err := h.messageService.Post(user.ID, req.Text)
	if err != nil {
		if errors.Is(err, services.ErrValidation) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Message text must be 1 to 140 characters"})
			return
		}
		h.serviceError(c, err)
		return
	}

	h.auditService.LogAction(&user.ID, "POST_MESSAGE", strconv.FormatUint(uint64(message.ID), 10), nil, c.ClientIP())
	h.metrics.MessagesPosted.Inc()

	c.JSON(http.StatusCreated, message)
}

func (h *Handler) ShowMessage(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	message, err := h.messageService.Get(id)
	if err != nil {
		h.serviceError(c, err)
		return
	}

	c.JSON(http.StatusOK, message)
}

func (h *Handler) DeleteMessage(c *gin.Context) {
	user, _ := currentUser(c)
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	if err := h.messageService.Delete(id, user.ID); err != nil {
		h.serviceError(c, err)
		return
	}

	h.auditService.LogAction(&user.ID, "DELETE_MESSAGE", strconv.FormatUint(uint64(id), 10), nil, c.ClientIP())

	c.JSON(http.StatusOK, gin.H{"message": "Warble deleted"})
}

// ToggleLike likes the warble, or unlikes it if this user already liked
// it. Each warble holds at most one like system-wide, so a second liker
// gets a conflict.
func (h *Handler) ToggleLike(c *gin.Context) {
	user, _ := currentUser(c)
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	liked, err := h.likeService.Toggle(user.ID, id)
	if err != nil {
		if errors.Is(err, services.ErrDuplicate) {
			c.JSON(http.StatusConflict, gin.H{"error": "Warble already liked by another user"})
			return
		}
		h.serviceError(c, err)
		return
	}

	action := "UNLIKE"
	if liked {
		action = "LIKE"
	}
	h.auditService.LogAction(&user.ID, action, strconv.FormatUint(uint64(id), 10), nil, c.ClientIP())
	h.metrics.LikesToggled.Inc()

	c.JSON(http.StatusOK, gin.H{"liked": liked})
}

package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"warble/internal/services"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
)

type ProfileRequest struct {
	Username       string `json:"username" binding:"required"`
	Email          string `json:"email" binding:"required,email"`
	Password       string `json:"password" binding:"required"`
	ImageURL       string `json:"image_url"`
	HeaderImageURL string `json:"header_image_url"`
	Bio            string `json:"bio"`
	Location       string `json:"location"`
}

// parseIDParam reads the :id segment. Non-numeric ids get the same 404 a
// missing row would.
func parseIDParam(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Not found"})
		return 0, false
	}
	return uint(id), true
}

// ListUsers returns all users, or those matching the q= username filter.
func (h *Handler) ListUsers(c *gin.Context) {
	users, err := h.userService.Search(c.Query("q"))
	if err != nil {
		h.serviceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"users": users})
}

// ShowUser returns one user's profile with their warbles, newest first.
func (h *Handler) ShowUser(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	user, err := h.userService.Get(id)
	if err != nil {
		h.serviceError(c, err)
		return
	}

	messages, err := h.messageService.ByUser(user.ID, services.FeedLimit)
	if err != nil {
		h.serviceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"user": user, "messages": messages})
}

// ShowLikes returns the warbles the given user has liked.
func (h *Handler) ShowLikes(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	user, err := h.userService.Get(id)
	if err != nil {
		h.serviceError(c, err)
		return
	}

	messages, err := h.likeService.LikedBy(user.ID, services.FeedLimit)
	if err != nil {
		h.serviceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"user": user, "messages": messages})
}

func (h *Handler) ShowFollowing(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	user, err := h.userService.Get(id)
	if err != nil {
		h.serviceError(c, err)
		return
	}

	following, err := h.followService.Following(user.ID)
	if err != nil {
		h.serviceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"user": user, "following": following})
}

func (h *Handler) ShowFollowers(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	user, err := h.userService.Get(id)
	if err != nil {
		h.serviceError(c, err)
		return
	}

	followers, err := h.followService.Followers(user.ID)
	if err != nil {
		h.serviceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"user": user, "followers": followers})
}

func (h *Handler) FollowUser(c *gin.Context) {
	user, _ := currentUser(c)
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	if err := h.followService.Follow(user.ID, id); err != nil {
		if errors.Is(err, services.ErrValidation) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "You cannot follow yourself."})
			return
		}
		h.serviceError(c, err)
		return
	}

	h.auditService.LogAction(&user.ID, "FOLLOW", strconv.FormatUint(uint64(id), 10), nil, c.ClientIP())
	h.metrics.Follows.Inc()

	c.JSON(http.StatusOK, gin.H{"message": "Following"})
}

func (h *Handler) StopFollowing(c *gin.Context) {
	user, _ := currentUser(c)
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	if err := h.followService.Unfollow(user.ID, id); err != nil {
		h.serviceError(c, err)
		return
	}

	h.auditService.LogAction(&user.ID, "UNFOLLOW", strconv.FormatUint(uint64(id), 10), nil, c.ClientIP())
	h.metrics.Unfollows.Inc()

	c.JSON(http.StatusOK, gin.H{"message": "Unfollowed"})
}

func (h *Handler) GetProfile(c *gin.Context) {
	user, _ := currentUser(c)
	c.JSON(http.StatusOK, user)
}

// UpdateProfile edits the logged-in user's profile. The current password
// must be supplied and match; a stale username or email claim surfaces as
// a conflict at commit time.
func (h *Handler) UpdateProfile(c *gin.Context) {
	user, _ := currentUser(c)

	var req ProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	updated, err := h.userService.UpdateProfile(user.ID, req.Password, services.ProfileUpdateDTO{
		Username:       req.Username,
		Email:          req.Email,
		ImageURL:       req.ImageURL,
		HeaderImageURL: req.HeaderImageURL,
		Bio:            req.Bio,
		Location:       req.Location,
	})
	if err != nil {
		if errors.Is(err, services.ErrUnauthorized) {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Wrong password, please try again."})
			return
		}
		if errors.Is(err, services.ErrDuplicate) {
			c.JSON(http.StatusConflict, gin.H{"error": "Username or email already taken"})
			return
		}
		h.serviceError(c, err)
		return
	}

	h.auditService.LogAction(&user.ID, "UPDATE_PROFILE", updated.Username, nil, c.ClientIP())

	c.JSON(http.StatusOK, updated)
}

func (h *Handler) RotateAPIKey(c *gin.Context) {
	user, _ := currentUser(c)

	newKey, err := h.userService.RotateAPIKey(user.ID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update API key"})
		return
	}

	h.auditService.LogAction(&user.ID, "ROTATE_API_KEY", user.Username, nil, c.ClientIP())

	c.JSON(http.StatusOK, gin.H{"api_key": newKey})
}

// DeleteAccount removes the logged-in user and everything hanging off
// them. The session is cleared first so a half-failed delete cannot leave
// a live session pointing at a missing row.
func (h *Handler) DeleteAccount(c *gin.Context) {
	user, _ := currentUser(c)

	session := sessions.Default(c)
	session.Clear()
	if err := session.Save(); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to clear session"})
		return
	}

	if err := h.userService.DeleteAccount(user.ID); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete account"})
		return
	}

	h.auditService.LogAction(&user.ID, "DELETE_ACCOUNT", user.Username, nil, c.ClientIP())

	c.JSON(http.StatusOK, gin.H{"message": "Account deleted successfully"})
}

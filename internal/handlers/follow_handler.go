package handlers

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	"github.com/orbithammer/parasocial-sub002/internal/models"
	"github.com/orbithammer/parasocial-sub002/internal/repositories"
	"github.com/orbithammer/parasocial-sub002/internal/services"
)

// FollowHandler exposes the follow subsystem over HTTP
type FollowHandler struct {
	followService          *services.FollowService
	userRepository         repositories.UserRepository
	notificationRepository repositories.NotificationRepository
}

// NewFollowHandler creates a new FollowHandler
func NewFollowHandler(followService *services.FollowService, userRepo repositories.UserRepository, notifRepo repositories.NotificationRepository) *FollowHandler {
	return &FollowHandler{
		followService:          followService,
		userRepository:         userRepo,
		notificationRepository: notifRepo,
	}
}

// RegisterFollowRoutes registers follow-related routes
func (h *FollowHandler) RegisterFollowRoutes(g *echo.Group) {
	g.POST("/users/:id/follow", h.FollowUser)
	g.DELETE("/users/:id/follow", h.UnfollowUser)
	g.GET("/users/:id/followers", h.GetFollowers)
	g.GET("/users/:id/followers/recent", h.GetRecentFollowers)
	g.GET("/users/:id/following", h.GetFollowing)
	g.GET("/users/:id/follow-stats", h.GetFollowStats)
	g.GET("/users/:id/follow-status", h.CheckFollowStatus)
	g.POST("/follows/bulk-check", h.BulkCheckFollowing)
}

// FollowUser follows a user as the authenticated account
func (h *FollowHandler) FollowUser(c echo.Context) error {
	currentUserID := getUserIDFromContext(c)
	if currentUserID == "" {
		return echo.NewHTTPError(http.StatusUnauthorized, "User not authenticated")
	}
	targetID := c.Param("id")

	follow, serr := h.followService.FollowUser(services.LocalFollower(currentUserID), targetID)
	if serr != nil {
		return respondServiceError(c, serr)
	}

	// Create notification
	if h.notificationRepository != nil {
		actor, _ := h.userRepository.FindByID(currentUserID)
		if actor != nil {
			notif := &models.Notification{
				Type:        "follow",
				ActorID:     currentUserID,
				RecipientID: targetID,
				Message:     actor.DisplayName + " started following you",
			}
			h.notificationRepository.CreateNotification(notif)
		}
	}

	return c.JSON(http.StatusCreated, echo.Map{"success": true, "data": follow})
}

// UnfollowUser unfollows a user
func (h *FollowHandler) UnfollowUser(c echo.Context) error {
	currentUserID := getUserIDFromContext(c)
	if currentUserID == "" {
		return echo.NewHTTPError(http.StatusUnauthorized, "User not authenticated")
	}
	targetID := c.Param("id")

	deleted, serr := h.followService.UnfollowUser(services.LocalFollower(currentUserID), targetID)
	if serr != nil {
		return respondServiceError(c, serr)
	}

	return c.JSON(http.StatusOK, echo.Map{"success": true, "data": deleted})
}

// GetFollowers lists a user's followers with offset/limit pagination
func (h *FollowHandler) GetFollowers(c echo.Context) error {
	opts, err := pageOptionsFromQuery(c)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid pagination parameters")
	}

	page, serr := h.followService.GetFollowers(c.Param("id"), opts)
	if serr != nil {
		return respondServiceError(c, serr)
	}
	return c.JSON(http.StatusOK, echo.Map{"success": true, "data": page})
}

// GetFollowing lists the users an account follows
func (h *FollowHandler) GetFollowing(c echo.Context) error {
	opts, err := pageOptionsFromQuery(c)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid pagination parameters")
	}

	page, serr := h.followService.GetFollowing(c.Param("id"), opts)
	if serr != nil {
		return respondServiceError(c, serr)
	}
	return c.JSON(http.StatusOK, echo.Map{"success": true, "data": page})
}

// GetFollowStats returns follower/following counts for a user
func (h *FollowHandler) GetFollowStats(c echo.Context) error {
	stats, serr := h.followService.GetFollowStats(c.Param("id"))
	if serr != nil {
		return respondServiceError(c, serr)
	}
	return c.JSON(http.StatusOK, echo.Map{"success": true, "data": stats})
}

// CheckFollowStatus reports whether the authenticated account follows a user
func (h *FollowHandler) CheckFollowStatus(c echo.Context) error {
	currentUserID := getUserIDFromContext(c)
	if currentUserID == "" {
		return echo.NewHTTPError(http.StatusUnauthorized, "User not authenticated")
	}

	following, serr := h.followService.CheckFollowStatus(services.LocalFollower(currentUserID), c.Param("id"))
	if serr != nil {
		return respondServiceError(c, serr)
	}
	return c.JSON(http.StatusOK, echo.Map{"success": true, "data": echo.Map{"following": following}})
}

// BulkCheckFollowing resolves follow status for many users at once
func (h *FollowHandler) BulkCheckFollowing(c echo.Context) error {
	currentUserID := getUserIDFromContext(c)
	if currentUserID == "" {
		return echo.NewHTTPError(http.StatusUnauthorized, "User not authenticated")
	}

	var req models.BulkCheckRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}

	result, serr := h.followService.BulkCheckFollowing(services.LocalFollower(currentUserID), req.UserIDs)
	if serr != nil {
		return respondServiceError(c, serr)
	}
	return c.JSON(http.StatusOK, echo.Map{"success": true, "data": result})
}

// GetRecentFollowers returns the most recent followers of a user
func (h *FollowHandler) GetRecentFollowers(c echo.Context) error {
	limit := 0
	if raw := c.QueryParam("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, "Invalid limit parameter")
		}
		limit = parsed
	}

	follows, serr := h.followService.GetRecentFollowers(c.Param("id"), limit)
	if serr != nil {
		return respondServiceError(c, serr)
	}
	return c.JSON(http.StatusOK, echo.Map{"success": true, "data": follows})
}

func pageOptionsFromQuery(c echo.Context) (services.PageOptions, error) {
	var opts services.PageOptions
	if raw := c.QueryParam("offset"); raw != "" {
		offset, err := strconv.Atoi(raw)
		if err != nil {
			return opts, err
		}
		opts.Offset = &offset
	}
	if raw := c.QueryParam("limit"); raw != "" {
		limit, err := strconv.Atoi(raw)
		if err != nil {
			return opts, err
		}
		opts.Limit = &limit
	}
	return opts, nil
}

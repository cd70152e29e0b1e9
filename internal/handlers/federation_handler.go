package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
	"github.com/orbithammer/parasocial-sub002/internal/federation"
	"github.com/orbithammer/parasocial-sub002/internal/repositories"
	"github.com/orbithammer/parasocial-sub002/internal/services"
	"gorm.io/gorm"
)

// FederationHandler serves the ActivityPub-facing endpoints: webfinger, the
// actor document for local users, and the inbox that remote instances
// deliver Follow/Undo activities to.
type FederationHandler struct {
	userRepository repositories.UserRepository
	followService  *services.FollowService
	domain         string
}

// NewFederationHandler creates a new FederationHandler
func NewFederationHandler(userRepo repositories.UserRepository, followService *services.FollowService, domain string) *FederationHandler {
	return &FederationHandler{
		userRepository: userRepo,
		followService:  followService,
		domain:         domain,
	}
}

// RegisterFederationRoutes registers the public server-to-server routes
func (h *FederationHandler) RegisterFederationRoutes(e *echo.Echo) {
	e.GET("/.well-known/webfinger", h.Webfinger)
	e.GET("/users/:username/actor", h.Actor)
	e.POST("/users/:username/inbox", h.Inbox)
}

// inboundActivity is the subset of an ActivityPub activity the inbox handles
type inboundActivity struct {
	Type   string          `json:"type"`
	Actor  string          `json:"actor"`
	Object json.RawMessage `json:"object"`
}

// Webfinger resolves acct:user@domain resources to local actors
func (h *FederationHandler) Webfinger(c echo.Context) error {
	resource := c.QueryParam("resource")
	if !strings.HasPrefix(resource, "acct:") {
		return echo.NewHTTPError(http.StatusBadRequest, "Unsupported resource")
	}

	acct := strings.TrimPrefix(resource, "acct:")
	username, domain, found := strings.Cut(acct, "@")
	if !found || domain != h.domain {
		return echo.NewHTTPError(http.StatusNotFound, "Resource not found")
	}

	if _, err := h.userRepository.FindByUsername(username); err != nil {
		return echo.NewHTTPError(http.StatusNotFound, "Resource not found")
	}

	return c.JSON(http.StatusOK, federation.NewWebfingerResponse(h.domain, username))
}

// Actor serves the ActivityPub actor document for a local user
func (h *FederationHandler) Actor(c echo.Context) error {
	user, err := h.userRepository.FindByUsername(c.Param("username"))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "Actor not found")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	doc := federation.NewActorDocument(h.domain, user.Username, user.DisplayName)
	return c.JSON(http.StatusOK, doc)
}

// Inbox accepts Follow and Undo(Follow) activities from remote actors
func (h *FederationHandler) Inbox(c echo.Context) error {
	user, err := h.userRepository.FindByUsername(c.Param("username"))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "Actor not found")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	var activity inboundActivity
	if err := c.Bind(&activity); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid activity payload")
	}
	if activity.Actor == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "Activity has no actor")
	}

	switch activity.Type {
	case "Follow":
		follow, serr := h.followService.FollowUser(services.FederatedFollower(activity.Actor), user.ID)
		if serr != nil {
			return respondServiceError(c, serr)
		}
		return c.JSON(http.StatusCreated, echo.Map{"success": true, "data": follow})

	case "Undo":
		var inner inboundActivity
		if err := json.Unmarshal(activity.Object, &inner); err != nil || inner.Type != "Follow" {
			return echo.NewHTTPError(http.StatusBadRequest, "Unsupported undo object")
		}
		deleted, serr := h.followService.UnfollowUser(services.FederatedFollower(activity.Actor), user.ID)
		if serr != nil {
			return respondServiceError(c, serr)
		}
		return c.JSON(http.StatusOK, echo.Map{"success": true, "data": deleted})

	default:
		return echo.NewHTTPError(http.StatusBadRequest, "Unsupported activity type")
	}
}

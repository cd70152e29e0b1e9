package handlers

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/orbithammer/parasocial-sub002/internal/models"
	"github.com/orbithammer/parasocial-sub002/internal/repositories"
	"gorm.io/gorm"
)

// BlockHandler handles HTTP requests related to blocks
type BlockHandler struct {
	blockRepository  repositories.BlockRepository
	userRepository   repositories.UserRepository
	followRepository repositories.FollowRepository
}

// NewBlockHandler creates a new BlockHandler
func NewBlockHandler(blockRepo repositories.BlockRepository, userRepo repositories.UserRepository, followRepo repositories.FollowRepository) *BlockHandler {
	return &BlockHandler{
		blockRepository:  blockRepo,
		userRepository:   userRepo,
		followRepository: followRepo,
	}
}

// RegisterBlockRoutes registers block-related routes
func (h *BlockHandler) RegisterBlockRoutes(g *echo.Group) {
	g.POST("/users/:id/block", h.BlockUser)
	g.DELETE("/users/:id/block", h.UnblockUser)
	g.GET("/blocks", h.GetBlockedUsers)
}

// BlockUser blocks a user and severs any follow edges between the pair
func (h *BlockHandler) BlockUser(c echo.Context) error {
	currentUserID := getUserIDFromContext(c)
	if currentUserID == "" {
		return echo.NewHTTPError(http.StatusUnauthorized, "User not authenticated")
	}
	targetID := c.Param("id")

	if currentUserID == targetID {
		return echo.NewHTTPError(http.StatusBadRequest, "Cannot block yourself")
	}

	if _, err := h.userRepository.FindByID(targetID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "User not found")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	block := &models.Block{
		BlockerID: currentUserID,
		BlockedID: targetID,
	}
	if err := h.blockRepository.CreateBlock(block); err != nil {
		return echo.NewHTTPError(http.StatusConflict, err.Error())
	}

	// Blocking severs follow relationships in both directions
	h.followRepository.DeleteByFollowerAndFollowed(currentUserID, targetID)
	h.followRepository.DeleteByFollowerAndFollowed(targetID, currentUserID)

	return c.JSON(http.StatusCreated, echo.Map{"success": true, "data": block})
}

// UnblockUser removes a block
func (h *BlockHandler) UnblockUser(c echo.Context) error {
	currentUserID := getUserIDFromContext(c)
	if currentUserID == "" {
		return echo.NewHTTPError(http.StatusUnauthorized, "User not authenticated")
	}

	if err := h.blockRepository.DeleteBlock(currentUserID, c.Param("id")); err != nil {
		return echo.NewHTTPError(http.StatusNotFound, err.Error())
	}
	return c.JSON(http.StatusOK, echo.Map{"success": true})
}

// GetBlockedUsers lists the users the authenticated account has blocked
func (h *BlockHandler) GetBlockedUsers(c echo.Context) error {
	currentUserID := getUserIDFromContext(c)
	if currentUserID == "" {
		return echo.NewHTTPError(http.StatusUnauthorized, "User not authenticated")
	}

	blocks, err := h.blockRepository.GetBlockedByUserID(currentUserID)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, echo.Map{"success": true, "data": blocks})
}

package services

import (
	"errors"
	"log"

	"github.com/orbithammer/parasocial-sub002/internal/federation"
	"github.com/orbithammer/parasocial-sub002/internal/models"
	"github.com/orbithammer/parasocial-sub002/internal/repositories"
	"github.com/orbithammer/parasocial-sub002/pkg/pagination"
	"gorm.io/gorm"
)

const (
	maxIDLength     = 255
	maxBulkUserIDs  = 100
	recentHardLimit = 50
)

// PageOptions carries optional pagination parameters; nil fields fall back
// to the store defaults (offset 0, limit 20).
type PageOptions struct {
	Offset *int
	Limit  *int
}

// FollowService enforces the business rules around follow relationships and
// orchestrates the store and the user directory.
type FollowService struct {
	followRepo repositories.FollowRepository
	userRepo   repositories.UserRepository
}

// NewFollowService creates a new FollowService
func NewFollowService(followRepo repositories.FollowRepository, userRepo repositories.UserRepository) *FollowService {
	return &FollowService{followRepo: followRepo, userRepo: userRepo}
}

// FollowUser creates a follow relationship from a local or federated
// identity to a local user.
func (s *FollowService) FollowUser(follower FollowerIdentity, followedID string) (*models.Follow, *Error) {
	if !validID(follower.Key()) || !validID(followedID) {
		return nil, newError(CodeValidationError, "follower and followed ids must be non-empty strings of at most 255 characters")
	}
	if follower.IsFederated() && !federation.IsAbsoluteURL(follower.ActorURI()) {
		return nil, newError(CodeValidationError, "actor id must be an absolute URL")
	}

	if follower.Key() == followedID {
		return nil, newError(CodeSelfFollowError, "users cannot follow themselves")
	}

	followed, err := s.userRepo.FindByID(followedID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, newError(CodeUserNotFound, "user to follow does not exist")
		}
		log.Printf("follow service: user lookup failed: %v", err)
		return nil, internalError()
	}
	if !followed.IsActive {
		return nil, newError(CodeUserInactive, "user to follow is not active")
	}

	existing, err := s.followRepo.FindByFollowerAndFollowed(follower.Key(), followedID)
	if err != nil {
		log.Printf("follow service: relationship lookup failed: %v", err)
		return nil, internalError()
	}
	if existing != nil {
		return nil, newError(CodeAlreadyFollowing, "already following this user")
	}

	if follower.IsFederated() {
		if err := federation.ValidateActorURI(follower.ActorURI()); err != nil {
			return nil, newError(CodeInvalidActorID, "actor id is not a valid ActivityPub actor URI")
		}
	}

	follow := &models.Follow{
		FollowerID: follower.Key(),
		FollowedID: followedID,
	}
	if follower.IsFederated() {
		actorURI := follower.ActorURI()
		follow.ActorID = &actorURI
	}

	created, err := s.followRepo.CreateFollow(follow)
	if err != nil {
		// The unique constraint is the source of truth for duplicates under
		// concurrent requests; the pre-check above is only a fast path.
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, newError(CodeAlreadyFollowing, "already following this user")
		}
		if errors.Is(err, gorm.ErrForeignKeyViolated) {
			return nil, newError(CodeUserNotFound, "user to follow does not exist")
		}
		log.Printf("follow service: create failed: %v", err)
		return nil, internalError()
	}
	return created, nil
}

// UnfollowUser removes a follow relationship, returning the deleted record
// or nil.
func (s *FollowService) UnfollowUser(follower FollowerIdentity, followedID string) (*models.Follow, *Error) {
	if !validID(follower.Key()) || !validID(followedID) {
		return nil, newError(CodeValidationError, "follower and followed ids must be non-empty strings of at most 255 characters")
	}

	existing, err := s.followRepo.FindByFollowerAndFollowed(follower.Key(), followedID)
	if err != nil {
		log.Printf("follow service: relationship lookup failed: %v", err)
		return nil, internalError()
	}
	if existing == nil {
		return nil, newError(CodeNotFollowing, "not following this user")
	}

	deleted, err := s.followRepo.DeleteByFollowerAndFollowed(follower.Key(), followedID)
	if err != nil {
		log.Printf("follow service: delete failed: %v", err)
		return nil, internalError()
	}
	return deleted, nil
}

// GetFollowers returns one page of a user's followers
func (s *FollowService) GetFollowers(userID string, opts PageOptions) (*models.FollowPage, *Error) {
	if !validID(userID) {
		return nil, newError(CodeInvalidUserID, "user id must be a non-empty string")
	}
	offset, limit, serr := resolvePage(opts)
	if serr != nil {
		return nil, serr
	}
	if serr := s.ensureUserExists(userID); serr != nil {
		return nil, serr
	}

	page, err := s.followRepo.FindFollowersByUserID(userID, offset, limit)
	if err != nil {
		log.Printf("follow service: followers listing failed: %v", err)
		return nil, internalError()
	}
	return page, nil
}

// GetFollowing returns one page of the users a given identity follows
func (s *FollowService) GetFollowing(userID string, opts PageOptions) (*models.FollowPage, *Error) {
	if !validID(userID) {
		return nil, newError(CodeInvalidUserID, "user id must be a non-empty string")
	}
	offset, limit, serr := resolvePage(opts)
	if serr != nil {
		return nil, serr
	}
	if serr := s.ensureUserExists(userID); serr != nil {
		return nil, serr
	}

	page, err := s.followRepo.FindFollowingByUserID(userID, offset, limit)
	if err != nil {
		log.Printf("follow service: following listing failed: %v", err)
		return nil, internalError()
	}
	return page, nil
}

// GetFollowStats returns accepted follower/following counts for a user
func (s *FollowService) GetFollowStats(userID string) (*models.FollowStats, *Error) {
	if !validID(userID) {
		return nil, newError(CodeInvalidUserID, "user id must be a non-empty string")
	}
	if serr := s.ensureUserExists(userID); serr != nil {
		return nil, serr
	}

	stats, err := s.followRepo.GetFollowStats(userID)
	if err != nil {
		log.Printf("follow service: stats failed: %v", err)
		return nil, internalError()
	}
	return stats, nil
}

// CheckFollowStatus reports whether an accepted relationship exists from the
// given identity to a user.
func (s *FollowService) CheckFollowStatus(follower FollowerIdentity, followedID string) (bool, *Error) {
	if !validID(follower.Key()) {
		return false, newError(CodeInvalidFollowerID, "follower id must be a non-empty string")
	}
	if !validID(followedID) {
		return false, newError(CodeInvalidUserID, "user id must be a non-empty string")
	}

	following, err := s.followRepo.IsFollowing(follower.Key(), followedID)
	if err != nil {
		log.Printf("follow service: status check failed: %v", err)
		return false, internalError()
	}
	return following, nil
}

// BulkCheckFollowing resolves follow status from one identity to up to 100
// users at once. Every requested id appears in the result, defaulting to false.
func (s *FollowService) BulkCheckFollowing(follower FollowerIdentity, userIDs []string) (map[string]bool, *Error) {
	if !validID(follower.Key()) {
		return nil, newError(CodeInvalidFollowerID, "follower id must be a non-empty string")
	}
	if userIDs == nil {
		return nil, newError(CodeInvalidUserIDs, "user ids must be an array")
	}
	if len(userIDs) > maxBulkUserIDs {
		return nil, newError(CodeTooManyUsers, "at most 100 user ids may be checked at once")
	}
	for _, id := range userIDs {
		if !validID(id) {
			return nil, newError(CodeInvalidUserIDs, "user ids must be non-empty strings")
		}
	}

	result, err := s.followRepo.BulkCheckFollowing(follower.Key(), userIDs)
	if err != nil {
		log.Printf("follow service: bulk check failed: %v", err)
		return nil, internalError()
	}
	return result, nil
}

// GetRecentFollowers returns the most recent accepted followers of a user,
// limit clamped to [1,50].
func (s *FollowService) GetRecentFollowers(userID string, limit int) ([]models.Follow, *Error) {
	if !validID(userID) {
		return nil, newError(CodeInvalidUserID, "user id must be a non-empty string")
	}
	limit = pagination.ClampLimit(limit, repositories.RecentFollowersDefaultLimit, recentHardLimit)

	follows, err := s.followRepo.FindRecentFollowers(userID, limit)
	if err != nil {
		log.Printf("follow service: recent followers failed: %v", err)
		return nil, internalError()
	}
	return follows, nil
}

func (s *FollowService) ensureUserExists(userID string) *Error {
	if _, err := s.userRepo.FindByID(userID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return newError(CodeUserNotFound, "user does not exist")
		}
		log.Printf("follow service: user lookup failed: %v", err)
		return internalError()
	}
	return nil
}

func resolvePage(opts PageOptions) (int, int, *Error) {
	offset, limit := 0, pagination.DefaultLimit
	if opts.Offset != nil {
		if *opts.Offset < 0 {
			return 0, 0, newError(CodeInvalidParameters, "offset must be a non-negative integer")
		}
		offset = *opts.Offset
	}
	if opts.Limit != nil {
		if *opts.Limit < 1 || *opts.Limit > pagination.MaxLimit {
			return 0, 0, newError(CodeInvalidParameters, "limit must be an integer between 1 and 100")
		}
		limit = *opts.Limit
	}
	return offset, limit, nil
}

func validID(id string) bool {
	return id != "" && len(id) <= maxIDLength
}

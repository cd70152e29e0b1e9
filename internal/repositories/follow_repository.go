package repositories

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/orbithammer/parasocial-sub002/internal/models"
	"github.com/orbithammer/parasocial-sub002/pkg/pagination"
	"gorm.io/gorm"
)

const (
	RecentFollowersDefaultLimit = 10
	RecentFollowersMaxLimit     = 50
)

// FollowRepository defines the interface for follow relationship persistence.
// Follower identifiers are matched against both the follower_id and actor_id
// columns so federated actors can be looked up by their URI.
type FollowRepository interface {
	CreateFollow(follow *models.Follow) (*models.Follow, error)
	FindByFollowerAndFollowed(followerOrActorID, followedID string) (*models.Follow, error)
	DeleteByFollowerAndFollowed(followerOrActorID, followedID string) (*models.Follow, error)
	FindFollowersByUserID(userID string, offset, limit int) (*models.FollowPage, error)
	FindFollowingByUserID(userID string, offset, limit int) (*models.FollowPage, error)
	GetFollowStats(userID string) (*models.FollowStats, error)
	IsFollowing(followerOrActorID, followedID string) (bool, error)
	BulkCheckFollowing(followerOrActorID string, userIDs []string) (map[string]bool, error)
	FindRecentFollowers(userID string, limit int) ([]models.Follow, error)
	DeleteAllForUser(userID string) error
}

// PostgresFollowRepository implements FollowRepository for PostgreSQL
type PostgresFollowRepository struct {
	db *gorm.DB
}

// NewPostgresFollowRepository creates a new PostgresFollowRepository
func NewPostgresFollowRepository(db *gorm.DB) *PostgresFollowRepository {
	return &PostgresFollowRepository{db: db}
}

// CreateFollow inserts a new relationship and returns it with the followed
// user's public fields attached. Constraint violations (duplicate pair,
// missing followed user) propagate unchanged so the service layer can
// translate them.
func (r *PostgresFollowRepository) CreateFollow(follow *models.Follow) (*models.Follow, error) {
	if follow.ID == "" {
		follow.ID = uuid.NewString()
	}
	if follow.CreatedAt.IsZero() {
		follow.CreatedAt = time.Now()
	}
	follow.IsAccepted = true

	if err := r.db.Omit("Followed").Create(follow).Error; err != nil {
		return nil, err
	}

	var followed models.User
	if err := r.db.First(&followed, "id = ?", follow.FollowedID).Error; err == nil {
		follow.Followed = &followed
	}
	return follow, nil
}

// FindByFollowerAndFollowed returns the matching relationship or nil when no
// row exists. The supplied follower identifier matches either column.
func (r *PostgresFollowRepository) FindByFollowerAndFollowed(followerOrActorID, followedID string) (*models.Follow, error) {
	var follow models.Follow
	err := r.db.
		Where("(follower_id = ? OR actor_id = ?) AND followed_id = ?", followerOrActorID, followerOrActorID, followedID).
		First(&follow).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &follow, nil
}

// DeleteByFollowerAndFollowed deletes the matching relationship if present
// and returns the deleted row. Deleting a non-existent relationship is not an
// error, just a nil result.
func (r *PostgresFollowRepository) DeleteByFollowerAndFollowed(followerOrActorID, followedID string) (*models.Follow, error) {
	follow, err := r.FindByFollowerAndFollowed(followerOrActorID, followedID)
	if err != nil {
		return nil, err
	}
	if follow == nil {
		return nil, nil
	}
	if err := r.db.Delete(&models.Follow{}, "id = ?", follow.ID).Error; err != nil {
		return nil, err
	}
	return follow, nil
}

// FindFollowersByUserID returns one page of accepted relationships where the
// user is followed, newest first.
func (r *PostgresFollowRepository) FindFollowersByUserID(userID string, offset, limit int) (*models.FollowPage, error) {
	offset, limit = pagination.Clamp(offset, limit)

	var total int64
	if err := r.db.Model(&models.Follow{}).
		Where("followed_id = ? AND is_accepted = ?", userID, true).
		Count(&total).Error; err != nil {
		return nil, err
	}

	var follows []models.Follow
	if err := r.db.
		Where("followed_id = ? AND is_accepted = ?", userID, true).
		Order("created_at DESC").
		Offset(offset).Limit(limit).
		Find(&follows).Error; err != nil {
		return nil, err
	}

	return &models.FollowPage{
		Follows:    follows,
		TotalCount: total,
		Offset:     offset,
		Limit:      limit,
		HasMore:    pagination.HasMore(offset, limit, total),
	}, nil
}

// FindFollowingByUserID returns one page of accepted relationships where the
// user is the follower, matching either identity column, newest first.
func (r *PostgresFollowRepository) FindFollowingByUserID(userID string, offset, limit int) (*models.FollowPage, error) {
	offset, limit = pagination.Clamp(offset, limit)

	var total int64
	if err := r.db.Model(&models.Follow{}).
		Where("(follower_id = ? OR actor_id = ?) AND is_accepted = ?", userID, userID, true).
		Count(&total).Error; err != nil {
		return nil, err
	}

	var follows []models.Follow
	if err := r.db.
		Where("(follower_id = ? OR actor_id = ?) AND is_accepted = ?", userID, userID, true).
		Order("created_at DESC").
		Offset(offset).Limit(limit).
		Find(&follows).Error; err != nil {
		return nil, err
	}

	return &models.FollowPage{
		Follows:    follows,
		TotalCount: total,
		Offset:     offset,
		Limit:      limit,
		HasMore:    pagination.HasMore(offset, limit, total),
	}, nil
}

// GetFollowStats returns accepted follower/following counts for a user
func (r *PostgresFollowRepository) GetFollowStats(userID string) (*models.FollowStats, error) {
	var stats models.FollowStats
	if err := r.db.Model(&models.Follow{}).
		Where("followed_id = ? AND is_accepted = ?", userID, true).
		Count(&stats.FollowerCount).Error; err != nil {
		return nil, err
	}
	if err := r.db.Model(&models.Follow{}).
		Where("(follower_id = ? OR actor_id = ?) AND is_accepted = ?", userID, userID, true).
		Count(&stats.FollowingCount).Error; err != nil {
		return nil, err
	}
	return &stats, nil
}

// IsFollowing reports whether an accepted relationship exists
func (r *PostgresFollowRepository) IsFollowing(followerOrActorID, followedID string) (bool, error) {
	var count int64
	err := r.db.Model(&models.Follow{}).
		Where("(follower_id = ? OR actor_id = ?) AND followed_id = ? AND is_accepted = ?",
			followerOrActorID, followerOrActorID, followedID, true).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

// BulkCheckFollowing resolves accepted follow edges from one identity to many
// users in a single query. Every requested id gets an entry, defaulting to false.
func (r *PostgresFollowRepository) BulkCheckFollowing(followerOrActorID string, userIDs []string) (map[string]bool, error) {
	result := make(map[string]bool, len(userIDs))
	for _, id := range userIDs {
		result[id] = false
	}
	if len(userIDs) == 0 {
		return result, nil
	}

	var followedIDs []string
	err := r.db.Model(&models.Follow{}).
		Where("(follower_id = ? OR actor_id = ?) AND followed_id IN ? AND is_accepted = ?",
			followerOrActorID, followerOrActorID, userIDs, true).
		Pluck("followed_id", &followedIDs).Error
	if err != nil {
		return nil, err
	}
	for _, id := range followedIDs {
		result[id] = true
	}
	return result, nil
}

// FindRecentFollowers returns the most recently created accepted
// relationships for a user, newest first, limit bounded to [1,50].
func (r *PostgresFollowRepository) FindRecentFollowers(userID string, limit int) ([]models.Follow, error) {
	limit = pagination.ClampLimit(limit, RecentFollowersDefaultLimit, RecentFollowersMaxLimit)

	var follows []models.Follow
	err := r.db.
		Where("followed_id = ? AND is_accepted = ?", userID, true).
		Order("created_at DESC").
		Limit(limit).
		Find(&follows).Error
	return follows, err
}

// DeleteAllForUser removes every relationship touching a local user, on both
// the follower and followed side. The followed side is also covered by the
// foreign key cascade; this keeps the follower side consistent since that
// column carries no constraint (it may hold a remote actor URI).
func (r *PostgresFollowRepository) DeleteAllForUser(userID string) error {
	return r.db.
		Where("follower_id = ? OR followed_id = ?", userID, userID).
		Delete(&models.Follow{}).Error
}

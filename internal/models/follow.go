package models

import "time"

// Follow represents a follow relationship: a local account or a remote
// federated actor following a local user. For federated follows FollowerID
// holds the same URI as ActorID, set by the creating caller.
type Follow struct {
	ID         string    `json:"id" gorm:"primaryKey;size:36"`
	FollowerID string    `json:"follower_id" gorm:"size:255;index;uniqueIndex:idx_follower_followed"`
	FollowedID string    `json:"followed_id" gorm:"size:36;index;uniqueIndex:idx_follower_followed"`
	ActorID    *string   `json:"actor_id,omitempty" gorm:"size:255;index"`
	IsAccepted bool      `json:"is_accepted" gorm:"default:true"`
	CreatedAt  time.Time `json:"created_at"`

	// Followed is the local user being followed. The foreign key carries
	// the cascade: deleting the followed user deletes the relationship rows.
	Followed *User `json:"followed,omitempty" gorm:"foreignKey:FollowedID;references:ID;constraint:OnDelete:CASCADE"`
}

// FollowStats aggregates accepted relationship counts for a user
type FollowStats struct {
	FollowerCount  int64 `json:"follower_count"`
	FollowingCount int64 `json:"following_count"`
}

// FollowPage is one window of a paginated relationship listing
type FollowPage struct {
	Follows    []Follow `json:"follows"`
	TotalCount int64    `json:"total_count"`
	Offset     int      `json:"offset"`
	Limit      int      `json:"limit"`
	HasMore    bool     `json:"has_more"`
}

// FollowRequest defines the request body for following a user
type FollowRequest struct {
	ActorID string `json:"actor_id,omitempty" validate:"omitempty,max=255"`
}

// BulkCheckRequest defines the request body for checking many follow edges at once
type BulkCheckRequest struct {
	UserIDs []string `json:"user_ids" validate:"required"`
}

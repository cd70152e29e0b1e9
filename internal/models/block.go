package models

import "time"

// Block represents one local user blocking another
type Block struct {
	ID        string    `json:"id" gorm:"primaryKey;size:36"`
	BlockerID string    `json:"blocker_id" gorm:"size:36;index;uniqueIndex:idx_blocker_blocked"`
	BlockedID string    `json:"blocked_id" gorm:"size:36;index;uniqueIndex:idx_blocker_blocked"`
	CreatedAt time.Time `json:"created_at"`
}

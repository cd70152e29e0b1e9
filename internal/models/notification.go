package models

import "time"

// Notification represents a user notification (PostgreSQL)
type Notification struct {
	ID          string    `json:"id" gorm:"primaryKey;size:36"`
	Type        string    `json:"type" gorm:"size:30;index"` // follow, mention
	ActorID     string    `json:"actor_id" gorm:"size:255;index"`
	RecipientID string    `json:"recipient_id" gorm:"size:36;index"`
	Message     string    `json:"message"`
	IsRead      bool      `json:"is_read" gorm:"default:false;index"`
	CreatedAt   time.Time `json:"created_at" gorm:"index"`
}

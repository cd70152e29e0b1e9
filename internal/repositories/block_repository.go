package repositories

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/orbithammer/parasocial-sub002/internal/models"
	"gorm.io/gorm"
)

// BlockRepository defines the interface for block data operations
type BlockRepository interface {
	CreateBlock(block *models.Block) error
	DeleteBlock(blockerID, blockedID string) error
	IsBlocked(userA, userB string) (bool, error)
	GetBlockedByUserID(blockerID string) ([]models.Block, error)
}

// PostgresBlockRepository implements BlockRepository for PostgreSQL
type PostgresBlockRepository struct {
	db *gorm.DB
}

// NewPostgresBlockRepository creates a new PostgresBlockRepository
func NewPostgresBlockRepository(db *gorm.DB) *PostgresBlockRepository {
	return &PostgresBlockRepository{db: db}
}

// CreateBlock creates a new block, rejecting duplicates
func (r *PostgresBlockRepository) CreateBlock(block *models.Block) error {
	var existing models.Block
	err := r.db.Where("blocker_id = ? AND blocked_id = ?", block.BlockerID, block.BlockedID).
		First(&existing).Error
	if err == nil {
		return errors.New("user is already blocked")
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}

	if block.ID == "" {
		block.ID = uuid.NewString()
	}
	if block.CreatedAt.IsZero() {
		block.CreatedAt = time.Now()
	}
	return r.db.Create(block).Error
}

// DeleteBlock removes a block
func (r *PostgresBlockRepository) DeleteBlock(blockerID, blockedID string) error {
	res := r.db.Where("blocker_id = ? AND blocked_id = ?", blockerID, blockedID).Delete(&models.Block{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return errors.New("block not found")
	}
	return nil
}

// IsBlocked reports whether a block exists between two users, in either direction
func (r *PostgresBlockRepository) IsBlocked(userA, userB string) (bool, error) {
	var count int64
	err := r.db.Model(&models.Block{}).
		Where("(blocker_id = ? AND blocked_id = ?) OR (blocker_id = ? AND blocked_id = ?)",
			userA, userB, userB, userA).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

// GetBlockedByUserID retrieves all blocks created by a user
func (r *PostgresBlockRepository) GetBlockedByUserID(blockerID string) ([]models.Block, error) {
	var blocks []models.Block
	if err := r.db.Where("blocker_id = ?", blockerID).Order("created_at DESC").Find(&blocks).Error; err != nil {
		return nil, err
	}
	return blocks, nil
}

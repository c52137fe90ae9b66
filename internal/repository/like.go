package repository

import (
	"context"

	"vidtube/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// LikeRepository defines interface for like operations
type LikeRepository interface {
	Toggle(ctx context.Context, subject models.LikeSubject, subjectID, userID uuid.UUID) (bool, error)
	ListVideoLikes(ctx context.Context, userID uuid.UUID) ([]models.Like, error)
}

type likeRepository struct {
	db *gorm.DB
}

// NewLikeRepository creates a new LikeRepository
func NewLikeRepository(db *gorm.DB) LikeRepository {
	return &likeRepository{db: db}
}

// Toggle removes the caller's like on the subject if present, otherwise adds
// it. It reports whether the subject is liked afterwards. A concurrent insert
// that loses the unique index race still leaves the subject liked.
func (r *likeRepository) Toggle(ctx context.Context, subject models.LikeSubject, subjectID, userID uuid.UUID) (bool, error) {
	var liked bool
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Where(subject.Column()+" = ? AND liked_by = ?", subjectID, userID).Delete(&models.Like{})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected > 0 {
			liked = false
			return nil
		}
		if err := tx.Clauses(clause.OnConflict{DoNothing: true}).
			Create(models.NewLike(subject, subjectID, userID)).Error; err != nil {
			return err
		}
		liked = true
		return nil
	})
	return liked, err
}

// ListVideoLikes returns the user's video likes, most recent first.
func (r *likeRepository) ListVideoLikes(ctx context.Context, userID uuid.UUID) ([]models.Like, error) {
	var likes []models.Like
	err := r.db.WithContext(ctx).
		Where("liked_by = ? AND video_id IS NOT NULL", userID).
		Order("created_at desc").
		Find(&likes).Error
	return likes, err
}

package repository

import (
	"context"

	"vidtube/internal/cache"
	"vidtube/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// VideoSortColumns maps accepted sortBy values to columns.
var VideoSortColumns = map[string]string{
	"createdAt": "created_at",
	"updatedAt": "updated_at",
	"views":     "views",
	"duration":  "duration",
	"title":     "title",
}

// VideoFilter narrows a video listing.
type VideoFilter struct {
	Query         string
	OwnerID       uuid.UUID
	PublishedOnly bool
	SortBy        string
	Desc          bool
	Page          int
	Limit         int
}

// VideoRepository defines interface for video operations
type VideoRepository interface {
	Create(ctx context.Context, video *models.Video) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.Video, error)
	GetByIDs(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID]models.Video, error)
	Exists(ctx context.Context, id uuid.UUID) (bool, error)
	List(ctx context.Context, f VideoFilter) ([]models.Video, int64, error)
	ListByOwner(ctx context.Context, ownerID uuid.UUID) ([]models.Video, error)
	Update(ctx context.Context, video *models.Video) error
	TogglePublish(ctx context.Context, id uuid.UUID) (*models.Video, error)
	Delete(ctx context.Context, id uuid.UUID) error
	ChannelTotals(ctx context.Context, ownerID uuid.UUID) (*models.ChannelStats, error)
}

type videoRepository struct {
	db *gorm.DB
}

// NewVideoRepository creates a new VideoRepository
func NewVideoRepository(db *gorm.DB) VideoRepository {
	return &videoRepository{db: db}
}

func (r *videoRepository) Create(ctx context.Context, video *models.Video) error {
	return r.db.WithContext(ctx).Create(video).Error
}

func (r *videoRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Video, error) {
	var video models.Video
	if err := r.db.WithContext(ctx).First(&video, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &video, nil
}

func (r *videoRepository) GetByIDs(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID]models.Video, error) {
	out := make(map[uuid.UUID]models.Video, len(ids))
	if len(ids) == 0 {
		return out, nil
	}
	var videos []models.Video
	if err := r.db.WithContext(ctx).Where("id IN ?", uniqueIDs(ids)).Find(&videos).Error; err != nil {
		return nil, err
	}
	for _, v := range videos {
		out[v.ID] = v
	}
	return out, nil
}

func (r *videoRepository) Exists(ctx context.Context, id uuid.UUID) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Video{}).Where("id = ?", id).Limit(1).Count(&count).Error
	return count > 0, err
}

// List returns one page of videos matching f and the total match count.
// Query matches title or description case-insensitively.
func (r *videoRepository) List(ctx context.Context, f VideoFilter) ([]models.Video, int64, error) {
	filter := func(db *gorm.DB) *gorm.DB {
		if f.OwnerID != uuid.Nil {
			db = db.Where("owner_id = ?", f.OwnerID)
		}
		if f.PublishedOnly {
			db = db.Where("is_published = ?", true)
		}
		if f.Query != "" {
			pattern := containsPattern(f.Query)
			db = db.Where(`(LOWER(title) LIKE ? ESCAPE '\' OR LOWER(description) LIKE ? ESCAPE '\')`, pattern, pattern)
		}
		return db
	}

	var total int64
	if err := r.db.WithContext(ctx).Model(&models.Video{}).Scopes(filter).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	column, ok := VideoSortColumns[f.SortBy]
	if !ok {
		column = "created_at"
	}

	var videos []models.Video
	err := r.db.WithContext(ctx).
		Scopes(filter, paginate(f.Page, f.Limit)).
		Order(clause.OrderByColumn{Column: clause.Column{Name: column}, Desc: f.Desc}).
		Order("id").
		Find(&videos).Error
	return videos, total, err
}

func (r *videoRepository) ListByOwner(ctx context.Context, ownerID uuid.UUID) ([]models.Video, error) {
	var videos []models.Video
	err := r.db.WithContext(ctx).Where("owner_id = ?", ownerID).Order("created_at desc").Find(&videos).Error
	return videos, err
}

func (r *videoRepository) Update(ctx context.Context, video *models.Video) error {
	err := r.db.WithContext(ctx).Save(video).Error
	if err == nil {
		cache.InvalidateVideo(ctx, video.ID)
	}
	return err
}

// TogglePublish flips is_published in a single column update, skipping hooks
// and the updated_at bump, and returns the updated row.
func (r *videoRepository) TogglePublish(ctx context.Context, id uuid.UUID) (*models.Video, error) {
	var video models.Video
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&models.Video{}).Where("id = ?", id).
			UpdateColumn("is_published", gorm.Expr("NOT is_published"))
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return tx.First(&video, "id = ?", id).Error
	})
	if err != nil {
		return nil, err
	}
	cache.InvalidateVideo(ctx, id)
	return &video, nil
}

// Delete removes the video together with its comments, every like pointing at
// the video or its comments, and its playlist memberships.
func (r *videoRepository) Delete(ctx context.Context, id uuid.UUID) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		commentIDs := tx.Model(&models.Comment{}).Select("id").Where("video_id = ?", id)
		if err := tx.Where("comment_id IN (?)", commentIDs).Delete(&models.Like{}).Error; err != nil {
			return err
		}
		if err := tx.Where("video_id = ?", id).Delete(&models.Comment{}).Error; err != nil {
			return err
		}
		if err := tx.Where("video_id = ?", id).Delete(&models.Like{}).Error; err != nil {
			return err
		}
		if err := tx.Where("video_id = ?", id).Delete(&models.PlaylistVideo{}).Error; err != nil {
			return err
		}
		res := tx.Where("id = ?", id).Delete(&models.Video{})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return nil
	})
	if err == nil {
		cache.InvalidateVideo(ctx, id)
	}
	return err
}

// ChannelTotals sums videos, views and likes across the owner's videos.
// TotalSubscribers is left for the subscription repository.
func (r *videoRepository) ChannelTotals(ctx context.Context, ownerID uuid.UUID) (*models.ChannelStats, error) {
	var totals struct {
		TotalVideos int64
		TotalViews  int64
	}
	err := r.db.WithContext(ctx).Model(&models.Video{}).
		Select("COUNT(*) AS total_videos, COALESCE(SUM(views), 0) AS total_views").
		Where("owner_id = ?", ownerID).
		Scan(&totals).Error
	if err != nil {
		return nil, err
	}

	var likes int64
	err = r.db.WithContext(ctx).Model(&models.Like{}).
		Joins("JOIN videos ON videos.id = likes.video_id").
		Where("videos.owner_id = ?", ownerID).
		Count(&likes).Error
	if err != nil {
		return nil, err
	}

	return &models.ChannelStats{
		TotalVideos: totals.TotalVideos,
		TotalViews:  totals.TotalViews,
		TotalLikes:  likes,
	}, nil
}

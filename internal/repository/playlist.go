package repository

import (
	"context"
	"time"

	"vidtube/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// PlaylistRepository defines interface for playlist operations
type PlaylistRepository interface {
	Create(ctx context.Context, playlist *models.Playlist) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.Playlist, error)
	ListByOwner(ctx context.Context, ownerID uuid.UUID) ([]models.Playlist, error)
	Update(ctx context.Context, playlist *models.Playlist) error
	Delete(ctx context.Context, id uuid.UUID) error
	AddVideo(ctx context.Context, playlistID, videoID uuid.UUID) (bool, error)
	RemoveVideo(ctx context.Context, playlistID, videoID uuid.UUID) (bool, error)
}

type playlistRepository struct {
	db *gorm.DB
}

// NewPlaylistRepository creates a new PlaylistRepository
func NewPlaylistRepository(db *gorm.DB) PlaylistRepository {
	return &playlistRepository{db: db}
}

func (r *playlistRepository) Create(ctx context.Context, playlist *models.Playlist) error {
	if err := r.db.WithContext(ctx).Create(playlist).Error; err != nil {
		return err
	}
	if playlist.Videos == nil {
		playlist.Videos = []uuid.UUID{}
	}
	return nil
}

// GetByID loads the playlist with its video ids in insertion order.
func (r *playlistRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Playlist, error) {
	var playlist models.Playlist
	if err := r.db.WithContext(ctx).First(&playlist, "id = ?", id).Error; err != nil {
		return nil, err
	}
	members, err := r.members(ctx, playlist.ID)
	if err != nil {
		return nil, err
	}
	playlist.Videos = members[playlist.ID]
	return &playlist, nil
}

func (r *playlistRepository) ListByOwner(ctx context.Context, ownerID uuid.UUID) ([]models.Playlist, error) {
	playlists := []models.Playlist{}
	err := r.db.WithContext(ctx).Where("owner_id = ?", ownerID).Order("created_at desc").Order("id").Find(&playlists).Error
	if err != nil {
		return nil, err
	}
	if len(playlists) == 0 {
		return playlists, nil
	}

	ids := make([]uuid.UUID, len(playlists))
	for i, p := range playlists {
		ids[i] = p.ID
	}
	members, err := r.members(ctx, ids...)
	if err != nil {
		return nil, err
	}
	for i := range playlists {
		playlists[i].Videos = members[playlists[i].ID]
	}
	return playlists, nil
}

// members returns ordered video ids per playlist. Every requested playlist
// gets a non-nil slice.
func (r *playlistRepository) members(ctx context.Context, playlistIDs ...uuid.UUID) (map[uuid.UUID][]uuid.UUID, error) {
	var rows []models.PlaylistVideo
	err := r.db.WithContext(ctx).
		Where("playlist_id IN ?", playlistIDs).
		Order("position").
		Order("created_at").
		Order("video_id").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	out := make(map[uuid.UUID][]uuid.UUID, len(playlistIDs))
	for _, id := range playlistIDs {
		out[id] = []uuid.UUID{}
	}
	for _, row := range rows {
		out[row.PlaylistID] = append(out[row.PlaylistID], row.VideoID)
	}
	return out, nil
}

func (r *playlistRepository) Update(ctx context.Context, playlist *models.Playlist) error {
	return r.db.WithContext(ctx).Model(playlist).
		Select("name", "description", "updated_at").
		Updates(playlist).Error
}

func (r *playlistRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("playlist_id = ?", id).Delete(&models.PlaylistVideo{}).Error; err != nil {
			return err
		}
		res := tx.Where("id = ?", id).Delete(&models.Playlist{})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return nil
	})
}

// AddVideo appends videoID to the playlist. It reports false when the video
// was already a member.
func (r *playlistRepository) AddVideo(ctx context.Context, playlistID, videoID uuid.UUID) (bool, error) {
	var added bool
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var next int
		if err := tx.Model(&models.PlaylistVideo{}).
			Select("COALESCE(MAX(position), 0) + 1").
			Where("playlist_id = ?", playlistID).
			Scan(&next).Error; err != nil {
			return err
		}
		res := tx.Clauses(clause.OnConflict{DoNothing: true}).Create(&models.PlaylistVideo{
			PlaylistID: playlistID,
			VideoID:    videoID,
			Position:   next,
		})
		if res.Error != nil {
			return res.Error
		}
		added = res.RowsAffected > 0
		if added {
			return tx.Model(&models.Playlist{}).Where("id = ?", playlistID).Update("updated_at", time.Now()).Error
		}
		return nil
	})
	return added, err
}

// RemoveVideo drops videoID from the playlist and reports whether it was there.
func (r *playlistRepository) RemoveVideo(ctx context.Context, playlistID, videoID uuid.UUID) (bool, error) {
	res := r.db.WithContext(ctx).
		Where("playlist_id = ? AND video_id = ?", playlistID, videoID).
		Delete(&models.PlaylistVideo{})
	return res.RowsAffected > 0, res.Error
}

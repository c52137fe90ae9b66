package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Playlist is an owner-curated ordered list of videos.
// Membership lives in PlaylistVideo; Videos is filled on read.
type Playlist struct {
	ID          uuid.UUID   `gorm:"type:uuid;primaryKey" json:"id"`
	Name        string      `gorm:"not null" json:"name"`
	Description string      `gorm:"not null" json:"description"`
	OwnerID     uuid.UUID   `gorm:"type:uuid;not null;index" json:"owner"`
	Videos      []uuid.UUID `gorm:"-" json:"videos"`
	CreatedAt   time.Time   `json:"createdAt"`
	UpdatedAt   time.Time   `json:"updatedAt"`
}

func (p *Playlist) BeforeCreate(_ *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}

// PlaylistVideo is a playlist membership row. The composite key keeps a
// video from appearing twice in the same playlist.
type PlaylistVideo struct {
	PlaylistID uuid.UUID `gorm:"type:uuid;primaryKey"`
	VideoID    uuid.UUID `gorm:"type:uuid;primaryKey;index"`
	Position   int       `gorm:"not null"`
	CreatedAt  time.Time
}

// PlaylistWithVideos is a playlist with its member videos hydrated in order.
type PlaylistWithVideos struct {
	Playlist
	VideoDetails []Video `json:"videoDetails"`
	TotalVideos  int     `json:"totalVideos"`
	TotalViews   int64   `json:"totalViews"`
}

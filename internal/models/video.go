package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Video is an uploaded video. OwnerID is set at creation and never reassigned.
type Video struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	VideoFile    string    `gorm:"not null" json:"videoFile"`
	VideoFileKey string    `json:"-"`
	Thumbnail    string    `gorm:"not null" json:"thumbnail"`
	ThumbnailKey string    `json:"-"`
	Title        string    `gorm:"not null" json:"title"`
	Description  string    `gorm:"not null" json:"description"`
	Duration     float64   `gorm:"not null;default:0" json:"duration"`
	Views        int64     `gorm:"not null;default:0" json:"views"`
	IsPublished  bool      `gorm:"not null" json:"isPublished"`
	OwnerID      uuid.UUID `gorm:"type:uuid;not null;index" json:"owner"`
	CreatedAt    time.Time `gorm:"index" json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

func (v *Video) BeforeCreate(_ *gorm.DB) error {
	if v.ID == uuid.Nil {
		v.ID = uuid.New()
	}
	return nil
}

// VideoWithOwner is a video hydrated with its owner's public profile.
type VideoWithOwner struct {
	Video
	OwnerProfile ChannelProfile `json:"ownerDetails"`
}

// LikedVideo is one entry of a user's liked-videos list.
type LikedVideo struct {
	VideoWithOwner
	LikedAt time.Time `json:"likedAt"`
}

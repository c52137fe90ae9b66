package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Comment is a comment left on a video.
type Comment struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Content   string    `gorm:"not null" json:"content"`
	VideoID   uuid.UUID `gorm:"type:uuid;not null;index" json:"video"`
	OwnerID   uuid.UUID `gorm:"type:uuid;not null;index" json:"owner"`
	CreatedAt time.Time `gorm:"index" json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (c *Comment) BeforeCreate(_ *gorm.DB) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	return nil
}

// CommentView is a comment with its author's public profile.
type CommentView struct {
	Comment
	OwnerProfile ChannelProfile `json:"ownerDetails"`
}

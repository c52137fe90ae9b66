// Package models contains the persistence schemas, typed query results and the
// response envelope shared by every layer of the API.
package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// User is a registered account. Every user is also a channel.
type User struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Username   string    `gorm:"uniqueIndex;not null" json:"username"`
	Email      string    `gorm:"uniqueIndex;not null" json:"email"`
	FullName   string    `gorm:"not null" json:"fullName"`
	Avatar     string    `json:"avatar"`
	CoverImage string    `json:"coverImage"`
	Password   string    `gorm:"not null" json:"-"`
	CreatedAt  time.Time `json:"createdAt"`
	UpdatedAt  time.Time `json:"updatedAt"`
}

func (u *User) BeforeCreate(_ *gorm.DB) error {
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	return nil
}

// ChannelProfile is the public projection of a user attached to joined results.
type ChannelProfile struct {
	ID       uuid.UUID `json:"id"`
	Username string    `json:"username"`
	FullName string    `json:"fullName"`
	Avatar   string    `json:"avatar"`
}

func (ChannelProfile) TableName() string { return "users" }

// ProfileOf projects a user onto its public profile.
func ProfileOf(u *User) ChannelProfile {
	return ChannelProfile{ID: u.ID, Username: u.Username, FullName: u.FullName, Avatar: u.Avatar}
}

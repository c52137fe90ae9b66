package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// LikeSubject identifies which kind of entity a like points at.
type LikeSubject string

const (
	LikeSubjectVideo   LikeSubject = "video"
	LikeSubjectComment LikeSubject = "comment"
	LikeSubjectTweet   LikeSubject = "tweet"
)

// Column returns the likes column referencing this subject kind.
func (s LikeSubject) Column() string {
	return string(s) + "_id"
}

// Like records that LikedBy likes exactly one of video, comment or tweet.
// Each (subject, liker) pair is unique.
type Like struct {
	ID        uuid.UUID  `gorm:"type:uuid;primaryKey" json:"id"`
	VideoID   *uuid.UUID `gorm:"type:uuid;uniqueIndex:idx_like_video_user" json:"video,omitempty"`
	CommentID *uuid.UUID `gorm:"type:uuid;uniqueIndex:idx_like_comment_user" json:"comment,omitempty"`
	TweetID   *uuid.UUID `gorm:"type:uuid;uniqueIndex:idx_like_tweet_user" json:"tweet,omitempty"`
	LikedBy   uuid.UUID  `gorm:"type:uuid;not null;index;uniqueIndex:idx_like_video_user;uniqueIndex:idx_like_comment_user;uniqueIndex:idx_like_tweet_user" json:"likedBy"`
	CreatedAt time.Time  `json:"createdAt"`
}

func (l *Like) BeforeCreate(_ *gorm.DB) error {
	if l.ID == uuid.Nil {
		l.ID = uuid.New()
	}
	return nil
}

// NewLike builds a like row for the given subject.
func NewLike(subject LikeSubject, subjectID, likedBy uuid.UUID) *Like {
	l := &Like{LikedBy: likedBy}
	id := subjectID
	switch subject {
	case LikeSubjectVideo:
		l.VideoID = &id
	case LikeSubjectComment:
		l.CommentID = &id
	case LikeSubjectTweet:
		l.TweetID = &id
	}
	return l
}

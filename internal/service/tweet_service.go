package service

import (
	"context"

	"vidtube/internal/models"
	"vidtube/internal/repository"
	"vidtube/internal/validation"

	"github.com/google/uuid"
)

type TweetService struct {
	tweetRepo repository.TweetRepository
	userRepo  repository.UserRepository
}

type UpdateTweetInput struct {
	TweetID  uuid.UUID
	Content  string
	CallerID uuid.UUID
}

func NewTweetService(tweetRepo repository.TweetRepository, userRepo repository.UserRepository) *TweetService {
	return &TweetService{tweetRepo: tweetRepo, userRepo: userRepo}
}

func (s *TweetService) Create(ctx context.Context, content string, ownerID uuid.UUID) (*models.Tweet, error) {
	content, err := validation.RequireField("Content", content)
	if err != nil {
		return nil, err
	}
	tweet := &models.Tweet{Content: content, OwnerID: ownerID}
	if err := s.tweetRepo.Create(ctx, tweet); err != nil {
		return nil, err
	}
	return tweet, nil
}

// ListForUser returns the user's tweets, newest first.
func (s *TweetService) ListForUser(ctx context.Context, userID uuid.UUID) ([]models.Tweet, error) {
	exists, err := s.userRepo.Exists(ctx, userID)
	if err := requireExists(exists, err, "User", userID); err != nil {
		return nil, err
	}
	tweets, err := s.tweetRepo.ListByOwner(ctx, userID)
	if err != nil {
		return nil, err
	}
	if tweets == nil {
		tweets = []models.Tweet{}
	}
	return tweets, nil
}

func (s *TweetService) Update(ctx context.Context, in UpdateTweetInput) (*models.Tweet, error) {
	tweet, err := s.tweetRepo.GetByID(ctx, in.TweetID)
	if err != nil {
		return nil, lookupError(err, "Tweet", in.TweetID)
	}
	content, err := validation.RequireField("Content", in.Content)
	if err != nil {
		return nil, err
	}
	if tweet.OwnerID != in.CallerID {
		return nil, models.NewForbiddenError("You can only update your own tweets")
	}

	tweet.Content = content
	if err := s.tweetRepo.Update(ctx, tweet); err != nil {
		return nil, err
	}
	return tweet, nil
}

func (s *TweetService) Delete(ctx context.Context, tweetID, callerID uuid.UUID) (*models.Tweet, error) {
	tweet, err := s.tweetRepo.GetByID(ctx, tweetID)
	if err != nil {
		return nil, lookupError(err, "Tweet", tweetID)
	}
	if tweet.OwnerID != callerID {
		return nil, models.NewForbiddenError("You can only delete your own tweets")
	}
	if err := s.tweetRepo.Delete(ctx, tweetID); err != nil {
		return nil, lookupError(err, "Tweet", tweetID)
	}
	return tweet, nil
}

package service

import (
	"context"
	"log/slog"

	"vidtube/internal/cache"
	"vidtube/internal/middleware"
	"vidtube/internal/models"
	"vidtube/internal/observability"
	"vidtube/internal/repository"

	"github.com/google/uuid"
)

type LikeService struct {
	likeRepo    repository.LikeRepository
	videoRepo   repository.VideoRepository
	commentRepo repository.CommentRepository
	tweetRepo   repository.TweetRepository
	userRepo    repository.UserRepository
}

func NewLikeService(
	likeRepo repository.LikeRepository,
	videoRepo repository.VideoRepository,
	commentRepo repository.CommentRepository,
	tweetRepo repository.TweetRepository,
	userRepo repository.UserRepository,
) *LikeService {
	return &LikeService{
		likeRepo:    likeRepo,
		videoRepo:   videoRepo,
		commentRepo: commentRepo,
		tweetRepo:   tweetRepo,
		userRepo:    userRepo,
	}
}

// ToggleVideoLike likes or unlikes the video for the caller. The owner's
// cached dashboard totals include likes, so they are dropped on success.
func (s *LikeService) ToggleVideoLike(ctx context.Context, videoID, callerID uuid.UUID) (bool, error) {
	video, err := s.videoRepo.GetByID(ctx, videoID)
	if err != nil {
		return false, lookupError(err, "Video", videoID)
	}
	liked, err := s.toggle(ctx, models.LikeSubjectVideo, videoID, callerID)
	if err != nil {
		return false, err
	}
	cache.InvalidateChannelStats(ctx, video.OwnerID)
	return liked, nil
}

func (s *LikeService) ToggleCommentLike(ctx context.Context, commentID, callerID uuid.UUID) (bool, error) {
	if _, err := s.commentRepo.GetByID(ctx, commentID); err != nil {
		return false, lookupError(err, "Comment", commentID)
	}
	return s.toggle(ctx, models.LikeSubjectComment, commentID, callerID)
}

func (s *LikeService) ToggleTweetLike(ctx context.Context, tweetID, callerID uuid.UUID) (bool, error) {
	if _, err := s.tweetRepo.GetByID(ctx, tweetID); err != nil {
		return false, lookupError(err, "Tweet", tweetID)
	}
	return s.toggle(ctx, models.LikeSubjectTweet, tweetID, callerID)
}

func (s *LikeService) toggle(ctx context.Context, subject models.LikeSubject, subjectID, callerID uuid.UUID) (bool, error) {
	liked, err := s.likeRepo.Toggle(ctx, subject, subjectID, callerID)
	if err != nil {
		return false, err
	}
	observability.Toggles.WithLabelValues("like_"+string(subject), observability.ToggleState(liked)).Inc()
	middleware.Logger.DebugContext(ctx, "like toggled",
		slog.String("subject", string(subject)),
		slog.String("subject_id", subjectID.String()),
		slog.Bool("liked", liked))
	return liked, nil
}

// ListLikedVideos returns the videos the caller liked, most recent like first,
// each with its owner's profile. Likes whose video has since gone are skipped.
func (s *LikeService) ListLikedVideos(ctx context.Context, callerID uuid.UUID) ([]models.LikedVideo, error) {
	likes, err := s.likeRepo.ListVideoLikes(ctx, callerID)
	if err != nil {
		return nil, err
	}

	videoIDs := make([]uuid.UUID, 0, len(likes))
	for _, l := range likes {
		videoIDs = append(videoIDs, *l.VideoID)
	}
	videos, err := s.videoRepo.GetByIDs(ctx, videoIDs)
	if err != nil {
		return nil, err
	}

	ownerIDs := make([]uuid.UUID, 0, len(videos))
	for _, v := range videos {
		ownerIDs = append(ownerIDs, v.OwnerID)
	}
	profiles, err := s.userRepo.ProfilesByIDs(ctx, ownerIDs)
	if err != nil {
		return nil, err
	}

	out := make([]models.LikedVideo, 0, len(likes))
	for _, l := range likes {
		v, ok := videos[*l.VideoID]
		if !ok {
			continue
		}
		out = append(out, models.LikedVideo{
			VideoWithOwner: models.VideoWithOwner{Video: v, OwnerProfile: profiles[v.OwnerID]},
			LikedAt:        l.CreatedAt,
		})
	}
	return out, nil
}

package service

import (
	"context"

	"vidtube/internal/models"
	"vidtube/internal/repository"
	"vidtube/internal/validation"

	"github.com/google/uuid"
)

type CommentService struct {
	commentRepo repository.CommentRepository
	videoRepo   repository.VideoRepository
	userRepo    repository.UserRepository
}

type AddCommentInput struct {
	VideoID  uuid.UUID
	Content  string
	CallerID uuid.UUID
}

type UpdateCommentInput struct {
	CommentID uuid.UUID
	Content   string
	CallerID  uuid.UUID
}

func NewCommentService(
	commentRepo repository.CommentRepository,
	videoRepo repository.VideoRepository,
	userRepo repository.UserRepository,
) *CommentService {
	return &CommentService{
		commentRepo: commentRepo,
		videoRepo:   videoRepo,
		userRepo:    userRepo,
	}
}

// ListForVideo returns one page of the video's comments, newest first, each
// with its author's public profile.
func (s *CommentService) ListForVideo(ctx context.Context, videoID uuid.UUID, page, limit int) (models.Page[models.CommentView], error) {
	page, limit = NormalizePage(page, limit)

	exists, err := s.videoRepo.Exists(ctx, videoID)
	if err := requireExists(exists, err, "Video", videoID); err != nil {
		return models.Page[models.CommentView]{}, err
	}

	comments, total, err := s.commentRepo.ListByVideo(ctx, videoID, page, limit)
	if err != nil {
		return models.Page[models.CommentView]{}, err
	}

	ownerIDs := make([]uuid.UUID, len(comments))
	for i, c := range comments {
		ownerIDs[i] = c.OwnerID
	}
	profiles, err := s.userRepo.ProfilesByIDs(ctx, ownerIDs)
	if err != nil {
		return models.Page[models.CommentView]{}, err
	}

	views := make([]models.CommentView, len(comments))
	for i, c := range comments {
		views[i] = models.CommentView{Comment: c, OwnerProfile: profiles[c.OwnerID]}
	}
	return models.NewPage(views, total, page, limit), nil
}

func (s *CommentService) Add(ctx context.Context, in AddCommentInput) (*models.Comment, error) {
	content, err := validation.RequireField("Content", in.Content)
	if err != nil {
		return nil, err
	}

	exists, err := s.videoRepo.Exists(ctx, in.VideoID)
	if err := requireExists(exists, err, "Video", in.VideoID); err != nil {
		return nil, err
	}

	comment := &models.Comment{
		Content: content,
		VideoID: in.VideoID,
		OwnerID: in.CallerID,
	}
	if err := s.commentRepo.Create(ctx, comment); err != nil {
		return nil, err
	}
	return comment, nil
}

func (s *CommentService) Update(ctx context.Context, in UpdateCommentInput) (*models.Comment, error) {
	comment, err := s.commentRepo.GetByID(ctx, in.CommentID)
	if err != nil {
		return nil, lookupError(err, "Comment", in.CommentID)
	}

	content, err := validation.RequireField("Content", in.Content)
	if err != nil {
		return nil, err
	}
	if comment.OwnerID != in.CallerID {
		return nil, models.NewForbiddenError("You can only update your own comments")
	}

	comment.Content = content
	if err := s.commentRepo.Update(ctx, comment); err != nil {
		return nil, err
	}
	return comment, nil
}

// Remove deletes the caller's comment and every like on it.
func (s *CommentService) Remove(ctx context.Context, commentID, callerID uuid.UUID) (*models.Comment, error) {
	comment, err := s.commentRepo.GetByID(ctx, commentID)
	if err != nil {
		return nil, lookupError(err, "Comment", commentID)
	}
	if comment.OwnerID != callerID {
		return nil, models.NewForbiddenError("You can only delete your own comments")
	}

	if err := s.commentRepo.Delete(ctx, commentID); err != nil {
		return nil, lookupError(err, "Comment", commentID)
	}
	return comment, nil
}

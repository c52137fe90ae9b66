package service

import (
	"context"
	"strings"

	"vidtube/internal/cache"
	"vidtube/internal/events"
	"vidtube/internal/media"
	"vidtube/internal/models"
	"vidtube/internal/observability"
	"vidtube/internal/repository"
	"vidtube/internal/validation"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
)

type VideoService struct {
	videoRepo repository.VideoRepository
	uploader  MediaUploader
	publisher events.Publisher
}

// ListVideosInput filters a video listing. OwnerID defaults to CallerID.
// Unpublished videos are only listed for their owner.
type ListVideosInput struct {
	Query    string
	Page     int
	Limit    int
	SortBy   string
	SortType string
	OwnerID  uuid.UUID
	CallerID uuid.UUID
}

type PublishVideoInput struct {
	Title       string
	Description string
	VideoFile   *media.File
	Thumbnail   *media.File
	OwnerID     uuid.UUID
}

// UpdateVideoInput carries the fields to change; nil leaves a field as is.
type UpdateVideoInput struct {
	VideoID     uuid.UUID
	Title       *string
	Description *string
	Thumbnail   *media.File
	CallerID    uuid.UUID
}

func NewVideoService(
	videoRepo repository.VideoRepository,
	uploader MediaUploader,
	publisher events.Publisher,
) *VideoService {
	if publisher == nil {
		publisher = events.NoopPublisher{}
	}
	return &VideoService{
		videoRepo: videoRepo,
		uploader:  uploader,
		publisher: publisher,
	}
}

// sortDescending reads asc|1 and desc|-1; anything else sorts ascending.
func sortDescending(sortType string) bool {
	switch strings.ToLower(strings.TrimSpace(sortType)) {
	case "desc", "-1":
		return true
	default:
		return false
	}
}

func (s *VideoService) List(ctx context.Context, in ListVideosInput) (models.Page[models.Video], error) {
	page, limit := NormalizePage(in.Page, in.Limit)
	owner := in.OwnerID
	if owner == uuid.Nil {
		owner = in.CallerID
	}

	videos, total, err := s.videoRepo.List(ctx, repository.VideoFilter{
		Query:         strings.TrimSpace(in.Query),
		OwnerID:       owner,
		PublishedOnly: owner != in.CallerID,
		SortBy:        in.SortBy,
		Desc:          sortDescending(in.SortType),
		Page:          page,
		Limit:         limit,
	})
	if err != nil {
		return models.Page[models.Video]{}, err
	}
	return models.NewPage(videos, total, page, limit), nil
}

// Publish uploads the video then the thumbnail and stores the record as
// published. Objects already uploaded are removed when a later step fails.
func (s *VideoService) Publish(ctx context.Context, in PublishVideoInput) (video *models.Video, err error) {
	ctx, end := observability.StartSpan(ctx, "video.Publish",
		attribute.String("owner_id", in.OwnerID.String()))
	defer end(&err)

	title, err := validation.RequireField("Title", in.Title)
	if err != nil {
		return nil, err
	}
	description, err := validation.RequireField("Description", in.Description)
	if err != nil {
		return nil, err
	}
	if in.VideoFile == nil {
		return nil, models.NewMissingFieldError("Video file")
	}
	if in.Thumbnail == nil {
		return nil, models.NewMissingFieldError("Thumbnail")
	}

	videoUpload, err := s.uploader.UploadVideo(ctx, in.OwnerID, in.VideoFile)
	if err != nil {
		return nil, uploadError("Failed to upload video file", err)
	}
	if videoUpload == nil || videoUpload.URL == "" {
		return nil, models.NewUploadError("Video upload returned no URL", nil)
	}

	thumbUpload, err := s.uploader.UploadImage(ctx, media.KindThumbnail, in.OwnerID, in.Thumbnail)
	if err != nil {
		s.uploader.Remove(ctx, videoUpload.Key)
		return nil, uploadError("Failed to upload thumbnail", err)
	}

	video = &models.Video{
		VideoFile:    videoUpload.URL,
		VideoFileKey: videoUpload.Key,
		Thumbnail:    thumbUpload.URL,
		ThumbnailKey: thumbUpload.Key,
		Title:        title,
		Description:  description,
		Duration:     videoUpload.Duration,
		IsPublished:  true,
		OwnerID:      in.OwnerID,
	}
	if err := s.videoRepo.Create(ctx, video); err != nil {
		s.uploader.Remove(ctx, videoUpload.Key, thumbUpload.Key)
		return nil, models.NewInternalError(err)
	}
	cache.InvalidateChannelStats(ctx, in.OwnerID)

	publish(ctx, s.publisher, events.New(events.TypeVideoPublished, in.OwnerID, video.ID,
		map[string]string{"title": video.Title}))
	return video, nil
}

// GetByID serves the video cache-aside.
func (s *VideoService) GetByID(ctx context.Context, videoID uuid.UUID) (*models.Video, error) {
	var video models.Video
	err := cache.CacheAside(ctx, cache.VideoKey(videoID), &video, cache.VideoTTL, func() error {
		v, err := s.videoRepo.GetByID(ctx, videoID)
		if err != nil {
			return err
		}
		video = *v
		return nil
	})
	if err != nil {
		return nil, lookupError(err, "Video", videoID)
	}
	return &video, nil
}

// owned loads the video uncached and checks the caller owns it.
func (s *VideoService) owned(ctx context.Context, videoID, callerID uuid.UUID, action string) (*models.Video, error) {
	video, err := s.videoRepo.GetByID(ctx, videoID)
	if err != nil {
		return nil, lookupError(err, "Video", videoID)
	}
	if video.OwnerID != callerID {
		return nil, models.NewForbiddenError("You can only " + action + " your own videos")
	}
	return video, nil
}

// Update applies the provided fields. A new thumbnail replaces the stored one,
// whose object is removed best-effort.
func (s *VideoService) Update(ctx context.Context, in UpdateVideoInput) (video *models.Video, err error) {
	ctx, end := observability.StartSpan(ctx, "video.Update",
		attribute.String("video_id", in.VideoID.String()))
	defer end(&err)

	title, hasTitle := validation.Optional(in.Title)
	description, hasDescription := validation.Optional(in.Description)
	if !hasTitle && !hasDescription && in.Thumbnail == nil {
		return nil, models.NewMissingFieldError("Title, description or thumbnail")
	}

	video, err = s.owned(ctx, in.VideoID, in.CallerID, "update")
	if err != nil {
		return nil, err
	}

	var oldThumbKey string
	if in.Thumbnail != nil {
		upload, err := s.uploader.UploadImage(ctx, media.KindThumbnail, video.OwnerID, in.Thumbnail)
		if err != nil {
			return nil, uploadError("Failed to upload thumbnail", err)
		}
		oldThumbKey = video.ThumbnailKey
		video.Thumbnail = upload.URL
		video.ThumbnailKey = upload.Key
	}
	if hasTitle {
		video.Title = title
	}
	if hasDescription {
		video.Description = description
	}

	if err := s.videoRepo.Update(ctx, video); err != nil {
		if in.Thumbnail != nil {
			s.uploader.Remove(ctx, video.ThumbnailKey)
		}
		return nil, err
	}
	if oldThumbKey != "" {
		s.uploader.Remove(ctx, oldThumbKey)
	}
	return video, nil
}

// Delete removes the caller's video with its comments, likes and playlist
// entries, then its stored media.
func (s *VideoService) Delete(ctx context.Context, videoID, callerID uuid.UUID) (*models.Video, error) {
	video, err := s.owned(ctx, videoID, callerID, "delete")
	if err != nil {
		return nil, err
	}
	if err := s.videoRepo.Delete(ctx, videoID); err != nil {
		return nil, lookupError(err, "Video", videoID)
	}
	cache.InvalidateChannelStats(ctx, video.OwnerID)
	s.uploader.Remove(ctx, video.VideoFileKey, video.ThumbnailKey)
	return video, nil
}

func (s *VideoService) TogglePublish(ctx context.Context, videoID, callerID uuid.UUID) (*models.Video, error) {
	if _, err := s.owned(ctx, videoID, callerID, "publish or unpublish"); err != nil {
		return nil, err
	}
	video, err := s.videoRepo.TogglePublish(ctx, videoID)
	if err != nil {
		return nil, lookupError(err, "Video", videoID)
	}
	return video, nil
}

package service

import (
	"context"

	"vidtube/internal/models"
	"vidtube/internal/repository"
	"vidtube/internal/validation"

	"github.com/google/uuid"
)

type PlaylistService struct {
	playlistRepo repository.PlaylistRepository
	videoRepo    repository.VideoRepository
	userRepo     repository.UserRepository
}

type CreatePlaylistInput struct {
	Name        string
	Description string
	OwnerID     uuid.UUID
}

// UpdatePlaylistInput carries the fields to change; nil leaves a field as is.
type UpdatePlaylistInput struct {
	PlaylistID  uuid.UUID
	Name        *string
	Description *string
	CallerID    uuid.UUID
}

type PlaylistVideoInput struct {
	PlaylistID uuid.UUID
	VideoID    uuid.UUID
	CallerID   uuid.UUID
}

func NewPlaylistService(
	playlistRepo repository.PlaylistRepository,
	videoRepo repository.VideoRepository,
	userRepo repository.UserRepository,
) *PlaylistService {
	return &PlaylistService{
		playlistRepo: playlistRepo,
		videoRepo:    videoRepo,
		userRepo:     userRepo,
	}
}

func (s *PlaylistService) Create(ctx context.Context, in CreatePlaylistInput) (*models.Playlist, error) {
	name, err := validation.RequireField("Name", in.Name)
	if err != nil {
		return nil, err
	}
	description, err := validation.RequireField("Description", in.Description)
	if err != nil {
		return nil, err
	}

	playlist := &models.Playlist{Name: name, Description: description, OwnerID: in.OwnerID}
	if err := s.playlistRepo.Create(ctx, playlist); err != nil {
		return nil, err
	}
	return playlist, nil
}

// ListForUser returns the user's playlists with their videos hydrated in
// playlist order.
func (s *PlaylistService) ListForUser(ctx context.Context, userID uuid.UUID) ([]models.PlaylistWithVideos, error) {
	exists, err := s.userRepo.Exists(ctx, userID)
	if err := requireExists(exists, err, "User", userID); err != nil {
		return nil, err
	}

	playlists, err := s.playlistRepo.ListByOwner(ctx, userID)
	if err != nil {
		return nil, err
	}

	var videoIDs []uuid.UUID
	for _, p := range playlists {
		videoIDs = append(videoIDs, p.Videos...)
	}
	videos, err := s.videoRepo.GetByIDs(ctx, videoIDs)
	if err != nil {
		return nil, err
	}

	out := make([]models.PlaylistWithVideos, len(playlists))
	for i, p := range playlists {
		item := models.PlaylistWithVideos{Playlist: p, VideoDetails: make([]models.Video, 0, len(p.Videos))}
		for _, id := range p.Videos {
			v, ok := videos[id]
			if !ok {
				continue
			}
			item.VideoDetails = append(item.VideoDetails, v)
			item.TotalViews += v.Views
		}
		item.TotalVideos = len(item.VideoDetails)
		out[i] = item
	}
	return out, nil
}

func (s *PlaylistService) GetByID(ctx context.Context, playlistID uuid.UUID) (*models.Playlist, error) {
	playlist, err := s.playlistRepo.GetByID(ctx, playlistID)
	if err != nil {
		return nil, lookupError(err, "Playlist", playlistID)
	}
	return playlist, nil
}

// owned loads the playlist and checks the caller owns it.
func (s *PlaylistService) owned(ctx context.Context, playlistID, callerID uuid.UUID, action string) (*models.Playlist, error) {
	playlist, err := s.playlistRepo.GetByID(ctx, playlistID)
	if err != nil {
		return nil, lookupError(err, "Playlist", playlistID)
	}
	if playlist.OwnerID != callerID {
		return nil, models.NewForbiddenError("You can only " + action + " your own playlists")
	}
	return playlist, nil
}

// AddVideo appends a video to the caller's playlist. Adding a video that is
// already present is a Conflict and leaves the playlist unchanged.
func (s *PlaylistService) AddVideo(ctx context.Context, in PlaylistVideoInput) (*models.Playlist, error) {
	if _, err := s.owned(ctx, in.PlaylistID, in.CallerID, "modify"); err != nil {
		return nil, err
	}
	exists, err := s.videoRepo.Exists(ctx, in.VideoID)
	if err := requireExists(exists, err, "Video", in.VideoID); err != nil {
		return nil, err
	}

	added, err := s.playlistRepo.AddVideo(ctx, in.PlaylistID, in.VideoID)
	if err != nil {
		return nil, err
	}
	if !added {
		return nil, models.NewConflictError("Video is already in the playlist")
	}
	return s.GetByID(ctx, in.PlaylistID)
}

// RemoveVideo drops a video from the caller's playlist. Removing a video that
// is not a member succeeds without changes.
func (s *PlaylistService) RemoveVideo(ctx context.Context, in PlaylistVideoInput) (*models.Playlist, error) {
	if _, err := s.owned(ctx, in.PlaylistID, in.CallerID, "modify"); err != nil {
		return nil, err
	}
	exists, err := s.videoRepo.Exists(ctx, in.VideoID)
	if err := requireExists(exists, err, "Video", in.VideoID); err != nil {
		return nil, err
	}

	if _, err := s.playlistRepo.RemoveVideo(ctx, in.PlaylistID, in.VideoID); err != nil {
		return nil, err
	}
	return s.GetByID(ctx, in.PlaylistID)
}

func (s *PlaylistService) Delete(ctx context.Context, playlistID, callerID uuid.UUID) (*models.Playlist, error) {
	playlist, err := s.owned(ctx, playlistID, callerID, "delete")
	if err != nil {
		return nil, err
	}
	if err := s.playlistRepo.Delete(ctx, playlistID); err != nil {
		return nil, lookupError(err, "Playlist", playlistID)
	}
	return playlist, nil
}

// Update sets the provided non-blank fields. At least one is required.
func (s *PlaylistService) Update(ctx context.Context, in UpdatePlaylistInput) (*models.Playlist, error) {
	name, hasName := validation.Optional(in.Name)
	description, hasDescription := validation.Optional(in.Description)
	if !hasName && !hasDescription {
		return nil, models.NewMissingFieldError("Name or description")
	}

	playlist, err := s.owned(ctx, in.PlaylistID, in.CallerID, "update")
	if err != nil {
		return nil, err
	}
	if hasName {
		playlist.Name = name
	}
	if hasDescription {
		playlist.Description = description
	}
	if err := s.playlistRepo.Update(ctx, playlist); err != nil {
		return nil, err
	}
	return playlist, nil
}

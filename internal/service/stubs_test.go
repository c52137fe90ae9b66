package service

import (
	"context"
	"errors"
	"sync"
	"testing"

	"vidtube/internal/events"
	"vidtube/internal/media"
	"vidtube/internal/models"
	"vidtube/internal/repository"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// userRepoStub is a stub for repository.UserRepository.
type userRepoStub struct {
	createFn        func(context.Context, *models.User) error
	getByIDFn       func(context.Context, uuid.UUID) (*models.User, error)
	getByLoginFn    func(context.Context, string) (*models.User, error)
	existsFn        func(context.Context, uuid.UUID) (bool, error)
	isTakenFn       func(context.Context, string, string) (bool, error)
	profilesByIDsFn func(context.Context, []uuid.UUID) (map[uuid.UUID]models.ChannelProfile, error)
}

func (s *userRepoStub) Create(ctx context.Context, u *models.User) error { return s.createFn(ctx, u) }
func (s *userRepoStub) GetByID(ctx context.Context, id uuid.UUID) (*models.User, error) {
	return s.getByIDFn(ctx, id)
}
func (s *userRepoStub) GetByLogin(ctx context.Context, identifier string) (*models.User, error) {
	return s.getByLoginFn(ctx, identifier)
}
func (s *userRepoStub) Exists(ctx context.Context, id uuid.UUID) (bool, error) {
	return s.existsFn(ctx, id)
}
func (s *userRepoStub) IsTaken(ctx context.Context, username, email string) (bool, error) {
	return s.isTakenFn(ctx, username, email)
}
func (s *userRepoStub) ProfilesByIDs(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID]models.ChannelProfile, error) {
	return s.profilesByIDsFn(ctx, ids)
}

func noopUserRepo() *userRepoStub {
	return &userRepoStub{
		createFn:     func(_ context.Context, _ *models.User) error { return nil },
		getByIDFn:    func(_ context.Context, id uuid.UUID) (*models.User, error) { return &models.User{ID: id}, nil },
		getByLoginFn: func(_ context.Context, _ string) (*models.User, error) { return nil, gorm.ErrRecordNotFound },
		existsFn:     func(_ context.Context, _ uuid.UUID) (bool, error) { return true, nil },
		isTakenFn:    func(_ context.Context, _, _ string) (bool, error) { return false, nil },
		profilesByIDsFn: func(_ context.Context, ids []uuid.UUID) (map[uuid.UUID]models.ChannelProfile, error) {
			out := map[uuid.UUID]models.ChannelProfile{}
			for _, id := range ids {
				out[id] = models.ChannelProfile{ID: id, Username: "user-" + id.String()[:4]}
			}
			return out, nil
		},
	}
}

// videoRepoStub is a stub for repository.VideoRepository.
type videoRepoStub struct {
	createFn        func(context.Context, *models.Video) error
	getByIDFn       func(context.Context, uuid.UUID) (*models.Video, error)
	getByIDsFn      func(context.Context, []uuid.UUID) (map[uuid.UUID]models.Video, error)
	existsFn        func(context.Context, uuid.UUID) (bool, error)
	listFn          func(context.Context, repository.VideoFilter) ([]models.Video, int64, error)
	listByOwnerFn   func(context.Context, uuid.UUID) ([]models.Video, error)
	updateFn        func(context.Context, *models.Video) error
	togglePublishFn func(context.Context, uuid.UUID) (*models.Video, error)
	deleteFn        func(context.Context, uuid.UUID) error
	channelTotalsFn func(context.Context, uuid.UUID) (*models.ChannelStats, error)
}

func (s *videoRepoStub) Create(ctx context.Context, v *models.Video) error { return s.createFn(ctx, v) }
func (s *videoRepoStub) GetByID(ctx context.Context, id uuid.UUID) (*models.Video, error) {
	return s.getByIDFn(ctx, id)
}
func (s *videoRepoStub) GetByIDs(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID]models.Video, error) {
	return s.getByIDsFn(ctx, ids)
}
func (s *videoRepoStub) Exists(ctx context.Context, id uuid.UUID) (bool, error) {
	return s.existsFn(ctx, id)
}
func (s *videoRepoStub) List(ctx context.Context, f repository.VideoFilter) ([]models.Video, int64, error) {
	return s.listFn(ctx, f)
}
func (s *videoRepoStub) ListByOwner(ctx context.Context, ownerID uuid.UUID) ([]models.Video, error) {
	return s.listByOwnerFn(ctx, ownerID)
}
func (s *videoRepoStub) Update(ctx context.Context, v *models.Video) error { return s.updateFn(ctx, v) }
func (s *videoRepoStub) TogglePublish(ctx context.Context, id uuid.UUID) (*models.Video, error) {
	return s.togglePublishFn(ctx, id)
}
func (s *videoRepoStub) Delete(ctx context.Context, id uuid.UUID) error { return s.deleteFn(ctx, id) }
func (s *videoRepoStub) ChannelTotals(ctx context.Context, ownerID uuid.UUID) (*models.ChannelStats, error) {
	return s.channelTotalsFn(ctx, ownerID)
}

func noopVideoRepo() *videoRepoStub {
	return &videoRepoStub{
		createFn: func(_ context.Context, _ *models.Video) error { return nil },
		getByIDFn: func(_ context.Context, id uuid.UUID) (*models.Video, error) {
			return &models.Video{ID: id}, nil
		},
		getByIDsFn: func(_ context.Context, _ []uuid.UUID) (map[uuid.UUID]models.Video, error) {
			return map[uuid.UUID]models.Video{}, nil
		},
		existsFn: func(_ context.Context, _ uuid.UUID) (bool, error) { return true, nil },
		listFn: func(_ context.Context, _ repository.VideoFilter) ([]models.Video, int64, error) {
			return nil, 0, nil
		},
		listByOwnerFn: func(_ context.Context, _ uuid.UUID) ([]models.Video, error) { return nil, nil },
		updateFn:      func(_ context.Context, _ *models.Video) error { return nil },
		togglePublishFn: func(_ context.Context, id uuid.UUID) (*models.Video, error) {
			return &models.Video{ID: id}, nil
		},
		deleteFn: func(_ context.Context, _ uuid.UUID) error { return nil },
		channelTotalsFn: func(_ context.Context, _ uuid.UUID) (*models.ChannelStats, error) {
			return &models.ChannelStats{}, nil
		},
	}
}

// commentRepoStub is a stub for repository.CommentRepository.
type commentRepoStub struct {
	createFn      func(context.Context, *models.Comment) error
	getByIDFn     func(context.Context, uuid.UUID) (*models.Comment, error)
	listByVideoFn func(context.Context, uuid.UUID, int, int) ([]models.Comment, int64, error)
	updateFn      func(context.Context, *models.Comment) error
	deleteFn      func(context.Context, uuid.UUID) error
}

func (s *commentRepoStub) Create(ctx context.Context, c *models.Comment) error {
	return s.createFn(ctx, c)
}
func (s *commentRepoStub) GetByID(ctx context.Context, id uuid.UUID) (*models.Comment, error) {
	return s.getByIDFn(ctx, id)
}
func (s *commentRepoStub) ListByVideo(ctx context.Context, videoID uuid.UUID, page, limit int) ([]models.Comment, int64, error) {
	return s.listByVideoFn(ctx, videoID, page, limit)
}
func (s *commentRepoStub) Update(ctx context.Context, c *models.Comment) error {
	return s.updateFn(ctx, c)
}
func (s *commentRepoStub) Delete(ctx context.Context, id uuid.UUID) error { return s.deleteFn(ctx, id) }

func noopCommentRepo() *commentRepoStub {
	return &commentRepoStub{
		createFn: func(_ context.Context, _ *models.Comment) error { return nil },
		getByIDFn: func(_ context.Context, id uuid.UUID) (*models.Comment, error) {
			return &models.Comment{ID: id}, nil
		},
		listByVideoFn: func(_ context.Context, _ uuid.UUID, _, _ int) ([]models.Comment, int64, error) {
			return nil, 0, nil
		},
		updateFn: func(_ context.Context, _ *models.Comment) error { return nil },
		deleteFn: func(_ context.Context, _ uuid.UUID) error { return nil },
	}
}

// tweetRepoStub is a stub for repository.TweetRepository.
type tweetRepoStub struct {
	createFn      func(context.Context, *models.Tweet) error
	getByIDFn     func(context.Context, uuid.UUID) (*models.Tweet, error)
	listByOwnerFn func(context.Context, uuid.UUID) ([]models.Tweet, error)
	updateFn      func(context.Context, *models.Tweet) error
	deleteFn      func(context.Context, uuid.UUID) error
}

func (s *tweetRepoStub) Create(ctx context.Context, t *models.Tweet) error { return s.createFn(ctx, t) }
func (s *tweetRepoStub) GetByID(ctx context.Context, id uuid.UUID) (*models.Tweet, error) {
	return s.getByIDFn(ctx, id)
}
func (s *tweetRepoStub) ListByOwner(ctx context.Context, ownerID uuid.UUID) ([]models.Tweet, error) {
	return s.listByOwnerFn(ctx, ownerID)
}
func (s *tweetRepoStub) Update(ctx context.Context, t *models.Tweet) error { return s.updateFn(ctx, t) }
func (s *tweetRepoStub) Delete(ctx context.Context, id uuid.UUID) error  { return s.deleteFn(ctx, id) }

func noopTweetRepo() *tweetRepoStub {
	return &tweetRepoStub{
		createFn: func(_ context.Context, _ *models.Tweet) error { return nil },
		getByIDFn: func(_ context.Context, id uuid.UUID) (*models.Tweet, error) {
			return &models.Tweet{ID: id}, nil
		},
		listByOwnerFn: func(_ context.Context, _ uuid.UUID) ([]models.Tweet, error) { return nil, nil },
		updateFn:      func(_ context.Context, _ *models.Tweet) error { return nil },
		deleteFn:      func(_ context.Context, _ uuid.UUID) error { return nil },
	}
}

// likeRepoStub is a stub for repository.LikeRepository.
type likeRepoStub struct {
	toggleFn         func(context.Context, models.LikeSubject, uuid.UUID, uuid.UUID) (bool, error)
	listVideoLikesFn func(context.Context, uuid.UUID) ([]models.Like, error)
}

func (s *likeRepoStub) Toggle(ctx context.Context, subject models.LikeSubject, subjectID, userID uuid.UUID) (bool, error) {
	return s.toggleFn(ctx, subject, subjectID, userID)
}
func (s *likeRepoStub) ListVideoLikes(ctx context.Context, userID uuid.UUID) ([]models.Like, error) {
	return s.listVideoLikesFn(ctx, userID)
}

// memoryLikeRepo keeps likes keyed by (subject, subject id, user) so toggle
// parity can be checked without a database.
func memoryLikeRepo() *likeRepoStub {
	var mu sync.Mutex
	liked := map[string]bool{}
	key := func(subject models.LikeSubject, subjectID, userID uuid.UUID) string {
		return string(subject) + subjectID.String() + userID.String()
	}
	return &likeRepoStub{
		toggleFn: func(_ context.Context, subject models.LikeSubject, subjectID, userID uuid.UUID) (bool, error) {
			mu.Lock()
			defer mu.Unlock()
			k := key(subject, subjectID, userID)
			liked[k] = !liked[k]
			return liked[k], nil
		},
		listVideoLikesFn: func(_ context.Context, _ uuid.UUID) ([]models.Like, error) { return nil, nil },
	}
}

// playlistRepoStub is a stub for repository.PlaylistRepository.
type playlistRepoStub struct {
	createFn      func(context.Context, *models.Playlist) error
	getByIDFn     func(context.Context, uuid.UUID) (*models.Playlist, error)
	listByOwnerFn func(context.Context, uuid.UUID) ([]models.Playlist, error)
	updateFn      func(context.Context, *models.Playlist) error
	deleteFn      func(context.Context, uuid.UUID) error
	addVideoFn    func(context.Context, uuid.UUID, uuid.UUID) (bool, error)
	removeVideoFn func(context.Context, uuid.UUID, uuid.UUID) (bool, error)
}

func (s *playlistRepoStub) Create(ctx context.Context, p *models.Playlist) error {
	return s.createFn(ctx, p)
}
func (s *playlistRepoStub) GetByID(ctx context.Context, id uuid.UUID) (*models.Playlist, error) {
	return s.getByIDFn(ctx, id)
}
func (s *playlistRepoStub) ListByOwner(ctx context.Context, ownerID uuid.UUID) ([]models.Playlist, error) {
	return s.listByOwnerFn(ctx, ownerID)
}
func (s *playlistRepoStub) Update(ctx context.Context, p *models.Playlist) error {
	return s.updateFn(ctx, p)
}
func (s *playlistRepoStub) Delete(ctx context.Context, id uuid.UUID) error { return s.deleteFn(ctx, id) }
func (s *playlistRepoStub) AddVideo(ctx context.Context, playlistID, videoID uuid.UUID) (bool, error) {
	return s.addVideoFn(ctx, playlistID, videoID)
}
func (s *playlistRepoStub) RemoveVideo(ctx context.Context, playlistID, videoID uuid.UUID) (bool, error) {
	return s.removeVideoFn(ctx, playlistID, videoID)
}

func noopPlaylistRepo() *playlistRepoStub {
	return &playlistRepoStub{
		createFn: func(_ context.Context, _ *models.Playlist) error { return nil },
		getByIDFn: func(_ context.Context, id uuid.UUID) (*models.Playlist, error) {
			return &models.Playlist{ID: id, Videos: []uuid.UUID{}}, nil
		},
		listByOwnerFn: func(_ context.Context, _ uuid.UUID) ([]models.Playlist, error) { return nil, nil },
		updateFn:      func(_ context.Context, _ *models.Playlist) error { return nil },
		deleteFn:      func(_ context.Context, _ uuid.UUID) error { return nil },
		addVideoFn:    func(_ context.Context, _, _ uuid.UUID) (bool, error) { return true, nil },
		removeVideoFn: func(_ context.Context, _, _ uuid.UUID) (bool, error) { return true, nil },
	}
}

// subscriptionRepoStub is a stub for repository.SubscriptionRepository.
type subscriptionRepoStub struct {
	toggleFn            func(context.Context, uuid.UUID, uuid.UUID) (bool, error)
	listSubscribersFn   func(context.Context, uuid.UUID) ([]models.SubscriptionProfile, error)
	listSubscriptionsFn func(context.Context, uuid.UUID) ([]models.SubscriptionProfile, error)
	countSubscribersFn  func(context.Context, uuid.UUID) (int64, error)
}

func (s *subscriptionRepoStub) Toggle(ctx context.Context, subscriberID, channelID uuid.UUID) (bool, error) {
	return s.toggleFn(ctx, subscriberID, channelID)
}
func (s *subscriptionRepoStub) ListSubscribers(ctx context.Context, channelID uuid.UUID) ([]models.SubscriptionProfile, error) {
	return s.listSubscribersFn(ctx, channelID)
}
func (s *subscriptionRepoStub) ListSubscriptions(ctx context.Context, subscriberID uuid.UUID) ([]models.SubscriptionProfile, error) {
	return s.listSubscriptionsFn(ctx, subscriberID)
}
func (s *subscriptionRepoStub) CountSubscribers(ctx context.Context, channelID uuid.UUID) (int64, error) {
	return s.countSubscribersFn(ctx, channelID)
}

func noopSubscriptionRepo() *subscriptionRepoStub {
	return &subscriptionRepoStub{
		toggleFn: func(_ context.Context, _, _ uuid.UUID) (bool, error) { return true, nil },
		listSubscribersFn: func(_ context.Context, _ uuid.UUID) ([]models.SubscriptionProfile, error) {
			return []models.SubscriptionProfile{}, nil
		},
		listSubscriptionsFn: func(_ context.Context, _ uuid.UUID) ([]models.SubscriptionProfile, error) {
			return []models.SubscriptionProfile{}, nil
		},
		countSubscribersFn: func(_ context.Context, _ uuid.UUID) (int64, error) { return 0, nil },
	}
}

// uploaderStub is a stub for MediaUploader that records removed keys.
type uploaderStub struct {
	mu            sync.Mutex
	uploadVideoFn func(context.Context, uuid.UUID, *media.File) (*media.Upload, error)
	uploadImageFn func(context.Context, string, uuid.UUID, *media.File) (*media.Upload, error)
	removed       []string
}

func (s *uploaderStub) UploadVideo(ctx context.Context, ownerID uuid.UUID, f *media.File) (*media.Upload, error) {
	return s.uploadVideoFn(ctx, ownerID, f)
}
func (s *uploaderStub) UploadImage(ctx context.Context, kind string, ownerID uuid.UUID, f *media.File) (*media.Upload, error) {
	return s.uploadImageFn(ctx, kind, ownerID, f)
}
func (s *uploaderStub) Remove(_ context.Context, keys ...string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, k := range keys {
		if k != "" {
			s.removed = append(s.removed, k)
		}
	}
}

func (s *uploaderStub) removedKeys() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.removed...)
}

func noopUploader() *uploaderStub {
	return &uploaderStub{
		uploadVideoFn: func(_ context.Context, _ uuid.UUID, _ *media.File) (*media.Upload, error) {
			return &media.Upload{Key: "videos/v.mp4", URL: "http://cdn/videos/v.mp4", Duration: 42.5}, nil
		},
		uploadImageFn: func(_ context.Context, kind string, _ uuid.UUID, _ *media.File) (*media.Upload, error) {
			return &media.Upload{Key: kind + "/i.webp", URL: "http://cdn/" + kind + "/i.webp"}, nil
		},
	}
}

// publisherStub records published events.
type publisherStub struct {
	mu     sync.Mutex
	events []events.Event
	err    error
}

func (p *publisherStub) Publish(_ context.Context, e events.Event) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.err != nil {
		return p.err
	}
	p.events = append(p.events, e)
	return nil
}

func (p *publisherStub) Close() error { return nil }

func (p *publisherStub) published() []events.Event {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]events.Event(nil), p.events...)
}

func testFile(name string) *media.File {
	return media.NewFile(name, "application/octet-stream", 4, nil)
}

func assertAppError(t *testing.T, err error, code string) {
	t.Helper()
	require.Error(t, err)
	var appErr *models.AppError
	require.True(t, errors.As(err, &appErr), "expected AppError, got %T: %v", err, err)
	require.Equal(t, code, appErr.Code, "message: %s", appErr.Message)
}

func assertNotFound(t *testing.T, err error)     { t.Helper(); assertAppError(t, err, models.CodeNotFound) }
func assertForbidden(t *testing.T, err error)    { t.Helper(); assertAppError(t, err, models.CodeForbidden) }
func assertMissingField(t *testing.T, err error) { t.Helper(); assertAppError(t, err, models.CodeMissingField) }

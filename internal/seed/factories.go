// Package seed provides helpers to create demo data for the application
// database. These helpers are intended for development and testing only.
package seed

import (
	"fmt"
	"log"
	"math/rand"
	"strings"
	"time"

	"vidtube/internal/models"

	"github.com/brianvoe/gofakeit/v6"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// DefaultPassword is the password every seeded account logs in with.
const DefaultPassword = "password123"

// Options tune how the factory generates data.
type Options struct {
	// DryRun builds entities without writing them.
	DryRun bool
	// SkipBcrypt stores DefaultPassword hashed at MinCost for fast local seeding.
	SkipBcrypt bool
	// MaxDays bounds how far back created_at timestamps are spread.
	MaxDays int
}

// Factory builds domain entities and persists them to the database.
type Factory struct {
	db   *gorm.DB
	opts Options
	rnd  *rand.Rand
	hash string
}

// NewFactory creates a new Factory bound to the provided Gorm DB.
func NewFactory(db *gorm.DB, opts Options) *Factory {
	seed := time.Now().UnixNano()
	gofakeit.Seed(seed)
	if opts.MaxDays <= 0 {
		opts.MaxDays = 90
	}
	return &Factory{db: db, opts: opts, rnd: rand.New(rand.NewSource(seed))}
}

func (f *Factory) passwordHash() (string, error) {
	if f.hash != "" {
		return f.hash, nil
	}
	cost := bcrypt.DefaultCost
	if f.opts.SkipBcrypt {
		cost = bcrypt.MinCost
	}
	hashed, err := bcrypt.GenerateFromPassword([]byte(DefaultPassword), cost)
	if err != nil {
		return "", err
	}
	f.hash = string(hashed)
	return f.hash, nil
}

// pastTime returns a random instant within the configured window.
func (f *Factory) pastTime() time.Time {
	back := time.Duration(f.rnd.Intn(f.opts.MaxDays))*24*time.Hour +
		time.Duration(f.rnd.Intn(24))*time.Hour +
		time.Duration(f.rnd.Intn(60))*time.Minute
	return time.Now().Add(-back)
}

// create persists v unless running dry, in which case only the id is assigned.
func (f *Factory) create(v any, assignID func()) error {
	if f.opts.DryRun {
		assignID()
		return nil
	}
	return f.db.Create(v).Error
}

// CreateUser constructs and persists a sample channel owner.
func (f *Factory) CreateUser(overrides ...func(*models.User)) (*models.User, error) {
	hash, err := f.passwordHash()
	if err != nil {
		return nil, err
	}

	person := gofakeit.Person()
	handle := strings.ToLower(fmt.Sprintf("%s%s%d", person.FirstName, person.LastName, gofakeit.Number(100, 9999)))
	user := &models.User{
		Username:   handle,
		Email:      handle + "@" + gofakeit.DomainName(),
		FullName:   person.FirstName + " " + person.LastName,
		Avatar:     fmt.Sprintf("https://i.pravatar.cc/300?u=%s", gofakeit.UUID()),
		CoverImage: fmt.Sprintf("https://picsum.photos/seed/%s/1280/320", gofakeit.UUID()),
		Password:   hash,
		CreatedAt:  f.pastTime(),
	}
	for _, override := range overrides {
		override(user)
	}

	if err := f.create(user, func() { user.ID = uuid.New() }); err != nil {
		return nil, err
	}
	return user, nil
}

// BuildVideo constructs a video for owner without persisting it.
func (f *Factory) BuildVideo(owner *models.User, overrides ...func(*models.Video)) *models.Video {
	seed := gofakeit.UUID()
	video := &models.Video{
		VideoFile:   fmt.Sprintf("https://cdn.example.com/videos/%s.mp4", seed),
		Thumbnail:   fmt.Sprintf("https://picsum.photos/seed/%s/1280/720", seed),
		Title:       strings.TrimSuffix(gofakeit.Sentence(gofakeit.Number(3, 8)), "."),
		Description: gofakeit.Paragraph(1, 3, 12, "\n"),
		Duration:    float64(gofakeit.Number(15, 3600)),
		Views:       int64(gofakeit.Number(0, 250000)),
		IsPublished: f.rnd.Intn(10) > 0,
		OwnerID:     owner.ID,
		CreatedAt:   f.pastTime(),
	}
	for _, override := range overrides {
		override(video)
	}
	return video
}

// CreateVideos persists videos in a single batch.
func (f *Factory) CreateVideos(videos []*models.Video) error {
	if len(videos) == 0 {
		return nil
	}
	if f.opts.DryRun {
		for _, v := range videos {
			v.ID = uuid.New()
		}
		log.Printf("[dry-run] CreateVideos: %d videos (no DB write)", len(videos))
		return nil
	}
	return f.db.Create(&videos).Error
}

// CreateComment persists a comment by author on video.
func (f *Factory) CreateComment(video *models.Video, author *models.User) (*models.Comment, error) {
	comment := &models.Comment{
		Content: gofakeit.Sentence(gofakeit.Number(4, 20)),
		VideoID: video.ID,
		OwnerID: author.ID,
	}
	if err := f.create(comment, func() { comment.ID = uuid.New() }); err != nil {
		return nil, err
	}
	return comment, nil
}

// CreateTweet persists a short post by author.
func (f *Factory) CreateTweet(author *models.User) (*models.Tweet, error) {
	tweet := &models.Tweet{
		Content: gofakeit.HipsterSentence(gofakeit.Number(5, 15)),
		OwnerID: author.ID,
	}
	if err := f.create(tweet, func() { tweet.ID = uuid.New() }); err != nil {
		return nil, err
	}
	return tweet, nil
}

// LikeVideo records user liking video.
func (f *Factory) LikeVideo(video *models.Video, user *models.User) error {
	videoID := video.ID
	like := &models.Like{VideoID: &videoID, LikedBy: user.ID}
	return f.create(like, func() { like.ID = uuid.New() })
}

// Subscribe records subscriber following channel.
func (f *Factory) Subscribe(subscriber, channel *models.User) error {
	sub := &models.Subscription{SubscriberID: subscriber.ID, ChannelID: channel.ID}
	return f.create(sub, func() { sub.ID = uuid.New() })
}

// CreatePlaylist persists a playlist for owner holding videos in order.
func (f *Factory) CreatePlaylist(owner *models.User, videos []*models.Video) (*models.Playlist, error) {
	playlist := &models.Playlist{
		Name: gofakeit.RandomString([]string{"Morning", "Late Night", "Weekend", "Road Trip", "Focus"}) + " " +
			gofakeit.RandomString([]string{"Mix", "Favourites", "Watch Later", "Picks"}),
		Description: gofakeit.Sentence(8),
		OwnerID:     owner.ID,
	}
	if err := f.create(playlist, func() { playlist.ID = uuid.New() }); err != nil {
		return nil, err
	}

	for i, v := range videos {
		entry := &models.PlaylistVideo{PlaylistID: playlist.ID, VideoID: v.ID, Position: i + 1}
		if err := f.create(entry, func() {}); err != nil {
			return nil, err
		}
		playlist.Videos = append(playlist.Videos, v.ID)
	}
	return playlist, nil
}

package seed

import (
	"fmt"
	"log"

	"vidtube/internal/models"

	"gorm.io/gorm"
)

// Plan sizes a seeding run.
type Plan struct {
	Channels         int
	VideosPerChannel int
	// CommentsPerVideo and LikesPerVideo are upper bounds; each video draws a
	// random count up to them.
	CommentsPerVideo int
	LikesPerVideo    int
	TweetsPerChannel int
}

// DefaultPlan is a small but fully connected data set.
var DefaultPlan = Plan{
	Channels:         12,
	VideosPerChannel: 6,
	CommentsPerVideo: 8,
	LikesPerVideo:    6,
	TweetsPerChannel: 3,
}

// Result summarises what a run created.
type Result struct {
	Users     []*models.User
	Videos    []*models.Video
	Comments  int
	Likes     int
	Playlists int
	Tweets    int
	Subs      int
}

// Seeder fills a database according to a Plan.
type Seeder struct {
	db      *gorm.DB
	factory *Factory
}

// NewSeeder creates a Seeder writing to db.
func NewSeeder(db *gorm.DB, opts Options) *Seeder {
	return &Seeder{db: db, factory: NewFactory(db, opts)}
}

// ClearAll removes every row the seeder can create, children first.
func (s *Seeder) ClearAll() error {
	tables := []any{
		&models.PlaylistVideo{},
		&models.Playlist{},
		&models.Like{},
		&models.Comment{},
		&models.Tweet{},
		&models.Subscription{},
		&models.Video{},
		&models.User{},
	}
	for _, t := range tables {
		if err := s.db.Session(&gorm.Session{AllowGlobalUpdate: true}).Delete(t).Error; err != nil {
			return fmt.Errorf("clear %T: %w", t, err)
		}
	}
	log.Println("✓ existing data cleared")
	return nil
}

// Run creates channels with videos, then wires engagement between them:
// every channel subscribes to a random subset of the others, and videos
// collect comments and likes from random users.
func (s *Seeder) Run(plan Plan) (*Result, error) {
	if plan.Channels < 1 {
		return nil, fmt.Errorf("plan needs at least one channel")
	}
	f := s.factory
	res := &Result{}

	for i := 0; i < plan.Channels; i++ {
		u, err := f.CreateUser()
		if err != nil {
			return nil, fmt.Errorf("create user: %w", err)
		}
		res.Users = append(res.Users, u)
	}
	log.Printf("✓ %d channels created", len(res.Users))

	for _, owner := range res.Users {
		batch := make([]*models.Video, 0, plan.VideosPerChannel)
		for j := 0; j < plan.VideosPerChannel; j++ {
			batch = append(batch, f.BuildVideo(owner))
		}
		if err := f.CreateVideos(batch); err != nil {
			return nil, fmt.Errorf("create videos: %w", err)
		}
		res.Videos = append(res.Videos, batch...)

		for j := 0; j < plan.TweetsPerChannel; j++ {
			if _, err := f.CreateTweet(owner); err != nil {
				return nil, fmt.Errorf("create tweet: %w", err)
			}
			res.Tweets++
		}
	}
	log.Printf("✓ %d videos and %d tweets created", len(res.Videos), res.Tweets)

	for _, v := range res.Videos {
		for j := f.rnd.Intn(plan.CommentsPerVideo + 1); j > 0; j-- {
			if _, err := f.CreateComment(v, f.pick(res.Users)); err != nil {
				return nil, fmt.Errorf("create comment: %w", err)
			}
			res.Comments++
		}
		for _, u := range sample(f.rnd, res.Users, f.rnd.Intn(plan.LikesPerVideo+1)) {
			if err := f.LikeVideo(v, u); err != nil {
				return nil, fmt.Errorf("like video: %w", err)
			}
			res.Likes++
		}
	}
	log.Printf("✓ %d comments and %d likes created", res.Comments, res.Likes)

	for _, u := range res.Users {
		for _, channel := range sample(f.rnd, res.Users, f.rnd.Intn(len(res.Users))) {
			if channel.ID == u.ID {
				continue
			}
			if err := f.Subscribe(u, channel); err != nil {
				return nil, fmt.Errorf("subscribe: %w", err)
			}
			res.Subs++
		}

		if picks := sample(f.rnd, res.Videos, 1+f.rnd.Intn(5)); len(picks) > 0 {
			if _, err := f.CreatePlaylist(u, picks); err != nil {
				return nil, fmt.Errorf("create playlist: %w", err)
			}
			res.Playlists++
		}
	}
	log.Printf("✓ %d subscriptions and %d playlists created", res.Subs, res.Playlists)

	return res, nil
}

func (f *Factory) pick(users []*models.User) *models.User {
	return users[f.rnd.Intn(len(users))]
}

// sample returns up to n distinct elements of items in random order.
func sample[T any](rnd interface{ Perm(int) []int }, items []T, n int) []T {
	if n > len(items) {
		n = len(items)
	}
	out := make([]T, 0, n)
	for _, i := range rnd.Perm(len(items))[:n] {
		out = append(out, items[i])
	}
	return out
}

// Command main runs the database seeder for VidTube.
package main

import (
	"flag"
	"log"

	"vidtube/internal/config"
	"vidtube/internal/database"
	"vidtube/internal/seed"

	"github.com/joho/godotenv"
)

func main() {
	plan := seed.DefaultPlan
	flag.IntVar(&plan.Channels, "channels", plan.Channels, "Number of channels (users) to create")
	flag.IntVar(&plan.VideosPerChannel, "videos", plan.VideosPerChannel, "Videos per channel")
	flag.IntVar(&plan.CommentsPerVideo, "comments", plan.CommentsPerVideo, "Maximum comments per video")
	flag.IntVar(&plan.LikesPerVideo, "likes", plan.LikesPerVideo, "Maximum likes per video")
	flag.IntVar(&plan.TweetsPerChannel, "tweets", plan.TweetsPerChannel, "Tweets per channel")
	shouldClean := flag.Bool("clean", true, "Clean database before seeding")
	dryRun := flag.Bool("dry-run", false, "Build data without writing it")
	fast := flag.Bool("fast", true, "Hash the shared password at minimum bcrypt cost")
	flag.Parse()

	log.Println("🌱 Database Seeder")
	log.Println("==================")
	log.Printf("Target: %d channels x %d videos, clean=%v dry-run=%v\n",
		plan.Channels, plan.VideosPerChannel, *shouldClean, *dryRun)

	_ = godotenv.Load()
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	db, err := database.Connect(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	s := seed.NewSeeder(db, seed.Options{DryRun: *dryRun, SkipBcrypt: *fast})

	if *shouldClean && !*dryRun {
		if err := s.ClearAll(); err != nil {
			log.Fatalf("❌ Cleanup failed: %v", err)
		}
	}

	res, err := s.Run(plan)
	if err != nil {
		log.Fatalf("❌ Seeding failed: %v", err)
	}

	log.Printf("✨ All done! %d users, %d videos, %d comments, %d likes, %d subscriptions.",
		len(res.Users), len(res.Videos), res.Comments, res.Likes, res.Subs)
	log.Printf("📧 All test users have the password: %s", seed.DefaultPassword)
}

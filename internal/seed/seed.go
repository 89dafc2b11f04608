package seed

import (
	"context"
	"fmt"
	"log/slog"

	"aerohub/internal/models"
	"aerohub/internal/repository"

	"gorm.io/gorm"
)

// Options controls how much data Run creates.
type Options struct {
	NumUsers    int
	NumPosts    int
	ShouldClean bool
	// MaxDays spreads post creation times over the past N days.
	MaxDays int
}

// Run populates the database with demo users, livery posts, and an
// engagement mesh of likes and favorites. Counters are reconciled at the
// end so the feed sorts behave like production data.
func Run(ctx context.Context, db *gorm.DB, opts Options) error {
	if opts.NumUsers <= 0 {
		opts.NumUsers = 20
	}
	if opts.NumPosts <= 0 {
		opts.NumPosts = 100
	}

	if opts.ShouldClean {
		if err := Clean(db); err != nil {
			return err
		}
	}

	f := NewFactory(db)

	users := make([]*models.User, 0, opts.NumUsers)
	for i := 0; i < opts.NumUsers; i++ {
		user, err := f.CreateUser()
		if err != nil {
			return err
		}
		users = append(users, user)
	}
	slog.Info("seeded users", "count", len(users))

	postRepo := repository.NewPostRepository(db)
	posts := make([]*models.Post, 0, opts.NumPosts)
	for i := 0; i < opts.NumPosts; i++ {
		author := users[f.rng.Intn(len(users))]
		post := f.BuildPost(author, opts.MaxDays)
		if err := postRepo.Create(ctx, post); err != nil {
			return fmt.Errorf("seed post: %w", err)
		}
		posts = append(posts, post)
	}
	slog.Info("seeded posts", "count", len(posts))

	likes, favorites, err := f.seedEngagement(users, posts)
	if err != nil {
		return err
	}

	engagementRepo := repository.NewEngagementRepository(db)
	changed, err := engagementRepo.RecountAll(ctx)
	if err != nil {
		return fmt.Errorf("reconcile counters: %w", err)
	}
	slog.Info("seeded engagement",
		"likes", likes, "favorites", favorites, "counters_updated", changed)
	return nil
}

// seedEngagement inserts membership rows directly. Each user likes
// roughly a third of the posts and favorites roughly a tenth.
func (f *Factory) seedEngagement(users []*models.User, posts []*models.Post) (int, int, error) {
	var likes, favorites int
	for _, user := range users {
		for _, post := range posts {
			if f.rng.Intn(3) == 0 {
				like := &models.Like{UserID: user.ID, PostID: post.ID}
				if err := f.db.Create(like).Error; err != nil {
					return likes, favorites, fmt.Errorf("seed like: %w", err)
				}
				likes++
			}
			if f.rng.Intn(10) == 0 {
				fav := &models.Favorite{UserID: user.ID, PostID: post.ID}
				if err := f.db.Create(fav).Error; err != nil {
					return likes, favorites, fmt.Errorf("seed favorite: %w", err)
				}
				favorites++
			}
		}
	}
	return likes, favorites, nil
}

// Clean removes all seeded rows, children first.
func Clean(db *gorm.DB) error {
	tables := []interface{}{
		&models.Like{},
		&models.Favorite{},
		&models.Livery{},
		&models.Post{},
		&models.User{},
	}
	for _, table := range tables {
		if err := db.Session(&gorm.Session{AllowGlobalUpdate: true}).Delete(table).Error; err != nil {
			return fmt.Errorf("clean %T: %w", table, err)
		}
	}
	return nil
}

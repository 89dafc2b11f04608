// Package service implements the business logic between transport and
// repositories.
package service

import (
	"context"
	"fmt"
	"log/slog"

	"aerohub/internal/models"
	"aerohub/internal/repository"
	"aerohub/internal/storage"
	"aerohub/internal/vehicles"

	"golang.org/x/sync/errgroup"
)

const (
	maxTitleLen       = 80
	maxDescriptionLen = 5000
	maxImageKeys      = 12
	maxLiveryTitleLen = 50
	maxKeyLen         = 20
	maxValueLen       = 20
	maxAdvancedLen    = 500
)

// PostService owns the post lifecycle: validation, ownership enforcement,
// and storage cleanup on delete.
type PostService struct {
	postRepo       repository.PostRepository
	userRepo       repository.UserRepository
	engagementRepo repository.EngagementRepository
	store          storage.ObjectStore
}

func NewPostService(
	postRepo repository.PostRepository,
	userRepo repository.UserRepository,
	engagementRepo repository.EngagementRepository,
	store storage.ObjectStore,
) *PostService {
	return &PostService{
		postRepo:       postRepo,
		userRepo:       userRepo,
		engagementRepo: engagementRepo,
		store:          store,
	}
}

// LiveryInput is one livery configuration in a create or update payload.
type LiveryInput struct {
	Title                 string                  `json:"title"`
	KeyValues             []models.LiveryKeyValue `json:"key_values"`
	AdvancedCustomization string                  `json:"advanced_customization"`
}

type CreatePostInput struct {
	AuthorID    uint
	Title       string
	Description string
	Vehicles    []string
	ImageKeys   []string
	Liveries    []LiveryInput
}

// UpdatePostInput carries a partial edit. Nil fields are left untouched;
// supplying Liveries replaces the whole child set, supplying Vehicles
// recomputes the derived type labels.
type UpdatePostInput struct {
	CallerID    uint
	PostID      uint
	Title       *string
	Description *string
	Vehicles    []string
	ImageKeys   []string
	Liveries    []LiveryInput
}

// PostDetail is the full post view: the post with liveries, signed image
// URLs, author display name, and the caller's engagement flags.
type PostDetail struct {
	models.Post
	ImageURLs   []string `json:"image_urls"`
	AuthorName  string   `json:"author_name"`
	IsLiked     bool     `json:"is_liked"`
	IsFavorited bool     `json:"is_favorited"`
}

func (s *PostService) CreatePost(ctx context.Context, in CreatePostInput) (*models.Post, error) {
	if in.AuthorID == 0 {
		return nil, models.NewAuthenticationError("Authentication required")
	}
	if err := validateTitle(in.Title); err != nil {
		return nil, err
	}
	if err := validateDescription(in.Description); err != nil {
		return nil, err
	}
	if err := validateVehicles(in.Vehicles); err != nil {
		return nil, err
	}
	if err := validateImageKeys(in.ImageKeys); err != nil {
		return nil, err
	}
	liveries, err := validateLiveries(in.Liveries)
	if err != nil {
		return nil, err
	}

	post := &models.Post{
		Title:        in.Title,
		Description:  in.Description,
		Vehicles:     in.Vehicles,
		VehicleTypes: vehicles.TypesOf(in.Vehicles),
		ImageKeys:    in.ImageKeys,
		AuthorID:     in.AuthorID,
		Liveries:     liveries,
	}
	if err := s.postRepo.Create(ctx, post); err != nil {
		return nil, err
	}
	return post, nil
}

// GetPost returns the full detail view. viewerID zero means anonymous: the
// engagement flags stay false. Image signing and engagement lookups fan
// out concurrently.
func (s *PostService) GetPost(ctx context.Context, postID, viewerID uint) (*PostDetail, error) {
	post, err := s.postRepo.GetByID(ctx, postID)
	if err != nil {
		return nil, err
	}

	detail := &PostDetail{Post: *post}
	detail.AuthorName = post.Author.Name()
	if detail.AuthorName == "" {
		if author, err := s.userRepo.GetByID(ctx, post.AuthorID); err == nil {
			detail.AuthorName = author.Name()
		} else {
			detail.AuthorName = "User"
		}
	}

	g, gctx := errgroup.WithContext(ctx)

	urls := make([]string, len(post.ImageKeys))
	for i, key := range post.ImageKeys {
		i, key := i, key
		g.Go(func() error {
			url, err := s.store.PresignGet(gctx, key, storage.DetailURLTTL)
			if err != nil {
				// A single unsignable image should not sink the view.
				slog.WarnContext(gctx, "failed to sign image URL", "key", key, "error", err)
				return nil
			}
			urls[i] = url
			return nil
		})
	}

	if viewerID != 0 {
		g.Go(func() error {
			liked, err := s.engagementRepo.IsLiked(gctx, viewerID, postID)
			if err != nil {
				return err
			}
			detail.IsLiked = liked
			return nil
		})
		g.Go(func() error {
			favorited, err := s.engagementRepo.IsFavorited(gctx, viewerID, postID)
			if err != nil {
				return err
			}
			detail.IsFavorited = favorited
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	detail.ImageURLs = urls
	return detail, nil
}

func (s *PostService) UpdatePost(ctx context.Context, in UpdatePostInput) (*models.Post, error) {
	if in.CallerID == 0 {
		return nil, models.NewAuthenticationError("Authentication required")
	}
	post, err := s.postRepo.GetByID(ctx, in.PostID)
	if err != nil {
		return nil, err
	}
	if post.AuthorID != in.CallerID {
		return nil, models.NewAuthorizationError("You can only edit your own posts")
	}

	if in.Title != nil {
		if err := validateTitle(*in.Title); err != nil {
			return nil, err
		}
		post.Title = *in.Title
	}
	if in.Description != nil {
		if err := validateDescription(*in.Description); err != nil {
			return nil, err
		}
		post.Description = *in.Description
	}
	if in.Vehicles != nil {
		if err := validateVehicles(in.Vehicles); err != nil {
			return nil, err
		}
		post.Vehicles = in.Vehicles
		post.VehicleTypes = vehicles.TypesOf(in.Vehicles)
		// Edits through the current shape retire the legacy columns.
		post.Vehicle = ""
		post.VehicleType = ""
	}
	if in.ImageKeys != nil {
		if err := validateImageKeys(in.ImageKeys); err != nil {
			return nil, err
		}
		post.ImageKeys = in.ImageKeys
	}
	if in.Liveries != nil {
		liveries, err := validateLiveries(in.Liveries)
		if err != nil {
			return nil, err
		}
		post.Liveries = liveries
	}

	if err := s.postRepo.Update(ctx, post); err != nil {
		return nil, err
	}
	return post, nil
}

// DeletePost removes the post and best-effort deletes its image blobs.
// Record deletion and blob deletion are not transactional: a blob failure
// after the record is gone leaves orphaned storage, which is logged and
// accepted.
func (s *PostService) DeletePost(ctx context.Context, postID, callerID uint) ([]string, error) {
	if callerID == 0 {
		return nil, models.NewAuthenticationError("Authentication required")
	}
	post, err := s.postRepo.GetByID(ctx, postID)
	if err != nil {
		return nil, err
	}
	if post.AuthorID != callerID {
		return nil, models.NewAuthorizationError("You can only delete your own posts")
	}

	imageKeys, err := s.postRepo.Delete(ctx, postID)
	if err != nil {
		return nil, err
	}

	if len(imageKeys) > 0 {
		if err := s.store.DeleteMany(ctx, imageKeys); err != nil {
			slog.WarnContext(ctx, "failed to delete image blobs for removed post",
				"post_id", postID, "keys", len(imageKeys), "error", err)
		}
	}
	return imageKeys, nil
}

func validateTitle(title string) error {
	if title == "" {
		return models.NewValidationError("Title is required")
	}
	if len(title) > maxTitleLen {
		return models.NewValidationError(fmt.Sprintf("Title too long (max %d characters)", maxTitleLen))
	}
	return nil
}

func validateDescription(description string) error {
	if len(description) > maxDescriptionLen {
		return models.NewValidationError(fmt.Sprintf("Description too long (max %d characters)", maxDescriptionLen))
	}
	return nil
}

func validateVehicles(names []string) error {
	if len(names) == 0 {
		return models.NewValidationError("At least one vehicle is required")
	}
	for _, name := range names {
		if !vehicles.IsKnown(name) {
			return models.NewValidationError(fmt.Sprintf("Unknown vehicle: %s", name))
		}
	}
	return nil
}

func validateImageKeys(keys []string) error {
	if len(keys) == 0 {
		return models.NewValidationError("At least one image is required")
	}
	if len(keys) > maxImageKeys {
		return models.NewValidationError(fmt.Sprintf("Too many images (max %d)", maxImageKeys))
	}
	return nil
}

func validateLiveries(inputs []LiveryInput) ([]models.Livery, error) {
	if len(inputs) == 0 {
		return nil, models.NewValidationError("At least one livery is required")
	}

	liveries := make([]models.Livery, 0, len(inputs))
	for idx, in := range inputs {
		if len(in.Title) > maxLiveryTitleLen {
			return nil, models.NewValidationError(fmt.Sprintf("Livery %d: title too long (max %d characters)", idx+1, maxLiveryTitleLen))
		}
		if len(in.AdvancedCustomization) > maxAdvancedLen {
			return nil, models.NewValidationError(fmt.Sprintf("Livery %d: advanced customization too long (max %d characters)", idx+1, maxAdvancedLen))
		}

		hasEntry := false
		for _, kv := range in.KeyValues {
			if kv.Key == "" {
				continue
			}
			hasEntry = true
			if len(kv.Key) > maxKeyLen {
				return nil, models.NewValidationError(fmt.Sprintf("Livery %d: key too long (max %d characters)", idx+1, maxKeyLen))
			}
			if len(kv.Value) > maxValueLen {
				return nil, models.NewValidationError(fmt.Sprintf("Livery %d: value too long (max %d characters)", idx+1, maxValueLen))
			}
			if !isNumericString(kv.Value) {
				return nil, models.NewValidationError(fmt.Sprintf("Livery %d: value for %q must be numeric", idx+1, kv.Key))
			}
		}
		if !hasEntry && in.AdvancedCustomization == "" {
			return nil, models.NewValidationError(fmt.Sprintf("Livery %d: at least one key/value entry is required", idx+1))
		}

		liveries = append(liveries, models.Livery{
			Title:                 in.Title,
			KeyValues:             in.KeyValues,
			AdvancedCustomization: in.AdvancedCustomization,
		})
	}
	return liveries, nil
}

// isNumericString accepts decimal digit strings. Values are in-game IDs
// large enough to lose precision as JSON numbers, so they travel as strings
// but must still look like numbers.
func isNumericString(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

package service

import (
	"context"

	"aerohub/internal/middleware"
	"aerohub/internal/models"
	"aerohub/internal/repository"
)

// EngagementService fronts the like/favorite toggles with authentication
// and existence checks.
type EngagementService struct {
	postRepo       repository.PostRepository
	engagementRepo repository.EngagementRepository
}

func NewEngagementService(postRepo repository.PostRepository, engagementRepo repository.EngagementRepository) *EngagementService {
	return &EngagementService{postRepo: postRepo, engagementRepo: engagementRepo}
}

// ToggleResult is the post-toggle truth the client reconciles against.
type ToggleResult struct {
	Active bool `json:"active"`
	Count  int  `json:"count"`
}

func (s *EngagementService) ToggleLike(ctx context.Context, userID, postID uint) (*ToggleResult, error) {
	return s.toggle(ctx, userID, postID, "like", s.engagementRepo.ToggleLike)
}

func (s *EngagementService) ToggleFavorite(ctx context.Context, userID, postID uint) (*ToggleResult, error) {
	return s.toggle(ctx, userID, postID, "favorite", s.engagementRepo.ToggleFavorite)
}

func (s *EngagementService) toggle(
	ctx context.Context,
	userID, postID uint,
	kind string,
	fn func(ctx context.Context, userID, postID uint) (bool, int, error),
) (*ToggleResult, error) {
	if userID == 0 {
		return nil, models.NewAuthenticationError("Authentication required")
	}
	if _, err := s.postRepo.GetByID(ctx, postID); err != nil {
		return nil, err
	}

	active, count, err := fn(ctx, userID, postID)
	if err != nil {
		return nil, err
	}

	direction := "off"
	if active {
		direction = "on"
	}
	middleware.EngagementToggles.WithLabelValues(kind, direction).Inc()

	return &ToggleResult{Active: active, Count: count}, nil
}

// IsLiked reports the caller's like membership. Anonymous callers are never
// liked.
func (s *EngagementService) IsLiked(ctx context.Context, userID, postID uint) (bool, error) {
	if userID == 0 {
		return false, nil
	}
	return s.engagementRepo.IsLiked(ctx, userID, postID)
}

// IsFavorited mirrors IsLiked for favorites.
func (s *EngagementService) IsFavorited(ctx context.Context, userID, postID uint) (bool, error) {
	if userID == 0 {
		return false, nil
	}
	return s.engagementRepo.IsFavorited(ctx, userID, postID)
}

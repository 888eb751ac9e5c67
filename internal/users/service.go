package users

import (
	"context"

	"github.com/conduitapp/articled/internal/models"
)

// Service encapsulates user-directory logic consumed by the article service
// and the profile handlers.
type Service struct {
	repo UserRepository
}

func NewService(r UserRepository) *Service {
	return &Service{repo: r}
}

func (s *Service) GetByID(ctx context.Context, id string) (*models.User, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *Service) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	return s.repo.GetByUsername(ctx, username)
}

func (s *Service) FindByIDs(ctx context.Context, ids []string) ([]*models.User, error) {
	return s.repo.FindByIDs(ctx, ids)
}

// FavoritesUnion resolves each username's favorite set and returns the
// union, deduplicated. Unknown usernames contribute an empty set rather
// than an error, so one bad name never poisons the query.
func (s *Service) FavoritesUnion(ctx context.Context, usernames []string) ([]string, error) {
	found, err := s.repo.FindByUsernames(ctx, usernames)
	if err != nil {
		return nil, err
	}
	seen := map[string]bool{}
	union := []string{}
	for _, u := range found {
		for _, id := range u.Favorites {
			if !seen[id] {
				seen[id] = true
				union = append(union, id)
			}
		}
	}
	return union, nil
}

func (s *Service) AddFavorite(ctx context.Context, userID, articleID string) error {
	return s.repo.AddFavorite(ctx, userID, articleID)
}

func (s *Service) RemoveFavorite(ctx context.Context, userID, articleID string) error {
	return s.repo.RemoveFavorite(ctx, userID, articleID)
}

// PurgeFavorite removes a deleted article from every user's favorites view.
func (s *Service) PurgeFavorite(ctx context.Context, articleID string) error {
	return s.repo.RemoveFavoriteFromAll(ctx, articleID)
}

// Follow makes the viewer follow the named user and returns the target.
// Returns (nil, nil) when the target does not exist.
func (s *Service) Follow(ctx context.Context, viewerID, username string) (*models.User, error) {
	target, err := s.repo.GetByUsername(ctx, username)
	if err != nil || target == nil {
		return nil, err
	}
	if err := s.repo.Follow(ctx, viewerID, target.ID); err != nil {
		return nil, err
	}
	return target, nil
}

// Unfollow removes the named user from the viewer's following set.
func (s *Service) Unfollow(ctx context.Context, viewerID, username string) (*models.User, error) {
	target, err := s.repo.GetByUsername(ctx, username)
	if err != nil || target == nil {
		return nil, err
	}
	if err := s.repo.Unfollow(ctx, viewerID, target.ID); err != nil {
		return nil, err
	}
	return target, nil
}

package users

import (
	"context"
	"sync"

	"github.com/conduitapp/articled/internal/models"
)

// MemoryUserRepository is an in-memory UserRepository for the dev entrypoint
// and tests. Seed it with Put.
type MemoryUserRepository struct {
	mu    sync.RWMutex
	byID  map[string]*models.User
	byName map[string]*models.User
}

func NewMemoryUserRepository() *MemoryUserRepository {
	return &MemoryUserRepository{byID: map[string]*models.User{}, byName: map[string]*models.User{}}
}

// Put inserts or replaces a user record.
func (r *MemoryUserRepository) Put(u *models.User) {
	r.mu.Lock()
	defer r.mu.Unlock()
	cp := *u
	r.byID[u.ID] = &cp
	r.byName[u.Username] = &cp
}

func (r *MemoryUserRepository) GetByID(ctx context.Context, id string) (*models.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if u, ok := r.byID[id]; ok {
		cp := *u
		return &cp, nil
	}
	return nil, nil
}

func (r *MemoryUserRepository) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if u, ok := r.byName[username]; ok {
		cp := *u
		return &cp, nil
	}
	return nil, nil
}

func (r *MemoryUserRepository) FindByUsernames(ctx context.Context, usernames []string) ([]*models.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := []*models.User{}
	for _, name := range usernames {
		if u, ok := r.byName[name]; ok {
			cp := *u
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (r *MemoryUserRepository) FindByIDs(ctx context.Context, ids []string) ([]*models.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := []*models.User{}
	for _, id := range ids {
		if u, ok := r.byID[id]; ok {
			cp := *u
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (r *MemoryUserRepository) AddFavorite(ctx context.Context, userID, articleID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.byID[userID]
	if !ok {
		return ErrNotFound
	}
	if !u.HasFavorited(articleID) {
		u.Favorites = append(u.Favorites, articleID)
	}
	return nil
}

func (r *MemoryUserRepository) RemoveFavorite(ctx context.Context, userID, articleID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.byID[userID]
	if !ok {
		return ErrNotFound
	}
	removeString(&u.Favorites, articleID)
	return nil
}

func (r *MemoryUserRepository) RemoveFavoriteFromAll(ctx context.Context, articleID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.byID {
		removeString(&u.Favorites, articleID)
	}
	return nil
}

func (r *MemoryUserRepository) Follow(ctx context.Context, userID, targetID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.byID[userID]
	if !ok {
		return ErrNotFound
	}
	if !u.IsFollowing(targetID) {
		u.Following = append(u.Following, targetID)
	}
	return nil
}

func (r *MemoryUserRepository) Unfollow(ctx context.Context, userID, targetID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.byID[userID]
	if !ok {
		return ErrNotFound
	}
	removeString(&u.Following, targetID)
	return nil
}

func removeString(s *[]string, v string) {
	kept := (*s)[:0]
	for _, x := range *s {
		if x != v {
			kept = append(kept, x)
		}
	}
	*s = kept
}

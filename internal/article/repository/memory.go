package repository

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/conduitapp/articled/internal/article"
	"github.com/google/uuid"
)

// MemoryRepo is an in-memory ArticleRepository used by the dev entrypoint
// and unit tests. It mirrors the Mongo repo's ordering and uniqueness
// semantics, including the atomic slug check under the write lock.
type MemoryRepo struct {
	mu    sync.RWMutex
	store map[string]*article.Article // keyed by slug
}

func NewMemoryRepo() *MemoryRepo {
	return &MemoryRepo{store: make(map[string]*article.Article)}
}

func matches(a *article.Article, f article.Filter) bool {
	if len(f.Tags) > 0 {
		found := false
		for _, want := range f.Tags {
			for _, have := range a.TagList {
				if want == have {
					found = true
				}
			}
		}
		if !found {
			return false
		}
	}
	if f.AuthorIDs != nil {
		found := false
		for _, id := range f.AuthorIDs {
			if a.AuthorID == id {
				found = true
			}
		}
		if !found {
			return false
		}
	}
	if f.IDs != nil {
		found := false
		for _, id := range f.IDs {
			if a.ID == id {
				found = true
			}
		}
		if !found {
			return false
		}
	}
	return true
}

// matching returns all matches sorted newest-first, ID desc as tie-break.
func (m *MemoryRepo) matching(f article.Filter) []*article.Article {
	out := []*article.Article{}
	for _, a := range m.store {
		if matches(a, f) {
			out = append(out, a)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].CreatedAt.After(out[j].CreatedAt)
		}
		return out[i].ID > out[j].ID
	})
	return out
}

func (m *MemoryRepo) Find(ctx context.Context, f article.Filter, limit, offset int64) ([]*article.Article, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	all := m.matching(f)
	if offset >= int64(len(all)) {
		return []*article.Article{}, nil
	}
	all = all[offset:]
	if limit < int64(len(all)) {
		all = all[:limit]
	}
	out := make([]*article.Article, len(all))
	for i, a := range all {
		cp := *a
		out[i] = &cp
	}
	return out, nil
}

func (m *MemoryRepo) Count(ctx context.Context, f article.Filter) (int64, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return int64(len(m.matching(f))), nil
}

func (m *MemoryRepo) GetBySlug(ctx context.Context, slug string) (*article.Article, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if a, ok := m.store[slug]; ok {
		cp := *a
		return &cp, nil
	}
	return nil, ErrNotFound
}

func (m *MemoryRepo) Insert(ctx context.Context, a *article.Article) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.store[a.Slug]; ok {
		return ErrDuplicateSlug
	}
	if a.ID == "" {
		a.ID = uuid.NewString()
	}
	// preserve caller-provided timestamps so tests can pin creation order
	if a.CreatedAt.IsZero() {
		a.CreatedAt = time.Now().UTC()
	}
	if a.UpdatedAt.IsZero() {
		a.UpdatedAt = a.CreatedAt
	}
	cp := *a
	m.store[a.Slug] = &cp
	return nil
}

func (m *MemoryRepo) Update(ctx context.Context, slug string, ch article.Changes) (*article.Article, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	a, ok := m.store[slug]
	if !ok {
		return nil, ErrNotFound
	}
	if ch.Title != nil {
		a.Title = *ch.Title
	}
	if ch.Description != nil {
		a.Description = *ch.Description
	}
	if ch.Body != nil {
		a.Body = *ch.Body
	}
	if ch.TagList != nil {
		a.TagList = *ch.TagList
	}
	a.UpdatedAt = time.Now().UTC()
	cp := *a
	return &cp, nil
}

func (m *MemoryRepo) DeleteBySlug(ctx context.Context, slug string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.store[slug]; !ok {
		return ErrNotFound
	}
	delete(m.store, slug)
	return nil
}

func (m *MemoryRepo) AddFavorite(ctx context.Context, slug, userID string) (*article.Article, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	a, ok := m.store[slug]
	if !ok {
		return nil, ErrNotFound
	}
	present := false
	for _, id := range a.FavoritedBy {
		if id == userID {
			present = true
		}
	}
	if !present {
		a.FavoritedBy = append(a.FavoritedBy, userID)
	}
	cp := *a
	return &cp, nil
}

func (m *MemoryRepo) RemoveFavorite(ctx context.Context, slug, userID string) (*article.Article, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	a, ok := m.store[slug]
	if !ok {
		return nil, ErrNotFound
	}
	kept := a.FavoritedBy[:0]
	for _, id := range a.FavoritedBy {
		if id != userID {
			kept = append(kept, id)
		}
	}
	a.FavoritedBy = kept
	cp := *a
	return &cp, nil
}

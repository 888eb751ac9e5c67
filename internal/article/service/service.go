package service

import (
	"context"
	"strings"

	"github.com/conduitapp/articled/internal/article"
	"github.com/conduitapp/articled/internal/article/repository"
	"github.com/conduitapp/articled/internal/models"
	"github.com/conduitapp/articled/internal/users"
	"github.com/conduitapp/articled/pkg/logger"
	"github.com/conduitapp/articled/pkg/metrics"
	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
)

// slugRetries bounds how often Create re-suffixes a colliding slug before
// giving up with ErrConflict.
const slugRetries = 3

// Service orchestrates the article store, the user directory and the
// presenter. Viewer identity arrives as a user ID string; the empty string
// means anonymous.
type Service struct {
	repo  repository.ArticleRepository
	users *users.Service
}

func NewService(repo repository.ArticleRepository, us *users.Service) *Service {
	return &Service{repo: repo, users: us}
}

// ListResult is the list response shape. ArticlesCount is the size of the
// whole matching set, independent of pagination.
type ListResult struct {
	Articles      []article.Payload `json:"articles"`
	ArticlesCount int64             `json:"articlesCount"`
}

// CreateInput is the request body for Create.
type CreateInput struct {
	Title       string
	Description string
	Body        string
	TagList     []string
}

// resolveViewer loads the acting user record, or returns nil for anonymous
// viewers. The lookup always completes before any rendering starts.
func (s *Service) resolveViewer(ctx context.Context, viewerID string) (*models.User, error) {
	if viewerID == "" {
		return nil, nil
	}
	return s.users.GetByID(ctx, viewerID)
}

// renderAll loads the authors referenced by the page in one batch and
// renders every article for the viewer.
func (s *Service) renderAll(ctx context.Context, arts []*article.Article, viewer *models.User) ([]article.Payload, error) {
	idSet := map[string]bool{}
	ids := []string{}
	for _, a := range arts {
		if !idSet[a.AuthorID] {
			idSet[a.AuthorID] = true
			ids = append(ids, a.AuthorID)
		}
	}
	authors, err := s.users.FindByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}
	byID := map[string]*models.User{}
	for _, u := range authors {
		byID[u.ID] = u
	}
	out := make([]article.Payload, 0, len(arts))
	for _, a := range arts {
		out = append(out, article.NewPayload(a, byID[a.AuthorID], viewer))
	}
	return out, nil
}

// List returns one page of matching articles plus the unpaginated total.
// The filter lookups run concurrently, then count and page fetch run
// concurrently; everything joins before assembly.
func (s *Service) List(ctx context.Context, p ListParams, viewerID string) (*ListResult, error) {
	p.normalize()

	var (
		filter article.Filter
		viewer *models.User
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		filter, err = s.buildFilter(gctx, p)
		return err
	})
	g.Go(func() error {
		var err error
		viewer, err = s.resolveViewer(gctx, viewerID)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	return s.page(ctx, filter, p.Limit, p.Offset, viewer)
}

// Feed returns the viewer's personal feed: articles authored by users the
// viewer follows, newest first.
func (s *Service) Feed(ctx context.Context, p ListParams, viewerID string) (*ListResult, error) {
	p.normalize()
	viewer, err := s.resolveViewer(ctx, viewerID)
	if err != nil {
		return nil, err
	}
	following := []string{}
	if viewer != nil {
		following = append(following, viewer.Following...)
	}
	// non-nil AuthorIDs: following nobody means an empty feed, not all articles
	return s.page(ctx, article.Filter{AuthorIDs: following}, p.Limit, p.Offset, viewer)
}

func (s *Service) page(ctx context.Context, filter article.Filter, limit, offset int64, viewer *models.User) (*ListResult, error) {
	var (
		total int64
		arts  []*article.Article
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		total, err = s.repo.Count(gctx, filter)
		return err
	})
	g.Go(func() error {
		var err error
		arts, err = s.repo.Find(gctx, filter, limit, offset)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	payloads, err := s.renderAll(ctx, arts, viewer)
	if err != nil {
		return nil, err
	}
	return &ListResult{Articles: payloads, ArticlesCount: total}, nil
}

// Get returns a single rendered article or ErrNotFound.
func (s *Service) Get(ctx context.Context, slug, viewerID string) (*article.Payload, error) {
	a, err := s.repo.GetBySlug(ctx, slug)
	if err != nil {
		if err == repository.ErrNotFound {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return s.render(ctx, a, viewerID)
}

// render resolves author and viewer concurrently and renders one article.
func (s *Service) render(ctx context.Context, a *article.Article, viewerID string) (*article.Payload, error) {
	var (
		author *models.User
		viewer *models.User
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		author, err = s.users.GetByID(gctx, a.AuthorID)
		return err
	})
	g.Go(func() error {
		var err error
		viewer, err = s.resolveViewer(gctx, viewerID)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}
	p := article.NewPayload(a, author, viewer)
	return &p, nil
}

// Create validates the input, derives the slug from the title and inserts
// the article. Validation failures list every offending field and leave the
// store untouched. Slug collisions are resolved by retrying with a short
// random suffix (availability over rejection).
func (s *Service) Create(ctx context.Context, in CreateInput, authorID string) (*article.Payload, error) {
	missing := []string{}
	if strings.TrimSpace(in.Title) == "" {
		missing = append(missing, "title")
	}
	if strings.TrimSpace(in.Description) == "" {
		missing = append(missing, "description")
	}
	if strings.TrimSpace(in.Body) == "" {
		missing = append(missing, "body")
	}
	if len(missing) > 0 {
		return nil, &ValidationError{Missing: missing}
	}

	a := &article.Article{
		ID:          uuid.NewString(),
		Slug:        article.Slugify(in.Title),
		Title:       in.Title,
		Description: in.Description,
		Body:        in.Body,
		TagList:     in.TagList,
		AuthorID:    authorID,
	}

	base := a.Slug
	var err error
	for attempt := 0; attempt <= slugRetries; attempt++ {
		if attempt > 0 {
			a.Slug = article.SuffixSlug(base)
		}
		err = s.repo.Insert(ctx, a)
		if err == nil {
			break
		}
		if err != repository.ErrDuplicateSlug {
			return nil, err
		}
	}
	if err == repository.ErrDuplicateSlug {
		logger.Warnf("slug %q still colliding after %d retries", base, slugRetries)
		return nil, ErrConflict
	}

	metrics.ArticlesCreated.Inc()
	return s.render(ctx, a, authorID)
}

// Update applies a partial edit. Only the author may edit; slug and author
// are immutable. Fields that are present but empty are rejected the same
// way Create rejects them.
func (s *Service) Update(ctx context.Context, slug string, ch article.Changes, viewerID string) (*article.Payload, error) {
	a, err := s.repo.GetBySlug(ctx, slug)
	if err != nil {
		if err == repository.ErrNotFound {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if a.AuthorID != viewerID {
		return nil, ErrForbidden
	}

	missing := []string{}
	if ch.Title != nil && strings.TrimSpace(*ch.Title) == "" {
		missing = append(missing, "title")
	}
	if ch.Description != nil && strings.TrimSpace(*ch.Description) == "" {
		missing = append(missing, "description")
	}
	if ch.Body != nil && strings.TrimSpace(*ch.Body) == "" {
		missing = append(missing, "body")
	}
	if len(missing) > 0 {
		return nil, &ValidationError{Missing: missing}
	}

	updated, err := s.repo.Update(ctx, slug, ch)
	if err != nil {
		if err == repository.ErrNotFound {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return s.render(ctx, updated, viewerID)
}

// Delete removes the viewer's own article and purges it from every user's
// favorites view so no dangling references remain.
func (s *Service) Delete(ctx context.Context, slug, viewerID string) error {
	a, err := s.repo.GetBySlug(ctx, slug)
	if err != nil {
		if err == repository.ErrNotFound {
			return ErrNotFound
		}
		return err
	}
	if a.AuthorID != viewerID {
		return ErrForbidden
	}
	if err := s.repo.DeleteBySlug(ctx, slug); err != nil {
		if err == repository.ErrNotFound {
			return ErrNotFound
		}
		return err
	}
	if err := s.users.PurgeFavorite(ctx, a.ID); err != nil {
		// the article is gone; a failed purge leaves stale favorite entries
		// that the presenter tolerates, so log instead of failing the delete
		logger.Errorf("purging favorites for deleted article %s: %v", a.ID, err)
	}
	metrics.ArticlesDeleted.Inc()
	return nil
}

// Favorite marks the article as a favorite of the viewer. The article's
// favorited-by set is the source of truth; the user's favorites view is
// updated alongside it.
func (s *Service) Favorite(ctx context.Context, slug, viewerID string) (*article.Payload, error) {
	a, err := s.repo.AddFavorite(ctx, slug, viewerID)
	if err != nil {
		if err == repository.ErrNotFound {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if err := s.users.AddFavorite(ctx, viewerID, a.ID); err != nil {
		return nil, err
	}
	return s.render(ctx, a, viewerID)
}

// Unfavorite removes the article from the viewer's favorites.
func (s *Service) Unfavorite(ctx context.Context, slug, viewerID string) (*article.Payload, error) {
	a, err := s.repo.RemoveFavorite(ctx, slug, viewerID)
	if err != nil {
		if err == repository.ErrNotFound {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if err := s.users.RemoveFavorite(ctx, viewerID, a.ID); err != nil {
		return nil, err
	}
	return s.render(ctx, a, viewerID)
}

package repository

import (
	"context"
	"errors"

	"github.com/conduitapp/articled/internal/article"
)

var (
	ErrNotFound      = errors.New("article not found")
	ErrDuplicateSlug = errors.New("slug already exists")
)

// ArticleRepository is the persistence contract for articles. Find returns
// pages ordered by creation time descending, ID descending as the tie-break
// for equal timestamps, so pagination is stable. Insert relies on an atomic
// uniqueness constraint on the slug and reports ErrDuplicateSlug on
// collision; there is no check-then-insert window.
type ArticleRepository interface {
	Find(ctx context.Context, f article.Filter, limit, offset int64) ([]*article.Article, error)
	Count(ctx context.Context, f article.Filter) (int64, error)
	GetBySlug(ctx context.Context, slug string) (*article.Article, error)
	Insert(ctx context.Context, a *article.Article) error
	Update(ctx context.Context, slug string, ch article.Changes) (*article.Article, error)
	DeleteBySlug(ctx context.Context, slug string) error
	AddFavorite(ctx context.Context, slug, userID string) (*article.Article, error)
	RemoveFavorite(ctx context.Context, slug, userID string) (*article.Article, error)
}

package service

import (
	"context"

	"github.com/conduitapp/articled/internal/article"
	"golang.org/x/sync/errgroup"
)

const (
	// DefaultLimit applies when the client sends no limit.
	DefaultLimit = 20
	// MaxLimit bounds a single page so one request cannot force an
	// unbounded scan.
	MaxLimit = 100
)

// ListParams are the raw list filters from the request. Multiple tags and
// multiple favorited usernames are each combined with OR inside their
// dimension; the dimensions combine with AND.
type ListParams struct {
	Tags        []string
	Author      string
	FavoritedBy []string
	Limit       int64
	Offset      int64
}

// normalize clamps pagination to sane bounds.
func (p *ListParams) normalize() {
	if p.Limit <= 0 {
		p.Limit = DefaultLimit
	}
	if p.Limit > MaxLimit {
		p.Limit = MaxLimit
	}
	if p.Offset < 0 {
		p.Offset = 0
	}
}

// buildFilter translates request parameters into a store filter. The author
// and favorited-by lookups are independent and run concurrently.
//
// Contract notes:
//   - an unknown author username yields a filter that matches nothing, never
//     an unfiltered query;
//   - favorited-by resolves to the union of the named users' favorite sets,
//     and unknown usernames contribute empty sets, not errors.
func (s *Service) buildFilter(ctx context.Context, p ListParams) (article.Filter, error) {
	f := article.Filter{Tags: p.Tags}

	g, gctx := errgroup.WithContext(ctx)

	if p.Author != "" {
		g.Go(func() error {
			author, err := s.users.GetByUsername(gctx, p.Author)
			if err != nil {
				return err
			}
			if author == nil {
				f.AuthorIDs = []string{}
				return nil
			}
			f.AuthorIDs = []string{author.ID}
			return nil
		})
	}

	if len(p.FavoritedBy) > 0 {
		g.Go(func() error {
			ids, err := s.users.FavoritesUnion(gctx, p.FavoritedBy)
			if err != nil {
				return err
			}
			if ids == nil {
				ids = []string{}
			}
			f.IDs = ids
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return article.Filter{}, err
	}
	return f, nil
}

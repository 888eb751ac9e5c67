package article

import (
	"testing"

	"github.com/conduitapp/articled/internal/models"
	"github.com/stretchr/testify/assert"
)

func TestNewPayload_AnonymousViewer(t *testing.T) {
	a := &Article{ID: "a1", Slug: "s", Title: "T", AuthorID: "u1", FavoritedBy: []string{"u2", "u3"}}
	author := &models.User{ID: "u1", Username: "josh", Bio: "bio"}

	p := NewPayload(a, author, nil)

	assert.False(t, p.Favorited, "anonymous viewers never see favorited=true")
	assert.False(t, p.Author.Following)
	assert.Equal(t, 2, p.FavoritesCount, "count is viewer-independent")
	assert.Equal(t, "josh", p.Author.Username)
	assert.NotNil(t, p.TagList, "tagList renders as [] not null")
}

func TestNewPayload_ViewerContext(t *testing.T) {
	a := &Article{ID: "a1", Slug: "s", AuthorID: "u1", FavoritedBy: []string{"u2"}}
	author := &models.User{ID: "u1", Username: "josh"}
	viewer := &models.User{ID: "u2", Username: "ana", Favorites: []string{"a1"}, Following: []string{"u1"}}

	p := NewPayload(a, author, viewer)
	assert.True(t, p.Favorited)
	assert.True(t, p.Author.Following)
	assert.Equal(t, 1, p.FavoritesCount)

	// a different viewer sees the same count but different flags
	other := &models.User{ID: "u9", Username: "zed"}
	q := NewPayload(a, author, other)
	assert.False(t, q.Favorited)
	assert.False(t, q.Author.Following)
	assert.Equal(t, p.FavoritesCount, q.FavoritesCount)
}

func TestNewPayload_MissingAuthor(t *testing.T) {
	a := &Article{ID: "a1", Slug: "s", AuthorID: "gone"}
	p := NewPayload(a, nil, nil)
	assert.Equal(t, "", p.Author.Username)
	assert.Equal(t, 0, p.FavoritesCount)
}

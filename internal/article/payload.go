package article

import (
	"time"

	"github.com/conduitapp/articled/internal/models"
)

// AuthorProfile is the author summary embedded in an article payload.
type AuthorProfile struct {
	Username  string `json:"username"`
	Bio       string `json:"bio,omitempty"`
	Image     string `json:"image,omitempty"`
	Following bool   `json:"following"`
}

// Payload is the rendered, viewer-contextualized representation of an
// article as returned over the API. FavoritesCount is derived from the
// article alone; Favorited and Author.Following depend on the viewer and are
// always false for anonymous requests.
type Payload struct {
	Slug           string        `json:"slug"`
	Title          string        `json:"title"`
	Description    string        `json:"description"`
	Body           string        `json:"body"`
	TagList        []string      `json:"tagList"`
	CreatedAt      time.Time     `json:"createdAt"`
	UpdatedAt      time.Time     `json:"updatedAt"`
	Favorited      bool          `json:"favorited"`
	FavoritesCount int           `json:"favoritesCount"`
	Author         AuthorProfile `json:"author"`
}

// NewPayload renders an article for the given viewer. viewer may be nil
// (anonymous). author may be nil when the referenced user no longer exists;
// the payload then carries an empty author summary rather than failing the
// whole response.
func NewPayload(a *Article, author *models.User, viewer *models.User) Payload {
	p := Payload{
		Slug:           a.Slug,
		Title:          a.Title,
		Description:    a.Description,
		Body:           a.Body,
		TagList:        a.TagList,
		CreatedAt:      a.CreatedAt,
		UpdatedAt:      a.UpdatedAt,
		FavoritesCount: len(a.FavoritedBy),
	}
	if p.TagList == nil {
		p.TagList = []string{}
	}
	if author != nil {
		p.Author = AuthorProfile{Username: author.Username, Bio: author.Bio, Image: author.Image}
	}
	if viewer != nil {
		p.Favorited = viewer.HasFavorited(a.ID)
		p.Author.Following = viewer.IsFollowing(a.AuthorID)
	}
	return p
}

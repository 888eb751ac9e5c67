package article

import "time"

// Article is the persistent article model. The author is held as a plain
// reference (AuthorID) and resolved explicitly when rendering; the driver
// never populates relations for us. FavoritedBy is the source of truth for
// favorites; User.Favorites is a denormalized view kept in sync by the
// service layer.
type Article struct {
	ID          string    `json:"id" bson:"_id,omitempty"`
	Slug        string    `json:"slug" bson:"slug"` // unique, immutable
	Title       string    `json:"title" bson:"title"`
	Description string    `json:"description" bson:"description"`
	Body        string    `json:"body" bson:"body"`
	TagList     []string  `json:"tagList" bson:"tagList,omitempty"`
	AuthorID    string    `json:"authorId" bson:"authorId"`
	FavoritedBy []string  `json:"-" bson:"favoritedBy,omitempty"` // user IDs
	CreatedAt   time.Time `json:"createdAt" bson:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt" bson:"updatedAt"`
}

// Filter restricts a store query. Zero-value fields leave their dimension
// unrestricted; dimensions combine with logical AND, the values inside a
// dimension with OR.
type Filter struct {
	Tags []string // match articles containing ANY of these tags

	// AuthorIDs, when non-nil, restricts to articles authored by any of the
	// listed users. A non-nil empty slice deliberately matches nothing
	// (unknown author contract).
	AuthorIDs []string

	// IDs, when non-nil, restricts to the listed article IDs. A non-nil
	// empty slice matches nothing (favorited-by union came up empty).
	IDs []string
}

// Changes carries a partial update. Nil fields are left untouched.
// Slug and author are immutable and therefore not representable here.
type Changes struct {
	Title       *string
	Description *string
	Body        *string
	TagList     *[]string
}

package models

import "time"

// User represents a member of the platform. Registration and credential
// handling live in the external identity service; this service reads users
// and only mutates their Favorites/Following sets.
type User struct {
	ID        string    `bson:"_id,omitempty" json:"id"`
	Username  string    `bson:"username" json:"username"` // unique
	Email     string    `bson:"email" json:"email"`
	Bio       string    `bson:"bio,omitempty" json:"bio,omitempty"`
	Image     string    `bson:"image,omitempty" json:"image,omitempty"`
	Favorites []string  `bson:"favorites,omitempty" json:"favorites,omitempty"` // article IDs, denormalized view
	Following []string  `bson:"following,omitempty" json:"following,omitempty"` // user IDs
	CreatedAt time.Time `bson:"createdAt" json:"createdAt"`
	UpdatedAt time.Time `bson:"updatedAt" json:"updatedAt"`
}

// HasFavorited reports whether the user's favorites view contains the article.
func (u *User) HasFavorited(articleID string) bool {
	for _, id := range u.Favorites {
		if id == articleID {
			return true
		}
	}
	return false
}

// IsFollowing reports whether the user follows the given user ID.
func (u *User) IsFollowing(userID string) bool {
	for _, id := range u.Following {
		if id == userID {
			return true
		}
	}
	return false
}

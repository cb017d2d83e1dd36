// Package entity contains the core business objects of the project.
package entity

import "time"

// Post is a message owned exclusively by the user who created it.
type Post struct {
	ID        int64
	Body      string
	UserID    int64
	ImageURL  *string // Optional reference to an uploaded image.
	CreatedAt time.Time
}

// IsOwnedBy reports whether the given user created the post.
func (p *Post) IsOwnedBy(userID int64) bool {
	return p.UserID == userID
}

// PostWithLikes is the read model returned by listing endpoints.
type PostWithLikes struct {
	Post
	Likes    int64  // Aggregated like count.
	Username string // Author username, "Unknown" when the author row is gone.
}

// PostWithComments is a single post together with its comments.
type PostWithComments struct {
	Post     *PostWithLikes
	Comments []*Comment
}

// PostSorting selects the order of post listings.
type PostSorting string

const (
	// PostSortingNew orders by id descending.
	PostSortingNew PostSorting = "new"
	// PostSortingOld orders by id ascending.
	PostSortingOld PostSorting = "old"
	// PostSortingMostLikes orders by like count descending, ties by id descending.
	PostSortingMostLikes PostSorting = "most_likes"
)

// IsValid checks if the PostSorting is a known value.
func (s PostSorting) IsValid() bool {
	switch s {
	case PostSortingNew, PostSortingOld, PostSortingMostLikes:
		return true
	default:
		return false
	}
}

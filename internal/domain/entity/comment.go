package entity

import "time"

// Comment is a reply attached to an existing post.
type Comment struct {
	ID        int64
	Body      string
	PostID    int64
	UserID    int64
	Username  string // Filled on reads.
	CreatedAt time.Time
}

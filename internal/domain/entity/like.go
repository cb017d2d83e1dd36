package entity

import "time"

// Like joins a user to a post. A user likes a given post at most once.
type Like struct {
	ID        int64
	PostID    int64
	UserID    int64
	CreatedAt time.Time
}

package model

import "time"

// CommentModel mirrors the 'comments' table.
type CommentModel struct {
	ID        int64     `gorm:"primaryKey;autoIncrement"`
	Body      string    `gorm:"type:text;not null"`
	PostID    int64     `gorm:"not null;index"`
	Post      PostModel `gorm:"foreignKey:PostID"`
	UserID    int64     `gorm:"not null;index"`
	User      UserModel `gorm:"foreignKey:UserID"`
	CreatedAt time.Time
}

// TableName explicitly sets the table name for GORM.
func (CommentModel) TableName() string {
	return "comments"
}

// CommentRow is a comment joined with its author's username.
type CommentRow struct {
	ID        int64
	Body      string
	PostID    int64
	UserID    int64
	Username  string
	CreatedAt time.Time
}

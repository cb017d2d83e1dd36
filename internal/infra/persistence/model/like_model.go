package model

import "time"

// LikeModel mirrors the 'likes' table. A user likes a post at most once.
type LikeModel struct {
	ID        int64     `gorm:"primaryKey;autoIncrement"`
	PostID    int64     `gorm:"not null;uniqueIndex:idx_like_post_user"`
	Post      PostModel `gorm:"foreignKey:PostID"`
	UserID    int64     `gorm:"not null;uniqueIndex:idx_like_post_user;index"`
	User      UserModel `gorm:"foreignKey:UserID"`
	CreatedAt time.Time
}

// TableName explicitly sets the table name for GORM.
func (LikeModel) TableName() string {
	return "likes"
}

// All returns every model in dependency order, for AutoMigrate.
func All() []any {
	return []any{
		&UserModel{},
		&PostModel{},
		&CommentModel{},
		&LikeModel{},
	}
}

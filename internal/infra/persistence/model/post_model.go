package model

import "time"

// PostModel mirrors the 'posts' table.
type PostModel struct {
	ID        int64     `gorm:"primaryKey;autoIncrement"`
	Body      string    `gorm:"type:text;not null"`
	UserID    int64     `gorm:"not null;index"`
	User      UserModel `gorm:"foreignKey:UserID"`
	ImageURL  *string   `gorm:"type:text"`
	CreatedAt time.Time
}

// TableName explicitly sets the table name for GORM.
func (PostModel) TableName() string {
	return "posts"
}

// PostWithLikesRow is the scan target of the aggregated post listing query.
type PostWithLikesRow struct {
	ID        int64
	Body      string
	UserID    int64
	ImageURL  *string
	CreatedAt time.Time
	Likes     int64
	Username  string
}

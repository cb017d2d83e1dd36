// Package model holds the GORM persistence structs. They never leave the
// repository layer; repositories map them to domain entities.
package model

import "time"

// UserModel mirrors the 'users' table.
type UserModel struct {
	ID        int64  `gorm:"primaryKey;autoIncrement"`
	Email     string `gorm:"type:varchar(255);uniqueIndex;not null"`
	Username  string `gorm:"type:varchar(100);uniqueIndex;not null"`
	Password  string `gorm:"type:varchar(255);not null"` // bcrypt digest
	Confirmed bool   `gorm:"not null;default:false"`
	CreatedAt time.Time
}

// TableName explicitly sets the table name for GORM.
func (UserModel) TableName() string {
	return "users"
}

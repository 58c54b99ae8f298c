package models

import (
	"time"
)

// User represents a registered account
type User struct {
	ID           int64     `gorm:"primaryKey;autoIncrement;column:id"`
	Username     string    `gorm:"type:varchar(30);not null;uniqueIndex:users_username_ux;column:username"`
	Email        string    `gorm:"type:varchar(255);not null;uniqueIndex:users_email_ux;column:email"`
	PasswordHash string    `gorm:"type:varchar(100);not null;column:password_hash"`
	CreatedAt    time.Time `gorm:"not null;column:created_at"`
}

// TableName specifies the table name for User
func (User) TableName() string {
	return "users"
}

package models

import (
	"time"
)

// Follow represents a directed follower edge: FollowerID follows UserID.
// The composite primary key enforces at most one edge per ordered pair.
type Follow struct {
	UserID     int64     `gorm:"primaryKey;column:user_id"`
	FollowerID int64     `gorm:"primaryKey;column:follower_id"`
	CreatedAt  time.Time `gorm:"not null;column:created_at"`

	// Relationships
	User     *User `gorm:"foreignKey:UserID;references:ID"`
	Follower *User `gorm:"foreignKey:FollowerID;references:ID"`
}

// TableName specifies the table name for Follow
func (Follow) TableName() string {
	return "followers"
}

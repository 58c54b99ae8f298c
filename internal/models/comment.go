package models

import (
	"time"
)

// Comment represents a comment left on a workout.
type Comment struct {
	ID        int64     `gorm:"primaryKey;autoIncrement;column:id"`
	UserID    int64     `gorm:"not null;column:user_id"`
	WorkoutID int64     `gorm:"not null;index:comments_workout_ix;column:workout_id"`
	Content   string    `gorm:"type:text;not null;column:content"`
	CreatedAt time.Time `gorm:"not null;column:created_at"`

	// Relationships
	User    *User    `gorm:"foreignKey:UserID;references:ID"`
	Workout *Workout `gorm:"foreignKey:WorkoutID;references:ID"`
}

// TableName specifies the table name for Comment
func (Comment) TableName() string {
	return "comments"
}

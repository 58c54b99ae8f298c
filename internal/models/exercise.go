package models

import (
	"database/sql"
	"time"
)

// Exercise represents a catalog entry referenced by workout sets.
// Names are unique case-insensitively; the check happens in the repository.
type Exercise struct {
	ID          int64          `gorm:"primaryKey;autoIncrement;column:id"`
	Name        string         `gorm:"type:varchar(100);not null;uniqueIndex:exercises_name_ux;column:name"`
	Description sql.NullString `gorm:"type:text;column:description"`
	CreatedAt   time.Time      `gorm:"not null;column:created_at"`
}

// TableName specifies the table name for Exercise
func (Exercise) TableName() string {
	return "exercises"
}

package models

import (
	"time"
)

// CompetitionStatus is derived from the stored window at query time;
// no row ever stores it explicitly.
type CompetitionStatus string

// Competition lifecycle states
const (
	CompetitionUpcoming CompetitionStatus = "upcoming"
	CompetitionActive   CompetitionStatus = "active"
	CompetitionClosed   CompetitionStatus = "closed"
)

// Competition represents a named contest with an active window.
type Competition struct {
	ID          int64     `gorm:"primaryKey;autoIncrement;column:id"`
	Name        string    `gorm:"type:varchar(100);not null;column:name"`
	Description string    `gorm:"type:text;column:description"`
	StartDate   time.Time `gorm:"not null;column:start_date"`
	EndDate     time.Time `gorm:"not null;column:end_date"`
	CreatedAt   time.Time `gorm:"not null;column:created_at"`
}

// TableName specifies the table name for Competition
func (Competition) TableName() string {
	return "competitions"
}

// StatusAt derives the lifecycle state from the stored window.
func (c *Competition) StatusAt(now time.Time) CompetitionStatus {
	switch {
	case now.Before(c.StartDate):
		return CompetitionUpcoming
	case now.After(c.EndDate):
		return CompetitionClosed
	default:
		return CompetitionActive
	}
}

// Open reports whether entries are still accepted: the end date has
// not yet passed relative to now.
func (c *Competition) Open(now time.Time) bool {
	return !c.EndDate.Before(now)
}

// CompetitionEntry represents one user's submission to a competition.
// The composite unique index enforces one entry per (competition, user).
type CompetitionEntry struct {
	ID            int64     `gorm:"primaryKey;autoIncrement;column:id"`
	CompetitionID int64     `gorm:"not null;uniqueIndex:competition_entries_ux;column:competition_id"`
	UserID        int64     `gorm:"not null;uniqueIndex:competition_entries_ux;column:user_id"`
	Value         int64     `gorm:"not null;column:value"`
	CreatedAt     time.Time `gorm:"not null;column:created_at"`

	// Relationships
	Competition *Competition `gorm:"foreignKey:CompetitionID;references:ID"`
	User        *User        `gorm:"foreignKey:UserID;references:ID"`
}

// TableName specifies the table name for CompetitionEntry
func (CompetitionEntry) TableName() string {
	return "competition_entries"
}

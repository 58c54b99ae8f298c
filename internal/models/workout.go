package models

import (
	"database/sql"
	"time"
)

// Workout represents a single training session owned by one user.
//
// TotalVolume is a derived field: it must always equal
// SUM(reps * weight) over the workout's sets and is recomputed inside
// the same transaction that inserts a set. TotalTime is client-supplied.
type Workout struct {
	ID          int64     `gorm:"primaryKey;autoIncrement;column:id"`
	UserID      int64     `gorm:"not null;index:workouts_user_ix;column:user_id"`
	TotalVolume int64     `gorm:"not null;default:0;column:total_volume"`
	TotalTime   int64     `gorm:"not null;default:0;column:total_time"`
	PerformedAt time.Time `gorm:"not null;index:workouts_performed_ix;column:performed_at"`
	CreatedAt   time.Time `gorm:"not null;column:created_at"`

	// Relationships
	User *User        `gorm:"foreignKey:UserID;references:ID" json:"-"`
	Sets []WorkoutSet `gorm:"foreignKey:WorkoutID;references:ID" json:"-"`
}

// TableName specifies the table name for Workout
func (Workout) TableName() string {
	return "workouts"
}

// WorkoutSet represents one set within a workout, referencing an exercise.
type WorkoutSet struct {
	ID         int64          `gorm:"primaryKey;autoIncrement;column:id"`
	WorkoutID  int64          `gorm:"not null;index:workout_sets_workout_ix;column:workout_id"`
	ExerciseID int64          `gorm:"not null;column:exercise_id"`
	Reps       int            `gorm:"not null;column:reps"`
	Weight     int            `gorm:"not null;default:0;column:weight"`
	FormScore  sql.NullInt16  `gorm:"column:form_score"`
	VideoURL   sql.NullString `gorm:"type:varchar(1024);column:video_url"`
	CreatedAt  time.Time      `gorm:"not null;column:created_at"`

	// Relationships
	Workout  *Workout  `gorm:"foreignKey:WorkoutID;references:ID" json:"-"`
	Exercise *Exercise `gorm:"foreignKey:ExerciseID;references:ID" json:"-"`
}

// TableName specifies the table name for WorkoutSet
func (WorkoutSet) TableName() string {
	return "workout_sets"
}

// Volume returns the volume contribution of this set.
func (s *WorkoutSet) Volume() int64 {
	return int64(s.Reps) * int64(s.Weight)
}

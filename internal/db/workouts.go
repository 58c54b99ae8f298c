package db

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/pranauww/gym-startup/internal/models"
)

// WorkoutSummary is one row of a paginated workout listing: the workout
// annotated with aggregates over its sets. TotalVolume here is computed
// from the set rows, not read from the stored derived column.
type WorkoutSummary struct {
	ID          int64     `json:"id"`
	UserID      int64     `json:"user_id"`
	Username    string    `json:"username,omitempty"`
	TotalVolume int64     `json:"total_volume"`
	TotalTime   int64     `json:"total_time"`
	PerformedAt time.Time `json:"performed_at"`
	SetCount    int64     `json:"set_count"`
}

// SetDetail is a workout set joined with its exercise.
type SetDetail struct {
	ID                  int64     `json:"id"`
	WorkoutID           int64     `json:"workout_id"`
	ExerciseID          int64     `json:"exercise_id"`
	Reps                int       `json:"reps"`
	Weight              int       `json:"weight"`
	FormScore           *int16    `json:"form_score"`
	VideoURL            *string   `json:"video_url"`
	CreatedAt           time.Time `json:"created_at"`
	ExerciseName        string    `json:"exercise_name"`
	ExerciseDescription *string   `json:"exercise_description"`
}

// WorkoutStats summarizes a user's workouts over a period window.
type WorkoutStats struct {
	TotalWorkouts       int64   `json:"total_workouts"`
	TotalVolume         int64   `json:"total_volume"`
	TotalTime           int64   `json:"total_time"`
	AvgVolumePerWorkout float64 `json:"avg_volume_per_workout"`
}

// WorkoutRepository provides workout and set database operations
type WorkoutRepository struct {
	*Repository
}

// NewWorkoutRepository creates a new workout repository
func NewWorkoutRepository(repo *Repository) *WorkoutRepository {
	return &WorkoutRepository{Repository: repo}
}

// Create creates a new workout
func (r *WorkoutRepository) Create(ctx context.Context, workout *models.Workout) error {
	return r.db.WithContext(ctx).Create(workout).Error
}

const workoutSummarySelect = `w.id, w.user_id, w.total_time, w.performed_at,
	COUNT(ws.id) AS set_count,
	COALESCE(SUM(ws.reps * ws.weight), 0) AS total_volume`

// ListByUser retrieves a page of the user's workouts ordered by
// performed_at descending, each annotated with set_count and the
// aggregated total_volume (NULL sums treated as 0).
func (r *WorkoutRepository) ListByUser(ctx context.Context, userID int64, req PageRequest) ([]WorkoutSummary, Pagination, error) {
	var rows []WorkoutSummary
	err := r.db.WithContext(ctx).
		Table("workouts w").
		Select(workoutSummarySelect).
		Joins("LEFT JOIN workout_sets ws ON ws.workout_id = w.id").
		Where("w.user_id = ?", userID).
		Group("w.id").
		Order("w.performed_at DESC").
		Limit(req.Limit).
		Offset(req.Offset()).
		Scan(&rows).Error
	if err != nil {
		return nil, Pagination{}, err
	}

	var total int64
	if err := r.db.WithContext(ctx).
		Model(&models.Workout{}).
		Where("user_id = ?", userID).
		Count(&total).Error; err != nil {
		return nil, Pagination{}, err
	}

	return rows, NewPagination(req, total), nil
}

// Feed retrieves a page of workouts from the viewer and everyone the
// viewer follows, ordered by performed_at descending. The viewer's own
// rows are included via an explicit OR; self-follow edges do not exist.
func (r *WorkoutRepository) Feed(ctx context.Context, viewerID int64, req PageRequest) ([]WorkoutSummary, Pagination, error) {
	followed := r.db.Model(&models.Follow{}).
		Select("user_id").
		Where("follower_id = ?", viewerID)

	var rows []WorkoutSummary
	err := r.db.WithContext(ctx).
		Table("workouts w").
		Select(workoutSummarySelect+", u.username AS username").
		Joins("JOIN users u ON u.id = w.user_id").
		Joins("LEFT JOIN workout_sets ws ON ws.workout_id = w.id").
		Where("w.user_id IN (?) OR w.user_id = ?", followed, viewerID).
		Group("w.id, u.username").
		Order("w.performed_at DESC").
		Limit(req.Limit).
		Offset(req.Offset()).
		Scan(&rows).Error
	if err != nil {
		return nil, Pagination{}, err
	}

	var total int64
	if err := r.db.WithContext(ctx).
		Model(&models.Workout{}).
		Where("user_id IN (?) OR user_id = ?", followed, viewerID).
		Count(&total).Error; err != nil {
		return nil, Pagination{}, err
	}

	return rows, NewPagination(req, total), nil
}

// GetOwned retrieves a workout by ID, requiring ownership. A workout
// that exists but belongs to someone else yields ErrNotFound.
func (r *WorkoutRepository) GetOwned(ctx context.Context, id, userID int64) (*models.Workout, error) {
	var workout models.Workout
	err := r.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", id, userID).
		First(&workout).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, notFound("workout %d", id)
		}
		return nil, err
	}
	return &workout, nil
}

// ListSets retrieves a workout's sets joined with exercise details,
// in insertion (id ascending) order.
func (r *WorkoutRepository) ListSets(ctx context.Context, workoutID int64) ([]SetDetail, error) {
	var sets []SetDetail
	err := r.db.WithContext(ctx).
		Table("workout_sets ws").
		Select(`ws.id, ws.workout_id, ws.exercise_id, ws.reps, ws.weight,
			ws.form_score, ws.video_url, ws.created_at,
			e.name AS exercise_name, e.description AS exercise_description`).
		Joins("JOIN exercises e ON e.id = ws.exercise_id").
		Where("ws.workout_id = ?", workoutID).
		Order("ws.id").
		Scan(&sets).Error
	if err != nil {
		return nil, err
	}
	return sets, nil
}

// AddSet inserts a set and recomputes the owning workout's derived
// total_volume as one transaction: both succeed or both roll back.
// The recomputation sums all current sets in a single UPDATE statement
// rather than incrementing, so a concurrent insert on the same workout
// can never leave the stored total computed from a stale snapshot.
func (r *WorkoutRepository) AddSet(ctx context.Context, userID int64, set *models.WorkoutSet) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var workout models.Workout
		err := tx.Where("id = ? AND user_id = ?", set.WorkoutID, userID).
			First(&workout).Error
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return notFound("workout %d", set.WorkoutID)
			}
			return err
		}

		var exerciseCount int64
		if err := tx.Model(&models.Exercise{}).
			Where("id = ?", set.ExerciseID).
			Count(&exerciseCount).Error; err != nil {
			return err
		}
		if exerciseCount == 0 {
			return notFound("exercise %d", set.ExerciseID)
		}

		if err := tx.Create(set).Error; err != nil {
			return err
		}

		return tx.Exec(`UPDATE workouts
			SET total_volume = (
				SELECT COALESCE(SUM(reps * weight), 0)
				FROM workout_sets
				WHERE workout_id = ?
			)
			WHERE id = ?`, set.WorkoutID, set.WorkoutID).Error
	})
}

// Update updates the client-supplied fields of an owned workout.
func (r *WorkoutRepository) Update(ctx context.Context, id, userID, totalVolume, totalTime int64) (*models.Workout, error) {
	var workout models.Workout
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("id = ? AND user_id = ?", id, userID).
			First(&workout).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return notFound("workout %d", id)
			}
			return err
		}
		workout.TotalVolume = totalVolume
		workout.TotalTime = totalTime
		return tx.Save(&workout).Error
	})
	if err != nil {
		return nil, err
	}
	return &workout, nil
}

// Delete removes an owned workout and all of its sets in one
// transaction, preserving referential integrity (no orphan sets).
func (r *WorkoutRepository) Delete(ctx context.Context, id, userID int64) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var workout models.Workout
		if err := tx.Where("id = ? AND user_id = ?", id, userID).
			First(&workout).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return notFound("workout %d", id)
			}
			return err
		}
		if err := tx.Where("workout_id = ?", id).
			Delete(&models.WorkoutSet{}).Error; err != nil {
			return err
		}
		return tx.Delete(&workout).Error
	})
}

// Stats computes period statistics for a user's workouts. An empty
// window yields all-zero sums and a zero average, never an error.
func (r *WorkoutRepository) Stats(ctx context.Context, userID int64, period Period) (*WorkoutStats, error) {
	q := r.db.WithContext(ctx).
		Model(&models.Workout{}).
		Where("user_id = ?", userID)
	if cutoff, ok := period.Cutoff(time.Now().UTC()); ok {
		q = q.Where("performed_at >= ?", cutoff)
	}

	var stats WorkoutStats
	err := q.Select(`COUNT(*) AS total_workouts,
		COALESCE(SUM(total_volume), 0) AS total_volume,
		COALESCE(SUM(total_time), 0) AS total_time,
		COALESCE(AVG(total_volume), 0) AS avg_volume_per_workout`).
		Scan(&stats).Error
	if err != nil {
		return nil, err
	}
	return &stats, nil
}

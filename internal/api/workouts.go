package api

import (
	"context"
	"database/sql"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/pranauww/gym-startup/internal/auth"
	"github.com/pranauww/gym-startup/internal/db"
	"github.com/pranauww/gym-startup/internal/models"
	"github.com/pranauww/gym-startup/pkg/logging"
)

// WorkoutStore is the persistence surface the workout handlers need.
type WorkoutStore interface {
	Create(ctx context.Context, workout *models.Workout) error
	ListByUser(ctx context.Context, userID int64, req db.PageRequest) ([]db.WorkoutSummary, db.Pagination, error)
	GetOwned(ctx context.Context, id, userID int64) (*models.Workout, error)
	ListSets(ctx context.Context, workoutID int64) ([]db.SetDetail, error)
	AddSet(ctx context.Context, userID int64, set *models.WorkoutSet) error
	Update(ctx context.Context, id, userID, totalVolume, totalTime int64) (*models.Workout, error)
	Delete(ctx context.Context, id, userID int64) error
	Stats(ctx context.Context, userID int64, period db.Period) (*db.WorkoutStats, error)
}

// WorkoutHandler serves workout CRUD, set insertion and statistics.
type WorkoutHandler struct {
	store  WorkoutStore
	logger *zap.Logger
}

// NewWorkoutHandler creates a new workout handler
func NewWorkoutHandler(store WorkoutStore) *WorkoutHandler {
	return &WorkoutHandler{
		store:  store,
		logger: logging.WithComponent("api-workouts"),
	}
}

type createWorkoutRequest struct {
	TotalVolume int64      `json:"total_volume" binding:"omitempty,min=0"`
	TotalTime   int64      `json:"total_time" binding:"omitempty,min=0"`
	PerformedAt *time.Time `json:"performed_at"`
}

type addSetRequest struct {
	ExerciseID int64  `json:"exercise_id" binding:"required"`
	Reps       int    `json:"reps" binding:"required,min=1"`
	Weight     int    `json:"weight" binding:"omitempty,min=0"`
	FormScore  *int16 `json:"form_score" binding:"omitempty,min=0,max=100"`
	VideoURL   string `json:"video_url" binding:"omitempty,url"`
}

type workoutView struct {
	ID          int64     `json:"id"`
	UserID      int64     `json:"user_id"`
	TotalVolume int64     `json:"total_volume"`
	TotalTime   int64     `json:"total_time"`
	PerformedAt time.Time `json:"performed_at"`
	CreatedAt   time.Time `json:"created_at"`
}

type setView struct {
	ID         int64     `json:"id"`
	WorkoutID  int64     `json:"workout_id"`
	ExerciseID int64     `json:"exercise_id"`
	Reps       int       `json:"reps"`
	Weight     int       `json:"weight"`
	FormScore  *int16    `json:"form_score"`
	VideoURL   *string   `json:"video_url"`
	CreatedAt  time.Time `json:"created_at"`
}

func toSetView(s *models.WorkoutSet) setView {
	view := setView{
		ID:         s.ID,
		WorkoutID:  s.WorkoutID,
		ExerciseID: s.ExerciseID,
		Reps:       s.Reps,
		Weight:     s.Weight,
		CreatedAt:  s.CreatedAt,
	}
	if s.FormScore.Valid {
		view.FormScore = &s.FormScore.Int16
	}
	if s.VideoURL.Valid {
		view.VideoURL = &s.VideoURL.String
	}
	return view
}

func toWorkoutView(w *models.Workout) workoutView {
	return workoutView{
		ID:          w.ID,
		UserID:      w.UserID,
		TotalVolume: w.TotalVolume,
		TotalTime:   w.TotalTime,
		PerformedAt: w.PerformedAt,
		CreatedAt:   w.CreatedAt,
	}
}

// Create handles POST /api/workouts
func (h *WorkoutHandler) Create(c *gin.Context) {
	identity, ok := auth.FromContext(c)
	if !ok {
		respondUnauthorized(c)
		return
	}

	var req createWorkoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondInvalid(c, err.Error())
		return
	}

	performedAt := time.Now().UTC()
	if req.PerformedAt != nil {
		performedAt = req.PerformedAt.UTC()
	}

	workout := models.Workout{
		UserID:      identity.UserID,
		TotalVolume: req.TotalVolume,
		TotalTime:   req.TotalTime,
		PerformedAt: performedAt,
	}
	if err := h.store.Create(c.Request.Context(), &workout); err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusCreated, toWorkoutView(&workout))
}

// List handles GET /api/workouts
func (h *WorkoutHandler) List(c *gin.Context) {
	identity, ok := auth.FromContext(c)
	if !ok {
		respondUnauthorized(c)
		return
	}

	workouts, pagination, err := h.store.ListByUser(c.Request.Context(), identity.UserID, pageRequest(c))
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, listResponse{Items: workouts, Pagination: pagination})
}

// Get handles GET /api/workouts/:id
func (h *WorkoutHandler) Get(c *gin.Context) {
	identity, ok := auth.FromContext(c)
	if !ok {
		respondUnauthorized(c)
		return
	}

	id, err := pathID(c, "id")
	if err != nil {
		respondInvalid(c, err.Error())
		return
	}

	workout, err := h.store.GetOwned(c.Request.Context(), id, identity.UserID)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	sets, err := h.store.ListSets(c.Request.Context(), id)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"workout": toWorkoutView(workout),
		"sets":    sets,
	})
}

// AddSet handles POST /api/workouts/:id/sets
func (h *WorkoutHandler) AddSet(c *gin.Context) {
	identity, ok := auth.FromContext(c)
	if !ok {
		respondUnauthorized(c)
		return
	}

	id, err := pathID(c, "id")
	if err != nil {
		respondInvalid(c, err.Error())
		return
	}

	var req addSetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondInvalid(c, err.Error())
		return
	}

	set := models.WorkoutSet{
		WorkoutID:  id,
		ExerciseID: req.ExerciseID,
		Reps:       req.Reps,
		Weight:     req.Weight,
	}
	if req.FormScore != nil {
		set.FormScore = sql.NullInt16{Int16: *req.FormScore, Valid: true}
	}
	if req.VideoURL != "" {
		set.VideoURL = sql.NullString{String: req.VideoURL, Valid: true}
	}

	if err := h.store.AddSet(c.Request.Context(), identity.UserID, &set); err != nil {
		respondError(c, h.logger, err)
		return
	}

	h.logger.Info("set added",
		zap.Int64("workout_id", id),
		zap.Int64("set_id", set.ID))
	c.JSON(http.StatusCreated, toSetView(&set))
}

// Update handles PUT /api/workouts/:id
func (h *WorkoutHandler) Update(c *gin.Context) {
	identity, ok := auth.FromContext(c)
	if !ok {
		respondUnauthorized(c)
		return
	}

	id, err := pathID(c, "id")
	if err != nil {
		respondInvalid(c, err.Error())
		return
	}

	var req createWorkoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondInvalid(c, err.Error())
		return
	}

	workout, err := h.store.Update(c.Request.Context(), id, identity.UserID, req.TotalVolume, req.TotalTime)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, toWorkoutView(workout))
}

// Delete handles DELETE /api/workouts/:id
func (h *WorkoutHandler) Delete(c *gin.Context) {
	identity, ok := auth.FromContext(c)
	if !ok {
		respondUnauthorized(c)
		return
	}

	id, err := pathID(c, "id")
	if err != nil {
		respondInvalid(c, err.Error())
		return
	}

	if err := h.store.Delete(c.Request.Context(), id, identity.UserID); err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "workout deleted"})
}

// Stats handles GET /api/workouts/stats/summary
func (h *WorkoutHandler) Stats(c *gin.Context) {
	identity, ok := auth.FromContext(c)
	if !ok {
		respondUnauthorized(c)
		return
	}

	period := db.ParsePeriod(c.DefaultQuery("period", string(db.PeriodWeek)))
	stats, err := h.store.Stats(c.Request.Context(), identity.UserID, period)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, stats)
}

var _ WorkoutStore = (*db.WorkoutRepository)(nil)

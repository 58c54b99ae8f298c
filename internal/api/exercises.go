package api

import (
	"context"
	"database/sql"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/pranauww/gym-startup/internal/db"
	"github.com/pranauww/gym-startup/internal/models"
	"github.com/pranauww/gym-startup/pkg/logging"
)

// searchResultLimit caps exercise search responses.
const searchResultLimit = 10

// ExerciseStore is the persistence surface the exercise handlers need.
type ExerciseStore interface {
	List(ctx context.Context) ([]models.Exercise, error)
	GetByID(ctx context.Context, id int64) (*models.Exercise, error)
	Create(ctx context.Context, exercise *models.Exercise) error
	Search(ctx context.Context, query string, limit int) ([]models.Exercise, error)
}

// ExerciseHandler serves the exercise catalog.
type ExerciseHandler struct {
	store  ExerciseStore
	logger *zap.Logger
}

// NewExerciseHandler creates a new exercise handler
func NewExerciseHandler(store ExerciseStore) *ExerciseHandler {
	return &ExerciseHandler{
		store:  store,
		logger: logging.WithComponent("api-exercises"),
	}
}

type createExerciseRequest struct {
	Name        string `json:"name" binding:"required,max=100"`
	Description string `json:"description"`
}

type exerciseView struct {
	ID          int64   `json:"id"`
	Name        string  `json:"name"`
	Description *string `json:"description"`
}

func toExerciseView(e *models.Exercise) exerciseView {
	view := exerciseView{ID: e.ID, Name: e.Name}
	if e.Description.Valid {
		view.Description = &e.Description.String
	}
	return view
}

func toExerciseViews(exercises []models.Exercise) []exerciseView {
	views := make([]exerciseView, 0, len(exercises))
	for i := range exercises {
		views = append(views, toExerciseView(&exercises[i]))
	}
	return views
}

// List handles GET /api/exercises
func (h *ExerciseHandler) List(c *gin.Context) {
	exercises, err := h.store.List(c.Request.Context())
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, toExerciseViews(exercises))
}

// Get handles GET /api/exercises/:id
func (h *ExerciseHandler) Get(c *gin.Context) {
	id, err := pathID(c, "id")
	if err != nil {
		respondInvalid(c, err.Error())
		return
	}

	exercise, err := h.store.GetByID(c.Request.Context(), id)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, toExerciseView(exercise))
}

// Create handles POST /api/exercises
func (h *ExerciseHandler) Create(c *gin.Context) {
	var req createExerciseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondInvalid(c, err.Error())
		return
	}

	name := strings.TrimSpace(req.Name)
	if name == "" {
		respondInvalid(c, "exercise name is required")
		return
	}

	exercise := models.Exercise{Name: name}
	if req.Description != "" {
		exercise.Description = sql.NullString{String: req.Description, Valid: true}
	}
	if err := h.store.Create(c.Request.Context(), &exercise); err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusCreated, toExerciseView(&exercise))
}

// Search handles GET /api/exercises/search/:query
func (h *ExerciseHandler) Search(c *gin.Context) {
	query := c.Param("query")
	if len(query) < 2 {
		respondInvalid(c, "search query must be at least 2 characters")
		return
	}

	exercises, err := h.store.Search(c.Request.Context(), query, searchResultLimit)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, toExerciseViews(exercises))
}

var _ ExerciseStore = (*db.ExerciseRepository)(nil)

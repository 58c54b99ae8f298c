package db

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/pranauww/gym-startup/internal/models"
)

// Repository provides database access methods
type Repository struct {
	db *gorm.DB
}

// NewRepository creates a new repository
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// UserRepository provides user-related database operations
type UserRepository struct {
	*Repository
}

// NewUserRepository creates a new user repository
func NewUserRepository(repo *Repository) *UserRepository {
	return &UserRepository{Repository: repo}
}

// Create creates a new user. A duplicate username or email yields ErrConflict.
func (r *UserRepository) Create(ctx context.Context, user *models.User) error {
	if err := r.db.WithContext(ctx).Create(user).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return conflict("username or email already taken")
		}
		return err
	}
	return nil
}

// GetByID retrieves a user by ID
func (r *UserRepository) GetByID(ctx context.Context, id int64) (*models.User, error) {
	var user models.User
	if err := r.db.WithContext(ctx).First(&user, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, notFound("user %d", id)
		}
		return nil, err
	}
	return &user, nil
}

// GetByEmail retrieves a user by email
func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	var user models.User
	if err := r.db.WithContext(ctx).Where("email = ?", email).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, notFound("user with email %s", email)
		}
		return nil, err
	}
	return &user, nil
}

// ExerciseRepository provides exercise catalog operations
type ExerciseRepository struct {
	*Repository
}

// NewExerciseRepository creates a new exercise repository
func NewExerciseRepository(repo *Repository) *ExerciseRepository {
	return &ExerciseRepository{Repository: repo}
}

// List retrieves all exercises ordered by name
func (r *ExerciseRepository) List(ctx context.Context) ([]models.Exercise, error) {
	var exercises []models.Exercise
	if err := r.db.WithContext(ctx).Order("name").Find(&exercises).Error; err != nil {
		return nil, err
	}
	return exercises, nil
}

// GetByID retrieves an exercise by ID
func (r *ExerciseRepository) GetByID(ctx context.Context, id int64) (*models.Exercise, error) {
	var exercise models.Exercise
	if err := r.db.WithContext(ctx).First(&exercise, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, notFound("exercise %d", id)
		}
		return nil, err
	}
	return &exercise, nil
}

// Create creates a new exercise. Names are unique case-insensitively;
// an existing name yields ErrConflict.
func (r *ExerciseRepository) Create(ctx context.Context, exercise *models.Exercise) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&models.Exercise{}).
			Where("LOWER(name) = LOWER(?)", exercise.Name).
			Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			return conflict("exercise %q already exists", exercise.Name)
		}
		if err := tx.Create(exercise).Error; err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return conflict("exercise %q already exists", exercise.Name)
			}
			return err
		}
		return nil
	})
}

// Search retrieves up to limit exercises whose name matches the query,
// case-insensitively, ordered by name.
func (r *ExerciseRepository) Search(ctx context.Context, query string, limit int) ([]models.Exercise, error) {
	var exercises []models.Exercise
	if err := r.db.WithContext(ctx).
		Where("name ILIKE ?", "%"+query+"%").
		Order("name").
		Limit(limit).
		Find(&exercises).Error; err != nil {
		return nil, err
	}
	return exercises, nil
}

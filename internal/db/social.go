package db

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/pranauww/gym-startup/internal/models"
)

// UserSummary is the public projection of a user in follower listings.
type UserSummary struct {
	ID        int64     `json:"id"`
	Username  string    `json:"username"`
	CreatedAt time.Time `json:"created_at"`
}

// CommentDetail is a comment joined with its author's username.
type CommentDetail struct {
	ID        int64     `json:"id"`
	UserID    int64     `json:"user_id"`
	WorkoutID int64     `json:"workout_id"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"created_at"`
	Username  string    `json:"username"`
}

// SocialRepository provides follow and comment database operations
type SocialRepository struct {
	*Repository
}

// NewSocialRepository creates a new social repository
func NewSocialRepository(repo *Repository) *SocialRepository {
	return &SocialRepository{Repository: repo}
}

// Follow creates a follower edge: followerID follows userID.
// Self-follow yields ErrInvalidArgument, a missing target ErrNotFound,
// and an existing edge ErrConflict.
func (r *SocialRepository) Follow(ctx context.Context, userID, followerID int64) error {
	if userID == followerID {
		return invalidArgument("cannot follow yourself")
	}

	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&models.User{}).
			Where("id = ?", userID).
			Count(&count).Error; err != nil {
			return err
		}
		if count == 0 {
			return notFound("user %d", userID)
		}

		edge := models.Follow{UserID: userID, FollowerID: followerID}
		if err := tx.Create(&edge).Error; err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return conflict("already following user %d", userID)
			}
			return err
		}
		return nil
	})
}

// Unfollow removes a follower edge. Removing an edge that does not
// exist yields ErrConflict and mutates nothing.
func (r *SocialRepository) Unfollow(ctx context.Context, userID, followerID int64) error {
	res := r.db.WithContext(ctx).
		Where("user_id = ? AND follower_id = ?", userID, followerID).
		Delete(&models.Follow{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return conflict("not following user %d", userID)
	}
	return nil
}

// Followers lists the users following userID.
func (r *SocialRepository) Followers(ctx context.Context, userID int64) ([]UserSummary, error) {
	var followers []UserSummary
	err := r.db.WithContext(ctx).
		Table("followers f").
		Select("u.id, u.username, u.created_at").
		Joins("JOIN users u ON u.id = f.follower_id").
		Where("f.user_id = ?", userID).
		Order("u.id DESC").
		Scan(&followers).Error
	if err != nil {
		return nil, err
	}
	return followers, nil
}

// Following lists the users userID follows.
func (r *SocialRepository) Following(ctx context.Context, userID int64) ([]UserSummary, error) {
	var following []UserSummary
	err := r.db.WithContext(ctx).
		Table("followers f").
		Select("u.id, u.username, u.created_at").
		Joins("JOIN users u ON u.id = f.user_id").
		Where("f.follower_id = ?", userID).
		Order("u.id DESC").
		Scan(&following).Error
	if err != nil {
		return nil, err
	}
	return following, nil
}

// AddComment creates a comment on a workout. The workout must exist
// (any owner; commenting on followed users' workouts is the point).
func (r *SocialRepository) AddComment(ctx context.Context, comment *models.Comment) (*CommentDetail, error) {
	var detail CommentDetail
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&models.Workout{}).
			Where("id = ?", comment.WorkoutID).
			Count(&count).Error; err != nil {
			return err
		}
		if count == 0 {
			return notFound("workout %d", comment.WorkoutID)
		}

		if err := tx.Create(comment).Error; err != nil {
			return err
		}

		return tx.Table("comments c").
			Select("c.id, c.user_id, c.workout_id, c.content, c.created_at, u.username").
			Joins("JOIN users u ON u.id = c.user_id").
			Where("c.id = ?", comment.ID).
			Scan(&detail).Error
	})
	if err != nil {
		return nil, err
	}
	return &detail, nil
}

// ListComments retrieves a page of a workout's comments, newest first.
func (r *SocialRepository) ListComments(ctx context.Context, workoutID int64, req PageRequest) ([]CommentDetail, Pagination, error) {
	var comments []CommentDetail
	err := r.db.WithContext(ctx).
		Table("comments c").
		Select("c.id, c.user_id, c.workout_id, c.content, c.created_at, u.username").
		Joins("JOIN users u ON u.id = c.user_id").
		Where("c.workout_id = ?", workoutID).
		Order("c.created_at DESC").
		Limit(req.Limit).
		Offset(req.Offset()).
		Scan(&comments).Error
	if err != nil {
		return nil, Pagination{}, err
	}

	var total int64
	if err := r.db.WithContext(ctx).
		Model(&models.Comment{}).
		Where("workout_id = ?", workoutID).
		Count(&total).Error; err != nil {
		return nil, Pagination{}, err
	}

	return comments, NewPagination(req, total), nil
}

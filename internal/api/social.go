package api

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/pranauww/gym-startup/internal/auth"
	"github.com/pranauww/gym-startup/internal/db"
	"github.com/pranauww/gym-startup/internal/models"
	"github.com/pranauww/gym-startup/pkg/logging"
)

// SocialStore is the persistence surface the social handlers need.
type SocialStore interface {
	Follow(ctx context.Context, userID, followerID int64) error
	Unfollow(ctx context.Context, userID, followerID int64) error
	Followers(ctx context.Context, userID int64) ([]db.UserSummary, error)
	Following(ctx context.Context, userID int64) ([]db.UserSummary, error)
	AddComment(ctx context.Context, comment *models.Comment) (*db.CommentDetail, error)
	ListComments(ctx context.Context, workoutID int64, req db.PageRequest) ([]db.CommentDetail, db.Pagination, error)
}

// FeedStore provides the aggregated workout feed.
type FeedStore interface {
	Feed(ctx context.Context, viewerID int64, req db.PageRequest) ([]db.WorkoutSummary, db.Pagination, error)
}

// SocialHandler serves follows, the feed and workout comments.
type SocialHandler struct {
	store  SocialStore
	feed   FeedStore
	logger *zap.Logger
}

// NewSocialHandler creates a new social handler
func NewSocialHandler(store SocialStore, feed FeedStore) *SocialHandler {
	return &SocialHandler{
		store:  store,
		feed:   feed,
		logger: logging.WithComponent("api-social"),
	}
}

type addCommentRequest struct {
	Content string `json:"content" binding:"required,max=1000"`
}

// Follow handles POST /api/social/follow/:userId
func (h *SocialHandler) Follow(c *gin.Context) {
	identity, ok := auth.FromContext(c)
	if !ok {
		respondUnauthorized(c)
		return
	}

	userID, err := pathID(c, "userId")
	if err != nil {
		respondInvalid(c, err.Error())
		return
	}

	if err := h.store.Follow(c.Request.Context(), userID, identity.UserID); err != nil {
		respondError(c, h.logger, err)
		return
	}

	h.logger.Info("follow created",
		zap.Int64("user_id", userID),
		zap.Int64("follower_id", identity.UserID))
	c.JSON(http.StatusCreated, gin.H{"message": "now following"})
}

// Unfollow handles DELETE /api/social/follow/:userId
func (h *SocialHandler) Unfollow(c *gin.Context) {
	identity, ok := auth.FromContext(c)
	if !ok {
		respondUnauthorized(c)
		return
	}

	userID, err := pathID(c, "userId")
	if err != nil {
		respondInvalid(c, err.Error())
		return
	}

	if err := h.store.Unfollow(c.Request.Context(), userID, identity.UserID); err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "unfollowed"})
}

// Feed handles GET /api/social/feed
func (h *SocialHandler) Feed(c *gin.Context) {
	identity, ok := auth.FromContext(c)
	if !ok {
		respondUnauthorized(c)
		return
	}

	workouts, pagination, err := h.feed.Feed(c.Request.Context(), identity.UserID, pageRequest(c))
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, listResponse{Items: workouts, Pagination: pagination})
}

// Followers handles GET /api/social/followers
func (h *SocialHandler) Followers(c *gin.Context) {
	identity, ok := auth.FromContext(c)
	if !ok {
		respondUnauthorized(c)
		return
	}

	users, err := h.store.Followers(c.Request.Context(), identity.UserID)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, users)
}

// Following handles GET /api/social/following
func (h *SocialHandler) Following(c *gin.Context) {
	identity, ok := auth.FromContext(c)
	if !ok {
		respondUnauthorized(c)
		return
	}

	users, err := h.store.Following(c.Request.Context(), identity.UserID)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, users)
}

// AddComment handles POST /api/social/workouts/:id/comments
func (h *SocialHandler) AddComment(c *gin.Context) {
	identity, ok := auth.FromContext(c)
	if !ok {
		respondUnauthorized(c)
		return
	}

	workoutID, err := pathID(c, "id")
	if err != nil {
		respondInvalid(c, err.Error())
		return
	}

	var req addCommentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondInvalid(c, err.Error())
		return
	}

	comment := models.Comment{
		UserID:    identity.UserID,
		WorkoutID: workoutID,
		Content:   req.Content,
	}
	detail, err := h.store.AddComment(c.Request.Context(), &comment)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusCreated, detail)
}

// ListComments handles GET /api/social/workouts/:id/comments
func (h *SocialHandler) ListComments(c *gin.Context) {
	workoutID, err := pathID(c, "id")
	if err != nil {
		respondInvalid(c, err.Error())
		return
	}

	comments, pagination, err := h.store.ListComments(c.Request.Context(), workoutID, pageRequest(c))
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, listResponse{Items: comments, Pagination: pagination})
}

var (
	_ SocialStore = (*db.SocialRepository)(nil)
	_ FeedStore   = (*db.WorkoutRepository)(nil)
)

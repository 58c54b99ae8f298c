package api

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/pranauww/gym-startup/internal/auth"
	"github.com/pranauww/gym-startup/internal/db"
	"github.com/pranauww/gym-startup/internal/models"
	"github.com/pranauww/gym-startup/pkg/logging"
)

// UserStore is the persistence surface the user handlers need.
type UserStore interface {
	Create(ctx context.Context, user *models.User) error
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	GetByID(ctx context.Context, id int64) (*models.User, error)
}

// UserHandler serves registration, login and profile requests.
type UserHandler struct {
	store   UserStore
	authCfg auth.Config
	logger  *zap.Logger
}

// NewUserHandler creates a new user handler
func NewUserHandler(store UserStore, authCfg auth.Config) *UserHandler {
	return &UserHandler{
		store:   store,
		authCfg: authCfg,
		logger:  logging.WithComponent("api-users"),
	}
}

type registerRequest struct {
	Username string `json:"username" binding:"required,alphanum,min=3,max=30"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=6"`
}

type loginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type userView struct {
	ID        int64     `json:"id"`
	Username  string    `json:"username"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"created_at"`
}

func toUserView(user *models.User) userView {
	return userView{
		ID:        user.ID,
		Username:  user.Username,
		Email:     user.Email,
		CreatedAt: user.CreatedAt,
	}
}

// Register handles POST /api/users/register
func (h *UserHandler) Register(c *gin.Context) {
	var req registerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondInvalid(c, err.Error())
		return
	}

	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	user := models.User{
		Username:     req.Username,
		Email:        req.Email,
		PasswordHash: hash,
	}
	if err := h.store.Create(c.Request.Context(), &user); err != nil {
		respondError(c, h.logger, err)
		return
	}

	token, err := auth.IssueToken(h.authCfg, user.ID, user.Username)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	h.logger.Info("user registered", zap.Int64("user_id", user.ID))
	c.JSON(http.StatusCreated, gin.H{
		"token": token,
		"user":  toUserView(&user),
	})
}

// Login handles POST /api/users/login
func (h *UserHandler) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondInvalid(c, err.Error())
		return
	}

	user, err := h.store.GetByEmail(c.Request.Context(), req.Email)
	if err != nil {
		// A missing account and a wrong password look identical to the
		// caller, so login cannot be used to probe for registered emails.
		if _, code := classify(err); code == codeNotFound {
			c.JSON(http.StatusUnauthorized, errorResponse{Error: codeUnauthorized, Message: "invalid credentials"})
			return
		}
		respondError(c, h.logger, err)
		return
	}

	if !auth.CheckPasswordHash(req.Password, user.PasswordHash) {
		c.JSON(http.StatusUnauthorized, errorResponse{Error: codeUnauthorized, Message: "invalid credentials"})
		return
	}

	token, err := auth.IssueToken(h.authCfg, user.ID, user.Username)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"token": token,
		"user":  toUserView(user),
	})
}

// Me handles GET /api/users/me
func (h *UserHandler) Me(c *gin.Context) {
	identity, ok := auth.FromContext(c)
	if !ok {
		respondUnauthorized(c)
		return
	}

	user, err := h.store.GetByID(c.Request.Context(), identity.UserID)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, toUserView(user))
}

var _ UserStore = (*db.UserRepository)(nil)

package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/pranauww/gym-startup/internal/auth"
	"github.com/pranauww/gym-startup/internal/cache"
	"github.com/pranauww/gym-startup/internal/db"
	"github.com/pranauww/gym-startup/internal/storage"
	"github.com/pranauww/gym-startup/pkg/logging"
)

// Router sets up API routes
type Router struct {
	users        *UserHandler
	exercises    *ExerciseHandler
	workouts     *WorkoutHandler
	social       *SocialHandler
	competitions *CompetitionHandler
	upload       *UploadHandler
	authCfg      auth.Config
	db           *db.DB
	cache        *cache.Cache
	logger       *zap.Logger
}

// NewRouter creates a new API router
func NewRouter(database *db.DB, redisCache *cache.Cache, uploader storage.Uploader, authCfg auth.Config) *Router {
	repo := db.NewRepository(database.DB)
	userRepo := db.NewUserRepository(repo)
	exerciseRepo := db.NewExerciseRepository(repo)
	workoutRepo := db.NewWorkoutRepository(repo)
	socialRepo := db.NewSocialRepository(repo)
	competitionRepo := db.NewCompetitionRepository(repo)

	return &Router{
		users:        NewUserHandler(userRepo, authCfg),
		exercises:    NewExerciseHandler(exerciseRepo),
		workouts:     NewWorkoutHandler(workoutRepo),
		social:       NewSocialHandler(socialRepo, workoutRepo),
		competitions: NewCompetitionHandler(competitionRepo, redisCache),
		upload:       NewUploadHandler(uploader),
		authCfg:      authCfg,
		db:           database,
		cache:        redisCache,
		logger:       logging.WithComponent("api-router"),
	}
}

// SetupRoutes sets up all API routes
func (r *Router) SetupRoutes(engine *gin.Engine) {
	// Health check endpoints
	engine.GET("/health", r.healthHandler)
	engine.GET("/.well-known/healthcheck.json", r.healthHandler)

	api := engine.Group("/api")

	// Public endpoints
	api.POST("/users/register", r.users.Register)
	api.POST("/users/login", r.users.Login)
	api.GET("/exercises", r.exercises.List)
	api.GET("/exercises/search/:query", r.exercises.Search)
	api.GET("/exercises/:id", r.exercises.Get)

	// Everything below requires a valid token.
	authed := api.Group("")
	authed.Use(auth.Middleware(r.authCfg))

	authed.GET("/users/me", r.users.Me)
	authed.POST("/exercises", r.exercises.Create)

	authed.POST("/workouts", r.workouts.Create)
	authed.GET("/workouts", r.workouts.List)
	authed.GET("/workouts/stats/summary", r.workouts.Stats)
	authed.GET("/workouts/:id", r.workouts.Get)
	authed.PUT("/workouts/:id", r.workouts.Update)
	authed.DELETE("/workouts/:id", r.workouts.Delete)
	authed.POST("/workouts/:id/sets", r.workouts.AddSet)

	authed.POST("/social/follow/:userId", r.social.Follow)
	authed.DELETE("/social/follow/:userId", r.social.Unfollow)
	authed.GET("/social/feed", r.social.Feed)
	authed.GET("/social/followers", r.social.Followers)
	authed.GET("/social/following", r.social.Following)
	authed.POST("/social/workouts/:id/comments", r.social.AddComment)
	authed.GET("/social/workouts/:id/comments", r.social.ListComments)

	authed.POST("/social/competitions", r.competitions.Create)
	authed.GET("/social/competitions", r.competitions.ListActive)
	authed.POST("/social/competitions/:id/entries", r.competitions.SubmitEntry)
	authed.GET("/social/competitions/:id/leaderboard", r.competitions.Leaderboard)

	authed.POST("/upload/video", r.upload.Video)
	authed.POST("/upload/presign", r.upload.Presign)
	authed.DELETE("/upload/video", r.upload.Delete)
}

// healthHandler reports the service and its dependencies. Degraded
// dependencies flip the status but the endpoint still answers 200 so
// orchestrators can tell "unhealthy" from "unreachable".
func (r *Router) healthHandler(c *gin.Context) {
	status := "OK"

	dbStatus := "OK"
	if err := r.db.Health(c.Request.Context()); err != nil {
		dbStatus = "DOWN"
		status = "DEGRADED"
		r.logger.Warn("database health check failed", zap.Error(err))
	}

	cacheStatus := "DISABLED"
	if err := r.cache.Health(c.Request.Context()); err == nil {
		cacheStatus = "OK"
	} else if err != cache.ErrCacheDisabled {
		cacheStatus = "DOWN"
		status = "DEGRADED"
		r.logger.Warn("cache health check failed", zap.Error(err))
	}

	c.JSON(http.StatusOK, gin.H{
		"status":  status,
		"service": "gym-startup-api",
		"checks": gin.H{
			"database": dbStatus,
			"cache":    cacheStatus,
		},
	})
}

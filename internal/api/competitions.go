package api

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/pranauww/gym-startup/internal/auth"
	"github.com/pranauww/gym-startup/internal/cache"
	"github.com/pranauww/gym-startup/internal/db"
	"github.com/pranauww/gym-startup/internal/models"
	"github.com/pranauww/gym-startup/pkg/logging"
)

// leaderboardTTL bounds leaderboard staleness. Entries are immutable
// once submitted and the key is invalidated on every new entry, so a
// short TTL is only a safety net.
const leaderboardTTL = 30 * time.Second

// CompetitionStore is the persistence surface the competition handlers need.
type CompetitionStore interface {
	Create(ctx context.Context, competition *models.Competition) error
	ListActive(ctx context.Context) ([]models.Competition, error)
	SubmitEntry(ctx context.Context, competitionID, userID, value int64) (*models.CompetitionEntry, error)
	Leaderboard(ctx context.Context, competitionID int64) ([]db.LeaderboardEntry, error)
}

// CompetitionHandler serves competitions, entries and leaderboards.
type CompetitionHandler struct {
	store  CompetitionStore
	cache  *cache.Cache
	logger *zap.Logger
}

// NewCompetitionHandler creates a new competition handler
func NewCompetitionHandler(store CompetitionStore, c *cache.Cache) *CompetitionHandler {
	return &CompetitionHandler{
		store:  store,
		cache:  c,
		logger: logging.WithComponent("api-competitions"),
	}
}

type createCompetitionRequest struct {
	Name        string    `json:"name" binding:"required,max=100"`
	Description string    `json:"description" binding:"omitempty,max=1000"`
	StartDate   time.Time `json:"start_date" binding:"required"`
	EndDate     time.Time `json:"end_date" binding:"required"`
}

type submitEntryRequest struct {
	Value int64 `json:"value" binding:"required,min=1"`
}

type competitionView struct {
	ID          int64     `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	StartDate   time.Time `json:"start_date"`
	EndDate     time.Time `json:"end_date"`
	Status      string    `json:"status"`
	CreatedAt   time.Time `json:"created_at"`
}

type entryView struct {
	ID            int64     `json:"id"`
	CompetitionID int64     `json:"competition_id"`
	UserID        int64     `json:"user_id"`
	Value         int64     `json:"value"`
	CreatedAt     time.Time `json:"created_at"`
}

func toCompetitionView(competition *models.Competition, now time.Time) competitionView {
	return competitionView{
		ID:          competition.ID,
		Name:        competition.Name,
		Description: competition.Description,
		StartDate:   competition.StartDate,
		EndDate:     competition.EndDate,
		Status:      string(competition.StatusAt(now)),
		CreatedAt:   competition.CreatedAt,
	}
}

// Create handles POST /api/social/competitions
func (h *CompetitionHandler) Create(c *gin.Context) {
	if _, ok := auth.FromContext(c); !ok {
		respondUnauthorized(c)
		return
	}

	var req createCompetitionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondInvalid(c, err.Error())
		return
	}
	if !req.EndDate.After(req.StartDate) {
		respondInvalid(c, "end_date must be after start_date")
		return
	}

	competition := models.Competition{
		Name:        req.Name,
		Description: req.Description,
		StartDate:   req.StartDate.UTC(),
		EndDate:     req.EndDate.UTC(),
	}
	if err := h.store.Create(c.Request.Context(), &competition); err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusCreated, toCompetitionView(&competition, time.Now().UTC()))
}

// ListActive handles GET /api/social/competitions
func (h *CompetitionHandler) ListActive(c *gin.Context) {
	competitions, err := h.store.ListActive(c.Request.Context())
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	now := time.Now().UTC()
	views := make([]competitionView, 0, len(competitions))
	for i := range competitions {
		views = append(views, toCompetitionView(&competitions[i], now))
	}
	c.JSON(http.StatusOK, views)
}

// SubmitEntry handles POST /api/social/competitions/:id/entries
func (h *CompetitionHandler) SubmitEntry(c *gin.Context) {
	identity, ok := auth.FromContext(c)
	if !ok {
		respondUnauthorized(c)
		return
	}

	competitionID, err := pathID(c, "id")
	if err != nil {
		respondInvalid(c, err.Error())
		return
	}

	var req submitEntryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondInvalid(c, err.Error())
		return
	}

	entry, err := h.store.SubmitEntry(c.Request.Context(), competitionID, identity.UserID, req.Value)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	// The cached leaderboard is stale now. Best effort: on failure the
	// TTL still bounds staleness.
	if err := h.cache.Delete(c.Request.Context(), cache.LeaderboardKey(competitionID)); err != nil && err != cache.ErrCacheDisabled {
		h.logger.Warn("leaderboard cache invalidation failed",
			zap.Int64("competition_id", competitionID),
			zap.Error(err))
	}

	c.JSON(http.StatusCreated, entryView{
		ID:            entry.ID,
		CompetitionID: entry.CompetitionID,
		UserID:        entry.UserID,
		Value:         entry.Value,
		CreatedAt:     entry.CreatedAt,
	})
}

// Leaderboard handles GET /api/social/competitions/:id/leaderboard
func (h *CompetitionHandler) Leaderboard(c *gin.Context) {
	competitionID, err := pathID(c, "id")
	if err != nil {
		respondInvalid(c, err.Error())
		return
	}

	key := cache.LeaderboardKey(competitionID)
	if cached, err := h.cache.Get(c.Request.Context(), key); err == nil {
		var entries []db.LeaderboardEntry
		if err := json.Unmarshal([]byte(cached), &entries); err == nil {
			c.JSON(http.StatusOK, listItems(entries))
			return
		}
	}

	entries, err := h.store.Leaderboard(c.Request.Context(), competitionID)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	if payload, err := json.Marshal(entries); err == nil {
		if err := h.cache.Set(c.Request.Context(), key, payload, leaderboardTTL); err != nil && err != cache.ErrCacheDisabled {
			h.logger.Warn("leaderboard cache write failed",
				zap.Int64("competition_id", competitionID),
				zap.Error(err))
		}
	}

	c.JSON(http.StatusOK, listItems(entries))
}

// listItems wraps leaderboard rows so an empty board serializes as an
// empty array, never null.
func listItems(entries []db.LeaderboardEntry) gin.H {
	if entries == nil {
		entries = []db.LeaderboardEntry{}
	}
	return gin.H{"entries": entries}
}

var _ CompetitionStore = (*db.CompetitionRepository)(nil)

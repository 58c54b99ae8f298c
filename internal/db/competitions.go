package db

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/pranauww/gym-startup/internal/models"
)

// LeaderboardEntry is a competition entry joined with submitter identity.
type LeaderboardEntry struct {
	ID            int64     `json:"id"`
	CompetitionID int64     `json:"competition_id"`
	UserID        int64     `json:"user_id"`
	Username      string    `json:"username"`
	Value         int64     `json:"value"`
	CreatedAt     time.Time `json:"created_at"`
}

// CompetitionRepository provides competition database operations
type CompetitionRepository struct {
	*Repository
}

// NewCompetitionRepository creates a new competition repository
func NewCompetitionRepository(repo *Repository) *CompetitionRepository {
	return &CompetitionRepository{Repository: repo}
}

// Create creates a new competition
func (r *CompetitionRepository) Create(ctx context.Context, competition *models.Competition) error {
	return r.db.WithContext(ctx).Create(competition).Error
}

// ListActive retrieves competitions whose end date has not passed,
// most recently started first.
func (r *CompetitionRepository) ListActive(ctx context.Context) ([]models.Competition, error) {
	var competitions []models.Competition
	err := r.db.WithContext(ctx).
		Where("end_date >= ?", time.Now().UTC()).
		Order("start_date DESC").
		Find(&competitions).Error
	if err != nil {
		return nil, err
	}
	return competitions, nil
}

// SubmitEntry records a user's entry in a competition. The window is
// re-checked inside the transaction: a request that arrived while the
// competition was open but commits after the end date is rejected.
// A second entry for the same (competition, user) yields ErrConflict.
func (r *CompetitionRepository) SubmitEntry(ctx context.Context, competitionID, userID, value int64) (*models.CompetitionEntry, error) {
	if value <= 0 {
		return nil, invalidArgument("entry value must be positive")
	}

	entry := models.CompetitionEntry{
		CompetitionID: competitionID,
		UserID:        userID,
		Value:         value,
	}
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var competition models.Competition
		if err := tx.First(&competition, competitionID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return notFound("competition %d", competitionID)
			}
			return err
		}
		if !competition.Open(time.Now().UTC()) {
			return invalidArgument("competition %d has ended", competitionID)
		}

		if err := tx.Create(&entry).Error; err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return conflict("already entered competition %d", competitionID)
			}
			return err
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &entry, nil
}

// Leaderboard retrieves all entries for a competition joined with
// submitter usernames, ordered by value descending. Ties break by
// entry id ascending, so earlier submissions rank first and the
// ordering is deterministic.
func (r *CompetitionRepository) Leaderboard(ctx context.Context, competitionID int64) ([]LeaderboardEntry, error) {
	var competition models.Competition
	if err := r.db.WithContext(ctx).First(&competition, competitionID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, notFound("competition %d", competitionID)
		}
		return nil, err
	}

	var entries []LeaderboardEntry
	err := r.db.WithContext(ctx).
		Table("competition_entries ce").
		Select("ce.id, ce.competition_id, ce.user_id, u.username, ce.value, ce.created_at").
		Joins("JOIN users u ON u.id = ce.user_id").
		Where("ce.competition_id = ?", competitionID).
		Order("ce.value DESC, ce.id ASC").
		Scan(&entries).Error
	if err != nil {
		return nil, err
	}
	return entries, nil
}

package api

import (
	"context"
	"fmt"
	"net/http"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/pranauww/gym-startup/internal/auth"
	"github.com/pranauww/gym-startup/internal/db"
	"github.com/pranauww/gym-startup/internal/models"
)

type fakeCompetitionStore struct {
	competitions   []models.Competition
	entry          *models.CompetitionEntry
	entryErr       error
	leaderboard    []db.LeaderboardEntry
	leaderboardErr error

	gotCompetitionID int64
	gotUserID        int64
	gotValue         int64
	leaderboardCalls int
}

func (f *fakeCompetitionStore) Create(_ context.Context, competition *models.Competition) error {
	competition.ID = 11
	return nil
}

func (f *fakeCompetitionStore) ListActive(context.Context) ([]models.Competition, error) {
	return f.competitions, nil
}

func (f *fakeCompetitionStore) SubmitEntry(_ context.Context, competitionID, userID, value int64) (*models.CompetitionEntry, error) {
	f.gotCompetitionID = competitionID
	f.gotUserID = userID
	f.gotValue = value
	return f.entry, f.entryErr
}

func (f *fakeCompetitionStore) Leaderboard(_ context.Context, competitionID int64) ([]db.LeaderboardEntry, error) {
	f.leaderboardCalls++
	f.gotCompetitionID = competitionID
	return f.leaderboard, f.leaderboardErr
}

func competitionTestEngine(store CompetitionStore) *gin.Engine {
	// Leaderboard caching is skipped with a nil cache; every read hits
	// the store.
	handler := NewCompetitionHandler(store, nil)
	return newTestEngine(&auth.Identity{UserID: 5, Username: "lifter"}, func(g *gin.RouterGroup) {
		g.POST("/social/competitions", handler.Create)
		g.GET("/social/competitions", handler.ListActive)
		g.POST("/social/competitions/:id/entries", handler.SubmitEntry)
		g.GET("/social/competitions/:id/leaderboard", handler.Leaderboard)
	})
}

func TestCompetitionCreate(t *testing.T) {
	tests := []struct {
		name       string
		body       string
		wantStatus int
	}{
		{
			name:       "valid window",
			body:       `{"name": "June Squat-Off", "start_date": "2024-06-01T00:00:00Z", "end_date": "2024-06-30T00:00:00Z"}`,
			wantStatus: http.StatusCreated,
		},
		{
			name:       "end before start",
			body:       `{"name": "Backwards", "start_date": "2024-06-30T00:00:00Z", "end_date": "2024-06-01T00:00:00Z"}`,
			wantStatus: http.StatusBadRequest,
		},
		{
			name:       "missing name",
			body:       `{"start_date": "2024-06-01T00:00:00Z", "end_date": "2024-06-30T00:00:00Z"}`,
			wantStatus: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			engine := competitionTestEngine(&fakeCompetitionStore{})

			recorder := performJSON(t, engine, http.MethodPost, "/social/competitions", tt.body)
			if recorder.Code != tt.wantStatus {
				t.Errorf("status = %d, want %d: %s", recorder.Code, tt.wantStatus, recorder.Body.String())
			}
		})
	}
}

func TestCompetitionListActiveStatus(t *testing.T) {
	now := time.Now().UTC()
	store := &fakeCompetitionStore{
		competitions: []models.Competition{
			{ID: 1, Name: "Running", StartDate: now.AddDate(0, 0, -1), EndDate: now.AddDate(0, 0, 6)},
			{ID: 2, Name: "Soon", StartDate: now.AddDate(0, 0, 2), EndDate: now.AddDate(0, 0, 9)},
		},
	}
	engine := competitionTestEngine(store)

	recorder := performJSON(t, engine, http.MethodGet, "/social/competitions", "")
	if recorder.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", recorder.Code, http.StatusOK)
	}

	var body []competitionView
	decodeBody(t, recorder, &body)
	if len(body) != 2 {
		t.Fatalf("competitions = %d, want 2", len(body))
	}
	if body[0].Status != string(models.CompetitionActive) {
		t.Errorf("first status = %q, want active", body[0].Status)
	}
	if body[1].Status != string(models.CompetitionUpcoming) {
		t.Errorf("second status = %q, want upcoming", body[1].Status)
	}
}

func TestCompetitionSubmitEntry(t *testing.T) {
	tests := []struct {
		name       string
		body       string
		storeErr   error
		wantStatus int
	}{
		{
			name:       "valid entry",
			body:       `{"value": 150}`,
			wantStatus: http.StatusCreated,
		},
		{
			name:       "zero value rejected by binding",
			body:       `{"value": 0}`,
			wantStatus: http.StatusBadRequest,
		},
		{
			name:       "competition ended",
			body:       `{"value": 150}`,
			storeErr:   fmt.Errorf("%w: competition 3 has ended", db.ErrInvalidArgument),
			wantStatus: http.StatusBadRequest,
		},
		{
			name:       "duplicate entry",
			body:       `{"value": 150}`,
			storeErr:   fmt.Errorf("%w: already entered", db.ErrConflict),
			wantStatus: http.StatusConflict,
		},
		{
			name:       "missing competition",
			body:       `{"value": 150}`,
			storeErr:   fmt.Errorf("%w: competition 3", db.ErrNotFound),
			wantStatus: http.StatusNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := &fakeCompetitionStore{
				entry:    &models.CompetitionEntry{ID: 1, CompetitionID: 3, UserID: 5, Value: 150},
				entryErr: tt.storeErr,
			}
			engine := competitionTestEngine(store)

			recorder := performJSON(t, engine, http.MethodPost, "/social/competitions/3/entries", tt.body)
			if recorder.Code != tt.wantStatus {
				t.Errorf("status = %d, want %d: %s", recorder.Code, tt.wantStatus, recorder.Body.String())
			}
			if tt.wantStatus == http.StatusCreated {
				if store.gotUserID != 5 || store.gotCompetitionID != 3 || store.gotValue != 150 {
					t.Errorf("submitted (%d, %d, %d), want (3, 5, 150)",
						store.gotCompetitionID, store.gotUserID, store.gotValue)
				}
			}
		})
	}
}

func TestCompetitionLeaderboard(t *testing.T) {
	store := &fakeCompetitionStore{
		leaderboard: []db.LeaderboardEntry{
			{ID: 2, UserID: 8, Username: "friend", Value: 200},
			{ID: 1, UserID: 5, Username: "lifter", Value: 150},
		},
	}
	engine := competitionTestEngine(store)

	recorder := performJSON(t, engine, http.MethodGet, "/social/competitions/3/leaderboard", "")
	if recorder.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", recorder.Code, http.StatusOK)
	}
	if store.leaderboardCalls != 1 {
		t.Errorf("store calls = %d, want 1", store.leaderboardCalls)
	}

	var body struct {
		Entries []db.LeaderboardEntry `json:"entries"`
	}
	decodeBody(t, recorder, &body)
	if len(body.Entries) != 2 {
		t.Fatalf("entries = %d, want 2", len(body.Entries))
	}
	if body.Entries[0].Value != 200 {
		t.Errorf("top value = %d, want 200", body.Entries[0].Value)
	}
}

func TestCompetitionLeaderboardEmpty(t *testing.T) {
	engine := competitionTestEngine(&fakeCompetitionStore{})

	recorder := performJSON(t, engine, http.MethodGet, "/social/competitions/3/leaderboard", "")
	if recorder.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", recorder.Code, http.StatusOK)
	}

	var body struct {
		Entries []db.LeaderboardEntry `json:"entries"`
	}
	decodeBody(t, recorder, &body)
	if body.Entries == nil {
		t.Error("empty leaderboard should serialize as [], not null")
	}
}

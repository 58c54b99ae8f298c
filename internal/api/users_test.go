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

var testAuthCfg = auth.Config{
	Secret:   "test-secret",
	Issuer:   "gym-startup",
	TokenTTL: time.Hour,
}

type fakeUserStore struct {
	user      *models.User
	createErr error
	getErr    error

	gotUser *models.User
}

func (f *fakeUserStore) Create(_ context.Context, user *models.User) error {
	f.gotUser = user
	if f.createErr != nil {
		return f.createErr
	}
	user.ID = 5
	return nil
}

func (f *fakeUserStore) GetByEmail(context.Context, string) (*models.User, error) {
	return f.user, f.getErr
}

func (f *fakeUserStore) GetByID(context.Context, int64) (*models.User, error) {
	return f.user, f.getErr
}

func userTestEngine(store UserStore, identity *auth.Identity) *gin.Engine {
	handler := NewUserHandler(store, testAuthCfg)
	return newTestEngine(identity, func(g *gin.RouterGroup) {
		g.POST("/users/register", handler.Register)
		g.POST("/users/login", handler.Login)
		g.GET("/users/me", handler.Me)
	})
}

func TestUserRegister(t *testing.T) {
	tests := []struct {
		name       string
		body       string
		createErr  error
		wantStatus int
	}{
		{
			name:       "valid registration",
			body:       `{"username": "lifter", "email": "lifter@example.com", "password": "hunter22"}`,
			wantStatus: http.StatusCreated,
		},
		{
			name:       "short username",
			body:       `{"username": "ab", "email": "lifter@example.com", "password": "hunter22"}`,
			wantStatus: http.StatusBadRequest,
		},
		{
			name:       "non-alphanumeric username",
			body:       `{"username": "lift er!", "email": "lifter@example.com", "password": "hunter22"}`,
			wantStatus: http.StatusBadRequest,
		},
		{
			name:       "malformed email",
			body:       `{"username": "lifter", "email": "not-an-email", "password": "hunter22"}`,
			wantStatus: http.StatusBadRequest,
		},
		{
			name:       "short password",
			body:       `{"username": "lifter", "email": "lifter@example.com", "password": "abc"}`,
			wantStatus: http.StatusBadRequest,
		},
		{
			name:       "duplicate account",
			body:       `{"username": "lifter", "email": "lifter@example.com", "password": "hunter22"}`,
			createErr:  fmt.Errorf("%w: username or email already taken", db.ErrConflict),
			wantStatus: http.StatusConflict,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := &fakeUserStore{createErr: tt.createErr}
			engine := userTestEngine(store, nil)

			recorder := performJSON(t, engine, http.MethodPost, "/users/register", tt.body)
			if recorder.Code != tt.wantStatus {
				t.Errorf("status = %d, want %d: %s", recorder.Code, tt.wantStatus, recorder.Body.String())
			}
		})
	}
}

func TestUserRegisterHashesPassword(t *testing.T) {
	store := &fakeUserStore{}
	engine := userTestEngine(store, nil)

	recorder := performJSON(t, engine, http.MethodPost, "/users/register",
		`{"username": "lifter", "email": "lifter@example.com", "password": "hunter22"}`)
	if recorder.Code != http.StatusCreated {
		t.Fatalf("status = %d, want %d: %s", recorder.Code, http.StatusCreated, recorder.Body.String())
	}

	if store.gotUser.PasswordHash == "hunter22" || store.gotUser.PasswordHash == "" {
		t.Error("password must be stored as a hash, never verbatim")
	}
	if !auth.CheckPasswordHash("hunter22", store.gotUser.PasswordHash) {
		t.Error("stored hash does not verify against the original password")
	}

	var body struct {
		Token string   `json:"token"`
		User  userView `json:"user"`
	}
	decodeBody(t, recorder, &body)
	if body.Token == "" {
		t.Error("registration must return a token")
	}
	identity, err := auth.ParseToken(testAuthCfg, body.Token)
	if err != nil {
		t.Fatalf("returned token does not parse: %v", err)
	}
	if identity.UserID != 5 {
		t.Errorf("token subject = %d, want 5", identity.UserID)
	}
}

func TestUserLogin(t *testing.T) {
	hash, err := auth.HashPassword("hunter22")
	if err != nil {
		t.Fatal(err)
	}
	registered := &models.User{
		ID:           5,
		Username:     "lifter",
		Email:        "lifter@example.com",
		PasswordHash: hash,
	}

	tests := []struct {
		name       string
		body       string
		user       *models.User
		getErr     error
		wantStatus int
	}{
		{
			name:       "valid credentials",
			body:       `{"email": "lifter@example.com", "password": "hunter22"}`,
			user:       registered,
			wantStatus: http.StatusOK,
		},
		{
			name:       "wrong password",
			body:       `{"email": "lifter@example.com", "password": "wrong"}`,
			user:       registered,
			wantStatus: http.StatusUnauthorized,
		},
		{
			name:       "unknown email",
			body:       `{"email": "nobody@example.com", "password": "hunter22"}`,
			getErr:     fmt.Errorf("%w: user", db.ErrNotFound),
			wantStatus: http.StatusUnauthorized,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := &fakeUserStore{user: tt.user, getErr: tt.getErr}
			engine := userTestEngine(store, nil)

			recorder := performJSON(t, engine, http.MethodPost, "/users/login", tt.body)
			if recorder.Code != tt.wantStatus {
				t.Errorf("status = %d, want %d: %s", recorder.Code, tt.wantStatus, recorder.Body.String())
			}
		})
	}
}

func TestUserLoginDoesNotRevealAccounts(t *testing.T) {
	// A missing account and a bad password must produce identical
	// responses.
	hash, err := auth.HashPassword("hunter22")
	if err != nil {
		t.Fatal(err)
	}

	missing := &fakeUserStore{getErr: fmt.Errorf("%w: user", db.ErrNotFound)}
	wrongPassword := &fakeUserStore{user: &models.User{ID: 5, PasswordHash: hash}}

	bodyA := performJSON(t, userTestEngine(missing, nil), http.MethodPost, "/users/login",
		`{"email": "nobody@example.com", "password": "hunter22"}`)
	bodyB := performJSON(t, userTestEngine(wrongPassword, nil), http.MethodPost, "/users/login",
		`{"email": "lifter@example.com", "password": "wrong"}`)

	if bodyA.Code != bodyB.Code {
		t.Errorf("status codes differ: %d vs %d", bodyA.Code, bodyB.Code)
	}
	if bodyA.Body.String() != bodyB.Body.String() {
		t.Errorf("responses differ: %q vs %q", bodyA.Body.String(), bodyB.Body.String())
	}
}

func TestUserMe(t *testing.T) {
	store := &fakeUserStore{
		user: &models.User{ID: 5, Username: "lifter", Email: "lifter@example.com"},
	}
	engine := userTestEngine(store, &auth.Identity{UserID: 5, Username: "lifter"})

	recorder := performJSON(t, engine, http.MethodGet, "/users/me", "")
	if recorder.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", recorder.Code, http.StatusOK)
	}

	var body userView
	decodeBody(t, recorder, &body)
	if body.Username != "lifter" {
		t.Errorf("username = %q, want %q", body.Username, "lifter")
	}
}

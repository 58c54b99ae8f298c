package api

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/pranauww/gym-startup/internal/auth"
)

func init() {
	gin.SetMode(gin.TestMode)
}

// newTestEngine builds an engine whose routes run as the given user.
// A nil identity simulates an unauthenticated request slipping past
// the token middleware.
func newTestEngine(identity *auth.Identity, register func(*gin.RouterGroup)) *gin.Engine {
	engine := gin.New()
	group := engine.Group("")
	if identity != nil {
		group.Use(func(c *gin.Context) {
			auth.WithIdentity(c, identity)
			c.Next()
		})
	}
	register(group)
	return engine
}

func performJSON(t *testing.T, engine *gin.Engine, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	recorder := httptest.NewRecorder()
	engine.ServeHTTP(recorder, req)
	return recorder
}

func decodeBody(t *testing.T, recorder *httptest.ResponseRecorder, target interface{}) {
	t.Helper()
	if err := json.Unmarshal(recorder.Body.Bytes(), target); err != nil {
		t.Fatalf("failed to decode response %q: %v", recorder.Body.String(), err)
	}
}

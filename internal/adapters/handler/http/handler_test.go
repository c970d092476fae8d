package http

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/comitanigiacomo/kanso-habit-tracker/internal/adapters/handler/http/middleware"
	"github.com/comitanigiacomo/kanso-habit-tracker/internal/core/domain"
	"github.com/comitanigiacomo/kanso-habit-tracker/internal/core/services"
)

// MockLedgerRepo is an in-memory ledger store whose saves can be made to fail.
type MockLedgerRepo struct {
	mu      sync.Mutex
	store   map[string]map[string][]string
	saveErr error
}

func NewMockLedgerRepo() *MockLedgerRepo {
	return &MockLedgerRepo{store: make(map[string]map[string][]string)}
}

func (m *MockLedgerRepo) Load(ctx context.Context, username string) (domain.Ledger, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return domain.ParseLedger(m.store[username]), nil
}

func (m *MockLedgerRepo) Save(ctx context.Context, username string, ledger domain.Ledger) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.saveErr != nil {
		return m.saveErr
	}
	m.store[username] = ledger.Raw()
	return nil
}

var fixedNow = time.Date(2024, time.March, 10, 22, 0, 0, 0, time.UTC)

func fixedClock() time.Time { return fixedNow }

// withUser stands in for the auth middleware.
func withUser(username string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if username != "" {
			c.Set(middleware.ContextUsernameKey, username)
		}
		c.Next()
	}
}

func setupLedgerRouter(username string) (*gin.Engine, *MockLedgerRepo) {
	gin.SetMode(gin.TestMode)

	repo := NewMockLedgerRepo()
	habits := NewHabitHandler(services.NewLedgerService(repo), fixedClock)
	dashboard := NewDashboardHandler(services.NewDashboardService(repo), fixedClock)

	r := gin.New()
	api := r.Group("/api/v1")
	api.Use(withUser(username))
	habits.RegisterRoutes(api)
	dashboard.RegisterRoutes(api)
	return r, repo
}

func doJSON(r *gin.Engine, method, path string, body any) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		_ = json.NewEncoder(&buf).Encode(body)
	}
	req, _ := http.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

var errDiskFull = errors.New("disk full")

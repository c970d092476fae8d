package http

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/comitanigiacomo/kanso-habit-tracker/internal/core/domain"
	"github.com/comitanigiacomo/kanso-habit-tracker/internal/core/services"
)

type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) Create(ctx context.Context, user *domain.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) GetByUsername(ctx context.Context, username string) (*domain.User, error) {
	args := m.Called(ctx, username)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func setupAuthHandler() (*gin.Engine, *MockUserRepository, *services.TokenService) {
	gin.SetMode(gin.TestMode)

	mockRepo := new(MockUserRepository)
	tokenService := services.NewTokenService("handler-secret", "handler-test", time.Hour, mockRepo)
	authHandler := NewAuthHandler(services.NewAuthService(mockRepo), tokenService)

	router := gin.New()
	authHandler.RegisterRoutes(router.Group(""))

	return router, mockRepo, tokenService
}

func postLogin(router *gin.Engine, payload map[string]string) *httptest.ResponseRecorder {
	body, _ := json.Marshal(payload)
	req, _ := http.NewRequest(http.MethodPost, "/auth/login", bytes.NewBuffer(body))
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestAuthHandler_Login(t *testing.T) {
	t.Run("Success: First login registers the user and returns 201", func(t *testing.T) {
		router, mockRepo, tokenService := setupAuthHandler()

		mockRepo.On("GetByUsername", mock.Anything, "alice").Return(nil, domain.ErrUserNotFound).Once()
		mockRepo.On("Create", mock.Anything, mock.AnythingOfType("*domain.User")).Return(nil)

		w := postLogin(router, map[string]string{"username": "alice", "password": "pw"})

		assert.Equal(t, http.StatusCreated, w.Code)

		var response loginResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
		assert.Equal(t, "alice", response.Username)
		assert.True(t, response.Created)
		assert.NotContains(t, w.Body.String(), "password")

		mockRepo.On("GetByUsername", mock.Anything, "alice").Return(&domain.User{Username: "alice"}, nil)
		username, err := tokenService.ValidateToken(response.Token)
		require.NoError(t, err)
		assert.Equal(t, "alice", username)

		mockRepo.AssertExpectations(t)
	})

	t.Run("Success: Returning user gets 200", func(t *testing.T) {
		router, mockRepo, _ := setupAuthHandler()

		user, _ := domain.NewUser("alice")
		require.NoError(t, user.SetPassword("pw"))
		mockRepo.On("GetByUsername", mock.Anything, "alice").Return(user, nil)

		w := postLogin(router, map[string]string{"username": "alice", "password": "pw"})

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), `"created":false`)
		mockRepo.AssertNotCalled(t, "Create")
	})

	t.Run("Fail: Wrong password returns 401", func(t *testing.T) {
		router, mockRepo, _ := setupAuthHandler()

		user, _ := domain.NewUser("alice")
		require.NoError(t, user.SetPassword("pw"))
		mockRepo.On("GetByUsername", mock.Anything, "alice").Return(user, nil)

		w := postLogin(router, map[string]string{"username": "alice", "password": "nope"})

		assert.Equal(t, http.StatusUnauthorized, w.Code)
		assert.Contains(t, w.Body.String(), "invalid credentials")
	})

	t.Run("Fail: Missing fields return 400", func(t *testing.T) {
		router, mockRepo, _ := setupAuthHandler()

		for _, payload := range []map[string]string{
			{"username": "alice"},
			{"password": "pw"},
			{"username": "", "password": ""},
		} {
			w := postLogin(router, payload)
			assert.Equal(t, http.StatusBadRequest, w.Code)
		}
		mockRepo.AssertNotCalled(t, "GetByUsername")
	})

	t.Run("Fail: Blank username returns 400", func(t *testing.T) {
		router, mockRepo, _ := setupAuthHandler()

		w := postLogin(router, map[string]string{"username": "   ", "password": "pw"})

		assert.Equal(t, http.StatusBadRequest, w.Code)
		mockRepo.AssertNotCalled(t, "GetByUsername")
	})

	t.Run("Fail: Should return 500 Internal Server Error on DB failure", func(t *testing.T) {
		router, mockRepo, _ := setupAuthHandler()

		mockRepo.On("GetByUsername", mock.Anything, "alice").Return(nil, errors.New("db connection lost"))

		w := postLogin(router, map[string]string{"username": "alice", "password": "pw"})

		assert.Equal(t, http.StatusInternalServerError, w.Code)
		assert.Contains(t, w.Body.String(), "internal server error")
	})
}

package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"reviewhub/internal/http-api/dto"
	"reviewhub/internal/http-api/models"
	"reviewhub/internal/http-api/service"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

// MockAuthService mocks the AuthService interface
type MockAuthService struct {
	mock.Mock
}

func (m *MockAuthService) Signup(ctx context.Context, username, email string) (*models.User, error) {
	args := m.Called(username, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockAuthService) IssueToken(ctx context.Context, username, code string) (string, error) {
	args := m.Called(username, code)
	return args.String(0), args.Error(1)
}

func (m *MockAuthService) ValidateToken(tokenString string) (*service.Claims, error) {
	args := m.Called(tokenString)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.Claims), args.Error(1)
}

func setupRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.HandleMethodNotAllowed = true
	return r
}

func noopMiddleware(c *gin.Context) { c.Next() }

func postJSON(router *gin.Engine, path string, payload any) *httptest.ResponseRecorder {
	body, _ := json.Marshal(payload)
	req, _ := http.NewRequest("POST", path, bytes.NewBuffer(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestSignupEndpoint_Success(t *testing.T) {
	mockAuthService := new(MockAuthService)
	router := setupRouter()
	NewAuthHandler(mockAuthService).RegisterRoutes(router.Group("/api/v1"), noopMiddleware)

	user := &models.User{Username: "testuser", Email: "test@example.com"}
	mockAuthService.On("Signup", "testuser", "test@example.com").Return(user, nil)

	w := postJSON(router, "/api/v1/auth/signup", dto.SignupRequest{
		Username: "testuser",
		Email:    "test@example.com",
	})

	assert.Equal(t, http.StatusOK, w.Code)

	var response dto.SignupResponse
	json.Unmarshal(w.Body.Bytes(), &response)
	assert.Equal(t, "testuser", response.Username)
	assert.Equal(t, "test@example.com", response.Email)
	mockAuthService.AssertExpectations(t)
}

func TestSignupEndpoint_ReservedUsername(t *testing.T) {
	mockAuthService := new(MockAuthService)
	router := setupRouter()
	NewAuthHandler(mockAuthService).RegisterRoutes(router.Group("/api/v1"), noopMiddleware)

	mockAuthService.On("Signup", "me", "me@example.com").Return(nil, service.ErrReservedUsername)

	w := postJSON(router, "/api/v1/auth/signup", dto.SignupRequest{
		Username: "me",
		Email:    "me@example.com",
	})

	assert.Equal(t, http.StatusBadRequest, w.Code)
	mockAuthService.AssertExpectations(t)
}

func TestSignupEndpoint_IdentityTaken(t *testing.T) {
	mockAuthService := new(MockAuthService)
	router := setupRouter()
	NewAuthHandler(mockAuthService).RegisterRoutes(router.Group("/api/v1"), noopMiddleware)

	mockAuthService.On("Signup", "testuser", "other@example.com").Return(nil, service.ErrIdentityTaken)

	w := postJSON(router, "/api/v1/auth/signup", dto.SignupRequest{
		Username: "testuser",
		Email:    "other@example.com",
	})

	assert.Equal(t, http.StatusConflict, w.Code)
}

func TestSignupEndpoint_MissingEmail(t *testing.T) {
	mockAuthService := new(MockAuthService)
	router := setupRouter()
	NewAuthHandler(mockAuthService).RegisterRoutes(router.Group("/api/v1"), noopMiddleware)

	w := postJSON(router, "/api/v1/auth/signup", gin.H{"username": "testuser"})

	assert.Equal(t, http.StatusBadRequest, w.Code)
	mockAuthService.AssertNotCalled(t, "Signup")
}

func TestTokenEndpoint_Success(t *testing.T) {
	mockAuthService := new(MockAuthService)
	router := setupRouter()
	NewAuthHandler(mockAuthService).RegisterRoutes(router.Group("/api/v1"), noopMiddleware)

	mockAuthService.On("IssueToken", "testuser", "AbCdEfGhIj").Return("signed-jwt", nil)

	w := postJSON(router, "/api/v1/auth/token", dto.TokenRequest{
		Username:         "testuser",
		ConfirmationCode: "AbCdEfGhIj",
	})

	assert.Equal(t, http.StatusOK, w.Code)

	var response dto.TokenResponse
	json.Unmarshal(w.Body.Bytes(), &response)
	assert.Equal(t, "signed-jwt", response.Token)
}

func TestTokenEndpoint_UnknownUsername(t *testing.T) {
	mockAuthService := new(MockAuthService)
	router := setupRouter()
	NewAuthHandler(mockAuthService).RegisterRoutes(router.Group("/api/v1"), noopMiddleware)

	mockAuthService.On("IssueToken", "ghost", "AbCdEfGhIj").Return("", service.ErrUnknownUsername)

	w := postJSON(router, "/api/v1/auth/token", dto.TokenRequest{
		Username:         "ghost",
		ConfirmationCode: "AbCdEfGhIj",
	})

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestTokenEndpoint_WrongCode(t *testing.T) {
	mockAuthService := new(MockAuthService)
	router := setupRouter()
	NewAuthHandler(mockAuthService).RegisterRoutes(router.Group("/api/v1"), noopMiddleware)

	mockAuthService.On("IssueToken", "testuser", "WrongCode1").Return("", service.ErrWrongCode)

	w := postJSON(router, "/api/v1/auth/token", dto.TokenRequest{
		Username:         "testuser",
		ConfirmationCode: "WrongCode1",
	})

	assert.Equal(t, http.StatusForbidden, w.Code)
}

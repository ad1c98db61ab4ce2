package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"reviewhub/internal/http-api/dto"
	"reviewhub/internal/http-api/middleware"
	"reviewhub/internal/http-api/service"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

// MockUserService mocks the UserService interface
type MockUserService struct {
	mock.Mock
}

func (m *MockUserService) List(ctx context.Context, search string, page, pageSize int) (*dto.Paginated[dto.UserResponse], error) {
	args := m.Called(search, page, pageSize)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.Paginated[dto.UserResponse]), args.Error(1)
}

func (m *MockUserService) Create(ctx context.Context, req dto.CreateUserDTO) (*dto.UserResponse, error) {
	args := m.Called(req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.UserResponse), args.Error(1)
}

func (m *MockUserService) GetByUsername(ctx context.Context, username string) (*dto.UserResponse, error) {
	args := m.Called(username)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.UserResponse), args.Error(1)
}

func (m *MockUserService) Update(ctx context.Context, username string, req dto.UpdateUserDTO) (*dto.UserResponse, error) {
	args := m.Called(username, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.UserResponse), args.Error(1)
}

func (m *MockUserService) Delete(ctx context.Context, username string) error {
	args := m.Called(username)
	return args.Error(0)
}

func (m *MockUserService) GetMe(ctx context.Context, userID string) (*dto.UserResponse, error) {
	args := m.Called(userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.UserResponse), args.Error(1)
}

func (m *MockUserService) UpdateMe(ctx context.Context, userID string, req dto.UpdateMeDTO) (*dto.UserResponse, error) {
	args := m.Called(userID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.UserResponse), args.Error(1)
}

func setupUserRouter(mockUserService *MockUserService, mockAuthService *MockAuthService) *gin.Engine {
	router := setupRouter()
	auth := middleware.AuthMiddleware(mockAuthService)
	NewUserHandler(mockUserService).RegisterRoutes(router.Group("/api/v1"), auth)
	return router
}

func authedRequest(method, path, token string) *http.Request {
	req, _ := http.NewRequest(method, path, nil)
	req.Header.Set("Authorization", "Bearer "+token)
	return req
}

func userClaims() *service.Claims {
	return &service.Claims{UserID: "user-id", Username: "plainuser", Role: "user"}
}

func adminClaims() *service.Claims {
	return &service.Claims{UserID: "admin-id", Username: "boss", Role: "admin"}
}

func TestGetMe_AnyAuthenticatedUser(t *testing.T) {
	mockUserService := new(MockUserService)
	mockAuthService := new(MockAuthService)
	router := setupUserRouter(mockUserService, mockAuthService)

	mockAuthService.On("ValidateToken", "user-token").Return(userClaims(), nil)
	mockUserService.On("GetMe", "user-id").Return(&dto.UserResponse{Username: "plainuser", Role: "user"}, nil)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, authedRequest("GET", "/api/v1/users/me", "user-token"))

	assert.Equal(t, http.StatusOK, w.Code)

	var response dto.UserResponse
	json.Unmarshal(w.Body.Bytes(), &response)
	assert.Equal(t, "plainuser", response.Username)
	mockUserService.AssertExpectations(t)
}

func TestGetUser_PlainUserForbidden(t *testing.T) {
	mockUserService := new(MockUserService)
	mockAuthService := new(MockAuthService)
	router := setupUserRouter(mockUserService, mockAuthService)

	mockAuthService.On("ValidateToken", "user-token").Return(userClaims(), nil)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, authedRequest("GET", "/api/v1/users/someoneelse", "user-token"))

	assert.Equal(t, http.StatusForbidden, w.Code)
	mockUserService.AssertNotCalled(t, "GetByUsername")
}

func TestGetUser_AdminAllowed(t *testing.T) {
	mockUserService := new(MockUserService)
	mockAuthService := new(MockAuthService)
	router := setupUserRouter(mockUserService, mockAuthService)

	mockAuthService.On("ValidateToken", "admin-token").Return(adminClaims(), nil)
	mockUserService.On("GetByUsername", "target").Return(&dto.UserResponse{Username: "target"}, nil)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, authedRequest("GET", "/api/v1/users/target", "admin-token"))

	assert.Equal(t, http.StatusOK, w.Code)
	mockUserService.AssertExpectations(t)
}

func TestListUsers_PlainUserForbidden(t *testing.T) {
	mockUserService := new(MockUserService)
	mockAuthService := new(MockAuthService)
	router := setupUserRouter(mockUserService, mockAuthService)

	mockAuthService.On("ValidateToken", "user-token").Return(userClaims(), nil)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, authedRequest("GET", "/api/v1/users", "user-token"))

	assert.Equal(t, http.StatusForbidden, w.Code)
	mockUserService.AssertNotCalled(t, "List")
}

func TestListUsers_Unauthenticated(t *testing.T) {
	mockUserService := new(MockUserService)
	router := setupUserRouter(mockUserService, new(MockAuthService))

	req, _ := http.NewRequest("GET", "/api/v1/users", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestDeleteMe_Refused(t *testing.T) {
	mockUserService := new(MockUserService)
	mockAuthService := new(MockAuthService)
	router := setupUserRouter(mockUserService, mockAuthService)

	mockAuthService.On("ValidateToken", "user-token").Return(userClaims(), nil)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, authedRequest("DELETE", "/api/v1/users/me", "user-token"))

	assert.Equal(t, http.StatusMethodNotAllowed, w.Code)
	mockUserService.AssertNotCalled(t, "Delete")
}

func TestUpdateMe_CannotSmuggleRole(t *testing.T) {
	mockUserService := new(MockUserService)
	mockAuthService := new(MockAuthService)
	router := setupUserRouter(mockUserService, mockAuthService)

	mockAuthService.On("ValidateToken", "user-token").Return(userClaims(), nil)
	// a role field in the payload is simply not part of UpdateMeDTO
	mockUserService.On("UpdateMe", "user-id", dto.UpdateMeDTO{}).
		Return(&dto.UserResponse{Username: "plainuser", Role: "user"}, nil)

	req, _ := http.NewRequest("PATCH", "/api/v1/users/me", jsonBody(`{"role":"admin"}`))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer user-token")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	mockUserService.AssertExpectations(t)
}

func TestDeleteUser_AdminAllowed(t *testing.T) {
	mockUserService := new(MockUserService)
	mockAuthService := new(MockAuthService)
	router := setupUserRouter(mockUserService, mockAuthService)

	mockAuthService.On("ValidateToken", "admin-token").Return(adminClaims(), nil)
	mockUserService.On("Delete", "target").Return(nil)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, authedRequest("DELETE", "/api/v1/users/target", "admin-token"))

	assert.Equal(t, http.StatusNoContent, w.Code)
	mockUserService.AssertExpectations(t)
}

package handler

import (
	"net/http"

	"reviewhub/internal/http-api/dto"
	"reviewhub/internal/http-api/middleware"
	"reviewhub/internal/http-api/service"

	"github.com/gin-gonic/gin"
)

type UserHandler struct {
	userService service.UserService
}

func NewUserHandler(userService service.UserService) *UserHandler {
	return &UserHandler{userService: userService}
}

// RegisterRoutes puts the whole /users tree behind authentication. The
// reserved "me" segment shares the :username routes; admin checks happen
// per handler so that "me" stays reachable for every authenticated user.
func (h *UserHandler) RegisterRoutes(router *gin.RouterGroup, auth gin.HandlerFunc) {
	users := router.Group("/users", auth)
	{
		users.GET("", h.List)
		users.POST("", h.Create)
		users.GET("/:username", h.Get)
		users.PATCH("/:username", h.Update)
		users.DELETE("/:username", h.Delete)
	}
}

// List retrieves users with pagination and optional username search.
// Admin only.
// GET /api/v1/users?search=&page=1&page_size=20
func (h *UserHandler) List(c *gin.Context) {
	if !middleware.CallerFromContext(c).Admin() {
		c.JSON(http.StatusForbidden, gin.H{"error": "admin role required"})
		return
	}
	page, pageSize := pagination(c)

	users, err := h.userService.List(c.Request.Context(), c.Query("search"), page, pageSize)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, users)
}

// Create adds a user with an optional explicit role. Admin only.
// POST /api/v1/users
func (h *UserHandler) Create(c *gin.Context) {
	if !middleware.CallerFromContext(c).Admin() {
		c.JSON(http.StatusForbidden, gin.H{"error": "admin role required"})
		return
	}

	var req dto.CreateUserDTO
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindingError(c, err)
		return
	}

	user, err := h.userService.Create(c.Request.Context(), req)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, user)
}

// Get retrieves a user by username, or the caller's own profile for "me".
// GET /api/v1/users/:username
func (h *UserHandler) Get(c *gin.Context) {
	caller := middleware.CallerFromContext(c)
	username := c.Param("username")

	if username == "me" {
		user, err := h.userService.GetMe(c.Request.Context(), caller.UserID)
		if err != nil {
			respondServiceError(c, err)
			return
		}
		c.JSON(http.StatusOK, user)
		return
	}

	if !caller.Admin() {
		c.JSON(http.StatusForbidden, gin.H{"error": "admin role required"})
		return
	}

	user, err := h.userService.GetByUsername(c.Request.Context(), username)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, user)
}

// Update applies a partial update to a user. "me" updates the caller's own
// profile and cannot change the role.
// PATCH /api/v1/users/:username
func (h *UserHandler) Update(c *gin.Context) {
	caller := middleware.CallerFromContext(c)
	username := c.Param("username")

	if username == "me" {
		var req dto.UpdateMeDTO
		if err := c.ShouldBindJSON(&req); err != nil {
			respondBindingError(c, err)
			return
		}

		user, err := h.userService.UpdateMe(c.Request.Context(), caller.UserID, req)
		if err != nil {
			respondServiceError(c, err)
			return
		}
		c.JSON(http.StatusOK, user)
		return
	}

	if !caller.Admin() {
		c.JSON(http.StatusForbidden, gin.H{"error": "admin role required"})
		return
	}

	var req dto.UpdateUserDTO
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindingError(c, err)
		return
	}

	user, err := h.userService.Update(c.Request.Context(), username, req)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, user)
}

// Delete removes a user by username. Admin only; deleting "me" is refused.
// DELETE /api/v1/users/:username
func (h *UserHandler) Delete(c *gin.Context) {
	username := c.Param("username")
	if username == "me" {
		c.JSON(http.StatusMethodNotAllowed, gin.H{"error": "cannot delete own profile"})
		return
	}

	if !middleware.CallerFromContext(c).Admin() {
		c.JSON(http.StatusForbidden, gin.H{"error": "admin role required"})
		return
	}

	if err := h.userService.Delete(c.Request.Context(), username); err != nil {
		respondServiceError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

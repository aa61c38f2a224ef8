package handlers

import (
	"github.com/gin-gonic/gin"
	"github.com/huangang/taskflow/internal/services"
	"github.com/huangang/taskflow/pkg/response"
	"gorm.io/gorm"
)

type UserHandler struct {
	userService *services.UserService
}

func NewUserHandler(db *gorm.DB, lat services.Latency) *UserHandler {
	return &UserHandler{
		userService: services.NewUserService(db, lat),
	}
}

// List returns all users
// GET /api/users
func (h *UserHandler) List(c *gin.Context) {
	users, err := h.userService.GetAll()
	if err != nil {
		writeError(c, err)
		return
	}

	response.Success(c, users)
}

// GetByID returns a user by ID
// GET /api/users/:id
func (h *UserHandler) GetByID(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		response.BadRequest(c, "invalid user id")
		return
	}

	user, err := h.userService.GetByID(id)
	if err != nil {
		writeError(c, err)
		return
	}
	if user == nil {
		response.NotFound(c, "user not found")
		return
	}

	response.Success(c, user)
}

// Create creates a new user
// POST /api/users
func (h *UserHandler) Create(c *gin.Context) {
	var req services.CreateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	user, err := h.userService.Create(&req)
	if err != nil {
		writeError(c, err)
		return
	}

	services.LogActivity("info", "user", "created", "user created: "+user.Name, gin.H{"id": user.ID})
	response.Created(c, user)
}

// Update applies the present fields of the request to a user
// PUT /api/users/:id
func (h *UserHandler) Update(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		response.BadRequest(c, "invalid user id")
		return
	}

	var req services.UpdateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	user, err := h.userService.Update(id, &req)
	if err != nil {
		writeError(c, err)
		return
	}

	services.LogActivity("info", "user", "updated", "user updated: "+user.Name, gin.H{"id": user.ID})
	response.Success(c, user)
}

// Delete removes a user and returns the removed copy
// DELETE /api/users/:id
func (h *UserHandler) Delete(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		response.BadRequest(c, "invalid user id")
		return
	}

	user, err := h.userService.Delete(id)
	if err != nil {
		writeError(c, err)
		return
	}

	services.LogActivity("warn", "user", "deleted", "user deleted: "+user.Name, gin.H{"id": user.ID})
	response.Success(c, user)
}

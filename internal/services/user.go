package services

import (
	"errors"

	"github.com/huangang/taskflow/internal/models"
	"github.com/huangang/taskflow/pkg/metrics"
	"gorm.io/gorm"
)

type UserService struct {
	db  *gorm.DB
	lat Latency
}

func NewUserService(db *gorm.DB, lat Latency) *UserService {
	return &UserService{db: db, lat: lat}
}

type CreateUserRequest struct {
	Name  string `json:"name" binding:"required"`
	Email string `json:"email" binding:"required,email"`
	Role  string `json:"role"`
}

type UpdateUserRequest struct {
	Name  string `json:"name"`
	Email string `json:"email" binding:"omitempty,email"`
	Role  string `json:"role"`
}

// GetAll returns every user.
func (s *UserService) GetAll() ([]models.User, error) {
	s.lat.Wait()

	var users []models.User
	if err := s.db.Order("id ASC").Find(&users).Error; err != nil {
		return nil, err
	}
	return users, nil
}

// GetByID returns a user by ID, or nil when absent.
func (s *UserService) GetByID(id uint) (*models.User, error) {
	s.lat.Wait()

	var user models.User
	if err := s.db.First(&user, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &user, nil
}

// Create creates a new user
func (s *UserService) Create(req *CreateUserRequest) (*models.User, error) {
	s.lat.Wait()

	user := models.User{
		Name:  req.Name,
		Email: req.Email,
		Role:  req.Role,
	}

	if err := s.db.Create(&user).Error; err != nil {
		metrics.RecordStoreOp("user", "create", "error")
		return nil, err
	}

	metrics.RecordStoreOp("user", "create", "ok")
	PublishEntityEvent("user", "created", user.ID, 0)
	return &user, nil
}

// Update shallow-merges the present fields of req into the stored user.
func (s *UserService) Update(id uint, req *UpdateUserRequest) (*models.User, error) {
	s.lat.Wait()

	var user models.User
	if err := s.db.First(&user, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			metrics.RecordStoreOp("user", "update", "not_found")
			return nil, NewNotFound("user", id)
		}
		return nil, err
	}

	updates := make(map[string]interface{})

	if req.Name != "" {
		updates["name"] = req.Name
	}
	if req.Email != "" {
		updates["email"] = req.Email
	}
	if req.Role != "" {
		updates["role"] = req.Role
	}

	if len(updates) > 0 {
		if err := s.db.Model(&user).Updates(updates).Error; err != nil {
			metrics.RecordStoreOp("user", "update", "error")
			return nil, err
		}
	}

	metrics.RecordStoreOp("user", "update", "ok")
	PublishEntityEvent("user", "updated", user.ID, 0)
	return &user, nil
}

// Delete removes a user and returns the removed copy.
func (s *UserService) Delete(id uint) (*models.User, error) {
	s.lat.Wait()

	var user models.User
	if err := s.db.First(&user, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			metrics.RecordStoreOp("user", "delete", "not_found")
			return nil, NewNotFound("user", id)
		}
		return nil, err
	}

	if err := s.db.Delete(&user).Error; err != nil {
		metrics.RecordStoreOp("user", "delete", "error")
		return nil, err
	}

	metrics.RecordStoreOp("user", "delete", "ok")
	PublishEntityEvent("user", "deleted", user.ID, 0)
	return &user, nil
}

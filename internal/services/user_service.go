// internal/services/user_service.go
package services

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"shopadmin/internal/models"
	"shopadmin/internal/repository"
)

type CreateUserRequest struct {
	Name     string          `json:"name" binding:"required,max=255"`
	Email    string          `json:"email" binding:"required,email"`
	Password string          `json:"password" binding:"required,min=6"`
	Phone    string          `json:"phone" binding:"omitempty,max=20"`
	Address  string          `json:"address"`
	Avatar   string          `json:"avatar"`
	Role     models.UserRole `json:"role"`
}

type UpdateUserRequest struct {
	Name     *string          `json:"name" binding:"omitempty,max=255"`
	Email    *string          `json:"email" binding:"omitempty,email"`
	Password *string          `json:"password" binding:"omitempty,min=6"`
	Phone    *string          `json:"phone" binding:"omitempty,max=20"`
	Address  *string          `json:"address"`
	Avatar   *string          `json:"avatar"`
	Role     *models.UserRole `json:"role"`
}

type UserService struct {
	users repository.UserRepository
}

func NewUserService(users repository.UserRepository) *UserService {
	return &UserService{users: users}
}

func (s *UserService) Create(ctx context.Context, req CreateUserRequest) (*models.User, error) {
	if req.Name == "" || req.Email == "" || req.Password == "" {
		return nil, fmt.Errorf("%w: name, email and password required", repository.ErrInvalidInput)
	}

	role := req.Role
	if role == "" {
		role = models.UserRoleCustomer
	}
	if role != models.UserRoleAdmin && role != models.UserRoleCustomer {
		return nil, fmt.Errorf("%w: unknown role %q", repository.ErrInvalidInput, req.Role)
	}

	user := &models.User{
		Name:    req.Name,
		Email:   req.Email,
		Phone:   req.Phone,
		Address: req.Address,
		Avatar:  req.Avatar,
		Role:    role,
	}
	if err := user.SetPassword(req.Password); err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}
	if err := s.users.Create(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

func (s *UserService) Get(ctx context.Context, id uuid.UUID) (*models.User, error) {
	return s.users.FindByID(ctx, id)
}

func (s *UserService) List(ctx context.Context, q repository.UserQuery) ([]models.User, int64, error) {
	return s.users.FindAll(ctx, q)
}

func (s *UserService) Update(ctx context.Context, id uuid.UUID, req UpdateUserRequest) (*models.User, error) {
	user, err := s.users.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		if *req.Name == "" {
			return nil, fmt.Errorf("%w: name cannot be empty", repository.ErrInvalidInput)
		}
		user.Name = *req.Name
	}
	if req.Email != nil {
		if *req.Email == "" {
			return nil, fmt.Errorf("%w: email cannot be empty", repository.ErrInvalidInput)
		}
		user.Email = *req.Email
	}
	if req.Password != nil {
		if err := user.SetPassword(*req.Password); err != nil {
			return nil, fmt.Errorf("failed to hash password: %w", err)
		}
	}
	if req.Phone != nil {
		user.Phone = *req.Phone
	}
	if req.Address != nil {
		user.Address = *req.Address
	}
	if req.Avatar != nil {
		user.Avatar = *req.Avatar
	}
	if req.Role != nil {
		if *req.Role != models.UserRoleAdmin && *req.Role != models.UserRoleCustomer {
			return nil, fmt.Errorf("%w: unknown role %q", repository.ErrInvalidInput, *req.Role)
		}
		user.Role = *req.Role
	}

	if err := s.users.Update(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

func (s *UserService) Delete(ctx context.Context, id uuid.UUID) error {
	return s.users.Delete(ctx, id)
}

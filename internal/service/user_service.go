package service

import (
	"context"
	"fmt"
	"time"

	"hosteladmin/internal/apperr"
	"hosteladmin/internal/model"
	"hosteladmin/internal/repository"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

const accessTokenTTL = 24 * time.Hour

// --- DTOs ---

type CreateUserDTO struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=8"`
	Name     string `json:"name" binding:"required"`
	Role     string `json:"role" binding:"required"`
	Phone    string `json:"phone"`
}

type UpdateUserDTO struct {
	Name     *string `json:"name"`
	Phone    *string `json:"phone"`
	IsActive *bool   `json:"is_active"`
}

type LoginDTO struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// UserService manages accounts and issues access tokens.
type UserService interface {
	Login(ctx context.Context, dto LoginDTO) (string, *model.User, error)
	Create(ctx context.Context, dto CreateUserDTO) (*model.User, error)
	Get(ctx context.Context, id uuid.UUID) (*model.User, error)
	List(ctx context.Context, role string, page, limit int) ([]model.User, int64, error)
	Update(ctx context.Context, id uuid.UUID, dto UpdateUserDTO) (*model.User, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type userService struct {
	repo      repository.UserRepository
	audit     AuditService
	jwtSecret []byte
	log       *zap.Logger
}

func NewUserService(repo repository.UserRepository, audit AuditService, jwtSecret []byte, log *zap.Logger) UserService {
	return &userService{repo: repo, audit: audit, jwtSecret: jwtSecret, log: log}
}

func (s *userService) Login(ctx context.Context, dto LoginDTO) (string, *model.User, error) {
	user, err := s.repo.GetByEmail(ctx, dto.Email)
	if err != nil {
		if apperr.IsNotFound(err) {
			return "", nil, apperr.Validationf("invalid credentials")
		}
		return "", nil, err
	}
	if !user.IsActive {
		return "", nil, apperr.Forbiddenf("account is deactivated")
	}
	if bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(dto.Password)) != nil {
		return "", nil, apperr.Validationf("invalid credentials")
	}

	now := time.Now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub":  user.ID.String(),
		"role": user.Role.String(),
		"iat":  now.Unix(),
		"exp":  now.Add(accessTokenTTL).Unix(),
	})
	signed, err := token.SignedString(s.jwtSecret)
	if err != nil {
		return "", nil, fmt.Errorf("failed to sign token: %w", err)
	}

	user.LastLogin = &now
	if err := s.repo.Update(ctx, user); err != nil {
		s.log.Warn("failed to record last login", zap.String("user_id", user.ID.String()), zap.Error(err))
	}

	return signed, user, nil
}

func (s *userService) Create(ctx context.Context, dto CreateUserDTO) (*model.User, error) {
	role, err := model.ParseRole(dto.Role)
	if err != nil {
		return nil, apperr.Validationf("invalid role %q", dto.Role)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(dto.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &model.User{
		Email:    dto.Email,
		Password: string(hash),
		Name:     dto.Name,
		Role:     role,
		Phone:    dto.Phone,
		IsActive: true,
	}
	if err := s.repo.Create(ctx, user); err != nil {
		return nil, err
	}

	s.audit.Record(ctx, nil, model.ActionCreateUser, user.ID.String(), user.Email, map[string]interface{}{
		"role": role.String(),
	})
	return user, nil
}

func (s *userService) Get(ctx context.Context, id uuid.UUID) (*model.User, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *userService) List(ctx context.Context, role string, page, limit int) ([]model.User, int64, error) {
	var parsed model.Role
	if role != "" {
		r, err := model.ParseRole(role)
		if err != nil {
			return nil, 0, apperr.Validationf("invalid role %q", role)
		}
		parsed = r
	}
	return s.repo.List(ctx, parsed, page, limit)
}

func (s *userService) Update(ctx context.Context, id uuid.UUID, dto UpdateUserDTO) (*model.User, error) {
	user, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if dto.Name != nil {
		user.Name = *dto.Name
	}
	if dto.Phone != nil {
		user.Phone = *dto.Phone
	}
	if dto.IsActive != nil {
		user.IsActive = *dto.IsActive
	}
	if err := s.repo.Update(ctx, user); err != nil {
		return nil, err
	}

	s.audit.Record(ctx, nil, model.ActionUpdateUser, user.ID.String(), user.Email, nil)
	return user, nil
}

func (s *userService) Delete(ctx context.Context, id uuid.UUID) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	s.audit.Record(ctx, nil, model.ActionDeleteUser, id.String(), "", nil)
	return nil
}

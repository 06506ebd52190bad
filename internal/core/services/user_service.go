package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/estatedesk/backoffice/internal/apperrors"
	portsrepo "github.com/estatedesk/backoffice/internal/core/ports/repositories"
	portssvc "github.com/estatedesk/backoffice/internal/core/ports/services"
	"github.com/estatedesk/backoffice/internal/dto"
	"github.com/estatedesk/backoffice/internal/models"
	"github.com/estatedesk/backoffice/internal/utils"
	"github.com/google/uuid"
)

// userService manages operator accounts.
type userService struct {
	BaseService
	userRepo portsrepo.UserRepository
}

// NewUserService creates the user service.
func NewUserService(userRepo portsrepo.UserRepository) portssvc.UserSvc {
	return &userService{userRepo: userRepo}
}

var _ portssvc.UserSvc = (*userService)(nil)

func (s *userService) CreateUser(ctx context.Context, req dto.CreateUserRequest, creatorUserID string) (*models.User, error) {
	hash, err := utils.HashPassword(req.Password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	now := time.Now()
	user := models.User{
		UserID:       uuid.NewString(),
		Username:     req.Username,
		Name:         req.Name,
		PasswordHash: hash,
		IsActive:     true,
		AuditFields: models.AuditFields{
			CreatedAt:     now,
			CreatedBy:     creatorUserID,
			LastUpdatedAt: now,
			LastUpdatedBy: creatorUserID,
		},
	}

	if err := s.userRepo.SaveUser(ctx, user); err != nil {
		s.LogError(ctx, err, "Failed to save user", slog.String("username", req.Username))
		return nil, err
	}
	user.PasswordHash = ""
	return &user, nil
}

func (s *userService) GetUserByID(ctx context.Context, userID string) (*models.User, error) {
	return s.userRepo.FindUserByID(ctx, userID)
}

func (s *userService) GetUserByUsername(ctx context.Context, username string) (*models.User, error) {
	return s.userRepo.FindUserByUsername(ctx, username)
}

func (s *userService) ListUsers(ctx context.Context, limit, offset int) ([]models.User, error) {
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}
	return s.userRepo.ListUsers(ctx, limit, offset)
}

func (s *userService) DeactivateUser(ctx context.Context, userID string, deactivatedBy string) error {
	return s.userRepo.DeactivateUser(ctx, userID, deactivatedBy, time.Now())
}

// VerifyPassword checks login credentials. A missing user and a wrong password
// produce the same error so the endpoint leaks nothing about which it was.
func (s *userService) VerifyPassword(ctx context.Context, username, password string) (*models.User, error) {
	user, err := s.userRepo.FindUserByUsername(ctx, username)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid credentials", apperrors.ErrForbidden)
	}
	if !user.IsActive || !utils.CheckPasswordHash(password, user.PasswordHash) {
		return nil, fmt.Errorf("%w: invalid credentials", apperrors.ErrForbidden)
	}
	return user, nil
}

package services

import (
	"context"
	"log"
	"strings"
	"time"

	"github.com/google/uuid"

	"taskhub/internal/models"
	"taskhub/internal/repositories"
)

// ProfileUpdate is a partial profile change: nil fields stay untouched.
type ProfileUpdate struct {
	Name           *string
	Email          *string
	TelegramChatID *int64
	NotifyTelegram *bool
}

type UserService interface {
	Register(ctx context.Context, req *models.RegisterRequest) (*models.User, error)
	Authenticate(ctx context.Context, email, password string) (*models.User, error)
	GetByID(ctx context.Context, id string) (*models.User, error)
	UpdateProfile(ctx context.Context, id string, upd ProfileUpdate) (*models.User, error)
	UpdatePassword(ctx context.Context, id, currentPassword, newPassword string) error

	UpdateRefresh(ctx context.Context, userID, token string, expiresAt time.Time) error
	ClearRefresh(ctx context.Context, userID string) error
	GetByRefreshToken(ctx context.Context, token string) (*models.User, error)
}

type userService struct {
	repo         repositories.UserRepository
	emailService EmailService
	authService  AuthService
}

func NewUserService(repo repositories.UserRepository, emailService EmailService, authService AuthService) UserService {
	return &userService{
		repo:         repo,
		emailService: emailService,
		authService:  authService,
	}
}

func (s *userService) Register(ctx context.Context, req *models.RegisterRequest) (*models.User, error) {
	email := strings.ToLower(strings.TrimSpace(req.Email))

	existing, err := s.repo.GetByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, models.ErrEmailTaken
	}

	hash, err := s.authService.HashPassword(req.Password)
	if err != nil {
		return nil, err
	}

	user := &models.User{
		ID:           uuid.NewString(),
		Name:         strings.TrimSpace(req.Name),
		Email:        email,
		PasswordHash: hash,
		Role:         models.RoleUser,
	}
	if err := s.repo.Create(ctx, user); err != nil {
		return nil, err
	}

	if s.emailService != nil {
		if err := s.emailService.SendWelcomeEmail(user.Email, user.Name); err != nil {
			// warn but do not fail registration
			log.Printf("[user][register] warning: welcome email to %s failed: %v", user.Email, err)
		}
	}
	return user, nil
}

func (s *userService) Authenticate(ctx context.Context, email, password string) (*models.User, error) {
	user, err := s.repo.GetByEmail(ctx, strings.ToLower(strings.TrimSpace(email)))
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, models.ErrInvalidCredentials
	}
	if err := s.authService.CheckPassword(user.PasswordHash, password); err != nil {
		return nil, models.ErrInvalidCredentials
	}
	return user, nil
}

func (s *userService) GetByID(ctx context.Context, id string) (*models.User, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *userService) UpdateProfile(ctx context.Context, id string, upd ProfileUpdate) (*models.User, error) {
	user, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, models.ErrUserNotFound
	}

	if upd.Name != nil {
		user.Name = strings.TrimSpace(*upd.Name)
	}
	if upd.Email != nil {
		email := strings.ToLower(strings.TrimSpace(*upd.Email))
		if email != user.Email {
			other, err := s.repo.GetByEmail(ctx, email)
			if err != nil {
				return nil, err
			}
			if other != nil && other.ID != user.ID {
				return nil, models.ErrEmailTaken
			}
			user.Email = email
		}
	}
	if upd.TelegramChatID != nil {
		user.TelegramChatID = *upd.TelegramChatID
	}
	if upd.NotifyTelegram != nil {
		user.NotifyTelegram = *upd.NotifyTelegram
	}

	if err := s.repo.UpdateProfile(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

func (s *userService) UpdatePassword(ctx context.Context, id, currentPassword, newPassword string) error {
	user, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if user == nil {
		return models.ErrUserNotFound
	}
	if err := s.authService.CheckPassword(user.PasswordHash, currentPassword); err != nil {
		return models.ErrInvalidCredentials
	}
	hash, err := s.authService.HashPassword(newPassword)
	if err != nil {
		return err
	}
	return s.repo.UpdatePassword(ctx, id, hash)
}

func (s *userService) UpdateRefresh(ctx context.Context, userID, token string, expiresAt time.Time) error {
	return s.repo.UpdateRefresh(ctx, userID, token, expiresAt)
}

func (s *userService) ClearRefresh(ctx context.Context, userID string) error {
	return s.repo.ClearRefresh(ctx, userID)
}

func (s *userService) GetByRefreshToken(ctx context.Context, token string) (*models.User, error) {
	return s.repo.GetByRefreshToken(ctx, token)
}

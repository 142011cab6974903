package services

import (
	"strings"

	"github.com/hrunx/sprintly-mvp/internal/auth"
	apperrors "github.com/hrunx/sprintly-mvp/internal/errors"
	"github.com/hrunx/sprintly-mvp/internal/models"
	"github.com/hrunx/sprintly-mvp/internal/repository"
	"github.com/hrunx/sprintly-mvp/pkg/config"
)

// authService implements AuthService
type authService struct {
	repos *repository.Repositories
	jwt   *auth.JWTService
}

func newAuthService(repos *repository.Repositories, cfg *config.Config) AuthService {
	return &authService{
		repos: repos,
		jwt:   auth.NewJWTService(cfg.JWTSecret),
	}
}

// Login authenticates a user and issues a JWT
func (s *authService) Login(email, password string) (*models.LoginResponse, error) {
	user, err := s.repos.User.GetByEmail(strings.ToLower(strings.TrimSpace(email)))
	if err != nil {
		return nil, apperrors.Unauthorized("invalid credentials", nil)
	}

	if !auth.CheckPassword(password, user.PasswordHash) {
		return nil, apperrors.Unauthorized("invalid credentials", nil)
	}

	token, _, err := s.jwt.GenerateToken(auth.Claims{
		UserID: user.ID,
		Email:  user.Email,
		Role:   user.Role,
	})
	if err != nil {
		return nil, apperrors.InternalError("failed to generate token", err)
	}

	return &models.LoginResponse{Token: token, User: *user}, nil
}

// Register creates a new user account
func (s *authService) Register(req *models.RegisterRequest) (*models.User, error) {
	email := strings.ToLower(strings.TrimSpace(req.Email))
	if email == "" {
		return nil, apperrors.InvalidInput("email is required", nil)
	}

	if existing, _ := s.repos.User.GetByEmail(email); existing != nil {
		return nil, apperrors.Conflict("user already exists", nil)
	}

	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		return nil, apperrors.InternalError("failed to hash password", err)
	}

	role := string(models.RoleUser)
	if req.Role == models.RoleAdmin {
		role = string(models.RoleAdmin)
	}

	user := &models.User{
		Email:        email,
		PasswordHash: hash,
		Role:         role,
	}
	if err := s.repos.User.Create(user); err != nil {
		return nil, apperrors.DatabaseError("failed to create user", err)
	}

	return user, nil
}

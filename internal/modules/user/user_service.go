package user

import (
	"context"
	"errors"
	"fmt"
	"time"

	"errand-runner/internal/models"
	"errand-runner/pkg/utils"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
)

// TokenTTL is how long an issued access token stays valid.
const TokenTTL = 24 * time.Hour

// ServiceInterface defines methods for user business logic.
type ServiceInterface interface {
	Register(ctx context.Context, req models.RegisterRequest) (*models.AuthResponse, error)
	Login(ctx context.Context, req models.LoginRequest) (*models.AuthResponse, error)
}

type Service struct {
	userRepo  RepositoryInterface
	jwtSecret string
	now       func() time.Time
}

func NewService(userRepo RepositoryInterface, jwtSecret string) *Service {
	return &Service{
		userRepo:  userRepo,
		jwtSecret: jwtSecret,
		now:       time.Now,
	}
}

func (s *Service) Register(ctx context.Context, req models.RegisterRequest) (*models.AuthResponse, error) {
	// 1. Check if user with that email already exists
	_, err := s.userRepo.FindByEmail(ctx, req.Email)
	if err != nil && !errors.Is(err, models.ErrNotFound) {
		return nil, fmt.Errorf("service.Register.FindByEmail: %w", err)
	}
	if err == nil {
		return nil, ErrEmailTaken
	}

	// 2. Hash the password
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("service.Register.HashPassword: %w", err)
	}

	// 3. Create the user; the unique index still guards a concurrent signup
	createdUser, err := s.userRepo.Create(ctx, req.Email, string(hashedPassword))
	if err != nil {
		return nil, fmt.Errorf("service.Register.CreateUser: %w", err)
	}

	return s.generateAuthResponse(createdUser)
}

func (s *Service) Login(ctx context.Context, req models.LoginRequest) (*models.AuthResponse, error) {
	userWithHash, err := s.userRepo.FindByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, models.ErrNotFound) {
			return nil, models.ErrInvalidCredentials
		}
		return nil, fmt.Errorf("service.Login.FindByEmail: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(userWithHash.PasswordHash), []byte(req.Password)); err != nil {
		return nil, models.ErrInvalidCredentials
	}

	return s.generateAuthResponse(userWithHash)
}

// generateAuthResponse signs an HS256 access token for user.
func (s *Service) generateAuthResponse(user *models.User) (*models.AuthResponse, error) {
	tokenID, err := utils.GenerateSecureToken(16)
	if err != nil {
		return nil, fmt.Errorf("service.generateAuthResponse: %w", err)
	}

	now := s.now()
	claims := &models.JwtCustomClaims{
		UserID: user.ID,
		Email:  user.Email,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        tokenID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(TokenTTL)),
		},
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(s.jwtSecret))
	if err != nil {
		return nil, fmt.Errorf("failed to sign access token: %w", err)
	}

	user.PasswordHash = ""

	return &models.AuthResponse{
		AccessToken: signed,
		User:        user,
	}, nil
}

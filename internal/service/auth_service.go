package service

import (
	"context"
	"errors"
	"time"

	"github.com/coursify/marketplace-api/internal/domain"
	"github.com/coursify/marketplace-api/internal/metrics"
	"github.com/coursify/marketplace-api/internal/repository"
	"github.com/coursify/marketplace-api/internal/token"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type AuthService struct {
	userRepo repository.UserRepository
	tokens   *token.Service
	log      *zap.Logger
	metrics  *metrics.Metrics
}

func NewAuthService(userRepo repository.UserRepository, tokens *token.Service, log *zap.Logger, m *metrics.Metrics) *AuthService {
	return &AuthService{
		userRepo: userRepo,
		tokens:   tokens,
		log:      log,
		metrics:  m,
	}
}

type SignupInput struct {
	Username  string
	FirstName string
	LastName  string
	Email     string
	Password  string
	Role      domain.Role
}

type LoginInput struct {
	Email    string
	Password string
}

type TokenPair struct {
	AccessToken  string
	RefreshToken string
}

type AuthResult struct {
	User *domain.User
	TokenPair
}

// Signup runs all three constraint checks before touching the store, so a
// rejected registration leaves no partial state behind.
func (s *AuthService) Signup(ctx context.Context, input SignupInput) (*domain.User, error) {
	emailTaken, err := s.userRepo.ExistsByEmail(ctx, input.Email)
	if err != nil {
		return nil, err
	}
	if emailTaken {
		s.metrics.Signups.WithLabelValues(metrics.ResultRejected).Inc()
		return nil, domain.ErrEmailTaken
	}

	usernameTaken, err := s.userRepo.ExistsByUsername(ctx, input.Username)
	if err != nil {
		return nil, err
	}
	if usernameTaken {
		s.metrics.Signups.WithLabelValues(metrics.ResultRejected).Inc()
		return nil, domain.ErrUsernameTaken
	}

	if input.Role == domain.RoleAdmin {
		s.metrics.Signups.WithLabelValues(metrics.ResultRejected).Inc()
		s.log.Warn("admin signup attempt rejected", zap.String("email", input.Email))
		return nil, domain.ErrAdminSignup
	}
	if !input.Role.AssignableAtSignup() {
		s.metrics.Signups.WithLabelValues(metrics.ResultRejected).Inc()
		return nil, domain.ErrInvalidRole
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	user := &domain.User{
		UUID:           uuid.New(),
		Username:       input.Username,
		FirstName:      input.FirstName,
		LastName:       input.LastName,
		Email:          input.Email,
		HashedPassword: string(hashedPassword),
		Role:           input.Role,
		CreatedAt:      time.Now(),
		UpdatedAt:      time.Now(),
	}

	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}

	s.metrics.Signups.WithLabelValues(metrics.ResultOK).Inc()
	return user, nil
}

// Login verifies credentials and issues a fresh token pair. Unknown email and
// wrong password return the same error so callers cannot enumerate accounts.
func (s *AuthService) Login(ctx context.Context, input LoginInput) (*AuthResult, error) {
	user, err := s.userRepo.GetByEmail(ctx, input.Email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			s.metrics.Logins.WithLabelValues(metrics.ResultRejected).Inc()
			return nil, domain.ErrInvalidCredentials
		}
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.HashedPassword), []byte(input.Password)); err != nil {
		s.metrics.Logins.WithLabelValues(metrics.ResultRejected).Inc()
		return nil, domain.ErrInvalidCredentials
	}

	pair, err := s.issuePair(user)
	if err != nil {
		return nil, err
	}

	s.metrics.Logins.WithLabelValues(metrics.ResultOK).Inc()
	return &AuthResult{User: user, TokenPair: pair}, nil
}

// Refresh exchanges a valid refresh token for a new access/refresh pair. The
// presented token stays usable until its own expiry; there is no server-side
// revocation state.
func (s *AuthService) Refresh(ctx context.Context, refreshToken string) (*AuthResult, error) {
	user, err := s.tokens.ValidateRefresh(ctx, refreshToken)
	if err != nil {
		return nil, err
	}

	pair, err := s.issuePair(user)
	if err != nil {
		return nil, err
	}
	return &AuthResult{User: user, TokenPair: pair}, nil
}

func (s *AuthService) issuePair(user *domain.User) (TokenPair, error) {
	accessToken, err := s.tokens.IssueAccessToken(user)
	if err != nil {
		return TokenPair{}, err
	}
	refreshToken, err := s.tokens.IssueRefreshToken(user)
	if err != nil {
		return TokenPair{}, err
	}
	return TokenPair{AccessToken: accessToken, RefreshToken: refreshToken}, nil
}

package token

import (
	"context"
	"errors"
	"time"

	"github.com/coursify/marketplace-api/internal/config"
	"github.com/coursify/marketplace-api/internal/domain"
	"github.com/coursify/marketplace-api/internal/metrics"
	"github.com/coursify/marketplace-api/internal/repository"
	"github.com/golang-jwt/jwt/v5"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Service issues and validates the access/refresh token pair. Every
// validation failure is reported to callers as domain.ErrUnauthorized; the
// real reason (expired, bad signature, unknown subject) goes to logs and
// metrics only, so the wire never reveals whether a token was genuine.
type Service struct {
	codec      *Codec
	users      repository.UserRepository
	accessTTL  time.Duration
	refreshTTL time.Duration
	log        *zap.Logger
	metrics    *metrics.Metrics
}

func NewService(users repository.UserRepository, cfg *config.Config, log *zap.Logger, m *metrics.Metrics) *Service {
	return &Service{
		codec:      NewCodec(cfg.JWTSecret),
		users:      users,
		accessTTL:  cfg.AccessTokenTTL,
		refreshTTL: cfg.RefreshTokenTTL,
		log:        log,
		metrics:    m,
	}
}

// Codec exposes the underlying codec, mainly for tests that need to mint
// tokens with arbitrary claims.
func (s *Service) Codec() *Codec {
	return s.codec
}

func (s *Service) IssueAccessToken(user *domain.User) (string, error) {
	now := time.Now()
	return s.codec.Encode(&Claims{
		Kind:     KindAccess,
		Role:     string(user.Role),
		UserID:   user.ID,
		Username: user.Username,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   user.Email,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.accessTTL)),
		},
	})
}

// IssueRefreshToken mints a token that authenticates only enough to request a
// fresh pair. It carries no role or id claims.
func (s *Service) IssueRefreshToken(user *domain.User) (string, error) {
	now := time.Now()
	return s.codec.Encode(&Claims{
		Kind: KindRefresh,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   user.Email,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.refreshTTL)),
		},
	})
}

// ValidateAccess decodes an access token and re-resolves its subject against
// the user store, so authorization decisions always use live role and
// ownership data rather than stale claims.
func (s *Service) ValidateAccess(ctx context.Context, tokenString string) (*domain.User, error) {
	claims, err := s.decodeValid(tokenString, KindAccess)
	if err != nil {
		return nil, domain.ErrUnauthorized
	}

	user, err := s.users.GetByEmail(ctx, claims.Subject)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			s.reject(KindAccess, metrics.ResultUnknownUser, err)
			return nil, domain.ErrUnauthorized
		}
		return nil, err
	}

	s.metrics.TokenValidations.WithLabelValues(metrics.ResultOK).Inc()
	return user, nil
}

// SubjectOf returns the email a refresh token was issued for, after the same
// signature, kind and expiry checks as any other validation.
func (s *Service) SubjectOf(tokenString string) (string, error) {
	claims, err := s.decodeValid(tokenString, KindRefresh)
	if err != nil {
		return "", domain.ErrUnauthorized
	}
	return claims.Subject, nil
}

// ValidateRefresh resolves a refresh token to the live user it was issued for.
func (s *Service) ValidateRefresh(ctx context.Context, tokenString string) (*domain.User, error) {
	email, err := s.SubjectOf(tokenString)
	if err != nil {
		return nil, err
	}

	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			s.reject(KindRefresh, metrics.ResultUnknownUser, err)
			return nil, domain.ErrUnauthorized
		}
		return nil, err
	}
	return user, nil
}

func (s *Service) decodeValid(tokenString, wantKind string) (*Claims, error) {
	claims, err := s.codec.Decode(tokenString)
	if err != nil {
		reason := metrics.ResultMalformed
		if errors.Is(err, ErrBadSignature) {
			reason = metrics.ResultBadSignature
		}
		s.reject(wantKind, reason, err)
		return nil, err
	}

	if claims.Kind != wantKind {
		s.reject(wantKind, metrics.ResultWrongKind, nil)
		return nil, ErrMalformed
	}

	if claims.ExpiresAt == nil || !time.Now().Before(claims.ExpiresAt.Time) {
		s.reject(wantKind, metrics.ResultExpired, nil)
		return nil, jwt.ErrTokenExpired
	}

	return claims, nil
}

func (s *Service) reject(kind, reason string, err error) {
	s.metrics.TokenValidations.WithLabelValues(reason).Inc()
	s.log.Debug("token rejected",
		zap.String("kind", kind),
		zap.String("reason", reason),
		zap.Error(err))
}

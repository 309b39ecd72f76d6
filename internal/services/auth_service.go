package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"museum-backend/internal/config"
	"museum-backend/internal/models"
	"museum-backend/internal/repository"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"
)

var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrInvalidToken       = errors.New("invalid token")
)

// IssuedToken is a freshly signed bearer token.
type IssuedToken struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expires_at"`
}

type AuthService interface {
	AcquireToken(ctx context.Context, email, password, deviceName string) (*IssuedToken, error)
	Authenticate(ctx context.Context, token string) (*models.User, error)
	Wipe(ctx context.Context, userID string) (int64, error)
	EnsureAdmin(ctx context.Context) error
}

type authService struct {
	users  repository.UserRepository
	cfg    config.AuthConfig
	logger *logrus.Logger
	now    func() time.Time
}

func NewAuthService(users repository.UserRepository, cfg config.AuthConfig, logger *logrus.Logger) AuthService {
	return &authService{
		users:  users,
		cfg:    cfg,
		logger: logger,
		now:    time.Now,
	}
}

// AcquireToken exchanges credentials for a token bound to one device.
func (s *authService) AcquireToken(ctx context.Context, email, password, deviceName string) (*IssuedToken, error) {
	user, err := s.users.FindByEmail(ctx, strings.TrimSpace(email))
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		s.logger.WithField("user_id", user.ID).Warn("Rejected token request")
		return nil, ErrInvalidCredentials
	}

	now := s.now().UTC()
	record := &models.PersonalAccessToken{
		UUIDModel: models.UUIDModel{ID: uuid.NewString()},
		UserID:    user.ID,
		Name:      deviceName,
		ExpiresAt: now.Add(s.cfg.TokenTTL),
	}

	claims := jwt.RegisteredClaims{
		ID:        record.ID,
		Subject:   user.ID,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(record.ExpiresAt),
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(s.cfg.JWTSecret))
	if err != nil {
		return nil, fmt.Errorf("failed to sign token: %w", err)
	}

	if err := s.users.CreateToken(ctx, record); err != nil {
		return nil, fmt.Errorf("failed to store token: %w", err)
	}

	s.logger.WithFields(logrus.Fields{"user_id": user.ID, "device": deviceName}).Info("Token issued")
	return &IssuedToken{Token: signed, ExpiresAt: record.ExpiresAt}, nil
}

// Authenticate resolves a bearer token to its user. A token is valid while
// its signature checks out and its record has not been revoked.
func (s *authService) Authenticate(ctx context.Context, token string) (*models.User, error) {
	var claims jwt.RegisteredClaims
	_, err := jwt.ParseWithClaims(token, &claims, func(t *jwt.Token) (interface{}, error) {
		return []byte(s.cfg.JWTSecret), nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Name}),
		jwt.WithTimeFunc(s.now),
		jwt.WithExpirationRequired(),
	)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}

	record, err := s.users.FindToken(ctx, claims.ID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, fmt.Errorf("%w: revoked", ErrInvalidToken)
		}
		return nil, err
	}
	now := s.now().UTC()
	if record.UserID != claims.Subject || now.After(record.ExpiresAt) {
		return nil, ErrInvalidToken
	}

	user, err := s.users.FindByID(ctx, record.UserID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrInvalidToken
		}
		return nil, err
	}

	if err := s.users.TouchToken(ctx, record.ID, now); err != nil {
		s.logger.WithError(err).WithField("token_id", record.ID).Warn("Failed to record token use")
	}
	return user, nil
}

// Wipe revokes every token of the user.
func (s *authService) Wipe(ctx context.Context, userID string) (int64, error) {
	n, err := s.users.DeleteTokens(ctx, userID)
	if err != nil {
		return 0, fmt.Errorf("failed to revoke tokens: %w", err)
	}
	s.logger.WithFields(logrus.Fields{"user_id": userID, "revoked": n}).Info("Tokens revoked")
	return n, nil
}

// EnsureAdmin creates the configured administrator on first start.
func (s *authService) EnsureAdmin(ctx context.Context) error {
	if s.cfg.AdminEmail == "" || s.cfg.AdminPassword == "" {
		return nil
	}
	if _, err := s.users.FindByEmail(ctx, s.cfg.AdminEmail); err == nil {
		return nil
	} else if !errors.Is(err, repository.ErrNotFound) {
		return err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(s.cfg.AdminPassword), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}
	user := &models.User{
		Name:     s.cfg.AdminName,
		Email:    s.cfg.AdminEmail,
		Password: string(hash),
	}
	if err := s.users.Create(ctx, user); err != nil {
		return fmt.Errorf("failed to create admin user: %w", err)
	}

	s.logger.WithField("email", user.Email).Info("Admin user created")
	return nil
}

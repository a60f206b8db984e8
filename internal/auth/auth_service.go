package auth

import (
	"context"
	"errors"
	"os"
	"strconv"
	"strings"
	"time"

	autherrors "github.com/killerdias/controle-ferias/internal/auth/errors"

	"github.com/golang-jwt/jwt/v5"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

const (
	accessTokenTTL  = 15 * time.Minute
	refreshTokenTTL = 7 * 24 * time.Hour
)

//go:generate mockgen -source=auth_service.go -destination=mock/auth_service_mock.go -package=mock
type Service interface {
	Login(ctx context.Context, req LoginRequest) (accessToken string, refreshToken string, err error)
	Refresh(ctx context.Context, refreshToken string) (accessToken string, err error)
	Register(ctx context.Context, req RegisterRequest) (*AuthResponse, error)
	GetMe(ctx context.Context, userID string) (*AuthResponse, error)
	EnsureAdmin(ctx context.Context) error
}

type service struct {
	repo   Repository
	secret []byte
	logger *zap.Logger
}

func NewService(repo Repository, logger ...*zap.Logger) Service {
	l := zap.L().Named("auth.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("auth.service")
	}
	return &service{
		repo:   repo,
		secret: []byte(os.Getenv("JWT_SECRET")),
		logger: l,
	}
}

func (s *service) Login(ctx context.Context, req LoginRequest) (string, string, error) {
	user, err := s.repo.GetByUsername(ctx, strings.TrimSpace(req.Username))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", "", autherrors.ErrInvalidCredentials
		}
		return "", "", err
	}

	if !user.IsActive {
		return "", "", autherrors.ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)); err != nil {
		s.logger.Warn("login rejected", zap.String("username", req.Username))
		return "", "", autherrors.ErrInvalidCredentials
	}

	access, err := s.signToken(user, "access", accessTokenTTL)
	if err != nil {
		return "", "", autherrors.ErrTokenGenerationFailed
	}

	refresh, err := s.signToken(user, "refresh", refreshTokenTTL)
	if err != nil {
		return "", "", autherrors.ErrTokenGenerationFailed
	}

	s.logger.Info("user logged in", zap.Uint("user_id", user.ID), zap.String("role", user.Role))
	return access, refresh, nil
}

func (s *service) Refresh(ctx context.Context, refreshToken string) (string, error) {
	token, err := jwt.Parse(refreshToken, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, autherrors.ErrInvalidToken
		}
		return s.secret, nil
	})
	if err != nil || !token.Valid {
		return "", autherrors.ErrInvalidToken
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || claims["token_type"] != "refresh" {
		return "", autherrors.ErrInvalidToken
	}

	idStr, _ := claims["user_id"].(string)
	id, err := strconv.ParseUint(idStr, 10, 64)
	if err != nil {
		return "", autherrors.ErrInvalidUserID
	}

	user, err := s.repo.GetByID(ctx, uint(id))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", autherrors.ErrUserNotFound
		}
		return "", err
	}

	if !user.IsActive {
		return "", autherrors.ErrInvalidToken
	}

	access, err := s.signToken(user, "access", accessTokenTTL)
	if err != nil {
		return "", autherrors.ErrTokenGenerationFailed
	}
	return access, nil
}

func (s *service) Register(ctx context.Context, req RegisterRequest) (*AuthResponse, error) {
	username := strings.TrimSpace(req.Username)

	if _, err := s.repo.GetByUsername(ctx, username); err == nil {
		return nil, autherrors.ErrUsernameTaken
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	user := &User{
		Username: username,
		Name:     strings.TrimSpace(req.Name),
		Password: string(hash),
		Role:     req.Role,
		IsActive: true,
	}

	if err := s.repo.Create(ctx, user); err != nil {
		return nil, err
	}

	s.logger.Info("user registered", zap.Uint("user_id", user.ID), zap.String("role", user.Role))
	return toAuthResponse(user), nil
}

func (s *service) GetMe(ctx context.Context, userID string) (*AuthResponse, error) {
	id, err := strconv.ParseUint(userID, 10, 64)
	if err != nil {
		return nil, autherrors.ErrInvalidUserID
	}

	user, err := s.repo.GetByID(ctx, uint(id))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, autherrors.ErrUserNotFound
		}
		return nil, err
	}

	return toAuthResponse(user), nil
}

// EnsureAdmin seeds the initial admin account from ADMIN_USERNAME and
// ADMIN_PASSWORD. It is a no-op when the account already exists or the
// variables are unset.
func (s *service) EnsureAdmin(ctx context.Context) error {
	username := strings.TrimSpace(os.Getenv("ADMIN_USERNAME"))
	password := os.Getenv("ADMIN_PASSWORD")
	if username == "" || password == "" {
		s.logger.Debug("admin seed skipped, credentials not configured")
		return nil
	}

	if _, err := s.repo.GetByUsername(ctx, username); err == nil {
		return nil
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	user := &User{
		Username: username,
		Name:     "Administrator",
		Password: string(hash),
		Role:     RoleAdmin,
		IsActive: true,
	}

	if err := s.repo.Create(ctx, user); err != nil {
		return err
	}

	s.logger.Info("admin account seeded", zap.String("username", username))
	return nil
}

func (s *service) signToken(user *User, tokenType string, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"user_id":    strconv.FormatUint(uint64(user.ID), 10),
		"username":   user.Username,
		"role":       user.Role,
		"token_type": tokenType,
		"iat":        now.Unix(),
		"exp":        now.Add(ttl).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.secret)
}

func toAuthResponse(u *User) *AuthResponse {
	return &AuthResponse{
		ID:       u.ID,
		Username: u.Username,
		Name:     u.Name,
		Role:     u.Role,
	}
}

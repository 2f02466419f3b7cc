package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"school-inventory/internal/dto"
	"school-inventory/internal/repositories"
	"school-inventory/pkg/config"
	apperrors "school-inventory/pkg/errors"
	"school-inventory/pkg/service"
	"school-inventory/pkg/utils"
)

type AuthServiceInterface interface {
	Login(ctx context.Context, payload dto.LoginDTO) (*dto.LoginResponseDTO, string, error)
	Logout(ctx context.Context, sessionID string, expiresAt time.Time) error
	IsSessionRevoked(ctx context.Context, sessionID string) (bool, error)
	Me(ctx context.Context, actor dto.AuthContext) (*dto.UserDTO, error)
}

type AuthService struct {
	userRepo   repositories.UserRepositoryInterface
	cacheRepo  repositories.CacheRepositoryInterface
	jwtService service.JWTService
	logger     *zap.Logger
	cfg        *config.AuthConfig
}

func NewAuthService(
	userRepo repositories.UserRepositoryInterface,
	cacheRepo repositories.CacheRepositoryInterface,
	jwtService service.JWTService,
	logger *zap.Logger,
	cfg *config.AuthConfig,
) AuthServiceInterface {
	return &AuthService{
		userRepo:   userRepo,
		cacheRepo:  cacheRepo,
		jwtService: jwtService,
		logger:     logger,
		cfg:        cfg,
	}
}

// Login проверяет пароль по bcrypt-хешу и выпускает токен сессии.
func (s *AuthService) Login(ctx context.Context, payload dto.LoginDTO) (*dto.LoginResponseDTO, string, error) {
	username := strings.TrimSpace(payload.Username)

	user, err := s.userRepo.FindUserByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			s.logger.Warn("Login: пользователь не найден", zap.String("username", username))
			return nil, "", apperrors.ErrInvalidCredentials
		}
		return nil, "", err
	}

	if err := s.checkLockout(ctx, user.ID); err != nil {
		s.logger.Warn("Login: учётная запись заблокирована", zap.Uint64("userID", user.ID))
		return nil, "", err
	}

	if err := utils.ComparePasswords(user.Password, payload.Password); err != nil {
		s.handleFailedLoginAttempt(ctx, user.ID)
		s.logger.Warn("Login: неверный пароль", zap.Uint64("userID", user.ID))
		return nil, "", apperrors.ErrInvalidCredentials
	}
	s.resetLoginAttempts(ctx, user.ID)

	token, _, err := s.jwtService.GenerateSessionToken(user.ID, string(user.Role))
	if err != nil {
		s.logger.Error("Login: не удалось выпустить токен", zap.Uint64("userID", user.ID), zap.Error(err))
		return nil, "", err
	}

	s.logger.Info("Пользователь вошёл в систему", zap.Uint64("userID", user.ID), zap.String("role", string(user.Role)))
	return &dto.LoginResponseDTO{
		User:       toUserDTO(*user),
		RedirectTo: user.Role.DashboardPath(),
	}, token, nil
}

// Logout помечает сессию отозванной до её естественного истечения.
func (s *AuthService) Logout(ctx context.Context, sessionID string, expiresAt time.Time) error {
	if sessionID == "" {
		return nil
	}
	ttl := time.Until(expiresAt)
	if ttl <= 0 {
		return nil
	}
	if err := s.cacheRepo.Set(ctx, revokedSessionKey(sessionID), "revoked", ttl); err != nil {
		s.logger.Error("Logout: не удалось отозвать сессию", zap.String("sessionID", sessionID), zap.Error(err))
		return err
	}
	return nil
}

func (s *AuthService) IsSessionRevoked(ctx context.Context, sessionID string) (bool, error) {
	return s.cacheRepo.Exists(ctx, revokedSessionKey(sessionID))
}

func (s *AuthService) Me(ctx context.Context, actor dto.AuthContext) (*dto.UserDTO, error) {
	if actor.UserID == 0 {
		return nil, apperrors.ErrUnauthorized
	}
	user, err := s.userRepo.FindUser(ctx, actor.UserID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.ErrUnauthorized
		}
		return nil, err
	}
	res := toUserDTO(*user)
	return &res, nil
}

func revokedSessionKey(sessionID string) string {
	return fmt.Sprintf("revoked_session:%s", sessionID)
}

func (s *AuthService) checkLockout(ctx context.Context, userID uint64) error {
	locked, err := s.cacheRepo.Exists(ctx, fmt.Sprintf("lockout:%d", userID))
	if err != nil {
		s.logger.Warn("Не удалось проверить блокировку", zap.Uint64("userID", userID), zap.Error(err))
		return nil
	}
	if locked {
		return apperrors.ErrAccountLocked
	}
	return nil
}

func (s *AuthService) handleFailedLoginAttempt(ctx context.Context, userID uint64) {
	attemptsKey := fmt.Sprintf("login_attempts:%d", userID)
	attempts, err := s.cacheRepo.Incr(ctx, attemptsKey)
	if err != nil {
		s.logger.Warn("Не удалось учесть неудачную попытку входа", zap.Uint64("userID", userID), zap.Error(err))
		return
	}
	if attempts == 1 {
		_, _ = s.cacheRepo.Expire(ctx, attemptsKey, s.cfg.LockoutDuration)
	}
	if attempts >= int64(s.cfg.MaxLoginAttempts) {
		_ = s.cacheRepo.Set(ctx, fmt.Sprintf("lockout:%d", userID), "locked", s.cfg.LockoutDuration)
		_ = s.cacheRepo.Del(ctx, attemptsKey)
	}
}

func (s *AuthService) resetLoginAttempts(ctx context.Context, userID uint64) {
	_ = s.cacheRepo.Del(ctx, fmt.Sprintf("login_attempts:%d", userID), fmt.Sprintf("lockout:%d", userID))
}

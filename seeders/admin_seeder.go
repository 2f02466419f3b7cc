package seeders

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"school-inventory/internal/entities"
	"school-inventory/internal/repositories"
	"school-inventory/pkg/config"
	apperrors "school-inventory/pkg/errors"
	"school-inventory/pkg/utils"
)

// seedAdministrator создаёт первого администратора, если логин ещё свободен.
func seedAdministrator(ctx context.Context, userRepo repositories.UserRepositoryInterface, cfg config.SeedConfig, logger *zap.Logger) (*entities.User, error) {
	existing, err := userRepo.FindUserByUsername(ctx, cfg.AdminUsername)
	if err == nil {
		logger.Info("Администратор уже существует, пропускаем", zap.String("username", existing.Username))
		return existing, nil
	}
	if !errors.Is(err, apperrors.ErrNotFound) {
		return nil, fmt.Errorf("ошибка при проверке существования пользователя: %w", err)
	}

	if cfg.AdminPassword == "" {
		return nil, apperrors.NewValidationError("не задан SEED_ADMIN_PASSWORD")
	}

	hashedPassword, err := utils.HashPassword(cfg.AdminPassword)
	if err != nil {
		return nil, err
	}

	created, err := userRepo.CreateUser(ctx, &entities.User{
		Name:     cfg.AdminName,
		Username: cfg.AdminUsername,
		Password: hashedPassword,
		Role:     entities.RoleAdministrator,
	})
	if err != nil {
		return nil, fmt.Errorf("ошибка при создании администратора: %w", err)
	}

	logger.Info("Администратор создан", zap.Uint64("id", created.ID), zap.String("username", created.Username))
	return created, nil
}

package services

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"school-inventory/internal/authz"
	"school-inventory/internal/dto"
	"school-inventory/internal/entities"
	"school-inventory/internal/repositories"
	apperrors "school-inventory/pkg/errors"
	"school-inventory/pkg/utils"
)

type UserServiceInterface interface {
	GetUsers(ctx context.Context, actor dto.AuthContext) ([]dto.UserDTO, error)
	CreateUser(ctx context.Context, actor dto.AuthContext, payload dto.CreateUserDTO) (*dto.UserDTO, error)
}

type UserService struct {
	*BaseService
	repo   repositories.UserRepositoryInterface
	logger *zap.Logger
}

func NewUserService(base *BaseService, repo repositories.UserRepositoryInterface, logger *zap.Logger) UserServiceInterface {
	return &UserService{BaseService: base, repo: repo, logger: logger}
}

func (s *UserService) GetUsers(ctx context.Context, actor dto.AuthContext) ([]dto.UserDTO, error) {
	if err := s.CheckPermission(actor, authz.UsersView); err != nil {
		return nil, err
	}
	users, err := s.repo.GetUsers(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]dto.UserDTO, 0, len(users))
	for _, u := range users {
		out = append(out, toUserDTO(u))
	}
	return out, nil
}

func (s *UserService) CreateUser(ctx context.Context, actor dto.AuthContext, payload dto.CreateUserDTO) (*dto.UserDTO, error) {
	if err := s.CheckPermission(actor, authz.UsersManage); err != nil {
		return nil, err
	}

	role := entities.Role(payload.Role)
	if !role.Valid() {
		return nil, apperrors.NewValidationError("недопустимая роль %q", payload.Role)
	}
	username := strings.TrimSpace(payload.Username)
	name := strings.TrimSpace(payload.Name)
	if username == "" || name == "" {
		return nil, apperrors.NewValidationError("имя и логин обязательны")
	}

	hash, err := utils.HashPassword(payload.Password)
	if err != nil {
		return nil, err
	}

	created, err := s.repo.CreateUser(ctx, &entities.User{
		Name:     name,
		Username: username,
		Password: hash,
		Role:     role,
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("Пользователь создан", zap.Uint64("userID", created.ID), zap.String("role", string(role)),
		zap.Uint64("actorID", actor.UserID))
	res := toUserDTO(*created)
	return &res, nil
}

package services

import (
	"context"

	"go.uber.org/zap"

	"school-inventory/internal/authz"
	"school-inventory/internal/dto"
	"school-inventory/internal/repositories"
)

type HistoryServiceInterface interface {
	GetHistory(ctx context.Context, actor dto.AuthContext) ([]dto.HistoryEntryDTO, error)
}

type HistoryService struct {
	*BaseService
	repo   repositories.HistoryRepositoryInterface
	logger *zap.Logger
}

func NewHistoryService(base *BaseService, repo repositories.HistoryRepositoryInterface, logger *zap.Logger) HistoryServiceInterface {
	return &HistoryService{BaseService: base, repo: repo, logger: logger}
}

func (s *HistoryService) GetHistory(ctx context.Context, actor dto.AuthContext) ([]dto.HistoryEntryDTO, error) {
	if err := s.CheckPermission(actor, authz.HistoryView); err != nil {
		return nil, err
	}
	entries, err := s.repo.GetHistory(ctx)
	if err != nil {
		s.logger.Error("ошибка получения истории", zap.Error(err))
		return nil, err
	}
	out := make([]dto.HistoryEntryDTO, 0, len(entries))
	for _, h := range entries {
		out = append(out, toHistoryEntryDTO(h))
	}
	return out, nil
}

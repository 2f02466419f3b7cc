package controllers

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"school-inventory/internal/dto"
	"school-inventory/internal/services"
	apperrors "school-inventory/pkg/errors"
	"school-inventory/pkg/utils"
)

type DashboardController struct {
	dashboardService services.DashboardServiceInterface
	logger           *zap.Logger
}

func NewDashboardController(dashboardService services.DashboardServiceInterface, logger *zap.Logger) *DashboardController {
	return &DashboardController{dashboardService: dashboardService, logger: logger}
}

func (c *DashboardController) GetAdminDashboard(ctx echo.Context) error {
	actor, err := utils.GetAuthContext(ctx.Request().Context())
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	res, err := c.dashboardService.GetAdminDashboard(ctx.Request().Context(), actor)
	if err != nil {
		c.logger.Error("GetAdminDashboard: ошибка при сборе статистики", zap.Error(err))
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, res, "Данные панели администратора получены", http.StatusOK)
}

func (c *DashboardController) GetUserDashboard(ctx echo.Context) error {
	actor, err := utils.GetAuthContext(ctx.Request().Context())
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	var filter dto.EquipmentFilter
	if err := (&echo.DefaultBinder{}).BindQueryParams(ctx, &filter); err != nil {
		return utils.ErrorResponse(ctx, apperrors.NewBadRequestError("Неверные параметры фильтра"), c.logger)
	}

	res, err := c.dashboardService.GetUserDashboard(ctx.Request().Context(), actor, filter)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, res, "Данные панели пользователя получены", http.StatusOK)
}

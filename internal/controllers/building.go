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

type BuildingController struct {
	buildingService services.BuildingServiceInterface
	logger          *zap.Logger
}

func NewBuildingController(buildingService services.BuildingServiceInterface, logger *zap.Logger) *BuildingController {
	return &BuildingController{buildingService: buildingService, logger: logger}
}

func (c *BuildingController) GetBuildings(ctx echo.Context) error {
	actor, err := utils.GetAuthContext(ctx.Request().Context())
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	res, err := c.buildingService.GetBuildings(ctx.Request().Context(), actor)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, res, "Список зданий успешно получен", http.StatusOK, uint64(len(res)))
}

func (c *BuildingController) CreateBuilding(ctx echo.Context) error {
	actor, err := utils.GetAuthContext(ctx.Request().Context())
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	var payload dto.CreateBuildingDTO
	if err := ctx.Bind(&payload); err != nil {
		return utils.ErrorResponse(ctx, apperrors.NewBadRequestError("Неверный формат данных в теле запроса"), c.logger)
	}
	if err := ctx.Validate(&payload); err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	res, err := c.buildingService.CreateBuilding(ctx.Request().Context(), actor, payload)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, res, "Здание успешно создано", http.StatusCreated)
}

func (c *BuildingController) DeleteBuilding(ctx echo.Context) error {
	actor, err := utils.GetAuthContext(ctx.Request().Context())
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	id, err := utils.ParseID(ctx, "id")
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	if err := c.buildingService.DeleteBuilding(ctx.Request().Context(), actor, id); err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, struct{}{}, "Здание успешно удалено", http.StatusOK)
}

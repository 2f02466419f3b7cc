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

type DeviceTypeController struct {
	deviceTypeService services.DeviceTypeServiceInterface
	logger            *zap.Logger
}

func NewDeviceTypeController(deviceTypeService services.DeviceTypeServiceInterface, logger *zap.Logger) *DeviceTypeController {
	return &DeviceTypeController{deviceTypeService: deviceTypeService, logger: logger}
}

func (c *DeviceTypeController) GetDeviceTypes(ctx echo.Context) error {
	actor, err := utils.GetAuthContext(ctx.Request().Context())
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	res, err := c.deviceTypeService.GetDeviceTypes(ctx.Request().Context(), actor)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, res, "Список типов устройств успешно получен", http.StatusOK, uint64(len(res)))
}

func (c *DeviceTypeController) CreateDeviceType(ctx echo.Context) error {
	actor, err := utils.GetAuthContext(ctx.Request().Context())
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	var payload dto.CreateDeviceTypeDTO
	if err := ctx.Bind(&payload); err != nil {
		return utils.ErrorResponse(ctx, apperrors.NewBadRequestError("Неверный формат данных в теле запроса"), c.logger)
	}
	if err := ctx.Validate(&payload); err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	res, err := c.deviceTypeService.CreateDeviceType(ctx.Request().Context(), actor, payload)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, res, "Тип устройства успешно создан", http.StatusCreated)
}

func (c *DeviceTypeController) DeleteDeviceType(ctx echo.Context) error {
	actor, err := utils.GetAuthContext(ctx.Request().Context())
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	id, err := utils.ParseID(ctx, "id")
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	if err := c.deviceTypeService.DeleteDeviceType(ctx.Request().Context(), actor, id); err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, struct{}{}, "Тип устройства успешно удалён", http.StatusOK)
}

package controllers

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"school-inventory/internal/dto"
	"school-inventory/internal/services"
	apperrors "school-inventory/pkg/errors"
	"school-inventory/pkg/utils"
)

type EquipmentController struct {
	equipmentService services.EquipmentServiceInterface
	logger           *zap.Logger
}

func NewEquipmentController(service services.EquipmentServiceInterface, logger *zap.Logger) *EquipmentController {
	return &EquipmentController{
		equipmentService: service,
		logger:           logger,
	}
}

func (c *EquipmentController) GetEquipments(ctx echo.Context) error {
	actor, err := utils.GetAuthContext(ctx.Request().Context())
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	var filter dto.EquipmentFilter
	if err := (&echo.DefaultBinder{}).BindQueryParams(ctx, &filter); err != nil {
		return utils.ErrorResponse(ctx, apperrors.NewBadRequestError("Неверные параметры фильтра"), c.logger)
	}

	res, err := c.equipmentService.GetEquipments(ctx.Request().Context(), actor, filter)
	if err != nil {
		c.logger.Error("GetEquipments: ошибка при получении списка оборудования", zap.Error(err))
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	return utils.SuccessResponse(ctx, res, "Список оборудования успешно получен", http.StatusOK, uint64(len(res)))
}

func (c *EquipmentController) FindEquipment(ctx echo.Context) error {
	actor, err := utils.GetAuthContext(ctx.Request().Context())
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	id, err := utils.ParseID(ctx, "id")
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	res, err := c.equipmentService.FindEquipment(ctx.Request().Context(), actor, id)
	if err != nil {
		c.logger.Warn("FindEquipment: ошибка при поиске оборудования", zap.Uint64("id", id), zap.Error(err))
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	return utils.SuccessResponse(ctx, res, "Оборудование успешно найдено", http.StatusOK)
}

func (c *EquipmentController) CreateEquipment(ctx echo.Context) error {
	actor, err := utils.GetAuthContext(ctx.Request().Context())
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	var payload dto.CreateEquipmentDTO
	if err := ctx.Bind(&payload); err != nil {
		c.logger.Error("CreateEquipment: ошибка привязки данных", zap.Error(err))
		return utils.ErrorResponse(ctx, apperrors.NewBadRequestError("Неверный формат данных в теле запроса"), c.logger)
	}
	if isFormRequest(ctx) {
		composition, err := formComposition(ctx)
		if err != nil {
			return utils.ErrorResponse(ctx, err, c.logger)
		}
		payload.Detail, payload.Graphics, payload.Peripherals = composition.Detail, composition.Graphics, composition.Peripherals
	}

	if err := ctx.Validate(&payload); err != nil {
		c.logger.Warn("CreateEquipment: ошибка валидации данных", zap.Error(err))
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	res, err := c.equipmentService.CreateEquipment(ctx.Request().Context(), actor, payload)
	if err != nil {
		c.logger.Warn("CreateEquipment: ошибка при создании оборудования", zap.String("code", payload.Code), zap.Error(err))
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	return utils.SuccessResponse(ctx, res, "Оборудование успешно создано", http.StatusCreated)
}

func (c *EquipmentController) UpdateEquipment(ctx echo.Context) error {
	actor, err := utils.GetAuthContext(ctx.Request().Context())
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	id, err := utils.ParseID(ctx, "id")
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	var payload dto.UpdateEquipmentDTO
	if err := ctx.Bind(&payload); err != nil {
		c.logger.Error("UpdateEquipment: ошибка привязки данных", zap.Error(err))
		return utils.ErrorResponse(ctx, apperrors.NewBadRequestError("Неверный формат данных в теле запроса"), c.logger)
	}
	if err := ctx.Validate(&payload); err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	res, err := c.equipmentService.UpdateEquipment(ctx.Request().Context(), actor, id, payload)
	if err != nil {
		c.logger.Warn("UpdateEquipment: ошибка при обновлении оборудования", zap.Uint64("id", id), zap.Error(err))
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	return utils.SuccessResponse(ctx, res, "Оборудование успешно обновлено", http.StatusOK)
}

func (c *EquipmentController) UpdateEquipmentDetails(ctx echo.Context) error {
	actor, err := utils.GetAuthContext(ctx.Request().Context())
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	id, err := utils.ParseID(ctx, "id")
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	var payload dto.UpdateEquipmentDetailsDTO
	if isFormRequest(ctx) {
		composition, err := formComposition(ctx)
		if err != nil {
			return utils.ErrorResponse(ctx, err, c.logger)
		}
		payload = dto.UpdateEquipmentDetailsDTO{
			Detail:      composition.Detail,
			Graphics:    composition.Graphics,
			Peripherals: composition.Peripherals,
		}
	} else if err := ctx.Bind(&payload); err != nil {
		c.logger.Error("UpdateEquipmentDetails: ошибка привязки данных", zap.Error(err))
		return utils.ErrorResponse(ctx, apperrors.NewBadRequestError("Неверный формат данных в теле запроса"), c.logger)
	}
	if err := ctx.Validate(&payload); err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	res, err := c.equipmentService.UpdateEquipmentDetails(ctx.Request().Context(), actor, id, payload)
	if err != nil {
		c.logger.Warn("UpdateEquipmentDetails: ошибка при обновлении деталей", zap.Uint64("id", id), zap.Error(err))
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	return utils.SuccessResponse(ctx, res, "Детали оборудования успешно обновлены", http.StatusOK)
}

func (c *EquipmentController) DeleteEquipment(ctx echo.Context) error {
	actor, err := utils.GetAuthContext(ctx.Request().Context())
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	id, err := utils.ParseID(ctx, "id")
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	if err := c.equipmentService.DeleteEquipment(ctx.Request().Context(), actor, id); err != nil {
		c.logger.Warn("DeleteEquipment: ошибка при удалении оборудования", zap.Uint64("id", id), zap.Error(err))
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	return utils.SuccessResponse(ctx, struct{}{}, "Оборудование удалено и перенесено в историю", http.StatusOK)
}

func isFormRequest(ctx echo.Context) bool {
	ct := ctx.Request().Header.Get(echo.HeaderContentType)
	return strings.HasPrefix(ct, echo.MIMEApplicationForm) || strings.HasPrefix(ct, echo.MIMEMultipartForm)
}

func formComposition(ctx echo.Context) (equipmentComposition, error) {
	form, err := ctx.FormParams()
	if err != nil {
		return equipmentComposition{}, apperrors.NewBadRequestError("Не удалось прочитать форму")
	}
	return decodeComposition(form)
}

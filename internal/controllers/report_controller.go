package controllers

import (
	"bytes"
	"fmt"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"school-inventory/internal/services"
	"school-inventory/pkg/utils"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

type ReportController struct {
	reportService services.ReportServiceInterface
	logger        *zap.Logger
}

func NewReportController(reportService services.ReportServiceInterface, logger *zap.Logger) *ReportController {
	return &ReportController{reportService: reportService, logger: logger}
}

func (c *ReportController) ExportInventory(ctx echo.Context) error {
	actor, err := utils.GetAuthContext(ctx.Request().Context())
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	buf, err := c.reportService.ExportInventory(ctx.Request().Context(), actor)
	if err != nil {
		c.logger.Error("ExportInventory: не удалось сформировать отчёт", zap.Error(err))
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return c.respondWithXLSX(ctx, "inventory", buf)
}

func (c *ReportController) ExportHistory(ctx echo.Context) error {
	actor, err := utils.GetAuthContext(ctx.Request().Context())
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	buf, err := c.reportService.ExportHistory(ctx.Request().Context(), actor)
	if err != nil {
		c.logger.Error("ExportHistory: не удалось сформировать отчёт", zap.Error(err))
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return c.respondWithXLSX(ctx, "history", buf)
}

func (c *ReportController) respondWithXLSX(ctx echo.Context, name string, buf *bytes.Buffer) error {
	fileName := fmt.Sprintf("%s_%s.xlsx", name, time.Now().Format("2006-01-02"))
	ctx.Response().Header().Set(echo.HeaderContentDisposition, fmt.Sprintf(`attachment; filename="%s"`, fileName))
	return ctx.Blob(http.StatusOK, xlsxContentType, buf.Bytes())
}

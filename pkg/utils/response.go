package utils

import (
	"errors"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	apperrors "school-inventory/pkg/errors"
)

type HttpResponse struct {
	Status  bool        `json:"status"`
	Body    interface{} `json:"body,omitempty"`
	Message string      `json:"message"`
	Total   *uint64     `json:"total,omitempty"`
}

func SuccessResponse(ctx echo.Context, body interface{}, message string, code int, total ...uint64) error {
	response := &HttpResponse{
		Status:  true,
		Body:    body,
		Message: message,
	}
	if len(total) > 0 {
		response.Total = &total[0]
	}
	return ctx.JSON(code, response)
}

// ErrorResponse переводит ошибку в HTTP-ответ: код берётся из таксономии apperrors,
// ошибки validator/v10 отдаются как 400 со списком полей.
func ErrorResponse(ctx echo.Context, err error, logger *zap.Logger) error {
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		fields := make(map[string]string, len(validationErrs))
		for _, fe := range validationErrs {
			fields[fe.Field()] = fe.Tag()
		}
		return ctx.JSON(http.StatusBadRequest, &HttpResponse{
			Status:  false,
			Body:    fields,
			Message: "Ошибка валидации данных",
		})
	}

	var echoErr *echo.HTTPError
	if errors.As(err, &echoErr) {
		return ctx.JSON(echoErr.Code, &HttpResponse{Status: false, Message: http.StatusText(echoErr.Code)})
	}

	code := apperrors.HTTPStatus(err)
	message := apperrors.Message(err)
	if code >= http.StatusInternalServerError {
		if logger != nil {
			logger.Error("Внутренняя ошибка сервера",
				zap.String("path", ctx.Request().URL.Path), zap.Error(err))
		}
		message = "Внутренняя ошибка сервера"
	}

	var details interface{}
	var httpErr *apperrors.HttpError
	if errors.As(err, &httpErr) && httpErr.Details != nil {
		details = httpErr.Details
	}

	return ctx.JSON(code, &HttpResponse{
		Status:  false,
		Body:    details,
		Message: message,
	})
}

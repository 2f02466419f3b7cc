package utils

import (
	"context"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"school-inventory/internal/dto"
	"school-inventory/pkg/contextkeys"
	apperrors "school-inventory/pkg/errors"
)

func GetAuthContext(ctx context.Context) (dto.AuthContext, error) {
	auth, ok := ctx.Value(contextkeys.AuthContextKey).(dto.AuthContext)
	if !ok || auth.UserID == 0 {
		return dto.AuthContext{}, apperrors.ErrAuthContextNotFound
	}
	return auth, nil
}

func WithAuthContext(ctx context.Context, auth dto.AuthContext) context.Context {
	return context.WithValue(ctx, contextkeys.AuthContextKey, auth)
}

// ParseID читает числовой параметр пути; ноль считается ошибкой.
func ParseID(c echo.Context, name string) (uint64, error) {
	raw := c.Param(name)
	id, err := strconv.ParseUint(raw, 10, 64)
	if err != nil || id == 0 {
		return 0, apperrors.NewHttpError(http.StatusBadRequest, "Неверный формат ID", apperrors.ErrValidation,
			map[string]interface{}{"param": raw})
	}
	return id, nil
}

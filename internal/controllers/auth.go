package controllers

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"school-inventory/internal/dto"
	"school-inventory/internal/services"
	"school-inventory/pkg/config"
	apperrors "school-inventory/pkg/errors"
	"school-inventory/pkg/middleware"
	"school-inventory/pkg/service"
	"school-inventory/pkg/utils"
)

type AuthController struct {
	authService services.AuthServiceInterface
	session     config.SessionConfig
	logger      *zap.Logger
}

func NewAuthController(
	authService services.AuthServiceInterface,
	session config.SessionConfig,
	logger *zap.Logger,
) *AuthController {
	return &AuthController{
		authService: authService,
		session:     session,
		logger:      logger,
	}
}

func (ctrl *AuthController) errorResponse(c echo.Context, err error) error {
	return utils.ErrorResponse(c, err, ctrl.logger)
}

// Entry - точка входа без авторизации, сюда перенаправляются запросы с чужой ролью.
func (ctrl *AuthController) Entry(c echo.Context) error {
	return utils.SuccessResponse(c, map[string]string{"login": "/api/auth/login"},
		"Войдите в систему, чтобы продолжить", http.StatusOK)
}

func (ctrl *AuthController) Login(c echo.Context) error {
	var payload dto.LoginDTO
	if err := c.Bind(&payload); err != nil {
		ctrl.logger.Error("Login: ошибка привязки данных", zap.Error(err))
		return ctrl.errorResponse(c, apperrors.NewBadRequestError("Неверный формат данных для входа"))
	}
	if err := c.Validate(&payload); err != nil {
		return ctrl.errorResponse(c, err)
	}

	res, token, err := ctrl.authService.Login(c.Request().Context(), payload)
	if err != nil {
		ctrl.logger.Warn("Login: ошибка авторизации", zap.String("username", payload.Username), zap.Error(err))
		return ctrl.errorResponse(c, err)
	}

	c.SetCookie(ctrl.sessionCookie(token, time.Now().Add(ctrl.session.TTL)))
	return utils.SuccessResponse(c, res, "Авторизация прошла успешно", http.StatusOK)
}

func (ctrl *AuthController) Logout(c echo.Context) error {
	if claims, ok := c.Get(middleware.SessionClaimsKey).(*service.SessionClaims); ok && claims.ExpiresAt != nil {
		if err := ctrl.authService.Logout(c.Request().Context(), claims.ID, claims.ExpiresAt.Time); err != nil {
			ctrl.logger.Error("Logout: не удалось отозвать сессию", zap.Error(err))
		}
	}

	c.SetCookie(ctrl.sessionCookie("", time.Unix(0, 0)))
	return utils.SuccessResponse(c, nil, "Вы успешно вышли из системы.", http.StatusOK)
}

func (ctrl *AuthController) Me(c echo.Context) error {
	actor, err := utils.GetAuthContext(c.Request().Context())
	if err != nil {
		return ctrl.errorResponse(c, err)
	}
	user, err := ctrl.authService.Me(c.Request().Context(), actor)
	if err != nil {
		ctrl.logger.Error("Ошибка получения пользователя по ID", zap.Uint64("userID", actor.UserID), zap.Error(err))
		return ctrl.errorResponse(c, err)
	}
	return utils.SuccessResponse(c, user, "Профиль пользователя успешно получен", http.StatusOK)
}

func (ctrl *AuthController) sessionCookie(value string, expires time.Time) *http.Cookie {
	cookie := &http.Cookie{
		Name:     ctrl.session.CookieName,
		Value:    value,
		Path:     "/",
		Expires:  expires,
		HttpOnly: true,
		Secure:   ctrl.session.Secure,
		SameSite: http.SameSiteLaxMode,
	}
	if value == "" {
		cookie.MaxAge = -1
	}
	return cookie
}

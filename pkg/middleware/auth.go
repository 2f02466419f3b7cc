package middleware

import (
	"context"
	"net/http"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"school-inventory/internal/dto"
	"school-inventory/internal/entities"
	apperrors "school-inventory/pkg/errors"
	"school-inventory/pkg/service"
	"school-inventory/pkg/utils"
)

// SessionClaimsKey - ключ echo.Context, под которым лежат claims текущей сессии.
const SessionClaimsKey = "sessionClaims"

// SessionChecker проверяет, не отозвана ли сессия при выходе.
type SessionChecker interface {
	IsSessionRevoked(ctx context.Context, sessionID string) (bool, error)
}

type AuthMiddleware struct {
	jwtService service.JWTService
	sessions   SessionChecker
	cookieName string
	loginPath  string
	logger     *zap.Logger
}

func NewAuthMiddleware(jwtSvc service.JWTService, sessions SessionChecker, cookieName, loginPath string, logger *zap.Logger) *AuthMiddleware {
	return &AuthMiddleware{
		jwtService: jwtSvc,
		sessions:   sessions,
		cookieName: cookieName,
		loginPath:  loginPath,
		logger:     logger,
	}
}

// Auth достаёт токен сессии из cookie и кладёт AuthContext в контекст запроса.
func (m *AuthMiddleware) Auth(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		cookie, err := c.Cookie(m.cookieName)
		if err != nil || cookie.Value == "" {
			m.logger.Debug("AuthMiddleware: cookie сессии отсутствует", zap.String("path", c.Path()))
			return utils.ErrorResponse(c, apperrors.ErrEmptySession, m.logger)
		}

		claims, err := m.jwtService.ValidateToken(cookie.Value)
		if err != nil {
			m.logger.Warn("AuthMiddleware: ошибка валидации токена", zap.Error(err))
			return utils.ErrorResponse(c, err, m.logger)
		}

		revoked, err := m.sessions.IsSessionRevoked(c.Request().Context(), claims.ID)
		if err != nil {
			m.logger.Warn("AuthMiddleware: не удалось проверить отзыв сессии", zap.Error(err))
		}
		if revoked {
			return utils.ErrorResponse(c, apperrors.ErrSessionRevoked, m.logger)
		}

		auth := dto.AuthContext{UserID: claims.UserID, Role: claims.Role}
		c.SetRequest(c.Request().WithContext(utils.WithAuthContext(c.Request().Context(), auth)))
		c.Set(SessionClaimsKey, claims)

		return next(c)
	}
}

// RequireRole пропускает только указанную роль, остальных отправляет на страницу входа.
func (m *AuthMiddleware) RequireRole(role entities.Role) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			auth, err := utils.GetAuthContext(c.Request().Context())
			if err != nil || auth.Role != string(role) {
				m.logger.Warn("RequireRole: роль не подходит, перенаправление",
					zap.String("required", string(role)), zap.String("actual", auth.Role), zap.String("path", c.Path()))
				return c.Redirect(http.StatusFound, m.loginPath)
			}
			return next(c)
		}
	}
}

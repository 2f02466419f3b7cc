package controllers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"school-inventory/internal/dto"
	"school-inventory/pkg/config"
	apperrors "school-inventory/pkg/errors"
	"school-inventory/pkg/middleware"
	"school-inventory/pkg/service"
	"school-inventory/pkg/validation"
)

type stubAuthService struct {
	loggedOut string
}

func (s *stubAuthService) Login(ctx context.Context, payload dto.LoginDTO) (*dto.LoginResponseDTO, string, error) {
	if payload.Password != "admin123" {
		return nil, "", apperrors.ErrInvalidCredentials
	}
	return &dto.LoginResponseDTO{User: dto.UserDTO{ID: 1, Role: "Administrator"}, RedirectTo: "/admin"}, "signed-token", nil
}

func (s *stubAuthService) Logout(ctx context.Context, sessionID string, expiresAt time.Time) error {
	s.loggedOut = sessionID
	return nil
}

func (s *stubAuthService) IsSessionRevoked(ctx context.Context, sessionID string) (bool, error) {
	return false, nil
}

func (s *stubAuthService) Me(ctx context.Context, actor dto.AuthContext) (*dto.UserDTO, error) {
	return &dto.UserDTO{ID: actor.UserID, Role: actor.Role}, nil
}

var testSession = config.SessionConfig{CookieName: "inventory_session", TTL: time.Hour, LoginPath: "/"}

func newAuthEcho(svc *stubAuthService) *echo.Echo {
	e := echo.New()
	e.Validator = validation.New()
	ctrl := NewAuthController(svc, testSession, zap.NewNop())
	e.POST("/api/auth/login", ctrl.Login)
	e.POST("/api/auth/logout", ctrl.Logout, func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			c.Set(middleware.SessionClaimsKey, &service.SessionClaims{})
			return next(c)
		}
	})
	return e
}

func TestLoginSetsCookie(t *testing.T) {
	e := newAuthEcho(&stubAuthService{})

	req := httptest.NewRequest(http.MethodPost, "/api/auth/login", strings.NewReader(`{"username":"admin","password":"admin123"}`))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := serve(e, req)

	require.Equal(t, http.StatusOK, rec.Code)
	cookies := rec.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.Equal(t, "inventory_session", cookies[0].Name)
	assert.Equal(t, "signed-token", cookies[0].Value)
	assert.True(t, cookies[0].HttpOnly)
	assert.Contains(t, rec.Body.String(), `"redirect_to":"/admin"`)
}

func TestLoginWrongPassword(t *testing.T) {
	e := newAuthEcho(&stubAuthService{})

	req := httptest.NewRequest(http.MethodPost, "/api/auth/login", strings.NewReader(`{"username":"admin","password":"nope"}`))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := serve(e, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Empty(t, rec.Result().Cookies())
}

func TestLogoutClearsCookie(t *testing.T) {
	e := newAuthEcho(&stubAuthService{})

	rec := serve(e, httptest.NewRequest(http.MethodPost, "/api/auth/logout", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	cookies := rec.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.Empty(t, cookies[0].Value)
	assert.Equal(t, -1, cookies[0].MaxAge)
}

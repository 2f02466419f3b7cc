package errors

import (
	"errors"
	"fmt"
	"net/http"
)

var (
	// JWT и сессия
	ErrInvalidSigningMethod = fmt.Errorf("неверный метод подписи токена")
	ErrInvalidToken         = fmt.Errorf("недопустимый токен")
	ErrTokenExpired         = fmt.Errorf("срок действия токена истёк")
	ErrSessionRevoked       = fmt.Errorf("сессия завершена")

	// Авторизация
	ErrEmptySession       = fmt.Errorf("сессия отсутствует")
	ErrInvalidCredentials = fmt.Errorf("неверные учётные данные")
	ErrAccountLocked      = fmt.Errorf("учётная запись временно заблокирована")
	ErrUnauthorized       = fmt.Errorf("неавторизован")
	ErrForbidden          = fmt.Errorf("доступ запрещён")

	// Контекст
	ErrAuthContextNotFound = fmt.Errorf("данные сессии не найдены в контексте запроса")

	// Общие (таксономия ошибок операций)
	ErrValidation  = errors.New("ошибка валидации")
	ErrConflict    = errors.New("конфликт данных")
	ErrNotFound    = errors.New("запись не найдена")
	ErrTransaction = errors.New("ошибка транзакции")
)

// AppError - ошибка операции с видом (Kind) из таксономии выше.
type AppError struct {
	Kind    error
	Message string
	Err     error
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

// Is позволяет писать errors.Is(err, apperrors.ErrConflict).
func (e *AppError) Is(target error) bool {
	return e.Kind == target
}

func (e *AppError) Unwrap() error { return e.Err }

func NewValidationError(format string, args ...interface{}) error {
	return &AppError{Kind: ErrValidation, Message: fmt.Sprintf(format, args...)}
}

func NewConflictError(format string, args ...interface{}) error {
	return &AppError{Kind: ErrConflict, Message: fmt.Sprintf(format, args...)}
}

func NewNotFoundError(format string, args ...interface{}) error {
	return &AppError{Kind: ErrNotFound, Message: fmt.Sprintf(format, args...)}
}

func NewTransactionError(err error) error {
	return &AppError{Kind: ErrTransaction, Message: "не удалось выполнить операцию с хранилищем", Err: err}
}

// AsTransactionError оставляет доменные ошибки как есть, а всё остальное
// (сбой хранилища внутри многошаговой записи) заворачивает в TransactionError.
func AsTransactionError(err error) error {
	if err == nil {
		return nil
	}
	var appErr *AppError
	if errors.As(err, &appErr) {
		return err
	}
	return NewTransactionError(err)
}

// Message возвращает текст, пригодный для показа пользователю.
func Message(err error) string {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Message
	}
	var httpErr *HttpError
	if errors.As(err, &httpErr) {
		return httpErr.Message
	}
	return err.Error()
}

// HttpError - ошибка транспортного уровня.
type HttpError struct {
	Code    int
	Message string
	Err     error
	Details interface{}
}

func (e *HttpError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%d %s: %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("%d %s", e.Code, e.Message)
}

func (e *HttpError) Unwrap() error { return e.Err }

func NewHttpError(code int, message string, err error, details interface{}) *HttpError {
	return &HttpError{Code: code, Message: message, Err: err, Details: details}
}

func NewBadRequestError(message string) *HttpError {
	return NewHttpError(http.StatusBadRequest, message, ErrValidation, nil)
}

// HTTPStatus сопоставляет ошибку с HTTP-кодом.
func HTTPStatus(err error) int {
	var httpErr *HttpError
	if errors.As(err, &httpErr) {
		return httpErr.Code
	}

	switch {
	case errors.Is(err, ErrValidation):
		return http.StatusBadRequest
	case errors.Is(err, ErrConflict):
		return http.StatusConflict
	case errors.Is(err, ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, ErrAccountLocked):
		return http.StatusLocked
	case errors.Is(err, ErrInvalidCredentials),
		errors.Is(err, ErrUnauthorized),
		errors.Is(err, ErrEmptySession),
		errors.Is(err, ErrAuthContextNotFound),
		errors.Is(err, ErrInvalidToken),
		errors.Is(err, ErrTokenExpired),
		errors.Is(err, ErrSessionRevoked),
		errors.Is(err, ErrInvalidSigningMethod):
		return http.StatusUnauthorized
	case errors.Is(err, ErrForbidden):
		return http.StatusForbidden
	default:
		return http.StatusInternalServerError
	}
}

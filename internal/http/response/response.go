// Package response содержит вспомогательные типы и функции для формирования
// унифицированных JSON‑ответов HTTP‑обработчиков. Пакет упрощает возврат
// успешных ответов, ошибок и сообщений валидации в едином формате.
package response

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/go-chi/render"
	"github.com/go-playground/validator"

	"github.com/magabrotheeeer/subscription-tracker/internal/lib/sl"
	"github.com/magabrotheeeer/subscription-tracker/internal/models"
)

// Fields — сообщения об ошибках, сгруппированные по имени поля запроса.
type Fields map[string][]string

// Response описывает стандартную структуру JSON‑ответа сервера.
// Поле Status — статус запроса ("OK" или "Error").
// Поле Error — текст ошибки (опционально, при неуспехе).
// Поле Fields — ошибки валидации по полям (опционально).
// Поле Data — данные ответа (опционально, при успехе).
type Response struct {
	Status string `json:"status"`
	Error  string `json:"error,omitempty"`
	Fields Fields `json:"fields,omitempty"`
	Data   any    `json:"data,omitempty"`
}

// ErrorResponse — структура ошибки для Swagger-документации.
// Используется в аннотациях @Failure как возвращаемый тип ошибки.
type ErrorResponse struct {
	Status string              `json:"status" example:"Error"`
	Error  string              `json:"error" example:"invalid request body"`
	Fields map[string][]string `json:"fields,omitempty"`
}

const (
	// StatusOK — значение статуса для успешного ответа.
	StatusOK = "OK"
	// StatusError — значение статуса для ответа с ошибкой.
	StatusError = "Error"
)

const msgValidation = "validation failed"

// StatusOKWithData возвращает успешный Response с переданными данными.
func StatusOKWithData(data any) Response {
	return Response{
		Status: StatusOK,
		Data:   data,
	}
}

// Error возвращает Response с ошибкой и переданным сообщением.
func Error(msg string) Response {
	return Response{
		Status: StatusError,
		Error:  msg,
	}
}

// FieldError возвращает Response с ошибкой одного поля.
func FieldError(fe *models.FieldError) Response {
	return Response{
		Status: StatusError,
		Error:  msgValidation,
		Fields: Fields{fe.Field: {fe.Message}},
	}
}

// ValidationError формирует Response со статусом Error на основе ошибок валидации.
// Каждое нарушение превращается в человеко‑читаемый текст под именем своего поля.
func ValidationError(errs validator.ValidationErrors) Response {
	fields := make(Fields, len(errs))
	for _, err := range errs {
		fields[err.Field()] = append(fields[err.Field()], message(err))
	}
	return Response{
		Status: StatusError,
		Error:  msgValidation,
		Fields: fields,
	}
}

func message(err validator.FieldError) string {
	switch err.ActualTag() {
	case "required":
		return models.ErrRequired.Error()
	case "max":
		return fmt.Sprintf("ensure this field has no more than %s characters", err.Param())
	case "min":
		return fmt.Sprintf("ensure this field has at least %s characters", err.Param())
	case "gte":
		return fmt.Sprintf("ensure this value is greater than or equal to %s", err.Param())
	case "lte":
		return fmt.Sprintf("ensure this value is less than or equal to %s", err.Param())
	case "oneof":
		return fmt.Sprintf("%q is not a valid choice", fmt.Sprint(err.Value()))
	case "date":
		return models.ErrInvalidDate.Error()
	case "uuid":
		return "must be a valid UUID"
	case "email":
		return "enter a valid email address"
	default:
		return "this value is not valid"
	}
}

// FromError подбирает HTTP-статус и тело ответа для ошибки сервисного слоя.
// Неизвестные ошибки дают 500 с сообщением internalMsg, чтобы не раскрывать детали.
func FromError(err error, internalMsg string) (int, Response) {
	var fe *models.FieldError
	switch {
	case errors.As(err, &fe):
		return http.StatusBadRequest, FieldError(fe)
	case errors.Is(err, models.ErrNotFound):
		return http.StatusNotFound, Error("not found")
	case errors.Is(err, models.ErrForbidden):
		return http.StatusForbidden, Error("you do not have permission to perform this action")
	case errors.Is(err, models.ErrUserExists):
		return http.StatusConflict, Error("user already exists")
	case errors.Is(err, models.ErrInvalidCredentials):
		return http.StatusUnauthorized, Error("invalid credentials")
	default:
		return http.StatusInternalServerError, Error(internalMsg)
	}
}

// Render пишет body с указанным HTTP-статусом.
func Render(w http.ResponseWriter, r *http.Request, status int, body any) {
	render.Status(r, status)
	render.JSON(w, r, body)
}

// RenderError отвечает на ошибку сервисного слоя. Ошибки клиента логируются на уровне Info,
// всё остальное на уровне Error.
func RenderError(w http.ResponseWriter, r *http.Request, log *slog.Logger, err error, internalMsg string) {
	status, body := FromError(err, internalMsg)
	if status >= http.StatusInternalServerError {
		log.Error(internalMsg, sl.Err(err))
	} else {
		log.Info("request rejected", slog.Int("status", status), sl.Err(err))
	}
	Render(w, r, status, body)
}

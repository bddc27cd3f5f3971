// Package settingsupsert реализует создание настроек уведомлений с семантикой upsert:
// повторный запрос того же пользователя обновляет существующую запись.
package settingsupsert

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-playground/validator"

	"github.com/magabrotheeeer/subscription-tracker/internal/http/middlewarectx"
	"github.com/magabrotheeeer/subscription-tracker/internal/http/response"
	"github.com/magabrotheeeer/subscription-tracker/internal/lib/sl"
	"github.com/magabrotheeeer/subscription-tracker/internal/lib/validation"
	"github.com/magabrotheeeer/subscription-tracker/internal/models"
)

// Handler обрабатывает HTTP-запросы на сохранение настроек уведомлений.
type Handler struct {
	log      *slog.Logger
	service  Service
	validate *validator.Validate
}

// Service описывает интерфейс бизнес-логики сохранения настроек.
// created сообщает, была ли запись создана, а не обновлена.
type Service interface {
	Upsert(ctx context.Context, userUID string, req models.DummyNotificationSettings) (*models.NotificationSettings, bool, error)
}

// New создает новый Handler.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:      log,
		service:  service,
		validate: validation.New(),
	}
}

// ServeHTTP godoc
// @Summary Сохранить настройки уведомлений
// @Description Создаёт настройки пользователя или обновляет уже существующие. Незаполненные поля получают значения по умолчанию.
// @Tags NotificationSettings
// @Accept  json
// @Produce  json
// @Security BearerAuth
// @Param request body models.DummyNotificationSettings true "Настройки"
// @Success 201 {object} response.Response{data=models.NotificationSettings} "Настройки созданы"
// @Success 200 {object} response.Response{data=models.NotificationSettings} "Настройки обновлены"
// @Failure 400 {object} response.ErrorResponse "Некорректный запрос или ошибка валидации"
// @Failure 401 {object} response.ErrorResponse "Пользователь не авторизован"
// @Failure 500 {object} response.ErrorResponse "Ошибка сервера"
// @Router /notification-settings [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.settings.upsert"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	userUID, ok := middlewarectx.UserUIDFrom(r.Context())
	if !ok {
		log.Error("user uid not found in context")
		response.Render(w, r, http.StatusUnauthorized, response.Error("unauthorized"))
		return
	}

	var req models.DummyNotificationSettings
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil && !errors.Is(err, io.EOF) {
		log.Error("failed to decode request body", sl.Err(err))
		response.Render(w, r, http.StatusBadRequest, response.Error("invalid request body"))
		return
	}

	if err := h.validate.Struct(req); err != nil {
		log.Info("validation failed", sl.Err(err))
		response.Render(w, r, http.StatusBadRequest, response.ValidationError(err.(validator.ValidationErrors)))
		return
	}

	settings, created, err := h.service.Upsert(r.Context(), userUID, req)
	if err != nil {
		response.RenderError(w, r, log, err, "could not save notification settings")
		return
	}

	status := http.StatusOK
	if created {
		status = http.StatusCreated
	}
	log.Info("notification settings saved", slog.Int("id", settings.ID), slog.Bool("created", created))
	response.Render(w, r, status, response.StatusOKWithData(settings))
}

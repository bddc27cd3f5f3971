// Package common реализует HTTP-обработчик поиска подписок, общих с друзьями.
package common

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"

	"github.com/magabrotheeeer/subscription-tracker/internal/http/middlewarectx"
	"github.com/magabrotheeeer/subscription-tracker/internal/http/response"
	"github.com/magabrotheeeer/subscription-tracker/internal/models"
)

// Handler обрабатывает запросы на поиск общих подписок.
type Handler struct {
	log     *slog.Logger
	service Service
}

// Service описывает интерфейс бизнес-логики поиска общих подписок.
type Service interface {
	Common(ctx context.Context, userUID string) ([]models.CommonSubscription, error)
}

// New создаёт новый Handler.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:     log,
		service: service,
	}
}

// ServeHTTP godoc
// @Summary Общие подписки с друзьями
// @Description Для каждого друга по принятой заявке ищет подписки с тем же названием (без учёта регистра).
// @Tags Friends
// @Produce  json
// @Security BearerAuth
// @Success 200 {array} models.CommonSubscription
// @Failure 401 {object} response.ErrorResponse "Пользователь не авторизован"
// @Failure 500 {object} response.ErrorResponse "Ошибка сервера"
// @Router /common [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.subscription.common"

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

	matches, err := h.service.Common(r.Context(), userUID)
	if err != nil {
		response.RenderError(w, r, log, err, "could not find common subscriptions")
		return
	}
	if matches == nil {
		matches = []models.CommonSubscription{}
	}

	log.Info("common subscriptions found", slog.Int("count", len(matches)))
	response.Render(w, r, http.StatusOK, matches)
}

// Package summary реализует HTTP-обработчик сводки расходов пользователя.
//
// Ответ не оборачивается в стандартный конверт: клиенты получают
// {monthly_total, yearly_total, count} напрямую.
package summary

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"

	"github.com/magabrotheeeer/subscription-tracker/internal/http/middlewarectx"
	"github.com/magabrotheeeer/subscription-tracker/internal/http/response"
	"github.com/magabrotheeeer/subscription-tracker/internal/models"
)

// Handler управляет HTTP-запросами на получение сводки.
type Handler struct {
	log     *slog.Logger
	service Service
}

// Service описывает интерфейс бизнес-логики подсчёта сводки.
type Service interface {
	Summary(ctx context.Context, userUID string) (models.Summary, error)
}

// New создаёт новый Handler с переданным логгером и сервисом.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:     log,
		service: service,
	}
}

// ServeHTTP godoc
// @Summary Сводка расходов
// @Description Месячная и годовая сумма по активным подпискам. Подписки в незавершённом пробном периоде не входят в суммы, но входят в count.
// @Tags Subscriptions
// @Produce  json
// @Security BearerAuth
// @Success 200 {object} models.Summary
// @Failure 401 {object} response.ErrorResponse "Пользователь не авторизован"
// @Failure 500 {object} response.ErrorResponse "Ошибка сервера при вычислении суммы"
// @Router /summary [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.subscription.summary"

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

	sum, err := h.service.Summary(r.Context(), userUID)
	if err != nil {
		response.RenderError(w, r, log, err, "could not calculate summary")
		return
	}

	log.Info("summary calculated", slog.Float64("monthly_total", sum.MonthlyTotal), slog.Int("count", sum.Count))
	response.Render(w, r, http.StatusOK, sum)
}

// Package list реализует HTTP-обработчик получения списка подписок пользователя
// с необязательной пагинацией через query-параметры limit и offset.
package list

import (
	"context"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/middleware"

	"github.com/magabrotheeeer/subscription-tracker/internal/http/middlewarectx"
	"github.com/magabrotheeeer/subscription-tracker/internal/http/response"
	"github.com/magabrotheeeer/subscription-tracker/internal/models"
)

// Handler обрабатывает HTTP-запросы на получение списка подписок.
type Handler struct {
	log     *slog.Logger
	service Service
}

// Service описывает интерфейс бизнес-логики получения списка подписок.
type Service interface {
	List(ctx context.Context, userUID string, limit *int, offset int) ([]*models.Subscription, error)
}

// New создает новый Handler с переданным логгером и сервисом.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:     log,
		service: service,
	}
}

// ServeHTTP godoc
// @Summary Список подписок
// @Description Возвращает подписки текущего пользователя по возрастанию ID. Без limit возвращаются все.
// @Tags Subscriptions
// @Produce  json
// @Security BearerAuth
// @Param limit query int false "Максимальное количество записей"
// @Param offset query int false "Смещение"
// @Success 200 {object} response.Response{data=[]models.Subscription}
// @Failure 400 {object} response.ErrorResponse "Некорректные параметры пагинации"
// @Failure 401 {object} response.ErrorResponse "Пользователь не авторизован"
// @Failure 500 {object} response.ErrorResponse "Ошибка сервера"
// @Router /subscriptions [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.subscription.list"

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

	limit, offset, fields := parsePage(r)
	if len(fields) > 0 {
		log.Info("invalid pagination parameters")
		response.Render(w, r, http.StatusBadRequest, response.Response{
			Status: response.StatusError,
			Error:  "validation failed",
			Fields: fields,
		})
		return
	}

	subs, err := h.service.List(r.Context(), userUID, limit, offset)
	if err != nil {
		response.RenderError(w, r, log, err, "could not list subscriptions")
		return
	}
	if subs == nil {
		subs = []*models.Subscription{}
	}

	log.Debug("subscriptions listed", slog.Int("count", len(subs)))
	response.Render(w, r, http.StatusOK, response.StatusOKWithData(subs))
}

func parsePage(r *http.Request) (*int, int, response.Fields) {
	fields := response.Fields{}
	q := r.URL.Query()

	var limit *int
	if raw := q.Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 0 {
			fields["limit"] = []string{"must be a non-negative integer"}
		} else {
			limit = &n
		}
	}

	offset := 0
	if raw := q.Get("offset"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 0 {
			fields["offset"] = []string{"must be a non-negative integer"}
		} else {
			offset = n
		}
	}
	return limit, offset, fields
}

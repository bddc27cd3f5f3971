// Package friendlist возвращает заявки, в которых пользователь отправитель или получатель.
package friendlist

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"

	"github.com/magabrotheeeer/subscription-tracker/internal/http/middlewarectx"
	"github.com/magabrotheeeer/subscription-tracker/internal/http/response"
	"github.com/magabrotheeeer/subscription-tracker/internal/models"
)

// Handler обрабатывает запросы на получение списка заявок.
type Handler struct {
	log     *slog.Logger
	service Service
}

// Service описывает интерфейс бизнес-логики списка заявок.
type Service interface {
	List(ctx context.Context, userUID string) ([]*models.FriendRequest, error)
}

// New создает новый Handler.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{log: log, service: service}
}

// ServeHTTP godoc
// @Summary Список заявок в друзья
// @Tags Friends
// @Produce  json
// @Security BearerAuth
// @Success 200 {object} response.Response{data=[]models.FriendRequest}
// @Failure 401 {object} response.ErrorResponse "Пользователь не авторизован"
// @Router /friends [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.friend.list"

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

	items, err := h.service.List(r.Context(), userUID)
	if err != nil {
		response.RenderError(w, r, log, err, "could not list friend requests")
		return
	}
	if items == nil {
		items = []*models.FriendRequest{}
	}
	response.Render(w, r, http.StatusOK, response.StatusOKWithData(items))
}

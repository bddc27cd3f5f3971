// Package friendupdate принимает или отклоняет заявку в друзья.
// Менять статус может только получатель заявки.
package friendupdate

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/go-playground/validator"

	"github.com/magabrotheeeer/subscription-tracker/internal/http/middlewarectx"
	"github.com/magabrotheeeer/subscription-tracker/internal/http/response"
	"github.com/magabrotheeeer/subscription-tracker/internal/lib/sl"
	"github.com/magabrotheeeer/subscription-tracker/internal/lib/validation"
	"github.com/magabrotheeeer/subscription-tracker/internal/models"
)

// Handler обрабатывает запросы на смену статуса заявки.
type Handler struct {
	log      *slog.Logger
	service  Service
	validate *validator.Validate
}

// Service описывает интерфейс бизнес-логики смены статуса.
type Service interface {
	UpdateStatus(ctx context.Context, userUID string, id int, status models.FriendRequestStatus) (*models.FriendRequest, error)
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
// @Summary Принять или отклонить заявку
// @Description Доступно только получателю заявки. Статус pending установить нельзя.
// @Tags Friends
// @Accept  json
// @Produce  json
// @Security BearerAuth
// @Param id path int true "ID заявки"
// @Param request body models.DummyFriendStatus true "Новый статус"
// @Success 200 {object} response.Response{data=models.FriendRequest}
// @Failure 400 {object} response.ErrorResponse "Некорректный запрос или статус"
// @Failure 403 {object} response.ErrorResponse "Статус меняет только получатель"
// @Failure 404 {object} response.ErrorResponse "Заявка не найдена"
// @Router /friends/{id} [put]
// @Router /friends/{id} [patch]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.friend.update"

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

	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		log.Info("failed to decode id from url", sl.Err(err))
		response.Render(w, r, http.StatusBadRequest, response.Error("invalid id"))
		return
	}

	var req models.DummyFriendStatus
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Error("failed to decode request body", sl.Err(err))
		response.Render(w, r, http.StatusBadRequest, response.Error("invalid request body"))
		return
	}

	if err := h.validate.Struct(req); err != nil {
		log.Info("validation failed", sl.Err(err))
		response.Render(w, r, http.StatusBadRequest, response.ValidationError(err.(validator.ValidationErrors)))
		return
	}

	fr, err := h.service.UpdateStatus(r.Context(), userUID, id, models.FriendRequestStatus(req.Status))
	if err != nil {
		response.RenderError(w, r, log, err, "could not update friend request")
		return
	}

	log.Info("friend request status changed", slog.Int("id", id), slog.String("status", string(fr.Status)))
	response.Render(w, r, http.StatusOK, response.StatusOKWithData(fr))
}

// Package friendcreate реализует отправку заявки в друзья.
package friendcreate

import (
	"context"
	"encoding/json"
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

// Handler обрабатывает запросы на создание заявки.
type Handler struct {
	log      *slog.Logger
	service  Service
	validate *validator.Validate
}

// Service описывает интерфейс бизнес-логики создания заявки.
type Service interface {
	Create(ctx context.Context, userUID, toUID string) (*models.FriendRequest, error)
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
// @Summary Отправить заявку в друзья
// @Description Создаёт заявку со статусом pending от текущего пользователя. Заявка самому себе, неизвестному пользователю или повторная заявка отклоняются.
// @Tags Friends
// @Accept  json
// @Produce  json
// @Security BearerAuth
// @Param request body models.DummyFriendRequest true "Получатель"
// @Success 201 {object} response.Response{data=models.FriendRequest}
// @Failure 400 {object} response.ErrorResponse "Некорректный запрос или ошибка валидации"
// @Failure 401 {object} response.ErrorResponse "Пользователь не авторизован"
// @Router /friends [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.friend.create"

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

	var req models.DummyFriendRequest
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

	fr, err := h.service.Create(r.Context(), userUID, req.ToUser)
	if err != nil {
		response.RenderError(w, r, log, err, "could not create friend request")
		return
	}

	log.Info("friend request created", slog.Int("id", fr.ID))
	response.Render(w, r, http.StatusCreated, response.StatusOKWithData(fr))
}

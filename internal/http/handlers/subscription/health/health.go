// Package health отвечает на проверку живости API.
package health

import (
	"net/http"

	"github.com/magabrotheeeer/subscription-tracker/internal/http/response"
)

// Handler отвечает 200, пока процесс обслуживает запросы.
type Handler struct{}

// New создает Handler.
func New() *Handler {
	return &Handler{}
}

// ServeHTTP godoc
// @Summary Проверка живости
// @Tags Health
// @Produce  json
// @Success 200 {object} response.Response
// @Router /health [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	response.Render(w, r, http.StatusOK, response.StatusOKWithData(map[string]any{
		"status": "ok",
	}))
}

// Package subscriptiontracker собирает HTTP API трекера подписок.
package subscriptiontracker

import (
	"log/slog"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	httpSwagger "github.com/swaggo/http-swagger"

	"github.com/magabrotheeeer/subscription-tracker/internal/http/handlers/auth/login"
	"github.com/magabrotheeeer/subscription-tracker/internal/http/handlers/auth/register"
	"github.com/magabrotheeeer/subscription-tracker/internal/http/handlers/friend/friendcreate"
	"github.com/magabrotheeeer/subscription-tracker/internal/http/handlers/friend/friendlist"
	"github.com/magabrotheeeer/subscription-tracker/internal/http/handlers/friend/friendread"
	"github.com/magabrotheeeer/subscription-tracker/internal/http/handlers/friend/friendremove"
	"github.com/magabrotheeeer/subscription-tracker/internal/http/handlers/friend/friendupdate"
	"github.com/magabrotheeeer/subscription-tracker/internal/http/handlers/settings/settingslist"
	"github.com/magabrotheeeer/subscription-tracker/internal/http/handlers/settings/settingsread"
	"github.com/magabrotheeeer/subscription-tracker/internal/http/handlers/settings/settingsremove"
	"github.com/magabrotheeeer/subscription-tracker/internal/http/handlers/settings/settingsupdate"
	"github.com/magabrotheeeer/subscription-tracker/internal/http/handlers/settings/settingsupsert"
	"github.com/magabrotheeeer/subscription-tracker/internal/http/handlers/subscription/common"
	"github.com/magabrotheeeer/subscription-tracker/internal/http/handlers/subscription/create"
	"github.com/magabrotheeeer/subscription-tracker/internal/http/handlers/subscription/health"
	"github.com/magabrotheeeer/subscription-tracker/internal/http/handlers/subscription/list"
	"github.com/magabrotheeeer/subscription-tracker/internal/http/handlers/subscription/read"
	"github.com/magabrotheeeer/subscription-tracker/internal/http/handlers/subscription/remove"
	"github.com/magabrotheeeer/subscription-tracker/internal/http/handlers/subscription/summary"
	"github.com/magabrotheeeer/subscription-tracker/internal/http/handlers/subscription/update"
	"github.com/magabrotheeeer/subscription-tracker/internal/http/middlewarectx"
	authservice "github.com/magabrotheeeer/subscription-tracker/internal/services/auth"
	friendservice "github.com/magabrotheeeer/subscription-tracker/internal/services/friend"
	notificationservice "github.com/magabrotheeeer/subscription-tracker/internal/services/notification"
	subservice "github.com/magabrotheeeer/subscription-tracker/internal/services/subscription"
)

// Services набор сервисов, которые обслуживают маршруты API.
type Services struct {
	Auth          *authservice.Service
	Subscriptions *subservice.Service
	Settings      *notificationservice.Service
	Friends       *friendservice.Service
}

// RegisterRoutes регистрирует все маршруты приложения.
func RegisterRoutes(
	r chi.Router,
	logger *slog.Logger,
	services Services,
	tokens middlewarectx.TokenParser,
	limiter *middlewarectx.RateLimiter,
	metrics *middlewarectx.Metrics,
) {
	// Глобальные middleware
	r.Use(
		middleware.RequestID,
		middleware.Logger,
		middleware.Recoverer,
		middleware.URLFormat,
		middleware.StripSlashes,
		metrics.Middleware,
	)

	r.Get("/health", health.New().ServeHTTP)

	r.Route("/api/v1", func(r chi.Router) {
		// Открытые конечные точки, лимит по IP
		r.Group(func(r chi.Router) {
			r.Use(middlewarectx.RateLimitMiddleware(limiter, logger))
			r.Post("/register", register.New(logger, services.Auth).ServeHTTP)
			r.Post("/login", login.New(logger, services.Auth).ServeHTTP)
		})

		// Группа с JWT аутентификацией
		r.Group(func(r chi.Router) {
			r.Use(middlewarectx.JWTMiddleware(tokens, logger))
			r.Use(middlewarectx.RateLimitMiddleware(limiter, logger))

			r.Route("/subscriptions", func(r chi.Router) {
				r.Post("/", create.New(logger, services.Subscriptions).ServeHTTP)
				r.Get("/", list.New(logger, services.Subscriptions).ServeHTTP)
				r.Get("/{id}", read.New(logger, services.Subscriptions).ServeHTTP)
				r.Put("/{id}", update.New(logger, services.Subscriptions).ServeHTTP)
				r.Delete("/{id}", remove.New(logger, services.Subscriptions).ServeHTTP)
			})
			r.Get("/summary", summary.New(logger, services.Subscriptions).ServeHTTP)
			r.Get("/common", common.New(logger, services.Subscriptions).ServeHTTP)

			r.Route("/notification-settings", func(r chi.Router) {
				r.Post("/", settingsupsert.New(logger, services.Settings).ServeHTTP)
				r.Get("/", settingslist.New(logger, services.Settings).ServeHTTP)
				r.Get("/{id}", settingsread.New(logger, services.Settings).ServeHTTP)
				r.Put("/{id}", settingsupdate.New(logger, services.Settings).ServeHTTP)
				r.Delete("/{id}", settingsremove.New(logger, services.Settings).ServeHTTP)
			})

			r.Route("/friends", func(r chi.Router) {
				statusHandler := friendupdate.New(logger, services.Friends)
				r.Post("/", friendcreate.New(logger, services.Friends).ServeHTTP)
				r.Get("/", friendlist.New(logger, services.Friends).ServeHTTP)
				r.Get("/{id}", friendread.New(logger, services.Friends).ServeHTTP)
				r.Put("/{id}", statusHandler.ServeHTTP)
				r.Patch("/{id}", statusHandler.ServeHTTP)
				r.Delete("/{id}", friendremove.New(logger, services.Friends).ServeHTTP)
			})
		})
	})

	r.Handle("/metrics", promhttp.Handler())
	r.Get("/docs/*", httpSwagger.WrapHandler)
}

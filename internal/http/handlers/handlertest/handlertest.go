// Package handlertest собирает запросы для тестов HTTP-обработчиков:
// тело, параметры маршрута chi и пользователя из JWT в контексте.
package handlertest

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/stretchr/testify/require"

	"github.com/magabrotheeeer/subscription-tracker/internal/http/middlewarectx"
)

// UserUID идентификатор пользователя, от имени которого идут тестовые запросы.
const UserUID = "11111111-1111-1111-1111-111111111111"

// Request описывает тестовый запрос.
type Request struct {
	Method string
	Target string
	// Body сериализуется в JSON; строка отправляется как есть.
	Body   any
	Params map[string]string
	// Anonymous убирает пользователя из контекста.
	Anonymous bool
}

// New собирает *http.Request по описанию.
func New(t *testing.T, tr Request) *http.Request {
	t.Helper()

	var body io.Reader
	switch b := tr.Body.(type) {
	case nil:
	case string:
		body = bytes.NewBufferString(b)
	default:
		raw, err := json.Marshal(b)
		require.NoError(t, err)
		body = bytes.NewReader(raw)
	}

	req := httptest.NewRequest(tr.Method, tr.Target, body)
	req.Header.Set("Content-Type", "application/json")

	rctx := chi.NewRouteContext()
	for k, v := range tr.Params {
		rctx.URLParams.Add(k, v)
	}
	ctx := context.WithValue(req.Context(), chi.RouteCtxKey, rctx)
	ctx = context.WithValue(ctx, middleware.RequestIDKey, "req-id")
	if !tr.Anonymous {
		ctx = context.WithValue(ctx, middlewarectx.UserUID, UserUID)
		ctx = context.WithValue(ctx, middlewarectx.User, "testuser")
	}
	return req.WithContext(ctx)
}

// Serve выполняет запрос и возвращает записанный ответ.
func Serve(t *testing.T, h http.Handler, tr Request) *httptest.ResponseRecorder {
	t.Helper()
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, New(t, tr))
	return rec
}

// NoopLogger возвращает логгер, который ничего не пишет.
func NoopLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{}))
}

// Ptr возвращает указатель на v.
func Ptr[T any](v T) *T {
	return &v
}

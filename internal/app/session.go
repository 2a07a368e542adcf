package app

import (
	"log/slog"
	"net/http"
)

type contextKey string

const loggerContextKey = contextKey("logger")

type sessionKey string

const (
	SessionKeyCheckout = sessionKey("checkout")
)

func (s sessionKey) String() string {
	return string(s)
}

func (app *Application) contextGetLogger(r *http.Request) *slog.Logger {
	logger, ok := r.Context().Value(loggerContextKey).(*slog.Logger)
	if !ok {
		return app.logger
	}

	return logger
}

func (app *Application) sessionID(r *http.Request) string {
	return app.sessionManager.Token(r.Context())
}

package app

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/getkin/kin-openapi/openapi3filter"
	"github.com/getkin/kin-openapi/routers/gorillamux"
	"github.com/go-chi/chi/v5/middleware"
)

func (app *Application) recoverPanic(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if err := recover(); err != nil {
				w.Header().Set("Connection", "close")

				app.serverErrorResponse(w, r, fmt.Errorf("%s", err))
			}
		}()

		next.ServeHTTP(w, r)
	})
}

// logRequest stores a request scoped logger in the context and logs the
// outcome of every request.
func (app *Application) logRequest(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		logger := app.logger.With(
			"request_id", middleware.GetReqID(r.Context()),
			"method", r.Method,
			"uri", r.URL.RequestURI(),
		)

		ctx := context.WithValue(r.Context(), loggerContextKey, logger)
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()

		next.ServeHTTP(ww, r.WithContext(ctx))

		logger.Info("request completed",
			"status", ww.Status(),
			"bytes", ww.BytesWritten(),
			"duration", time.Since(start),
		)
	})
}

// ensureCheckoutSession makes sure the session has a token before any
// handler runs, since the token keys the checkout in redis.
func (app *Application) ensureCheckoutSession(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		sessionID := app.sessionManager.Token(r.Context())

		if sessionID == "" {
			app.sessionManager.Put(r.Context(), SessionKeyCheckout.String(), true)

			_, _, err := app.sessionManager.Commit(r.Context())
			if err != nil {
				app.serverErrorResponse(w, r, err)
				return
			}
		}

		next.ServeHTTP(w, r)
	})
}

// validateRequest checks requests against the OpenAPI document. Requests the
// document does not describe are left to the router.
func (app *Application) validateRequest() func(http.Handler) http.Handler {
	// Host matching is not wanted, the servers list only documents the
	// local address.
	app.openapi.Servers = nil

	router, err := gorillamux.NewRouter(app.openapi)
	if err != nil {
		panic(fmt.Sprintf("build openapi router: %v", err))
	}

	options := &openapi3filter.Options{
		AuthenticationFunc: openapi3filter.NoopAuthenticationFunc,
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			route, pathParams, err := router.FindRoute(r)
			if err != nil {
				next.ServeHTTP(w, r)
				return
			}

			input := &openapi3filter.RequestValidationInput{
				Request:    r,
				PathParams: pathParams,
				Route:      route,
				Options:    options,
			}

			err = openapi3filter.ValidateRequest(r.Context(), input)
			if err != nil {
				app.badRequestResponse(w, r, err)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

package app

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/metinatakli/movie-checkout/api"
	"github.com/riandyrn/otelchi"
)

func (app *Application) Routes() http.Handler {
	r := chi.NewRouter()

	r.NotFound(app.notFoundResponse)
	r.MethodNotAllowed(app.methodNotAllowedResponse)

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(otelchi.Middleware(serviceName, otelchi.WithChiRoutes(r)))
	r.Use(app.logRequest)
	r.Use(app.recoverPanic)

	// Stripe calls the webhook without a browser session.
	r.Post("/webhooks/stripe", app.StripeWebhookHandler)

	validateRequest := app.validateRequest()

	r.Group(func(r chi.Router) {
		r.Use(app.sessionManager.LoadAndSave)
		r.Use(app.ensureCheckoutSession)
		r.Use(validateRequest)

		api.HandlerWithOptions(app, api.ChiServerOptions{
			BaseRouter:       r,
			ErrorHandlerFunc: app.badRequestResponse,
		})
	})

	return r
}

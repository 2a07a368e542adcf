package app

import (
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-playground/validator/v10"
	"github.com/metinatakli/movie-checkout/api"
	"github.com/metinatakli/movie-checkout/internal/domain"
	appvalidator "github.com/metinatakli/movie-checkout/internal/validator"
	"github.com/metinatakli/movie-checkout/internal/workflow"
)

const (
	ErrInternalServer      = "The server encountered a problem and could not process your request"
	ErrNotFound            = "The requested resource not found"
	ErrMethodNotAllowed    = "The method is not supported for this resource"
	ErrFailedValidation    = "One or more fields have invalid values"
	ErrSubmissionPending   = "A booking submission is in progress for this session"
	ErrCheckoutUnavailable = "The checkout could not be loaded, please start again"
)

func (app *Application) logError(r *http.Request, err error) {
	app.contextGetLogger(r).Error(err.Error())
}

func (app *Application) errorResponse(w http.ResponseWriter, r *http.Request, status int, message string) {
	app.writeError(w, r, status, api.ErrorResponse{Message: message})
}

func (app *Application) writeError(w http.ResponseWriter, r *http.Request, status int, resp api.ErrorResponse) {
	resp.RequestId = middleware.GetReqID(r.Context())
	resp.Timestamp = time.Now()

	err := app.writeJSON(w, status, resp, nil)
	if err != nil {
		app.logError(r, err)
		w.WriteHeader(http.StatusInternalServerError)
	}
}

func (app *Application) serverErrorResponse(w http.ResponseWriter, r *http.Request, err error) {
	app.logError(r, err)
	app.errorResponse(w, r, http.StatusInternalServerError, ErrInternalServer)
}

func (app *Application) notFoundResponse(w http.ResponseWriter, r *http.Request) {
	app.errorResponse(w, r, http.StatusNotFound, ErrNotFound)
}

func (app *Application) notFoundResponseWithErr(w http.ResponseWriter, r *http.Request, err error) {
	app.errorResponse(w, r, http.StatusNotFound, err.Error())
}

func (app *Application) methodNotAllowedResponse(w http.ResponseWriter, r *http.Request) {
	app.errorResponse(w, r, http.StatusMethodNotAllowed, ErrMethodNotAllowed)
}

func (app *Application) badRequestResponse(w http.ResponseWriter, r *http.Request, err error) {
	app.errorResponse(w, r, http.StatusBadRequest, err.Error())
}

func (app *Application) editConflictResponseWithErr(w http.ResponseWriter, r *http.Request, err error) {
	app.errorResponse(w, r, http.StatusConflict, err.Error())
}

func (app *Application) failedValidationResponse(w http.ResponseWriter, r *http.Request, err error) {
	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) {
		app.badRequestResponse(w, r, err)
		return
	}

	resp := api.ValidationErrorResponse{
		Message:          ErrFailedValidation,
		RequestId:        middleware.GetReqID(r.Context()),
		Timestamp:        time.Now(),
		ValidationErrors: make([]api.ValidationError, 0, len(validationErrors)),
	}

	for _, fe := range validationErrors {
		resp.ValidationErrors = append(resp.ValidationErrors, api.ValidationError{
			Field: fe.Field(),
			Issue: appvalidator.ValidationMessage(fe),
		})
	}

	err = app.writeJSON(w, http.StatusUnprocessableEntity, resp, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

// errCheckoutBusy rejects a request while another request of the same
// session holds the checkout lock.
var errCheckoutBusy = &workflow.Error{
	Kind: workflow.KindPending,
	Msg:  "another request is still working on this checkout",
}

var workflowStatus = map[workflow.ErrorKind]int{
	workflow.KindSelectionOrder: http.StatusConflict,
	workflow.KindCapacity:       http.StatusUnprocessableEntity,
	workflow.KindInvalidInput:   http.StatusUnprocessableEntity,
	workflow.KindStaleResource:  http.StatusConflict,
	workflow.KindExternal:       http.StatusBadGateway,
	workflow.KindPending:        http.StatusConflict,
}

// workflowErrorResponse writes a rejected store operation. Errors that did
// not come from the store are server errors.
func (app *Application) workflowErrorResponse(w http.ResponseWriter, r *http.Request, err error) {
	var werr *workflow.Error
	if !errors.As(err, &werr) {
		app.serverErrorResponse(w, r, err)
		return
	}

	status, ok := workflowStatus[werr.Kind]
	if !ok {
		app.serverErrorResponse(w, r, err)
		return
	}

	logger := app.contextGetLogger(r)
	if werr.Kind == workflow.KindExternal {
		logger.Error("checkout collaborator failed", "error", err)
	} else {
		logger.Debug("checkout operation rejected", "kind", werr.Kind.String(), "error", err)
	}

	kind := werr.Kind.String()

	// The cause of a failure stays in the logs.
	app.writeError(w, r, status, api.ErrorResponse{
		Kind:    &kind,
		Message: werr.Msg,
	})
}

// catalogErrorResponse writes a failed catalog lookup.
func (app *Application) catalogErrorResponse(w http.ResponseWriter, r *http.Request, err error) {
	if errors.Is(err, domain.ErrRecordNotFound) {
		app.notFoundResponseWithErr(w, r, err)
		return
	}

	app.serverErrorResponse(w, r, err)
}

package app

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-playground/validator/v10"
	"github.com/metinatakli/theatre-box-office/api"
	"github.com/metinatakli/theatre-box-office/internal/domain"
	appvalidator "github.com/metinatakli/theatre-box-office/internal/validator"
)

const (
	ErrInternalServer     = "The server encountered a problem and could not process your request"
	ErrNotFound           = "The requested resource not found"
	ErrMethodNotAllowed   = "The method is not supported for this resource"
	ErrUnauthorizedAccess = "You must be authenticated to access this resource"
	ErrForbidden          = "Your account does not have permission to access this resource"
	ErrInvalidCredentials = "Invalid authentication credentials"
	ErrFailedValidation   = "One or more fields are invalid"
	ErrRateLimitExceeded  = "Too many requests, please try again later"
	ErrSeatAlreadyTaken   = "The requested seat is already taken"
	ErrDuplicateHallName  = "A theatre hall with this name already exists"
)

func (app *Application) logError(r *http.Request, err error) {
	app.contextGetLogger(r).Error(err.Error())
}

// errorResponse writes the common {message, requestId, timestamp} body.
func (app *Application) errorResponse(w http.ResponseWriter, r *http.Request, status int, message string) {
	resp := api.ErrorResponse{
		Message:   message,
		RequestId: middleware.GetReqID(r.Context()),
		Timestamp: time.Now(),
	}

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

func (app *Application) methodNotAllowedResponse(w http.ResponseWriter, r *http.Request) {
	app.errorResponse(w, r, http.StatusMethodNotAllowed, ErrMethodNotAllowed)
}

func (app *Application) badRequestResponse(w http.ResponseWriter, r *http.Request, err error) {
	app.errorResponse(w, r, http.StatusBadRequest, err.Error())
}

func (app *Application) unauthorizedAccessResponse(w http.ResponseWriter, r *http.Request) {
	app.errorResponse(w, r, http.StatusUnauthorized, ErrUnauthorizedAccess)
}

func (app *Application) forbiddenResponse(w http.ResponseWriter, r *http.Request) {
	app.errorResponse(w, r, http.StatusForbidden, ErrForbidden)
}

func (app *Application) invalidCredentialsResponse(w http.ResponseWriter, r *http.Request) {
	app.errorResponse(w, r, http.StatusUnauthorized, ErrInvalidCredentials)
}

func (app *Application) conflictResponse(w http.ResponseWriter, r *http.Request, message string) {
	app.errorResponse(w, r, http.StatusConflict, message)
}

func (app *Application) rateLimitExceededResponse(w http.ResponseWriter, r *http.Request, retryAfter time.Duration) {
	app.contextGetLogger(r).Warn("rate limit exceeded", "retry_after", retryAfter)
	app.errorResponse(w, r, http.StatusTooManyRequests, ErrRateLimitExceeded)
}

// failedValidationResponse reports the field errors of a validator run. Any
// other error is treated as a server error.
func (app *Application) failedValidationResponse(w http.ResponseWriter, r *http.Request, err error) {
	var validationErrs validator.ValidationErrors
	if !errors.As(err, &validationErrs) {
		app.serverErrorResponse(w, r, err)
		return
	}

	fieldErrs := make([]api.ValidationError, len(validationErrs))
	for i, e := range validationErrs {
		fieldErrs[i] = api.ValidationError{
			Field: e.Field(),
			Issue: appvalidator.ValidationMessage(e),
		}
	}

	app.fieldErrorsResponse(w, r, fieldErrs)
}

func (app *Application) fieldErrorsResponse(w http.ResponseWriter, r *http.Request, fieldErrs []api.ValidationError) {
	resp := api.ValidationErrorResponse{
		Message:          ErrFailedValidation,
		RequestId:        middleware.GetReqID(r.Context()),
		Timestamp:        time.Now(),
		ValidationErrors: fieldErrs,
	}

	err := app.writeJSON(w, http.StatusUnprocessableEntity, resp, nil)
	if err != nil {
		app.logError(r, err)
		w.WriteHeader(http.StatusInternalServerError)
	}
}

// reservationErrorResponse maps the errors of booking.Service.CreateReservation
// to responses that point at the offending ticket.
func (app *Application) reservationErrorResponse(w http.ResponseWriter, r *http.Request, err error) {
	var (
		ticketErr *domain.TicketError
		seatErr   *domain.InvalidSeatError
	)

	switch {
	case errors.Is(err, domain.ErrEmptyTicketList):
		app.fieldErrorsResponse(w, r, []api.ValidationError{
			{Field: "tickets", Issue: appvalidator.ErrRequired},
		})

	case errors.As(err, &ticketErr) && errors.As(err, &seatErr):
		field := fmt.Sprintf("tickets[%d]", ticketErr.Index)

		var fieldErrs []api.ValidationError
		if seatErr.RowOutOfRange {
			fieldErrs = append(fieldErrs, api.ValidationError{Field: field + ".row", Issue: seatErr.RowIssue()})
		}
		if seatErr.SeatOutOfRange {
			fieldErrs = append(fieldErrs, api.ValidationError{Field: field + ".seat", Issue: seatErr.SeatIssue()})
		}

		app.fieldErrorsResponse(w, r, fieldErrs)

	case errors.As(err, &ticketErr) && errors.Is(err, domain.ErrRecordNotFound):
		app.fieldErrorsResponse(w, r, []api.ValidationError{
			{
				Field: fmt.Sprintf("tickets[%d].performance", ticketErr.Index),
				Issue: fmt.Sprintf("performance %d does not exist", ticketErr.PerformanceID),
			},
		})

	case errors.Is(err, domain.ErrSeatAlreadyTaken):
		message := ErrSeatAlreadyTaken
		if errors.As(err, &ticketErr) {
			message = fmt.Sprintf("Seat %d in row %d of performance %d is already taken",
				ticketErr.Seat, ticketErr.Row, ticketErr.PerformanceID)
		}

		app.conflictResponse(w, r, message)

	default:
		app.serverErrorResponse(w, r, err)
	}
}

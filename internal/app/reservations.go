package app

import (
	"net/http"

	"github.com/metinatakli/theatre-box-office/api"
	"github.com/metinatakli/theatre-box-office/internal/domain"
)

// CreateReservation books the requested seats for the session user. The
// user and creation time are never taken from the body.
func (app *Application) CreateReservation(w http.ResponseWriter, r *http.Request) {
	var input api.CreateReservationRequest

	err := app.readJSON(w, r, &input)
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	userId := app.contextGetUserId(r)

	requests := make([]domain.TicketRequest, len(input.Tickets))
	for i, t := range input.Tickets {
		requests[i] = domain.TicketRequest{
			Row:           t.Row,
			Seat:          t.Seat,
			PerformanceID: t.Performance,
		}
	}

	reservation, err := app.booking.CreateReservation(r.Context(), userId, requests)
	if err != nil {
		app.reservationErrorResponse(w, r, err)
		return
	}

	err = app.writeJSON(w, http.StatusCreated, toApiReservation(*reservation), nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

func (app *Application) ListReservations(w http.ResponseWriter, r *http.Request) {
	params, err := readPaginationParams(r.URL.Query())
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	err = app.validator.Struct(params)
	if err != nil {
		app.failedValidationResponse(w, r, err)
		return
	}

	userId := app.contextGetUserId(r)

	reservations, metadata, err := app.booking.ListReservations(r.Context(), userId, toPagination(params))
	if err != nil {
		app.serverErrorResponse(w, r, err)
		return
	}

	resp := api.UserReservationsResponse{
		Reservations: make([]api.Reservation, len(reservations)),
		Metadata:     toApiMetadata(metadata),
	}

	for i, reservation := range reservations {
		resp.Reservations[i] = toApiReservation(reservation)
	}

	err = app.writeJSON(w, http.StatusOK, resp, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

func toApiReservation(reservation domain.Reservation) api.Reservation {
	tickets := make([]api.Ticket, len(reservation.Tickets))
	for i, t := range reservation.Tickets {
		tickets[i] = api.Ticket{
			Id:          t.ID,
			Row:         t.Row,
			Seat:        t.Seat,
			Performance: t.PerformanceID,
			Reservation: reservation.ID,
		}
	}

	return api.Reservation{
		Id:        reservation.ID,
		User:      reservation.UserID,
		CreatedAt: reservation.CreatedAt,
		Tickets:   tickets,
	}
}

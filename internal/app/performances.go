package app

import (
	"errors"
	"net/http"

	"github.com/metinatakli/theatre-box-office/api"
	"github.com/metinatakli/theatre-box-office/internal/domain"
)

var errUnknownPerformanceLinks = errors.New("play and theatre hall must reference existing records")

func (app *Application) ListPerformances(w http.ResponseWriter, r *http.Request) {
	qs := r.URL.Query()

	playId, err := readInt(qs, "play")
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	date, err := readDate(qs, "date")
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	filters := domain.PerformanceFilters{PlayID: playId}
	if date != nil {
		filters.Date = &date.Time
	}

	performances, err := app.performanceRepo.GetAll(r.Context(), filters)
	if err != nil {
		app.serverErrorResponse(w, r, err)
		return
	}

	resp := make([]api.PerformanceSummary, len(performances))
	for i, p := range performances {
		resp[i] = api.PerformanceSummary{
			Id:                  p.ID,
			Play:                p.PlayID,
			PlayTitle:           p.PlayTitle,
			TheatreHall:         p.HallID,
			TheatreHallName:     p.HallName,
			TheatreHallCapacity: p.HallCapacity,
			ShowTime:            p.ShowTime,
			AvailableSeatsCount: p.AvailableSeatsCount,
		}
	}

	err = app.writeJSON(w, http.StatusOK, resp, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

func (app *Application) GetPerformance(w http.ResponseWriter, r *http.Request) {
	id, err := app.readIDParam(r)
	if err != nil {
		app.notFoundResponse(w, r)
		return
	}

	performance, err := app.performanceRepo.GetDetailById(r.Context(), id)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrRecordNotFound):
			app.notFoundResponse(w, r)
		default:
			app.serverErrorResponse(w, r, err)
		}

		return
	}

	resp := api.PerformanceDetail{
		Id:          performance.ID,
		Play:        toApiPlayDetail(performance.Play),
		TheatreHall: toApiTheatreHall(performance.Hall),
		ShowTime:    performance.ShowTime,
	}

	err = app.writeJSON(w, http.StatusOK, resp, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

func (app *Application) CreatePerformance(w http.ResponseWriter, r *http.Request) {
	var input api.PerformanceRequest

	err := app.readJSON(w, r, &input)
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	err = app.validator.Struct(input)
	if err != nil {
		app.failedValidationResponse(w, r, err)
		return
	}

	performance := domain.Performance{
		PlayID:   input.Play,
		Hall:     domain.TheatreHall{ID: input.TheatreHall},
		ShowTime: input.ShowTime,
	}

	err = app.performanceRepo.Create(r.Context(), &performance)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrUnknownReference):
			app.badRequestResponse(w, r, errUnknownPerformanceLinks)
		default:
			app.serverErrorResponse(w, r, err)
		}

		return
	}

	err = app.writeJSON(w, http.StatusCreated, toApiPerformance(performance), nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

// UpdatePerformance serves both PUT and PATCH. Tickets already sold stay
// attached to the performance.
func (app *Application) UpdatePerformance(w http.ResponseWriter, r *http.Request) {
	id, err := app.readIDParam(r)
	if err != nil {
		app.notFoundResponse(w, r)
		return
	}

	current, err := app.performanceRepo.GetById(r.Context(), id)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrRecordNotFound):
			app.notFoundResponse(w, r)
		default:
			app.serverErrorResponse(w, r, err)
		}

		return
	}

	var input api.PerformanceRequest
	if isPartialUpdate(r) {
		input = api.PerformanceRequest{
			Play:        current.PlayID,
			TheatreHall: current.Hall.ID,
			ShowTime:    current.ShowTime,
		}
	}

	err = app.readJSON(w, r, &input)
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	err = app.validator.Struct(input)
	if err != nil {
		app.failedValidationResponse(w, r, err)
		return
	}

	performance := domain.Performance{
		ID:       current.ID,
		PlayID:   input.Play,
		Hall:     domain.TheatreHall{ID: input.TheatreHall},
		ShowTime: input.ShowTime,
	}

	err = app.performanceRepo.Update(r.Context(), &performance)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrUnknownReference):
			app.badRequestResponse(w, r, errUnknownPerformanceLinks)
		case errors.Is(err, domain.ErrRecordNotFound):
			app.notFoundResponse(w, r)
		default:
			app.serverErrorResponse(w, r, err)
		}

		return
	}

	err = app.writeJSON(w, http.StatusOK, toApiPerformance(performance), nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

func (app *Application) DeletePerformance(w http.ResponseWriter, r *http.Request) {
	id, err := app.readIDParam(r)
	if err != nil {
		app.notFoundResponse(w, r)
		return
	}

	err = app.performanceRepo.Delete(r.Context(), id)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrRecordNotFound):
			app.notFoundResponse(w, r)
		default:
			app.serverErrorResponse(w, r, err)
		}

		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// GetPerformanceSeats returns the free and taken seats of a performance as
// they are at the time of the request.
func (app *Application) GetPerformanceSeats(w http.ResponseWriter, r *http.Request) {
	id, err := app.readIDParam(r)
	if err != nil {
		app.notFoundResponse(w, r)
		return
	}

	availability, err := app.booking.Availability(r.Context(), id)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrRecordNotFound):
			app.notFoundResponse(w, r)
		default:
			app.serverErrorResponse(w, r, err)
		}

		return
	}

	hall := availability.Performance.Hall

	resp := api.SeatAvailabilityResponse{
		PerformanceId:       availability.Performance.ID,
		TheatreHall:         hall.ID,
		Rows:                hall.Rows,
		SeatsInRow:          hall.SeatsInRow,
		AvailableSeatsCount: availability.AvailableSeatCount(),
		FreeSeats:           toApiSeats(availability.Free),
		TakenSeats:          toApiSeats(availability.Taken.Sorted()),
	}

	err = app.writeJSON(w, http.StatusOK, resp, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

func toApiPerformance(performance domain.Performance) api.Performance {
	return api.Performance{
		Id:          performance.ID,
		Play:        performance.PlayID,
		TheatreHall: performance.Hall.ID,
		ShowTime:    performance.ShowTime,
	}
}

func toApiSeats(seats []domain.Seat) []api.Seat {
	resp := make([]api.Seat, len(seats))
	for i, seat := range seats {
		resp[i] = api.Seat{Row: seat.Row, Seat: seat.Number}
	}

	return resp
}

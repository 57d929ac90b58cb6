package app

import (
	"errors"
	"net/http"

	"github.com/metinatakli/theatre-box-office/api"
	"github.com/metinatakli/theatre-box-office/internal/domain"
)

func (app *Application) ListTheatreHalls(w http.ResponseWriter, r *http.Request) {
	halls, err := app.hallRepo.GetAll(r.Context())
	if err != nil {
		app.serverErrorResponse(w, r, err)
		return
	}

	resp := make([]api.TheatreHall, len(halls))
	for i, hall := range halls {
		resp[i] = toApiTheatreHall(hall)
	}

	err = app.writeJSON(w, http.StatusOK, resp, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

func (app *Application) GetTheatreHall(w http.ResponseWriter, r *http.Request) {
	id, err := app.readIDParam(r)
	if err != nil {
		app.notFoundResponse(w, r)
		return
	}

	hall, err := app.hallRepo.GetById(r.Context(), id)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrRecordNotFound):
			app.notFoundResponse(w, r)
		default:
			app.serverErrorResponse(w, r, err)
		}

		return
	}

	err = app.writeJSON(w, http.StatusOK, toApiTheatreHall(*hall), nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

func (app *Application) CreateTheatreHall(w http.ResponseWriter, r *http.Request) {
	hall, ok := app.readTheatreHall(w, r, api.TheatreHallRequest{})
	if !ok {
		return
	}

	err := app.hallRepo.Create(r.Context(), hall)
	if err != nil {
		app.theatreHallWriteError(w, r, err)
		return
	}

	err = app.writeJSON(w, http.StatusCreated, toApiTheatreHall(*hall), nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

func (app *Application) UpdateTheatreHall(w http.ResponseWriter, r *http.Request) {
	id, err := app.readIDParam(r)
	if err != nil {
		app.notFoundResponse(w, r)
		return
	}

	var input api.TheatreHallRequest
	if isPartialUpdate(r) {
		current, err := app.hallRepo.GetById(r.Context(), id)
		if err != nil {
			app.theatreHallWriteError(w, r, err)
			return
		}

		input = api.TheatreHallRequest{
			Name:       current.Name,
			Rows:       current.Rows,
			SeatsInRow: current.SeatsInRow,
		}
	}

	hall, ok := app.readTheatreHall(w, r, input)
	if !ok {
		return
	}

	hall.ID = id

	err = app.hallRepo.Update(r.Context(), hall)
	if err != nil {
		app.theatreHallWriteError(w, r, err)
		return
	}

	err = app.writeJSON(w, http.StatusOK, toApiTheatreHall(*hall), nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

func (app *Application) DeleteTheatreHall(w http.ResponseWriter, r *http.Request) {
	id, err := app.readIDParam(r)
	if err != nil {
		app.notFoundResponse(w, r)
		return
	}

	err = app.hallRepo.Delete(r.Context(), id)
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

// readTheatreHall decodes a hall body over input and validates the result. It
// writes the error response itself and reports false when the body is unusable.
func (app *Application) readTheatreHall(
	w http.ResponseWriter,
	r *http.Request,
	input api.TheatreHallRequest) (*domain.TheatreHall, bool) {

	err := app.readJSON(w, r, &input)
	if err != nil {
		app.badRequestResponse(w, r, err)
		return nil, false
	}

	err = app.validator.Struct(input)
	if err != nil {
		app.failedValidationResponse(w, r, err)
		return nil, false
	}

	return &domain.TheatreHall{
		Name:       input.Name,
		Rows:       input.Rows,
		SeatsInRow: input.SeatsInRow,
	}, true
}

func (app *Application) theatreHallWriteError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, domain.ErrDuplicateHallName):
		app.conflictResponse(w, r, ErrDuplicateHallName)
	case errors.Is(err, domain.ErrRecordNotFound):
		app.notFoundResponse(w, r)
	default:
		app.serverErrorResponse(w, r, err)
	}
}

func toApiTheatreHall(hall domain.TheatreHall) api.TheatreHall {
	return api.TheatreHall{
		Id:         hall.ID,
		Name:       hall.Name,
		Rows:       hall.Rows,
		SeatsInRow: hall.SeatsInRow,
		Capacity:   hall.Capacity(),
	}
}

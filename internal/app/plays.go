package app

import (
	"errors"
	"net/http"

	"github.com/metinatakli/theatre-box-office/api"
	"github.com/metinatakli/theatre-box-office/internal/domain"
)

var errUnknownPlayLinks = errors.New("actors and genres must reference existing records")

func (app *Application) ListPlays(w http.ResponseWriter, r *http.Request) {
	qs := r.URL.Query()

	actorIds, err := readIntList(qs, "actors")
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	genreIds, err := readIntList(qs, "genres")
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	filters := domain.PlayFilters{
		Title:    qs.Get("title"),
		ActorIDs: actorIds,
		GenreIDs: genreIds,
	}

	plays, err := app.playRepo.GetAll(r.Context(), filters)
	if err != nil {
		app.serverErrorResponse(w, r, err)
		return
	}

	err = app.writeJSON(w, http.StatusOK, toApiPlaySummaries(plays), nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

func (app *Application) GetPlay(w http.ResponseWriter, r *http.Request) {
	id, err := app.readIDParam(r)
	if err != nil {
		app.notFoundResponse(w, r)
		return
	}

	play, err := app.playRepo.GetDetailById(r.Context(), id)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrRecordNotFound):
			app.notFoundResponse(w, r)
		default:
			app.serverErrorResponse(w, r, err)
		}

		return
	}

	err = app.writeJSON(w, http.StatusOK, toApiPlayDetail(*play), nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

func (app *Application) CreatePlay(w http.ResponseWriter, r *http.Request) {
	var input api.PlayRequest

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

	play := domain.Play{
		Title:       input.Title,
		Description: input.Description,
		ActorIDs:    input.Actors,
		GenreIDs:    input.Genres,
	}

	err = app.playRepo.Create(r.Context(), &play)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrUnknownReference):
			app.badRequestResponse(w, r, errUnknownPlayLinks)
		default:
			app.serverErrorResponse(w, r, err)
		}

		return
	}

	err = app.writeJSON(w, http.StatusCreated, toApiPlaySummary(play), nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

// UpdatePlay serves both PUT and PATCH. The actor and genre lists given in
// the body replace the current links.
func (app *Application) UpdatePlay(w http.ResponseWriter, r *http.Request) {
	id, err := app.readIDParam(r)
	if err != nil {
		app.notFoundResponse(w, r)
		return
	}

	current, err := app.playRepo.GetDetailById(r.Context(), id)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrRecordNotFound):
			app.notFoundResponse(w, r)
		default:
			app.serverErrorResponse(w, r, err)
		}

		return
	}

	var input api.PlayRequest
	if isPartialUpdate(r) {
		input = api.PlayRequest{
			Title:       current.Title,
			Description: current.Description,
			Actors:      current.ActorIDs(),
			Genres:      current.GenreIDs(),
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

	play := domain.Play{
		ID:          current.ID,
		Title:       input.Title,
		Description: input.Description,
		Image:       current.Image,
		ActorIDs:    input.Actors,
		GenreIDs:    input.Genres,
	}

	err = app.playRepo.Update(r.Context(), &play)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrUnknownReference):
			app.badRequestResponse(w, r, errUnknownPlayLinks)
		case errors.Is(err, domain.ErrRecordNotFound):
			app.notFoundResponse(w, r)
		default:
			app.serverErrorResponse(w, r, err)
		}

		return
	}

	err = app.writeJSON(w, http.StatusOK, toApiPlaySummary(play), nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

func (app *Application) DeletePlay(w http.ResponseWriter, r *http.Request) {
	id, err := app.readIDParam(r)
	if err != nil {
		app.notFoundResponse(w, r)
		return
	}

	err = app.playRepo.Delete(r.Context(), id)
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

func toApiPlaySummaries(plays []domain.Play) []api.PlaySummary {
	resp := make([]api.PlaySummary, len(plays))
	for i, play := range plays {
		resp[i] = toApiPlaySummary(play)
	}

	return resp
}

func toApiPlaySummary(play domain.Play) api.PlaySummary {
	return api.PlaySummary{
		Id:     play.ID,
		Title:  play.Title,
		Image:  play.Image,
		Actors: nonNil(play.ActorIDs),
		Genres: nonNil(play.GenreIDs),
	}
}

func toApiPlayDetail(play domain.PlayDetail) api.PlayDetail {
	genres := make([]api.Genre, len(play.Genres))
	for i, genre := range play.Genres {
		genres[i] = toApiGenre(genre)
	}

	return api.PlayDetail{
		Id:          play.ID,
		Title:       play.Title,
		Description: play.Description,
		Image:       play.Image,
		Actors:      toApiActors(play.Actors),
		Genres:      genres,
	}
}

// nonNil keeps empty id lists encoded as [] rather than null.
func nonNil(ids []int) []int {
	if ids == nil {
		return []int{}
	}

	return ids
}

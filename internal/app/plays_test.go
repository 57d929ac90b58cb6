package app

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/metinatakli/theatre-box-office/api"
	"github.com/metinatakli/theatre-box-office/internal/domain"
	"github.com/metinatakli/theatre-box-office/internal/mocks"
)

func TestListPlays(t *testing.T) {
	tests := []struct {
		name           string
		query          string
		wantFilters    domain.PlayFilters
		wantStatus     int
		wantErrMessage string
	}{
		{
			name:       "without filters",
			wantStatus: http.StatusOK,
		},
		{
			name:  "with title, actors and genres",
			query: "?title=ham&actors=1,%202&genres=3",
			wantFilters: domain.PlayFilters{
				Title:    "ham",
				ActorIDs: []int{1, 2},
				GenreIDs: []int{3},
			},
			wantStatus: http.StatusOK,
		},
		{
			name:           "invalid actor list",
			query:          "?actors=1,two",
			wantStatus:     http.StatusBadRequest,
			wantErrMessage: "actors must be a comma separated list of integers",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var gotFilters domain.PlayFilters

			app := newTestApplication(func(a *Application) {
				a.playRepo = &mocks.MockPlayRepo{
					GetAllFunc: func(ctx context.Context, filters domain.PlayFilters) ([]domain.Play, error) {
						gotFilters = filters
						return []domain.Play{{ID: 1, Title: "Hamlet"}}, nil
					},
				}
			})

			w, r := executeRequest(t, http.MethodGet, "/plays"+tt.query, nil)

			app.ListPlays(w, r)

			if got := w.Code; got != tt.wantStatus {
				t.Fatalf("ListPlays() status = %v, want %v", got, tt.wantStatus)
			}

			if tt.wantStatus == http.StatusOK {
				if diff := cmp.Diff(tt.wantFilters, gotFilters); diff != "" {
					t.Errorf("Filters mismatch (-want +got):\n%s", diff)
				}

				var response []api.PlaySummary
				if err := json.NewDecoder(w.Body).Decode(&response); err != nil {
					t.Fatalf("Failed to decode response: %v", err)
				}

				want := []api.PlaySummary{{Id: 1, Title: "Hamlet", Actors: []int{}, Genres: []int{}}}
				if diff := cmp.Diff(want, response); diff != "" {
					t.Errorf("Response mismatch (-want +got):\n%s", diff)
				}
			}

			checkErrorResponse(t, w, struct {
				wantStatus     int
				wantErrMessage string
			}{
				wantStatus:     tt.wantStatus,
				wantErrMessage: tt.wantErrMessage,
			})
		})
	}
}

func TestCreatePlay(t *testing.T) {
	tests := []struct {
		name           string
		body           any
		createFunc     func(context.Context, *domain.Play) error
		wantStatus     int
		wantErrMessage string
	}{
		{
			name: "successful creation",
			body: api.PlayRequest{Title: "Hamlet", Description: "Revenge.", Actors: []int{1}, Genres: []int{2}},
			createFunc: func(ctx context.Context, play *domain.Play) error {
				play.ID = 1
				return nil
			},
			wantStatus: http.StatusCreated,
		},
		{
			name: "unknown actor",
			body: api.PlayRequest{Title: "Hamlet", Description: "Revenge.", Actors: []int{99}},
			createFunc: func(ctx context.Context, play *domain.Play) error {
				return domain.ErrUnknownReference
			},
			wantStatus:     http.StatusBadRequest,
			wantErrMessage: errUnknownPlayLinks.Error(),
		},
		{
			name:           "non positive genre id",
			body:           api.PlayRequest{Title: "Hamlet", Description: "Revenge.", Genres: []int{0}},
			wantStatus:     http.StatusUnprocessableEntity,
			wantErrMessage: "must be greater than 0",
		},
		{
			name: "database error",
			body: api.PlayRequest{Title: "Hamlet", Description: "Revenge."},
			createFunc: func(ctx context.Context, play *domain.Play) error {
				return fmt.Errorf("database error")
			},
			wantStatus:     http.StatusInternalServerError,
			wantErrMessage: ErrInternalServer,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			app := newTestApplication(func(a *Application) {
				a.playRepo = &mocks.MockPlayRepo{CreateFunc: tt.createFunc}
			})

			w, r := executeRequest(t, http.MethodPost, "/plays", tt.body)
			r = setupStaffSession(t, app, r, 1)

			handler := app.sessionManager.LoadAndSave(app.requireAdmin(http.HandlerFunc(app.CreatePlay)))
			handler.ServeHTTP(w, r)

			if got := w.Code; got != tt.wantStatus {
				t.Errorf("CreatePlay() status = %v, want %v", got, tt.wantStatus)
			}

			checkErrorResponse(t, w, struct {
				wantStatus     int
				wantErrMessage string
			}{
				wantStatus:     tt.wantStatus,
				wantErrMessage: tt.wantErrMessage,
			})
		})
	}
}

func TestGetPlay(t *testing.T) {
	app := newTestApplication(func(a *Application) {
		a.playRepo = &mocks.MockPlayRepo{
			GetDetailByIdFunc: func(ctx context.Context, id int) (*domain.PlayDetail, error) {
				if id != 1 {
					return nil, domain.ErrRecordNotFound
				}

				return &domain.PlayDetail{
					ID:          1,
					Title:       "Hamlet",
					Description: "Revenge.",
					Actors:      []domain.Actor{{ID: 1, FirstName: "Ian", LastName: "McKellen"}},
					Genres:      []domain.Genre{{ID: 2, Name: "Tragedy"}},
				}, nil
			},
		}
	})

	w, r := executeRequest(t, http.MethodGet, "/plays/1", nil)
	app.GetPlay(w, withURLParam(r, "id", "1"))

	if w.Code != http.StatusOK {
		t.Fatalf("GetPlay() status = %v, want %v", w.Code, http.StatusOK)
	}

	var response api.PlayDetail
	if err := json.NewDecoder(w.Body).Decode(&response); err != nil {
		t.Fatalf("Failed to decode response: %v", err)
	}

	want := api.PlayDetail{
		Id:          1,
		Title:       "Hamlet",
		Description: "Revenge.",
		Actors:      []api.Actor{{Id: 1, FirstName: "Ian", LastName: "McKellen", FullName: "Ian McKellen"}},
		Genres:      []api.Genre{{Id: 2, Name: "Tragedy"}},
	}
	if diff := cmp.Diff(want, response); diff != "" {
		t.Errorf("Response mismatch (-want +got):\n%s", diff)
	}

	w, r = executeRequest(t, http.MethodGet, "/plays/7", nil)
	app.GetPlay(w, withURLParam(r, "id", "7"))

	if w.Code != http.StatusNotFound {
		t.Errorf("GetPlay() status = %v, want %v", w.Code, http.StatusNotFound)
	}
}

func TestUpdatePlay(t *testing.T) {
	poster := "uploads/images/hamlet-poster.png"

	current := func() *domain.PlayDetail {
		return &domain.PlayDetail{
			ID:          1,
			Title:       "Hamlet",
			Description: "Revenge.",
			Image:       &poster,
			Actors:      []domain.Actor{{ID: 1, FirstName: "Ian", LastName: "McKellen"}},
			Genres:      []domain.Genre{{ID: 2, Name: "Tragedy"}},
		}
	}

	tests := []struct {
		name           string
		method         string
		id             string
		body           any
		updateErr      error
		wantStatus     int
		wantErrMessage string
		wantSaved      *domain.Play
	}{
		{
			name:       "put replaces every field",
			method:     http.MethodPut,
			id:         "1",
			body:       api.PlayRequest{Title: "Macbeth", Description: "Ambition.", Actors: []int{3}, Genres: []int{}},
			wantStatus: http.StatusOK,
			wantSaved: &domain.Play{
				ID: 1, Title: "Macbeth", Description: "Ambition.", Image: &poster,
				ActorIDs: []int{3}, GenreIDs: []int{},
			},
		},
		{
			name:       "patch keeps the fields it does not name",
			method:     http.MethodPatch,
			id:         "1",
			body:       `{"title": "Hamlet, Prince of Denmark"}`,
			wantStatus: http.StatusOK,
			wantSaved: &domain.Play{
				ID: 1, Title: "Hamlet, Prince of Denmark", Description: "Revenge.", Image: &poster,
				ActorIDs: []int{1}, GenreIDs: []int{2},
			},
		},
		{
			name:       "patch replaces the actor links",
			method:     http.MethodPatch,
			id:         "1",
			body:       `{"actors": [4, 5]}`,
			wantStatus: http.StatusOK,
			wantSaved: &domain.Play{
				ID: 1, Title: "Hamlet", Description: "Revenge.", Image: &poster,
				ActorIDs: []int{4, 5}, GenreIDs: []int{2},
			},
		},
		{
			name:           "put without description",
			method:         http.MethodPut,
			id:             "1",
			body:           `{"title": "Macbeth"}`,
			wantStatus:     http.StatusUnprocessableEntity,
			wantErrMessage: "is required",
		},
		{
			name:           "patch with blank title",
			method:         http.MethodPatch,
			id:             "1",
			body:           `{"title": "   "}`,
			wantStatus:     http.StatusUnprocessableEntity,
			wantErrMessage: "must not be blank",
		},
		{
			name:           "unknown genre",
			method:         http.MethodPatch,
			id:             "1",
			body:           `{"genres": [99]}`,
			updateErr:      domain.ErrUnknownReference,
			wantStatus:     http.StatusBadRequest,
			wantErrMessage: errUnknownPlayLinks.Error(),
		},
		{
			name:           "unknown play",
			method:         http.MethodPut,
			id:             "7",
			body:           api.PlayRequest{Title: "Macbeth", Description: "Ambition."},
			wantStatus:     http.StatusNotFound,
			wantErrMessage: ErrNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var saved *domain.Play

			app := newTestApplication(func(a *Application) {
				a.playRepo = &mocks.MockPlayRepo{
					GetDetailByIdFunc: func(ctx context.Context, id int) (*domain.PlayDetail, error) {
						if id != 1 {
							return nil, domain.ErrRecordNotFound
						}
						return current(), nil
					},
					UpdateFunc: func(ctx context.Context, play *domain.Play) error {
						saved = play
						return tt.updateErr
					},
				}
			})

			w, r := executeRequest(t, tt.method, "/plays/"+tt.id, tt.body)
			app.UpdatePlay(w, withURLParam(r, "id", tt.id))

			if got := w.Code; got != tt.wantStatus {
				t.Fatalf("UpdatePlay() status = %v, want %v", got, tt.wantStatus)
			}

			if tt.wantSaved != nil {
				if diff := cmp.Diff(tt.wantSaved, saved); diff != "" {
					t.Errorf("Saved play mismatch (-want +got):\n%s", diff)
				}
			}

			checkErrorResponse(t, w, struct {
				wantStatus     int
				wantErrMessage string
			}{
				wantStatus:     tt.wantStatus,
				wantErrMessage: tt.wantErrMessage,
			})
		})
	}
}

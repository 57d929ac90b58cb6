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
	"github.com/metinatakli/theatre-box-office/internal/validator"
)

func TestCreateTheatreHall(t *testing.T) {
	tests := []struct {
		name           string
		staff          bool
		body           any
		createFunc     func(context.Context, *domain.TheatreHall) error
		wantStatus     int
		wantErrMessage string
		wantResponse   *api.TheatreHall
	}{
		{
			name:  "successful creation",
			staff: true,
			body:  api.TheatreHallRequest{Name: "Main Stage", Rows: 5, SeatsInRow: 10},
			createFunc: func(ctx context.Context, hall *domain.TheatreHall) error {
				hall.ID = 1
				return nil
			},
			wantStatus: http.StatusCreated,
			wantResponse: &api.TheatreHall{
				Id:         1,
				Name:       "Main Stage",
				Rows:       5,
				SeatsInRow: 10,
				Capacity:   50,
			},
		},
		{
			name:  "duplicate name",
			staff: true,
			body:  api.TheatreHallRequest{Name: "Main Stage", Rows: 5, SeatsInRow: 10},
			createFunc: func(ctx context.Context, hall *domain.TheatreHall) error {
				return domain.ErrDuplicateHallName
			},
			wantStatus:     http.StatusConflict,
			wantErrMessage: ErrDuplicateHallName,
		},
		{
			name:           "zero rows",
			staff:          true,
			body:           api.TheatreHallRequest{Name: "Studio", Rows: 0, SeatsInRow: 10},
			wantStatus:     http.StatusUnprocessableEntity,
			wantErrMessage: validator.ErrRequired,
		},
		{
			name:           "blank name",
			staff:          true,
			body:           api.TheatreHallRequest{Name: "   ", Rows: 5, SeatsInRow: 10},
			wantStatus:     http.StatusUnprocessableEntity,
			wantErrMessage: validator.ErrNotBlank,
		},
		{
			name:           "non staff user",
			staff:          false,
			body:           api.TheatreHallRequest{Name: "Main Stage", Rows: 5, SeatsInRow: 10},
			wantStatus:     http.StatusForbidden,
			wantErrMessage: ErrForbidden,
		},
		{
			name:  "database error",
			staff: true,
			body:  api.TheatreHallRequest{Name: "Main Stage", Rows: 5, SeatsInRow: 10},
			createFunc: func(ctx context.Context, hall *domain.TheatreHall) error {
				return fmt.Errorf("database error")
			},
			wantStatus:     http.StatusInternalServerError,
			wantErrMessage: ErrInternalServer,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			app := newTestApplication(func(a *Application) {
				a.hallRepo = &mocks.MockTheatreHallRepo{CreateFunc: tt.createFunc}
			})

			w, r := executeRequest(t, http.MethodPost, "/theatre-halls", tt.body)
			if tt.staff {
				r = setupStaffSession(t, app, r, 1)
			} else {
				r = setupTestSession(t, app, r, 2)
			}

			handler := app.sessionManager.LoadAndSave(app.requireAdmin(http.HandlerFunc(app.CreateTheatreHall)))
			handler.ServeHTTP(w, r)

			if got := w.Code; got != tt.wantStatus {
				t.Errorf("CreateTheatreHall() status = %v, want %v", got, tt.wantStatus)
			}

			if tt.wantResponse != nil {
				var response api.TheatreHall
				if err := json.NewDecoder(w.Body).Decode(&response); err != nil {
					t.Fatalf("Failed to decode response: %v", err)
				}

				if diff := cmp.Diff(tt.wantResponse, &response); diff != "" {
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

func TestUpdateTheatreHall(t *testing.T) {
	tests := []struct {
		name           string
		idParam        string
		updateFunc     func(context.Context, *domain.TheatreHall) error
		wantStatus     int
		wantErrMessage string
	}{
		{
			name:    "successful update",
			idParam: "4",
			updateFunc: func(ctx context.Context, hall *domain.TheatreHall) error {
				if hall.ID != 4 {
					return fmt.Errorf("unexpected hall id %d", hall.ID)
				}
				return nil
			},
			wantStatus: http.StatusOK,
		},
		{
			name:    "unknown hall",
			idParam: "99",
			updateFunc: func(ctx context.Context, hall *domain.TheatreHall) error {
				return domain.ErrRecordNotFound
			},
			wantStatus:     http.StatusNotFound,
			wantErrMessage: ErrNotFound,
		},
		{
			name:           "invalid id",
			idParam:        "-1",
			wantStatus:     http.StatusNotFound,
			wantErrMessage: ErrNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			app := newTestApplication(func(a *Application) {
				a.hallRepo = &mocks.MockTheatreHallRepo{UpdateFunc: tt.updateFunc}
			})

			body := api.TheatreHallRequest{Name: "Studio", Rows: 2, SeatsInRow: 3}
			w, r := executeRequest(t, http.MethodPut, "/theatre-halls/"+tt.idParam, body)
			r = withURLParam(r, "id", tt.idParam)

			app.UpdateTheatreHall(w, r)

			if got := w.Code; got != tt.wantStatus {
				t.Errorf("UpdateTheatreHall() status = %v, want %v", got, tt.wantStatus)
			}

			if tt.wantStatus == http.StatusOK {
				var response api.TheatreHall
				if err := json.NewDecoder(w.Body).Decode(&response); err != nil {
					t.Fatalf("Failed to decode response: %v", err)
				}

				if response.Capacity != 6 {
					t.Errorf("Expected capacity=6, got %v", response.Capacity)
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

func TestGetTheatreHall(t *testing.T) {
	app := newTestApplication(func(a *Application) {
		a.hallRepo = &mocks.MockTheatreHallRepo{
			GetByIdFunc: func(ctx context.Context, id int) (*domain.TheatreHall, error) {
				if id != 1 {
					return nil, domain.ErrRecordNotFound
				}
				return &domain.TheatreHall{ID: 1, Name: "Main Stage", Rows: 5, SeatsInRow: 10}, nil
			},
		}
	})

	w, r := executeRequest(t, http.MethodGet, "/theatre-halls/1", nil)
	app.GetTheatreHall(w, withURLParam(r, "id", "1"))

	if w.Code != http.StatusOK {
		t.Fatalf("GetTheatreHall() status = %v, want %v", w.Code, http.StatusOK)
	}

	w, r = executeRequest(t, http.MethodGet, "/theatre-halls/2", nil)
	app.GetTheatreHall(w, withURLParam(r, "id", "2"))

	if w.Code != http.StatusNotFound {
		t.Errorf("GetTheatreHall() status = %v, want %v", w.Code, http.StatusNotFound)
	}
}

func TestPatchTheatreHall(t *testing.T) {
	tests := []struct {
		name           string
		idParam        string
		body           string
		wantStatus     int
		wantErrMessage string
		wantSaved      *domain.TheatreHall
	}{
		{
			name:       "shrinks rows only",
			idParam:    "1",
			body:       `{"rows": 4}`,
			wantStatus: http.StatusOK,
			wantSaved:  &domain.TheatreHall{ID: 1, Name: "Main Stage", Rows: 4, SeatsInRow: 10},
		},
		{
			name:       "renames",
			idParam:    "1",
			body:       `{"name": "Olivier"}`,
			wantStatus: http.StatusOK,
			wantSaved:  &domain.TheatreHall{ID: 1, Name: "Olivier", Rows: 5, SeatsInRow: 10},
		},
		{
			name:           "zero seats in row",
			idParam:        "1",
			body:           `{"seatsInRow": 0}`,
			wantStatus:     http.StatusUnprocessableEntity,
			wantErrMessage: "is required",
		},
		{
			name:           "unknown hall",
			idParam:        "2",
			body:           `{"rows": 4}`,
			wantStatus:     http.StatusNotFound,
			wantErrMessage: ErrNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var saved *domain.TheatreHall

			app := newTestApplication(func(a *Application) {
				a.hallRepo = &mocks.MockTheatreHallRepo{
					GetByIdFunc: func(ctx context.Context, id int) (*domain.TheatreHall, error) {
						if id != 1 {
							return nil, domain.ErrRecordNotFound
						}
						return &domain.TheatreHall{ID: 1, Name: "Main Stage", Rows: 5, SeatsInRow: 10}, nil
					},
					UpdateFunc: func(ctx context.Context, hall *domain.TheatreHall) error {
						saved = hall
						return nil
					},
				}
			})

			w, r := executeRequest(t, http.MethodPatch, "/theatre-halls/"+tt.idParam, tt.body)
			app.UpdateTheatreHall(w, withURLParam(r, "id", tt.idParam))

			if got := w.Code; got != tt.wantStatus {
				t.Fatalf("UpdateTheatreHall() status = %v, want %v", got, tt.wantStatus)
			}

			if tt.wantSaved != nil {
				if diff := cmp.Diff(tt.wantSaved, saved); diff != "" {
					t.Errorf("Saved hall mismatch (-want +got):\n%s", diff)
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

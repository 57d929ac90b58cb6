// Package api holds the JSON request and response bodies of the HTTP API.
package api

import (
	"time"

	openapi_types "github.com/oapi-codegen/runtime/types"
)

type ErrorResponse struct {
	Message   string    `json:"message"`
	RequestId string    `json:"requestId"`
	Timestamp time.Time `json:"timestamp"`
}

type ValidationError struct {
	Field string `json:"field"`
	Issue string `json:"issue"`
}

type ValidationErrorResponse struct {
	Message          string            `json:"message"`
	RequestId        string            `json:"requestId"`
	Timestamp        time.Time         `json:"timestamp"`
	ValidationErrors []ValidationError `json:"validationErrors"`
}

type SystemInfo struct {
	Version     string `json:"version"`
	Environment string `json:"environment"`
}

type HealthcheckResponse struct {
	Status     string     `json:"status"`
	SystemInfo SystemInfo `json:"systemInfo"`
}

type Metadata struct {
	CurrentPage  int `json:"currentPage"`
	FirstPage    int `json:"firstPage"`
	LastPage     int `json:"lastPage"`
	PageSize     int `json:"pageSize"`
	TotalRecords int `json:"totalRecords"`
}

type PaginationParams struct {
	Page     *int `json:"page,omitempty" validate:"omitempty,min=1"`
	PageSize *int `json:"pageSize,omitempty" validate:"omitempty,min=1,max=100"`
}

type RegisterRequest struct {
	Email    string `json:"email" validate:"required,email,max=255"`
	Password string `json:"password" validate:"required,password"`
}

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type UserResponse struct {
	Id        int                 `json:"id"`
	Email     openapi_types.Email `json:"email"`
	IsStaff   bool                `json:"isStaff"`
	CreatedAt time.Time           `json:"createdAt"`
}

type AlreadyLoggedInResponse struct {
	Message string `json:"message"`
}

type Genre struct {
	Id   int    `json:"id"`
	Name string `json:"name"`
}

type GenreDetail struct {
	Id    int           `json:"id"`
	Name  string        `json:"name"`
	Plays []PlaySummary `json:"plays"`
}

type GenreRequest struct {
	Name string `json:"name" validate:"required,notblank,max=255"`
}

type Actor struct {
	Id        int     `json:"id"`
	FirstName string  `json:"firstName"`
	LastName  string  `json:"lastName"`
	FullName  string  `json:"fullName"`
	Image     *string `json:"image"`
}

type ActorDetail struct {
	Id        int           `json:"id"`
	FirstName string        `json:"firstName"`
	LastName  string        `json:"lastName"`
	FullName  string        `json:"fullName"`
	Image     *string       `json:"image"`
	Plays     []PlaySummary `json:"plays"`
}

type ActorRequest struct {
	FirstName string `json:"firstName" validate:"required,notblank,max=255"`
	LastName  string `json:"lastName" validate:"required,notblank,max=255"`
}

type PlaySummary struct {
	Id     int     `json:"id"`
	Title  string  `json:"title"`
	Image  *string `json:"image"`
	Actors []int   `json:"actors"`
	Genres []int   `json:"genres"`
}

type PlayDetail struct {
	Id          int     `json:"id"`
	Title       string  `json:"title"`
	Description string  `json:"description"`
	Image       *string `json:"image"`
	Actors      []Actor `json:"actors"`
	Genres      []Genre `json:"genres"`
}

type PlayRequest struct {
	Title       string `json:"title" validate:"required,notblank,max=255"`
	Description string `json:"description" validate:"required,notblank"`
	Actors      []int  `json:"actors" validate:"dive,gt=0"`
	Genres      []int  `json:"genres" validate:"dive,gt=0"`
}

type ImageResponse struct {
	Id    int    `json:"id"`
	Image string `json:"image"`
}

type TheatreHall struct {
	Id         int    `json:"id"`
	Name       string `json:"name"`
	Rows       int    `json:"rows"`
	SeatsInRow int    `json:"seatsInRow"`
	Capacity   int    `json:"capacity"`
}

type TheatreHallRequest struct {
	Name       string `json:"name" validate:"required,notblank,max=255"`
	Rows       int    `json:"rows" validate:"required,gt=0,max=1000"`
	SeatsInRow int    `json:"seatsInRow" validate:"required,gt=0,max=1000"`
}

type Performance struct {
	Id          int       `json:"id"`
	Play        int       `json:"play"`
	TheatreHall int       `json:"theatreHall"`
	ShowTime    time.Time `json:"showTime"`
}

type PerformanceSummary struct {
	Id                  int       `json:"id"`
	Play                int       `json:"play"`
	PlayTitle           string    `json:"playTitle"`
	TheatreHall         int       `json:"theatreHall"`
	TheatreHallName     string    `json:"theatreHallName"`
	TheatreHallCapacity int       `json:"theatreHallCapacity"`
	ShowTime            time.Time `json:"showTime"`
	AvailableSeatsCount int       `json:"availableSeatsCount"`
}

type PerformanceDetail struct {
	Id          int         `json:"id"`
	Play        PlayDetail  `json:"play"`
	TheatreHall TheatreHall `json:"theatreHall"`
	ShowTime    time.Time   `json:"showTime"`
}

type PerformanceRequest struct {
	Play        int       `json:"play" validate:"required,gt=0"`
	TheatreHall int       `json:"theatreHall" validate:"required,gt=0"`
	ShowTime    time.Time `json:"showTime" validate:"required"`
}

type Seat struct {
	Row  int `json:"row"`
	Seat int `json:"seat"`
}

type SeatAvailabilityResponse struct {
	PerformanceId       int    `json:"performanceId"`
	TheatreHall         int    `json:"theatreHall"`
	Rows                int    `json:"rows"`
	SeatsInRow          int    `json:"seatsInRow"`
	AvailableSeatsCount int    `json:"availableSeatsCount"`
	FreeSeats           []Seat `json:"freeSeats"`
	TakenSeats          []Seat `json:"takenSeats"`
}

type TicketRequest struct {
	Row         int `json:"row"`
	Seat        int `json:"seat"`
	Performance int `json:"performance"`
}

type CreateReservationRequest struct {
	Tickets []TicketRequest `json:"tickets"`
}

type Ticket struct {
	Id          int `json:"id"`
	Row         int `json:"row"`
	Seat        int `json:"seat"`
	Performance int `json:"performance"`
	Reservation int `json:"reservation"`
}

type Reservation struct {
	Id        int       `json:"id"`
	User      int       `json:"user"`
	CreatedAt time.Time `json:"createdAt"`
	Tickets   []Ticket  `json:"tickets"`
}

type UserReservationsResponse struct {
	Reservations []Reservation `json:"reservations"`
	Metadata     Metadata      `json:"metadata"`
}

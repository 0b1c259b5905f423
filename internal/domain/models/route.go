package models

import "time"

// Route is a scheduled departure between two cities with finite seat
// capacity. NumberAvailableSeats must stay within [0, TotalNumberSeats];
// the booking service is the only writer of that counter at runtime.
type Route struct {
	IDRoute              string        `json:"idRoute"`
	TransportType        TransportType `json:"transportType"`
	DepartureCity        City          `json:"departureCity"`
	DestinationCity      City          `json:"destinationCity"`
	DepartureTime        time.Time     `json:"departureTime"`
	ArrivalTime          time.Time     `json:"arrivalTime"`
	TotalNumberSeats     int           `json:"totalNumberSeats"`
	NumberAvailableSeats int           `json:"numberAvailableSeats"`
}

// RoutePage is one page of routes sorted by departure time.
type RoutePage struct {
	Content       []Route `json:"content"`
	Page          int     `json:"page"`
	Size          int     `json:"size"`
	TotalElements int     `json:"totalElements"`
	TotalPages    int     `json:"totalPages"`
}

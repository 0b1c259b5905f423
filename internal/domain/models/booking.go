package models

import "time"

// BookingTicket links one user to one route and consumes one seat for as
// long as it exists.
type BookingTicket struct {
	IDBooking   string    `json:"idBooking"`
	Route       Route     `json:"route"`
	User        User      `json:"user"`
	BookingDate time.Time `json:"bookingDate"`
}

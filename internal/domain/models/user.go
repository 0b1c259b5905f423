package models

import "time"

type User struct {
	IDUser            string    `json:"idUser"`
	PassengerFullName string    `json:"passengerFullName"`
	PassengerPhone    string    `json:"passengerPhone"`
	PassengerEmail    string    `json:"passengerEmail"`
	DateOfBirth       time.Time `json:"dateOfBirth"`
	Password          string    `json:"-"`
}

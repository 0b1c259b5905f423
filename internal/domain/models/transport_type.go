package models

type TransportType struct {
	IDTransportType string `json:"idTransportType"`
	TransportType   string `json:"transportType"`
}

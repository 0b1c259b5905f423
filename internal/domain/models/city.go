package models

type City struct {
	IDCity   string `json:"idCity"`
	CityName string `json:"cityName"`
}

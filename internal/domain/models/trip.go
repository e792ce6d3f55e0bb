package models

// Location is a searchable departure/arrival point.
type Location struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	Country string `json:"country,omitempty"`
}

// Trip is one scheduled departure offered for a date.
type Trip struct {
	ID                string   `json:"id"`
	DepartureLocation Location `json:"departure_location"`
	ArrivalLocation   Location `json:"arrival_location"`
	DepartureTime     string   `json:"departure_time"`
	ArrivalTime       string   `json:"arrival_time"`
	Price             int64    `json:"price"`
}

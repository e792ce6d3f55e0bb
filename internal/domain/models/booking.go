package models

// Traveler is the passenger record owned by the backend.
type Traveler struct {
	ID          string `json:"id,omitempty"`
	Fullname    string `json:"fullname"`
	Nationality string `json:"nationality,omitempty"`
	Gender      string `json:"gender,omitempty"`
	PhoneNumber string `json:"phone_number,omitempty"`
	Email       string `json:"email,omitempty"`
}

// Booking is the read-only snapshot fetched once per payment session.
// Canceled and PaymentStatus are the server-side lockout flags; everything
// else is display data for the trip summary and the receipt.
type Booking struct {
	ID            string    `json:"id"`
	Price         int64     `json:"price"`
	DepartureTime string    `json:"departure_time"`
	ArrivalTime   string    `json:"arrival_time"`
	TripDate      string    `json:"trip_date"`
	ArrivalDate   string    `json:"arrival_date,omitempty"`
	InStopName    string    `json:"inStopName"`
	OutStopName   string    `json:"outStopName"`
	SeatNumber    string    `json:"seat_number,omitempty"`
	Canceled      bool      `json:"canceled"`
	PaymentStatus string    `json:"payment_status"`
	Traveler      Traveler  `json:"traveler"`
	Trip          *TripRef  `json:"trip,omitempty"`
}

// TripRef is the trip/route subrecord embedded in a booking payload.
type TripRef struct {
	ID    string `json:"id"`
	Route struct {
		ID   string `json:"id"`
		Name string `json:"name"`
	} `json:"route"`
}

// Ticket is the check-ticket variant of a booking, keyed by the traveler's
// phone number instead of a booking id.
type Ticket struct {
	ID               string   `json:"id"`
	Price            int64    `json:"price"`
	IsOneWay         bool     `json:"is_one_way"`
	TripDate         string   `json:"trip_date"`
	Canceled         bool     `json:"canceled"`
	PaymentStatus    string   `json:"payment_status"`
	PaymentReference *string  `json:"payment_reference"`
	SeatNumber       string   `json:"seat_number"`
	RouteName        string   `json:"routeName"`
	InStopName       string   `json:"inStopName"`
	OutStopName      string   `json:"outStopName"`
	DepartureTime    string   `json:"departure_time"`
	ArrivalTime      string   `json:"arrival_time"`
	ArrivalDate      string   `json:"arrival_date"`
	Traveler         Traveler `json:"traveler"`
}

// NewBooking is the creation payload sent upstream.
type NewBooking struct {
	IdempotencyKey string `json:"idempotency_key"`
	IsOneWay       bool   `json:"is_one_way"`
	Trip           string `json:"trip"`
	Traveler       string `json:"traveler"`
	Price          int64  `json:"price"`
	SeatNumber     string `json:"seat_number"`
	TripDate       string `json:"trip_date"`
}

// NewTraveler is the creation payload sent upstream.
type NewTraveler struct {
	IdempotencyKey string `json:"idempotency_key"`
	Fullname       string `json:"fullname"`
	Gender         string `json:"gender"`
	Nationality    string `json:"nationality"`
	Email          string `json:"email"`
	PhoneNumber    string `json:"phone_number"`
	DOB            string `json:"dob"`
}

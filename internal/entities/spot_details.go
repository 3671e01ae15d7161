package entities

// Spot status flags as stored in parking_spot.status.
const (
	SpotAvailable = "A"
	SpotOccupied  = "O"
)

// BookingTimeLayout is how booking times travel in the spot-details payload.
const BookingTimeLayout = "2006-01-02 15:04"

type CurrentBooking struct {
	UserName    string  `json:"user_name"`
	Email       string  `json:"email"`
	VehicleNo   string  `json:"vehicle_no"`
	ParkingTime string  `json:"parking_time"`
	LeavingTime string  `json:"leaving_time"`
	ParkingCost float64 `json:"parking_cost"`
}

type FutureBooking struct {
	UserName    string `json:"user_name"`
	VehicleNo   string `json:"vehicle_no"`
	ParkingTime string `json:"parking_time"`
	LeavingTime string `json:"leaving_time"`
}

// SpotDetails is the view model served by GET /admin/spot-details/{id}.
// CurrentBookingDetails is set iff CurrentOccupied is true.
type SpotDetails struct {
	SpotID                int             `json:"spot_id"`
	LotID                 string          `json:"lot_id"`
	SpotStatus            string          `json:"spot_status"`
	CurrentOccupied       bool            `json:"current_occupied"`
	CurrentBookingDetails *CurrentBooking `json:"current_booking_details"`
	FutureBookingsDetails []FutureBooking `json:"future_bookings_details"`
	IsDeletable           bool            `json:"is_deletable"`
}

type SpotSummary struct {
	SpotID int    `json:"spot_id"`
	LotID  string `json:"lot_id"`
	Status string `json:"status"`
}

package db

import (
	"database/sql"
	"time"
)

type ParkingSpot struct {
	ID     int
	LotID  string
	Status string
}

// Booking is a row of user_bookings joined with the owning user. SpotID is
// null once the spot has been deleted.
type Booking struct {
	ID          int
	UserID      int
	SpotID      sql.NullInt64
	UserName    string
	Email       string
	VehicleNo   string
	ParkingTime time.Time
	LeavingTime time.Time
	ParkingCost float64
}

type Admin struct {
	ID           int
	Email        string
	PasswordHash string
}

package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"parkinglot/internal/db"
	"time"
)

var (
	ErrNotFound = errors.New("not found")
	// ErrSpotBusy is returned by DeleteSpot when a current or future booking
	// still references the spot.
	ErrSpotBusy = errors.New("spot has active or future bookings")
)

const bookingColumns = `
	b.id, b.user_id, b.spot_id, u.user_name, u.email_id, b.vehicle_no,
	b.parking_time, b.leaving_time, b.parking_cost`

type SpotRepository struct {
	DB *sql.DB
}

func NewSpotRepository(db *sql.DB) *SpotRepository {
	return &SpotRepository{DB: db}
}

func (r *SpotRepository) GetSpot(ctx context.Context, id int) (*db.ParkingSpot, error) {
	var spot db.ParkingSpot
	err := r.DB.QueryRowContext(ctx,
		`SELECT spot_id, lot_id, status FROM parking_spot WHERE spot_id = $1`, id,
	).Scan(&spot.ID, &spot.LotID, &spot.Status)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("error querying spot %d: %w", id, err)
	}
	return &spot, nil
}

// ListSpots returns the spots of lotID, or of every lot when lotID is empty.
func (r *SpotRepository) ListSpots(ctx context.Context, lotID string) ([]db.ParkingSpot, error) {
	query := `SELECT spot_id, lot_id, status FROM parking_spot`
	args := []interface{}{}
	if lotID != "" {
		query += ` WHERE lot_id = $1`
		args = append(args, lotID)
	}
	query += ` ORDER BY lot_id, spot_id`

	rows, err := r.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("error querying spots: %w", err)
	}
	defer rows.Close()

	var spots []db.ParkingSpot
	for rows.Next() {
		var s db.ParkingSpot
		if err := rows.Scan(&s.ID, &s.LotID, &s.Status); err != nil {
			return nil, fmt.Errorf("error scanning spot: %w", err)
		}
		spots = append(spots, s)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error after iterating spot rows: %w", err)
	}
	return spots, nil
}

// GetCurrentBooking returns the booking holding the spot at now, or nil when
// there is none.
func (r *SpotRepository) GetCurrentBooking(ctx context.Context, spotID int, now time.Time) (*db.Booking, error) {
	query := `SELECT` + bookingColumns + `
		FROM user_bookings b
		JOIN users u ON u.user_id = b.user_id
		WHERE b.spot_id = $1 AND b.parking_time <= $2 AND b.leaving_time > $2
		ORDER BY b.parking_time
		LIMIT 1`

	rows, err := r.DB.QueryContext(ctx, query, spotID, now)
	if err != nil {
		return nil, fmt.Errorf("error querying current booking: %w", err)
	}
	bookings, err := scanBookings(rows)
	if err != nil {
		return nil, err
	}
	if len(bookings) == 0 {
		return nil, nil
	}
	return &bookings[0], nil
}

// GetFutureBookings returns bookings of the spot starting after now, earliest first.
func (r *SpotRepository) GetFutureBookings(ctx context.Context, spotID int, now time.Time) ([]db.Booking, error) {
	query := `SELECT` + bookingColumns + `
		FROM user_bookings b
		JOIN users u ON u.user_id = b.user_id
		WHERE b.spot_id = $1 AND b.parking_time > $2
		ORDER BY b.parking_time, b.id`

	rows, err := r.DB.QueryContext(ctx, query, spotID, now)
	if err != nil {
		return nil, fmt.Errorf("error querying future bookings: %w", err)
	}
	return scanBookings(rows)
}

// DeleteSpot removes the spot and recounts its lot's max_spots. The booking
// check runs inside the same transaction so a booking made after the caller
// looked at the spot still blocks the delete.
func (r *SpotRepository) DeleteSpot(ctx context.Context, id int, now time.Time) error {
	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("error starting transaction: %w", err)
	}
	defer tx.Rollback()

	var pending int
	err = tx.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM user_bookings WHERE spot_id = $1 AND leaving_time > $2`, id, now,
	).Scan(&pending)
	if err != nil {
		return fmt.Errorf("error counting bookings for spot %d: %w", id, err)
	}
	if pending > 0 {
		return ErrSpotBusy
	}

	var lotID string
	err = tx.QueryRowContext(ctx,
		`DELETE FROM parking_spot WHERE spot_id = $1 RETURNING lot_id`, id,
	).Scan(&lotID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ErrNotFound
		}
		return fmt.Errorf("error deleting spot %d: %w", id, err)
	}

	_, err = tx.ExecContext(ctx, `
		UPDATE parking_lot
		SET max_spots = (SELECT COUNT(*) FROM parking_spot WHERE lot_id = $1)
		WHERE lot_id = $1`, lotID)
	if err != nil {
		return fmt.Errorf("error recounting spots of lot %s: %w", lotID, err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("error committing spot delete: %w", err)
	}
	return nil
}

func scanBookings(rows *sql.Rows) ([]db.Booking, error) {
	defer rows.Close()

	var bookings []db.Booking
	for rows.Next() {
		var b db.Booking
		err := rows.Scan(
			&b.ID, &b.UserID, &b.SpotID, &b.UserName, &b.Email, &b.VehicleNo,
			&b.ParkingTime, &b.LeavingTime, &b.ParkingCost,
		)
		if err != nil {
			return nil, fmt.Errorf("error scanning booking: %w", err)
		}
		bookings = append(bookings, b)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error after iterating booking rows: %w", err)
	}
	return bookings, nil
}

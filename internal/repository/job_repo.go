package repository

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"parkinglot/internal/db"
	"time"

	"github.com/lib/pq"
)

type JobRepository struct {
	DB *sql.DB
}

func NewJobRepository(db *sql.DB) *JobRepository {
	return &JobRepository{DB: db}
}

// GetExpiredBookings returns the bookings whose leaving time has passed.
// SpotID is null for bookings whose spot was deleted before archiving.
func (r *JobRepository) GetExpiredBookings(ctx context.Context, now time.Time) ([]db.Booking, error) {
	query := `SELECT` + bookingColumns + `
		FROM user_bookings b
		JOIN users u ON u.user_id = b.user_id
		WHERE b.leaving_time <= $1
		ORDER BY b.leaving_time, b.id`
	rows, err := r.DB.QueryContext(ctx, query, now)
	if err != nil {
		return nil, fmt.Errorf("error querying expired bookings: %w", err)
	}
	return scanBookings(rows)
}

// ArchiveAndRelease moves the given bookings into user_history and sets
// their spots back to 'A' unless another booking currently holds them.
// Both steps commit together, so a failed release leaves the bookings in
// place for the next run.
func (r *JobRepository) ArchiveAndRelease(ctx context.Context, ids, spotIDs []int, now time.Time) (archived, released int64, err error) {
	if len(ids) == 0 {
		return 0, 0, nil
	}
	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		return 0, 0, fmt.Errorf("error starting transaction: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx, `
		INSERT INTO user_history (user_id, spot_id, booking_time, leaving_time, parking_cost, vehicle_no)
		SELECT user_id, spot_id, parking_time, leaving_time, parking_cost, vehicle_no
		FROM user_bookings WHERE id = ANY($1)`, pq.Array(ids))
	if err != nil {
		return 0, 0, fmt.Errorf("error copying bookings to history: %w", err)
	}

	result, err := tx.ExecContext(ctx, `DELETE FROM user_bookings WHERE id = ANY($1)`, pq.Array(ids))
	if err != nil {
		return 0, 0, fmt.Errorf("error deleting archived bookings: %w", err)
	}
	archived = rowsAffected(result)

	if len(spotIDs) > 0 {
		result, err = tx.ExecContext(ctx, `
			UPDATE parking_spot s SET status = 'A'
			WHERE s.spot_id = ANY($1) AND s.status = 'O'
			AND NOT EXISTS (
				SELECT 1 FROM user_bookings b
				WHERE b.spot_id = s.spot_id AND b.parking_time <= $2 AND b.leaving_time > $2
			)`, pq.Array(spotIDs), now)
		if err != nil {
			return 0, 0, fmt.Errorf("error releasing spots: %w", err)
		}
		released = rowsAffected(result)
	}

	if err := tx.Commit(); err != nil {
		return 0, 0, fmt.Errorf("error committing archive: %w", err)
	}
	return archived, released, nil
}

// OccupyStartedSpots marks as 'O' every available spot whose booking has started.
func (r *JobRepository) OccupyStartedSpots(ctx context.Context, now time.Time) (int64, error) {
	result, err := r.DB.ExecContext(ctx, `
		UPDATE parking_spot s SET status = 'O'
		WHERE s.status = 'A'
		AND EXISTS (
			SELECT 1 FROM user_bookings b
			WHERE b.spot_id = s.spot_id AND b.parking_time <= $1 AND b.leaving_time > $1
		)`, now)
	if err != nil {
		return 0, fmt.Errorf("error occupying spots: %w", err)
	}
	return result.RowsAffected()
}

func rowsAffected(result sql.Result) int64 {
	n, err := result.RowsAffected()
	if err != nil {
		log.Printf("Could not get rows affected: %v", err)
		return 0
	}
	return n
}

package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"parkinglot/internal/db"
	"parkinglot/internal/entities"
	apperrors "parkinglot/internal/errors"
	"parkinglot/internal/notify"
	"parkinglot/internal/repository"
	"time"
)

const (
	msgSpotNotFound   = "Spot not found"
	msgActiveBookings = "Active booking exists"
)

type SpotStore interface {
	GetSpot(ctx context.Context, id int) (*db.ParkingSpot, error)
	ListSpots(ctx context.Context, lotID string) ([]db.ParkingSpot, error)
	GetCurrentBooking(ctx context.Context, spotID int, now time.Time) (*db.Booking, error)
	GetFutureBookings(ctx context.Context, spotID int, now time.Time) ([]db.Booking, error)
	DeleteSpot(ctx context.Context, id int, now time.Time) error
}

type SpotService struct {
	repo     SpotStore
	sms      notify.SMSSender
	opsPhone string
	now      func() time.Time
}

func NewSpotService(repo SpotStore, sms notify.SMSSender, opsPhone string) *SpotService {
	return &SpotService{
		repo:     repo,
		sms:      sms,
		opsPhone: opsPhone,
		now:      time.Now,
	}
}

// GetSpotDetails assembles the admin view of a spot: its status flag, the
// booking holding it right now, the bookings still to come and whether it
// may be deleted.
func (s *SpotService) GetSpotDetails(ctx context.Context, id int) (*entities.SpotDetails, error) {
	spot, err := s.repo.GetSpot(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, apperrors.ErrNotFound(msgSpotNotFound)
		}
		return nil, fmt.Errorf("get spot %d: %w", id, err)
	}

	now := s.now()
	current, err := s.repo.GetCurrentBooking(ctx, id, now)
	if err != nil {
		return nil, fmt.Errorf("get current booking of spot %d: %w", id, err)
	}
	future, err := s.repo.GetFutureBookings(ctx, id, now)
	if err != nil {
		return nil, fmt.Errorf("get future bookings of spot %d: %w", id, err)
	}

	details := &entities.SpotDetails{
		SpotID:                spot.ID,
		LotID:                 spot.LotID,
		SpotStatus:            spot.Status,
		CurrentOccupied:       current != nil,
		FutureBookingsDetails: make([]entities.FutureBooking, 0, len(future)),
	}
	if current != nil {
		details.CurrentBookingDetails = &entities.CurrentBooking{
			UserName:    current.UserName,
			Email:       current.Email,
			VehicleNo:   current.VehicleNo,
			ParkingTime: current.ParkingTime.Format(entities.BookingTimeLayout),
			LeavingTime: current.LeavingTime.Format(entities.BookingTimeLayout),
			ParkingCost: current.ParkingCost,
		}
	}
	for _, b := range future {
		details.FutureBookingsDetails = append(details.FutureBookingsDetails, entities.FutureBooking{
			UserName:    b.UserName,
			VehicleNo:   b.VehicleNo,
			ParkingTime: b.ParkingTime.Format(entities.BookingTimeLayout),
			LeavingTime: b.LeavingTime.Format(entities.BookingTimeLayout),
		})
	}
	details.IsDeletable = !details.CurrentOccupied && len(details.FutureBookingsDetails) == 0

	return details, nil
}

func (s *SpotService) ListSpots(ctx context.Context, lotID string) ([]entities.SpotSummary, error) {
	spots, err := s.repo.ListSpots(ctx, lotID)
	if err != nil {
		return nil, err
	}
	out := make([]entities.SpotSummary, 0, len(spots))
	for _, sp := range spots {
		out = append(out, entities.SpotSummary{SpotID: sp.ID, LotID: sp.LotID, Status: sp.Status})
	}
	return out, nil
}

// DeleteSpot removes a spot with no current or future bookings and reports
// the removal to the operations phone.
func (s *SpotService) DeleteSpot(ctx context.Context, id int) error {
	spot, err := s.repo.GetSpot(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return apperrors.ErrNotFound(msgSpotNotFound)
		}
		return fmt.Errorf("get spot %d: %w", id, err)
	}

	err = s.repo.DeleteSpot(ctx, id, s.now())
	switch {
	case errors.Is(err, repository.ErrSpotBusy):
		return apperrors.ErrConflict(msgActiveBookings)
	case errors.Is(err, repository.ErrNotFound):
		return apperrors.ErrNotFound(msgSpotNotFound)
	case err != nil:
		return fmt.Errorf("delete spot %d: %w", id, err)
	}

	log.Printf("Spot %d of lot %s deleted", spot.ID, spot.LotID)
	if s.opsPhone != "" {
		msg := fmt.Sprintf("ParkingLot: spot #%d removed from lot %s.", spot.ID, spot.LotID)
		if err := s.sms.SendSMS(s.opsPhone, msg); err != nil {
			log.Printf("Spot %d deleted, but the SMS to operations failed: %v", spot.ID, err)
		}
	}
	return nil
}

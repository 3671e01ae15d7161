package service

import (
	"context"
	"fmt"
	"log"
	"parkinglot/internal/db"
	"parkinglot/internal/entities"
	"parkinglot/internal/notify"
	"strconv"
	"time"
)

type JobStore interface {
	GetExpiredBookings(ctx context.Context, now time.Time) ([]db.Booking, error)
	ArchiveAndRelease(ctx context.Context, ids, spotIDs []int, now time.Time) (archived, released int64, err error)
	OccupyStartedSpots(ctx context.Context, now time.Time) (int64, error)
}

type JobService struct {
	Repo   JobStore
	Mailer notify.EmailSender
	now    func() time.Time
}

func NewJobService(repo JobStore, mailer notify.EmailSender) *JobService {
	return &JobService{Repo: repo, Mailer: mailer, now: time.Now}
}

// Run is the cron entry point; it syncs spot statuses with the bookings table.
func (s *JobService) Run() {
	ctx := context.Background()
	if err := s.ReleaseExpiredBookings(ctx); err != nil {
		log.Printf("Cron Job: %v", err)
	}
	if err := s.OccupyStartedBookings(ctx); err != nil {
		log.Printf("Cron Job: %v", err)
	}
}

// ReleaseExpiredBookings archives bookings whose leaving time passed, frees
// their spots and tells each user the session ended.
func (s *JobService) ReleaseExpiredBookings(ctx context.Context) error {
	now := s.now()
	expired, err := s.Repo.GetExpiredBookings(ctx, now)
	if err != nil {
		return fmt.Errorf("cron job: failed to get expired bookings: %w", err)
	}
	if len(expired) == 0 {
		return nil
	}

	ids := make([]int, 0, len(expired))
	spotSet := make(map[int]struct{})
	spotIDs := make([]int, 0, len(expired))
	for _, b := range expired {
		ids = append(ids, b.ID)
		if !b.SpotID.Valid {
			continue
		}
		spotID := int(b.SpotID.Int64)
		if _, seen := spotSet[spotID]; !seen {
			spotSet[spotID] = struct{}{}
			spotIDs = append(spotIDs, spotID)
		}
	}
	log.Printf("Cron Job: Found %d expired bookings. IDs: %v", len(ids), ids)

	archived, released, err := s.Repo.ArchiveAndRelease(ctx, ids, spotIDs, now)
	if err != nil {
		return fmt.Errorf("cron job: failed to archive bookings: %w", err)
	}
	log.Printf("Cron Job: archived %d bookings, released %d spots", archived, released)

	for _, b := range expired {
		s.notifySessionEnded(b, now)
	}
	return nil
}

func (s *JobService) OccupyStartedBookings(ctx context.Context) error {
	n, err := s.Repo.OccupyStartedSpots(ctx, s.now())
	if err != nil {
		return fmt.Errorf("cron job: failed to occupy spots: %w", err)
	}
	if n > 0 {
		log.Printf("Cron Job: marked %d spots as occupied", n)
	}
	return nil
}

func (s *JobService) notifySessionEnded(b db.Booking, now time.Time) {
	subject, plain, html, err := notify.SessionEndedEmail(entities.SessionEndedEmailData{
		UserName:    b.UserName,
		SpotID:      int(b.SpotID.Int64),
		VehicleNo:   b.VehicleNo,
		ParkingTime: b.ParkingTime.Format(entities.BookingTimeLayout),
		LeavingTime: b.LeavingTime.Format(entities.BookingTimeLayout),
		ParkingCost: strconv.FormatFloat(b.ParkingCost, 'f', -1, 64),
		CurrentYear: now.Year(),
	})
	if err != nil {
		log.Printf("Cron Job: booking %d: %v", b.ID, err)
		return
	}
	if err := s.Mailer.SendEmail(b.Email, b.UserName, subject, plain, html); err != nil {
		log.Printf("Cron Job: booking %d archived, but the e-mail to %s failed: %v", b.ID, b.Email, err)
	}
}

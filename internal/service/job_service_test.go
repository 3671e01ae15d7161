package service

import (
	"context"
	"database/sql"
	"errors"
	"parkinglot/internal/db"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type mockJobStore struct {
	mock.Mock
}

func (m *mockJobStore) GetExpiredBookings(ctx context.Context, now time.Time) ([]db.Booking, error) {
	args := m.Called(ctx, now)
	b, _ := args.Get(0).([]db.Booking)
	return b, args.Error(1)
}

func (m *mockJobStore) ArchiveAndRelease(ctx context.Context, ids, spotIDs []int, now time.Time) (int64, int64, error) {
	args := m.Called(ctx, ids, spotIDs, now)
	return args.Get(0).(int64), args.Get(1).(int64), args.Error(2)
}

func (m *mockJobStore) OccupyStartedSpots(ctx context.Context, now time.Time) (int64, error) {
	args := m.Called(ctx, now)
	return args.Get(0).(int64), args.Error(1)
}

type mockMailer struct {
	mock.Mock
}

func (m *mockMailer) SendEmail(toEmail, toName, subject, plainText, html string) error {
	return m.Called(toEmail, toName, subject, plainText, html).Error(0)
}

func spotRef(id int64) sql.NullInt64 {
	return sql.NullInt64{Int64: id, Valid: true}
}

func newJobService(repo JobStore, mailer *mockMailer) *JobService {
	svc := NewJobService(repo, mailer)
	svc.now = func() time.Time { return fixedNow }
	return svc
}

func TestJobService_ReleaseExpiredBookings(t *testing.T) {
	repo := new(mockJobStore)
	mailer := new(mockMailer)
	svc := newJobService(repo, mailer)

	expired := []db.Booking{
		{ID: 10, SpotID: spotRef(4), UserName: "Ana", Email: "a@x.com", ParkingTime: fixedNow.Add(-2 * time.Hour), LeavingTime: fixedNow.Add(-time.Hour), ParkingCost: 50},
		{ID: 11, SpotID: spotRef(4), UserName: "Ben", Email: "b@x.com", ParkingTime: fixedNow.Add(-3 * time.Hour), LeavingTime: fixedNow.Add(-2 * time.Hour), ParkingCost: 20},
		{ID: 12, SpotID: spotRef(6), UserName: "Cy", Email: "c@x.com", ParkingTime: fixedNow.Add(-3 * time.Hour), LeavingTime: fixedNow.Add(-time.Minute), ParkingCost: 30},
	}
	repo.On("GetExpiredBookings", mock.Anything, fixedNow).Return(expired, nil)
	repo.On("ArchiveAndRelease", mock.Anything, []int{10, 11, 12}, []int{4, 6}, fixedNow).Return(int64(3), int64(2), nil)
	mailer.On("SendEmail", "a@x.com", "Ana", "Your parking session on spot #4 has ended", mock.Anything, mock.Anything).Return(nil)
	mailer.On("SendEmail", "b@x.com", "Ben", mock.Anything, mock.Anything, mock.Anything).Return(errors.New("bounced"))
	mailer.On("SendEmail", "c@x.com", "Cy", "Your parking session on spot #6 has ended", mock.Anything, mock.Anything).Return(nil)

	require.NoError(t, svc.ReleaseExpiredBookings(context.Background()))
	repo.AssertExpectations(t)
	mailer.AssertExpectations(t)
}

func TestJobService_ReleaseExpiredBookings_NothingToDo(t *testing.T) {
	repo := new(mockJobStore)
	mailer := new(mockMailer)
	svc := newJobService(repo, mailer)

	repo.On("GetExpiredBookings", mock.Anything, fixedNow).Return([]db.Booking(nil), nil)

	require.NoError(t, svc.ReleaseExpiredBookings(context.Background()))
	repo.AssertNotCalled(t, "ArchiveAndRelease", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	mailer.AssertNotCalled(t, "SendEmail", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestJobService_ReleaseExpiredBookings_ArchiveFails(t *testing.T) {
	repo := new(mockJobStore)
	mailer := new(mockMailer)
	svc := newJobService(repo, mailer)

	repo.On("GetExpiredBookings", mock.Anything, fixedNow).Return([]db.Booking{{ID: 1, SpotID: spotRef(1)}}, nil)
	repo.On("ArchiveAndRelease", mock.Anything, []int{1}, []int{1}, fixedNow).Return(int64(0), int64(0), errors.New("db down"))

	err := svc.ReleaseExpiredBookings(context.Background())
	assert.ErrorContains(t, err, "failed to archive bookings")
	mailer.AssertNotCalled(t, "SendEmail", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestJobService_ReleaseExpiredBookings_DeletedSpot(t *testing.T) {
	repo := new(mockJobStore)
	mailer := new(mockMailer)
	svc := newJobService(repo, mailer)

	expired := []db.Booking{
		{ID: 20, UserName: "Ana", Email: "a@x.com", LeavingTime: fixedNow.Add(-time.Minute)},
		{ID: 21, SpotID: spotRef(5), UserName: "Ben", Email: "b@x.com", LeavingTime: fixedNow.Add(-time.Minute)},
	}
	repo.On("GetExpiredBookings", mock.Anything, fixedNow).Return(expired, nil)
	repo.On("ArchiveAndRelease", mock.Anything, []int{20, 21}, []int{5}, fixedNow).Return(int64(2), int64(1), nil)
	mailer.On("SendEmail", "a@x.com", "Ana", "Your parking session has ended", mock.Anything, mock.Anything).Return(nil)
	mailer.On("SendEmail", "b@x.com", "Ben", "Your parking session on spot #5 has ended", mock.Anything, mock.Anything).Return(nil)

	require.NoError(t, svc.ReleaseExpiredBookings(context.Background()))
	repo.AssertExpectations(t)
	mailer.AssertExpectations(t)
}

func TestJobService_Run(t *testing.T) {
	repo := new(mockJobStore)
	svc := newJobService(repo, new(mockMailer))

	repo.On("GetExpiredBookings", mock.Anything, fixedNow).Return(nil, errors.New("db down"))
	repo.On("OccupyStartedSpots", mock.Anything, fixedNow).Return(int64(1), nil)

	svc.Run()
	repo.AssertExpectations(t)
}

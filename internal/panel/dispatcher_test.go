package panel

import (
	"context"
	"errors"
	"parkinglot/internal/client"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

type mockDeleter struct {
	mock.Mock
}

func (m *mockDeleter) DeleteSpot(ctx context.Context, spotID int) error {
	return m.Called(ctx, spotID).Error(0)
}

type dispatchRecorder struct {
	prompts []string
	alerts  []string
	reloads int
}

func newDispatcher(deleter SpotDeleter, confirm bool) (*Dispatcher, *dispatchRecorder) {
	rec := &dispatchRecorder{}
	d := NewDispatcher(deleter,
		ConfirmFunc(func(prompt string) bool {
			rec.prompts = append(rec.prompts, prompt)
			return confirm
		}),
		AlertFunc(func(message string) { rec.alerts = append(rec.alerts, message) }),
		ReloadFunc(func(context.Context) { rec.reloads++ }),
	)
	return d, rec
}

func TestDispatcher_DeleteSpot_Declined(t *testing.T) {
	deleter := new(mockDeleter)
	d, rec := newDispatcher(deleter, false)

	d.DeleteSpot(context.Background(), 3)

	assert.Equal(t, []string{"Are you sure you want to delete this spot?"}, rec.prompts)
	deleter.AssertNotCalled(t, "DeleteSpot", mock.Anything, mock.Anything)
	assert.Empty(t, rec.alerts)
	assert.Zero(t, rec.reloads)
}

func TestDispatcher_DeleteSpot_Success(t *testing.T) {
	deleter := new(mockDeleter)
	deleter.On("DeleteSpot", mock.Anything, 3).Return(nil).Once()
	d, rec := newDispatcher(deleter, true)

	d.DeleteSpot(context.Background(), 3)

	assert.Equal(t, 1, rec.reloads)
	assert.Empty(t, rec.alerts)
	deleter.AssertExpectations(t)
}

func TestDispatcher_DeleteSpot_Failures(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{"server message", &client.StatusError{StatusCode: 409, Message: "Active booking exists", JSONBody: true}, "Active booking exists"},
		{"json without message", &client.StatusError{StatusCode: 500, JSONBody: true}, "Failed to delete spot."},
		{"non-json body", &client.StatusError{StatusCode: 502}, "Failed to delete spot. Server error."},
		{"network failure", errors.New("dial tcp: refused"), "An error occurred while trying to delete the spot."},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			deleter := new(mockDeleter)
			deleter.On("DeleteSpot", mock.Anything, 3).Return(tt.err)
			d, rec := newDispatcher(deleter, true)

			d.DeleteSpot(context.Background(), 3)

			assert.Equal(t, []string{tt.want}, rec.alerts)
			assert.Zero(t, rec.reloads)
		})
	}
}

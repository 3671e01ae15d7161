package panel

import (
	"parkinglot/internal/entities"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewView(t *testing.T) {
	current := &entities.CurrentBooking{UserName: "Ana"}
	future := []entities.FutureBooking{{UserName: "Ben"}}

	tests := []struct {
		name        string
		details     entities.SpotDetails
		banner      Banner
		bookedAhead bool
		noUpcoming  bool
	}{
		{
			name:       "free spot",
			details:    entities.SpotDetails{SpotStatus: "A", FutureBookingsDetails: []entities.FutureBooking{}, IsDeletable: true},
			banner:     BannerAvailable,
			noUpcoming: true,
		},
		{
			name:        "available with future bookings",
			details:     entities.SpotDetails{SpotStatus: "A", FutureBookingsDetails: future},
			banner:      BannerAvailable,
			bookedAhead: true,
		},
		{
			name:    "occupied with booking",
			details: entities.SpotDetails{SpotStatus: "O", CurrentOccupied: true, CurrentBookingDetails: current},
			banner:  BannerOccupied,
		},
		{
			name:    "occupied details win over an 'A' flag",
			details: entities.SpotDetails{SpotStatus: "A", CurrentOccupied: true, CurrentBookingDetails: current, FutureBookingsDetails: future},
			banner:  BannerOccupied,
		},
		{
			name:       "flagged O without booking",
			details:    entities.SpotDetails{SpotStatus: "O"},
			banner:     BannerInconsistent,
			noUpcoming: true,
		},
		{
			name:    "occupied flag without details falls back to available",
			details: entities.SpotDetails{SpotStatus: "A", CurrentOccupied: true},
			banner:  BannerAvailable,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := tt.details
			v := NewView(12, &d)
			assert.Equal(t, tt.banner, v.Banner)
			assert.Equal(t, tt.bookedAhead, v.BookedAhead)
			assert.Equal(t, tt.noUpcoming, v.NoUpcoming)
			assert.Equal(t, 12, v.SpotID)
			assert.Equal(t, d.IsDeletable, v.Deletable)
			if tt.banner == BannerOccupied {
				assert.Same(t, current, v.Current)
			} else {
				assert.Nil(t, v.Current)
			}
		})
	}
}

// Package panel renders the admin status panel of a parking spot and drives
// the two admin actions behind it: showing a spot and deleting it.
package panel

import "parkinglot/internal/entities"

// Banner is the headline state of a spot.
type Banner int

const (
	BannerAvailable Banner = iota
	BannerOccupied
	// BannerInconsistent: the spot is flagged 'O' but no booking holds it.
	BannerInconsistent
)

// View is what the panel shows for one fetch of spot details.
type View struct {
	SpotID  int
	Banner  Banner
	Current *entities.CurrentBooking
	// BookedAhead marks an available spot that has future bookings.
	BookedAhead bool
	Upcoming    []entities.FutureBooking
	NoUpcoming  bool
	Deletable   bool
}

// NewView decides what to show. Occupancy details take precedence over the
// status flag; a spot flagged 'O' without an active booking gets its own
// warning instead of falling through to "available".
func NewView(spotID int, d *entities.SpotDetails) View {
	v := View{
		SpotID:    spotID,
		Upcoming:  d.FutureBookingsDetails,
		Deletable: d.IsDeletable,
	}

	switch {
	case d.CurrentOccupied && d.CurrentBookingDetails != nil:
		v.Banner = BannerOccupied
		v.Current = d.CurrentBookingDetails
	case d.SpotStatus == entities.SpotOccupied && !d.CurrentOccupied:
		v.Banner = BannerInconsistent
	default:
		v.Banner = BannerAvailable
		v.BookedAhead = len(d.FutureBookingsDetails) > 0
	}

	v.NoUpcoming = len(v.Upcoming) == 0 && !d.CurrentOccupied
	return v
}

func (v View) IsOccupied() bool     { return v.Banner == BannerOccupied }
func (v View) IsInconsistent() bool { return v.Banner == BannerInconsistent }
func (v View) IsAvailable() bool    { return v.Banner == BannerAvailable }

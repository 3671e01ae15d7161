package panel

import (
	"context"
	"errors"
	"log"
	"parkinglot/internal/client"
)

const (
	deletePrompt       = "Are you sure you want to delete this spot?"
	msgDeleteFailed    = "Failed to delete spot."
	msgDeleteServerErr = "Failed to delete spot. Server error."
	msgDeleteTransport = "An error occurred while trying to delete the spot."
)

type SpotDeleter interface {
	DeleteSpot(ctx context.Context, spotID int) error
}

// Confirmer asks the user to approve an irreversible action.
type Confirmer interface {
	Confirm(prompt string) bool
}

// Alerter shows a blocking message to the user.
type Alerter interface {
	Alert(message string)
}

// Reloader refreshes every view that depends on the spot list.
type Reloader interface {
	Reload(ctx context.Context)
}

type ConfirmFunc func(prompt string) bool

func (f ConfirmFunc) Confirm(prompt string) bool { return f(prompt) }

type AlertFunc func(message string)

func (f AlertFunc) Alert(message string) { f(message) }

type ReloadFunc func(ctx context.Context)

func (f ReloadFunc) Reload(ctx context.Context) { f(ctx) }

type Dispatcher struct {
	deleter   SpotDeleter
	confirmer Confirmer
	alerter   Alerter
	reloader  Reloader
}

func NewDispatcher(deleter SpotDeleter, confirmer Confirmer, alerter Alerter, reloader Reloader) *Dispatcher {
	return &Dispatcher{
		deleter:   deleter,
		confirmer: confirmer,
		alerter:   alerter,
		reloader:  reloader,
	}
}

// DeleteSpot deletes the spot once the user confirms. Success reloads the
// views; any failure is alerted and nothing is reloaded.
func (d *Dispatcher) DeleteSpot(ctx context.Context, spotID int) {
	if !d.confirmer.Confirm(deletePrompt) {
		return
	}

	if err := d.deleter.DeleteSpot(ctx, spotID); err != nil {
		d.alerter.Alert(deleteErrorMessage(err))
		return
	}
	d.reloader.Reload(ctx)
}

func deleteErrorMessage(err error) string {
	var se *client.StatusError
	if errors.As(err, &se) {
		switch {
		case !se.JSONBody:
			return msgDeleteServerErr
		case se.Message != "":
			return se.Message
		default:
			return msgDeleteFailed
		}
	}
	log.Printf("Error deleting spot: %v", err)
	return msgDeleteTransport
}

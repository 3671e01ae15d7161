package panel

import (
	"context"
	"errors"
	"io"
	"log"
	"parkinglot/internal/client"
	"parkinglot/internal/entities"
)

const (
	msgFetchFailed = "Failed to fetch details"
	msgLoadFailed  = "Could not load details."
)

type DetailsSource interface {
	SpotDetails(ctx context.Context, spotID int) (*entities.SpotDetails, error)
}

// Fetcher shows spot details in a region. It never reports errors to its
// caller: failures end up in the region as an inline error.
type Fetcher struct {
	source   DetailsSource
	renderer *Renderer
	region   Region
}

func NewFetcher(source DetailsSource, renderer *Renderer, region Region) *Fetcher {
	return &Fetcher{source: source, renderer: renderer, region: region}
}

func (f *Fetcher) ShowDetails(ctx context.Context, spotID int) {
	f.replace(f.renderer.Loading)

	details, err := f.source.SpotDetails(ctx, spotID)
	if err != nil {
		f.ShowError(fetchErrorMessage(err))
		return
	}
	if details == nil {
		f.ShowError(msgLoadFailed)
		return
	}

	view := NewView(spotID, details)
	f.replace(func(w io.Writer) error { return f.renderer.Panel(w, view) })
}

// ClearDetails puts the region back to its idle text.
func (f *Fetcher) ClearDetails() {
	f.replace(f.renderer.Idle)
}

// ShowError replaces the region with an inline error.
func (f *Fetcher) ShowError(message string) {
	f.replace(func(w io.Writer) error { return f.renderer.Error(w, message) })
}

func (f *Fetcher) replace(fn func(io.Writer) error) {
	content, err := f.renderer.render(fn)
	if err != nil {
		log.Printf("Error rendering spot panel: %v", err)
		content, err = f.renderer.render(func(w io.Writer) error { return f.renderer.Error(w, msgLoadFailed) })
		if err != nil {
			return
		}
	}
	f.region.Replace(content)
}

func fetchErrorMessage(err error) string {
	var se *client.StatusError
	if errors.As(err, &se) {
		if se.Message != "" {
			return se.Message
		}
		return msgFetchFailed
	}
	log.Printf("Error fetching spot details: %v", err)
	return msgLoadFailed
}

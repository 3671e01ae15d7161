package api

import (
	"context"
	"errors"
	"net/http"
	"parkinglot/internal/client"
	"parkinglot/internal/entities"
	apperrors "parkinglot/internal/errors"
	"parkinglot/internal/panel"
	"strconv"

	"github.com/gorilla/mux"
)

type SpotSvc interface {
	GetSpotDetails(ctx context.Context, id int) (*entities.SpotDetails, error)
	DeleteSpot(ctx context.Context, id int) error
	ListSpots(ctx context.Context, lotID string) ([]entities.SpotSummary, error)
}

type AdminHandler struct {
	Service  SpotSvc
	renderer *panel.Renderer
}

func NewAdminHandler(svc SpotSvc) *AdminHandler {
	return &AdminHandler{Service: svc, renderer: panel.NewHTMLRenderer()}
}

func spotID(r *http.Request) (int, bool) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}

func (h *AdminHandler) SpotDetails(w http.ResponseWriter, r *http.Request) {
	id, ok := spotID(r)
	if !ok {
		writeErrorMessage(w, http.StatusBadRequest, "Invalid spot ID")
		return
	}
	details, err := h.Service.GetSpotDetails(r.Context(), id)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, details)
}

func (h *AdminHandler) DeleteSpot(w http.ResponseWriter, r *http.Request) {
	id, ok := spotID(r)
	if !ok {
		writeErrorMessage(w, http.StatusBadRequest, "Invalid spot ID")
		return
	}
	if err := h.Service.DeleteSpot(r.Context(), id); err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, entities.MessageResponse{Message: "Spot deleted"})
}

func (h *AdminHandler) ListSpots(w http.ResponseWriter, r *http.Request) {
	spots, err := h.Service.ListSpots(r.Context(), r.URL.Query().Get("lot_id"))
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, spots)
}

// SpotPanel serves the rendered status panel as an HTML fragment. Failures
// are rendered inline, so the answer is always 200.
func (h *AdminHandler) SpotPanel(w http.ResponseWriter, r *http.Request) {
	region := &panel.BufferRegion{}
	fetcher := panel.NewFetcher(serviceSource{h.Service}, h.renderer, region)

	if id, ok := spotID(r); ok {
		fetcher.ShowDetails(r.Context(), id)
	} else {
		fetcher.ShowError("Invalid spot ID")
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(region.Content()))
}

// serviceSource feeds the panel straight from the service, reporting
// client-visible errors the way the HTTP client would.
type serviceSource struct {
	svc SpotSvc
}

func (s serviceSource) SpotDetails(ctx context.Context, id int) (*entities.SpotDetails, error) {
	details, err := s.svc.GetSpotDetails(ctx, id)
	var httpErr *apperrors.HTTPError
	if errors.As(err, &httpErr) {
		return nil, &client.StatusError{StatusCode: httpErr.Code, Message: httpErr.Message, JSONBody: true}
	}
	return details, err
}

package api

import (
	"net/http"
	"parkinglot/internal/auth"
	"parkinglot/internal/middleware"

	"github.com/gorilla/mux"
)

func NewRouter(admin *AdminHandler, adminAuth *AdminAuthHandler, jwtSecret []byte) *mux.Router {
	r := mux.NewRouter()
	r.Use(middleware.RequestID, middleware.Recovery)

	r.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	}).Methods("GET")

	// Login is the only unauthenticated admin endpoint.
	r.HandleFunc("/admin/login", adminAuth.Login).Methods("POST")

	protected := r.PathPrefix("/admin").Subrouter()
	protected.Use(auth.AdminAuthMiddleware(jwtSecret))
	protected.HandleFunc("/register", adminAuth.CreateUserAdmin).Methods("POST")
	protected.HandleFunc("/spots", admin.ListSpots).Methods("GET")
	protected.HandleFunc("/spot-details/{id}", admin.SpotDetails).Methods("GET")
	protected.HandleFunc("/spot-panel/{id}", admin.SpotPanel).Methods("GET")
	protected.HandleFunc("/delete_spot/{id}", admin.DeleteSpot).Methods("POST")

	return r
}

package entities

type ErrorResponse struct {
	Error string `json:"error"`
}

type MessageResponse struct {
	Message string `json:"message"`
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type LoginResponse struct {
	Token string `json:"token"`
}

// SessionEndedEmailData feeds the session-ended e-mail template.
type SessionEndedEmailData struct {
	UserName    string
	SpotID      int
	VehicleNo   string
	ParkingTime string
	LeavingTime string
	ParkingCost string
	CurrentYear int
}

package notify

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"parkinglot/internal/entities"
)

//go:embed templates/*.html
var templateFS embed.FS

var emailTemplates = template.Must(template.ParseFS(templateFS, "templates/*.html"))

// SessionEndedEmail builds the subject, plain text and HTML bodies sent when
// a booking expires. A zero SpotID means the spot no longer exists and is
// left out of the message.
func SessionEndedEmail(data entities.SessionEndedEmailData) (subject, plainText, html string, err error) {
	subject = "Your parking session has ended"
	booking := "Your booking"
	if data.SpotID != 0 {
		subject = fmt.Sprintf("Your parking session on spot #%d has ended", data.SpotID)
		booking = fmt.Sprintf("Your booking on spot #%d", data.SpotID)
	}
	plainText = fmt.Sprintf(
		"Hello %s,\n\n%s is complete.\n\n"+
			"Vehicle No: %s\nStart: %s\nEnd: %s\nPaid Cost: ₹%s\n\n"+
			"Thank you for parking with us.\n\n%d ParkingLot",
		data.UserName, booking, data.VehicleNo, data.ParkingTime, data.LeavingTime, data.ParkingCost, data.CurrentYear,
	)

	var buf bytes.Buffer
	if err := emailTemplates.ExecuteTemplate(&buf, "session_ended.html", data); err != nil {
		return "", "", "", fmt.Errorf("render session ended email: %w", err)
	}
	return subject, plainText, buf.String(), nil
}

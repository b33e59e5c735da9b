package dto

import (
	domain "github.com/BruksfildServices01/agenda/internal/domain/appointment"
	"github.com/BruksfildServices01/agenda/internal/models"
)

type AppointmentListDTO struct {
	ID         uint   `json:"id"`
	Date       string `json:"date"`
	Time       string `json:"time"`
	Reason     string `json:"reason"`
	State      string `json:"state"`
	StateLabel string `json:"state_label"`
	Attended   *bool  `json:"attended"`
	ClientID   uint   `json:"client_id"`
	ClientName string `json:"client_name"`
}

func NewAppointmentList(ap models.Appointment) AppointmentListDTO {
	return AppointmentListDTO{
		ID:         ap.ID,
		Date:       ap.Date,
		Time:       ap.Time,
		Reason:     ap.Reason,
		State:      ap.State,
		StateLabel: domain.Status(ap.State).Label(),
		Attended:   ap.Attended,
		ClientID:   ap.ClientID,
		ClientName: ap.Client.Name,
	}
}

func NewAppointmentLists(apps []models.Appointment) []AppointmentListDTO {
	out := make([]AppointmentListDTO, 0, len(apps))
	for _, ap := range apps {
		out = append(out, NewAppointmentList(ap))
	}
	return out
}

// PublicAppointmentDTO is what a client sees behind the confirmation link:
// no phone, notes or internal ids.
type PublicAppointmentDTO struct {
	ClientName string `json:"client_name"`
	Date       string `json:"date"`
	Time       string `json:"time"`
	Reason     string `json:"reason"`
	State      string `json:"state"`
	StateLabel string `json:"state_label"`
}

func NewPublicAppointment(ap *models.Appointment) PublicAppointmentDTO {
	return PublicAppointmentDTO{
		ClientName: ap.Client.Name,
		Date:       ap.Date,
		Time:       ap.Time,
		Reason:     ap.Reason,
		State:      ap.State,
		StateLabel: domain.Status(ap.State).Label(),
	}
}

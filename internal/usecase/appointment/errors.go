package appointment

import (
	"errors"

	"gorm.io/gorm"

	"github.com/BruksfildServices01/agenda/internal/httperr"
)

var (
	errAppointmentNotFound = httperr.ErrNotFound("appointment_not_found", "Cita no encontrada.")
	errClientNotFound      = httperr.ErrNotFound("client_not_found", "Cliente no encontrado.")
	errClientInactive      = httperr.ErrValidation("client_id", "client_inactive", "El cliente está inactivo y no puede recibir nuevas citas.")
)

func mapNotFound(err error, notFound error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return notFound
	}
	return err
}

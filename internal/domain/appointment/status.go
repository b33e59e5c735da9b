package appointment

import "github.com/BruksfildServices01/agenda/internal/httperr"

// ===============================
// Appointment Status
// ===============================

type Status string

const (
	StatusPending   Status = "pending"
	StatusConfirmed Status = "confirmed"
	StatusCancelled Status = "cancelled"
	StatusCompleted Status = "completed"
	StatusNoShow    Status = "no_show"
)

func AllStatuses() []Status {
	return []Status{StatusPending, StatusConfirmed, StatusCancelled, StatusCompleted, StatusNoShow}
}

func (s Status) Valid() bool {
	switch s {
	case StatusPending, StatusConfirmed, StatusCancelled, StatusCompleted, StatusNoShow:
		return true
	}
	return false
}

// IsTerminal reports states the public workflow can no longer change.
func (s Status) IsTerminal() bool {
	return s == StatusCancelled || s == StatusCompleted || s == StatusNoShow
}

// Label is the Spanish wording used in client-facing messages.
func (s Status) Label() string {
	switch s {
	case StatusPending:
		return "pendiente"
	case StatusConfirmed:
		return "confirmada"
	case StatusCancelled:
		return "cancelada"
	case StatusCompleted:
		return "completada"
	case StatusNoShow:
		return "marcada como no asistida"
	}
	return string(s)
}

// ===============================
// Validations
// ===============================

func InitialStatus() Status {
	return StatusPending
}

// ParseStatus accepts an optional filter value; empty means "any".
func ParseStatus(raw string) (Status, error) {
	if raw == "" {
		return "", nil
	}
	s := Status(raw)
	if !s.Valid() {
		return "", httperr.ErrValidation("state", "invalid_state_filter", "Estado desconocido.")
	}
	return s, nil
}

// CheckConsistency enforces the state/attendance pairing before every save.
func CheckConsistency(s Status, attended *bool) error {
	if !s.Valid() {
		return httperr.ErrValidation("state", "invalid_state", "Estado desconocido.")
	}
	if s == StatusCompleted && attended == nil {
		return httperr.ErrValidation("state", "completed_requires_attendance",
			"Las citas completadas deben tener registro de asistencia.")
	}
	if s == StatusNoShow && (attended == nil || *attended) {
		return httperr.ErrValidation("state", "no_show_requires_absence",
			"El estado 'no asistió' requiere que la asistencia sea negativa.")
	}
	return nil
}

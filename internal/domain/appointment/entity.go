package appointment

import (
	"fmt"
	"time"

	"github.com/BruksfildServices01/agenda/internal/httperr"
	"github.com/BruksfildServices01/agenda/internal/models"
	"github.com/BruksfildServices01/agenda/internal/timezone"
)

// ===============================
// Public confirmation workflow
// ===============================

type Action string

const (
	ActionConfirm Action = "confirm"
	ActionCancel  Action = "cancel"
)

func ParseAction(raw string) (Action, error) {
	switch a := Action(raw); a {
	case ActionConfirm, ActionCancel:
		return a, nil
	}
	return "", httperr.ErrValidation("action", "invalid_action", "Acción no válida.")
}

// Outcome is the result category shown to the client.
type Outcome string

const (
	OutcomeSuccess Outcome = "success"
	OutcomeInfo    Outcome = "info"
	OutcomeWarning Outcome = "warning"
	OutcomeDanger  Outcome = "danger"
)

type Result struct {
	Outcome Outcome `json:"outcome"`
	Code    string  `json:"code"`
	Message string  `json:"message"`
	Changed bool    `json:"changed"`
}

// StartsAt resolves the stored date/time pair in loc.
func StartsAt(ap *models.Appointment, loc *time.Location) (time.Time, error) {
	return timezone.Combine(ap.Date, ap.Time, loc)
}

// IsPast reports whether the appointment start is before now.
func IsPast(ap *models.Appointment, now time.Time) bool {
	start, err := StartsAt(ap, now.Location())
	if err != nil {
		return false
	}
	return now.After(start)
}

// Respond applies a client's confirm/cancel. Rejections are results, not
// errors: the client always gets a readable outcome.
func Respond(ap *models.Appointment, action Action, now time.Time) Result {
	current := Status(ap.State)

	if current.IsTerminal() {
		return Result{
			Outcome: OutcomeInfo,
			Code:    "already_" + string(current),
			Message: fmt.Sprintf("Esta cita ya fue %s y no puede ser modificada.", current.Label()),
		}
	}

	if IsPast(ap, now) {
		return Result{
			Outcome: OutcomeWarning,
			Code:    "appointment_in_past",
			Message: "Esta cita ya pasó y no puede ser confirmada ni cancelada.",
		}
	}

	switch action {
	case ActionConfirm:
		if current == StatusConfirmed {
			return Result{
				Outcome: OutcomeInfo,
				Code:    "already_confirmed",
				Message: "Esta cita ya había sido confirmada anteriormente.",
			}
		}
		ap.State = string(StatusConfirmed)
		return Result{
			Outcome: OutcomeSuccess,
			Code:    "confirmed",
			Message: "¡Su cita ha sido confirmada exitosamente!",
			Changed: true,
		}

	case ActionCancel:
		ap.State = string(StatusCancelled)
		if current == StatusConfirmed {
			return Result{
				Outcome: OutcomeDanger,
				Code:    "confirmed_cancelled",
				Message: "Su cita confirmada ha sido cancelada. Gracias por avisarnos.",
				Changed: true,
			}
		}
		return Result{
			Outcome: OutcomeDanger,
			Code:    "cancelled",
			Message: "Su cita ha sido cancelada. Gracias por avisarnos.",
			Changed: true,
		}
	}

	return Result{Outcome: OutcomeWarning, Code: "invalid_action", Message: "Acción no válida."}
}

// ===============================
// Attendance
// ===============================

// RecordAttendance is single use: only for appointments dated today or
// earlier, and only while attendance is unset.
func RecordAttendance(ap *models.Appointment, attended bool, now time.Time) error {
	if ap.Date > timezone.Today(now) {
		return httperr.ErrState("attendance_future_date", "No puedes registrar asistencia para citas futuras.")
	}
	if ap.Attended != nil {
		return httperr.ErrState("attendance_already_recorded", "La asistencia ya fue registrada para esta cita.")
	}

	ap.Attended = &attended
	if attended {
		ap.State = string(StatusCompleted)
	} else {
		ap.State = string(StatusNoShow)
	}

	return CheckConsistency(Status(ap.State), ap.Attended)
}

// CanDelete keeps completed appointments with attendance as history.
func CanDelete(ap *models.Appointment) error {
	if Status(ap.State) == StatusCompleted && ap.Attended != nil {
		return httperr.ErrState("appointment_has_history",
			"No puedes eliminar citas completadas con registro de asistencia.")
	}
	return nil
}

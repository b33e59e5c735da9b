package appointment

import (
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/BruksfildServices01/agenda/internal/httperr"
	"github.com/BruksfildServices01/agenda/internal/models"
	"github.com/BruksfildServices01/agenda/internal/timezone"
)

const (
	MinReasonLength = 5
	MaxReasonLength = 300
)

// Rules are the booking constraints checked on create and edit.
type Rules struct {
	Window       WorkingWindow
	MaxDaysAhead int
	MinGap       time.Duration
}

func DefaultRules() Rules {
	return Rules{
		Window:       WorkingWindow{Start: "08:00", End: "20:00"},
		MaxDaysAhead: 365,
		MinGap:       30 * time.Minute,
	}
}

// Candidate is the raw booking request.
type Candidate struct {
	Date   string
	Time   string
	Reason string
}

// Slot is a candidate that passed the field checks.
type Slot struct {
	Date   string
	Time   string
	Start  time.Time
	Reason string
}

// ValidateFields runs the per-field checks in form order: reason, date, time.
// now must carry the business location.
func (r Rules) ValidateFields(c Candidate, now time.Time) (Slot, error) {
	reason := strings.TrimSpace(c.Reason)
	switch n := utf8.RuneCountInString(reason); {
	case n == 0:
		return Slot{}, httperr.ErrValidation("reason", "reason_required", "El motivo es obligatorio.")
	case n < MinReasonLength:
		return Slot{}, httperr.ErrValidation("reason", "reason_too_short", "El motivo debe tener al menos 5 caracteres.")
	case n > MaxReasonLength:
		return Slot{}, httperr.ErrValidation("reason", "reason_too_long", "El motivo no puede exceder 300 caracteres.")
	}

	loc := now.Location()

	d, err := time.ParseInLocation(timezone.DateLayout, strings.TrimSpace(c.Date), loc)
	if err != nil {
		return Slot{}, httperr.ErrValidation("date", "invalid_date", "La fecha es obligatoria (AAAA-MM-DD).")
	}
	date := d.Format(timezone.DateLayout)
	today := timezone.Today(now)

	if date < today {
		return Slot{}, httperr.ErrValidation("date", "date_in_past", "No puedes crear citas en fechas pasadas.")
	}
	if date > now.AddDate(0, 0, r.MaxDaysAhead).Format(timezone.DateLayout) {
		return Slot{}, httperr.ErrValidation("date", "date_too_far",
			fmt.Sprintf("No puedes crear citas con más de %d días de anticipación.", r.MaxDaysAhead))
	}

	t, err := time.Parse(timezone.TimeLayout, strings.TrimSpace(c.Time))
	if err != nil {
		return Slot{}, httperr.ErrValidation("time", "invalid_time", "La hora es obligatoria (HH:MM).")
	}
	hm := t.Format(timezone.TimeLayout)

	if !r.Window.IsWithinWorkingHours(hm) {
		return Slot{}, httperr.ErrValidation("time", "outside_working_hours",
			fmt.Sprintf("Las citas solo se pueden agendar entre %s y %s.", r.Window.Start, r.Window.End))
	}

	start := time.Date(d.Year(), d.Month(), d.Day(), t.Hour(), t.Minute(), 0, 0, loc)
	if date == today && start.Before(now) {
		return Slot{}, httperr.ErrValidation("time", "time_in_past", "No puedes crear citas en horas pasadas.")
	}

	return Slot{Date: date, Time: hm, Start: start, Reason: reason}, nil
}

// CheckConflicts compares the slot with the client's other appointments on
// the same date. Cancelled ones never block.
func (r Rules) CheckConflicts(clientName string, slot Slot, existing []models.Appointment) error {
	for _, ap := range existing {
		if Status(ap.State) == StatusCancelled || ap.Date != slot.Date {
			continue
		}
		if ap.Time == slot.Time {
			return httperr.ErrConflict("slot_taken", fmt.Sprintf(
				"Ya existe una cita para %s el %s a las %s.",
				clientName, slot.Start.Format("02/01/2006"), slot.Time,
			))
		}
	}

	for _, ap := range existing {
		if Status(ap.State) == StatusCancelled || ap.Date != slot.Date {
			continue
		}
		other, err := time.ParseInLocation(timezone.TimeLayout, ap.Time, slot.Start.Location())
		if err != nil {
			continue
		}
		mine := time.Date(0, 1, 1, slot.Start.Hour(), slot.Start.Minute(), 0, 0, slot.Start.Location())
		gap := mine.Sub(other)
		if gap < 0 {
			gap = -gap
		}
		if gap < r.MinGap {
			return httperr.ErrConflict("too_close", fmt.Sprintf(
				"El cliente %s ya tiene una cita muy cercana a esta hora. Deja al menos %d minutos entre citas.",
				clientName, int(r.MinGap.Minutes()),
			))
		}
	}

	return nil
}

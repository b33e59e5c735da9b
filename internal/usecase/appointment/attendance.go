package appointment

import (
	"context"

	"github.com/BruksfildServices01/agenda/internal/audit"
	domain "github.com/BruksfildServices01/agenda/internal/domain/appointment"
	"github.com/BruksfildServices01/agenda/internal/httperr"
	"github.com/BruksfildServices01/agenda/internal/metrics"
	"github.com/BruksfildServices01/agenda/internal/models"
	"github.com/BruksfildServices01/agenda/internal/timezone"
)

type RecordAttendance struct {
	repo  domain.Repository
	audit *audit.Dispatcher
	clock timezone.Clock
}

func NewRecordAttendance(
	repo domain.Repository,
	audit *audit.Dispatcher,
	clock timezone.Clock,
) *RecordAttendance {
	return &RecordAttendance{
		repo:  repo,
		audit: audit,
		clock: clock,
	}
}

func (uc *RecordAttendance) Execute(
	ctx context.Context,
	actorID *uint,
	appointmentID uint,
	attended bool,
) (*models.Appointment, error) {

	ap, from, err := uc.record(ctx, appointmentID, attended)
	if httperr.IsBusiness(err, "appointment_changed") {
		// a concurrent write won; re-run the guards on the fresh row
		ap, from, err = uc.record(ctx, appointmentID, attended)
	}
	if err != nil {
		return nil, err
	}

	metrics.Transition(from, ap.State)
	uc.audit.Dispatch(audit.Event{
		UserID:   actorID,
		Action:   "attendance_recorded",
		Entity:   "appointment",
		EntityID: &ap.ID,
		Metadata: map[string]any{"attended": attended, "from": from},
	})

	return ap, nil
}

// record applies the attendance to the current row and returns the state it
// moved from.
func (uc *RecordAttendance) record(
	ctx context.Context,
	appointmentID uint,
	attended bool,
) (*models.Appointment, string, error) {

	ap, err := uc.repo.GetAppointment(ctx, appointmentID)
	if err != nil {
		return nil, "", mapNotFound(err, errAppointmentNotFound)
	}

	from := ap.State
	if err := domain.RecordAttendance(ap, attended, uc.clock()); err != nil {
		return nil, "", err
	}

	if err := uc.repo.TransitionState(ctx, ap, from); err != nil {
		return nil, "", err
	}
	return ap, from, nil
}

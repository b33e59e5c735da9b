package appointment

import (
	"context"

	"github.com/BruksfildServices01/agenda/internal/audit"
	domain "github.com/BruksfildServices01/agenda/internal/domain/appointment"
)

type DeleteAppointment struct {
	repo  domain.Repository
	audit *audit.Dispatcher
}

func NewDeleteAppointment(
	repo domain.Repository,
	audit *audit.Dispatcher,
) *DeleteAppointment {
	return &DeleteAppointment{
		repo:  repo,
		audit: audit,
	}
}

func (uc *DeleteAppointment) Execute(
	ctx context.Context,
	actorID *uint,
	appointmentID uint,
) error {

	ap, err := uc.repo.GetAppointment(ctx, appointmentID)
	if err != nil {
		return mapNotFound(err, errAppointmentNotFound)
	}

	if err := domain.CanDelete(ap); err != nil {
		return err
	}

	if err := uc.repo.DeleteAppointment(ctx, ap.ID); err != nil {
		return err
	}

	uc.audit.Dispatch(audit.Event{
		UserID:   actorID,
		Action:   "appointment_deleted",
		Entity:   "appointment",
		EntityID: &ap.ID,
		Metadata: map[string]any{
			"client_id": ap.ClientID,
			"date":      ap.Date,
			"time":      ap.Time,
			"state":     ap.State,
		},
	})

	return nil
}

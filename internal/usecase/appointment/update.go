package appointment

import (
	"context"

	"github.com/BruksfildServices01/agenda/internal/audit"
	domain "github.com/BruksfildServices01/agenda/internal/domain/appointment"
	"github.com/BruksfildServices01/agenda/internal/models"
	"github.com/BruksfildServices01/agenda/internal/timezone"
)

type UpdateAppointmentInput struct {
	ActorID *uint

	AppointmentID uint
	ClientID      uint
	Date          string
	Time          string
	Reason        string
	Notes         string
}

type UpdateAppointment struct {
	repo  domain.Repository
	audit *audit.Dispatcher
	clock timezone.Clock
	rules domain.Rules
}

func NewUpdateAppointment(
	repo domain.Repository,
	audit *audit.Dispatcher,
	clock timezone.Clock,
	rules domain.Rules,
) *UpdateAppointment {
	return &UpdateAppointment{
		repo:  repo,
		audit: audit,
		clock: clock,
		rules: rules,
	}
}

// Execute edits client, date, time, reason and notes. The state and the
// attendance flag only move through their own workflows.
func (uc *UpdateAppointment) Execute(
	ctx context.Context,
	in UpdateAppointmentInput,
) (*models.Appointment, error) {

	ap, err := uc.repo.GetAppointment(ctx, in.AppointmentID)
	if err != nil {
		return nil, mapNotFound(err, errAppointmentNotFound)
	}

	slot, err := uc.rules.ValidateFields(domain.Candidate{
		Date:   in.Date,
		Time:   in.Time,
		Reason: in.Reason,
	}, uc.clock())
	if err != nil {
		return nil, err
	}

	client := ap.Client
	if in.ClientID != 0 && in.ClientID != ap.ClientID {
		c, err := uc.repo.GetClient(ctx, in.ClientID)
		if err != nil {
			return nil, mapNotFound(err, errClientNotFound)
		}
		if !c.Active {
			return nil, errClientInactive
		}
		client = *c
	}

	ap.ClientID = client.ID
	ap.Date = slot.Date
	ap.Time = slot.Time
	ap.Reason = slot.Reason
	ap.Notes = in.Notes

	if err := domain.CheckConsistency(domain.Status(ap.State), ap.Attended); err != nil {
		return nil, err
	}

	err = uc.repo.WithinTx(ctx, func(tx domain.Repository) error {
		existing, err := tx.ListLiveForClientOnDate(ctx, client.ID, slot.Date, ap.ID)
		if err != nil {
			return err
		}
		if err := uc.rules.CheckConflicts(client.Name, slot, existing); err != nil {
			return err
		}
		return tx.UpdateDetails(ctx, ap)
	})
	if err != nil {
		reportConflict(uc.audit, in.ActorID, client.ID, slot, err)
		return nil, mapNotFound(err, errAppointmentNotFound)
	}

	uc.audit.Dispatch(audit.Event{
		UserID:   in.ActorID,
		Action:   "appointment_updated",
		Entity:   "appointment",
		EntityID: &ap.ID,
	})

	// state may have moved meanwhile; answer with the stored row
	saved, err := uc.repo.GetAppointment(ctx, ap.ID)
	if err != nil {
		return nil, mapNotFound(err, errAppointmentNotFound)
	}
	return saved, nil
}

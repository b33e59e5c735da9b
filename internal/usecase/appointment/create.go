package appointment

import (
	"context"

	"github.com/google/uuid"

	"github.com/BruksfildServices01/agenda/internal/audit"
	domain "github.com/BruksfildServices01/agenda/internal/domain/appointment"
	"github.com/BruksfildServices01/agenda/internal/httperr"
	"github.com/BruksfildServices01/agenda/internal/metrics"
	"github.com/BruksfildServices01/agenda/internal/models"
	"github.com/BruksfildServices01/agenda/internal/timezone"
)

// ======================================================
// INPUT
// ======================================================

type CreateAppointmentInput struct {
	ActorID *uint

	ClientID uint
	Date     string
	Time     string
	Reason   string
	Notes    string
}

// ======================================================
// USE CASE
// ======================================================

type CreateAppointment struct {
	repo  domain.Repository
	audit *audit.Dispatcher
	clock timezone.Clock
	rules domain.Rules
}

func NewCreateAppointment(
	repo domain.Repository,
	audit *audit.Dispatcher,
	clock timezone.Clock,
	rules domain.Rules,
) *CreateAppointment {
	return &CreateAppointment{
		repo:  repo,
		audit: audit,
		clock: clock,
		rules: rules,
	}
}

// ======================================================
// EXECUTE
// ======================================================

func (uc *CreateAppointment) Execute(
	ctx context.Context,
	in CreateAppointmentInput,
) (*models.Appointment, error) {

	// --------------------------------------------------
	// 1️⃣ Campos (motivo, data, hora)
	// --------------------------------------------------
	slot, err := uc.rules.ValidateFields(domain.Candidate{
		Date:   in.Date,
		Time:   in.Time,
		Reason: in.Reason,
	}, uc.clock())
	if err != nil {
		return nil, err
	}

	// --------------------------------------------------
	// 2️⃣ Cliente
	// --------------------------------------------------
	client, err := uc.repo.GetClient(ctx, in.ClientID)
	if err != nil {
		return nil, mapNotFound(err, errClientNotFound)
	}
	if !client.Active {
		return nil, errClientInactive
	}

	ap := &models.Appointment{
		ClientID: client.ID,
		Date:     slot.Date,
		Time:     slot.Time,
		Reason:   slot.Reason,
		State:    string(domain.InitialStatus()),
		Token:    uuid.NewString(),
		Notes:    in.Notes,
	}
	if err := domain.CheckConsistency(domain.Status(ap.State), ap.Attended); err != nil {
		return nil, err
	}

	// --------------------------------------------------
	// 3️⃣ Conflito + criação na mesma transação
	// --------------------------------------------------
	err = uc.repo.WithinTx(ctx, func(tx domain.Repository) error {
		existing, err := tx.ListLiveForClientOnDate(ctx, client.ID, slot.Date, 0)
		if err != nil {
			return err
		}
		if err := uc.rules.CheckConflicts(client.Name, slot, existing); err != nil {
			return err
		}
		return tx.CreateAppointment(ctx, ap)
	})
	if err != nil {
		reportConflict(uc.audit, in.ActorID, client.ID, slot, err)
		return nil, err
	}
	ap.Client = *client

	// --------------------------------------------------
	// 4️⃣ Auditoria
	// --------------------------------------------------
	metrics.Transition("", ap.State)
	uc.audit.Dispatch(audit.Event{
		UserID:   in.ActorID,
		Action:   "appointment_created",
		Entity:   "appointment",
		EntityID: &ap.ID,
	})

	return ap, nil
}

// reportConflict records rejected double bookings; other errors pass silently.
func reportConflict(d *audit.Dispatcher, actorID *uint, clientID uint, slot domain.Slot, err error) {
	be, ok := httperr.AsBusiness(err)
	if !ok || be.Kind != httperr.KindConflict {
		return
	}

	metrics.Conflict(be.Code)
	d.Dispatch(audit.Event{
		UserID:   actorID,
		Action:   "appointment_conflict",
		Entity:   "client",
		EntityID: &clientID,
		Metadata: map[string]any{
			"code": be.Code,
			"date": slot.Date,
			"time": slot.Time,
		},
	})
}

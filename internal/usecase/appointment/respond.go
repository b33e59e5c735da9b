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

// RespondOutput pairs the client-facing result with the appointment as it
// stands after the action.
type RespondOutput struct {
	domain.Result
	Appointment *models.Appointment
}

// RespondByToken runs the public confirm/cancel workflow.
type RespondByToken struct {
	repo  domain.Repository
	audit *audit.Dispatcher
	clock timezone.Clock
}

func NewRespondByToken(
	repo domain.Repository,
	audit *audit.Dispatcher,
	clock timezone.Clock,
) *RespondByToken {
	return &RespondByToken{
		repo:  repo,
		audit: audit,
		clock: clock,
	}
}

func (uc *RespondByToken) Execute(
	ctx context.Context,
	token string,
	rawAction string,
) (*RespondOutput, error) {

	if token == "" {
		return nil, errAppointmentNotFound
	}

	ap, err := uc.repo.GetAppointmentByToken(ctx, token)
	if err != nil {
		return nil, mapNotFound(err, errAppointmentNotFound)
	}

	action, err := domain.ParseAction(rawAction)
	if err != nil {
		return nil, err
	}

	from := ap.State
	res := domain.Respond(ap, action, uc.clock())

	// rejeições não tocam no banco
	if !res.Changed {
		return &RespondOutput{Result: res, Appointment: ap}, nil
	}

	err = uc.repo.TransitionState(ctx, ap, from)
	if httperr.IsBusiness(err, "appointment_changed") {
		// someone else moved it first; decide again on the fresh row
		ap, err = uc.repo.GetAppointmentByToken(ctx, token)
		if err != nil {
			return nil, mapNotFound(err, errAppointmentNotFound)
		}
		from = ap.State
		res = domain.Respond(ap, action, uc.clock())
		if !res.Changed {
			return &RespondOutput{Result: res, Appointment: ap}, nil
		}
		err = uc.repo.TransitionState(ctx, ap, from)
	}
	if err != nil {
		return nil, err
	}

	metrics.Transition(from, ap.State)

	eventAction := "appointment_confirmed"
	if action == domain.ActionCancel {
		eventAction = "appointment_cancelled"
	}
	uc.audit.Dispatch(audit.Event{
		Action:   eventAction,
		Entity:   "appointment",
		EntityID: &ap.ID,
		Metadata: map[string]any{"from": from, "via": "public_link"},
	})

	return &RespondOutput{Result: res, Appointment: ap}, nil
}

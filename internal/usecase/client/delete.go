package client

import (
	"context"
	"fmt"

	"github.com/BruksfildServices01/agenda/internal/audit"
	domain "github.com/BruksfildServices01/agenda/internal/domain/client"
	"github.com/BruksfildServices01/agenda/internal/httperr"
	"github.com/BruksfildServices01/agenda/internal/timezone"
)

type DeleteClient struct {
	repo  domain.Repository
	audit *audit.Dispatcher
	clock timezone.Clock
}

func NewDeleteClient(
	repo domain.Repository,
	audit *audit.Dispatcher,
	clock timezone.Clock,
) *DeleteClient {
	return &DeleteClient{
		repo:  repo,
		audit: audit,
		clock: clock,
	}
}

// Execute removes the client and its history, unless live appointments from
// today onwards still depend on it.
func (uc *DeleteClient) Execute(
	ctx context.Context,
	actorID *uint,
	clientID uint,
) error {

	c, err := uc.repo.GetByID(ctx, clientID)
	if err != nil {
		return mapNotFound(err)
	}

	blocking, err := uc.repo.CountBlockingAppointments(ctx, c.ID, timezone.Today(uc.clock()))
	if err != nil {
		return err
	}
	if blocking > 0 {
		return httperr.WithDetails(
			httperr.ErrState("client_has_future_appointments", fmt.Sprintf(
				"No se puede eliminar a %s porque tiene %d cita(s) futura(s) activa(s). Cancele o complete las citas primero.",
				c.Name, blocking,
			)),
			map[string]any{"count": blocking},
		)
	}

	if err := uc.repo.DeleteWithHistory(ctx, c.ID); err != nil {
		return mapNotFound(err)
	}

	uc.audit.Dispatch(audit.Event{
		UserID:   actorID,
		Action:   "client_deleted",
		Entity:   "client",
		EntityID: &c.ID,
		Metadata: map[string]any{
			"name":         c.Name,
			"appointments": len(c.Appointments),
		},
	})

	return nil
}

package client

import (
	"context"

	"github.com/BruksfildServices01/agenda/internal/audit"
	domain "github.com/BruksfildServices01/agenda/internal/domain/client"
	"github.com/BruksfildServices01/agenda/internal/models"
)

type UpdateClient struct {
	repo  domain.Repository
	audit *audit.Dispatcher
}

func NewUpdateClient(
	repo domain.Repository,
	audit *audit.Dispatcher,
) *UpdateClient {
	return &UpdateClient{
		repo:  repo,
		audit: audit,
	}
}

// Execute replaces the editable fields. A nil Active keeps the current flag.
func (uc *UpdateClient) Execute(
	ctx context.Context,
	actorID *uint,
	clientID uint,
	in domain.Input,
) (*models.Client, error) {

	c, err := uc.repo.GetByID(ctx, clientID)
	if err != nil {
		return nil, mapNotFound(err)
	}

	if in.Active == nil {
		active := c.Active
		in.Active = &active
	}

	n, err := domain.Normalize(in)
	if err != nil {
		return nil, err
	}

	c.Name = n.Name
	c.Phone = n.Phone
	c.Email = n.Email
	c.Notes = n.Notes
	c.Active = n.Active

	if err := uc.repo.Update(ctx, c); err != nil {
		return nil, err
	}

	uc.audit.Dispatch(audit.Event{
		UserID:   actorID,
		Action:   "client_updated",
		Entity:   "client",
		EntityID: &c.ID,
	})

	return c, nil
}

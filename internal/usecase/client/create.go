package client

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/BruksfildServices01/agenda/internal/audit"
	domain "github.com/BruksfildServices01/agenda/internal/domain/client"
	"github.com/BruksfildServices01/agenda/internal/httperr"
	"github.com/BruksfildServices01/agenda/internal/models"
)

var errClientNotFound = httperr.ErrNotFound("client_not_found", "Cliente no encontrado.")

func mapNotFound(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return errClientNotFound
	}
	return err
}

type CreateClient struct {
	repo  domain.Repository
	audit *audit.Dispatcher
}

func NewCreateClient(
	repo domain.Repository,
	audit *audit.Dispatcher,
) *CreateClient {
	return &CreateClient{
		repo:  repo,
		audit: audit,
	}
}

func (uc *CreateClient) Execute(
	ctx context.Context,
	actorID *uint,
	in domain.Input,
) (*models.Client, error) {

	n, err := domain.Normalize(in)
	if err != nil {
		return nil, err
	}

	c := &models.Client{
		Name:   n.Name,
		Phone:  n.Phone,
		Email:  n.Email,
		Notes:  n.Notes,
		Active: n.Active,
	}

	if err := uc.repo.Create(ctx, c); err != nil {
		return nil, err
	}

	uc.audit.Dispatch(audit.Event{
		UserID:   actorID,
		Action:   "client_created",
		Entity:   "client",
		EntityID: &c.ID,
	})

	return c, nil
}

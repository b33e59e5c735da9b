package client

import (
	"context"

	"github.com/BruksfildServices01/agenda/internal/models"
)

type Repository interface {
	Create(ctx context.Context, c *models.Client) error
	Update(ctx context.Context, c *models.Client) error
	GetByID(ctx context.Context, id uint) (*models.Client, error)
	List(ctx context.Context, query string) ([]models.Client, error)
	CountActive(ctx context.Context) (int64, error)

	// CountBlockingAppointments counts live appointments dated today or later.
	CountBlockingAppointments(ctx context.Context, clientID uint, today string) (int64, error)

	// DeleteWithHistory removes the client and every appointment it owns.
	DeleteWithHistory(ctx context.Context, clientID uint) error
}

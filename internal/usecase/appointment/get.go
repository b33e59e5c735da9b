package appointment

import (
	"context"

	domain "github.com/BruksfildServices01/agenda/internal/domain/appointment"
	"github.com/BruksfildServices01/agenda/internal/models"
)

type GetAppointment struct {
	repo domain.Repository
}

func NewGetAppointment(repo domain.Repository) *GetAppointment {
	return &GetAppointment{repo: repo}
}

func (uc *GetAppointment) Execute(ctx context.Context, appointmentID uint) (*models.Appointment, error) {
	ap, err := uc.repo.GetAppointment(ctx, appointmentID)
	if err != nil {
		return nil, mapNotFound(err, errAppointmentNotFound)
	}
	return ap, nil
}

// GetByToken backs the public confirmation page.
type GetByToken struct {
	repo domain.Repository
}

func NewGetByToken(repo domain.Repository) *GetByToken {
	return &GetByToken{repo: repo}
}

func (uc *GetByToken) Execute(ctx context.Context, token string) (*models.Appointment, error) {
	if token == "" {
		return nil, errAppointmentNotFound
	}
	ap, err := uc.repo.GetAppointmentByToken(ctx, token)
	if err != nil {
		return nil, mapNotFound(err, errAppointmentNotFound)
	}
	return ap, nil
}

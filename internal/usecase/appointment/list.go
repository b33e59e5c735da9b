package appointment

import (
	"context"

	domain "github.com/BruksfildServices01/agenda/internal/domain/appointment"
	"github.com/BruksfildServices01/agenda/internal/dto"
)

type ListAppointments struct {
	repo domain.Repository
}

func NewListAppointments(repo domain.Repository) *ListAppointments {
	return &ListAppointments{repo: repo}
}

// Execute lists appointments newest first, optionally narrowed by state and client.
func (uc *ListAppointments) Execute(
	ctx context.Context,
	f domain.Filter,
) ([]dto.AppointmentListDTO, error) {

	apps, err := uc.repo.ListAppointments(ctx, f)
	if err != nil {
		return nil, err
	}

	return dto.NewAppointmentLists(apps), nil
}

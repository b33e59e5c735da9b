package appointment

import (
	"context"

	domain "github.com/BruksfildServices01/agenda/internal/domain/appointment"
	"github.com/BruksfildServices01/agenda/internal/whatsapp"
)

type BuildWhatsApp struct {
	repo    domain.Repository
	builder *whatsapp.Builder
}

func NewBuildWhatsApp(
	repo domain.Repository,
	builder *whatsapp.Builder,
) *BuildWhatsApp {
	return &BuildWhatsApp{
		repo:    repo,
		builder: builder,
	}
}

func (uc *BuildWhatsApp) Execute(
	ctx context.Context,
	appointmentID uint,
) (whatsapp.Notification, error) {

	ap, err := uc.repo.GetAppointment(ctx, appointmentID)
	if err != nil {
		return whatsapp.Notification{}, mapNotFound(err, errAppointmentNotFound)
	}

	return uc.builder.Build(ap)
}

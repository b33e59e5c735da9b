package report

import (
	"context"

	domain "github.com/BruksfildServices01/agenda/internal/domain/appointment"
	clientdomain "github.com/BruksfildServices01/agenda/internal/domain/client"
	"github.com/BruksfildServices01/agenda/internal/dto"
	"github.com/BruksfildServices01/agenda/internal/timezone"
)

const (
	upcomingDays  = 7
	upcomingLimit = 10
)

type DashboardOutput struct {
	Today          string                   `json:"today"`
	TodayList      []dto.AppointmentListDTO `json:"today_appointments"`
	PendingCount   int64                    `json:"pending_count"`
	ConfirmedCount int64                    `json:"confirmed_count"`
	ActiveClients  int64                    `json:"active_clients"`
	Upcoming       []dto.AppointmentListDTO `json:"upcoming"`
}

type Dashboard struct {
	appointments domain.Repository
	clients      clientdomain.Repository
	clock        timezone.Clock
}

func NewDashboard(
	appointments domain.Repository,
	clients clientdomain.Repository,
	clock timezone.Clock,
) *Dashboard {
	return &Dashboard{
		appointments: appointments,
		clients:      clients,
		clock:        clock,
	}
}

func (uc *Dashboard) Execute(ctx context.Context) (*DashboardOutput, error) {
	now := uc.clock()
	today := timezone.Today(now)
	weekAhead := timezone.Today(now.AddDate(0, 0, upcomingDays))

	todays, err := uc.appointments.ListAppointments(ctx, domain.Filter{From: today, To: today})
	if err != nil {
		return nil, err
	}

	// pendentes: todas, sem filtro de data
	pending, err := uc.appointments.CountByState(ctx, domain.StatusPending, "")
	if err != nil {
		return nil, err
	}

	confirmed, err := uc.appointments.CountByState(ctx, domain.StatusConfirmed, today)
	if err != nil {
		return nil, err
	}

	active, err := uc.clients.CountActive(ctx)
	if err != nil {
		return nil, err
	}

	upcoming, err := uc.appointments.ListUpcoming(ctx, today, weekAhead, upcomingLimit)
	if err != nil {
		return nil, err
	}

	return &DashboardOutput{
		Today:          today,
		TodayList:      dto.NewAppointmentLists(todays),
		PendingCount:   pending,
		ConfirmedCount: confirmed,
		ActiveClients:  active,
		Upcoming:       dto.NewAppointmentLists(upcoming),
	}, nil
}

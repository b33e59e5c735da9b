package report

import (
	"context"
	"math"
	"strings"
	"time"

	domain "github.com/BruksfildServices01/agenda/internal/domain/appointment"
	"github.com/BruksfildServices01/agenda/internal/dto"
	"github.com/BruksfildServices01/agenda/internal/httperr"
	"github.com/BruksfildServices01/agenda/internal/models"
	"github.com/BruksfildServices01/agenda/internal/timezone"
)

// ======================================================
// INPUT / OUTPUT
// ======================================================

type AttendanceInput struct {
	From     string
	To       string
	State    string
	ClientID uint
}

type Summary struct {
	Total                int            `json:"total"`
	Attended             int            `json:"attended"`
	NotAttended          int            `json:"not_attended"`
	Unrecorded           int            `json:"unrecorded"`
	ByState              map[string]int `json:"by_state"`
	AttendancePercentage float64        `json:"attendance_percentage"`
}

type AttendanceReport struct {
	Summary
	Appointments      []dto.AppointmentListDTO `json:"appointments"`
	OverdueUnrecorded []dto.AppointmentListDTO `json:"overdue_unrecorded"`
}

// ======================================================
// AGGREGATION
// ======================================================

// Summarize counts attendance over apps. Every state gets a key, zero or not.
func Summarize(apps []models.Appointment) Summary {
	s := Summary{
		Total:   len(apps),
		ByState: make(map[string]int, len(domain.AllStatuses())),
	}
	for _, st := range domain.AllStatuses() {
		s.ByState[string(st)] = 0
	}

	for _, ap := range apps {
		switch {
		case ap.Attended == nil:
			s.Unrecorded++
		case *ap.Attended:
			s.Attended++
		default:
			s.NotAttended++
		}
		s.ByState[ap.State]++
	}

	if s.Total > 0 {
		pct := float64(s.Attended) / float64(s.Total) * 100
		s.AttendancePercentage = math.Round(pct*10) / 10
	}

	return s
}

// OverdueUnrecorded picks past appointments still waiting for attendance.
func OverdueUnrecorded(apps []models.Appointment, today string) []models.Appointment {
	out := make([]models.Appointment, 0)
	for _, ap := range apps {
		st := domain.Status(ap.State)
		if ap.Date < today && ap.Attended == nil &&
			(st == domain.StatusPending || st == domain.StatusConfirmed) {
			out = append(out, ap)
		}
	}
	return out
}

// ======================================================
// USE CASE
// ======================================================

type Attendance struct {
	repo  domain.Repository
	clock timezone.Clock
}

func NewAttendance(repo domain.Repository, clock timezone.Clock) *Attendance {
	return &Attendance{repo: repo, clock: clock}
}

func (uc *Attendance) Execute(
	ctx context.Context,
	in AttendanceInput,
) (*AttendanceReport, error) {

	f, err := parseFilter(in)
	if err != nil {
		return nil, err
	}

	apps, err := uc.repo.ListAppointments(ctx, f)
	if err != nil {
		return nil, err
	}

	today := timezone.Today(uc.clock())

	return &AttendanceReport{
		Summary:           Summarize(apps),
		Appointments:      dto.NewAppointmentLists(apps),
		OverdueUnrecorded: dto.NewAppointmentLists(OverdueUnrecorded(apps, today)),
	}, nil
}

func parseFilter(in AttendanceInput) (domain.Filter, error) {
	f := domain.Filter{ClientID: in.ClientID}

	var err error
	if f.From, err = parseDate("from", in.From); err != nil {
		return f, err
	}
	if f.To, err = parseDate("to", in.To); err != nil {
		return f, err
	}
	if f.From != "" && f.To != "" && f.From > f.To {
		return f, httperr.ErrValidation("to", "invalid_range", "La fecha final debe ser posterior a la inicial.")
	}

	if f.State, err = domain.ParseStatus(strings.TrimSpace(in.State)); err != nil {
		return f, err
	}

	return f, nil
}

func parseDate(field, raw string) (string, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", nil
	}
	d, err := time.Parse(timezone.DateLayout, raw)
	if err != nil {
		return "", httperr.ErrValidation(field, "invalid_date", "Fecha inválida (AAAA-MM-DD).")
	}
	return d.Format(timezone.DateLayout), nil
}

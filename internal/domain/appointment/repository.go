package appointment

import (
	"context"

	"github.com/BruksfildServices01/agenda/internal/httperr"
	"github.com/BruksfildServices01/agenda/internal/models"
)

// ErrChanged reports that another request moved the appointment first.
var ErrChanged = httperr.ErrConflict("appointment_changed",
	"La cita fue modificada por otra solicitud. Recargue e intente de nuevo.")

// Filter narrows appointment listings; zero values mean "any".
type Filter struct {
	From     string
	To       string
	State    Status
	ClientID uint
}

type Repository interface {
	// -------- Client --------
	GetClient(
		ctx context.Context,
		clientID uint,
	) (*models.Client, error)

	// -------- Appointment (create / conflict) --------

	// WithinTx runs fn against a repository bound to one transaction, so the
	// conflict check and the write it guards commit together.
	WithinTx(
		ctx context.Context,
		fn func(tx Repository) error,
	) error

	ListLiveForClientOnDate(
		ctx context.Context,
		clientID uint,
		date string,
		excludeID uint,
	) ([]models.Appointment, error)

	CreateAppointment(
		ctx context.Context,
		ap *models.Appointment,
	) error

	// -------- Appointment (state change) --------
	GetAppointment(
		ctx context.Context,
		appointmentID uint,
	) (*models.Appointment, error)

	GetAppointmentByToken(
		ctx context.Context,
		token string,
	) (*models.Appointment, error)

	// UpdateDetails writes client, date, time, reason and notes only.
	UpdateDetails(
		ctx context.Context,
		ap *models.Appointment,
	) error

	// TransitionState writes ap's state and attendance only while the row
	// still holds fromState with no attendance. Otherwise ErrChanged.
	TransitionState(
		ctx context.Context,
		ap *models.Appointment,
		fromState string,
	) error

	DeleteAppointment(
		ctx context.Context,
		appointmentID uint,
	) error

	// -------- Listing --------
	ListAppointments(
		ctx context.Context,
		f Filter,
	) ([]models.Appointment, error)

	ListUpcoming(
		ctx context.Context,
		from string,
		to string,
		limit int,
	) ([]models.Appointment, error)

	CountByState(
		ctx context.Context,
		state Status,
		fromDate string,
	) (int64, error)
}

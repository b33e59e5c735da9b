package repository

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	domain "github.com/BruksfildServices01/agenda/internal/domain/appointment"
	"github.com/BruksfildServices01/agenda/internal/httperr"
	"github.com/BruksfildServices01/agenda/internal/models"
)

var terminalStates = []string{
	string(domain.StatusCancelled),
	string(domain.StatusCompleted),
	string(domain.StatusNoShow),
}

type AppointmentGormRepository struct {
	db *gorm.DB
}

func NewAppointmentGormRepository(db *gorm.DB) *AppointmentGormRepository {
	return &AppointmentGormRepository{db: db}
}

// SQLite has no row locks and rejects FOR UPDATE; it serializes writers anyway.
func (r *AppointmentGormRepository) forUpdate(q *gorm.DB) *gorm.DB {
	if r.db.Dialector.Name() == "postgres" {
		return q.Clauses(clause.Locking{Strength: "UPDATE"})
	}
	return q
}

// --------------------------------------------------
// Client
// --------------------------------------------------

func (r *AppointmentGormRepository) GetClient(
	ctx context.Context,
	clientID uint,
) (*models.Client, error) {

	var client models.Client
	if err := r.db.WithContext(ctx).First(&client, clientID).Error; err != nil {
		return nil, err
	}
	return &client, nil
}

// --------------------------------------------------
// Appointment (create / conflict)
// --------------------------------------------------

func (r *AppointmentGormRepository) WithinTx(
	ctx context.Context,
	fn func(tx domain.Repository) error,
) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&AppointmentGormRepository{db: tx})
	})
}

// ListLiveForClientOnDate locks the client row first so concurrent bookings
// for the same client queue behind each other until commit.
func (r *AppointmentGormRepository) ListLiveForClientOnDate(
	ctx context.Context,
	clientID uint,
	date string,
	excludeID uint,
) ([]models.Appointment, error) {

	var client models.Client
	if err := r.forUpdate(r.db.WithContext(ctx)).
		Select("id").
		First(&client, clientID).Error; err != nil {
		return nil, err
	}

	q := r.db.WithContext(ctx).
		Where("client_id = ? AND date = ? AND state <> ?", clientID, date, string(domain.StatusCancelled))

	if excludeID != 0 {
		q = q.Where("id <> ?", excludeID)
	}

	var apps []models.Appointment
	if err := r.forUpdate(q).
		Order("time ASC").
		Find(&apps).Error; err != nil {
		return nil, err
	}

	return apps, nil
}

func (r *AppointmentGormRepository) CreateAppointment(
	ctx context.Context,
	ap *models.Appointment,
) error {
	if err := r.db.WithContext(ctx).Omit("Client").Create(ap).Error; err != nil {
		return mapSlotViolation(err)
	}
	return nil
}

// --------------------------------------------------
// Appointment (state change)
// --------------------------------------------------

func (r *AppointmentGormRepository) GetAppointment(
	ctx context.Context,
	appointmentID uint,
) (*models.Appointment, error) {

	var ap models.Appointment
	if err := r.db.WithContext(ctx).
		Preload("Client").
		First(&ap, appointmentID).Error; err != nil {
		return nil, err
	}

	return &ap, nil
}

func (r *AppointmentGormRepository) GetAppointmentByToken(
	ctx context.Context,
	token string,
) (*models.Appointment, error) {

	var ap models.Appointment
	if err := r.db.WithContext(ctx).
		Preload("Client").
		Where("token = ?", token).
		First(&ap).Error; err != nil {
		return nil, err
	}

	return &ap, nil
}

func (r *AppointmentGormRepository) UpdateDetails(
	ctx context.Context,
	ap *models.Appointment,
) error {
	res := r.db.WithContext(ctx).
		Model(&models.Appointment{}).
		Where("id = ?", ap.ID).
		Updates(map[string]any{
			"client_id": ap.ClientID,
			"date":      ap.Date,
			"time":      ap.Time,
			"reason":    ap.Reason,
			"notes":     ap.Notes,
		})
	if res.Error != nil {
		return mapSlotViolation(res.Error)
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// TransitionState is a compare-and-set on (state, attended IS NULL), so two
// requests racing on the same row cannot both win.
func (r *AppointmentGormRepository) TransitionState(
	ctx context.Context,
	ap *models.Appointment,
	fromState string,
) error {
	res := r.db.WithContext(ctx).
		Model(&models.Appointment{}).
		Where("id = ? AND state = ? AND attended IS NULL", ap.ID, fromState).
		Updates(map[string]any{
			"state":    ap.State,
			"attended": ap.Attended,
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return domain.ErrChanged
	}
	return nil
}

func (r *AppointmentGormRepository) DeleteAppointment(
	ctx context.Context,
	appointmentID uint,
) error {
	return r.db.WithContext(ctx).Delete(&models.Appointment{}, appointmentID).Error
}

// --------------------------------------------------
// Listing
// --------------------------------------------------

func (r *AppointmentGormRepository) ListAppointments(
	ctx context.Context,
	f domain.Filter,
) ([]models.Appointment, error) {

	q := r.db.WithContext(ctx).Preload("Client")

	if f.From != "" {
		q = q.Where("date >= ?", f.From)
	}
	if f.To != "" {
		q = q.Where("date <= ?", f.To)
	}
	if f.State != "" {
		q = q.Where("state = ?", string(f.State))
	}
	if f.ClientID != 0 {
		q = q.Where("client_id = ?", f.ClientID)
	}

	var apps []models.Appointment
	if err := q.
		Order("date DESC").
		Order("time DESC").
		Find(&apps).Error; err != nil {
		return nil, err
	}

	return apps, nil
}

func (r *AppointmentGormRepository) ListUpcoming(
	ctx context.Context,
	from string,
	to string,
	limit int,
) ([]models.Appointment, error) {

	var apps []models.Appointment
	if err := r.db.WithContext(ctx).
		Preload("Client").
		Where("date >= ? AND date <= ?", from, to).
		Where("state NOT IN ?", terminalStates).
		Order("date ASC").
		Order("time ASC").
		Limit(limit).
		Find(&apps).Error; err != nil {
		return nil, err
	}

	return apps, nil
}

func (r *AppointmentGormRepository) CountByState(
	ctx context.Context,
	state domain.Status,
	fromDate string,
) (int64, error) {

	q := r.db.WithContext(ctx).
		Model(&models.Appointment{}).
		Where("state = ?", string(state))

	if fromDate != "" {
		q = q.Where("date >= ?", fromDate)
	}

	var count int64
	if err := q.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

func mapSlotViolation(err error) error {
	if httperr.IsUniqueViolation(err) {
		return httperr.ErrConflict("slot_taken", "Ya existe una cita para este cliente en esa fecha y hora.")
	}
	return err
}

// Compile-time check
var _ domain.Repository = (*AppointmentGormRepository)(nil)

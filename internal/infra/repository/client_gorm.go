package repository

import (
	"context"
	"strings"

	"gorm.io/gorm"

	domain "github.com/BruksfildServices01/agenda/internal/domain/client"
	"github.com/BruksfildServices01/agenda/internal/models"
)

type ClientGormRepository struct {
	db *gorm.DB
}

func NewClientGormRepository(db *gorm.DB) *ClientGormRepository {
	return &ClientGormRepository{db: db}
}

func (r *ClientGormRepository) Create(ctx context.Context, c *models.Client) error {
	return r.db.WithContext(ctx).Create(c).Error
}

func (r *ClientGormRepository) Update(ctx context.Context, c *models.Client) error {
	return r.db.WithContext(ctx).Omit("Appointments").Save(c).Error
}

// GetByID loads the client with its appointment history, newest first.
func (r *ClientGormRepository) GetByID(ctx context.Context, id uint) (*models.Client, error) {
	var c models.Client
	if err := r.db.WithContext(ctx).
		Preload("Appointments", func(db *gorm.DB) *gorm.DB {
			return db.Order("date DESC").Order("time DESC")
		}).
		First(&c, id).Error; err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *ClientGormRepository) List(ctx context.Context, query string) ([]models.Client, error) {
	q := r.db.WithContext(ctx)

	query = strings.ToLower(strings.TrimSpace(query))
	if query != "" {
		like := "%" + query + "%"
		q = q.Where(
			"LOWER(name) LIKE ? OR phone LIKE ? OR LOWER(email) LIKE ?",
			like, like, like,
		)
	}

	var clients []models.Client
	if err := q.Order("name ASC").Find(&clients).Error; err != nil {
		return nil, err
	}
	return clients, nil
}

func (r *ClientGormRepository) CountActive(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.Client{}).
		Where("active = ?", true).
		Count(&count).Error
	return count, err
}

func (r *ClientGormRepository) CountBlockingAppointments(
	ctx context.Context,
	clientID uint,
	today string,
) (int64, error) {

	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.Appointment{}).
		Where("client_id = ? AND date >= ?", clientID, today).
		Where("state NOT IN ?", terminalStates).
		Count(&count).Error
	return count, err
}

func (r *ClientGormRepository) DeleteWithHistory(ctx context.Context, clientID uint) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("client_id = ?", clientID).Delete(&models.Appointment{}).Error; err != nil {
			return err
		}

		res := tx.Delete(&models.Client{}, clientID)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return nil
	})
}

var _ domain.Repository = (*ClientGormRepository)(nil)

package client

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domain "github.com/BruksfildServices01/agenda/internal/domain/client"
	"github.com/BruksfildServices01/agenda/internal/httperr"
	"github.com/BruksfildServices01/agenda/internal/infra/repository"
	"github.com/BruksfildServices01/agenda/internal/models"
	"github.com/BruksfildServices01/agenda/internal/testutil"
	"github.com/BruksfildServices01/agenda/internal/timezone"
)

func TestCreateClient_NormalizesFields(t *testing.T) {
	db := testutil.NewDB(t)
	uc := NewCreateClient(repository.NewClientGormRepository(db), nil)

	c, err := uc.Execute(context.Background(), nil, domain.Input{
		Name:  "  Ana García ",
		Phone: "+52 (55) 1234-5678",
		Email: " Ana@Example.COM ",
	})
	require.NoError(t, err)

	assert.Equal(t, "Ana García", c.Name)
	assert.Equal(t, "525512345678", c.Phone)
	require.NotNil(t, c.Email)
	assert.Equal(t, "ana@example.com", *c.Email)
	assert.True(t, c.Active)

	var stored models.Client
	require.NoError(t, db.First(&stored, c.ID).Error)
	assert.Equal(t, "525512345678", stored.Phone)
}

func TestCreateClient_RejectsInvalid(t *testing.T) {
	db := testutil.NewDB(t)
	uc := NewCreateClient(repository.NewClientGormRepository(db), nil)

	_, err := uc.Execute(context.Background(), nil, domain.Input{Name: "Ana García", Phone: "12345"})
	assert.True(t, httperr.IsBusiness(err, "phone_too_short"))

	var count int64
	db.Model(&models.Client{}).Count(&count)
	assert.Zero(t, count)
}

func TestUpdateClient(t *testing.T) {
	ctx := context.Background()
	db := testutil.NewDB(t)
	repo := repository.NewClientGormRepository(db)
	ana := testutil.SeedClient(t, db, "Ana García", "5512345678")

	inactive := false
	c, err := NewUpdateClient(repo, nil).Execute(ctx, nil, ana.ID, domain.Input{
		Name:   "Ana García López",
		Phone:  "55 1234 5679",
		Active: &inactive,
	})
	require.NoError(t, err)
	assert.Equal(t, "5512345679", c.Phone)
	assert.False(t, c.Active)
	assert.Nil(t, c.Email)

	// omitted flag keeps the stored one
	c, err = NewUpdateClient(repo, nil).Execute(ctx, nil, ana.ID, domain.Input{
		Name:  "Ana García López",
		Phone: "5512345679",
	})
	require.NoError(t, err)
	assert.False(t, c.Active)

	_, err = NewUpdateClient(repo, nil).Execute(ctx, nil, 999, domain.Input{Name: "Ana", Phone: "5512345678"})
	assert.True(t, httperr.IsBusiness(err, "client_not_found"))
}

func TestGetAndListClients(t *testing.T) {
	ctx := context.Background()
	db := testutil.NewDB(t)
	repo := repository.NewClientGormRepository(db)
	ana := testutil.SeedClient(t, db, "Ana García", "5512345678")
	testutil.SeedClient(t, db, "Luis Pérez", "5587654321")
	testutil.SeedAppointment(t, db, ana.ID, "2025-06-01", "10:00", "completed", testutil.BoolPtr(true))
	testutil.SeedAppointment(t, db, ana.ID, "2025-06-10", "09:00", "pending", nil)

	got, err := NewGetClient(repo).Execute(ctx, ana.ID)
	require.NoError(t, err)
	require.Len(t, got.Appointments, 2)
	assert.Equal(t, "2025-06-10", got.Appointments[0].Date)

	all, err := NewListClients(repo).Execute(ctx, "")
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, "Ana García", all[0].Name)

	found, err := NewListClients(repo).Execute(ctx, " LUIS ")
	require.NoError(t, err)
	require.Len(t, found, 1)
	assert.Equal(t, "Luis Pérez", found[0].Name)

	byPhone, err := NewListClients(repo).Execute(ctx, "8765")
	require.NoError(t, err)
	require.Len(t, byPhone, 1)
	assert.Equal(t, "Luis Pérez", byPhone[0].Name)

	_, err = NewGetClient(repo).Execute(ctx, 999)
	assert.True(t, httperr.IsBusiness(err, "client_not_found"))
}

func TestDeleteClient_BlockedByFutureAppointment(t *testing.T) {
	ctx := context.Background()
	db := testutil.NewDB(t)
	repo := repository.NewClientGormRepository(db)
	uc := NewDeleteClient(repo, nil, timezone.Fixed(testutil.At(2025, 6, 9, 10, 0)))

	ana := testutil.SeedClient(t, db, "Ana García", "5512345678")
	testutil.SeedAppointment(t, db, ana.ID, "2025-06-10", "14:00", "pending", nil)
	testutil.SeedAppointment(t, db, ana.ID, "2025-06-11", "14:00", "cancelled", nil)
	testutil.SeedAppointment(t, db, ana.ID, "2025-06-01", "14:00", "pending", nil)

	err := uc.Execute(ctx, nil, ana.ID)
	be, ok := httperr.AsBusiness(err)
	require.True(t, ok, "got %v", err)
	assert.Equal(t, "client_has_future_appointments", be.Code)
	assert.Equal(t, int64(1), be.Details["count"])
	assert.Contains(t, be.Message, "1 cita(s)")

	var count int64
	db.Model(&models.Client{}).Where("id = ?", ana.ID).Count(&count)
	assert.Equal(t, int64(1), count)
}

func TestDeleteClient_RemovesHistory(t *testing.T) {
	ctx := context.Background()
	db := testutil.NewDB(t)
	repo := repository.NewClientGormRepository(db)
	uc := NewDeleteClient(repo, nil, timezone.Fixed(testutil.At(2025, 6, 9, 10, 0)))

	ana := testutil.SeedClient(t, db, "Ana García", "5512345678")
	testutil.SeedAppointment(t, db, ana.ID, "2025-06-01", "10:00", "completed", testutil.BoolPtr(true))
	testutil.SeedAppointment(t, db, ana.ID, "2025-06-20", "10:00", "cancelled", nil)

	require.NoError(t, uc.Execute(ctx, nil, ana.ID))

	var clients, apps int64
	db.Model(&models.Client{}).Count(&clients)
	db.Model(&models.Appointment{}).Count(&apps)
	assert.Zero(t, clients)
	assert.Zero(t, apps)

	err := uc.Execute(ctx, nil, ana.ID)
	assert.True(t, httperr.IsBusiness(err, "client_not_found"))
}

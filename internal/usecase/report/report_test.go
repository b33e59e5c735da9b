package report

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/BruksfildServices01/agenda/internal/httperr"
	"github.com/BruksfildServices01/agenda/internal/infra/repository"
	"github.com/BruksfildServices01/agenda/internal/models"
	"github.com/BruksfildServices01/agenda/internal/testutil"
	"github.com/BruksfildServices01/agenda/internal/timezone"
)

func boolPtr(b bool) *bool { return &b }

func TestSummarize(t *testing.T) {
	apps := []models.Appointment{
		{State: "completed", Attended: boolPtr(true)},
		{State: "completed", Attended: boolPtr(true)},
		{State: "no_show", Attended: boolPtr(false)},
		{State: "pending"},
		{State: "confirmed"},
		{State: "cancelled"},
	}

	s := Summarize(apps)
	assert.Equal(t, 6, s.Total)
	assert.Equal(t, 2, s.Attended)
	assert.Equal(t, 1, s.NotAttended)
	assert.Equal(t, 3, s.Unrecorded)
	assert.Equal(t, 33.3, s.AttendancePercentage)
	assert.Equal(t, map[string]int{
		"pending": 1, "confirmed": 1, "cancelled": 1, "completed": 2, "no_show": 1,
	}, s.ByState)
}

func TestSummarize_Empty(t *testing.T) {
	s := Summarize(nil)
	assert.Zero(t, s.Total)
	assert.Zero(t, s.AttendancePercentage)
	assert.Len(t, s.ByState, 5)
}

func TestOverdueUnrecorded(t *testing.T) {
	apps := []models.Appointment{
		{ID: 1, Date: "2025-06-01", State: "pending"},
		{ID: 2, Date: "2025-06-01", State: "confirmed"},
		{ID: 3, Date: "2025-06-01", State: "cancelled"},
		{ID: 4, Date: "2025-06-01", State: "completed", Attended: boolPtr(true)},
		{ID: 5, Date: "2025-06-09", State: "pending"},
	}

	got := OverdueUnrecorded(apps, "2025-06-09")
	require.Len(t, got, 2)
	assert.Equal(t, uint(1), got[0].ID)
	assert.Equal(t, uint(2), got[1].ID)
}

func TestAttendanceReport_Filters(t *testing.T) {
	ctx := context.Background()
	db := testutil.NewDB(t)
	ana := testutil.SeedClient(t, db, "Ana García", "5512345678")
	luis := testutil.SeedClient(t, db, "Luis Pérez", "5587654321")

	testutil.SeedAppointment(t, db, ana.ID, "2025-05-20", "10:00", "completed", testutil.BoolPtr(true))
	testutil.SeedAppointment(t, db, ana.ID, "2025-06-02", "10:00", "no_show", testutil.BoolPtr(false))
	testutil.SeedAppointment(t, db, ana.ID, "2025-06-05", "10:00", "confirmed", nil)
	testutil.SeedAppointment(t, db, luis.ID, "2025-06-06", "10:00", "completed", testutil.BoolPtr(true))
	testutil.SeedAppointment(t, db, ana.ID, "2025-06-20", "10:00", "pending", nil)

	uc := NewAttendance(
		repository.NewAppointmentGormRepository(db),
		timezone.Fixed(testutil.At(2025, 6, 9, 10, 0)),
	)

	r, err := uc.Execute(ctx, AttendanceInput{From: "2025-06-01", To: "2025-06-30", ClientID: ana.ID})
	require.NoError(t, err)
	assert.Equal(t, 3, r.Total)
	assert.Equal(t, 0, r.Attended)
	assert.Equal(t, 1, r.NotAttended)
	assert.Equal(t, 2, r.Unrecorded)
	assert.Equal(t, 0.0, r.AttendancePercentage)
	require.Len(t, r.Appointments, 3)
	assert.Equal(t, "2025-06-20", r.Appointments[0].Date)
	require.Len(t, r.OverdueUnrecorded, 1)
	assert.Equal(t, "2025-06-05", r.OverdueUnrecorded[0].Date)

	all, err := uc.Execute(ctx, AttendanceInput{})
	require.NoError(t, err)
	assert.Equal(t, 5, all.Total)
	assert.Equal(t, 40.0, all.AttendancePercentage)

	done, err := uc.Execute(ctx, AttendanceInput{State: "completed"})
	require.NoError(t, err)
	assert.Equal(t, 2, done.ByState["completed"])
	assert.Equal(t, 0, done.ByState["pending"])
}

func TestAttendanceReport_InvalidFilters(t *testing.T) {
	uc := NewAttendance(
		repository.NewAppointmentGormRepository(testutil.NewDB(t)),
		timezone.Fixed(testutil.At(2025, 6, 9, 10, 0)),
	)

	cases := map[string]AttendanceInput{
		"invalid_date":         {From: "01/06/2025"},
		"invalid_range":        {From: "2025-06-10", To: "2025-06-01"},
		"invalid_state_filter": {State: "archived"},
	}
	for code, in := range cases {
		_, err := uc.Execute(context.Background(), in)
		assert.True(t, httperr.IsBusiness(err, code), fmt.Sprintf("%s: got %v", code, err))
	}
}

func TestDashboard(t *testing.T) {
	db := testutil.NewDB(t)
	ana := testutil.SeedClient(t, db, "Ana García", "5512345678")
	luis := testutil.SeedClient(t, db, "Luis Pérez", "5587654321")
	require.NoError(t, db.Model(luis).Update("active", false).Error)

	testutil.SeedAppointment(t, db, ana.ID, "2025-06-01", "10:00", "pending", nil)
	testutil.SeedAppointment(t, db, ana.ID, "2025-06-09", "09:00", "confirmed", nil)
	testutil.SeedAppointment(t, db, ana.ID, "2025-06-09", "12:00", "cancelled", nil)
	testutil.SeedAppointment(t, db, ana.ID, "2025-06-12", "10:00", "pending", nil)
	testutil.SeedAppointment(t, db, ana.ID, "2025-06-16", "10:00", "confirmed", nil)
	testutil.SeedAppointment(t, db, ana.ID, "2025-06-17", "10:00", "pending", nil)
	testutil.SeedAppointment(t, db, ana.ID, "2025-05-30", "10:00", "confirmed", nil)

	uc := NewDashboard(
		repository.NewAppointmentGormRepository(db),
		repository.NewClientGormRepository(db),
		timezone.Fixed(testutil.At(2025, 6, 9, 10, 0)),
	)

	out, err := uc.Execute(context.Background())
	require.NoError(t, err)

	assert.Equal(t, "2025-06-09", out.Today)
	assert.Len(t, out.TodayList, 2)
	assert.Equal(t, int64(3), out.PendingCount)
	assert.Equal(t, int64(2), out.ConfirmedCount)
	assert.Equal(t, int64(1), out.ActiveClients)

	require.Len(t, out.Upcoming, 3)
	assert.Equal(t, "2025-06-09", out.Upcoming[0].Date)
	assert.Equal(t, "2025-06-12", out.Upcoming[1].Date)
	assert.Equal(t, "2025-06-16", out.Upcoming[2].Date)
}

package appointment

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domain "github.com/BruksfildServices01/agenda/internal/domain/appointment"
	"github.com/BruksfildServices01/agenda/internal/httperr"
	"github.com/BruksfildServices01/agenda/internal/infra/repository"
	"github.com/BruksfildServices01/agenda/internal/models"
	"github.com/BruksfildServices01/agenda/internal/testutil"
)

// racingRepo runs a competing write once, right after the first read of an
// appointment, the way a second request would land between read and write.
type racingRepo struct {
	domain.Repository
	race func()
}

func (r *racingRepo) interleave() {
	if r.race != nil {
		race := r.race
		r.race = nil
		race()
	}
}

func (r *racingRepo) GetAppointment(ctx context.Context, id uint) (*models.Appointment, error) {
	ap, err := r.Repository.GetAppointment(ctx, id)
	r.interleave()
	return ap, err
}

func (r *racingRepo) GetAppointmentByToken(ctx context.Context, token string) (*models.Appointment, error) {
	ap, err := r.Repository.GetAppointmentByToken(ctx, token)
	r.interleave()
	return ap, err
}

func TestUpdate_DoesNotReviveCancelledAppointment(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, testutil.At(2025, 6, 9, 10, 0))
	ana := testutil.SeedClient(t, f.db, "Ana García", "5512345678")

	ap, err := f.book(t, ana.ID, "2025-06-10", "14:00")
	require.NoError(t, err)

	clock := func() time.Time { return f.now }
	racing := &racingRepo{
		Repository: repository.NewAppointmentGormRepository(f.db),
		race: func() {
			_, err := f.respond.Execute(ctx, ap.Token, "cancel")
			require.NoError(t, err)
		},
	}
	update := NewUpdateAppointment(racing, nil, clock, domain.DefaultRules())

	got, err := update.Execute(ctx, UpdateAppointmentInput{
		AppointmentID: ap.ID,
		ClientID:      ana.ID,
		Date:          "2025-06-10",
		Time:          "14:00",
		Reason:        "Consulta",
		Notes:         "Traer estudios",
	})
	require.NoError(t, err)
	assert.Equal(t, "cancelled", got.State)
	assert.Equal(t, "Traer estudios", got.Notes)

	stored, err := f.get.Execute(ctx, ap.ID)
	require.NoError(t, err)
	assert.Equal(t, "cancelled", stored.State)
	assert.Equal(t, "Traer estudios", stored.Notes)
}

func TestAttendance_RecordedExactlyOnceUnderRace(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, testutil.At(2025, 6, 9, 10, 0))
	ana := testutil.SeedClient(t, f.db, "Ana García", "5512345678")

	ap, err := f.book(t, ana.ID, "2025-06-10", "14:00")
	require.NoError(t, err)
	f.now = testutil.At(2025, 6, 11, 9, 0)

	clock := func() time.Time { return f.now }
	racing := &racingRepo{
		Repository: repository.NewAppointmentGormRepository(f.db),
		race: func() {
			_, err := f.attendance.Execute(ctx, nil, ap.ID, false)
			require.NoError(t, err)
		},
	}
	attendance := NewRecordAttendance(racing, nil, clock)

	_, err = attendance.Execute(ctx, nil, ap.ID, true)
	assert.True(t, httperr.IsBusiness(err, "attendance_already_recorded"), "got %v", err)

	stored, err := f.get.Execute(ctx, ap.ID)
	require.NoError(t, err)
	assert.Equal(t, "no_show", stored.State)
	require.NotNil(t, stored.Attended)
	assert.False(t, *stored.Attended)
}

func TestRespond_ConfirmLosesToConcurrentCancel(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, testutil.At(2025, 6, 9, 10, 0))
	ana := testutil.SeedClient(t, f.db, "Ana García", "5512345678")

	ap, err := f.book(t, ana.ID, "2025-06-10", "14:00")
	require.NoError(t, err)

	racing := &racingRepo{
		Repository: repository.NewAppointmentGormRepository(f.db),
		race: func() {
			_, err := f.respond.Execute(ctx, ap.Token, "cancel")
			require.NoError(t, err)
		},
	}
	respond := NewRespondByToken(racing, nil, func() time.Time { return f.now })

	out, err := respond.Execute(ctx, ap.Token, "confirm")
	require.NoError(t, err)
	assert.Equal(t, domain.OutcomeInfo, out.Outcome)
	assert.Equal(t, "already_cancelled", out.Code)
	assert.False(t, out.Changed)

	stored, err := f.get.Execute(ctx, ap.ID)
	require.NoError(t, err)
	assert.Equal(t, "cancelled", stored.State)
}

func TestRespond_CancelAfterConcurrentConfirmStillCancels(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, testutil.At(2025, 6, 9, 10, 0))
	ana := testutil.SeedClient(t, f.db, "Ana García", "5512345678")

	ap, err := f.book(t, ana.ID, "2025-06-10", "14:00")
	require.NoError(t, err)

	racing := &racingRepo{
		Repository: repository.NewAppointmentGormRepository(f.db),
		race: func() {
			_, err := f.respond.Execute(ctx, ap.Token, "confirm")
			require.NoError(t, err)
		},
	}
	respond := NewRespondByToken(racing, nil, func() time.Time { return f.now })

	out, err := respond.Execute(ctx, ap.Token, "cancel")
	require.NoError(t, err)
	assert.Equal(t, "confirmed_cancelled", out.Code)
	assert.True(t, out.Changed)
	assert.Equal(t, "cancelled", out.Appointment.State)

	stored, err := f.get.Execute(ctx, ap.ID)
	require.NoError(t, err)
	assert.Equal(t, "cancelled", stored.State)
}

package appointment

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/BruksfildServices01/agenda/internal/httperr"
	"github.com/BruksfildServices01/agenda/internal/models"
)

func boolPtr(b bool) *bool { return &b }

func TestRespond_Confirm(t *testing.T) {
	now := time.Date(2025, 6, 9, 10, 0, 0, 0, mexico(t))
	ap := &models.Appointment{Date: "2025-06-10", Time: "14:00", State: "pending"}

	res := Respond(ap, ActionConfirm, now)
	assert.Equal(t, OutcomeSuccess, res.Outcome)
	assert.True(t, res.Changed)
	assert.Equal(t, "confirmed", ap.State)

	res = Respond(ap, ActionConfirm, now)
	assert.Equal(t, OutcomeInfo, res.Outcome)
	assert.Equal(t, "already_confirmed", res.Code)
	assert.False(t, res.Changed)
	assert.Equal(t, "confirmed", ap.State)
}

func TestRespond_Cancel(t *testing.T) {
	now := time.Date(2025, 6, 9, 10, 0, 0, 0, mexico(t))

	pending := &models.Appointment{Date: "2025-06-10", Time: "14:00", State: "pending"}
	res := Respond(pending, ActionCancel, now)
	assert.Equal(t, OutcomeDanger, res.Outcome)
	assert.Equal(t, "cancelled", res.Code)
	assert.Equal(t, "cancelled", pending.State)

	confirmed := &models.Appointment{Date: "2025-06-10", Time: "14:00", State: "confirmed"}
	res = Respond(confirmed, ActionCancel, now)
	assert.Equal(t, "confirmed_cancelled", res.Code)
	assert.Equal(t, "cancelled", confirmed.State)

	res = Respond(confirmed, ActionConfirm, now)
	assert.Equal(t, OutcomeInfo, res.Outcome)
	assert.Equal(t, "already_cancelled", res.Code)
	assert.False(t, res.Changed)
}

func TestRespond_RejectsTerminalAndPast(t *testing.T) {
	now := time.Date(2025, 6, 9, 10, 0, 0, 0, mexico(t))

	for _, s := range []Status{StatusCancelled, StatusCompleted, StatusNoShow} {
		ap := &models.Appointment{Date: "2025-06-10", Time: "14:00", State: string(s)}
		res := Respond(ap, ActionConfirm, now)
		assert.Equal(t, OutcomeInfo, res.Outcome, s)
		assert.False(t, res.Changed)
		assert.Equal(t, string(s), ap.State)
	}

	past := &models.Appointment{Date: "2025-06-09", Time: "09:59", State: "pending"}
	for _, a := range []Action{ActionConfirm, ActionCancel} {
		res := Respond(past, a, now)
		assert.Equal(t, OutcomeWarning, res.Outcome)
		assert.Equal(t, "appointment_in_past", res.Code)
		assert.Equal(t, "pending", past.State)
	}
}

func TestParseAction(t *testing.T) {
	a, err := ParseAction("cancel")
	require.NoError(t, err)
	assert.Equal(t, ActionCancel, a)

	_, err = ParseAction("complete")
	assert.True(t, httperr.IsBusiness(err, "invalid_action"))
}

func TestRecordAttendance(t *testing.T) {
	now := time.Date(2025, 6, 11, 9, 0, 0, 0, mexico(t))

	ap := &models.Appointment{Date: "2025-06-10", Time: "14:00", State: "confirmed"}
	require.NoError(t, RecordAttendance(ap, false, now))
	assert.Equal(t, "no_show", ap.State)
	require.NotNil(t, ap.Attended)
	assert.False(t, *ap.Attended)

	err := RecordAttendance(ap, true, now)
	assert.True(t, httperr.IsBusiness(err, "attendance_already_recorded"))
	assert.Equal(t, "no_show", ap.State)
	assert.False(t, *ap.Attended)

	today := &models.Appointment{Date: "2025-06-11", Time: "18:00", State: "pending"}
	require.NoError(t, RecordAttendance(today, true, now))
	assert.Equal(t, "completed", today.State)

	future := &models.Appointment{Date: "2025-06-12", Time: "08:00", State: "pending"}
	err = RecordAttendance(future, true, now)
	assert.True(t, httperr.IsBusiness(err, "attendance_future_date"))
	assert.Nil(t, future.Attended)
	assert.Equal(t, "pending", future.State)
}

func TestCheckConsistency(t *testing.T) {
	assert.NoError(t, CheckConsistency(StatusPending, nil))
	assert.NoError(t, CheckConsistency(StatusCompleted, boolPtr(true)))
	assert.NoError(t, CheckConsistency(StatusCompleted, boolPtr(false)))
	assert.NoError(t, CheckConsistency(StatusNoShow, boolPtr(false)))

	assert.True(t, httperr.IsBusiness(CheckConsistency(StatusCompleted, nil), "completed_requires_attendance"))
	assert.True(t, httperr.IsBusiness(CheckConsistency(StatusNoShow, nil), "no_show_requires_absence"))
	assert.True(t, httperr.IsBusiness(CheckConsistency(StatusNoShow, boolPtr(true)), "no_show_requires_absence"))
	assert.True(t, httperr.IsBusiness(CheckConsistency("archived", nil), "invalid_state"))
}

func TestCanDelete(t *testing.T) {
	assert.NoError(t, CanDelete(&models.Appointment{State: "pending"}))
	assert.NoError(t, CanDelete(&models.Appointment{State: "no_show", Attended: boolPtr(false)}))

	err := CanDelete(&models.Appointment{State: "completed", Attended: boolPtr(true)})
	assert.True(t, httperr.IsBusiness(err, "appointment_has_history"))
}

func TestParseStatus(t *testing.T) {
	s, err := ParseStatus("")
	require.NoError(t, err)
	assert.Equal(t, Status(""), s)

	s, err = ParseStatus("no_show")
	require.NoError(t, err)
	assert.True(t, s.IsTerminal())

	_, err = ParseStatus("done")
	assert.Error(t, err)
}

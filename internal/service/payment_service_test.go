package service

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Dojohubcloud/Ossjiujitsu/internal/messaging"
	"github.com/Dojohubcloud/Ossjiujitsu/internal/models"
	appErrors "github.com/Dojohubcloud/Ossjiujitsu/pkg/errors"
)

func TestPaymentListAttachesOldestPending(t *testing.T) {
	doc := emptyDocument("pw")
	doc.Students = []models.Student{{ID: "s1", Name: "Ana", ProfessorID: "st1"}}
	doc.Payments = []models.PaymentRecord{
		{ID: "p1", StudentID: "s1", Date: "2026-08-01", Status: models.PaymentPending},
		{ID: "p2", StudentID: "s1", Date: "2026-07-01", Status: models.PaymentPending},
	}
	svc := NewPaymentService(newMemStore(doc), messaging.NewLinkBuilder(""), nil)

	rows := svc.List(staffTestSession("st1", "Rafael"))
	require.Len(t, rows, 1)
	require.NotNil(t, rows[0].Pending)
	assert.Equal(t, "p2", rows[0].Pending.ID)
}

func TestSettleOutOfScopeIsNotFound(t *testing.T) {
	doc := emptyDocument("pw")
	doc.Students = []models.Student{{ID: "s1", Name: "Ana", ProfessorID: "st2"}}
	doc.Payments = []models.PaymentRecord{{ID: "p1", StudentID: "s1", Date: "2026-08-01", Status: models.PaymentPending}}
	store := newMemStore(doc)
	svc := NewPaymentService(store, messaging.NewLinkBuilder(""), nil)

	err := svc.Settle(staffTestSession("st1", "Rafael"), "p1")
	assert.True(t, appErrors.HasCode(err, appErrors.ErrNotFound))
	assert.Equal(t, models.PaymentPending, store.Snapshot().Payments[0].Status)
}

func TestReminderLinkBuildsWhatsAppURL(t *testing.T) {
	doc := emptyDocument("pw")
	doc.Students = []models.Student{{ID: "s1", Name: "Ana", Phone: "(11) 98888-7777", ProfessorID: "st1"}}
	doc.Payments = []models.PaymentRecord{{ID: "p1", StudentID: "s1", Date: "2026-08-01", Status: models.PaymentPending}}
	svc := NewPaymentService(newMemStore(doc), messaging.NewLinkBuilder("55"), nil)

	link, err := svc.ReminderLink(staffTestSession("st1", "Rafael"), "s1")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(link.URL, "https://wa.me/5511988887777?text="))
	assert.Contains(t, link.URL, "Ana")
}

func TestReminderLinkRequiresPendingChargeAndPhone(t *testing.T) {
	doc := emptyDocument("pw")
	doc.Students = []models.Student{
		{ID: "s1", Name: "Ana", Phone: "11988887777", ProfessorID: "st1"},
		{ID: "s2", Name: "Bia", ProfessorID: "st1"},
	}
	doc.Payments = []models.PaymentRecord{{ID: "p2", StudentID: "s2", Date: "2026-08-01", Status: models.PaymentPending}}
	svc := NewPaymentService(newMemStore(doc), messaging.NewLinkBuilder("55"), nil)

	// no pending charge
	_, err := svc.ReminderLink(staffTestSession("st1", "Rafael"), "s1")
	assert.True(t, appErrors.HasCode(err, appErrors.ErrConflict))

	// pending charge but no phone
	_, err = svc.ReminderLink(staffTestSession("st1", "Rafael"), "s2")
	assert.True(t, appErrors.HasCode(err, appErrors.ErrConflict))
}

// Exercises the common teaching day: enroll, settle the first charge, then
// mark and unmark presence.
func TestStaffTeachingDayWorkflow(t *testing.T) {
	store := newMemStore(emptyDocument("pw"))
	session := staffTestSession("st7", "Rafael")

	students := NewStudentService(store, nil, nil, 150)
	payments := NewPaymentService(store, messaging.NewLinkBuilder(""), nil)
	attendance := NewAttendanceService(store, nil, "GI")

	student, err := students.Enroll(session, EnrollStudentRequest{Name: "Caio"})
	require.NoError(t, err)

	rows := payments.List(session)
	require.Len(t, rows, 1)
	require.NotNil(t, rows[0].Pending)
	require.NoError(t, payments.Settle(session, rows[0].Pending.ID))
	assert.Nil(t, payments.List(session)[0].Pending)

	toggled, err := attendance.Toggle(session, student.ID)
	require.NoError(t, err)
	assert.True(t, toggled.Present)

	toggled, err = attendance.Toggle(session, student.ID)
	require.NoError(t, err)
	assert.False(t, toggled.Present)
	assert.Empty(t, store.Snapshot().Attendance)
}

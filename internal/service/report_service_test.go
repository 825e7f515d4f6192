package service

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Dojohubcloud/Ossjiujitsu/internal/models"
	appErrors "github.com/Dojohubcloud/Ossjiujitsu/pkg/errors"
)

func reportFixture() models.Document {
	doc := emptyDocument("pw")
	doc.Students = []models.Student{
		{ID: "s1", Name: "Ana", Belt: models.BeltBlue, Stripes: 2, Phone: "11988887777", JoinDate: "2025-01-10", LastPaymentDate: "2026-08-01", ProfessorID: "st1"},
		{ID: "s2", Name: "Bia", Belt: models.BeltWhite, JoinDate: "2026-02-01", ProfessorID: "st2"},
	}
	doc.Staff = []models.StaffMember{{ID: "st1", Name: "Rafael"}, {ID: "st2", Name: "Marina"}}
	doc.Payments = []models.PaymentRecord{
		{ID: "p1", StudentID: "s1", Amount: 150, Date: "2026-08-01", Status: models.PaymentPending},
	}
	return doc
}

func TestRosterReportCSV(t *testing.T) {
	svc := NewReportService(newMemStore(reportFixture()))

	report, err := svc.Roster(adminTestSession(), FormatCSV)
	require.NoError(t, err)
	assert.Equal(t, "text/csv", report.ContentType)
	assert.True(t, strings.HasPrefix(report.Filename, "relatorio_alunos_"))

	body := string(report.Payload)
	lines := strings.Split(strings.TrimSpace(body), "\n")
	require.Len(t, lines, 3)
	assert.Contains(t, lines[0], "Nome")
	assert.Contains(t, lines[1], "Ana")
	assert.Contains(t, lines[1], "Azul")
	assert.Contains(t, lines[1], "Rafael")
}

func TestRosterReportScopedForStaff(t *testing.T) {
	svc := NewReportService(newMemStore(reportFixture()))

	report, err := svc.Roster(staffTestSession("st2", "Marina"), FormatCSV)
	require.NoError(t, err)
	body := string(report.Payload)
	assert.Contains(t, body, "Bia")
	assert.NotContains(t, body, "Ana")
}

func TestFinanceReportMarksPending(t *testing.T) {
	svc := NewReportService(newMemStore(reportFixture()))

	report, err := svc.Finance(adminTestSession(), FormatCSV)
	require.NoError(t, err)
	body := string(report.Payload)
	assert.Contains(t, body, "Pendente")
	assert.Contains(t, body, "150.00")
	assert.Contains(t, body, "Em dia")
}

func TestReportPDFFormat(t *testing.T) {
	svc := NewReportService(newMemStore(reportFixture()))

	report, err := svc.Roster(adminTestSession(), FormatPDF)
	require.NoError(t, err)
	assert.Equal(t, "application/pdf", report.ContentType)
	assert.True(t, strings.HasSuffix(report.Filename, ".pdf"))
	assert.True(t, strings.HasPrefix(string(report.Payload), "%PDF"))
}

func TestReportUnknownFormat(t *testing.T) {
	svc := NewReportService(newMemStore(reportFixture()))
	_, err := svc.Roster(adminTestSession(), "xlsx")
	assert.True(t, appErrors.HasCode(err, appErrors.ErrValidation))
}

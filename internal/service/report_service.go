package service

import (
	"fmt"
	"sort"
	"strings"

	"github.com/Dojohubcloud/Ossjiujitsu/internal/document"
	"github.com/Dojohubcloud/Ossjiujitsu/internal/models"
	appErrors "github.com/Dojohubcloud/Ossjiujitsu/pkg/errors"
	"github.com/Dojohubcloud/Ossjiujitsu/pkg/export"
)

// ReportFormat selects the rendered output type.
type ReportFormat string

const (
	FormatCSV ReportFormat = "csv"
	FormatPDF ReportFormat = "pdf"
)

// Report is a rendered document ready for download.
type Report struct {
	Filename    string
	ContentType string
	Payload     []byte
}

// ReportService renders the roster and finance tables. Both respect the
// session's visibility scope, so a staff report only ever contains their
// own students.
type ReportService struct {
	store documentStore
	csv   *export.CSVExporter
	pdf   *export.PDFExporter
}

// NewReportService constructs the service.
func NewReportService(store documentStore) *ReportService {
	return &ReportService{
		store: store,
		csv:   export.NewCSVExporter(),
		pdf:   export.NewPDFExporter(),
	}
}

// Roster renders the student roster for the session's scope.
func (s *ReportService) Roster(session models.Session, format ReportFormat) (*Report, error) {
	doc := s.store.Snapshot()
	students := document.ScopedStudents(doc, session)
	sort.Slice(students, func(i, j int) bool { return students[i].Name < students[j].Name })

	data := export.Dataset{Headers: []string{"Nome", "Faixa", "Graus", "Telefone", "Professor", "Matrícula"}}
	for _, st := range students {
		data.Rows = append(data.Rows, map[string]string{
			"Nome":      st.Name,
			"Faixa":     string(st.Belt),
			"Graus":     fmt.Sprintf("%d", st.Stripes),
			"Telefone":  st.Phone,
			"Professor": document.ProfessorName(doc, st.ProfessorID),
			"Matrícula": st.JoinDate,
		})
	}
	return s.render("alunos", "Relatório de Alunos", data, format)
}

// Finance renders one row per scoped student with their oldest pending
// charge, mirroring the monthly-fee screen.
func (s *ReportService) Finance(session models.Session, format ReportFormat) (*Report, error) {
	doc := s.store.Snapshot()
	students := document.ScopedStudents(doc, session)
	sort.Slice(students, func(i, j int) bool { return students[i].Name < students[j].Name })

	data := export.Dataset{Headers: []string{"Nome", "Situação", "Valor", "Vencimento", "Último Pagamento"}}
	for _, st := range students {
		row := map[string]string{
			"Nome":             st.Name,
			"Situação":         "Em dia",
			"Último Pagamento": st.LastPaymentDate,
		}
		if pending, ok := document.OldestPending(doc, st.ID); ok {
			row["Situação"] = "Pendente"
			row["Valor"] = fmt.Sprintf("%.2f", pending.Amount)
			row["Vencimento"] = pending.Date
		}
		data.Rows = append(data.Rows, row)
	}
	return s.render("financeiro", "Relatório Financeiro", data, format)
}

func (s *ReportService) render(slug, title string, data export.Dataset, format ReportFormat) (*Report, error) {
	today := models.Today()
	switch format {
	case FormatCSV, "":
		payload, err := s.csv.Render(data)
		if err != nil {
			return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to render csv report")
		}
		return &Report{
			Filename:    fmt.Sprintf("relatorio_%s_%s.csv", slug, today),
			ContentType: "text/csv",
			Payload:     payload,
		}, nil
	case FormatPDF:
		payload, err := s.pdf.Render(data, title)
		if err != nil {
			return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to render pdf report")
		}
		return &Report{
			Filename:    fmt.Sprintf("relatorio_%s_%s.pdf", slug, today),
			ContentType: "application/pdf",
			Payload:     payload,
		}, nil
	default:
		return nil, appErrors.Clone(appErrors.ErrValidation, fmt.Sprintf("unsupported report format %q", strings.TrimSpace(string(format))))
	}
}

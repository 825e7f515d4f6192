package service

import (
	"fmt"
	"sort"

	"go.uber.org/zap"

	"github.com/Dojohubcloud/Ossjiujitsu/internal/document"
	"github.com/Dojohubcloud/Ossjiujitsu/internal/messaging"
	"github.com/Dojohubcloud/Ossjiujitsu/internal/models"
	appErrors "github.com/Dojohubcloud/Ossjiujitsu/pkg/errors"
)

// ChargeView is one row of the monthly-fee screen: a student and their
// outstanding charge, when any.
type ChargeView struct {
	Student       models.Student        `json:"student"`
	ProfessorName string                `json:"professorName"`
	Pending       *models.PaymentRecord `json:"pending,omitempty"`
}

// ReminderLink is a ready-to-open WhatsApp deep link for a pending charge.
type ReminderLink struct {
	StudentID string `json:"studentId"`
	URL       string `json:"url"`
}

// PaymentService exposes the scoped financial view and the settle flow.
type PaymentService struct {
	store  documentStore
	links  *messaging.LinkBuilder
	logger *zap.Logger
}

// NewPaymentService constructs the service.
func NewPaymentService(store documentStore, links *messaging.LinkBuilder, logger *zap.Logger) *PaymentService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &PaymentService{store: store, links: links, logger: logger}
}

// List returns one row per scoped student, with their oldest pending charge
// attached when one exists.
func (s *PaymentService) List(session models.Session) []ChargeView {
	doc := s.store.Snapshot()
	scoped := document.ScopedStudents(doc, session)

	out := make([]ChargeView, 0, len(scoped))
	for _, st := range scoped {
		view := ChargeView{Student: st, ProfessorName: document.ProfessorName(doc, st.ProfessorID)}
		if pending, ok := document.OldestPending(doc, st.ID); ok {
			p := pending
			view.Pending = &p
		}
		out = append(out, view)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Student.Name < out[j].Student.Name })
	return out
}

// Settle marks a payment in the session's scope as paid. Settling a record
// that is already paid is a no-op, never a modification.
func (s *PaymentService) Settle(session models.Session, paymentID string) error {
	_, err := s.store.Apply(func(doc models.Document) (models.Document, error) {
		payment, ok := doc.FindPayment(paymentID)
		if !ok || !document.InScope(doc, session, payment.StudentID) {
			return doc, appErrors.Clone(appErrors.ErrNotFound, "payment not found")
		}
		return document.SettlePayment(doc, paymentID)
	})
	if err != nil {
		return err
	}
	s.logger.Info("payment settled", zap.String("payment_id", paymentID))
	return nil
}

// ReminderLink builds the WhatsApp reminder for a student's pending charge.
func (s *PaymentService) ReminderLink(session models.Session, studentID string) (*ReminderLink, error) {
	doc := s.store.Snapshot()
	if !document.InScope(doc, session, studentID) {
		return nil, appErrors.Clone(appErrors.ErrNotFound, "student not found")
	}
	student, _ := doc.FindStudent(studentID)
	if _, ok := document.OldestPending(doc, studentID); !ok {
		return nil, appErrors.Clone(appErrors.ErrConflict, "student has no pending charge")
	}
	if student.Phone == "" {
		return nil, appErrors.Clone(appErrors.ErrConflict, "student has no phone number")
	}

	msg := fmt.Sprintf("OSS %s! Passando para lembrar da mensalidade. Forte abraço!", student.Name)
	url, err := s.links.Build(student.Phone, msg)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "student phone number is not linkable")
	}
	return &ReminderLink{StudentID: studentID, URL: url}, nil
}

package service

import (
	"sort"
	"strings"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/Dojohubcloud/Ossjiujitsu/internal/document"
	"github.com/Dojohubcloud/Ossjiujitsu/internal/models"
	appErrors "github.com/Dojohubcloud/Ossjiujitsu/pkg/errors"
)

// documentStore is the mutation surface services share: read a snapshot or
// apply one pure transform that is persisted before it becomes visible.
type documentStore interface {
	Snapshot() models.Document
	Apply(mutate func(models.Document) (models.Document, error)) (models.Document, error)
}

// EnrollStudentRequest is the enroll payload.
type EnrollStudentRequest struct {
	Name    string `json:"name" validate:"required"`
	Belt    string `json:"belt" validate:"omitempty,beltrank"`
	Stripes int    `json:"stripes" validate:"min=0,max=4"`
	Phone   string `json:"phone"`
}

// StudentView decorates a student with the resolved professor name.
type StudentView struct {
	models.Student
	ProfessorName string `json:"professorName"`
}

// StudentService lists and mutates the roster within a session's scope.
type StudentService struct {
	store     documentStore
	validator *validator.Validate
	logger    *zap.Logger
	fee       float64
}

// NewStudentService constructs the service. fee is the default monthly
// charge attached to every enrollment.
func NewStudentService(store documentStore, validate *validator.Validate, logger *zap.Logger, fee float64) *StudentService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	registerEnumValidators(validate)
	return &StudentService{store: store, validator: validate, logger: logger, fee: fee}
}

// List returns the students visible to the session, optionally filtered by
// a case-insensitive name search, sorted by name.
func (s *StudentService) List(session models.Session, search string) []StudentView {
	doc := s.store.Snapshot()
	scoped := document.ScopedStudents(doc, session)

	search = strings.ToLower(strings.TrimSpace(search))
	out := make([]StudentView, 0, len(scoped))
	for _, st := range scoped {
		if search != "" && !strings.Contains(strings.ToLower(st.Name), search) {
			continue
		}
		out = append(out, StudentView{Student: st, ProfessorName: document.ProfessorName(doc, st.ProfessorID)})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

// Enroll creates a student owned by the acting session together with the
// mandatory first pending charge.
func (s *StudentService) Enroll(session models.Session, req EnrollStudentRequest) (*models.Student, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid enrollment payload")
	}

	var created models.Student
	_, err := s.store.Apply(func(doc models.Document) (models.Document, error) {
		next, student, err := document.EnrollStudent(doc, document.EnrollInput{
			Name:    req.Name,
			Belt:    models.BeltRank(req.Belt),
			Stripes: req.Stripes,
			Phone:   req.Phone,
		}, session.ID, s.fee, models.Today())
		created = student
		return next, err
	})
	if err != nil {
		return nil, err
	}
	s.logger.Info("student enrolled", zap.String("student_id", created.ID), zap.String("owner_id", session.ID))
	return &created, nil
}

// Remove deletes a student within the session's scope, cascading to the
// student's attendance and payment records.
func (s *StudentService) Remove(session models.Session, studentID string) error {
	_, err := s.store.Apply(func(doc models.Document) (models.Document, error) {
		if !document.InScope(doc, session, studentID) {
			return doc, appErrors.Clone(appErrors.ErrNotFound, "student not found")
		}
		return document.RemoveStudent(doc, studentID)
	})
	if err != nil {
		return err
	}
	s.logger.Info("student removed", zap.String("student_id", studentID))
	return nil
}

// registerEnumValidators installs the closed-set validators shared by
// request payloads. Registering twice on the same validator is harmless.
func registerEnumValidators(v *validator.Validate) {
	_ = v.RegisterValidation("beltrank", func(fl validator.FieldLevel) bool {
		return models.BeltRank(fl.Field().String()).Valid()
	})
	_ = v.RegisterValidation("staffrole", func(fl validator.FieldLevel) bool {
		return models.StaffRole(fl.Field().String()).Valid()
	})
	_ = v.RegisterValidation("anncategory", func(fl validator.FieldLevel) bool {
		return models.AnnouncementCategory(fl.Field().String()).Valid()
	})
}

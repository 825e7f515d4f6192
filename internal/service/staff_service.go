package service

import (
	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/Dojohubcloud/Ossjiujitsu/internal/document"
	"github.com/Dojohubcloud/Ossjiujitsu/internal/models"
	appErrors "github.com/Dojohubcloud/Ossjiujitsu/pkg/errors"
)

// RegisterStaffRequest is the administrator-only registration payload.
type RegisterStaffRequest struct {
	Name      string `json:"name" validate:"required"`
	Role      string `json:"role" validate:"omitempty,staffrole"`
	Phone     string `json:"phone"`
	Specialty string `json:"specialty"`
	Password  string `json:"password" validate:"required"`
}

// StaffView is a staff member without the stored credential.
type StaffView struct {
	ID        string           `json:"id"`
	Name      string           `json:"name"`
	Role      models.StaffRole `json:"role"`
	Phone     string           `json:"phone"`
	Specialty string           `json:"specialty"`
	Active    bool             `json:"active"`
}

// StaffService manages the teaching team. Every operation here is
// administrator-only; the route group enforces it.
type StaffService struct {
	store     documentStore
	validator *validator.Validate
	logger    *zap.Logger
}

// NewStaffService constructs the service.
func NewStaffService(store documentStore, validate *validator.Validate, logger *zap.Logger) *StaffService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	registerEnumValidators(validate)
	return &StaffService{store: store, validator: validate, logger: logger}
}

// List returns every staff member, credentials stripped.
func (s *StaffService) List() []StaffView {
	doc := s.store.Snapshot()
	out := make([]StaffView, 0, len(doc.Staff))
	for _, m := range doc.Staff {
		out = append(out, staffView(m))
	}
	return out
}

// Register creates an active staff account.
func (s *StaffService) Register(req RegisterStaffRequest) (*StaffView, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid staff payload")
	}
	hash, err := document.HashPassword(req.Password)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to hash staff password")
	}

	var created models.StaffMember
	_, err = s.store.Apply(func(doc models.Document) (models.Document, error) {
		next, member, err := document.RegisterStaff(doc, document.RegisterStaffInput{
			Name:         req.Name,
			Role:         models.StaffRole(req.Role),
			Phone:        req.Phone,
			Specialty:    req.Specialty,
			PasswordHash: hash,
		})
		created = member
		return next, err
	})
	if err != nil {
		return nil, err
	}
	s.logger.Info("staff member registered", zap.String("staff_id", created.ID))
	view := staffView(created)
	return &view, nil
}

// ToggleLock flips a staff account's active flag. Open sessions survive;
// the lock bites on the next login.
func (s *StaffService) ToggleLock(staffID string) (*StaffView, error) {
	var updated models.StaffMember
	_, err := s.store.Apply(func(doc models.Document) (models.Document, error) {
		next, member, err := document.ToggleStaffLock(doc, staffID)
		updated = member
		return next, err
	})
	if err != nil {
		return nil, err
	}
	s.logger.Info("staff lock toggled", zap.String("staff_id", staffID), zap.Bool("active", updated.Active))
	view := staffView(updated)
	return &view, nil
}

func staffView(m models.StaffMember) StaffView {
	return StaffView{
		ID:        m.ID,
		Name:      m.Name,
		Role:      m.Role,
		Phone:     m.Phone,
		Specialty: m.Specialty,
		Active:    m.Active,
	}
}

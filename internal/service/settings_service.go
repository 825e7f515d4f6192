package service

import (
	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/Dojohubcloud/Ossjiujitsu/internal/document"
	"github.com/Dojohubcloud/Ossjiujitsu/internal/models"
	appErrors "github.com/Dojohubcloud/Ossjiujitsu/pkg/errors"
)

// UpdateSettingsRequest replaces the settings block wholesale. An empty
// master password is rejected so the administrator can never lock
// themselves out with a blank secret.
type UpdateSettingsRequest struct {
	AcademyName    string `json:"academyName" validate:"required"`
	AccessPassword string `json:"accessPassword" validate:"required"`
}

// SettingsView exposes settings without the master password hash.
type SettingsView struct {
	AcademyName string `json:"academyName"`
}

// SettingsService manages the administrator settings singleton.
type SettingsService struct {
	store     documentStore
	validator *validator.Validate
	logger    *zap.Logger
}

// NewSettingsService constructs the service.
func NewSettingsService(store documentStore, validate *validator.Validate, logger *zap.Logger) *SettingsService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &SettingsService{store: store, validator: validate, logger: logger}
}

// Get returns the display settings.
func (s *SettingsService) Get() SettingsView {
	doc := s.store.Snapshot()
	return SettingsView{AcademyName: doc.Settings.AcademyName}
}

// Update replaces the settings singleton.
func (s *SettingsService) Update(req UpdateSettingsRequest) (*SettingsView, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid settings payload")
	}
	hash, err := document.HashPassword(req.AccessPassword)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to hash master password")
	}

	var updated models.Settings
	_, err = s.store.Apply(func(doc models.Document) (models.Document, error) {
		next, err := document.UpdateSettings(doc, document.UpdateSettingsInput{
			AcademyName:        req.AcademyName,
			AccessPasswordHash: hash,
		})
		updated = next.Settings
		return next, err
	})
	if err != nil {
		return nil, err
	}
	s.logger.Info("settings updated", zap.String("academy_name", updated.AcademyName))
	return &SettingsView{AcademyName: updated.AcademyName}, nil
}

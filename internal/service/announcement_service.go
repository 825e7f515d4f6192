package service

import (
	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/Dojohubcloud/Ossjiujitsu/internal/document"
	"github.com/Dojohubcloud/Ossjiujitsu/internal/models"
	appErrors "github.com/Dojohubcloud/Ossjiujitsu/pkg/errors"
)

// PostAnnouncementRequest is the board post payload.
type PostAnnouncementRequest struct {
	Title    string `json:"title" validate:"required"`
	Content  string `json:"content" validate:"required"`
	Category string `json:"category" validate:"omitempty,anncategory"`
}

// AnnouncementService manages the board. Reads are open to any session;
// mutations are administrator-only, enforced at the route group.
type AnnouncementService struct {
	store     documentStore
	validator *validator.Validate
	logger    *zap.Logger
}

// NewAnnouncementService constructs the service.
func NewAnnouncementService(store documentStore, validate *validator.Validate, logger *zap.Logger) *AnnouncementService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	registerEnumValidators(validate)
	return &AnnouncementService{store: store, validator: validate, logger: logger}
}

// List returns the board, most recent first.
func (s *AnnouncementService) List() []models.Announcement {
	doc := s.store.Snapshot()
	return doc.Announcements
}

// Post prepends a new announcement.
func (s *AnnouncementService) Post(req PostAnnouncementRequest) (*models.Announcement, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid announcement payload")
	}

	var created models.Announcement
	_, err := s.store.Apply(func(doc models.Document) (models.Document, error) {
		next, post, err := document.PostAnnouncement(doc, document.PostAnnouncementInput{
			Title:    req.Title,
			Content:  req.Content,
			Category: models.AnnouncementCategory(req.Category),
		}, models.Today())
		created = post
		return next, err
	})
	if err != nil {
		return nil, err
	}
	s.logger.Info("announcement posted", zap.String("announcement_id", created.ID))
	return &created, nil
}

// Delete removes a post by id. Deleting an absent id succeeds silently.
func (s *AnnouncementService) Delete(announcementID string) error {
	_, err := s.store.Apply(func(doc models.Document) (models.Document, error) {
		return document.DeleteAnnouncement(doc, announcementID), nil
	})
	return err
}

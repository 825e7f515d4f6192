package service

import (
	"encoding/json"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/Dojohubcloud/Ossjiujitsu/internal/document"
	"github.com/Dojohubcloud/Ossjiujitsu/internal/models"
	appErrors "github.com/Dojohubcloud/Ossjiujitsu/pkg/errors"
)

// backupStore is the store surface backup needs: a full read and the
// wholesale replace that import performs.
type backupStore interface {
	Snapshot() models.Document
	Replace(doc models.Document) error
}

// Backup is a rendered export: the serialized document plus the filename
// the download should carry.
type Backup struct {
	Filename string
	Payload  []byte
}

// BackupService serializes the whole document for download and restores
// it from an uploaded file. Import is destructive and must be confirmed
// explicitly by the caller.
type BackupService struct {
	store  backupStore
	logger *zap.Logger
}

// NewBackupService constructs the service.
func NewBackupService(store backupStore, logger *zap.Logger) *BackupService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &BackupService{store: store, logger: logger}
}

// Export renders the current document as indented JSON. The output is a
// faithful serialization: importing it restores an equal document.
func (s *BackupService) Export(today string) (*Backup, error) {
	doc := s.store.Snapshot()
	payload, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to serialize document")
	}
	return &Backup{Filename: backupFilename(doc.Settings.AcademyName, today), Payload: payload}, nil
}

// Import parses an exported backup and replaces the entire document with
// it. Nothing is merged: students, staff, attendance, payments,
// announcements and settings all come from the file. The caller must pass
// confirmed=true; without it no data is touched.
func (s *BackupService) Import(payload []byte, confirmed bool) error {
	if !confirmed {
		return appErrors.Clone(appErrors.ErrValidation, "import must be explicitly confirmed")
	}

	var probe map[string]json.RawMessage
	if err := json.Unmarshal(payload, &probe); err != nil {
		return appErrors.Wrap(err, appErrors.ErrMalformedPayload.Code, appErrors.ErrMalformedPayload.Status, "backup file is not valid JSON")
	}
	for _, key := range []string{"settings", "students"} {
		if _, ok := probe[key]; !ok {
			return appErrors.Clone(appErrors.ErrInvalidSchema, fmt.Sprintf("backup file is missing the %q section", key))
		}
	}

	var doc models.Document
	if err := json.Unmarshal(payload, &doc); err != nil {
		return appErrors.Wrap(err, appErrors.ErrInvalidSchema.Code, appErrors.ErrInvalidSchema.Status, "backup file does not match the expected schema")
	}
	ensureCollections(&doc)

	// Older exports may carry plaintext credentials.
	migrated, changed, err := document.NormalizeCredentials(doc)
	if err != nil {
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to migrate imported credentials")
	}
	if changed {
		s.logger.Info("migrated plaintext credentials in imported backup")
	}
	if migrated.Settings.AcademyName == "" || migrated.Settings.AccessPassword == "" {
		return appErrors.Clone(appErrors.ErrInvalidSchema, "backup settings must include an academy name and master password")
	}

	if err := s.store.Replace(migrated); err != nil {
		return err
	}
	s.logger.Info("document restored from backup",
		zap.Int("students", len(migrated.Students)),
		zap.Int("staff", len(migrated.Staff)))
	return nil
}

// ensureCollections swaps nil slices for empty ones so a restored
// document always serializes its sections as arrays.
func ensureCollections(doc *models.Document) {
	if doc.Students == nil {
		doc.Students = []models.Student{}
	}
	if doc.Staff == nil {
		doc.Staff = []models.StaffMember{}
	}
	if doc.Attendance == nil {
		doc.Attendance = []models.AttendanceRecord{}
	}
	if doc.Payments == nil {
		doc.Payments = []models.PaymentRecord{}
	}
	if doc.Announcements == nil {
		doc.Announcements = []models.Announcement{}
	}
}

func backupFilename(academyName, today string) string {
	name := strings.ReplaceAll(strings.TrimSpace(academyName), " ", "_")
	if name == "" {
		name = "ACADEMY"
	}
	return fmt.Sprintf("BACKUP_OSS_%s_%s.json", name, today)
}

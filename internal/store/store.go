// Package store persists the single academy document to a JSON file on
// local disk. The file is the system of record: every successful mutation
// produces exactly one persist of the full document.
package store

import (
	"encoding/json"
	"os"
	"path/filepath"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/Dojohubcloud/Ossjiujitsu/internal/document"
	"github.com/Dojohubcloud/Ossjiujitsu/internal/models"
	appErrors "github.com/Dojohubcloud/Ossjiujitsu/pkg/errors"
)

// Defaults seed the document on first run.
type Defaults struct {
	AcademyName    string
	MasterPassword string
}

// PersistObserver receives persist timings, typically the metrics service.
type PersistObserver interface {
	ObservePersist(duration time.Duration, err error)
	SetDocumentCounts(students, staff, attendance, payments, announcements int)
}

// Store owns the current document version and serialises access to it.
// Mutations run as pure transforms on a deep copy; the result is persisted
// before it becomes visible, so readers never observe a half-applied state.
type Store struct {
	mu       sync.RWMutex
	path     string
	doc      models.Document
	logger   *zap.Logger
	observer PersistObserver
}

// Option customises a Store.
type Option func(*Store)

// WithObserver attaches a persist observer.
func WithObserver(o PersistObserver) Option {
	return func(s *Store) { s.observer = o }
}

// Open loads the document from path, creating and persisting the default
// document when the file does not exist. A file that cannot be parsed is
// backed up next to the original and replaced with the default document
// rather than crashing the process.
func Open(path string, defaults Defaults, logger *zap.Logger, opts ...Option) (*Store, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	s := &Store{path: path, logger: logger}
	for _, opt := range opts {
		opt(s)
	}

	raw, err := os.ReadFile(path)
	switch {
	case os.IsNotExist(err):
		doc, derr := defaultDocument(defaults)
		if derr != nil {
			return nil, derr
		}
		s.doc = doc
		if perr := s.persistLocked(doc); perr != nil {
			return nil, perr
		}
		logger.Info("initialised new academy document", zap.String("path", path))
	case err != nil:
		return nil, appErrors.Wrap(err, appErrors.ErrStorageUnavailable.Code, appErrors.ErrStorageUnavailable.Status, "failed to read data file")
	default:
		var doc models.Document
		if uerr := json.Unmarshal(raw, &doc); uerr != nil {
			logger.Warn("data file is malformed, falling back to defaults",
				zap.String("path", path), zap.Error(uerr))
			if berr := os.WriteFile(path+".corrupt", raw, 0o644); berr != nil {
				logger.Warn("failed to preserve corrupt data file", zap.Error(berr))
			}
			doc, err = defaultDocument(defaults)
			if err != nil {
				return nil, err
			}
		}
		migrated, changed, merr := document.NormalizeCredentials(doc)
		if merr != nil {
			return nil, appErrors.Wrap(merr, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to migrate credentials")
		}
		if changed {
			logger.Info("migrated plaintext credentials in data file")
		}
		s.doc = migrated
		if perr := s.persistLocked(migrated); perr != nil {
			return nil, perr
		}
	}

	s.reportCounts(s.doc)
	return s, nil
}

// Snapshot returns a deep copy of the current document.
func (s *Store) Snapshot() models.Document {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.doc.Clone()
}

// Apply runs a pure mutation against the current document and commits the
// result once it has been persisted. When the persist fails the in-memory
// document keeps its previous version and the error is surfaced.
func (s *Store) Apply(mutate func(models.Document) (models.Document, error)) (models.Document, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	next, err := mutate(s.doc.Clone())
	if err != nil {
		return models.Document{}, err
	}
	if err := s.persistLocked(next); err != nil {
		return models.Document{}, err
	}
	s.doc = next
	s.reportCounts(next)
	return next.Clone(), nil
}

// Replace swaps the whole document, used by backup import.
func (s *Store) Replace(doc models.Document) error {
	_, err := s.Apply(func(models.Document) (models.Document, error) {
		return doc, nil
	})
	return err
}

// Path exposes the backing file location.
func (s *Store) Path() string {
	return s.path
}

func (s *Store) persistLocked(doc models.Document) error {
	start := time.Now()
	err := s.writeFile(doc)
	if s.observer != nil {
		s.observer.ObservePersist(time.Since(start), err)
	}
	if err != nil {
		s.logger.Error("failed to persist document", zap.Error(err))
		return appErrors.Wrap(err, appErrors.ErrStorageUnavailable.Code, appErrors.ErrStorageUnavailable.Status, "failed to persist document")
	}
	return nil
}

// writeFile writes atomically: marshal, write a temp file in the same
// directory, then rename over the original.
func (s *Store) writeFile(doc models.Document) error {
	data, err := json.Marshal(doc)
	if err != nil {
		return err
	}
	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}
	tmp, err := os.CreateTemp(dir, ".academy-*.json")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return err
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return err
	}
	if err := os.Rename(tmpName, s.path); err != nil {
		os.Remove(tmpName)
		return err
	}
	return nil
}

func (s *Store) reportCounts(doc models.Document) {
	if s.observer == nil {
		return
	}
	s.observer.SetDocumentCounts(len(doc.Students), len(doc.Staff), len(doc.Attendance), len(doc.Payments), len(doc.Announcements))
}

func defaultDocument(defaults Defaults) (models.Document, error) {
	hash, err := document.HashPassword(defaults.MasterPassword)
	if err != nil {
		return models.Document{}, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to hash master password")
	}
	return models.Document{
		Students:      []models.Student{},
		Staff:         []models.StaffMember{},
		Attendance:    []models.AttendanceRecord{},
		Payments:      []models.PaymentRecord{},
		Announcements: []models.Announcement{},
		Settings: models.Settings{
			AcademyName:    defaults.AcademyName,
			AccessPassword: hash,
		},
	}, nil
}

package service

import (
	"go.uber.org/zap"

	"github.com/Dojohubcloud/Ossjiujitsu/internal/document"
	"github.com/Dojohubcloud/Ossjiujitsu/internal/models"
	appErrors "github.com/Dojohubcloud/Ossjiujitsu/pkg/errors"
)

// RosterEntry is one line of the daily call sheet.
type RosterEntry struct {
	Student models.Student `json:"student"`
	Present bool           `json:"present"`
}

// ToggleResult reports the presence state after a toggle.
type ToggleResult struct {
	StudentID string `json:"studentId"`
	Date      string `json:"date"`
	Present   bool   `json:"present"`
}

// AttendanceService drives the daily call sheet.
type AttendanceService struct {
	store     documentStore
	logger    *zap.Logger
	classType string
}

// NewAttendanceService constructs the service. classType is the default
// class label stamped on new records.
func NewAttendanceService(store documentStore, logger *zap.Logger, classType string) *AttendanceService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if classType == "" {
		classType = "GI"
	}
	return &AttendanceService{store: store, logger: logger, classType: classType}
}

// TodayRoster returns the scoped students with their presence for today.
func (s *AttendanceService) TodayRoster(session models.Session) (string, []RosterEntry) {
	doc := s.store.Snapshot()
	today := models.Today()

	present := make(map[string]struct{})
	for _, a := range doc.Attendance {
		if a.Date == today {
			present[a.StudentID] = struct{}{}
		}
	}

	scoped := document.ScopedStudents(doc, session)
	entries := make([]RosterEntry, 0, len(scoped))
	for _, st := range scoped {
		_, ok := present[st.ID]
		entries = append(entries, RosterEntry{Student: st, Present: ok})
	}
	return today, entries
}

// Toggle flips today's presence for a student in the session's scope.
func (s *AttendanceService) Toggle(session models.Session, studentID string) (*ToggleResult, error) {
	today := models.Today()
	var present bool
	_, err := s.store.Apply(func(doc models.Document) (models.Document, error) {
		if !document.InScope(doc, session, studentID) {
			return doc, appErrors.Clone(appErrors.ErrNotFound, "student not found")
		}
		next, nowPresent, err := document.ToggleAttendance(doc, studentID, today, s.classType)
		present = nowPresent
		return next, err
	})
	if err != nil {
		return nil, err
	}
	return &ToggleResult{StudentID: studentID, Date: today, Present: present}, nil
}

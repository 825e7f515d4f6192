package service

import (
	"github.com/Dojohubcloud/Ossjiujitsu/internal/document"
	"github.com/Dojohubcloud/Ossjiujitsu/internal/models"
)

// DashboardSummary carries the landing-page counters. Staff sessions see
// their own roster only; StaffCount is populated for administrators.
type DashboardSummary struct {
	AcademyName     string `json:"academyName"`
	Students        int    `json:"students"`
	PendingPayments int    `json:"pendingPayments"`
	PresentToday    int    `json:"presentToday"`
	StaffCount      *int   `json:"staffCount,omitempty"`
}

// DashboardService aggregates counters over the session's visible slice.
type DashboardService struct {
	store documentStore
}

// NewDashboardService constructs the service.
func NewDashboardService(store documentStore) *DashboardService {
	return &DashboardService{store: store}
}

// Summary computes the counters for one session.
func (s *DashboardService) Summary(session models.Session) DashboardSummary {
	doc := s.store.Snapshot()
	scoped := document.ScopedStudents(doc, session)
	today := models.Today()

	summary := DashboardSummary{
		AcademyName: doc.Settings.AcademyName,
		Students:    len(scoped),
	}
	for _, st := range scoped {
		if _, ok := document.OldestPending(doc, st.ID); ok {
			summary.PendingPayments++
		}
	}
	for _, rec := range document.ScopedAttendance(doc, session) {
		if rec.Date == today {
			summary.PresentToday++
		}
	}
	if session.IsAdministrator() {
		count := len(doc.Staff)
		summary.StaffCount = &count
	}
	return summary
}

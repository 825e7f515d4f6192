package document

import "github.com/Dojohubcloud/Ossjiujitsu/internal/models"

// ScopedStudents returns the students a session may see: everything for the
// administrator, and for staff only students the member enrolled. Unassigned
// students and students owned by somebody else never appear in a staff scope.
func ScopedStudents(doc models.Document, session models.Session) []models.Student {
	if session.IsAdministrator() {
		return append([]models.Student(nil), doc.Students...)
	}
	out := make([]models.Student, 0, len(doc.Students))
	for _, s := range doc.Students {
		if s.ProfessorID != "" && s.ProfessorID == session.ID {
			out = append(out, s)
		}
	}
	return out
}

// ScopedPayments follows the student owner filter transitively through
// studentId.
func ScopedPayments(doc models.Document, session models.Session) []models.PaymentRecord {
	if session.IsAdministrator() {
		return append([]models.PaymentRecord(nil), doc.Payments...)
	}
	visible := make(map[string]struct{})
	for _, s := range ScopedStudents(doc, session) {
		visible[s.ID] = struct{}{}
	}
	out := make([]models.PaymentRecord, 0, len(doc.Payments))
	for _, p := range doc.Payments {
		if _, ok := visible[p.StudentID]; ok {
			out = append(out, p)
		}
	}
	return out
}

// ScopedAttendance follows the same owner filter for attendance records.
func ScopedAttendance(doc models.Document, session models.Session) []models.AttendanceRecord {
	if session.IsAdministrator() {
		return append([]models.AttendanceRecord(nil), doc.Attendance...)
	}
	visible := make(map[string]struct{})
	for _, s := range ScopedStudents(doc, session) {
		visible[s.ID] = struct{}{}
	}
	out := make([]models.AttendanceRecord, 0, len(doc.Attendance))
	for _, a := range doc.Attendance {
		if _, ok := visible[a.StudentID]; ok {
			out = append(out, a)
		}
	}
	return out
}

// InScope reports whether a session may act on the given student.
func InScope(doc models.Document, session models.Session, studentID string) bool {
	for _, s := range ScopedStudents(doc, session) {
		if s.ID == studentID {
			return true
		}
	}
	return false
}

// OldestPending returns the first outstanding charge for a student, oldest
// first, which is "the" charge the settle flow acts on when several exist.
func OldestPending(doc models.Document, studentID string) (models.PaymentRecord, bool) {
	var found models.PaymentRecord
	ok := false
	for _, p := range doc.Payments {
		if p.StudentID != studentID || p.Status != models.PaymentPending {
			continue
		}
		if !ok || p.Date < found.Date {
			found = p
			ok = true
		}
	}
	return found, ok
}

// ProfessorName resolves an owner id for display: the administrator
// sentinel, a staff name, or the unassigned/unknown fallbacks.
func ProfessorName(doc models.Document, professorID string) string {
	if professorID == "" {
		return "Não atribuído"
	}
	if professorID == models.AdministratorID {
		return models.AdministratorName
	}
	if m, ok := doc.FindStaff(professorID); ok {
		return m.Name
	}
	return "Desconhecido"
}

// CanAccessStaffView and friends gate administrator-only surfaces.
func CanAccessStaffView(session models.Session) bool { return session.IsAdministrator() }

// CanManageSettings reports whether the session may replace settings.
func CanManageSettings(session models.Session) bool { return session.IsAdministrator() }

// CanRegisterStaff reports whether the session may register staff.
func CanRegisterStaff(session models.Session) bool { return session.IsAdministrator() }

// CanToggleStaffLock reports whether the session may lock/unlock staff.
func CanToggleStaffLock(session models.Session) bool { return session.IsAdministrator() }

// CanPostAnnouncement reports whether the session may post to the board.
func CanPostAnnouncement(session models.Session) bool { return session.IsAdministrator() }

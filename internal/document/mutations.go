// Package document holds the pure state transitions of the academy document
// and the visibility rules derived from a session. Every mutation takes the
// previous document value and returns a fresh one; callers persist the result
// through the store, never the other way around.
package document

import (
	"strings"

	"github.com/google/uuid"

	"github.com/Dojohubcloud/Ossjiujitsu/internal/models"
	appErrors "github.com/Dojohubcloud/Ossjiujitsu/pkg/errors"
)

// EnrollInput carries the operator-supplied fields for a new student.
type EnrollInput struct {
	Name    string
	Belt    models.BeltRank
	Stripes int
	Phone   string
}

// EnrollStudent appends a new student owned by the acting session's identity
// together with the mandatory first pending charge. The two appends are one
// document transition.
func EnrollStudent(doc models.Document, in EnrollInput, ownerID string, fee float64, today string) (models.Document, models.Student, error) {
	if strings.TrimSpace(in.Name) == "" {
		return doc, models.Student{}, appErrors.Clone(appErrors.ErrValidation, "student name is required")
	}
	if in.Stripes < 0 || in.Stripes > 4 {
		return doc, models.Student{}, appErrors.Clone(appErrors.ErrValidation, "stripes must be between 0 and 4")
	}
	belt := in.Belt
	if belt == "" {
		belt = models.BeltWhite
	}
	if !belt.Valid() {
		return doc, models.Student{}, appErrors.Clone(appErrors.ErrValidation, "unknown belt rank")
	}

	student := models.Student{
		ID:              uuid.NewString(),
		Name:            strings.TrimSpace(in.Name),
		Belt:            belt,
		Stripes:         in.Stripes,
		JoinDate:        today,
		Active:          true,
		Phone:           strings.TrimSpace(in.Phone),
		LastPaymentDate: today,
		ProfessorID:     ownerID,
	}
	charge := models.PaymentRecord{
		ID:        uuid.NewString(),
		StudentID: student.ID,
		Amount:    fee,
		Date:      today,
		Status:    models.PaymentPending,
	}

	next := doc.Clone()
	next.Students = append(next.Students, student)
	next.Payments = append(next.Payments, charge)
	return next, student, nil
}

// RemoveStudent deletes a student and cascades to the student's attendance
// and payment records so the document never carries dangling references.
func RemoveStudent(doc models.Document, studentID string) (models.Document, error) {
	if _, ok := doc.FindStudent(studentID); !ok {
		return doc, appErrors.Clone(appErrors.ErrNotFound, "student not found")
	}

	next := doc.Clone()
	next.Students = next.Students[:0]
	for _, s := range doc.Students {
		if s.ID != studentID {
			next.Students = append(next.Students, s)
		}
	}
	next.Attendance = filterAttendance(doc.Attendance, func(a models.AttendanceRecord) bool {
		return a.StudentID != studentID
	})
	next.Payments = filterPayments(doc.Payments, func(p models.PaymentRecord) bool {
		return p.StudentID != studentID
	})
	return next, nil
}

// ToggleAttendance flips presence for (studentID, date). When any record
// matches the pair every match is removed; otherwise a single record with
// the given class type is inserted. Two consecutive calls restore the
// original attendance set for the pair.
func ToggleAttendance(doc models.Document, studentID, date, classType string) (models.Document, bool, error) {
	if _, ok := doc.FindStudent(studentID); !ok {
		return doc, false, appErrors.Clone(appErrors.ErrNotFound, "student not found")
	}

	next := doc.Clone()
	present := false
	for _, a := range doc.Attendance {
		if a.StudentID == studentID && a.Date == date {
			present = true
			break
		}
	}

	if present {
		next.Attendance = filterAttendance(doc.Attendance, func(a models.AttendanceRecord) bool {
			return !(a.StudentID == studentID && a.Date == date)
		})
		return next, false, nil
	}

	next.Attendance = append(next.Attendance, models.AttendanceRecord{
		ID:        uuid.NewString(),
		StudentID: studentID,
		Date:      date,
		ClassType: classType,
	})
	return next, true, nil
}

// SettlePayment marks the record pending->paid. Amount and date are never
// touched and a record already paid is left as is.
func SettlePayment(doc models.Document, paymentID string) (models.Document, error) {
	payment, ok := doc.FindPayment(paymentID)
	if !ok {
		return doc, appErrors.Clone(appErrors.ErrNotFound, "payment not found")
	}
	if payment.Status == models.PaymentPaid {
		return doc, nil
	}

	next := doc.Clone()
	for i, p := range next.Payments {
		if p.ID == paymentID {
			p.Status = models.PaymentPaid
			next.Payments[i] = p
			break
		}
	}
	return next, nil
}

// RegisterStaffInput carries the administrator-supplied staff fields.
// PasswordHash must already be hashed by the caller.
type RegisterStaffInput struct {
	Name         string
	Role         models.StaffRole
	Phone        string
	Specialty    string
	PasswordHash string
}

// RegisterStaff appends a new active staff member.
func RegisterStaff(doc models.Document, in RegisterStaffInput) (models.Document, models.StaffMember, error) {
	if strings.TrimSpace(in.Name) == "" {
		return doc, models.StaffMember{}, appErrors.Clone(appErrors.ErrValidation, "staff name is required")
	}
	if in.PasswordHash == "" {
		return doc, models.StaffMember{}, appErrors.Clone(appErrors.ErrValidation, "staff password is required")
	}
	role := in.Role
	if role == "" {
		role = models.StaffRoleProfessor
	}
	if !role.Valid() {
		return doc, models.StaffMember{}, appErrors.Clone(appErrors.ErrValidation, "unknown staff role")
	}

	member := models.StaffMember{
		ID:        uuid.NewString(),
		Name:      strings.TrimSpace(in.Name),
		Role:      role,
		Phone:     strings.TrimSpace(in.Phone),
		Specialty: strings.TrimSpace(in.Specialty),
		Password:  in.PasswordHash,
		Active:    true,
	}

	next := doc.Clone()
	next.Staff = append(next.Staff, member)
	return next, member, nil
}

// ToggleStaffLock flips the active flag. Sessions already issued to the
// member stay valid; the lock takes effect on the next login attempt.
func ToggleStaffLock(doc models.Document, staffID string) (models.Document, models.StaffMember, error) {
	if _, ok := doc.FindStaff(staffID); !ok {
		return doc, models.StaffMember{}, appErrors.Clone(appErrors.ErrNotFound, "staff member not found")
	}

	next := doc.Clone()
	var updated models.StaffMember
	for i, m := range next.Staff {
		if m.ID == staffID {
			m.Active = !m.Active
			next.Staff[i] = m
			updated = m
			break
		}
	}
	return next, updated, nil
}

// PostAnnouncementInput carries a new board post.
type PostAnnouncementInput struct {
	Title    string
	Content  string
	Category models.AnnouncementCategory
}

// PostAnnouncement prepends a post so the board stays most-recent-first.
func PostAnnouncement(doc models.Document, in PostAnnouncementInput, today string) (models.Document, models.Announcement, error) {
	if strings.TrimSpace(in.Title) == "" {
		return doc, models.Announcement{}, appErrors.Clone(appErrors.ErrValidation, "announcement title is required")
	}
	if strings.TrimSpace(in.Content) == "" {
		return doc, models.Announcement{}, appErrors.Clone(appErrors.ErrValidation, "announcement content is required")
	}
	category := in.Category
	if category == "" {
		category = models.AnnouncementGeneral
	}
	if !category.Valid() {
		return doc, models.Announcement{}, appErrors.Clone(appErrors.ErrValidation, "unknown announcement category")
	}

	post := models.Announcement{
		ID:       uuid.NewString(),
		Title:    strings.TrimSpace(in.Title),
		Content:  in.Content,
		Date:     today,
		Category: category,
	}

	next := doc.Clone()
	next.Announcements = append([]models.Announcement{post}, doc.Announcements...)
	return next, post, nil
}

// DeleteAnnouncement removes a post by id; absent ids are a no-op.
func DeleteAnnouncement(doc models.Document, announcementID string) models.Document {
	next := doc.Clone()
	next.Announcements = next.Announcements[:0]
	for _, a := range doc.Announcements {
		if a.ID != announcementID {
			next.Announcements = append(next.Announcements, a)
		}
	}
	return next
}

// UpdateSettingsInput replaces the settings block wholesale.
// AccessPasswordHash must already be hashed by the caller.
type UpdateSettingsInput struct {
	AcademyName        string
	AccessPasswordHash string
}

// UpdateSettings swaps the settings singleton. An empty academy name or
// master password is rejected rather than silently locking the operator out.
func UpdateSettings(doc models.Document, in UpdateSettingsInput) (models.Document, error) {
	if strings.TrimSpace(in.AcademyName) == "" {
		return doc, appErrors.Clone(appErrors.ErrValidation, "academy name is required")
	}
	if in.AccessPasswordHash == "" {
		return doc, appErrors.Clone(appErrors.ErrValidation, "master password is required")
	}

	next := doc.Clone()
	next.Settings = models.Settings{
		AcademyName:    strings.TrimSpace(in.AcademyName),
		AccessPassword: in.AccessPasswordHash,
	}
	return next, nil
}

func filterAttendance(in []models.AttendanceRecord, keep func(models.AttendanceRecord) bool) []models.AttendanceRecord {
	out := make([]models.AttendanceRecord, 0, len(in))
	for _, a := range in {
		if keep(a) {
			out = append(out, a)
		}
	}
	return out
}

func filterPayments(in []models.PaymentRecord, keep func(models.PaymentRecord) bool) []models.PaymentRecord {
	out := make([]models.PaymentRecord, 0, len(in))
	for _, p := range in {
		if keep(p) {
			out = append(out, p)
		}
	}
	return out
}

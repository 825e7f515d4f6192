package models

import "time"

// DateLayout is the calendar-day format used throughout the document.
// Dates carry no time component; "today" is a local calendar day.
const DateLayout = "2006-01-02"

// Today returns the current local calendar day.
func Today() string {
	return time.Now().Format(DateLayout)
}

// Settings is the singleton configuration block inside the document.
// AccessPassword holds the administrator master secret as a bcrypt hash.
type Settings struct {
	AcademyName    string `json:"academyName"`
	AccessPassword string `json:"accessPassword"`
}

// Document is the single root structure holding every persisted collection.
// It is the one unit of persistence and backup; mutations never modify a
// Document in place but derive a fresh value from the previous one.
type Document struct {
	Students      []Student          `json:"students"`
	Staff         []StaffMember      `json:"staff"`
	Attendance    []AttendanceRecord `json:"attendance"`
	Payments      []PaymentRecord    `json:"payments"`
	Announcements []Announcement     `json:"announcements"`
	Settings      Settings           `json:"settings"`
}

// Clone returns a deep copy safe to hand to a mutation. Collections come
// back non-nil so the document always serializes them as arrays.
func (d Document) Clone() Document {
	out := d
	out.Students = make([]Student, len(d.Students))
	copy(out.Students, d.Students)
	out.Staff = make([]StaffMember, len(d.Staff))
	copy(out.Staff, d.Staff)
	out.Attendance = make([]AttendanceRecord, len(d.Attendance))
	copy(out.Attendance, d.Attendance)
	out.Payments = make([]PaymentRecord, len(d.Payments))
	copy(out.Payments, d.Payments)
	out.Announcements = make([]Announcement, len(d.Announcements))
	copy(out.Announcements, d.Announcements)
	return out
}

// FindStudent returns the student with the given id.
func (d Document) FindStudent(id string) (Student, bool) {
	for _, s := range d.Students {
		if s.ID == id {
			return s, true
		}
	}
	return Student{}, false
}

// FindStaff returns the staff member with the given id.
func (d Document) FindStaff(id string) (StaffMember, bool) {
	for _, m := range d.Staff {
		if m.ID == id {
			return m, true
		}
	}
	return StaffMember{}, false
}

// FindPayment returns the payment record with the given id.
func (d Document) FindPayment(id string) (PaymentRecord, bool) {
	for _, p := range d.Payments {
		if p.ID == id {
			return p, true
		}
	}
	return PaymentRecord{}, false
}

package models

// AttendanceRecord marks a student present on a calendar day.
// (StudentID, Date) is the dedup key: unmarking removes every record for
// the pair regardless of class type.
type AttendanceRecord struct {
	ID        string `json:"id"`
	StudentID string `json:"studentId"`
	Date      string `json:"date"`
	ClassType string `json:"classType"`
}

package models

// PaymentStatus is the lifecycle state of a charge.
type PaymentStatus string

const (
	PaymentPending PaymentStatus = "pending"
	PaymentPaid    PaymentStatus = "paid"
)

// PaymentRecord is a single monthly charge. Records transition pending->paid
// exactly once and are never deleted or regenerated automatically.
type PaymentRecord struct {
	ID        string        `json:"id"`
	StudentID string        `json:"studentId"`
	Amount    float64       `json:"amount"`
	Date      string        `json:"date"`
	Status    PaymentStatus `json:"status"`
}

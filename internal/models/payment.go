package models

import "github.com/shopspring/decimal"

// PaymentStatus is the approval lifecycle state of a submitted payment.
type PaymentStatus string

const (
	PaymentPending  PaymentStatus = "PENDING"
	PaymentApproved PaymentStatus = "APPROVED"
	PaymentRejected PaymentStatus = "REJECTED"
)

// Payment is a submitted payment awaiting back-office approval. The receipt
// image lives in external object storage.
type Payment struct {
	PaymentID     string          `db:"payment_id"`
	ClientName    string          `db:"client_name"`
	Project       string          `db:"project"`
	Amount        decimal.Decimal `db:"amount"`
	Method        string          `db:"method"`
	ReceiptBucket string          `db:"receipt_bucket"`
	ReceiptPath   string          `db:"receipt_path"`
	Status        PaymentStatus   `db:"status"`
	ReviewedBy    string          `db:"reviewed_by"`
	ReviewNote    string          `db:"review_note"`
	AuditFields
}

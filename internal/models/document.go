package models

// DocumentType enumerates the papers collected during a deal.
type DocumentType string

const (
	DocValidID          DocumentType = "VALID_ID"
	DocTaxReturn        DocumentType = "TAX_RETURN"
	DocProofOfIncome    DocumentType = "PROOF_OF_INCOME"
	DocContractToSell   DocumentType = "CONTRACT_TO_SELL"
	DocReservationForm  DocumentType = "RESERVATION_FORM"
	DocOther            DocumentType = "OTHER"
)

// Document is collected-paper metadata. The file bytes live in external object
// storage; rows carry only the bucket and path.
type Document struct {
	DocumentID    string       `db:"document_id"`
	ClientName    string       `db:"client_name"`
	Name          string       `db:"name"`
	Type          DocumentType `db:"doc_type"`
	StorageBucket string       `db:"storage_bucket"`
	StoragePath   string       `db:"storage_path"`
	AuditFields
}

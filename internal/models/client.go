package models

// Client is a buyer record in the shared clients table. Clients are linked to
// properties and balances by display name, not by a database foreign key; the
// legacy sheets this system replaced only ever carried names.
type Client struct {
	ClientID string `db:"client_id"`
	Name     string `db:"name"`
	Project  string `db:"project"`
	Block    string `db:"block"`
	Lot      string `db:"lot"`
	Email    string `db:"email"`
	Phone    string `db:"phone"`
	Address  string `db:"address"`
	Broker   string `db:"broker"`
	AuditFields
}

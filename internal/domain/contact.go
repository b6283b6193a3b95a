package domain

// Contact is a contact-form submission. CorrelationID is the idempotency
// key: re-submitting the same id overwrites the mutable fields instead of
// creating a duplicate row.
type Contact struct {
	CorrelationID string
	Name          string
	Email         *string
	Phone         *string
	Status        string // defaults to "nuevo"
	Notes         *string
	RemoteIP      *string
	UserAgent     *string
}

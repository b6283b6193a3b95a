package app

import (
	"context"
	"strings"

	"github.com/google/uuid"

	"dante_properties/internal/domain"
)

// ContactService upserts contact-form submissions. The correlation id is
// the idempotency key: resubmitting it overwrites the mutable fields
// instead of creating a duplicate.
type ContactService struct {
	store domain.ContactStore
}

func NewContactService(s domain.ContactStore) *ContactService {
	return &ContactService{store: s}
}

// Submit validates the submission, fills defaults and a server-generated
// correlation id when the caller supplied none, and upserts. It returns the
// resolved correlation id.
func (s *ContactService) Submit(ctx context.Context, c domain.Contact) (string, error) {
	c.Name = strings.TrimSpace(c.Name)
	if c.Name == "" {
		return "", domain.ErrValidation
	}
	if strings.TrimSpace(c.CorrelationID) == "" {
		c.CorrelationID = uuid.NewString()
	}
	if c.Status == "" {
		c.Status = "nuevo"
	}
	if err := s.store.UpsertContact(ctx, c); err != nil {
		return "", err
	}
	return c.CorrelationID, nil
}

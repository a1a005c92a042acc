package ports

import (
	"context"

	"github.com/99minutos/contacts-api/internal/core/domain"
)

// ContactRepository is the contact store, keyed by the application-level
// contactId. Implementations report failures as *domain.Error values.
type ContactRepository interface {
	// Create persists c and returns the stored record with storage metadata.
	// A contactId that already exists yields domain.ErrDuplicateContact.
	Create(ctx context.Context, c *domain.Contact) (*domain.Contact, error)
	// List returns every stored contact in storage order.
	List(ctx context.Context) ([]*domain.Contact, error)
	FindByContactID(ctx context.Context, contactID string) (*domain.Contact, error)
	// Update replaces the mutable fields and returns the post-update record.
	// It never creates a contact.
	Update(ctx context.Context, contactID string, u domain.ContactUpdate) (*domain.Contact, error)
	Delete(ctx context.Context, contactID string) error
}

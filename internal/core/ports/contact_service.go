package ports

import (
	"context"

	"github.com/99minutos/contacts-api/internal/core/domain"
)

// CreateContactInput is the DTO passed from the transport layer on create.
type CreateContactInput struct {
	ContactID        string
	Email            string
	Phone            string
	IsPrimary        bool
	PrimaryContactID string
}

// UpdateContactInput carries the replacement values for an existing contact.
// Nil fields are stored as null.
type UpdateContactInput struct {
	ContactID        string
	Email            *string
	Phone            *string
	IsPrimary        *bool
	PrimaryContactID *string
}

// ContactService defines use-case operations for contacts.
type ContactService interface {
	CreateContact(ctx context.Context, input CreateContactInput) (*domain.Contact, error)
	ListContacts(ctx context.Context) ([]*domain.Contact, error)
	GetContact(ctx context.Context, contactID string) (*domain.Contact, error)
	UpdateContact(ctx context.Context, input UpdateContactInput) (*domain.Contact, error)
	DeleteContact(ctx context.Context, contactID string) error
}

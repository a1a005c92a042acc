package handler

import (
	"github.com/99minutos/contacts-api/internal/core/domain"
	"github.com/99minutos/contacts-api/internal/core/ports"
)

// --- Request → Service input ---

func toCreateInput(req createContactRequest) ports.CreateContactInput {
	return ports.CreateContactInput{
		ContactID:        req.ContactID,
		Email:            req.Email,
		Phone:            req.Phone,
		IsPrimary:        req.IsPrimary,
		PrimaryContactID: req.PrimaryContactID,
	}
}

func toUpdateInput(contactID string, req updateContactRequest) ports.UpdateContactInput {
	return ports.UpdateContactInput{
		ContactID:        contactID,
		Email:            req.Email,
		Phone:            req.Phone,
		IsPrimary:        req.IsPrimary,
		PrimaryContactID: req.PrimaryContactID,
	}
}

// --- Service result → HTTP response ---

func toContactResponse(c *domain.Contact) contactResponse {
	return contactResponse{
		ID:               c.ID,
		ContactID:        c.ContactID,
		Email:            c.Email,
		Phone:            c.Phone,
		IsPrimary:        c.IsPrimary,
		PrimaryContactID: c.PrimaryContactID,
		CreatedAt:        c.CreatedAt.UTC(),
		UpdatedAt:        c.UpdatedAt.UTC(),
	}
}

func toListResponse(contacts []*domain.Contact) []contactResponse {
	out := make([]contactResponse, len(contacts))
	for i, c := range contacts {
		out[i] = toContactResponse(c)
	}
	return out
}

package domain

import "time"

// Contact is the single aggregate managed by the service. ContactID is the
// application-level key; ID is assigned by the store.
type Contact struct {
	ID               string    `json:"id,omitempty"`
	ContactID        string    `json:"contactId"`
	Email            string    `json:"email"`
	Phone            string    `json:"phone"`
	IsPrimary        bool      `json:"isPrimary"`
	PrimaryContactID string    `json:"primaryContactId,omitempty"`
	CreatedAt        time.Time `json:"createdAt"`
	UpdatedAt        time.Time `json:"updatedAt"`
}

// ContactUpdate carries the four mutable fields of a contact. A nil field is
// written as null: updates replace all four fields, they do not patch.
type ContactUpdate struct {
	Email            *string
	Phone            *string
	IsPrimary        *bool
	PrimaryContactID *string
}

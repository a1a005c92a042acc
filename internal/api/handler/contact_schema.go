package handler

import "time"

// errorResponse is the standard error envelope returned on all 4xx/5xx responses.
type errorResponse struct {
	Error string `json:"error"`
}

// --- Request / Response types ---

type createContactRequest struct {
	ContactID        string `json:"contactId"                  example:"c1"`
	Email            string `json:"email"                      example:"a@x.com"`
	Phone            string `json:"phone"                      example:"123"`
	IsPrimary        bool   `json:"isPrimary"                  example:"true"`
	PrimaryContactID string `json:"primaryContactId,omitempty" example:""`
}

// updateContactRequest uses pointers so that an omitted field can be told
// apart from a zero value: omitted fields are stored as null.
type updateContactRequest struct {
	Email            *string `json:"email"            example:"b@x.com"`
	Phone            *string `json:"phone"            example:"456"`
	IsPrimary        *bool   `json:"isPrimary"        example:"true"`
	PrimaryContactID *string `json:"primaryContactId"`
}

// contactResponse is owned by the transport layer so the JSON contract does
// not follow internal model changes.
type contactResponse struct {
	ID               string    `json:"id,omitempty"`
	ContactID        string    `json:"contactId"`
	Email            string    `json:"email"`
	Phone            string    `json:"phone"`
	IsPrimary        bool      `json:"isPrimary"`
	PrimaryContactID string    `json:"primaryContactId,omitempty"`
	CreatedAt        time.Time `json:"createdAt"`
	UpdatedAt        time.Time `json:"updatedAt"`
}

type contactEnvelope struct {
	Message string          `json:"message"`
	Contact contactResponse `json:"contact"`
}

type messageResponse struct {
	Message string `json:"message"`
}

package domain

import (
	"errors"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

// newContactRules is the accept/reject contract for new contacts. Field order
// matters: completeness failures are reported before relationship failures.
type newContactRules struct {
	ContactID        string `json:"contactId"        validate:"required"`
	Email            string `json:"email"            validate:"required"`
	Phone            string `json:"phone"            validate:"required"`
	IsPrimary        bool   `json:"isPrimary"`
	PrimaryContactID string `json:"primaryContactId" validate:"required_if=IsPrimary false"`
}

type updateRules struct {
	IsPrimary        bool   `json:"isPrimary"`
	PrimaryContactID string `json:"primaryContactId" validate:"required_if=IsPrimary false"`
}

var rules = newRulesValidator()

func newRulesValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// ValidateNew decides whether c may be created. It returns nil, a
// KindMissingField error naming the first empty required field, or a
// KindMissingPrimaryReference error for a secondary contact without a
// primaryContactId.
func ValidateNew(c Contact) error {
	return check(c.ContactID, newContactRules{
		ContactID:        c.ContactID,
		Email:            c.Email,
		Phone:            c.Phone,
		IsPrimary:        c.IsPrimary,
		PrimaryContactID: c.PrimaryContactID,
	})
}

// ValidateUpdate applies the relationship rule to an update. Updates are not
// checked for completeness; absent fields are stored as null.
func ValidateUpdate(contactID string, u ContactUpdate) error {
	r := updateRules{}
	if u.IsPrimary != nil {
		r.IsPrimary = *u.IsPrimary
	}
	if u.PrimaryContactID != nil {
		r.PrimaryContactID = *u.PrimaryContactID
	}
	return check(contactID, r)
}

func check(contactID string, s any) error {
	err := rules.Struct(s)
	if err == nil {
		return nil
	}

	var ve validator.ValidationErrors
	if !errors.As(err, &ve) || len(ve) == 0 {
		return err
	}

	fe := ve[0]
	switch fe.Tag() {
	case "required_if":
		return &Error{Kind: KindMissingPrimaryReference, ContactID: contactID, Field: fe.Field()}
	default:
		return &Error{Kind: KindMissingField, ContactID: contactID, Field: fe.Field()}
	}
}

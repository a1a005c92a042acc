package service

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/99minutos/contacts-api/internal/api/metrics"
	"github.com/99minutos/contacts-api/internal/core/domain"
	"github.com/99minutos/contacts-api/internal/core/ports"
)

// Options tunes ContactService behaviour.
type Options struct {
	// StrictUpdates applies the primary-reference rule on update as well as
	// on create. Off by default: updates are stored as sent.
	StrictUpdates bool
}

type ContactService struct {
	repo   ports.ContactRepository
	logger zerolog.Logger
	opts   Options
}

func NewContactService(repo ports.ContactRepository, logger zerolog.Logger, opts Options) *ContactService {
	return &ContactService{repo: repo, logger: logger, opts: opts}
}

// CreateContact runs the validation gate and, when accepted, persists the contact.
func (s *ContactService) CreateContact(ctx context.Context, input ports.CreateContactInput) (*domain.Contact, error) {
	c := &domain.Contact{
		ContactID:        input.ContactID,
		Email:            input.Email,
		Phone:            input.Phone,
		IsPrimary:        input.IsPrimary,
		PrimaryContactID: input.PrimaryContactID,
	}

	if err := domain.ValidateNew(*c); err != nil {
		s.reject("create", input.ContactID, err)
		return nil, err
	}

	created, err := s.repo.Create(ctx, c)
	if err != nil {
		s.fail("create", input.ContactID, err)
		return nil, err
	}

	metrics.OperationsTotal.WithLabelValues("create", metrics.ResultOK).Inc()
	s.logger.Info().Str("contact_id", created.ContactID).Bool("is_primary", created.IsPrimary).Msg("contact created")
	return created, nil
}

// ListContacts returns all contacts in store order.
func (s *ContactService) ListContacts(ctx context.Context) ([]*domain.Contact, error) {
	contacts, err := s.repo.List(ctx)
	if err != nil {
		s.fail("list", "", err)
		return nil, err
	}
	metrics.OperationsTotal.WithLabelValues("list", metrics.ResultOK).Inc()
	return contacts, nil
}

func (s *ContactService) GetContact(ctx context.Context, contactID string) (*domain.Contact, error) {
	c, err := s.repo.FindByContactID(ctx, contactID)
	if err != nil {
		s.fail("get", contactID, err)
		return nil, err
	}
	metrics.OperationsTotal.WithLabelValues("get", metrics.ResultOK).Inc()
	return c, nil
}

// UpdateContact replaces the mutable fields of an existing contact. Without
// StrictUpdates no validation happens here.
func (s *ContactService) UpdateContact(ctx context.Context, input ports.UpdateContactInput) (*domain.Contact, error) {
	u := domain.ContactUpdate{
		Email:            input.Email,
		Phone:            input.Phone,
		IsPrimary:        input.IsPrimary,
		PrimaryContactID: input.PrimaryContactID,
	}

	if s.opts.StrictUpdates {
		if err := domain.ValidateUpdate(input.ContactID, u); err != nil {
			s.reject("update", input.ContactID, err)
			return nil, err
		}
	}

	updated, err := s.repo.Update(ctx, input.ContactID, u)
	if err != nil {
		s.fail("update", input.ContactID, err)
		return nil, err
	}

	metrics.OperationsTotal.WithLabelValues("update", metrics.ResultOK).Inc()
	s.logger.Info().Str("contact_id", input.ContactID).Msg("contact updated")
	return updated, nil
}

func (s *ContactService) DeleteContact(ctx context.Context, contactID string) error {
	if err := s.repo.Delete(ctx, contactID); err != nil {
		s.fail("delete", contactID, err)
		return err
	}
	metrics.OperationsTotal.WithLabelValues("delete", metrics.ResultOK).Inc()
	s.logger.Info().Str("contact_id", contactID).Msg("contact deleted")
	return nil
}

func (s *ContactService) reject(op, contactID string, err error) {
	kind := domain.KindOf(err)
	metrics.OperationsTotal.WithLabelValues(op, metrics.ResultRejected).Inc()
	metrics.ValidationRejectionsTotal.WithLabelValues(kind.String()).Inc()
	s.logger.Debug().Err(err).Str("contact_id", contactID).Str("operation", op).Msg("contact rejected")
}

func (s *ContactService) fail(op, contactID string, err error) {
	if domain.KindOf(err) == domain.KindNotFound {
		metrics.OperationsTotal.WithLabelValues(op, metrics.ResultNotFound).Inc()
		return
	}
	metrics.OperationsTotal.WithLabelValues(op, metrics.ResultError).Inc()
	s.logger.Error().Err(err).Str("contact_id", contactID).Str("operation", op).Msg("contact store failure")
}

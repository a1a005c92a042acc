package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/99minutos/contacts-api/internal/core/domain"
	"github.com/99minutos/contacts-api/internal/core/ports"
)

// ---------------------------------------------------------------------------
// In-memory stub repository
// ---------------------------------------------------------------------------

type stubContactRepo struct {
	byID      map[string]*domain.Contact
	order     []string
	createErr error // if set, Create returns this error
	listErr   error
	calls     int // number of repository calls
}

func newStubContactRepo() *stubContactRepo {
	return &stubContactRepo{byID: make(map[string]*domain.Contact)}
}

func (r *stubContactRepo) Create(_ context.Context, c *domain.Contact) (*domain.Contact, error) {
	r.calls++
	if r.createErr != nil {
		return nil, r.createErr
	}
	if _, ok := r.byID[c.ContactID]; ok {
		return nil, domain.DuplicateKey(c.ContactID, errors.New("E11000 duplicate key error"))
	}
	clone := *c
	clone.ID = "id-" + c.ContactID
	clone.CreatedAt = time.Now().UTC()
	clone.UpdatedAt = clone.CreatedAt
	r.byID[c.ContactID] = &clone
	r.order = append(r.order, c.ContactID)
	out := clone
	return &out, nil
}

func (r *stubContactRepo) List(_ context.Context) ([]*domain.Contact, error) {
	r.calls++
	if r.listErr != nil {
		return nil, r.listErr
	}
	out := make([]*domain.Contact, 0, len(r.order))
	for _, id := range r.order {
		clone := *r.byID[id]
		out = append(out, &clone)
	}
	return out, nil
}

func (r *stubContactRepo) FindByContactID(_ context.Context, contactID string) (*domain.Contact, error) {
	r.calls++
	c, ok := r.byID[contactID]
	if !ok {
		return nil, domain.NotFound(contactID)
	}
	clone := *c
	return &clone, nil
}

func (r *stubContactRepo) Update(_ context.Context, contactID string, u domain.ContactUpdate) (*domain.Contact, error) {
	r.calls++
	c, ok := r.byID[contactID]
	if !ok {
		return nil, domain.NotFound(contactID)
	}
	c.Email, c.Phone, c.PrimaryContactID, c.IsPrimary = "", "", "", false
	if u.Email != nil {
		c.Email = *u.Email
	}
	if u.Phone != nil {
		c.Phone = *u.Phone
	}
	if u.IsPrimary != nil {
		c.IsPrimary = *u.IsPrimary
	}
	if u.PrimaryContactID != nil {
		c.PrimaryContactID = *u.PrimaryContactID
	}
	clone := *c
	return &clone, nil
}

func (r *stubContactRepo) Delete(_ context.Context, contactID string) error {
	r.calls++
	if _, ok := r.byID[contactID]; !ok {
		return domain.NotFound(contactID)
	}
	delete(r.byID, contactID)
	for i, id := range r.order {
		if id == contactID {
			r.order = append(r.order[:i], r.order[i+1:]...)
			break
		}
	}
	return nil
}

// ---------------------------------------------------------------------------
// Helpers
// ---------------------------------------------------------------------------

var discardLogger = zerolog.Nop()

func newSvc(repo ports.ContactRepository) *ContactService {
	return NewContactService(repo, discardLogger, Options{})
}

func primaryInput(id string) ports.CreateContactInput {
	return ports.CreateContactInput{ContactID: id, Email: "a@x.com", Phone: "123", IsPrimary: true}
}

func ptr[T any](v T) *T { return &v }

// ---------------------------------------------------------------------------
// CreateContact tests
// ---------------------------------------------------------------------------

func TestContactService_Create_Primary(t *testing.T) {
	repo := newStubContactRepo()
	svc := newSvc(repo)

	c, err := svc.CreateContact(context.Background(), primaryInput("c1"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if c.ContactID != "c1" || c.Email != "a@x.com" || c.Phone != "123" || !c.IsPrimary {
		t.Errorf("unexpected contact: %+v", c)
	}
	if c.ID == "" {
		t.Error("expected storage id on created contact")
	}
}

func TestContactService_Create_RejectsBeforeStore(t *testing.T) {
	cases := []struct {
		name string
		in   ports.CreateContactInput
		want error
	}{
		{"missing contactId", ports.CreateContactInput{Email: "a@x.com", Phone: "1", IsPrimary: true}, domain.ErrMissingField},
		{"missing email", ports.CreateContactInput{ContactID: "c1", Phone: "1", IsPrimary: true}, domain.ErrMissingField},
		{"missing phone", ports.CreateContactInput{ContactID: "c1", Email: "a@x.com", IsPrimary: true}, domain.ErrMissingField},
		{"secondary without primary", ports.CreateContactInput{ContactID: "c1", Email: "a@x.com", Phone: "1"}, domain.ErrMissingPrimaryReference},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			repo := newStubContactRepo()
			svc := newSvc(repo)

			_, err := svc.CreateContact(context.Background(), tc.in)
			if !errors.Is(err, tc.want) {
				t.Fatalf("expected %v, got %v", tc.want, err)
			}
			if repo.calls != 0 {
				t.Errorf("store must not be touched on rejection, got %d calls", repo.calls)
			}
		})
	}
}

func TestContactService_Create_Secondary(t *testing.T) {
	svc := newSvc(newStubContactRepo())

	c, err := svc.CreateContact(context.Background(), ports.CreateContactInput{
		ContactID: "c2", Email: "b@x.com", Phone: "456", PrimaryContactID: "does-not-exist",
	})
	if err != nil {
		t.Fatalf("secondary with any primaryContactId must be accepted: %v", err)
	}
	if c.IsPrimary || c.PrimaryContactID != "does-not-exist" {
		t.Errorf("unexpected contact: %+v", c)
	}
}

func TestContactService_Create_DuplicateFails(t *testing.T) {
	repo := newStubContactRepo()
	svc := newSvc(repo)

	if _, err := svc.CreateContact(context.Background(), primaryInput("c1")); err != nil {
		t.Fatalf("first create failed: %v", err)
	}

	second := primaryInput("c1")
	second.Email = "other@x.com"
	_, err := svc.CreateContact(context.Background(), second)
	if !errors.Is(err, domain.ErrDuplicateContact) {
		t.Fatalf("expected ErrDuplicateContact, got %v", err)
	}
	if repo.byID["c1"].Email != "a@x.com" {
		t.Error("duplicate create must not overwrite the stored contact")
	}
}

func TestContactService_Create_RepoError(t *testing.T) {
	repo := newStubContactRepo()
	repo.createErr = domain.Storage("c1", errors.New("db unavailable"))
	svc := newSvc(repo)

	_, err := svc.CreateContact(context.Background(), primaryInput("c1"))
	if !errors.Is(err, domain.ErrStorage) {
		t.Fatalf("expected storage error, got %v", err)
	}
}

// ---------------------------------------------------------------------------
// Read tests
// ---------------------------------------------------------------------------

func TestContactService_Get_RoundTrip(t *testing.T) {
	svc := newSvc(newStubContactRepo())

	in := ports.CreateContactInput{ContactID: "c3", Email: "s@x.com", Phone: "789", PrimaryContactID: "c1"}
	if _, err := svc.CreateContact(context.Background(), in); err != nil {
		t.Fatalf("create: %v", err)
	}

	got, err := svc.GetContact(context.Background(), "c3")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.Email != in.Email || got.Phone != in.Phone || got.IsPrimary != in.IsPrimary || got.PrimaryContactID != in.PrimaryContactID {
		t.Errorf("round trip mismatch: %+v", got)
	}
}

func TestContactService_Get_NotFound(t *testing.T) {
	svc := newSvc(newStubContactRepo())

	_, err := svc.GetContact(context.Background(), "ghost")
	if !errors.Is(err, domain.ErrContactNotFound) {
		t.Fatalf("expected ErrContactNotFound, got %v", err)
	}
}

func TestContactService_List(t *testing.T) {
	svc := newSvc(newStubContactRepo())

	empty, err := svc.ListContacts(context.Background())
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if empty == nil || len(empty) != 0 {
		t.Fatalf("expected empty non-nil list, got %v", empty)
	}

	_, _ = svc.CreateContact(context.Background(), primaryInput("c1"))
	_, _ = svc.CreateContact(context.Background(), primaryInput("c2"))

	all, err := svc.ListContacts(context.Background())
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(all) != 2 {
		t.Errorf("expected 2 contacts, got %d", len(all))
	}
}

func TestContactService_List_RepoError(t *testing.T) {
	repo := newStubContactRepo()
	repo.listErr = domain.Storage("", errors.New("socket closed"))
	svc := newSvc(repo)

	if _, err := svc.ListContacts(context.Background()); err == nil {
		t.Fatal("expected error when repo fails, got nil")
	}
}

// ---------------------------------------------------------------------------
// UpdateContact tests
// ---------------------------------------------------------------------------

func TestContactService_Update_ReplacesFields(t *testing.T) {
	repo := newStubContactRepo()
	svc := newSvc(repo)
	_, _ = svc.CreateContact(context.Background(), ports.CreateContactInput{
		ContactID: "c1", Email: "a@x.com", Phone: "123", PrimaryContactID: "c0",
	})

	updated, err := svc.UpdateContact(context.Background(), ports.UpdateContactInput{
		ContactID: "c1",
		Email:     ptr("b@x.com"),
		Phone:     ptr("456"),
		IsPrimary: ptr(true),
	})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if updated.Email != "b@x.com" || updated.Phone != "456" || !updated.IsPrimary {
		t.Errorf("unexpected contact after update: %+v", updated)
	}
	// Omitted fields are cleared, not kept.
	if updated.PrimaryContactID != "" {
		t.Errorf("expected primaryContactId to be cleared, got %q", updated.PrimaryContactID)
	}
}

func TestContactService_Update_NotFoundDoesNotCreate(t *testing.T) {
	repo := newStubContactRepo()
	svc := newSvc(repo)

	_, err := svc.UpdateContact(context.Background(), ports.UpdateContactInput{
		ContactID: "ghost", Email: ptr("b@x.com"), Phone: ptr("456"), IsPrimary: ptr(true),
	})
	if !errors.Is(err, domain.ErrContactNotFound) {
		t.Fatalf("expected ErrContactNotFound, got %v", err)
	}
	if len(repo.byID) != 0 {
		t.Errorf("update must not create a contact, store has %d", len(repo.byID))
	}
}

func TestContactService_Update_LenientBypassesRelationshipRule(t *testing.T) {
	repo := newStubContactRepo()
	svc := newSvc(repo)
	_, _ = svc.CreateContact(context.Background(), primaryInput("c1"))

	updated, err := svc.UpdateContact(context.Background(), ports.UpdateContactInput{
		ContactID: "c1", IsPrimary: ptr(false),
	})
	if err != nil {
		t.Fatalf("lenient update must be accepted: %v", err)
	}
	if updated.IsPrimary || updated.PrimaryContactID != "" {
		t.Errorf("unexpected contact: %+v", updated)
	}
}

func TestContactService_Update_StrictRejectsSecondaryWithoutReference(t *testing.T) {
	repo := newStubContactRepo()
	svc := NewContactService(repo, discardLogger, Options{StrictUpdates: true})
	_, _ = svc.CreateContact(context.Background(), primaryInput("c1"))
	callsBefore := repo.calls

	_, err := svc.UpdateContact(context.Background(), ports.UpdateContactInput{
		ContactID: "c1", Email: ptr("b@x.com"), Phone: ptr("456"), IsPrimary: ptr(false),
	})
	if !errors.Is(err, domain.ErrMissingPrimaryReference) {
		t.Fatalf("expected ErrMissingPrimaryReference, got %v", err)
	}
	if repo.calls != callsBefore {
		t.Error("store must not be touched on rejection")
	}
	if !repo.byID["c1"].IsPrimary {
		t.Error("rejected update must not change the stored contact")
	}
}

// ---------------------------------------------------------------------------
// DeleteContact tests
// ---------------------------------------------------------------------------

func TestContactService_Delete_ThenGetNotFound(t *testing.T) {
	svc := newSvc(newStubContactRepo())
	_, _ = svc.CreateContact(context.Background(), primaryInput("c1"))

	if err := svc.DeleteContact(context.Background(), "c1"); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, err := svc.GetContact(context.Background(), "c1"); !errors.Is(err, domain.ErrContactNotFound) {
		t.Fatalf("expected ErrContactNotFound after delete, got %v", err)
	}
}

func TestContactService_Delete_NotFound(t *testing.T) {
	svc := newSvc(newStubContactRepo())

	if err := svc.DeleteContact(context.Background(), "ghost"); !errors.Is(err, domain.ErrContactNotFound) {
		t.Fatalf("expected ErrContactNotFound, got %v", err)
	}
}

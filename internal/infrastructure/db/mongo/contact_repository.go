package mongo

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/99minutos/contacts-api/internal/core/domain"
	"github.com/99minutos/contacts-api/internal/core/ports"
)

const collectionContacts = "contacts"

// ContactRepository implements ports.ContactRepository on the contacts collection.
type ContactRepository struct {
	col     *mongo.Collection
	timeout time.Duration
	now     func() time.Time
}

var _ ports.ContactRepository = (*ContactRepository)(nil)

// NewContactRepository binds the repository to db. A non-positive timeout
// falls back to defaultTimeout per operation.
func NewContactRepository(db *mongo.Database, timeout time.Duration) *ContactRepository {
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	return &ContactRepository{
		col:     db.Collection(collectionContacts),
		timeout: timeout,
		now:     func() time.Time { return time.Now().UTC() },
	}
}

type contactDocument struct {
	ID               primitive.ObjectID `bson:"_id,omitempty"`
	ContactID        string             `bson:"contactId"`
	Email            string             `bson:"email"`
	Phone            string             `bson:"phone"`
	IsPrimary        bool               `bson:"isPrimary"`
	PrimaryContactID string             `bson:"primaryContactId,omitempty"`
	CreatedAt        time.Time          `bson:"createdAt"`
	UpdatedAt        time.Time          `bson:"updatedAt"`
}

// Create inserts a new contact document. The unique index on contactId turns
// a second insert for the same id into a duplicate key error.
func (r *ContactRepository) Create(ctx context.Context, c *domain.Contact) (*domain.Contact, error) {
	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	// BSON datetimes carry millisecond precision.
	now := r.now().Truncate(time.Millisecond)
	doc := contactDocument{
		ContactID:        c.ContactID,
		Email:            c.Email,
		Phone:            c.Phone,
		IsPrimary:        c.IsPrimary,
		PrimaryContactID: c.PrimaryContactID,
		CreatedAt:        now,
		UpdatedAt:        now,
	}

	res, err := r.col.InsertOne(ctx, doc)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, domain.DuplicateKey(c.ContactID, err)
		}
		return nil, domain.Storage(c.ContactID, err)
	}

	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		doc.ID = oid
	}
	return doc.toDomain(), nil
}

// List returns all contacts in natural order.
func (r *ContactRepository) List(ctx context.Context) ([]*domain.Contact, error) {
	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	cur, err := r.col.Find(ctx, bson.D{})
	if err != nil {
		return nil, domain.Storage("", err)
	}

	var docs []contactDocument
	if err := cur.All(ctx, &docs); err != nil {
		return nil, domain.Storage("", err)
	}

	out := make([]*domain.Contact, 0, len(docs))
	for i := range docs {
		out = append(out, docs[i].toDomain())
	}
	return out, nil
}

func (r *ContactRepository) FindByContactID(ctx context.Context, contactID string) (*domain.Contact, error) {
	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	var doc contactDocument
	err := r.col.FindOne(ctx, bson.M{"contactId": contactID}).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.NotFound(contactID)
		}
		return nil, domain.Storage(contactID, err)
	}
	return doc.toDomain(), nil
}

// Update overwrites email, phone, isPrimary and primaryContactId in one
// findAndModify and returns the document as it is after the write. Absent
// values are written as null. No upsert.
func (r *ContactRepository) Update(ctx context.Context, contactID string, u domain.ContactUpdate) (*domain.Contact, error) {
	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	update := bson.M{"$set": bson.M{
		"email":            nullable(u.Email),
		"phone":            nullable(u.Phone),
		"isPrimary":        nullable(u.IsPrimary),
		"primaryContactId": nullable(u.PrimaryContactID),
		"updatedAt":        r.now().Truncate(time.Millisecond),
	}}
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var doc contactDocument
	err := r.col.FindOneAndUpdate(ctx, bson.M{"contactId": contactID}, update, opts).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.NotFound(contactID)
		}
		return nil, domain.Storage(contactID, err)
	}
	return doc.toDomain(), nil
}

func (r *ContactRepository) Delete(ctx context.Context, contactID string) error {
	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	res, err := r.col.DeleteOne(ctx, bson.M{"contactId": contactID})
	if err != nil {
		return domain.Storage(contactID, err)
	}
	if res.DeletedCount == 0 {
		return domain.NotFound(contactID)
	}
	return nil
}

// EnsureIndexes creates the unique contactId index the duplicate check relies on.
func (r *ContactRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	_, err := r.col.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "contactId", Value: 1}},
		Options: options.Index().SetUnique(true).SetName("contactId_unique"),
	})
	return err
}

func (d *contactDocument) toDomain() *domain.Contact {
	c := &domain.Contact{
		ContactID:        d.ContactID,
		Email:            d.Email,
		Phone:            d.Phone,
		IsPrimary:        d.IsPrimary,
		PrimaryContactID: d.PrimaryContactID,
		CreatedAt:        d.CreatedAt,
		UpdatedAt:        d.UpdatedAt,
	}
	if !d.ID.IsZero() {
		c.ID = d.ID.Hex()
	}
	return c
}

func nullable[T any](p *T) any {
	if p == nil {
		return nil
	}
	return *p
}

package mongo

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/fleetdesk/logistics-api/internal/core/domain"
	"github.com/fleetdesk/logistics-api/internal/core/ports"
)

const organizationsCollection = "organizations"

type OrganizationRepository struct {
	coll *mongo.Collection
}

func NewOrganizationRepository(db *mongo.Database) *OrganizationRepository {
	return &OrganizationRepository{coll: db.Collection(organizationsCollection)}
}

func (r *OrganizationRepository) Insert(ctx context.Context, o *domain.Organization) (*domain.Organization, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	created := *o
	created.ID = primitive.NewObjectID().Hex()
	if _, err := r.coll.InsertOne(ctx, &created); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, domain.ErrDuplicateOrganization
		}
		return nil, err
	}
	return &created, nil
}

func (r *OrganizationRepository) FindByOwner(ctx context.Context, ownerID string) ([]*domain.Organization, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	cur, err := r.coll.Find(ctx, bson.M{"created_by_id": ownerID}, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	orgs := make([]*domain.Organization, 0)
	for cur.Next(ctx) {
		var o domain.Organization
		if err := cur.Decode(&o); err != nil {
			return nil, err
		}
		orgs = append(orgs, &o)
	}
	return orgs, cur.Err()
}

func (r *OrganizationRepository) FindOwned(ctx context.Context, ownerID, id string) (*domain.Organization, error) {
	return r.findOne(ctx, bson.M{"_id": id, "created_by_id": ownerID})
}

func (r *OrganizationRepository) FindByID(ctx context.Context, id string) (*domain.Organization, error) {
	return r.findOne(ctx, bson.M{"_id": id})
}

func (r *OrganizationRepository) findOne(ctx context.Context, filter bson.M) (*domain.Organization, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var o domain.Organization
	if err := r.coll.FindOne(ctx, filter).Decode(&o); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrOrganizationNotFound
		}
		return nil, err
	}
	return &o, nil
}

func (r *OrganizationRepository) Update(ctx context.Context, id string, in ports.UpdateOrganizationInput) (*domain.Organization, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	set := bson.M{"updated_at": time.Now().UTC()}
	if in.Name != nil {
		set["name"] = *in.Name
	}
	if in.Address != nil {
		set["address"] = *in.Address
	}
	if in.TaxNumber != nil {
		set["tax_number"] = *in.TaxNumber
	}
	if in.TaxOffice != nil {
		set["tax_office"] = *in.TaxOffice
	}
	if in.InvoiceAddress != nil {
		set["invoice_address"] = *in.InvoiceAddress
	}

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var o domain.Organization
	err := r.coll.FindOneAndUpdate(ctx, bson.M{"_id": id}, bson.M{"$set": set}, opts).Decode(&o)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrOrganizationNotFound
		}
		if mongo.IsDuplicateKeyError(err) {
			return nil, domain.ErrDuplicateOrganization
		}
		return nil, err
	}
	return &o, nil
}

func (r *OrganizationRepository) Delete(ctx context.Context, id string) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.coll.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return domain.ErrOrganizationNotFound
	}
	return nil
}

// EnsureIndexes creates the unique tax number index and the owner/listing index.
func (r *OrganizationRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	indexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "tax_number", Value: 1}}, Options: uniqueIndex()},
		{Keys: bson.D{{Key: "created_by_id", Value: 1}, {Key: "created_at", Value: -1}}},
	}
	_, err := r.coll.Indexes().CreateMany(ctx, indexes)
	return err
}

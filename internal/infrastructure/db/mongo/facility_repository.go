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

const facilitiesCollection = "facilities"

type FacilityRepository struct {
	coll *mongo.Collection
}

func NewFacilityRepository(db *mongo.Database) *FacilityRepository {
	return &FacilityRepository{coll: db.Collection(facilitiesCollection)}
}

func (r *FacilityRepository) Insert(ctx context.Context, f *domain.Facility) (*domain.Facility, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	created := *f
	created.ID = primitive.NewObjectID().Hex()
	if _, err := r.coll.InsertOne(ctx, &created); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, domain.ErrDuplicateFacility
		}
		return nil, err
	}
	return &created, nil
}

func (r *FacilityRepository) FindByOwner(ctx context.Context, ownerID string) ([]*domain.Facility, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	cur, err := r.coll.Find(ctx, bson.M{"created_by_id": ownerID}, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	facilities := make([]*domain.Facility, 0)
	for cur.Next(ctx) {
		var f domain.Facility
		if err := cur.Decode(&f); err != nil {
			return nil, err
		}
		facilities = append(facilities, &f)
	}
	return facilities, cur.Err()
}

func (r *FacilityRepository) FindOwned(ctx context.Context, ownerID, id string) (*domain.Facility, error) {
	return r.findOne(ctx, bson.M{"_id": id, "created_by_id": ownerID})
}

func (r *FacilityRepository) FindByID(ctx context.Context, id string) (*domain.Facility, error) {
	return r.findOne(ctx, bson.M{"_id": id})
}

func (r *FacilityRepository) findOne(ctx context.Context, filter bson.M) (*domain.Facility, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var f domain.Facility
	if err := r.coll.FindOne(ctx, filter).Decode(&f); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrFacilityNotFound
		}
		return nil, err
	}
	return &f, nil
}

func (r *FacilityRepository) Update(ctx context.Context, id string, in ports.UpdateFacilityInput) (*domain.Facility, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	set := bson.M{"updated_at": time.Now().UTC()}
	if in.Name != nil {
		set["name"] = *in.Name
	}
	if in.Address != nil {
		set["address"] = *in.Address
	}
	if in.City != nil {
		set["city"] = *in.City
	}
	if in.Country != nil {
		set["country"] = *in.Country
	}

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var f domain.Facility
	err := r.coll.FindOneAndUpdate(ctx, bson.M{"_id": id}, bson.M{"$set": set}, opts).Decode(&f)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrFacilityNotFound
		}
		if mongo.IsDuplicateKeyError(err) {
			return nil, domain.ErrDuplicateFacility
		}
		return nil, err
	}
	return &f, nil
}

func (r *FacilityRepository) Delete(ctx context.Context, id string) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.coll.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return domain.ErrFacilityNotFound
	}
	return nil
}

// EnsureIndexes creates the unique name index and the owner/listing index.
func (r *FacilityRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	indexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "name", Value: 1}}, Options: uniqueIndex()},
		{Keys: bson.D{{Key: "created_by_id", Value: 1}, {Key: "created_at", Value: -1}}},
	}
	_, err := r.coll.Indexes().CreateMany(ctx, indexes)
	return err
}

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

const trucksCollection = "trucks"

type TruckRepository struct {
	coll *mongo.Collection
}

func NewTruckRepository(db *mongo.Database) *TruckRepository {
	return &TruckRepository{coll: db.Collection(trucksCollection)}
}

func (r *TruckRepository) Insert(ctx context.Context, t *domain.Truck) (*domain.Truck, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	created := *t
	created.ID = primitive.NewObjectID().Hex()
	if _, err := r.coll.InsertOne(ctx, &created); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, domain.ErrDuplicateTruck
		}
		return nil, err
	}
	return &created, nil
}

func (r *TruckRepository) FindByOwner(ctx context.Context, ownerID string) ([]*domain.Truck, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	cur, err := r.coll.Find(ctx, bson.M{"created_by_id": ownerID}, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	trucks := make([]*domain.Truck, 0)
	for cur.Next(ctx) {
		var t domain.Truck
		if err := cur.Decode(&t); err != nil {
			return nil, err
		}
		trucks = append(trucks, &t)
	}
	return trucks, cur.Err()
}

func (r *TruckRepository) FindOwned(ctx context.Context, ownerID, id string) (*domain.Truck, error) {
	return r.findOne(ctx, bson.M{"_id": id, "created_by_id": ownerID})
}

func (r *TruckRepository) FindByID(ctx context.Context, id string) (*domain.Truck, error) {
	return r.findOne(ctx, bson.M{"_id": id})
}

func (r *TruckRepository) findOne(ctx context.Context, filter bson.M) (*domain.Truck, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var t domain.Truck
	if err := r.coll.FindOne(ctx, filter).Decode(&t); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrTruckNotFound
		}
		return nil, err
	}
	return &t, nil
}

func (r *TruckRepository) Update(ctx context.Context, id string, in ports.UpdateTruckInput) (*domain.Truck, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	set := bson.M{"updated_at": time.Now().UTC()}
	if in.PlateNumber != nil {
		set["plate_number"] = *in.PlateNumber
	}
	if in.DriverName != nil {
		set["driver_name"] = *in.DriverName
	}
	if in.DriverPhone != nil {
		set["driver_phone"] = *in.DriverPhone
	}
	if in.Capacity != nil {
		set["capacity"] = *in.Capacity
	}
	if in.Status != nil {
		set["status"] = *in.Status
	}

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var t domain.Truck
	err := r.coll.FindOneAndUpdate(ctx, bson.M{"_id": id}, bson.M{"$set": set}, opts).Decode(&t)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrTruckNotFound
		}
		if mongo.IsDuplicateKeyError(err) {
			return nil, domain.ErrDuplicateTruck
		}
		return nil, err
	}
	return &t, nil
}

func (r *TruckRepository) Delete(ctx context.Context, id string) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.coll.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return domain.ErrTruckNotFound
	}
	return nil
}

// EnsureIndexes creates the unique plate number index and the owner/listing index.
func (r *TruckRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	indexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "plate_number", Value: 1}}, Options: uniqueIndex()},
		{Keys: bson.D{{Key: "created_by_id", Value: 1}, {Key: "created_at", Value: -1}}},
	}
	_, err := r.coll.Indexes().CreateMany(ctx, indexes)
	return err
}

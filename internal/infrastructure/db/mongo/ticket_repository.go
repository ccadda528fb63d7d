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

const ticketsCollection = "tickets"

type TicketRepository struct {
	coll *mongo.Collection
}

func NewTicketRepository(db *mongo.Database) *TicketRepository {
	return &TicketRepository{coll: db.Collection(ticketsCollection)}
}

func (r *TicketRepository) Insert(ctx context.Context, t *domain.Ticket) (*domain.Ticket, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	created := *t
	created.ID = primitive.NewObjectID().Hex()
	if _, err := r.coll.InsertOne(ctx, &created); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, domain.ErrDuplicateTicket
		}
		return nil, err
	}
	return &created, nil
}

func (r *TicketRepository) FindByOwner(ctx context.Context, ownerID string) ([]*domain.Ticket, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	cur, err := r.coll.Find(ctx, bson.M{"created_by_id": ownerID}, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	tickets := make([]*domain.Ticket, 0)
	for cur.Next(ctx) {
		var t domain.Ticket
		if err := cur.Decode(&t); err != nil {
			return nil, err
		}
		tickets = append(tickets, &t)
	}
	return tickets, cur.Err()
}

func (r *TicketRepository) FindOwned(ctx context.Context, ownerID, id string) (*domain.Ticket, error) {
	return r.findOne(ctx, bson.M{"_id": id, "created_by_id": ownerID})
}

func (r *TicketRepository) FindByID(ctx context.Context, id string) (*domain.Ticket, error) {
	return r.findOne(ctx, bson.M{"_id": id})
}

func (r *TicketRepository) findOne(ctx context.Context, filter bson.M) (*domain.Ticket, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var t domain.Ticket
	if err := r.coll.FindOne(ctx, filter).Decode(&t); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrTicketNotFound
		}
		return nil, err
	}
	return &t, nil
}

func (r *TicketRepository) Update(ctx context.Context, id string, in ports.UpdateTicketInput) (*domain.Ticket, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	set := bson.M{"updated_at": time.Now().UTC()}
	if in.ContainerNumber != nil {
		set["container_number"] = *in.ContainerNumber
	}
	if in.EntryTime != nil {
		set["entry_time"] = *in.EntryTime
	}
	if in.ExitTime != nil {
		set["exit_time"] = *in.ExitTime
	}
	if in.TruckID != nil {
		set["truck_id"] = *in.TruckID
	}
	if in.OrganizationID != nil {
		set["organization_id"] = *in.OrganizationID
	}
	if in.FacilityID != nil {
		set["facility_id"] = *in.FacilityID
	}
	if in.IsInvoiceCreated != nil {
		set["is_invoice_created"] = *in.IsInvoiceCreated
	}

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var t domain.Ticket
	err := r.coll.FindOneAndUpdate(ctx, bson.M{"_id": id}, bson.M{"$set": set}, opts).Decode(&t)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrTicketNotFound
		}
		if mongo.IsDuplicateKeyError(err) {
			return nil, domain.ErrDuplicateTicket
		}
		return nil, err
	}
	return &t, nil
}

func (r *TicketRepository) Delete(ctx context.Context, id string) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.coll.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return domain.ErrTicketNotFound
	}
	return nil
}

// EnsureIndexes creates the sparse unique container number index (tickets
// without a container number are exempt) and the owner/listing index.
func (r *TicketRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	indexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "container_number", Value: 1}}, Options: sparseUniqueIndex()},
		{Keys: bson.D{{Key: "created_by_id", Value: 1}, {Key: "created_at", Value: -1}}},
	}
	_, err := r.coll.Indexes().CreateMany(ctx, indexes)
	return err
}

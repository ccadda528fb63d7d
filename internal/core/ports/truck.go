package ports

import (
	"context"

	"github.com/fleetdesk/logistics-api/internal/core/domain"
)

// CreateTruckInput carries all data needed to register a truck.
type CreateTruckInput struct {
	PlateNumber string
	DriverName  string
	DriverPhone string
	Capacity    int
	Status      domain.TruckStatus
}

// UpdateTruckInput is a partial update: nil fields are left unchanged.
type UpdateTruckInput struct {
	PlateNumber *string
	DriverName  *string
	DriverPhone *string
	Capacity    *int
	Status      *domain.TruckStatus
}

// TruckService defines use-case operations for trucks. Every operation is
// scoped to ownerID, the id of the authenticated caller.
type TruckService interface {
	Create(ctx context.Context, ownerID string, in CreateTruckInput) (*domain.Truck, error)
	List(ctx context.Context, ownerID string) ([]*domain.Truck, error)
	Get(ctx context.Context, ownerID, truckID string) (*domain.Truck, error)
	Update(ctx context.Context, ownerID, truckID string, in UpdateTruckInput) (*domain.Truck, error)
	Delete(ctx context.Context, ownerID, truckID string) error
}

// TruckRepository defines persistence operations for trucks.
type TruckRepository interface {
	Insert(ctx context.Context, t *domain.Truck) (*domain.Truck, error)
	// FindByOwner returns all trucks created by ownerID, newest first.
	FindByOwner(ctx context.Context, ownerID string) ([]*domain.Truck, error)
	// FindOwned retrieves a truck with the owner folded into the query, so a
	// missing truck and someone else's truck are indistinguishable.
	FindOwned(ctx context.Context, ownerID, id string) (*domain.Truck, error)
	// FindByID retrieves a truck regardless of owner; callers must check
	// CreatedByID before acting on the result.
	FindByID(ctx context.Context, id string) (*domain.Truck, error)
	Update(ctx context.Context, id string, in UpdateTruckInput) (*domain.Truck, error)
	Delete(ctx context.Context, id string) error
}

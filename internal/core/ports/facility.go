package ports

import (
	"context"

	"github.com/fleetdesk/logistics-api/internal/core/domain"
)

// CreateFacilityInput carries all data needed to register a facility.
type CreateFacilityInput struct {
	Name    string
	Address string
	City    string
	Country string
}

// UpdateFacilityInput is a partial update: nil fields are left unchanged.
type UpdateFacilityInput struct {
	Name    *string
	Address *string
	City    *string
	Country *string
}

// FacilityService defines use-case operations for facilities, scoped to the
// authenticated caller.
type FacilityService interface {
	Create(ctx context.Context, ownerID string, in CreateFacilityInput) (*domain.Facility, error)
	List(ctx context.Context, ownerID string) ([]*domain.Facility, error)
	Get(ctx context.Context, ownerID, facilityID string) (*domain.Facility, error)
	Update(ctx context.Context, ownerID, facilityID string, in UpdateFacilityInput) (*domain.Facility, error)
	Delete(ctx context.Context, ownerID, facilityID string) error
}

// FacilityRepository defines persistence operations for facilities.
type FacilityRepository interface {
	Insert(ctx context.Context, f *domain.Facility) (*domain.Facility, error)
	FindByOwner(ctx context.Context, ownerID string) ([]*domain.Facility, error)
	FindOwned(ctx context.Context, ownerID, id string) (*domain.Facility, error)
	FindByID(ctx context.Context, id string) (*domain.Facility, error)
	Update(ctx context.Context, id string, in UpdateFacilityInput) (*domain.Facility, error)
	Delete(ctx context.Context, id string) error
}

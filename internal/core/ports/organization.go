package ports

import (
	"context"

	"github.com/fleetdesk/logistics-api/internal/core/domain"
)

// CreateOrganizationInput carries all data needed to register an organization.
type CreateOrganizationInput struct {
	Name           string
	Address        string
	TaxNumber      string
	TaxOffice      string
	InvoiceAddress string
}

// UpdateOrganizationInput is a partial update: nil fields are left unchanged.
type UpdateOrganizationInput struct {
	Name           *string
	Address        *string
	TaxNumber      *string
	TaxOffice      *string
	InvoiceAddress *string
}

// OrganizationService defines use-case operations for organizations, scoped
// to the authenticated caller.
type OrganizationService interface {
	Create(ctx context.Context, ownerID string, in CreateOrganizationInput) (*domain.Organization, error)
	List(ctx context.Context, ownerID string) ([]*domain.Organization, error)
	Get(ctx context.Context, ownerID, organizationID string) (*domain.Organization, error)
	Update(ctx context.Context, ownerID, organizationID string, in UpdateOrganizationInput) (*domain.Organization, error)
	Delete(ctx context.Context, ownerID, organizationID string) error
}

// OrganizationRepository defines persistence operations for organizations.
type OrganizationRepository interface {
	Insert(ctx context.Context, o *domain.Organization) (*domain.Organization, error)
	FindByOwner(ctx context.Context, ownerID string) ([]*domain.Organization, error)
	FindOwned(ctx context.Context, ownerID, id string) (*domain.Organization, error)
	FindByID(ctx context.Context, id string) (*domain.Organization, error)
	Update(ctx context.Context, id string, in UpdateOrganizationInput) (*domain.Organization, error)
	Delete(ctx context.Context, id string) error
}

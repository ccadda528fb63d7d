package ports

import (
	"context"
	"time"

	"github.com/fleetdesk/logistics-api/internal/core/domain"
)

// CreateTicketInput carries all data needed to record a container movement.
type CreateTicketInput struct {
	ContainerNumber  string
	EntryTime        *time.Time
	ExitTime         *time.Time
	TruckID          string
	OrganizationID   string
	FacilityID       string
	IsInvoiceCreated bool
}

// UpdateTicketInput is a partial update: nil fields are left unchanged.
type UpdateTicketInput struct {
	ContainerNumber  *string
	EntryTime        *time.Time
	ExitTime         *time.Time
	TruckID          *string
	OrganizationID   *string
	FacilityID       *string
	IsInvoiceCreated *bool
}

// TicketDetail is a single ticket with its referenced resources hydrated.
// A reference is left nil when the target no longer exists or is not owned
// by the caller.
type TicketDetail struct {
	Ticket       *domain.Ticket
	Truck        *domain.Truck
	Organization *domain.Organization
	Facility     *domain.Facility
}

// TicketService defines use-case operations for tickets, scoped to the
// authenticated caller.
type TicketService interface {
	Create(ctx context.Context, ownerID string, in CreateTicketInput) (*domain.Ticket, error)
	List(ctx context.Context, ownerID string) ([]*domain.Ticket, error)
	Get(ctx context.Context, ownerID, ticketID string) (*TicketDetail, error)
	Update(ctx context.Context, ownerID, ticketID string, in UpdateTicketInput) (*domain.Ticket, error)
	Delete(ctx context.Context, ownerID, ticketID string) error
}

// TicketRepository defines persistence operations for tickets.
type TicketRepository interface {
	Insert(ctx context.Context, t *domain.Ticket) (*domain.Ticket, error)
	FindByOwner(ctx context.Context, ownerID string) ([]*domain.Ticket, error)
	FindOwned(ctx context.Context, ownerID, id string) (*domain.Ticket, error)
	FindByID(ctx context.Context, id string) (*domain.Ticket, error)
	Update(ctx context.Context, id string, in UpdateTicketInput) (*domain.Ticket, error)
	Delete(ctx context.Context, id string) error
}

package service

import (
	"context"
	"errors"
	"time"

	"github.com/rs/zerolog"

	"github.com/fleetdesk/logistics-api/internal/core/domain"
	"github.com/fleetdesk/logistics-api/internal/core/ports"
)

// TicketService implements ticket CRUD scoped to the owning user. Single
// reads hydrate the referenced truck, organization, and facility through
// owner-scoped lookups.
type TicketService struct {
	repo       ports.TicketRepository
	trucks     ports.TruckRepository
	orgs       ports.OrganizationRepository
	facilities ports.FacilityRepository
	logger     zerolog.Logger
}

func NewTicketService(
	repo ports.TicketRepository,
	trucks ports.TruckRepository,
	orgs ports.OrganizationRepository,
	facilities ports.FacilityRepository,
	logger zerolog.Logger,
) *TicketService {
	return &TicketService{
		repo:       repo,
		trucks:     trucks,
		orgs:       orgs,
		facilities: facilities,
		logger:     logger,
	}
}

func (s *TicketService) Create(ctx context.Context, ownerID string, in ports.CreateTicketInput) (*domain.Ticket, error) {
	now := time.Now().UTC()
	ticket := &domain.Ticket{
		ContainerNumber:  in.ContainerNumber,
		EntryTime:        in.EntryTime,
		ExitTime:         in.ExitTime,
		TruckID:          in.TruckID,
		OrganizationID:   in.OrganizationID,
		FacilityID:       in.FacilityID,
		IsInvoiceCreated: in.IsInvoiceCreated,
		CreatedByID:      ownerID,
		CreatedAt:        now,
		UpdatedAt:        now,
	}

	created, err := s.repo.Insert(ctx, ticket)
	if err != nil {
		return nil, err
	}

	s.logger.Info().Str("ticket_id", created.ID).Str("owner_id", ownerID).Msg("ticket created")
	return created, nil
}

func (s *TicketService) List(ctx context.Context, ownerID string) ([]*domain.Ticket, error) {
	return s.repo.FindByOwner(ctx, ownerID)
}

// Get retrieves a single ticket with its references hydrated. A reference
// that is missing or not owned by the caller is simply omitted from the
// detail rather than failing the read.
func (s *TicketService) Get(ctx context.Context, ownerID, ticketID string) (*ports.TicketDetail, error) {
	ticket, err := s.repo.FindOwned(ctx, ownerID, ticketID)
	if err != nil {
		if errors.Is(err, domain.ErrTicketNotFound) {
			return nil, domain.ErrAccessDenied
		}
		return nil, err
	}

	detail := &ports.TicketDetail{Ticket: ticket}
	if ticket.TruckID != "" {
		if truck, err := s.trucks.FindOwned(ctx, ownerID, ticket.TruckID); err == nil {
			detail.Truck = truck
		}
	}
	if org, err := s.orgs.FindOwned(ctx, ownerID, ticket.OrganizationID); err == nil {
		detail.Organization = org
	}
	if facility, err := s.facilities.FindOwned(ctx, ownerID, ticket.FacilityID); err == nil {
		detail.Facility = facility
	}
	return detail, nil
}

func (s *TicketService) Update(ctx context.Context, ownerID, ticketID string, in ports.UpdateTicketInput) (*domain.Ticket, error) {
	if err := s.authorize(ctx, ownerID, ticketID); err != nil {
		return nil, err
	}
	return s.repo.Update(ctx, ticketID, in)
}

func (s *TicketService) Delete(ctx context.Context, ownerID, ticketID string) error {
	if err := s.authorize(ctx, ownerID, ticketID); err != nil {
		return err
	}
	return s.repo.Delete(ctx, ticketID)
}

func (s *TicketService) authorize(ctx context.Context, ownerID, ticketID string) error {
	ticket, err := s.repo.FindByID(ctx, ticketID)
	if err != nil {
		if errors.Is(err, domain.ErrTicketNotFound) {
			return domain.ErrAccessDenied
		}
		return err
	}
	if ticket.CreatedByID != ownerID {
		return domain.ErrAccessDenied
	}
	return nil
}

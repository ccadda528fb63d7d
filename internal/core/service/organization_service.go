package service

import (
	"context"
	"errors"
	"time"

	"github.com/rs/zerolog"

	"github.com/fleetdesk/logistics-api/internal/core/domain"
	"github.com/fleetdesk/logistics-api/internal/core/ports"
)

// OrganizationService implements organization CRUD scoped to the owning user.
type OrganizationService struct {
	repo   ports.OrganizationRepository
	logger zerolog.Logger
}

func NewOrganizationService(repo ports.OrganizationRepository, logger zerolog.Logger) *OrganizationService {
	return &OrganizationService{repo: repo, logger: logger}
}

func (s *OrganizationService) Create(ctx context.Context, ownerID string, in ports.CreateOrganizationInput) (*domain.Organization, error) {
	now := time.Now().UTC()
	org := &domain.Organization{
		Name:           in.Name,
		Address:        in.Address,
		TaxNumber:      in.TaxNumber,
		TaxOffice:      in.TaxOffice,
		InvoiceAddress: in.InvoiceAddress,
		CreatedByID:    ownerID,
		CreatedAt:      now,
		UpdatedAt:      now,
	}

	created, err := s.repo.Insert(ctx, org)
	if err != nil {
		return nil, err
	}

	s.logger.Info().Str("organization_id", created.ID).Str("owner_id", ownerID).Msg("organization created")
	return created, nil
}

func (s *OrganizationService) List(ctx context.Context, ownerID string) ([]*domain.Organization, error) {
	return s.repo.FindByOwner(ctx, ownerID)
}

func (s *OrganizationService) Get(ctx context.Context, ownerID, organizationID string) (*domain.Organization, error) {
	org, err := s.repo.FindOwned(ctx, ownerID, organizationID)
	if err != nil {
		if errors.Is(err, domain.ErrOrganizationNotFound) {
			return nil, domain.ErrAccessDenied
		}
		return nil, err
	}
	return org, nil
}

func (s *OrganizationService) Update(ctx context.Context, ownerID, organizationID string, in ports.UpdateOrganizationInput) (*domain.Organization, error) {
	if err := s.authorize(ctx, ownerID, organizationID); err != nil {
		return nil, err
	}
	return s.repo.Update(ctx, organizationID, in)
}

func (s *OrganizationService) Delete(ctx context.Context, ownerID, organizationID string) error {
	if err := s.authorize(ctx, ownerID, organizationID); err != nil {
		return err
	}
	return s.repo.Delete(ctx, organizationID)
}

func (s *OrganizationService) authorize(ctx context.Context, ownerID, organizationID string) error {
	org, err := s.repo.FindByID(ctx, organizationID)
	if err != nil {
		if errors.Is(err, domain.ErrOrganizationNotFound) {
			return domain.ErrAccessDenied
		}
		return err
	}
	if org.CreatedByID != ownerID {
		return domain.ErrAccessDenied
	}
	return nil
}

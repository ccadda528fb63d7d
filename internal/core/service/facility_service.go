package service

import (
	"context"
	"errors"
	"time"

	"github.com/rs/zerolog"

	"github.com/fleetdesk/logistics-api/internal/core/domain"
	"github.com/fleetdesk/logistics-api/internal/core/ports"
)

// FacilityService implements facility CRUD scoped to the owning user.
type FacilityService struct {
	repo   ports.FacilityRepository
	logger zerolog.Logger
}

func NewFacilityService(repo ports.FacilityRepository, logger zerolog.Logger) *FacilityService {
	return &FacilityService{repo: repo, logger: logger}
}

func (s *FacilityService) Create(ctx context.Context, ownerID string, in ports.CreateFacilityInput) (*domain.Facility, error) {
	now := time.Now().UTC()
	facility := &domain.Facility{
		Name:        in.Name,
		Address:     in.Address,
		City:        in.City,
		Country:     in.Country,
		CreatedByID: ownerID,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	created, err := s.repo.Insert(ctx, facility)
	if err != nil {
		return nil, err
	}

	s.logger.Info().Str("facility_id", created.ID).Str("owner_id", ownerID).Msg("facility created")
	return created, nil
}

func (s *FacilityService) List(ctx context.Context, ownerID string) ([]*domain.Facility, error) {
	return s.repo.FindByOwner(ctx, ownerID)
}

func (s *FacilityService) Get(ctx context.Context, ownerID, facilityID string) (*domain.Facility, error) {
	facility, err := s.repo.FindOwned(ctx, ownerID, facilityID)
	if err != nil {
		if errors.Is(err, domain.ErrFacilityNotFound) {
			return nil, domain.ErrAccessDenied
		}
		return nil, err
	}
	return facility, nil
}

func (s *FacilityService) Update(ctx context.Context, ownerID, facilityID string, in ports.UpdateFacilityInput) (*domain.Facility, error) {
	if err := s.authorize(ctx, ownerID, facilityID); err != nil {
		return nil, err
	}
	return s.repo.Update(ctx, facilityID, in)
}

func (s *FacilityService) Delete(ctx context.Context, ownerID, facilityID string) error {
	if err := s.authorize(ctx, ownerID, facilityID); err != nil {
		return err
	}
	return s.repo.Delete(ctx, facilityID)
}

func (s *FacilityService) authorize(ctx context.Context, ownerID, facilityID string) error {
	facility, err := s.repo.FindByID(ctx, facilityID)
	if err != nil {
		if errors.Is(err, domain.ErrFacilityNotFound) {
			return domain.ErrAccessDenied
		}
		return err
	}
	if facility.CreatedByID != ownerID {
		return domain.ErrAccessDenied
	}
	return nil
}

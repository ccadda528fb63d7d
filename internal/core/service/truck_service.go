package service

import (
	"context"
	"errors"
	"time"

	"github.com/rs/zerolog"

	"github.com/fleetdesk/logistics-api/internal/core/domain"
	"github.com/fleetdesk/logistics-api/internal/core/ports"
)

// TruckService implements truck CRUD scoped to the owning user.
type TruckService struct {
	repo   ports.TruckRepository
	logger zerolog.Logger
}

func NewTruckService(repo ports.TruckRepository, logger zerolog.Logger) *TruckService {
	return &TruckService{repo: repo, logger: logger}
}

func (s *TruckService) Create(ctx context.Context, ownerID string, in ports.CreateTruckInput) (*domain.Truck, error) {
	now := time.Now().UTC()
	truck := &domain.Truck{
		PlateNumber: in.PlateNumber,
		DriverName:  in.DriverName,
		DriverPhone: in.DriverPhone,
		Capacity:    in.Capacity,
		Status:      in.Status,
		CreatedByID: ownerID,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	created, err := s.repo.Insert(ctx, truck)
	if err != nil {
		return nil, err
	}

	s.logger.Info().Str("truck_id", created.ID).Str("owner_id", ownerID).Msg("truck created")
	return created, nil
}

func (s *TruckService) List(ctx context.Context, ownerID string) ([]*domain.Truck, error) {
	return s.repo.FindByOwner(ctx, ownerID)
}

// Get retrieves a single truck. The owner is part of the store query, so a
// missing id and another user's id both come back as ErrAccessDenied.
func (s *TruckService) Get(ctx context.Context, ownerID, truckID string) (*domain.Truck, error) {
	truck, err := s.repo.FindOwned(ctx, ownerID, truckID)
	if err != nil {
		if errors.Is(err, domain.ErrTruckNotFound) {
			return nil, domain.ErrAccessDenied
		}
		return nil, err
	}
	return truck, nil
}

func (s *TruckService) Update(ctx context.Context, ownerID, truckID string, in ports.UpdateTruckInput) (*domain.Truck, error) {
	if err := s.authorize(ctx, ownerID, truckID); err != nil {
		return nil, err
	}
	return s.repo.Update(ctx, truckID, in)
}

func (s *TruckService) Delete(ctx context.Context, ownerID, truckID string) error {
	if err := s.authorize(ctx, ownerID, truckID); err != nil {
		return err
	}
	return s.repo.Delete(ctx, truckID)
}

// authorize allows a mutation iff the truck exists and was created by
// ownerID. Both failure modes collapse to ErrAccessDenied.
func (s *TruckService) authorize(ctx context.Context, ownerID, truckID string) error {
	truck, err := s.repo.FindByID(ctx, truckID)
	if err != nil {
		if errors.Is(err, domain.ErrTruckNotFound) {
			return domain.ErrAccessDenied
		}
		return err
	}
	if truck.CreatedByID != ownerID {
		return domain.ErrAccessDenied
	}
	return nil
}

package handler

import (
	"github.com/fleetdesk/logistics-api/internal/core/domain"
	"github.com/fleetdesk/logistics-api/internal/core/ports"
)

// errorResponse is the standard error envelope returned on all 4xx/5xx
// responses. Rendering happens in the central HTTP error handler.
type errorResponse struct {
	Error string `json:"error"`
}

// messageResponse is the envelope for delete confirmations.
type messageResponse struct {
	Message string `json:"message"`
}

type createTruckRequest struct {
	PlateNumber string `json:"plate_number" validate:"required"`
	DriverName  string `json:"driver_name"  validate:"required"`
	DriverPhone string `json:"driver_phone" validate:"required"`
	Capacity    int    `json:"capacity"     validate:"required,gt=0"`
	Status      string `json:"status"       validate:"required,oneof=LOADED UNLOADED"`
}

type updateTruckRequest struct {
	PlateNumber *string `json:"plate_number" validate:"omitempty,min=1"`
	DriverName  *string `json:"driver_name"  validate:"omitempty,min=1"`
	DriverPhone *string `json:"driver_phone" validate:"omitempty,min=1"`
	Capacity    *int    `json:"capacity"     validate:"omitempty,gt=0"`
	Status      *string `json:"status"       validate:"omitempty,oneof=LOADED UNLOADED"`
}

func (r updateTruckRequest) toInput() ports.UpdateTruckInput {
	in := ports.UpdateTruckInput{
		PlateNumber: r.PlateNumber,
		DriverName:  r.DriverName,
		DriverPhone: r.DriverPhone,
		Capacity:    r.Capacity,
	}
	if r.Status != nil {
		status := domain.TruckStatus(*r.Status)
		in.Status = &status
	}
	return in
}

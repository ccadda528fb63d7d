package handler

import (
	"time"

	"github.com/fleetdesk/logistics-api/internal/core/domain"
	"github.com/fleetdesk/logistics-api/internal/core/ports"
)

type createTicketRequest struct {
	ContainerNumber  string     `json:"container_number"`
	EntryTime        *time.Time `json:"entry_time"`
	ExitTime         *time.Time `json:"exit_time"`
	TruckID          string     `json:"truck_id"`
	OrganizationID   string     `json:"organization_id" validate:"required"`
	FacilityID       string     `json:"facility_id"     validate:"required"`
	IsInvoiceCreated *bool      `json:"is_invoice_created" validate:"required"`
}

type updateTicketRequest struct {
	ContainerNumber  *string    `json:"container_number" validate:"omitempty,min=1"`
	EntryTime        *time.Time `json:"entry_time"`
	ExitTime         *time.Time `json:"exit_time"`
	TruckID          *string    `json:"truck_id"         validate:"omitempty,min=1"`
	OrganizationID   *string    `json:"organization_id"  validate:"omitempty,min=1"`
	FacilityID       *string    `json:"facility_id"      validate:"omitempty,min=1"`
	IsInvoiceCreated *bool      `json:"is_invoice_created"`
}

// ticketDetailResponse is the hydrated single-ticket view. Referenced
// resources are present only when they still exist and belong to the caller.
type ticketDetailResponse struct {
	*domain.Ticket
	Truck        *domain.Truck        `json:"truck,omitempty"`
	Organization *domain.Organization `json:"organization,omitempty"`
	Facility     *domain.Facility     `json:"facility,omitempty"`
}

func toTicketDetailResponse(d *ports.TicketDetail) ticketDetailResponse {
	return ticketDetailResponse{
		Ticket:       d.Ticket,
		Truck:        d.Truck,
		Organization: d.Organization,
		Facility:     d.Facility,
	}
}

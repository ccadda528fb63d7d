package domain

import (
	"errors"
	"time"
)

var ErrTicketNotFound = errors.New("ticket not found")
var ErrDuplicateTicket = errors.New("container number already exists")

// Ticket records a single container movement through a facility: which truck
// carried it, which organization it belongs to, and when it entered and left.
type Ticket struct {
	ID               string     `json:"id" bson:"_id,omitempty"`
	ContainerNumber  string     `json:"container_number,omitempty" bson:"container_number,omitempty"`
	EntryTime        *time.Time `json:"entry_time,omitempty" bson:"entry_time,omitempty"`
	ExitTime         *time.Time `json:"exit_time,omitempty" bson:"exit_time,omitempty"`
	TruckID          string     `json:"truck_id,omitempty" bson:"truck_id,omitempty"`
	OrganizationID   string     `json:"organization_id" bson:"organization_id"`
	FacilityID       string     `json:"facility_id" bson:"facility_id"`
	IsInvoiceCreated bool       `json:"is_invoice_created" bson:"is_invoice_created"`
	CreatedByID      string     `json:"created_by_id" bson:"created_by_id"`
	CreatedAt        time.Time  `json:"created_at" bson:"created_at"`
	UpdatedAt        time.Time  `json:"updated_at" bson:"updated_at"`
}

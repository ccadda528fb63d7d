package domain

import (
	"errors"
	"time"
)

var ErrOrganizationNotFound = errors.New("organization not found")
var ErrDuplicateOrganization = errors.New("organization already exists")

// Organization is a customer company tickets are invoiced to. Tax numbers are
// unique across the whole system.
type Organization struct {
	ID             string    `json:"id" bson:"_id,omitempty"`
	Name           string    `json:"name" bson:"name"`
	Address        string    `json:"address" bson:"address"`
	TaxNumber      string    `json:"tax_number" bson:"tax_number"`
	TaxOffice      string    `json:"tax_office" bson:"tax_office"`
	InvoiceAddress string    `json:"invoice_address" bson:"invoice_address"`
	CreatedByID    string    `json:"created_by_id" bson:"created_by_id"`
	CreatedAt      time.Time `json:"created_at" bson:"created_at"`
	UpdatedAt      time.Time `json:"updated_at" bson:"updated_at"`
}

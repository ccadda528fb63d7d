package domain

import (
	"errors"
	"time"
)

var ErrFacilityNotFound = errors.New("facility not found")
var ErrDuplicateFacility = errors.New("facility already exists")

// Facility is a physical site (port, depot, warehouse) where containers are
// moved in and out.
type Facility struct {
	ID          string    `json:"id" bson:"_id,omitempty"`
	Name        string    `json:"name" bson:"name"`
	Address     string    `json:"address" bson:"address"`
	City        string    `json:"city" bson:"city"`
	Country     string    `json:"country" bson:"country"`
	CreatedByID string    `json:"created_by_id" bson:"created_by_id"`
	CreatedAt   time.Time `json:"created_at" bson:"created_at"`
	UpdatedAt   time.Time `json:"updated_at" bson:"updated_at"`
}

package domain

import (
	"errors"
	"time"
)

// TruckStatus represents the load state of a truck.
type TruckStatus string

const (
	TruckLoaded   TruckStatus = "LOADED"
	TruckUnloaded TruckStatus = "UNLOADED"
)

var ErrTruckNotFound = errors.New("truck not found")
var ErrDuplicateTruck = errors.New("plate number already exists")

// Truck is a vehicle registered by a user. Plate numbers are unique across
// the whole system.
type Truck struct {
	ID          string      `json:"id" bson:"_id,omitempty"`
	PlateNumber string      `json:"plate_number" bson:"plate_number"`
	DriverName  string      `json:"driver_name" bson:"driver_name"`
	DriverPhone string      `json:"driver_phone" bson:"driver_phone"`
	Capacity    int         `json:"capacity" bson:"capacity"`
	Status      TruckStatus `json:"status" bson:"status"`
	CreatedByID string      `json:"created_by_id" bson:"created_by_id"`
	CreatedAt   time.Time   `json:"created_at" bson:"created_at"`
	UpdatedAt   time.Time   `json:"updated_at" bson:"updated_at"`
}

package domain

import (
	"errors"
	"time"
)

var (
	ErrNotFound      = errors.New("not found")
	ErrInvalidRecord = errors.New("invalid property record")
	ErrValidation    = errors.New("validation failed")
)

// Property is an immutable catalog entry. Records are bulk-loaded from the
// external feed and replaced wholesale on reload; nothing mutates them in
// between.
type Property struct {
	ExternalID   string
	Title        string
	Neighborhood string
	Price        float64
	Currency     *string
	Rooms        int
	SquareMeters float64
	Description  string
	Operation    string // venta | alquiler
	Type         string // casa, departamento, terreno, ...

	Address     *string
	Age         *int
	Condition   *string
	Orientation *string

	Expenses         *float64
	ExpensesCurrency *string

	// Amenity flags are tri-state: "si", "no", or nil for unknown.
	Garage          *string
	Balcony         *string
	Pool            *string
	PetsAllowed     *string
	AirConditioning *string

	Photos    []string
	Videos    []string
	Documents []string

	ProcessedAt *time.Time
}

// Validate enforces the ingest invariant: title, neighborhood, price, room
// count, area, operation and type must all be present.
func (p Property) Validate() error {
	switch {
	case p.ExternalID == "",
		p.Title == "",
		p.Neighborhood == "",
		p.Price <= 0,
		p.Rooms <= 0,
		p.SquareMeters <= 0,
		p.Operation == "",
		p.Type == "":
		return ErrInvalidRecord
	}
	return nil
}

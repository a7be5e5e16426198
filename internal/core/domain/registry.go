package domain

import (
	"strings"

	"github.com/shopspring/decimal"
)

// Farmer is a registry profile, optionally bound to a user account.
type Farmer struct {
	ID               int64   `json:"farmer_id"`
	UserID           *int64  `json:"user_id"`
	Name             string  `json:"name"`
	Email            string  `json:"email"`
	Phone            *string `json:"phone"`
	Address          *string `json:"address"`
	RegistrationDate Date    `json:"registration_date"`
}

type FarmerCreate struct {
	UserID  *int64  `json:"user_id" validate:"omitempty,gt=0"`
	Name    string  `json:"name" validate:"required,max=255"`
	Email   string  `json:"email" validate:"required,email,max=255"`
	Phone   *string `json:"phone" validate:"omitempty,max=20"`
	Address *string `json:"address" validate:"omitempty,max=255"`
}

func (in FarmerCreate) Validate() error {
	if strings.TrimSpace(in.Name) == "" {
		return Invalid("name", "is required")
	}
	if !strings.Contains(in.Email, "@") {
		return Invalid("email", "must be a valid email address")
	}
	return nil
}

type FarmerPatch struct {
	UserID  *int64  `json:"user_id" validate:"omitempty,gt=0"`
	Name    *string `json:"name" validate:"omitempty,min=1,max=255"`
	Email   *string `json:"email" validate:"omitempty,email,max=255"`
	Phone   *string `json:"phone" validate:"omitempty,max=20"`
	Address *string `json:"address" validate:"omitempty,max=255"`
}

func (p FarmerPatch) Validate() error {
	if p.Name != nil && strings.TrimSpace(*p.Name) == "" {
		return Invalid("name", "must not be empty")
	}
	if p.Email != nil && !strings.Contains(*p.Email, "@") {
		return Invalid("email", "must be a valid email address")
	}
	return nil
}

// Location is the geographic position and climate of a user's holding.
type Location struct {
	ID          int64            `json:"location_id"`
	UserID      *int64           `json:"user_id"`
	Latitude    *decimal.Decimal `json:"latitude"`
	Longitude   *decimal.Decimal `json:"longitude"`
	ClimateZone *string          `json:"climate_zone"`
	UpdatedAt   Date             `json:"updated_at"`
}

type LocationCreate struct {
	UserID      *int64           `json:"user_id" validate:"omitempty,gt=0"`
	Latitude    *decimal.Decimal `json:"latitude"`
	Longitude   *decimal.Decimal `json:"longitude"`
	ClimateZone *string          `json:"climate_zone" validate:"omitempty,max=100"`
}

func (in LocationCreate) Validate() error {
	return checkCoordinates(in.Latitude, in.Longitude)
}

type LocationPatch struct {
	UserID      *int64           `json:"user_id" validate:"omitempty,gt=0"`
	Latitude    *decimal.Decimal `json:"latitude"`
	Longitude   *decimal.Decimal `json:"longitude"`
	ClimateZone *string          `json:"climate_zone" validate:"omitempty,max=100"`
}

func (p LocationPatch) Validate() error {
	return checkCoordinates(p.Latitude, p.Longitude)
}

var (
	maxLatitude  = decimal.NewFromInt(90)
	maxLongitude = decimal.NewFromInt(180)
)

func checkCoordinates(lat, lng *decimal.Decimal) error {
	if lat != nil && lat.Abs().GreaterThan(maxLatitude) {
		return Invalid("latitude", "must be between -90 and 90")
	}
	if lng != nil && lng.Abs().GreaterThan(maxLongitude) {
		return Invalid("longitude", "must be between -180 and 180")
	}
	return nil
}

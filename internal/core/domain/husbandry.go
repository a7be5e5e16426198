package domain

import (
	"github.com/shopspring/decimal"
)

// Calving records a birth delivered by a cow.
type Calving struct {
	ID               int64   `json:"calving_id"`
	CattleID         int64   `json:"cattle_id"`
	CalvingDate      *Date   `json:"calving_date"`
	CalfGender       *Gender `json:"calf_gender"`
	CalfHealthStatus *string `json:"calf_health_status"`
}

type CalvingCreate struct {
	CattleID         int64   `json:"cattle_id" validate:"required,gt=0"`
	CalvingDate      *Date   `json:"calving_date"`
	CalfGender       *Gender `json:"calf_gender" validate:"omitempty,enum"`
	CalfHealthStatus *string `json:"calf_health_status" validate:"omitempty,max=255"`
}

func (in CalvingCreate) Validate() error {
	if in.CattleID <= 0 {
		return Invalid("cattle_id", "is required")
	}
	if in.CalfGender != nil {
		return checkEnum("calf_gender", *in.CalfGender, Genders)
	}
	return nil
}

type CalvingPatch struct {
	CalvingDate      *Date   `json:"calving_date"`
	CalfGender       *Gender `json:"calf_gender" validate:"omitempty,enum"`
	CalfHealthStatus *string `json:"calf_health_status" validate:"omitempty,max=255"`
}

func (p CalvingPatch) Validate() error {
	if p.CalfGender != nil {
		return checkEnum("calf_gender", *p.CalfGender, Genders)
	}
	return nil
}

// Insemination records a breeding event, optionally naming the bull.
type Insemination struct {
	ID               int64   `json:"insemination_id"`
	CattleID         int64   `json:"cattle_id"`
	InseminationDate Date    `json:"insemination_date"`
	Method           *string `json:"insemination_method"`
	BullID           *int64  `json:"bull_id"`
}

type InseminationCreate struct {
	CattleID         int64   `json:"cattle_id" validate:"required,gt=0"`
	InseminationDate Date    `json:"insemination_date"`
	Method           *string `json:"insemination_method" validate:"omitempty,max=100"`
	BullID           *int64  `json:"bull_id" validate:"omitempty,gt=0"`
}

func (in InseminationCreate) Validate() error {
	if in.CattleID <= 0 {
		return Invalid("cattle_id", "is required")
	}
	if in.InseminationDate.IsZero() {
		return Invalid("insemination_date", "is required")
	}
	if in.BullID != nil && *in.BullID == in.CattleID {
		return Invalid("bull_id", "must differ from cattle_id")
	}
	return nil
}

type InseminationPatch struct {
	InseminationDate *Date   `json:"insemination_date"`
	Method           *string `json:"insemination_method" validate:"omitempty,max=100"`
	BullID           *int64  `json:"bull_id" validate:"omitempty,gt=0"`
}

func (InseminationPatch) Validate() error { return nil }

// MilkProduction is the volume a cow yielded on a given day, in litres.
type MilkProduction struct {
	ID             int64           `json:"production_id"`
	CattleID       int64           `json:"cattle_id"`
	ProductionDate Date            `json:"production_date"`
	Volume         decimal.Decimal `json:"volume"`
}

type MilkProductionCreate struct {
	CattleID       int64           `json:"cattle_id" validate:"required,gt=0"`
	ProductionDate Date            `json:"production_date"`
	Volume         decimal.Decimal `json:"volume"`
}

func (in MilkProductionCreate) Validate() error {
	if in.CattleID <= 0 {
		return Invalid("cattle_id", "is required")
	}
	if in.ProductionDate.IsZero() {
		return Invalid("production_date", "is required")
	}
	return checkPositive("volume", &in.Volume)
}

type MilkProductionPatch struct {
	ProductionDate *Date            `json:"production_date"`
	Volume         *decimal.Decimal `json:"volume"`
}

func (p MilkProductionPatch) Validate() error {
	return checkPositive("volume", p.Volume)
}

// WeightRecord is a weighing of an animal, in kilograms.
type WeightRecord struct {
	ID         int64           `json:"weight_id"`
	CattleID   int64           `json:"cattle_id"`
	WeightDate Date            `json:"weight_date"`
	Weight     decimal.Decimal `json:"weight"`
}

type WeightRecordCreate struct {
	CattleID   int64           `json:"cattle_id" validate:"required,gt=0"`
	WeightDate Date            `json:"weight_date"`
	Weight     decimal.Decimal `json:"weight"`
}

func (in WeightRecordCreate) Validate() error {
	if in.CattleID <= 0 {
		return Invalid("cattle_id", "is required")
	}
	if in.WeightDate.IsZero() {
		return Invalid("weight_date", "is required")
	}
	return checkPositive("weight", &in.Weight)
}

type WeightRecordPatch struct {
	WeightDate *Date            `json:"weight_date"`
	Weight     *decimal.Decimal `json:"weight"`
}

func (p WeightRecordPatch) Validate() error {
	return checkPositive("weight", p.Weight)
}

// Pedigree links an animal to its dam (mother) and sire (father).
type Pedigree struct {
	ID       int64  `json:"pedigree_id"`
	CattleID int64  `json:"cattle_id"`
	DamID    *int64 `json:"dam_id"`
	SireID   *int64 `json:"sire_id"`
}

type PedigreeCreate struct {
	CattleID int64  `json:"cattle_id" validate:"required,gt=0"`
	DamID    *int64 `json:"dam_id" validate:"omitempty,gt=0"`
	SireID   *int64 `json:"sire_id" validate:"omitempty,gt=0"`
}

func (in PedigreeCreate) Validate() error {
	if in.CattleID <= 0 {
		return Invalid("cattle_id", "is required")
	}
	return checkParents(in.CattleID, in.DamID, in.SireID)
}

type PedigreePatch struct {
	DamID  *int64 `json:"dam_id" validate:"omitempty,gt=0"`
	SireID *int64 `json:"sire_id" validate:"omitempty,gt=0"`
}

func (p PedigreePatch) Validate() error {
	return checkParents(0, p.DamID, p.SireID)
}

func checkParents(cattleID int64, dam, sire *int64) error {
	if dam != nil && *dam == cattleID {
		return Invalid("dam_id", "an animal cannot be its own dam")
	}
	if sire != nil && *sire == cattleID {
		return Invalid("sire_id", "an animal cannot be its own sire")
	}
	if dam != nil && sire != nil && *dam == *sire {
		return Invalid("sire_id", "dam and sire must be different animals")
	}
	return nil
}

func checkPositive(field string, v *decimal.Decimal) error {
	if v != nil && !v.IsPositive() {
		return Invalid(field, "must be greater than zero")
	}
	return nil
}

package domain

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

var (
	minQualityScore = decimal.Zero
	maxQualityScore = decimal.NewFromInt(100)
)

// Cattle is a single animal. UserID is the current owner.
type Cattle struct {
	ID           int64            `json:"cattle_id"`
	UserID       *int64           `json:"user_id"`
	Name         string           `json:"name"`
	Breed        *string          `json:"breed"`
	BirthDate    *Date            `json:"birth_date"`
	Gender       Gender           `json:"gender"`
	QualityScore *decimal.Decimal `json:"quality_score"`
	Status       CattleStatus     `json:"status"`
}

type CattleCreate struct {
	UserID       *int64           `json:"user_id" validate:"omitempty,gt=0"`
	Name         string           `json:"name" validate:"required,max=255"`
	Breed        *string          `json:"breed" validate:"omitempty,max=100"`
	BirthDate    *Date            `json:"birth_date"`
	Gender       Gender           `json:"gender" validate:"required,enum"`
	QualityScore *decimal.Decimal `json:"quality_score"`
	Status       CattleStatus     `json:"status" validate:"omitempty,enum"`
}

func (in CattleCreate) Validate() error {
	if strings.TrimSpace(in.Name) == "" {
		return Invalid("name", "is required")
	}
	if err := checkEnum("gender", in.Gender, Genders); err != nil {
		return err
	}
	if in.Status != "" {
		if err := checkEnum("status", in.Status, CattleStatuses); err != nil {
			return err
		}
	}
	if err := checkBirthDate(in.BirthDate); err != nil {
		return err
	}
	return checkQualityScore(in.QualityScore)
}

type CattlePatch struct {
	UserID       *int64           `json:"user_id" validate:"omitempty,gt=0"`
	Name         *string          `json:"name" validate:"omitempty,min=1,max=255"`
	Breed        *string          `json:"breed" validate:"omitempty,max=100"`
	BirthDate    *Date            `json:"birth_date"`
	Gender       *Gender          `json:"gender" validate:"omitempty,enum"`
	QualityScore *decimal.Decimal `json:"quality_score"`
	Status       *CattleStatus    `json:"status" validate:"omitempty,enum"`
}

func (p CattlePatch) Validate() error {
	if p.Name != nil && strings.TrimSpace(*p.Name) == "" {
		return Invalid("name", "must not be empty")
	}
	if p.Gender != nil {
		if err := checkEnum("gender", *p.Gender, Genders); err != nil {
			return err
		}
	}
	if p.Status != nil {
		if err := checkEnum("status", *p.Status, CattleStatuses); err != nil {
			return err
		}
	}
	if err := checkBirthDate(p.BirthDate); err != nil {
		return err
	}
	return checkQualityScore(p.QualityScore)
}

func checkBirthDate(d *Date) error {
	if d != nil && d.After(time.Now()) {
		return Invalid("birth_date", "must not be in the future")
	}
	return nil
}

func checkQualityScore(score *decimal.Decimal) error {
	if score == nil {
		return nil
	}
	if score.LessThan(minQualityScore) || score.GreaterThan(maxQualityScore) {
		return Invalid("quality_score", "must be between 0 and 100")
	}
	return nil
}

// CattleImage is a stored photo of an animal.
type CattleImage struct {
	ID         int64     `json:"image_id"`
	CattleID   int64     `json:"cattle_id"`
	ImageURL   string    `json:"image_url"`
	UploadedAt time.Time `json:"uploaded_at"`
}

type CattleImageCreate struct {
	CattleID int64  `json:"cattle_id" validate:"required,gt=0"`
	ImageURL string `json:"image_url" validate:"required,max=255"`
}

func (in CattleImageCreate) Validate() error {
	if in.CattleID <= 0 {
		return Invalid("cattle_id", "is required")
	}
	if in.ImageURL == "" {
		return Invalid("image_url", "is required")
	}
	if len(in.ImageURL) > 255 {
		return Invalid("image_url", "must be at most 255 characters")
	}
	return nil
}

// OwnershipRecord is one entry in an animal's append-only ownership history.
type OwnershipRecord struct {
	ID              int64  `json:"ownership_id"`
	CattleID        int64  `json:"cattle_id"`
	PreviousOwnerID *int64 `json:"previous_owner_id"`
	NewOwnerID      *int64 `json:"new_owner_id"`
	ChangeDate      Date   `json:"ownership_change_date"`
}

type OwnershipRecordCreate struct {
	CattleID        int64  `json:"cattle_id" validate:"required,gt=0"`
	PreviousOwnerID *int64 `json:"previous_owner_id" validate:"omitempty,gt=0"`
	NewOwnerID      *int64 `json:"new_owner_id" validate:"omitempty,gt=0"`
	ChangeDate      *Date  `json:"ownership_change_date"`
}

func (in OwnershipRecordCreate) Validate() error {
	if in.CattleID <= 0 {
		return Invalid("cattle_id", "is required")
	}
	if in.PreviousOwnerID != nil && in.NewOwnerID != nil && *in.PreviousOwnerID == *in.NewOwnerID {
		return Invalid("new_owner_id", "must differ from previous_owner_id")
	}
	return nil
}

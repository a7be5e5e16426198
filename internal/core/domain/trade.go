package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Trade is a sale of one animal between two users.
type Trade struct {
	ID           int64           `json:"trade_id"`
	SellerID     int64           `json:"seller_id"`
	BuyerID      int64           `json:"buyer_id"`
	CattleID     int64           `json:"cattle_id"`
	Price        decimal.Decimal `json:"price"`
	TradeDate    time.Time       `json:"trade_date"`
	Status       TradeStatus     `json:"status"`
	DeliveryDate *Date           `json:"delivery_date"`
}

type TradeCreate struct {
	SellerID     int64           `json:"seller_id" validate:"required,gt=0"`
	BuyerID      int64           `json:"buyer_id" validate:"required,gt=0"`
	CattleID     int64           `json:"cattle_id" validate:"required,gt=0"`
	Price        decimal.Decimal `json:"price"`
	TradeDate    *time.Time      `json:"trade_date"`
	Status       TradeStatus     `json:"status" validate:"omitempty,enum"`
	DeliveryDate *Date           `json:"delivery_date"`
}

func (in TradeCreate) Validate() error {
	if in.SellerID <= 0 {
		return Invalid("seller_id", "is required")
	}
	if in.BuyerID <= 0 {
		return Invalid("buyer_id", "is required")
	}
	if in.SellerID == in.BuyerID {
		return Invalid("buyer_id", "must differ from seller_id")
	}
	if in.CattleID <= 0 {
		return Invalid("cattle_id", "is required")
	}
	if err := checkPositive("price", &in.Price); err != nil {
		return err
	}
	if in.Status != "" {
		return checkEnum("status", in.Status, TradeStatuses)
	}
	return nil
}

type TradePatch struct {
	Price        *decimal.Decimal `json:"price"`
	TradeDate    *time.Time       `json:"trade_date"`
	Status       *TradeStatus     `json:"status" validate:"omitempty,enum"`
	DeliveryDate *Date            `json:"delivery_date"`
}

func (p TradePatch) Validate() error {
	if err := checkPositive("price", p.Price); err != nil {
		return err
	}
	if p.Status != nil {
		return checkEnum("status", *p.Status, TradeStatuses)
	}
	return nil
}

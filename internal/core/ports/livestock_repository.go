package ports

import (
	"context"

	"github.com/Mirieri/nikonangombeghani-api/internal/core/domain"
)

type (
	FarmerRepository         = Repository[domain.Farmer, domain.FarmerCreate, domain.FarmerPatch]
	LocationRepository       = Repository[domain.Location, domain.LocationCreate, domain.LocationPatch]
	CalvingRepository        = Repository[domain.Calving, domain.CalvingCreate, domain.CalvingPatch]
	InseminationRepository   = Repository[domain.Insemination, domain.InseminationCreate, domain.InseminationPatch]
	MilkProductionRepository = Repository[domain.MilkProduction, domain.MilkProductionCreate, domain.MilkProductionPatch]
	WeightRecordRepository   = Repository[domain.WeightRecord, domain.WeightRecordCreate, domain.WeightRecordPatch]
	PedigreeRepository       = Repository[domain.Pedigree, domain.PedigreeCreate, domain.PedigreePatch]
	TradeRepository          = Repository[domain.Trade, domain.TradeCreate, domain.TradePatch]
	OwnershipRepository      = AppendOnlyRepository[domain.OwnershipRecord, domain.OwnershipRecordCreate]
	FavoriteRepository       = RecordRepository[domain.Favorite, domain.FavoriteCreate]
	MessageRepository        = RecordRepository[domain.Message, domain.MessageCreate]
)

// CattleRepository persists animals. An update that changes the owner
// appends an ownership record in the same transaction.
type CattleRepository interface {
	Repository[domain.Cattle, domain.CattleCreate, domain.CattlePatch]
}

type CattleImageRepository interface {
	RecordRepository[domain.CattleImage, domain.CattleImageCreate]
	ListByCattle(ctx context.Context, cattleID int64) ([]*domain.CattleImage, error)
}

type NotificationRepository interface {
	Repository[domain.Notification, domain.NotificationCreate, domain.NotificationPatch]
	ListForUser(ctx context.Context, userID int64, page domain.Page) ([]*domain.Notification, error)
}

package postgres

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/Mirieri/nikonangombeghani-api/internal/core/domain"
)

var farmersTable = table[domain.Farmer]{
	name:    "farmers",
	entity:  "farmer",
	key:     "farmer_id",
	columns: []string{"farmer_id", "user_id", "name", "email", "phone", "address", "registration_date"},
	scan: func(row scanner, f *domain.Farmer) error {
		return row.Scan(&f.ID, &f.UserID, &f.Name, &f.Email, &f.Phone, &f.Address, &f.RegistrationDate)
	},
}

type FarmerRepository struct {
	*store[domain.Farmer, domain.FarmerCreate, domain.FarmerPatch]
}

func NewFarmerRepository(pool *pgxpool.Pool) *FarmerRepository {
	return &FarmerRepository{&store[domain.Farmer, domain.FarmerCreate, domain.FarmerPatch]{
		records: records[domain.Farmer, domain.FarmerCreate]{
			pool: pool,
			t:    farmersTable,
			create: func(in domain.FarmerCreate) changeset {
				var cs changeset
				cs.set("user_id", in.UserID)
				cs.set("name", in.Name)
				cs.set("email", in.Email)
				cs.set("phone", in.Phone)
				cs.set("address", in.Address)
				return cs
			},
		},
		patch: func(p domain.FarmerPatch) changeset {
			var cs changeset
			setIf(&cs, "user_id", p.UserID)
			setIf(&cs, "name", p.Name)
			setIf(&cs, "email", p.Email)
			setIf(&cs, "phone", p.Phone)
			setIf(&cs, "address", p.Address)
			return cs
		},
	}}
}

var locationsTable = table[domain.Location]{
	name:    "locations",
	entity:  "location",
	key:     "location_id",
	columns: []string{"location_id", "user_id", "latitude", "longitude", "climate_zone", "updated_at"},
	scan: func(row scanner, l *domain.Location) error {
		return row.Scan(&l.ID, &l.UserID, &l.Latitude, &l.Longitude, &l.ClimateZone, &l.UpdatedAt)
	},
}

type LocationRepository struct {
	*store[domain.Location, domain.LocationCreate, domain.LocationPatch]
}

// NewLocationRepository stamps updated_at with the current day on every write.
func NewLocationRepository(pool *pgxpool.Pool) *LocationRepository {
	return &LocationRepository{&store[domain.Location, domain.LocationCreate, domain.LocationPatch]{
		records: records[domain.Location, domain.LocationCreate]{
			pool: pool,
			t:    locationsTable,
			create: func(in domain.LocationCreate) changeset {
				var cs changeset
				cs.set("user_id", in.UserID)
				cs.set("latitude", in.Latitude)
				cs.set("longitude", in.Longitude)
				cs.set("climate_zone", in.ClimateZone)
				return cs
			},
		},
		patch: func(p domain.LocationPatch) changeset {
			var cs changeset
			setIf(&cs, "user_id", p.UserID)
			setIf(&cs, "latitude", p.Latitude)
			setIf(&cs, "longitude", p.Longitude)
			setIf(&cs, "climate_zone", p.ClimateZone)
			if len(cs) > 0 {
				today := domain.Today()
				cs.set("updated_at", dateArg(&today))
			}
			return cs
		},
	}}
}

var cattleTable = table[domain.Cattle]{
	name:    "cattle",
	entity:  "cattle",
	key:     "cattle_id",
	columns: []string{"cattle_id", "user_id", "name", "breed", "birth_date", "gender", "quality_score", "status"},
	scan: func(row scanner, c *domain.Cattle) error {
		return row.Scan(&c.ID, &c.UserID, &c.Name, &c.Breed, &c.BirthDate, &c.Gender, &c.QualityScore, &c.Status)
	},
}

// CattleRepository stores animals. Changing user_id appends an ownership
// record dated today within the same transaction.
type CattleRepository struct {
	*store[domain.Cattle, domain.CattleCreate, domain.CattlePatch]
}

func NewCattleRepository(pool *pgxpool.Pool) *CattleRepository {
	return &CattleRepository{&store[domain.Cattle, domain.CattleCreate, domain.CattlePatch]{
		records: records[domain.Cattle, domain.CattleCreate]{
			pool: pool,
			t:    cattleTable,
			create: func(in domain.CattleCreate) changeset {
				status := in.Status
				if status == "" {
					status = domain.CattleAvailable
				}
				var cs changeset
				cs.set("user_id", in.UserID)
				cs.set("name", in.Name)
				cs.set("breed", in.Breed)
				cs.set("birth_date", dateArg(in.BirthDate))
				cs.set("gender", string(in.Gender))
				cs.set("quality_score", in.QualityScore)
				cs.set("status", string(status))
				return cs
			},
		},
		patch: func(p domain.CattlePatch) changeset {
			var cs changeset
			setIf(&cs, "user_id", p.UserID)
			setIf(&cs, "name", p.Name)
			setIf(&cs, "breed", p.Breed)
			setDateIf(&cs, "birth_date", p.BirthDate)
			setEnumIf(&cs, "gender", p.Gender)
			setIf(&cs, "quality_score", p.QualityScore)
			setEnumIf(&cs, "status", p.Status)
			return cs
		},
		afterUpdate: recordOwnerChange,
	}}
}

func recordOwnerChange(ctx context.Context, tx pgx.Tx, before, after *domain.Cattle) error {
	if sameID(before.UserID, after.UserID) {
		return nil
	}
	_, err := ownershipTable.insert(ctx, tx, ownershipSet(domain.OwnershipRecordCreate{
		CattleID:        after.ID,
		PreviousOwnerID: before.UserID,
		NewOwnerID:      after.UserID,
	}))
	return err
}

func sameID(a, b *int64) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}

var cattleImagesTable = table[domain.CattleImage]{
	name:    "cattle_images",
	entity:  "image",
	key:     "image_id",
	columns: []string{"image_id", "cattle_id", "image_url", "uploaded_at"},
	scan: func(row scanner, i *domain.CattleImage) error {
		return row.Scan(&i.ID, &i.CattleID, &i.ImageURL, &i.UploadedAt)
	},
}

type CattleImageRepository struct {
	*records[domain.CattleImage, domain.CattleImageCreate]
}

func NewCattleImageRepository(pool *pgxpool.Pool) *CattleImageRepository {
	return &CattleImageRepository{&records[domain.CattleImage, domain.CattleImageCreate]{
		pool: pool,
		t:    cattleImagesTable,
		create: func(in domain.CattleImageCreate) changeset {
			var cs changeset
			cs.set("cattle_id", in.CattleID)
			cs.set("image_url", in.ImageURL)
			return cs
		},
	}}
}

// ListByCattle returns every image of one animal, oldest first.
func (r *CattleImageRepository) ListByCattle(ctx context.Context, cattleID int64) ([]*domain.CattleImage, error) {
	return r.t.list(ctx, r.pool, domain.Page{Limit: domain.MaxPageLimit}, "cattle_id = $1", cattleID)
}

var ownershipTable = table[domain.OwnershipRecord]{
	name:    "cattle_ownership_history",
	entity:  "ownership record",
	key:     "ownership_id",
	columns: []string{"ownership_id", "cattle_id", "previous_owner_id", "new_owner_id", "ownership_change_date"},
	scan: func(row scanner, o *domain.OwnershipRecord) error {
		return row.Scan(&o.ID, &o.CattleID, &o.PreviousOwnerID, &o.NewOwnerID, &o.ChangeDate)
	},
}

func ownershipSet(in domain.OwnershipRecordCreate) changeset {
	var cs changeset
	cs.set("cattle_id", in.CattleID)
	cs.set("previous_owner_id", in.PreviousOwnerID)
	cs.set("new_owner_id", in.NewOwnerID)
	if in.ChangeDate != nil {
		cs.set("ownership_change_date", dateArg(in.ChangeDate))
	}
	return cs
}

// OwnershipRepository is append-only: it offers no update or delete.
type OwnershipRepository struct {
	r *records[domain.OwnershipRecord, domain.OwnershipRecordCreate]
}

func NewOwnershipRepository(pool *pgxpool.Pool) *OwnershipRepository {
	return &OwnershipRepository{&records[domain.OwnershipRecord, domain.OwnershipRecordCreate]{
		pool:   pool,
		t:      ownershipTable,
		create: ownershipSet,
	}}
}

func (o *OwnershipRepository) Create(ctx context.Context, in domain.OwnershipRecordCreate) (*domain.OwnershipRecord, error) {
	return o.r.Create(ctx, in)
}

func (o *OwnershipRepository) Get(ctx context.Context, id int64) (*domain.OwnershipRecord, error) {
	return o.r.Get(ctx, id)
}

func (o *OwnershipRepository) List(ctx context.Context, page domain.Page) ([]*domain.OwnershipRecord, error) {
	return o.r.List(ctx, page)
}

var pedigreesTable = table[domain.Pedigree]{
	name:    "pedigrees",
	entity:  "pedigree",
	key:     "pedigree_id",
	columns: []string{"pedigree_id", "cattle_id", "dam_id", "sire_id"},
	scan: func(row scanner, p *domain.Pedigree) error {
		return row.Scan(&p.ID, &p.CattleID, &p.DamID, &p.SireID)
	},
}

type PedigreeRepository struct {
	*store[domain.Pedigree, domain.PedigreeCreate, domain.PedigreePatch]
}

func NewPedigreeRepository(pool *pgxpool.Pool) *PedigreeRepository {
	return &PedigreeRepository{&store[domain.Pedigree, domain.PedigreeCreate, domain.PedigreePatch]{
		records: records[domain.Pedigree, domain.PedigreeCreate]{
			pool: pool,
			t:    pedigreesTable,
			create: func(in domain.PedigreeCreate) changeset {
				var cs changeset
				cs.set("cattle_id", in.CattleID)
				cs.set("dam_id", in.DamID)
				cs.set("sire_id", in.SireID)
				return cs
			},
		},
		patch: func(p domain.PedigreePatch) changeset {
			var cs changeset
			setIf(&cs, "dam_id", p.DamID)
			setIf(&cs, "sire_id", p.SireID)
			return cs
		},
	}}
}

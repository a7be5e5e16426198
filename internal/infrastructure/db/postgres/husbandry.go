package postgres

import (
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/Mirieri/nikonangombeghani-api/internal/core/domain"
)

var calvingsTable = table[domain.Calving]{
	name:    "calvings",
	entity:  "calving",
	key:     "calving_id",
	columns: []string{"calving_id", "cattle_id", "calving_date", "calf_gender", "calf_health_status"},
	scan: func(row scanner, c *domain.Calving) error {
		return row.Scan(&c.ID, &c.CattleID, &c.CalvingDate, &c.CalfGender, &c.CalfHealthStatus)
	},
}

type CalvingRepository struct {
	*store[domain.Calving, domain.CalvingCreate, domain.CalvingPatch]
}

func NewCalvingRepository(pool *pgxpool.Pool) *CalvingRepository {
	return &CalvingRepository{&store[domain.Calving, domain.CalvingCreate, domain.CalvingPatch]{
		records: records[domain.Calving, domain.CalvingCreate]{
			pool: pool,
			t:    calvingsTable,
			create: func(in domain.CalvingCreate) changeset {
				var cs changeset
				cs.set("cattle_id", in.CattleID)
				cs.set("calving_date", dateArg(in.CalvingDate))
				var gender any
				if in.CalfGender != nil {
					gender = string(*in.CalfGender)
				}
				cs.set("calf_gender", gender)
				cs.set("calf_health_status", in.CalfHealthStatus)
				return cs
			},
		},
		patch: func(p domain.CalvingPatch) changeset {
			var cs changeset
			setDateIf(&cs, "calving_date", p.CalvingDate)
			setEnumIf(&cs, "calf_gender", p.CalfGender)
			setIf(&cs, "calf_health_status", p.CalfHealthStatus)
			return cs
		},
	}}
}

var inseminationsTable = table[domain.Insemination]{
	name:    "inseminations",
	entity:  "insemination",
	key:     "insemination_id",
	columns: []string{"insemination_id", "cattle_id", "insemination_date", "insemination_method", "bull_id"},
	scan: func(row scanner, i *domain.Insemination) error {
		return row.Scan(&i.ID, &i.CattleID, &i.InseminationDate, &i.Method, &i.BullID)
	},
}

type InseminationRepository struct {
	*store[domain.Insemination, domain.InseminationCreate, domain.InseminationPatch]
}

func NewInseminationRepository(pool *pgxpool.Pool) *InseminationRepository {
	return &InseminationRepository{&store[domain.Insemination, domain.InseminationCreate, domain.InseminationPatch]{
		records: records[domain.Insemination, domain.InseminationCreate]{
			pool: pool,
			t:    inseminationsTable,
			create: func(in domain.InseminationCreate) changeset {
				var cs changeset
				cs.set("cattle_id", in.CattleID)
				cs.set("insemination_date", dateArg(&in.InseminationDate))
				cs.set("insemination_method", in.Method)
				cs.set("bull_id", in.BullID)
				return cs
			},
		},
		patch: func(p domain.InseminationPatch) changeset {
			var cs changeset
			setDateIf(&cs, "insemination_date", p.InseminationDate)
			setIf(&cs, "insemination_method", p.Method)
			setIf(&cs, "bull_id", p.BullID)
			return cs
		},
	}}
}

var milkProductionsTable = table[domain.MilkProduction]{
	name:    "milk_productions",
	entity:  "milk production",
	key:     "production_id",
	columns: []string{"production_id", "cattle_id", "production_date", "volume"},
	scan: func(row scanner, m *domain.MilkProduction) error {
		return row.Scan(&m.ID, &m.CattleID, &m.ProductionDate, &m.Volume)
	},
}

type MilkProductionRepository struct {
	*store[domain.MilkProduction, domain.MilkProductionCreate, domain.MilkProductionPatch]
}

func NewMilkProductionRepository(pool *pgxpool.Pool) *MilkProductionRepository {
	return &MilkProductionRepository{&store[domain.MilkProduction, domain.MilkProductionCreate, domain.MilkProductionPatch]{
		records: records[domain.MilkProduction, domain.MilkProductionCreate]{
			pool: pool,
			t:    milkProductionsTable,
			create: func(in domain.MilkProductionCreate) changeset {
				var cs changeset
				cs.set("cattle_id", in.CattleID)
				cs.set("production_date", dateArg(&in.ProductionDate))
				cs.set("volume", in.Volume)
				return cs
			},
		},
		patch: func(p domain.MilkProductionPatch) changeset {
			var cs changeset
			setDateIf(&cs, "production_date", p.ProductionDate)
			setIf(&cs, "volume", p.Volume)
			return cs
		},
	}}
}

var weightRecordsTable = table[domain.WeightRecord]{
	name:    "weight_records",
	entity:  "weight record",
	key:     "weight_id",
	columns: []string{"weight_id", "cattle_id", "weight_date", "weight"},
	scan: func(row scanner, w *domain.WeightRecord) error {
		return row.Scan(&w.ID, &w.CattleID, &w.WeightDate, &w.Weight)
	},
}

type WeightRecordRepository struct {
	*store[domain.WeightRecord, domain.WeightRecordCreate, domain.WeightRecordPatch]
}

func NewWeightRecordRepository(pool *pgxpool.Pool) *WeightRecordRepository {
	return &WeightRecordRepository{&store[domain.WeightRecord, domain.WeightRecordCreate, domain.WeightRecordPatch]{
		records: records[domain.WeightRecord, domain.WeightRecordCreate]{
			pool: pool,
			t:    weightRecordsTable,
			create: func(in domain.WeightRecordCreate) changeset {
				var cs changeset
				cs.set("cattle_id", in.CattleID)
				cs.set("weight_date", dateArg(&in.WeightDate))
				cs.set("weight", in.Weight)
				return cs
			},
		},
		patch: func(p domain.WeightRecordPatch) changeset {
			var cs changeset
			setDateIf(&cs, "weight_date", p.WeightDate)
			setIf(&cs, "weight", p.Weight)
			return cs
		},
	}}
}

package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/engrate/eg-power-tariffs-plugin/internal/tariff/domain"
	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type repo struct{}

func Provide() domain.Repository {
	return &repo{}
}

// tariffRecord is the power_tariffs row shape. Compositions live in
// their own table and are loaded separately.
type tariffRecord struct {
	UID             uuid.UUID  `gorm:"column:uid;primaryKey"`
	Name            string     `gorm:"column:name"`
	Model           string     `gorm:"column:model"`
	Description     string     `gorm:"column:description"`
	SamplesPerMonth int        `gorm:"column:samples_per_month"`
	TimeUnit        string     `gorm:"column:time_unit"`
	BuildingType    string     `gorm:"column:building_type"`
	LastUpdated     time.Time  `gorm:"column:last_updated"`
	ValidFrom       *time.Time `gorm:"column:valid_from"`
	ValidTo         *time.Time `gorm:"column:valid_to"`
	Voltage         string     `gorm:"column:voltage"`
}

func (tariffRecord) TableName() string {
	return "power_tariffs"
}

type compositionRecord struct {
	UID         uuid.UUID      `gorm:"column:uid;primaryKey"`
	TariffUID   uuid.UUID      `gorm:"column:tariff_uid;index"`
	Months      datatypes.JSON `gorm:"column:months"`
	Days        datatypes.JSON `gorm:"column:days"`
	FuseFrom    string         `gorm:"column:fuse_from"`
	FuseTo      string         `gorm:"column:fuse_to"`
	Hints       datatypes.JSON `gorm:"column:hints"`
	Unit        string         `gorm:"column:unit"`
	PriceExcVat float64        `gorm:"column:price_exc_vat"`
	PriceIncVat float64        `gorm:"column:price_inc_vat"`
	Intervals   datatypes.JSON `gorm:"column:intervals"`
}

func (compositionRecord) TableName() string {
	return "tariff_compositions"
}

func (r *repo) Create(ctx context.Context, db *gorm.DB, tariff *domain.PowerTariff) error {
	record := tariffRecord{
		UID:             tariff.UID,
		Name:            tariff.Name,
		Model:           tariff.Model,
		Description:     tariff.Description,
		SamplesPerMonth: tariff.SamplesPerMonth,
		TimeUnit:        tariff.TimeUnit,
		BuildingType:    string(tariff.BuildingType),
		LastUpdated:     tariff.LastUpdated,
		ValidFrom:       tariff.ValidFrom,
		ValidTo:         tariff.ValidTo,
		Voltage:         tariff.Voltage,
	}
	if err := db.WithContext(ctx).Create(&record).Error; err != nil {
		return err
	}

	for i := range tariff.Compositions {
		comp, err := encodeComposition(tariff.UID, &tariff.Compositions[i])
		if err != nil {
			return err
		}
		if err := db.WithContext(ctx).Create(comp).Error; err != nil {
			return err
		}
	}
	return nil
}

func (r *repo) Associate(ctx context.Context, db *gorm.DB, associations []domain.AreaAssociation) error {
	if len(associations) == 0 {
		return nil
	}
	return db.WithContext(ctx).Create(&associations).Error
}

func (r *repo) FindAll(ctx context.Context, db *gorm.DB) ([]domain.PowerTariff, error) {
	var records []tariffRecord
	if err := db.WithContext(ctx).Order("name asc").Find(&records).Error; err != nil {
		return nil, err
	}
	return r.withCompositions(ctx, db, records)
}

func (r *repo) FindByMGA(ctx context.Context, db *gorm.DB, countryCode, mgaCode string) ([]domain.PowerTariff, error) {
	var records []tariffRecord
	err := db.WithContext(ctx).
		Table("power_tariffs AS pt").
		Select("pt.*").
		Joins("JOIN metering_grid_area_x_power_tariff AS x ON x.tariff_uid = pt.uid").
		Joins("JOIN metering_grid_areas AS mga ON mga.code = x.mga_code").
		Where("mga.country_code = ? AND mga.code = ?", countryCode, mgaCode).
		Order("pt.name asc").
		Find(&records).Error
	if err != nil {
		return nil, err
	}
	return r.withCompositions(ctx, db, records)
}

func (r *repo) AssociationsByTariff(ctx context.Context, db *gorm.DB, tariffUID uuid.UUID) ([]domain.AreaAssociation, error) {
	var associations []domain.AreaAssociation
	err := db.WithContext(ctx).
		Where("tariff_uid = ?", tariffUID).
		Order("mga_code asc").
		Find(&associations).Error
	if err != nil {
		return nil, err
	}
	return associations, nil
}

func (r *repo) CountAssociationsByMGA(ctx context.Context, db *gorm.DB, mgaCode string) (int64, error) {
	var count int64
	err := db.WithContext(ctx).
		Model(&domain.AreaAssociation{}).
		Where("mga_code = ?", mgaCode).
		Count(&count).Error
	return count, err
}

func (r *repo) withCompositions(ctx context.Context, db *gorm.DB, records []tariffRecord) ([]domain.PowerTariff, error) {
	if len(records) == 0 {
		return []domain.PowerTariff{}, nil
	}

	uids := make([]uuid.UUID, 0, len(records))
	for _, record := range records {
		uids = append(uids, record.UID)
	}

	var compositions []compositionRecord
	if err := db.WithContext(ctx).Where("tariff_uid IN ?", uids).Find(&compositions).Error; err != nil {
		return nil, err
	}

	byTariff := make(map[uuid.UUID][]domain.Composition, len(records))
	for i := range compositions {
		comp, err := decodeComposition(&compositions[i])
		if err != nil {
			return nil, err
		}
		byTariff[compositions[i].TariffUID] = append(byTariff[compositions[i].TariffUID], comp)
	}

	tariffs := make([]domain.PowerTariff, 0, len(records))
	for _, record := range records {
		tariffs = append(tariffs, domain.PowerTariff{
			UID:             record.UID,
			Name:            record.Name,
			Model:           record.Model,
			Description:     record.Description,
			SamplesPerMonth: record.SamplesPerMonth,
			TimeUnit:        record.TimeUnit,
			BuildingType:    domain.BuildingType(record.BuildingType),
			LastUpdated:     record.LastUpdated,
			ValidFrom:       record.ValidFrom,
			ValidTo:         record.ValidTo,
			Voltage:         record.Voltage,
			Compositions:    byTariff[record.UID],
		})
	}
	return tariffs, nil
}

func encodeComposition(tariffUID uuid.UUID, comp *domain.Composition) (*compositionRecord, error) {
	months, err := json.Marshal(comp.Months)
	if err != nil {
		return nil, fmt.Errorf("encode months: %w", err)
	}
	days, err := json.Marshal(comp.Days)
	if err != nil {
		return nil, fmt.Errorf("encode days: %w", err)
	}
	hints := comp.Hints
	if hints == nil {
		hints = map[string]string{}
	}
	hintsJSON, err := json.Marshal(hints)
	if err != nil {
		return nil, fmt.Errorf("encode hints: %w", err)
	}
	intervals, err := json.Marshal(comp.Intervals)
	if err != nil {
		return nil, fmt.Errorf("encode intervals: %w", err)
	}

	return &compositionRecord{
		UID:         uuid.New(),
		TariffUID:   tariffUID,
		Months:      months,
		Days:        days,
		FuseFrom:    comp.FuseFrom,
		FuseTo:      comp.FuseTo,
		Hints:       hintsJSON,
		Unit:        comp.Unit,
		PriceExcVat: comp.PriceExcVat,
		PriceIncVat: comp.PriceIncVat,
		Intervals:   intervals,
	}, nil
}

func decodeComposition(record *compositionRecord) (domain.Composition, error) {
	comp := domain.Composition{
		FuseFrom:    record.FuseFrom,
		FuseTo:      record.FuseTo,
		Unit:        record.Unit,
		PriceExcVat: record.PriceExcVat,
		PriceIncVat: record.PriceIncVat,
	}
	if err := json.Unmarshal(record.Months, &comp.Months); err != nil {
		return domain.Composition{}, fmt.Errorf("decode months: %w", err)
	}
	if err := json.Unmarshal(record.Days, &comp.Days); err != nil {
		return domain.Composition{}, fmt.Errorf("decode days: %w", err)
	}
	if len(record.Hints) > 0 {
		if err := json.Unmarshal(record.Hints, &comp.Hints); err != nil {
			return domain.Composition{}, fmt.Errorf("decode hints: %w", err)
		}
	}
	if err := json.Unmarshal(record.Intervals, &comp.Intervals); err != nil {
		return domain.Composition{}, fmt.Errorf("decode intervals: %w", err)
	}
	return comp, nil
}

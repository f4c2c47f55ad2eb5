package domain

import (
	"time"

	"github.com/google/uuid"
)

// BuildingType narrows which buildings a tariff applies to.
type BuildingType string

const (
	BuildingTypeHouse     BuildingType = "house"
	BuildingTypeApartment BuildingType = "apartment"
	BuildingTypeAll       BuildingType = "all"
)

// TimeInterval is a clock-time span with a price multiplier. Times are
// "HH:MM"; a "to" of "0:00" is stored normalized as "24:00" (end of day).
type TimeInterval struct {
	From       string  `json:"from"`
	To         string  `json:"to"`
	Multiplier float64 `json:"multiplier"`
}

// Composition is one pricing rule fragment of a tariff, scoped to a set
// of months, days and a fuse-amperage band. Months and days hold
// canonical three-letter lowercase abbreviations.
type Composition struct {
	Months      []string          `json:"months"`
	Days        []string          `json:"days"`
	FuseFrom    string            `json:"fuse_from"`
	FuseTo      string            `json:"fuse_to"`
	Hints       map[string]string `json:"hints,omitempty"`
	Unit        string            `json:"unit"`
	PriceExcVat float64           `json:"price_exc_vat"`
	PriceIncVat float64           `json:"price_inc_vat"`
	Intervals   []TimeInterval    `json:"intervals"`
}

// PowerTariff is a named pricing product. It owns its compositions and
// is associated with the metering grid areas it applies to.
type PowerTariff struct {
	UID             uuid.UUID     `json:"uid"`
	Name            string        `json:"name"`
	Model           string        `json:"model"`
	Description     string        `json:"description,omitempty"`
	SamplesPerMonth int           `json:"samples_per_month"`
	TimeUnit        string        `json:"time_unit"`
	BuildingType    BuildingType  `json:"building_type"`
	LastUpdated     time.Time     `json:"last_updated"`
	ValidFrom       *time.Time    `json:"valid_from,omitempty"`
	ValidTo         *time.Time    `json:"valid_to,omitempty"`
	Voltage         string        `json:"voltage"`
	Compositions    []Composition `json:"compositions"`
}

// AreaAssociation links a tariff to one metering grid area. The voltage
// class is an attribute of the edge, not of either entity.
type AreaAssociation struct {
	UID       uuid.UUID `gorm:"column:uid;primaryKey" json:"uid"`
	MGACode   string    `gorm:"column:mga_code" json:"mga_code"`
	TariffUID uuid.UUID `gorm:"column:tariff_uid" json:"tariff_uid"`
	Voltage   string    `gorm:"column:voltage" json:"voltage"`
}

func (AreaAssociation) TableName() string {
	return "metering_grid_area_x_power_tariff"
}

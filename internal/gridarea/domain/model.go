package domain

import "github.com/google/uuid"

// MeteringGridArea is a geographic billing area owned by one grid
// operator. The code is the natural key; areas are never updated in
// place, duplicate imports are skipped.
type MeteringGridArea struct {
	Code                 string    `gorm:"column:code;primaryKey" json:"code"`
	Name                 string    `gorm:"column:name" json:"name"`
	CountryCode          string    `gorm:"column:country_code" json:"country_code"`
	MeteringBusinessArea string    `gorm:"column:metering_business_area" json:"metering_business_area"`
	GridOperatorUID      uuid.UUID `gorm:"column:grid_operator_uid" json:"grid_operator_uid"`
}

func (MeteringGridArea) TableName() string {
	return "metering_grid_areas"
}

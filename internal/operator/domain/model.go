package domain

import "github.com/google/uuid"

// GridOperator is a distribution system operator. Created once by the
// operators importer and immutable afterwards.
type GridOperator struct {
	UID   uuid.UUID `gorm:"column:uid;primaryKey" json:"uid"`
	Name  string    `gorm:"column:name" json:"name"`
	Ediel int       `gorm:"column:ediel" json:"ediel"`
}

func (GridOperator) TableName() string {
	return "grid_operators"
}

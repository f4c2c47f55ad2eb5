package domain

import (
	"context"
	"time"
)

// Service resolves power tariffs for API callers. Resolution returns the
// full tariff schedule; picking the currently applicable composition is
// left to the caller.
type Service interface {
	ListOperators(ctx context.Context) ([]OperatorResponse, error)
	ListTariffs(ctx context.Context) ([]Response, error)
	GetByMGA(ctx context.Context, countryCode, mgaCode string) ([]Response, error)
	GetByPostalCode(ctx context.Context, countryCode string, postalCode int) ([]Response, error)
	GetByCoordinates(ctx context.Context, countryCode string, lat, lon float64) ([]Response, error)
	GetByAddress(ctx context.Context, countryCode, street, city string) ([]Response, error)
}

// AreaResolver resolves a query location to a metering-grid-area code
// via the external lookup gateway. An empty code with a nil error means
// "no match".
type AreaResolver interface {
	AreaCodeByPostalCode(ctx context.Context, postalCode int) (string, error)
	AreaCodeByCoordinates(ctx context.Context, lat, lon float64) (string, error)
	AreaCodeByAddress(ctx context.Context, street, city string) (string, error)
}

type OperatorResponse struct {
	UID   string `json:"uid"`
	Name  string `json:"name"`
	Ediel int    `json:"ediel"`
}

type AreaResponse struct {
	Code                 string           `json:"code"`
	Name                 string           `json:"name"`
	CountryCode          string           `json:"country_code"`
	MeteringBusinessArea string           `json:"metering_business_area"`
	GridOperator         OperatorResponse `json:"grid_operator"`
	Voltage              string           `json:"voltage"`
}

type Response struct {
	UID               string         `json:"uid"`
	Name              string         `json:"name"`
	Model             string         `json:"model"`
	Description       string         `json:"description,omitempty"`
	SamplesPerMonth   int            `json:"samples_per_month"`
	TimeUnit          string         `json:"time_unit"`
	BuildingType      BuildingType   `json:"building_type"`
	LastUpdated       time.Time      `json:"last_updated"`
	ValidFrom         *time.Time     `json:"valid_from,omitempty"`
	ValidTo           *time.Time     `json:"valid_to,omitempty"`
	Voltage           string         `json:"voltage"`
	Compositions      []Composition  `json:"compositions"`
	MeteringGridAreas []AreaResponse `json:"metering_grid_areas"`
}

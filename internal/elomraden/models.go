package elomraden

import (
	"fmt"

	"github.com/engrate/eg-power-tariffs-plugin/internal/apperr"
)

// Zone is a Swedish electricity price area.
type Zone string

const (
	ZoneSE1 Zone = "SE1"
	ZoneSE2 Zone = "SE2"
	ZoneSE3 Zone = "SE3"
	ZoneSE4 Zone = "SE4"
)

// ZoneFromCode maps the numeric zone field of lookup responses onto a
// Zone. Codes outside 1..4 are an unexpected value, not a transport
// problem.
func ZoneFromCode(code int) (Zone, error) {
	switch code {
	case 1:
		return ZoneSE1, nil
	case 2:
		return ZoneSE2, nil
	case 3:
		return ZoneSE3, nil
	case 4:
		return ZoneSE4, nil
	default:
		return "", apperr.Unexpected(fmt.Sprintf("invalid zone number %d, expected 1-4", code))
	}
}

// GridCompany identifies the operator owning a looked-up area.
type GridCompany struct {
	Name  string `json:"name"`
	Ediel string `json:"ediel"`
	Email string `json:"email,omitempty"`
	Phone string `json:"phone,omitempty"`
}

// AdditionalDetails carries locality and tax metadata the lookup
// service reports alongside the area itself.
type AdditionalDetails struct {
	Municipality  string `json:"municipality"`
	EnergyTax     bool   `json:"energy_tax"`
	EnergyTaxName string `json:"energy_tax_name"`
	Locality      string `json:"locality,omitempty"`
}

// GridArea is the normalized internal shape all three lookup queries
// resolve to. The upstream field names differ per query kind; mapping
// happens in the client.
type GridArea struct {
	AreaName          string             `json:"area_name"`
	AreaCode          string             `json:"area_code"`
	Zone              Zone               `json:"zone"`
	Company           GridCompany        `json:"company"`
	AdditionalDetails *AdditionalDetails `json:"additional_details,omitempty"`
}

// Wire shapes. The address and coordinate endpoints share one envelope,
// the postal endpoint wraps matches in an item array.

type apiError struct {
	ErrorCode   int    `json:"errorCode"`
	ErrorString string `json:"errorString"`
}

type elnatData struct {
	AreaName string `json:"natomradeNamn"`
	AreaCode string `json:"natomradeBeteckning"`
	Zone     int    `json:"elomrade"`
	Operator string `json:"natagare"`
	EdielID  string `json:"EdielID"`
	Email    string `json:"epost"`
	Phone    string `json:"telefon"`
}

type geografiData struct {
	Municipality  string `json:"kommun"`
	EnergyTax     bool   `json:"elskatt"`
	EnergyTaxName string `json:"elskattNamn"`
	Locality      string `json:"ort"`
}

type areaEnvelope struct {
	Success  int           `json:"success"`
	Error    *apiError     `json:"error"`
	Elnat    *elnatData    `json:"elnat"`
	Geografi *geografiData `json:"geografi"`
}

type byAddressResponse struct {
	ElomradeAdress areaEnvelope `json:"elomradeAdress"`
}

type postalItem struct {
	Elnat    *elnatData    `json:"elnat"`
	Geografi *geografiData `json:"geografi"`
}

type byPostalCodeResponse struct {
	NatomradePostnummer struct {
		Success int          `json:"success"`
		Error   *apiError    `json:"error"`
		Items   []postalItem `json:"item"`
	} `json:"natomradePostnummer"`
}

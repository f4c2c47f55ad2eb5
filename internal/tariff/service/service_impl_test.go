package service

import (
	"context"
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/engrate/eg-power-tariffs-plugin/internal/apperr"
	gridareadomain "github.com/engrate/eg-power-tariffs-plugin/internal/gridarea/domain"
	gridarearepo "github.com/engrate/eg-power-tariffs-plugin/internal/gridarea/repository"
	operatordomain "github.com/engrate/eg-power-tariffs-plugin/internal/operator/domain"
	operatorrepo "github.com/engrate/eg-power-tariffs-plugin/internal/operator/repository"
	"github.com/engrate/eg-power-tariffs-plugin/internal/tariff/domain"
	tariffrepo "github.com/engrate/eg-power-tariffs-plugin/internal/tariff/repository"
)

type stubResolver struct {
	code string
	err  error
}

func (r stubResolver) AreaCodeByPostalCode(context.Context, int) (string, error) {
	return r.code, r.err
}

func (r stubResolver) AreaCodeByCoordinates(context.Context, float64, float64) (string, error) {
	return r.code, r.err
}

func (r stubResolver) AreaCodeByAddress(context.Context, string, string) (string, error) {
	return r.code, r.err
}

func newTestService(t *testing.T, resolver domain.AreaResolver) (*Service, *gorm.DB) {
	t.Helper()

	db, err := gorm.Open(sqlite.Open("file:"+t.Name()+"?mode=memory&cache=shared"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&operatordomain.GridOperator{}, &gridareadomain.MeteringGridArea{}))
	require.NoError(t, tariffrepo.Migrate(db))

	svc := New(Params{
		DB:        db,
		Log:       zap.NewNop(),
		Repo:      tariffrepo.Provide(),
		Operators: operatorrepo.Provide(),
		Areas:     gridarearepo.Provide(),
		Resolver:  resolver,
	})
	return svc.(*Service), db
}

func seedTariff(t *testing.T, db *gorm.DB) (operatordomain.GridOperator, domain.PowerTariff) {
	t.Helper()
	ctx := context.Background()

	operator := operatordomain.GridOperator{UID: uuid.New(), Name: "Ellevio AB", Ediel: 14900}
	require.NoError(t, operatorrepo.Provide().Create(ctx, db, &operator))

	area := gridareadomain.MeteringGridArea{
		Code:                 "ABCDE",
		Name:                 "Area X",
		CountryCode:          "SE",
		MeteringBusinessArea: "SE3",
		GridOperatorUID:      operator.UID,
	}
	require.NoError(t, gridarearepo.Provide().Create(ctx, db, &area))

	tariff := domain.PowerTariff{
		UID:             uuid.New(),
		Name:            "Effektavgift",
		Model:           "peak",
		SamplesPerMonth: 3,
		TimeUnit:        "hour",
		BuildingType:    domain.BuildingTypeAll,
		LastUpdated:     time.Date(2025, 1, 15, 12, 0, 0, 0, time.UTC),
		Voltage:         "LV",
		Compositions: []domain.Composition{{
			Months:      []string{"jan", "feb"},
			Days:        []string{"mon", "tue", "wed", "thu", "fri"},
			Unit:        "SEK/kW",
			PriceExcVat: 43.2,
			PriceIncVat: 54,
			Intervals:   []domain.TimeInterval{{From: "06:00", To: "22:00", Multiplier: 1}},
		}},
	}
	repo := tariffrepo.Provide()
	require.NoError(t, repo.Create(ctx, db, &tariff))
	require.NoError(t, repo.Associate(ctx, db, []domain.AreaAssociation{{
		UID:       uuid.New(),
		MGACode:   area.Code,
		TariffUID: tariff.UID,
		Voltage:   "LV",
	}}))
	return operator, tariff
}

func TestGetByMGA(t *testing.T) {
	svc, db := newTestService(t, stubResolver{})
	operator, _ := seedTariff(t, db)

	responses, err := svc.GetByMGA(context.Background(), "SE", "ABCDE")
	require.NoError(t, err)
	require.Len(t, responses, 1)

	resp := responses[0]
	require.Equal(t, "Effektavgift", resp.Name)
	require.Len(t, resp.Compositions, 1)
	require.Equal(t, []string{"jan", "feb"}, resp.Compositions[0].Months)
	require.Len(t, resp.MeteringGridAreas, 1)
	require.Equal(t, "ABCDE", resp.MeteringGridAreas[0].Code)
	require.Equal(t, "LV", resp.MeteringGridAreas[0].Voltage)
	require.Equal(t, operator.UID.String(), resp.MeteringGridAreas[0].GridOperator.UID)
	require.Equal(t, 14900, resp.MeteringGridAreas[0].GridOperator.Ediel)
}

func TestGetByMGAUnknownAreaIsEmpty(t *testing.T) {
	svc, db := newTestService(t, stubResolver{})
	seedTariff(t, db)

	responses, err := svc.GetByMGA(context.Background(), "SE", "NOPE")
	require.NoError(t, err)
	require.Empty(t, responses)
}

func TestGetByMGAWrongCountryIsEmpty(t *testing.T) {
	svc, db := newTestService(t, stubResolver{})
	seedTariff(t, db)

	responses, err := svc.GetByMGA(context.Background(), "NO", "ABCDE")
	require.NoError(t, err)
	require.Empty(t, responses)
}

func TestGetByPostalCodeResolvesArea(t *testing.T) {
	svc, db := newTestService(t, stubResolver{code: "ABCDE"})
	seedTariff(t, db)

	responses, err := svc.GetByPostalCode(context.Background(), "SE", 11120)
	require.NoError(t, err)
	require.Len(t, responses, 1)
}

func TestGetByPostalCodeNoMatchIsEmptyList(t *testing.T) {
	svc, db := newTestService(t, stubResolver{code: ""})
	seedTariff(t, db)

	responses, err := svc.GetByPostalCode(context.Background(), "SE", 99999)
	require.NoError(t, err)
	require.Empty(t, responses)
	require.NotNil(t, responses)
}

func TestGetByAddressPropagatesLookupError(t *testing.T) {
	svc, db := newTestService(t, stubResolver{err: apperr.NotFound("grid area", "Gatan 1")})
	seedTariff(t, db)

	_, err := svc.GetByAddress(context.Background(), "SE", "Gatan 1", "Orten")
	require.Error(t, err)
	require.Equal(t, apperr.KindNotFound, apperr.KindOf(err))
}

func TestGetByCoordinatesNoMatchIsEmptyList(t *testing.T) {
	svc, _ := newTestService(t, stubResolver{code: ""})

	responses, err := svc.GetByCoordinates(context.Background(), "SE", 59.33, 18.06)
	require.NoError(t, err)
	require.Empty(t, responses)
}

func TestListOperators(t *testing.T) {
	svc, db := newTestService(t, stubResolver{})
	operator, _ := seedTariff(t, db)

	responses, err := svc.ListOperators(context.Background())
	require.NoError(t, err)
	require.Len(t, responses, 1)
	require.Equal(t, operator.UID.String(), responses[0].UID)
	require.Equal(t, "Ellevio AB", responses[0].Name)
}

func TestListTariffs(t *testing.T) {
	svc, db := newTestService(t, stubResolver{})
	seedTariff(t, db)

	responses, err := svc.ListTariffs(context.Background())
	require.NoError(t, err)
	require.Len(t, responses, 1)
	require.Len(t, responses[0].MeteringGridAreas, 1)
}

package server

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/engrate/eg-power-tariffs-plugin/internal/alerting"
	"github.com/engrate/eg-power-tariffs-plugin/internal/clock"
	"github.com/engrate/eg-power-tariffs-plugin/internal/config"
	tariffdomain "github.com/engrate/eg-power-tariffs-plugin/internal/tariff/domain"
)

type stubTariffService struct {
	gotCountry string
}

func (s *stubTariffService) ListOperators(context.Context) ([]tariffdomain.OperatorResponse, error) {
	return []tariffdomain.OperatorResponse{}, nil
}

func (s *stubTariffService) ListTariffs(context.Context) ([]tariffdomain.Response, error) {
	return []tariffdomain.Response{}, nil
}

func (s *stubTariffService) GetByMGA(_ context.Context, countryCode, _ string) ([]tariffdomain.Response, error) {
	s.gotCountry = countryCode
	return []tariffdomain.Response{}, nil
}

func (s *stubTariffService) GetByPostalCode(_ context.Context, countryCode string, _ int) ([]tariffdomain.Response, error) {
	s.gotCountry = countryCode
	return []tariffdomain.Response{}, nil
}

func (s *stubTariffService) GetByCoordinates(_ context.Context, countryCode string, _, _ float64) ([]tariffdomain.Response, error) {
	s.gotCountry = countryCode
	return []tariffdomain.Response{}, nil
}

func (s *stubTariffService) GetByAddress(_ context.Context, countryCode, _, _ string) ([]tariffdomain.Response, error) {
	s.gotCountry = countryCode
	return []tariffdomain.Response{}, nil
}

func newHandlerTestServer(svc tariffdomain.Service) *Server {
	return &Server{
		log:       zap.NewNop(),
		alerter:   alerting.New(&config.Config{}, clock.SystemClock{}, zap.NewNop()),
		tariffSvc: svc,
	}
}

func invokeHandler(handler gin.HandlerFunc, params gin.Params) *httptest.ResponseRecorder {
	gin.SetMode(gin.TestMode)
	recorder := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(recorder)
	c.Request = httptest.NewRequest(http.MethodGet, "/", nil)
	c.Params = params
	handler(c)
	return recorder
}

func TestTariffHandlersRejectBadCountryCode(t *testing.T) {
	stub := &stubTariffService{}
	s := newHandlerTestServer(stub)

	tests := []struct {
		name    string
		handler gin.HandlerFunc
		params  gin.Params
	}{
		{
			name:    "mga",
			handler: s.TariffsByMGA,
			params:  gin.Params{{Key: "country_code", Value: "SWEDEN"}, {Key: "mga_code", Value: "ABCDE"}},
		},
		{
			name:    "postal code",
			handler: s.TariffsByPostalCode,
			params:  gin.Params{{Key: "country_code", Value: "S"}, {Key: "postal_code", Value: "11120"}},
		},
		{
			name:    "coordinates",
			handler: s.TariffsByCoordinates,
			params:  gin.Params{{Key: "country_code", Value: "S3"}, {Key: "lat", Value: "59.33"}, {Key: "long", Value: "18.06"}},
		},
		{
			name:    "address",
			handler: s.TariffsByAddress,
			params:  gin.Params{{Key: "country_code", Value: ""}, {Key: "address", Value: "Gatan 1"}, {Key: "city", Value: "Orten"}},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			recorder := invokeHandler(tt.handler, tt.params)
			require.Equal(t, http.StatusBadRequest, recorder.Code)
			require.Empty(t, stub.gotCountry)
		})
	}
}

func TestTariffHandlersAcceptTwoLetterCountryCode(t *testing.T) {
	stub := &stubTariffService{}
	s := newHandlerTestServer(stub)

	recorder := invokeHandler(s.TariffsByMGA,
		gin.Params{{Key: "country_code", Value: "SE"}, {Key: "mga_code", Value: "ABCDE"}})
	require.Equal(t, http.StatusOK, recorder.Code)
	require.Equal(t, "SE", stub.gotCountry)

	recorder = invokeHandler(s.TariffsByPostalCode,
		gin.Params{{Key: "country_code", Value: "NO"}, {Key: "postal_code", Value: "11120"}})
	require.Equal(t, http.StatusOK, recorder.Code)
	require.Equal(t, "NO", stub.gotCountry)
}

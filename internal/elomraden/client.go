// Package elomraden talks to the external grid-area lookup service.
// Three query shapes (address, postal code, coordinates) are normalized
// into one GridArea model; business errors arrive embedded in 200
// responses and are mapped onto the plugin error taxonomy.
package elomraden

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"

	"github.com/engrate/eg-power-tariffs-plugin/internal/apperr"
	"github.com/engrate/eg-power-tariffs-plugin/internal/config"
	"github.com/engrate/eg-power-tariffs-plugin/internal/observability"
	"go.uber.org/zap"
)

type Client struct {
	baseURL string
	user    string
	apiKey  string
	client  *http.Client
	log     *zap.Logger
	metrics *observability.Metrics
}

func NewClient(cfg *config.Config, log *zap.Logger, metrics *observability.Metrics) *Client {
	return &Client{
		baseURL: cfg.Elomraden.BaseURL,
		user:    cfg.Elomraden.User,
		apiKey:  cfg.Elomraden.APIKey,
		client:  &http.Client{Timeout: cfg.Elomraden.Timeout},
		log:     log.Named("elomraden"),
		metrics: metrics,
	}
}

// ByAddress looks up the grid area serving a street address.
func (c *Client) ByAddress(ctx context.Context, street, city string) (*GridArea, error) {
	path := fmt.Sprintf("/adress/adress/%s/ort/%s", url.PathEscape(street), url.PathEscape(city))

	var response byAddressResponse
	if err := c.get(ctx, path, &response); err != nil {
		return nil, err
	}

	envelope := response.ElomradeAdress
	if envelope.Success != 1 {
		return nil, c.businessError(envelope.Error, street+", "+city)
	}
	return c.toGridArea(envelope.Elnat, envelope.Geografi)
}

// ByCoordinates looks up the grid area containing a WGS84 point.
// The upstream response envelope is shared with the address query.
func (c *Client) ByCoordinates(ctx context.Context, lat, lon float64) (*GridArea, error) {
	path := fmt.Sprintf("/koord/latitud/%v/longitud/%v", lat, lon)

	var response byAddressResponse
	if err := c.get(ctx, path, &response); err != nil {
		return nil, err
	}

	envelope := response.ElomradeAdress
	if envelope.Success != 1 {
		return nil, c.businessError(envelope.Error, fmt.Sprintf("latitude:%v, longitude:%v", lat, lon))
	}
	return c.toGridArea(envelope.Elnat, envelope.Geografi)
}

// ByPostalCode looks up the grid area for a postal code. An empty item
// list is a valid "no match", returned as (nil, nil).
func (c *Client) ByPostalCode(ctx context.Context, postalCode int) (*GridArea, error) {
	path := fmt.Sprintf("/postnr/postnummer/%d", postalCode)

	var response byPostalCodeResponse
	if err := c.get(ctx, path, &response); err != nil {
		return nil, err
	}

	envelope := response.NatomradePostnummer
	if envelope.Success != 1 {
		return nil, c.businessError(envelope.Error, fmt.Sprintf("%d", postalCode))
	}
	if len(envelope.Items) == 0 {
		c.log.Warn("no grid area in postal code response", zap.Int("postal_code", postalCode))
		return nil, nil
	}
	item := envelope.Items[0]
	return c.toGridArea(item.Elnat, item.Geografi)
}

func (c *Client) get(ctx context.Context, path string, out any) error {
	fullURL := fmt.Sprintf("%s%s/output/json/user/%s/key/%s",
		c.baseURL, path, url.PathEscape(c.user), url.PathEscape(c.apiKey))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, fullURL, nil)
	if err != nil {
		return apperr.Unknown("build lookup request", err)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		c.countError("transport")
		return apperr.Unknown("area lookup request failed", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		c.countError("transport")
		c.log.Error("area lookup returned error status",
			zap.String("path", path), zap.Int("status", resp.StatusCode))
		return apperr.Unknown(fmt.Sprintf("area lookup returned status %d", resp.StatusCode), nil)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return apperr.Unknown("read lookup response", err)
	}
	if err := json.Unmarshal(body, out); err != nil {
		c.countError("decode")
		return apperr.Unexpected("malformed lookup response: " + err.Error())
	}
	return nil
}

// businessError maps the numeric error code embedded in a nominally
// successful response onto the error taxonomy.
func (c *Client) businessError(apiErr *apiError, arg string) error {
	code, message := 0, "unknown error"
	if apiErr != nil {
		code, message = apiErr.ErrorCode, apiErr.ErrorString
	}
	c.log.Error("area lookup business error",
		zap.Int("code", code), zap.String("message", message), zap.String("argument", arg))

	switch code {
	case 1:
		c.countError("illegal_argument")
		return apperr.Validation("lookup argument", arg)
	case 2:
		c.countError("not_found")
		return apperr.NotFound("grid area", arg)
	case 90:
		c.countError("not_enabled")
		return apperr.NotEnabled()
	default:
		c.countError("unknown")
		return apperr.Unknown(fmt.Sprintf("area lookup error %d: %s", code, message), nil)
	}
}

func (c *Client) toGridArea(elnat *elnatData, geografi *geografiData) (*GridArea, error) {
	if elnat == nil {
		return nil, apperr.Unexpected("lookup response missing grid data")
	}

	zone, err := ZoneFromCode(elnat.Zone)
	if err != nil {
		return nil, err
	}

	area := &GridArea{
		AreaName: elnat.AreaName,
		AreaCode: elnat.AreaCode,
		Zone:     zone,
		Company: GridCompany{
			Name:  elnat.Operator,
			Ediel: elnat.EdielID,
			Email: elnat.Email,
			Phone: elnat.Phone,
		},
	}
	if geografi != nil {
		area.AdditionalDetails = &AdditionalDetails{
			Municipality:  geografi.Municipality,
			EnergyTax:     geografi.EnergyTax,
			EnergyTaxName: geografi.EnergyTaxName,
			Locality:      geografi.Locality,
		}
	}
	return area, nil
}

func (c *Client) countError(kind string) {
	if c.metrics != nil {
		c.metrics.LookupErrors.WithLabelValues(kind).Inc()
	}
}

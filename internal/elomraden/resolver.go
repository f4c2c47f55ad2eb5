package elomraden

import (
	"context"

	tariffdomain "github.com/engrate/eg-power-tariffs-plugin/internal/tariff/domain"
)

// Resolver adapts the lookup client to the tariff service, reducing a
// full GridArea to the area code resolution needs.
type Resolver struct {
	client *Client
}

func NewResolver(client *Client) tariffdomain.AreaResolver {
	return &Resolver{client: client}
}

func (r *Resolver) AreaCodeByPostalCode(ctx context.Context, postalCode int) (string, error) {
	area, err := r.client.ByPostalCode(ctx, postalCode)
	if err != nil || area == nil {
		return "", err
	}
	return area.AreaCode, nil
}

func (r *Resolver) AreaCodeByCoordinates(ctx context.Context, lat, lon float64) (string, error) {
	area, err := r.client.ByCoordinates(ctx, lat, lon)
	if err != nil || area == nil {
		return "", err
	}
	return area.AreaCode, nil
}

func (r *Resolver) AreaCodeByAddress(ctx context.Context, street, city string) (string, error) {
	area, err := r.client.ByAddress(ctx, street, city)
	if err != nil || area == nil {
		return "", err
	}
	return area.AreaCode, nil
}

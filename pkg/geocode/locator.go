package geocode

import (
	"context"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/sells-group/resource-finder/internal/geo"
)

// ErrNoMatch is returned by AddressLocator when the address did not geocode.
var ErrNoMatch = eris.New("geocode: address not matched")

// AddressLocator turns a fixed address into a user position. It satisfies
// the session geolocator contract.
type AddressLocator struct {
	Client  Client
	Address string
}

// NewAddressLocator creates a locator for address backed by client.
func NewAddressLocator(client Client, address string) *AddressLocator {
	return &AddressLocator{Client: client, Address: address}
}

// Locate geocodes the configured address.
func (l *AddressLocator) Locate(ctx context.Context) (geo.Point, error) {
	res, err := l.Client.Geocode(ctx, l.Address)
	if err != nil {
		return geo.Point{}, eris.Wrap(err, "geocode: locate address")
	}
	if !res.Matched {
		return geo.Point{}, eris.Wrapf(ErrNoMatch, "geocode: %q", l.Address)
	}

	p := geo.Point{Lat: res.Latitude, Lon: res.Longitude}
	zap.L().Debug("geocode: located address",
		zap.String("address", l.Address),
		zap.String("matched", res.MatchedAddress),
		zap.Float64("lat", p.Lat),
		zap.Float64("lon", p.Lon),
	)
	return p, nil
}

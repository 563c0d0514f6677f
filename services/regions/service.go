package regions

import (
	"context"
	"strings"

	"github.com/MarcGrol/expresscheckout/lib/mylog"
	"github.com/MarcGrol/expresscheckout/services/shopapi"
	"github.com/MarcGrol/expresscheckout/services/shopgateway"
)

// RegionUnsupported is the sentinel for a country the shop does not sell to.
const RegionUnsupported = 0

type Service struct {
	gateway shopgateway.Gateway
	logger  mylog.Logger
}

func New(gateway shopgateway.Gateway) *Service {
	return &Service{
		gateway: gateway,
		logger:  mylog.New("regions"),
	}
}

// CurrentCatalog fetches the country catalog of the shop session.
func (s *Service) CurrentCatalog(c context.Context) (shopapi.CountryCatalog, error) {
	return s.gateway.FetchCountries(c)
}

// Resolve maps a raw country code onto a region id. The shopper's current
// country is checked first, then the available list in order; the first
// match wins.
func Resolve(catalog shopapi.CountryCatalog, countryCode string) int {
	if countryCode == "" {
		return RegionUnsupported
	}

	if catalog.Current.ISOCode != "" && strings.EqualFold(catalog.Current.ISOCode, countryCode) {
		return catalog.Current.ID
	}

	for _, region := range catalog.Available {
		if strings.EqualFold(region.ISOCode, countryCode) {
			return region.ID
		}
	}

	return RegionUnsupported
}

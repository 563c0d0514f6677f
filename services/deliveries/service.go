package deliveries

import (
	"context"

	"github.com/MarcGrol/expresscheckout/lib/mylog"
	"github.com/MarcGrol/expresscheckout/services/shopapi"
	"github.com/MarcGrol/expresscheckout/services/shopgateway"
)

const maxCouriers = 10

type Service struct {
	gateway shopgateway.Gateway
	logger  mylog.Logger
}

func New(gateway shopgateway.Gateway) *Service {
	return &Service{
		gateway: gateway,
		logger:  mylog.New("deliveries"),
	}
}

// Fetch returns the couriers available for a mode and region: prepaid with a
// non-empty name, the cheapest promoted to the front, at most 10 entries.
// An empty result means the destination cannot be delivered to.
func (s *Service) Fetch(c context.Context, mode shopapi.Mode, regionID int) ([]shopapi.Courier, error) {
	fetched, err := s.gateway.FetchShipping(c, mode, regionID)
	if err != nil {
		return nil, err
	}

	couriers := []shopapi.Courier{}
	for _, courier := range fetched {
		if !courier.IsPrepaid || courier.Name == "" {
			continue
		}
		couriers = append(couriers, courier)
	}

	couriers = promoteCheapest(couriers)
	if len(couriers) > maxCouriers {
		couriers = couriers[:maxCouriers]
	}

	return couriers, nil
}

// promoteCheapest moves the cheapest courier (first occurrence on a cost tie)
// to the front, keeping the relative order of all others. Not a full sort.
func promoteCheapest(couriers []shopapi.Courier) []shopapi.Courier {
	if len(couriers) == 0 {
		return couriers
	}

	cheapest := 0
	for i, courier := range couriers {
		if courier.CostValue < couriers[cheapest].CostValue {
			cheapest = i
		}
	}
	if cheapest == 0 {
		return couriers
	}

	promoted := make([]shopapi.Courier, 0, len(couriers))
	promoted = append(promoted, couriers[cheapest])
	promoted = append(promoted, couriers[:cheapest]...)
	promoted = append(promoted, couriers[cheapest+1:]...)

	return promoted
}

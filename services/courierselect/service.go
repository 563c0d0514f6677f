package courierselect

import (
	"context"
	"errors"
	"fmt"

	"github.com/MarcGrol/expresscheckout/lib/mylog"
	"github.com/MarcGrol/expresscheckout/services/checkoutsession"
	"github.com/MarcGrol/expresscheckout/services/shopapi"
	"github.com/MarcGrol/expresscheckout/services/shopgateway"
)

var (
	// ErrSelectedDeliveryInvalid means the courier is not part of the most
	// recently fetched catalog for the attempt. Recoverable: the shopper
	// may pick another option.
	ErrSelectedDeliveryInvalid = errors.New("selected delivery not in current catalog")

	// ErrCourierPersistFailure means the backend rejected the save.
	ErrCourierPersistFailure = errors.New("could not save selected courier")
)

type Service struct {
	gateway  shopgateway.Gateway
	sessions *checkoutsession.Service
	logger   mylog.Logger
}

func New(gateway shopgateway.Gateway, sessions *checkoutsession.Service) *Service {
	return &Service{
		gateway:  gateway,
		sessions: sessions,
		logger:   mylog.New("courierselect"),
	}
}

// Select persists the shopper's courier choice for an attempt and updates the
// attempt's last computed total. Returns that total.
func (s *Service) Select(c context.Context, attemptUID string, courierID int) (float64, error) {
	session, err := s.sessions.Get(c, attemptUID)
	if err != nil {
		return 0, err
	}

	courier, found := session.DeliveryByID(courierID)
	if !found {
		return 0, ErrSelectedDeliveryInvalid
	}

	total := shopapi.Round2(session.Basket.GrossWorth + courier.CostValue)

	status, err := s.gateway.SaveSelectedCourier(c, courierID, session.Provider, total, session.InitData.CurrencyFromSession)
	if err != nil {
		return 0, err
	}
	if status != "success" {
		s.logger.Log(c, attemptUID, mylog.SeverityWarn, "Courier save for attempt %s returned status %s", attemptUID, status)
		return 0, ErrCourierPersistFailure
	}

	_, err = s.sessions.Update(c, attemptUID, func(session *shopapi.CheckoutSession) error {
		session.SelectedCourierID = courierID
		session.LastComputedTotal = total
		return nil
	})
	if err != nil {
		return 0, fmt.Errorf("error recording courier selection: %s", err)
	}

	s.logger.Log(c, attemptUID, mylog.SeverityInfo, "Selected courier %d for attempt %s, total %.2f", courierID, attemptUID, total)

	return total, nil
}

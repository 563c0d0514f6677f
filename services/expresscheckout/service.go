package expresscheckout

import (
	"context"
	"fmt"

	"github.com/MarcGrol/expresscheckout/lib/myerrors"
	"github.com/MarcGrol/expresscheckout/lib/mylog"
	"github.com/MarcGrol/expresscheckout/lib/mypublisher"
	"github.com/MarcGrol/expresscheckout/services/checkoutevents"
	"github.com/MarcGrol/expresscheckout/services/checkoutsession"
	"github.com/MarcGrol/expresscheckout/services/courierselect"
	"github.com/MarcGrol/expresscheckout/services/deliveries"
	"github.com/MarcGrol/expresscheckout/services/finalization"
	"github.com/MarcGrol/expresscheckout/services/regions"
	"github.com/MarcGrol/expresscheckout/services/shopapi"
	"github.com/MarcGrol/expresscheckout/services/shopgateway"
)

// Resolution is the outcome of an address change: either a rejection or the
// recalculated total with the couriers available for the new region.
type Resolution struct {
	Rejected bool
	RegionID int
	Total    float64
	Couriers []shopapi.Courier
}

// Orchestrator drives the pipeline all provider adapters funnel through:
// address change, courier change, approval and cancel.
type Orchestrator struct {
	sessions   *checkoutsession.Service
	regions    *regions.Service
	deliveries *deliveries.Service
	couriers   *courierselect.Service
	gateway    shopgateway.Gateway
	dispatcher finalization.Dispatcher
	publisher  mypublisher.Publisher
	logger     mylog.Logger
}

func New(sessions *checkoutsession.Service, regionService *regions.Service, deliveryService *deliveries.Service,
	courierService *courierselect.Service, gateway shopgateway.Gateway, dispatcher finalization.Dispatcher,
	publisher mypublisher.Publisher) *Orchestrator {
	return &Orchestrator{
		sessions:   sessions,
		regions:    regionService,
		deliveries: deliveryService,
		couriers:   courierService,
		gateway:    gateway,
		dispatcher: dispatcher,
		publisher:  publisher,
		logger:     mylog.New("expresscheckout"),
	}
}

func (o *Orchestrator) CreateTopics(c context.Context) error {
	err := o.publisher.CreateTopic(c, checkoutevents.TopicName)
	if err != nil {
		return fmt.Errorf("error creating topic %s: %s", checkoutevents.TopicName, err)
	}

	return nil
}

// StartAttempt begins a new checkout attempt: init data is fetched up front
// and the default courier list is resolved for the session's region.
func (o *Orchestrator) StartAttempt(c context.Context, provider shopapi.Provider, mode shopapi.Mode, productID string, quantity int) (shopapi.CheckoutSession, error) {
	initData, err := o.gateway.FetchPaymentInitData(c, provider)
	if err != nil {
		return shopapi.CheckoutSession{}, err
	}

	return o.startAttempt(c, provider, mode, productID, quantity, initData, shopapi.CountryCatalog{})
}

// StartAttemptWithInitData begins an attempt with init data and a country
// catalog obtained elsewhere (the Google Pay adapter serves them from its
// cache).
func (o *Orchestrator) StartAttemptWithInitData(c context.Context, provider shopapi.Provider, mode shopapi.Mode, productID string, quantity int,
	initData shopapi.PaymentInitData, catalog shopapi.CountryCatalog) (shopapi.CheckoutSession, error) {
	return o.startAttempt(c, provider, mode, productID, quantity, initData, catalog)
}

func (o *Orchestrator) startAttempt(c context.Context, provider shopapi.Provider, mode shopapi.Mode, productID string, quantity int,
	initData shopapi.PaymentInitData, catalog shopapi.CountryCatalog) (shopapi.CheckoutSession, error) {
	session, err := o.sessions.Start(c, provider, mode, productID, quantity)
	if err != nil {
		return shopapi.CheckoutSession{}, err
	}

	defaultCouriers, err := o.deliveries.Fetch(c, mode, 0)
	if err != nil {
		return shopapi.CheckoutSession{}, err
	}

	session, err = o.sessions.Update(c, session.AttemptUID, func(session *shopapi.CheckoutSession) error {
		session.InitData = initData
		session.Countries = catalog
		session.Deliveries = defaultCouriers
		session.Phase = shopapi.PhaseAwaitingAddress
		return nil
	})
	if err != nil {
		return shopapi.CheckoutSession{}, err
	}

	err = o.publisher.Publish(c, checkoutevents.TopicName, checkoutevents.CheckoutStarted{
		AttemptUID:   session.AttemptUID,
		ProviderName: string(provider),
		Mode:         string(mode),
	})
	if err != nil {
		return shopapi.CheckoutSession{}, myerrors.NewInternalError(fmt.Errorf("error publishing event: %s", err))
	}

	return session, nil
}

// AddressChanged resolves a new delivery address: region lookup, courier
// catalog refresh and persisting a courier selection so the total stays
// consistent. An unsupported country yields a rejection and keeps the
// attempt alive.
func (o *Orchestrator) AddressChanged(c context.Context, attemptUID string, countryCode string, selectedCourierID int) (Resolution, error) {
	session, err := o.sessions.Get(c, attemptUID)
	if err != nil {
		return Resolution{}, err
	}

	o.logger.Log(c, attemptUID, mylog.SeverityInfo, "Address of attempt %s changed to country %q", attemptUID, countryCode)

	session, err = o.ensureBasket(c, session)
	if err != nil {
		return Resolution{}, err
	}

	catalog, err := o.regions.CurrentCatalog(c)
	if err != nil {
		return Resolution{}, err
	}

	regionID := regions.Resolve(catalog, countryCode)
	if regionID == regions.RegionUnsupported {
		return o.rejectAddress(c, attemptUID, catalog, countryCode)
	}

	couriers, err := o.deliveries.Fetch(c, shopapi.ModeBasket, regionID)
	if err != nil {
		return Resolution{}, err
	}
	if len(couriers) == 0 {
		return o.rejectAddress(c, attemptUID, catalog, countryCode)
	}

	_, err = o.sessions.Update(c, attemptUID, func(session *shopapi.CheckoutSession) error {
		session.Countries = catalog
		session.Deliveries = couriers
		return nil
	})
	if err != nil {
		return Resolution{}, err
	}

	// keep a previously selected courier when it survived the region change
	courierID := couriers[0].ID
	if selectedCourierID != 0 {
		for _, courier := range couriers {
			if courier.ID == selectedCourierID {
				courierID = selectedCourierID
				break
			}
		}
	}

	total, err := o.couriers.Select(c, attemptUID, courierID)
	if err != nil {
		return Resolution{}, err
	}

	_, err = o.sessions.Update(c, attemptUID, func(session *shopapi.CheckoutSession) error {
		session.Phase = shopapi.PhaseShippingResolved
		return nil
	})
	if err != nil {
		return Resolution{}, err
	}

	return Resolution{
		RegionID: regionID,
		Total:    total,
		Couriers: couriers,
	}, nil
}

// CourierChanged handles a courier-only change: no region or catalog
// re-fetch, just validation and persistence of the new selection.
func (o *Orchestrator) CourierChanged(c context.Context, attemptUID string, courierID int) (float64, error) {
	total, err := o.couriers.Select(c, attemptUID, courierID)
	if err != nil {
		return 0, err
	}

	return total, nil
}

// Approve processes the provider's payment token and returns the URL the
// shopper must be redirected to.
func (o *Orchestrator) Approve(c context.Context, attemptUID string, orderID string, token string) (string, error) {
	session, err := o.sessions.Update(c, attemptUID, func(session *shopapi.CheckoutSession) error {
		session.Phase = shopapi.PhaseSettling
		session.OrderID = orderID
		return nil
	})
	if err != nil {
		return "", err
	}

	proceeded, err := o.gateway.ProceedPayment(c, session.Provider, orderID, token)
	if err != nil {
		return "", err
	}
	if proceeded.RedirectURL == "" {
		return "", myerrors.NewInternalError(fmt.Errorf("payment of attempt %s could not be processed", attemptUID))
	}

	redirectURL, err := o.dispatcher.Settle(c, session, token, proceeded.RedirectURL)
	if err != nil {
		// terminal for the attempt, the error carries the redirect
		_, finishErr := o.sessions.Finish(c, attemptUID, shopapi.PhaseSettling)
		if finishErr != nil {
			o.logger.Log(c, attemptUID, mylog.SeverityWarn, "Error finishing settled attempt %s: %s", attemptUID, finishErr)
		}
		return "", err
	}

	_, err = o.sessions.Finish(c, attemptUID, shopapi.PhaseRedirected)
	if err != nil {
		return "", err
	}

	err = o.publisher.Publish(c, checkoutevents.TopicName, checkoutevents.CheckoutCompleted{
		AttemptUID:   attemptUID,
		ProviderName: string(session.Provider),
		TotalAmount:  session.LastComputedTotal,
		Currency:     session.InitData.CurrencyFromSession,
	})
	if err != nil {
		return "", myerrors.NewInternalError(fmt.Errorf("error publishing event: %s", err))
	}

	o.logger.Log(c, attemptUID, mylog.SeverityInfo, "Attempt %s settled, redirecting", attemptUID)

	return redirectURL, nil
}

// Cancel restores the basket and ends the attempt. Safe to call repeatedly;
// in-flight pipeline calls are not aborted, their late replies bounce off
// the finished attempt.
func (o *Orchestrator) Cancel(c context.Context, attemptUID string) error {
	err := o.gateway.RestoreBasket(c)
	if err != nil {
		return err
	}

	session, err := o.sessions.Get(c, attemptUID)
	if err != nil {
		if myerrors.GetHTTPStatus(err) == 404 {
			// unknown or already finished attempt
			return nil
		}
		return err
	}

	_, err = o.sessions.Finish(c, attemptUID, shopapi.PhaseCancelled)
	if err != nil {
		return err
	}

	err = o.publisher.Publish(c, checkoutevents.TopicName, checkoutevents.CheckoutCancelled{
		AttemptUID:   attemptUID,
		ProviderName: string(session.Provider),
	})
	if err != nil {
		return myerrors.NewInternalError(fmt.Errorf("error publishing event: %s", err))
	}

	o.logger.Log(c, attemptUID, mylog.SeverityInfo, "Cancelled checkout attempt %s", attemptUID)

	return nil
}

// ensureBasket fetches the basket on the first contact change. In product
// mode the product is added to the basket first.
func (o *Orchestrator) ensureBasket(c context.Context, session shopapi.CheckoutSession) (shopapi.CheckoutSession, error) {
	if session.FirstContactChangeDone {
		return session, nil
	}

	if session.Mode == shopapi.ModeProduct {
		err := o.gateway.AddProductToBasket(c, session.ProductID, session.Quantity)
		if err != nil {
			return shopapi.CheckoutSession{}, err
		}
	}

	basket, err := o.gateway.FetchBasket(c)
	if err != nil {
		return shopapi.CheckoutSession{}, err
	}

	return o.sessions.Update(c, session.AttemptUID, func(session *shopapi.CheckoutSession) error {
		session.Basket = basket
		session.FirstContactChangeDone = true
		return nil
	})
}

func (o *Orchestrator) rejectAddress(c context.Context, attemptUID string, catalog shopapi.CountryCatalog, countryCode string) (Resolution, error) {
	session, err := o.sessions.Update(c, attemptUID, func(session *shopapi.CheckoutSession) error {
		session.Countries = catalog
		session.Phase = shopapi.PhaseAddressRejected
		return nil
	})
	if err != nil {
		return Resolution{}, err
	}

	o.logger.Log(c, attemptUID, mylog.SeverityInfo, "Address country %q of attempt %s not supported", countryCode, attemptUID)

	return Resolution{
		Rejected: true,
		Total:    session.LastComputedTotal,
	}, nil
}

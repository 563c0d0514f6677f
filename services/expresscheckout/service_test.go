package expresscheckout

import (
	"context"
	"testing"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"

	"github.com/MarcGrol/expresscheckout/lib/mypublisher"
	"github.com/MarcGrol/expresscheckout/lib/mystore"
	"github.com/MarcGrol/expresscheckout/lib/mytime"
	"github.com/MarcGrol/expresscheckout/lib/myuuid"
	"github.com/MarcGrol/expresscheckout/services/checkoutevents"
	"github.com/MarcGrol/expresscheckout/services/checkoutsession"
	"github.com/MarcGrol/expresscheckout/services/courierselect"
	"github.com/MarcGrol/expresscheckout/services/deliveries"
	"github.com/MarcGrol/expresscheckout/services/finalization"
	"github.com/MarcGrol/expresscheckout/services/regions"
	"github.com/MarcGrol/expresscheckout/services/shopapi"
	"github.com/MarcGrol/expresscheckout/services/shopgateway"
)

var (
	testCatalog = shopapi.CountryCatalog{
		Current: shopapi.Region{ID: 3, ISOCode: "pl", Name: "Polska"},
		Available: []shopapi.Region{
			{ID: 7, ISOCode: "de"},
		},
	}
	testCouriers = []shopapi.Courier{
		{ID: 1, Name: "pickup", CostValue: 0, CostCurrency: "PLN", IsPrepaid: true},
		{ID: 2, Name: "dpd", CostValue: 9.99, CostCurrency: "PLN", IsPrepaid: true},
	}
)

func TestAddressChanged(t *testing.T) {
	c := context.TODO()

	t.Run("supported country resolves shipping and total", func(t *testing.T) {
		f := setup(t)
		defer f.ctrl.Finish()

		uid := f.startedAttempt(t, c, shopapi.ModeBasket)

		f.gateway.EXPECT().FetchBasket(c).Return(shopapi.BasketSnapshot{GrossWorth: 99.99, Currency: "PLN"}, nil)
		f.gateway.EXPECT().FetchCountries(c).Return(testCatalog, nil)
		f.gateway.EXPECT().FetchShipping(c, shopapi.ModeBasket, 3).Return(testCouriers, nil)
		f.gateway.EXPECT().SaveSelectedCourier(c, 2, shopapi.ProviderPayPal, 109.98, "PLN").Return("success", nil)

		resolution, err := f.orchestrator.AddressChanged(c, uid, "PL", 2)

		assert.NoError(t, err)
		assert.False(t, resolution.Rejected)
		assert.Equal(t, 3, resolution.RegionID)
		assert.Equal(t, 109.98, resolution.Total)
		assert.Len(t, resolution.Couriers, 2)

		session, err := f.sessions.Get(c, uid)
		assert.NoError(t, err)
		assert.Equal(t, shopapi.PhaseShippingResolved, session.Phase)
		assert.Equal(t, 109.98, session.LastComputedTotal)
		assert.Equal(t, shopapi.Round2(session.Basket.GrossWorth+9.99), session.LastComputedTotal)
	})

	t.Run("unsupported country rejects without courier query", func(t *testing.T) {
		f := setup(t)
		defer f.ctrl.Finish()

		uid := f.startedAttempt(t, c, shopapi.ModeBasket)

		f.gateway.EXPECT().FetchBasket(c).Return(shopapi.BasketSnapshot{GrossWorth: 99.99, Currency: "PLN"}, nil)
		f.gateway.EXPECT().FetchCountries(c).Return(testCatalog, nil)
		// no FetchShipping expectation: the catalog must not be queried

		resolution, err := f.orchestrator.AddressChanged(c, uid, "fr", 0)

		assert.NoError(t, err)
		assert.True(t, resolution.Rejected)

		session, err := f.sessions.Get(c, uid)
		assert.NoError(t, err)
		assert.Equal(t, shopapi.PhaseAddressRejected, session.Phase)
		assert.False(t, session.Finished)
	})

	t.Run("previously selected courier absent falls back to default", func(t *testing.T) {
		f := setup(t)
		defer f.ctrl.Finish()

		uid := f.startedAttempt(t, c, shopapi.ModeBasket)

		f.gateway.EXPECT().FetchBasket(c).Return(shopapi.BasketSnapshot{GrossWorth: 99.99, Currency: "PLN"}, nil)
		f.gateway.EXPECT().FetchCountries(c).Return(testCatalog, nil)
		f.gateway.EXPECT().FetchShipping(c, shopapi.ModeBasket, 7).Return(testCouriers, nil)
		f.gateway.EXPECT().SaveSelectedCourier(c, 1, shopapi.ProviderPayPal, 99.99, "PLN").Return("success", nil)

		resolution, err := f.orchestrator.AddressChanged(c, uid, "de", 42)

		assert.NoError(t, err)
		assert.Equal(t, 7, resolution.RegionID)
		assert.Equal(t, 99.99, resolution.Total)
	})

	t.Run("product mode adds product before basket fetch", func(t *testing.T) {
		f := setup(t)
		defer f.ctrl.Finish()

		uid := f.startedAttempt(t, c, shopapi.ModeProduct)

		f.gateway.EXPECT().AddProductToBasket(c, "p-42", 1).Return(nil)
		f.gateway.EXPECT().FetchBasket(c).Return(shopapi.BasketSnapshot{GrossWorth: 49.50, Currency: "PLN"}, nil)
		f.gateway.EXPECT().FetchCountries(c).Return(testCatalog, nil)
		f.gateway.EXPECT().FetchShipping(c, shopapi.ModeBasket, 3).Return(testCouriers, nil)
		f.gateway.EXPECT().SaveSelectedCourier(c, 1, shopapi.ProviderPayPal, 49.50, "PLN").Return("success", nil)

		_, err := f.orchestrator.AddressChanged(c, uid, "pl", 0)
		assert.NoError(t, err)

		// second address change must not re-add the product
		f.gateway.EXPECT().FetchCountries(c).Return(testCatalog, nil)
		f.gateway.EXPECT().FetchShipping(c, shopapi.ModeBasket, 3).Return(testCouriers, nil)
		f.gateway.EXPECT().SaveSelectedCourier(c, 1, shopapi.ProviderPayPal, 49.50, "PLN").Return("success", nil)

		_, err = f.orchestrator.AddressChanged(c, uid, "pl", 0)
		assert.NoError(t, err)
	})
}

func TestCourierChanged(t *testing.T) {
	c := context.TODO()

	t.Run("valid courier recomputes total", func(t *testing.T) {
		f := setup(t)
		defer f.ctrl.Finish()

		uid := f.resolvedAttempt(t, c)

		f.gateway.EXPECT().SaveSelectedCourier(c, 2, shopapi.ProviderPayPal, 109.98, "PLN").Return("success", nil)

		total, err := f.orchestrator.CourierChanged(c, uid, 2)

		assert.NoError(t, err)
		assert.Equal(t, 109.98, total)
	})

	t.Run("invalid courier surfaces typed error", func(t *testing.T) {
		f := setup(t)
		defer f.ctrl.Finish()

		uid := f.resolvedAttempt(t, c)

		_, err := f.orchestrator.CourierChanged(c, uid, 42)

		assert.ErrorIs(t, err, courierselect.ErrSelectedDeliveryInvalid)
	})
}

func TestApprove(t *testing.T) {
	c := context.TODO()

	t.Run("successful approval finishes attempt and publishes", func(t *testing.T) {
		f := setup(t)
		defer f.ctrl.Finish()

		uid := f.resolvedAttempt(t, c)

		f.gateway.EXPECT().ProceedPayment(c, shopapi.ProviderPayPal, "order-1", "token-1").
			Return(shopgateway.PaymentProceeded{Status: "success", RedirectURL: "https://shop.example/thanks"}, nil)
		f.dispatcher.EXPECT().Settle(c, gomock.Any(), "token-1", "https://shop.example/thanks").
			Return("https://shop.example/thanks", nil)
		f.publisher.EXPECT().Publish(c, checkoutevents.TopicName, gomock.AssignableToTypeOf(checkoutevents.CheckoutCompleted{})).Return(nil)

		redirectURL, err := f.orchestrator.Approve(c, uid, "order-1", "token-1")

		assert.NoError(t, err)
		assert.Equal(t, "https://shop.example/thanks", redirectURL)

		// the attempt is finished: further operations bounce
		_, err = f.orchestrator.CourierChanged(c, uid, 1)
		assert.Error(t, err)
	})

	t.Run("empty redirect url is a generic payment error", func(t *testing.T) {
		f := setup(t)
		defer f.ctrl.Finish()

		uid := f.resolvedAttempt(t, c)

		f.gateway.EXPECT().ProceedPayment(c, shopapi.ProviderPayPal, "order-1", "token-1").
			Return(shopgateway.PaymentProceeded{Status: "failed"}, nil)

		_, err := f.orchestrator.Approve(c, uid, "order-1", "token-1")

		assert.Error(t, err)
	})
}

func TestCancel(t *testing.T) {
	c := context.TODO()

	t.Run("cancel restores basket and is idempotent", func(t *testing.T) {
		f := setup(t)
		defer f.ctrl.Finish()

		uid := f.resolvedAttempt(t, c)

		f.gateway.EXPECT().RestoreBasket(c).Return(nil).Times(2)
		f.publisher.EXPECT().Publish(c, checkoutevents.TopicName, gomock.AssignableToTypeOf(checkoutevents.CheckoutCancelled{})).Return(nil)

		assert.NoError(t, f.orchestrator.Cancel(c, uid))
		assert.NoError(t, f.orchestrator.Cancel(c, uid))
	})

	t.Run("cancel of unknown attempt still restores basket", func(t *testing.T) {
		f := setup(t)
		defer f.ctrl.Finish()

		f.gateway.EXPECT().RestoreBasket(c).Return(nil)

		assert.NoError(t, f.orchestrator.Cancel(c, "unknown"))
	})
}

type fixture struct {
	orchestrator *Orchestrator
	sessions     *checkoutsession.Service
	gateway      *shopgateway.MockGateway
	dispatcher   *finalization.MockDispatcher
	publisher    *mypublisher.MockPublisher
	ctrl         *gomock.Controller
}

func setup(t *testing.T) fixture {
	c := context.TODO()
	ctrl := gomock.NewController(t)

	store, _, err := mystore.NewInMemoryStore[shopapi.CheckoutSession](c)
	assert.NoError(t, err)

	nower := mytime.NewMockNower(ctrl)
	nower.EXPECT().Now().Return(mytime.ExampleTime).AnyTimes()
	uuider := myuuid.NewMockUUIDer(ctrl)
	uuider.EXPECT().Create().Return("attempt-123").AnyTimes()

	gateway := shopgateway.NewMockGateway(ctrl)
	dispatcher := finalization.NewMockDispatcher(ctrl)
	publisher := mypublisher.NewMockPublisher(ctrl)

	sessions := checkoutsession.New(store, nower, uuider)
	orchestrator := New(sessions, regions.New(gateway), deliveries.New(gateway),
		courierselect.New(gateway, sessions), gateway, dispatcher, publisher)

	return fixture{
		orchestrator: orchestrator,
		sessions:     sessions,
		gateway:      gateway,
		dispatcher:   dispatcher,
		publisher:    publisher,
		ctrl:         ctrl,
	}
}

// startedAttempt brings an attempt into the awaiting-address phase.
func (f fixture) startedAttempt(t *testing.T, c context.Context, mode shopapi.Mode) string {
	f.gateway.EXPECT().FetchPaymentInitData(c, shopapi.ProviderPayPal).
		Return(shopapi.PaymentInitData{CurrencyFromSession: "PLN"}, nil)
	f.gateway.EXPECT().FetchShipping(c, mode, 0).Return(testCouriers, nil)
	f.publisher.EXPECT().Publish(c, checkoutevents.TopicName, gomock.AssignableToTypeOf(checkoutevents.CheckoutStarted{})).Return(nil)

	session, err := f.orchestrator.StartAttempt(c, shopapi.ProviderPayPal, mode, "p-42", 1)
	assert.NoError(t, err)
	assert.Equal(t, shopapi.PhaseAwaitingAddress, session.Phase)

	return session.AttemptUID
}

// resolvedAttempt brings an attempt into the shipping-resolved phase with a
// basket worth 99.99 and the test courier catalog.
func (f fixture) resolvedAttempt(t *testing.T, c context.Context) string {
	uid := f.startedAttempt(t, c, shopapi.ModeBasket)

	_, err := f.sessions.Update(c, uid, func(session *shopapi.CheckoutSession) error {
		session.Basket = shopapi.BasketSnapshot{GrossWorth: 99.99, Currency: "PLN"}
		session.Deliveries = testCouriers
		session.Countries = testCatalog
		session.FirstContactChangeDone = true
		session.Phase = shopapi.PhaseShippingResolved
		return nil
	})
	assert.NoError(t, err)

	return uid
}

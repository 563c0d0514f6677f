package checkoutsession

import (
	"context"
	"net/http"
	"testing"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"

	"github.com/MarcGrol/expresscheckout/lib/myerrors"
	"github.com/MarcGrol/expresscheckout/lib/mystore"
	"github.com/MarcGrol/expresscheckout/lib/mytime"
	"github.com/MarcGrol/expresscheckout/lib/myuuid"
	"github.com/MarcGrol/expresscheckout/services/shopapi"
)

func TestAttemptLifecycle(t *testing.T) {
	c := context.TODO()
	service, ctrl := setup(t, c)
	defer ctrl.Finish()

	session, err := service.Start(c, shopapi.ProviderPayPal, shopapi.ModeBasket, "", 0)
	assert.NoError(t, err)
	assert.NotEmpty(t, session.AttemptUID)
	assert.Equal(t, shopapi.PhaseInitializing, session.Phase)
	assert.Equal(t, mytime.ExampleTime, session.CreatedAt)

	t.Run("get live attempt", func(t *testing.T) {
		fetched, err := service.Get(c, session.AttemptUID)
		assert.NoError(t, err)
		assert.Equal(t, shopapi.ProviderPayPal, fetched.Provider)
	})

	t.Run("get unknown attempt", func(t *testing.T) {
		_, err := service.Get(c, "unknown")
		assert.Error(t, err)
		assert.Equal(t, http.StatusNotFound, myerrors.GetHTTPStatus(err))
	})

	t.Run("update mutates and stamps last-modified", func(t *testing.T) {
		updated, err := service.Update(c, session.AttemptUID, func(session *shopapi.CheckoutSession) error {
			session.Phase = shopapi.PhaseAwaitingAddress
			session.LastComputedTotal = 109.98
			return nil
		})
		assert.NoError(t, err)
		assert.Equal(t, shopapi.PhaseAwaitingAddress, updated.Phase)
		assert.Equal(t, 109.98, updated.LastComputedTotal)
		assert.NotNil(t, updated.LastModified)
	})

	t.Run("finish is idempotent", func(t *testing.T) {
		finished, err := service.Finish(c, session.AttemptUID, shopapi.PhaseCancelled)
		assert.NoError(t, err)
		assert.True(t, finished.Finished)
		assert.Equal(t, shopapi.PhaseCancelled, finished.Phase)

		again, err := service.Finish(c, session.AttemptUID, shopapi.PhaseRedirected)
		assert.NoError(t, err)
		assert.Equal(t, shopapi.PhaseCancelled, again.Phase)
	})

	t.Run("operations against finished attempt are rejected", func(t *testing.T) {
		_, err := service.Get(c, session.AttemptUID)
		assert.Equal(t, http.StatusNotFound, myerrors.GetHTTPStatus(err))

		_, err = service.Update(c, session.AttemptUID, func(session *shopapi.CheckoutSession) error {
			return nil
		})
		assert.Equal(t, http.StatusNotFound, myerrors.GetHTTPStatus(err))
	})
}

func setup(t *testing.T, c context.Context) (*Service, *gomock.Controller) {
	ctrl := gomock.NewController(t)

	store, _, err := mystore.NewInMemoryStore[shopapi.CheckoutSession](c)
	assert.NoError(t, err)

	nower := mytime.NewMockNower(ctrl)
	nower.EXPECT().Now().Return(mytime.ExampleTime).AnyTimes()

	uuider := myuuid.NewMockUUIDer(ctrl)
	uuider.EXPECT().Create().Return("attempt-123").AnyTimes()

	return New(store, nower, uuider), ctrl
}

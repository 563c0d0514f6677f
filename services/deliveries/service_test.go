package deliveries

import (
	"context"
	"fmt"
	"testing"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"

	"github.com/MarcGrol/expresscheckout/services/shopapi"
	"github.com/MarcGrol/expresscheckout/services/shopgateway"
)

func TestFetch(t *testing.T) {
	c := context.TODO()

	t.Run("filters non-prepaid and unnamed couriers", func(t *testing.T) {
		service, gateway, ctrl := setup(t)
		defer ctrl.Finish()

		gateway.EXPECT().FetchShipping(c, shopapi.ModeBasket, 3).Return([]shopapi.Courier{
			{ID: 1, Name: "pickup", CostValue: 0, IsPrepaid: true},
			{ID: 2, Name: "cod courier", CostValue: 5, IsPrepaid: false},
			{ID: 3, Name: "", CostValue: 1, IsPrepaid: true},
			{ID: 4, Name: "dpd", CostValue: 9.99, IsPrepaid: true},
		}, nil)

		couriers, err := service.Fetch(c, shopapi.ModeBasket, 3)

		assert.NoError(t, err)
		assert.Len(t, couriers, 2)
		for _, courier := range couriers {
			assert.True(t, courier.IsPrepaid)
			assert.NotEmpty(t, courier.Name)
		}
	})

	t.Run("promotes cheapest to front preserving relative order", func(t *testing.T) {
		service, gateway, ctrl := setup(t)
		defer ctrl.Finish()

		gateway.EXPECT().FetchShipping(c, shopapi.ModeBasket, 3).Return([]shopapi.Courier{
			{ID: 1, Name: "dpd", CostValue: 9.99, IsPrepaid: true},
			{ID: 2, Name: "ups", CostValue: 12.50, IsPrepaid: true},
			{ID: 3, Name: "inpost", CostValue: 4.99, IsPrepaid: true},
			{ID: 4, Name: "dhl", CostValue: 11.00, IsPrepaid: true},
		}, nil)

		couriers, err := service.Fetch(c, shopapi.ModeBasket, 3)

		assert.NoError(t, err)
		assert.Equal(t, []int{3, 1, 2, 4}, courierIDs(couriers))
	})

	t.Run("cheapest already first stays untouched", func(t *testing.T) {
		service, gateway, ctrl := setup(t)
		defer ctrl.Finish()

		gateway.EXPECT().FetchShipping(c, shopapi.ModeBasket, 3).Return([]shopapi.Courier{
			{ID: 1, Name: "pickup", CostValue: 0, IsPrepaid: true},
			{ID: 2, Name: "dpd", CostValue: 9.99, IsPrepaid: true},
		}, nil)

		couriers, err := service.Fetch(c, shopapi.ModeBasket, 3)

		assert.NoError(t, err)
		assert.Equal(t, []int{1, 2}, courierIDs(couriers))
	})

	t.Run("cost tie prefers first occurrence", func(t *testing.T) {
		service, gateway, ctrl := setup(t)
		defer ctrl.Finish()

		gateway.EXPECT().FetchShipping(c, shopapi.ModeBasket, 3).Return([]shopapi.Courier{
			{ID: 1, Name: "dpd", CostValue: 9.99, IsPrepaid: true},
			{ID: 2, Name: "inpost", CostValue: 4.99, IsPrepaid: true},
			{ID: 3, Name: "ups", CostValue: 4.99, IsPrepaid: true},
		}, nil)

		couriers, err := service.Fetch(c, shopapi.ModeBasket, 3)

		assert.NoError(t, err)
		assert.Equal(t, []int{2, 1, 3}, courierIDs(couriers))
	})

	t.Run("truncates to ten entries", func(t *testing.T) {
		service, gateway, ctrl := setup(t)
		defer ctrl.Finish()

		fetched := []shopapi.Courier{}
		for i := 1; i <= 14; i++ {
			fetched = append(fetched, shopapi.Courier{
				ID: i, Name: fmt.Sprintf("courier-%d", i), CostValue: float64(i), IsPrepaid: true,
			})
		}
		gateway.EXPECT().FetchShipping(c, shopapi.ModeBasket, 3).Return(fetched, nil)

		couriers, err := service.Fetch(c, shopapi.ModeBasket, 3)

		assert.NoError(t, err)
		assert.Len(t, couriers, 10)
	})

	t.Run("empty result means destination unsupported", func(t *testing.T) {
		service, gateway, ctrl := setup(t)
		defer ctrl.Finish()

		gateway.EXPECT().FetchShipping(c, shopapi.ModeBasket, 99).Return([]shopapi.Courier{
			{ID: 1, Name: "cod only", CostValue: 5, IsPrepaid: false},
		}, nil)

		couriers, err := service.Fetch(c, shopapi.ModeBasket, 99)

		assert.NoError(t, err)
		assert.Empty(t, couriers)
	})

	t.Run("gateway error propagates unchanged", func(t *testing.T) {
		service, gateway, ctrl := setup(t)
		defer ctrl.Finish()

		gatewayErr := fmt.Errorf("gateway down")
		gateway.EXPECT().FetchShipping(c, shopapi.ModeBasket, 3).Return(nil, gatewayErr)

		_, err := service.Fetch(c, shopapi.ModeBasket, 3)

		assert.Equal(t, gatewayErr, err)
	})
}

func setup(t *testing.T) (*Service, *shopgateway.MockGateway, *gomock.Controller) {
	ctrl := gomock.NewController(t)
	gateway := shopgateway.NewMockGateway(ctrl)
	return New(gateway), gateway, ctrl
}

func courierIDs(couriers []shopapi.Courier) []int {
	ids := []int{}
	for _, courier := range couriers {
		ids = append(ids, courier.ID)
	}
	return ids
}

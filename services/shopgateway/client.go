package shopgateway

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/MarcGrol/expresscheckout/lib/myerrors"
	"github.com/MarcGrol/expresscheckout/lib/mylog"
	"github.com/MarcGrol/expresscheckout/services/shopapi"
)

type gatewayClient struct {
	baseURL string
	client  *http.Client
	logger  mylog.Logger
}

func NewClient(baseURL string) Gateway {
	return &gatewayClient{
		baseURL: baseURL,
		client: &http.Client{
			Timeout: 30 * time.Second,
		},
		logger: mylog.New("shopgateway"),
	}
}

type graphqlResponse struct {
	Data   json.RawMessage `json:"data"`
	Errors []struct {
		Message string `json:"message"`
	} `json:"errors"`
}

func (g *gatewayClient) execute(c context.Context, query string, out interface{}) error {
	requestBody, err := json.Marshal(map[string]string{"query": query})
	if err != nil {
		return myerrors.NewInternalError(fmt.Errorf("error marshalling query: %s", err))
	}

	req, err := http.NewRequestWithContext(c, http.MethodPost, g.baseURL+"/graphql/v1/", bytes.NewReader(requestBody))
	if err != nil {
		return myerrors.NewInternalError(fmt.Errorf("error creating request: %s", err))
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	httpResp, err := g.client.Do(req)
	if err != nil {
		return myerrors.NewBadGatewayError(fmt.Errorf("error calling shop gateway: %s", err))
	}
	defer httpResp.Body.Close()

	if httpResp.StatusCode != http.StatusOK {
		return myerrors.NewBadGatewayError(fmt.Errorf("shop gateway returned http status %d", httpResp.StatusCode))
	}

	resp := graphqlResponse{}
	err = json.NewDecoder(httpResp.Body).Decode(&resp)
	if err != nil {
		return myerrors.NewBadGatewayError(fmt.Errorf("error parsing gateway response: %s", err))
	}
	if len(resp.Errors) > 0 {
		return myerrors.NewBadGatewayError(fmt.Errorf("gateway rejected query: %s", resp.Errors[0].Message))
	}

	err = json.Unmarshal(resp.Data, out)
	if err != nil {
		return myerrors.NewBadGatewayError(fmt.Errorf("error parsing gateway data: %s", err))
	}

	return nil
}

// postAction sends one of the enveloped express-checkout mutations. The
// payload travels percent-encoded inside a string argument.
func (g *gatewayClient) postAction(c context.Context, action interface{}) (string, string, error) {
	payload, err := json.Marshal(action)
	if err != nil {
		return "", "", myerrors.NewInternalError(fmt.Errorf("error marshalling action: %s", err))
	}

	query := fmt.Sprintf(`mutation{
  expressCheckout(ExpressCheckoutInput: "%s"){
    status
    data
  }
}`, url.QueryEscape(string(payload)))

	wire := struct {
		ExpressCheckout struct {
			Status string `json:"status"`
			Data   string `json:"data"`
		} `json:"expressCheckout"`
	}{}
	err = g.execute(c, query, &wire)
	if err != nil {
		return "", "", err
	}

	data := wire.ExpressCheckout.Data
	if data != "" {
		data, err = url.QueryUnescape(data)
		if err != nil {
			return "", "", myerrors.NewBadGatewayError(fmt.Errorf("error unescaping action data: %s", err))
		}
	}

	return wire.ExpressCheckout.Status, data, nil
}

func (g *gatewayClient) FetchShipping(c context.Context, mode shopapi.Mode, regionID int) ([]shopapi.Courier, error) {
	regionPart := ""
	if regionID > 0 {
		regionPart = fmt.Sprintf(", forcedRegion:%d", regionID)
	}
	query := fmt.Sprintf(`query{
  shipping(ShippingInput:{mode:%s%s}){
    shipping{
      courier{
        id
        name
      }
      prepaid
      cost{
        value
        currency
      }
    }
  }
}`, mode, regionPart)

	wire := struct {
		Shipping struct {
			Shipping []struct {
				Courier struct {
					ID   int    `json:"id"`
					Name string `json:"name"`
				} `json:"courier"`
				Prepaid string `json:"prepaid"`
				Cost    struct {
					Value    float64 `json:"value"`
					Currency string  `json:"currency"`
				} `json:"cost"`
			} `json:"shipping"`
		} `json:"shipping"`
	}{}
	err := g.execute(c, query, &wire)
	if err != nil {
		return nil, err
	}

	couriers := []shopapi.Courier{}
	for _, entry := range wire.Shipping.Shipping {
		couriers = append(couriers, shopapi.Courier{
			ID:           entry.Courier.ID,
			Name:         entry.Courier.Name,
			CostValue:    entry.Cost.Value,
			CostCurrency: entry.Cost.Currency,
			IsPrepaid:    entry.Prepaid == "prepaid",
		})
	}

	return couriers, nil
}

func (g *gatewayClient) FetchCountries(c context.Context) (shopapi.CountryCatalog, error) {
	query := `query{
  shop{
    countries {
      available {
        id
        iso
      }
      current {
        id
        name
        iso
      }
    }
  }
}`

	wire := struct {
		Shop struct {
			Countries struct {
				Available []struct {
					ID  int    `json:"id"`
					ISO string `json:"iso"`
				} `json:"available"`
				Current struct {
					ID   int    `json:"id"`
					Name string `json:"name"`
					ISO  string `json:"iso"`
				} `json:"current"`
			} `json:"countries"`
		} `json:"shop"`
	}{}
	err := g.execute(c, query, &wire)
	if err != nil {
		return shopapi.CountryCatalog{}, err
	}

	catalog := shopapi.CountryCatalog{
		Current: shopapi.Region{
			ID:      wire.Shop.Countries.Current.ID,
			ISOCode: wire.Shop.Countries.Current.ISO,
			Name:    wire.Shop.Countries.Current.Name,
		},
	}
	for _, entry := range wire.Shop.Countries.Available {
		catalog.Available = append(catalog.Available, shopapi.Region{
			ID:      entry.ID,
			ISOCode: entry.ISO,
		})
	}

	return catalog, nil
}

func (g *gatewayClient) FetchBasket(c context.Context) (shopapi.BasketSnapshot, error) {
	query := `query{
  basket(BasketCostInput: {}){
    summaryBasket {
      productsCount
      worth {
        gross {
          value
          currency
        }
        net {
          value
          currency
        }
      }
    }
    products {
      id
      quantity
      worth {
        gross {
          value
        }
      }
      data {
        name
      }
    }
  }
}`

	wire := struct {
		Basket struct {
			SummaryBasket struct {
				ProductsCount int `json:"productsCount"`
				Worth         struct {
					Gross struct {
						Value    float64 `json:"value"`
						Currency string  `json:"currency"`
					} `json:"gross"`
					Net struct {
						Value float64 `json:"value"`
					} `json:"net"`
				} `json:"worth"`
			} `json:"summaryBasket"`
			Products []struct {
				ID       string `json:"id"`
				Quantity int    `json:"quantity"`
				Worth    struct {
					Gross struct {
						Value float64 `json:"value"`
					} `json:"gross"`
				} `json:"worth"`
				Data struct {
					Name string `json:"name"`
				} `json:"data"`
			} `json:"products"`
		} `json:"basket"`
	}{}
	err := g.execute(c, query, &wire)
	if err != nil {
		return shopapi.BasketSnapshot{}, err
	}

	basket := shopapi.BasketSnapshot{
		ProductsCount: wire.Basket.SummaryBasket.ProductsCount,
		GrossWorth:    wire.Basket.SummaryBasket.Worth.Gross.Value,
		NetWorth:      wire.Basket.SummaryBasket.Worth.Net.Value,
		Currency:      wire.Basket.SummaryBasket.Worth.Gross.Currency,
	}
	for _, product := range wire.Basket.Products {
		basket.Products = append(basket.Products, shopapi.BasketProduct{
			ID:         product.ID,
			Name:       product.Data.Name,
			Quantity:   product.Quantity,
			GrossWorth: product.Worth.Gross.Value,
		})
	}

	return basket, nil
}

func (g *gatewayClient) AddProductToBasket(c context.Context, productID string, quantity int) error {
	status, _, err := g.postAction(c, map[string]interface{}{
		"action":    "addProductToBasket",
		"productId": productID,
		"quantity":  quantity,
	})
	if err != nil {
		return err
	}
	if status != "success" {
		return myerrors.NewBadGatewayError(fmt.Errorf("gateway could not add product %s to basket: %s", productID, status))
	}

	return nil
}

func (g *gatewayClient) FetchPaymentInitData(c context.Context, provider shopapi.Provider) (shopapi.PaymentInitData, error) {
	_, data, err := g.postAction(c, map[string]interface{}{
		"action": "getPaymentSystemInitialData",
		"system": provider,
	})
	if err != nil {
		return shopapi.PaymentInitData{}, err
	}

	initData := shopapi.PaymentInitData{}
	err = json.Unmarshal([]byte(data), &initData)
	if err != nil {
		return shopapi.PaymentInitData{}, myerrors.NewBadGatewayError(fmt.Errorf("error parsing init data: %s", err))
	}

	return initData, nil
}

func (g *gatewayClient) CreatePayment(c context.Context, provider shopapi.Provider) (PaymentCreated, error) {
	query := fmt.Sprintf(`mutation{
  expressCheckoutCreatePayment(CreatePaymentInput: {
    system:"%s"
  }){
    status
    data
  }
}`, provider)

	wire := struct {
		ExpressCheckoutCreatePayment struct {
			Status string `json:"status"`
			Data   string `json:"data"`
		} `json:"expressCheckoutCreatePayment"`
	}{}
	err := g.execute(c, query, &wire)
	if err != nil {
		return PaymentCreated{}, err
	}

	payload := struct {
		OrderID         string          `json:"id"`
		ErrNo           int             `json:"errno"`
		MerchantSession json.RawMessage `json:"merchantSession"`
		shopapi.PaymentInitData
	}{}
	err = json.Unmarshal([]byte(wire.ExpressCheckoutCreatePayment.Data), &payload)
	if err != nil {
		return PaymentCreated{}, myerrors.NewBadGatewayError(fmt.Errorf("error parsing created payment: %s", err))
	}

	return PaymentCreated{
		OrderID:         payload.OrderID,
		ErrNo:           payload.ErrNo,
		MerchantSession: payload.MerchantSession,
		InitData:        payload.PaymentInitData,
	}, nil
}

func (g *gatewayClient) SaveSelectedCourier(c context.Context, courierID int, provider shopapi.Provider, amount float64, currency string) (string, error) {
	query := fmt.Sprintf(`mutation{
  expressCheckoutSaveCourierAndPaymentAmount(SaveCourierAndPaymentAmountInput: {
    courierId:%d
    system:"%s"
    paymentAmount:%.2f
    paymentCurrency:"%s"
  }){
    status
  }
}`, courierID, provider, amount, currency)

	wire := struct {
		ExpressCheckoutSaveCourierAndPaymentAmount struct {
			Status string `json:"status"`
		} `json:"expressCheckoutSaveCourierAndPaymentAmount"`
	}{}
	err := g.execute(c, query, &wire)
	if err != nil {
		return "", err
	}

	return wire.ExpressCheckoutSaveCourierAndPaymentAmount.Status, nil
}

func (g *gatewayClient) DeleteSelectedCourier(c context.Context) (string, error) {
	query := `mutation{
  expressCheckoutDeleteCourier{
    status
  }
}`

	wire := struct {
		ExpressCheckoutDeleteCourier struct {
			Status string `json:"status"`
		} `json:"expressCheckoutDeleteCourier"`
	}{}
	err := g.execute(c, query, &wire)
	if err != nil {
		return "", err
	}

	return wire.ExpressCheckoutDeleteCourier.Status, nil
}

func (g *gatewayClient) RestoreBasket(c context.Context) error {
	_, _, err := g.postAction(c, map[string]interface{}{
		"action": "restoreBasket",
	})

	return err
}

func (g *gatewayClient) UpdateOrderParams(c context.Context, provider shopapi.Provider, orderID string, regionID int, couriers []shopapi.Courier) (OrderUpdate, error) {
	_, data, err := g.postAction(c, map[string]interface{}{
		"action":          "updateOrderParams",
		"orderId":         orderID,
		"system":          provider,
		"regionId":        regionID,
		"shippingOptions": couriers,
	})
	if err != nil {
		return OrderUpdate{}, err
	}

	updates := []OrderUpdate{}
	err = json.Unmarshal([]byte(data), &updates)
	if err != nil {
		return OrderUpdate{}, myerrors.NewBadGatewayError(fmt.Errorf("error parsing order update: %s", err))
	}
	if len(updates) == 0 {
		return OrderUpdate{}, myerrors.NewBadGatewayError(fmt.Errorf("gateway returned empty order update"))
	}

	return updates[0], nil
}

func (g *gatewayClient) ProceedPayment(c context.Context, provider shopapi.Provider, orderID string, token string) (PaymentProceeded, error) {
	query := fmt.Sprintf(`mutation{
  expressCheckoutProceedPayment(ProceedPaymentInput: {
    system:"%s"
    orderId:"%s"
    token:"%s"
  }){
    status
    data
  }
}`, provider, orderID, token)

	wire := struct {
		ExpressCheckoutProceedPayment struct {
			Status string `json:"status"`
			Data   string `json:"data"`
		} `json:"expressCheckoutProceedPayment"`
	}{}
	err := g.execute(c, query, &wire)
	if err != nil {
		return PaymentProceeded{}, err
	}

	return PaymentProceeded{
		Status:      wire.ExpressCheckoutProceedPayment.Status,
		RedirectURL: wire.ExpressCheckoutProceedPayment.Data,
	}, nil
}

package shopapi

import (
	"fmt"
	"net/http"
	"net/url"

	formcodec "github.com/go-playground/form/v4"

	"github.com/MarcGrol/expresscheckout/lib/myerrors"
)

// CheckoutRequest is the form payload the shop page posts to start an
// express-checkout attempt.
type CheckoutRequest struct {
	Provider  string `form:"provider"`
	Mode      string `form:"mode"`
	ProductID string `form:"productId"`
	Quantity  int    `form:"quantity"`
	ReturnURL string `form:"returnUrl"`
}

func NewCheckoutRequestFromRequest(r *http.Request) (CheckoutRequest, error) {
	err := r.ParseForm()
	if err != nil {
		return CheckoutRequest{}, myerrors.NewInvalidInputError(err)
	}
	return NewCheckoutRequestFromValues(r.Form)
}

func NewCheckoutRequestFromValues(values url.Values) (CheckoutRequest, error) {
	req := CheckoutRequest{}
	err := formcodec.NewDecoder().Decode(&req, values)
	if err != nil {
		return req, fmt.Errorf("error decoding form: %s", err)
	}

	return req, nil
}

func (r CheckoutRequest) ToForm() (url.Values, error) {
	values, err := formcodec.NewEncoder().Encode(r)
	if err != nil {
		return nil, fmt.Errorf("error encoding form: %s", err)
	}

	return values, nil
}

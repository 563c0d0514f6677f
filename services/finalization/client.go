package finalization

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/MarcGrol/expresscheckout/lib/myerrors"
)

type settlementClient struct {
	endpointURL string
	client      *http.Client
}

func NewSettlementClient(endpointURL string) SettlementClient {
	return &settlementClient{
		endpointURL: endpointURL,
		client: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

func (sc *settlementClient) Submit(c context.Context, correlationID string, payload url.Values) (FinalizeResponse, error) {
	req, err := http.NewRequestWithContext(c, http.MethodPost, sc.endpointURL, strings.NewReader(payload.Encode()))
	if err != nil {
		return FinalizeResponse{}, myerrors.NewInternalError(fmt.Errorf("error creating settlement request: %s", err))
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("X-Correlation-ID", correlationID)

	httpResp, err := sc.client.Do(req)
	if err != nil {
		return FinalizeResponse{}, myerrors.NewBadGatewayError(fmt.Errorf("error calling settlement endpoint: %s", err))
	}
	defer httpResp.Body.Close()

	if httpResp.StatusCode != http.StatusOK {
		return FinalizeResponse{}, myerrors.NewBadGatewayError(fmt.Errorf("settlement endpoint returned http status %d", httpResp.StatusCode))
	}

	resp := FinalizeResponse{}
	err = json.NewDecoder(httpResp.Body).Decode(&resp)
	if err != nil {
		return FinalizeResponse{}, myerrors.NewBadGatewayError(fmt.Errorf("error parsing settlement response: %s", err))
	}

	return resp, nil
}

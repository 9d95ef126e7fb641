// Package chain submits constructed operations to a network gateway.
//
// The client is the consumed TransactionSubmitter collaborator: it hands a
// constructed operation and its authorizing key to the gateway, which signs
// and broadcasts, and decodes the resulting receipt. It is deliberately a
// thin client; running a node or a general RPC surface is out of scope.
package chain

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"keyward/internal/domain"
)

// Client talks to a signing gateway over HTTP.
type Client struct {
	Base string
	HTTP *http.Client
}

// NewClient returns a gateway client for base.
func NewClient(base string, httpClient *http.Client) *Client {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &Client{Base: base, HTTP: httpClient}
}

type broadcastRequest struct {
	Operation      domain.Operation `json:"operation"`
	AuthorizingKey string           `json:"authorizing_key"`
}

// SendOperation posts op for signing and broadcast, returning the receipt.
// Transport errors and non-2xx statuses surface as submission failures.
func (c *Client) SendOperation(ctx context.Context, op domain.Operation, authorizingKey string) (domain.Receipt, error) {
	buf := new(bytes.Buffer)
	if err := json.NewEncoder(buf).Encode(broadcastRequest{
		Operation:      op,
		AuthorizingKey: authorizingKey,
	}); err != nil {
		return domain.Receipt{}, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.Base+"/broadcast", buf)
	if err != nil {
		return domain.Receipt{}, err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.HTTP.Do(req)
	if err != nil {
		return domain.Receipt{}, domain.E(domain.KindSubmission, err.Error())
	}
	defer resp.Body.Close()
	if resp.StatusCode/100 != 2 {
		return domain.Receipt{}, domain.E(domain.KindSubmission,
			fmt.Sprintf("gateway broadcast: %s", resp.Status))
	}

	var receipt domain.Receipt
	if err := json.NewDecoder(resp.Body).Decode(&receipt); err != nil {
		return domain.Receipt{}, domain.E(domain.KindSubmission, "gateway broadcast: malformed receipt")
	}
	return receipt, nil
}

var _ domain.TransactionSubmitter = (*Client)(nil)

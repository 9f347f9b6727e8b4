package collaborators

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/pkg/errs"
)

// InvoiceClient generates invoices through the billing service HTTP API.
type InvoiceClient struct {
	baseURL string
	client  *http.Client
}

// NewInvoiceClient creates a client for the billing service at baseURL.
func NewInvoiceClient(baseURL string) *InvoiceClient {
	return &InvoiceClient{
		baseURL: baseURL,
		client:  &http.Client{Timeout: 10 * time.Second},
	}
}

type invoiceLine struct {
	ProductID  string `json:"productId"`
	Quantity   int    `json:"quantity"`
	PriceCents int64  `json:"priceCents"`
}

type invoiceRequest struct {
	OrderNumber string        `json:"orderNumber"`
	BuyerID     string        `json:"buyerId"`
	SellerID    string        `json:"sellerId"`
	Lines       []invoiceLine `json:"lines"`
}

type invoiceResponse struct {
	URL string `json:"url"`
}

// Generate requests an invoice for the delivered order and returns its URL.
func (c *InvoiceClient) Generate(ctx context.Context, o *order.Order) (string, error) {
	payload := invoiceRequest{
		OrderNumber: o.OrderNumber(),
		BuyerID:     o.BuyerID().String(),
		SellerID:    o.SellerID().String(),
		Lines:       make([]invoiceLine, 0, len(o.Items())),
	}
	for _, item := range o.Items() {
		payload.Lines = append(payload.Lines, invoiceLine{
			ProductID:  item.ProductID().String(),
			Quantity:   item.Quantity(),
			PriceCents: item.PriceCents(),
		})
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return "", errs.NewCollaboratorFailedError("invoice", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/api/v1/invoices", bytes.NewReader(body))
	if err != nil {
		return "", errs.NewCollaboratorFailedError("invoice", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set(idempotencyKeyHeader, o.OrderNumber())

	resp, err := c.client.Do(req)
	if err != nil {
		return "", errs.NewCollaboratorFailedError("invoice", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return "", errs.NewCollaboratorFailedError("invoice",
			fmt.Errorf("unexpected status %d from /api/v1/invoices", resp.StatusCode))
	}

	var decoded invoiceResponse
	if err = json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return "", errs.NewCollaboratorFailedError("invoice", err)
	}
	if decoded.URL == "" {
		return "", errs.NewCollaboratorFailedError("invoice",
			fmt.Errorf("billing service returned an empty invoice url"))
	}
	return decoded.URL, nil
}

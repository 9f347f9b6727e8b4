// Package collaborators holds HTTP clients for the external services the
// fulfillment flow depends on: inventory reservation and invoice generation.
// Requests carry the order number as an idempotency key so retries after a
// timeout cannot double-reserve or double-release stock.
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

const idempotencyKeyHeader = "X-Idempotency-Key"

// InventoryClient reserves and releases stock through the inventory service
// HTTP API.
type InventoryClient struct {
	baseURL string
	client  *http.Client
}

// NewInventoryClient creates a client for the inventory service at baseURL.
func NewInventoryClient(baseURL string) *InventoryClient {
	return &InventoryClient{
		baseURL: baseURL,
		client:  &http.Client{Timeout: 10 * time.Second},
	}
}

type inventoryItem struct {
	ProductID string `json:"productId"`
	Quantity  int    `json:"quantity"`
}

type inventoryRequest struct {
	OrderNumber string          `json:"orderNumber"`
	Items       []inventoryItem `json:"items"`
}

// Reserve holds stock for every item of the order.
func (c *InventoryClient) Reserve(ctx context.Context, orderNumber string, items []order.Item) error {
	return c.post(ctx, "/api/v1/reservations", orderNumber, items)
}

// Release returns previously reserved stock. The inventory service treats a
// release for an unknown or already-released order as a no-op, so cancelling
// twice is safe.
func (c *InventoryClient) Release(ctx context.Context, orderNumber string, items []order.Item) error {
	return c.post(ctx, "/api/v1/releases", orderNumber, items)
}

func (c *InventoryClient) post(ctx context.Context, path, orderNumber string, items []order.Item) error {
	payload := inventoryRequest{
		OrderNumber: orderNumber,
		Items:       make([]inventoryItem, 0, len(items)),
	}
	for _, item := range items {
		payload.Items = append(payload.Items, inventoryItem{
			ProductID: item.ProductID().String(),
			Quantity:  item.Quantity(),
		})
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return errs.NewCollaboratorFailedError("inventory", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(body))
	if err != nil {
		return errs.NewCollaboratorFailedError("inventory", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set(idempotencyKeyHeader, orderNumber)

	resp, err := c.client.Do(req)
	if err != nil {
		return errs.NewCollaboratorFailedError("inventory", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return errs.NewCollaboratorFailedError("inventory",
			fmt.Errorf("unexpected status %d from %s", resp.StatusCode, path))
	}
	return nil
}

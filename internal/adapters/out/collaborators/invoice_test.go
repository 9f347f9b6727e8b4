package collaborators_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fulfillment/internal/adapters/out/collaborators"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/pkg/errs"
)

func deliveredTestOrder(t *testing.T) *order.Order {
	t.Helper()
	now := time.Now().UTC()
	o, err := order.NewOrder(
		kernel.NewUUID(),
		"ORD-000077",
		kernel.NewUUID(),
		kernel.NewUUID(),
		testOrderItems(t),
		"14 Cedar Ct, Brookfield",
		"credit_card",
		now.Add(time.Hour),
		nil,
		now,
	)
	require.NoError(t, err)
	return o
}

func TestInvoiceClient_Generate_ReturnsInvoiceURL(t *testing.T) {
	o := deliveredTestOrder(t)

	var gotKey string
	var gotBody map[string]any
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotKey = r.Header.Get("X-Idempotency-Key")
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]string{"url": "https://billing.example/invoices/inv-991"})
	}))
	defer server.Close()

	client := collaborators.NewInvoiceClient(server.URL)

	url, err := client.Generate(t.Context(), o)

	require.NoError(t, err)
	assert.Equal(t, "https://billing.example/invoices/inv-991", url)
	assert.Equal(t, "ORD-000077", gotKey)
	assert.Equal(t, "ORD-000077", gotBody["orderNumber"])
	assert.Equal(t, o.BuyerID().String(), gotBody["buyerId"])
	assert.Len(t, gotBody["lines"], 2)
}

func TestInvoiceClient_Generate_NonSuccessStatus_ReturnsCollaboratorFailed(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	client := collaborators.NewInvoiceClient(server.URL)

	url, err := client.Generate(t.Context(), deliveredTestOrder(t))

	require.Error(t, err)
	assert.Empty(t, url)
	assert.ErrorIs(t, err, errs.ErrCollaboratorFailed)
}

func TestInvoiceClient_Generate_EmptyURL_ReturnsCollaboratorFailed(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(map[string]string{"url": ""})
	}))
	defer server.Close()

	client := collaborators.NewInvoiceClient(server.URL)

	url, err := client.Generate(t.Context(), deliveredTestOrder(t))

	require.Error(t, err)
	assert.Empty(t, url)
	assert.ErrorIs(t, err, errs.ErrCollaboratorFailed)
}

func TestInvoiceClient_Generate_MalformedResponse_ReturnsCollaboratorFailed(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("not json"))
	}))
	defer server.Close()

	client := collaborators.NewInvoiceClient(server.URL)

	_, err := client.Generate(t.Context(), deliveredTestOrder(t))

	require.Error(t, err)
	assert.ErrorIs(t, err, errs.ErrCollaboratorFailed)
}

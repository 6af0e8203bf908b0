package retailapi

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"retail_voice_backend/internal/models"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return NewClient(srv.URL, 2*time.Second)
}

func TestListRetailers_SendsBearerToken(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, PathRetailers, r.URL.Path)
		assert.Equal(t, "Bearer tok", r.Header.Get("Authorization"))
		w.Write([]byte(`{"success":true,"retailers":[{"_id":"r1","userId":"u1"},{"_id":"r2","userId":"u2"}]}`))
	})

	retailers, err := c.ListRetailers(context.Background(), "tok")
	require.NoError(t, err)
	require.Len(t, retailers, 2)
	assert.Equal(t, "u2", retailers[1].UserID)
}

func TestListProducts_RejectsInvalidSchema(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"success":true,"products":[{"_id":"p1"}]}`))
	})

	_, err := c.ListProducts(context.Background(), "tok")
	assert.ErrorIs(t, err, ErrUnexpectedResponse)
}

func TestCall_Unauthorized(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	})

	_, err := c.Inventory(context.Background(), "expired")
	assert.ErrorIs(t, err, ErrUnauthorized)
}

func TestCall_SuccessFalseIsRequestError(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		w.Write([]byte(`{"success":false,"message":"Retailer not found"}`))
	})

	_, err := c.Inventory(context.Background(), "tok")
	var reqErr *RequestError
	require.ErrorAs(t, err, &reqErr)
	assert.Equal(t, "Retailer not found", reqErr.Message)
	assert.Equal(t, http.StatusNotFound, reqErr.StatusCode)
}

func TestCall_TransportError(t *testing.T) {
	c := NewClient("http://127.0.0.1:1", 200*time.Millisecond)

	_, err := c.ListProducts(context.Background(), "tok")
	assert.ErrorIs(t, err, ErrTransport)
}

func TestSalesEvents_ForwardsFilters(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "2025-01-01", r.URL.Query().Get("from"))
		assert.Equal(t, "2025-01-31", r.URL.Query().Get("to"))
		assert.Equal(t, "p9", r.URL.Query().Get("productId"))
		w.Write([]byte(`{"success":true,"sales":[{"_id":"s1","productName":"Sugar 1kg","unitsSold":2,"priceAtSale":45.5,"totalAmount":91,"saleDate":"2025-01-10T09:30:00Z"}]}`))
	})

	sales, err := c.SalesEvents(context.Background(), "tok", models.SalesFilter{From: "2025-01-01", To: "2025-01-31", ProductID: "p9"})
	require.NoError(t, err)
	require.Len(t, sales, 1)
	assert.Equal(t, "91", sales[0].TotalAmount.String())
	assert.Equal(t, 2025, sales[0].SaleDate.Year())
}

func TestAddSale_Recorded(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		var body map[string]interface{}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "r1", body["retailerId"])
		assert.Equal(t, "Sugar 1kg", body["productName"])
		assert.Equal(t, float64(3), body["unitsSold"])
		w.Write([]byte(`{"success":true,"message":"Sale recorded"}`))
	})

	res, err := c.AddSale(context.Background(), "tok", "r1", "Sugar 1kg", 3)
	require.NoError(t, err)
	assert.True(t, res.Success)
	assert.Nil(t, res.Shortfall)
}

func TestAddSale_LegacyShortfallField(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte(`{"success":false,"message":"Insufficient inventory","availableQuantity":2,"requestedQuantity":5,"productName":"Sugar 1kg"}`))
	})

	res, err := c.AddSale(context.Background(), "tok", "r1", "Sugar 1kg", 5)
	require.NoError(t, err)
	assert.False(t, res.Success)
	require.NotNil(t, res.Shortfall)
	assert.Equal(t, 3, res.Shortfall.Missing())
}

func TestAddSale_ExplicitErrorKind(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusConflict)
		w.Write([]byte(`{"success":false,"errorKind":"insufficient_inventory","message":"Not enough stock","availableQuantity":0}`))
	})

	res, err := c.AddSale(context.Background(), "tok", "r1", "Rice 5kg", 4)
	require.NoError(t, err)
	require.NotNil(t, res.Shortfall)
	assert.Equal(t, "Rice 5kg", res.Shortfall.ProductName)
	assert.Equal(t, 4, res.Shortfall.Requested)
	assert.Equal(t, 4, res.Shortfall.Missing())
}

func TestAddSale_GenericFailure(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		w.Write([]byte(`{"success":false,"message":"Database unavailable"}`))
	})

	res, err := c.AddSale(context.Background(), "tok", "r1", "Rice 5kg", 1)
	require.NoError(t, err)
	assert.False(t, res.Success)
	assert.Nil(t, res.Shortfall)
	assert.Equal(t, "Database unavailable", res.Message)
}

func TestAddSale_RejectsInvalidRequest(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("request must not be sent")
	})

	_, err := c.AddSale(context.Background(), "tok", "r1", "Rice 5kg", 0)
	assert.Error(t, err)
}

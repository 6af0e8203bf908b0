package retailapi

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"

	"retail_voice_backend/internal/models"
	"retail_voice_backend/pkg/utils"
)

// maxBodyBytes bounds how much of a response body is read.
const maxBodyBytes = 4 << 20

// Client talks to the retail API on behalf of one session token per call.
// It never retries: every failure is terminal for the attempt.
type Client struct {
	baseURL    string
	httpClient *http.Client
	validate   *validator.Validate
}

// NewClient creates a client for the API rooted at baseURL.
func NewClient(baseURL string, timeout time.Duration) *Client {
	return NewClientWithHTTP(baseURL, &http.Client{Timeout: timeout})
}

// NewClientWithHTTP lets callers supply their own *http.Client.
func NewClientWithHTTP(baseURL string, httpClient *http.Client) *Client {
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: httpClient,
		validate:   validator.New(),
	}
}

// ListRetailers fetches every retailer visible to the token.
func (c *Client) ListRetailers(ctx context.Context, token string) ([]models.Retailer, error) {
	var resp retailersResponse
	if err := c.call(ctx, http.MethodGet, PathRetailers, token, nil, nil, &resp); err != nil {
		return nil, err
	}
	return resp.Retailers, nil
}

// ListProducts fetches the product catalog.
func (c *Client) ListProducts(ctx context.Context, token string) ([]models.Product, error) {
	var resp productsResponse
	if err := c.call(ctx, http.MethodGet, PathProducts, token, nil, nil, &resp); err != nil {
		return nil, err
	}
	return resp.Products, nil
}

// Inventory fetches the current inventory of the authenticated retailer.
func (c *Client) Inventory(ctx context.Context, token string) ([]models.InventoryItem, error) {
	var resp inventoryResponse
	if err := c.call(ctx, http.MethodGet, PathInventory, token, nil, nil, &resp); err != nil {
		return nil, err
	}
	return resp.Inventory, nil
}

// SalesEvents fetches the retailer's sale ledger.
func (c *Client) SalesEvents(ctx context.Context, token string, filter models.SalesFilter) ([]models.SaleEvent, error) {
	var resp salesDataResponse
	if err := c.call(ctx, http.MethodGet, PathSalesData, token, filterQuery(filter), nil, &resp); err != nil {
		return nil, err
	}
	return resp.Sales, nil
}

// SalesSummary fetches sales aggregated by product.
func (c *Client) SalesSummary(ctx context.Context, token string, filter models.SalesFilter) ([]models.SalesSummaryRow, error) {
	var resp salesSummaryResponse
	if err := c.call(ctx, http.MethodGet, PathSalesSummary, token, filterQuery(filter), nil, &resp); err != nil {
		return nil, err
	}
	return resp.Summary, nil
}

// FixInventory asks the API to repair the retailer's inventory assignment and
// returns its message.
func (c *Client) FixInventory(ctx context.Context, token string) (string, error) {
	var resp fixInventoryResponse
	if err := c.call(ctx, http.MethodPost, PathFixInventory, token, nil, nil, &resp); err != nil {
		return "", err
	}
	return resp.Message, nil
}

// AddSale records a sale. A business rejection is not an error: it comes back
// as an AddSaleResult with Success false. Errors are reserved for transport,
// authorization and schema failures.
func (c *Client) AddSale(ctx context.Context, token, retailerID, productName string, unitsSold int) (AddSaleResult, error) {
	req := addSaleRequest{RetailerID: retailerID, ProductName: productName, UnitsSold: unitsSold}
	if err := c.validate.Struct(req); err != nil {
		return AddSaleResult{}, fmt.Errorf("invalid sale request: %w", err)
	}

	var resp addSaleResponse
	err := c.call(ctx, http.MethodPost, PathAddSales, token, nil, req, &resp)
	var reqErr *RequestError
	if err != nil && !errors.As(err, &reqErr) {
		return AddSaleResult{}, err
	}

	if resp.Success {
		return AddSaleResult{Success: true, Sale: resp.Sale, Message: resp.Message}, nil
	}

	result := AddSaleResult{Message: resp.Message}
	if resp.ErrorKind == ErrorKindInsufficientInventory || resp.AvailableQuantity != nil {
		shortfall := &models.Shortfall{ProductName: resp.ProductName, Requested: unitsSold}
		if shortfall.ProductName == "" {
			shortfall.ProductName = productName
		}
		if resp.AvailableQuantity != nil {
			shortfall.Available = *resp.AvailableQuantity
		}
		if resp.RequestedQuantity != nil {
			shortfall.Requested = *resp.RequestedQuantity
		}
		result.Shortfall = shortfall
	}
	return result, nil
}

func filterQuery(filter models.SalesFilter) url.Values {
	q := url.Values{}
	if filter.From != "" {
		q.Set("from", filter.From)
	}
	if filter.To != "" {
		q.Set("to", filter.To)
	}
	if filter.ProductID != "" {
		q.Set("productId", filter.ProductID)
	}
	return q
}

// call performs one request and decodes the body into out. A decoded body with
// success=false yields a *RequestError; out is still populated so callers can
// inspect failure payloads.
func (c *Client) call(ctx context.Context, method, path, token string, query url.Values, body interface{}, out enveloped) error {
	endpoint := c.baseURL + path
	if len(query) > 0 {
		endpoint += "?" + query.Encode()
	}

	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encoding %s request: %w", path, err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint, reader)
	if err != nil {
		return fmt.Errorf("building %s request: %w", path, err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %s %s: %v", ErrTransport, method, path, err)
	}
	defer resp.Body.Close()

	utils.LogDebug("Retail API call", map[string]interface{}{
		"method":      method,
		"path":        path,
		"status_code": resp.StatusCode,
		"latency":     time.Since(start).String(),
	})

	if resp.StatusCode == http.StatusUnauthorized {
		return fmt.Errorf("%w: %s", ErrUnauthorized, path)
	}

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return fmt.Errorf("%w: reading %s: %v", ErrTransport, path, err)
	}

	if err := json.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("%w: %s returned status %d with undecodable body: %v", ErrUnexpectedResponse, path, resp.StatusCode, err)
	}

	head := out.header()
	if !head.Success {
		return &RequestError{Endpoint: path, StatusCode: resp.StatusCode, Message: head.Message}
	}
	if resp.StatusCode >= http.StatusBadRequest {
		return fmt.Errorf("%w: %s reported success with status %d", ErrUnexpectedResponse, path, resp.StatusCode)
	}

	if err := c.validate.Struct(out); err != nil {
		return fmt.Errorf("%w: %s: %v", ErrUnexpectedResponse, path, err)
	}
	return nil
}

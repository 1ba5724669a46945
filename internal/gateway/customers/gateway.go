package customers

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"service-dispatch/internal/domain"
)

// HTTPGateway resolves customer addresses through the customers service REST
// API. Deployments that share the storefront database use the address
// repository instead.
type HTTPGateway struct {
	client  *http.Client
	baseURL string
}

// statusError carries the upstream HTTP status so the retrying decorator can
// tell transient failures from permanent ones.
type statusError struct {
	code int
	body string
}

func (e *statusError) Error() string {
	return fmt.Sprintf("customers service: status %d: %s", e.code, e.body)
}

// NewHTTPGateway creates a customers gateway. A nil client falls back to
// http.DefaultClient.
func NewHTTPGateway(client *http.Client, baseURL string) *HTTPGateway {
	if baseURL == "" {
		return nil
	}
	if client == nil {
		client = http.DefaultClient
	}
	return &HTTPGateway{client: client, baseURL: strings.TrimRight(baseURL, "/")}
}

type addressDTO struct {
	AddressLine string `json:"address_line"`
	Area        string `json:"area"`
	City        string `json:"city"`
	PostalCode  string `json:"postal_code"`
	IsDefault   bool   `json:"is_default"`
}

// ResolveAddress fetches one address from the customer's address book.
// A 404 from the customers service maps to (nil, nil).
func (g *HTTPGateway) ResolveAddress(ctx context.Context, customerID, addressID string) (*domain.Address, error) {
	u := fmt.Sprintf("%s/customers/%s/addresses/%s",
		g.baseURL, url.PathEscape(customerID), url.PathEscape(addressID))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, fmt.Errorf("customers gateway: build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := g.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("customers gateway: ResolveAddress: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return nil, nil
	}
	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, fmt.Errorf("customers gateway: ResolveAddress: %w",
			&statusError{code: resp.StatusCode, body: strings.TrimSpace(string(body))})
	}

	var dto addressDTO
	if err := json.NewDecoder(resp.Body).Decode(&dto); err != nil {
		return nil, fmt.Errorf("customers gateway: decode response: %w", err)
	}
	return &domain.Address{
		AddressLine: dto.AddressLine,
		Area:        dto.Area,
		City:        dto.City,
		PostalCode:  dto.PostalCode,
		IsDefault:   dto.IsDefault,
	}, nil
}

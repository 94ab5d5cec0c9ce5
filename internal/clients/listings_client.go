package clients

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
	"strings"
	"time"

	"listing-builder-service/internal/models"
)

// ListingsClient submits the finalized batch to the listings-service, which
// owns persistence, per-row error surfacing and partial-failure reporting.
// The builder never retries or rolls back on this call's failure.
type ListingsClient struct {
	baseURL    string
	httpClient *http.Client
}

type bulkCreateRequest struct {
	Listings []models.ListingRow `json:"listings"`
}

// NewListingsClient creates a new listings client
func NewListingsClient() *ListingsClient {
	baseURL := os.Getenv("LISTINGS_SERVICE_URL")
	if baseURL == "" {
		baseURL = "http://listings-service:8080"
	}

	return &ListingsClient{
		baseURL: strings.TrimSuffix(baseURL, "/"),
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

// BulkCreate sends the finalized rows in one outbound call and relays the
// collaborator's result as-is.
func (c *ListingsClient) BulkCreate(ctx context.Context, tenantID, userID string, rows []models.ListingRow) (*models.BulkCreateResult, error) {
	payload, err := json.Marshal(bulkCreateRequest{Listings: rows})
	if err != nil {
		return nil, err
	}

	url := fmt.Sprintf("%s/api/v1/listings/bulk", c.baseURL)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		return nil, err
	}

	req.Header.Set("x-jwt-claim-tenant-id", tenantID)
	if userID != "" {
		req.Header.Set("x-jwt-claim-sub", userID)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		log.Printf("[ListingsClient] Error calling bulk create: %v", err)
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		body, _ := io.ReadAll(resp.Body)
		log.Printf("[ListingsClient] Bulk create returned %d: %s", resp.StatusCode, string(body))
		return nil, fmt.Errorf("bulk create failed: %d - %s", resp.StatusCode, string(body))
	}

	var result models.BulkCreateResult
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, err
	}
	return &result, nil
}
